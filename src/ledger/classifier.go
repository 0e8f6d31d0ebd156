package ledger

// Result of assigning a transaction to its dominant message kind
type Classification struct {
	Kind         MessageKind
	Multiplicity int
}

// Picks the kind with the maximum count, first maximum in MessageKinds order wins.
// Transactions with no messages are not classified.
func Classify(tx *Transaction) (out Classification, ok bool) {
	out.Kind = MessageKinds[0]
	out.Multiplicity = tx.Counts.Get(out.Kind)
	for _, kind := range MessageKinds[1:] {
		if n := tx.Counts.Get(kind); n > out.Multiplicity {
			out.Kind = kind
			out.Multiplicity = n
		}
	}
	return out, out.Multiplicity > 0
}

// Sums messages of every kind over all blocks
func CountMessages(blocks []Block) (counts Counts) {
	for i := range blocks {
		for j := range blocks[i].Transactions {
			counts = counts.Add(blocks[i].Transactions[j].Counts)
		}
	}
	return
}

// Number of transactions in all blocks
func CountTransactions(blocks []Block) (n int) {
	for i := range blocks {
		n += len(blocks[i].Transactions)
	}
	return
}
