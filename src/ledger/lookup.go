package ledger

// Authoritative message counts of every transaction in a chain, by hash
type TxLookup map[string]Counts

// Later occurrences of the same hash overwrite earlier ones
func NewTxLookup(blocks []Block) TxLookup {
	out := make(TxLookup)
	for i := range blocks {
		for _, tx := range blocks[i].Transactions {
			out[tx.Hash] = tx.Counts
		}
	}
	return out
}

func (self TxLookup) Count(hash string, kind MessageKind) (n int, ok bool) {
	counts, ok := self[hash]
	if !ok {
		return 0, false
	}
	return counts.Get(kind), true
}
