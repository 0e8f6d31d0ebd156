package analysis

import (
	"github.com/pkg/errors"
	"github.com/warp-contracts/ibc-bench/src/ledger"
	"github.com/warp-contracts/ibc-bench/src/utils/stats"
)

// Transactions of a single dominant kind
type KindSize struct {
	Kind         ledger.MessageKind
	Transactions int
	Messages     int

	// Decoded payload bytes, detailed mode only
	Bytes            int64
	AverageTxSize    float64
	AverageMsgSize   float64
	AverageMsgsPerTx float64
}

type Size struct {
	ChainId  string
	Detailed bool

	// Blocks in the throughput window, or all blocks in detailed mode
	Blocks           int
	BlockBytes       int64
	AverageBlockSize float64

	// Classified transactions of all blocks
	Transactions int
	Messages     int
	TxBytes      int64

	// Indexed by ledger.MessageKind
	Kinds []KindSize
}

func (self *Size) Kind(kind ledger.MessageKind) *KindSize {
	return &self.Kinds[kind]
}

func CalculateSize(blocks []ledger.Block, cutoff int, detailed bool) (out Size, err error) {
	if len(blocks) == 0 {
		err = errors.Wrap(ledger.ErrEmptyLedger, "size")
		return
	}

	out.ChainId = blocks[0].ChainId
	out.Detailed = detailed
	out.Kinds = make([]KindSize, len(ledger.MessageKinds))
	for _, kind := range ledger.MessageKinds {
		out.Kinds[kind].Kind = kind
	}

	window := blocks
	if !detailed {
		window = Window(blocks, cutoff)
	}
	out.Blocks = len(window)
	for i := range window {
		out.BlockBytes += window[i].Size
	}
	out.AverageBlockSize = stats.Ratio(out.BlockBytes, out.Blocks)

	for i := range blocks {
		for j := range blocks[i].Transactions {
			tx := &blocks[i].Transactions[j]
			class, ok := ledger.Classify(tx)
			if !ok {
				continue
			}

			kind := out.Kind(class.Kind)
			kind.Transactions++
			kind.Messages += class.Multiplicity

			if detailed {
				var size int
				size, err = tx.Size()
				if err != nil {
					return
				}
				kind.Bytes += int64(size)
			}
		}
	}

	for i := range out.Kinds {
		kind := &out.Kinds[i]
		out.Transactions += kind.Transactions
		out.Messages += kind.Messages
		out.TxBytes += kind.Bytes

		kind.AverageTxSize = stats.Ratio(kind.Bytes, kind.Transactions)
		kind.AverageMsgSize = stats.Ratio(kind.Bytes, kind.Messages)
		kind.AverageMsgsPerTx = stats.Ratio(kind.Messages, kind.Transactions)
	}
	return
}
