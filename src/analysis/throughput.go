package analysis

import (
	"github.com/pkg/errors"
	"github.com/warp-contracts/ibc-bench/src/ledger"
	"github.com/warp-contracts/ibc-bench/src/utils/stats"
)

type Throughput struct {
	ChainId string
	Blocks  int

	// Seconds
	AverageBlockTime float64
	Span             float64

	EmptyBlocks           int
	EmptyBlocksPercentage float64

	Transactions int
	Messages     int
	Transfers    int

	AverageTxsPerBlock  float64
	AverageMsgsPerTx    float64
	AverageMsgsPerBlock float64

	// Divided by Span, 0 if Span is 0
	TxsPerSecond       float64
	MsgsPerSecond      float64
	TransfersPerSecond float64
}

// First cutoff blocks. Cutoff <= 0 or past the end selects all blocks.
func Window(blocks []ledger.Block, cutoff int) []ledger.Block {
	if cutoff <= 0 || cutoff > len(blocks) {
		return blocks
	}
	return blocks[:cutoff]
}

func CalculateThroughput(blocks []ledger.Block, cutoff int) (out Throughput, err error) {
	if len(blocks) == 0 {
		err = errors.Wrap(ledger.ErrEmptyLedger, "throughput")
		return
	}

	out.ChainId = blocks[0].ChainId
	blocks = Window(blocks, cutoff)
	out.Blocks = len(blocks)

	for i := range blocks {
		if len(blocks[i].Transactions) == 0 {
			out.EmptyBlocks++
		}
	}
	out.EmptyBlocksPercentage = float64(out.EmptyBlocks) * 100 / float64(out.Blocks)

	counts := ledger.CountMessages(blocks)
	out.Transactions = ledger.CountTransactions(blocks)
	out.Messages = counts.Total()
	out.Transfers = counts.Transfer

	out.AverageTxsPerBlock = float64(out.Transactions) / float64(out.Blocks)
	out.AverageMsgsPerTx = stats.Ratio(out.Messages, out.Transactions)
	out.AverageMsgsPerBlock = out.AverageMsgsPerTx * out.AverageTxsPerBlock

	out.Span = blocks[len(blocks)-1].Time.Sub(blocks[0].Time).Seconds()
	out.AverageBlockTime = stats.Ratio(out.Span, out.Blocks-1)

	out.TxsPerSecond = stats.Ratio(out.Transactions, out.Span)
	out.MsgsPerSecond = stats.Ratio(out.Messages, out.Span)
	out.TransfersPerSecond = stats.Ratio(out.Transfers, out.Span)
	return
}
