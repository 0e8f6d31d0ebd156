package analysis

import (
	"github.com/warp-contracts/ibc-bench/src/ledger"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type DistributionEntry struct {
	Transactions int
	Blocks       int
}

// Number of blocks per declared transaction count, ascending by count
type Distribution struct {
	ChainId string
	Entries []DistributionEntry
}

func CalculateDistribution(chainId string, blocks []ledger.Block) (out Distribution) {
	out.ChainId = chainId

	histogram := make(map[int]int)
	for i := range blocks {
		histogram[blocks[i].NumTransactions]++
	}

	keys := maps.Keys(histogram)
	slices.Sort(keys)

	out.Entries = make([]DistributionEntry, 0, len(keys))
	for _, txs := range keys {
		out.Entries = append(out.Entries, DistributionEntry{Transactions: txs, Blocks: histogram[txs]})
	}
	return
}
