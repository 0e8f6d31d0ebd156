package analysis

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/warp-contracts/ibc-bench/src/ledger"
)

var start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func tx(hash string, counts ledger.Counts, size int) ledger.Transaction {
	return ledger.Transaction{
		Hash:   hash,
		Counts: counts,
		Data:   base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", size))),
	}
}

func block(chain string, offset time.Duration, size int64, txs ...ledger.Transaction) ledger.Block {
	return ledger.Block{
		ChainId:         chain,
		Time:            start.Add(offset),
		Size:            size,
		NumTransactions: len(txs),
		Transactions:    txs,
	}
}
