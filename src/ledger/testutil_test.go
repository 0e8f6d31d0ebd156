package ledger

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

func txJson(hash string, transfer, recv, ack, timeout int, data []byte) map[string]interface{} {
	return map[string]interface{}{
		"tx_hash":            hash,
		"MsgTransfer":        transfer,
		"MsgRecvPacket":      recv,
		"MsgAcknowledgement": ack,
		"MsgTimeout":         timeout,
		"tx_data":            base64.StdEncoding.EncodeToString(data),
	}
}

func blockJson(chain string, t time.Time, size int64, txs ...map[string]interface{}) string {
	if txs == nil {
		txs = []map[string]interface{}{}
	}
	buf, err := json.Marshal(map[string]interface{}{
		"chain-id":         chain,
		"block_time":       t.Format(time.RFC3339Nano),
		"block_size":       size,
		"num_transactions": len(txs),
		"transactions":     txs,
	})
	if err != nil {
		panic(err)
	}
	return string(buf)
}
