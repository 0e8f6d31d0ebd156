package ledger

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

type Transaction struct {
	Hash   string
	Counts Counts

	// Base64 encoded transaction bytes
	Data string
}

// Size of the decoded payload in bytes
func (self *Transaction) Size() (int, error) {
	bz, err := self.Bytes()
	if err != nil {
		return 0, err
	}
	return len(bz), nil
}

func (self *Transaction) Bytes() ([]byte, error) {
	bz, err := base64.StdEncoding.DecodeString(self.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode payload of tx %s", self.Hash)
	}
	return bz, nil
}

type Block struct {
	ChainId         string
	Time            time.Time
	Size            int64
	NumTransactions int
	Transactions    []Transaction
}

// Wire format of a single line of the block data file.
// Pointers distinguish absent fields from zero values.
type jsonTransaction struct {
	Hash               *string `json:"tx_hash"`
	MsgTransfer        *int    `json:"MsgTransfer"`
	MsgRecvPacket      *int    `json:"MsgRecvPacket"`
	MsgAcknowledgement *int    `json:"MsgAcknowledgement"`
	MsgTimeout         *int    `json:"MsgTimeout"`
	Data               *string `json:"tx_data"`
}

type jsonBlock struct {
	ChainId         *string            `json:"chain-id"`
	BlockTime       *string            `json:"block_time"`
	BlockSize       *int64             `json:"block_size"`
	NumTransactions *int               `json:"num_transactions"`
	Transactions    *[]jsonTransaction `json:"transactions"`
}

func missing(name string) error {
	return errors.Wrap(ErrMissingField, name)
}

// Parses one JSON block record
func ParseBlock(line []byte) (block Block, err error) {
	var raw jsonBlock
	err = json.Unmarshal(line, &raw)
	if err != nil {
		err = errors.Wrap(ErrInvalidRecord, err.Error())
		return
	}

	switch {
	case raw.ChainId == nil:
		err = missing("chain-id")
	case raw.BlockTime == nil:
		err = missing("block_time")
	case raw.BlockSize == nil:
		err = missing("block_size")
	case raw.NumTransactions == nil:
		err = missing("num_transactions")
	case raw.Transactions == nil:
		err = missing("transactions")
	}
	if err != nil {
		return
	}

	block.ChainId = *raw.ChainId
	block.Size = *raw.BlockSize
	block.NumTransactions = *raw.NumTransactions
	block.Time, err = time.Parse(time.RFC3339Nano, *raw.BlockTime)
	if err != nil {
		err = errors.Wrapf(ErrInvalidRecord, "block_time %q: %s", *raw.BlockTime, err)
		return
	}

	block.Transactions = make([]Transaction, 0, len(*raw.Transactions))
	for i, tx := range *raw.Transactions {
		switch {
		case tx.Hash == nil:
			err = missing("tx_hash")
		case tx.MsgTransfer == nil:
			err = missing("MsgTransfer")
		case tx.MsgRecvPacket == nil:
			err = missing("MsgRecvPacket")
		case tx.MsgAcknowledgement == nil:
			err = missing("MsgAcknowledgement")
		case tx.MsgTimeout == nil:
			err = missing("MsgTimeout")
		case tx.Data == nil:
			err = missing("tx_data")
		}
		if err != nil {
			err = errors.Wrapf(err, "transaction %d", i)
			return
		}

		block.Transactions = append(block.Transactions, Transaction{
			Hash: *tx.Hash,
			Counts: Counts{
				Transfer:        *tx.MsgTransfer,
				Receive:         *tx.MsgRecvPacket,
				Acknowledgement: *tx.MsgAcknowledgement,
				Timeout:         *tx.MsgTimeout,
			},
			Data: *tx.Data,
		})
	}

	return
}
