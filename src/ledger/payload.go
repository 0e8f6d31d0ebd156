package ledger

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/ibc-bench/src/utils/logger"
	"github.com/warp-contracts/ibc-bench/src/utils/monitoring/report"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// Decodes transaction payloads and cross-checks their messages against the declared counts
type Inspector struct {
	log     *logrus.Entry
	monitor *report.AnalyzerReport
}

func NewInspector() (self *Inspector) {
	self = new(Inspector)
	self.log = logger.NewSublogger("payload")
	return
}

func (self *Inspector) WithMonitor(monitor *report.AnalyzerReport) *Inspector {
	self.monitor = monitor
	return self
}

// Counts IBC messages in a raw Cosmos SDK transaction
func DecodeCounts(txBytes []byte) (counts Counts, err error) {
	var raw txtypes.TxRaw
	err = raw.Unmarshal(txBytes)
	if err != nil {
		err = errors.Wrap(err, "failed to unmarshal tx raw")
		return
	}

	var body txtypes.TxBody
	err = body.Unmarshal(raw.BodyBytes)
	if err != nil {
		err = errors.Wrap(err, "failed to unmarshal tx body")
		return
	}

	for _, msg := range body.Messages {
		if msg == nil {
			continue
		}
		for _, kind := range MessageKinds {
			if msg.TypeUrl == kind.TypeUrl() {
				counts.Inc(kind, 1)
				break
			}
		}
	}
	return
}

func (self *Inspector) decode(tx *Transaction) (counts Counts, err error) {
	bz, err := tx.Bytes()
	if err != nil {
		return
	}
	return DecodeCounts(bz)
}

// Verifies every transaction of the chain. Problems are only reported, never fatal.
// Returns number of transactions whose payload disagrees with the declared counts.
func (self *Inspector) Verify(blocks []Block) (mismatches int) {
	undecodable := 0
	for i := range blocks {
		for j := range blocks[i].Transactions {
			tx := &blocks[i].Transactions[j]

			decoded, err := self.decode(tx)
			if err != nil {
				undecodable++
				if self.monitor != nil {
					self.monitor.Errors.PayloadDecodeErrors.Inc()
				}
				self.log.WithError(err).WithField("tx", tx.Hash).Debug("Failed to decode payload")
				continue
			}

			if decoded == tx.Counts {
				continue
			}

			mismatches++
			if self.monitor != nil {
				self.monitor.Errors.PayloadMismatches.Inc()
			}
			self.log.WithField("chain", blocks[i].ChainId).
				WithField("tx", tx.Hash).
				WithField("declared", tx.Counts).
				WithField("decoded", decoded).
				Warn("Payload doesn't match declared message counts")
		}
	}

	if undecodable > 0 {
		self.log.WithField("chain", blocks[0].ChainId).
			WithField("transactions", undecodable).
			Warn("Some payloads couldn't be decoded")
	}
	return
}
