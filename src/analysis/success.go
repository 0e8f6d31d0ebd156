package analysis

import (
	"github.com/pkg/errors"
	"github.com/warp-contracts/ibc-bench/src/ledger"
)

type Anomaly string

const (
	AnomalyAcksExceedTransfers     Anomaly = "acknowledgements exceed transfers"
	AnomalyRecvsBelowAcks          Anomaly = "receives below acknowledgements"
	AnomalyTransfersExceedExpected Anomaly = "transfers exceed submitted attempts"
)

// Mutually exclusive completion states of submitted transfers
type Buckets struct {
	Finished          int
	PartiallyFinished int
	Initiated         int
	NotInitiated      int
	TimedOut          int
}

func (self Buckets) Total() int {
	return self.Finished + self.PartiallyFinished + self.Initiated + self.NotInitiated + self.TimedOut
}

type SuccessRate struct {
	SrcChain string
	DstChain string

	// Submitted transfer attempts
	Expected int

	Transfers        int
	Receives         int
	Acknowledgements int
	Timeouts         int

	Buckets
	Anomalies []Anomaly
}

func (self *SuccessRate) Percentage(n int) float64 {
	return float64(n) * 100 / float64(self.Expected)
}

// Number of submitted transfer messages
func ExpectedTransfers(users, txsPerUser, msgsPerTx int) (int, error) {
	expected := users * txsPerUser * msgsPerTx
	if expected <= 0 {
		return 0, errors.Wrapf(ErrInvalidParams, "expected transfers must be positive: %d users x %d txs x %d msgs", users, txsPerUser, msgsPerTx)
	}
	return expected, nil
}

// Reconciles source and destination counts into completion buckets
func ClassifyCompletion(transfers, recvs, acks, timeouts, expected int) (out Buckets) {
	out.TimedOut = timeouts

	out.Finished = acks
	if acks > transfers {
		out.Finished = transfers
	}

	out.PartiallyFinished = recvs - acks
	if recvs > transfers {
		out.PartiallyFinished = transfers
	}

	// Receives whose transfer already timed out on the source chain
	if limit := transfers - acks - timeouts; out.PartiallyFinished > limit {
		out.PartiallyFinished = limit
	}

	out.Initiated = transfers - (out.PartiallyFinished + out.Finished + out.TimedOut)
	out.NotInitiated = expected - transfers
	return
}

func CalculateSuccessRate(src, dst []ledger.Block, expected int) (out SuccessRate, err error) {
	if expected <= 0 {
		err = errors.Wrapf(ErrInvalidParams, "expected transfers must be positive, got %d", expected)
		return
	}
	if len(src) == 0 || len(dst) == 0 {
		err = errors.Wrap(ledger.ErrEmptyLedger, "success rate")
		return
	}

	srcCounts := ledger.CountMessages(src)
	dstCounts := ledger.CountMessages(dst)

	out.SrcChain = src[0].ChainId
	out.DstChain = dst[0].ChainId
	out.Expected = expected
	out.Transfers = srcCounts.Transfer
	out.Receives = dstCounts.Receive
	out.Acknowledgements = srcCounts.Acknowledgement
	out.Timeouts = srcCounts.Timeout
	out.Buckets = ClassifyCompletion(out.Transfers, out.Receives, out.Acknowledgements, out.Timeouts, expected)

	if out.Acknowledgements > out.Transfers {
		out.Anomalies = append(out.Anomalies, AnomalyAcksExceedTransfers)
	}
	if out.Receives < out.Acknowledgements {
		out.Anomalies = append(out.Anomalies, AnomalyRecvsBelowAcks)
	}
	if out.Transfers > expected {
		out.Anomalies = append(out.Anomalies, AnomalyTransfersExceedExpected)
	}
	return
}
