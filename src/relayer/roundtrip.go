package relayer

import (
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/ibc-bench/src/ledger"
	"github.com/warp-contracts/ibc-bench/src/utils/logger"
	"github.com/warp-contracts/ibc-bench/src/utils/monitoring/report"
	"github.com/warp-contracts/ibc-bench/src/utils/stats"
)

// One message followed from transfer to acknowledgement confirmation
type RoundTrip struct {
	TransferBroadcast Stamp
	RecvBroadcast     Stamp
	AckBroadcast      Stamp
	AckConfirmation   Stamp

	// Seconds between transfer broadcast and acknowledgement confirmation
	Duration float64
}

func Durations(trips []RoundTrip) (out []float64) {
	out = make([]float64, len(trips))
	for i := range trips {
		out[i] = trips[i].Duration
	}
	return
}

// Acknowledgement broadcast joined with its confirmation
type ackPair struct {
	broadcast    Stamp
	confirmation Stamp
}

// Joins broadcast and confirmation events into round trips
type Correlator struct {
	log     *logrus.Entry
	monitor *report.AnalyzerReport

	srcTxs ledger.TxLookup
	dstTxs ledger.TxLookup
}

func NewCorrelator(srcTxs, dstTxs ledger.TxLookup) (self *Correlator) {
	self = new(Correlator)
	self.log = logger.NewSublogger("correlator")
	self.srcTxs = srcTxs
	self.dstTxs = dstTxs
	return
}

func (self *Correlator) WithMonitor(v *report.AnalyzerReport) *Correlator {
	self.monitor = v
	return self
}

// Number of messages of the kind in the transaction, 0 for unknown hashes
func (self *Correlator) count(lookup ledger.TxLookup, hash string, kind ledger.MessageKind) int {
	n, ok := lookup.Count(hash, kind)
	if !ok {
		if self.monitor != nil {
			self.monitor.Errors.UnknownHashes.Inc()
		}
		self.log.WithField("hash", hash).WithField("kind", kind.String()).Warn("Unknown tx hash, skipping")
		return 0
	}
	return n
}

// Round trip durations need a parsed timestamp
func (self *Correlator) hasTime(event *Event) bool {
	if event.Valid {
		return true
	}
	switch event.Role {
	case PacketSend, DestinationBroadcast, SourceBroadcast, Confirmed:
		self.log.WithField("role", event.Role.String()).
			WithField("timestamp", event.Raw).
			Warn("Event without a valid timestamp, excluded from round trips")
	}
	return false
}

func (self *Correlator) expand(stamp Stamp, n int, out []Stamp) []Stamp {
	for i := 0; i < n; i++ {
		out = append(out, stamp)
	}
	return out
}

// Correlates events parsed from the full relayer log.
// Message instances of different stages are aligned by position.
func (self *Correlator) Correlate(events []Event) (out []RoundTrip) {
	var (
		transfers  []Stamp
		recvs      []Stamp
		ackPairs   []ackPair
		ackHashes  = make(map[string]struct{})
		broadcasts []*Event
	)

	// Broadcasts and packet sends
	for i := range events {
		event := &events[i]
		if !self.hasTime(event) {
			continue
		}
		switch event.Role {
		case PacketSend:
			transfers = self.expand(event.Stamp, self.count(self.srcTxs, event.Hashes[0], ledger.Transfer), transfers)
		case DestinationBroadcast:
			recvs = self.expand(event.Stamp, self.count(self.dstTxs, event.Hashes[0], ledger.Receive), recvs)
		case SourceBroadcast:
			broadcasts = append(broadcasts, event)
			ackHashes[event.Hashes[0]] = struct{}{}
		}
	}

	// Confirmations of acknowledgement transactions, queued per hash
	confirmations := make(map[string]*deque.Deque[Stamp])
	for i := range events {
		if events[i].Role != Confirmed || !self.hasTime(&events[i]) {
			continue
		}
		for _, hash := range events[i].Hashes {
			if _, ok := ackHashes[hash]; !ok {
				continue
			}
			queue, ok := confirmations[hash]
			if !ok {
				queue = deque.New[Stamp]()
				confirmations[hash] = queue
			}
			queue.PushBack(events[i].Stamp)
		}
	}

	// N-th broadcast of a hash matches its n-th confirmation, unconfirmed broadcasts are dropped
	for _, broadcast := range broadcasts {
		hash := broadcast.Hashes[0]
		queue, ok := confirmations[hash]
		if !ok || queue.Len() == 0 {
			continue
		}
		pair := ackPair{broadcast: broadcast.Stamp, confirmation: queue.PopFront()}
		n := self.count(self.srcTxs, hash, ledger.Acknowledgement)
		for j := 0; j < n; j++ {
			ackPairs = append(ackPairs, pair)
		}
	}

	completed := min(len(transfers), len(recvs), len(ackPairs))
	out = make([]RoundTrip, completed)
	for i := 0; i < completed; i++ {
		out[i] = RoundTrip{
			TransferBroadcast: transfers[i],
			RecvBroadcast:     recvs[i],
			AckBroadcast:      ackPairs[i].broadcast,
			AckConfirmation:   ackPairs[i].confirmation,
			Duration:          ackPairs[i].confirmation.Time.Sub(transfers[i].Time).Seconds(),
		}
	}

	self.log.WithField("transfers", len(transfers)).
		WithField("recvs", len(recvs)).
		WithField("acks", len(ackPairs)).
		WithField("round_trips", completed).
		Debug("Correlated round trips")

	if self.monitor != nil {
		summary := stats.Summarize(Durations(out))
		self.monitor.State.RoundTrips.Store(uint64(completed))
		self.monitor.State.RoundTripAverageSeconds.Store(summary.Average)
	}
	return
}
