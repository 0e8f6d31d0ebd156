package relayer

import (
	"github.com/gammazero/deque"
	"github.com/warp-contracts/ibc-bench/src/utils/stats"
)

// Confirmation latency of a single transaction
type Observation struct {
	Hash  string
	Delay float64
}

func Delays(observations []Observation) (out []float64) {
	out = make([]float64, len(observations))
	for i, o := range observations {
		out[i] = o.Delay
	}
	return
}

func Summarize(observations []Observation) stats.Summary {
	return stats.Summarize(Delays(observations))
}

// Pairs commit-wait events with commit-retrieved events.
// Events are joined by tracking id, FIFO within the same id. Lines without an id share one queue.
// Each retrieved delay applies to every hash of the matching wait line.
func TransferLatency(events []Event) (out []Observation) {
	retrieved := make(map[string]*deque.Deque[*Event])
	for i := range events {
		if events[i].Role != CommitRetrieved {
			continue
		}
		queue, ok := retrieved[events[i].TrackingId]
		if !ok {
			queue = deque.New[*Event]()
			retrieved[events[i].TrackingId] = queue
		}
		queue.PushBack(&events[i])
	}

	for i := range events {
		if events[i].Role != CommitWait {
			continue
		}
		queue, ok := retrieved[events[i].TrackingId]
		if !ok || queue.Len() == 0 {
			// No confirmation left for this batch
			continue
		}
		confirmation := queue.PopFront()
		for _, hash := range events[i].Hashes {
			out = append(out, Observation{Hash: hash, Delay: confirmation.Delay})
		}
	}
	return
}

// Latency of every hash listed in confirmed lines
func ConfirmedLatency(events []Event) (out []Observation) {
	for i := range events {
		if events[i].Role != Confirmed || !events[i].HasDelay {
			continue
		}
		for _, hash := range events[i].Hashes {
			out = append(out, Observation{Hash: hash, Delay: events[i].Delay})
		}
	}
	return
}

type Latency struct {
	Transfer        []Observation
	Receive         []Observation
	Acknowledgement []Observation
}

// Transfer and acknowledgement latency come from the source chain log,
// receive latency from the destination chain log.
func CalculateLatency(srcEvents, dstEvents []Event) Latency {
	return Latency{
		Transfer:        TransferLatency(srcEvents),
		Receive:         ConfirmedLatency(dstEvents),
		Acknowledgement: ConfirmedLatency(srcEvents),
	}
}
