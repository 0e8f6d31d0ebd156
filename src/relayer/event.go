package relayer

import "time"

// What a relayer log line reports
type Role int

const (
	Unknown Role = iota

	// broadcast_tx_sync on the destination chain, carries receive messages
	DestinationBroadcast

	// broadcast_tx_sync on the source chain, carries acknowledgements
	SourceBroadcast

	// SendPacket event of a transfer transaction
	PacketSend

	// Batch of transactions confirmed after a delay
	Confirmed

	// Relayer started waiting for block commits of a batch
	CommitWait

	// Block commits of a batch were retrieved
	CommitRetrieved
)

func (self Role) String() string {
	switch self {
	case DestinationBroadcast:
		return "destination_broadcast"
	case SourceBroadcast:
		return "source_broadcast"
	case PacketSend:
		return "packet_send"
	case Confirmed:
		return "confirmed"
	case CommitWait:
		return "commit_wait"
	case CommitRetrieved:
		return "commit_retrieved"
	}
	return "unknown"
}

// Timestamp as found in the log and its parsed value
type Stamp struct {
	Raw  string
	Time time.Time

	// False if Raw couldn't be parsed, Time is zero then
	Valid bool
}

type Event struct {
	Stamp
	Role   Role
	Hashes []string

	// Seconds, valid if HasDelay
	Delay    float64
	HasDelay bool

	// Empty if the line carries no id= token
	TrackingId string
}
