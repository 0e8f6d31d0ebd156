package ledger

// Kind of IBC message counted in a transaction
type MessageKind int

const (
	Transfer MessageKind = iota
	Receive
	Acknowledgement
	Timeout
)

// Fixed priority order, also used to break ties when classifying
var MessageKinds = []MessageKind{Transfer, Receive, Acknowledgement, Timeout}

func (self MessageKind) String() string {
	switch self {
	case Transfer:
		return "transfer"
	case Receive:
		return "recv"
	case Acknowledgement:
		return "ack"
	case Timeout:
		return "timeout"
	}
	return "unknown"
}

// Protobuf type url of the message in a Cosmos SDK transaction body
func (self MessageKind) TypeUrl() string {
	switch self {
	case Transfer:
		return "/ibc.applications.transfer.v1.MsgTransfer"
	case Receive:
		return "/ibc.core.channel.v1.MsgRecvPacket"
	case Acknowledgement:
		return "/ibc.core.channel.v1.MsgAcknowledgement"
	case Timeout:
		return "/ibc.core.channel.v1.MsgTimeout"
	}
	return ""
}

// Number of messages of each kind
type Counts struct {
	Transfer        int
	Receive         int
	Acknowledgement int
	Timeout         int
}

func (self Counts) Get(kind MessageKind) int {
	switch kind {
	case Transfer:
		return self.Transfer
	case Receive:
		return self.Receive
	case Acknowledgement:
		return self.Acknowledgement
	case Timeout:
		return self.Timeout
	}
	return 0
}

func (self *Counts) Inc(kind MessageKind, n int) {
	switch kind {
	case Transfer:
		self.Transfer += n
	case Receive:
		self.Receive += n
	case Acknowledgement:
		self.Acknowledgement += n
	case Timeout:
		self.Timeout += n
	}
}

func (self Counts) Add(other Counts) Counts {
	return Counts{
		Transfer:        self.Transfer + other.Transfer,
		Receive:         self.Receive + other.Receive,
		Acknowledgement: self.Acknowledgement + other.Acknowledgement,
		Timeout:         self.Timeout + other.Timeout,
	}
}

func (self Counts) Total() int {
	return self.Transfer + self.Receive + self.Acknowledgement + self.Timeout
}
