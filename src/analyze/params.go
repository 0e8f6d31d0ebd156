package analyze

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/warp-contracts/ibc-bench/src/analysis"
)

// Parameters of a single benchmark analysis
type Params struct {
	// Directory with block data and relayer logs, outputs are written here too
	DataDir string

	SrcChain string
	DstChain string

	// Node RPC queried for the validator count, unless Validators is set
	NodeAddress string
	Validators  int

	Users      int
	TxsPerUser int
	MsgsPerTx  int

	// Decode payloads for per kind byte sizes
	DetailedSize bool

	// Elapsed seconds of the benchmark phases
	SubmissionTime     int
	WaitingTime        int
	DataCollectionTime int

	// Number of blocks used for throughput, 0 means all
	SrcCutoff int
	DstCutoff int
}

func (self *Params) Validate() (err error) {
	switch {
	case self.DataDir == "":
		err = errors.Wrap(analysis.ErrInvalidParams, "data directory is required")
	case self.SrcChain == "" || self.DstChain == "":
		err = errors.Wrap(analysis.ErrInvalidParams, "source and destination chain ids are required")
	case self.Validators <= 0 && self.NodeAddress == "":
		err = errors.Wrap(analysis.ErrInvalidParams, "node address is required when validator count isn't given")
	case self.SubmissionTime < 0 || self.WaitingTime < 0 || self.DataCollectionTime < 0:
		err = errors.Wrap(analysis.ErrInvalidParams, "elapsed times can't be negative")
	}
	if err != nil {
		return
	}

	_, err = self.ExpectedTransfers()
	return
}

func (self *Params) ExpectedTransfers() (int, error) {
	return analysis.ExpectedTransfers(self.Users, self.TxsPerUser, self.MsgsPerTx)
}

func (self *Params) path(name string) string {
	return filepath.Join(self.DataDir, name)
}

func (self *Params) BlockDataPath(chain string) string {
	return self.path("block_data_" + chain + ".txt")
}

func (self *Params) ChainLogPath(chain string) string {
	return self.path("logs_" + chain + ".txt")
}

func (self *Params) RelayerLogPath() string {
	return self.path("hermes_log.txt")
}
