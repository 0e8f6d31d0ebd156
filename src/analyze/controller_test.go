package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/warp-contracts/ibc-bench/src/analysis"
	"github.com/warp-contracts/ibc-bench/src/ledger"
	"github.com/warp-contracts/ibc-bench/src/node"
	"github.com/warp-contracts/ibc-bench/src/report"
	"github.com/warp-contracts/ibc-bench/src/utils/config"
)

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

type ControllerTestSuite struct {
	suite.Suite
	dir    string
	start  time.Time
	config *config.Config
	params Params
}

type validatorsClient struct {
	total int
}

func (self *validatorsClient) Validators(ctx context.Context, height *int64, page, perPage *int) (*coretypes.ResultValidators, error) {
	return &coretypes.ResultValidators{Total: self.total}, nil
}

// Never answers until released
type stuckClient struct {
	release chan struct{}
}

func (self *stuckClient) Validators(ctx context.Context, height *int64, page, perPage *int) (*coretypes.ResultValidators, error) {
	<-self.release
	return nil, errors.New("released")
}

func (s *ControllerTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	s.config = config.Default()
	s.config.StopTimeout = 5 * time.Second
	s.config.Analyzer.VerifyPayloads = false

	s.params = Params{
		DataDir:    s.dir,
		SrcChain:   "chain-a",
		DstChain:   "chain-b",
		Validators: 4,
		Users:      1,
		TxsPerUser: 1,
		MsgsPerTx:  2,
	}

	s.writeBlocks("chain-a",
		s.block("chain-a", 0, 1000, s.tx("T1", 2, 0, 0)),
		s.block("chain-a", 5*time.Second, 2000, s.tx("A1", 0, 0, 2)),
		s.block("chain-a", 10*time.Second, 500),
	)
	s.writeBlocks("chain-b",
		s.block("chain-b", time.Second, 1500, s.tx("R1", 0, 2, 0)),
		s.block("chain-b", 6*time.Second, 500),
	)
	s.write("logs_chain-a.txt",
		"2024-03-01T12:00:00.400000Z DEBUG ThreadId(31) wait_for_block_commits: waiting for commit of tx hashes(s) T1 id=1",
		"2024-03-01T12:00:01.400000Z DEBUG ThreadId(31) wait_for_block_commits: retrieved 1 tx results after 1000ms id=1",
		"2024-03-01T12:00:06.000000Z  INFO ThreadId(30) transactions confirmed delay=250ms; A1",
	)
	s.write("logs_chain-b.txt",
		"2024-03-01T12:00:03.000000Z  INFO ThreadId(30) transactions confirmed delay=500ms; R1",
	)
	s.write("hermes_log.txt",
		`2024-03-01T12:00:00.500000Z DEBUG ThreadId(10) event="SendPacket" seq=1 T1 height=5`,
		"2024-03-01T12:00:02.000000Z  INFO ThreadId(22) send_tx_with_account_sequence_retry{id=chain-b}: broadcast_tx_sync: Response { hash: transaction::Hash(R1) }",
		"2024-03-01T12:00:04.000000Z  INFO ThreadId(22) send_tx_with_account_sequence_retry{id=chain-a}: broadcast_tx_sync: Response { hash: transaction::Hash(A1) }",
		"2024-03-01T12:00:06.000000Z  INFO ThreadId(30) transactions confirmed delay=250ms; A1",
	)
}

func (s *ControllerTestSuite) tx(hash string, transfer, recv, ack int) map[string]interface{} {
	return map[string]interface{}{
		"tx_hash":            hash,
		"MsgTransfer":        transfer,
		"MsgRecvPacket":      recv,
		"MsgAcknowledgement": ack,
		"MsgTimeout":         0,
		"tx_data":            "",
	}
}

func (s *ControllerTestSuite) block(chain string, offset time.Duration, size int64, txs ...map[string]interface{}) string {
	if txs == nil {
		txs = []map[string]interface{}{}
	}
	buf, err := json.Marshal(map[string]interface{}{
		"chain-id":         chain,
		"block_time":       s.start.Add(offset).Format(time.RFC3339Nano),
		"block_size":       size,
		"num_transactions": len(txs),
		"transactions":     txs,
	})
	require.Nil(s.T(), err)
	return string(buf)
}

func (s *ControllerTestSuite) write(name string, lines ...string) {
	err := os.WriteFile(filepath.Join(s.dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0o600)
	require.Nil(s.T(), err)
}

func (s *ControllerTestSuite) writeBlocks(chain string, lines ...string) {
	s.write("block_data_"+chain+".txt", lines...)
}

func (s *ControllerTestSuite) run(params Params) (*Controller, *bytes.Buffer) {
	controller, err := NewController(s.config, params)
	require.Nil(s.T(), err)

	var out bytes.Buffer
	controller.WithOutput(&out)

	err = controller.Start()
	require.Nil(s.T(), err)

	select {
	case <-controller.CtxRunning.Done():
	case <-time.After(10 * time.Second):
		s.T().Fatal("analysis didn't finish")
	}
	controller.StopWait()
	return controller, &out
}

func (s *ControllerTestSuite) TestFullAnalysis() {
	controller, out := s.run(s.params)
	require.Nil(s.T(), controller.Err())
	require.NotNil(s.T(), controller.Result)

	// Report printed and saved
	text := out.String()
	saved, err := os.ReadFile(filepath.Join(s.dir, "benchmarking_report.txt"))
	require.Nil(s.T(), err)
	assert.Equal(s.T(), text, string(saved))

	headers := []string{
		"[+] Benchmark configuration summary:",
		"[+] Transaction distribution analysis for chain-a:",
		"[+] Transaction distribution analysis for chain-b:",
		"[+] Throughput analysis for chain 'chain-a':",
		"[+] Throughput analysis for chain 'chain-b':",
		"[+] Round trip time analysis for chains 'chain-a -> chain-b':",
		"[+] Success rate analysis for channel 'chain-a -> chain-b':",
		"[+] IBC messages confirmation latency analysis for chains 'chain-a -> chain-b':",
		"[+] Data analysis for chain 'chain-a':",
		"[+] Data analysis for chain 'chain-b':",
	}
	last := -1
	for _, header := range headers {
		idx := strings.Index(text, header)
		require.Greater(s.T(), idx, last, header)
		last = idx
	}
	assert.Contains(s.T(), text, "Number of validators in each chain: 4")

	// Two messages completed the full round trip
	require.Len(s.T(), controller.Result.RoundTrips, 2)
	assert.Equal(s.T(), 5.5, controller.Result.RoundTrips[0].Duration)
	assert.Equal(s.T(), analysis.Buckets{Finished: 2}, controller.Result.SuccessRate.Buckets)

	trips, err := ledger.ReadLines(filepath.Join(s.dir, "round_trip_times.txt"))
	require.Nil(s.T(), err)
	require.Len(s.T(), trips, 3)
	assert.Equal(s.T(), report.RoundTripHeader, trips[0])
	assert.Equal(s.T(), "2024-03-01T12:00:00.500000Z;2024-03-01T12:00:02.000000Z;2024-03-01T12:00:04.000000Z;2024-03-01T12:00:06.000000Z;5.5", trips[1])

	// Metrics
	metrics, err := os.ReadFile(filepath.Join(s.dir, s.config.Analyzer.MetricsFileName))
	require.Nil(s.T(), err)
	assert.Contains(s.T(), string(metrics), `round_trips{app="ibc-bench",dst_chain="chain-b",src_chain="chain-a"} 2`)

	state := &controller.GetMonitor().Report.Analyzer.State
	assert.Equal(s.T(), uint64(5), state.BlocksIngested.Load())
	assert.Equal(s.T(), uint64(2), state.Finished.Load())
	assert.InDelta(s.T(), 1.0, state.TransferLatencySeconds.Load(), 1e-9)
	assert.True(s.T(), controller.GetMonitor().IsOK())
}

func (s *ControllerTestSuite) TestValidatorsFromNode() {
	params := s.params
	params.Validators = 0
	params.NodeAddress = "http://127.0.0.1:26657"

	controller, err := NewController(s.config, params)
	require.Nil(s.T(), err)
	controller.WithValidatorCounter(node.NewValidatorCounter(s.config).WithClient(&validatorsClient{total: 7})).
		WithOutput(&bytes.Buffer{})

	err = controller.Start()
	require.Nil(s.T(), err)
	<-controller.CtxRunning.Done()
	controller.StopWait()

	require.Nil(s.T(), controller.Err())
	assert.Equal(s.T(), 7, controller.Result.Validators)
}

func (s *ControllerTestSuite) TestMissingLog() {
	err := os.Remove(filepath.Join(s.dir, "hermes_log.txt"))
	require.Nil(s.T(), err)

	controller, _ := s.run(s.params)
	require.Error(s.T(), controller.Err())
	assert.Nil(s.T(), controller.Result)

	_, err = os.Stat(filepath.Join(s.dir, "benchmarking_report.txt"))
	assert.True(s.T(), os.IsNotExist(err))
}

func (s *ControllerTestSuite) TestEmptyLedger() {
	s.writeBlocks("chain-b")

	controller, _ := s.run(s.params)
	require.Error(s.T(), controller.Err())
	assert.True(s.T(), errors.Is(controller.Err(), ledger.ErrEmptyLedger))
}

func (s *ControllerTestSuite) TestInvalidParams() {
	params := s.params
	params.MsgsPerTx = 0
	_, err := NewController(s.config, params)
	assert.True(s.T(), errors.Is(err, analysis.ErrInvalidParams))

	params = s.params
	params.Validators = 0
	_, err = NewController(s.config, params)
	assert.True(s.T(), errors.Is(err, analysis.ErrInvalidParams))

	params = s.params
	params.DataDir = ""
	_, err = NewController(s.config, params)
	assert.True(s.T(), errors.Is(err, analysis.ErrInvalidParams))
}

func (s *ControllerTestSuite) TestCancelledBeforeFinish() {
	s.config.StopTimeout = 10 * time.Millisecond

	params := s.params
	params.Validators = 0
	params.NodeAddress = "http://127.0.0.1:26657"

	client := &stuckClient{release: make(chan struct{})}
	defer close(client.release)

	controller, err := NewController(s.config, params)
	require.Nil(s.T(), err)
	controller.WithValidatorCounter(node.NewValidatorCounter(s.config).WithClient(client)).
		WithOutput(&bytes.Buffer{})

	err = controller.Start()
	require.Nil(s.T(), err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = controller.Wait(ctx)
	assert.True(s.T(), errors.Is(err, ErrCancelled))
	assert.Nil(s.T(), controller.Result)

	_, err = os.Stat(filepath.Join(s.dir, "benchmarking_report.txt"))
	assert.True(s.T(), os.IsNotExist(err))
}

func (s *ControllerTestSuite) TestWaitReturnsResult() {
	controller, err := NewController(s.config, s.params)
	require.Nil(s.T(), err)
	controller.WithOutput(&bytes.Buffer{})

	err = controller.Start()
	require.Nil(s.T(), err)

	err = controller.Wait(context.Background())
	require.Nil(s.T(), err)
	require.NotNil(s.T(), controller.Result)
}
