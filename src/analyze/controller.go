package analyze

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/warp-contracts/ibc-bench/src/analysis"
	"github.com/warp-contracts/ibc-bench/src/ledger"
	"github.com/warp-contracts/ibc-bench/src/node"
	"github.com/warp-contracts/ibc-bench/src/relayer"
	"github.com/warp-contracts/ibc-bench/src/report"
	"github.com/warp-contracts/ibc-bench/src/store"
	"github.com/warp-contracts/ibc-bench/src/utils/config"
	monitor_analyzer "github.com/warp-contracts/ibc-bench/src/utils/monitoring/analyzer"
	"github.com/warp-contracts/ibc-bench/src/utils/task"
)

var ErrCancelled = errors.New("analysis cancelled")

// Everything produced by a successful analysis
type Result struct {
	Info        report.BenchmarkInfo
	Report      *report.Report
	RoundTrips  []relayer.RoundTrip
	SuccessRate analysis.SuccessRate
	Validators  int
	RunId       string
}

// Inputs loaded from the data directory
type inputs struct {
	srcBlocks []ledger.Block
	dstBlocks []ledger.Block
	srcLog    []string
	dstLog    []string
	relayer   []string
}

// Main class that orchestrates everything
type Controller struct {
	*task.Task

	params     Params
	monitor    *monitor_analyzer.Monitor
	validators *node.ValidatorCounter
	store      *store.Store
	output     io.Writer

	Result *Result
}

func NewController(config *config.Config, params Params) (self *Controller, err error) {
	err = params.Validate()
	if err != nil {
		return
	}

	self = new(Controller)
	self.params = params
	self.output = os.Stdout
	self.monitor = monitor_analyzer.NewMonitor(params.SrcChain, params.DstChain)
	self.validators = node.NewValidatorCounter(config)

	if config.Database.Enabled {
		self.store = store.NewStore(config)
	}

	self.Task = task.NewTask(config, "analyze-controller").
		WithWorkerPool(config.Analyzer.MaxWorkers).
		WithSubtaskFunc(self.run)
	return
}

func (self *Controller) WithValidatorCounter(v *node.ValidatorCounter) *Controller {
	self.validators = v
	return self
}

// Where the report is printed, stdout by default
func (self *Controller) WithOutput(w io.Writer) *Controller {
	self.output = w
	return self
}

// Blocks until the analysis finishes or ctx is cancelled, then stops the controller.
// Returns ErrCancelled if the analysis didn't finish within the stop timeout.
func (self *Controller) Wait(ctx context.Context) error {
	select {
	case <-self.CtxRunning.Done():
	case <-ctx.Done():
	}

	self.StopWait()

	if self.CtxRunning.Err() == nil {
		return ErrCancelled
	}
	return self.Err()
}

func (self *Controller) GetMonitor() *monitor_analyzer.Monitor {
	return self.monitor
}

// Runs jobs on the worker pool and waits for all of them. Returns the first error.
func (self *Controller) parallel(jobs ...func() error) error {
	var (
		wg       sync.WaitGroup
		mtx      sync.Mutex
		firstErr error
	)

	wg.Add(len(jobs))
	for _, job := range jobs {
		job := job
		self.SubmitToWorker(func() {
			defer wg.Done()
			err := job()
			if err == nil {
				return
			}
			mtx.Lock()
			defer mtx.Unlock()
			if firstErr == nil {
				firstErr = err
			}
		})
	}
	wg.Wait()
	return firstErr
}

func (self *Controller) countValidators() (n int, err error) {
	if self.params.Validators > 0 {
		return self.params.Validators, nil
	}

	if self.validators.IsDisconnected() {
		_, err = self.validators.WithAddress(self.params.NodeAddress)
		if err != nil {
			return
		}
	}
	return self.validators.Count(self.Ctx)
}

func (self *Controller) load() (in inputs, err error) {
	state := self.monitor.Report.Analyzer
	err = self.parallel(
		func() (err error) {
			in.srcBlocks, err = ledger.LoadBlocks(self.params.BlockDataPath(self.params.SrcChain), state)
			return
		},
		func() (err error) {
			in.dstBlocks, err = ledger.LoadBlocks(self.params.BlockDataPath(self.params.DstChain), state)
			return
		},
		func() (err error) {
			in.srcLog, err = ledger.ReadLines(self.params.ChainLogPath(self.params.SrcChain))
			return
		},
		func() (err error) {
			in.dstLog, err = ledger.ReadLines(self.params.ChainLogPath(self.params.DstChain))
			return
		},
		func() (err error) {
			in.relayer, err = ledger.ReadLines(self.params.RelayerLogPath())
			return
		},
	)
	return
}

func (self *Controller) run() (err error) {
	self.Log.WithField("data_dir", self.params.DataDir).Info("Starting analysis")

	expected, err := self.params.ExpectedTransfers()
	if err != nil {
		return
	}

	validators, err := self.countValidators()
	if err != nil {
		return
	}

	in, err := self.load()
	if err != nil {
		return
	}

	if self.Config.Analyzer.VerifyPayloads {
		inspector := ledger.NewInspector().WithMonitor(self.monitor.Report.Analyzer)
		inspector.Verify(in.srcBlocks)
		inspector.Verify(in.dstBlocks)
	}

	if self.Ctx.Err() != nil {
		return ErrCancelled
	}

	srcTxs := ledger.NewTxLookup(in.srcBlocks)
	dstTxs := ledger.NewTxLookup(in.dstBlocks)

	parser := relayer.NewParser(self.params.SrcChain, self.params.DstChain).
		WithTimestampWidth(self.Config.Analyzer.TimestampWidth).
		WithMonitor(self.monitor.Report.Analyzer)

	// Each analysis writes only to its own slot
	var (
		srcDistribution analysis.Distribution
		dstDistribution analysis.Distribution
		srcThroughput   analysis.Throughput
		dstThroughput   analysis.Throughput
		srcSize         analysis.Size
		dstSize         analysis.Size
		successRate     analysis.SuccessRate
		latency         relayer.Latency
		roundTrips      []relayer.RoundTrip
	)

	err = self.parallel(
		func() error {
			srcDistribution = analysis.CalculateDistribution(self.params.SrcChain, in.srcBlocks)
			dstDistribution = analysis.CalculateDistribution(self.params.DstChain, in.dstBlocks)
			return nil
		},
		func() (err error) {
			srcThroughput, err = analysis.CalculateThroughput(in.srcBlocks, self.params.SrcCutoff)
			return
		},
		func() (err error) {
			dstThroughput, err = analysis.CalculateThroughput(in.dstBlocks, self.params.DstCutoff)
			return
		},
		func() (err error) {
			srcSize, err = analysis.CalculateSize(in.srcBlocks, self.params.SrcCutoff, self.params.DetailedSize)
			return
		},
		func() (err error) {
			dstSize, err = analysis.CalculateSize(in.dstBlocks, self.params.DstCutoff, self.params.DetailedSize)
			return
		},
		func() (err error) {
			successRate, err = analysis.CalculateSuccessRate(in.srcBlocks, in.dstBlocks, expected)
			return
		},
		func() error {
			latency = relayer.CalculateLatency(parser.Parse(in.srcLog), parser.Parse(in.dstLog))
			return nil
		},
		func() error {
			roundTrips = relayer.NewCorrelator(srcTxs, dstTxs).
				WithMonitor(self.monitor.Report.Analyzer).
				Correlate(parser.Parse(in.relayer))
			return nil
		},
	)
	if err != nil {
		return
	}

	for _, anomaly := range successRate.Anomalies {
		self.monitor.Report.Analyzer.Errors.Anomalies.Inc()
		self.Log.WithField("anomaly", string(anomaly)).Warn("Inconsistent message counts")
	}

	info := report.BenchmarkInfo{
		SrcChain:           self.params.SrcChain,
		DstChain:           self.params.DstChain,
		Validators:         validators,
		Users:              self.params.Users,
		TxsPerUser:         self.params.TxsPerUser,
		MsgsPerTx:          self.params.MsgsPerTx,
		SubmissionTime:     self.params.SubmissionTime,
		WaitingTime:        self.params.WaitingTime,
		DataCollectionTime: self.params.DataCollectionTime,
	}

	out := new(report.Report).Append(
		report.SummarySection(info),
		report.DistributionSection(srcDistribution),
		report.DistributionSection(dstDistribution),
		report.ThroughputSection(srcThroughput),
		report.ThroughputSection(dstThroughput),
		report.RoundTripSection(self.params.SrcChain, self.params.DstChain, roundTrips),
		report.SuccessRateSection(successRate),
		report.LatencySection(self.params.SrcChain, self.params.DstChain, latency),
		report.SizeSection(srcSize),
		report.SizeSection(dstSize),
	)

	self.updateMonitor(srcThroughput, dstThroughput, latency, successRate)

	// Nothing is written after a cancellation
	if self.Ctx.Err() != nil {
		return ErrCancelled
	}

	self.Result = &Result{
		Info:        info,
		Report:      out,
		RoundTrips:  roundTrips,
		SuccessRate: successRate,
		Validators:  validators,
	}

	return self.write()
}

func (self *Controller) updateMonitor(src, dst analysis.Throughput, latency relayer.Latency, success analysis.SuccessRate) {
	state := &self.monitor.Report.Analyzer.State
	state.SourceMessagesPerSecond.Store(src.MsgsPerSecond)
	state.DestinationMessagesPerSecond.Store(dst.MsgsPerSecond)
	state.TransferLatencySeconds.Store(relayer.Summarize(latency.Transfer).Average)
	state.RecvLatencySeconds.Store(relayer.Summarize(latency.Receive).Average)
	state.AckLatencySeconds.Store(relayer.Summarize(latency.Acknowledgement).Average)
	state.Finished.Store(uint64(success.Finished))
	state.PartiallyFinished.Store(uint64(max(success.PartiallyFinished, 0)))
	state.Initiated.Store(uint64(max(success.Initiated, 0)))
	state.NotInitiated.Store(uint64(max(success.NotInitiated, 0)))
	state.TimedOut.Store(uint64(success.TimedOut))
}

func (self *Controller) write() (err error) {
	_, err = self.Result.Report.WriteTo(self.output)
	if err != nil {
		return errors.Wrap(err, "failed to print report")
	}

	err = self.Result.Report.WriteFile(self.params.path(self.Config.Analyzer.ReportFileName))
	if err != nil {
		return
	}

	err = report.WriteRoundTripsFile(self.params.path(self.Config.Analyzer.RoundTripFileName), self.Result.RoundTrips)
	if err != nil {
		return
	}

	if self.Config.Analyzer.MetricsEnabled {
		err = self.monitor.WriteTextfile(self.params.path(self.Config.Analyzer.MetricsFileName))
		if err != nil {
			return
		}
	}

	if self.store != nil {
		err = self.save()
		if err != nil {
			return
		}
	}

	self.Log.WithField("round_trips", len(self.Result.RoundTrips)).
		WithField("report", self.params.path(self.Config.Analyzer.ReportFileName)).
		Info("Analysis finished")
	return
}

func (self *Controller) save() (err error) {
	err = self.store.Connect(self.Ctx)
	if err != nil {
		return
	}
	defer self.store.Close()

	run := store.NewRun(self.Result.Info, self.Result.SuccessRate, self.Result.RoundTrips, self.Result.Report.String())

	err = self.store.Save(self.Ctx, run)
	if err != nil {
		return
	}

	self.Result.RunId = run.ID
	return
}
