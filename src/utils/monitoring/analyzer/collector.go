package monitor_analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	// Run
	StartTimestamp *prometheus.Desc
	UpForSeconds   *prometheus.Desc

	// Ingestion
	BlocksIngested       *prometheus.Desc
	TransactionsIngested *prometheus.Desc
	LogLinesScanned      *prometheus.Desc
	EventsParsed         *prometheus.Desc

	// Results
	SourceMessagesPerSecond      *prometheus.Desc
	DestinationMessagesPerSecond *prometheus.Desc
	TransferLatencySeconds       *prometheus.Desc
	RecvLatencySeconds           *prometheus.Desc
	AckLatencySeconds            *prometheus.Desc
	RoundTrips                   *prometheus.Desc
	RoundTripAverageSeconds      *prometheus.Desc
	Finished                     *prometheus.Desc
	PartiallyFinished            *prometheus.Desc
	Initiated                    *prometheus.Desc
	NotInitiated                 *prometheus.Desc
	TimedOut                     *prometheus.Desc

	// Errors
	LogLinesSkipped     *prometheus.Desc
	InvalidTimestamps   *prometheus.Desc
	UnknownHashes       *prometheus.Desc
	PayloadMismatches   *prometheus.Desc
	PayloadDecodeErrors *prometheus.Desc
	Anomalies           *prometheus.Desc
}

func NewCollector(chains ...string) *Collector {
	labels := prometheus.Labels{
		"app": "ibc-bench",
	}
	if len(chains) == 2 {
		labels["src_chain"] = chains[0]
		labels["dst_chain"] = chains[1]
	}

	return &Collector{
		// Run
		StartTimestamp: prometheus.NewDesc("start_timestamp", "", nil, labels),
		UpForSeconds:   prometheus.NewDesc("up_for_seconds", "", nil, labels),

		// Ingestion
		BlocksIngested:       prometheus.NewDesc("blocks_ingested", "", nil, labels),
		TransactionsIngested: prometheus.NewDesc("transactions_ingested", "", nil, labels),
		LogLinesScanned:      prometheus.NewDesc("log_lines_scanned", "", nil, labels),
		EventsParsed:         prometheus.NewDesc("events_parsed", "", nil, labels),

		// Results
		SourceMessagesPerSecond:      prometheus.NewDesc("source_messages_per_second", "", nil, labels),
		DestinationMessagesPerSecond: prometheus.NewDesc("destination_messages_per_second", "", nil, labels),
		TransferLatencySeconds:       prometheus.NewDesc("transfer_latency_seconds", "", nil, labels),
		RecvLatencySeconds:           prometheus.NewDesc("recv_latency_seconds", "", nil, labels),
		AckLatencySeconds:            prometheus.NewDesc("ack_latency_seconds", "", nil, labels),
		RoundTrips:                   prometheus.NewDesc("round_trips", "", nil, labels),
		RoundTripAverageSeconds:      prometheus.NewDesc("round_trip_average_seconds", "", nil, labels),
		Finished:                     prometheus.NewDesc("transfers_finished", "", nil, labels),
		PartiallyFinished:            prometheus.NewDesc("transfers_partially_finished", "", nil, labels),
		Initiated:                    prometheus.NewDesc("transfers_initiated", "", nil, labels),
		NotInitiated:                 prometheus.NewDesc("transfers_not_initiated", "", nil, labels),
		TimedOut:                     prometheus.NewDesc("transfers_timed_out", "", nil, labels),

		// Errors
		LogLinesSkipped:     prometheus.NewDesc("error_log_lines_skipped", "", nil, labels),
		InvalidTimestamps:   prometheus.NewDesc("error_invalid_timestamps", "", nil, labels),
		UnknownHashes:       prometheus.NewDesc("error_unknown_hashes", "", nil, labels),
		PayloadMismatches:   prometheus.NewDesc("error_payload_mismatches", "", nil, labels),
		PayloadDecodeErrors: prometheus.NewDesc("error_payload_decode", "", nil, labels),
		Anomalies:           prometheus.NewDesc("error_success_rate_anomalies", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	// Run
	ch <- self.StartTimestamp
	ch <- self.UpForSeconds

	// Ingestion
	ch <- self.BlocksIngested
	ch <- self.TransactionsIngested
	ch <- self.LogLinesScanned
	ch <- self.EventsParsed

	// Results
	ch <- self.SourceMessagesPerSecond
	ch <- self.DestinationMessagesPerSecond
	ch <- self.TransferLatencySeconds
	ch <- self.RecvLatencySeconds
	ch <- self.AckLatencySeconds
	ch <- self.RoundTrips
	ch <- self.RoundTripAverageSeconds
	ch <- self.Finished
	ch <- self.PartiallyFinished
	ch <- self.Initiated
	ch <- self.NotInitiated
	ch <- self.TimedOut

	// Errors
	ch <- self.LogLinesSkipped
	ch <- self.InvalidTimestamps
	ch <- self.UnknownHashes
	ch <- self.PayloadMismatches
	ch <- self.PayloadDecodeErrors
	ch <- self.Anomalies
}

// Collect implements required collect function for all promehteus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	run := &self.monitor.Report.Run.State
	state := &self.monitor.Report.Analyzer.State
	errs := &self.monitor.Report.Analyzer.Errors

	// Run
	ch <- prometheus.MustNewConstMetric(self.StartTimestamp, prometheus.GaugeValue, float64(run.StartTimestamp.Load()))
	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(run.UpForSeconds.Load()))

	// Ingestion
	ch <- prometheus.MustNewConstMetric(self.BlocksIngested, prometheus.CounterValue, float64(state.BlocksIngested.Load()))
	ch <- prometheus.MustNewConstMetric(self.TransactionsIngested, prometheus.CounterValue, float64(state.TransactionsIngested.Load()))
	ch <- prometheus.MustNewConstMetric(self.LogLinesScanned, prometheus.CounterValue, float64(state.LogLinesScanned.Load()))
	ch <- prometheus.MustNewConstMetric(self.EventsParsed, prometheus.CounterValue, float64(state.EventsParsed.Load()))

	// Results
	ch <- prometheus.MustNewConstMetric(self.SourceMessagesPerSecond, prometheus.GaugeValue, state.SourceMessagesPerSecond.Load())
	ch <- prometheus.MustNewConstMetric(self.DestinationMessagesPerSecond, prometheus.GaugeValue, state.DestinationMessagesPerSecond.Load())
	ch <- prometheus.MustNewConstMetric(self.TransferLatencySeconds, prometheus.GaugeValue, state.TransferLatencySeconds.Load())
	ch <- prometheus.MustNewConstMetric(self.RecvLatencySeconds, prometheus.GaugeValue, state.RecvLatencySeconds.Load())
	ch <- prometheus.MustNewConstMetric(self.AckLatencySeconds, prometheus.GaugeValue, state.AckLatencySeconds.Load())
	ch <- prometheus.MustNewConstMetric(self.RoundTrips, prometheus.GaugeValue, float64(state.RoundTrips.Load()))
	ch <- prometheus.MustNewConstMetric(self.RoundTripAverageSeconds, prometheus.GaugeValue, state.RoundTripAverageSeconds.Load())
	ch <- prometheus.MustNewConstMetric(self.Finished, prometheus.GaugeValue, float64(state.Finished.Load()))
	ch <- prometheus.MustNewConstMetric(self.PartiallyFinished, prometheus.GaugeValue, float64(state.PartiallyFinished.Load()))
	ch <- prometheus.MustNewConstMetric(self.Initiated, prometheus.GaugeValue, float64(state.Initiated.Load()))
	ch <- prometheus.MustNewConstMetric(self.NotInitiated, prometheus.GaugeValue, float64(state.NotInitiated.Load()))
	ch <- prometheus.MustNewConstMetric(self.TimedOut, prometheus.GaugeValue, float64(state.TimedOut.Load()))

	// Errors
	ch <- prometheus.MustNewConstMetric(self.LogLinesSkipped, prometheus.CounterValue, float64(errs.LogLinesSkipped.Load()))
	ch <- prometheus.MustNewConstMetric(self.InvalidTimestamps, prometheus.CounterValue, float64(errs.InvalidTimestamps.Load()))
	ch <- prometheus.MustNewConstMetric(self.UnknownHashes, prometheus.CounterValue, float64(errs.UnknownHashes.Load()))
	ch <- prometheus.MustNewConstMetric(self.PayloadMismatches, prometheus.CounterValue, float64(errs.PayloadMismatches.Load()))
	ch <- prometheus.MustNewConstMetric(self.PayloadDecodeErrors, prometheus.CounterValue, float64(errs.PayloadDecodeErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.Anomalies, prometheus.CounterValue, float64(errs.Anomalies.Load()))
}
