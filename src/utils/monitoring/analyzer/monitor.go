package monitor_analyzer

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/warp-contracts/ibc-bench/src/utils/monitoring/report"
)

// Stores counters of a single analysis run
type Monitor struct {
	Report    report.Report
	collector *Collector
}

func NewMonitor(chains ...string) (self *Monitor) {
	self = new(Monitor)

	self.Report = report.Report{
		Run:      &report.RunReport{},
		Analyzer: &report.AnalyzerReport{},
	}
	self.Report.Run.State.StartTimestamp.Store(time.Now().Unix())

	self.collector = NewCollector(chains...).WithMonitor(self)
	return
}

func (self *Monitor) GetReport() *report.Report {
	self.Report.Run.State.UpForSeconds.Store(uint64(time.Now().Unix() - self.Report.Run.State.StartTimestamp.Load()))
	return &self.Report
}

func (self *Monitor) GetPrometheusCollector() (collector prometheus.Collector) {
	return self.collector
}

func (self *Monitor) IsOK() bool {
	return self.Report.Analyzer.Errors.Anomalies.Load() == 0
}

// Writes all counters in the node-exporter textfile format
func (self *Monitor) WriteTextfile(path string) (err error) {
	// Refresh uptime
	self.GetReport()

	registry := prometheus.NewRegistry()
	err = registry.Register(self.GetPrometheusCollector())
	if err != nil {
		return errors.Wrap(err, "failed to register collector")
	}

	err = prometheus.WriteToTextfile(path, registry)
	if err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return
}
