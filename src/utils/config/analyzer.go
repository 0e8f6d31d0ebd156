package config

import (
	"github.com/spf13/viper"
)

type Analyzer struct {
	// Benchmark report, written into the data directory
	ReportFileName string

	// Per round trip details, written into the data directory
	RoundTripFileName string

	// Prometheus textfile with the headline results
	MetricsFileName string

	// Is the metrics textfile written
	MetricsEnabled bool

	// Number of leading characters of a relayer log line holding the timestamp
	TimestampWidth int

	// Analyses run concurrently on this many workers
	MaxWorkers int

	// Compare declared message counts with the decoded transaction body
	VerifyPayloads bool
}

func setAnalyzerDefaults() {
	viper.SetDefault("Analyzer.ReportFileName", "benchmarking_report.txt")
	viper.SetDefault("Analyzer.RoundTripFileName", "round_trip_times.txt")
	viper.SetDefault("Analyzer.MetricsFileName", "benchmark_metrics.prom")
	viper.SetDefault("Analyzer.MetricsEnabled", "true")
	viper.SetDefault("Analyzer.TimestampWidth", "27")
	viper.SetDefault("Analyzer.MaxWorkers", "4")
	viper.SetDefault("Analyzer.VerifyPayloads", "true")
}
