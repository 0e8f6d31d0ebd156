package report

import (
	"go.uber.org/atomic"
)

type AnalyzerErrors struct {
	// Relayer lines without a known marker or with a malformed body
	LogLinesSkipped atomic.Uint64 `json:"log_lines_skipped"`

	// Recognized relayer lines whose timestamp couldn't be parsed
	InvalidTimestamps atomic.Uint64 `json:"invalid_timestamps"`

	// Round trip events whose hash is not in the ledger
	UnknownHashes atomic.Uint64 `json:"unknown_hashes"`

	// Decoded payloads disagreeing with declared counts
	PayloadMismatches   atomic.Uint64 `json:"payload_mismatches"`
	PayloadDecodeErrors atomic.Uint64 `json:"payload_decode_errors"`

	// Success rate inconsistencies
	Anomalies atomic.Uint64 `json:"anomalies"`
}

type AnalyzerState struct {
	// Ingestion
	BlocksIngested       atomic.Uint64 `json:"blocks_ingested"`
	TransactionsIngested atomic.Uint64 `json:"transactions_ingested"`
	LogLinesScanned      atomic.Uint64 `json:"log_lines_scanned"`
	EventsParsed         atomic.Uint64 `json:"events_parsed"`

	// Throughput
	SourceMessagesPerSecond      atomic.Float64 `json:"source_messages_per_second"`
	DestinationMessagesPerSecond atomic.Float64 `json:"destination_messages_per_second"`

	// Latency
	TransferLatencySeconds atomic.Float64 `json:"transfer_latency_seconds"`
	RecvLatencySeconds     atomic.Float64 `json:"recv_latency_seconds"`
	AckLatencySeconds      atomic.Float64 `json:"ack_latency_seconds"`

	// Round trips
	RoundTrips              atomic.Uint64  `json:"round_trips"`
	RoundTripAverageSeconds atomic.Float64 `json:"round_trip_average_seconds"`

	// Completion buckets
	Finished          atomic.Uint64 `json:"finished"`
	PartiallyFinished atomic.Uint64 `json:"partially_finished"`
	Initiated         atomic.Uint64 `json:"initiated"`
	NotInitiated      atomic.Uint64 `json:"not_initiated"`
	TimedOut          atomic.Uint64 `json:"timed_out"`
}

type AnalyzerReport struct {
	State  AnalyzerState  `json:"state"`
	Errors AnalyzerErrors `json:"errors"`
}
