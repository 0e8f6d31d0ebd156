package report

import (
	"fmt"

	"github.com/warp-contracts/ibc-bench/src/analysis"
	"github.com/warp-contracts/ibc-bench/src/ledger"
	"github.com/warp-contracts/ibc-bench/src/relayer"
	"github.com/warp-contracts/ibc-bench/src/utils/stats"
)

// Benchmark configuration shown at the top of the report
type BenchmarkInfo struct {
	SrcChain   string
	DstChain   string
	Validators int
	Users      int
	TxsPerUser int
	MsgsPerTx  int

	// Seconds
	SubmissionTime     int
	WaitingTime        int
	DataCollectionTime int
}

func SummarySection(info BenchmarkInfo) Section {
	return Section{
		"[+] Benchmark configuration summary:\n",
		fmt.Sprintf(" Source chain: %s", info.SrcChain),
		fmt.Sprintf(" Destination chain: %s", info.DstChain),
		fmt.Sprintf(" Number of validators in each chain: %d", info.Validators),
		fmt.Sprintf(" Number of user accounts: %d", info.Users),
		fmt.Sprintf(" Transactions submitted per user: %d", info.TxsPerUser),
		fmt.Sprintf(" Total number of transactions: %d", info.TxsPerUser*info.Users),
		fmt.Sprintf(" Transfer messages per transaction: %d", info.MsgsPerTx),
		fmt.Sprintf(" Total number of transfer messages: %d\n", info.MsgsPerTx*info.TxsPerUser*info.Users),
		fmt.Sprintf(" IBC transfers submission (time elapsed): %s", PrettyElapsed(info.SubmissionTime)),
		fmt.Sprintf(" Time waiting for empty blocks at the end of benchmark: %s", PrettyElapsed(info.WaitingTime)),
		fmt.Sprintf(" Blockchain data collection (time elapsed): %s", PrettyElapsed(info.DataCollectionTime)),
		fmt.Sprintf(" Total time elapsed: %s", PrettyElapsed(info.SubmissionTime+info.WaitingTime+info.DataCollectionTime)),
	}
}

func DistributionSection(d analysis.Distribution) Section {
	out := Section{fmt.Sprintf("[+] Transaction distribution analysis for %s:\n", d.ChainId)}
	for _, entry := range d.Entries {
		out = append(out, fmt.Sprintf(" %d tx(s): %d block(s)", entry.Transactions, entry.Blocks))
	}
	return out
}

func ThroughputSection(t analysis.Throughput) Section {
	return Section{
		fmt.Sprintf("[+] Throughput analysis for chain '%s':\n", t.ChainId),
		fmt.Sprintf(" Blocks finalized: %d", t.Blocks),
		"",
		fmt.Sprintf(" Avg. block time: %.3f seconds", t.AverageBlockTime),
		fmt.Sprintf(" Number of empty blocks: %d (%.2f%%)", t.EmptyBlocks, t.EmptyBlocksPercentage),
		"",
		fmt.Sprintf(" Avg. number of txs per block (counting empty blocks): %.2f", t.AverageTxsPerBlock),
		fmt.Sprintf(" Avg. number of txs per second(transfer, recv, ack): %.2f", t.TxsPerSecond),
		"",
		fmt.Sprintf(" Avg. number of messages per tx: %.2f", t.AverageMsgsPerTx),
		fmt.Sprintf(" Avg. number of messages per block (counting empty blocks): %.2f", t.AverageMsgsPerBlock),
		fmt.Sprintf(" Avg. number of messages per second (transfer, recv, ack, timeout): %.2f", t.MsgsPerSecond),
		fmt.Sprintf(" Avg. number of transfers per second: %.2f", t.TransfersPerSecond),
		"",
	}
}

func RoundTripSection(srcChain, dstChain string, trips []relayer.RoundTrip) Section {
	out := Section{fmt.Sprintf("[+] Round trip time analysis for chains '%s -> %s':\n", srcChain, dstChain)}

	summary := stats.Summarize(relayer.Durations(trips))
	if summary.IsEmpty() {
		return append(out, " No messages were fully delivered(transfer, recv, ack).")
	}

	return append(out,
		fmt.Sprintf(" Average round trip time: %s", FormatTime(summary.Average)),
		fmt.Sprintf(" Shortest round trip time: %s", FormatTime(summary.Min)),
		fmt.Sprintf(" Longest round trip time: %s", FormatTime(summary.Max)),
	)
}

func SuccessRateSection(r analysis.SuccessRate) Section {
	percent := func(n int) string {
		return fmt.Sprintf("%d (%.2f%%)", n, r.Percentage(n))
	}

	out := Section{
		fmt.Sprintf("[+] Success rate analysis for channel '%s -> %s':\n", r.SrcChain, r.DstChain),
		fmt.Sprintf(" IBC transfers submitted to '%s': %d", r.SrcChain, r.Expected),
		fmt.Sprintf(" 'Transfer' messages committed to '%s': %d", r.SrcChain, r.Transfers),
		fmt.Sprintf(" 'Receive' messages committed to '%s': %d", r.DstChain, r.Receives),
		fmt.Sprintf(" 'Acknowledgement' messages committed to '%s': %d", r.SrcChain, r.Acknowledgements),
		fmt.Sprintf(" 'Timeout' messages committed to '%s' (source chain): %d", r.SrcChain, r.Timeouts),
		"",
		" Transfers completed (transfer, recv, ack): " + percent(r.Finished),
		" Transfers partially completed (transfer, recv): " + percent(r.PartiallyFinished),
		" Transfers only initiated (transfer): " + percent(r.Initiated),
		" Transfers not initiated (submitted but not committed): " + percent(r.NotInitiated),
		" Timed out transfers: " + percent(r.TimedOut),
	}

	if len(r.Anomalies) > 0 {
		out = append(out, "")
		for _, anomaly := range r.Anomalies {
			out = append(out, fmt.Sprintf(" Warning: %s", anomaly))
		}
	}
	return out
}

// Average, shortest and longest value, N/A for empty series
func summaryTimes(summary stats.Summary) (avg, shortest, longest string) {
	if summary.IsEmpty() {
		return NotAvailable, NotAvailable, NotAvailable
	}
	return FormatTime(summary.Average), FormatTime(summary.Min), FormatTime(summary.Max)
}

func LatencySection(srcChain, dstChain string, latency relayer.Latency) Section {
	transferAvg, transferMin, transferMax := summaryTimes(relayer.Summarize(latency.Transfer))
	recvAvg, recvMin, recvMax := summaryTimes(relayer.Summarize(latency.Receive))
	ackAvg, ackMin, ackMax := summaryTimes(relayer.Summarize(latency.Acknowledgement))

	return Section{
		fmt.Sprintf("[+] IBC messages confirmation latency analysis for chains '%s -> %s':\n", srcChain, dstChain),
		" Avg. transfer message confirmation latency: " + transferAvg,
		" Shortest transfer latency observed: " + transferMin,
		" Longest transfer latency observed: " + transferMax,
		"",
		" Avg. recv message confirmation latency: " + recvAvg,
		" Shortest recv message confirmation latency: " + recvMin,
		" Longest recv message confirmation latency: " + recvMax,
		"",
		" Avg. acknowledgement message confirmation latency: " + ackAvg,
		" Shortest acknowledgement message confirmation latency: " + ackMin,
		" Longest acknowledgement message confirmation latency: " + ackMax,
	}
}

func SizeSection(s analysis.Size) Section {
	if s.Detailed {
		return detailedSizeSection(s)
	}

	out := Section{
		fmt.Sprintf("[+] Data analysis for chain '%s':\n", s.ChainId),
		fmt.Sprintf(" Collective size of all blocks (excl. empty blocks at the end): %s", FormatSize(float64(s.BlockBytes))),
		fmt.Sprintf(" Avg. block size (excl. empty blocks at the end): %s", FormatSize(s.AverageBlockSize)),
		fmt.Sprintf(" Number of transactions committed to the blockchain: %d", s.Transactions),
		fmt.Sprintf(" Number of messages committed in the blockchain: %d", s.Messages),
	}
	for _, kind := range ledger.MessageKinds {
		k := s.Kind(kind)
		out = append(out,
			"",
			fmt.Sprintf(" Number of transactions containing %s messages on %s: %d", kind, s.ChainId, k.Transactions),
			fmt.Sprintf(" Number of %s messages on %s: %d", kind, s.ChainId, k.Messages),
		)
	}
	return out
}

func detailedSizeSection(s analysis.Size) Section {
	out := Section{
		fmt.Sprintf("[+] Data analysis for chain '%s':\n", s.ChainId),
		fmt.Sprintf(" Number of blocks finalized: %d", s.Blocks),
		fmt.Sprintf(" Collective size of all blocks: %s", FormatSize(float64(s.BlockBytes))),
		fmt.Sprintf(" Avg. block size: %s", FormatSize(s.AverageBlockSize)),
		fmt.Sprintf(" Number of transactions committed to the blockchain: %d", s.Transactions),
		fmt.Sprintf(" Number of messages inside transactions: %d", s.Messages),
		fmt.Sprintf(" Collective size of all transactions: %s", FormatSize(float64(s.TxBytes))),
	}
	for _, kind := range ledger.MessageKinds {
		k := s.Kind(kind)
		out = append(out,
			"",
			fmt.Sprintf(" Number of transactions containing %s messages: %d", kind, k.Transactions),
		)
		if k.Transactions == 0 {
			continue
		}
		out = append(out,
			fmt.Sprintf(" Collective size of %s transactions: %s", kind, FormatSize(float64(k.Bytes))),
			fmt.Sprintf(" Avg. size of each %s tx: %s", kind, FormatSize(k.AverageTxSize)),
			fmt.Sprintf(" Number of %s messages: %d", kind, k.Messages),
			fmt.Sprintf(" Avg. size of each %s message: %s", kind, FormatSize(k.AverageMsgSize)),
			fmt.Sprintf(" Avg. number of %s messages per tx: %.2f", kind, k.AverageMsgsPerTx),
		)
	}
	return out
}
