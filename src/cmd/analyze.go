package cmd

import (
	"github.com/spf13/cobra"
	"github.com/warp-contracts/ibc-bench/src/analyze"
	"github.com/warp-contracts/ibc-bench/src/utils/logger"
)

var params analyze.Params

func init() {
	flags := analyzeCmd.Flags()
	flags.StringVar(&params.DataDir, "data-dir", ".", "Directory with block data and relayer logs")
	flags.StringVar(&params.SrcChain, "src-chain", "", "Source chain id")
	flags.StringVar(&params.DstChain, "dst-chain", "", "Destination chain id")
	flags.StringVar(&params.NodeAddress, "node", "http://127.0.0.1:26657", "RPC address of a node queried for the validator count")
	flags.IntVar(&params.Validators, "validators", 0, "Number of validators, skips the node query when set")
	flags.IntVar(&params.Users, "users", 0, "Number of user accounts")
	flags.IntVar(&params.TxsPerUser, "txs-per-user", 0, "Transactions submitted per user")
	flags.IntVar(&params.MsgsPerTx, "msgs-per-tx", 0, "Transfer messages per transaction")
	flags.BoolVar(&params.DetailedSize, "detailed-size", false, "Decode payloads for per message kind sizes")
	flags.IntVar(&params.SubmissionTime, "submission-time", 0, "Seconds spent submitting transfers")
	flags.IntVar(&params.WaitingTime, "waiting-time", 0, "Seconds spent waiting for empty blocks")
	flags.IntVar(&params.DataCollectionTime, "data-collection-time", 0, "Seconds spent collecting block data")
	flags.IntVar(&params.SrcCutoff, "src-cutoff", 0, "Number of source blocks used for throughput, 0 means all")
	flags.IntVar(&params.DstCutoff, "dst-cutoff", 0, "Number of destination blocks used for throughput, 0 means all")

	for _, name := range []string{"src-chain", "dst-chain", "users", "txs-per-user", "msgs-per-tx"} {
		err := analyzeCmd.MarkFlagRequired(name)
		if err != nil {
			panic(err)
		}
	}

	RootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Builds the benchmark report from block data and relayer logs",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		controller, err := analyze.NewController(conf, params)
		if err != nil {
			return
		}

		err = controller.Start()
		if err != nil {
			return
		}

		return controller.Wait(applicationCtx)
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("root-cmd")
		log.Debug("Finished analyze command")
		applicationCtxCancel()
		return
	},
}
