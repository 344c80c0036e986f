package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lugondev/solfleet/internal/ops"
)

var sendBatched bool

var sendCmd = &cobra.Command{
	Use:   "send <amount>",
	Short: "Send SOL from the main wallet to each selected wallet",
	Long: `Transfer the given SOL amount from the main wallet to every selected
wallet. Each wallet gets its own transaction by default; --batched packs
transfers into multi-instruction transactions, up to ten per transaction.

Transactions are submitted one at a time and confirmed before the next;
a failed transaction is reported and never stops the rest of the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lamports, err := ops.ParseSOLAmount(args[0])
		if err != nil {
			return err
		}

		app, err := newApp(true)
		if err != nil {
			return err
		}
		positions, err := app.positions()
		if err != nil {
			return err
		}

		rep, err := app.runner.Send(cmd.Context(), lamports, positions, sendBatched)
		return app.finish(rep, err)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().BoolVar(&sendBatched, "batched", false, "pack transfers into multi-instruction transactions")
}
