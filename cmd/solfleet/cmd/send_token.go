package cmd

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var sendTokenBatched bool

var sendTokenCmd = &cobra.Command{
	Use:   "send-token <mint> <amount>",
	Short: "Send an SPL token from the main wallet to each selected wallet",
	Long: `Transfer the given token amount from the main wallet's token account to
every selected wallet. The amount is in token units and honors the mint's
decimals. Destinations without a token account get one created in the same
transaction, paid by the main wallet.

With --batched, transfers are packed up to five per transaction; the lower
ceiling leaves room for the account-creation instructions.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mint, err := solana.PublicKeyFromBase58(args[0])
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

		rep, err := app.runner.SendToken(cmd.Context(), mint, args[1], positions, sendTokenBatched)
		return app.finish(rep, err)
	},
}

func init() {
	rootCmd.AddCommand(sendTokenCmd)
	sendTokenCmd.Flags().BoolVar(&sendTokenBatched, "batched", false, "pack transfers into multi-instruction transactions")
}
