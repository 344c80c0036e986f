package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lugondev/solfleet/internal/ops"
)

var airdropCmd = &cobra.Command{
	Use:   "airdrop <amount>",
	Short: "Request faucet SOL for each selected wallet",
	Long: `Request the given SOL amount from the network faucet for every selected
wallet. Only devnet and testnet run a faucet; the request signatures are
printed without waiting for confirmation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lamports, err := ops.ParseSOLAmount(args[0])
		if err != nil {
			return err
		}

		app, err := newApp(false)
		if err != nil {
			return err
		}
		positions, err := app.positions()
		if err != nil {
			return err
		}

		rep, err := app.runner.Airdrop(cmd.Context(), lamports, positions)
		return app.finish(rep, err)
	},
}

func init() {
	rootCmd.AddCommand(airdropCmd)
}
