package cmd

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/lugondev/solfleet/pkg/amount"
)

var collectReserve string

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Withdraw SOL from each selected wallet back to the main wallet",
	Long: `Sweep SOL from every selected wallet into the main wallet, one
transaction per wallet, signed and paid by the sending wallet.

--reserve leaves that much SOL behind in each wallet. A wallet whose balance
cannot cover the reserve, the transaction fee, and the rent-exempt minimum is
skipped with a diagnostic rather than failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var reserve uint64
		if collectReserve != "" {
			v, err := amount.ParseSOL(collectReserve)
			if err != nil {
				return err
			}
			reserve = v
		}

		app, err := newApp(true)
		if err != nil {
			return err
		}
		positions, err := app.positions()
		if err != nil {
			return err
		}

		rep, err := app.runner.Collect(cmd.Context(), positions, reserve)
		return app.finish(rep, err)
	},
}

var collectTokenCmd = &cobra.Command{
	Use:   "collect-token <mint>",
	Short: "Sweep an SPL token from each selected wallet into the main wallet",
	Long: `Sweep the full token balance of every selected wallet into the main
wallet's token account, batching up to five transfers per transaction. The
main wallet pays all fees and its token account is created first if missing.
Wallets without the token are skipped.`,
	Args: cobra.ExactArgs(1),
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

		rep, err := app.runner.CollectToken(cmd.Context(), mint, positions)
		return app.finish(rep, err)
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(collectTokenCmd)
	collectCmd.Flags().StringVar(&collectReserve, "reserve", "", "SOL amount to leave in each wallet")
}
