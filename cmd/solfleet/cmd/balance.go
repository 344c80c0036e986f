package cmd

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var balanceMint string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show wallet balances",
	Long: `Query the SOL balance of each selected wallet, or an SPL token balance
when --mint is given. Wallets without a token account report zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(false)
		if err != nil {
			return err
		}
		positions, err := app.positions()
		if err != nil {
			return err
		}

		var mint *solana.PublicKey
		if balanceMint != "" {
			m, err := solana.PublicKeyFromBase58(balanceMint)
			if err != nil {
				return err
			}
			mint = &m
		}

		rep, err := app.runner.Balance(cmd.Context(), positions, mint)
		return app.finish(rep, err)
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVar(&balanceMint, "mint", "", "SPL token mint address (default native SOL)")
}
