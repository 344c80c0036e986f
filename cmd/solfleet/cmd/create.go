package cmd

import (
	"github.com/spf13/cobra"
)

var (
	createCount  int
	createPrefix string
	createFresh  bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate new wallets into the store",
	Long: `Generate fresh keypairs and append them to the wallet store.

By default new wallets are added after the existing ones; --fresh discards
the store first. Names follow <prefix>-N with N continuing from the store
size.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(false)
		if err != nil {
			return err
		}
		rep, err := app.runner.CreateWallets(createCount, createPrefix, createFresh)
		return app.finish(rep, err)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().IntVarP(&createCount, "count", "n", 1, "number of wallets to generate")
	createCmd.Flags().StringVar(&createPrefix, "prefix", "", "wallet name prefix (default \"wallet\")")
	createCmd.Flags().BoolVar(&createFresh, "fresh", false, "discard the existing store before generating")
}
