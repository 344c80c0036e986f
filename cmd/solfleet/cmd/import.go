package cmd

import (
	"github.com/spf13/cobra"
)

var (
	importOverwrite   bool
	importFixMismatch bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import wallets from a JSON file into the store",
	Long: `Merge the wallet records of a JSON file into the store. Each record
carries an optional name, an address, and a secret in base58, hex, or
Solana CLI keypair-array form.

Records whose name or address already exists are skipped unless --overwrite
is set. A record whose address does not match the one its secret derives is
rejected; --fix-mismatch accepts it with the derived address instead. A bad
record never blocks the rest of the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(false)
		if err != nil {
			return err
		}
		rep, err := app.runner.ImportWallets(args[0], importOverwrite, importFixMismatch)
		return app.finish(rep, err)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "replace existing wallets on name or address collision")
	importCmd.Flags().BoolVar(&importFixMismatch, "fix-mismatch", false, "accept records whose address does not match the secret, using the derived address")
}
