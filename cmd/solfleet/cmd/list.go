package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored wallets",
	Long:  `Print every wallet in the store with its 1-based position and address.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(false)
		if err != nil {
			return err
		}
		return app.finish(app.runner.List(), nil)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
