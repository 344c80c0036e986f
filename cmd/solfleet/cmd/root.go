package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lugondev/solfleet/internal/common"
	"github.com/lugondev/solfleet/internal/config"
	ferrors "github.com/lugondev/solfleet/internal/errors"
	"github.com/lugondev/solfleet/internal/metrics"
	"github.com/lugondev/solfleet/internal/ops"
	"github.com/lugondev/solfleet/internal/selector"
	isolana "github.com/lugondev/solfleet/internal/solana"
	"github.com/lugondev/solfleet/internal/store"
)

var (
	cfgFile    string
	walletsSel string
	reportPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "solfleet",
	Short: "Solfleet CLI - manage a fleet of Solana wallets",
	Long: `Solfleet manages a set of derived Solana wallets from the command line.

It provides commands for:
- Creating, listing, and importing wallets
- Querying SOL and SPL token balances
- Distributing funds from a main wallet, one by one or batched
- Collecting funds back into the main wallet`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.solfleet.yaml)")
	rootCmd.PersistentFlags().String("rpc", "", "Solana RPC endpoint (overrides the network default)")
	rootCmd.PersistentFlags().String("network", "devnet", "Solana network (mainnet, devnet, testnet, localnet)")
	rootCmd.PersistentFlags().String("store", "", "wallet store file (default wallets.json)")
	rootCmd.PersistentFlags().StringVar(&walletsSel, "wallets", "", `wallet selector, e.g. "1,3,5-7" (default all)`)
	rootCmd.PersistentFlags().StringVar(&reportPath, "report", "", "write a YAML run report to this file")

	for flag, key := range map[string]string{
		"rpc":     "solana.rpc",
		"network": "solana.network",
		"store":   "wallet.store",
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding flag: %v\n", err)
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// app bundles what every command needs: loaded config, an open store, and a
// runner wired to the RPC endpoint.
type app struct {
	cfg    *config.Config
	store  *store.Store
	runner *ops.Runner
}

// newApp builds the per-invocation plumbing. With needMain set, the main
// wallet secret must be configured and parse; commands that only read the
// store or the chain pass false.
func newApp(needMain bool) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger := common.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	st := store.Open(cfg.Wallet.Store, logger)

	client := isolana.NewClient(cfg.Solana.GetRPCEndpoint()).
		WithCallTimeout(time.Duration(cfg.Solana.Timeout) * time.Second).
		WithConfirmTimeout(time.Duration(cfg.Solana.ConfirmTimeout) * time.Second)

	runner := ops.NewRunner(client, st).
		WithMetrics(metrics.NewCollection(metrics.NewLogMetrics(logger)))
	runner.SetLogger(logger)

	if needMain {
		main, err := mainWallet(cfg)
		if err != nil {
			return nil, err
		}
		runner.WithMain(main)
	}

	return &app{cfg: cfg, store: st, runner: runner}, nil
}

func mainWallet(cfg *config.Config) (*isolana.Wallet, error) {
	if cfg.Wallet.MainKey == "" {
		return nil, ferrors.ErrMissingMainWallet
	}
	w, err := isolana.ParseSecret(cfg.Wallet.MainKey)
	if err != nil {
		return nil, ferrors.Wrap(err, "main wallet secret does not parse")
	}
	return w, nil
}

// positions parses the --wallets selector. An empty selector means every
// wallet in the store.
func (a *app) positions() ([]int, error) {
	return selector.Parse(walletsSel)
}

// finish writes the run report when --report was given, then propagates the
// operation's outcome.
func (a *app) finish(rep *ops.Report, opErr error) error {
	if reportPath != "" && rep != nil {
		if err := rep.WriteYAML(reportPath); err != nil {
			return err
		}
	}
	return opErr
}
