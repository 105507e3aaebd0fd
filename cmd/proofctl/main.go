package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/eueno-io/proofs-contract/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	jsonOutput bool
	debug      bool

	rpcEndpoint  string
	walletPath   string
	accountAddr  string
	contractAddr string

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "proofctl",
	Short:         "CLI client for the AI report proofs contract",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		applyFlags(cmd, cfg)

		log, err = newLogger(debug)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&rpcEndpoint, "rpc", "", "Neo RPC server endpoint")
	rootCmd.PersistentFlags().StringVar(&walletPath, "wallet", "", "path to NEP-6 wallet")
	rootCmd.PersistentFlags().StringVar(&accountAddr, "account", "", "wallet account address (default account otherwise)")
	rootCmd.PersistentFlags().StringVar(&contractAddr, "contract", "", "proofs contract address or hash")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(proofCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(updateConfigCmd)
	rootCmd.AddCommand(updateProofCmd)
	rootCmd.AddCommand(executeCmd)
	rootCmd.AddCommand(cidCmd)
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	for name, dst := range map[string]*string{
		"rpc":      &c.RPCEndpoint,
		"wallet":   &c.Wallet,
		"account":  &c.Account,
		"contract": &c.Contract,
	} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	c := zap.NewProductionConfig()
	c.Encoding = "console"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.OutputPaths = []string{"stderr"}
	c.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		c.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return c.Build()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
