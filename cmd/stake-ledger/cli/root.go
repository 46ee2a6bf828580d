package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/stake-ledger/pkg"
)

const (
	defaultConfigFileName = "config.yml"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:           "stake-ledger",
		Short:         "Custodial staking ledger for SPL-style tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := pkg.Getenv("STAKE_LEDGER_CONFIG", getDefaultConfigFile(homePath, defaultConfigFileName))

	rootCmd.AddCommand(StartServerCmd())
	rootCmd.AddCommand(StakeCmd())
	rootCmd.AddCommand(ListCmd())
	rootCmd.AddCommand(SummaryCmd())
	rootCmd.AddCommand(WatchCmd())
	rootCmd.AddCommand(AirdropCmd())
	rootCmd.AddCommand(KeygenCmd())
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}
