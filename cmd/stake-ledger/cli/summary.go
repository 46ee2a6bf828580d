package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/stake-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/stake-ledger/pkg"
)

func SummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Compares the ledger of a mint with its custody balance",
		Args:  cobra.ExactArgs(0),
		RunE:  summary,
	}

	cmd.Flags().String("mint", pkg.Getenv("TOKEN_MINT", ""), "mint to summarize (default $TOKEN_MINT)")
	cmd.Flags().Int32("decimals", 0, "decimals of the mint")

	return cmd
}

func summary(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())
	flags := cmd.Flags()

	mintFlag, _ := flags.GetString("mint")
	decimals, _ := flags.GetInt32("decimals")
	mint, err := parsePublicKeyFlag("mint", mintFlag)
	if err != nil {
		return err
	}

	l, err := openLedger(ctx, nil)
	if err != nil {
		return err
	}
	defer l.close()

	s, err := l.service.GetPoolSummary(ctx, mint)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "mint:           ", s.Mint)
	fmt.Fprintln(out, "vault authority:", s.VaultAuthority)
	fmt.Fprintln(out, "vault account:  ", s.VaultATA)
	fmt.Fprintln(out, "stakers:        ", s.StakerCount)
	fmt.Fprintln(out, "total staked:   ", pkg.FormatAmount(s.TotalStaked.BigInt(), decimals))
	fmt.Fprintln(out, "custody balance:", pkg.FormatAmount(new(big.Int).SetUint64(s.CustodyBalance), decimals))
	if !s.Balanced() {
		return fmt.Errorf("custody balance of mint %s does not match the ledger", s.Mint)
	}
	return nil
}
