package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/stake-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/stake-ledger/internal/services"
	"github.com/babylonlabs-io/stake-ledger/pkg"
)

func StakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stake",
		Short: "Moves tokens of the keypair owner into custody and records them in the ledger",
		Args:  cobra.ExactArgs(0),
		RunE:  stake,
	}

	cmd.Flags().String("mint", pkg.Getenv("TOKEN_MINT", ""), "mint of the staked token (default $TOKEN_MINT)")
	cmd.Flags().String("amount", "", "amount to stake, in tokens when --decimals is set, in base units otherwise")
	cmd.Flags().Int32("decimals", 0, "decimals of the mint")
	cmd.Flags().String("keypair", pkg.DefaultKeypairPath(), "keypair file of the participant")

	return cmd
}

func stake(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())
	flags := cmd.Flags()

	mintFlag, _ := flags.GetString("mint")
	amountFlag, _ := flags.GetString("amount")
	decimals, _ := flags.GetInt32("decimals")
	keypairPath, _ := flags.GetString("keypair")

	mint, err := parsePublicKeyFlag("mint", mintFlag)
	if err != nil {
		return err
	}
	if amountFlag == "" {
		return fmt.Errorf("--amount is required")
	}
	amount, err := pkg.ParseAmount(amountFlag, decimals)
	if err != nil {
		return err
	}

	key, err := pkg.LoadKeypair(keypairPath)
	if err != nil {
		return err
	}
	user := keypairOwner(key)

	l, err := openLedger(ctx, nil)
	if err != nil {
		return err
	}
	defer l.close()

	accounts, err := services.ResolveStakeAccounts(l.deriver, l.programIDs, user, mint)
	if err != nil {
		return err
	}
	if _, err := l.token.GetOrCreateAssociatedAccount(ctx, mint, accounts.User); err != nil {
		return fmt.Errorf("failed to prepare user token account: %w", err)
	}
	if _, err := l.token.GetOrCreateAssociatedAccount(ctx, mint, accounts.VaultAuthority); err != nil {
		return fmt.Errorf("failed to prepare vault token account: %w", err)
	}

	ix := services.NewStakeInstruction(*accounts, amount)
	if err := ix.Sign(key); err != nil {
		return err
	}

	receipt, err := l.service.Stake(ctx, ix)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "User", user)
	fmt.Fprintln(out, "stake receipt:")
	if err := printJSON(out, receipt); err != nil {
		return err
	}

	entry, err := l.service.GetStaker(ctx, user, mint)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "staker state:")
	return printJSON(out, entry)
}
