package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/stake-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/stake-ledger/pkg"
)

func AirdropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "airdrop",
		Short: "Mints tokens into the associated token account of an owner",
		Args:  cobra.ExactArgs(0),
		RunE:  airdrop,
	}

	cmd.Flags().String("mint", pkg.Getenv("TOKEN_MINT", ""), "mint of the token (default $TOKEN_MINT)")
	cmd.Flags().String("owner", "", "receiving owner (default: owner of --keypair)")
	cmd.Flags().String("keypair", pkg.DefaultKeypairPath(), "keypair file used when --owner is not set")
	cmd.Flags().String("amount", "", "amount to mint, in tokens when --decimals is set, in base units otherwise")
	cmd.Flags().Int32("decimals", 0, "decimals of the mint")

	return cmd
}

func airdrop(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())
	flags := cmd.Flags()

	mintFlag, _ := flags.GetString("mint")
	ownerFlag, _ := flags.GetString("owner")
	keypairPath, _ := flags.GetString("keypair")
	amountFlag, _ := flags.GetString("amount")
	decimals, _ := flags.GetInt32("decimals")

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

	if ownerFlag == "" {
		key, err := pkg.LoadKeypair(keypairPath)
		if err != nil {
			return err
		}
		ownerFlag = keypairOwner(key).String()
	}
	owner, err := parsePublicKeyFlag("owner", ownerFlag)
	if err != nil {
		return err
	}

	l, err := openLedger(ctx, nil)
	if err != nil {
		return err
	}
	defer l.close()

	account, err := l.token.GetOrCreateAssociatedAccount(ctx, mint, owner)
	if err != nil {
		return err
	}
	if err := l.token.MintTo(ctx, account.Address, amount); err != nil {
		return err
	}

	account, err = l.token.GetAccount(ctx, account.Address)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "token account %s of %s holds %d\n", account.Address, owner, account.Amount)
	return nil
}
