package cli

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/stake-ledger/internal/types"
	"github.com/babylonlabs-io/stake-ledger/pkg"
)

func KeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Creates a participant keypair file",
		Args:  cobra.ExactArgs(0),
		RunE:  keygen,
	}

	cmd.Flags().String("outfile", pkg.DefaultKeypairPath(), "keypair file to write")
	cmd.Flags().Bool("force", false, "overwrite an existing keypair file")

	return cmd
}

func keygen(cmd *cobra.Command, args []string) error {
	outfile, _ := cmd.Flags().GetString("outfile")
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(outfile); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", outfile)
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	if err := pkg.SaveKeypair(outfile, key); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "wrote keypair of", keypairOwner(key), "to", outfile)
	return nil
}

func keypairOwner(key ed25519.PrivateKey) types.PublicKey {
	var owner types.PublicKey
	copy(owner[:], key[ed25519.SeedSize:])
	return owner
}
