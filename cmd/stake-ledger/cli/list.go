package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/stake-ledger/internal/db"
	"github.com/babylonlabs-io/stake-ledger/internal/observability/tracing"
)

func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lists ledger entries",
		Args:  cobra.ExactArgs(0),
		RunE:  list,
	}

	cmd.Flags().String("mint", "", "only list entries of this mint")
	cmd.Flags().String("owner", "", "only list entries of this participant")
	cmd.Flags().Bool("json", false, "print entries as json")

	return cmd
}

func list(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())
	flags := cmd.Flags()

	var filter db.StakerFilter
	for name, target := range map[string]*string{"mint": &filter.Mint, "owner": &filter.Owner} {
		value, _ := flags.GetString(name)
		if value == "" {
			continue
		}
		pk, err := parsePublicKeyFlag(name, value)
		if err != nil {
			return err
		}
		*target = pk.String()
	}
	asJSON, _ := flags.GetBool("json")

	l, err := openLedger(ctx, nil)
	if err != nil {
		return err
	}
	defer l.close()

	out := cmd.OutOrStdout()
	if !asJSON {
		fmt.Fprintln(out, "all stakes:")
	}

	token := ""
	for {
		page, err := l.service.ListStakers(ctx, filter, token)
		if err != nil {
			return err
		}
		for _, entry := range page.Stakers {
			if asJSON {
				if err := printJSON(out, entry); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintln(out, "  ", entry.Owner, entry.Mint, entry.Total)
		}

		if page.PaginationToken == "" {
			return nil
		}
		token = page.PaginationToken
	}
}
