package cli

import (
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/spf13/cobra"

	"github.com/confio/tbounty/x/escrow/types"
)

// GetQueryCmd returns the query commands for the escrow module
func GetQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for bounty escrow",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	queryCmd.AddCommand(
		newQueryCmd("entry [bounty-id]", "Show the reservation of a bounty", types.QueryEntry, true),
		newQueryCmd("entries", "List all reservations", types.QueryEntries, false),
		newQueryCmd("totals", "Show the fund conservation counters", types.QueryTotals, false),
		newQueryCmd("params", "Show the escrow params", types.QueryParams, false),
	)
	return queryCmd
}

func newQueryCmd(use, short, endpoint string, withID bool) *cobra.Command {
	args := cobra.NoArgs
	if withID {
		args = cobra.ExactArgs(1)
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			route := fmt.Sprintf("custom/%s/%s", types.QuerierRoute, endpoint)
			if withID {
				if _, err := strconv.ParseUint(args[0], 10, 64); err != nil {
					return fmt.Errorf("bounty id: %w", err)
				}
				route += "/" + args[0]
			}
			res, _, err := clientCtx.QueryWithData(route, nil)
			if err != nil {
				return err
			}
			return clientCtx.PrintString(string(res) + "\n")
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
