package cli

import (
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/spf13/cobra"

	"github.com/confio/tbounty/x/bounty/types"
)

// GetQueryCmd returns the query commands for the bounty module
func GetQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for bounties",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	queryCmd.AddCommand(
		newQueryCmd("bounty [bounty-id]", "Show a bounty", types.QueryBounty, "bounty id"),
		newQueryCmd("bounties", "List all bounties", types.QueryBounties, ""),
		newQueryCmd("submission [submission-id]", "Show a milestone submission", types.QuerySubmission, "submission id"),
		newQueryCmd("submissions [bounty-id]", "List the submissions to a bounty", types.QuerySubmissions, "bounty id"),
		newQueryCmd("params", "Show the bounty params", types.QueryParams, ""),
	)
	return queryCmd
}

// newQueryCmd builds a query of a legacy endpoint. A non empty idName takes one numeric argument.
func newQueryCmd(use, short, endpoint, idName string) *cobra.Command {
	args := cobra.NoArgs
	if idName != "" {
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
			if idName != "" {
				if _, err := strconv.ParseUint(args[0], 10, 64); err != nil {
					return fmt.Errorf("%s: %w", idName, err)
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
