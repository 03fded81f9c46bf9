package cli

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/spf13/cobra"

	"github.com/confio/tbounty/x/vote/types"
)

// GetQueryCmd returns the query commands for the vote module
func GetQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for proposals",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	queryCmd.AddCommand(
		newProposalScopedCmd(types.QueryProposal, "proposal [proposal-id]", "Show a proposal with its tally"),
		newProposalScopedCmd(types.QueryBallots, "ballots [proposal-id]", "List the votes cast on a proposal"),
		newProposalScopedCmd(types.QuerySnapshot, "snapshot [proposal-id]", "Show the share snapshot a proposal is voted with"),
		newNoArgCmd(types.QueryProposals, "list", "List all proposals"),
		newNoArgCmd(types.QueryParams, "params", "Show the vote module params"),
	)
	return queryCmd
}

func newProposalScopedCmd(endpoint, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseID(args[0], "proposal id"); err != nil {
				return err
			}
			return runQuery(cmd, endpoint, args[0])
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func newNoArgCmd(endpoint, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, endpoint)
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func runQuery(cmd *cobra.Command, endpoint string, args ...string) error {
	clientCtx, err := client.GetClientQueryContext(cmd)
	if err != nil {
		return err
	}
	route := fmt.Sprintf("custom/%s/%s", types.QuerierRoute, endpoint)
	for _, a := range args {
		route += "/" + a
	}
	res, _, err := clientCtx.QueryWithData(route, nil)
	if err != nil {
		return err
	}
	return clientCtx.PrintString(string(res) + "\n")
}
