package cli

import (
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/confio/tbounty/x/org/types"
)

// GetQueryCmd returns the query commands for the org module
func GetQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for organizations",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	queryCmd.AddCommand(
		GetCmdQueryOrganization(),
		GetCmdQueryOrganizations(),
		GetCmdQueryMembers(),
		GetCmdQueryShares(),
	)
	return queryCmd
}

func GetCmdQueryOrganization() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organization [org-id]",
		Short: "Show an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.ParseUint(args[0], 10, 64); err != nil {
				return fmt.Errorf("org id: %w", err)
			}
			return runQuery(cmd, types.QueryOrganization, args[0])
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdQueryOrganizations() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all organizations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, types.QueryOrganizations)
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdQueryMembers() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members [org-id]",
		Short: "Show the share table of an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, types.QueryMembers, args[0])
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdQueryShares() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shares [org-id] [address]",
		Short: "Show the shares of an account within an organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sdk.AccAddressFromBech32(args[1]); err != nil {
				return err
			}
			return runQuery(cmd, types.QueryShares, args...)
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
