package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/org/types"
)

const (
	FlagPolicy       = "policy"
	FlagSudo         = "sudo"
	FlagConstitution = "constitution"
	FlagParent       = "parent"
	FlagWeighted     = "weighted"
	FlagRemainder    = "remainder-to"
)

// GetTxCmd returns the root tx command for all org transactions
func GetTxCmd() *cobra.Command {
	txCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Organization transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	txCmd.AddCommand(
		NewRegisterOrgCmd(),
		NewDeactivateOrgCmd(),
		NewDonateCmd(),
	)
	return txCmd
}

func NewRegisterOrgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [address:shares]...",
		Short: "Register a new organization with the sender as controller",
		Long: `Register a new organization. Founding members are given as address:shares pairs.

Example:
$ tbountyd tx org register tbounty1...:60 tbounty1...:40 --policy supermajority:2/3 --from alice`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			members, err := ParseMembers(args)
			if err != nil {
				return err
			}
			policyStr, _ := cmd.Flags().GetString(FlagPolicy)
			policy, err := types.ParseThresholdPolicy(policyStr)
			if err != nil {
				return err
			}
			msg := types.NewMsgRegisterOrg(clientCtx.GetFromAddress(), members, policy)
			if msg.Sudo, err = cmd.Flags().GetString(FlagSudo); err != nil {
				return err
			}
			if s, _ := cmd.Flags().GetString(FlagConstitution); s != "" {
				if msg.Constitution, err = tbtypes.ParseContentHash(s); err != nil {
					return err
				}
			}
			if msg.Parent, err = cmd.Flags().GetUint64(FlagParent); err != nil {
				return err
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	cmd.Flags().String(FlagPolicy, "majority", "Vote threshold policy: majority, unanimous or supermajority:n/d[:inclusive]")
	cmd.Flags().String(FlagSudo, "", "Optional sudo account that may deactivate the organization")
	cmd.Flags().String(FlagConstitution, "", "Hex encoded content hash of the constitution document")
	cmd.Flags().Uint64(FlagParent, 0, "Optional id of the parent organization")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func NewDeactivateOrgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deactivate [org-id]",
		Short: "Deactivate an organization, sender must be its sudo account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			orgID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("org id: %w", err)
			}
			msg := &types.MsgDeactivateOrg{Sudo: clientCtx.GetFromAddress().String(), OrgID: orgID}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func NewDonateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donate [org-id] [amount]",
		Short: "Donate an amount to the members of an organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			orgID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("org id: %w", err)
			}
			amount, err := sdk.ParseCoinNormalized(args[1])
			if err != nil {
				return err
			}
			sender := clientCtx.GetFromAddress().String()
			remainder, _ := cmd.Flags().GetString(FlagRemainder)
			if remainder == "" {
				remainder = sender
			}
			weighted, _ := cmd.Flags().GetBool(FlagWeighted)
			msg := &types.MsgDonate{
				Sender:             sender,
				OrgID:              orgID,
				Amount:             amount,
				RemainderRecipient: remainder,
				Weighted:           weighted,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	cmd.Flags().Bool(FlagWeighted, true, "Split proportional to shares instead of equal parts")
	cmd.Flags().String(FlagRemainder, "", "Recipient of the rounding remainder, defaults to the sender")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// ParseMembers reads address:shares pairs
func ParseMembers(args []string) ([]types.Member, error) {
	members := make([]types.Member, len(args))
	for i, a := range args {
		parts := strings.SplitN(a, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("member %q: expected address:shares", a)
		}
		addr, err := sdk.AccAddressFromBech32(parts[0])
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", a, err)
		}
		shares, err := sdk.ParseUint(parts[1])
		if err != nil {
			return nil, fmt.Errorf("member %q: shares: %w", a, err)
		}
		members[i] = types.Member{Address: addr, Shares: shares}
	}
	return members, nil
}
