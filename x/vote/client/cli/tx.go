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

	orgtypes "github.com/confio/tbounty/x/org/types"
	"github.com/confio/tbounty/x/vote/types"
)

const (
	FlagExpiry     = "expiry"
	FlagChange     = "change"
	FlagPolicy     = "policy"
	FlagDeactivate = "deactivate"
)

// GetTxCmd returns the root tx command for all vote transactions
func GetTxCmd() *cobra.Command {
	txCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Proposal and vote transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	txCmd.AddCommand(
		NewProposeOrgChangeCmd(),
		NewProposePayoutCmd(),
		NewProposeBountyCancelCmd(),
		NewVoteCmd(),
		NewCloseExpiredCmd(),
		NewExecuteCmd(),
	)
	return txCmd
}

func NewProposeOrgChangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose-org-change [org-id]",
		Short: "Propose share changes, a new policy or the deactivation of an organization",
		Long: `Propose a change to an organization. Share changes are given as address:delta pairs.

Example:
$ tbountyd tx vote propose-org-change 1 --change tbounty1...:+10 --change tbounty1...:-5 --from alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseID(args[0], "org id")
			if err != nil {
				return err
			}
			payload := types.OrgChangePayload{}
			changes, _ := cmd.Flags().GetStringArray(FlagChange)
			if payload.Changes, err = ParseShareDeltas(changes); err != nil {
				return err
			}
			if s, _ := cmd.Flags().GetString(FlagPolicy); s != "" {
				policy, err := orgtypes.ParseThresholdPolicy(s)
				if err != nil {
					return err
				}
				payload.NewPolicy = &policy
			}
			payload.Deactivate, _ = cmd.Flags().GetBool(FlagDeactivate)
			return submitProposal(cmd, orgID, types.ProposalPayload{OrgChange: &payload})
		},
	}
	cmd.Flags().StringArray(FlagChange, nil, "Share change as address:delta, repeatable")
	cmd.Flags().String(FlagPolicy, "", "New threshold policy")
	cmd.Flags().Bool(FlagDeactivate, false, "Deactivate the organization")
	addProposalFlags(cmd)
	return cmd
}

func NewProposePayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose-payout [org-id] [bounty-id] [recipient] [amount]",
		Short: "Propose to release escrowed funds of a sponsored bounty",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseID(args[0], "org id")
			if err != nil {
				return err
			}
			bountyID, err := parseID(args[1], "bounty id")
			if err != nil {
				return err
			}
			recipient, err := sdk.AccAddressFromBech32(args[2])
			if err != nil {
				return err
			}
			amount, ok := sdk.NewIntFromString(args[3])
			if !ok {
				return fmt.Errorf("amount: %q", args[3])
			}
			return submitProposal(cmd, orgID, types.ProposalPayload{Payout: &types.PayoutPayload{
				BountyID:  bountyID,
				Recipient: recipient,
				Amount:    amount,
			}})
		},
	}
	addProposalFlags(cmd)
	return cmd
}

func NewProposeBountyCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose-cancel [org-id] [bounty-id]",
		Short: "Propose to cancel a sponsored bounty and refund the remaining reserve",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseID(args[0], "org id")
			if err != nil {
				return err
			}
			bountyID, err := parseID(args[1], "bounty id")
			if err != nil {
				return err
			}
			return submitProposal(cmd, orgID, types.ProposalPayload{BountyCancel: &types.BountyCancelPayload{BountyID: bountyID}})
		},
	}
	addProposalFlags(cmd)
	return cmd
}

func NewVoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote [proposal-id] [yes|no|abstain]",
		Short: "Vote on an open proposal with the shares held at submission",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			proposalID, err := parseID(args[0], "proposal id")
			if err != nil {
				return err
			}
			var support, abstain bool
			switch strings.ToLower(args[1]) {
			case "yes":
				support = true
			case "no":
			case "abstain":
				abstain = true
			default:
				return fmt.Errorf("vote option must be yes, no or abstain: %q", args[1])
			}
			msg := &types.MsgVote{Voter: clientCtx.GetFromAddress().String(), ProposalID: proposalID, Support: support, Abstain: abstain}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func NewCloseExpiredCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close [proposal-id]",
		Short: "Close a proposal whose expiry height was reached",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			proposalID, err := parseID(args[0], "proposal id")
			if err != nil {
				return err
			}
			msg := &types.MsgCloseExpired{Sender: clientCtx.GetFromAddress().String(), ProposalID: proposalID}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func NewExecuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute [proposal-id]",
		Short: "Apply the effect of a passed proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			proposalID, err := parseID(args[0], "proposal id")
			if err != nil {
				return err
			}
			msg := &types.MsgExecuteProposal{Sender: clientCtx.GetFromAddress().String(), ProposalID: proposalID}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func addProposalFlags(cmd *cobra.Command) {
	cmd.Flags().Int64(FlagExpiry, 0, "Block height the proposal expires at, 0 for the default voting period")
	flags.AddTxFlagsToCmd(cmd)
}

func submitProposal(cmd *cobra.Command, orgID uint64, payload types.ProposalPayload) error {
	clientCtx, err := client.GetClientTxContext(cmd)
	if err != nil {
		return err
	}
	expiry, err := cmd.Flags().GetInt64(FlagExpiry)
	if err != nil {
		return err
	}
	msg := &types.MsgSubmitProposal{
		Proposer: clientCtx.GetFromAddress().String(),
		OrgID:    orgID,
		Payload:  payload,
		Expiry:   expiry,
	}
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
}

// ParseShareDeltas reads address:delta pairs, delta with optional sign
func ParseShareDeltas(args []string) ([]orgtypes.ShareDelta, error) {
	r := make([]orgtypes.ShareDelta, len(args))
	for i, a := range args {
		parts := strings.SplitN(a, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("change %q: expected address:delta", a)
		}
		addr, err := sdk.AccAddressFromBech32(parts[0])
		if err != nil {
			return nil, fmt.Errorf("change %q: %w", a, err)
		}
		delta, ok := sdk.NewIntFromString(strings.TrimPrefix(parts[1], "+"))
		if !ok {
			return nil, fmt.Errorf("change %q: delta", a)
		}
		r[i] = orgtypes.ShareDelta{Address: addr, Delta: delta}
	}
	return r, nil
}

func parseID(s, name string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return id, nil
}
