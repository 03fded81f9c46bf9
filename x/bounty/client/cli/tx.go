package cli

import (
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	tbtypes "github.com/confio/tbounty/types"
	"github.com/confio/tbounty/x/bounty/types"
)

const (
	FlagOrg    = "org"
	FlagExpiry = "expiry"
)

// GetTxCmd returns the root tx command for all bounty transactions
func GetTxCmd() *cobra.Command {
	txCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Bounty transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	txCmd.AddCommand(
		NewPostBountyCmd(),
		NewFundBountyCmd(),
		NewSubmitMilestoneCmd(),
		NewReviewSubmissionCmd(),
		NewApproveSubmissionCmd(),
		NewRejectSubmissionCmd(),
		NewCancelBountyCmd(),
	)
	return txCmd
}

func NewPostBountyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post [amount] [content-hash]",
		Short: "Post a bounty and reserve its funds from the sender",
		Long: `Post a bounty. The amount is given in the escrow denom, the content hash references the
bounty description. With --org the bounty is sponsored and governed by the organization.

Example:
$ tbountyd tx bounty post 1000 9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08 --org 1 --from alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			amount, ok := sdk.NewIntFromString(args[0])
			if !ok {
				return fmt.Errorf("amount: invalid integer %q", args[0])
			}
			hash, err := tbtypes.ParseContentHash(args[1])
			if err != nil {
				return err
			}
			orgID, err := cmd.Flags().GetUint64(FlagOrg)
			if err != nil {
				return err
			}
			msg := &types.MsgPostBounty{
				Depositer:   clientCtx.GetFromAddress().String(),
				Amount:      amount,
				ContentHash: hash,
				OrgID:       orgID,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	cmd.Flags().Uint64(FlagOrg, 0, "Id of the sponsoring organization")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func NewFundBountyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fund [bounty-id] [amount]",
		Short: "Add funds to the reserve of a bounty posted by the sender",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			bountyID, err := parseID("bounty id", args[0])
			if err != nil {
				return err
			}
			amount, ok := sdk.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("amount: invalid integer %q", args[1])
			}
			msg := &types.MsgFundBounty{Depositer: clientCtx.GetFromAddress().String(), BountyID: bountyID, Amount: amount}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func NewSubmitMilestoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit [bounty-id] [amount-requested] [content-hash]",
		Short: "Submit a milestone against the reserve of a bounty",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			bountyID, err := parseID("bounty id", args[0])
			if err != nil {
				return err
			}
			amount, ok := sdk.NewIntFromString(args[1])
			if !ok {
				return fmt.Errorf("amount requested: invalid integer %q", args[1])
			}
			hash, err := tbtypes.ParseContentHash(args[2])
			if err != nil {
				return err
			}
			msg := &types.MsgSubmitMilestone{
				Submitter:       clientCtx.GetFromAddress().String(),
				BountyID:        bountyID,
				AmountRequested: amount,
				ContentHash:     hash,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func NewReviewSubmissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review [submission-id]",
		Short: "Move a submission under review, opens a proposal for sponsored bounties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			submissionID, err := parseID("submission id", args[0])
			if err != nil {
				return err
			}
			expiry, err := cmd.Flags().GetInt64(FlagExpiry)
			if err != nil {
				return err
			}
			msg := &types.MsgReviewSubmission{Caller: clientCtx.GetFromAddress().String(), SubmissionID: submissionID, Expiry: expiry}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	cmd.Flags().Int64(FlagExpiry, 0, "Block height the review proposal expires at, defaults to the voting period")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func NewApproveSubmissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve [submission-id]",
		Short: "Approve a submission and release the requested amount to the submitter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			submissionID, err := parseID("submission id", args[0])
			if err != nil {
				return err
			}
			msg := &types.MsgApproveSubmission{Caller: clientCtx.GetFromAddress().String(), SubmissionID: submissionID}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func NewRejectSubmissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reject [submission-id]",
		Short: "Reject a submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			submissionID, err := parseID("submission id", args[0])
			if err != nil {
				return err
			}
			msg := &types.MsgRejectSubmission{Caller: clientCtx.GetFromAddress().String(), SubmissionID: submissionID}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func NewCancelBountyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel [bounty-id]",
		Short: "Cancel a bounty and refund the remaining reserve to the depositer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			bountyID, err := parseID("bounty id", args[0])
			if err != nil {
				return err
			}
			msg := &types.MsgCancelBounty{Caller: clientCtx.GetFromAddress().String(), BountyID: bountyID}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func parseID(name, s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return id, nil
}
