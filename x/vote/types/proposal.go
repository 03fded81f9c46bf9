package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	yaml "gopkg.in/yaml.v2"

	tbtypes "github.com/confio/tbounty/types"
	orgtypes "github.com/confio/tbounty/x/org/types"
)

// ProposalKind selects the executor that interprets a passed proposal
type ProposalKind int32

const (
	ProposalKindUndefined         ProposalKind = 0
	ProposalKindOrgChange         ProposalKind = 1
	ProposalKindMilestoneApproval ProposalKind = 2
	ProposalKindPayout            ProposalKind = 3
	ProposalKindBountyCancel      ProposalKind = 4
)

var proposalKindNames = map[ProposalKind]string{
	ProposalKindUndefined:         "undefined",
	ProposalKindOrgChange:         "org_change",
	ProposalKindMilestoneApproval: "milestone_approval",
	ProposalKindPayout:            "payout",
	ProposalKindBountyCancel:      "bounty_cancel",
}

func (k ProposalKind) String() string {
	if s, ok := proposalKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", int32(k))
}

// ProposalStatus is the lifecycle state of a proposal. Passed and Failed are terminal.
type ProposalStatus int32

const (
	ProposalStatusUndefined ProposalStatus = 0
	ProposalStatusOpen      ProposalStatus = 1
	ProposalStatusPassed    ProposalStatus = 2
	ProposalStatusFailed    ProposalStatus = 3
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalStatusOpen:
		return "open"
	case ProposalStatusPassed:
		return "passed"
	case ProposalStatusFailed:
		return "failed"
	default:
		return "undefined"
	}
}

// OrgChangePayload changes the share table, the policy or the active flag of the proposing org
type OrgChangePayload struct {
	Changes    []orgtypes.ShareDelta     `json:"changes,omitempty" yaml:"changes"`
	NewPolicy  *orgtypes.ThresholdPolicy `json:"new_policy,omitempty" yaml:"new_policy"`
	Deactivate bool                      `json:"deactivate,omitempty" yaml:"deactivate"`
}

// MilestoneApprovalPayload approves a submission against a bounty sponsored by the org
type MilestoneApprovalPayload struct {
	SubmissionID uint64 `json:"submission_id" yaml:"submission_id"`
}

// PayoutPayload releases escrowed funds of a sponsored bounty to a recipient
type PayoutPayload struct {
	BountyID  uint64         `json:"bounty_id" yaml:"bounty_id"`
	Recipient sdk.AccAddress `json:"recipient" yaml:"recipient"`
	Amount    sdk.Int        `json:"amount" yaml:"amount"`
}

// BountyCancelPayload cancels a bounty sponsored by the org
type BountyCancelPayload struct {
	BountyID uint64 `json:"bounty_id" yaml:"bounty_id"`
}

// ProposalPayload is a tagged variant: exactly one field is set and it determines the kind.
type ProposalPayload struct {
	OrgChange         *OrgChangePayload         `json:"org_change,omitempty" yaml:"org_change"`
	MilestoneApproval *MilestoneApprovalPayload `json:"milestone_approval,omitempty" yaml:"milestone_approval"`
	Payout            *PayoutPayload            `json:"payout,omitempty" yaml:"payout"`
	BountyCancel      *BountyCancelPayload      `json:"bounty_cancel,omitempty" yaml:"bounty_cancel"`
}

// Kind returns the kind of the set variant or undefined when none or more than one is set
func (p ProposalPayload) Kind() ProposalKind {
	var kinds []ProposalKind
	if p.OrgChange != nil {
		kinds = append(kinds, ProposalKindOrgChange)
	}
	if p.MilestoneApproval != nil {
		kinds = append(kinds, ProposalKindMilestoneApproval)
	}
	if p.Payout != nil {
		kinds = append(kinds, ProposalKindPayout)
	}
	if p.BountyCancel != nil {
		kinds = append(kinds, ProposalKindBountyCancel)
	}
	if len(kinds) != 1 {
		return ProposalKindUndefined
	}
	return kinds[0]
}

// ValidateBasic checks the payload is a single, well formed variant
func (p ProposalPayload) ValidateBasic() error {
	switch p.Kind() {
	case ProposalKindOrgChange:
		c := p.OrgChange
		if len(c.Changes) == 0 && c.NewPolicy == nil && !c.Deactivate {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "empty org change")
		}
		if len(c.Changes) != 0 {
			if err := orgtypes.ValidateShareDeltas(c.Changes); err != nil {
				return err
			}
		}
		if c.NewPolicy != nil {
			return c.NewPolicy.ValidateBasic()
		}
	case ProposalKindMilestoneApproval:
		if p.MilestoneApproval.SubmissionID == 0 {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "submission id")
		}
	case ProposalKindPayout:
		if p.Payout.BountyID == 0 {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "bounty id")
		}
		if err := sdk.VerifyAddressFormat(p.Payout.Recipient); err != nil {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "recipient")
		}
		if !tbtypes.IsPositiveInt(p.Payout.Amount) {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "amount")
		}
	case ProposalKindBountyCancel:
		if p.BountyCancel.BountyID == 0 {
			return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "bounty id")
		}
	default:
		return sdkerrors.Wrap(tbtypes.ErrInvalidInput, "payload must hold exactly one variant")
	}
	return nil
}

// Proposal is a share weighted decision of an organization. Policy and total are copied on
// submission, later membership or policy changes do not affect it.
type Proposal struct {
	ID            uint64                   `json:"id" yaml:"id"`
	OrgID         uint64                   `json:"org_id" yaml:"org_id"`
	Kind          ProposalKind             `json:"kind" yaml:"kind"`
	Payload       ProposalPayload          `json:"payload" yaml:"payload"`
	Proposer      sdk.AccAddress           `json:"proposer" yaml:"proposer"`
	YesShares     sdk.Uint                 `json:"yes_shares" yaml:"yes_shares"`
	NoShares      sdk.Uint                 `json:"no_shares" yaml:"no_shares"`
	AbstainShares sdk.Uint                 `json:"abstain_shares" yaml:"abstain_shares"`
	TotalSnapshot sdk.Uint                 `json:"total_snapshot" yaml:"total_snapshot"`
	Policy        orgtypes.ThresholdPolicy `json:"policy" yaml:"policy"`
	Expiry        int64                    `json:"expiry" yaml:"expiry"`
	Status        ProposalStatus           `json:"status" yaml:"status"`
	Executed      bool                     `json:"executed" yaml:"executed"`
	SubmittedAt   int64                    `json:"submitted_at" yaml:"submitted_at"`
}

func (p Proposal) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// IsOpen returns true while votes are accepted
func (p Proposal) IsOpen() bool {
	return p.Status == ProposalStatusOpen
}

// Abstained returns the abstaining shares, zero for proposals stored without them
func (p Proposal) Abstained() sdk.Uint {
	if tbtypes.IsNilUint(p.AbstainShares) {
		return sdk.ZeroUint()
	}
	return p.AbstainShares
}

// Tally evaluates the proposal's running vote against its policy
func (p Proposal) Tally() ProposalStatus {
	return Tally(p.Policy, p.YesShares, p.NoShares, p.Abstained(), p.TotalSnapshot)
}

// Result returns the public view of the tally
func (p Proposal) Result() VoteResult {
	return VoteResult{ProposalID: p.ID, Status: p.Status, YesShares: p.YesShares, NoShares: p.NoShares, AbstainShares: p.Abstained()}
}

// VoteResult is returned by every vote and close operation
type VoteResult struct {
	ProposalID    uint64         `json:"proposal_id" yaml:"proposal_id"`
	Status        ProposalStatus `json:"status" yaml:"status"`
	YesShares     sdk.Uint       `json:"yes_shares" yaml:"yes_shares"`
	NoShares      sdk.Uint       `json:"no_shares" yaml:"no_shares"`
	AbstainShares sdk.Uint       `json:"abstain_shares" yaml:"abstain_shares"`
}

// Ballot is a vote cast on a proposal. An abstaining ballot counts toward the turnout only.
type Ballot struct {
	Voter   sdk.AccAddress `json:"voter" yaml:"voter"`
	Support bool           `json:"support" yaml:"support"`
	Abstain bool           `json:"abstain,omitempty" yaml:"abstain"`
	Shares  sdk.Uint       `json:"shares" yaml:"shares"`
}
