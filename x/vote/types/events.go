package types

// vote module event types
const (
	EventTypeSubmitProposal  = "submit_proposal"
	EventTypeVote            = "proposal_vote"
	EventTypeProposalResult  = "proposal_result"
	EventTypeExecuteProposal = "execute_proposal"

	AttributeKeyProposalID = "proposal_id"
	AttributeKeyOrgID      = "org_id"
	AttributeKeyKind       = "kind"
	AttributeKeyExpiry     = "expiry"
	AttributeKeyVoter      = "voter"
	AttributeKeySupport    = "support"
	AttributeKeyAbstain    = "abstain"
	AttributeKeyStatus     = "status"
	AttributeKeyYesShares  = "yes_shares"
	AttributeKeyNoShares   = "no_shares"
)
