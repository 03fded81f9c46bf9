package types

// bounty module event types
const (
	EventTypePostBounty        = "post_bounty"
	EventTypeFundBounty        = "fund_bounty"
	EventTypeSubmitMilestone   = "submit_milestone"
	EventTypeReviewSubmission  = "review_submission"
	EventTypeApproveSubmission = "approve_submission"
	EventTypeRejectSubmission  = "reject_submission"
	EventTypeCloseBounty       = "close_bounty"

	AttributeKeyBountyID     = "bounty_id"
	AttributeKeySubmissionID = "submission_id"
	AttributeKeyProposalID   = "proposal_id"
	AttributeKeyOrgID        = "org_id"
	AttributeKeyAmount       = "amount"
	AttributeKeyRemaining    = "remaining"
	AttributeKeyRefunded     = "refunded"
	AttributeKeyContentHash  = "content_hash"
)
