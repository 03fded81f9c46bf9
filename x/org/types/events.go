package types

// org module event types
const (
	EventTypeRegisterOrg      = "register_org"
	EventTypeMembershipChange = "membership_change"
	EventTypePolicyChange     = "policy_change"
	EventTypeDeactivateOrg    = "deactivate_org"
	EventTypeDonate           = "donate"

	AttributeKeyOrgID       = "org_id"
	AttributeKeyController  = "controller"
	AttributeKeyTotalShares = "total_shares"
	AttributeKeyMembers     = "members"
	AttributeKeyPolicy      = "policy"
	AttributeKeyRemainder   = "remainder"
	AttributeValueCategory  = ModuleName
)
