package types

import sdk "github.com/cosmos/cosmos-sdk/types"

// query endpoints supported by the org querier
const (
	QueryOrganization  = "organization"
	QueryOrganizations = "organizations"
	QueryMembers       = "members"
	QueryShares        = "shares"
)

// QuerySharesResponse is the share position of one account
type QuerySharesResponse struct {
	OrgID       uint64         `json:"org_id"`
	Address     sdk.AccAddress `json:"address"`
	Shares      sdk.Uint       `json:"shares"`
	TotalShares sdk.Uint       `json:"total_shares"`
}
