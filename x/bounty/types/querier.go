package types

// query endpoints supported by the bounty querier
const (
	QueryBounty      = "bounty"
	QueryBounties    = "bounties"
	QuerySubmission  = "submission"
	QuerySubmissions = "submissions"
	QueryParams      = "params"
)
