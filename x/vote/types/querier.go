package types

// query endpoints supported by the vote querier
const (
	QueryProposal  = "proposal"
	QueryProposals = "proposals"
	QueryBallots   = "ballots"
	QuerySnapshot  = "snapshot"
	QueryParams    = "params"
)
