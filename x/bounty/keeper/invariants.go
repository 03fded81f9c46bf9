package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tbounty/x/bounty/types"
)

// RegisterInvariants registers the bounty module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "reserve-consistency", ReserveConsistencyInvariant(k))
}

// ReserveConsistencyInvariant checks that the reserve recorded on every bounty matches its escrow
// entry, closed bounties hold nothing and the submission counters match the stored submissions.
func ReserveConsistencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		var broken int
		k.IterateBounties(ctx, func(b types.Bounty) bool {
			if escrowed := k.escrowKeeper.ReservedBalance(ctx, b.ID); !escrowed.Equal(b.TotalFundsReserved) {
				broken++
				msg += fmt.Sprintf("\tbounty %d: reserved %s, escrowed %s\n", b.ID, b.TotalFundsReserved, escrowed)
			}
			if b.IsClosed() && !b.TotalFundsReserved.IsZero() {
				broken++
				msg += fmt.Sprintf("\tbounty %d: closed with %s reserved\n", b.ID, b.TotalFundsReserved)
			}
			var submitted, underReview uint64
			k.IterateBountySubmissions(ctx, b.ID, func(s types.Submission) bool {
				submitted++
				if s.State == types.SubmissionStateUnderReview {
					underReview++
				}
				return false
			})
			if submitted != b.SubmissionCount || underReview != b.UnderReviewCount {
				broken++
				msg += fmt.Sprintf("\tbounty %d: counters %d/%d, stored %d/%d\n", b.ID, b.SubmissionCount, b.UnderReviewCount, submitted, underReview)
			}
			return false
		})
		return sdk.FormatInvariant(types.ModuleName, "reserve-consistency",
			fmt.Sprintf("%d inconsistent bounty records\n%s", broken, msg)), broken != 0
	}
}
