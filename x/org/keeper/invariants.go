package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tbounty/x/org/types"
)

// RegisterInvariants registers the org module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "share-conservation", ShareConservationInvariant(k))
}

// ShareConservationInvariant checks that the share table of every organization sums up to its
// recorded total and holds no zero entries.
func ShareConservationInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		var broken int
		k.IterateOrganizations(ctx, func(org types.Organization) bool {
			sum := sdk.ZeroUint()
			k.IterateMembers(ctx, org.ID, func(m types.Member) bool {
				if m.Shares.IsZero() {
					broken++
					msg += fmt.Sprintf("\torg %d: zero share entry for %s\n", org.ID, m.Address)
				}
				sum = sum.Add(m.Shares)
				return false
			})
			if !sum.Equal(org.TotalShares) {
				broken++
				msg += fmt.Sprintf("\torg %d: member shares %s, total %s\n", org.ID, sum, org.TotalShares)
			}
			return false
		})
		return sdk.FormatInvariant(types.ModuleName, "share-conservation",
			fmt.Sprintf("%d organizations with inconsistent share tables\n%s", broken, msg)), broken != 0
	}
}
