package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tbounty/x/escrow/types"
)

// RegisterInvariants registers the escrow module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "fund-conservation", FundConservationInvariant(k))
}

// FundConservationInvariant checks that every reserved coin is either still held for a
// bounty, released or refunded, and that the module account holds exactly the sum of entries.
func FundConservationInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		sum := sdk.ZeroInt()
		var negative int
		k.IterateEntries(ctx, func(e types.Entry) bool {
			if e.Reserved.IsNegative() {
				negative++
			}
			sum = sum.Add(e.Reserved)
			return false
		})
		totals := k.Totals(ctx)
		balance := k.bankKeeper.GetBalance(ctx, k.ModuleAddress(), k.Denom(ctx)).Amount

		broken := negative != 0 || !sum.Equal(totals.Outstanding()) || !sum.Equal(balance)
		return sdk.FormatInvariant(types.ModuleName, "fund-conservation", fmt.Sprintf(
			"\tsum of entries: %s\n\treserved in: %s\n\treleased: %s\n\trefunded: %s\n\tmodule balance: %s\n\tnegative entries: %d\n",
			sum, totals.ReservedIn, totals.Released, totals.Refunded, balance, negative)), broken
	}
}
