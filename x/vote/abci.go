package vote

import (
	"time"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tbounty/x/vote/keeper"
	"github.com/confio/tbounty/x/vote/types"
)

type endBlockKeeper interface {
	CloseAllExpired(ctx sdk.Context)
}

// EndBlocker fails all open proposals whose expiry height was reached in this block.
func EndBlocker(parentCtx sdk.Context, k endBlockKeeper) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), telemetry.MetricKeyEndBlocker)
	ctx, commit := parentCtx.CacheContext()
	defer func() {
		if r := recover(); r != nil {
			keeper.ModuleLogger(parentCtx).Error("closing expired proposals panicked", "cause", r)
		}
	}()
	k.CloseAllExpired(ctx)
	commit()
}
