package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Atomic runs fn on a branched store. State changes and events are committed only when fn
// returns without error, so a failing transition leaves no trace.
func Atomic(ctx sdk.Context, fn func(ctx sdk.Context) error) error {
	cacheCtx, write := ctx.CacheContext()
	em := sdk.NewEventManager()
	if err := fn(cacheCtx.WithEventManager(em)); err != nil {
		return err
	}
	write()
	ctx.EventManager().EmitEvents(em.Events())
	return nil
}

// AtomicHandler runs every message of h on a branched store that is written back only when
// the handler succeeds.
func AtomicHandler(h sdk.Handler) sdk.Handler {
	return func(ctx sdk.Context, msg sdk.Msg) (*sdk.Result, error) {
		cacheCtx, write := ctx.CacheContext()
		res, err := h(cacheCtx, msg)
		if err != nil {
			return nil, err
		}
		write()
		return res, nil
	}
}

// WrapResult builds the tx result of a msg handler. The receipt is amino encoded into the
// result data, the events are taken from the context event manager.
func WrapResult(ctx sdk.Context, cdc *codec.LegacyAmino, res interface{}, err error) (*sdk.Result, error) {
	if err != nil {
		return nil, err
	}
	var data []byte
	if res != nil {
		if data, err = cdc.Marshal(res); err != nil {
			return nil, err
		}
	}
	return &sdk.Result{Data: data, Events: ctx.EventManager().ABCIEvents()}, nil
}
