package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	registrytypes "github.com/confio/tbounty/x/registry/types"
)

// IDRegistry issues organization ids
type IDRegistry interface {
	NextID(ctx sdk.Context, kind registrytypes.IDKind) (uint64, error)
	PeekID(ctx sdk.Context, kind registrytypes.IDKind) uint64
}

// BankKeeper is the fund-transfer primitive used for donations
type BankKeeper interface {
	SpendableCoins(ctx sdk.Context, addr sdk.AccAddress) sdk.Coins
	SendCoins(ctx sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error
}
