package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Executor applies the effect of a passed proposal. It runs inside the executing transition,
// an error reverts the execution.
type Executor func(ctx sdk.Context, p Proposal) error

// Router dispatches passed proposals by kind. It is sealed once the app is constructed.
type Router interface {
	AddRoute(kind ProposalKind, h Executor) Router
	HasRoute(kind ProposalKind) bool
	GetRoute(kind ProposalKind) Executor
	Seal()
}

type router struct {
	routes map[ProposalKind]Executor
	sealed bool
}

// NewRouter constructor
func NewRouter() Router {
	return &router{routes: make(map[ProposalKind]Executor)}
}

// Seal prevents additional routes from being added
func (rtr *router) Seal() {
	if rtr.sealed {
		panic("router already sealed")
	}
	rtr.sealed = true
}

// AddRoute registers the executor of a proposal kind. Panics on a sealed router, an undefined
// kind or a duplicate route.
func (rtr *router) AddRoute(kind ProposalKind, h Executor) Router {
	if rtr.sealed {
		panic("router sealed; cannot add route")
	}
	if kind == ProposalKindUndefined {
		panic("undefined proposal kind")
	}
	if rtr.HasRoute(kind) {
		panic(fmt.Sprintf("route %s has already been initialized", kind))
	}
	rtr.routes[kind] = h
	return rtr
}

func (rtr *router) HasRoute(kind ProposalKind) bool {
	_, ok := rtr.routes[kind]
	return ok
}

// GetRoute returns the executor of a kind. Panics when none is registered.
func (rtr *router) GetRoute(kind ProposalKind) Executor {
	if !rtr.HasRoute(kind) {
		panic(fmt.Sprintf("route %s does not exist", kind))
	}
	return rtr.routes[kind]
}
