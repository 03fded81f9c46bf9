package types

import sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

// Codespace is shared by all tbounty modules so that a client sees one error taxonomy.
const Codespace = "tbounty"

var (
	ErrInvalidInput        = sdkerrors.Register(Codespace, 2, "invalid input")
	ErrNotFound            = sdkerrors.Register(Codespace, 3, "not found")
	ErrUnauthorized        = sdkerrors.Register(Codespace, 4, "unauthorized")
	ErrAlreadyVoted        = sdkerrors.Register(Codespace, 5, "already voted")
	ErrProposalClosed      = sdkerrors.Register(Codespace, 6, "proposal closed")
	ErrInsufficientFunds   = sdkerrors.Register(Codespace, 7, "insufficient funds")
	ErrInsufficientReserve = sdkerrors.Register(Codespace, 8, "insufficient reserve")
	ErrUnderflow           = sdkerrors.Register(Codespace, 9, "underflow")
	ErrBountyClosed        = sdkerrors.Register(Codespace, 10, "bounty closed")
	ErrOverflow            = sdkerrors.Register(Codespace, 11, "identifier space exhausted")
)

var allErrors = []*sdkerrors.Error{
	ErrInvalidInput,
	ErrNotFound,
	ErrUnauthorized,
	ErrAlreadyVoted,
	ErrProposalClosed,
	ErrInsufficientFunds,
	ErrInsufficientReserve,
	ErrUnderflow,
	ErrBountyClosed,
	ErrOverflow,
}

// ErrorKindFromABCI maps the codespace and code of a failed tx result back to the registered
// error. Returns nil for codes outside of the tbounty codespace.
func ErrorKindFromABCI(codespace string, code uint32) *sdkerrors.Error {
	if codespace != Codespace {
		return nil
	}
	for _, e := range allErrors {
		if e.ABCICode() == code {
			return e
		}
	}
	return nil
}
