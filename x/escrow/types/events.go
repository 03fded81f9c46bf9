package types

// escrow module event types
const (
	EventTypeReserve = "escrow_reserve"
	EventTypeRelease = "escrow_release"
	EventTypeRefund  = "escrow_refund"

	AttributeKeyBountyID  = "bounty_id"
	AttributeKeyDepositer = "depositer"
	AttributeKeyRecipient = "recipient"
	AttributeKeyAmount    = "amount"
	AttributeKeyReserved  = "reserved"
)
