package transaction

import "errors"

var (
	// ErrInsufficientBalance maps the wallet-RPC "not enough money"
	// rejection during transfer construction.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAddress rejects a destination before any RPC call.
	ErrInvalidAddress = errors.New("invalid destination address")
	// ErrSigningFailed wraps gateway failures while applying a
	// signature.
	ErrSigningFailed = errors.New("signing failed")
	// ErrInsufficientSignatures blocks submission below quorum.
	ErrInsufficientSignatures = errors.New("not enough signatures")
	// ErrRejected wraps a daemon-side refusal to accept a submitted
	// transaction.
	ErrRejected = errors.New("transaction rejected by daemon")
	// ErrBadEnvelope means tx data was passed that does not carry the
	// signing envelope, so the signature count cannot be determined.
	ErrBadEnvelope = errors.New("cannot determine signature count: tx data is not a signing envelope")
)
