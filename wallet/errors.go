package wallet

import "errors"

var (
	// ErrInvalidParams rejects malformed multisig parameters or round
	// input before any RPC call is made.
	ErrInvalidParams = errors.New("invalid multisig parameters")
	// ErrStateNotFound means no wallet state record exists in the data
	// directory.
	ErrStateNotFound = errors.New("wallet not found")
	// ErrStateCorrupt means a state record exists but cannot be decoded.
	ErrStateCorrupt = errors.New("wallet state is corrupt")
	// ErrAlreadyExists rejects creating a second wallet in a directory
	// that already holds one.
	ErrAlreadyExists = errors.New("wallet already exists")
	// ErrAlreadySetUp rejects key exchange on a finished wallet.
	ErrAlreadySetUp = errors.New("wallet is already fully set up")
	// ErrKeyExchangeFailed wraps any gateway failure during a round.
	ErrKeyExchangeFailed = errors.New("key exchange failed")
	// ErrNotReady rejects transaction operations before the key
	// exchange has completed.
	ErrNotReady = errors.New("wallet is not ready - complete key exchange first")
)
