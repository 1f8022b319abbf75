package rpc

import "context"

// Gateway is the narrow contract this tool requires from the external
// wallet-RPC service. Every cryptographic operation happens on the far
// side of this interface; callers only move opaque blobs through it.
type Gateway interface {
	// PrepareMultisig returns this wallet's initial multisig info blob.
	PrepareMultisig(ctx context.Context) (string, error)
	// MakeMultisig runs the first key exchange round with the initial
	// info blobs of every other participant.
	MakeMultisig(ctx context.Context, peerInfo []string, threshold uint32, password string) (*ExchangeResult, error)
	// ExchangeMultisigKeys runs a follow-up key exchange round.
	ExchangeMultisigKeys(ctx context.Context, peerInfo []string, password string) (*ExchangeResult, error)
	// ExportMultisigInfo returns partial key images for balance sync.
	ExportMultisigInfo(ctx context.Context) (string, error)
	// ImportMultisigInfo ingests co-signers' partial key images and
	// reports how many outputs were updated.
	ImportMultisigInfo(ctx context.Context, info []string) (uint64, error)
	// Transfer builds an unrelayed multisig transaction set.
	Transfer(ctx context.Context, destinations []TransferDestination, priority uint32) (*TransferResult, error)
	// SignMultisig applies the local partial signature to a tx set.
	SignMultisig(ctx context.Context, txDataHex string) (*SignResult, error)
	// SubmitMultisig broadcasts a fully signed tx set.
	SubmitMultisig(ctx context.Context, txDataHex string) (*SubmitResult, error)
	// GetBalance reports the wallet's total and unlocked balance.
	GetBalance(ctx context.Context) (*BalanceResult, error)
}

// ExchangeResult is the outcome of one key exchange round as reported
// by the wallet-RPC. A non-empty Address means the exchange finished;
// otherwise MultisigInfo carries the blob for the next round.
type ExchangeResult struct {
	Address      string `json:"address"`
	MultisigInfo string `json:"multisig_info"`
}

// TransferDestination is one recipient of an outgoing transfer, with
// the amount in atomic units (piconero).
type TransferDestination struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

// TransferResult describes an unsigned multisig transaction set.
type TransferResult struct {
	TxHash        string `json:"tx_hash"`
	Fee           uint64 `json:"fee"`
	MultisigTxset string `json:"multisig_txset"`
}

// SignResult carries the tx set after one signature application.
type SignResult struct {
	TxDataHex  string   `json:"tx_data_hex"`
	TxHashList []string `json:"tx_hash_list"`
}

// SubmitResult carries the hashes of broadcast transactions.
type SubmitResult struct {
	TxHashList []string `json:"tx_hash_list"`
}

// BalanceResult reports wallet balances in atomic units.
type BalanceResult struct {
	Balance         uint64 `json:"balance"`
	UnlockedBalance uint64 `json:"unlocked_balance"`
}
