package transaction

import (
	"context"
	"errors"
	"fmt"

	logging "github.com/ipfs/go-log/v2"

	"github.com/yascherice/monero-multisig/config"
	"github.com/yascherice/monero-multisig/rpc"
)

var log = logging.Logger("transaction")

// Priority selects the fee level for a transfer.
type Priority uint32

const (
	PriorityDefault Priority = 0
	PriorityLow     Priority = 1
	PriorityMedium  Priority = 2
	PriorityHigh    Priority = 3
)

// PriorityFromUint maps the CLI's 0..3 value; anything else falls back
// to the default level.
func PriorityFromUint(v uint32) Priority {
	switch v {
	case 1, 2, 3:
		return Priority(v)
	}
	return PriorityDefault
}

// Destination is one recipient of an outgoing transfer.
type Destination struct {
	Address string
	// Amount in atomic units (1 XMR = 1e12 piconero).
	Amount uint64
}

// wallet-rpc error codes worth mapping to domain errors.
const (
	rpcNotEnoughMoney         = -17
	rpcNotEnoughUnlockedMoney = -37
)

// BuildTransfer constructs an unrelayed multisig transaction and wraps
// it in a fresh signing envelope carrying the wallet's threshold. Every
// destination address is validated locally before the gateway is
// contacted.
func BuildTransfer(ctx context.Context, gw rpc.Gateway, network config.Network, destinations []Destination, priority Priority, required uint32) (SigningEnvelope, error) {
	if len(destinations) == 0 {
		return SigningEnvelope{}, fmt.Errorf("%w: no destinations", ErrInvalidAddress)
	}
	rpcDests := make([]rpc.TransferDestination, 0, len(destinations))
	for _, d := range destinations {
		if err := ValidateAddress(d.Address, network); err != nil {
			return SigningEnvelope{}, err
		}
		rpcDests = append(rpcDests, rpc.TransferDestination{Address: d.Address, Amount: d.Amount})
	}

	res, err := gw.Transfer(ctx, rpcDests, uint32(priority))
	if err != nil {
		var rpcErr *rpc.Error
		if errors.As(err, &rpcErr) && (rpcErr.Code == rpcNotEnoughMoney || rpcErr.Code == rpcNotEnoughUnlockedMoney) {
			return SigningEnvelope{}, fmt.Errorf("%w: %s", ErrInsufficientBalance, rpcErr.Message)
		}
		return SigningEnvelope{}, fmt.Errorf("build transfer: %w", err)
	}

	log.Infow("built multisig transaction", "hash", res.TxHash, "fee", res.Fee)
	return SigningEnvelope{
		TxDataHex: res.MultisigTxset,
		TxHash:    res.TxHash,
		Fee:       res.Fee,
		Required:  required,
	}, nil
}

// ApplySignature applies this participant's signature to a signing
// envelope blob and returns the updated envelope with the count bumped.
// A blob without an envelope is rejected rather than assumed unsigned.
func ApplySignature(ctx context.Context, gw rpc.Gateway, blob string) (SigningEnvelope, error) {
	env, err := DecodeEnvelope(blob)
	if err != nil {
		return SigningEnvelope{}, err
	}

	res, err := gw.SignMultisig(ctx, env.TxDataHex)
	if err != nil {
		return SigningEnvelope{}, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	env.TxDataHex = res.TxDataHex
	if len(res.TxHashList) > 0 {
		env.TxHash = res.TxHashList[0]
	}
	env.Signatures++
	log.Infow("applied signature", "hash", env.TxHash, "signatures", env.Signatures, "required", env.Required)
	return env, nil
}

// Submit broadcasts a fully signed envelope blob and returns the
// confirmed transaction hash. Submission below quorum is refused
// locally; the daemon never sees an under-signed tx set.
func Submit(ctx context.Context, gw rpc.Gateway, blob string) (string, error) {
	env, err := DecodeEnvelope(blob)
	if err != nil {
		return "", err
	}
	if !env.ReadyToSubmit() {
		return "", fmt.Errorf("%w: have %d, need %d", ErrInsufficientSignatures, env.Signatures, env.Required)
	}

	res, err := gw.SubmitMultisig(ctx, env.TxDataHex)
	if err != nil {
		var rpcErr *rpc.Error
		if errors.As(err, &rpcErr) {
			return "", fmt.Errorf("%w: %s", ErrRejected, rpcErr.Message)
		}
		return "", fmt.Errorf("submit transfer: %w", err)
	}
	if len(res.TxHashList) == 0 {
		return "", fmt.Errorf("%w: daemon reported no transaction hash", ErrRejected)
	}
	log.Infow("submitted multisig transaction", "hash", res.TxHashList[0])
	return res.TxHashList[0], nil
}
