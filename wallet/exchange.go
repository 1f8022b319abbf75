package wallet

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yascherice/monero-multisig/rpc"
)

// walletFileName is where the wallet-rpc side keeps the wallet itself.
const walletFileName = "wallet"

// Create initializes a fresh multisig wallet in dataDir: it asks the
// gateway for this participant's initial multisig info, persists the
// Created record, and returns the info blob to share with every other
// participant. Fails with ErrAlreadyExists if the directory already
// holds a wallet.
func Create(ctx context.Context, gw rpc.Gateway, dataDir string, params MultisigParams) (*State, string, error) {
	if _, err := LoadState(dataDir); err == nil {
		return nil, "", fmt.Errorf("%w at %s", ErrAlreadyExists, dataDir)
	} else if !errors.Is(err, ErrStateNotFound) {
		// A corrupt record also blocks creation; overwriting it would
		// silently discard exchange progress.
		return nil, "", err
	}

	info, err := gw.PrepareMultisig(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("prepare multisig: %w", err)
	}

	state := NewCreatedState(filepath.Join(dataDir, walletFileName), params)
	if err := SaveState(dataDir, state); err != nil {
		return nil, "", err
	}
	log.Infow("created multisig wallet", "threshold", params.Threshold, "total", params.Total, "label", params.Label)
	return state, info, nil
}

// RunExchangeRound performs one key exchange round against the gateway
// and interprets the outcome. It never mutates state or disk; the
// caller applies the result via State.AdvanceExchange and saves. On the
// very first round (state Created) the blobs of all other participants
// are required, so an incomplete peer set is rejected before any RPC
// call.
func RunExchangeRound(ctx context.Context, gw rpc.Gateway, state *State, peerInfo []string, password string) (KeyExchangeResult, error) {
	switch state.Kind {
	case StateCreated:
		want := int(state.Params.Total) - 1
		if len(peerInfo) != want {
			return KeyExchangeResult{}, fmt.Errorf(
				"%w: first round needs multisig info from all %d other participants, got %d",
				ErrInvalidParams, want, len(peerInfo))
		}
	case StateKeyExchange:
		if len(peerInfo) == 0 {
			return KeyExchangeResult{}, fmt.Errorf("%w: no peer multisig info given", ErrInvalidParams)
		}
	case StateReady:
		return KeyExchangeResult{}, ErrAlreadySetUp
	default:
		return KeyExchangeResult{}, fmt.Errorf("%w: unknown state %q", ErrStateCorrupt, string(state.Kind))
	}

	var (
		res *rpc.ExchangeResult
		err error
	)
	if state.Kind == StateCreated {
		res, err = gw.MakeMultisig(ctx, peerInfo, state.Params.Threshold, password)
	} else {
		res, err = gw.ExchangeMultisigKeys(ctx, peerInfo, password)
	}
	if err != nil {
		return KeyExchangeResult{}, fmt.Errorf("%w: %v", ErrKeyExchangeFailed, err)
	}

	// The gateway decides termination: an address means the wallet is
	// fully set up, a blob means at least one more round. The local
	// round counter never overrides this.
	if res.Address != "" {
		log.Infow("key exchange complete", "round", state.Round+1)
		return KeyExchangeResult{Address: res.Address}, nil
	}
	if res.MultisigInfo == "" {
		return KeyExchangeResult{}, fmt.Errorf("%w: gateway returned neither an address nor next-round info", ErrKeyExchangeFailed)
	}
	log.Infow("key exchange round done, more rounds needed", "round", state.Round+1)
	return KeyExchangeResult{NextInfo: res.MultisigInfo}, nil
}
