package wallet

import "fmt"

// StateKind tags the persisted wallet state record.
type StateKind string

const (
	// StateCreated: wallet initialized locally, no key material
	// exchanged yet.
	StateCreated StateKind = "created"
	// StateKeyExchange: at least one exchange round done, more needed.
	StateKeyExchange StateKind = "key_exchange_in_progress"
	// StateReady: key exchange finished, wallet can sign and spend.
	StateReady StateKind = "ready"
)

func (k StateKind) valid() bool {
	switch k {
	case StateCreated, StateKeyExchange, StateReady:
		return true
	}
	return false
}

// State is the single durable record of coordination progress for one
// wallet. Each participant owns exactly one, evolving independently of
// the other participants' copies.
type State struct {
	Kind       StateKind      `json:"state"`
	WalletPath string         `json:"wallet_path"`
	Params     MultisigParams `json:"params"`
	// Round counts completed exchange rounds. Advisory only: the
	// gateway's response, not this number, decides completion.
	Round uint32 `json:"round,omitempty"`
	// Address is set once the wallet is ready.
	Address string `json:"address,omitempty"`
}

// NewCreatedState is the record written by create-wallet.
func NewCreatedState(walletPath string, params MultisigParams) *State {
	return &State{
		Kind:       StateCreated,
		WalletPath: walletPath,
		Params:     params,
	}
}

// KeyExchangeResult is the outcome of one exchange round. Exactly one
// of the two fields is set: NextInfo for a partial round that needs
// redistribution, Address when the gateway reports the wallet done.
type KeyExchangeResult struct {
	NextInfo string
	Address  string
}

// Complete reports whether the exchange finished with this round.
func (r KeyExchangeResult) Complete() bool {
	return r.Address != ""
}

// AdvanceExchange applies the outcome of one exchange round. Valid only
// from Created or KeyExchangeInProgress; a Ready wallet has nothing
// left to exchange. Any number of partial rounds is tolerated before
// the gateway reports completion.
func (s *State) AdvanceExchange(result KeyExchangeResult) error {
	switch s.Kind {
	case StateCreated, StateKeyExchange:
	case StateReady:
		return ErrAlreadySetUp
	default:
		return fmt.Errorf("%w: unknown state %q", ErrStateCorrupt, string(s.Kind))
	}

	if result.Complete() {
		s.Kind = StateReady
		s.Address = result.Address
		s.Round++
		return nil
	}
	s.Kind = StateKeyExchange
	s.Round++
	return nil
}

// EnsureReady gates transaction operations on a finished key exchange.
func (s *State) EnsureReady() error {
	if s.Kind != StateReady {
		return ErrNotReady
	}
	return nil
}

func (s *State) String() string {
	switch s.Kind {
	case StateCreated:
		return fmt.Sprintf("created %s wallet, awaiting first key exchange round", s.Params)
	case StateKeyExchange:
		return fmt.Sprintf("%s wallet, key exchange in progress (round %d)", s.Params, s.Round)
	case StateReady:
		return fmt.Sprintf("%s wallet ready, address %s", s.Params, s.Address)
	}
	return fmt.Sprintf("unknown state %q", string(s.Kind))
}
