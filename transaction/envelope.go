package transaction

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// SigningEnvelope is the blob participants actually pass around while
// collecting signatures. The wallet-rpc's tx set says nothing about how
// many co-signers already signed, and each signing step runs in a fresh
// process, so the running count rides inside the exchanged blob itself:
// build-tx emits the envelope with a zero count, every sign-tx
// increments it, and submit-tx refuses to broadcast below quorum.
type SigningEnvelope struct {
	// TxDataHex is the wallet-rpc multisig tx set, passed through
	// verbatim and never inspected.
	TxDataHex string `json:"tx_data_hex"`
	TxHash    string `json:"tx_hash"`
	// Fee in atomic units, as reported at construction time.
	Fee uint64 `json:"fee"`
	// Signatures counts the applications so far.
	Signatures uint32 `json:"signatures"`
	// Required is the wallet's threshold M.
	Required uint32 `json:"required"`
}

// ReadyToSubmit reports whether quorum has been reached.
func (e SigningEnvelope) ReadyToSubmit() bool {
	return e.Signatures >= e.Required
}

// Encode renders the envelope as a single copy-pastable string.
func (e SigningEnvelope) Encode() string {
	buf, _ := json.Marshal(e)
	return base64.StdEncoding.EncodeToString(buf)
}

// DecodeEnvelope parses a blob produced by Encode. Anything else, raw
// tx set hex included, fails with ErrBadEnvelope: an unknown signature
// count is an error, never assumed to be zero.
func DecodeEnvelope(blob string) (SigningEnvelope, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return SigningEnvelope{}, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	var e SigningEnvelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return SigningEnvelope{}, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	if e.TxDataHex == "" || e.Required == 0 {
		return SigningEnvelope{}, ErrBadEnvelope
	}
	return e, nil
}
