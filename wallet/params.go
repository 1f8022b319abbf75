package wallet

import "fmt"

// MultisigParams describes an M-of-N wallet configuration.
type MultisigParams struct {
	Threshold uint32 `json:"threshold"`
	Total     uint32 `json:"total"`
	Label     string `json:"label"`
}

// NewMultisigParams validates and builds an M-of-N configuration.
// Multisig needs at least two participants; the threshold may equal the
// total (N-of-N) or be below it (M-of-N), the round count differs but
// both are valid.
func NewMultisigParams(threshold, total uint32, label string) (MultisigParams, error) {
	if total < 2 {
		return MultisigParams{}, fmt.Errorf("%w: need at least 2 participants, got %d", ErrInvalidParams, total)
	}
	if threshold < 1 {
		return MultisigParams{}, fmt.Errorf("%w: threshold must be at least 1", ErrInvalidParams)
	}
	if threshold > total {
		return MultisigParams{}, fmt.Errorf("%w: threshold %d exceeds participant count %d", ErrInvalidParams, threshold, total)
	}
	return MultisigParams{Threshold: threshold, Total: total, Label: label}, nil
}

func (p MultisigParams) String() string {
	return fmt.Sprintf("%d-of-%d %q", p.Threshold, p.Total, p.Label)
}
