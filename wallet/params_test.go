package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMultisigParams(t *testing.T) {
	cases := []struct {
		name      string
		threshold uint32
		total     uint32
		ok        bool
	}{
		{"2-of-3", 2, 3, true},
		{"2-of-2", 2, 2, true},
		{"1-of-2", 1, 2, true},
		{"5-of-5", 5, 5, true},
		{"single participant", 1, 1, false},
		{"zero participants", 0, 0, false},
		{"zero threshold", 0, 3, false},
		{"threshold above total", 4, 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params, err := NewMultisigParams(tc.threshold, tc.total, "test")
			if !tc.ok {
				require.ErrorIs(t, err, ErrInvalidParams)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.threshold, params.Threshold)
			assert.Equal(t, tc.total, params.Total)
			assert.Equal(t, "test", params.Label)
		})
	}
}
