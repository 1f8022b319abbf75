package transaction

import (
	"fmt"
	"strconv"
	"strings"
)

// piconeroPerXMR is the number of atomic units in one XMR.
const piconeroPerXMR = 1_000_000_000_000

// FormatXMR renders an atomic-unit amount with the full 12 decimal
// places, e.g. 1_500_000_000 -> "0.001500000000".
func FormatXMR(piconero uint64) string {
	return fmt.Sprintf("%d.%012d", piconero/piconeroPerXMR, piconero%piconeroPerXMR)
}

// ParseXMR converts a decimal XMR string back to atomic units. At most
// 12 fractional digits are allowed; FormatXMR output round-trips
// exactly.
func ParseXMR(s string) (uint64, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse XMR amount %q: %w", s, err)
	}
	if len(frac) > 12 {
		return 0, fmt.Errorf("parse XMR amount %q: more than 12 decimal places", s)
	}
	var f uint64
	if frac != "" {
		// Right-pad so "0.0015" means 0.001500000000.
		f, err = strconv.ParseUint(frac+strings.Repeat("0", 12-len(frac)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse XMR amount %q: %w", s, err)
		}
	}
	return w*piconeroPerXMR + f, nil
}
