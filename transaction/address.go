package transaction

import (
	"fmt"

	"github.com/yascherice/monero-multisig/config"
)

const (
	standardAddressLen   = 95
	integratedAddressLen = 106
)

// ValidateAddress checks the shape of a destination address for the
// configured network before it is handed to the gateway: mainnet
// addresses start with '4', testnet and stagenet addresses with '9',
// and only the standard (95) and integrated (106) lengths are accepted.
// This is a string-shape check, not a checksum verification; the
// wallet-rpc performs the full validation.
func ValidateAddress(address string, network config.Network) error {
	if len(address) != standardAddressLen && len(address) != integratedAddressLen {
		return fmt.Errorf("%w: length %d, want %d or %d", ErrInvalidAddress, len(address), standardAddressLen, integratedAddressLen)
	}

	want := byte('4')
	if network == config.Testnet || network == config.Stagenet {
		want = '9'
	}
	if address[0] != want {
		return fmt.Errorf("%w: %s addresses start with %q", ErrInvalidAddress, network, string(want))
	}
	return nil
}
