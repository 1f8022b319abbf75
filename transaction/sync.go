package transaction

import (
	"context"
	"fmt"

	"github.com/yascherice/monero-multisig/rpc"
)

// ExportInfo exports this wallet's partial key images so co-signers can
// compute an accurate balance. The blob is opaque; it is shared with
// peers exactly like a key-exchange blob.
func ExportInfo(ctx context.Context, gw rpc.Gateway) (string, error) {
	info, err := gw.ExportMultisigInfo(ctx)
	if err != nil {
		return "", fmt.Errorf("export multisig info: %w", err)
	}
	return info, nil
}

// ImportInfo ingests co-signers' partial key images, synchronizing the
// balance before transaction construction. Returns the number of
// outputs the wallet updated.
func ImportInfo(ctx context.Context, gw rpc.Gateway, info []string) (uint64, error) {
	if len(info) == 0 {
		return 0, fmt.Errorf("import multisig info: no blobs given")
	}
	n, err := gw.ImportMultisigInfo(ctx, info)
	if err != nil {
		return 0, fmt.Errorf("import multisig info: %w", err)
	}
	log.Infow("imported multisig info", "outputs_updated", n)
	return n, nil
}

// AbbreviateHex shortens a long blob for display: first 8 and last 8
// characters.
func AbbreviateHex(hex string) string {
	if len(hex) <= 20 {
		return hex
	}
	return hex[:8] + "..." + hex[len(hex)-8:]
}
