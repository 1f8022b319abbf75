package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("wallet")

// stateFileName holds the one state record a data directory may carry.
const stateFileName = "multisig_state.json"

// StatePath returns the location of the state record for a data dir.
func StatePath(dataDir string) string {
	return filepath.Join(dataDir, stateFileName)
}

// LoadState reads the wallet state record. ErrStateNotFound when no
// record exists; ErrStateCorrupt when one exists but does not decode.
func LoadState(dataDir string) (*State, error) {
	buf, err := os.ReadFile(StatePath(dataDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrStateNotFound, dataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("read wallet state: %w", err)
	}

	var state State
	if err := json.Unmarshal(buf, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateCorrupt, err)
	}
	if !state.Kind.valid() {
		return nil, fmt.Errorf("%w: unknown state %q", ErrStateCorrupt, string(state.Kind))
	}
	return &state, nil
}

// SaveState persists the record atomically: the JSON is written to a
// temp file in the same directory and renamed over the old record, so a
// crash mid-write never leaves a partial record behind. Concurrent
// writers on one data directory are not guarded against; this tool
// assumes a single local operator.
func SaveState(dataDir string, state *State) error {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	buf, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode wallet state: %w", err)
	}

	tmp, err := os.CreateTemp(dataDir, stateFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("write wallet state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return fmt.Errorf("write wallet state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync wallet state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write wallet state: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("write wallet state: %w", err)
	}
	if err := os.Rename(tmp.Name(), StatePath(dataDir)); err != nil {
		return fmt.Errorf("commit wallet state: %w", err)
	}
	log.Debugw("saved wallet state", "dir", dataDir, "state", state.Kind, "round", state.Round)
	return nil
}
