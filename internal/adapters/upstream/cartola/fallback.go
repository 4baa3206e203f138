package cartola

import (
	"fmt"
	"os"
)

// LoadLocal reads a market snapshot from a local JSON file with the same
// (looser) shape as the upstream feed. Used when the fetch fails so the
// service can keep resolving against the last dataset shipped with it.
func LoadLocal(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cartola: open fallback dataset: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
