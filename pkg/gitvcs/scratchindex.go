package gitvcs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ScratchIndex is a temporary index file, isolated from the process's
// working index, used by the stash pipeline to build trees without
// disturbing whatever is already staged (spec.md §4.G, §5). Callers must
// defer Close to guarantee the file is removed on every exit path.
type ScratchIndex struct {
	*Repo
	path string
}

// NewScratchIndex picks a scratch index path under os.TempDir, named
// with a random suffix, and returns a Repo scoped to it via
// GIT_INDEX_FILE. No file exists at that path when it returns.
func NewScratchIndex(repo *Repo) (*ScratchIndex, error) {
	name := fmt.Sprintf("githunk-index-%s", uuid.New().String())
	path := filepath.Join(os.TempDir(), name)

	// git creates the index lazily on first write. Creating the file
	// with O_EXCL only checks that the name is not already in use; it
	// is removed again right away, so the name is not held reserved.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("gitvcs: creating scratch index %s: %w", path, err)
	}
	f.Close()
	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("gitvcs: reserving scratch index %s: %w", path, err)
	}

	return &ScratchIndex{Repo: repo.WithIndex(path), path: path}, nil
}

// Close deletes the scratch index file. Safe to call even if the file
// was never written (git only materializes it on first read-tree or
// update-index).
func (s *ScratchIndex) Close() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("gitvcs: removing scratch index %s: %w", s.path, err)
	}
	return nil
}
