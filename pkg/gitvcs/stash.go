package gitvcs

import (
	"context"
	"fmt"
)

// StashStore adds a stash entry pointing at an already-built commit
// object, with the given display message.
func (r *Repo) StashStore(ctx context.Context, commit, message string) error {
	_, err := r.run(ctx, nil, "stash", "store", "-m", message, commit)
	if err != nil {
		return fmt.Errorf("gitvcs: stash store: %w", err)
	}
	return nil
}

// StashPop pops the most recent stash entry. A non-zero exit (typically
// a conflicting worktree) is surfaced to the caller verbatim.
func (r *Repo) StashPop(ctx context.Context) error {
	out, ok, err := r.runAllowFail(ctx, nil, "stash", "pop")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("gitvcs: stash pop: %s", string(out))
	}
	return nil
}
