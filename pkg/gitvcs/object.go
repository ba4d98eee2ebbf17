package gitvcs

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// ReadTree populates the receiver's index (honoring IndexFile, so this
// is normally called on a scratch-index Repo) from the given tree-ish.
func (r *Repo) ReadTree(ctx context.Context, treeish string) error {
	_, err := r.run(ctx, nil, "read-tree", treeish)
	return err
}

// WriteTree writes the receiver's index out as a tree object and returns
// its object ID.
func (r *Repo) WriteTree(ctx context.Context) (string, error) {
	out, err := r.run(ctx, nil, "write-tree")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CommitTree creates a commit object with the given tree and parents,
// returning its object ID. message becomes the commit's log message.
func (r *Repo) CommitTree(ctx context.Context, tree, message string, parents ...string) (string, error) {
	args := []string{"commit-tree", tree}
	for _, p := range parents {
		args = append(args, "-p", p)
	}
	args = append(args, "-m", message)
	out, err := r.run(ctx, nil, args...)
	if err != nil {
		return "", fmt.Errorf("gitvcs: commit-tree: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// HashObject hashes a worktree file into the object store (without
// writing it, unless write is true) and returns the blob ID.
func (r *Repo) HashObject(ctx context.Context, path string, write bool) (string, error) {
	args := []string{"hash-object"}
	if write {
		args = append(args, "-w")
	}
	args = append(args, "--", path)
	out, err := r.run(ctx, nil, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// FileMode returns the git tree mode ("100755" or "100644") for path,
// based on its executable bit.
func FileMode(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("gitvcs: stat %s: %w", path, err)
	}
	if info.Mode()&0o111 != 0 {
		return "100755", nil
	}
	return "100644", nil
}

// UpdateIndexCacheInfo associates a blob + mode + path in the receiver's
// index (normally a scratch index), used to stage a hashed untracked
// file without touching the worktree or the process's real index.
func (r *Repo) UpdateIndexCacheInfo(ctx context.Context, mode, blob, path string) error {
	_, err := r.run(ctx, nil, "update-index", "--add", "--cacheinfo", mode, blob, path)
	return err
}
