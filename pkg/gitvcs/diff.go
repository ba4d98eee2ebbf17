package gitvcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyinlola/githunk/pkg/diffparse"
	"github.com/toyinlola/githunk/pkg/model"
)

// WorktreeVsIndex produces the unstaged diff: index compared against the
// checkout. Hunks come back WorktreeRelative. paths scopes the diff to a
// file list; an empty paths covers the whole tree.
func (r *Repo) WorktreeVsIndex(ctx context.Context, paths []string) ([]model.Hunk, error) {
	out, err := r.diffRaw(ctx, nil, paths)
	if err != nil {
		return nil, err
	}
	return diffparse.Parse(out, model.WorktreeRelative)
}

// IndexVsHead produces the staged diff: HEAD compared against the index.
// Hunks come back HeadRelative.
func (r *Repo) IndexVsHead(ctx context.Context, paths []string) ([]model.Hunk, error) {
	out, err := r.diffRaw(ctx, []string{"--cached"}, paths)
	if err != nil {
		return nil, err
	}
	return diffparse.Parse(out, model.HeadRelative)
}

// HeadVsWorktree produces HEAD compared directly against the checkout,
// bypassing the index entirely. Used by the stash pipeline's two-diff
// strategy (§4.G) to see staged-plus-unstaged state as a single diff.
// Hunks come back HeadRelative.
func (r *Repo) HeadVsWorktree(ctx context.Context, paths []string) ([]model.Hunk, error) {
	args := []string{"diff", "--no-color", fmt.Sprintf("-U%d", r.contextLines()), "HEAD"}
	args = appendPaths(args, paths)
	out, err := r.run(ctx, nil, args...)
	if err != nil {
		return nil, err
	}
	return diffparse.Parse(out, model.HeadRelative)
}

func (r *Repo) diffRaw(ctx context.Context, extra []string, paths []string) ([]byte, error) {
	args := []string{"diff", "--no-color", fmt.Sprintf("-U%d", r.contextLines())}
	args = append(args, extra...)
	args = appendPaths(args, paths)
	return r.run(ctx, nil, args...)
}

func appendPaths(args []string, paths []string) []string {
	if len(paths) == 0 {
		return args
	}
	args = append(args, "--")
	return append(args, paths...)
}

// UntrackedFiles lists untracked, non-ignored paths relative to Path.
func (r *Repo) UntrackedFiles(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, nil, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// UntrackedDiff synthesizes a unified diff for an untracked file against
// /dev/null, so it can flow through the same parser as tracked hunks.
func (r *Repo) UntrackedDiff(ctx context.Context, path string) ([]model.Hunk, error) {
	out, err := r.run(ctx, nil, "diff", "--no-color", fmt.Sprintf("-U%d", r.contextLines()),
		"--no-index", "--", os.DevNull, path)
	if err != nil {
		// git diff --no-index exits 1 merely to report "files differ",
		// which run() treats as failure; re-run tolerantly.
		out2, ok, runErr := r.runAllowFail(ctx, nil, "diff", "--no-color",
			fmt.Sprintf("-U%d", r.contextLines()), "--no-index", "--", os.DevNull, path)
		if runErr != nil {
			return nil, runErr
		}
		if !ok && len(out2) == 0 {
			return nil, fmt.Errorf("gitvcs: diffing untracked file %s: %w", path, err)
		}
		out = out2
	}

	hunks, err := diffparse.Parse(out, model.WorktreeRelative)
	if err != nil {
		return nil, err
	}
	for i := range hunks {
		hunks[i].IsUntracked = true
		hunks[i].FilePath = filepath.ToSlash(path)
	}
	return hunks, nil
}
