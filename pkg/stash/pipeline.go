package stash

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/toyinlola/githunk/pkg/gitvcs"
	"github.com/toyinlola/githunk/pkg/model"
	"github.com/toyinlola/githunk/pkg/patchbuilder"
	"github.com/toyinlola/githunk/pkg/selector"
)

// Pipeline builds a stash entry from a hunk selection, using repo for
// every VCS operation (spec.md §4.G).
type Pipeline struct {
	repo *gitvcs.Repo

	// BranchPrefix, when true, prefixes a synthesized default message
	// with the current branch name (config's
	// stash.branch_prefix_in_stash_message), matching the habit of
	// naming the branch in an ad hoc stash message.
	BranchPrefix bool
}

// New returns a Pipeline operating on repo.
func New(repo *gitvcs.Repo) *Pipeline {
	return &Pipeline{repo: repo}
}

// Stash builds and stores a stash entry capturing exactly the selected
// hunks, then cleans the worktree of those changes. message, if empty,
// is synthesized as "git-hunk stash: <comma-joined file list>" (or
// "<branch>: git-hunk stash: <files>" when BranchPrefix is set).
func (p *Pipeline) Stash(ctx context.Context, selected []model.MatchedHunk, message string) error {
	if len(selected) == 0 {
		return fmt.Errorf("%w: nothing selected to stash", model.ErrNoChangesInScope)
	}

	tracked, untracked := splitTrackedUntracked(selected)

	head, err := p.repo.ResolveHead(ctx)
	if err != nil {
		return fmt.Errorf("stash: %w", err)
	}

	if message == "" {
		message = "git-hunk stash: " + joinFilePaths(selected)
		if p.BranchPrefix {
			if branch, detached := p.repo.CurrentBranch(ctx); !detached && branch != "" {
				message = branch + ": " + message
			}
		}
	}

	stashTree, indexRelativePatch, err := p.buildStashTree(ctx, tracked, head)
	if err != nil {
		return fmt.Errorf("stash: %w", err)
	}

	indexTree, err := p.repo.WriteTree(ctx)
	if err != nil {
		return fmt.Errorf("stash: snapshotting current index: %w", err)
	}
	indexCommit, err := p.repo.CommitTree(ctx, indexTree, "index on "+message, head)
	if err != nil {
		return fmt.Errorf("stash: %w", err)
	}

	parents := []string{head, indexCommit}

	if len(untracked) > 0 {
		untrackedCommit, err := p.commitUntracked(ctx, untracked, head)
		if err != nil {
			return fmt.Errorf("stash: %w", err)
		}
		parents = append(parents, untrackedCommit)
	}

	stashCommit, err := p.repo.CommitTree(ctx, stashTree, message, parents...)
	if err != nil {
		return fmt.Errorf("stash: %w", err)
	}

	if err := p.repo.StashStore(ctx, stashCommit, message); err != nil {
		return fmt.Errorf("stash: %w", err)
	}

	p.cleanupWorktree(ctx, indexRelativePatch, untracked)

	return nil
}

// buildStashTree builds stash_tree per §4.G step 2: an index-relative
// combined patch for reverse-apply later, matched against HEAD hunks,
// applied in a scratch index rooted at HEAD^{tree}. Returns the empty
// patch and HEAD^{tree} when there are no tracked hunks selected.
func (p *Pipeline) buildStashTree(ctx context.Context, tracked []model.MatchedHunk, head string) (tree string, indexRelativePatch []byte, err error) {
	headTree, err := p.repo.ResolveHeadTree(ctx)
	if err != nil {
		return "", nil, err
	}
	if len(tracked) == 0 {
		return headTree, nil, nil
	}

	indexRelativePatch, err = patchbuilder.Build(selector.SortForPatch(tracked))
	if err != nil {
		return "", nil, err
	}

	paths := filePaths(tracked)
	headHunks, err := p.repo.HeadVsWorktree(ctx, paths)
	if err != nil {
		return "", nil, fmt.Errorf("querying HEAD-relative diff: %w", err)
	}

	matched, err := matchIndexToHead(tracked, headHunks)
	if err != nil {
		return "", nil, err
	}

	headRelativePatch, err := patchbuilder.Build(selector.SortForPatch(matched))
	if err != nil {
		return "", nil, err
	}

	scratch, err := gitvcs.NewScratchIndex(p.repo)
	if err != nil {
		return "", nil, err
	}
	defer func() {
		if cerr := scratch.Close(); cerr != nil {
			slog.Warn("stash: failed to remove scratch index", "error", cerr)
		}
	}()

	if err := scratch.ReadTree(ctx, head); err != nil {
		return "", nil, fmt.Errorf("loading HEAD into scratch index: %w", err)
	}
	if err := scratch.ApplyToIndex(ctx, headRelativePatch, false); err != nil {
		return "", nil, fmt.Errorf("applying HEAD-relative patch to scratch index: %w", err)
	}
	stashTree, err := scratch.WriteTree(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("writing scratch tree: %w", err)
	}

	return stashTree, indexRelativePatch, nil
}

// commitUntracked hashes each selected untracked file into the object
// store, records it in a fresh scratch index, and commits the resulting
// tree against HEAD.
func (p *Pipeline) commitUntracked(ctx context.Context, untracked []model.MatchedHunk, head string) (string, error) {
	scratch, err := gitvcs.NewScratchIndex(p.repo)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := scratch.Close(); cerr != nil {
			slog.Warn("stash: failed to remove untracked scratch index", "error", cerr)
		}
	}()

	for _, m := range filePathSet(untracked) {
		blob, err := p.repo.HashObject(ctx, m, true)
		if err != nil {
			return "", fmt.Errorf("hashing untracked file %s: %w", m, err)
		}
		mode, err := gitvcs.FileMode(m)
		if err != nil {
			return "", err
		}
		if err := scratch.UpdateIndexCacheInfo(ctx, mode, blob, m); err != nil {
			return "", fmt.Errorf("staging untracked file %s: %w", m, err)
		}
	}

	tree, err := scratch.WriteTree(ctx)
	if err != nil {
		return "", fmt.Errorf("writing untracked tree: %w", err)
	}

	branch, detached := p.repo.CurrentBranch(ctx)
	if detached {
		branch = "detached HEAD"
	}
	summary, err := p.repo.HeadSummary(ctx)
	if err != nil {
		summary = head
	}

	return p.repo.CommitTree(ctx, tree, fmt.Sprintf("untracked files on %s: %s", branch, summary), head)
}

// cleanupWorktree reverse-applies the index-relative patch to the
// worktree and deletes the selected untracked files. A failure here is a
// warning, not an error: the stash entry has already been stored, so the
// only remaining recourse is to tell the user to `stash pop`.
func (p *Pipeline) cleanupWorktree(ctx context.Context, indexRelativePatch []byte, untracked []model.MatchedHunk) {
	if len(indexRelativePatch) > 0 {
		if err := p.repo.ApplyToWorktree(ctx, indexRelativePatch, true); err != nil {
			slog.Warn("worktree cleanup failed after stash was stored; run 'git-hunk stash pop' to recover", "error", err)
			return
		}
	}
	for _, m := range filePathSet(untracked) {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove stashed untracked file; run 'git-hunk stash pop' to recover", "file", m, "error", err)
		}
	}
}

func splitTrackedUntracked(selected []model.MatchedHunk) (tracked, untracked []model.MatchedHunk) {
	for _, m := range selected {
		if m.Hunk.IsUntracked {
			untracked = append(untracked, m)
		} else {
			tracked = append(tracked, m)
		}
	}
	return tracked, untracked
}

func filePaths(matched []model.MatchedHunk) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range matched {
		if !seen[m.Hunk.FilePath] {
			seen[m.Hunk.FilePath] = true
			out = append(out, m.Hunk.FilePath)
		}
	}
	return out
}

// filePathSet is an alias for filePaths kept distinct for readability at
// untracked-file call sites, where "file path" really means "whole file"
// rather than "scope for a diff".
func filePathSet(matched []model.MatchedHunk) []string {
	return filePaths(matched)
}

func joinFilePaths(matched []model.MatchedHunk) string {
	paths := filePaths(matched)
	out := ""
	for i, p := range paths {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
