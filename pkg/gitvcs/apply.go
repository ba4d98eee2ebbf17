package gitvcs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/toyinlola/githunk/pkg/model"
)

// ApplyToIndex applies patch to the index (git apply --cached), reversing
// it when reverse is true (unstage). A non-zero exit means the patch
// would not apply; the index is left untouched in that case.
func (r *Repo) ApplyToIndex(ctx context.Context, patch []byte, reverse bool) error {
	return r.applyPatch(ctx, patch, true, reverse)
}

// ApplyToWorktree applies patch to the worktree only (no --cached),
// reversing it when reverse is true (restore and the stash worktree
// cleanup pass true to discard the patch's changes).
func (r *Repo) ApplyToWorktree(ctx context.Context, patch []byte, reverse bool) error {
	return r.applyPatch(ctx, patch, false, reverse)
}

func (r *Repo) applyPatch(ctx context.Context, patch []byte, cached, reverse bool) error {
	args := []string{"apply", "--unidiff-zero"}
	if cached {
		args = append(args, "--cached")
	}
	if reverse {
		args = append(args, "-R")
	}
	args = append(args, "-")

	_, ok, err := r.runAllowFail(ctx, patch, args...)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrPatchRefused
	}
	return nil
}

// Orchestrator implements the Apply Orchestrator (spec.md §4.E): it
// performs one VCS apply (to the index or the worktree) and, around it,
// captures the before/after target-side diffs that the Hash Mapper
// (§4.F) needs to attribute results back to inputs.
type Orchestrator struct {
	repo *Repo
}

// NewOrchestrator returns an Orchestrator operating on repo.
func NewOrchestrator(repo *Repo) *Orchestrator {
	return &Orchestrator{repo: repo}
}

// ApplyResult carries the before/after target-side hunks an apply
// produced, for consumption by pkg/hashmap. Either slice may be nil if
// the corresponding capture diff failed — capture failures are
// non-fatal per §4.E, so the caller degrades to "applied, result
// unknown" rather than aborting.
type ApplyResult struct {
	OldTarget []model.Hunk
	NewTarget []model.Hunk
}

// Apply stages or unstages patch against the index. action distinguishes
// ActionStage (reverse=false) from ActionUnstage (reverse=true); paths
// bounds the before/after capture diffs to the files the selection
// touched.
func (o *Orchestrator) Apply(ctx context.Context, patch []byte, action model.ApplyAction, paths []string) (*ApplyResult, error) {
	reverse := action == model.ActionUnstage

	before, err := o.repo.IndexVsHead(ctx, paths)
	if err != nil {
		slog.Warn("gitvcs: pre-apply capture diff failed, result attribution degraded", "error", err)
		before = nil
	}

	if err := o.repo.ApplyToIndex(ctx, patch, reverse); err != nil {
		return nil, fmt.Errorf("gitvcs: apply to index: %w", err)
	}

	after, err := o.repo.IndexVsHead(ctx, paths)
	if err != nil {
		slog.Warn("gitvcs: post-apply capture diff failed, result attribution degraded", "error", err)
		after = nil
	}

	return &ApplyResult{OldTarget: before, NewTarget: after}, nil
}

// ApplyToWorktree discards patch from the worktree (restore). The
// before/after captures are worktree-vs-index diffs, since restore's
// target is the worktree, not the index.
func (o *Orchestrator) ApplyToWorktree(ctx context.Context, patch []byte, paths []string) (*ApplyResult, error) {
	before, err := o.repo.WorktreeVsIndex(ctx, paths)
	if err != nil {
		slog.Warn("gitvcs: pre-restore capture diff failed, result attribution degraded", "error", err)
		before = nil
	}

	if err := o.repo.ApplyToWorktree(ctx, patch, true); err != nil {
		return nil, fmt.Errorf("gitvcs: apply to worktree: %w", err)
	}

	after, err := o.repo.WorktreeVsIndex(ctx, paths)
	if err != nil {
		slog.Warn("gitvcs: post-restore capture diff failed, result attribution degraded", "error", err)
		after = nil
	}

	return &ApplyResult{OldTarget: before, NewTarget: after}, nil
}
