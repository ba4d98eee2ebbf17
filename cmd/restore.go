package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toyinlola/githunk/pkg/gitvcs"
	"github.com/toyinlola/githunk/pkg/hashmap"
	"github.com/toyinlola/githunk/pkg/hunkstore"
	"github.com/toyinlola/githunk/pkg/model"
	"github.com/toyinlola/githunk/pkg/patchbuilder"
	"github.com/toyinlola/githunk/pkg/selector"
)

var (
	restoreAll      bool
	restoreFile     string
	restoreStaged   bool
	restoreUnstaged bool
	restoreDryRun   bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore [hash...]",
	Short: "Discard the selected hunks, from the worktree or (with --staged) the index",
	RunE:  runRestore,
}

func init() {
	restoreCmd.Flags().BoolVar(&restoreAll, "all", false, "restore every hunk in scope")
	restoreCmd.Flags().StringVar(&restoreFile, "file", "", "scope the selection to a single file")
	restoreCmd.Flags().BoolVar(&restoreStaged, "staged", false, "discard the selected staged hunks from the index instead of the worktree")
	restoreCmd.Flags().BoolVar(&restoreUnstaged, "unstaged", false, "discard the selected unstaged hunks from the worktree (the default)")
	restoreCmd.MarkFlagsMutuallyExclusive("staged", "unstaged")
	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "describe what would be restored without changing anything")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo := loadRepo()

	var store *hunkstore.Store
	var err error
	if restoreStaged {
		store, err = stagedStore(ctx, repo, restoreFile)
	} else {
		store, err = unstagedStore(ctx, repo, restoreFile)
	}
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	// A bare --file with no hashes selects every hunk in that file.
	bulk := restoreAll || (restoreFile != "" && len(args) == 0)
	matched, err := resolveSelection(store, args, bulk)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if len(matched) == 0 {
		if restoreStaged {
			return fmt.Errorf("restore: %w: no staged changes", model.ErrNoChangesInScope)
		}
		return fmt.Errorf("restore: %w: no unstaged changes", model.ErrNoChangesInScope)
	}

	if restoreDryRun {
		groups := make([]model.ResultGroup, 0, len(matched))
		for _, m := range matched {
			groups = append(groups, model.ResultGroup{
				FilePath: m.Hunk.FilePath,
				Applied:  []model.AppliedRef{{ShortHash: m.Hunk.ShortHash(), LineSpec: m.LineSpec}},
			})
		}
		return emitResult("would-restore", groups)
	}

	patch, err := patchbuilder.Build(selector.SortForPatch(matched))
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	orch := gitvcs.NewOrchestrator(repo)

	var result *gitvcs.ApplyResult
	if restoreStaged {
		result, err = orch.Apply(ctx, patch, model.ActionUnstage, touchedFiles(matched))
	} else {
		result, err = orch.ApplyToWorktree(ctx, patch, touchedFiles(matched))
	}
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	groups := hashmap.Build(matched, result.OldTarget, result.NewTarget)
	return emitResult("restored", groups)
}
