package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toyinlola/githunk/pkg/gitvcs"
	"github.com/toyinlola/githunk/pkg/hashmap"
	"github.com/toyinlola/githunk/pkg/model"
	"github.com/toyinlola/githunk/pkg/patchbuilder"
	"github.com/toyinlola/githunk/pkg/selector"
)

var unstageAll bool

var unstageCmd = &cobra.Command{
	Use:   "unstage [hash...]",
	Short: "Unstage the selected staged hunks",
	RunE:  runUnstage,
}

func init() {
	unstageCmd.Flags().BoolVar(&unstageAll, "all", false, "unstage every staged hunk")
	rootCmd.AddCommand(unstageCmd)
}

func runUnstage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo := loadRepo()

	store, err := stagedStore(ctx, repo, "")
	if err != nil {
		return fmt.Errorf("unstage: %w", err)
	}

	matched, err := resolveSelection(store, args, unstageAll)
	if err != nil {
		return fmt.Errorf("unstage: %w", err)
	}
	if len(matched) == 0 {
		return fmt.Errorf("unstage: %w: no staged changes", model.ErrNoChangesInScope)
	}

	patch, err := patchbuilder.Build(selector.SortForPatch(matched))
	if err != nil {
		return fmt.Errorf("unstage: %w", err)
	}

	orch := gitvcs.NewOrchestrator(repo)
	result, err := orch.Apply(ctx, patch, model.ActionUnstage, touchedFiles(matched))
	if err != nil {
		return fmt.Errorf("unstage: %w", err)
	}

	groups := hashmap.Build(matched, result.OldTarget, result.NewTarget)
	return emitResult("unstaged", groups)
}
