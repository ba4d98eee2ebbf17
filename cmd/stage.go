package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toyinlola/githunk/pkg/gitvcs"
	"github.com/toyinlola/githunk/pkg/hashmap"
	"github.com/toyinlola/githunk/pkg/hunkstore"
	"github.com/toyinlola/githunk/pkg/model"
	"github.com/toyinlola/githunk/pkg/patchbuilder"
	"github.com/toyinlola/githunk/pkg/selector"
)

var stageAll bool

var stageCmd = &cobra.Command{
	Use:   "stage [hash...]",
	Short: "Stage the selected unstaged hunks",
	RunE:  runStage,
}

func init() {
	stageCmd.Flags().BoolVar(&stageAll, "all", false, "stage every unstaged hunk")
	rootCmd.AddCommand(stageCmd)
}

func runStage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo := loadRepo()

	store, err := unstagedStore(ctx, repo, "")
	if err != nil {
		return fmt.Errorf("stage: %w", err)
	}

	matched, err := resolveSelection(store, args, stageAll)
	if err != nil {
		return fmt.Errorf("stage: %w", err)
	}
	if len(matched) == 0 {
		return fmt.Errorf("stage: %w: no unstaged changes", model.ErrNoChangesInScope)
	}

	patch, err := patchbuilder.Build(selector.SortForPatch(matched))
	if err != nil {
		return fmt.Errorf("stage: %w", err)
	}

	orch := gitvcs.NewOrchestrator(repo)
	result, err := orch.Apply(ctx, patch, model.ActionStage, touchedFiles(matched))
	if err != nil {
		return fmt.Errorf("stage: %w", err)
	}

	groups := hashmap.Build(matched, result.OldTarget, result.NewTarget)
	return emitResult("staged", groups)
}

func resolveSelection(store *hunkstore.Store, args []string, all bool) ([]model.MatchedHunk, error) {
	if all {
		return selector.ResolveAll(store.All()), nil
	}
	shaArgs, err := parseShaArgs(args)
	if err != nil {
		return nil, err
	}
	return selector.NewResolver(store).Resolve(shaArgs)
}

func touchedFiles(matched []model.MatchedHunk) []string {
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

func emitResult(verb string, groups []model.ResultGroup) error {
	if outputIsPorcelain() {
		return writeResultPorcelain(os.Stdout, verb, groups)
	}
	return writeResultHuman(os.Stdout, verb, groups)
}
