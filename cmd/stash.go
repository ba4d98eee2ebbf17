package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toyinlola/githunk/pkg/hunkstore"
	"github.com/toyinlola/githunk/pkg/model"
	"github.com/toyinlola/githunk/pkg/stash"
)

var (
	stashAll     bool
	stashMessage string
)

var stashCmd = &cobra.Command{
	Use:   "stash [hash...]",
	Short: "Stash the selected hunks, staged or not, and clean them from the worktree",
	RunE:  runStash,
}

var stashPopCmd = &cobra.Command{
	Use:   "pop",
	Short: "Restore the most recently stashed entry",
	RunE:  runStashPop,
}

func init() {
	stashCmd.Flags().BoolVar(&stashAll, "all", false, "stash every staged and unstaged hunk")
	stashCmd.Flags().StringVarP(&stashMessage, "message", "m", "", "stash message (default: synthesized from the touched files)")
	stashCmd.AddCommand(stashPopCmd)
	rootCmd.AddCommand(stashCmd)
}

func runStash(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo := loadRepo()

	unstaged, err := unstagedStore(ctx, repo, "")
	if err != nil {
		return fmt.Errorf("stash: %w", err)
	}
	staged, err := stagedStore(ctx, repo, "")
	if err != nil {
		return fmt.Errorf("stash: %w", err)
	}

	merged := append([]model.Hunk{}, unstaged.All()...)
	merged = append(merged, staged.All()...)
	store := hunkstore.New(merged)

	matched, err := resolveSelection(store, args, stashAll)
	if err != nil {
		return fmt.Errorf("stash: %w", err)
	}
	if len(matched) == 0 {
		return fmt.Errorf("stash: %w: no staged or unstaged changes", model.ErrNoChangesInScope)
	}

	pipeline := stash.New(repo)
	if cfg != nil {
		pipeline.BranchPrefix = cfg.Stash.BranchPrefixInMessage
	}
	if err := pipeline.Stash(ctx, matched, stashMessage); err != nil {
		return fmt.Errorf("stash: %w", err)
	}

	fmt.Println("stashed")
	return nil
}

func runStashPop(cmd *cobra.Command, args []string) error {
	repo := loadRepo()
	if err := repo.StashPop(cmd.Context()); err != nil {
		return fmt.Errorf("stash pop: %w", err)
	}
	fmt.Println("popped")
	return nil
}
