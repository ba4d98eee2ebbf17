package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toyinlola/githunk/pkg/model"
)

var (
	listStaged   bool
	listUnstaged bool
	listFile     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List hunks in the current scope, each addressed by a stable short hash",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listStaged, "staged", false, "list staged hunks (HEAD vs index)")
	listCmd.Flags().BoolVar(&listUnstaged, "unstaged", false, "list unstaged hunks (index vs worktree, the default)")
	listCmd.MarkFlagsMutuallyExclusive("staged", "unstaged")
	listCmd.Flags().StringVar(&listFile, "file", "", "scope the listing to a single file path")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo := loadRepo()

	if listStaged {
		s, err := stagedStore(ctx, repo, listFile)
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}
		return emitList(s.All(), true)
	}

	s, err := unstagedStore(ctx, repo, listFile)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return emitList(s.All(), false)
}

func emitList(hunks []model.Hunk, staged bool) error {
	if outputIsPorcelain() {
		return writeListPorcelain(os.Stdout, hunks, staged)
	}
	return writeListHuman(os.Stdout, hunks, staged)
}
