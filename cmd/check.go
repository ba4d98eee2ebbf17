package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toyinlola/githunk/pkg/hunkstore"
	"github.com/toyinlola/githunk/pkg/model"
)

var (
	checkStaged   bool
	checkUnstaged bool
	checkFile     string
)

var checkCmd = &cobra.Command{
	Use:   "check [hash...]",
	Short: "Report whether each given hash still resolves uniquely in scope",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStaged, "staged", false, "check against staged hunks (HEAD vs index)")
	checkCmd.Flags().BoolVar(&checkUnstaged, "unstaged", false, "check against unstaged hunks (index vs worktree, the default)")
	checkCmd.MarkFlagsMutuallyExclusive("staged", "unstaged")
	checkCmd.Flags().StringVar(&checkFile, "file", "", "require each hash to resolve within this file")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo := loadRepo()

	var store *hunkstore.Store
	var err error
	if checkStaged {
		store, err = stagedStore(ctx, repo, "")
	} else {
		store, err = unstagedStore(ctx, repo, "")
	}
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	shaArgs, err := parseShaArgs(args)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	statuses := make([]checkStatus, 0, len(shaArgs))
	failed := false
	for _, arg := range shaArgs {
		status := classifyCheck(store, arg.Prefix)
		if status.Status != "ok" {
			failed = true
		}
		statuses = append(statuses, status)
	}

	if err := emitCheck(statuses); err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if failed {
		os.Exit(1)
	}
	return nil
}

func classifyCheck(store *hunkstore.Store, prefix string) checkStatus {
	h, err := store.FindByPrefix(prefix, "")
	switch {
	case err == nil:
		if checkFile != "" && h.FilePath != checkFile {
			return checkStatus{Prefix: prefix, Status: "unexpected"}
		}
		return checkStatus{Prefix: prefix, Status: "ok"}
	case errors.Is(err, model.ErrAmbiguousPrefix):
		return checkStatus{Prefix: prefix, Status: "ambiguous"}
	case errors.Is(err, model.ErrNotFound):
		return checkStatus{Prefix: prefix, Status: "stale"}
	default:
		return checkStatus{Prefix: prefix, Status: "unexpected"}
	}
}

func emitCheck(statuses []checkStatus) error {
	if outputIsPorcelain() {
		return writeCheckPorcelain(os.Stdout, statuses)
	}
	return writeCheckHuman(os.Stdout, statuses)
}
