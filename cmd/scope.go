package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/toyinlola/githunk/pkg/gitvcs"
	"github.com/toyinlola/githunk/pkg/hunkstore"
	"github.com/toyinlola/githunk/pkg/model"
)

// loadRepo builds a gitvcs.Repo rooted at the current directory. Every
// command operates on the repository containing the working directory,
// the same way `git` itself resolves its worktree.
func loadRepo() *gitvcs.Repo {
	repo := gitvcs.New(".")
	if cfg != nil {
		repo.ContextLines = cfg.Diff.ContextLines
	}
	return repo
}

// unstagedStore builds a Store over every unstaged hunk (worktree vs
// index) plus every untracked file's synthetic hunk, optionally scoped
// to a single file path.
func unstagedStore(ctx context.Context, repo *gitvcs.Repo, file string) (*hunkstore.Store, error) {
	var paths []string
	if file != "" {
		paths = []string{file}
	}

	hunks, err := repo.WorktreeVsIndex(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("cmd: listing unstaged changes: %w", err)
	}

	untracked, err := repo.UntrackedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("cmd: listing untracked files: %w", err)
	}
	for _, path := range untracked {
		if file != "" && path != file {
			continue
		}
		uh, err := repo.UntrackedDiff(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("cmd: diffing untracked file %s: %w", path, err)
		}
		hunks = append(hunks, uh...)
	}

	return hunkstore.New(hunks), nil
}

// stagedStore builds a Store over every staged hunk (HEAD vs index),
// optionally scoped to a single file path.
func stagedStore(ctx context.Context, repo *gitvcs.Repo, file string) (*hunkstore.Store, error) {
	var paths []string
	if file != "" {
		paths = []string{file}
	}

	hunks, err := repo.IndexVsHead(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("cmd: listing staged changes: %w", err)
	}
	return hunkstore.New(hunks), nil
}

// parseShaArgs parses the CLI's selection-token syntax: a hash prefix,
// optionally followed by ":" and a comma-separated list of 1-based
// "+/-" body-line numbers or inclusive ranges ("a1b2:2", "a1b2:1,3-5").
func parseShaArgs(args []string) ([]model.ShaArg, error) {
	out := make([]model.ShaArg, 0, len(args))
	for _, arg := range args {
		prefix, rangesPart, hasSpec := strings.Cut(arg, ":")
		sa := model.ShaArg{Prefix: prefix}
		if hasSpec {
			spec, err := parseLineSpec(rangesPart)
			if err != nil {
				return nil, fmt.Errorf("cmd: parsing selection %q: %w", arg, err)
			}
			sa.LineSpec = spec
		}
		out = append(out, sa)
	}
	return out, nil
}

func parseLineSpec(s string) (*model.LineSpec, error) {
	if s == "" {
		return nil, fmt.Errorf("empty line selection")
	}
	var spec model.LineSpec
	for _, tok := range strings.Split(s, ",") {
		lo, hi, found := strings.Cut(tok, "-")
		start, err := strconv.Atoi(lo)
		if err != nil || start < 1 {
			return nil, fmt.Errorf("invalid line number %q", lo)
		}
		end := start
		if found {
			end, err = strconv.Atoi(hi)
			if err != nil || end < start {
				return nil, fmt.Errorf("invalid line range %q", tok)
			}
		}
		spec.Ranges = append(spec.Ranges, model.LineRange{Start: start, End: end})
	}
	return &spec, nil
}
