package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/toyinlola/githunk/pkg/model"
)

// summaryFor returns the one-line label shown next to a hunk: its
// context label (usually a function signature) when present, otherwise
// the first changed line, trimmed of its "+/-" marker.
func summaryFor(h *model.Hunk) string {
	if h.Context != "" {
		return h.Context
	}
	for _, line := range strings.Split(h.DiffLines, "\n") {
		if len(line) > 1 {
			return strings.TrimSpace(line[1:])
		}
	}
	return ""
}

// writeListPorcelain emits the §6 porcelain listing format:
// short_sha<TAB>file_path<TAB>start_line<TAB>end_line<TAB>summary
func writeListPorcelain(w io.Writer, hunks []model.Hunk, staged bool) error {
	for _, h := range hunks {
		start, end := displayRange(h, staged)
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", h.ShortHash(), h.FilePath, start, end, summaryFor(&h)); err != nil {
			return err
		}
	}
	return nil
}

// writeListHuman emits a readable grouping, one line per hunk, file
// paths printed once per run of hunks that share a path.
func writeListHuman(w io.Writer, hunks []model.Hunk, staged bool) error {
	width := termWidth()
	currentFile := ""
	for _, h := range hunks {
		if h.FilePath != currentFile {
			if _, err := fmt.Fprintf(w, "%s\n", h.FilePath); err != nil {
				return err
			}
			currentFile = h.FilePath
		}
		start, end := displayRange(h, staged)
		summary := truncate(summaryFor(&h), width-24)
		if _, err := fmt.Fprintf(w, "  %s  %d-%d  %s\n", h.ShortHash(), start, end, summary); err != nil {
			return err
		}
	}
	return nil
}

// colorize bolds s with an ANSI escape when the command resolved color
// on (§9); a no-op otherwise.
func colorize(s string) string {
	if !useColor {
		return s
	}
	return "\x1b[1m" + s + "\x1b[0m"
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// displayRange returns the mode-aware line range (§6): HEAD lines for
// staged hunks, worktree lines for unstaged ones.
func displayRange(h model.Hunk, staged bool) (start, end uint32) {
	if staged {
		start = h.OldStart
		end = h.OldStart + h.OldCount
		if h.OldCount > 0 {
			end--
		}
		return start, end
	}
	start = h.NewStart
	end = h.NewStart + h.NewCount
	if h.NewCount > 0 {
		end--
	}
	return start, end
}

// writeResultPorcelain reports the outcome of a state-changing command
// (stage/unstage/restore/stash): one line per ResultGroup, leading with
// the porcelain verb token (§6).
func writeResultPorcelain(w io.Writer, verb string, groups []model.ResultGroup) error {
	for _, g := range groups {
		applied := make([]string, len(g.Applied))
		for i, a := range g.Applied {
			applied[i] = a.ShortHash
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			verb, g.FilePath, strings.Join(applied, ","), strings.Join(g.Absorbed, ","), strings.Join(g.Result, ",")); err != nil {
			return err
		}
	}
	return nil
}

// writeResultHuman reports the same outcome in a readable form. An
// absorbed (consumed) input hash is prefixed with "+" per spec.md's
// concrete scenario 5.
func writeResultHuman(w io.Writer, verb string, groups []model.ResultGroup) error {
	verb = colorize(verb)
	for _, g := range groups {
		var parts []string
		for _, a := range g.Applied {
			parts = append(parts, a.ShortHash)
		}
		for _, a := range g.Absorbed {
			parts = append(parts, "+"+a)
		}
		left := strings.Join(parts, " ")

		if len(g.Result) == 0 {
			if _, err := fmt.Fprintf(w, "%s %s (%s) -> result unknown\n", verb, g.FilePath, left); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %s (%s) -> %s\n", verb, g.FilePath, left, strings.Join(g.Result, ",")); err != nil {
			return err
		}
	}
	return nil
}

// checkStatus is one hash's outcome against the `check` command.
type checkStatus struct {
	Prefix string
	Status string // "ok", "stale", "ambiguous", "unexpected"
}

func writeCheckPorcelain(w io.Writer, statuses []checkStatus) error {
	for _, s := range statuses {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", s.Status, s.Prefix); err != nil {
			return err
		}
	}
	return nil
}

func writeCheckHuman(w io.Writer, statuses []checkStatus) error {
	for _, s := range statuses {
		if _, err := fmt.Fprintf(w, "%s: %s\n", s.Prefix, s.Status); err != nil {
			return err
		}
	}
	return nil
}
