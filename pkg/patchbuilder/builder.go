// Package patchbuilder emits a valid combined unified patch from a
// matched-hunk selection, rewriting sub-hunk bodies when a LineSpec
// narrows the selection (spec.md §4.D).
package patchbuilder

import (
	"bytes"
	"fmt"

	"github.com/toyinlola/githunk/pkg/model"
)

// Build emits a combined patch from matched, which must already be
// sorted by (file_path, old_start) — selector.SortForPatch does this.
// For each file group the patch_header is written once; each MatchedHunk
// then contributes either its raw body verbatim (whole-hunk) or a
// rewritten body with a synthesized @@ header (sub-hunk, via a LineSpec).
//
// The emitted bytes round-trip through `git apply --unidiff-zero`
// regardless of the context width the hunks were parsed with.
func Build(matched []model.MatchedHunk) ([]byte, error) {
	var buf bytes.Buffer
	currentFile := ""
	sawFile := false

	for _, m := range matched {
		if !sawFile || m.Hunk.FilePath != currentFile {
			buf.WriteString(m.Hunk.PatchHeader)
			currentFile = m.Hunk.FilePath
			sawFile = true
		}

		if m.LineSpec == nil {
			buf.WriteString(m.Hunk.RawLines)
			buf.WriteString("\n")
			continue
		}

		rewritten, err := rewriteSubHunk(m.Hunk, m.LineSpec)
		if err != nil {
			return nil, err
		}
		buf.WriteString(rewritten)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// rewriteSubHunk walks a hunk's body line by line, numbering each "+"/"-"
// line starting at 1, and keeps only what LineSpec selects: context
// lines pass through unchanged, selected removals stay removals,
// unselected removals demote to context (they now exist on both sides),
// selected additions stay additions, unselected additions are dropped,
// and a "\ No newline" marker survives iff the body line immediately
// preceding it was kept (as itself or demoted to context).
func rewriteSubHunk(h *model.Hunk, spec *model.LineSpec) (string, error) {
	lines := splitLines(h.RawLines)
	if len(lines) == 0 {
		return "", fmt.Errorf("patchbuilder: hunk %s has no body", h.ShortHash())
	}
	body := lines[1:]

	var outBody []string
	var oldCount, newCount uint32
	lineIdx := 0
	changedKept := 0
	prevKept := false

	for _, line := range body {
		switch lineKind(line) {
		case ' ':
			outBody = append(outBody, line)
			oldCount++
			newCount++
			prevKept = true

		case '-':
			lineIdx++
			if spec.ContainsLine(lineIdx) {
				outBody = append(outBody, line)
				oldCount++
				changedKept++
				prevKept = true
			} else {
				outBody = append(outBody, " "+line[1:])
				oldCount++
				newCount++
				prevKept = true
			}

		case '+':
			lineIdx++
			if spec.ContainsLine(lineIdx) {
				outBody = append(outBody, line)
				newCount++
				changedKept++
				prevKept = true
			} else {
				prevKept = false
			}

		case '\\':
			if prevKept {
				outBody = append(outBody, line)
			}
		}
	}

	if changedKept == 0 {
		return "", fmt.Errorf("%w %s", model.ErrNoChangesSelected, h.ShortHash())
	}

	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, oldCount, h.NewStart, newCount)
	if h.Context != "" {
		header += " " + h.Context
	}

	return header + "\n" + joinLines(outBody), nil
}

// lineKind classifies a raw body line. An empty string represents a
// context line whose original bytes were a bare space stripped by some
// diff generators — the parser only ever keeps such a line in a hunk
// body when it already resolved the blank-line ambiguity in favor of
// "context" (spec.md §4.A), so by the time it reaches here it is safe to
// always treat "" as context.
func lineKind(line string) byte {
	if line == "" {
		return ' '
	}
	return line[0]
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func joinLines(lines []string) string {
	var buf bytes.Buffer
	for i, l := range lines {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(l)
	}
	return buf.String()
}
