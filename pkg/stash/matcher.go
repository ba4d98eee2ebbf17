// Package stash implements the two-diff stash pipeline (spec.md §4.G)
// and its index-to-HEAD hunk matcher (§4.G.i).
package stash

import (
	"fmt"

	"github.com/toyinlola/githunk/pkg/model"
)

// lineRange is a worktree-side [lo, hi] line interval used internally by
// the matcher to compare selected hunks against HEAD hunks.
type lineRange struct{ lo, hi int }

// matchIndexToHead attaches each HEAD-relative hunk touched by the
// user's worktree-relative (index-vs-worktree) selection, synthesizing
// a LineSpec when the selection only partially covers it. Both hunk
// kinds carry a worktree-side NewStart/NewCount even though one is
// parsed as WorktreeRelative and the other HeadRelative — the worktree
// is always the "new" side of each underlying diff — which is what
// makes range comparison between them meaningful.
func matchIndexToHead(selected []model.MatchedHunk, headHunks []model.Hunk) ([]model.MatchedHunk, error) {
	if len(selected) == 0 {
		return nil, nil
	}

	if fast := tryCleanIndexFastPath(selected, headHunks); fast != nil {
		return fast, nil
	}

	selRanges := make([]lineRange, len(selected))
	for i, m := range selected {
		lo, hi, ok := changedRange(m.Hunk.RawLines, m.Hunk.NewStart)
		if !ok {
			return nil, fmt.Errorf("%w: selected hunk %s has no changed lines", model.ErrStashMatcherFailure, m.Hunk.ShortHash())
		}
		selRanges[i] = lineRange{lo, hi}
	}

	var out []model.MatchedHunk

	for _, hh := range headHunks {
		hlo, hhi, ok := changedRange(hh.RawLines, hh.NewStart)
		if !ok {
			continue
		}

		var overlapping []lineRange
		fullyContained := false
		for i, m := range selected {
			if m.Hunk.FilePath != hh.FilePath {
				continue
			}
			sr := selRanges[i]
			if sr.hi < hlo || sr.lo > hhi {
				continue
			}
			overlapping = append(overlapping, sr)
			if sr.lo <= hlo && sr.hi >= hhi {
				fullyContained = true
			}
		}
		if len(overlapping) == 0 {
			continue
		}

		hhCopy := hh
		if fullyContained {
			out = append(out, model.MatchedHunk{Hunk: &hhCopy})
			continue
		}

		spec, err := synthesizeLineSpec(&hhCopy, overlapping)
		if err != nil {
			return nil, err
		}
		out = append(out, model.MatchedHunk{Hunk: &hhCopy, LineSpec: spec})
	}

	if len(out) == 0 {
		return nil, model.ErrStashMatcherFailure
	}
	return out, nil
}

// tryCleanIndexFastPath returns non-nil if every selected hunk occupies
// exactly the same file/worktree-range/content as some HEAD hunk — the
// signature of a clean index, where the index-vs-worktree diff and the
// HEAD-vs-worktree diff are the same diff. Returns nil (not an error) to
// fall through to the slow path otherwise.
func tryCleanIndexFastPath(selected []model.MatchedHunk, headHunks []model.Hunk) []model.MatchedHunk {
	var out []model.MatchedHunk
	seen := make(map[int]bool)

	for _, m := range selected {
		matched := -1
		for i, hh := range headHunks {
			if hh.FilePath == m.Hunk.FilePath &&
				hh.NewStart == m.Hunk.NewStart &&
				hh.NewCount == m.Hunk.NewCount &&
				hh.DiffLines == m.Hunk.DiffLines {
				matched = i
				break
			}
		}
		if matched == -1 {
			return nil
		}
		if !seen[matched] {
			seen[matched] = true
			hh := headHunks[matched]
			out = append(out, model.MatchedHunk{Hunk: &hh})
		}
	}
	return out
}

// changedRange walks a hunk's body (format: "@@ ... @@\n<body lines>"),
// tracking a cursor over worktree-side line numbers starting at
// newStart, and returns the min/max cursor position touched by any
// "+"/"-" line. ok is false when the hunk has no changed lines at all
// (should not occur for a real diff hunk).
func changedRange(raw string, newStart uint32) (min, max int, ok bool) {
	lines := splitOnNewline(raw)
	if len(lines) == 0 {
		return 0, 0, false
	}
	body := lines[1:]
	cursor := int(newStart)

	touch := func(n int) {
		if !ok || n < min {
			min = n
		}
		if !ok || n > max {
			max = n
		}
		ok = true
	}

	for _, line := range body {
		kind := byte(' ')
		if line != "" {
			kind = line[0]
		}
		switch kind {
		case ' ':
			cursor++
		case '-':
			touch(cursor)
		case '+':
			touch(cursor)
			cursor++
		}
	}
	return min, max, ok
}

// synthesizeLineSpec walks h's body a second time, selecting the "+/-"
// lines (numbered from 1) whose worktree cursor position falls inside
// any of ranges.
func synthesizeLineSpec(h *model.Hunk, ranges []lineRange) (*model.LineSpec, error) {
	lines := splitOnNewline(h.RawLines)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: hunk %s has no body", model.ErrStashMatcherFailure, h.ShortHash())
	}
	body := lines[1:]
	cursor := int(h.NewStart)
	lineIdx := 0

	inRange := func(n int) bool {
		for _, r := range ranges {
			if n >= r.lo && n <= r.hi {
				return true
			}
		}
		return false
	}

	var spec model.LineSpec
	for _, line := range body {
		kind := byte(' ')
		if line != "" {
			kind = line[0]
		}
		switch kind {
		case ' ':
			cursor++
		case '-':
			lineIdx++
			if inRange(cursor) {
				spec.Ranges = append(spec.Ranges, model.LineRange{Start: lineIdx, End: lineIdx})
			}
		case '+':
			lineIdx++
			if inRange(cursor) {
				spec.Ranges = append(spec.Ranges, model.LineRange{Start: lineIdx, End: lineIdx})
			}
			cursor++
		}
	}

	if len(spec.Ranges) == 0 {
		return nil, fmt.Errorf("%w: no lines of hunk %s intersected the selection", model.ErrStashMatcherFailure, h.ShortHash())
	}
	return &spec, nil
}

func splitOnNewline(s string) []string {
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
