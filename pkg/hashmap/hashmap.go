// Package hashmap implements buildResultGroups (spec.md §4.F): it
// attributes the hunks an apply produced back to the inputs that caused
// them, so the caller can report "staged a1b2c3, absorbing x9y8z7".
package hashmap

import (
	"log/slog"

	"github.com/toyinlola/githunk/pkg/model"
)

// Build runs the full algorithm: consumed/created diffing, contributor
// matching, and orphan-merge for sub-hunk splits. inputs is the ordered
// selection that was applied; oldTarget/newTarget are the target-side
// hunks captured before and after the apply (gitvcs.ApplyResult).
func Build(inputs []model.MatchedHunk, oldTarget, newTarget []model.Hunk) []model.ResultGroup {
	consumed, consumedUsed := findConsumed(oldTarget, newTarget)
	created := findCreated(oldTarget, newTarget)

	groups := make([]model.ResultGroup, 0, len(created)+len(inputs))
	inputUsed := make([]bool, len(inputs))

	for _, c := range created {
		g := model.ResultGroup{FilePath: c.FilePath, Result: []string{c.ShortHash()}}

		if idx := matchInput(inputs, inputUsed, c); idx >= 0 {
			inputUsed[idx] = true
			in := inputs[idx]
			g.Applied = append(g.Applied, model.AppliedRef{
				ShortHash: in.Hunk.ShortHash(),
				LineSpec:  in.LineSpec,
			})
		}

		for i := range consumed {
			if consumedUsed[i] {
				continue
			}
			if consumed[i].FilePath != c.FilePath {
				continue
			}
			if rangesOverlap(consumed[i].OldStart, consumed[i].OldCount, c.OldStart, c.OldCount) {
				consumedUsed[i] = true
				g.Absorbed = append(g.Absorbed, consumed[i].ShortHash())
			}
		}

		groups = append(groups, g)
	}

	for i, in := range inputs {
		if inputUsed[i] {
			continue
		}
		groups = append(groups, model.ResultGroup{
			FilePath: in.Hunk.FilePath,
			Applied: []model.AppliedRef{{
				ShortHash: in.Hunk.ShortHash(),
				LineSpec:  in.LineSpec,
			}},
		})
	}

	groups = mergeOrphans(groups)

	slog.Debug("hashmap: built result groups",
		"inputs", len(inputs), "consumed", len(consumed), "created", len(created), "groups", len(groups))

	return groups
}

// findCreated returns new_target hunks whose sha_hex does not appear in
// old_target.
func findCreated(oldTarget, newTarget []model.Hunk) []model.Hunk {
	seen := make(map[string]bool, len(oldTarget))
	for _, h := range oldTarget {
		seen[h.ShaHex] = true
	}
	var out []model.Hunk
	for _, h := range newTarget {
		if !seen[h.ShaHex] {
			out = append(out, h)
		}
	}
	return out
}

// findConsumed returns old_target hunks whose sha_hex does not appear in
// new_target, plus a parallel "used" tracking slice.
func findConsumed(oldTarget, newTarget []model.Hunk) ([]model.Hunk, []bool) {
	seen := make(map[string]bool, len(newTarget))
	for _, h := range newTarget {
		seen[h.ShaHex] = true
	}
	var out []model.Hunk
	for _, h := range oldTarget {
		if !seen[h.ShaHex] {
			out = append(out, h)
		}
	}
	return out, make([]bool, len(out))
}

// matchInput finds the first unused input whose file matches and which
// byte-identically produced the created hunk (whole-hunk case) or whose
// new-side range overlaps it (sub-hunk case). Byte-identity is checked
// first to avoid false positives when unrelated hunks share a line
// range.
func matchInput(inputs []model.MatchedHunk, used []bool, created model.Hunk) int {
	for i, in := range inputs {
		if used[i] || in.Hunk.FilePath != created.FilePath {
			continue
		}
		if in.LineSpec == nil && in.Hunk.DiffLines == created.DiffLines {
			return i
		}
	}
	for i, in := range inputs {
		if used[i] || in.Hunk.FilePath != created.FilePath {
			continue
		}
		if rangesOverlap(in.Hunk.NewStart, in.Hunk.NewCount, created.NewStart, created.NewCount) {
			return i
		}
	}
	return -1
}

// rangesOverlap treats a zero count as occupying exactly one line, so
// pure insertions/deletions still participate in intersection tests.
func rangesOverlap(s1, c1, s2, c2 uint32) bool {
	e1 := s1 + max32(c1, 1) - 1
	e2 := s2 + max32(c2, 1) - 1
	return s1 <= e2 && s2 <= e1
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// mergeOrphans folds groups that carry result hashes but no applied
// inputs into the first same-file group that does have applied inputs —
// the fallout of a sub-hunk LineSpec producing multiple created hunks
// when matchInput only attaches the first one.
func mergeOrphans(groups []model.ResultGroup) []model.ResultGroup {
	var out []model.ResultGroup
	homeFor := make(map[string]int)

	for _, g := range groups {
		if len(g.Applied) > 0 {
			homeFor[g.FilePath] = len(out)
			out = append(out, g)
			continue
		}
		if idx, ok := homeFor[g.FilePath]; ok && len(g.Result) > 0 {
			out[idx].Result = append(out[idx].Result, g.Result...)
			out[idx].Absorbed = append(out[idx].Absorbed, g.Absorbed...)
			continue
		}
		out = append(out, g)
	}
	return out
}
