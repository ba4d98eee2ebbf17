package hashmap

import (
	"testing"

	"github.com/toyinlola/githunk/pkg/model"
)

func TestBuild_SimpleMerge(t *testing.T) {
	// Concrete scenario 5: pre-apply staged hunk X at HEAD 8..15;
	// applied unstaged input A at worktree 10..12; after apply, one
	// staged hunk Z at HEAD 8..16 exists.
	oldTarget := []model.Hunk{
		{FilePath: "f", ShaHex: "X", OldStart: 8, OldCount: 8},
	}
	newTarget := []model.Hunk{
		{FilePath: "f", ShaHex: "Z", OldStart: 8, OldCount: 9, NewStart: 8, NewCount: 9, DiffLines: "combined"},
	}
	inputA := model.MatchedHunk{
		Hunk: &model.Hunk{FilePath: "f", ShaHex: "A", NewStart: 10, NewCount: 3, DiffLines: "input-a"},
	}

	groups := Build([]model.MatchedHunk{inputA}, oldTarget, newTarget)
	if len(groups) != 1 {
		t.Fatalf("expected 1 result group, got %d: %+v", len(groups), groups)
	}
	g := groups[0]
	if len(g.Applied) != 1 || g.Applied[0].ShortHash != "A" {
		t.Errorf("expected applied=[A], got %+v", g.Applied)
	}
	if len(g.Absorbed) != 1 || g.Absorbed[0] != "X" {
		t.Errorf("expected consumed/absorbed=[X], got %+v", g.Absorbed)
	}
	if len(g.Result) != 1 || g.Result[0] != "Z" {
		t.Errorf("expected result=[Z], got %+v", g.Result)
	}
}

func TestBuild_UnmatchedInputStandsAlone(t *testing.T) {
	inputA := model.MatchedHunk{Hunk: &model.Hunk{FilePath: "f", ShaHex: "A"}}
	groups := Build([]model.MatchedHunk{inputA}, nil, nil)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Result) != 0 {
		t.Errorf("expected no result hash for an unmatched input, got %+v", groups[0].Result)
	}
}

func TestBuild_OrphanMergeForSubHunkSplit(t *testing.T) {
	// A LineSpec input splits into two created hunks; only the first
	// one matches the input, via range overlap (byte-identity is only
	// tried for inputs without a LineSpec). The second, "orphan"
	// hunk must fold into the same group.
	oldTarget := []model.Hunk{}
	newTarget := []model.Hunk{
		{FilePath: "f", ShaHex: "Z1", NewStart: 1, NewCount: 1, DiffLines: "split-input"},
		{FilePath: "f", ShaHex: "Z2", NewStart: 20, NewCount: 1, DiffLines: "unrelated-remainder"},
	}
	spec := &model.LineSpec{Ranges: []model.LineRange{{Start: 1, End: 1}}}
	input := model.MatchedHunk{
		Hunk:     &model.Hunk{FilePath: "f", ShaHex: "A", NewStart: 1, NewCount: 1, DiffLines: "split-input"},
		LineSpec: spec,
	}

	groups := Build([]model.MatchedHunk{input}, oldTarget, newTarget)
	if len(groups) != 1 {
		t.Fatalf("expected orphan merge to produce 1 group, got %d: %+v", len(groups), groups)
	}
	if len(groups[0].Result) != 2 {
		t.Errorf("expected both split result hashes folded in, got %+v", groups[0].Result)
	}
}

func TestRangesOverlap_SymmetricAndZeroCountIsOne(t *testing.T) {
	if !rangesOverlap(5, 0, 5, 0) {
		t.Error("zero-count ranges at the same line should overlap")
	}
	if rangesOverlap(1, 1, 0, 5) != rangesOverlap(0, 5, 1, 1) {
		t.Error("rangesOverlap must be symmetric")
	}
	if rangesOverlap(1, 2, 10, 2) {
		t.Error("disjoint ranges should not overlap")
	}
}
