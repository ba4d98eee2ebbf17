package stash

import (
	"testing"

	"github.com/toyinlola/githunk/pkg/model"
)

func rawHunk(header string, body ...string) string {
	out := header
	for _, l := range body {
		out += "\n" + l
	}
	return out
}

func TestMatchIndexToHead_CleanIndexFastPath(t *testing.T) {
	headHunk := model.Hunk{
		FilePath:  "f",
		NewStart:  10,
		NewCount:  2,
		DiffLines: "-old\n+new",
		RawLines:  rawHunk("@@ -10,2 +10,2 @@", "-old", "+new"),
	}
	selected := model.MatchedHunk{
		Hunk: &model.Hunk{
			FilePath:  "f",
			NewStart:  10,
			NewCount:  2,
			DiffLines: "-old\n+new",
			RawLines:  rawHunk("@@ -10,2 +10,2 @@", "-old", "+new"),
		},
	}

	out, err := matchIndexToHead([]model.MatchedHunk{selected}, []model.Hunk{headHunk})
	if err != nil {
		t.Fatalf("matchIndexToHead: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 matched hunk, got %d", len(out))
	}
	if out[0].LineSpec != nil {
		t.Errorf("clean-index fast path should select the whole HEAD hunk, got LineSpec %+v", out[0].LineSpec)
	}
}

func TestMatchIndexToHead_DirtyIndexPartialOverlap(t *testing.T) {
	// HEAD hunk spans a staged edit at worktree line 5 and an unstaged
	// edit at worktree line 8, merged into one hunk by context proximity.
	headHunk := model.Hunk{
		FilePath: "f",
		NewStart: 1,
		NewCount: 10,
		RawLines: rawHunk("@@ -1,10 +1,10 @@",
			" l1", " l2", " l3", " l4",
			"-old5", "+new5",
			" l6", " l7",
			"-old8", "+new8",
			" l8",
		),
	}

	// Selected: only the unstaged line-8 edit (as it would appear in the
	// index-vs-worktree diff, which never saw the already-staged line 5
	// change).
	selected := model.MatchedHunk{
		Hunk: &model.Hunk{
			FilePath: "f",
			NewStart: 7,
			NewCount: 2,
			RawLines: rawHunk("@@ -7,2 +7,2 @@", " l7", "-old8", "+new8", " l8"),
		},
	}

	out, err := matchIndexToHead([]model.MatchedHunk{selected}, []model.Hunk{headHunk})
	if err != nil {
		t.Fatalf("matchIndexToHead: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 matched HEAD hunk, got %d", len(out))
	}
	if out[0].LineSpec == nil {
		t.Fatal("expected a synthesized LineSpec for the dirty-index partial-overlap case")
	}
	if len(out[0].LineSpec.Ranges) != 2 {
		t.Fatalf("expected 2 selected body lines (the line-8 pair), got %+v", out[0].LineSpec.Ranges)
	}
	// The line-5 edit (body lines 1,2) must NOT be selected.
	if out[0].LineSpec.ContainsLine(1) || out[0].LineSpec.ContainsLine(2) {
		t.Errorf("the already-staged line-5 edit leaked into the stash selection: %+v", out[0].LineSpec.Ranges)
	}
	if !out[0].LineSpec.ContainsLine(3) || !out[0].LineSpec.ContainsLine(4) {
		t.Errorf("expected the line-8 edit's body lines (3,4) selected, got %+v", out[0].LineSpec.Ranges)
	}
}

func TestMatchIndexToHead_NoOverlapFails(t *testing.T) {
	headHunk := model.Hunk{
		FilePath: "other",
		NewStart: 1,
		NewCount: 2,
		RawLines: rawHunk("@@ -1,2 +1,2 @@", "-a", "+b"),
	}
	selected := model.MatchedHunk{
		Hunk: &model.Hunk{
			FilePath: "f",
			NewStart: 1,
			NewCount: 2,
			RawLines: rawHunk("@@ -1,2 +1,2 @@", "-a", "+b"),
		},
	}

	_, err := matchIndexToHead([]model.MatchedHunk{selected}, []model.Hunk{headHunk})
	if err == nil {
		t.Fatal("expected ErrStashMatcherFailure when no HEAD hunk overlaps the selection")
	}
}

func TestChangedRange(t *testing.T) {
	raw := rawHunk("@@ -1,4 +1,4 @@", " ctx", "-old", "+new", " ctx2")
	lo, hi, ok := changedRange(raw, 10)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if lo != 11 || hi != 11 {
		t.Errorf("got range [%d,%d], want [11,11]", lo, hi)
	}
}
