// Package model defines the shared types and contracts for all githunk
// modules. This package has ZERO dependencies on any other pkg/ package.
// All cross-module communication goes through types defined here.
package model

// DiffRelation identifies which side of a diff is "stable" — the side
// that does not shift position when a peer hunk is staged, unstaged, or
// otherwise applied. The hash construction in pkg/diffparse depends on
// this, not on file content alone.
type DiffRelation int

const (
	// WorktreeRelative diffs compare the index against the checkout
	// (git diff with no --cached): what is unstaged. The new-file side
	// (the worktree) is stable; the old-file side (the index) shifts as
	// peers are staged.
	WorktreeRelative DiffRelation = iota

	// HeadRelative diffs compare HEAD against something else (the index
	// for staged changes, or the worktree for the stash pipeline's
	// bypass-the-dirty-index step). The old-file side (HEAD) is stable.
	HeadRelative
)

func (r DiffRelation) String() string {
	switch r {
	case WorktreeRelative:
		return "worktree-relative"
	case HeadRelative:
		return "head-relative"
	default:
		return "unknown"
	}
}

// Hunk is the central entity: one contiguous block of changes within one
// file, delimited by an "@@ ... @@" header in unified-diff format.
type Hunk struct {
	// FilePath is the canonical path (C-unquoted if the diff quoted it).
	FilePath string

	// OldStart, OldCount, NewStart, NewCount are the line coordinates
	// from the "@@ -OldStart,OldCount +NewStart,NewCount @@" header.
	// A count of zero is legal (pure insertion or pure deletion).
	OldStart uint32
	OldCount uint32
	NewStart uint32
	NewCount uint32

	// Context is the free-form label text after the closing "@@"
	// (often a function signature).
	Context string

	// RawLines is the exact bytes from the "@@" header through the last
	// body line (context/add/remove/"\ No newline").
	RawLines string

	// DiffLines holds only the "+"/"-"/"\ No newline" lines, newline
	// joined. This is the input to the hash.
	DiffLines string

	// ShaHex is the 40-hex-character SHA-1 digest, lower-case.
	ShaHex string

	IsNewFile     bool
	IsDeletedFile bool
	IsUntracked   bool

	// PatchHeader is the prelude bytes required to re-apply this hunk
	// standalone: always "---"/"+++", plus "diff --git", mode lines,
	// and rename metadata for new/deleted/renamed files.
	PatchHeader string
}

// ShortHash returns the display form of the hash: the first 7 hex chars.
func (h Hunk) ShortHash() string {
	if len(h.ShaHex) < 7 {
		return h.ShaHex
	}
	return h.ShaHex[:7]
}

// LineRange is a closed, 1-based, inclusive [Start, End] range over hunk
// body line numbers (only "+"/"-" lines are numbered; "\ No newline"
// markers are not).
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether line n falls within the range.
func (r LineRange) Contains(n int) bool {
	return n >= r.Start && n <= r.End
}

// LineSpec is a user-supplied sub-hunk filter: an ordered set of closed
// line ranges over one hunk's body lines. Concatenating two LineSpecs for
// the same hunk is a literal append, not a sorted merge — see
// selector.Resolver and the note in DESIGN.md about this being a
// deliberately preserved (possibly surprising) source behavior.
type LineSpec struct {
	Ranges []LineRange
}

// ContainsLine reports whether any range in the spec covers line n.
// Tolerant of overlapping or out-of-order ranges.
func (s *LineSpec) ContainsLine(n int) bool {
	if s == nil {
		return true
	}
	for _, r := range s.Ranges {
		if r.Contains(n) {
			return true
		}
	}
	return false
}

// Concat appends another LineSpec's ranges onto this one, in place. A nil
// receiver concatenated with a non-nil spec yields a copy of the other.
func (s *LineSpec) Concat(other *LineSpec) *LineSpec {
	if other == nil {
		return s
	}
	if s == nil {
		cp := &LineSpec{Ranges: append([]LineRange(nil), other.Ranges...)}
		return cp
	}
	s.Ranges = append(s.Ranges, other.Ranges...)
	return s
}

// MatchedHunk is a reference to a Hunk plus an optional LineSpec
// sub-selection. A nil LineSpec means the whole hunk is selected.
type MatchedHunk struct {
	Hunk     *Hunk
	LineSpec *LineSpec
}

// ShaArg is a user-supplied selection token: a hash prefix plus an
// optional sub-hunk LineSpec.
type ShaArg struct {
	Prefix   string
	LineSpec *LineSpec
}

// AppliedRef names one applied input within a ResultGroup: its short hash
// plus the LineSpec (if any) that was selected from it.
type AppliedRef struct {
	ShortHash string
	LineSpec  *LineSpec
}

// ResultGroup is one reported outcome line tying applied+consumed input
// hashes to the hashes the apply produced.
type ResultGroup struct {
	FilePath string
	Applied  []AppliedRef
	Absorbed []string
	Result   []string
}

// ApplyAction names the state transition an apply orchestrator performs.
type ApplyAction int

const (
	ActionStage ApplyAction = iota
	ActionUnstage
	ActionRestoreWorktree
)

// DiffFilter selects which class of changes a command should consider.
type DiffFilter int

const (
	FilterAll DiffFilter = iota
	FilterTrackedOnly
	FilterUntrackedOnly
)
