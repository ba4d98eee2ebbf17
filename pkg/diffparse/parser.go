// Package diffparse turns raw unified-diff text into a canonical,
// content-addressed hunk list. See spec.md §4.A for the full contract;
// this file implements the streaming parser, hash.go implements the
// hash construction, and quote.go implements C-style path unquoting.
package diffparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/toyinlola/githunk/pkg/model"
)

var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(.*)$`)

// Parse converts raw unified diff bytes into an ordered hunk list. relation
// tells the hasher which side of the diff is stable (spec.md §3); callers
// pass model.WorktreeRelative for an unstaged (index-vs-worktree) diff and
// model.HeadRelative for a staged (HEAD-vs-index) or HEAD-vs-worktree diff.
//
// Parsing tolerates malformed individual hunk headers: a bad "@@" line
// aborts only that hunk, and scanning resumes at the next "@@" or
// "diff --git" line.
func Parse(raw []byte, relation model.DiffRelation) ([]model.Hunk, error) {
	text := string(raw)
	// Normalize away a trailing newline so splitting doesn't produce a
	// spurious empty final element that would otherwise need special
	// casing in the ambiguous-blank-line lookahead.
	text = strings.TrimSuffix(text, "\n")
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}

	var (
		hunks   []model.Hunk
		current *fileSection
	)

	flush := func() {
		if current != nil {
			hunks = append(hunks, current.finalize(relation)...)
		}
	}

	hunkOpen := false

	i := 0
	for i < len(lines) {
		line := lines[i]

		if hunkOpen {
			kind := bodyLineKind(line)
			if kind == kindNone {
				if line == "" {
					// Ambiguous blank line: treat as context only if the
					// next line is itself a body line.
					if i+1 < len(lines) && bodyLineKind(lines[i+1]) != kindNone {
						current.appendBodyLine(line)
						i++
						continue
					}
				}
				hunkOpen = false
				// Fall through: re-dispatch this same line below.
			} else {
				current.appendBodyLine(line)
				i++
				continue
			}
		}

		switch {
		case strings.HasPrefix(line, "diff --git "):
			flush()
			current = newFileSection()
			a, b, ok := splitGitDiffPaths(line[len("diff --git "):])
			if ok {
				current.gitOldPath = a
				current.gitNewPath = b
			}
			hunkOpen = false

		case current == nil:
			// Preamble before the first "diff --git" line; ignore.

		case strings.HasPrefix(line, "old mode "):
			current.oldMode = strings.TrimPrefix(line, "old mode ")
		case strings.HasPrefix(line, "new mode "):
			current.newMode = strings.TrimPrefix(line, "new mode ")
		case strings.HasPrefix(line, "new file mode "):
			current.newFileMode = strings.TrimPrefix(line, "new file mode ")
			current.isNewFile = true
		case strings.HasPrefix(line, "deleted file mode "):
			current.deletedFileMode = strings.TrimPrefix(line, "deleted file mode ")
			current.isDeletedFile = true
		case strings.HasPrefix(line, "rename from "):
			current.renameFrom = unquotePathOrPlain(strings.TrimPrefix(line, "rename from "))
		case strings.HasPrefix(line, "rename to "):
			current.renameTo = unquotePathOrPlain(strings.TrimPrefix(line, "rename to "))
		case strings.HasPrefix(line, "copy from "):
			current.copyFrom = unquotePathOrPlain(strings.TrimPrefix(line, "copy from "))
		case strings.HasPrefix(line, "copy to "):
			current.copyTo = unquotePathOrPlain(strings.TrimPrefix(line, "copy to "))
		case strings.HasPrefix(line, "similarity index "):
			current.similarityIndex = strings.TrimPrefix(line, "similarity index ")
		case strings.HasPrefix(line, "index "):
			current.indexLine = strings.TrimPrefix(line, "index ")
		case strings.HasPrefix(line, "Binary files ") && strings.HasSuffix(line, " differ"):
			current.binary = true
		case strings.HasPrefix(line, "--- "):
			current.minusPath = parseFileHeaderPath(strings.TrimPrefix(line, "--- "))
		case strings.HasPrefix(line, "+++ "):
			current.plusPath = parseFileHeaderPath(strings.TrimPrefix(line, "+++ "))

		default:
			if m := hunkHeaderRegex.FindStringSubmatch(line); m != nil {
				if hb, ok := newHunkBuilder(m); ok {
					current.hunks = append(current.hunks, hb)
					hunkOpen = true
				}
				// A malformed header (overflow) leaves hunkOpen false;
				// the next recognizable line resumes normal dispatch.
			}
			// Anything else (blank separators, stray text) is ignored.
		}

		i++
	}
	flush()

	return hunks, nil
}

// parseFileHeaderPath extracts the path operand of a "--- " / "+++ "
// line, which is either "/dev/null" or an a/ or b/ prefixed path,
// possibly C-quoted.
func parseFileHeaderPath(rest string) string {
	// git appends a tab and a timestamp/mode comment in some
	// configurations; the path itself never contains an unescaped tab
	// outside of quotes, so stop at the first bare tab.
	if idx := strings.IndexByte(rest, '\t'); idx >= 0 && (len(rest) == 0 || rest[0] != '"') {
		rest = rest[:idx]
	}
	if rest == "/dev/null" {
		return rest
	}
	return stripABPrefix(unquotePathOrPlain(rest))
}

type bodyLineKindT int

const (
	kindNone bodyLineKindT = iota
	kindContext
	kindAdd
	kindRemove
	kindNoNewline
)

func bodyLineKind(line string) bodyLineKindT {
	if line == "" {
		return kindNone
	}
	switch line[0] {
	case ' ':
		return kindContext
	case '+':
		return kindAdd
	case '-':
		return kindRemove
	case '\\':
		return kindNoNewline
	default:
		return kindNone
	}
}

// hunkBuilder accumulates one hunk's header fields and raw body lines.
type hunkBuilder struct {
	headerLine string
	oldStart   uint32
	oldCount   uint32
	newStart   uint32
	newCount   uint32
	context    string
	body       []string
}

func newHunkBuilder(m []string) (*hunkBuilder, bool) {
	oldStart, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return nil, false
	}
	oldCount := uint64(1)
	if m[2] != "" {
		oldCount, err = strconv.ParseUint(m[2], 10, 32)
		if err != nil {
			return nil, false
		}
	}
	newStart, err := strconv.ParseUint(m[3], 10, 32)
	if err != nil {
		return nil, false
	}
	newCount := uint64(1)
	if m[4] != "" {
		newCount, err = strconv.ParseUint(m[4], 10, 32)
		if err != nil {
			return nil, false
		}
	}

	return &hunkBuilder{
		headerLine: m[0],
		oldStart:   uint32(oldStart),
		oldCount:   uint32(oldCount),
		newStart:   uint32(newStart),
		newCount:   uint32(newCount),
		context:    strings.TrimPrefix(m[5], " "),
	}, true
}

// fileSection accumulates one file's extended headers and hunks while
// scanning.
type fileSection struct {
	gitOldPath string
	gitNewPath string
	minusPath  string
	plusPath   string

	renameFrom string
	renameTo   string
	copyFrom   string
	copyTo     string

	oldMode         string
	newMode         string
	newFileMode     string
	deletedFileMode string
	similarityIndex string
	indexLine       string
	binary          bool
	isNewFile       bool
	isDeletedFile   bool

	hunks []*hunkBuilder
}

func newFileSection() *fileSection {
	return &fileSection{}
}

func (f *fileSection) appendBodyLine(line string) {
	if len(f.hunks) == 0 {
		return
	}
	hb := f.hunks[len(f.hunks)-1]
	hb.body = append(hb.body, line)
}

func (f *fileSection) isSubmodule() bool {
	return strings.HasSuffix(f.indexLine, " 160000")
}

func (f *fileSection) isRename() bool {
	return f.renameFrom != "" && f.renameTo != ""
}

func (f *fileSection) isCopy() bool {
	return f.copyFrom != "" && f.copyTo != ""
}

// modeOnly reports whether this section carries only an old/new mode
// change with no content or structural change at all.
func (f *fileSection) modeOnly() bool {
	return (f.oldMode != "" || f.newMode != "") &&
		!f.isNewFile && !f.isDeletedFile && !f.isRename() && !f.isCopy() &&
		len(f.hunks) == 0 && f.minusPath == "" && f.plusPath == ""
}

// renameOnly reports a pure rename/copy with no content change.
func (f *fileSection) renameOnly() bool {
	return (f.isRename() || f.isCopy()) && len(f.hunks) == 0
}

func (f *fileSection) resolvedPath() (path, oldPath string) {
	switch {
	case f.isRename() || f.isCopy():
		if f.isRename() {
			return f.renameTo, f.renameFrom
		}
		return f.copyTo, f.copyFrom
	case f.isDeletedFile || f.minusPath == "/dev/null":
		if f.minusPath != "" && f.minusPath != "/dev/null" {
			return f.minusPath, ""
		}
		return f.gitOldPath, ""
	case f.isNewFile || f.plusPath == "/dev/null":
		if f.plusPath != "" && f.plusPath != "/dev/null" {
			return f.plusPath, ""
		}
		return f.gitNewPath, ""
	default:
		if f.plusPath != "" {
			return f.plusPath, ""
		}
		return f.gitNewPath, ""
	}
}

// finalize turns the accumulated section state into the hunk list it
// represents, applying the skip rules from spec.md §4.A.
func (f *fileSection) finalize(relation model.DiffRelation) []model.Hunk {
	if f.binary || f.isSubmodule() || f.modeOnly() || f.renameOnly() {
		return nil
	}

	path, oldPath := f.resolvedPath()

	header := f.buildPatchHeader(path, oldPath)

	// Empty new/deleted file with no body: a single synthetic hunk.
	if len(f.hunks) == 0 && (f.isNewFile || f.isDeletedFile) {
		line := stableLine(relation, 0, 0)
		return []model.Hunk{{
			FilePath:      path,
			IsNewFile:     f.isNewFile,
			IsDeletedFile: f.isDeletedFile,
			PatchHeader:   header,
			ShaHex:        hashHunk(path, line, ""),
		}}
	}

	var out []model.Hunk
	for _, hb := range f.hunks {
		diffLines, ok := hb.diffLines()
		if !ok {
			// Zero "+/-" lines: drop the hunk (spec.md §4.A).
			continue
		}
		rawLines := hb.rawLines()
		line := stableLine(relation, hb.oldStart, hb.newStart)
		out = append(out, model.Hunk{
			FilePath:      path,
			OldStart:      hb.oldStart,
			OldCount:      hb.oldCount,
			NewStart:      hb.newStart,
			NewCount:      hb.newCount,
			Context:       hb.context,
			RawLines:      rawLines,
			DiffLines:     diffLines,
			ShaHex:        hashHunk(path, line, diffLines),
			IsNewFile:     f.isNewFile,
			IsDeletedFile: f.isDeletedFile,
			PatchHeader:   header,
		})
	}
	return out
}

// buildPatchHeader synthesizes the prelude bytes required to re-apply a
// hunk from this file standalone.
func (f *fileSection) buildPatchHeader(path, oldPath string) string {
	var b strings.Builder

	isRename := f.isRename()
	if isRename || f.isCopy() {
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", oldPath, path)
		if f.similarityIndex != "" {
			fmt.Fprintf(&b, "similarity index %s\n", f.similarityIndex)
		}
		if isRename {
			fmt.Fprintf(&b, "rename from %s\n", oldPath)
			fmt.Fprintf(&b, "rename to %s\n", path)
		} else {
			fmt.Fprintf(&b, "copy from %s\n", oldPath)
			fmt.Fprintf(&b, "copy to %s\n", path)
		}
	} else if f.isNewFile {
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
		if f.newFileMode != "" {
			fmt.Fprintf(&b, "new file mode %s\n", f.newFileMode)
		}
	} else if f.isDeletedFile {
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
		if f.deletedFileMode != "" {
			fmt.Fprintf(&b, "deleted file mode %s\n", f.deletedFileMode)
		}
	} else {
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	}

	if f.indexLine != "" {
		fmt.Fprintf(&b, "index %s\n", f.indexLine)
	}

	oldSide := "a/" + path
	newSide := "b/" + path
	if f.isNewFile {
		oldSide = "/dev/null"
	} else if isRename || f.isCopy() {
		oldSide = "a/" + oldPath
	}
	if f.isDeletedFile {
		newSide = "/dev/null"
	}

	fmt.Fprintf(&b, "--- %s\n", oldSide)
	fmt.Fprintf(&b, "+++ %s\n", newSide)

	return b.String()
}

func (hb *hunkBuilder) rawLines() string {
	lines := make([]string, 0, len(hb.body)+1)
	lines = append(lines, hb.headerLine)
	lines = append(lines, hb.body...)
	return strings.Join(lines, "\n")
}

// diffLines returns the newline-joined "+"/"-"/"\ No newline" lines of
// the hunk body, and false if there are zero "+/-" lines (the hunk must
// be dropped).
func (hb *hunkBuilder) diffLines() (string, bool) {
	var out []string
	hasChange := false
	for _, line := range hb.body {
		switch bodyLineKind(line) {
		case kindAdd, kindRemove:
			hasChange = true
			out = append(out, line)
		case kindNoNewline:
			out = append(out, line)
		}
	}
	if !hasChange {
		return "", false
	}
	return strings.Join(out, "\n"), true
}
