package diffparse

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"

	"github.com/toyinlola/githunk/pkg/model"
)

// stableLine picks the side of the diff that does not shift when a peer
// hunk is staged/unstaged/applied: new_start for a worktree-relative
// diff, old_start for a head-relative one.
func stableLine(relation model.DiffRelation, oldStart, newStart uint32) uint32 {
	if relation == model.HeadRelative {
		return oldStart
	}
	return newStart
}

// hashHunk computes the canonical content-addressed hash:
// SHA1(file_path || 0x00 || ASCII-decimal(stable_line) || 0x00 || diff_lines).
// Byte-for-byte reproducibility of this construction is a hard
// requirement (spec.md §4.A) — it must not depend on locale, platform
// endianness, or map iteration order.
func hashHunk(filePath string, line uint32, diffLines string) string {
	h := sha1.New()
	h.Write([]byte(filePath))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatUint(uint64(line), 10)))
	h.Write([]byte{0})
	h.Write([]byte(diffLines))
	return hex.EncodeToString(h.Sum(nil))
}
