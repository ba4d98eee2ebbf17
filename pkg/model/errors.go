package model

import "errors"

// Sentinel errors shared across packages, corresponding to the error
// kinds named in spec.md §7. Each carries enough identity for a caller to
// test with errors.Is; packages that need to name the offending value
// wrap these with fmt.Errorf("%w: %s", ErrX, value).
var (
	// ErrHashTooShort is returned when a selection prefix has fewer than
	// 4 hex digits.
	ErrHashTooShort = errors.New("hash prefix must be at least 4 hex digits")

	// ErrHashNonHex is returned when a selection prefix contains
	// non-hexadecimal characters.
	ErrHashNonHex = errors.New("hash prefix must be hexadecimal")

	// ErrNotFound is returned when no hunk matches a given prefix.
	ErrNotFound = errors.New("no hunk matches prefix")

	// ErrAmbiguousPrefix is returned when two or more hunks match a
	// given prefix.
	ErrAmbiguousPrefix = errors.New("prefix matches more than one hunk")

	// ErrNoChangesInScope is returned when an apply/restore/stash
	// command finds nothing to act on.
	ErrNoChangesInScope = errors.New("no changes in scope")

	// ErrPatchRefused is returned when the underlying VCS refuses to
	// apply a synthesized patch.
	ErrPatchRefused = errors.New("patch did not apply cleanly — re-run 'list' and try again")

	// ErrStashMatcherFailure is returned when the stash pipeline cannot
	// match selected index-relative hunks to HEAD-relative hunks.
	ErrStashMatcherFailure = errors.New("could not match selected hunks to HEAD-relative diff")

	// ErrNoChangesSelected is returned by the patch builder when a
	// sub-hunk LineSpec selects zero "+/-" lines.
	ErrNoChangesSelected = errors.New("no changes in selected lines of hunk")
)
