// Package hunkstore holds the in-memory ordered collection of hunks
// parsed for one command invocation, plus prefix-based lookup (spec.md
// §4.B).
package hunkstore

import (
	"strings"

	"github.com/toyinlola/githunk/pkg/model"
)

const minPrefixLen = 4

// Store is a flat ordered sequence of hunks plus lookup by hash prefix.
// It is not safe for concurrent use — the tool is single-threaded batch
// code (spec.md §5) and a Store's lifetime is one command invocation.
type Store struct {
	hunks []model.Hunk
}

// New builds a Store from an already-parsed, already-ordered hunk list.
func New(hunks []model.Hunk) *Store {
	return &Store{hunks: hunks}
}

// All returns every hunk in parse order.
func (s *Store) All() []model.Hunk {
	return s.hunks
}

// ForFile returns the hunks belonging to exactly the given path (exact
// match, not a glob).
func (s *Store) ForFile(path string) []model.Hunk {
	var out []model.Hunk
	for _, h := range s.hunks {
		if h.FilePath == path {
			out = append(out, h)
		}
	}
	return out
}

// FindByPrefix resolves a hex prefix (at least minPrefixLen digits) to a
// single hunk, optionally scoped to one file. Returns model.ErrNotFound
// if nothing matches and model.ErrAmbiguousPrefix if more than one hunk
// matches.
func (s *Store) FindByPrefix(prefix, fileFilter string) (*model.Hunk, error) {
	if len(prefix) < minPrefixLen {
		return nil, model.ErrHashTooShort
	}
	if !isHex(prefix) {
		return nil, model.ErrHashNonHex
	}
	lower := strings.ToLower(prefix)

	var match *model.Hunk
	for i := range s.hunks {
		h := &s.hunks[i]
		if fileFilter != "" && h.FilePath != fileFilter {
			continue
		}
		if !strings.HasPrefix(h.ShaHex, lower) {
			continue
		}
		if match != nil {
			return nil, model.ErrAmbiguousPrefix
		}
		match = h
	}
	if match == nil {
		return nil, model.ErrNotFound
	}
	return match, nil
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return len(s) > 0
}
