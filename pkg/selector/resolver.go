// Package selector turns a user's sequence of hash-prefix tokens into a
// deduplicated, ordered set of matched hunks (spec.md §4.C).
package selector

import (
	"fmt"
	"sort"

	"github.com/toyinlola/githunk/pkg/hunkstore"
	"github.com/toyinlola/githunk/pkg/model"
)

// Resolver resolves ShaArg tokens against a hunk store.
type Resolver struct {
	store *hunkstore.Store
}

// NewResolver creates a Resolver backed by the given store.
func NewResolver(store *hunkstore.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve turns args into a deduplicated, ordered MatchedHunk list.
//
// Each prefix resolves to a single hunk via the store. When the same
// full hash is selected twice, the selections merge: a whole-hunk
// selection and a sub-hunk selection of the same hunk collapse to
// whole-hunk, and two sub-hunk selections concatenate their LineSpec
// ranges (literally, without sorting or deduplicating — see DESIGN.md).
func (r *Resolver) Resolve(args []model.ShaArg) ([]model.MatchedHunk, error) {
	var result []model.MatchedHunk
	index := make(map[string]int, len(args))

	for _, arg := range args {
		h, err := r.store.FindByPrefix(arg.Prefix, "")
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, arg.Prefix)
		}

		if i, ok := index[h.ShaHex]; ok {
			existing := &result[i]
			if arg.LineSpec == nil || existing.LineSpec == nil {
				existing.LineSpec = nil
			} else {
				existing.LineSpec = existing.LineSpec.Concat(arg.LineSpec)
			}
			continue
		}

		index[h.ShaHex] = len(result)
		result = append(result, model.MatchedHunk{Hunk: h, LineSpec: arg.LineSpec})
	}

	return result, nil
}

// ResolveAll bulk-matches every hunk in scope (e.g. the full store for
// --all, or hunkstore.Store.ForFile's result for a bare --file filter)
// with no LineSpec, preserving scope's order.
func ResolveAll(scope []model.Hunk) []model.MatchedHunk {
	out := make([]model.MatchedHunk, len(scope))
	for i := range scope {
		out[i] = model.MatchedHunk{Hunk: &scope[i]}
	}
	return out
}

// SortForPatch returns a copy of matched sorted by (file_path, old_start)
// ascending — the order spec.md §4.C requires before patch synthesis so
// the VCS apply succeeds. Reporting must use the original user-supplied
// order instead (spec.md §5); callers keep the pre-sort slice around for
// that.
func SortForPatch(matched []model.MatchedHunk) []model.MatchedHunk {
	out := make([]model.MatchedHunk, len(matched))
	copy(out, matched)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Hunk.FilePath != out[j].Hunk.FilePath {
			return out[i].Hunk.FilePath < out[j].Hunk.FilePath
		}
		return out[i].Hunk.OldStart < out[j].Hunk.OldStart
	})
	return out
}
