package gitvcs

import (
	"context"
	"strings"
)

// ResolveHead returns HEAD's object ID as lower-case hex.
func (r *Repo) ResolveHead(ctx context.Context) (string, error) {
	return r.revParse(ctx, "HEAD")
}

// ResolveHeadTree returns HEAD^{tree}'s object ID as lower-case hex.
func (r *Repo) ResolveHeadTree(ctx context.Context) (string, error) {
	return r.revParse(ctx, "HEAD^{tree}")
}

func (r *Repo) revParse(ctx context.Context, rev string) (string, error) {
	out, err := r.run(ctx, nil, "rev-parse", rev)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CurrentBranch returns the current branch's short name, or "" with
// detached == true if HEAD is not on a branch.
func (r *Repo) CurrentBranch(ctx context.Context) (name string, detached bool) {
	out, _, err := r.runAllowFail(ctx, nil, "symbolic-ref", "--short", "-q", "HEAD")
	if err != nil || len(strings.TrimSpace(string(out))) == 0 {
		return "", true
	}
	return strings.TrimSpace(string(out)), false
}

// HeadSummary returns HEAD's one-line commit summary, used in stash
// message templates.
func (r *Repo) HeadSummary(ctx context.Context) (string, error) {
	out, err := r.run(ctx, nil, "log", "-1", "--format=%h %s")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
