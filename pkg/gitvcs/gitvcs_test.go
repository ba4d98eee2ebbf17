package gitvcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// newTestRepo initializes a throwaway git repository under t.TempDir()
// with one committed file, and returns a Repo pointed at it.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init", "-q", "-b", "main")
	run("config", "user.name", "test")
	run("config", "user.email", "test@example.com")

	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	run("add", "f.txt")
	run("commit", "-q", "-m", "initial")

	return New(dir)
}

func TestWorktreeVsIndex_DetectsUnstagedEdit(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	path := filepath.Join(r.Path, "f.txt")
	if err := os.WriteFile(path, []byte("one\nTWO\nthree\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	hunks, err := r.WorktreeVsIndex(ctx, nil)
	if err != nil {
		t.Fatalf("WorktreeVsIndex: %v", err)
	}
	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	if hunks[0].FilePath != "f.txt" {
		t.Errorf("got file %q, want f.txt", hunks[0].FilePath)
	}
}

func TestIndexVsHead_Empty_WhenNothingStaged(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	hunks, err := r.IndexVsHead(ctx, nil)
	if err != nil {
		t.Fatalf("IndexVsHead: %v", err)
	}
	if len(hunks) != 0 {
		t.Fatalf("expected no staged hunks, got %d", len(hunks))
	}
}

func TestApplyToIndex_StagesAndUnstages(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	path := filepath.Join(r.Path, "f.txt")
	if err := os.WriteFile(path, []byte("one\nTWO\nthree\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	unstaged, err := r.WorktreeVsIndex(ctx, nil)
	if err != nil {
		t.Fatalf("WorktreeVsIndex: %v", err)
	}
	if len(unstaged) != 1 {
		t.Fatalf("expected 1 unstaged hunk, got %d", len(unstaged))
	}

	patch := []byte(unstaged[0].PatchHeader + unstaged[0].RawLines + "\n")

	if err := r.ApplyToIndex(ctx, patch, false); err != nil {
		t.Fatalf("ApplyToIndex(stage): %v", err)
	}

	staged, err := r.IndexVsHead(ctx, nil)
	if err != nil {
		t.Fatalf("IndexVsHead: %v", err)
	}
	if len(staged) != 1 {
		t.Fatalf("expected 1 staged hunk after apply, got %d", len(staged))
	}

	if err := r.ApplyToIndex(ctx, patch, true); err != nil {
		t.Fatalf("ApplyToIndex(unstage): %v", err)
	}

	staged, err = r.IndexVsHead(ctx, nil)
	if err != nil {
		t.Fatalf("IndexVsHead: %v", err)
	}
	if len(staged) != 0 {
		t.Fatalf("expected no staged hunks after unstage, got %d", len(staged))
	}
}

func TestUntrackedFiles(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(r.Path, "new.txt"), []byte("hi\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := r.UntrackedFiles(ctx)
	if err != nil {
		t.Fatalf("UntrackedFiles: %v", err)
	}
	if len(got) != 1 || got[0] != "new.txt" {
		t.Fatalf("got %v, want [new.txt]", got)
	}
}

func TestCurrentBranch(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	name, detached := r.CurrentBranch(ctx)
	if detached {
		t.Fatal("expected attached HEAD on a fresh repo")
	}
	if name != "main" {
		t.Errorf("got branch %q, want main", name)
	}
}

func TestResolveHeadAndTree(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	head, err := r.ResolveHead(ctx)
	if err != nil {
		t.Fatalf("ResolveHead: %v", err)
	}
	if len(head) != 40 {
		t.Errorf("expected 40-char object id, got %q", head)
	}

	tree, err := r.ResolveHeadTree(ctx)
	if err != nil {
		t.Fatalf("ResolveHeadTree: %v", err)
	}
	if len(tree) != 40 {
		t.Errorf("expected 40-char tree id, got %q", tree)
	}
}

func TestScratchIndex_ReadWriteTreeIsolated(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	scratch, err := NewScratchIndex(r)
	if err != nil {
		t.Fatalf("NewScratchIndex: %v", err)
	}
	defer scratch.Close()

	headTree, err := r.ResolveHeadTree(ctx)
	if err != nil {
		t.Fatalf("ResolveHeadTree: %v", err)
	}

	if err := scratch.ReadTree(ctx, headTree); err != nil {
		t.Fatalf("ReadTree: %v", err)
	}

	wrote, err := scratch.WriteTree(ctx)
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	if wrote != headTree {
		t.Errorf("round-tripped tree = %s, want %s", wrote, headTree)
	}

	// The real index must be untouched by the scratch operations.
	staged, err := r.IndexVsHead(ctx, nil)
	if err != nil {
		t.Fatalf("IndexVsHead: %v", err)
	}
	if len(staged) != 0 {
		t.Fatalf("scratch index operations leaked into the real index: %d staged hunks", len(staged))
	}
}

func TestHashObjectAndFileMode(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	path := filepath.Join(r.Path, "blob.txt")
	if err := os.WriteFile(path, []byte("content\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	blob, err := r.HashObject(ctx, "blob.txt", true)
	if err != nil {
		t.Fatalf("HashObject: %v", err)
	}
	if len(blob) != 40 {
		t.Errorf("expected 40-char blob id, got %q", blob)
	}

	mode, err := FileMode(path)
	if err != nil {
		t.Fatalf("FileMode: %v", err)
	}
	if mode != "100644" {
		t.Errorf("got mode %q, want 100644", mode)
	}
}

func TestHeadSummary(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	summary, err := r.HeadSummary(ctx)
	if err != nil {
		t.Fatalf("HeadSummary: %v", err)
	}
	if summary == "" {
		t.Error("expected a non-empty head summary")
	}
}
