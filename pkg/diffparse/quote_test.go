package diffparse

import "testing"

func TestUnquotePath(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"unquoted passthrough", "plain/path.go", "plain/path.go"},
		{"tab escape", `"dir\twith\ttab.txt"`, "dir\twith\ttab.txt"},
		{"newline escape", `"a\nb"`, "a\nb"},
		{"backslash escape", `"a\\b"`, `a\b`},
		{"quote escape", `"a\"b"`, `a"b`},
		{"octal escape", `"caf\303\251.txt"`, "caf\303\251.txt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := unquotePath(tc.in)
			if got != tc.want {
				t.Errorf("unquotePath(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSplitGitDiffPaths(t *testing.T) {
	a, b, ok := splitGitDiffPaths("a/dir/file.go b/dir/file.go")
	if !ok {
		t.Fatal("expected ok")
	}
	if a != "dir/file.go" || b != "dir/file.go" {
		t.Errorf("got a=%q b=%q", a, b)
	}
}

func TestSplitGitDiffPaths_Quoted(t *testing.T) {
	a, b, ok := splitGitDiffPaths(`"a/dir\twith\ttab.txt" "b/dir\twith\ttab.txt"`)
	if !ok {
		t.Fatal("expected ok")
	}
	want := "dir\twith\ttab.txt"
	if a != want || b != want {
		t.Errorf("got a=%q b=%q, want %q", a, b, want)
	}
}
