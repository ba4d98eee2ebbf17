package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/toyinlola/githunk/pkg/model"
)

func TestWriteListPorcelain(t *testing.T) {
	hunks := []model.Hunk{
		{FilePath: "a.go", ShaHex: "aaaa1111aaaa1111aaaa1111aaaa1111aaaa1111", NewStart: 10, NewCount: 3, Context: "func foo()"},
	}
	var buf bytes.Buffer
	if err := writeListPorcelain(&buf, hunks, false); err != nil {
		t.Fatalf("writeListPorcelain: %v", err)
	}
	line := strings.TrimRight(buf.String(), "\n")
	fields := strings.Split(line, "\t")
	if len(fields) != 5 {
		t.Fatalf("expected 5 tab-separated fields, got %d (%q)", len(fields), line)
	}
	if fields[0] != "aaaa111" {
		t.Errorf("expected short hash aaaa111, got %q", fields[0])
	}
	if fields[1] != "a.go" {
		t.Errorf("expected file path a.go, got %q", fields[1])
	}
}

func TestWriteListHuman_GroupsByFile(t *testing.T) {
	hunks := []model.Hunk{
		{FilePath: "a.go", ShaHex: "aaaa1111aaaa1111aaaa1111aaaa1111aaaa1111", NewStart: 10, NewCount: 3, Context: "func foo()"},
		{FilePath: "a.go", ShaHex: "bbbb2222bbbb2222bbbb2222bbbb2222bbbb2222", NewStart: 20, NewCount: 1, Context: "func bar()"},
	}
	var buf bytes.Buffer
	if err := writeListHuman(&buf, hunks, false); err != nil {
		t.Fatalf("writeListHuman: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "a.go") != 1 {
		t.Errorf("expected the file header to print once, got output %q", out)
	}
}

func TestSummaryFor_PrefersContext(t *testing.T) {
	h := model.Hunk{Context: "func foo()", DiffLines: "+something"}
	if got := summaryFor(&h); got != "func foo()" {
		t.Errorf("expected context to be preferred, got %q", got)
	}
}

func TestSummaryFor_FallsBackToFirstChangedLine(t *testing.T) {
	h := model.Hunk{DiffLines: "+added line\n-removed line"}
	if got := summaryFor(&h); got != "added line" {
		t.Errorf("expected first changed line, got %q", got)
	}
}

func TestWriteResultHuman_ShowsAbsorbedAndResult(t *testing.T) {
	groups := []model.ResultGroup{
		{
			FilePath: "a.go",
			Applied:  []model.AppliedRef{{ShortHash: "aaaa111"}},
			Absorbed: []string{"cccc333"},
			Result:   []string{"dddd444"},
		},
	}
	var buf bytes.Buffer
	if err := writeResultHuman(&buf, "staged", groups); err != nil {
		t.Fatalf("writeResultHuman: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "aaaa111") || !strings.Contains(out, "dddd444") {
		t.Errorf("expected applied and result hashes in output, got %q", out)
	}
	if !strings.Contains(out, "+cccc333") {
		t.Errorf("expected absorbed hash prefixed with +, got %q", out)
	}
}

func TestWriteResultHuman_UnknownResult(t *testing.T) {
	groups := []model.ResultGroup{
		{FilePath: "a.go", Applied: []model.AppliedRef{{ShortHash: "aaaa111"}}},
	}
	var buf bytes.Buffer
	if err := writeResultHuman(&buf, "staged", groups); err != nil {
		t.Fatalf("writeResultHuman: %v", err)
	}
	if !strings.Contains(buf.String(), "result unknown") {
		t.Errorf("expected 'result unknown' for an empty Result, got %q", buf.String())
	}
}

func TestWriteCheckPorcelain(t *testing.T) {
	statuses := []checkStatus{{Prefix: "aaaa", Status: "ok"}, {Prefix: "bbbb", Status: "stale"}}
	var buf bytes.Buffer
	if err := writeCheckPorcelain(&buf, statuses); err != nil {
		t.Fatalf("writeCheckPorcelain: %v", err)
	}
	want := "ok\taaaa\nstale\tbbbb\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 5); got != "hello" {
		t.Errorf("expected truncation to 5 chars, got %q", got)
	}
	if got := truncate("hi", 10); got != "hi" {
		t.Errorf("expected no truncation, got %q", got)
	}
}
