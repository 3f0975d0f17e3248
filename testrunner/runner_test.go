package testrunner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseMetadata(t *testing.T) {
	src := `/*---
description: demo
expected:
  - "a"
  - b c
error: type error
---*/
print("a");`
	meta, err := ParseMetadata(src)
	if err != nil {
		t.Fatalf("ParseMetadata: %v", err)
	}
	if meta.Description != "demo" || meta.Error != "type error" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if len(meta.Expected) != 2 || meta.Expected[0] != "a" || meta.Expected[1] != "b c" {
		t.Errorf("Expected = %q", meta.Expected)
	}
}

func TestParseMetadataErrors(t *testing.T) {
	if _, err := ParseMetadata(`print(1);`); err == nil {
		t.Error("missing frontmatter should be an error")
	}
	if _, err := ParseMetadata("/*---\nflags: [x]\n---*/"); err == nil {
		t.Error("unknown frontmatter keys should be an error")
	}
}

func TestCompareOutput(t *testing.T) {
	if diff := compareOutput([]string{"1", "2"}, "1\n2\n"); diff != "" {
		t.Errorf("unexpected diff %q", diff)
	}
	if diff := compareOutput(nil, ""); diff != "" {
		t.Errorf("unexpected diff %q", diff)
	}
	if diff := compareOutput([]string{"1"}, "1\n2\n"); !strings.Contains(diff, "unexpected") {
		t.Errorf("extra line: diff %q", diff)
	}
	if diff := compareOutput([]string{"1", "2"}, "1\n"); !strings.Contains(diff, "missing") {
		t.Errorf("missing line: diff %q", diff)
	}
	if diff := compareOutput([]string{"1"}, "2\n"); !strings.Contains(diff, "line 1") {
		t.Errorf("mismatch: diff %q", diff)
	}
}

func TestRunScripts(t *testing.T) {
	var out bytes.Buffer
	results, summary, err := Run(context.Background(), Config{
		Dir:     filepath.Join("testdata", "scripts"),
		Verbose: true,
		Out:     &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, r := range results {
		want := Pass
		if r.Path == "skipped.js" {
			want = Skip
		}
		if r.Result != want {
			t.Errorf("%s: got %s (%s), want %s", r.Path, r.Result, r.Message, want)
		}
	}
	if summary.Total != 7 || summary.Passed != 6 || summary.Skipped != 1 || !summary.OK() {
		t.Errorf("unexpected summary %+v", summary)
	}
	if !strings.Contains(out.String(), "PASS closures.js") {
		t.Errorf("verbose output missing result line:\n%s", out.String())
	}
}

func TestRunFilterAndLimit(t *testing.T) {
	results, summary, err := Run(context.Background(), Config{
		Dir:    filepath.Join("testdata", "scripts"),
		Filter: "errors",
		Limit:  2,
		Out:    &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Total != 2 || len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !strings.HasPrefix(r.Path, "errors") {
			t.Errorf("filter let through %s", r.Path)
		}
	}
}

func writeScript(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "wrong_output.js", "/*---\nexpected: [\"2\"]\n---*/\nprint(1);\n")
	writeScript(t, dir, "unexpected_error.js", "/*---\ndescription: x\n---*/\n1 + \"a\";\n")
	writeScript(t, dir, "no_error.js", "/*---\nerror: arithmetic\n---*/\n1 / 1;\n")
	writeScript(t, dir, "no_frontmatter.js", "print(1);\n")

	results, summary, err := Run(context.Background(), Config{Dir: dir, Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := map[string]Result{
		"no_error.js":         Fail,
		"no_frontmatter.js":   Error,
		"unexpected_error.js": Fail,
		"wrong_output.js":     Fail,
	}
	for _, r := range results {
		if r.Result != want[r.Path] {
			t.Errorf("%s: got %s (%s), want %s", r.Path, r.Result, r.Message, want[r.Path])
		}
	}
	if summary.OK() || summary.Failed != 3 || summary.Errors != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestRunTimeout(t *testing.T) {
	dir := t.TempDir()
	// Deep but finite recursion that takes longer than the timeout.
	writeScript(t, dir, "slow.js", `/*---
description: slow
---*/
function spin(n) { if (n == 0) { return 0; } return spin(n - 1) + spin(n - 1); }
spin(40);
`)
	results, summary, err := Run(context.Background(), Config{Dir: dir, Timeout: 20 * time.Millisecond, Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 || results[0].Result != Error || !strings.Contains(results[0].Message, "timeout") {
		t.Fatalf("expected a timeout, got %+v", results)
	}
	if summary.Errors != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestRunMissingDir(t *testing.T) {
	if _, _, err := Run(context.Background(), Config{Dir: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
