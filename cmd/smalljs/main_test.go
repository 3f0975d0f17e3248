package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-config", writeConfig(t)}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smalljs.yaml")
	if err := os.WriteFile(path, []byte("log_level: error\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEvalFlag(t *testing.T) {
	code, out, errOut := runCLI(t, "-e", `var x = 2; print("x is", x * 21);`)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut)
	}
	if out != "x is 42\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.js")
	src := "function greet(n) { return \"hi \" + n; }\n"
	if err := os.WriteFile(path, []byte(src+"print(1 + 1);\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, errOut := runCLI(t, path)
	if code != 0 || out != "2\n" {
		t.Fatalf("exit %d, stdout %q, stderr %q", code, out, errOut)
	}
}

func TestFailureExitCode(t *testing.T) {
	code, _, errOut := runCLI(t, "-e", "print(1);\n1 / 0;")
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(errOut, "at line 2, arithmetic error") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestSyntaxErrorExitCode(t *testing.T) {
	code, _, errOut := runCLI(t, "-e", "var = 1;")
	if code != 1 || !strings.Contains(errOut, "parse error") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}

func TestDumpAST(t *testing.T) {
	code, out, errOut := runCLI(t, "-ast", "-e", "var x = 1 + 2;")
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut)
	}
	var tree map[string]interface{}
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if tree["kind"] != "Block" {
		t.Errorf("root kind = %v", tree["kind"])
	}
	if !strings.Contains(out, `"FunCall"`) || !strings.Contains(out, `"name": "+"`) {
		t.Errorf("operator call missing from dump:\n%s", out)
	}
}

func TestDebugLogging(t *testing.T) {
	code, _, errOut := runCLI(t, "-log-level", "debug", "-e", "function f() { return 1; } f();")
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut)
	}
	for _, want := range []string{"push stack frame", "run_id=", "function=f"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("debug log missing %q:\n%s", want, errOut)
		}
	}
}

func TestBadLogLevel(t *testing.T) {
	code, _, _ := runCLI(t, "-log-level", "chatty", "-e", "1;")
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smalljs.yaml")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-init-config", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d, stderr %q", code, stderr.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "log_level: warn") {
		t.Errorf("config file:\n%s", data)
	}
}

func TestUsage(t *testing.T) {
	code, _, errOut := runCLI(t)
	if code != 1 || !strings.Contains(errOut, "Usage") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}
