package builtins

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/example/smalljs/runtime"
)

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	env := newTestEnv(&buf)

	result, err := call(t, env, "print", runtime.NewString("hello"), runtime.NewInteger(42), runtime.Undefined)
	if err != nil {
		t.Fatalf("print: unexpected error %v", err)
	}
	if !result.IsUndefined() {
		t.Errorf("print should return undefined, got %s", result.Repr())
	}
	if got := buf.String(); got != "hello 42 undefined\n" {
		t.Errorf("print: got %q, want %q", got, "hello 42 undefined\n")
	}
}

func TestPrintNoArguments(t *testing.T) {
	var buf bytes.Buffer
	env := newTestEnv(&buf)
	if _, err := call(t, env, "print"); err != nil {
		t.Fatalf("print: unexpected error %v", err)
	}
	if buf.String() != "\n" {
		t.Errorf("print(): got %q, want a bare newline", buf.String())
	}
}

func TestPrintObjects(t *testing.T) {
	var buf bytes.Buffer
	env := newTestEnv(&buf)

	obj := runtime.NewPlainObject()
	obj.Set("a", runtime.NewInteger(1))
	obj.Set("b", runtime.NewString("x"))
	obj.Set("self", runtime.NewObject(obj))
	fn := env.Lookup("print")

	if _, err := call(t, env, "print", runtime.NewObject(obj), fn); err != nil {
		t.Fatalf("print: unexpected error %v", err)
	}
	want := `{a: 1, b: "x", self: [circular]} function print` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("print object: got %q, want %q", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPrintWriteFailure(t *testing.T) {
	env := newTestEnv(failingWriter{})
	_, err := call(t, env, "print", runtime.NewInteger(1))
	f, ok := runtime.AsFailure(err)
	if !ok {
		t.Fatalf("expected a failure, got %T: %v", err, err)
	}
	if f.Kind != runtime.OutputError || !strings.Contains(f.Msg, "disk full") {
		t.Errorf("unexpected failure %v", f)
	}
}
