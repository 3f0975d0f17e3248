// Package testrunner runs directories of smalljs scripts that describe
// their own expected outcome in a YAML frontmatter block:
//
//	/*---
//	description: closures see later writes
//	expected:
//	  - 1
//	  - 2
//	---*/
//
// A script passes when its printed lines equal expected, or, for a script
// declaring error, when it fails with a message containing that text.
package testrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/smalljs/interpreter"
)

// DefaultTimeout bounds a single script when Config.Timeout is zero.
const DefaultTimeout = 5 * time.Second

type Result int

const (
	Pass Result = iota
	Fail
	Skip
	Error
)

func (r Result) String() string {
	switch r {
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	case Skip:
		return "SKIP"
	case Error:
		return "ERROR"
	}
	return "UNKNOWN"
}

type TestResult struct {
	Path    string
	Result  Result
	Message string
	Elapsed time.Duration
}

type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Errors  int
	Elapsed time.Duration
}

// OK reports whether nothing failed or errored.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Errors == 0
}

type Config struct {
	Dir     string
	Filter  string
	Limit   int
	Verbose bool
	Timeout time.Duration
	Out     io.Writer    // verbose lines; defaults to os.Stdout
	Logger  *slog.Logger // per-run interpreter logger; defaults to discard
}

// Metadata is the frontmatter of a script.
type Metadata struct {
	Description string   `yaml:"description"`
	Expected    []string `yaml:"expected"`
	Error       string   `yaml:"error"`
	Skip        string   `yaml:"skip"`
}

// Run discovers and runs every .js script under cfg.Dir, returning results
// in path order and a summary.
func Run(ctx context.Context, cfg Config) ([]TestResult, Summary, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	files, err := discover(cfg)
	if err != nil {
		return nil, Summary{}, err
	}

	start := time.Now()
	var results []TestResult
	var summary Summary
	summary.Total = len(files)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}
		rel, _ := filepath.Rel(cfg.Dir, path)
		tr := runSingleTest(ctx, cfg, path, rel)
		results = append(results, tr)

		switch tr.Result {
		case Pass:
			summary.Passed++
		case Fail:
			summary.Failed++
		case Skip:
			summary.Skipped++
		case Error:
			summary.Errors++
		}

		if cfg.Verbose {
			msg := ""
			if tr.Message != "" {
				msg = " " + tr.Message
			}
			fmt.Fprintf(cfg.Out, "%s %s%s\n", tr.Result, rel, msg)
		}
	}

	summary.Elapsed = time.Since(start)
	return results, summary, nil
}

func discover(cfg Config) ([]string, error) {
	var files []string
	err := filepath.WalkDir(cfg.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".js") {
			return nil
		}
		if cfg.Filter != "" {
			rel, _ := filepath.Rel(cfg.Dir, path)
			if !strings.Contains(rel, cfg.Filter) {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("testrunner: scan %s: %w", cfg.Dir, err)
	}
	sort.Strings(files)
	if cfg.Limit > 0 && len(files) > cfg.Limit {
		files = files[:cfg.Limit]
	}
	return files, nil
}

func runSingleTest(ctx context.Context, cfg Config, path, rel string) TestResult {
	source, err := os.ReadFile(path)
	if err != nil {
		return TestResult{Path: rel, Result: Error, Message: "read error: " + err.Error()}
	}

	meta, err := ParseMetadata(string(source))
	if err != nil {
		return TestResult{Path: rel, Result: Error, Message: err.Error()}
	}
	if meta.Skip != "" {
		return TestResult{Path: rel, Result: Skip, Message: meta.Skip}
	}

	start := time.Now()
	var out bytes.Buffer
	interp := interpreter.New(
		interpreter.WithOutput(&out),
		interpreter.WithLogger(cfg.Logger.With(slog.String("script", rel))),
	)

	// A script that never finishes leaves its goroutine behind; the
	// interpreter has no cancellation points.
	resultCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultCh <- fmt.Errorf("interpreter panic: %v", r)
			}
		}()
		_, err := interp.Eval(string(source))
		resultCh <- err
	}()

	timer := time.NewTimer(cfg.Timeout)
	defer timer.Stop()

	var evalErr error
	select {
	case evalErr = <-resultCh:
	case <-timer.C:
		return TestResult{
			Path:    rel,
			Result:  Error,
			Message: fmt.Sprintf("timeout (%s)", cfg.Timeout),
			Elapsed: time.Since(start),
		}
	case <-ctx.Done():
		return TestResult{Path: rel, Result: Error, Message: ctx.Err().Error(), Elapsed: time.Since(start)}
	}

	elapsed := time.Since(start)

	// Negative tests: the script must fail with a matching message.
	if meta.Error != "" {
		if evalErr == nil {
			return TestResult{
				Path:    rel,
				Result:  Fail,
				Message: fmt.Sprintf("expected error containing %q", meta.Error),
				Elapsed: elapsed,
			}
		}
		if !strings.Contains(evalErr.Error(), meta.Error) {
			return TestResult{
				Path:    rel,
				Result:  Fail,
				Message: fmt.Sprintf("expected error containing %q, got %q", meta.Error, evalErr.Error()),
				Elapsed: elapsed,
			}
		}
	} else if evalErr != nil {
		return TestResult{Path: rel, Result: Fail, Message: evalErr.Error(), Elapsed: elapsed}
	}

	if meta.Expected != nil {
		if diff := compareOutput(meta.Expected, out.String()); diff != "" {
			return TestResult{Path: rel, Result: Fail, Message: diff, Elapsed: elapsed}
		}
	}

	return TestResult{Path: rel, Result: Pass, Elapsed: elapsed}
}

func compareOutput(expected []string, output string) string {
	got := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if output == "" {
		got = nil
	}
	for i := 0; i < len(expected) || i < len(got); i++ {
		switch {
		case i >= len(got):
			return fmt.Sprintf("line %d: missing, want %q", i+1, expected[i])
		case i >= len(expected):
			return fmt.Sprintf("line %d: unexpected %q", i+1, got[i])
		case got[i] != expected[i]:
			return fmt.Sprintf("line %d: got %q, want %q", i+1, got[i], expected[i])
		}
	}
	return ""
}

var errNoFrontmatter = errors.New("missing /*--- ---*/ frontmatter")

// ParseMetadata decodes the frontmatter block between /*--- and ---*/.
func ParseMetadata(source string) (Metadata, error) {
	var meta Metadata

	startIdx := strings.Index(source, "/*---")
	if startIdx < 0 {
		return meta, errNoFrontmatter
	}
	endIdx := strings.Index(source[startIdx:], "---*/")
	if endIdx < 0 {
		return meta, errNoFrontmatter
	}

	block := source[startIdx+5 : startIdx+endIdx]
	decoder := yaml.NewDecoder(strings.NewReader(block))
	decoder.KnownFields(true)
	if err := decoder.Decode(&meta); err != nil && !errors.Is(err, io.EOF) {
		return meta, fmt.Errorf("frontmatter: %w", err)
	}
	return meta, nil
}
