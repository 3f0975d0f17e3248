package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/peterh/liner"

	"github.com/example/smalljs/ast"
	"github.com/example/smalljs/config"
	"github.com/example/smalljs/interpreter"
	"github.com/example/smalljs/parser"
	"github.com/example/smalljs/runtime"
)

const promptCont = "... "

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("smalljs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	evalCode := fs.String("e", "", "evaluate inline smalljs code")
	dumpAST := fs.Bool("ast", false, "dump the AST as JSON")
	configPath := fs.String("config", "", "path to smalljs.yaml (default: search upward from the working directory)")
	logLevel := fs.String("log-level", "", "override log_level (debug, info, warn, error)")
	repl := fs.Bool("repl", false, "start an interactive session")
	initConfig := fs.String("init-config", "", "write a default smalljs.yaml to the given path and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *initConfig != "" {
		if err := config.Write(config.Default(), *initConfig); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	cfg, err := loadConfig(*configPath, *logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	cfg.Apply()
	logger := cfg.Logger(stderr).With(slog.String("run_id", uuid.NewString()))

	var source, name string
	switch {
	case *repl:
		return runRepl(cfg, logger, stdout, stderr)
	case *evalCode != "":
		source, name = *evalCode, "-e"
	case fs.NArg() > 0:
		name = fs.Arg(0)
		data, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading file: %v\n", err)
			return 1
		}
		source = string(data)
	default:
		fmt.Fprintf(stderr, "Usage: smalljs [options] <file.js>\n")
		fmt.Fprintf(stderr, "       smalljs -e \"code\"\n")
		fmt.Fprintf(stderr, "       smalljs -repl\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		return 1
	}

	script, errs := parser.New(source).ParseScript()
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
		}
		return 1
	}

	// AST dump mode: print JSON and stop
	if *dumpAST {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ast.Dump(script.Body)); err != nil {
			fmt.Fprintf(stderr, "Error encoding AST: %v\n", err)
			return 1
		}
		return 0
	}

	interp := interpreter.New(interpreter.WithOutput(stdout), interpreter.WithLogger(logger))
	logger.Debug("run script", slog.String("source", name), slog.Int("instructions", len(script.Body.Instrs)))
	if err := interp.Run(script); err != nil {
		reportError(stderr, name, err)
		return 1
	}
	return 0
}

func loadConfig(path, level string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, wdErr
		}
		cfg, err = config.Find(wd)
	}
	if err != nil {
		return nil, err
	}
	if level != "" {
		cfg.LogLevel = level
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func reportError(w io.Writer, name string, err error) {
	var failure *runtime.Failure
	if errors.As(err, &failure) {
		fmt.Fprintf(w, "%s: %v\n", name, failure)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func runRepl(cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) int {
	histPath := cfg.HistoryFile
	if histPath != "" && !filepath.IsAbs(histPath) {
		home, _ := os.UserHomeDir()
		histPath = filepath.Join(home, histPath)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	interp := interpreter.New(interpreter.WithOutput(stdout), interpreter.WithLogger(logger))
	fmt.Fprintln(stdout, "smalljs - type :quit to exit")

	for {
		code, ok := readByParseProbe(ln, cfg.Prompt, promptCont)
		if !ok {
			fmt.Fprintln(stdout)
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return 0
			default:
				fmt.Fprintln(stdout, "unknown command. Type :quit to exit.")
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		val, err := interp.Eval(code)
		if err != nil {
			reportError(stderr, "repl", err)
			continue
		}
		if !val.IsUndefined() {
			fmt.Fprintln(stdout, val.Repr())
		}
	}
	return 0
}

// readByParseProbe keeps reading lines while the accumulated input only
// fails to parse because it ends too early.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, errs := parser.New(src).ParseScript(); parser.IsIncomplete(errs) {
			continue
		}
		return src, true
	}
}
