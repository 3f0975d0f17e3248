package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/example/smalljs/config"
	"github.com/example/smalljs/testrunner"
)

// defaultDir is where the repository keeps its example scripts, relative to
// the module root.
var defaultDir = filepath.Join("testrunner", "testdata", "scripts")

func main() {
	dir := flag.String("dir", defaultDir, "directory of .js scripts with frontmatter")
	filter := flag.String("filter", "", "filter scripts by path substring")
	limit := flag.Int("limit", 0, "maximum number of scripts to run (0 = all)")
	verbose := flag.Bool("v", false, "verbose output (print each result as it finishes)")
	timeout := flag.Duration("timeout", testrunner.DefaultTimeout, "per-script timeout")
	configPath := flag.String("config", "", "path to smalljs.yaml")
	flag.Parse()

	if _, err := os.Stat(*dir); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: script directory not found at %s\n", *dir)
		os.Exit(1)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Find(*dir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Apply()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, summary, err := testrunner.Run(ctx, testrunner.Config{
		Dir:     *dir,
		Filter:  *filter,
		Limit:   *limit,
		Verbose: *verbose,
		Timeout: *timeout,
		Out:     os.Stdout,
		Logger:  cfg.Logger(os.Stderr),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Print non-verbose results
	if !*verbose {
		for _, r := range results {
			msg := ""
			if r.Message != "" {
				msg = " " + r.Message
			}
			fmt.Printf("%s %s%s\n", r.Result, r.Path, msg)
		}
	}

	fmt.Println()
	fmt.Println("=== Summary ===")
	fmt.Printf("Total:   %d\n", summary.Total)
	fmt.Printf("Passed:  %d\n", summary.Passed)
	fmt.Printf("Failed:  %d\n", summary.Failed)
	fmt.Printf("Skipped: %d\n", summary.Skipped)
	fmt.Printf("Errors:  %d\n", summary.Errors)
	if run := summary.Total - summary.Skipped; run > 0 {
		fmt.Printf("Pass rate: %.1f%% (%d/%d excluding skipped)\n",
			float64(summary.Passed)/float64(run)*100, summary.Passed, run)
	}
	fmt.Printf("Elapsed: %s\n", summary.Elapsed.Round(time.Millisecond))

	if !summary.OK() {
		os.Exit(1)
	}
}
