package builtins

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/example/smalljs/runtime"
)

func formatArgs(args []*runtime.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

func newPrint(out io.Writer, logger *slog.Logger) nativeFunc {
	return func(args []*runtime.Value) (*runtime.Value, error) {
		line := formatArgs(args)
		logger.Debug("print called", slog.Int("argument-count", len(args)))
		if _, err := fmt.Fprintln(out, line); err != nil {
			return nil, runtime.OutputErrorf("print: %v", err)
		}
		return runtime.Undefined, nil
	}
}
