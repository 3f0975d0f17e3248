package builtins

import (
	"io"
	"log/slog"

	"github.com/example/smalljs/runtime"
)

// RegisterAll installs the natives into the root environment. Operators
// are ordinary bindings named after their symbol.
func RegisterAll(env *runtime.Object, out io.Writer, logger *slog.Logger) {
	// 1. The root environment itself
	env.Register("global", runtime.NewObject(env))

	// 2. Output
	setFunction(env, "print", newPrint(out, logger))

	// 3. Integer arithmetic
	setFunction(env, "+", arithmetic(func(a, b int) (int, error) { return a + b, nil }))
	setFunction(env, "-", arithmetic(func(a, b int) (int, error) { return a - b, nil }))
	setFunction(env, "*", arithmetic(func(a, b int) (int, error) { return a * b, nil }))
	setFunction(env, "/", arithmetic(divide))
	setFunction(env, "%", arithmetic(modulo))

	// 4. Equality
	setFunction(env, "==", equality(false))
	setFunction(env, "!=", equality(true))

	// 5. Ordering
	setFunction(env, "<", ordering(func(c int) bool { return c < 0 }))
	setFunction(env, "<=", ordering(func(c int) bool { return c <= 0 }))
	setFunction(env, ">", ordering(func(c int) bool { return c > 0 }))
	setFunction(env, ">=", ordering(func(c int) bool { return c >= 0 }))
}
