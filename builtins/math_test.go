package builtins

import (
	"io"
	"math"
	"testing"

	"github.com/example/smalljs/runtime"
)

func ints(ns ...int) []*runtime.Value {
	out := make([]*runtime.Value, len(ns))
	for i, n := range ns {
		out[i] = runtime.NewInteger(n)
	}
	return out
}

func TestArithmetic(t *testing.T) {
	env := newTestEnv(io.Discard)
	tests := []struct {
		op   string
		a, b int
		want int
	}{
		{"+", 2, 3, 5},
		{"-", 2, 3, -1},
		{"*", 4, 5, 20},
		{"/", 7, 2, 3},
		{"/", -7, 2, -3},
		{"%", 7, 3, 1},
		{"%", -7, 3, -1},
		{"/", math.MinInt, -1, math.MinInt},
	}
	for _, tt := range tests {
		got, err := call(t, env, tt.op, ints(tt.a, tt.b)...)
		if err != nil {
			t.Errorf("%s(%d, %d): unexpected error %v", tt.op, tt.a, tt.b, err)
			continue
		}
		if got.Type != runtime.TypeInteger || got.Int != tt.want {
			t.Errorf("%s(%d, %d): expected %d, got %s", tt.op, tt.a, tt.b, tt.want, got.Repr())
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	env := newTestEnv(io.Discard)
	for _, op := range []string{"/", "%"} {
		_, err := call(t, env, op, ints(4, 0)...)
		f, ok := runtime.AsFailure(err)
		if !ok {
			t.Fatalf("%s(4, 0): expected a failure, got %v", op, err)
		}
		if f.Kind != runtime.ArithmeticError {
			t.Errorf("%s(4, 0): expected arithmetic error, got %s", op, f.Kind)
		}
	}
}

func TestArithmeticTypeErrors(t *testing.T) {
	env := newTestEnv(io.Discard)
	bad := [][]*runtime.Value{
		{runtime.NewString("a"), runtime.NewInteger(1)},
		{runtime.NewInteger(1), runtime.Undefined},
		{runtime.NewObject(runtime.NewPlainObject()), runtime.NewInteger(1)},
	}
	for _, args := range bad {
		_, err := call(t, env, "+", args...)
		f, ok := runtime.AsFailure(err)
		if !ok || f.Kind != runtime.TypeError {
			t.Errorf("+(%s, %s): expected type error, got %v", args[0].Repr(), args[1].Repr(), err)
		}
	}
}

func TestOperatorArity(t *testing.T) {
	env := newTestEnv(io.Discard)
	for _, op := range []string{"+", "==", "<"} {
		_, err := call(t, env, op, ints(1)...)
		f, ok := runtime.AsFailure(err)
		if !ok || f.Kind != runtime.ArityError {
			t.Errorf("%s with one operand: expected arity error, got %v", op, err)
		}
		_, err = call(t, env, op, ints(1, 2, 3)...)
		if f, ok := runtime.AsFailure(err); !ok || f.Kind != runtime.ArityError {
			t.Errorf("%s with three operands: expected arity error, got %v", op, err)
		}
	}
}
