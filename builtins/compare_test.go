package builtins

import (
	"io"
	"testing"

	"github.com/example/smalljs/runtime"
)

func expectTruth(t *testing.T, env *runtime.Object, op string, a, b *runtime.Value, want int) {
	t.Helper()
	got, err := call(t, env, op, a, b)
	if err != nil {
		t.Fatalf("%s(%s, %s): unexpected error %v", op, a.Repr(), b.Repr(), err)
	}
	if got.Type != runtime.TypeInteger || got.Int != want {
		t.Errorf("%s(%s, %s): expected %d, got %s", op, a.Repr(), b.Repr(), want, got.Repr())
	}
}

func TestEquality(t *testing.T) {
	env := newTestEnv(io.Discard)
	obj := runtime.NewObject(runtime.NewPlainObject())
	other := runtime.NewObject(runtime.NewPlainObject())
	one := runtime.NewInteger(1)

	expectTruth(t, env, "==", one, runtime.NewInteger(1), 1)
	expectTruth(t, env, "==", runtime.NewString("a"), runtime.NewString("b"), 0)
	expectTruth(t, env, "==", runtime.NewString("a"), runtime.NewString("a"), 1)
	expectTruth(t, env, "==", one, runtime.NewString("1"), 0)
	expectTruth(t, env, "==", runtime.Undefined, runtime.Undefined, 1)
	expectTruth(t, env, "==", obj, obj, 1)
	expectTruth(t, env, "==", obj, other, 0)
	expectTruth(t, env, "!=", one, runtime.NewInteger(2), 1)
	expectTruth(t, env, "!=", obj, obj, 0)
}

func TestOrdering(t *testing.T) {
	env := newTestEnv(io.Discard)
	one, two := runtime.NewInteger(1), runtime.NewInteger(2)
	a, b := runtime.NewString("a"), runtime.NewString("b")

	expectTruth(t, env, "<", one, two, 1)
	expectTruth(t, env, "<", two, one, 0)
	expectTruth(t, env, "<=", one, one, 1)
	expectTruth(t, env, ">", two, one, 1)
	expectTruth(t, env, ">=", one, two, 0)
	expectTruth(t, env, "<", a, b, 1)
	expectTruth(t, env, ">=", b, a, 1)
}

func TestOrderingTypeErrors(t *testing.T) {
	env := newTestEnv(io.Discard)
	pairs := [][2]*runtime.Value{
		{runtime.NewInteger(1), runtime.NewString("1")},
		{runtime.Undefined, runtime.NewInteger(1)},
		{runtime.NewObject(runtime.NewPlainObject()), runtime.NewObject(runtime.NewPlainObject())},
	}
	for _, op := range []string{"<", "<=", ">", ">="} {
		for _, p := range pairs {
			_, err := call(t, env, op, p[0], p[1])
			f, ok := runtime.AsFailure(err)
			if !ok || f.Kind != runtime.TypeError {
				t.Errorf("%s(%s, %s): expected type error, got %v", op, p[0].Repr(), p[1].Repr(), err)
			}
		}
	}
}
