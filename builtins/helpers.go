package builtins

import (
	"github.com/example/smalljs/runtime"
)

// nativeFunc is the shape of a native that ignores self and this.
type nativeFunc func(args []*runtime.Value) (*runtime.Value, error)

func newFuncObject(name string, fn nativeFunc) *runtime.Object {
	return runtime.NewFunction(name, func(self *runtime.Object, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return fn(args)
	})
}

func setFunction(env *runtime.Object, name string, fn nativeFunc) {
	env.Register(name, runtime.NewObject(newFuncObject(name, fn)))
}

// binary checks that exactly two operands were passed.
func binary(args []*runtime.Value) (*runtime.Value, *runtime.Value, error) {
	if len(args) != 2 {
		return nil, nil, runtime.Arity(2, len(args))
	}
	return args[0], args[1], nil
}
