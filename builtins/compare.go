package builtins

import (
	"github.com/example/smalljs/runtime"
)

func equality(negate bool) nativeFunc {
	return func(args []*runtime.Value) (*runtime.Value, error) {
		left, right, err := binary(args)
		if err != nil {
			return nil, err
		}
		return runtime.NewBool(runtime.Equals(left, right) != negate), nil
	}
}

func ordering(test func(c int) bool) nativeFunc {
	return func(args []*runtime.Value) (*runtime.Value, error) {
		left, right, err := binary(args)
		if err != nil {
			return nil, err
		}
		c, err := runtime.Compare(left, right)
		if err != nil {
			return nil, err
		}
		return runtime.NewBool(test(c)), nil
	}
}
