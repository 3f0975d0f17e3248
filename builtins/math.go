package builtins

import (
	"github.com/example/smalljs/runtime"
)

func arithmetic(op func(a, b int) (int, error)) nativeFunc {
	return func(args []*runtime.Value) (*runtime.Value, error) {
		left, right, err := binary(args)
		if err != nil {
			return nil, err
		}
		a, err := runtime.ToInteger(left)
		if err != nil {
			return nil, err
		}
		b, err := runtime.ToInteger(right)
		if err != nil {
			return nil, err
		}
		n, err := op(a, b)
		if err != nil {
			return nil, err
		}
		return runtime.NewInteger(n), nil
	}
}

func divide(a, b int) (int, error) {
	if b == 0 {
		return 0, runtime.ArithmeticErrorf("division of %d by zero", a)
	}
	return a / b, nil
}

func modulo(a, b int) (int, error) {
	if b == 0 {
		return 0, runtime.ArithmeticErrorf("modulo of %d by zero", a)
	}
	return a % b, nil
}
