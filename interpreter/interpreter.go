package interpreter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/example/smalljs/ast"
	"github.com/example/smalljs/builtins"
	"github.com/example/smalljs/parser"
	"github.com/example/smalljs/runtime"
)

// Signal types for control flow
type signalType int

const (
	sigNone signalType = iota
	sigReturn
)

// signal is the completion of evaluating one node: either a plain value or
// a return unwinding to the nearest function frame. Failures never travel
// as signals; they are Go errors.
type signal struct {
	typ   signalType
	value *runtime.Value
}

func normal(v *runtime.Value) signal {
	return signal{typ: sigNone, value: v}
}

func (s signal) returning() bool {
	return s.typ == sigReturn
}

// Interpreter evaluates a smalljs AST using tree-walking.
type Interpreter struct {
	global *runtime.Object
	out    io.Writer
	logger *slog.Logger
}

type Option func(*Interpreter)

// WithOutput sets the sink print writes to. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(interp *Interpreter) {
		interp.out = w
	}
}

// WithLogger sets the logger used for call tracing. Defaults to a logger
// that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(interp *Interpreter) {
		interp.logger = logger
	}
}

// New builds the root environment and registers the natives in it.
func New(opts ...Option) *Interpreter {
	interp := &Interpreter{
		global: runtime.NewEnv(nil),
		out:    os.Stdout,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(interp)
	}
	builtins.RegisterAll(interp.global, interp.out, interp.logger)
	return interp
}

// RegisterNative registers a Go function as a global smalljs function.
func (interp *Interpreter) RegisterNative(name string, fn runtime.Invoker) {
	interp.global.Register(name, runtime.NewObject(runtime.NewFunction(name, fn)))
}

// GlobalEnv returns the root environment.
func (interp *Interpreter) GlobalEnv() *runtime.Object {
	return interp.global
}

// Run evaluates a parsed script in the root environment. The script's own
// value is discarded; only print has observable effects.
func (interp *Interpreter) Run(script *ast.Script) error {
	_, err := interp.eval(script.Body, interp.global)
	return err
}

// Eval parses and evaluates source in the root environment and returns the
// value of the last top-level instruction. Bindings persist between calls.
func (interp *Interpreter) Eval(source string) (*runtime.Value, error) {
	script, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	result := runtime.Undefined
	for _, instr := range script.Body.Instrs {
		sig, err := interp.eval(instr, interp.global)
		if err != nil {
			return nil, err
		}
		result = sig.value
		if sig.returning() {
			break
		}
	}
	return result, nil
}

func (interp *Interpreter) tracing() bool {
	return interp.logger.Enabled(context.Background(), slog.LevelDebug)
}

// eval is the single dispatch over every AST variant.
func (interp *Interpreter) eval(expr ast.Expr, env *runtime.Object) (signal, error) {
	switch e := expr.(type) {
	case *ast.Block:
		return interp.evalBlock(e, env)
	case *ast.Literal:
		return normal(e.Value), nil
	case *ast.FunCall:
		return interp.evalFunCall(e, env)
	case *ast.LocalVarAccess:
		return normal(env.Lookup(e.Name)), nil
	case *ast.LocalVarAssignment:
		return interp.evalLocalVarAssignment(e, env)
	case *ast.Fun:
		return normal(interp.createFunction(e, env)), nil
	case *ast.Return:
		return interp.evalReturn(e, env)
	case *ast.If:
		return interp.evalIf(e, env)
	case *ast.New:
		return interp.evalNew(e, env)
	case *ast.FieldAccess:
		return interp.evalFieldAccess(e, env)
	case *ast.FieldAssignment:
		return interp.evalFieldAssignment(e, env)
	case *ast.MethodCall:
		return interp.evalMethodCall(e, env)
	default:
		// Unreachable while ast.Expr stays sealed; reaching it means a
		// variant was added without evaluator support.
		panic(fmt.Sprintf("unsupported expression %T", expr))
	}
}

func failAt(line int, f *runtime.Failure) error {
	f.Line = line
	return f
}

func (interp *Interpreter) evalBlock(b *ast.Block, env *runtime.Object) (signal, error) {
	for _, instr := range b.Instrs {
		sig, err := interp.eval(instr, env)
		if err != nil || sig.returning() {
			return sig, err
		}
	}
	return normal(runtime.Undefined), nil
}

// evalArgs evaluates call arguments left to right. A non-nil signal means a
// return escaped from an argument and must be propagated.
func (interp *Interpreter) evalArgs(exprs []ast.Expr, env *runtime.Object) ([]*runtime.Value, *signal, error) {
	args := make([]*runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		sig, err := interp.eval(expr, env)
		if err != nil {
			return nil, nil, err
		}
		if sig.returning() {
			return nil, &sig, nil
		}
		args = append(args, sig.value)
	}
	return args, nil, nil
}

func (interp *Interpreter) evalFunCall(e *ast.FunCall, env *runtime.Object) (signal, error) {
	callee, err := interp.eval(e.Callee, env)
	if err != nil || callee.returning() {
		return callee, err
	}
	fn := callee.value.AsObject()
	if !fn.Callable() {
		return signal{}, failAt(e.Line, runtime.TypeErrorf("%s is not a function", callee.value.Repr()))
	}
	args, sig, err := interp.evalArgs(e.Args, env)
	if err != nil {
		return signal{}, err
	}
	if sig != nil {
		return *sig, nil
	}
	result, err := fn.Invoke(runtime.Undefined, args)
	if err != nil {
		return signal{}, runtime.WithLine(err, e.Line)
	}
	return normal(result), nil
}

func (interp *Interpreter) evalLocalVarAssignment(e *ast.LocalVarAssignment, env *runtime.Object) (signal, error) {
	sig, err := interp.eval(e.Value, env)
	if err != nil || sig.returning() {
		return sig, err
	}
	if e.Declaration {
		// The check walks the whole visible chain, so an inner scope cannot
		// shadow an outer binding either. A binding holding undefined does
		// not count as declared.
		if !env.Lookup(e.Name).IsUndefined() {
			return signal{}, failAt(e.Line, runtime.AlreadyDeclaredf("variable %s already declared", e.Name))
		}
		env.Register(e.Name, sig.value)
		return sig, nil
	}
	owner := env.Owner(e.Name)
	if owner == nil {
		return signal{}, failAt(e.Line, runtime.ReferenceErrorf("variable %s is not declared", e.Name))
	}
	owner.Set(e.Name, sig.value)
	return sig, nil
}

// createFunction closes over env, the environment active where the literal
// is evaluated.
func (interp *Interpreter) createFunction(e *ast.Fun, env *runtime.Object) *runtime.Value {
	name := e.DisplayName()
	fn := runtime.NewFunction(name, func(self *runtime.Object, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		if len(args) != len(e.Params) {
			return nil, runtime.ArityErrorf("function %s (line %d) expects %d arguments, got %d", name, e.Line, len(e.Params), len(args))
		}
		frame := runtime.NewEnv(env)
		frame.Register("this", receiver)
		for i, param := range e.Params {
			frame.Register(param, args[i])
		}
		if interp.tracing() {
			interp.logger.Debug("push stack frame",
				slog.String("function", name),
				slog.Int("argument-count", len(args)),
				slog.Int("depth", frame.Depth()))
		}
		sig, err := interp.eval(e.Body, frame)
		if err != nil {
			return nil, err
		}
		if sig.returning() {
			return sig.value, nil
		}
		return runtime.Undefined, nil
	})
	val := runtime.NewObject(fn)
	if e.Named() {
		env.Register(e.Name, val)
	}
	return val
}

func (interp *Interpreter) evalReturn(e *ast.Return, env *runtime.Object) (signal, error) {
	sig, err := interp.eval(e.Value, env)
	if err != nil || sig.returning() {
		return sig, err
	}
	return signal{typ: sigReturn, value: sig.value}, nil
}

func (interp *Interpreter) evalIf(e *ast.If, env *runtime.Object) (signal, error) {
	cond, err := interp.eval(e.Cond, env)
	if err != nil || cond.returning() {
		return cond, err
	}
	if cond.value.Truthy() {
		return interp.eval(e.Then, env)
	}
	return interp.eval(e.Else, env)
}

func (interp *Interpreter) evalNew(e *ast.New, env *runtime.Object) (signal, error) {
	obj := runtime.NewPlainObject()
	for _, field := range e.Fields {
		sig, err := interp.eval(field.Value, env)
		if err != nil || sig.returning() {
			return sig, err
		}
		obj.Set(field.Name, sig.value)
	}
	return normal(runtime.NewObject(obj)), nil
}

// evalReceiver evaluates the receiver of a field operation exactly once and
// checks that it is an object.
func (interp *Interpreter) evalReceiver(expr ast.Expr, line int, env *runtime.Object) (*runtime.Object, signal, error) {
	recv, err := interp.eval(expr, env)
	if err != nil || recv.returning() {
		return nil, recv, err
	}
	obj, err := runtime.ToObject(recv.value)
	if err != nil {
		return nil, signal{}, runtime.WithLine(err, line)
	}
	return obj, recv, nil
}

func (interp *Interpreter) evalFieldAccess(e *ast.FieldAccess, env *runtime.Object) (signal, error) {
	obj, recv, err := interp.evalReceiver(e.Receiver, e.Line, env)
	if obj == nil {
		return recv, err
	}
	return normal(obj.Get(e.Name)), nil
}

func (interp *Interpreter) evalFieldAssignment(e *ast.FieldAssignment, env *runtime.Object) (signal, error) {
	obj, recv, err := interp.evalReceiver(e.Receiver, e.Line, env)
	if obj == nil {
		return recv, err
	}
	sig, err := interp.eval(e.Value, env)
	if err != nil || sig.returning() {
		return sig, err
	}
	obj.Set(e.Name, sig.value)
	return sig, nil
}

func (interp *Interpreter) evalMethodCall(e *ast.MethodCall, env *runtime.Object) (signal, error) {
	obj, recv, err := interp.evalReceiver(e.Receiver, e.Line, env)
	if obj == nil {
		return recv, err
	}
	method := obj.Get(e.Name)
	fn := method.AsObject()
	if !fn.Callable() {
		return signal{}, failAt(e.Line, runtime.TypeErrorf("%s.%s is %s, not a function", recv.value.Repr(), e.Name, method.Repr()))
	}
	args, sig, err := interp.evalArgs(e.Args, env)
	if err != nil {
		return signal{}, err
	}
	if sig != nil {
		return *sig, nil
	}
	result, err := fn.Invoke(recv.value, args)
	if err != nil {
		return signal{}, runtime.WithLine(err, e.Line)
	}
	return normal(result), nil
}
