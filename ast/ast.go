package ast

import "github.com/example/smalljs/runtime"

// AnonymousName is the name carried by function literals without one.
const AnonymousName = "lambda"

// Expr is the interface all AST nodes implement. The marker method is
// unexported so the set of variants is closed to this package.
type Expr interface {
	LineNumber() int
	exprNode()
}

// Script is the root of every AST.
type Script struct {
	Body *Block
}

type Block struct {
	Line   int
	Instrs []Expr
}

type Literal struct {
	Line  int
	Value *runtime.Value
}

type FunCall struct {
	Line   int
	Callee Expr
	Args   []Expr
}

type LocalVarAccess struct {
	Line int
	Name string
}

type LocalVarAssignment struct {
	Line        int
	Name        string
	Value       Expr
	Declaration bool
}

type Fun struct {
	Line   int
	Name   string // empty for anonymous functions
	Params []string
	Body   *Block
}

type Return struct {
	Line  int
	Value Expr
}

type If struct {
	Line int
	Cond Expr
	Then *Block
	Else *Block
}

// Field is one initializer of an object literal.
type Field struct {
	Name  string
	Value Expr
}

type New struct {
	Line   int
	Fields []*Field
}

type FieldAccess struct {
	Line     int
	Receiver Expr
	Name     string
}

type FieldAssignment struct {
	Line     int
	Receiver Expr
	Name     string
	Value    Expr
}

type MethodCall struct {
	Line     int
	Receiver Expr
	Name     string
	Args     []Expr
}

func (e *Block) LineNumber() int              { return e.Line }
func (e *Literal) LineNumber() int            { return e.Line }
func (e *FunCall) LineNumber() int            { return e.Line }
func (e *LocalVarAccess) LineNumber() int     { return e.Line }
func (e *LocalVarAssignment) LineNumber() int { return e.Line }
func (e *Fun) LineNumber() int                { return e.Line }
func (e *Return) LineNumber() int             { return e.Line }
func (e *If) LineNumber() int                 { return e.Line }
func (e *New) LineNumber() int                { return e.Line }
func (e *FieldAccess) LineNumber() int        { return e.Line }
func (e *FieldAssignment) LineNumber() int    { return e.Line }
func (e *MethodCall) LineNumber() int         { return e.Line }

func (*Block) exprNode()              {}
func (*Literal) exprNode()            {}
func (*FunCall) exprNode()            {}
func (*LocalVarAccess) exprNode()     {}
func (*LocalVarAssignment) exprNode() {}
func (*Fun) exprNode()                {}
func (*Return) exprNode()             {}
func (*If) exprNode()                 {}
func (*New) exprNode()                {}
func (*FieldAccess) exprNode()        {}
func (*FieldAssignment) exprNode()    {}
func (*MethodCall) exprNode()         {}

// DisplayName is the name a function value reports.
func (e *Fun) DisplayName() string {
	if e.Name == "" {
		return AnonymousName
	}
	return e.Name
}

// Named reports whether the literal binds its own name when evaluated.
func (e *Fun) Named() bool {
	return e.Name != "" && e.Name != AnonymousName
}

// Kind names the variant of e.
func Kind(e Expr) string {
	switch e.(type) {
	case *Block:
		return "Block"
	case *Literal:
		return "Literal"
	case *FunCall:
		return "FunCall"
	case *LocalVarAccess:
		return "LocalVarAccess"
	case *LocalVarAssignment:
		return "LocalVarAssignment"
	case *Fun:
		return "Fun"
	case *Return:
		return "Return"
	case *If:
		return "If"
	case *New:
		return "New"
	case *FieldAccess:
		return "FieldAccess"
	case *FieldAssignment:
		return "FieldAssignment"
	case *MethodCall:
		return "MethodCall"
	default:
		return "Unknown"
	}
}
