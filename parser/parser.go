package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/smalljs/ast"
	"github.com/example/smalljs/lexer"
	"github.com/example/smalljs/runtime"
	"github.com/example/smalljs/token"
)

// Precedence levels for Pratt parsing
const (
	_ int = iota
	precLowest
	precAssignment
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnary
	precCall
)

// Error is a syntax error with its position. AtEOF is set when the input
// ended before the construct was complete.
type Error struct {
	Line   int
	Column int
	Msg    string
	AtEOF  bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

type Parser struct {
	l         *lexer.Lexer
	curToken  token.Token
	peekToken token.Token
	errors    []error
}

func New(source string) *Parser {
	p := &Parser{l: lexer.New(source)}
	p.peekToken = p.l.NextToken()
	p.nextToken()
	return p
}

// Parse parses a whole script, joining all syntax errors into one.
func Parse(source string) (*ast.Script, error) {
	script, errs := New(source).ParseScript()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return script, nil
}

// IsIncomplete reports whether every error in errs was caused by the input
// ending too early, i.e. more lines could still make it valid.
func IsIncomplete(errs []error) bool {
	if len(errs) == 0 {
		return false
	}
	for _, err := range errs {
		var perr *Error
		if !errors.As(err, &perr) || !perr.AtEOF {
			return false
		}
	}
	return true
}

func (p *Parser) ParseScript() (*ast.Script, []error) {
	body := &ast.Block{Line: p.curToken.Line}
	for !p.curTokenIs(token.EOF) {
		if instr := p.parseStatement(); instr != nil {
			body.Instrs = append(body.Instrs, instr)
		}
	}
	return &ast.Script{Body: body}, p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	if p.curToken.Type == token.Illegal {
		p.addError("illegal token %q", p.curToken.Literal)
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expect(t token.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError("expected %s, got %s (%q)", t, p.curToken.Type, p.curToken.Literal)
	return false
}

func (p *Parser) addError(format string, args ...interface{}) {
	p.errors = append(p.errors, &Error{
		Line:   p.curToken.Line,
		Column: p.curToken.Column,
		Msg:    fmt.Sprintf(format, args...),
		AtEOF:  p.curTokenIs(token.EOF),
	})
}

func (p *Parser) consumeSemicolon() {
	if p.curTokenIs(token.Semicolon) {
		p.nextToken()
	}
}

// ---------- Statement Parsers ----------

func (p *Parser) parseStatement() ast.Expr {
	switch p.curToken.Type {
	case token.Var:
		return p.parseVariableDeclaration()
	case token.LeftBrace:
		return p.parseBlock()
	case token.Return:
		return p.parseReturn()
	case token.If:
		return p.parseIf()
	case token.Function:
		if p.peekTokenIs(token.Identifier) {
			fun := p.parseFunction()
			p.consumeSemicolon()
			return fun
		}
		return p.parseExpressionStatement()
	case token.Semicolon:
		p.nextToken()
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVariableDeclaration() ast.Expr {
	line := p.curToken.Line
	p.nextToken() // consume var
	name := p.curToken.Literal
	if !p.expect(token.Identifier) {
		p.skipStatement()
		return nil
	}
	decl := &ast.LocalVarAssignment{Line: line, Name: name, Declaration: true}
	if p.curTokenIs(token.Assign) {
		p.nextToken() // consume =
		decl.Value = p.parseExpression(precLowest)
	} else {
		decl.Value = &ast.Literal{Line: line, Value: runtime.Undefined}
	}
	p.consumeSemicolon()
	return decl
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Line: p.curToken.Line}
	p.expect(token.LeftBrace)
	for !p.curTokenIs(token.RightBrace) && !p.curTokenIs(token.EOF) {
		if instr := p.parseStatement(); instr != nil {
			block.Instrs = append(block.Instrs, instr)
		}
	}
	p.expect(token.RightBrace)
	return block
}

// parseBody accepts a braced block or a single statement wrapped in one.
func (p *Parser) parseBody() *ast.Block {
	if p.curTokenIs(token.LeftBrace) {
		return p.parseBlock()
	}
	block := &ast.Block{Line: p.curToken.Line}
	if instr := p.parseStatement(); instr != nil {
		block.Instrs = append(block.Instrs, instr)
	}
	return block
}

func (p *Parser) parseReturn() ast.Expr {
	ret := &ast.Return{Line: p.curToken.Line}
	p.nextToken() // consume return
	if p.curTokenIs(token.Semicolon) || p.curTokenIs(token.RightBrace) || p.curTokenIs(token.EOF) {
		ret.Value = &ast.Literal{Line: ret.Line, Value: runtime.Undefined}
	} else {
		ret.Value = p.parseExpression(precLowest)
	}
	p.consumeSemicolon()
	return ret
}

func (p *Parser) parseIf() ast.Expr {
	stmt := &ast.If{Line: p.curToken.Line}
	p.nextToken() // consume if
	p.expect(token.LeftParen)
	stmt.Cond = p.parseExpression(precLowest)
	p.expect(token.RightParen)
	stmt.Then = p.parseBody()

	if p.curTokenIs(token.Else) {
		p.nextToken()
		if p.curTokenIs(token.If) {
			line := p.curToken.Line
			stmt.Else = &ast.Block{Line: line, Instrs: []ast.Expr{p.parseIf()}}
		} else {
			stmt.Else = p.parseBody()
		}
	} else {
		stmt.Else = &ast.Block{Line: stmt.Line}
	}
	return stmt
}

func (p *Parser) parseFunction() *ast.Fun {
	fun := &ast.Fun{Line: p.curToken.Line}
	p.nextToken() // consume function
	if p.curTokenIs(token.Identifier) {
		fun.Name = p.curToken.Literal
		p.nextToken()
	}
	fun.Params = p.parseParams()
	fun.Body = p.parseBlock()
	return fun
}

func (p *Parser) parseParams() []string {
	params := []string{}
	if !p.expect(token.LeftParen) {
		return params
	}
	for !p.curTokenIs(token.RightParen) && !p.curTokenIs(token.EOF) {
		if !p.curTokenIs(token.Identifier) {
			p.addError("expected parameter name, got %s (%q)", p.curToken.Type, p.curToken.Literal)
			p.nextToken()
			continue
		}
		params = append(params, p.curToken.Literal)
		p.nextToken()
		if !p.curTokenIs(token.RightParen) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RightParen)
	return params
}

func (p *Parser) parseExpressionStatement() ast.Expr {
	expr := p.parseExpression(precLowest)
	p.consumeSemicolon()
	return expr
}

// skipStatement drops tokens up to the next statement boundary after an error.
func (p *Parser) skipStatement() {
	for !p.curTokenIs(token.Semicolon) && !p.curTokenIs(token.RightBrace) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
	p.consumeSemicolon()
}

// ---------- Expression Parsing (Pratt) ----------

func (p *Parser) parseExpression(minPrec int) ast.Expr {
	left := p.parsePrefixExpression()
	for {
		prec := p.infixPrecedence()
		if prec <= minPrec {
			break
		}
		left = p.parseInfixExpression(left)
	}
	return left
}

func (p *Parser) parsePrefixExpression() ast.Expr {
	switch p.curToken.Type {
	case token.Identifier:
		return p.parseIdentifier()
	case token.Number:
		return p.parseNumberLiteral()
	case token.String:
		lit := &ast.Literal{Line: p.curToken.Line, Value: runtime.NewString(p.curToken.Literal)}
		p.nextToken()
		return lit
	case token.Undefined:
		lit := &ast.Literal{Line: p.curToken.Line, Value: runtime.Undefined}
		p.nextToken()
		return lit
	case token.LeftParen:
		p.nextToken() // consume (
		expr := p.parseExpression(precLowest)
		p.expect(token.RightParen)
		return expr
	case token.LeftBrace:
		return p.parseObjectLiteral()
	case token.Function:
		return p.parseFunction()
	case token.Minus:
		return p.parseNegation()
	default:
		p.addError("unexpected token %s (%q)", p.curToken.Type, p.curToken.Literal)
		lit := &ast.Literal{Line: p.curToken.Line, Value: runtime.Undefined}
		if !p.curTokenIs(token.EOF) {
			p.nextToken()
		}
		return lit
	}
}

func (p *Parser) parseIdentifier() *ast.LocalVarAccess {
	id := &ast.LocalVarAccess{Line: p.curToken.Line, Name: p.curToken.Literal}
	p.nextToken()
	return id
}

func (p *Parser) parseNumberLiteral() ast.Expr {
	tok := p.curToken
	p.nextToken()
	n, err := strconv.Atoi(strings.ReplaceAll(tok.Literal, "_", ""))
	if err != nil {
		p.errors = append(p.errors, &Error{Line: tok.Line, Column: tok.Column, Msg: fmt.Sprintf("invalid integer %q", tok.Literal)})
		return &ast.Literal{Line: tok.Line, Value: runtime.Undefined}
	}
	return &ast.Literal{Line: tok.Line, Value: runtime.NewInteger(n)}
}

// parseNegation folds -<integer> into a literal and desugars anything
// else into a call of the "-" binding with a zero left operand.
func (p *Parser) parseNegation() ast.Expr {
	line := p.curToken.Line
	p.nextToken() // consume -
	operand := p.parseExpression(precUnary)
	if lit, ok := operand.(*ast.Literal); ok && lit.Value.Type == runtime.TypeInteger {
		return &ast.Literal{Line: line, Value: runtime.NewInteger(-lit.Value.Int)}
	}
	zero := &ast.Literal{Line: line, Value: runtime.NewInteger(0)}
	return operatorCall(line, "-", zero, operand)
}

func (p *Parser) parseObjectLiteral() *ast.New {
	obj := &ast.New{Line: p.curToken.Line}
	p.nextToken() // consume {
	seen := make(map[string]bool)

	for !p.curTokenIs(token.RightBrace) && !p.curTokenIs(token.EOF) {
		var name string
		switch p.curToken.Type {
		case token.Identifier, token.String:
			name = p.curToken.Literal
		default:
			if _, keyword := token.Keywords[p.curToken.Literal]; !keyword {
				p.addError("expected field name, got %s (%q)", p.curToken.Type, p.curToken.Literal)
				p.nextToken()
				continue
			}
			name = p.curToken.Literal
		}
		if seen[name] {
			p.addError("duplicate field %q", name)
		}
		seen[name] = true
		p.nextToken()
		p.expect(token.Colon)
		obj.Fields = append(obj.Fields, &ast.Field{Name: name, Value: p.parseExpression(precLowest)})

		if !p.curTokenIs(token.RightBrace) {
			if !p.expect(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RightBrace)
	return obj
}

// ---------- Infix Parsing ----------

var binaryOperators = map[token.TokenType]int{
	token.Equal:              precEquality,
	token.NotEqual:           precEquality,
	token.LessThan:           precRelational,
	token.LessThanOrEqual:    precRelational,
	token.GreaterThan:        precRelational,
	token.GreaterThanOrEqual: precRelational,
	token.Plus:               precAdditive,
	token.Minus:              precAdditive,
	token.Asterisk:           precMultiplicative,
	token.Slash:              precMultiplicative,
	token.Percent:            precMultiplicative,
}

func (p *Parser) infixPrecedence() int {
	switch p.curToken.Type {
	case token.Assign:
		return precAssignment
	case token.LeftParen, token.Dot:
		return precCall
	}
	return binaryOperators[p.curToken.Type]
}

func (p *Parser) parseInfixExpression(left ast.Expr) ast.Expr {
	switch p.curToken.Type {
	case token.Assign:
		return p.parseAssignment(left)
	case token.LeftParen:
		return p.parseCall(left)
	case token.Dot:
		return p.parseFieldAccess(left)
	default:
		return p.parseBinaryInfix(left)
	}
}

func (p *Parser) parseBinaryInfix(left ast.Expr) ast.Expr {
	tok := p.curToken
	prec := p.infixPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return operatorCall(tok.Line, tok.Literal, left, right)
}

func operatorCall(line int, op string, left, right ast.Expr) *ast.FunCall {
	return &ast.FunCall{
		Line:   line,
		Callee: &ast.LocalVarAccess{Line: line, Name: op},
		Args:   []ast.Expr{left, right},
	}
}

// parseAssignment is right-associative: a = b = c assigns c to both.
func (p *Parser) parseAssignment(left ast.Expr) ast.Expr {
	tok := p.curToken
	p.nextToken() // consume =
	value := p.parseExpression(precAssignment - 1)
	switch target := left.(type) {
	case *ast.LocalVarAccess:
		return &ast.LocalVarAssignment{Line: tok.Line, Name: target.Name, Value: value}
	case *ast.FieldAccess:
		return &ast.FieldAssignment{Line: tok.Line, Receiver: target.Receiver, Name: target.Name, Value: value}
	default:
		p.errors = append(p.errors, &Error{Line: tok.Line, Column: tok.Column, Msg: "invalid assignment target " + ast.Kind(left)})
		return value
	}
}

func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	line := p.curToken.Line
	args := p.parseArguments()
	if access, ok := left.(*ast.FieldAccess); ok {
		return &ast.MethodCall{Line: line, Receiver: access.Receiver, Name: access.Name, Args: args}
	}
	return &ast.FunCall{Line: line, Callee: left, Args: args}
}

func (p *Parser) parseArguments() []ast.Expr {
	p.nextToken() // consume (
	args := []ast.Expr{}
	for !p.curTokenIs(token.RightParen) && !p.curTokenIs(token.EOF) {
		args = append(args, p.parseExpression(precLowest))
		if !p.curTokenIs(token.RightParen) {
			if !p.expect(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RightParen)
	return args
}

func (p *Parser) parseFieldAccess(left ast.Expr) ast.Expr {
	line := p.curToken.Line
	p.nextToken() // consume .
	name := p.curToken.Literal
	if !p.curTokenIs(token.Identifier) {
		if _, keyword := token.Keywords[name]; !keyword {
			p.addError("expected field name after '.', got %s (%q)", p.curToken.Type, name)
			return left
		}
	}
	p.nextToken()
	return &ast.FieldAccess{Line: line, Receiver: left, Name: name}
}
