package token

type TokenType int

const (
	// Literals
	Illegal TokenType = iota
	EOF
	Identifier
	Number
	String

	// Operators
	Plus
	Minus
	Asterisk
	Slash
	Percent
	Assign
	Equal
	NotEqual
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual

	// Delimiters
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Semicolon
	Colon
	Comma
	Dot

	// Keywords
	Var
	Function
	Return
	If
	Else
	Undefined
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var Keywords = map[string]TokenType{
	"var":       Var,
	"function":  Function,
	"return":    Return,
	"if":        If,
	"else":      Else,
	"undefined": Undefined,
}

func LookupIdentifier(ident string) TokenType {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return Identifier
}

var names = map[TokenType]string{
	Illegal:            "ILLEGAL",
	EOF:                "EOF",
	Identifier:         "IDENTIFIER",
	Number:             "NUMBER",
	String:             "STRING",
	Plus:               "+",
	Minus:              "-",
	Asterisk:           "*",
	Slash:              "/",
	Percent:            "%",
	Assign:             "=",
	Equal:              "==",
	NotEqual:           "!=",
	LessThan:           "<",
	GreaterThan:        ">",
	LessThanOrEqual:    "<=",
	GreaterThanOrEqual: ">=",
	LeftParen:          "(",
	RightParen:         ")",
	LeftBrace:          "{",
	RightBrace:         "}",
	Semicolon:          ";",
	Colon:              ":",
	Comma:              ",",
	Dot:                ".",
	Var:                "var",
	Function:           "function",
	Return:             "return",
	If:                 "if",
	Else:               "else",
	Undefined:          "undefined",
}

func (t TokenType) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return "UNKNOWN"
}
