package calc

import (
	"strconv"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
	// num is the value of a tokenNum.
	num float64
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF marks the end of the input. The lexer always ends the token
	// list with one.
	tokenEOF
	// tokenNum is a numeric literal.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent

	tokenPlus    // +
	tokenMinus   // -
	tokenStar    // *
	tokenSlash   // /
	tokenCaret   // ^
	tokenBang    // !
	tokenPercent // %
	tokenBar     // |
	tokenEqual   // =
	tokenComma   // ,
	tokenUnder   // _
	tokenOpen    // (
	tokenClose   // )
)

// Symbols contains the runes which lex to single-rune tokens, in the same
// order as their token kinds starting from tokenPlus.
const Symbols = "+-*/^!%|=,_()"

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	}
	if k >= tokenPlus && k <= tokenClose {
		return string(Symbols[k-tokenPlus])
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}

// prec is the binding power of a token in infix position. Tokens that are
// handled by their own grammar rules have no binding power of their own.
func (k tokenKind) prec() int {
	switch k {
	case tokenPlus, tokenMinus:
		return 1
	case tokenStar, tokenSlash:
		return 2
	case tokenCaret:
		return 3
	case tokenBang:
		return 4
	default:
		return 0
	}
}

// describe gives the text of a token for error messages. The EOF token is
// described as the empty string.
func (t lexToken) describe() string {
	if t.kind == tokenEOF {
		return ""
	}
	return t.text
}
