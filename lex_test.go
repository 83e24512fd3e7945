package calc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	num := func(text string, v float64, pos int) lexToken {
		return lexToken{text: text, kind: tokenNum, pos: pos, num: v}
	}
	ident := func(text string, pos int) lexToken {
		return lexToken{text: text, kind: tokenIdent, pos: pos}
	}
	sym := func(text string, kind tokenKind, pos int) lexToken {
		return lexToken{text: text, kind: kind, pos: pos}
	}
	eof := func(pos int) lexToken {
		return lexToken{kind: tokenEOF, pos: pos}
	}
	cases := []struct {
		name   string
		src    string
		tokens []lexToken
	}{
		// spaces
		{"empty", "", []lexToken{eof(1)}},
		{"spaces", " \t \n ", []lexToken{eof(6)}},
		// numbers
		{"zero", "0", []lexToken{num("0", 0, 1), eof(2)}},
		{"digits", "9876543210", []lexToken{num("9876543210", 9876543210, 1), eof(11)}},
		{"two", "1 0", []lexToken{num("1", 1, 1), num("0", 0, 3), eof(4)}},
		{"decimal", "1.5", []lexToken{num("1.5", 1.5, 1), eof(4)}},
		{"leading-dot", ".25", []lexToken{num(".25", 0.25, 1), eof(4)}},
		{"trailing-dot", "2.", []lexToken{num("2.", 2, 1), eof(3)}},
		{"neg", "-1", []lexToken{sym("-", tokenMinus, 1), num("1", 1, 2), eof(3)}},
		{"num-ident", "2pi", []lexToken{num("2", 2, 1), ident("pi", 2), eof(4)}},
		// identifiers
		{"e", "e", []lexToken{ident("e", 1), eof(2)}},
		{"no-digits", "x1", []lexToken{ident("x", 1), num("1", 1, 2), eof(3)}},
		{"unicode", "π", []lexToken{ident("π", 1), eof(2)}},
		{"subscript", "log_2", []lexToken{ident("log", 1), sym("_", tokenUnder, 4), num("2", 2, 5), eof(6)}},
		{"call", "sin(", []lexToken{ident("sin", 1), sym("(", tokenOpen, 4), eof(5)}},
		// symbols
		{"ops", "+-*/^", []lexToken{
			sym("+", tokenPlus, 1),
			sym("-", tokenMinus, 2),
			sym("*", tokenStar, 3),
			sym("/", tokenSlash, 4),
			sym("^", tokenCaret, 5),
			eof(6),
		}},
		{"postfix", "5!!%", []lexToken{
			num("5", 5, 1),
			sym("!", tokenBang, 2),
			sym("!", tokenBang, 3),
			sym("%", tokenPercent, 4),
			eof(5),
		}},
		{"structural", "|(),=|", []lexToken{
			sym("|", tokenBar, 1),
			sym("(", tokenOpen, 2),
			sym(")", tokenClose, 3),
			sym(",", tokenComma, 4),
			sym("=", tokenEqual, 5),
			sym("|", tokenBar, 6),
			eof(7),
		}},
		{"spaced", " x = 2 ", []lexToken{ident("x", 2), sym("=", tokenEqual, 4), num("2", 2, 6), eof(8)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := lex(strings.NewReader(c.src))
			require.NoError(t, err)
			assert.Equal(t, c.tokens, toks)
		})
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  LexError
	}{
		{"at", "2@3", LexError{Text: "@", Col: 2}},
		{"dollar", "$", LexError{Text: "$", Col: 1}},
		{"late", "1 + 2 # 3", LexError{Text: "#", Col: 7}},
		{"bracket", "[1]", LexError{Text: "[", Col: 1}},
		{"dots", "1.2.3", LexError{Text: "1.2.3", Kind: "number", Col: 1}},
		{"dot", ".", LexError{Text: ".", Kind: "number", Col: 1}},
		{"dots-after", "4*1..2", LexError{Text: "1..2", Kind: "number", Col: 3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := lex(strings.NewReader(c.src))
			assert.Nil(t, toks)
			var le *LexError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, c.err, *le)
			assert.Equal(t, c.err.Col, le.Pos())
		})
	}
}

func TestLexErrorMessages(t *testing.T) {
	_, err := lex(strings.NewReader("2@3"))
	assert.EqualError(t, err, "2: unrecognized character '@'")
	_, err = lex(strings.NewReader("1.2.3"))
	assert.EqualError(t, err, `1: invalid number "1.2.3"`)
}

func TestTokenPrec(t *testing.T) {
	cases := []struct {
		kind tokenKind
		prec int
	}{
		{tokenNum, 0},
		{tokenIdent, 0},
		{tokenPlus, 1},
		{tokenMinus, 1},
		{tokenStar, 2},
		{tokenSlash, 2},
		{tokenCaret, 3},
		{tokenBang, 4},
		{tokenPercent, 0},
		{tokenBar, 0},
		{tokenEqual, 0},
		{tokenComma, 0},
		{tokenUnder, 0},
		{tokenOpen, 0},
		{tokenClose, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.prec, c.kind.prec(), "prec of %v", c.kind)
	}
}

func TestSymbolKinds(t *testing.T) {
	for k, r := range Symbols {
		kind := tokenPlus + tokenKind(k)
		assert.Equal(t, string(r), kind.String())
	}
}
