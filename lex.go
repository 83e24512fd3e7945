package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
}

// lex scans the entire input into a list of tokens ending with an EOF token.
// The first invalid token aborts the scan.
func lex(src io.RuneScanner) ([]lexToken, error) {
	l := lexer{src: src, rune: 1}
	var toks []lexToken
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokenEOF {
			return toks, nil
		}
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of the input, the
// result is an EOF token positioned just past the last rune.
func (l *lexer) next() (lexToken, error) {
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			v, err := strconv.ParseFloat(tok.text, 64)
			if err != nil {
				// Digits and a single dot always parse, except that a huge
				// literal reports a range error along with ±Inf.
				if !errors.Is(err, strconv.ErrRange) {
					return tok, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
				}
			}
			tok.num = v
			return tok, nil
		case unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenIdent
			return tok, nil
		default:
			if k := strings.IndexRune(Symbols, r); k >= 0 {
				tok.text = Symbols[k : k+1]
				tok.kind = tokenPlus + tokenKind(k)
				return tok, nil
			}
			return tok, &LexError{Text: string(r), Col: tok.pos}
		}
	}
}

// scanNum scans the maximal run of digits and dots into the lexer's buffer.
func (l *lexer) scanNum() error {
	start := l.rune
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '.' {
			l.buf.WriteRune(r)
			if dot {
				// Keep the rest of the run so that the error shows all of it.
				l.scanRest()
				return &LexError{Text: l.buf.String(), Kind: "number", Col: start}
			}
			dot = true
			continue
		}
		if r < '0' || r > '9' {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		dig = true
	}
	if !dig {
		return &LexError{Text: l.buf.String(), Kind: "number", Col: start}
	}
	return nil
}

// scanRest consumes the remainder of an invalid number.
func (l *lexer) scanRest() {
	for {
		r, err := l.readRune()
		if err != nil {
			return
		}
		if r != '.' && (r < '0' || r > '9') {
			l.unreadRune()
			return
		}
		l.buf.WriteRune(r)
	}
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		if !unicode.IsLetter(r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the invalid token. For an unrecognized character, it is that
	// character alone.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" for
	// a malformed numeric literal or the empty string for a character that
	// does not begin any token.
	Kind string
	// Col is the position of the first rune of the invalid token.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "unrecognized character "+quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
