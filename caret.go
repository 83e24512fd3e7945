package calc

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/cznic/mathutil"
)

// Underline points at the position of an input error in the source line that
// caused it. The result is the source followed by a line with a caret under
// the offending rune. If err is not an InputError, the result is the empty
// string.
func Underline(src string, err error) string {
	var ie InputError
	if !errors.As(err, &ie) {
		return ""
	}
	// Positions past the end point just after the last rune.
	col := mathutil.Clamp(ie.Pos()-1, 0, utf8.RuneCountInString(src))
	var b strings.Builder
	b.WriteString(src)
	b.WriteByte('\n')
	k := 0
	for _, r := range src {
		if k >= col {
			break
		}
		// Keep tabs so the caret lines up under tabbed input.
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		k++
	}
	b.WriteByte('^')
	return b.String()
}
