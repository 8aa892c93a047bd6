package calc

import "strconv"

// ParseError is an error indicating a token the parser did not expect at a
// grammar point. It implements InputError.
type ParseError struct {
	// Text is the text of the offending token, or "" at end of input.
	Text string
	// Col is the byte offset of the offending token.
	Col int
}

// perr makes the ParseError for an unexpected token.
func perr(tok token) *ParseError {
	return &ParseError{Text: tok.text, Col: tok.pos}
}

func (err *ParseError) Error() string {
	if err.Text == "" {
		return "parse error at end of input" + atbyte(err.Col)
	}
	return "parse error at " + strconv.Quote(err.Text) + atbyte(err.Col)
}

func (err *ParseError) Pos() int {
	return err.Col
}

// atbyte formats a byte offset for an error message.
func atbyte(pos int) string {
	return " (byte " + strconv.Itoa(pos) + ")"
}

// InputError is an error with position information. Every error from input
// that fails to lex or parse implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset in the input of the token that caused the
	// error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
)
