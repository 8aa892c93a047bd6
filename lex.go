package calc

import (
	"regexp"
	"strconv"
	"unicode/utf8"
)

// token is one lexeme of an expression.
type token struct {
	text string
	kind tokenKind
	pos  int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEnd indicates the end of the input.
	tokenEnd
	// tokenNum is an integer or real literal.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent
	// tokenOp is any character outside the other classes, including the
	// operators and punctuation the grammar uses and the two-character
	// floor division operator.
	tokenOp
)

func (k tokenKind) String() string {
	switch k {
	case tokenEnd:
		return "End"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	default:
		return "None"
	}
}

// numpat matches a numeric literal at the start of its input: an integer
// part with no leading zeros and an optional fractional part. Immutable and
// safe for concurrent use.
var numpat = regexp.MustCompile(`^(?:0|[1-9][0-9]*)(?:\.[0-9]+)?`)

// lexer scans tokens from an input string. Positions are byte offsets.
type lexer struct {
	src string
	off int
}

// lex creates a lexer for an input string. A lexer scans its input once;
// create a fresh one per input.
func lex(src string) *lexer {
	return &lexer{src: src}
}

// next scans the next token from the input. Once the input is exhausted,
// every call returns the end sentinel, positioned just past the last byte.
func (l *lexer) next() (token, error) {
	for l.off < len(l.src) && isSpace(l.src[l.off]) {
		l.off++
	}
	if l.off >= len(l.src) {
		return token{kind: tokenEnd, pos: len(l.src)}, nil
	}
	tok := token{pos: l.off}
	c := l.src[l.off]
	switch {
	case isDigit(c):
		m := numpat.FindString(l.src[l.off:])
		if m == "" {
			// Unreachable while the pattern accepts every digit; guarded so
			// a bad pattern edit fails instead of looping.
			return tok, &LexError{Text: string(c), Col: l.off}
		}
		tok.text = m
		tok.kind = tokenNum
		l.off += len(m)
	case isAlpha(c):
		j := l.off + 1
		for j < len(l.src) && isAlnum(l.src[j]) {
			j++
		}
		tok.text = l.src[l.off:j]
		tok.kind = tokenIdent
		l.off = j
	case c == '/' && l.off+1 < len(l.src) && l.src[l.off+1] == '/':
		tok.text = "//"
		tok.kind = tokenOp
		l.off += 2
	default:
		// Every other character is a one-character token, whether the
		// grammar knows it or not; the parser rejects unexpected ones.
		// Multibyte runes are consumed whole so errors name the rune.
		_, sz := utf8.DecodeRuneInString(l.src[l.off:])
		tok.text = l.src[l.off : l.off+sz]
		tok.kind = tokenOp
		l.off += sz
	}
	return tok, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

// LexError indicates text that fails the numeric-literal pattern, the only
// lexical rule that can reject. It implements InputError.
type LexError struct {
	// Text is the text at which scanning failed.
	Text string
	// Col is the byte offset of the failure in the input.
	Col int
}

func (err *LexError) Error() string {
	return "invalid token " + strconv.Quote(err.Text) + atbyte(err.Col)
}

func (err *LexError) Pos() int {
	return err.Col
}
