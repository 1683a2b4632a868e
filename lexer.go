package main

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/waxwane/intercal72/internal/fileinput"
)

// Lexer scans an INTERCAL-72 source file into a stream of Tok values,
// tracking source line numbers through an internal/fileinput.Input so that
// callers can render the caret diagnostics spec.md §7 requires.
type Lexer struct {
	in    fileinput.Input
	peek  rune
	eof   bool
	peek2 rune
	eof2  bool
	line  int
}

// NewLexer creates a lexer reading from r, named for diagnostics.
func NewLexer(r io.Reader, name string) *Lexer {
	l := &Lexer{line: 1}
	l.in.Queue = []io.Reader{namedReader{r, name}}
	l.readAhead()
	l.advance()
	return l
}

type namedReader struct {
	io.Reader
	name string
}

func (r namedReader) Name() string { return r.name }

// readAhead pulls one more rune into peek2, the lexer's second lookahead
// slot, used to disambiguate a lone 'V' (the unary OR operator) from the
// first letter of an ordinary word, and an in-word apostrophe from a
// trailing one.
func (l *Lexer) readAhead() {
	r, _, err := l.in.ReadRune()
	if err != nil {
		l.eof2 = true
		l.peek2 = 0
		return
	}
	l.peek2 = r
}

func (l *Lexer) advance() {
	l.peek, l.eof = l.peek2, l.eof2
	l.readAhead()
}

// letterFollows reports whether the rune after the current one is itself a
// letter (i.e. the current rune is not standing alone).
func (l *Lexer) letterFollows() bool {
	return !l.eof2 && unicode.IsLetter(l.peek2)
}

// CurrentLine returns the text of the source line currently being scanned,
// for use in error reports.
func (l *Lexer) CurrentLine() string { return l.in.Scan.String() }

// LastLine returns the most recently completed source line.
func (l *Lexer) LastLine() string { return l.in.Last.String() }

// next scans and returns the next token.
func (l *Lexer) next() (Tok, error) {
	l.skipSpaceAndComments()
	line := l.in.Scan.Line

	if l.eof {
		return Tok{Kind: TkEOF, Line: line}, nil
	}

	r := l.peek

	if r == chWow {
		l.advance()
		if !l.eof && l.peek == chSpot {
			l.advance()
			return Tok{Kind: TkChar, Text: string(chSpark), Line: line}, nil
		}
		return Tok{Kind: TkChar, Text: string(chWow), Line: line}, nil
	}

	if unicode.IsDigit(r) {
		return l.scanNumber(line), nil
	}

	// A bare 'V' (not the start of a longer word) is the unary OR operator;
	// any other run of letters beginning with 'V' (e.g. "V1" is impossible
	// since digits aren't letters, but "VARIABLE"-style reserved words are
	// not part of this grammar) is lexed as an ordinary word.
	if r == chOr && !l.letterFollows() {
		l.advance()
		return Tok{Kind: TkChar, Text: string(chOr), Line: line}, nil
	}

	if unicode.IsLetter(r) {
		return l.scanWord(line), nil
	}

	if norm, ok := classicalSigils[r]; ok {
		l.advance()
		return Tok{Kind: TkChar, Text: string(norm), Line: line}, nil
	}

	switch r {
	case chSpot, chTwoSpot, chTail, chHybrid,
		chMingle, chSelect, chAnd, chOr, chXor, chSpark,
		chLParen, chRParen, chPlus, chMinus, chHash, chPercent, chLess:
		l.advance()
		return Tok{Kind: TkChar, Text: string(r), Line: line}, nil
	}

	l.advance()
	return Tok{Kind: TkBad, Text: string(r), Line: line}, nil
}

func (l *Lexer) skipSpaceAndComments() {
	for !l.eof {
		if unicode.IsSpace(l.peek) {
			l.advance()
			continue
		}
		// a lone '*' at the start of an otherwise-unparseable statement is
		// handled by the parser as BadStmtBody; the lexer does not treat
		// '*' specially.
		break
	}
}

func (l *Lexer) scanNumber(line int) Tok {
	var sb strings.Builder
	for !l.eof && unicode.IsDigit(l.peek) {
		sb.WriteRune(l.peek)
		l.advance()
	}
	var n uint32
	for _, c := range sb.String() {
		n = n*10 + uint32(c-'0')
	}
	return Tok{Kind: TkNumber, Num: n, Text: sb.String(), Line: line}
}

func (l *Lexer) scanWord(line int) Tok {
	var sb strings.Builder
	for !l.eof && (unicode.IsLetter(l.peek) || l.peek == '\'') {
		// N'T: the apostrophe is only part of the word when immediately
		// followed by a letter (so that a trailing spark-introducing !.
		// never gets absorbed here; scanWord is only entered on a leading
		// letter, so that ambiguity cannot arise mid-scan).
		if l.peek == '\'' {
			if !l.letterFollows() {
				break
			}
			sb.WriteRune(l.peek)
			l.advance()
			continue
		}
		sb.WriteRune(l.peek)
		l.advance()
	}
	return Tok{Kind: TkWord, Text: strings.ToUpper(sb.String()), Line: line}
}

func (l *Lexer) errorAt(line int, format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...))
}
