package main

import "fmt"

// TokKind classifies one lexeme. The lexer works at word/punctuation
// granularity; multi-word reserved phrases like "COME FROM" or "PLEASE DO"
// are recognized by the parser's greedy longest-match lookahead over runs
// of TkWord tokens, not by the lexer itself.
type TokKind uint8

const (
	TkEOF TokKind = iota
	TkWord
	TkNumber // a bare unsigned integer (appears after '#', or as a label digit run)
	TkChar   // single-character punctuation/sigil, see below
	TkBad    // a byte the lexer could not classify at all
)

// Punctuation and sigil characters recognized by the lexer, each emitted as
// a TkChar token whose Text is exactly that one rune (already normalized
// for the classical variant spellings listed in lex.rs: ¢ £ ¤ € all stand
// for '$', and ∀ stands for '?').
const (
	chSpot     = '.'
	chTwoSpot  = ':'
	chTail     = ','
	chHybrid   = ';'
	chMingle   = '$'
	chSelect   = '~'
	chAnd      = '&'
	chOr       = 'V'
	chXor      = '?'
	chSpark    = '\''
	chWow      = '!'
	chLParen   = '('
	chRParen   = ')'
	chPlus     = '+'
	chMinus    = '-'
	chHash     = '#'
	chPercent  = '%'
	chLess     = '<'
)

var classicalSigils = map[rune]rune{
	'¢': chMingle,
	'£': chMingle,
	'¤': chMingle,
	'€': chMingle,
	'∀': chXor,
}

// Tok is one lexed token.
type Tok struct {
	Kind TokKind
	Text string // upper-cased word text, or the single punctuation rune, as a string
	Num  uint32 // populated for TkNumber
	Line int
	Col  int
}

func (t Tok) String() string {
	switch t.Kind {
	case TkEOF:
		return "<eof>"
	case TkNumber:
		return fmt.Sprintf("%d", t.Num)
	default:
		return t.Text
	}
}
