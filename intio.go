package main

import (
	"fmt"
	"io"
	"unicode"

	"github.com/waxwane/intercal72/internal/butterfly"
	"github.com/waxwane/intercal72/internal/romannum"
	"github.com/waxwane/intercal72/internal/wordnum"
)

// execWriteIn reads one value (scalar targets) or one whole array's worth
// of elements (array targets) per LValue, per §6's two WRITE IN modes:
// English digit words for scalars, butterfly-encoded raw bytes for arrays.
func (m *Interp) execWriteIn(body WriteInBody) {
	for _, lv := range body.LVs {
		if lv.Var.Kind.isArray() {
			m.haltIf(m.writeInArray(lv.Var))
		} else {
			m.haltIf(m.writeInScalar(lv.Var))
		}
	}
}

func (m *Interp) writeInScalar(ref VarRef) error {
	words, err := m.scanDigitWords()
	if err != nil {
		return err
	}
	n, err := wordnum.Decode(words)
	if err != nil {
		return runErr(E000)
	}
	if ref.Kind == KindTwoSpot {
		return m.vars.SetScalar(ref, V32(n))
	}
	if n > 0xFFFF {
		return runErr(E275)
	}
	return m.vars.SetScalar(ref, V16(uint16(n)))
}

// scanDigitWords reads whitespace-separated alphabetic words from input
// until a non-digit-word, EOF, or newline, returning the digit words seen.
func (m *Interp) scanDigitWords() ([]string, error) {
	var words []string
	for {
		w, ok, eol, err := m.scanWord()
		if err != nil {
			if err == io.EOF && len(words) > 0 {
				return words, nil
			}
			return nil, err
		}
		if !ok {
			return words, nil
		}
		if !wordnum.IsDigitWord(w) {
			return words, nil
		}
		words = append(words, w)
		if eol {
			return words, nil
		}
	}
}

// scanWord reads the next alphabetic word; eol reports that a newline
// ended it (or came before any letter).
func (m *Interp) scanWord() (string, bool, bool, error) {
	var sb []rune
	for {
		r, _, err := m.in.ReadRune()
		if err != nil {
			if len(sb) > 0 {
				return string(sb), true, false, nil
			}
			return "", false, false, err
		}
		if r == '\n' {
			return string(sb), len(sb) > 0, true, nil
		}
		if unicode.IsSpace(r) {
			if len(sb) > 0 {
				return string(sb), true, false, nil
			}
			continue
		}
		if !unicode.IsLetter(r) {
			if len(sb) > 0 {
				return string(sb), true, false, nil
			}
			return "", false, false, nil
		}
		sb = append(sb, unicode.ToUpper(r))
	}
}

// writeInArray reads the dimensioned array's full element count as raw
// butterfly-encoded bytes (2 bytes/element for tail, 4 for hybrid).
func (m *Interp) writeInArray(ref VarRef) error {
	cell, err := m.vars.cell(ref)
	if err != nil {
		return err
	}
	n := cell.size()
	width := 2
	if ref.Kind == KindHybrid {
		width = 4
	}
	buf := make([]byte, n*width)
	if _, err := io.ReadFull(m.in, buf); err != nil {
		return runErr(E000)
	}
	if ref.Kind == KindHybrid {
		vals := butterfly.DecodeBytes32(buf)
		copy(cell.data, vals)
	} else {
		vals := butterfly.DecodeBytes16(buf)
		for i, v := range vals {
			cell.data[i] = uint32(v)
		}
	}
	return nil
}

// execReadOut writes each expression's value (Roman numeral for a scalar
// or array element) or, for a bare array reference with no subscripts,
// the whole array's butterfly-encoded bytes.
func (m *Interp) execReadOut(body ReadOutBody) {
	for _, e := range body.Exprs {
		if ve, ok := e.(VarExpr); ok && ve.LV.Var.Kind.isArray() && ve.LV.Var.Subs == nil {
			m.haltIf(m.readOutArray(ve.LV.Var))
			continue
		}
		v, err := m.eval(e)
		m.haltIf(err)
		m.haltIf(m.writeRoman(v))
	}
}

func (m *Interp) writeRoman(v Val) error {
	s := romannum.Encode(v.U32())
	_, err := fmt.Fprintln(m.out, s)
	return err
}

func (m *Interp) readOutArray(ref VarRef) error {
	cell, err := m.vars.cell(ref)
	if err != nil {
		return err
	}
	var buf []byte
	if ref.Kind == KindHybrid {
		buf = butterfly.EncodeBytes32(cell.data)
	} else {
		vals16 := make([]uint16, len(cell.data))
		for i, v := range cell.data {
			vals16[i] = uint16(v)
		}
		buf = butterfly.EncodeBytes16(vals16)
	}
	_, err = m.out.Write(buf)
	return err
}
