package main

// Parser turns a token stream into a Program, one statement at a time.
// It never fails outright on a malformed statement body: anything it
// cannot make sense of becomes a BadStmtBody, which is a well-formed
// statement that simply raises E000 if ever executed (§3, §4.1).
type Parser struct {
	lex  *Lexer
	toks []Tok // one-token (occasionally more) lookahead buffer
	prog *Program

	politeCount int
	totalCount  int
}

// NewParser creates a parser reading tokens from lex.
func NewParser(lex *Lexer) *Parser { return &Parser{lex: lex} }

func (p *Parser) peekN(n int) Tok {
	for len(p.toks) <= n {
		t, err := p.lex.next()
		if err != nil {
			t = Tok{Kind: TkEOF}
		}
		p.toks = append(p.toks, t)
	}
	return p.toks[n]
}

func (p *Parser) peek() Tok { return p.peekN(0) }

func (p *Parser) pop() Tok {
	t := p.peek()
	if len(p.toks) > 0 {
		p.toks = p.toks[1:]
	}
	return t
}

func (p *Parser) isWord(n int, word string) bool {
	t := p.peekN(n)
	return t.Kind == TkWord && t.Text == word
}

func (p *Parser) isChar(n int, ch byte) bool {
	t := p.peekN(n)
	return t.Kind == TkChar && len(t.Text) == 1 && t.Text[0] == ch
}

// matchWords consumes and returns true if the upcoming tokens spell out
// exactly the given word sequence; otherwise leaves the stream untouched.
func (p *Parser) matchWords(words ...string) bool {
	for i, w := range words {
		if !p.isWord(i, w) {
			return false
		}
	}
	for range words {
		p.pop()
	}
	return true
}

// ParseProgram consumes the entire token stream and returns the resulting
// (unlinked, unoptimized) program, plus a politeness-ratio error if the
// PLEASE tally falls outside [1/5, 1/3].
func (p *Parser) ParseProgram() (*Program, error) {
	p.prog = newProgram()
	for p.peek().Kind != TkEOF {
		stmt := p.parseStmt()
		p.prog.Stmts = append(p.prog.Stmts, stmt)
	}
	for i, s := range p.prog.Stmts {
		if i+1 < len(p.prog.Stmts) {
			s.OnTheWayTo = p.prog.Stmts[i+1].Line
		}
	}
	if len(p.prog.Stmts) == 0 {
		return p.prog, fatalErr(E129)
	}
	if err := p.checkPoliteness(); err != nil {
		return p.prog, err
	}
	return p.prog, nil
}

func (p *Parser) checkPoliteness() error {
	if p.totalCount == 0 {
		return nil
	}
	ratio := float64(p.politeCount) / float64(p.totalCount)
	if ratio < 0.2 {
		return fatalErr(E099)
	}
	if ratio > (1.0/3.0)+1e-9 {
		return fatalErr(E079)
	}
	return nil
}

var gerundWords = map[string]AbstainClass{
	"CALCULATING": ClassCalculating,
	"NEXTING":     ClassNexting,
	"RESUMING":    ClassResuming,
	"FORGETTING":  ClassForgetting,
	"STASHING":    ClassStashing,
	"RETRIEVING":  ClassRetrieving,
	"IGNORING":    ClassIgnoring,
	"REMEMBERING": ClassRemembering,
	"ABSTAINING":  ClassAbstaining,
	"REINSTATING": ClassReinstating,
	"READING":     ClassReadingOut, // first word of "READING OUT"
	"WRITING":     ClassWritingIn,  // first word of "WRITING IN"
	"TRYING":      ClassTryingAgain,
	"COMING":      ClassComingFrom, // first word of "COMING FROM"
}

// parseStmt parses one full statement: optional label, politeness/negation
// prefix, optional probability, and a body.
func (p *Parser) parseStmt() *Stmt {
	s := &Stmt{Probability: 100}
	s.Line = p.peek().Line

	if p.isChar(0, chLParen) && p.peekN(1).Kind == TkNumber && p.isChar(2, chRParen) {
		p.pop()
		num := p.pop()
		p.pop()
		s.Label = Label(num.Num)
	}

	switch {
	case p.matchWords("PLEASE", "DON'T"):
		s.Polite = true
		s.Negated = true
		p.totalCount++
		p.politeCount++
	case p.matchWords("PLEASE", "DO"):
		s.Polite = true
		p.totalCount++
		p.politeCount++
	case p.matchWords("PLEASE"):
		s.Polite = true
		p.totalCount++
		p.politeCount++
	case p.matchWords("DON'T"):
		s.Negated = true
		p.totalCount++
	case p.matchWords("DO"):
		p.totalCount++
	default:
		return p.parseBadStmt(s, "expected DO or PLEASE")
	}

	if p.matchWords("NOT") || p.matchWords("N'T") {
		s.Negated = true
	}

	if p.isChar(0, chPercent) {
		p.pop()
		n := p.pop()
		if n.Kind != TkNumber || n.Num < 1 || n.Num > 100 {
			return p.parseBadStmt(s, "bad probability")
		}
		s.Probability = uint8(n.Num)
	}

	body := p.parseBody()
	s.Body = body
	s.InitDisabled = s.Negated
	s.Disabled = s.Negated
	s.ComeFromSite = -1
	return s
}

func (p *Parser) parseBadStmt(s *Stmt, why string) *Stmt {
	raw := why
	for p.peek().Kind != TkEOF && !(p.isChar(0, chLParen) && p.peekN(1).Kind == TkNumber) {
		raw += " " + p.pop().String()
	}
	s.Body = BadStmtBody{Raw: raw}
	return s
}

func (p *Parser) parseBody() StmtBody {
	if p.isChar(0, chLParen) && p.peekN(1).Kind == TkNumber && p.isChar(2, chRParen) && p.isWord(3, "NEXT") {
		p.pop()
		num := p.pop()
		p.pop()
		p.pop()
		return NextBody{Target: Label(num.Num)}
	}
	switch {
	case p.matchWords("FORGET"):
		return ForgetBody{N: p.parseExpr()}
	case p.matchWords("RESUME"):
		return ResumeBody{N: p.parseExpr()}
	case p.matchWords("STASH"):
		return StashBody{Vars: p.parseVarList()}
	case p.matchWords("RETRIEVE"):
		return RetrieveBody{Vars: p.parseVarList()}
	case p.matchWords("IGNORE"):
		return IgnoreBody{Vars: p.parseVarList()}
	case p.matchWords("REMEMBER"):
		return RememberBody{Vars: p.parseVarList()}
	case p.matchWords("ABSTAIN"):
		return AbstainBody{Target: p.parseAbstainTarget()}
	case p.matchWords("REINSTATE"):
		return ReinstateBody{Target: p.parseAbstainTarget()}
	case p.matchWords("COME", "FROM"):
		return ComeFromBody{Target: p.parseComeFromTarget()}
	case p.matchWords("WRITE", "IN"):
		return WriteInBody{LVs: p.parseLValueList()}
	case p.matchWords("READ", "OUT"):
		return ReadOutBody{Exprs: p.parseExprListBy()}
	case p.matchWords("GIVE", "UP"):
		return GiveUpBody{}
	case p.matchWords("TRY", "AGAIN"):
		return TryAgainBody{}
	default:
		if lv, ok := p.tryLValue(); ok {
			return p.parseCalcOrDim(lv)
		}
		return BadStmtBody{Raw: "unrecognized statement"}
	}
}

func (p *Parser) parseAbstainTarget() Target {
	if p.matchWords("FROM") {
		return p.parseTargetSet()
	}
	return Target{Computed: p.parseExpr()}
}

func (p *Parser) parseComeFromTarget() Target {
	if p.isChar(0, chLParen) && p.peekN(1).Kind == TkNumber && p.isChar(2, chRParen) {
		return p.parseTargetSet()
	}
	if _, ok := p.gerundClassAhead(); ok {
		return p.parseTargetSet()
	}
	return Target{Computed: p.parseExpr()}
}

func (p *Parser) gerundClassAhead() (AbstainClass, bool) {
	t := p.peek()
	if t.Kind != TkWord {
		return classNone, false
	}
	if c, ok := gerundWords[t.Text]; ok {
		return c, true
	}
	return classNone, false
}

func (p *Parser) parseTargetSet() Target {
	var set []AbstainTarget
	for {
		if p.isChar(0, chLParen) {
			p.pop()
			n := p.pop()
			if p.isChar(0, chRParen) {
				p.pop()
			}
			set = append(set, AbstainTarget{Label: Label(n.Num)})
		} else {
			set = append(set, p.parseGerundTarget())
		}
		if p.isChar(0, chPlus) {
			p.pop()
			continue
		}
		break
	}
	return Target{Set: set}
}

// parseGerundTarget consumes a two-word gerund ("COMING FROM", "READING
// OUT", "WRITING IN", "TRYING AGAIN") or a one-word gerund and returns its
// class.
func (p *Parser) parseGerundTarget() AbstainTarget {
	t := p.pop()
	class, ok := gerundWords[t.Text]
	if ok {
		switch t.Text {
		case "READING":
			p.matchWords("OUT")
		case "WRITING":
			p.matchWords("IN")
		case "TRYING":
			p.matchWords("AGAIN")
		case "COMING":
			p.matchWords("FROM")
		}
	}
	return AbstainTarget{IsClass: true, Class: class}
}

func (p *Parser) parseVarList() []VarRef {
	var out []VarRef
	for {
		v, ok := p.tryVarRefNoSubs()
		if !ok {
			break
		}
		out = append(out, v)
		if p.isChar(0, chPlus) {
			p.pop()
			continue
		}
		break
	}
	return out
}

func (p *Parser) parseLValueList() []LValue {
	var out []LValue
	for {
		lv, ok := p.tryLValue()
		if !ok {
			break
		}
		out = append(out, lv)
		if p.isChar(0, chPlus) {
			p.pop()
			continue
		}
		break
	}
	return out
}

func (p *Parser) parseExprListBy() []Expr {
	var out []Expr
	out = append(out, p.parseExpr())
	for p.matchWords("BY") {
		out = append(out, p.parseExpr())
	}
	for p.isChar(0, chPlus) {
		p.pop()
		out = append(out, p.parseExpr())
	}
	return out
}

func (p *Parser) varKindForChar(ch byte) (VarKind, bool) {
	switch ch {
	case chSpot:
		return KindSpot, true
	case chTwoSpot:
		return KindTwoSpot, true
	case chTail:
		return KindTail, true
	case chHybrid:
		return KindHybrid, true
	}
	return 0, false
}

func (p *Parser) tryVarRefNoSubs() (VarRef, bool) {
	t := p.peek()
	if t.Kind != TkChar || len(t.Text) != 1 {
		return VarRef{}, false
	}
	kind, ok := p.varKindForChar(t.Text[0])
	if !ok {
		return VarRef{}, false
	}
	p.pop()
	num := p.pop()
	return VarRef{Kind: kind, Num: uint16(num.Num)}, true
}

func (p *Parser) tryLValue() (LValue, bool) {
	v, ok := p.tryVarRefNoSubs()
	if !ok {
		return LValue{}, false
	}
	if p.matchWords("SUB") {
		v.Subs = p.parseExprList()
	}
	return LValue{Var: v}, true
}

func (p *Parser) parseExprList() []Expr {
	var out []Expr
	out = append(out, p.parseExpr())
	for p.isChar(0, chPlus) {
		p.pop()
		out = append(out, p.parseExpr())
	}
	return out
}

// parseCalcOrDim resolves whether an LValue that was parsed at statement
// start denotes an assignment (scalar or array element) or an array
// dimensioning, per §4.1's CalcBody/CalcDimBody split.
func (p *Parser) parseCalcOrDim(lv LValue) StmtBody {
	if !p.isChar(0, chLess) {
		return BadStmtBody{Raw: "expected <- after variable"}
	}
	p.pop()
	if !p.isChar(0, chMinus) {
		return BadStmtBody{Raw: "expected <- after variable"}
	}
	p.pop()

	if lv.Var.Kind.isArray() && lv.Var.Subs == nil {
		return CalcDimBody{Var: lv.Var, Dims: p.parseExprListBy()}
	}
	return CalcBody{LV: lv, Expr: p.parseExpr()}
}

// parseExpr parses a full expression: a chain of terms joined by the
// binary mingle ($) and select (~) operators, left-associative.
func (p *Parser) parseExpr() Expr {
	left := p.parseTerm()
	for {
		switch {
		case p.isChar(0, chMingle):
			p.pop()
			left = MingleOrError(left, p.parseTerm())
		case p.isChar(0, chSelect):
			p.pop()
			left = SelectExpr{A: left, B: p.parseTerm()}
		default:
			return left
		}
	}
}

// MingleOrError wraps two sub-expressions in a MingleExpr node; actual
// width/overflow checking happens at evaluation time (values.go's mingle).
func MingleOrError(a, b Expr) Expr { return MingleExpr{A: a, B: b} }

func (p *Parser) parseTerm() Expr {
	if p.isChar(0, chAnd) || p.isChar(0, chOr) || p.isChar(0, chXor) {
		t := p.pop()
		var op UnOp
		switch t.Text[0] {
		case chAnd:
			op = UnAnd
		case chOr:
			op = UnOr
		case chXor:
			op = UnXor
		}
		return UnaryExpr{Op: op, X: p.parseTerm()}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() Expr {
	switch {
	case p.isChar(0, chHash):
		p.pop()
		n := p.pop()
		return NumExpr{Val: V16(uint16(n.Num))}
	case p.isChar(0, chLParen):
		p.pop()
		e := p.parseExpr()
		if p.isChar(0, chRParen) {
			p.pop()
		}
		return e
	default:
		if v, ok := p.tryVarRefWithSubs(); ok {
			return VarExpr{LV: LValue{Var: v}}
		}
		// malformed expression: consume one token to guarantee progress
		// and surface it as a degenerate numeric zero. The enclosing
		// statement is usually already headed for BadStmtBody by the
		// time an expression position fails this badly.
		p.pop()
		return NumExpr{Val: V16(0)}
	}
}

func (p *Parser) tryVarRefWithSubs() (VarRef, bool) {
	v, ok := p.tryVarRefNoSubs()
	if !ok {
		return VarRef{}, false
	}
	if p.matchWords("SUB") {
		v.Subs = p.parseExprList()
	}
	return v, true
}

// subExprsToInts converts already-evaluated dimension/subscript values to
// ints, failing when a value does not fit in 16 bits; used by the
// interpreter rather than the parser; kept here as a small helper shared
// by CalcDim execution and array indexing.
func subExprsToInts(vals []Val) ([]int, error) {
	out := make([]int, len(vals))
	for i, v := range vals {
		n, err := v.U16()
		if err != nil {
			return nil, err
		}
		out[i] = int(n)
	}
	return out, nil
}
