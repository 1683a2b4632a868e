package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"

	"github.com/waxwane/intercal72/internal/panicerr"
	"github.com/waxwane/intercal72/internal/runeio"
)

// InterpOption configures an Interp the way the host module's own
// functional options configure its control machine: each option mutates
// the Interp being built, applied in order by NewInterp.
type InterpOption interface {
	apply(*Interp)
}

type interpOptionFunc func(*Interp)

func (f interpOptionFunc) apply(m *Interp) { f(m) }

// WithOutput sets the writer READ OUT writes to. Defaults to io.Discard.
func WithOutput(w io.Writer) InterpOption {
	return interpOptionFunc(func(m *Interp) { m.out = w })
}

// WithInput sets the source WRITE IN reads from, for both its textual
// digit-word mode and its binary butterfly array mode.
func WithInput(r io.Reader) InterpOption {
	return interpOptionFunc(func(m *Interp) { m.in = runeio.NewReader(r) })
}

// WithSeed fixes the PRNG seed used for probability rolls and E774's
// simulated-bug roll, making a run reproducible (§8).
func WithSeed(seed int64) InterpOption {
	return interpOptionFunc(func(m *Interp) { m.rng = rand.New(rand.NewSource(seed)) })
}

// WithBugChance sets the denominator of the E774 occasional-bug
// probability (default 1000, i.e. roughly one in a thousand CalcBody
// executions silently corrupts a bit of its result). A value of 0 disables
// the simulated bug entirely.
func WithBugChance(n int) InterpOption {
	return interpOptionFunc(func(m *Interp) { m.bugChance = n })
}

// WithMemLimit bounds the variable numbers each of the four storage
// classes may use: storing to a variable numbered n or higher fails with a
// memory-limit error. Array elements and the total cell count are not
// limited.
func WithMemLimit(n uint) InterpOption {
	return interpOptionFunc(func(m *Interp) { m.memLimit = n })
}

// WithTrace installs a logger that records each dispatched statement,
// mirroring the host's -trace flag.
func WithTrace(l *log.Logger) InterpOption {
	return interpOptionFunc(func(m *Interp) { m.trace = l })
}

// Interp is the control machine described in §4.4: it steps a linked
// Program statement by statement, applying ABSTAIN/REINSTATE bits, COME
// FROM redirection, and the probability roll, until GIVE UP, an
// unrecovered error, or a cancelled context ends the run.
type Interp struct {
	prog *Program
	vars *Vars
	next nextStack

	out io.Writer
	in  runeio.Reader

	rng       *rand.Rand
	bugChance int
	memLimit  uint
	trace     *log.Logger

	ip int
}

// NewInterp builds an Interp for prog, which must already have been
// through Link (and optionally Optimize).
func NewInterp(prog *Program, opts ...InterpOption) *Interp {
	m := &Interp{
		prog:      prog,
		out:       io.Discard,
		in:        runeio.NewReader(strings.NewReader("")),
		bugChance: 1000,
	}
	for _, o := range opts {
		o.apply(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(1))
	}
	m.vars = newVars(m.memLimit)
	return m
}

// halt is the sentinel panic value used to unwind out of Run's dispatch
// loop on any *Error (GIVE UP simply returns), mirroring the host's own
// halt-and-recover control flow instead of threading error returns
// through every statement primitive.
type halt struct{ err error }

func (m *Interp) haltIf(err error) {
	if err != nil {
		panic(halt{err})
	}
}

// Run executes prog to completion. A nil error return means the program
// reached GIVE UP; a program looping through TRY AGAIN runs until ctx is
// cancelled. Any non-nil error is either a *Error describing the failing
// ICL diagnostic, or ctx's own cancellation cause wrapped as E778.
func (m *Interp) Run(ctx context.Context) error {
	return panicerr.Recover("interp", func() error {
		return m.run(ctx)
	})
}

func (m *Interp) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h, ok := r.(halt)
			if !ok {
				panic(r)
			}
			err = h.err
		}
	}()

	m.ip = 0
	for {
		if err := ctx.Err(); err != nil {
			return &Error{Code: E778, Wrapped: err}
		}
		if m.ip >= len(m.prog.Stmts) {
			return runErr(E633)
		}

		s := m.prog.Stmts[m.ip]
		nextIP := m.ip + 1

		if !s.Disabled && m.rollProbability(s.Probability) {
			if m.trace != nil {
				m.trace.Printf("#%d %v", m.ip, s)
			}
			switch body := s.Body.(type) {
			case CalcBody:
				m.execCalc(s, body)
			case CalcDimBody:
				m.execCalcDim(body)
			case NextBody:
				nextIP = m.execNext(body)
			case ForgetBody:
				m.execForget(body)
			case ResumeBody:
				nextIP = m.execResume(body)
			case StashBody:
				for _, v := range body.Vars {
					m.haltIf(m.vars.Stash(v))
				}
			case RetrieveBody:
				for _, v := range body.Vars {
					m.haltIf(m.vars.Retrieve(v))
				}
			case IgnoreBody:
				for _, v := range body.Vars {
					m.vars.setIgnored(v.key(), true)
				}
			case RememberBody:
				for _, v := range body.Vars {
					m.vars.setIgnored(v.key(), false)
				}
			case AbstainBody:
				m.setAbstain(body.Target, true)
			case ReinstateBody:
				m.setAbstain(body.Target, false)
			case ComeFromBody:
				// no-op when reached in sequence; its effect is entirely
				// in resolveIncoming's redirection of other statements.
			case WriteInBody:
				m.execWriteIn(body)
			case ReadOutBody:
				m.execReadOut(body)
			case GiveUpBody:
				return nil
			case TryAgainBody:
				m.ip = 0
				continue
			case BadStmtBody:
				m.haltIf(runErr(E000))
			default:
				m.haltIf(fmt.Errorf("unhandled statement body %T", body))
			}
		}

		redirected, err := m.resolveIncoming(nextIP)
		m.haltIf(err)
		m.ip = redirected
	}
}

func (m *Interp) rollProbability(pct uint8) bool {
	if pct >= 100 {
		return true
	}
	return m.rng.Intn(100) < int(pct)
}

func (m *Interp) eval(e Expr) (Val, error) {
	switch x := e.(type) {
	case NumExpr:
		return x.Val, nil
	case VarExpr:
		return m.evalVarRef(x.LV.Var)
	case MingleExpr:
		a, err := m.eval(x.A)
		if err != nil {
			return Val{}, err
		}
		b, err := m.eval(x.B)
		if err != nil {
			return Val{}, err
		}
		return mingle(a, b)
	case SelectExpr:
		a, err := m.eval(x.A)
		if err != nil {
			return Val{}, err
		}
		b, err := m.eval(x.B)
		if err != nil {
			return Val{}, err
		}
		return selectBits(a, b), nil
	case UnaryExpr:
		v, err := m.eval(x.X)
		if err != nil {
			return Val{}, err
		}
		return unary(x.Op, v), nil
	default:
		return Val{}, fmt.Errorf("unhandled expression %T", e)
	}
}

func (m *Interp) evalVarRef(ref VarRef) (Val, error) {
	if ref.Kind.isArray() {
		subs, err := m.evalSubs(ref.Subs)
		if err != nil {
			return Val{}, err
		}
		return m.vars.GetArray(ref, subs)
	}
	return m.vars.GetScalar(ref)
}

func (m *Interp) evalSubs(exprs []Expr) ([]int, error) {
	vals := make([]Val, len(exprs))
	for i, e := range exprs {
		v, err := m.eval(e)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return subExprsToInts(vals)
}

func (m *Interp) execCalc(s *Stmt, body CalcBody) {
	v, err := m.eval(body.Expr)
	m.haltIf(err)
	v = m.maybeIntroduceBug(v)
	if body.LV.Var.Kind.isArray() {
		subs, err := m.evalSubs(body.LV.Var.Subs)
		m.haltIf(err)
		m.haltIf(m.vars.SetArray(body.LV.Var, subs, v))
		return
	}
	m.haltIf(m.vars.SetScalar(body.LV.Var, v))
}

// maybeIntroduceBug implements the E774 simulated compiler bug: with
// probability 1/bugChance, flip one random bit of the value before it is
// stored. This models spec.md's documented misfeature rather than any
// correctness requirement, and can be disabled with WithBugChance(0).
func (m *Interp) maybeIntroduceBug(v Val) Val {
	if m.bugChance <= 0 {
		return v
	}
	if m.rng.Intn(m.bugChance) != 0 {
		return v
	}
	width := uint(16)
	if v.wide {
		width = 32
	}
	bit := uint(m.rng.Intn(int(width)))
	return Val{wide: v.wide, n: v.n ^ (1 << bit)}
}

func (m *Interp) execCalcDim(body CalcDimBody) {
	dims := make([]Val, len(body.Dims))
	for i, e := range body.Dims {
		v, err := m.eval(e)
		m.haltIf(err)
		dims[i] = v
	}
	ints, err := subExprsToInts(dims)
	m.haltIf(err)
	m.haltIf(m.vars.Dim(body.Var, ints))
}

func (m *Interp) execNext(body NextBody) int {
	target, ok := m.prog.Labels[body.Target]
	if !ok {
		m.haltIf(runErr(E139))
	}
	m.haltIf(m.next.push(m.ip + 1))
	return target
}

func (m *Interp) execForget(body ForgetBody) {
	v, err := m.eval(body.N)
	m.haltIf(err)
	n, err := v.U16()
	m.haltIf(err)
	_, err = m.next.pop(int(n))
	m.haltIf(err)
}

func (m *Interp) execResume(body ResumeBody) int {
	v, err := m.eval(body.N)
	m.haltIf(err)
	n, err := v.U16()
	m.haltIf(err)
	idx, err := m.next.pop(int(n))
	m.haltIf(err)
	return idx
}

// setAbstain applies an ABSTAIN/REINSTATE target to every matching
// statement's Disabled bit: literal labels toggle one statement, gerund
// classes toggle every statement of that class, and a computed target is
// evaluated once to a single label.
func (m *Interp) setAbstain(t Target, disabled bool) {
	if t.isComputed() {
		v, err := m.eval(t.Computed)
		m.haltIf(err)
		n, err := v.U16()
		m.haltIf(err)
		idx, ok := m.prog.Labels[Label(n)]
		if !ok {
			m.haltIf(runErr(E139))
		}
		m.prog.Stmts[idx].Disabled = disabled
		return
	}
	for _, tgt := range t.Set {
		if tgt.IsClass {
			for _, s := range m.prog.Stmts {
				if s.Class() == tgt.Class {
					s.Disabled = disabled
				}
			}
			continue
		}
		idx, ok := m.prog.Labels[tgt.Label]
		if !ok {
			m.haltIf(runErr(E139))
		}
		m.prog.Stmts[idx].Disabled = disabled
	}
}

// resolveIncoming checks whether any enabled COME FROM statement (literal,
// computed, or gerund-class) fires against the statement about to execute
// at nextIdx, redirecting control to just after that COME FROM. More than
// one firing at once is E555 (§4.4).
func (m *Interp) resolveIncoming(nextIdx int) (int, error) {
	if nextIdx >= len(m.prog.Stmts) {
		return nextIdx, nil
	}
	target := m.prog.Stmts[nextIdx]

	var firing []int
	if target.Label != 0 {
		if site, ok := m.prog.ComeFrom[target.Label]; ok && !m.prog.Stmts[site].Disabled {
			firing = append(firing, site)
		}
	}
	for _, idx := range m.prog.ComputedComeFroms {
		s := m.prog.Stmts[idx]
		if s.Disabled {
			continue
		}
		cf := s.Body.(ComeFromBody)
		if cf.Target.isComputed() {
			v, err := m.eval(cf.Target.Computed)
			if err != nil {
				return 0, err
			}
			n, err := v.U16()
			if err != nil {
				return 0, err
			}
			if target.Label != 0 && Label(n) == target.Label {
				firing = append(firing, idx)
			}
			continue
		}
		for _, tgt := range cf.Target.Set {
			if tgt.IsClass && tgt.Class == target.Class() {
				firing = append(firing, idx)
			}
		}
	}

	if len(firing) > 1 {
		return 0, runErr(E555)
	}
	if len(firing) == 1 {
		return firing[0] + 1, nil
	}
	return nextIdx, nil
}
