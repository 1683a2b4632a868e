package main

import (
	"fmt"
	"io"
	"strings"
)

// thirdSource is the in-memory Go source under construction by a
// Translator, built the way the host's own code generator builds emitted
// source: as a strings.Builder, exposed to callers through io.WriterTo so
// it can be streamed straight to a file or to goimports.
type thirdSource struct {
	strings.Builder
}

func (s *thirdSource) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

var _ io.WriterTo = (*thirdSource)(nil)

// Translator emits a standalone Go program that reproduces prog's
// observable behavior without re-lexing or re-parsing its source at
// run time: the linked AST is baked in as Go literals (a discriminated
// statement table, per §4.6), and a generated main rebuilds the label and
// COME FROM maps from that table and runs it with NewInterp, the same
// dispatch loop Interp.Run uses. The emitted file names this package's
// types and functions (Stmt, NewInterp, reportAndExit, ...) without a
// package qualifier.
type Translator struct {
	prog    *Program
	pkgName string
}

// NewTranslator prepares to translate prog into package pkgName.
func NewTranslator(prog *Program, pkgName string) *Translator {
	if pkgName == "" {
		pkgName = "main"
	}
	return &Translator{prog: prog, pkgName: pkgName}
}

// runtimeInterfaceDoc is emitted as a comment listing the operations
// statements take effect through. It is not a Go interface declaration,
// and the emitted program does not call through it: the generated main
// calls NewInterp and Run directly. Vars has the first seven methods
// listed; Interp has none of them.
const runtimeInterfaceDoc = `// IntercalRuntime lists the operations statements take effect through.
// Vars provides the first seven; WRITE IN and READ OUT are carried out
// inside Interp:
//
//   GetScalar(VarRef) (Val, error)
//   SetScalar(VarRef, Val) error
//   GetArray(VarRef, []int) (Val, error)
//   SetArray(VarRef, []int, Val) error
//   Dim(VarRef, []int) error
//   Stash(VarRef) error
//   Retrieve(VarRef) error
//   WriteIn(VarRef) error
//   ReadOut(Expr) error
`

// Emit writes a complete Go source file to w: package clause, imports, the
// statement table, and a main function that runs it.
func (t *Translator) Emit(w io.Writer) error {
	var src thirdSource
	t.writeHeader(&src)
	t.writeTable(&src)
	t.writeMain(&src)
	_, err := src.WriteTo(w)
	return err
}

func (t *Translator) writeHeader(src *thirdSource) {
	fmt.Fprintf(src, "package %s\n\n", t.pkgName)
	fmt.Fprintf(src, "import (\n\t\"context\"\n\t\"os\"\n)\n\n")
	src.WriteString(runtimeInterfaceDoc)
	src.WriteString("\n")
}

func (t *Translator) writeTable(src *thirdSource) {
	src.WriteString("var translatedStmts = []*Stmt{\n")
	for _, s := range t.prog.Stmts {
		src.WriteString("\t")
		t.emitStmt(src, s)
		src.WriteString(",\n")
	}
	src.WriteString("}\n\n")
}

func (t *Translator) emitStmt(src *thirdSource, s *Stmt) {
	fmt.Fprintf(src, "{Label: %d, Polite: %v, Negated: %v, Probability: %d, Line: %d, InitDisabled: %v, Disabled: %v, ComeFromSite: %d, Body: ",
		s.Label, s.Polite, s.Negated, s.Probability, s.Line, s.InitDisabled, s.Disabled, s.ComeFromSite)
	t.emitBody(src, s.Body)
	src.WriteString("}")
}

func (t *Translator) emitBody(src *thirdSource, body StmtBody) {
	switch b := body.(type) {
	case CalcBody:
		fmt.Fprintf(src, "CalcBody{LV: %s, Expr: %s}", t.lvalue(b.LV), t.expr(b.Expr))
	case CalcDimBody:
		fmt.Fprintf(src, "CalcDimBody{Var: %s, Dims: %s}", t.varRef(b.Var), t.exprList(b.Dims))
	case NextBody:
		fmt.Fprintf(src, "NextBody{Target: %d}", b.Target)
	case ForgetBody:
		fmt.Fprintf(src, "ForgetBody{N: %s}", t.expr(b.N))
	case ResumeBody:
		fmt.Fprintf(src, "ResumeBody{N: %s}", t.expr(b.N))
	case StashBody:
		fmt.Fprintf(src, "StashBody{Vars: %s}", t.varRefList(b.Vars))
	case RetrieveBody:
		fmt.Fprintf(src, "RetrieveBody{Vars: %s}", t.varRefList(b.Vars))
	case IgnoreBody:
		fmt.Fprintf(src, "IgnoreBody{Vars: %s}", t.varRefList(b.Vars))
	case RememberBody:
		fmt.Fprintf(src, "RememberBody{Vars: %s}", t.varRefList(b.Vars))
	case AbstainBody:
		fmt.Fprintf(src, "AbstainBody{Target: %s}", t.target(b.Target))
	case ReinstateBody:
		fmt.Fprintf(src, "ReinstateBody{Target: %s}", t.target(b.Target))
	case ComeFromBody:
		fmt.Fprintf(src, "ComeFromBody{Target: %s}", t.target(b.Target))
	case WriteInBody:
		fmt.Fprintf(src, "WriteInBody{LVs: %s}", t.lvalueList(b.LVs))
	case ReadOutBody:
		fmt.Fprintf(src, "ReadOutBody{Exprs: %s}", t.exprList(b.Exprs))
	case GiveUpBody:
		src.WriteString("GiveUpBody{}")
	case TryAgainBody:
		src.WriteString("TryAgainBody{}")
	case BadStmtBody:
		fmt.Fprintf(src, "BadStmtBody{Raw: %q}", b.Raw)
	}
}

func (t *Translator) varRef(v VarRef) string {
	subs := "nil" // keep a whole-array reference distinct from an empty subscript list
	if v.Subs != nil {
		subs = t.exprList(v.Subs)
	}
	return fmt.Sprintf("VarRef{Kind: %d, Num: %d, Subs: %s}", v.Kind, v.Num, subs)
}

func (t *Translator) varRefList(vs []VarRef) string {
	var parts []string
	for _, v := range vs {
		parts = append(parts, t.varRef(v))
	}
	return "[]VarRef{" + strings.Join(parts, ", ") + "}"
}

func (t *Translator) lvalue(lv LValue) string {
	return fmt.Sprintf("LValue{Var: %s}", t.varRef(lv.Var))
}

func (t *Translator) lvalueList(lvs []LValue) string {
	var parts []string
	for _, lv := range lvs {
		parts = append(parts, t.lvalue(lv))
	}
	return "[]LValue{" + strings.Join(parts, ", ") + "}"
}

func (t *Translator) expr(e Expr) string {
	switch x := e.(type) {
	case NumExpr:
		if x.Val.Wide() {
			return fmt.Sprintf("NumExpr{Val: V32(%d)}", x.Val.U32())
		}
		return fmt.Sprintf("NumExpr{Val: V16(%d)}", x.Val.U32())
	case VarExpr:
		return fmt.Sprintf("VarExpr{LV: %s}", t.lvalue(x.LV))
	case MingleExpr:
		return fmt.Sprintf("MingleExpr{A: %s, B: %s}", t.expr(x.A), t.expr(x.B))
	case SelectExpr:
		return fmt.Sprintf("SelectExpr{A: %s, B: %s}", t.expr(x.A), t.expr(x.B))
	case UnaryExpr:
		return fmt.Sprintf("UnaryExpr{Op: %d, X: %s}", x.Op, t.expr(x.X))
	default:
		return "NumExpr{}"
	}
}

func (t *Translator) exprList(exprs []Expr) string {
	var parts []string
	for _, e := range exprs {
		parts = append(parts, t.expr(e))
	}
	return "[]Expr{" + strings.Join(parts, ", ") + "}"
}

func (t *Translator) target(tgt Target) string {
	if tgt.isComputed() {
		return fmt.Sprintf("Target{Computed: %s}", t.expr(tgt.Computed))
	}
	var parts []string
	for _, at := range tgt.Set {
		if at.IsClass {
			parts = append(parts, fmt.Sprintf("{IsClass: true, Class: %d}", at.Class))
		} else {
			parts = append(parts, fmt.Sprintf("{Label: %d}", at.Label))
		}
	}
	return "Target{Set: []AbstainTarget{" + strings.Join(parts, ", ") + "}}"
}

func (t *Translator) writeMain(src *thirdSource) {
	src.WriteString(`func main() {
	prog := &Program{Stmts: translatedStmts, Labels: map[Label]int{}, ComeFrom: map[Label]int{}, BugLine: -1}
	for i, s := range prog.Stmts {
		if s.Label != 0 {
			prog.Labels[s.Label] = i
		}
		if s.ComeFromSite >= 0 {
			prog.ComeFrom[s.Label] = s.ComeFromSite
		}
		if cf, ok := s.Body.(ComeFromBody); ok {
			if cf.Target.isComputed() {
				prog.ComputedComeFroms = append(prog.ComputedComeFroms, i)
			} else {
				for _, tgt := range cf.Target.Set {
					if tgt.IsClass {
						prog.ComputedComeFroms = append(prog.ComputedComeFroms, i)
					}
				}
			}
		}
	}
	m := NewInterp(prog, WithOutput(os.Stdout), WithInput(os.Stdin))
	if err := m.Run(context.Background()); err != nil {
		reportAndExit(err)
	}
}
`)
}
