package main

import (
	"fmt"
	"io"
	"sort"
)

// interpDumper renders a snapshot of an Interp's control state the way the
// host's own VM dumper renders memory and dictionary state: a short report
// meant for a human debugging a stuck or misbehaving program, not a machine
// format.
type interpDumper struct {
	m   *Interp
	out io.Writer
}

func (d interpDumper) dump() {
	fmt.Fprintf(d.out, "# Interp Dump\n")
	fmt.Fprintf(d.out, "  ip: %d\n", d.m.ip)
	if d.m.ip < len(d.m.prog.Stmts) {
		fmt.Fprintf(d.out, "  at: %v\n", d.m.prog.Stmts[d.m.ip])
	}

	d.dumpNextStack()
	d.dumpAbstain()
	d.dumpVars()
}

func (d interpDumper) dumpNextStack() {
	fmt.Fprintf(d.out, "  next-stack (%d/%d):\n", d.m.next.depth(), maxNextDepth)
	for i, ret := range d.m.next.entries {
		fmt.Fprintf(d.out, "    [%d] -> #%d\n", i, ret)
	}
}

// dumpAbstain lists every statement currently disabled by ABSTAIN, in
// source order, naming its label when it has one.
func (d interpDumper) dumpAbstain() {
	fmt.Fprintf(d.out, "  abstained:\n")
	for i, s := range d.m.prog.Stmts {
		if !s.Disabled {
			continue
		}
		if s.Label != 0 {
			fmt.Fprintf(d.out, "    #%d (%d)\n", i, s.Label)
		} else {
			fmt.Fprintf(d.out, "    #%d\n", i)
		}
	}
}

// dumpVars lists every ignored variable and every variable with a
// non-empty stash, sorted for reproducible output.
func (d interpDumper) dumpVars() {
	fmt.Fprintf(d.out, "  ignored:\n")
	for _, k := range sortedVarKeys(d.m.vars.ignored) {
		if d.m.vars.ignored[k] {
			fmt.Fprintf(d.out, "    %s\n", varKeyString(k))
		}
	}

	fmt.Fprintf(d.out, "  stashed:\n")
	for _, k := range sortedStashKeys(d.m.vars.stashes) {
		fmt.Fprintf(d.out, "    %s: %d deep\n", varKeyString(k), len(d.m.vars.stashes[k]))
	}
}

func varKeyString(k varKey) string {
	return fmt.Sprintf("%c%d", k.Kind.sigil(), k.Num)
}

func varKeyLess(a, b varKey) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Num < b.Num
}

func sortedVarKeys(m map[varKey]bool) []varKey {
	keys := make([]varKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return varKeyLess(keys[i], keys[j]) })
	return keys
}

func sortedStashKeys(m map[varKey][]stashEntry) []varKey {
	keys := make([]varKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return varKeyLess(keys[i], keys[j]) })
	return keys
}
