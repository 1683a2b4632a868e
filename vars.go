package main

import "github.com/waxwane/intercal72/internal/vartable"

// arrayCell holds one dimensioned array variable's backing storage.
// Dims holds one entry per dimension; Data is the flattened element list
// in row-major order. Tail and hybrid arrays share the same uint32 element
// slice.
type arrayCell struct {
	dims []int
	data []uint32 // tail elements hold their 16-bit value in the low bits
}

func (c *arrayCell) size() int {
	n := 1
	for _, d := range c.dims {
		n *= d
	}
	return n
}

func (c *arrayCell) flatIndex(subs []int) (int, error) {
	if len(subs) != len(c.dims) {
		return 0, runErr(E241)
	}
	idx := 0
	for i, s := range subs {
		if s < 1 || s > c.dims[i] {
			return 0, runErr(E241)
		}
		idx = idx*c.dims[i] + (s - 1)
	}
	return idx, nil
}

// stashEntry is one STASH of a variable's current value or array contents.
type stashEntry struct {
	scalar uint32
	array  *arrayCell // copy of array contents at STASH time, nil for scalars
}

// Vars holds all four INTERCAL variable classes for one running program,
// addressed sparsely by variable number so that large, gappy numberings
// (.1 and .65535 in the same program) don't cost a dense allocation.
type Vars struct {
	spots     vartable.Paged[uint16]
	twospots  vartable.Paged[uint32]
	tails     vartable.Paged[*arrayCell]
	hybrids   vartable.Paged[*arrayCell]
	ignored   map[varKey]bool
	stashes   map[varKey][]stashEntry
	cellLimit uint
}

const maxStashDepth = 79

func newVars(cellLimit uint) *Vars {
	v := &Vars{
		ignored: make(map[varKey]bool),
		stashes: make(map[varKey][]stashEntry),
	}
	v.spots.Limit = cellLimit
	v.twospots.Limit = cellLimit
	v.tails.Limit = cellLimit
	v.hybrids.Limit = cellLimit
	v.cellLimit = cellLimit
	return v
}

func (v *Vars) isIgnored(k varKey) bool { return v.ignored[k] }

func (v *Vars) setIgnored(k varKey, ignored bool) { v.ignored[k] = ignored }

// GetScalar reads a spot or twospot variable's current value.
func (v *Vars) GetScalar(ref VarRef) (Val, error) {
	switch ref.Kind {
	case KindSpot:
		n, err := v.spots.Load(uint(ref.Num))
		if err != nil {
			return Val{}, err
		}
		return V16(n), nil
	case KindTwoSpot:
		n, err := v.twospots.Load(uint(ref.Num))
		if err != nil {
			return Val{}, err
		}
		return V32(n), nil
	default:
		return Val{}, runErr(E129)
	}
}

// SetScalar writes a spot or twospot variable's value, respecting its
// ignored flag (a write to an ignored variable is a silent no-op, per the
// IGNORE statement's documented effect).
func (v *Vars) SetScalar(ref VarRef, val Val) error {
	if v.isIgnored(ref.key()) {
		return nil
	}
	switch ref.Kind {
	case KindSpot:
		n, err := val.U16()
		if err != nil {
			return err
		}
		return v.spots.Store(uint(ref.Num), n)
	case KindTwoSpot:
		return v.twospots.Store(uint(ref.Num), val.U32())
	default:
		return runErr(E129)
	}
}

func (v *Vars) cellTable(kind VarKind) *vartable.Paged[*arrayCell] {
	if kind == KindHybrid {
		return &v.hybrids
	}
	return &v.tails
}

// Dim allocates (or reallocates) the array backing for a tail or hybrid
// variable with the given dimensions.
func (v *Vars) Dim(ref VarRef, dims []int) error {
	n := 1
	for _, d := range dims {
		if d <= 0 {
			return runErr(E241)
		}
		n *= d
	}
	cell := &arrayCell{dims: dims, data: make([]uint32, n)}
	return v.cellTable(ref.Kind).Store(uint(ref.Num), cell)
}

func (v *Vars) cell(ref VarRef) (*arrayCell, error) {
	cell, err := v.cellTable(ref.Kind).Load(uint(ref.Num))
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return nil, runErr(E241)
	}
	return cell, nil
}

// GetArray reads one element of a dimensioned tail or hybrid variable.
func (v *Vars) GetArray(ref VarRef, subs []int) (Val, error) {
	cell, err := v.cell(ref)
	if err != nil {
		return Val{}, err
	}
	i, err := cell.flatIndex(subs)
	if err != nil {
		return Val{}, err
	}
	if ref.Kind == KindHybrid {
		return V32(cell.data[i]), nil
	}
	return V16(uint16(cell.data[i])), nil
}

// SetArray writes one element of a dimensioned tail or hybrid variable.
func (v *Vars) SetArray(ref VarRef, subs []int, val Val) error {
	if v.isIgnored(ref.key()) {
		return nil
	}
	cell, err := v.cell(ref)
	if err != nil {
		return err
	}
	i, err := cell.flatIndex(subs)
	if err != nil {
		return err
	}
	if ref.Kind == KindHybrid {
		cell.data[i] = val.U32()
	} else {
		n, err := val.U16()
		if err != nil {
			return err
		}
		cell.data[i] = uint32(n)
	}
	return nil
}

// Stash pushes a copy of the variable's current value (scalar) or array
// contents onto its private stash stack. Exceeding the depth limit is a
// program-defined resource exhaustion, reported as E632 by convention with
// RESUME/FORGET's own depth error since both draw from the "stack too deep"
// family.
func (v *Vars) Stash(ref VarRef) error {
	k := ref.key()
	if len(v.stashes[k]) >= maxStashDepth {
		return runErr(E632)
	}
	var entry stashEntry
	if ref.Kind.isArray() {
		cell, err := v.cellTable(ref.Kind).Load(uint(ref.Num))
		if err != nil {
			return err
		}
		if cell != nil {
			copied := &arrayCell{dims: append([]int(nil), cell.dims...), data: append([]uint32(nil), cell.data...)}
			entry.array = copied
		}
	} else {
		val, err := v.GetScalar(ref)
		if err != nil {
			return err
		}
		entry.scalar = val.U32()
	}
	v.stashes[k] = append(v.stashes[k], entry)
	return nil
}

// Retrieve pops the variable's most recent stash and restores it,
// returning E436 if nothing was ever stashed.
func (v *Vars) Retrieve(ref VarRef) error {
	k := ref.key()
	stack := v.stashes[k]
	if len(stack) == 0 {
		return runErr(E436)
	}
	entry := stack[len(stack)-1]
	v.stashes[k] = stack[:len(stack)-1]

	if ref.Kind.isArray() {
		return v.cellTable(ref.Kind).Store(uint(ref.Num), entry.array)
	}
	if ref.Kind == KindTwoSpot {
		return v.SetScalar(ref, V32(entry.scalar))
	}
	return v.SetScalar(ref, V16(uint16(entry.scalar)))
}

// cellCount reports the sum of the four storage tables' sizes, each being
// one past the last slot of its last allocated page. The -mem-limit check
// does not use it.
func (v *Vars) cellCount() uint {
	return v.spots.Size() + v.twospots.Size() + v.tails.Size() + v.hybrids.Size()
}
