package main

// nextStack is the bounded call-like stack NEXT pushes onto and RESUME or
// FORGET pop from, grounded in the control machine's next_ip bookkeeping
// (§4.4). INTERCAL-72 bounds it at 79 entries; a 80th NEXT is E123 rather
// than a hard failure, since overflowing is itself a sanctioned (if
// inadvisable) occurrence.
type nextStack struct {
	entries []int
}

const maxNextDepth = 79

// push records the statement index to return to. Returns E123 if doing so
// would exceed the depth limit; the caller may choose to treat that as a
// non-fatal warning, but it still aborts the NEXT since there is nowhere
// left to push.
func (s *nextStack) push(returnIndex int) error {
	if len(s.entries) >= maxNextDepth {
		return runErr(E123)
	}
	s.entries = append(s.entries, returnIndex)
	return nil
}

// pop removes and returns the top n entries' worth of depth, per
// RESUME/FORGET n: n must be at least 1 (E621 on zero) and the stack must
// be at least n deep (E632 otherwise). RESUME additionally wants the
// return index to jump to; FORGET discards without using it.
func (s *nextStack) pop(n int) (returnIndex int, err error) {
	if n <= 0 {
		return 0, runErr(E621)
	}
	if len(s.entries) < n {
		return 0, runErr(E632)
	}
	top := len(s.entries) - 1
	returnIndex = s.entries[top-(n-1)]
	s.entries = s.entries[:top-(n-1)]
	return returnIndex, nil
}

// depth reports the current stack depth, for dump output.
func (s *nextStack) depth() int { return len(s.entries) }
