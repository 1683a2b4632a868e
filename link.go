package main

// Link resolves statement labels and wires up literal COME FROM targets,
// the two-pass process described in §4.2. It returns a fatal *Error (exit
// code 2) for any compile-time rejection: a duplicate label, a literal
// COME FROM naming a label used by more than one such statement (E182), or
// a literal ABSTAIN/COME FROM naming a label that does not exist (E139).
func Link(prog *Program) error {
	for i, s := range prog.Stmts {
		if s.Label == 0 {
			continue
		}
		if _, dup := prog.Labels[s.Label]; dup {
			return fatalErr(E127)
		}
		prog.Labels[s.Label] = i
	}

	for i, s := range prog.Stmts {
		cf, ok := s.Body.(ComeFromBody)
		if !ok {
			continue
		}
		if cf.Target.isComputed() {
			prog.ComputedComeFroms = append(prog.ComputedComeFroms, i)
			continue
		}
		for _, tgt := range cf.Target.Set {
			if tgt.IsClass {
				// a gerund-class COME FROM fires from every statement of
				// that class; represented as a computed-style dynamic
				// lookup rather than a single static label, since the
				// class's membership can change at runtime via ABSTAIN.
				prog.ComputedComeFroms = append(prog.ComputedComeFroms, i)
				continue
			}
			targetIdx, found := prog.Labels[tgt.Label]
			if !found {
				return fatalErr(E139)
			}
			if _, taken := prog.ComeFrom[tgt.Label]; taken {
				return fatalErr(E182)
			}
			prog.ComeFrom[tgt.Label] = i
			prog.Stmts[targetIdx].ComeFromSite = i
		}
	}

	for _, s := range prog.Stmts {
		if ab, ok := s.Body.(AbstainBody); ok && !ab.Target.isComputed() {
			for _, tgt := range ab.Target.Set {
				if !tgt.IsClass {
					if _, found := prog.Labels[tgt.Label]; !found {
						return fatalErr(E139)
					}
				}
			}
		}
		if re, ok := s.Body.(ReinstateBody); ok && !re.Target.isComputed() {
			for _, tgt := range re.Target.Set {
				if !tgt.IsClass {
					if _, found := prog.Labels[tgt.Label]; !found {
						return fatalErr(E139)
					}
				}
			}
		}
	}

	for i, s := range prog.Stmts {
		if _, ok := s.Body.(TryAgainBody); ok && i != len(prog.Stmts)-1 {
			return fatalErr(E993)
		}
	}

	return nil
}
