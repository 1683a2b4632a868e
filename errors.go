package main

import "fmt"

// ErrCode is one of the numbered ICL error codes (§7).
type ErrCode int

const (
	E000 ErrCode = 0   // unexplainable error / BadStmt executed
	E079 ErrCode = 79  // programmer is too polite (politeness ratio above 1/3)
	E099 ErrCode = 99  // programmer is not polite enough (politeness ratio below 1/5)
	E123 ErrCode = 123 // next-stack would exceed its 79-entry depth limit
	E127 ErrCode = 127 // invalid label value
	E129 ErrCode = 129 // program has no statements
	E139 ErrCode = 139 // ABSTAIN/REINSTATE/COME FROM/NEXT target label not found
	E182 ErrCode = 182 // multiple COME FROM statements naming the same label
	E241 ErrCode = 241 // it came from nowhere (subscript mismatch / out of range)
	E275 ErrCode = 275 // value too large for a 16-bit context
	E436 ErrCode = 436 // so does he (RETRIEVE with nothing stashed)
	E533 ErrCode = 533 // MINGLE operand too large for its width
	E555 ErrCode = 555 // two COME FROM statements fire on the same step
	E621 ErrCode = 621 // RESUME/FORGET with argument of zero
	E632 ErrCode = 632 // next-stack not deep enough for RESUME/FORGET
	E633 ErrCode = 633 // program fell off the end
	E774 ErrCode = 774 // random compiler bug (simulated)
	E778 ErrCode = 778 // timeout or interrupt
	E993 ErrCode = 993 // TRY AGAIN is not the program's last statement
	E997 ErrCode = 997 // unsupported operation on an ignored variable
)

var errMessages = map[ErrCode]string{
	E000: "an unexplainable error has occurred",
	E079: "programmer is now extremely polite",
	E099: "programmer is not politic enough",
	E123: "next-stack is not deep enough to next",
	E127: "invalid label",
	E129: "program has no statements, or a label is out of range",
	E139: "an ABSTAIN or COME FROM statement referenced a label that does not exist",
	E182: "this label has already been used for a COME FROM statement",
	E241: "it came from nowhere",
	E275: "definition of retransaction error",
	E436: "so does he",
	E533: "program has attempted to mingle two numbers, but the result is too large",
	E555: "too many COME FROM statements have fired at once",
	E621: "this tagalong error has not been implemented yet",
	E632: "next-stack is not deep enough to resume or forget",
	E633: "program execution fell off the end",
	E774: "random compiler bug",
	E778: "execution was interrupted",
	E993: "TRY AGAIN must be the last statement in the program",
	E997: "that variable is being ignored",
}

// Error is a runtime or compile-time INTERCAL error, carrying the numbered
// code plus enough source context to render the caret-pointed diagnostic
// line that spec.md §7 requires.
type Error struct {
	Code       ErrCode
	Line       int
	Source     string // the offending source line, for caret display
	OnWayTo    int    // line of the statement that would have executed next
	ExtraLabel Label  // used by E182 to name the colliding label

	// Fatal distinguishes a compile-time rejection (exit 2) from a runtime
	// error (exit 1). Parse- and link-time checks (E079, E099, E127, E129,
	// E139 for static targets, E182, E993) set this true; everything
	// discovered only while running the program, including the next-stack
	// overflow (E123), is false.
	Fatal bool

	// Wrapped, if set, is the underlying cause (e.g. an I/O error).
	Wrapped error
}

func (e *Error) Error() string {
	msg, ok := errMessages[e.Code]
	if !ok {
		msg = "unknown error"
	}
	return fmt.Sprintf("ICL%03dI %s", e.Code, msg)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Report renders the multi-line diagnostic spec.md §7 describes: the
// ICLnnnI line, the offending source line, a caret under the relevant
// column when known, and an "ON THE WAY TO LINE n" note
// when the program would otherwise have continued.
func (e *Error) Report() string {
	s := e.Error()
	if e.Line > 0 {
		s += fmt.Sprintf("\n\tON LINE %d", e.Line)
	}
	if e.Source != "" {
		s += fmt.Sprintf("\n%s\n%s^", e.Source, "")
	}
	if e.OnWayTo > 0 {
		s += fmt.Sprintf("\n\tON THE WAY TO LINE %d", e.OnWayTo)
	}
	return s
}

func fatalErr(code ErrCode) *Error { return &Error{Code: code, Fatal: true} }
func runErr(code ErrCode) *Error   { return &Error{Code: code} }
