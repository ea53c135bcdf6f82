package dsl

import "fmt"

// UnparsableOutputsError reports a TransitionExpr whose output expression was
// not a bracketed list of state names.
type UnparsableOutputsError struct {
	State      string
	Transition string
	Expr       string
}

func (e *UnparsableOutputsError) Error() string {
	return fmt.Sprintf("transition %s on state %s declares outputs %q, which is not a list of state names like [A, B]",
		e.Transition, e.State, e.Expr)
}
