package shared

// TransitionTable declares the legal moves of a status field.
// States missing from the table, or mapped to an empty slice, are terminal.
type TransitionTable[S ~string] struct {
	aggregate string
	edges     map[S][]S
}

// NewTransitionTable builds a table for the named aggregate
func NewTransitionTable[S ~string](aggregate string, edges map[S][]S) TransitionTable[S] {
	return TransitionTable[S]{aggregate: aggregate, edges: edges}
}

// Allows reports whether from -> to is a declared transition
func (t TransitionTable[S]) Allows(from, to S) bool {
	for _, next := range t.edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Next returns the states reachable in one step from the given state
func (t TransitionTable[S]) Next(from S) []S {
	next := t.edges[from]
	out := make([]S, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether no transition leaves the given state. The table
// only knows edges, so an undeclared state also reports true; callers guard
// with their own validity check.
func (t TransitionTable[S]) IsTerminal(state S) bool {
	return len(t.edges[state]) == 0
}

// Check returns a *TransitionError when from -> to is not declared
func (t TransitionTable[S]) Check(from, to S) error {
	if t.Allows(from, to) {
		return nil
	}
	return &TransitionError{
		Aggregate: t.aggregate,
		From:      string(from),
		To:        string(to),
	}
}
