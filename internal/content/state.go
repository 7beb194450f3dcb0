package content

// State is the publication state of a page.
type State string

const (
	StateDraft     State = "draft"
	StatePublished State = "published"
)

// StateOf maps the stored published flag to a State.
func StateOf(published bool) State {
	if published {
		return StatePublished
	}
	return StateDraft
}

// Published is the flag value persisted for s.
func (s State) Published() bool {
	return s == StatePublished
}

// Toggle returns the other state. There is no terminal state.
func (s State) Toggle() State {
	if s == StatePublished {
		return StateDraft
	}
	return StatePublished
}

func (s State) String() string {
	return string(s)
}
