package session

// State is the session as seen by one request. The zero value is anonymous.
type State struct {
	Token  string
	UserID int64
}

// Authenticated reports whether the request belongs to a logged in user.
func (s State) Authenticated() bool {
	return s.UserID != 0
}

// Decision is the outcome of Gate.
type Decision int

const (
	Allow Decision = iota
	Redirect
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Gate decides whether a protected route may be served for state.
func Gate(state State) Decision {
	if state.Authenticated() {
		return Allow
	}
	return Redirect
}
