package session

import "github.com/dmitrijs2005/gophnotes/internal/client/models"

// Phase is the initialization stage of a Store.
type Phase int

const (
	// PhaseInit means Start has not run yet.
	PhaseInit Phase = iota
	// PhaseHydrating means a persisted token was found and the profile
	// request is in flight.
	PhaseHydrating
	// PhaseReady means initialization finished, authenticated or not.
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseHydrating:
		return "hydrating"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of a Store.
type State struct {
	Phase Phase
	Token string
	User  *models.User
}

// Loading reports whether initialization is still running.
func (s State) Loading() bool {
	return s.Phase != PhaseReady
}

// Authenticated reports whether a user is signed in.
func (s State) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// UserName is the display name of the signed-in user, or "".
func (s State) UserName() string {
	if s.User == nil {
		return ""
	}
	return s.User.Name
}
