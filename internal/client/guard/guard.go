// Package guard decides whether protected views may run for the current
// session.
package guard

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/client/navigation"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
)

// Decision is the outcome of Check.
type Decision int

const (
	// Pending means the session is still initializing; show nothing yet.
	Pending Decision = iota
	// Redirect means there is no session; go to the login view.
	Redirect
	// Allow means the protected view may run.
	Allow
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

var _ SessionSource = (*session.Store)(nil)

func Check(st session.State) Decision {
	switch {
	case st.Loading():
		return Pending
	case !st.Authenticated():
		return Redirect
	default:
		return Allow
	}
}

// SessionSource is the part of session.Store the guard reads.
type SessionSource interface {
	Wait(ctx context.Context) error
	State() session.State
}

// Protect waits for session initialization, then either runs fn or sends
// the user to the login view. The returned Decision is never Pending
// unless ctx ended first, in which case the context error is returned.
func Protect(ctx context.Context, src SessionSource, nav navigation.Navigator, fn func(context.Context) error) (Decision, error) {
	if err := src.Wait(ctx); err != nil {
		return Pending, err
	}

	d := Check(src.State())
	if d == Redirect {
		nav.Navigate(navigation.ViewLogin)
		return d, nil
	}
	return d, fn(ctx)
}
