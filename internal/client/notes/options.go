package notes

import (
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const (
	DefaultRefreshInterval = 30 * time.Second
	DefaultResyncDelay     = 500 * time.Millisecond
	DefaultMessageTTL      = 3 * time.Second
)

// Option configures a Controller.
type Option func(*Controller)

// WithRefreshInterval sets the period of the background refresh. A
// non-positive value disables it.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *Controller) { c.refreshInterval = d }
}

// WithResyncDelay sets how long after a successful change the list is
// fetched again.
func WithResyncDelay(d time.Duration) Option {
	return func(c *Controller) { c.resyncDelay = d }
}

// WithMessageTTL sets how long a banner stays up.
func WithMessageTTL(d time.Duration) Option {
	return func(c *Controller) { c.messageTTL = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}
