// Package navigation tracks which view the client is showing and lets
// other components redirect it.
package navigation

import "sync"

type View string

const (
	ViewLogin     View = "login"
	ViewSignup    View = "signup"
	ViewDashboard View = "dashboard"
)

// Navigator is what the session store needs to force a redirect.
type Navigator interface {
	Current() View
	Navigate(v View)
}

// Router is the in-process Navigator. Listeners run synchronously on every
// actual change of view, outside the router lock.
type Router struct {
	mu        sync.Mutex
	current   View
	nextID    int
	listeners map[int]func(from, to View)
}

func NewRouter(initial View) *Router {
	return &Router{current: initial, listeners: make(map[int]func(from, to View))}
}

func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate switches to v. Navigating to the current view is a no-op.
func (r *Router) Navigate(v View) {
	r.mu.Lock()
	from := r.current
	if from == v {
		r.mu.Unlock()
		return
	}
	r.current = v
	listeners := make([]func(from, to View), 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.mu.Unlock()

	for _, l := range listeners {
		l(from, v)
	}
}

// Subscribe registers fn for view changes and returns its cancel function.
func (r *Router) Subscribe(fn func(from, to View)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}
