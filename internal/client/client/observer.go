package client

import (
	"context"
	"net/http"
)

// ResponseObserver sees every response the adapter receives, before the
// caller does. Observers must not read or close the body.
type ResponseObserver interface {
	ObserveResponse(ctx context.Context, resp *http.Response)
}

// ResponseObserverFunc adapts a function to ResponseObserver.
type ResponseObserverFunc func(ctx context.Context, resp *http.Response)

func (f ResponseObserverFunc) ObserveResponse(ctx context.Context, resp *http.Response) {
	f(ctx, resp)
}

// TokenSource supplies the bearer token for outgoing requests; "" means
// send the request unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
