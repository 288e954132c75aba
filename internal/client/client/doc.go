// Package client is the HTTP Client Adapter of the GophNotes CLI and the
// typed backend API built on top of it.
//
// # Overview
//
//  1. HTTPClient wraps a single *http.Client configured with the backend
//     base URL, a global request timeout and default JSON headers. Every
//     request carries the bearer token from a TokenSource (when present)
//     and an X-Request-ID.
//  2. Every response is handed once to each registered ResponseObserver
//     before status handling. The session store registers one to invalidate
//     the session on 401.
//  3. The Client interface (AuthAPI + NotesAPI) exposes the backend
//     endpoints; *HTTPClient implements it.
//
// # Error Handling
//
// Non-2xx responses become *APIError, which matches ErrUnauthorized (401)
// and ErrUnavailable (503) under errors.Is. Requests that never got a
// response wrap ErrConnection, or ErrTimeout when the deadline passed.
package client
