// Package session holds the identity of the running client: the session
// token, the signed-in user and whether startup hydration has finished.
//
// A Store is the only writer of the user profile. It also watches every
// backend response through the HTTP adapter and drops the session as soon as
// the backend answers 401, wherever that request came from.
package session
