// Package common contains shared constants and sentinel errors used across
// GophNotes components.
package common

const (
	// TokenMetadataKey is the local metadata key the session token is
	// persisted under.
	TokenMetadataKey = "session_token"

	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "
)
