// Package common contains constants shared by the client packages.
package common

const (
	// AuthTokenKey and AuthUserKey are the credential store keys of the
	// session token and the cached user profile.
	AuthTokenKey = "authToken"
	AuthUserKey  = "authUser"

	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
)

// CredentialKeys lists the keys that make up the stored session.
var CredentialKeys = []string{AuthTokenKey, AuthUserKey}
