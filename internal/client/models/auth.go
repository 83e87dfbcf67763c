// Package models holds the transient value types that flow from the CLI
// screens into API calls. Nothing here is retained by the session
// controller after a call completes.
package models

// AuthMethod tags how credentials were obtained.
type AuthMethod string

const (
	// AuthMethodLocal is a username/password pair entered directly.
	AuthMethodLocal AuthMethod = "local"
	// AuthMethodGoogle is federated sign-in: the identity provider yields
	// an email/name and no password is sent (the API receives null).
	AuthMethodGoogle AuthMethod = "google"
)

// Credentials is the input to register and login. Password is nil for
// federated sign-in.
type Credentials struct {
	UserName string
	Email    string
	Password *string
	Method   AuthMethod
}
