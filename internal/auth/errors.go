package auth

import "errors"

// Sentinel errors for the authentication layer. Handlers translate both
// ErrMalformed and ErrInvalidCredentials into 401 responses carrying the
// WWW-Authenticate challenge; anything else is a 500.
var (
	// ErrMalformed means the Authorization header could not be parsed as
	// Basic credentials.
	ErrMalformed = errors.New("malformed Basic authorization header")

	// ErrInvalidCredentials means the username is unknown or the password
	// does not match. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
