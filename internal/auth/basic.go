package auth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Credentials is a parsed username/password pair from a Basic auth header.
type Credentials struct {
	Username string
	Password string
}

// ParseBasicAuth extracts credentials from an Authorization header value.
// The scheme prefix is matched case-sensitively ("Basic "), the payload must
// be valid standard base64 decoding to UTF-8, and only the first colon
// separates username from password (the password may itself contain colons).
// Every failure mode maps to ErrMalformed.
func ParseBasicAuth(header string) (Credentials, error) {
	encoded, ok := strings.CutPrefix(header, "Basic ")
	if !ok {
		if header == "" {
			return Credentials{}, fmt.Errorf("%w: missing Authorization header", ErrMalformed)
		}
		return Credentials{}, fmt.Errorf("%w: scheme is not Basic", ErrMalformed)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: invalid base64: %v", ErrMalformed, err)
	}
	if !utf8.Valid(decoded) {
		return Credentials{}, fmt.Errorf("%w: credentials are not valid UTF-8", ErrMalformed)
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return Credentials{}, fmt.Errorf("%w: missing ':' separator", ErrMalformed)
	}

	return Credentials{Username: username, Password: password}, nil
}
