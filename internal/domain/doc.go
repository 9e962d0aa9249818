// Package domain holds the core types of the newsletter service: subscribers,
// confirmation tokens, publisher credentials, and the transient newsletter
// issue. Types here carry no persistence or transport concerns; validation
// lives next to the type it protects so no other layer can construct an
// invalid value without going through a Parse function.
package domain
