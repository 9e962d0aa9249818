package domain

// Issue is one newsletter issue to broadcast. It is never persisted; it
// exists only for the duration of a single publish request.
type Issue struct {
	Title string
	HTML  string
	Text  string
}
