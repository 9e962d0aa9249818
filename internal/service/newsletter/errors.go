package newsletter

import "errors"

// Sentinel errors for the newsletter service layer.
var (
	// ErrDelivery means the transport rejected a send mid-broadcast. The
	// remaining fan-out was aborted.
	ErrDelivery = errors.New("issue delivery failed")
)
