// Package newsletter implements issue broadcasting to confirmed subscribers.
//
// Publishing enumerates every confirmed subscriber, re-validates the stored
// address (rows may predate current validation rules), skips invalid ones
// with a warning, and delivers the issue to the rest. A transport failure
// aborts the broadcast so a misconfigured mailer surfaces immediately
// instead of burning through the whole list.
package newsletter
