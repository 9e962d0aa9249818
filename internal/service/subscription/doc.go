// Package subscription implements the double-opt-in signup flow.
//
// A signup validates the submitted name and email, stores the subscriber in
// pending_confirmation state together with a fresh confirmation token in one
// transaction, and then emails the subscriber a confirmation link. Following
// that link flips the subscriber to confirmed; only confirmed subscribers
// receive newsletter issues.
//
// The service layer contains pure business logic and depends on the
// Repository interface defined in repository.go. It never imports
// net/http or database/sql directly.
package subscription
