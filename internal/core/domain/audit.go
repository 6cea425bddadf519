package domain

import "time"

// AccountAction identifies the kind of mutation recorded in the audit trail.
type AccountAction string

const (
	ActionRegistered AccountAction = "registered"
	ActionUpdated    AccountAction = "updated"
	ActionDeleted    AccountAction = "deleted"
)

// AccountEvent records a single mutation on a user record. Events are
// written asynchronously and never affect the outcome of the request that
// produced them.
type AccountEvent struct {
	Username  string
	Action    AccountAction
	Actor     string // username of the caller, empty for unauthenticated registration
	Timestamp time.Time
}
