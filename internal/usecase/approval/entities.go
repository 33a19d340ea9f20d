package approval

import "time"

// Clock returns the current time.
type Clock func() time.Time

type ActionInput struct {
	ApplicationID string
	ActorID       int
	Comments      string
}

type RejectInput struct {
	ApplicationID string
	ActorID       int
	Reason        string
}
