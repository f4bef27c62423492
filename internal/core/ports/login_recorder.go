package ports

import "time"

// LoginEvent marks a successful authentication for a user.
type LoginEvent struct {
	Username string
	At       time.Time
}

// LoginRecorder accepts login events for asynchronous processing so the
// login request never waits on the bookkeeping write.
type LoginRecorder interface {
	Enqueue(event LoginEvent)
}
