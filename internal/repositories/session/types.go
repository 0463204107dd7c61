package session

import (
	"time"

	"github.com/attendify/attendify/internal/models"
)

// CreateSessionInput contains the session to store
type CreateSessionInput struct {
	Session *models.Session
}

// CreateSessionOutput contains the stored session
type CreateSessionOutput struct {
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput contains the retrieved session
type GetSessionOutput struct {
	Session *models.Session
}

// GetActiveSessionInput contains parameters for the active-session lookup
type GetActiveSessionInput struct {
	ClassID string
}

// GetActiveSessionOutput contains the active session, nil when the
// class has none
type GetActiveSessionOutput struct {
	Session *models.Session
}

// AddAttendeeInput contains parameters for adding an attendee
type AddAttendeeInput struct {
	SessionID string
	StudentID string
}

// AddAttendeeOutput reports whether the attendee was newly added
type AddAttendeeOutput struct {
	Added bool
}

// RemoveAttendeeInput contains parameters for removing an attendee
type RemoveAttendeeInput struct {
	SessionID string
	StudentID string
}

// RemoveAttendeeOutput reports whether the attendee was a member
type RemoveAttendeeOutput struct {
	Removed bool
}

// EndSessionInput contains parameters for ending a session
type EndSessionInput struct {
	SessionID string
	EndTime   time.Time
}

// EndSessionOutput contains the ended session
type EndSessionOutput struct {
	Session *models.Session
}
