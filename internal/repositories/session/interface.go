package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/attendify/attendify/internal/repositories/session Repository

import (
	"context"
)

// Repository defines the interface for session persistence
type Repository interface {
	// CreateSession stores a new session and marks it as the active
	// session for its class. Fails if the class already has one.
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession retrieves a session by ID, attendees included
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// GetActiveSession retrieves the active session for a class, if any
	GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*GetActiveSessionOutput, error)

	// AddAttendee adds a student to a session's attendee set. Added is
	// false when the student was already a member.
	AddAttendee(ctx context.Context, input *AddAttendeeInput) (*AddAttendeeOutput, error)

	// RemoveAttendee takes a student back out of a session's attendee
	// set, undoing an AddAttendee whose record write failed
	RemoveAttendee(ctx context.Context, input *RemoveAttendeeInput) (*RemoveAttendeeOutput, error)

	// EndSession stamps the end time, deactivates the session, and
	// clears the class's active-session pointer
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)
}
