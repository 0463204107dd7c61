package attendance

import "context"

// Service defines the interface for the session lifecycle and the
// attendance ledger. It is the only writer of both.
type Service interface {
	// StartSession opens a new session for a class and mints its
	// check-in payload
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// EndSession closes an active session, invalidates its payload,
	// and synthesizes absent records for enrolled students who never
	// checked in
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// CheckIn marks a student present or late against an active
	// session's payload
	CheckIn(ctx context.Context, input *CheckInInput) (*CheckInOutput, error)

	// GetActiveSession returns the active session for a class, nil
	// when there is none
	GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*GetActiveSessionOutput, error)
}
