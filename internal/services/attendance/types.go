package attendance

import (
	"time"

	"github.com/attendify/attendify/internal/common/clock"
	"github.com/attendify/attendify/internal/common/uuid"
	"github.com/attendify/attendify/internal/models"
	recordRepo "github.com/attendify/attendify/internal/repositories/record"
	rosterRepo "github.com/attendify/attendify/internal/repositories/roster"
	sessionRepo "github.com/attendify/attendify/internal/repositories/session"
)

// DefaultGracePeriod is how long after session start a check-in still
// counts as present rather than late
const DefaultGracePeriod = 5 * time.Minute

// Config holds configuration for the attendance service
type Config struct {
	// GracePeriod is the on-time window after session start.
	// DefaultGracePeriod is used when zero.
	GracePeriod time.Duration

	// Repository dependencies
	SessionRepo sessionRepo.Repository
	RecordRepo  recordRepo.Repository
	RosterRepo  rosterRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// StartSessionInput contains parameters for starting a session
type StartSessionInput struct {
	// ClassID is the class to start a session for
	ClassID string

	// FacultyID is the user ID of the faculty member starting it
	FacultyID string

	// ActorRole is the advisory role of the caller; admins may start
	// sessions for classes they do not teach
	ActorRole models.Role
}

// StartSessionOutput contains the started session
type StartSessionOutput struct {
	// Session is the new active session, payload included
	Session *models.Session
}

// EndSessionInput contains parameters for ending a session
type EndSessionInput struct {
	// SessionID is the session to end
	SessionID string
}

// EndSessionOutput contains the ended session and the reconciliation
type EndSessionOutput struct {
	// Session is the ended session
	Session *models.Session

	// AbsentRecords are the records synthesized for enrolled students
	// who never checked in
	AbsentRecords []*models.AttendanceRecord
}

// CheckInInput contains parameters for a check-in attempt
type CheckInInput struct {
	// Payload is the scanned or entered check-in payload string
	Payload string

	// StudentID is the student checking in
	StudentID string

	// Method is how the check-in was captured (qr, face, manual)
	Method models.CheckInMethod
}

// CheckInOutput contains the result of a successful check-in
type CheckInOutput struct {
	// Record is the created attendance record
	Record *models.AttendanceRecord

	// Session is the session after the attendee was added
	Session *models.Session
}

// GetActiveSessionInput contains parameters for the active-session lookup
type GetActiveSessionInput struct {
	// ClassID is the class to look up
	ClassID string
}

// GetActiveSessionOutput contains the active session, if any
type GetActiveSessionOutput struct {
	// Session is nil when the class has no active session
	Session *models.Session
}
