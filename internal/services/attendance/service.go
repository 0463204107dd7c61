package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendify/attendify/internal/common/clock"
	"github.com/attendify/attendify/internal/common/uuid"
	"github.com/attendify/attendify/internal/models"
	recordRepo "github.com/attendify/attendify/internal/repositories/record"
	rosterRepo "github.com/attendify/attendify/internal/repositories/roster"
	sessionRepo "github.com/attendify/attendify/internal/repositories/session"
)

// service implements the Service interface
type service struct {
	sessionRepo sessionRepo.Repository
	recordRepo  recordRepo.Repository
	rosterRepo  rosterRepo.Repository

	clock   clock.Clock
	uuidGen uuid.UUID

	gracePeriod time.Duration
}

// New creates a new attendance service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.RecordRepo == nil {
		return nil, ErrNilRecordRepo
	}

	if cfg.RosterRepo == nil {
		return nil, ErrNilRosterRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	gracePeriod := cfg.GracePeriod
	if gracePeriod <= 0 {
		gracePeriod = DefaultGracePeriod
	}

	return &service{
		sessionRepo: cfg.SessionRepo,
		recordRepo:  cfg.RecordRepo,
		rosterRepo:  cfg.RosterRepo,
		clock:       cfg.Clock,
		uuidGen:     cfg.UUIDGenerator,
		gracePeriod: gracePeriod,
	}, nil
}

// StartSession opens a new session for a class
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.ClassID == "" {
		return nil, errors.New("class ID is required")
	}

	if input.FacultyID == "" {
		return nil, errors.New("faculty ID is required")
	}

	classOutput, err := s.rosterRepo.GetClass(ctx, &rosterRepo.GetClassInput{
		ClassID: input.ClassID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}

	// Advisory gate: the owning faculty member or an admin
	if input.ActorRole != models.RoleAdmin && classOutput.Class.FacultyID != input.FacultyID {
		return nil, ErrNotClassFaculty
	}

	now := s.clock.Now()
	sessionID := s.uuidGen.NewUUID()

	payload, err := EncodePayload(&CheckInPayload{
		SessionID: sessionID,
		ClassID:   input.ClassID,
		Timestamp: now.UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode check-in payload: %w", err)
	}

	session := &models.Session{
		ID:        sessionID,
		ClassID:   input.ClassID,
		FacultyID: input.FacultyID,
		Date:      now.Format("2006-01-02"),
		StartTime: now,
		Payload:   payload,
		Active:    true,
	}

	created, err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{
		Session: session,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrActiveSessionExists) {
			return nil, ErrSessionAlreadyActive
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &StartSessionOutput{
		Session: created.Session,
	}, nil
}

// EndSession closes an active session and completes the ledger for it
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.SessionID == "" {
		return nil, errors.New("session ID is required")
	}

	sessionOutput, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotActive
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if !sessionOutput.Session.Active {
		return nil, ErrSessionNotActive
	}

	// Complete the ledger before deactivating: if an absent record
	// fails to write, the session stays active and EndSession can be
	// retried. The per-(session,student) record slot keeps the retry
	// and any racing check-in from double-writing.
	absentRecords, err := s.reconcileAbsences(ctx, sessionOutput.Session)
	if err != nil {
		return nil, err
	}

	ended, err := s.sessionRepo.EndSession(ctx, &sessionRepo.EndSessionInput{
		SessionID: input.SessionID,
		EndTime:   s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to end session: %w", err)
	}

	return &EndSessionOutput{
		Session:       ended.Session,
		AbsentRecords: absentRecords,
	}, nil
}

// reconcileAbsences synthesizes absent records for enrolled students
// who never checked in, so every session ends with a complete ledger
func (s *service) reconcileAbsences(ctx context.Context, session *models.Session) ([]*models.AttendanceRecord, error) {
	classOutput, err := s.rosterRepo.GetClass(ctx, &rosterRepo.GetClassInput{
		ClassID: session.ClassID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get class for reconciliation: %w", err)
	}

	var absentRecords []*models.AttendanceRecord
	for _, studentID := range classOutput.Class.StudentIDs {
		if session.HasAttendee(studentID) {
			continue
		}

		rec := &models.AttendanceRecord{
			ID:        s.uuidGen.NewUUID(),
			StudentID: studentID,
			ClassID:   session.ClassID,
			SessionID: session.ID,
			Date:      session.Date,
			Status:    models.StatusAbsent,
			Method:    models.MethodManual,
		}

		_, err := s.recordRepo.CreateRecord(ctx, &recordRepo.CreateRecordInput{
			Record: rec,
		})
		if err != nil {
			if errors.Is(err, recordRepo.ErrDuplicateRecord) {
				continue
			}
			return nil, fmt.Errorf("failed to create absent record: %w", err)
		}

		absentRecords = append(absentRecords, rec)
	}

	return absentRecords, nil
}

// CheckIn marks a student against an active session's payload
func (s *service) CheckIn(ctx context.Context, input *CheckInInput) (*CheckInOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.StudentID == "" {
		return nil, errors.New("student ID is required")
	}

	switch input.Method {
	case models.MethodQR, models.MethodFace, models.MethodManual:
	default:
		return nil, ErrInvalidMethod
	}

	payload, err := DecodePayload(input.Payload)
	if err != nil {
		return nil, err
	}

	sessionOutput, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: payload.SessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotActive
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session := sessionOutput.Session
	if !session.Active {
		return nil, ErrSessionNotActive
	}

	// A payload minted for one class must not check into another
	if session.ClassID != payload.ClassID {
		return nil, ErrInvalidPayload
	}

	classOutput, err := s.rosterRepo.GetClass(ctx, &rosterRepo.GetClassInput{
		ClassID: session.ClassID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}

	if !classOutput.Class.HasStudent(input.StudentID) {
		return nil, ErrNotEnrolled
	}

	added, err := s.sessionRepo.AddAttendee(ctx, &sessionRepo.AddAttendeeInput{
		SessionID: session.ID,
		StudentID: input.StudentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add attendee: %w", err)
	}

	if !added.Added {
		return nil, ErrAlreadyCheckedIn
	}

	now := s.clock.Now()
	status := models.StatusPresent
	if now.Sub(session.StartTime) > s.gracePeriod {
		status = models.StatusLate
	}

	rec := &models.AttendanceRecord{
		ID:        s.uuidGen.NewUUID(),
		StudentID: input.StudentID,
		ClassID:   session.ClassID,
		SessionID: session.ID,
		Date:      session.Date,
		MarkedAt:  now,
		Status:    status,
		Method:    input.Method,
	}

	created, err := s.recordRepo.CreateRecord(ctx, &recordRepo.CreateRecordInput{
		Record: rec,
	})
	if err != nil {
		// The attendee set must not outrun the ledger: release the
		// slot so a retry is not bounced as a duplicate
		if _, remErr := s.sessionRepo.RemoveAttendee(ctx, &sessionRepo.RemoveAttendeeInput{
			SessionID: session.ID,
			StudentID: input.StudentID,
		}); remErr != nil {
			return nil, fmt.Errorf("failed to roll back attendee (%v) after record error: %w", remErr, err)
		}

		if errors.Is(err, recordRepo.ErrDuplicateRecord) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("failed to create attendance record: %w", err)
	}

	session.Attendees = append(session.Attendees, input.StudentID)

	return &CheckInOutput{
		Record:  created.Record,
		Session: session,
	}, nil
}

// GetActiveSession returns the active session for a class
func (s *service) GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*GetActiveSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.ClassID == "" {
		return nil, errors.New("class ID is required")
	}

	out, err := s.sessionRepo.GetActiveSession(ctx, &sessionRepo.GetActiveSessionInput{
		ClassID: input.ClassID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}

	return &GetActiveSessionOutput{
		Session: out.Session,
	}, nil
}
