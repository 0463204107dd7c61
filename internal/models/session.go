package models

import (
	"time"
)

// Session represents a single occurrence of a class during which
// check-ins are accepted
type Session struct {
	// ID is the unique identifier for this session
	ID string

	// ClassID is the class this session belongs to
	ClassID string

	// FacultyID is the user ID of the faculty member who started it
	FacultyID string

	// Date is the calendar date of the session, formatted 2006-01-02
	Date string

	// StartTime is when the session was started
	StartTime time.Time

	// EndTime is when the session was ended; zero while active
	EndTime time.Time

	// Payload is the encoded check-in payload rendered as a QR code.
	// It is honored only while the session is active.
	Payload string

	// Active indicates whether check-ins are currently accepted
	Active bool

	// Attendees lists the student IDs that have checked in. A student
	// appears at most once.
	Attendees []string
}

// HasAttendee reports whether the student has already checked in
func (s *Session) HasAttendee(studentID string) bool {
	for _, id := range s.Attendees {
		if id == studentID {
			return true
		}
	}
	return false
}
