package models

import (
	"time"
)

// AttendanceStatus is the outcome recorded for a student in a session
type AttendanceStatus string

const (
	// StatusPresent indicates a check-in within the grace period
	StatusPresent AttendanceStatus = "present"

	// StatusAbsent indicates the student never checked in
	StatusAbsent AttendanceStatus = "absent"

	// StatusLate indicates a check-in after the grace period
	StatusLate AttendanceStatus = "late"
)

// CheckInMethod is how an attendance record was produced
type CheckInMethod string

const (
	// MethodQR indicates a scanned check-in payload
	MethodQR CheckInMethod = "qr"

	// MethodFace indicates a face-match check-in
	MethodFace CheckInMethod = "face"

	// MethodManual indicates a faculty-entered mark
	MethodManual CheckInMethod = "manual"
)

// AttendanceRecord is one immutable entry in the attendance ledger.
// Exactly one record exists per (student, session) pair.
type AttendanceRecord struct {
	// ID is the unique identifier for the record
	ID string

	// StudentID is the student the record belongs to
	StudentID string

	// ClassID is the class the session belonged to
	ClassID string

	// SessionID is the session that produced the record
	SessionID string

	// Date is the calendar date of the session, formatted 2006-01-02
	Date string

	// MarkedAt is when the check-in was accepted. Zero for absent
	// records, which are synthesized at session end without a mark.
	MarkedAt time.Time

	// Status is present, absent, or late
	Status AttendanceStatus

	// Method is how the record was produced
	Method CheckInMethod
}
