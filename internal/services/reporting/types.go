package reporting

import (
	"github.com/attendify/attendify/internal/models"
	recordRepo "github.com/attendify/attendify/internal/repositories/record"
	rosterRepo "github.com/attendify/attendify/internal/repositories/roster"
)

// Config holds configuration for the reporting service
type Config struct {
	// Repository dependencies
	RecordRepo recordRepo.Repository
	RosterRepo rosterRepo.Repository
}

// Filter enumerates the supported record criteria. Empty fields match
// everything; set fields are AND-ed together.
type Filter struct {
	// Date matches the record's calendar date, formatted 2006-01-02
	Date string

	// ClassID matches the record's class
	ClassID string

	// Status matches the record's status
	Status models.AttendanceStatus

	// Search matches case-insensitively against the student's or the
	// class's display name
	Search string
}

// RecordView is a ledger entry joined with roster display fields
type RecordView struct {
	// Record is the underlying ledger entry
	Record *models.AttendanceRecord

	// StudentName is the student's display name, "Unknown" if the
	// student has left the roster
	StudentName string

	// StudentNumber is the institution-issued roll number
	StudentNumber string

	// ClassName is the class's display name
	ClassName string
}

// ListRecordsInput contains the filter to apply
type ListRecordsInput struct {
	Filter Filter
}

// ListRecordsOutput contains the matching entries in insertion order
type ListRecordsOutput struct {
	Records []*RecordView
}

// ClassSummaryRow aggregates one class's ledger
type ClassSummaryRow struct {
	ClassID       string
	ClassName     string
	Subject       string
	TotalSessions int
	PresentCount  int
	AbsentCount   int
	LateCount     int

	// AttendanceRate is present marks over possible marks
	// (sessions x enrolled students), as a percentage
	AttendanceRate float64
}

// ClassSummariesInput contains parameters for the class summary
type ClassSummariesInput struct{}

// ClassSummariesOutput contains one row per class, ordered by class ID
type ClassSummariesOutput struct {
	Rows []*ClassSummaryRow
}

// StudentSummaryRow aggregates one student's ledger
type StudentSummaryRow struct {
	StudentID     string
	StudentName   string
	StudentNumber string
	TotalSessions int
	PresentCount  int
	AbsentCount   int
	LateCount     int

	// AttendanceRate is present marks over total marks, as a
	// percentage. The ledger is authoritative; nothing is hardcoded.
	AttendanceRate float64
}

// StudentSummariesInput contains parameters for the student summary
type StudentSummariesInput struct{}

// StudentSummariesOutput contains one row per student, ordered by user ID
type StudentSummariesOutput struct {
	Rows []*StudentSummaryRow
}
