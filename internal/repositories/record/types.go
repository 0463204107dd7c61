package record

import "github.com/attendify/attendify/internal/models"

// CreateRecordInput contains the record to append
type CreateRecordInput struct {
	Record *models.AttendanceRecord
}

// CreateRecordOutput contains the appended record
type CreateRecordOutput struct {
	Record *models.AttendanceRecord
}

// GetRecordInput contains parameters for retrieving a record
type GetRecordInput struct {
	RecordID string
}

// GetRecordOutput contains the retrieved record
type GetRecordOutput struct {
	Record *models.AttendanceRecord
}

// ListRecordsInput contains parameters for listing the full ledger
type ListRecordsInput struct{}

// ListRecordsOutput contains every record in insertion order
type ListRecordsOutput struct {
	Records []*models.AttendanceRecord
}

// GetRecordsForStudentInput contains parameters for a student's records
type GetRecordsForStudentInput struct {
	StudentID string
}

// GetRecordsForStudentOutput contains the student's records
type GetRecordsForStudentOutput struct {
	Records []*models.AttendanceRecord
}

// GetRecordsForClassInput contains parameters for a class's records
type GetRecordsForClassInput struct {
	ClassID string
}

// GetRecordsForClassOutput contains the class's records
type GetRecordsForClassOutput struct {
	Records []*models.AttendanceRecord
}

// GetRecordsForSessionInput contains parameters for a session's records
type GetRecordsForSessionInput struct {
	SessionID string
}

// GetRecordsForSessionOutput contains the session's records
type GetRecordsForSessionOutput struct {
	Records []*models.AttendanceRecord
}
