package record

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/attendify/attendify/internal/repositories/record Repository

import (
	"context"
)

// Repository defines the interface for the attendance ledger. Records
// are append-only; there are no update or delete operations.
type Repository interface {
	// CreateRecord appends a record to the ledger. At most one record
	// may exist per (student, session) pair; a second attempt fails
	// with ErrDuplicateRecord.
	CreateRecord(ctx context.Context, input *CreateRecordInput) (*CreateRecordOutput, error)

	// GetRecord retrieves a record by ID
	GetRecord(ctx context.Context, input *GetRecordInput) (*GetRecordOutput, error)

	// ListRecords retrieves every record in insertion order
	ListRecords(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error)

	// GetRecordsForStudent retrieves a student's records in insertion order
	GetRecordsForStudent(ctx context.Context, input *GetRecordsForStudentInput) (*GetRecordsForStudentOutput, error)

	// GetRecordsForClass retrieves a class's records in insertion order
	GetRecordsForClass(ctx context.Context, input *GetRecordsForClassInput) (*GetRecordsForClassOutput, error)

	// GetRecordsForSession retrieves a session's records in insertion order
	GetRecordsForSession(ctx context.Context, input *GetRecordsForSessionInput) (*GetRecordsForSessionOutput, error)
}
