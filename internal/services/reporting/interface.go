package reporting

import "context"

// Service answers read-only questions over the attendance ledger. It
// never mutates anything; every call is a pure function of the stored
// records and roster.
type Service interface {
	// ListRecords returns ledger entries matching the filter, enriched
	// with student and class names, in ledger insertion order
	ListRecords(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error)

	// ClassSummaries returns per-class attendance statistics
	ClassSummaries(ctx context.Context, input *ClassSummariesInput) (*ClassSummariesOutput, error)

	// StudentSummaries returns per-student attendance statistics with
	// the rate derived from the ledger
	StudentSummaries(ctx context.Context, input *StudentSummariesInput) (*StudentSummariesOutput, error)
}
