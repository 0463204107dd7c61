package roster

import "context"

// Service manages the roster reference data the ledger reads from:
// classes, students, faculty, and bulk CSV import
type Service interface {
	// SaveClass creates or updates a class, minting an ID when absent
	SaveClass(ctx context.Context, input *SaveClassInput) (*SaveClassOutput, error)

	// GetClass retrieves a class by ID
	GetClass(ctx context.Context, input *GetClassInput) (*GetClassOutput, error)

	// ListClasses retrieves all classes
	ListClasses(ctx context.Context, input *ListClassesInput) (*ListClassesOutput, error)

	// DeleteClass removes a class
	DeleteClass(ctx context.Context, input *DeleteClassInput) (*DeleteClassOutput, error)

	// SaveStudent creates or updates a student, hashing the password
	// when one is supplied
	SaveStudent(ctx context.Context, input *SaveStudentInput) (*SaveStudentOutput, error)

	// GetStudent retrieves a student by user ID
	GetStudent(ctx context.Context, input *GetStudentInput) (*GetStudentOutput, error)

	// ListStudents retrieves all students
	ListStudents(ctx context.Context, input *ListStudentsInput) (*ListStudentsOutput, error)

	// DeleteStudent removes a student
	DeleteStudent(ctx context.Context, input *DeleteStudentInput) (*DeleteStudentOutput, error)

	// SaveFaculty creates or updates a faculty member
	SaveFaculty(ctx context.Context, input *SaveFacultyInput) (*SaveFacultyOutput, error)

	// ListFaculty retrieves all faculty
	ListFaculty(ctx context.Context, input *ListFacultyInput) (*ListFacultyOutput, error)

	// DeleteFaculty removes a faculty member
	DeleteFaculty(ctx context.Context, input *DeleteFacultyInput) (*DeleteFacultyOutput, error)

	// ImportStudentsCSV bulk-creates students from a CSV stream
	ImportStudentsCSV(ctx context.Context, input *ImportCSVInput) (*ImportStudentsCSVOutput, error)

	// ImportClassesCSV bulk-creates classes from a CSV stream
	ImportClassesCSV(ctx context.Context, input *ImportCSVInput) (*ImportClassesCSVOutput, error)

	// ImportFacultyCSV bulk-creates faculty from a CSV stream
	ImportFacultyCSV(ctx context.Context, input *ImportCSVInput) (*ImportFacultyCSVOutput, error)

	// Authenticate verifies a login email and password
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)
}
