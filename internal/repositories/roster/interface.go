package roster

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/attendify/attendify/internal/repositories/roster Repository

import (
	"context"
)

// Repository defines the interface for roster reference data: classes,
// students, faculty, and the email lookup used by login
type Repository interface {
	// SaveClass creates or replaces a class
	SaveClass(ctx context.Context, input *SaveClassInput) (*SaveClassOutput, error)

	// GetClass retrieves a class by ID
	GetClass(ctx context.Context, input *GetClassInput) (*GetClassOutput, error)

	// ListClasses retrieves all classes ordered by ID
	ListClasses(ctx context.Context, input *ListClassesInput) (*ListClassesOutput, error)

	// DeleteClass removes a class
	DeleteClass(ctx context.Context, input *DeleteClassInput) (*DeleteClassOutput, error)

	// SaveStudent creates or replaces a student
	SaveStudent(ctx context.Context, input *SaveStudentInput) (*SaveStudentOutput, error)

	// GetStudent retrieves a student by user ID
	GetStudent(ctx context.Context, input *GetStudentInput) (*GetStudentOutput, error)

	// ListStudents retrieves all students ordered by ID
	ListStudents(ctx context.Context, input *ListStudentsInput) (*ListStudentsOutput, error)

	// DeleteStudent removes a student
	DeleteStudent(ctx context.Context, input *DeleteStudentInput) (*DeleteStudentOutput, error)

	// SaveFaculty creates or replaces a faculty member
	SaveFaculty(ctx context.Context, input *SaveFacultyInput) (*SaveFacultyOutput, error)

	// GetFaculty retrieves a faculty member by user ID
	GetFaculty(ctx context.Context, input *GetFacultyInput) (*GetFacultyOutput, error)

	// ListFaculty retrieves all faculty ordered by ID
	ListFaculty(ctx context.Context, input *ListFacultyInput) (*ListFacultyOutput, error)

	// DeleteFaculty removes a faculty member
	DeleteFaculty(ctx context.Context, input *DeleteFacultyInput) (*DeleteFacultyOutput, error)

	// SaveAdmin creates or replaces an admin user
	SaveAdmin(ctx context.Context, input *SaveAdminInput) (*SaveAdminOutput, error)

	// GetUserByEmail resolves a login email to the identity fields of
	// whichever roster entry owns it
	GetUserByEmail(ctx context.Context, input *GetUserByEmailInput) (*GetUserByEmailOutput, error)
}
