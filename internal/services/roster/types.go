package roster

import (
	"io"

	"github.com/attendify/attendify/internal/common/uuid"
	"github.com/attendify/attendify/internal/models"
	rosterRepo "github.com/attendify/attendify/internal/repositories/roster"
)

// Config holds configuration for the roster service
type Config struct {
	// Repository dependencies
	RosterRepo rosterRepo.Repository

	// Service dependencies
	UUIDGenerator uuid.UUID
}

// SaveClassInput contains the class to save
type SaveClassInput struct {
	Class *models.Class
}

// SaveClassOutput contains the saved class
type SaveClassOutput struct {
	Class *models.Class
}

// GetClassInput contains parameters for retrieving a class
type GetClassInput struct {
	ClassID string
}

// GetClassOutput contains the retrieved class
type GetClassOutput struct {
	Class *models.Class
}

// ListClassesInput contains parameters for listing classes
type ListClassesInput struct{}

// ListClassesOutput contains all classes
type ListClassesOutput struct {
	Classes []*models.Class
}

// DeleteClassInput contains parameters for deleting a class
type DeleteClassInput struct {
	ClassID string
}

// DeleteClassOutput is the result of deleting a class
type DeleteClassOutput struct{}

// SaveStudentInput contains the student to save. Password, when set,
// is hashed before storage and never persisted in the clear.
type SaveStudentInput struct {
	Student  *models.Student
	Password string
}

// SaveStudentOutput contains the saved student
type SaveStudentOutput struct {
	Student *models.Student
}

// GetStudentInput contains parameters for retrieving a student
type GetStudentInput struct {
	StudentID string
}

// GetStudentOutput contains the retrieved student
type GetStudentOutput struct {
	Student *models.Student
}

// ListStudentsInput contains parameters for listing students
type ListStudentsInput struct{}

// ListStudentsOutput contains all students
type ListStudentsOutput struct {
	Students []*models.Student
}

// DeleteStudentInput contains parameters for deleting a student
type DeleteStudentInput struct {
	StudentID string
}

// DeleteStudentOutput is the result of deleting a student
type DeleteStudentOutput struct{}

// SaveFacultyInput contains the faculty member to save
type SaveFacultyInput struct {
	Faculty  *models.Faculty
	Password string
}

// SaveFacultyOutput contains the saved faculty member
type SaveFacultyOutput struct {
	Faculty *models.Faculty
}

// ListFacultyInput contains parameters for listing faculty
type ListFacultyInput struct{}

// ListFacultyOutput contains all faculty
type ListFacultyOutput struct {
	Faculty []*models.Faculty
}

// DeleteFacultyInput contains parameters for deleting a faculty member
type DeleteFacultyInput struct {
	FacultyID string
}

// DeleteFacultyOutput is the result of deleting a faculty member
type DeleteFacultyOutput struct{}

// ImportCSVInput contains the CSV stream to import
type ImportCSVInput struct {
	Reader io.Reader
}

// ImportStudentsCSVOutput contains the created students. Rows missing
// a name are dropped, not errors.
type ImportStudentsCSVOutput struct {
	Students []*models.Student
	Dropped  int
}

// ImportClassesCSVOutput contains the created classes
type ImportClassesCSVOutput struct {
	Classes []*models.Class
	Dropped int
}

// ImportFacultyCSVOutput contains the created faculty
type ImportFacultyCSVOutput struct {
	Faculty []*models.Faculty
	Dropped int
}

// AuthenticateInput contains login credentials
type AuthenticateInput struct {
	Email    string
	Password string
}

// AuthenticateOutput contains the authenticated identity
type AuthenticateOutput struct {
	User *models.User
}
