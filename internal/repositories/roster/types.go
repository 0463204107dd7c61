package roster

import "github.com/attendify/attendify/internal/models"

// SaveClassInput contains the class to store
type SaveClassInput struct {
	Class *models.Class
}

// SaveClassOutput contains the stored class
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

// SaveStudentInput contains the student to store
type SaveStudentInput struct {
	Student *models.Student
}

// SaveStudentOutput contains the stored student
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

// SaveFacultyInput contains the faculty member to store
type SaveFacultyInput struct {
	Faculty *models.Faculty
}

// SaveFacultyOutput contains the stored faculty member
type SaveFacultyOutput struct {
	Faculty *models.Faculty
}

// GetFacultyInput contains parameters for retrieving a faculty member
type GetFacultyInput struct {
	FacultyID string
}

// GetFacultyOutput contains the retrieved faculty member
type GetFacultyOutput struct {
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

// SaveAdminInput contains the admin user to store
type SaveAdminInput struct {
	Admin *models.User
}

// SaveAdminOutput contains the stored admin user
type SaveAdminOutput struct {
	Admin *models.User
}

// GetUserByEmailInput contains parameters for the email lookup
type GetUserByEmailInput struct {
	Email string
}

// GetUserByEmailOutput contains the resolved identity
type GetUserByEmailOutput struct {
	User *models.User
}
