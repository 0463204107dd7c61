package models

// Role identifies which dashboard a user sees. Role checks are advisory
// gates for the UI, not a security boundary.
type Role string

const (
	// RoleStudent can check in and view their own attendance
	RoleStudent Role = "student"

	// RoleFaculty can run sessions for their assigned classes
	RoleFaculty Role = "faculty"

	// RoleAdmin can manage the roster and view everything
	RoleAdmin Role = "admin"
)

// User holds the identity fields shared by every role
type User struct {
	// ID is the unique identifier for the user
	ID string

	// Email is the login email address
	Email string

	// Name is the display name
	Name string

	// Role determines which views the user is gated into
	Role Role

	// PasswordHash is the bcrypt hash of the login password
	PasswordHash string

	// ProfileImage is an optional avatar URL
	ProfileImage string
}

// Student is a user enrolled in classes
type Student struct {
	User

	// StudentID is the institution-issued roll number
	StudentID string

	// ClassIDs lists the classes the student is enrolled in
	ClassIDs []string
}

// Faculty is a user who runs class sessions
type Faculty struct {
	User

	// FacultyID is the institution-issued staff number
	FacultyID string

	// AssignedClasses lists the classes this faculty member teaches
	AssignedClasses []string

	// Department is the faculty member's department
	Department string
}

// EnrolledIn reports whether the student is enrolled in the given class
func (s *Student) EnrolledIn(classID string) bool {
	for _, id := range s.ClassIDs {
		if id == classID {
			return true
		}
	}
	return false
}
