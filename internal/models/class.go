package models

// Class is the read-mostly reference record for a scheduled course
type Class struct {
	// ID is the unique identifier for the class
	ID string

	// Name is the display name, e.g. "Introduction to Computer Science"
	Name string

	// Subject is the course code or subject area
	Subject string

	// FacultyID is the user ID of the faculty member who owns the class
	FacultyID string

	// StudentIDs lists the user IDs of enrolled students
	StudentIDs []string

	// Schedule is a free-form schedule string, e.g. "Mon/Wed 10:00-11:30"
	Schedule string

	// Room is where the class meets
	Room string

	// Semester is the term the class runs in
	Semester string
}

// HasStudent reports whether the given student is enrolled
func (c *Class) HasStudent(studentID string) bool {
	for _, id := range c.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
