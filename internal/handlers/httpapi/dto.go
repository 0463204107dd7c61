package httpapi

import (
	"time"

	"github.com/attendify/attendify/internal/models"
	"github.com/attendify/attendify/internal/services/reporting"
)

// The API speaks camelCase JSON; the models stay tag-free. These
// conversions are the only place the two shapes meet.

type userJSON struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
}

func toUserJSON(u *models.User) userJSON {
	return userJSON{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         string(u.Role),
		ProfileImage: u.ProfileImage,
	}
}

type studentJSON struct {
	userJSON
	StudentID string   `json:"studentId"`
	ClassIDs  []string `json:"classIds"`
}

func toStudentJSON(s *models.Student) studentJSON {
	return studentJSON{
		userJSON:  toUserJSON(&s.User),
		StudentID: s.StudentID,
		ClassIDs:  s.ClassIDs,
	}
}

type facultyJSON struct {
	userJSON
	FacultyID       string   `json:"facultyId"`
	AssignedClasses []string `json:"assignedClasses"`
	Department      string   `json:"department"`
}

func toFacultyJSON(f *models.Faculty) facultyJSON {
	return facultyJSON{
		userJSON:        toUserJSON(&f.User),
		FacultyID:       f.FacultyID,
		AssignedClasses: f.AssignedClasses,
		Department:      f.Department,
	}
}

type classJSON struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Subject    string   `json:"subject"`
	FacultyID  string   `json:"facultyId"`
	StudentIDs []string `json:"studentIds"`
	Schedule   string   `json:"schedule"`
	Room       string   `json:"room"`
	Semester   string   `json:"semester"`
}

func toClassJSON(c *models.Class) classJSON {
	return classJSON{
		ID:         c.ID,
		Name:       c.Name,
		Subject:    c.Subject,
		FacultyID:  c.FacultyID,
		StudentIDs: c.StudentIDs,
		Schedule:   c.Schedule,
		Room:       c.Room,
		Semester:   c.Semester,
	}
}

func fromClassJSON(c classJSON) *models.Class {
	return &models.Class{
		ID:         c.ID,
		Name:       c.Name,
		Subject:    c.Subject,
		FacultyID:  c.FacultyID,
		StudentIDs: c.StudentIDs,
		Schedule:   c.Schedule,
		Room:       c.Room,
		Semester:   c.Semester,
	}
}

type sessionJSON struct {
	ID        string     `json:"id"`
	ClassID   string     `json:"classId"`
	FacultyID string     `json:"facultyId"`
	Date      string     `json:"date"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Payload   string     `json:"payload"`
	Active    bool       `json:"active"`
	Attendees []string   `json:"attendees"`
}

func toSessionJSON(s *models.Session) sessionJSON {
	out := sessionJSON{
		ID:        s.ID,
		ClassID:   s.ClassID,
		FacultyID: s.FacultyID,
		Date:      s.Date,
		StartTime: s.StartTime,
		Payload:   s.Payload,
		Active:    s.Active,
		Attendees: s.Attendees,
	}
	if !s.EndTime.IsZero() {
		end := s.EndTime
		out.EndTime = &end
	}
	return out
}

type recordJSON struct {
	ID            string     `json:"id"`
	StudentID     string     `json:"studentId"`
	StudentName   string     `json:"studentName,omitempty"`
	StudentNumber string     `json:"studentNumber,omitempty"`
	ClassID       string     `json:"classId"`
	ClassName     string     `json:"className,omitempty"`
	SessionID     string     `json:"sessionId"`
	Date          string     `json:"date"`
	MarkedAt      *time.Time `json:"markedAt,omitempty"`
	Status        string     `json:"status"`
	Method        string     `json:"method"`
}

func toRecordJSON(r *models.AttendanceRecord) recordJSON {
	out := recordJSON{
		ID:        r.ID,
		StudentID: r.StudentID,
		ClassID:   r.ClassID,
		SessionID: r.SessionID,
		Date:      r.Date,
		Status:    string(r.Status),
		Method:    string(r.Method),
	}
	if !r.MarkedAt.IsZero() {
		marked := r.MarkedAt
		out.MarkedAt = &marked
	}
	return out
}

func toRecordViewJSON(v *reporting.RecordView) recordJSON {
	out := toRecordJSON(v.Record)
	out.StudentName = v.StudentName
	out.StudentNumber = v.StudentNumber
	out.ClassName = v.ClassName
	return out
}

type preferencesJSON struct {
	DarkMode bool   `json:"darkMode"`
	Theme    string `json:"theme"`
}
