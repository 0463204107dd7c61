package attendance

// AttendanceError is a custom error type for check-in and session errors
type AttendanceError string

// Error implements the error interface
func (e AttendanceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidPayload       AttendanceError = "invalid check-in payload"
	ErrSessionNotActive     AttendanceError = "session is not active"
	ErrNotEnrolled          AttendanceError = "student is not enrolled in this class"
	ErrAlreadyCheckedIn     AttendanceError = "student has already checked in for this session"
	ErrSessionAlreadyActive AttendanceError = "class already has an active session"
	ErrNotClassFaculty      AttendanceError = "faculty member does not teach this class"
	ErrInvalidMethod        AttendanceError = "unknown check-in method"
	ErrNilConfig            AttendanceError = "config cannot be nil"
	ErrNilSessionRepo       AttendanceError = "session repository cannot be nil"
	ErrNilRecordRepo        AttendanceError = "record repository cannot be nil"
	ErrNilRosterRepo        AttendanceError = "roster repository cannot be nil"
	ErrNilClock             AttendanceError = "clock cannot be nil"
	ErrNilUUIDGenerator     AttendanceError = "UUID generator cannot be nil"
)
