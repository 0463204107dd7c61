package roster

// RosterError is a custom error type for roster operations
type RosterError string

// Error implements the error interface
func (e RosterError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidCredentials RosterError = "invalid email or password"
	ErrNilConfig          RosterError = "config cannot be nil"
	ErrNilRosterRepo      RosterError = "roster repository cannot be nil"
	ErrNilUUIDGenerator   RosterError = "UUID generator cannot be nil"
)
