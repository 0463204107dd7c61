package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendify/attendify/internal/common/uuid"
	"github.com/attendify/attendify/internal/models"
	rosterRepo "github.com/attendify/attendify/internal/repositories/roster"
	"golang.org/x/crypto/bcrypt"
)

// service implements the Service interface
type service struct {
	rosterRepo rosterRepo.Repository
	uuidGen    uuid.UUID
}

// New creates a new roster service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RosterRepo == nil {
		return nil, ErrNilRosterRepo
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		rosterRepo: cfg.RosterRepo,
		uuidGen:    cfg.UUIDGenerator,
	}, nil
}

// SaveClass creates or updates a class
func (s *service) SaveClass(ctx context.Context, input *SaveClassInput) (*SaveClassOutput, error) {
	if input == nil || input.Class == nil {
		return nil, errors.New("class is required")
	}

	if input.Class.Name == "" {
		return nil, errors.New("class name is required")
	}

	if input.Class.ID == "" {
		input.Class.ID = s.uuidGen.NewUUID()
	}

	out, err := s.rosterRepo.SaveClass(ctx, &rosterRepo.SaveClassInput{
		Class: input.Class,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save class: %w", err)
	}

	return &SaveClassOutput{Class: out.Class}, nil
}

// GetClass retrieves a class by ID
func (s *service) GetClass(ctx context.Context, input *GetClassInput) (*GetClassOutput, error) {
	if input == nil || input.ClassID == "" {
		return nil, errors.New("class ID is required")
	}

	out, err := s.rosterRepo.GetClass(ctx, &rosterRepo.GetClassInput{
		ClassID: input.ClassID,
	})
	if err != nil {
		return nil, err
	}

	return &GetClassOutput{Class: out.Class}, nil
}

// ListClasses retrieves all classes
func (s *service) ListClasses(ctx context.Context, input *ListClassesInput) (*ListClassesOutput, error) {
	out, err := s.rosterRepo.ListClasses(ctx, &rosterRepo.ListClassesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}

	return &ListClassesOutput{Classes: out.Classes}, nil
}

// DeleteClass removes a class
func (s *service) DeleteClass(ctx context.Context, input *DeleteClassInput) (*DeleteClassOutput, error) {
	if input == nil || input.ClassID == "" {
		return nil, errors.New("class ID is required")
	}

	if _, err := s.rosterRepo.DeleteClass(ctx, &rosterRepo.DeleteClassInput{
		ClassID: input.ClassID,
	}); err != nil {
		return nil, fmt.Errorf("failed to delete class: %w", err)
	}

	return &DeleteClassOutput{}, nil
}

// SaveStudent creates or updates a student
func (s *service) SaveStudent(ctx context.Context, input *SaveStudentInput) (*SaveStudentOutput, error) {
	if input == nil || input.Student == nil {
		return nil, errors.New("student is required")
	}

	if input.Student.Name == "" {
		return nil, errors.New("student name is required")
	}

	if input.Student.ID == "" {
		input.Student.ID = s.uuidGen.NewUUID()
	}
	input.Student.Role = models.RoleStudent

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		input.Student.PasswordHash = string(hash)
	}

	out, err := s.rosterRepo.SaveStudent(ctx, &rosterRepo.SaveStudentInput{
		Student: input.Student,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save student: %w", err)
	}

	return &SaveStudentOutput{Student: out.Student}, nil
}

// GetStudent retrieves a student by user ID
func (s *service) GetStudent(ctx context.Context, input *GetStudentInput) (*GetStudentOutput, error) {
	if input == nil || input.StudentID == "" {
		return nil, errors.New("student ID is required")
	}

	out, err := s.rosterRepo.GetStudent(ctx, &rosterRepo.GetStudentInput{
		StudentID: input.StudentID,
	})
	if err != nil {
		return nil, err
	}

	return &GetStudentOutput{Student: out.Student}, nil
}

// ListStudents retrieves all students
func (s *service) ListStudents(ctx context.Context, input *ListStudentsInput) (*ListStudentsOutput, error) {
	out, err := s.rosterRepo.ListStudents(ctx, &rosterRepo.ListStudentsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return &ListStudentsOutput{Students: out.Students}, nil
}

// DeleteStudent removes a student
func (s *service) DeleteStudent(ctx context.Context, input *DeleteStudentInput) (*DeleteStudentOutput, error) {
	if input == nil || input.StudentID == "" {
		return nil, errors.New("student ID is required")
	}

	if _, err := s.rosterRepo.DeleteStudent(ctx, &rosterRepo.DeleteStudentInput{
		StudentID: input.StudentID,
	}); err != nil {
		return nil, fmt.Errorf("failed to delete student: %w", err)
	}

	return &DeleteStudentOutput{}, nil
}

// SaveFaculty creates or updates a faculty member
func (s *service) SaveFaculty(ctx context.Context, input *SaveFacultyInput) (*SaveFacultyOutput, error) {
	if input == nil || input.Faculty == nil {
		return nil, errors.New("faculty member is required")
	}

	if input.Faculty.Name == "" {
		return nil, errors.New("faculty name is required")
	}

	if input.Faculty.ID == "" {
		input.Faculty.ID = s.uuidGen.NewUUID()
	}
	input.Faculty.Role = models.RoleFaculty

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		input.Faculty.PasswordHash = string(hash)
	}

	out, err := s.rosterRepo.SaveFaculty(ctx, &rosterRepo.SaveFacultyInput{
		Faculty: input.Faculty,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save faculty member: %w", err)
	}

	return &SaveFacultyOutput{Faculty: out.Faculty}, nil
}

// ListFaculty retrieves all faculty
func (s *service) ListFaculty(ctx context.Context, input *ListFacultyInput) (*ListFacultyOutput, error) {
	out, err := s.rosterRepo.ListFaculty(ctx, &rosterRepo.ListFacultyInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list faculty: %w", err)
	}

	return &ListFacultyOutput{Faculty: out.Faculty}, nil
}

// DeleteFaculty removes a faculty member
func (s *service) DeleteFaculty(ctx context.Context, input *DeleteFacultyInput) (*DeleteFacultyOutput, error) {
	if input == nil || input.FacultyID == "" {
		return nil, errors.New("faculty ID is required")
	}

	if _, err := s.rosterRepo.DeleteFaculty(ctx, &rosterRepo.DeleteFacultyInput{
		FacultyID: input.FacultyID,
	}); err != nil {
		return nil, fmt.Errorf("failed to delete faculty member: %w", err)
	}

	return &DeleteFacultyOutput{}, nil
}

// Authenticate verifies login credentials against the roster
func (s *service) Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error) {
	if input == nil || input.Email == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	out, err := s.rosterRepo.GetUserByEmail(ctx, &rosterRepo.GetUserByEmailInput{
		Email: input.Email,
	})
	if err != nil {
		if errors.Is(err, rosterRepo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(out.User.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &AuthenticateOutput{User: out.User}, nil
}
