package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/attendify/attendify/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	classKeyPrefix   = "class:"
	classIndexKey    = "classes"
	studentKeyPrefix = "student:"
	studentIndexKey  = "students"
	facultyKeyPrefix = "faculty:"
	facultyIndexKey  = "faculty_members"
	adminKeyPrefix   = "admin:"
	emailKeyPrefix   = "user_email:"
)

// ErrClassNotFound is returned when a class is not found
var ErrClassNotFound = errors.New("class not found")

// ErrStudentNotFound is returned when a student is not found
var ErrStudentNotFound = errors.New("student not found")

// ErrFacultyNotFound is returned when a faculty member is not found
var ErrFacultyNotFound = errors.New("faculty member not found")

// ErrUserNotFound is returned when no roster entry owns an email
var ErrUserNotFound = errors.New("user not found")

// Config holds configuration for the Redis roster repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed roster repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveClass creates or replaces a class
func (r *redisRepository) SaveClass(ctx context.Context, input *SaveClassInput) (*SaveClassOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.Class == nil || input.Class.ID == "" {
		return nil, fmt.Errorf("class with an ID is required")
	}

	if err := r.saveJSON(ctx, classKeyPrefix+input.Class.ID, classIndexKey, input.Class.ID, input.Class); err != nil {
		return nil, err
	}

	return &SaveClassOutput{Class: input.Class}, nil
}

// GetClass retrieves a class by ID
func (r *redisRepository) GetClass(ctx context.Context, input *GetClassInput) (*GetClassOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.ClassID == "" {
		return nil, fmt.Errorf("class ID is required")
	}

	var class models.Class
	if err := r.loadJSON(ctx, classKeyPrefix+input.ClassID, &class, ErrClassNotFound); err != nil {
		return nil, err
	}

	return &GetClassOutput{Class: &class}, nil
}

// ListClasses retrieves all classes ordered by ID
func (r *redisRepository) ListClasses(ctx context.Context, input *ListClassesInput) (*ListClassesOutput, error) {
	ids, err := r.indexMembers(ctx, classIndexKey)
	if err != nil {
		return nil, err
	}

	classes := make([]*models.Class, 0, len(ids))
	for _, id := range ids {
		var class models.Class
		if err := r.loadJSON(ctx, classKeyPrefix+id, &class, ErrClassNotFound); err != nil {
			return nil, err
		}
		classes = append(classes, &class)
	}

	return &ListClassesOutput{Classes: classes}, nil
}

// DeleteClass removes a class
func (r *redisRepository) DeleteClass(ctx context.Context, input *DeleteClassInput) (*DeleteClassOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.ClassID == "" {
		return nil, fmt.Errorf("class ID is required")
	}

	if err := r.client.Del(ctx, classKeyPrefix+input.ClassID).Err(); err != nil {
		return nil, fmt.Errorf("failed to delete class: %w", err)
	}

	if err := r.client.SRem(ctx, classIndexKey, input.ClassID).Err(); err != nil {
		return nil, fmt.Errorf("failed to unindex class: %w", err)
	}

	return &DeleteClassOutput{}, nil
}

// SaveStudent creates or replaces a student and indexes their email
func (r *redisRepository) SaveStudent(ctx context.Context, input *SaveStudentInput) (*SaveStudentOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.Student == nil || input.Student.ID == "" {
		return nil, fmt.Errorf("student with an ID is required")
	}

	var previous models.Student
	if err := r.loadJSON(ctx, studentKeyPrefix+input.Student.ID, &previous, ErrStudentNotFound); err == nil {
		if err := r.dropStaleEmail(ctx, previous.Email, input.Student.Email); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, ErrStudentNotFound) {
		return nil, err
	}

	if err := r.saveJSON(ctx, studentKeyPrefix+input.Student.ID, studentIndexKey, input.Student.ID, input.Student); err != nil {
		return nil, err
	}

	if err := r.indexEmail(ctx, input.Student.Email, &input.Student.User); err != nil {
		return nil, err
	}

	return &SaveStudentOutput{Student: input.Student}, nil
}

// GetStudent retrieves a student by user ID
func (r *redisRepository) GetStudent(ctx context.Context, input *GetStudentInput) (*GetStudentOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.StudentID == "" {
		return nil, fmt.Errorf("student ID is required")
	}

	var student models.Student
	if err := r.loadJSON(ctx, studentKeyPrefix+input.StudentID, &student, ErrStudentNotFound); err != nil {
		return nil, err
	}

	return &GetStudentOutput{Student: &student}, nil
}

// ListStudents retrieves all students ordered by ID
func (r *redisRepository) ListStudents(ctx context.Context, input *ListStudentsInput) (*ListStudentsOutput, error) {
	ids, err := r.indexMembers(ctx, studentIndexKey)
	if err != nil {
		return nil, err
	}

	students := make([]*models.Student, 0, len(ids))
	for _, id := range ids {
		var student models.Student
		if err := r.loadJSON(ctx, studentKeyPrefix+id, &student, ErrStudentNotFound); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	return &ListStudentsOutput{Students: students}, nil
}

// DeleteStudent removes a student
func (r *redisRepository) DeleteStudent(ctx context.Context, input *DeleteStudentInput) (*DeleteStudentOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.StudentID == "" {
		return nil, fmt.Errorf("student ID is required")
	}

	// Drop the credential mapping too, or the deleted student's email
	// would keep authenticating
	var student models.Student
	if err := r.loadJSON(ctx, studentKeyPrefix+input.StudentID, &student, ErrStudentNotFound); err == nil {
		if err := r.dropEmailIndex(ctx, student.Email); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, ErrStudentNotFound) {
		return nil, err
	}

	if err := r.client.Del(ctx, studentKeyPrefix+input.StudentID).Err(); err != nil {
		return nil, fmt.Errorf("failed to delete student: %w", err)
	}

	if err := r.client.SRem(ctx, studentIndexKey, input.StudentID).Err(); err != nil {
		return nil, fmt.Errorf("failed to unindex student: %w", err)
	}

	return &DeleteStudentOutput{}, nil
}

// SaveFaculty creates or replaces a faculty member and indexes their email
func (r *redisRepository) SaveFaculty(ctx context.Context, input *SaveFacultyInput) (*SaveFacultyOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.Faculty == nil || input.Faculty.ID == "" {
		return nil, fmt.Errorf("faculty member with an ID is required")
	}

	var previous models.Faculty
	if err := r.loadJSON(ctx, facultyKeyPrefix+input.Faculty.ID, &previous, ErrFacultyNotFound); err == nil {
		if err := r.dropStaleEmail(ctx, previous.Email, input.Faculty.Email); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, ErrFacultyNotFound) {
		return nil, err
	}

	if err := r.saveJSON(ctx, facultyKeyPrefix+input.Faculty.ID, facultyIndexKey, input.Faculty.ID, input.Faculty); err != nil {
		return nil, err
	}

	if err := r.indexEmail(ctx, input.Faculty.Email, &input.Faculty.User); err != nil {
		return nil, err
	}

	return &SaveFacultyOutput{Faculty: input.Faculty}, nil
}

// GetFaculty retrieves a faculty member by user ID
func (r *redisRepository) GetFaculty(ctx context.Context, input *GetFacultyInput) (*GetFacultyOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.FacultyID == "" {
		return nil, fmt.Errorf("faculty ID is required")
	}

	var faculty models.Faculty
	if err := r.loadJSON(ctx, facultyKeyPrefix+input.FacultyID, &faculty, ErrFacultyNotFound); err != nil {
		return nil, err
	}

	return &GetFacultyOutput{Faculty: &faculty}, nil
}

// ListFaculty retrieves all faculty ordered by ID
func (r *redisRepository) ListFaculty(ctx context.Context, input *ListFacultyInput) (*ListFacultyOutput, error) {
	ids, err := r.indexMembers(ctx, facultyIndexKey)
	if err != nil {
		return nil, err
	}

	members := make([]*models.Faculty, 0, len(ids))
	for _, id := range ids {
		var faculty models.Faculty
		if err := r.loadJSON(ctx, facultyKeyPrefix+id, &faculty, ErrFacultyNotFound); err != nil {
			return nil, err
		}
		members = append(members, &faculty)
	}

	return &ListFacultyOutput{Faculty: members}, nil
}

// DeleteFaculty removes a faculty member
func (r *redisRepository) DeleteFaculty(ctx context.Context, input *DeleteFacultyInput) (*DeleteFacultyOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.FacultyID == "" {
		return nil, fmt.Errorf("faculty ID is required")
	}

	var faculty models.Faculty
	if err := r.loadJSON(ctx, facultyKeyPrefix+input.FacultyID, &faculty, ErrFacultyNotFound); err == nil {
		if err := r.dropEmailIndex(ctx, faculty.Email); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, ErrFacultyNotFound) {
		return nil, err
	}

	if err := r.client.Del(ctx, facultyKeyPrefix+input.FacultyID).Err(); err != nil {
		return nil, fmt.Errorf("failed to delete faculty member: %w", err)
	}

	if err := r.client.SRem(ctx, facultyIndexKey, input.FacultyID).Err(); err != nil {
		return nil, fmt.Errorf("failed to unindex faculty member: %w", err)
	}

	return &DeleteFacultyOutput{}, nil
}

// SaveAdmin creates or replaces an admin user and indexes their email
func (r *redisRepository) SaveAdmin(ctx context.Context, input *SaveAdminInput) (*SaveAdminOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.Admin == nil || input.Admin.ID == "" {
		return nil, fmt.Errorf("admin with an ID is required")
	}

	var previous models.User
	if err := r.loadJSON(ctx, adminKeyPrefix+input.Admin.ID, &previous, ErrUserNotFound); err == nil {
		if err := r.dropStaleEmail(ctx, previous.Email, input.Admin.Email); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	adminJSON, err := json.Marshal(input.Admin)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal admin: %w", err)
	}

	if err := r.client.Set(ctx, adminKeyPrefix+input.Admin.ID, adminJSON, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to store admin: %w", err)
	}

	if err := r.indexEmail(ctx, input.Admin.Email, input.Admin); err != nil {
		return nil, err
	}

	return &SaveAdminOutput{Admin: input.Admin}, nil
}

// GetUserByEmail resolves a login email to stored identity fields
func (r *redisRepository) GetUserByEmail(ctx context.Context, input *GetUserByEmailInput) (*GetUserByEmailOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.Email == "" {
		return nil, fmt.Errorf("email is required")
	}

	userJSON, err := r.client.Get(ctx, emailKeyPrefix+strings.ToLower(input.Email)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &GetUserByEmailOutput{User: &user}, nil
}

// saveJSON stores a value and adds its ID to an index set
func (r *redisRepository) saveJSON(ctx context.Context, key, indexKey, id string, value any) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, valueJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}

	if err := r.client.SAdd(ctx, indexKey, id).Err(); err != nil {
		return fmt.Errorf("failed to index %s: %w", key, err)
	}

	return nil
}

// loadJSON fetches and unmarshals a value, mapping redis.Nil to notFound
func (r *redisRepository) loadJSON(ctx context.Context, key string, dest any, notFound error) error {
	valueJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return notFound
		}
		return fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(valueJSON), dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return nil
}

// indexMembers returns the members of an index set sorted by ID
func (r *redisRepository) indexMembers(ctx context.Context, indexKey string) ([]string, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index %s: %w", indexKey, err)
	}

	sort.Strings(ids)
	return ids, nil
}

// dropEmailIndex removes an email-to-identity mapping
func (r *redisRepository) dropEmailIndex(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}

	if err := r.client.Del(ctx, emailKeyPrefix+strings.ToLower(email)).Err(); err != nil {
		return fmt.Errorf("failed to drop email index: %w", err)
	}

	return nil
}

// dropStaleEmail removes the old mapping when an entity's email changed
func (r *redisRepository) dropStaleEmail(ctx context.Context, oldEmail, newEmail string) error {
	if oldEmail == "" || strings.EqualFold(oldEmail, newEmail) {
		return nil
	}

	return r.dropEmailIndex(ctx, oldEmail)
}

// indexEmail maps a lowercased email to the owning identity
func (r *redisRepository) indexEmail(ctx context.Context, email string, user *models.User) error {
	if email == "" {
		return nil
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user for email index: %w", err)
	}

	if err := r.client.Set(ctx, emailKeyPrefix+strings.ToLower(email), userJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to index email: %w", err)
	}

	return nil
}
