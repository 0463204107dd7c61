package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/attendify/attendify/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	recordKeyPrefix  = "attendance_record:"
	allRecordsKey    = "attendance_records"
	studentKeyPrefix = "student_records:"
	classKeyPrefix   = "class_records:"
	sessionKeyPrefix = "session_records:"
	slotKeyPrefix    = "record_slot:"
)

// ErrRecordNotFound is returned when a record is not found
var ErrRecordNotFound = errors.New("attendance record not found")

// ErrDuplicateRecord is returned when a record already exists for the
// (student, session) pair
var ErrDuplicateRecord = errors.New("attendance record already exists for student and session")

// Config holds configuration for the Redis record repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed record repository
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

// CreateRecord appends a record to the ledger. A SetNX slot key keyed
// by (session, student) makes the uniqueness invariant hold even under
// racing callers.
func (r *redisRepository) CreateRecord(ctx context.Context, input *CreateRecordInput) (*CreateRecordOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	rec := input.Record
	if rec == nil {
		return nil, fmt.Errorf("record is required")
	}

	if rec.ID == "" {
		return nil, fmt.Errorf("record ID is required")
	}

	if rec.StudentID == "" || rec.SessionID == "" {
		return nil, fmt.Errorf("student ID and session ID are required")
	}

	slotKey := slotKeyPrefix + rec.SessionID + ":" + rec.StudentID
	claimed, err := r.client.SetNX(ctx, slotKey, rec.ID, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to claim record slot: %w", err)
	}
	if !claimed {
		return nil, ErrDuplicateRecord
	}

	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	err = r.client.Set(ctx, recordKeyPrefix+rec.ID, recordJSON, 0).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to store record: %w", err)
	}

	// Index lists preserve insertion order; the slot key guarantees no
	// duplicate entries ever reach them
	for _, key := range []string{
		allRecordsKey,
		studentKeyPrefix + rec.StudentID,
		classKeyPrefix + rec.ClassID,
		sessionKeyPrefix + rec.SessionID,
	} {
		if err := r.client.RPush(ctx, key, rec.ID).Err(); err != nil {
			return nil, fmt.Errorf("failed to index record: %w", err)
		}
	}

	return &CreateRecordOutput{
		Record: rec,
	}, nil
}

// GetRecord retrieves a record by ID
func (r *redisRepository) GetRecord(ctx context.Context, input *GetRecordInput) (*GetRecordOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.RecordID == "" {
		return nil, fmt.Errorf("record ID is required")
	}

	rec, err := r.loadRecord(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	return &GetRecordOutput{
		Record: rec,
	}, nil
}

// ListRecords retrieves the full ledger in insertion order
func (r *redisRepository) ListRecords(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error) {
	records, err := r.loadIndex(ctx, allRecordsKey)
	if err != nil {
		return nil, err
	}

	return &ListRecordsOutput{
		Records: records,
	}, nil
}

// GetRecordsForStudent retrieves a student's records
func (r *redisRepository) GetRecordsForStudent(ctx context.Context, input *GetRecordsForStudentInput) (*GetRecordsForStudentOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.StudentID == "" {
		return nil, fmt.Errorf("student ID is required")
	}

	records, err := r.loadIndex(ctx, studentKeyPrefix+input.StudentID)
	if err != nil {
		return nil, err
	}

	return &GetRecordsForStudentOutput{
		Records: records,
	}, nil
}

// GetRecordsForClass retrieves a class's records
func (r *redisRepository) GetRecordsForClass(ctx context.Context, input *GetRecordsForClassInput) (*GetRecordsForClassOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.ClassID == "" {
		return nil, fmt.Errorf("class ID is required")
	}

	records, err := r.loadIndex(ctx, classKeyPrefix+input.ClassID)
	if err != nil {
		return nil, err
	}

	return &GetRecordsForClassOutput{
		Records: records,
	}, nil
}

// GetRecordsForSession retrieves a session's records
func (r *redisRepository) GetRecordsForSession(ctx context.Context, input *GetRecordsForSessionInput) (*GetRecordsForSessionOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.SessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	records, err := r.loadIndex(ctx, sessionKeyPrefix+input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetRecordsForSessionOutput{
		Records: records,
	}, nil
}

// loadRecord fetches and unmarshals a single record
func (r *redisRepository) loadRecord(ctx context.Context, recordID string) (*models.AttendanceRecord, error) {
	recordJSON, err := r.client.Get(ctx, recordKeyPrefix+recordID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	var rec models.AttendanceRecord
	if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &rec, nil
}

// loadIndex fetches every record named by an index list
func (r *redisRepository) loadIndex(ctx context.Context, key string) ([]*models.AttendanceRecord, error) {
	ids, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read record index: %w", err)
	}

	records := make([]*models.AttendanceRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := r.loadRecord(ctx, id)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}
