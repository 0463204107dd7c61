package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/attendify/attendify/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix   = "attendance_session:"
	classSessionPrefix = "class_active_session:"
	attendeesKeyPrefix = "session_attendees:"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// ErrActiveSessionExists is returned when the class already has an
// active session
var ErrActiveSessionExists = errors.New("class already has an active session")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
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

// CreateSession stores a new session and claims the class's
// active-session slot. The SetNX claim enforces at most one active
// session per class.
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.Session == nil {
		return nil, fmt.Errorf("session is required")
	}

	if input.Session.ID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	if input.Session.ClassID == "" {
		return nil, fmt.Errorf("class ID is required")
	}

	classKey := classSessionPrefix + input.Session.ClassID
	claimed, err := r.client.SetNX(ctx, classKey, input.Session.ID, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to claim active session slot: %w", err)
	}
	if !claimed {
		return nil, ErrActiveSessionExists
	}

	if err := r.saveSession(ctx, input.Session); err != nil {
		// Release the slot so the class is not wedged
		r.client.Del(ctx, classKey)
		return nil, err
	}

	return &CreateSessionOutput{
		Session: input.Session,
	}, nil
}

// GetSession retrieves a session by ID
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.SessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	session, err := r.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{
		Session: session,
	}, nil
}

// GetActiveSession retrieves the active session for a class
func (r *redisRepository) GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*GetActiveSessionOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.ClassID == "" {
		return nil, fmt.Errorf("class ID is required")
	}

	sessionID, err := r.client.Get(ctx, classSessionPrefix+input.ClassID).Result()
	if err != nil {
		if err == redis.Nil {
			// No active session for this class
			return &GetActiveSessionOutput{
				Session: nil,
			}, nil
		}
		return nil, fmt.Errorf("failed to get active session ID: %w", err)
	}

	session, err := r.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &GetActiveSessionOutput{
		Session: session,
	}, nil
}

// AddAttendee adds a student to the session's attendee set
func (r *redisRepository) AddAttendee(ctx context.Context, input *AddAttendeeInput) (*AddAttendeeOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.SessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	if input.StudentID == "" {
		return nil, fmt.Errorf("student ID is required")
	}

	// Make sure the session exists before touching the set
	if _, err := r.loadSession(ctx, input.SessionID); err != nil {
		return nil, err
	}

	added, err := r.client.SAdd(ctx, attendeesKeyPrefix+input.SessionID, input.StudentID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to add attendee: %w", err)
	}

	return &AddAttendeeOutput{
		Added: added > 0,
	}, nil
}

// RemoveAttendee takes a student back out of the attendee set
func (r *redisRepository) RemoveAttendee(ctx context.Context, input *RemoveAttendeeInput) (*RemoveAttendeeOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.SessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	if input.StudentID == "" {
		return nil, fmt.Errorf("student ID is required")
	}

	removed, err := r.client.SRem(ctx, attendeesKeyPrefix+input.SessionID, input.StudentID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to remove attendee: %w", err)
	}

	return &RemoveAttendeeOutput{
		Removed: removed > 0,
	}, nil
}

// EndSession deactivates the session and clears the class pointer
func (r *redisRepository) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	if input.SessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	session, err := r.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	session.Active = false
	session.EndTime = input.EndTime

	if err := r.saveSession(ctx, session); err != nil {
		return nil, err
	}

	// Clear the pointer only if it still points at this session
	classKey := classSessionPrefix + session.ClassID
	currentID, err := r.client.Get(ctx, classKey).Result()
	if err == nil && currentID == session.ID {
		if err := r.client.Del(ctx, classKey).Err(); err != nil {
			return nil, fmt.Errorf("failed to clear active session pointer: %w", err)
		}
	}

	return &EndSessionOutput{
		Session: session,
	}, nil
}

// saveSession serializes and stores the session fields. Attendees live
// in their own set and are not part of the JSON value.
func (r *redisRepository) saveSession(ctx context.Context, session *models.Session) error {
	stored := *session
	stored.Attendees = nil

	sessionJSON, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	err = r.client.Set(ctx, sessionKeyPrefix+session.ID, sessionJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// loadSession fetches the session JSON and rehydrates the attendee set
func (r *redisRepository) loadSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sessionJSON, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	attendees, err := r.client.SMembers(ctx, attendeesKeyPrefix+sessionID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get attendees: %w", err)
	}

	// Set membership is unordered; sort for stable output
	sort.Strings(attendees)
	session.Attendees = attendees

	return &session, nil
}
