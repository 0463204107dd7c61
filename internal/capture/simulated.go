package capture

import (
	"context"
	"errors"
	"time"
)

// SimulatedMatcher stands in for a real recognition backend in
// development: it consumes the feed, waits out a fake processing
// delay, and resolves to a fixed identity. Mirrors the original
// dashboard's timer-driven recognition stub.
type SimulatedMatcher struct {
	studentID  string
	confidence float64
	delay      time.Duration
}

// SimulatedMatcherConfig holds configuration for the simulated matcher
type SimulatedMatcherConfig struct {
	// StudentID is the identity every match resolves to
	StudentID string

	// Confidence is the reported score, defaulting to 0.97
	Confidence float64

	// Delay is the fake processing time before resolving
	Delay time.Duration
}

// NewSimulatedMatcher creates a simulated matcher
func NewSimulatedMatcher(cfg *SimulatedMatcherConfig) (*SimulatedMatcher, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.StudentID == "" {
		return nil, errors.New("student ID is required")
	}

	confidence := cfg.Confidence
	if confidence <= 0 {
		confidence = 0.97
	}

	return &SimulatedMatcher{
		studentID:  cfg.StudentID,
		confidence: confidence,
		delay:      cfg.Delay,
	}, nil
}

// Match resolves to the configured identity after the fake delay,
// releasing the camera on every path
func (m *SimulatedMatcher) Match(ctx context.Context, source FrameSource) (*Match, error) {
	if source == nil {
		return nil, errors.New("frame source cannot be nil")
	}
	defer source.Close()

	// One frame is read so the flow exercises the camera like the real
	// backend would
	if _, err := source.Next(ctx); err != nil {
		return nil, err
	}

	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.delay):
		}
	}

	return &Match{
		StudentID:  m.studentID,
		Confidence: m.confidence,
	}, nil
}
