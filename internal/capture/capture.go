// Package capture translates live camera feeds into check-in events.
// The concrete recognition backends are pluggable; the ledger never
// sees anything below this boundary.
package capture

import (
	"context"
	"errors"
)

// Frame is one captured camera image, encoded as the backend expects
// (typically JPEG).
type Frame []byte

// ErrCameraUnavailable is returned when the device cannot be acquired:
// permission denied or no camera present. It terminates the capture
// flow but never touches the ledger.
var ErrCameraUnavailable = errors.New("camera unavailable")

// ErrNoCode is the expected per-frame decode miss during continuous
// scanning. It is noise, not a failure, and must never surface to the
// user.
var ErrNoCode = errors.New("no code found in frame")

// ErrNoMatch is returned when no enrolled identity clears the
// acceptance threshold.
var ErrNoMatch = errors.New("no enrolled identity matched")

// FrameSource is a scoped camera acquisition. Close stops all tracks
// and releases the device; it must run on every exit path, including
// cancellation.
type FrameSource interface {
	// Next blocks until the next frame is available
	Next(ctx context.Context) (Frame, error)

	// Close releases the camera. Safe to call more than once.
	Close() error
}

// Decoder extracts a check-in payload string from a single frame,
// returning ErrNoCode when the frame holds none.
type Decoder interface {
	Decode(frame Frame) (string, error)
}

// Match is an identity candidate produced by a face-match backend
type Match struct {
	// StudentID is the matched enrolled identity
	StudentID string

	// Confidence is the backend's similarity score in [0, 1]
	Confidence float64
}

// Matcher resolves a camera feed to the single best-matching enrolled
// identity above the configured acceptance threshold
type Matcher interface {
	Match(ctx context.Context, source FrameSource) (*Match, error)
}

//go:generate mockgen -package=mocks -destination=mocks/mock_matcher.go github.com/attendify/attendify/internal/capture Matcher
