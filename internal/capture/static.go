package capture

import (
	"context"
	"errors"
)

// StaticSource serves a single already-captured frame, for flows where
// the client uploads an image instead of streaming a feed
type StaticSource struct {
	frame    Frame
	consumed bool
}

// NewStaticSource wraps one frame as a FrameSource
func NewStaticSource(frame Frame) (*StaticSource, error) {
	if len(frame) == 0 {
		return nil, errors.New("frame cannot be empty")
	}

	return &StaticSource{frame: frame}, nil
}

// Next returns the frame once; further reads report the camera gone
func (s *StaticSource) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.consumed {
		return nil, ErrCameraUnavailable
	}

	s.consumed = true
	return s.frame, nil
}

// Close is a no-op; there is no device to release
func (s *StaticSource) Close() error {
	return nil
}
