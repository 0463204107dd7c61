package capture

import (
	"context"
	"errors"
	"fmt"
)

// Scanner runs the continuous decode loop: sample a frame, try to
// decode, repeat until a payload is found or the caller cancels
type Scanner struct {
	decoder Decoder
}

// ScannerConfig holds configuration for the scanner
type ScannerConfig struct {
	Decoder Decoder
}

// NewScanner creates a scanner around a decoder
func NewScanner(cfg *ScannerConfig) (*Scanner, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Decoder == nil {
		return nil, errors.New("decoder cannot be nil")
	}

	return &Scanner{decoder: cfg.Decoder}, nil
}

// Scan samples frames until one decodes to a payload string. Decode
// misses (ErrNoCode) keep the loop running; any other error stops it.
// The source is closed before returning on every path.
func (s *Scanner) Scan(ctx context.Context, source FrameSource) (string, error) {
	if source == nil {
		return "", errors.New("frame source cannot be nil")
	}
	defer source.Close()

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		frame, err := source.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return "", err
			}
			return "", fmt.Errorf("failed to read frame: %w", err)
		}

		payload, err := s.decoder.Decode(frame)
		if err != nil {
			if errors.Is(err, ErrNoCode) {
				continue
			}
			return "", fmt.Errorf("decoder failed: %w", err)
		}

		return payload, nil
	}
}
