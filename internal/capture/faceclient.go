package capture

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FaceServiceMatcher calls an external face recognition service with a
// captured frame and returns its best gallery match. The service owns
// the actual recognition algorithm; this client only moves bytes.
type FaceServiceMatcher struct {
	baseURL   string
	threshold float64
	http      *http.Client
}

// FaceServiceConfig holds configuration for the face service client
type FaceServiceConfig struct {
	// BaseURL is the root of the face service API
	BaseURL string

	// Threshold is the minimum similarity accepted as a match
	Threshold float64

	// Timeout bounds each request; face processing can take time
	Timeout time.Duration
}

// NewFaceServiceMatcher creates a matcher backed by the face service
func NewFaceServiceMatcher(cfg *FaceServiceConfig) (*FaceServiceMatcher, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &FaceServiceMatcher{
		baseURL:   cfg.BaseURL,
		threshold: cfg.Threshold,
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Match captures one frame and searches the service's gallery for the
// best-matching enrolled identity
func (m *FaceServiceMatcher) Match(ctx context.Context, source FrameSource) (*Match, error) {
	if source == nil {
		return nil, errors.New("frame source cannot be nil")
	}
	defer source.Close()

	frame, err := source.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to capture frame: %w", err)
	}

	body, err := json.Marshal(map[string]string{
		"image": base64.StdEncoding.EncodeToString(frame),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("face service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("face service error %s: %s", resp.Status, string(respBody))
	}

	var out struct {
		Matches []struct {
			UserID     string  `json:"user_id"`
			Similarity float64 `json:"similarity"`
		} `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode face service response: %w", err)
	}

	if len(out.Matches) == 0 || out.Matches[0].Similarity < m.threshold {
		return nil, ErrNoMatch
	}

	return &Match{
		StudentID:  out.Matches[0].UserID,
		Confidence: out.Matches[0].Similarity,
	}, nil
}
