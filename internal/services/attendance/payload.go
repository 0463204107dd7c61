package attendance

import (
	"encoding/json"
)

// CheckInPayload is the structure encoded into the QR code. It is
// honored only while its session is active.
type CheckInPayload struct {
	// SessionID identifies the session accepting check-ins
	SessionID string `json:"sessionId"`

	// ClassID identifies the class the session belongs to
	ClassID string `json:"classId"`

	// Timestamp is the issuance time in Unix milliseconds
	Timestamp int64 `json:"timestamp"`
}

// EncodePayload serializes a payload for rendering as a QR code
func EncodePayload(p *CheckInPayload) (string, error) {
	if p == nil || p.SessionID == "" || p.ClassID == "" {
		return "", ErrInvalidPayload
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", ErrInvalidPayload
	}

	return string(data), nil
}

// DecodePayload parses a scanned payload string. Anything that does
// not carry both a session ID and a class ID is rejected.
func DecodePayload(s string) (*CheckInPayload, error) {
	var p CheckInPayload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return nil, ErrInvalidPayload
	}

	if p.SessionID == "" || p.ClassID == "" {
		return nil, ErrInvalidPayload
	}

	return &p, nil
}
