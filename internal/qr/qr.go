// Package qr renders check-in payloads as scannable codes.
package qr

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the rendered image edge in pixels
const DefaultSize = 256

// RenderPNG encodes a check-in payload string as a QR code PNG. The
// payload must round-trip through any standards-compliant decoder
// unchanged.
func RenderPNG(payload string, size int) ([]byte, error) {
	if payload == "" {
		return nil, errors.New("payload is required")
	}

	if size <= 0 {
		size = DefaultSize
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return png, nil
}
