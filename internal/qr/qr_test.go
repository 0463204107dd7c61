package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(`{"sessionId":"sess-1","classId":"CS101","timestamp":1756720800000}`, 0)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG signature
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestRenderPNGRequiresPayload(t *testing.T) {
	_, err := RenderPNG("", 256)
	assert.Error(t, err)
}
