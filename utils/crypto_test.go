package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secreto123")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", hash)

	assert.True(t, CheckPasswordHash("secreto123", hash))
	assert.False(t, CheckPasswordHash("otra-clave", hash))
}

func TestGenerateQRCode(t *testing.T) {
	png, err := GenerateQRCode("smartpark:reserva:abc:espacio:2:active", 256)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG signature.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
