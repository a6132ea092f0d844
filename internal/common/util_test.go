package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandByteArray_Basic(t *testing.T) {
	buf, err := GenerateRandByteArray(24)
	require.NoError(t, err)
	assert.Len(t, buf, 24)
}

func TestGenerateRandByteArray_ZeroSize(t *testing.T) {
	buf, err := GenerateRandByteArray(0)
	require.NoError(t, err)
	assert.Empty(t, buf)
}

func TestGenerateRandByteArray_Differs(t *testing.T) {
	a, err := GenerateRandByteArray(32)
	require.NoError(t, err)
	b, err := GenerateRandByteArray(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
