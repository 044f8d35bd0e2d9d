package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashIsDeterministicPerSalt(t *testing.T) {
	h := NewSHA256Hasher("salt-a")

	first, err := h.Hash("123456")
	require.NoError(t, err)
	second, err := h.Hash("123456")
	require.NoError(t, err)
	require.Equal(t, first, second)

	other, err := NewSHA256Hasher("salt-b").Hash("123456")
	require.NoError(t, err)
	require.NotEqual(t, first, other)

	different, err := h.Hash("654321")
	require.NoError(t, err)
	require.NotEqual(t, first, different)
}
