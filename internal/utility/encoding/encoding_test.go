package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripWindows1252(t *testing.T) {
	original := "café"
	encoded, err := Encode(original, Windows1252)
	require.NoError(t, err)

	decoded, err := Decode(encoded, Windows1252)
	require.NoError(t, err)
	require.Equal(t, original, decoded)
}

func TestRoundTripUTF16LE(t *testing.T) {
	original := "hello world"
	encoded, err := Encode(original, UTF16LE)
	require.NoError(t, err)

	decoded, err := Decode(encoded, UTF16LE)
	require.NoError(t, err)
	require.Equal(t, original, decoded)
}
