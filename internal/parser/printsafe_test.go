package parser

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mdt-route/backend/internal/models"
	"github.com/mdt-route/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeForPrint_OutputLength(t *testing.T) {
	tests := []struct {
		symbols int
		want    int
	}{
		{4, 3},
		{8, 6},
		{6, 4},
		{7, 5},
		{5, 3},
		{1, 0},
		{2, 1},
		{3, 2},
	}

	for _, tt := range tests {
		input := bytes.Repeat([]byte("a"), tt.symbols)
		out, err := DecodeForPrint(string(input))
		require.NoError(t, err)
		assert.Len(t, out, tt.want, "%d symbols", tt.symbols)
	}
}

func TestDecodeForPrint_RoundTrip(t *testing.T) {
	for n := 0; n < 64; n++ {
		data := make([]byte, n+1)
		for i := range data {
			data[i] = byte(i*37 + n)
		}
		out, err := DecodeForPrint(testutil.EncodeForPrint(data))
		require.NoError(t, err)
		assert.Equal(t, data, out, "length %d", len(data))
	}
}

func TestDecodeForPrint_KnownGroup(t *testing.T) {
	// "baaa" is 1 + 0*64 + 0*4096 + 0*262144
	out, err := DecodeForPrint("baaa")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0}, out)

	// ')' is the last symbol of the alphabet
	out, err = DecodeForPrint("))))")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF}, out)
}

func TestDecodeForPrint_TrimsWhitespace(t *testing.T) {
	out, err := DecodeForPrint("  \t\r\nbaaa\n\x00 ")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0}, out)
}

func TestDecodeForPrint_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := DecodeForPrint(" \n\t ")
		assert.True(t, errors.Is(err, models.ErrEmptyInput))
	})

	t.Run("invalid symbol in group", func(t *testing.T) {
		_, err := DecodeForPrint("ab!d")
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrInvalidSymbol))

		var de *models.DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, 2, de.Offset)
	})

	t.Run("invalid symbol in tail", func(t *testing.T) {
		_, err := DecodeForPrint("abcda=")
		assert.True(t, errors.Is(err, models.ErrInvalidSymbol))
	})

	t.Run("inner whitespace", func(t *testing.T) {
		_, err := DecodeForPrint("ab cd")
		assert.True(t, errors.Is(err, models.ErrInvalidSymbol))
	})
}
