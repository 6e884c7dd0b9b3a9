package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscodeDisplay(t *testing.T) {
	t.Run("ASCII text interleaves NUL escapes", func(t *testing.T) {
		got, err := transcodeDisplay("Dupont")

		require.NoError(t, err)
		assert.Equal(t, `D\x00u\x00p\x00o\x00n\x00t\x00`, got)
	})

	t.Run("accented characters become hex escapes", func(t *testing.T) {
		got, err := transcodeDisplay("é")

		require.NoError(t, err)
		assert.Equal(t, `\xe9\x00`, got)
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		got, err := transcodeDisplay("")

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("backslash is escaped", func(t *testing.T) {
		got, err := transcodeDisplay(`a\b`)

		require.NoError(t, err)
		assert.Equal(t, `a\x00\\\x00b\x00`, got)
	})
}
