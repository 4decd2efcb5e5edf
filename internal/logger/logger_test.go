package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	t.Run("valid level", func(t *testing.T) {
		err := Initialize("info")
		assert.NoError(t, err)
		assert.NotNil(t, Log)
	})

	t.Run("debug level", func(t *testing.T) {
		err := Initialize("debug")
		assert.NoError(t, err)
		assert.NotNil(t, Log)
	})

	t.Run("invalid level", func(t *testing.T) {
		err := Initialize("not-a-level")
		assert.Error(t, err)
	})
}
