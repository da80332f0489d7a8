package message_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mailenc/message"
)

func TestGenerateBoundary(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		b := message.GenerateBoundary()
		assert.Len(t, b, message.BoundaryLength)
		assert.True(t, strings.HasPrefix(b, "=_"))
		assert.NotEqual(t, byte(' '), b[len(b)-1])
		assert.True(t, message.ValidBoundary(b), b)
		assert.False(t, seen[b])
		seen[b] = true
	}
}

func TestValidBoundary(t *testing.T) {
	t.Parallel()

	assert.True(t, message.ValidBoundary("simple"))
	assert.True(t, message.ValidBoundary("with space'()+_,-./:=?inside"))
	assert.False(t, message.ValidBoundary(""))
	assert.False(t, message.ValidBoundary("trailing "))
	assert.False(t, message.ValidBoundary("no\"quotes"))
	assert.False(t, message.ValidBoundary("café"))
	assert.False(t, message.ValidBoundary(strings.Repeat("a", 71)))
	assert.True(t, message.ValidBoundary(strings.Repeat("a", 70)))
}
