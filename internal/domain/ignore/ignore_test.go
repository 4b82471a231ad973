package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher(t *testing.T) {
	m := NewMatcher([]*IgnoreInterface{
		{URI: "/api/health"},
		{URI: "/api/internal/*"},
		{URI: "  "},
	})

	assert.Equal(t, 2, m.Len())
	assert.True(t, m.Matches("/api/health"))
	assert.True(t, m.Matches("/api/internal/metrics"))
	assert.False(t, m.Matches("/api/internal/a/b"))
	assert.False(t, m.Matches("/api/healthz"))
	assert.False(t, m.Matches("/api/users"))

	var empty *Matcher
	assert.False(t, empty.Matches("/api/health"))
}
