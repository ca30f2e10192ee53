package glfwapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameStats(t *testing.T) {
	var s frameStats
	start := time.Unix(1700000000, 0)

	for i := 0; i < 59; i++ {
		_, ok := s.frame(start.Add(time.Duration(i) * 16 * time.Millisecond))
		assert.False(t, ok, "frame %d", i)
	}

	latency, ok := s.frame(start.Add(1200 * time.Millisecond))
	assert.True(t, ok)
	assert.Equal(t, 20*time.Millisecond, latency)

	_, ok = s.frame(start.Add(1300 * time.Millisecond))
	assert.False(t, ok, "a new window starts after reporting")
}
