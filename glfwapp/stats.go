package glfwapp

import "time"

// frameStats averages the time between presented frames over one second
// windows.
type frameStats struct {
	frames int
	since  time.Time
}

// frame records a frame presented at now.  Once a second has passed since the
// window opened it returns the mean frame latency and starts a new window.
func (s *frameStats) frame(now time.Time) (time.Duration, bool) {
	if s.since.IsZero() {
		s.since = now
	}
	s.frames++
	elapsed := now.Sub(s.since)
	if elapsed < time.Second {
		return 0, false
	}
	latency := elapsed / time.Duration(s.frames)
	s.frames = 0
	s.since = now
	return latency, true
}
