package glfwapp

import (
	"testing"

	"github.com/sasidharan-m/OpenGL-Programs/gltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// busyWorker always reports pending work.
type busyWorker struct {
	work chan struct{}
	done int
}

func newBusyWorker() *busyWorker {
	w := &busyWorker{work: make(chan struct{})}
	close(w.work)
	return w
}

func (w *busyWorker) WorkAvailable() <-chan struct{} { return w.work }
func (w *busyWorker) DoWork()                        { w.done++ }

func TestCheckContext(t *testing.T) {
	glctx := gltest.NewContext()
	version, err := checkContext(glctx, newBusyWorker())
	require.NoError(t, err)
	assert.Equal(t, glctx.Version, version)
}

func TestCheckContextNoVersion(t *testing.T) {
	glctx := gltest.NewContext()
	glctx.Version = ""
	_, err := checkContext(glctx, fakeWorker{})
	assert.Equal(t, ErrNoContext, err)
}
