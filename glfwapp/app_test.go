package glfwapp

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sasidharan-m/OpenGL-Programs/gltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/gl"
)

func TestMain(m *testing.M) {
	// The fake windows below have no window system behind them.
	pollEvents = func() {}
	os.Exit(m.Run())
}

// fakeWindow presses Escape, or receives a close request, once a given number
// of frames has been swapped.
type fakeWindow struct {
	mu          sync.Mutex
	width       int
	height      int
	swaps       int
	escapeAfter int
	closeAfter  int
	shouldClose bool
}

func (w *fakeWindow) ShouldClose() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shouldClose || w.closeAfter > 0 && w.swaps >= w.closeAfter
}

func (w *fakeWindow) SetShouldClose(value bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shouldClose = value
}

func (w *fakeWindow) GetKey(key glfw.Key) glfw.Action {
	w.mu.Lock()
	defer w.mu.Unlock()
	if key == glfw.KeyEscape && w.escapeAfter > 0 && w.swaps >= w.escapeAfter {
		return glfw.Press
	}
	return glfw.Release
}

func (w *fakeWindow) GetFramebufferSize() (int, int) {
	return w.width, w.height
}

func (w *fakeWindow) SwapBuffers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.swaps++
}

func (w *fakeWindow) Swaps() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.swaps
}

// fakeWorker never has work; gltest.Context executes calls directly.
type fakeWorker struct{}

func (fakeWorker) WorkAvailable() <-chan struct{} { return nil }
func (fakeWorker) DoWork()                        {}

type loopResult struct {
	starts, stops, paints int
	closedPublish         *PublishResult
}

// paintLoop returns a program that paints continuously, the way the triangle
// programs do.
func paintLoop(glctx *gltest.Context, r *loopResult, onStart func(App)) func(App) error {
	return func(a App) error {
		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					r.starts++
					if onStart != nil {
						onStart(a)
					}
					a.Send(paint.Event{})
				case lifecycle.CrossOff:
					r.stops++
					res := a.Publish()
					r.closedPublish = &res
				}
			case paint.Event:
				r.paints++
				glctx.Clear(gl.COLOR_BUFFER_BIT)
				a.Publish()
				a.Send(paint.Event{})
			}
		}
		return nil
	}
}

func TestEscapeClosesWindow(t *testing.T) {
	glctx := gltest.NewContext()
	win := &fakeWindow{width: 800, height: 600, escapeAfter: 3}
	var r loopResult
	err := newApp(win, glctx, fakeWorker{}, DefaultConfig()).run(paintLoop(glctx, &r, nil))
	require.NoError(t, err)

	assert.Equal(t, 1, r.starts)
	assert.Equal(t, 1, r.stops)
	assert.Equal(t, 3, r.paints)
	assert.Equal(t, 3, glctx.Clears())
	assert.Equal(t, 3, win.Swaps())
	assert.True(t, win.ShouldClose())
	assert.GreaterOrEqual(t, glctx.Flushes(), 3)

	require.NotNil(t, r.closedPublish)
	assert.False(t, r.closedPublish.Presented, "nothing is presented after the window closed")
}

func TestWindowCloseRequest(t *testing.T) {
	glctx := gltest.NewContext()
	win := &fakeWindow{width: 800, height: 600, closeAfter: 2}
	var r loopResult
	err := newApp(win, glctx, fakeWorker{}, DefaultConfig()).run(paintLoop(glctx, &r, nil))
	require.NoError(t, err)

	assert.Equal(t, 2, r.paints)
	assert.Equal(t, 1, r.stops)
	assert.Equal(t, 2, win.Swaps())
}

func TestSizeEventSetsViewport(t *testing.T) {
	glctx := gltest.NewContext()
	win := &fakeWindow{width: 800, height: 600, escapeAfter: 1}
	var r loopResult
	resize := func(a App) {
		a.Send(size.Event{WidthPx: 1024, HeightPx: 768})
	}
	err := newApp(win, glctx, fakeWorker{}, DefaultConfig()).run(paintLoop(glctx, &r, resize))
	require.NoError(t, err)

	assert.Equal(t, [][4]int{{0, 0, 800, 600}, {0, 0, 1024, 768}}, glctx.Viewports())
}

func TestFilterDropsPaintAfterClose(t *testing.T) {
	glctx := gltest.NewContext()
	a := newApp(&fakeWindow{}, glctx, fakeWorker{}, DefaultConfig())
	assert.Equal(t, paint.Event{}, a.Filter(paint.Event{}))

	a.close()
	assert.Nil(t, a.Filter(paint.Event{}))

	a.Send(paint.Event{})
	a.mu.Lock()
	defer a.mu.Unlock()
	require.Len(t, a.queue, 1, "only the closing lifecycle event is queued")
	e, ok := a.queue[0].(lifecycle.Event)
	require.True(t, ok)
	assert.Equal(t, lifecycle.CrossOff, e.Crosses(lifecycle.StageVisible))
}

func TestCloseIsIdempotent(t *testing.T) {
	a := newApp(&fakeWindow{}, gltest.NewContext(), fakeWorker{}, DefaultConfig())
	a.close()
	a.close()
	assert.Len(t, a.queue, 1)
}

func TestRunReturnsProgramError(t *testing.T) {
	glctx := gltest.NewContext()
	win := &fakeWindow{width: 800, height: 600}
	boom := errors.New("error creating GL program")
	a := newApp(win, glctx, fakeWorker{}, DefaultConfig())
	err := a.run(func(App) error { return boom })
	assert.Equal(t, boom, err)
	assert.Zero(t, win.Swaps())

	// Delivery stops once the program has returned.
	for range a.Events() {
	}
}
