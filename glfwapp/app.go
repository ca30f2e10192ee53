/*
Package glfwapp drives golang.org/x/mobile/gl programs from a GLFW window.

It stands in for golang.org/x/mobile/app on desktops that GLFW can open a
window on.  Programs are written against the same event model: a lifecycle
event carrying the gl.Context when the window becomes visible, size events
when the framebuffer changes, and paint events the program sends itself and
answers with Publish.

	glfwapp.Main(cfg, func(a glfwapp.App) error {
		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				...
			case paint.Event:
				onPaint(glctx)
				a.Publish()
				a.Send(paint.Event{})
			}
		}
		return nil
	})

Pressing Escape or asking the window system to close the window ends the
frame loop.  The program receives a final lifecycle event crossing off
StageVisible, after which Filter discards paint events and Events is closed.
*/
package glfwapp

import (
	"log"
	"sync"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/gl"
)

// pollInterval bounds how long window events wait when the program is not
// publishing frames.
const pollInterval = 10 * time.Millisecond

// pollEvents processes pending window system events.  It runs on the thread
// that initialized GLFW.
var pollEvents = glfw.PollEvents

// App is the window as seen by the program running inside Main.
type App interface {
	// Events returns the events delivered to the program.  The channel is
	// closed after the window has closed.
	Events() <-chan interface{}

	// Send queues an event for delivery on Events.  Events sent after the
	// window has closed are dropped.
	Send(event interface{})

	// Filter applies the window's handling of event and returns the event
	// the program should act on, or nil if it should be ignored.
	Filter(event interface{}) interface{}

	// Publish flushes pending GL commands and presents the back buffer.
	Publish() PublishResult
}

// PublishResult is the outcome of App.Publish.
type PublishResult struct {
	// Presented is false if the window had closed and nothing was shown.
	Presented bool
}

// window is the part of *glfw.Window the frame loop uses.
type window interface {
	ShouldClose() bool
	SetShouldClose(value bool)
	GetKey(key glfw.Key) glfw.Action
	GetFramebufferSize() (width, height int)
	SwapBuffers()
}

type state int

const (
	stateRunning state = iota
	stateClosed
)

type app struct {
	win    window
	glctx  gl.Context
	worker gl.Worker
	cfg    Config

	mu    sync.Mutex
	cond  *sync.Cond
	queue []interface{}
	eos   bool
	state state

	events        chan interface{}
	publish       chan struct{}
	publishResult chan PublishResult
	done          chan struct{}

	stats frameStats
}

func newApp(win window, glctx gl.Context, worker gl.Worker, cfg Config) *app {
	a := &app{
		win:           win,
		glctx:         glctx,
		worker:        worker,
		cfg:           cfg,
		events:        make(chan interface{}),
		publish:       make(chan struct{}),
		publishResult: make(chan PublishResult),
		done:          make(chan struct{}),
	}
	a.cond = sync.NewCond(&a.mu)
	return a
}

func (a *app) Events() <-chan interface{} {
	return a.events
}

func (a *app) Send(event interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.eos {
		return
	}
	a.queue = append(a.queue, event)
	a.cond.Signal()
}

func (a *app) Filter(event interface{}) interface{} {
	switch e := event.(type) {
	case paint.Event:
		if a.closed() {
			return nil
		}
	case size.Event:
		a.glctx.Viewport(0, 0, e.WidthPx, e.HeightPx)
	}
	return event
}

func (a *app) Publish() PublishResult {
	// Commands issued by the program must reach the driver before the swap.
	a.glctx.Flush()
	a.publish <- struct{}{}
	return <-a.publishResult
}

func (a *app) closed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state == stateClosed
}

// pump moves queued events onto the unbuffered events channel so that Send
// never blocks, including when it is called by the program's own goroutine.
func (a *app) pump() {
	defer close(a.events)
	for {
		a.mu.Lock()
		for len(a.queue) == 0 && !a.eos {
			a.cond.Wait()
		}
		if len(a.queue) == 0 {
			a.mu.Unlock()
			return
		}
		e := a.queue[0]
		a.queue[0] = nil
		a.queue = a.queue[1:]
		a.mu.Unlock()

		select {
		case a.events <- e:
		case <-a.done:
			return
		}
	}
}

// endStream stops delivery once the queued events are drained.
func (a *app) endStream() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.eos = true
	a.cond.Signal()
}

// close moves the window to its terminal state and delivers the lifecycle
// event that takes the program off screen.
func (a *app) close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == stateClosed {
		return
	}
	a.state = stateClosed
	a.queue = append(a.queue, lifecycle.Event{
		From:        lifecycle.StageFocused,
		To:          lifecycle.StageDead,
		DrawContext: a.glctx,
	})
	a.eos = true
	a.cond.Signal()
}

// run starts f on its own goroutine and services GL work, frame publication
// and window events on the calling goroutine until f returns.  It must be
// called from the thread the GL context is current on.
func (a *app) run(f func(App) error) error {
	a.Send(lifecycle.Event{
		From:        lifecycle.StageDead,
		To:          lifecycle.StageFocused,
		DrawContext: a.glctx,
	})
	width, height := a.win.GetFramebufferSize()
	a.Send(size.Event{WidthPx: width, HeightPx: height, PixelsPerPt: 1})

	errc := make(chan error, 1)
	go a.pump()
	go func() {
		err := f(a)
		a.glctx.Flush()
		close(a.done)
		a.endStream()
		errc <- err
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	workAvailable := a.worker.WorkAvailable()
	for {
		select {
		case <-workAvailable:
			a.worker.DoWork()
		case <-a.publish:
			a.publishResult <- a.present()
		case <-ticker.C:
			a.poll()
		case err := <-errc:
			return err
		}
	}
}

func (a *app) present() PublishResult {
	if a.closed() {
		return PublishResult{}
	}
	a.win.SwapBuffers()
	if a.cfg.LogFrameStats {
		latency, ok := a.stats.frame(time.Now())
		if ok {
			log.Printf("LATENCY=%.03f ms/frame", float64(latency)/float64(time.Millisecond))
		}
	}
	a.poll()
	return PublishResult{Presented: true}
}

// poll processes window events and closes the window when Escape is held or
// the window system asked for it to close.
func (a *app) poll() {
	if a.closed() {
		return
	}
	pollEvents()
	if a.win.GetKey(glfw.KeyEscape) == glfw.Press {
		a.win.SetShouldClose(true)
	}
	if a.win.ShouldClose() {
		log.Printf("window closing")
		a.close()
	}
}
