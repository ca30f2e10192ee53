//go:build darwin || linux || windows

package glfwapp

import (
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/gl"
)

func init() {
	// GLFW must be used from the main thread.
	runtime.LockOSThread()
}

// Main opens a window described by cfg, makes its GL context current and calls
// f on a separate goroutine.  Main returns the error returned by f once f has
// returned.  It must be called from the main goroutine.
func Main(cfg Config, f func(a App) error) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}

	err = glfw.Init()
	if err != nil {
		return fmt.Errorf("glfwapp: initialize GLFW: %w", err)
	}
	defer glfw.Terminate()

	hint(cfg)
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("glfwapp: create window: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	glfw.SwapInterval(cfg.SwapInterval)

	glctx, worker := gl.NewContext()
	version, err := checkContext(glctx, worker)
	if err != nil {
		return err
	}
	log.Printf("GL_VERSION=%s", version)

	a := newApp(win, glctx, worker, cfg)
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		a.Send(size.Event{WidthPx: width, HeightPx: height, PixelsPerPt: 1})
	})
	return a.run(f)
}

func hint(cfg Config) {
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.Context.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.Context.Minor)
	if cfg.Context.API == OpenGLES {
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	} else {
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	resizable := glfw.False
	if cfg.Resizable {
		resizable = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizable)
}
