package glfwapp

import (
	"errors"

	"golang.org/x/mobile/gl"
)

// ErrNoContext is returned by Main when the window's GL context does not
// answer queries, typically because no driver provides the requested API.
var ErrNoContext = errors.New("glfwapp: GL context unavailable")

// checkContext queries the version string of glctx, servicing worker until the
// answer arrives.  It must be called from the thread the context is current
// on.
func checkContext(glctx gl.Context, worker gl.Worker) (version string, err error) {
	result := make(chan string, 1)
	go func() {
		result <- glctx.GetString(gl.VERSION)
	}()
	workAvailable := worker.WorkAvailable()
	for {
		select {
		case <-workAvailable:
			worker.DoWork()
		case version = <-result:
			if version == "" {
				return "", ErrNoContext
			}
			return version, nil
		}
	}
}
