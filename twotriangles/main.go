//go:build darwin || linux || windows

// Twotriangles draws two orange triangles side by side, each from its own
// vertex array and buffer.
//
//	$ go install github.com/sasidharan-m/OpenGL-Programs/twotriangles && twotriangles
//
// Press Escape to close the window.  The window is configured by an optional
// TOML file:
//
//	$ twotriangles -config window.toml -stats
package main

import (
	"flag"
	"log"
	"os"

	"github.com/sasidharan-m/OpenGL-Programs/glfwapp"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/gl"
)

func main() {
	configPath := flag.String("config", "", "TOML `file` overriding the window configuration")
	stats := flag.Bool("stats", false, "log the mean frame latency every second")
	flag.Parse()
	log.SetOutput(os.Stdout)

	var err error
	cfg, err = glfwapp.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *stats {
		cfg.LogFrameStats = true
	}

	err = glfwapp.Main(cfg, func(a glfwapp.App) error {
		var glctx gl.Context
		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					glctx, _ = e.DrawContext.(gl.Context)
					err := onStart(glctx)
					if err != nil {
						return err
					}
					a.Send(paint.Event{})
				case lifecycle.CrossOff:
					onStop(glctx)
					glctx = nil
				}
			case paint.Event:
				if glctx == nil || e.External {
					continue
				}

				onPaint(glctx)
				a.Publish()
				a.Send(paint.Event{})
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("%v", err)
	}
}
