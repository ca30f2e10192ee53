package glfwapp

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// API selects the client API of the window's context.
type API string

// Client APIs understood by Config.
const (
	OpenGL   API = "opengl"   // desktop OpenGL, core profile
	OpenGLES API = "opengles" // OpenGL ES
)

// ContextConfig describes the GL context requested from GLFW.
type ContextConfig struct {
	API   API `toml:"api"`
	Major int `toml:"major"`
	Minor int `toml:"minor"`
}

// Config describes the window and the frame loop.  The zero value is not
// valid; start from DefaultConfig.
type Config struct {
	Width         int           `toml:"width"`
	Height        int           `toml:"height"`
	Title         string        `toml:"title"`
	Resizable     bool          `toml:"resizable"`
	SwapInterval  int           `toml:"swap_interval"`
	ClearColor    [4]float32    `toml:"clear_color"`
	LogFrameStats bool          `toml:"log_frame_stats"`
	Context       ContextConfig `toml:"context"`
}

// DefaultConfig returns the configuration of the original LearnOpenGL window:
// 800x600, titled "LearnOpenGL", cleared to a dark teal.
func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       600,
		Title:        "LearnOpenGL",
		Resizable:    true,
		SwapInterval: 1,
		ClearColor:   [4]float32{0.2, 0.3, 0.3, 1.0},
		Context:      defaultContext(),
	}
}

// LoadConfig returns DefaultConfig overlaid with the TOML file at path.  An
// empty path returns the defaults.  Keys the file sets that Config does not
// have are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("glfwapp: read config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("glfwapp: unknown keys in %s: %q", path, undecoded)
		}
	}
	err := cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether a window can be created from c and whether its
// context supports the layout-qualified GLSL the programs are written in.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("glfwapp: invalid window size %dx%d", c.Width, c.Height)
	}
	if c.SwapInterval < 0 {
		return fmt.Errorf("glfwapp: invalid swap interval %d", c.SwapInterval)
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("glfwapp: clear color component %d out of range: %v", i, v)
		}
	}
	switch c.Context.API {
	case OpenGL:
		if !c.Context.atLeast(3, 3) {
			return fmt.Errorf("glfwapp: OpenGL %d.%d is older than 3.3", c.Context.Major, c.Context.Minor)
		}
	case OpenGLES:
		if !c.Context.atLeast(3, 0) {
			return fmt.Errorf("glfwapp: OpenGL ES %d.%d is older than 3.0", c.Context.Major, c.Context.Minor)
		}
	default:
		return fmt.Errorf("glfwapp: unknown client API %q", c.Context.API)
	}
	return nil
}

func (c ContextConfig) atLeast(major, minor int) bool {
	if c.Minor < 0 {
		return false
	}
	return c.Major > major || c.Major == major && c.Minor >= minor
}

// GLSLVersion returns the #version directive, newline included, matching the
// configured context.
func (c Config) GLSLVersion() string {
	if c.Context.API == OpenGLES {
		return fmt.Sprintf("#version %d%d0 es\n", c.Context.Major, c.Context.Minor)
	}
	return fmt.Sprintf("#version %d%d0 core\n", c.Context.Major, c.Context.Minor)
}
