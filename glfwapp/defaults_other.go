//go:build !darwin

package glfwapp

// golang.org/x/mobile/gl links against libGLESv2 outside of darwin, so the
// window asks for a matching OpenGL ES context.
func defaultContext() ContextConfig {
	return ContextConfig{API: OpenGLES, Major: 3, Minor: 0}
}
