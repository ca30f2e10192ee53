package glfwapp

// macOS has no OpenGL ES contexts, only the forward-compatible core profile.
func defaultContext() ContextConfig {
	return ContextConfig{API: OpenGL, Major: 3, Minor: 3}
}
