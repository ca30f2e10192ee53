package main

import (
	"testing"

	"github.com/sasidharan-m/OpenGL-Programs/glfwapp"
	"github.com/sasidharan-m/OpenGL-Programs/gltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/gl"
)

func TestTriangleFrame(t *testing.T) {
	for _, ctx := range []glfwapp.ContextConfig{
		{API: glfwapp.OpenGL, Major: 3, Minor: 3},
		{API: glfwapp.OpenGLES, Major: 3, Minor: 0},
	} {
		cfg = glfwapp.DefaultConfig()
		cfg.Context = ctx
		glctx := gltest.NewContext()
		require.NoError(t, onStart(glctx), "%s", ctx.API)
		assert.Zero(t, glctx.LiveShaders())

		onPaint(glctx)
		onPaint(glctx)
		assert.Equal(t, 2, glctx.Clears())
		draws := glctx.Draws()
		require.Len(t, draws, 2)
		for _, d := range draws {
			assert.False(t, d.Indexed())
			assert.Equal(t, gl.Enum(gl.TRIANGLES), d.Mode)
			assert.Equal(t, 3, d.Count)
			assert.Equal(t, program, d.Program)
		}

		onStop(glctx)
		assert.Zero(t, glctx.LivePrograms())
		assert.Zero(t, glctx.LiveBuffers())
		assert.Zero(t, glctx.LiveVertexArrays())
	}
}

func TestTriangleCompileFailure(t *testing.T) {
	cfg = glfwapp.DefaultConfig()
	glctx := gltest.NewContext()
	glctx.Compile = func(ty gl.Enum, src string) (bool, string) {
		return ty != gl.VERTEX_SHADER, "0:2(1): error: syntax error"
	}
	err := onStart(glctx)
	assert.ErrorContains(t, err, "error creating GL program")
	assert.Zero(t, glctx.LiveShaders())
	assert.Zero(t, glctx.LivePrograms())
	assert.Zero(t, glctx.LiveBuffers())
}
