package main

import (
	"encoding/binary"
	"testing"

	"github.com/sasidharan-m/OpenGL-Programs/glfwapp"
	"github.com/sasidharan-m/OpenGL-Programs/gltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/gl"
)

func TestQuadFrame(t *testing.T) {
	cfg = glfwapp.DefaultConfig()
	glctx := gltest.NewContext()
	require.NoError(t, onStart(glctx))

	onPaint(glctx)
	draws := glctx.Draws()
	require.Len(t, draws, 1)
	d := draws[0]
	assert.True(t, d.Indexed())
	assert.Equal(t, 6, d.Count)
	assert.Equal(t, gl.Enum(gl.UNSIGNED_INT), d.Type)
	assert.Equal(t, program, d.Program)

	ebo, ok := glctx.Buffer(d.ElementBuffer)
	require.True(t, ok)
	var indices []uint32
	for i := 0; i < len(ebo.Data); i += 4 {
		indices = append(indices, binary.LittleEndian.Uint32(ebo.Data[i:]))
	}
	assert.Equal(t, []uint32{0, 1, 3, 1, 2, 3}, indices)

	vbo, ok := glctx.Buffer(d.ArrayBuffer)
	require.True(t, ok)
	assert.Len(t, vbo.Data, 4*3*4, "four shared vertices")

	onStop(glctx)
	assert.Zero(t, glctx.LivePrograms())
	assert.Zero(t, glctx.LiveBuffers())
	assert.Zero(t, glctx.LiveVertexArrays())
}

func TestQuadLinkFailure(t *testing.T) {
	cfg = glfwapp.DefaultConfig()
	glctx := gltest.NewContext()
	glctx.LinkLog = "error: linking with uncompiled shader"
	err := onStart(glctx)
	assert.ErrorContains(t, err, glctx.LinkLog)
	assert.Zero(t, glctx.LivePrograms())
	assert.Zero(t, glctx.LiveBuffers())
}
