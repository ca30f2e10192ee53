package main

import (
	"fmt"

	"github.com/sasidharan-m/OpenGL-Programs/geometry"
	"github.com/sasidharan-m/OpenGL-Programs/glfwapp"
	"github.com/sasidharan-m/OpenGL-Programs/shader"
	"golang.org/x/mobile/gl"
)

var (
	cfg = glfwapp.DefaultConfig()

	program gl.Program
	quad    *geometry.Mesh
)

func onStart(glctx gl.Context) error {
	var err error
	version := cfg.GLSLVersion()
	program, err = shader.Build(glctx, version+vertexShader, version+fragmentShader)
	if err != nil {
		return fmt.Errorf("error creating GL program: %w", err)
	}

	quad, err = geometry.Upload(glctx, quadVertices, quadIndices)
	if err != nil {
		glctx.DeleteProgram(program)
		return fmt.Errorf("error uploading rectangle: %w", err)
	}
	return nil
}

func onStop(glctx gl.Context) {
	glctx.DeleteProgram(program)
	quad.Release(glctx)
}

func onPaint(glctx gl.Context) {
	c := cfg.ClearColor
	glctx.ClearColor(c[0], c[1], c[2], c[3])
	glctx.Clear(gl.COLOR_BUFFER_BIT)

	quad.Draw(glctx, program)
}

var quadVertices = []float32{
	0.5, 0.5, 0.0, // top right
	0.5, -0.5, 0.0, // bottom right
	-0.5, -0.5, 0.0, // bottom left
	-0.5, 0.5, 0.0, // top left
}

// Indices start at zero.
var quadIndices = []uint32{
	0, 1, 3, // first triangle
	1, 2, 3, // second triangle
}

const vertexShader = `
layout (location = 0) in vec3 aPos;
void main()
{
	gl_Position = vec4(aPos.x, aPos.y, aPos.z, 1.0);
}`

const fragmentShader = `
precision mediump float;
out vec4 FragColor;
void main()
{
	FragColor = vec4(1.0, 0.5, 0.2, 1.0);
}`
