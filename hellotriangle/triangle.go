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

	program  gl.Program
	triangle *geometry.Mesh
)

func onStart(glctx gl.Context) error {
	var err error
	version := cfg.GLSLVersion()
	program, err = shader.Build(glctx, version+vertexShader, version+fragmentShader)
	if err != nil {
		return fmt.Errorf("error creating GL program: %w", err)
	}

	triangle, err = geometry.Upload(glctx, triangleVertices, nil)
	if err != nil {
		glctx.DeleteProgram(program)
		return fmt.Errorf("error uploading triangle: %w", err)
	}
	return nil
}

func onStop(glctx gl.Context) {
	glctx.DeleteProgram(program)
	triangle.Release(glctx)
}

func onPaint(glctx gl.Context) {
	c := cfg.ClearColor
	glctx.ClearColor(c[0], c[1], c[2], c[3])
	glctx.Clear(gl.COLOR_BUFFER_BIT)

	triangle.Draw(glctx, program)
}

var triangleVertices = []float32{
	-0.5, -0.5, 0.0, // left
	0.5, -0.5, 0.0, // right
	0.0, 0.5, 0.0, // top
}

// The #version line is prepended from cfg.
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
