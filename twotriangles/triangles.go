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

	program   gl.Program
	triangles []*geometry.Mesh
)

func onStart(glctx gl.Context) error {
	var err error
	version := cfg.GLSLVersion()
	program, err = shader.Build(glctx, version+vertexShader, version+fragmentShader)
	if err != nil {
		return fmt.Errorf("error creating GL program: %w", err)
	}

	for i, vertices := range [][]float32{firstTriangle, secondTriangle} {
		m, err := geometry.Upload(glctx, vertices, nil)
		if err != nil {
			onStop(glctx)
			return fmt.Errorf("error uploading triangle %d: %w", i, err)
		}
		triangles = append(triangles, m)
	}
	return nil
}

func onStop(glctx gl.Context) {
	glctx.DeleteProgram(program)
	for _, m := range triangles {
		m.Release(glctx)
	}
	triangles = nil
}

func onPaint(glctx gl.Context) {
	c := cfg.ClearColor
	glctx.ClearColor(c[0], c[1], c[2], c[3])
	glctx.Clear(gl.COLOR_BUFFER_BIT)

	for _, m := range triangles {
		m.Draw(glctx, program)
	}
}

var firstTriangle = []float32{
	-0.9, -0.5, 0.0, // left
	0.0, -0.5, 0.0, // right
	-0.45, 0.5, 0.0, // top
}

var secondTriangle = []float32{
	0.0, -0.5, 0.0, // left
	0.9, -0.5, 0.0, // right
	0.45, 0.5, 0.0, // top
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
