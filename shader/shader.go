/*
Package shader compiles and links the two-stage GL programs used by the
triangle programs.

Build owns every shader object it creates and releases them before it returns,
whether the build succeeded or not.  A failed build never yields a usable
program; the caller receives the zero gl.Program and an error carrying the
driver's diagnostic.

	program, err := shader.Build(glctx, vertexShader, fragmentShader)
	if err != nil {
		return fmt.Errorf("error creating GL program: %w", err)
	}
	defer glctx.DeleteProgram(program)
*/
package shader

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mobile/gl"
)

// infoLogSize is the size of the buffer diagnostics are read into, terminator
// included.
const infoLogSize = 1024

// ErrEmptySource is returned when a stage is given no source text.
var ErrEmptySource = errors.New("shader: empty source")

// Stage identifies a programmable pipeline stage.
type Stage int

// Pipeline stages used by Build.
const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

func (s Stage) enum() gl.Enum {
	if s == Fragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// CompileError is returned when the driver rejects the source of a stage.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: %v shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError is returned when the compiled stages cannot be linked.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader: program link failed: %s", e.Log)
}

// Build compiles vertexSrc and fragmentSrc and links them into a program.  The
// program is returned only if both stages compiled and the link succeeded.
func Build(glctx gl.Context, vertexSrc, fragmentSrc string) (gl.Program, error) {
	vs, err := compile(glctx, Vertex, vertexSrc)
	if err != nil {
		return gl.Program{}, err
	}
	defer glctx.DeleteShader(vs)

	fs, err := compile(glctx, Fragment, fragmentSrc)
	if err != nil {
		return gl.Program{}, err
	}
	defer glctx.DeleteShader(fs)

	return link(glctx, vs, fs)
}

func compile(glctx gl.Context, stage Stage, src string) (gl.Shader, error) {
	if strings.TrimSpace(src) == "" {
		return gl.Shader{}, fmt.Errorf("%w for %v stage", ErrEmptySource, stage)
	}
	s := glctx.CreateShader(stage.enum())
	if s.Value == 0 {
		return gl.Shader{}, fmt.Errorf("shader: could not create %v shader", stage)
	}
	glctx.ShaderSource(s, src)
	glctx.CompileShader(s)
	if glctx.GetShaderi(s, gl.COMPILE_STATUS) == 0 {
		log := infoLog(glctx.GetShaderInfoLog(s))
		glctx.DeleteShader(s)
		return gl.Shader{}, &CompileError{Stage: stage, Log: log}
	}
	return s, nil
}

func link(glctx gl.Context, vs, fs gl.Shader) (gl.Program, error) {
	program := glctx.CreateProgram()
	if program.Value == 0 {
		return gl.Program{}, fmt.Errorf("shader: no programs available")
	}
	glctx.AttachShader(program, vs)
	glctx.AttachShader(program, fs)
	glctx.LinkProgram(program)

	// Detached shaders are freed as soon as the caller deletes them.
	glctx.DetachShader(program, vs)
	glctx.DetachShader(program, fs)

	if glctx.GetProgrami(program, gl.LINK_STATUS) == 0 {
		log := infoLog(glctx.GetProgramInfoLog(program))
		glctx.DeleteProgram(program)
		return gl.Program{}, &LinkError{Log: log}
	}
	return program, nil
}

// infoLog trims a driver log the way a fixed infoLogSize buffer would.
func infoLog(s string) string {
	s = strings.TrimRight(s, "\x00")
	if len(s) > infoLogSize-1 {
		s = s[:infoLogSize-1]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "no diagnostic available"
	}
	return s
}
