/*
Package gltest provides a recording gl.Context for testing code written against
golang.org/x/mobile/gl without a GPU or a window.

Only the calls made by the programs in this repository are implemented.  Any
other gl.Context method panics, which is the desired outcome in a test.

	glctx := gltest.NewContext()
	program, err := shader.Build(glctx, vertexSrc, fragmentSrc)
	...
	if n := glctx.LiveShaders(); n != 0 {
		t.Errorf("%d shaders leaked", n)
	}
*/
package gltest

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/mobile/gl"
)

// CompileFunc decides the outcome of compiling src as a shader of type ty.
type CompileFunc func(ty gl.Enum, src string) (ok bool, log string)

// Context is a fake gl.Context.  It is safe for concurrent use.
type Context struct {
	gl.Context // nil; unimplemented methods panic

	// Compile overrides the default source checker when non-nil.
	Compile CompileFunc

	// LinkLog, when non-empty, makes every link fail with the given log.
	LinkLog string

	// Version is returned for GetString(gl.VERSION).
	Version string

	// NoHandles makes CreateShader and CreateProgram return zero handles.
	NoHandles bool

	mu           sync.Mutex
	next         uint32
	shaders      map[uint32]*ShaderState
	programs     map[uint32]*ProgramState
	buffers      map[uint32]*BufferState
	vertexArrays map[uint32]*VertexArrayState
	arrayBuffer  gl.Buffer
	vertexArray  gl.VertexArray
	program      gl.Program
	draws        []Draw
	viewports    [][4]int
	clears       int
	flushes      int
}

// ShaderState is the recorded state of a shader object.
type ShaderState struct {
	Type     gl.Enum
	Source   string
	Compiled bool
	Log      string
	Deleted  bool
}

// ProgramState is the recorded state of a program object.
type ProgramState struct {
	Attached []gl.Shader
	Linked   bool
	Log      string
	Deleted  bool
}

// BufferState is the recorded state of a buffer object.
type BufferState struct {
	Target  gl.Enum
	Data    []byte
	Usage   gl.Enum
	Deleted bool
}

// VertexArrayState is the recorded state of a vertex array object.
type VertexArrayState struct {
	Attribs       map[uint]Attrib
	ElementBuffer gl.Buffer
	Deleted       bool
}

// Attrib describes a vertex attribute pointer recorded in a vertex array.
type Attrib struct {
	Buffer     gl.Buffer
	Size       int
	Type       gl.Enum
	Normalized bool
	Stride     int
	Offset     int
	Enabled    bool
}

// Draw is one recorded draw call with the state bound when it was issued.
type Draw struct {
	Mode          gl.Enum
	First         int
	Count         int
	Type          gl.Enum // index type, zero for DrawArrays
	Offset        int
	Program       gl.Program
	VertexArray   gl.VertexArray
	ArrayBuffer   gl.Buffer // buffer feeding attribute 0
	ElementBuffer gl.Buffer
}

// Indexed reports whether d was issued with DrawElements.
func (d Draw) Indexed() bool {
	return d.Type != 0
}

// NewContext returns an empty fake context.
func NewContext() *Context {
	return &Context{
		Version:      "OpenGL ES 3.0 gltest",
		shaders:      map[uint32]*ShaderState{},
		programs:     map[uint32]*ProgramState{},
		buffers:      map[uint32]*BufferState{},
		vertexArrays: map[uint32]*VertexArrayState{},
	}
}

func (c *Context) handle() uint32 {
	c.next++
	return c.next
}

func (c *Context) CreateShader(ty gl.Enum) gl.Shader {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.NoHandles {
		return gl.Shader{}
	}
	s := gl.Shader{Value: c.handle()}
	c.shaders[s.Value] = &ShaderState{Type: ty}
	return s
}

func (c *Context) ShaderSource(s gl.Shader, src string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shader(s).Source = src
}

func (c *Context) CompileShader(s gl.Shader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.shader(s)
	compile := c.Compile
	if compile == nil {
		compile = CheckSource
	}
	st.Compiled, st.Log = compile(st.Type, st.Source)
}

func (c *Context) GetShaderi(s gl.Shader, pname gl.Enum) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.shader(s)
	switch pname {
	case gl.COMPILE_STATUS:
		if st.Compiled {
			return 1
		}
		return 0
	case gl.SHADER_TYPE:
		return int(st.Type)
	case gl.DELETE_STATUS:
		if st.Deleted {
			return 1
		}
		return 0
	case gl.INFO_LOG_LENGTH:
		return len(st.Log)
	}
	panic(fmt.Sprintf("gltest: GetShaderi pname %#x not implemented", pname))
}

func (c *Context) GetShaderInfoLog(s gl.Shader) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shader(s).Log
}

func (c *Context) DeleteShader(s gl.Shader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shader(s).Deleted = true
}

func (c *Context) CreateProgram() gl.Program {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.NoHandles {
		return gl.Program{}
	}
	p := gl.Program{Init: true, Value: c.handle()}
	c.programs[p.Value] = &ProgramState{}
	return p
}

func (c *Context) AttachShader(p gl.Program, s gl.Shader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shader(s)
	st := c.prog(p)
	st.Attached = append(st.Attached, s)
}

func (c *Context) DetachShader(p gl.Program, s gl.Shader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.prog(p)
	for i := range st.Attached {
		if st.Attached[i] == s {
			st.Attached = append(st.Attached[:i], st.Attached[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("gltest: shader %d is not attached to program %d", s.Value, p.Value))
}

func (c *Context) LinkProgram(p gl.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.prog(p)
	st.Linked, st.Log = false, ""
	if c.LinkLog != "" {
		st.Log = c.LinkLog
		return
	}
	var vertex, fragment int
	for _, s := range st.Attached {
		sh := c.shader(s)
		if !sh.Compiled {
			st.Log = fmt.Sprintf("error: linking with uncompiled shader %d", s.Value)
			return
		}
		switch sh.Type {
		case gl.VERTEX_SHADER:
			vertex++
		case gl.FRAGMENT_SHADER:
			fragment++
		}
	}
	if vertex != 1 || fragment != 1 {
		st.Log = fmt.Sprintf("error: program needs one vertex and one fragment shader (have %d, %d)", vertex, fragment)
		return
	}
	st.Linked = true
}

func (c *Context) GetProgrami(p gl.Program, pname gl.Enum) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.prog(p)
	switch pname {
	case gl.LINK_STATUS:
		if st.Linked {
			return 1
		}
		return 0
	case gl.ATTACHED_SHADERS:
		return len(st.Attached)
	case gl.INFO_LOG_LENGTH:
		return len(st.Log)
	}
	panic(fmt.Sprintf("gltest: GetProgrami pname %#x not implemented", pname))
}

func (c *Context) GetProgramInfoLog(p gl.Program) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prog(p).Log
}

func (c *Context) DeleteProgram(p gl.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prog(p).Deleted = true
}

func (c *Context) UseProgram(p gl.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.Value != 0 {
		c.prog(p)
	}
	c.program = p
}

func (c *Context) CreateBuffer() gl.Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := gl.Buffer{Value: c.handle()}
	c.buffers[b.Value] = &BufferState{}
	return b
}

func (c *Context) BindBuffer(target gl.Enum, b gl.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b.Value != 0 {
		c.buffer(b).Target = target
	}
	switch target {
	case gl.ARRAY_BUFFER:
		c.arrayBuffer = b
	case gl.ELEMENT_ARRAY_BUFFER:
		if c.vertexArray.Value == 0 {
			panic("gltest: element array buffer bound without a vertex array")
		}
		c.vao(c.vertexArray).ElementBuffer = b
	default:
		panic(fmt.Sprintf("gltest: buffer target %#x not implemented", target))
	}
}

func (c *Context) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := c.bound(target)
	if b.Value == 0 {
		panic("gltest: BufferData with no buffer bound")
	}
	st := c.buffer(b)
	st.Data = append([]byte(nil), src...)
	st.Usage = usage
}

func (c *Context) DeleteBuffer(b gl.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffer(b).Deleted = true
}

func (c *Context) CreateVertexArray() gl.VertexArray {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := gl.VertexArray{Value: c.handle()}
	c.vertexArrays[v.Value] = &VertexArrayState{Attribs: map[uint]Attrib{}}
	return v
}

func (c *Context) BindVertexArray(v gl.VertexArray) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v.Value != 0 {
		c.vao(v)
	}
	c.vertexArray = v
}

func (c *Context) DeleteVertexArray(v gl.VertexArray) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vao(v).Deleted = true
}

func (c *Context) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.arrayBuffer.Value == 0 {
		panic("gltest: VertexAttribPointer with no array buffer bound")
	}
	va := c.vao(c.vertexArray)
	a := va.Attribs[dst.Value]
	a.Buffer = c.arrayBuffer
	a.Size, a.Type, a.Normalized, a.Stride, a.Offset = size, ty, normalized, stride, offset
	va.Attribs[dst.Value] = a
}

func (c *Context) EnableVertexAttribArray(dst gl.Attrib) {
	c.mu.Lock()
	defer c.mu.Unlock()
	va := c.vao(c.vertexArray)
	a := va.Attribs[dst.Value]
	a.Enabled = true
	va.Attribs[dst.Value] = a
}

func (c *Context) DrawArrays(mode gl.Enum, first, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draws = append(c.draws, c.draw(Draw{Mode: mode, First: first, Count: count}))
}

func (c *Context) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.draw(Draw{Mode: mode, Count: count, Type: ty, Offset: offset})
	if d.ElementBuffer.Value == 0 {
		panic("gltest: DrawElements with no element array buffer")
	}
	c.draws = append(c.draws, d)
}

func (c *Context) draw(d Draw) Draw {
	if c.vertexArray.Value == 0 {
		panic("gltest: draw with no vertex array bound")
	}
	va := c.vao(c.vertexArray)
	d.Program = c.program
	d.VertexArray = c.vertexArray
	d.ArrayBuffer = va.Attribs[0].Buffer
	d.ElementBuffer = va.ElementBuffer
	return d
}

func (c *Context) ClearColor(red, green, blue, alpha float32) {}

func (c *Context) Clear(mask gl.Enum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clears++
}

func (c *Context) Viewport(x, y, width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewports = append(c.viewports, [4]int{x, y, width, height})
}

func (c *Context) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushes++
}

func (c *Context) GetString(pname gl.Enum) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch pname {
	case gl.VERSION:
		return c.Version
	case gl.RENDERER:
		return "gltest"
	case gl.SHADING_LANGUAGE_VERSION:
		return "OpenGL ES GLSL ES 3.00"
	}
	return ""
}

func (c *Context) shader(s gl.Shader) *ShaderState {
	st, ok := c.shaders[s.Value]
	if !ok || st.Deleted {
		panic(fmt.Sprintf("gltest: invalid shader %d", s.Value))
	}
	return st
}

func (c *Context) prog(p gl.Program) *ProgramState {
	st, ok := c.programs[p.Value]
	if !ok || st.Deleted {
		panic(fmt.Sprintf("gltest: invalid program %d", p.Value))
	}
	return st
}

func (c *Context) buffer(b gl.Buffer) *BufferState {
	st, ok := c.buffers[b.Value]
	if !ok || st.Deleted {
		panic(fmt.Sprintf("gltest: invalid buffer %d", b.Value))
	}
	return st
}

func (c *Context) vao(v gl.VertexArray) *VertexArrayState {
	st, ok := c.vertexArrays[v.Value]
	if !ok || st.Deleted {
		panic(fmt.Sprintf("gltest: invalid vertex array %d", v.Value))
	}
	return st
}

func (c *Context) bound(target gl.Enum) gl.Buffer {
	switch target {
	case gl.ARRAY_BUFFER:
		return c.arrayBuffer
	case gl.ELEMENT_ARRAY_BUFFER:
		if c.vertexArray.Value == 0 {
			return gl.Buffer{}
		}
		return c.vao(c.vertexArray).ElementBuffer
	}
	return gl.Buffer{}
}

// LiveShaders returns the number of shader objects not yet deleted.
func (c *Context) LiveShaders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, st := range c.shaders {
		if !st.Deleted {
			n++
		}
	}
	return n
}

// LivePrograms returns the number of program objects not yet deleted.
func (c *Context) LivePrograms() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, st := range c.programs {
		if !st.Deleted {
			n++
		}
	}
	return n
}

// LiveBuffers returns the number of buffer objects not yet deleted.
func (c *Context) LiveBuffers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, st := range c.buffers {
		if !st.Deleted {
			n++
		}
	}
	return n
}

// LiveVertexArrays returns the number of vertex arrays not yet deleted.
func (c *Context) LiveVertexArrays() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, st := range c.vertexArrays {
		if !st.Deleted {
			n++
		}
	}
	return n
}

// Program returns a copy of the recorded state of p.
func (c *Context) Program(p gl.Program) (ProgramState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.programs[p.Value]
	if !ok {
		return ProgramState{}, false
	}
	cp := *st
	cp.Attached = append([]gl.Shader(nil), st.Attached...)
	return cp, true
}

// Buffer returns a copy of the recorded state of b.
func (c *Context) Buffer(b gl.Buffer) (BufferState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.buffers[b.Value]
	if !ok {
		return BufferState{}, false
	}
	cp := *st
	cp.Data = append([]byte(nil), st.Data...)
	return cp, true
}

// VertexArray returns a copy of the recorded state of v.
func (c *Context) VertexArray(v gl.VertexArray) (VertexArrayState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.vertexArrays[v.Value]
	if !ok {
		return VertexArrayState{}, false
	}
	cp := *st
	cp.Attribs = make(map[uint]Attrib, len(st.Attribs))
	for k, a := range st.Attribs {
		cp.Attribs[k] = a
	}
	return cp, true
}

// BoundVertexArray returns the vertex array currently bound.
func (c *Context) BoundVertexArray() gl.VertexArray {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vertexArray
}

// Draws returns the draw calls recorded so far.
func (c *Context) Draws() []Draw {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Draw(nil), c.draws...)
}

// Viewports returns the viewports set so far as {x, y, width, height}.
func (c *Context) Viewports() [][4]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][4]int(nil), c.viewports...)
}

// Clears returns the number of Clear calls.
func (c *Context) Clears() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clears
}

// Flushes returns the number of Flush calls.
func (c *Context) Flushes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushes
}

// CheckSource is the default CompileFunc.  It is not a GLSL parser.  It rejects
// sources that do not start with a #version directive, that do not define
// main, or whose braces or parentheses do not balance.
func CheckSource(ty gl.Enum, src string) (bool, string) {
	if !strings.HasPrefix(strings.TrimSpace(src), "#version") {
		return false, "0:1(1): error: missing #version directive"
	}
	if !strings.Contains(src, "void main") {
		return false, "0:1(1): error: main function not defined"
	}
	var braces, parens int
	line := 1
	for _, r := range src {
		switch r {
		case '\n':
			line++
		case '{':
			braces++
		case '}':
			braces--
		case '(':
			parens++
		case ')':
			parens--
		}
		if braces < 0 || parens < 0 {
			return false, fmt.Sprintf("0:%d(1): error: syntax error, unexpected %q", line, r)
		}
	}
	if braces != 0 || parens != 0 {
		return false, fmt.Sprintf("0:%d(1): error: syntax error, unexpected end of file", line)
	}
	return true, ""
}
