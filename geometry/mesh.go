// Package geometry uploads position-only vertex data, optionally indexed, into
// a vertex array that can be drawn as triangles.
package geometry

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"
)

const (
	// CoordsPerVertex is the number of floats describing one vertex position.
	CoordsPerVertex = 3

	float32Size = 4
	uint32Size  = 4
)

// position is the attribute slot shaders declare with layout(location = 0).
var position = gl.Attrib{Value: 0}

// Mesh is a vertex array together with the buffers it owns.
type Mesh struct {
	vao     gl.VertexArray
	vbo     gl.Buffer
	ebo     gl.Buffer
	count   int
	indexed bool
}

// Upload copies vertices, a list of XYZ positions, and the optional triangle
// indices into new GL buffers and records the attribute layout in a new vertex
// array.  Nothing is allocated in glctx when the input is rejected.
func Upload(glctx gl.Context, vertices []float32, indices []uint32) (*Mesh, error) {
	err := validate(vertices, indices)
	if err != nil {
		return nil, err
	}

	m := &Mesh{count: len(vertices) / CoordsPerVertex}
	m.vao = glctx.CreateVertexArray()
	m.vbo = glctx.CreateBuffer()
	if len(indices) > 0 {
		m.ebo = glctx.CreateBuffer()
		m.count = len(indices)
		m.indexed = true
	}

	bindVertexArray(glctx, m.vao, func() {
		glctx.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		glctx.BufferData(gl.ARRAY_BUFFER, f32.Bytes(binary.LittleEndian, vertices...), gl.STATIC_DRAW)

		// The element array binding is vertex array state, so it stays bound
		// until the vertex array itself is unbound.
		if m.indexed {
			glctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
			glctx.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBytes(indices), gl.STATIC_DRAW)
		}

		glctx.VertexAttribPointer(position, CoordsPerVertex, gl.FLOAT, false, CoordsPerVertex*float32Size, 0)
		glctx.EnableVertexAttribArray(position)

		glctx.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
	})

	return m, nil
}

func validate(vertices []float32, indices []uint32) error {
	if len(vertices) == 0 {
		return fmt.Errorf("geometry: no vertices")
	}
	if len(vertices)%CoordsPerVertex != 0 {
		return fmt.Errorf("geometry: %d floats is not a whole number of %d-component vertices", len(vertices), CoordsPerVertex)
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("geometry: %d indices do not describe whole triangles", len(indices))
	}
	n := uint32(len(vertices) / CoordsPerVertex)
	for i, index := range indices {
		if index >= n {
			return fmt.Errorf("geometry: index %d references vertex %d of %d", i, index, n)
		}
	}
	return nil
}

func indexBytes(indices []uint32) []byte {
	b := make([]byte, uint32Size*len(indices))
	for i, index := range indices {
		binary.LittleEndian.PutUint32(b[uint32Size*i:], index)
	}
	return b
}

// bindVertexArray binds vao for the duration of f.
func bindVertexArray(glctx gl.Context, vao gl.VertexArray, f func()) {
	glctx.BindVertexArray(vao)
	defer glctx.BindVertexArray(gl.VertexArray{})
	f()
}

// Draw renders the mesh as triangles with program.
func (m *Mesh) Draw(glctx gl.Context, program gl.Program) {
	glctx.UseProgram(program)
	bindVertexArray(glctx, m.vao, func() {
		if m.indexed {
			glctx.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
			return
		}
		glctx.DrawArrays(gl.TRIANGLES, 0, m.count)
	})
}

// Release deletes the vertex array and buffers owned by m.
func (m *Mesh) Release(glctx gl.Context) {
	glctx.DeleteVertexArray(m.vao)
	glctx.DeleteBuffer(m.vbo)
	if m.indexed {
		glctx.DeleteBuffer(m.ebo)
	}
	*m = Mesh{}
}

// Count returns the number of vertices a single Draw references.
func (m *Mesh) Count() int {
	return m.count
}

// Indexed reports whether the mesh is drawn through an index buffer.
func (m *Mesh) Indexed() bool {
	return m.indexed
}

// VertexArray returns the vertex array binding the mesh's buffers.
func (m *Mesh) VertexArray() gl.VertexArray {
	return m.vao
}
