package buffers

import (
	"errors"

	"github.com/bloeys/ngl/assert"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

type PrimitiveType int

const (
	Primitive_Unknown PrimitiveType = iota
	Primitive_Points
	Primitive_Lines
	Primitive_LineLoop
	Primitive_LineStrip
	Primitive_Triangles
	Primitive_TriangleStrip
	Primitive_TriangleFan
	Primitive_LinesAdjacency
	Primitive_LineStripAdjacency
	Primitive_TrianglesAdjacency
	Primitive_TriangleStripAdjacency
	Primitive_Patches
)

func (p PrimitiveType) ToGL() gl.Enum {

	switch p {
	case Primitive_Points:
		return gl.POINTS
	case Primitive_Lines:
		return gl.LINES
	case Primitive_LineLoop:
		return gl.LINE_LOOP
	case Primitive_LineStrip:
		return gl.LINE_STRIP
	case Primitive_Triangles:
		return gl.TRIANGLES
	case Primitive_TriangleStrip:
		return gl.TRIANGLE_STRIP
	case Primitive_TriangleFan:
		return gl.TRIANGLE_FAN
	case Primitive_LinesAdjacency:
		return gl.LINES_ADJACENCY
	case Primitive_LineStripAdjacency:
		return gl.LINE_STRIP_ADJACENCY
	case Primitive_TrianglesAdjacency:
		return gl.TRIANGLES_ADJACENCY
	case Primitive_TriangleStripAdjacency:
		return gl.TRIANGLE_STRIP_ADJACENCY
	case Primitive_Patches:
		return gl.PATCHES
	}

	assert.T(false, "Unexpected PrimitiveType value '%d'", p)
	return 0
}

// IsAdjacency is true for the primitives that need a geometry shader to be useful
func (p PrimitiveType) IsAdjacency() bool {
	switch p {
	case Primitive_LinesAdjacency, Primitive_LineStripAdjacency, Primitive_TrianglesAdjacency, Primitive_TriangleStripAdjacency:
		return true
	default:
		return false
	}
}

type IndexType int

const (
	IndexType_Uint8 IndexType = iota
	IndexType_Uint16
	IndexType_Uint32
)

func (t IndexType) ToGL() gl.Enum {
	switch t {
	case IndexType_Uint8:
		return gl.UNSIGNED_BYTE
	case IndexType_Uint16:
		return gl.UNSIGNED_SHORT
	default:
		return gl.UNSIGNED_INT
	}
}

func (t IndexType) Size() int {
	switch t {
	case IndexType_Uint8:
		return 1
	case IndexType_Uint16:
		return 2
	default:
		return 4
	}
}

// RestartIndex is the largest value of the type, used by fixed index primitive restart
func (t IndexType) RestartIndex() uint32 {
	switch t {
	case IndexType_Uint8:
		return 0xFF
	case IndexType_Uint16:
		return 0xFFFF
	default:
		return 0xFFFFFFFF
	}
}

type IndexBuffer struct {
	*Alloc
	IndexType IndexType
	Primitive PrimitiveType
	// IndexBufCount is the number of elements in the index buffer. Updated in IndexBuffer.SetData
	IndexBufCount int
}

// Bind binds the buffer as the index buffer of the bound vertex array
func (ib *IndexBuffer) Bind(cc *glcontext.CommandContext) error {
	return ib.Alloc.Bind(cc, BufferType_ElementArray)
}

// SetData replaces the indices. The storage is reallocated if the size changes.
func (ib *IndexBuffer) SetData(cc *glcontext.CommandContext, values []uint32) error {

	ib.IndexType = IndexType_Uint32
	return ib.setBytes(cc, asBytes(values), len(values))
}

func (ib *IndexBuffer) setBytes(cc *glcontext.CommandContext, data []byte, count int) error {

	if ib.Alloc != nil && ib.Alloc.Size() == len(data) {

		if err := ib.Upload(cc, 0, data); err != nil {
			return err
		}

		ib.IndexBufCount = count
		return nil
	}

	a, err := NewAlloc(cc, BufferType_ElementArray, BufferMode_Default, len(data), data)
	if err != nil {
		return err
	}

	if ib.Alloc != nil {
		if err := ib.Alloc.Delete(cc); err != nil {
			return errors.Join(err, a.Delete(cc))
		}
	}

	ib.Alloc = a
	ib.IndexBufCount = count
	return nil
}

// Indices draws every index of the buffer
func (ib *IndexBuffer) Indices() Indices {
	return Indices{Primitive: ib.Primitive, Buffer: ib}
}

func NewIndexBuffer(cc *glcontext.CommandContext, prim PrimitiveType, values []uint32) (*IndexBuffer, error) {

	ib := &IndexBuffer{Primitive: prim, IndexType: IndexType_Uint32}
	if err := ib.setBytes(cc, asBytes(values), len(values)); err != nil {
		return nil, err
	}

	return ib, nil
}

func NewIndexBuffer16(cc *glcontext.CommandContext, prim PrimitiveType, values []uint16) (*IndexBuffer, error) {

	ib := &IndexBuffer{Primitive: prim, IndexType: IndexType_Uint16}
	if err := ib.setBytes(cc, asBytes(values), len(values)); err != nil {
		return nil, err
	}

	return ib, nil
}

func NewIndexBuffer8(cc *glcontext.CommandContext, prim PrimitiveType, values []uint8) (*IndexBuffer, error) {

	ib := &IndexBuffer{Primitive: prim, IndexType: IndexType_Uint8}
	if err := ib.setBytes(cc, values, len(values)); err != nil {
		return nil, err
	}

	return ib, nil
}

// Indices describes how vertices are assembled into primitives for a draw
type Indices struct {
	Primitive PrimitiveType
	// Buffer is nil to draw vertices in order
	Buffer *IndexBuffer

	// First and Count select a range of indices (or vertices without a
	// buffer). Count 0 means everything from First.
	First int
	Count int

	// BaseVertex is added to every index
	BaseVertex int

	// PatchVertices is the patch size when Primitive is Primitive_Patches
	PatchVertices int
}

// NoIndices draws vertices in order
func NoIndices(prim PrimitiveType) Indices {
	return Indices{Primitive: prim}
}

// Patches draws patches of n vertices, for tessellation
func Patches(n int) Indices {
	return Indices{Primitive: Primitive_Patches, PatchVertices: n}
}

// Range returns the indices [first, first+count)
func (i Indices) Range(first, count int) Indices {
	i.First = first
	i.Count = count
	return i
}
