package buffers

import (
	"errors"
	"fmt"

	"github.com/bloeys/ngl/glcontext"
)

var ErrNoLayout = errors.New("buffers: vertex buffer has no layout")

type VertexBuffer struct {
	*Alloc
	Stride int
	// Count is the number of vertices (or instances when Divisor is set)
	Count int
	// Divisor makes the buffer per-instance: attributes advance once every
	// Divisor instances instead of once per vertex
	Divisor uint32

	mode   BufferMode
	layout []Element
}

// Bind binds the buffer to ARRAY_BUFFER
func (vb *VertexBuffer) Bind(cc *glcontext.CommandContext) error {
	return vb.Alloc.Bind(cc, BufferType_Array)
}

// SetData replaces the vertices. The storage is reallocated if the size changes.
func (vb *VertexBuffer) SetData(cc *glcontext.CommandContext, values []float32) error {
	return vb.setBytes(cc, asBytes(values))
}

func (vb *VertexBuffer) setBytes(cc *glcontext.CommandContext, data []byte) error {

	if vb.Stride == 0 {
		return ErrNoLayout
	}

	if len(data)%vb.Stride != 0 {
		return fmt.Errorf("buffers: vertex data of %d bytes is not a multiple of the stride %d", len(data), vb.Stride)
	}

	if vb.Alloc != nil && vb.Alloc.Size() == len(data) {

		if err := vb.Upload(cc, 0, data); err != nil {
			return err
		}

		vb.Count = len(data) / vb.Stride
		return nil
	}

	a, err := NewAlloc(cc, BufferType_Array, vb.mode, len(data), data)
	if err != nil {
		return err
	}

	if vb.Alloc != nil {
		if err := vb.Alloc.Delete(cc); err != nil {
			return errors.Join(err, a.Delete(cc))
		}
	}

	vb.Alloc = a
	vb.Count = len(data) / vb.Stride
	return nil
}

func (vb *VertexBuffer) GetLayout() []Element {
	e := make([]Element, len(vb.layout))
	copy(e, vb.layout)
	return e
}

// Element returns the layout element feeding the named shader input
func (vb *VertexBuffer) Element(name string) (Element, bool) {

	for i := 0; i < len(vb.layout); i++ {
		if vb.layout[i].Name == name {
			return vb.layout[i], true
		}
	}

	return Element{}, false
}

func (vb *VertexBuffer) SetLayout(layout ...Element) {

	vb.Stride = 0
	vb.layout = layout

	for i := 0; i < len(vb.layout); i++ {

		vb.layout[i].Offset = vb.Stride
		vb.Stride += vb.layout[i].Size()
	}
}

// PerInstance marks the buffer as instance data
func (vb *VertexBuffer) PerInstance() *VertexBuffer {
	vb.Divisor = 1
	return vb
}

// NewVertexBuffer creates a buffer of interleaved float vertices described by layout
func NewVertexBuffer(cc *glcontext.CommandContext, values []float32, mode BufferMode, layout ...Element) (*VertexBuffer, error) {
	return NewVertexBufferOf(cc, values, mode, layout...)
}

// NewVertexBufferOf creates a vertex buffer from a slice of vertex structs.
// The layout must describe T field by field.
func NewVertexBufferOf[T any](cc *glcontext.CommandContext, values []T, mode BufferMode, layout ...Element) (*VertexBuffer, error) {

	vb := &VertexBuffer{mode: mode}
	vb.SetLayout(layout...)

	if err := vb.setBytes(cc, asBytes(values)); err != nil {
		return nil, err
	}

	return vb, nil
}
