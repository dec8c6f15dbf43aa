package buffers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bloeys/ngl/glcontext"
)

var (
	ErrInstancingNotSupported = errors.New("buffers: per-instance attributes need GL 3.3 or ARB_instanced_arrays")
	ErrTooManyVertexBuffers   = fmt.Errorf("buffers: a draw can use at most %d vertex buffers", maxVertexArrayBuffers)
)

const maxVertexArrayBuffers = 16

// ProgramAttributes is what building a vertex array needs from a program
type ProgramAttributes interface {
	ProgramId() uint32
	// AttributeLocation returns the location of an active vertex shader input
	AttributeLocation(name string) (loc int, ok bool)
}

// vertexArrayKey identifies a cached vertex array. Attribute locations
// depend on the program, so it is part of the key.
type vertexArrayKey struct {
	program uint32
	buffers [maxVertexArrayBuffers]uint32
	index   uint32
	// layout fingerprints strides, divisors and elements of all buffers
	layout string
}

func (k vertexArrayKey) UsesObject(kind glcontext.ObjectKind, name uint32) bool {

	switch kind {
	case glcontext.ObjectKind_Program:
		return k.program == name
	case glcontext.ObjectKind_Buffer:

		if k.index == name {
			return true
		}

		for _, b := range k.buffers {
			if b == name {
				return true
			}
		}
	}

	return false
}

func makeVertexArrayKey(prog ProgramAttributes, vbs []*VertexBuffer, ib *IndexBuffer) vertexArrayKey {

	k := vertexArrayKey{program: prog.ProgramId()}
	if ib != nil {
		k.index = ib.Id()
	}

	var sb strings.Builder
	for i, vb := range vbs {

		k.buffers[i] = vb.Id()

		fmt.Fprintf(&sb, "%d/%d:", vb.Stride, vb.Divisor)
		for _, e := range vb.layout {
			fmt.Fprintf(&sb, "%s,%d,%d,%t;", e.Name, e.Offset, e.ElementType, e.Normalized)
		}
		sb.WriteByte('|')
	}

	k.layout = sb.String()
	return k
}

type VertexArray struct {
	Id          uint32
	Vbos        []*VertexBuffer
	IndexBuffer *IndexBuffer

	ctx *glcontext.Context
}

func (va *VertexArray) Bind(cc *glcontext.CommandContext) error {

	if va.Id == 0 {
		return glcontext.ErrDeleted
	}

	if err := cc.CheckOwner(va.ctx); err != nil {
		return err
	}

	cc.BindVertexArray(va.Id)
	return nil
}

func (va *VertexArray) Delete(cc *glcontext.CommandContext) error {

	if va.Id == 0 {
		return nil
	}

	if err := cc.CheckOwner(va.ctx); err != nil {
		return err
	}

	cc.DeleteVertexArray(va.Id)
	va.Id = 0
	return nil
}

// NewVertexArray builds a vertex array owned by the caller. Draws normally
// go through BindVertexArray, which caches vertex arrays instead.
func NewVertexArray(cc *glcontext.CommandContext, prog ProgramAttributes, vbs []*VertexBuffer, ib *IndexBuffer) (*VertexArray, error) {

	if err := checkSources(cc, vbs, ib); err != nil {
		return nil, err
	}

	id, err := buildVertexArray(cc, prog, vbs, ib)
	if err != nil {
		return nil, err
	}

	return &VertexArray{Id: id, Vbos: vbs, IndexBuffer: ib, ctx: cc.Context()}, nil
}

// BindVertexArray binds a vertex array feeding prog from vbs and ib,
// creating and caching it on first use. Without vertex array objects the
// attributes are set up directly.
func BindVertexArray(cc *glcontext.CommandContext, prog ProgramAttributes, vbs []*VertexBuffer, ib *IndexBuffer) error {

	if err := checkSources(cc, vbs, ib); err != nil {
		return err
	}

	if !cc.Caps.SupportsVertexArrayObject() {

		if err := bindAttributes(cc, prog, vbs); err != nil {
			return err
		}

		if ib != nil {
			cc.BindBuffer(BufferType_ElementArray.ToGL(), ib.Id())
		}

		return nil
	}

	cache := cc.VertexArrayCache()
	key := makeVertexArrayKey(prog, vbs, ib)
	if id, ok := cache.Get(key); ok {
		cc.BindVertexArray(id)
		return nil
	}

	id, err := buildVertexArray(cc, prog, vbs, ib)
	if err != nil {
		return err
	}

	cache.Add(key, id)
	return nil
}

func checkSources(cc *glcontext.CommandContext, vbs []*VertexBuffer, ib *IndexBuffer) error {

	if len(vbs) > maxVertexArrayBuffers {
		return ErrTooManyVertexBuffers
	}

	for _, vb := range vbs {

		if vb == nil || vb.Alloc == nil {
			return ErrNoLayout
		}

		if err := vb.checkUnmapped(cc); err != nil {
			return err
		}

		if vb.Divisor != 0 && !cc.Caps.SupportsInstancing() {
			return ErrInstancingNotSupported
		}
	}

	if ib != nil {
		return ib.checkUnmapped(cc)
	}

	return nil
}

func buildVertexArray(cc *glcontext.CommandContext, prog ProgramAttributes, vbs []*VertexBuffer, ib *IndexBuffer) (uint32, error) {

	id := cc.GL.GenVertexArray()
	if id == 0 {
		return 0, fmt.Errorf("%w: vertex array", glcontext.ErrObjectCreation)
	}

	cc.BindVertexArray(id)

	if err := bindAttributes(cc, prog, vbs); err != nil {
		cc.DeleteVertexArray(id)
		return 0, err
	}

	if ib != nil {
		cc.BindBuffer(BufferType_ElementArray.ToGL(), ib.Id())
	}

	return id, nil
}

// bindAttributes points every element that prog reads at its buffer.
// Elements the program does not use are skipped.
func bindAttributes(cc *glcontext.CommandContext, prog ProgramAttributes, vbs []*VertexBuffer) error {

	// NOTE: VBOs are only bound at 'VertexAttribPointer' (and related) calls

	for _, vb := range vbs {

		cc.BindBuffer(BufferType_Array.ToGL(), vb.Id())

		for i := 0; i < len(vb.layout); i++ {

			l := &vb.layout[i]
			loc, ok := prog.AttributeLocation(l.Name)
			if !ok {
				continue
			}

			cols := l.Columns()
			rows := l.CompCount() / cols
			for c := 0; c < cols; c++ {

				index := uint32(loc + c)
				offset := l.Offset + c*rows*l.CompSize()

				cc.GL.EnableVertexAttribArray(index)
				if l.IsInteger() && !l.Normalized {
					cc.GL.VertexAttribIPointer(index, rows, l.GLType(), vb.Stride, offset)
				} else {
					cc.GL.VertexAttribPointer(index, rows, l.GLType(), l.Normalized, vb.Stride, offset)
				}

				if vb.Divisor != 0 {
					cc.GL.VertexAttribDivisor(index, vb.Divisor)
				}
			}
		}
	}

	return nil
}
