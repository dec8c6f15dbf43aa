package buffers_test

import (
	"testing"

	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/gltest"
	"github.com/stretchr/testify/require"
)

type fakeProgram struct {
	id   uint32
	locs map[string]int
}

func (p *fakeProgram) ProgramId() uint32 {
	return p.id
}

func (p *fakeProgram) AttributeLocation(name string) (int, bool) {
	loc, ok := p.locs[name]
	return loc, ok
}

func TestVertexBufferLayout(t *testing.T) {

	ctx, _ := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		vb, err := buffers.NewVertexBuffer(cc, make([]float32, 2*5), buffers.BufferMode_Default,
			buffers.Element{Name: "pos", ElementType: buffers.DataTypeVec3},
			buffers.Element{Name: "uv", ElementType: buffers.DataTypeVec2},
		)
		require.NoError(t, err)
		require.Equal(t, 20, vb.Stride)
		require.Equal(t, 2, vb.Count)

		uv, ok := vb.Element("uv")
		require.True(t, ok)
		require.Equal(t, 12, uv.Offset)

		_, err = buffers.NewVertexBuffer(cc, make([]float32, 7), buffers.BufferMode_Default,
			buffers.Element{Name: "pos", ElementType: buffers.DataTypeVec3},
		)
		require.Error(t, err)

		_, err = buffers.NewVertexBuffer(cc, make([]float32, 3), buffers.BufferMode_Default)
		require.ErrorIs(t, err, buffers.ErrNoLayout)

		// Same size uploads in place, a new size reallocates
		oldId := vb.Id()
		require.NoError(t, vb.SetData(cc, make([]float32, 10)))
		require.Equal(t, oldId, vb.Id())
		require.NoError(t, vb.SetData(cc, make([]float32, 15)))
		require.NotEqual(t, oldId, vb.Id())
		require.Equal(t, 3, vb.Count)
		return nil
	})
}

func TestVertexArrayCache(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		vb, err := buffers.NewVertexBuffer(cc, make([]float32, 3*4), buffers.BufferMode_Default,
			buffers.Element{Name: "pos", ElementType: buffers.DataTypeVec3},
			buffers.Element{Name: "unused", ElementType: buffers.DataTypeFloat32},
		)
		require.NoError(t, err)

		ib, err := buffers.NewIndexBuffer16(cc, buffers.Primitive_Triangles, []uint16{0, 1, 2})
		require.NoError(t, err)
		require.Equal(t, 3, ib.IndexBufCount)
		require.Equal(t, uint32(gl.UNSIGNED_SHORT), ib.IndexType.ToGL())

		prog := &fakeProgram{id: 77, locs: map[string]int{"pos": 0}}

		f.Reset()
		require.NoError(t, buffers.BindVertexArray(cc, prog, []*buffers.VertexBuffer{vb}, ib))
		require.NoError(t, buffers.BindVertexArray(cc, prog, []*buffers.VertexBuffer{vb}, ib))
		require.Equal(t, 1, f.Count("GenVertexArray"))
		require.Equal(t, 1, f.Count("VertexAttribPointer"))
		require.Equal(t, []any{uint32(0), 3, uint32(gl.FLOAT), false, 16, 0}, f.CallsNamed("VertexAttribPointer")[0].Args)

		// Another program gets its own vertex array
		other := &fakeProgram{id: 78, locs: map[string]int{"pos": 2}}
		require.NoError(t, buffers.BindVertexArray(cc, other, []*buffers.VertexBuffer{vb}, ib))
		require.Equal(t, 2, f.Count("GenVertexArray"))
		require.Equal(t, 2, f.Live("vertex array"))

		// Deleting a source buffer removes every vertex array using it
		require.NoError(t, vb.Delete(cc))
		require.Equal(t, 0, f.Live("vertex array"))
		require.ErrorIs(t, buffers.BindVertexArray(cc, prog, []*buffers.VertexBuffer{vb}, ib), glcontext.ErrDeleted)
		return nil
	})
}

func TestVertexArrayLayoutChangeRebuilds(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		vb, err := buffers.NewVertexBuffer(cc, make([]float32, 8), buffers.BufferMode_Default,
			buffers.Element{Name: "a", ElementType: buffers.DataTypeVec4},
		)
		require.NoError(t, err)

		prog := &fakeProgram{id: 5, locs: map[string]int{"a": 0, "b": 1}}
		require.NoError(t, buffers.BindVertexArray(cc, prog, []*buffers.VertexBuffer{vb}, nil))

		vb.SetLayout(
			buffers.Element{Name: "a", ElementType: buffers.DataTypeVec2},
			buffers.Element{Name: "b", ElementType: buffers.DataTypeVec2},
		)
		require.NoError(t, buffers.BindVertexArray(cc, prog, []*buffers.VertexBuffer{vb}, nil))
		require.Equal(t, 2, f.Count("GenVertexArray"))
		return nil
	})
}

func TestVertexAttributeKinds(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		verts, err := buffers.NewVertexBuffer(cc, make([]float32, 4*3), buffers.BufferMode_Default,
			buffers.Element{Name: "ids", ElementType: buffers.DataTypeIVec2},
			buffers.Element{Name: "color", ElementType: buffers.DataTypeUint8Vec4, Normalized: true},
			buffers.Element{Name: "weight", ElementType: buffers.DataTypeFloat32},
		)
		require.NoError(t, err)

		inst, err := buffers.NewVertexBuffer(cc, make([]float32, 16*2), buffers.BufferMode_Default,
			buffers.Element{Name: "model", ElementType: buffers.DataTypeMat4},
		)
		require.NoError(t, err)
		inst.PerInstance()
		require.Equal(t, 2, inst.Count)

		prog := &fakeProgram{id: 9, locs: map[string]int{"ids": 0, "color": 1, "weight": 2, "model": 3}}

		f.Reset()
		require.NoError(t, buffers.BindVertexArray(cc, prog, []*buffers.VertexBuffer{verts, inst}, nil))

		ipointers := f.CallsNamed("VertexAttribIPointer")
		require.Len(t, ipointers, 1)
		require.Equal(t, []any{uint32(0), 2, uint32(gl.INT), 16, 0}, ipointers[0].Args)

		pointers := f.CallsNamed("VertexAttribPointer")
		require.Len(t, pointers, 6)
		require.Equal(t, []any{uint32(1), 4, uint32(gl.UNSIGNED_BYTE), true, 16, 8}, pointers[0].Args)

		// The matrix takes one location per column
		for c := 0; c < 4; c++ {
			require.Equal(t, []any{uint32(3 + c), 4, uint32(gl.FLOAT), false, 64, c * 16}, pointers[2+c].Args)
		}

		divisors := f.CallsNamed("VertexAttribDivisor")
		require.Len(t, divisors, 4)
		require.Equal(t, []any{uint32(6), uint32(1)}, divisors[3].Args)
		return nil
	})
}

func TestVertexArrayChecks(t *testing.T) {

	ctx, _ := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		vb, err := buffers.NewVertexBuffer(cc, make([]float32, 3), buffers.BufferMode_Default,
			buffers.Element{Name: "pos", ElementType: buffers.DataTypeVec3},
		)
		require.NoError(t, err)

		prog := &fakeProgram{id: 1, locs: map[string]int{"pos": 0}}

		m, err := vb.Map(cc, 0, 12)
		require.NoError(t, err)
		require.ErrorIs(t, buffers.BindVertexArray(cc, prog, []*buffers.VertexBuffer{vb}, nil), buffers.ErrBufferMapped)
		require.NoError(t, m.Release(cc))

		many := make([]*buffers.VertexBuffer, 17)
		for i := range many {
			many[i] = vb
		}
		require.ErrorIs(t, buffers.BindVertexArray(cc, prog, many, nil), buffers.ErrTooManyVertexBuffers)

		va, err := buffers.NewVertexArray(cc, prog, []*buffers.VertexBuffer{vb}, nil)
		require.NoError(t, err)
		require.NoError(t, va.Bind(cc))
		require.NoError(t, va.Delete(cc))
		require.ErrorIs(t, va.Bind(cc), glcontext.ErrDeleted)
		return nil
	})

	old, _ := gltest.NewContext(t, "2.1 Mesa")
	gltest.Exec(t, old, func(cc *glcontext.CommandContext) error {

		vb, err := buffers.NewVertexBuffer(cc, make([]float32, 3), buffers.BufferMode_Default,
			buffers.Element{Name: "pos", ElementType: buffers.DataTypeVec3},
		)
		require.NoError(t, err)

		vb.PerInstance()
		prog := &fakeProgram{id: 1, locs: map[string]int{"pos": 0}}
		require.ErrorIs(t, buffers.BindVertexArray(cc, prog, []*buffers.VertexBuffer{vb}, nil), buffers.ErrInstancingNotSupported)
		return nil
	})
}

func TestVertexAttributesWithoutVertexArrays(t *testing.T) {

	ctx, f := gltest.NewContext(t, "2.1 Mesa")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		vb, err := buffers.NewVertexBuffer(cc, make([]float32, 3), buffers.BufferMode_Default,
			buffers.Element{Name: "pos", ElementType: buffers.DataTypeVec3},
		)
		require.NoError(t, err)

		prog := &fakeProgram{id: 1, locs: map[string]int{"pos": 0}}
		return buffers.BindVertexArray(cc, prog, []*buffers.VertexBuffer{vb}, nil)
	})

	require.Equal(t, 0, f.Count("GenVertexArray"))
	require.Equal(t, 1, f.Count("VertexAttribPointer"))
}
