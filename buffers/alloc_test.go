package buffers_test

import (
	"testing"

	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/gltest"
	"github.com/stretchr/testify/require"
)

func TestAllocCreationFallbacks(t *testing.T) {

	tests := []struct {
		version string
		exts    []string
		want    []string
	}{
		{"4.6.0 Fake", nil, []string{"CreateBuffer", "NamedBufferStorage"}},
		{"4.3.0 Fake", []string{"GL_ARB_buffer_storage"}, []string{"GenBuffer", "BindBuffer", "BufferStorage"}},
		{"4.3.0 Fake", nil, []string{"GenBuffer", "BindBuffer", "BufferData"}},
		{"2.1 Mesa", nil, []string{"GenBuffer", "BindBuffer", "BufferData"}},
	}

	for _, tt := range tests {

		ctx, f := gltest.NewContext(t, tt.version, tt.exts...)
		gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

			a, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 16, make([]byte, 16))
			require.NoError(t, err)
			require.Equal(t, 16, a.Size())
			return nil
		})

		require.Equal(t, tt.want, f.Names(), tt.version)
	}

	// Without copy buffers the edit binding falls back to ARRAY_BUFFER
	ctx, f := gltest.NewContext(t, "2.1 Mesa")
	var a *buffers.Alloc
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) (err error) {
		a, err = buffers.NewAlloc(cc, buffers.BufferType_Uniform, buffers.BufferMode_Default, 4, nil)
		return err
	})
	require.Equal(t, []any{uint32(gl.ARRAY_BUFFER), a.Id()}, f.CallsNamed("BindBuffer")[0].Args)
}

func TestAllocErrors(t *testing.T) {

	ctx, f := gltest.NewContext(t, "3.3.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		_, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 0, nil)
		require.ErrorIs(t, err, buffers.ErrInvalidSize)

		_, err = buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Persistent, 16, nil)
		require.ErrorIs(t, err, buffers.ErrPersistentNotSupported)

		f.FailNextGen = true
		_, err = buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 16, nil)
		require.ErrorIs(t, err, glcontext.ErrObjectCreation)

		a, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 16, nil)
		require.NoError(t, err)

		require.ErrorIs(t, a.Upload(cc, 10, make([]byte, 8)), buffers.ErrOutOfRange)
		require.ErrorIs(t, a.Read(cc, -1, make([]byte, 1)), buffers.ErrOutOfRange)

		require.NoError(t, a.Delete(cc))
		require.NoError(t, a.Delete(cc))
		require.True(t, a.IsDeleted())
		require.ErrorIs(t, a.Upload(cc, 0, []byte{1}), glcontext.ErrDeleted)
		require.ErrorIs(t, a.Bind(cc, buffers.BufferType_Array), glcontext.ErrDeleted)
		return nil
	})

	require.Equal(t, 0, f.Live("buffer"))
}

func TestAllocBelongsToItsContext(t *testing.T) {

	ctx1, _ := gltest.NewContext(t, "4.6.0 Fake")
	ctx2, _ := gltest.NewContext(t, "4.6.0 Fake")

	var a *buffers.Alloc
	gltest.Exec(t, ctx1, func(cc *glcontext.CommandContext) (err error) {
		a, err = buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 4, nil)
		return err
	})

	err := ctx2.Exec(func(cc *glcontext.CommandContext) error {
		return a.Upload(cc, 0, []byte{1, 2, 3, 4})
	})
	require.ErrorIs(t, err, glcontext.ErrContextMismatch)

	err = ctx2.Exec(func(cc *glcontext.CommandContext) error {
		return a.Delete(cc)
	})
	require.ErrorIs(t, err, glcontext.ErrContextMismatch)
}

func TestUploadAndRead(t *testing.T) {

	for _, version := range []string{"4.6.0 Fake", "3.3.0 Fake", "2.1 Mesa"} {

		ctx, f := gltest.NewContext(t, version)
		gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

			a, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 8, nil)
			require.NoError(t, err)

			require.NoError(t, a.Upload(cc, 2, []byte{1, 2, 3}))
			require.Equal(t, []byte{0, 0, 1, 2, 3, 0, 0, 0}, f.BufferContents(a.Id()), version)

			dst := make([]byte, 4)
			require.NoError(t, a.Read(cc, 1, dst))
			require.Equal(t, []byte{0, 1, 2, 3}, dst, version)
			return nil
		})
	}
}

func TestImmutableUploadGoesThroughCopy(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		a, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Immutable, 4, []byte{9, 9, 9, 9})
		require.NoError(t, err)
		require.Equal(t, []any{a.Id(), 4, uint32(0)}, f.CallsNamed("NamedBufferStorage")[0].Args)

		f.Reset()
		require.NoError(t, a.Upload(cc, 1, []byte{5, 6}))
		require.Equal(t, 1, f.Count("CopyNamedBufferSubData"))
		require.Equal(t, 0, f.Count("NamedBufferSubData"))
		require.Equal(t, []byte{9, 5, 6, 9}, f.BufferContents(a.Id()))

		// The staging buffer is gone again
		require.Equal(t, 1, f.Live("buffer"))
		return nil
	})
}

func TestMapping(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		a, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 8, nil)
		require.NoError(t, err)

		m, err := a.Map(cc, 4, 4)
		require.NoError(t, err)
		require.Len(t, m.Bytes(), 4)
		require.True(t, a.IsMapped())
		require.True(t, f.IsMapped(a.Id()))

		_, err = a.MapRead(cc, 0, 4)
		require.ErrorIs(t, err, buffers.ErrAlreadyMapped)
		require.ErrorIs(t, a.Upload(cc, 0, []byte{1}), buffers.ErrBufferMapped)
		require.ErrorIs(t, a.Bind(cc, buffers.BufferType_Array), buffers.ErrBufferMapped)
		require.ErrorIs(t, a.Delete(cc), buffers.ErrBufferMapped)

		copy(m.Bytes(), []byte{1, 2, 3, 4})
		require.NoError(t, m.Release(cc))
		require.NoError(t, m.Release(cc))
		require.False(t, a.IsMapped())
		require.False(t, f.IsMapped(a.Id()))
		require.Equal(t, []byte{0, 0, 0, 0, 1, 2, 3, 4}, f.BufferContents(a.Id()))

		f.Reset()
		m, err = a.MapWrite(cc, 0, 2)
		require.NoError(t, err)
		access := f.CallsNamed("MapNamedBufferRange")[0].Args[3].(uint32)
		require.Equal(t, uint32(gl.MAP_WRITE_BIT|gl.MAP_INVALIDATE_RANGE_BIT), access)
		return m.Release(cc)
	})
}

func TestCopyMappingWithoutMapRange(t *testing.T) {

	ctx, f := gltest.NewContext(t, "2.1 Mesa")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		a, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 4, []byte{1, 2, 3, 4})
		require.NoError(t, err)

		m, err := a.Map(cc, 0, 4)
		require.NoError(t, err)
		require.Equal(t, []byte{1, 2, 3, 4}, m.Bytes())
		require.Equal(t, 0, f.Count("MapBufferRange"))

		m.Bytes()[0] = 7
		require.NoError(t, m.Release(cc))
		require.Equal(t, []byte{7, 2, 3, 4}, f.BufferContents(a.Id()))
		return nil
	})

	es, _ := gltest.NewContext(t, "OpenGL ES 2.0 Fake")
	gltest.Exec(t, es, func(cc *glcontext.CommandContext) error {

		a, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 4, nil)
		require.NoError(t, err)
		require.ErrorIs(t, a.Read(cc, 0, make([]byte, 4)), buffers.ErrReadNotSupported)

		// Write only mappings do not need to read the old contents
		m, err := a.MapWrite(cc, 0, 4)
		require.NoError(t, err)
		return m.Release(cc)
	})
}

func TestPersistentBuffersWaitOnFences(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		a, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Persistent, 16, nil)
		require.NoError(t, err)
		require.True(t, a.IsPersistent())
		require.Equal(t, 1, f.Count("MapNamedBufferRange"))

		// Unrelated ranges do not wait
		a.Fence(cc, 0, 8)
		require.Equal(t, 1, a.PendingFences())
		require.NoError(t, a.Upload(cc, 8, []byte{1, 2}))
		require.Equal(t, 0, f.Count("ClientWaitSync"))

		require.NoError(t, a.Upload(cc, 4, []byte{3, 4, 5, 6}))
		require.Equal(t, 1, f.Count("ClientWaitSync"))
		require.Equal(t, 0, a.PendingFences())
		require.Equal(t, 0, f.LiveSyncs())
		require.Equal(t, byte(3), f.BufferContents(a.Id())[4])

		// A timed out fence is kept for the next access
		a.FenceAll(cc)
		f.WaitResult = gl.TIMEOUT_EXPIRED
		require.ErrorIs(t, a.Read(cc, 0, make([]byte, 4)), glcontext.ErrFenceTimeout)
		require.Equal(t, 1, a.PendingFences())

		f.WaitResult = gl.CONDITION_SATISFIED
		m, err := a.Map(cc, 0, 16)
		require.NoError(t, err)
		require.Equal(t, byte(1), m.Bytes()[8])
		require.NoError(t, m.Release(cc))

		// Persistent buffers stay usable once the Mapping is released
		require.NoError(t, a.Bind(cc, buffers.BufferType_Array))

		a.FenceAll(cc)
		require.NoError(t, a.Delete(cc))
		require.Equal(t, 0, f.LiveSyncs())
		return nil
	})
}

func TestPersistentBufferRejectsUseWhileMapped(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		a, err := buffers.NewAlloc(cc, buffers.BufferType_Uniform, buffers.BufferMode_Persistent, 256, nil)
		require.NoError(t, err)
		other, err := buffers.NewAlloc(cc, buffers.BufferType_Uniform, buffers.BufferMode_Default, 256, nil)
		require.NoError(t, err)

		m, err := a.Map(cc, 0, 16)
		require.NoError(t, err)
		require.True(t, a.IsMapped())

		require.ErrorIs(t, a.Upload(cc, 0, []byte{1}), buffers.ErrBufferMapped)
		require.ErrorIs(t, a.Read(cc, 0, make([]byte, 1)), buffers.ErrBufferMapped)
		require.ErrorIs(t, a.Bind(cc, buffers.BufferType_Uniform), buffers.ErrBufferMapped)
		require.ErrorIs(t, a.BindIndexed(cc, buffers.BufferType_Uniform, 0, 0, 0), buffers.ErrBufferMapped)
		require.ErrorIs(t, a.CopyTo(cc, other, 0, 0, 4), buffers.ErrBufferMapped)
		require.ErrorIs(t, other.CopyTo(cc, a, 0, 0, 4), buffers.ErrBufferMapped)
		require.ErrorIs(t, a.Invalidate(cc), buffers.ErrBufferMapped)
		require.ErrorIs(t, a.Delete(cc), buffers.ErrBufferMapped)
		require.False(t, a.IsDeleted())
		require.Len(t, m.Bytes(), 16)

		// Released mappings give the buffer back
		require.NoError(t, m.Release(cc))
		require.NoError(t, a.Upload(cc, 0, []byte{1}))
		require.NoError(t, a.Bind(cc, buffers.BufferType_Uniform))
		require.NoError(t, a.Delete(cc))
		require.NoError(t, other.Delete(cc))

		vb, err := buffers.NewVertexBuffer(cc, make([]float32, 3*3), buffers.BufferMode_Persistent,
			buffers.Element{Name: "pos", ElementType: buffers.DataTypeVec3},
		)
		require.NoError(t, err)
		prog := &fakeProgram{id: 5, locs: map[string]int{"pos": 0}}

		vm, err := vb.Map(cc, 0, 12)
		require.NoError(t, err)
		require.ErrorIs(t, buffers.BindVertexArray(cc, prog, []*buffers.VertexBuffer{vb}, nil), buffers.ErrBufferMapped)

		require.NoError(t, vm.Release(cc))
		require.NoError(t, buffers.BindVertexArray(cc, prog, []*buffers.VertexBuffer{vb}, nil))
		require.NoError(t, vb.Delete(cc))
		return nil
	})

	require.Equal(t, 0, f.Live("buffer"))
}

func TestCopyTo(t *testing.T) {

	for _, version := range []string{"4.6.0 Fake", "3.3.0 Fake"} {

		ctx, f := gltest.NewContext(t, version)
		gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

			src, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 4, []byte{1, 2, 3, 4})
			require.NoError(t, err)
			dst, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 4, nil)
			require.NoError(t, err)

			require.NoError(t, src.CopyTo(cc, dst, 1, 0, 3))
			require.Equal(t, []byte{2, 3, 4, 0}, f.BufferContents(dst.Id()))
			require.ErrorIs(t, src.CopyTo(cc, dst, 2, 2, 4), buffers.ErrOutOfRange)
			return nil
		})
	}

	old, _ := gltest.NewContext(t, "2.1 Mesa")
	gltest.Exec(t, old, func(cc *glcontext.CommandContext) error {

		src, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 4, nil)
		require.NoError(t, err)

		require.ErrorIs(t, src.CopyTo(cc, src, 0, 0, 1), buffers.ErrCopyNotSupported)
		return nil
	})
}

func TestBindIndexed(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		a, err := buffers.NewAlloc(cc, buffers.BufferType_Uniform, buffers.BufferMode_Default, 1024, nil)
		require.NoError(t, err)

		f.Reset()
		require.NoError(t, a.BindIndexed(cc, buffers.BufferType_Uniform, 2, 0, 0))
		require.NoError(t, a.BindIndexed(cc, buffers.BufferType_Uniform, 2, 0, 1024))
		require.Equal(t, []string{"BindBufferBase"}, f.Names())

		require.NoError(t, a.BindIndexed(cc, buffers.BufferType_Uniform, 3, 256, 256))
		require.Equal(t, []any{uint32(gl.UNIFORM_BUFFER), uint32(3), a.Id(), 256, 256}, f.CallsNamed("BindBufferRange")[0].Args)

		require.ErrorIs(t, a.BindIndexed(cc, buffers.BufferType_Uniform, 0, 100, 16), buffers.ErrMisalignedOffset)
		require.ErrorIs(t, a.BindIndexed(cc, buffers.BufferType_Uniform, 0, 768, 512), buffers.ErrOutOfRange)
		require.Equal(t, glcontext.BufferBinding{Buffer: a.Id(), Offset: 256, Size: 256}, cc.IndexedBinding(gl.UNIFORM_BUFFER, 3))
		return nil
	})
}

func TestInvalidate(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {
		a, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 4, nil)
		require.NoError(t, err)
		return a.Invalidate(cc)
	})
	require.Equal(t, 1, f.Count("InvalidateBufferData"))

	old, f := gltest.NewContext(t, "3.3.0 Fake")
	gltest.Exec(t, old, func(cc *glcontext.CommandContext) error {
		a, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 4, nil)
		require.NoError(t, err)
		return a.Invalidate(cc)
	})
	require.Equal(t, 2, f.Count("BufferData"))
}
