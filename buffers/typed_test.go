package buffers_test

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/gltest"
	"github.com/stretchr/testify/require"
)

func TestTypedBuffer(t *testing.T) {

	ctx, _ := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		b, err := buffers.NewBuffer(cc, buffers.BufferType_ShaderStorage, buffers.BufferMode_Default, []uint32{1, 2, 3, 4, 5})
		require.NoError(t, err)
		require.Equal(t, 5, b.Len())
		require.Equal(t, 20, b.SizeBytes())

		require.ErrorIs(t, b.Write(cc, []uint32{1}), buffers.ErrOutOfRange)

		s, err := b.Slice(1, 4)
		require.NoError(t, err)
		require.Equal(t, 3, s.Len())
		require.Equal(t, 4, s.Offset())

		require.NoError(t, s.Write(cc, []uint32{20, 30, 40}))

		vals, err := b.Read(cc)
		require.NoError(t, err)
		require.Equal(t, []uint32{1, 20, 30, 40, 5}, vals)

		sub, err := s.Sub(1, 2)
		require.NoError(t, err)
		vals, err = sub.Read(cc)
		require.NoError(t, err)
		require.Equal(t, []uint32{30}, vals)

		_, err = s.Sub(2, 4)
		require.ErrorIs(t, err, buffers.ErrOutOfRange)
		_, err = b.Slice(3, 6)
		require.ErrorIs(t, err, buffers.ErrOutOfRange)

		// Copy the first two values over the last two
		first, _ := b.Slice(0, 2)
		last, _ := b.Slice(3, 5)
		require.NoError(t, first.CopyTo(cc, last))
		vals, err = b.Read(cc)
		require.NoError(t, err)
		require.Equal(t, []uint32{1, 20, 30, 1, 20}, vals)

		require.ErrorIs(t, first.CopyTo(cc, s), buffers.ErrOutOfRange)

		m, err := last.Map(cc)
		require.NoError(t, err)
		require.Len(t, m.Bytes(), 8)
		require.Equal(t, 12, m.Offset())
		return m.Release(cc)
	})
}

func TestTypedBufferOfVectors(t *testing.T) {

	ctx, f := gltest.NewContext(t, "3.3.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		b, err := buffers.NewEmptyBuffer[gglm.Vec4](cc, buffers.BufferType_Array, buffers.BufferMode_Dynamic, 2)
		require.NoError(t, err)
		require.Equal(t, 32, b.SizeBytes())
		require.Len(t, f.BufferContents(b.Id()), 32)

		require.NoError(t, b.Write(cc, []gglm.Vec4{{Data: [4]float32{1, 2, 3, 4}}, {Data: [4]float32{5, 6, 7, 8}}}))

		vals, err := b.Read(cc)
		require.NoError(t, err)
		require.Equal(t, float32(7), vals[1].Data[2])
		return nil
	})
}

func TestDynamicBufferRing(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		db, err := buffers.NewDynamicBuffer(cc, buffers.BufferType_Uniform, 16, 2)
		require.NoError(t, err)
		require.Equal(t, 2, db.Len())
		require.Nil(t, db.Current())

		first, err := db.Next(cc, []byte{1})
		require.NoError(t, err)
		require.True(t, first.IsPersistent())
		db.EndFrame(cc)

		second, err := db.Next(cc, []byte{2})
		require.NoError(t, err)
		require.NotEqual(t, first.Id(), second.Id())
		require.Same(t, second, db.Current())
		db.EndFrame(cc)

		require.Equal(t, 2, f.LiveSyncs())
		require.Equal(t, 0, f.Count("ClientWaitSync"))

		// Wrapping around waits for the first frame
		again, err := db.Next(cc, []byte{3})
		require.NoError(t, err)
		require.Same(t, first, again)
		require.Equal(t, 1, f.Count("ClientWaitSync"))
		require.Equal(t, byte(3), f.BufferContents(first.Id())[0])

		require.NoError(t, db.Delete(cc))
		require.Equal(t, 0, f.LiveSyncs())

		// A deleted ring has nothing left to hand out
		_, err = db.Next(cc, []byte{4})
		require.ErrorIs(t, err, glcontext.ErrDeleted)
		require.Zero(t, db.Len())
		require.Nil(t, db.Current())
		db.EndFrame(cc)
		require.NoError(t, db.Delete(cc))
		return nil
	})

	require.Equal(t, 0, f.Live("buffer"))
}

func TestDynamicBufferWithoutStorage(t *testing.T) {

	ctx, _ := gltest.NewContext(t, "3.3.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		db, err := buffers.NewDynamicBuffer(cc, buffers.BufferType_Array, 8, 3)
		require.NoError(t, err)

		a, err := db.Next(cc, []byte{1, 2})
		require.NoError(t, err)
		require.False(t, a.IsPersistent())
		require.Equal(t, buffers.BufferMode_Dynamic, a.Mode())
		return db.Delete(cc)
	})
}
