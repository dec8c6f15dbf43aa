package buffers_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/gltest"
	"github.com/stretchr/testify/require"
)

func readF32(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

var lightFields = []buffers.UniformBufferFieldInput{
	{Id: 0, Type: buffers.DataTypeFloat32},
	{Id: 1, Type: buffers.DataTypeVec3},
	{Id: 2, Type: buffers.DataTypeFloat32},
	{Id: 3, Type: buffers.DataTypeMat3},
	{Id: 4, Type: buffers.DataTypeVec2, Count: 2},
	{Id: 5, Type: buffers.DataTypeStruct, Count: 2, Subfields: []buffers.UniformBufferFieldInput{
		{Id: 0, Type: buffers.DataTypeVec3},
		{Id: 1, Type: buffers.DataTypeFloat32},
	}},
}

type light struct {
	Dir       gglm.Vec3
	Intensity float32
}

type lightBlock struct {
	Time    float32
	Pos     gglm.Vec3
	Radius  float32
	Normal  gglm.Mat3
	Offsets [2]gglm.Vec2
	Lights  []light
}

func TestUniformBufferStd140Layout(t *testing.T) {

	ctx, _ := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		ub, err := buffers.NewUniformBuffer(cc, lightFields)
		require.NoError(t, err)
		require.Equal(t, 144, ub.Size())
		require.Equal(t, 144, buffers.UniformBufferSize(lightFields))

		offsets := make([]uint16, len(ub.Fields))
		for i, f := range ub.Fields {
			offsets[i] = f.AlignedOffset
		}
		require.Equal(t, []uint16{0, 16, 28, 32, 80, 112}, offsets)

		require.Equal(t, uint16(16), ub.Fields[3].Stride)
		require.Equal(t, uint16(16), ub.Fields[4].Stride)
		require.Equal(t, uint16(16), ub.Fields[5].Stride)
		require.Equal(t, uint16(12), ub.Fields[5].Subfields[1].AlignedOffset)
		return nil
	})
}

func TestUniformBufferMatrixArrays(t *testing.T) {

	fields := []buffers.UniformBufferFieldInput{
		{Id: 0, Type: buffers.DataTypeMat4, Count: 3},
		{Id: 1, Type: buffers.DataTypeFloat32},
	}

	ctx, _ := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		ub, err := buffers.NewUniformBuffer(cc, fields)
		require.NoError(t, err)
		require.Equal(t, uint16(64), ub.Fields[0].Stride)
		require.Equal(t, uint16(192), ub.Fields[1].AlignedOffset)
		require.Equal(t, 208, ub.Size())
		return nil
	})
}

func TestUniformBufferSetters(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		ub, err := buffers.NewUniformBuffer(cc, lightFields)
		require.NoError(t, err)

		require.NoError(t, ub.SetFloat32(cc, 2, 5))
		require.NoError(t, ub.SetVec3(cc, 1, &gglm.Vec3{Data: [3]float32{1, 2, 3}}))
		require.NoError(t, ub.SetMat3(cc, 3, &gglm.Mat3{Data: [3][3]float32{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}}))

		data := f.BufferContents(ub.Id())
		require.Equal(t, float32(5), readF32(data, 28))
		require.Equal(t, float32(3), readF32(data, 24))

		// Matrix columns start every 16 bytes
		require.Equal(t, float32(4), readF32(data, 48))
		require.Equal(t, float32(9), readF32(data, 72))
		require.Equal(t, float32(0), readF32(data, 44))

		require.Panics(t, func() { _ = ub.SetFloat32(cc, 42, 1) })

		require.NoError(t, ub.BindTo(cc, 1))
		require.Equal(t, ub.Id(), cc.IndexedBinding(gl.UNIFORM_BUFFER, 1).Buffer)
		return nil
	})
}

func TestUniformBufferSetStruct(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		ub, err := buffers.NewUniformBuffer(cc, lightFields)
		require.NoError(t, err)

		block := lightBlock{
			Time:    1,
			Pos:     gglm.Vec3{Data: [3]float32{2, 3, 4}},
			Radius:  5,
			Normal:  gglm.Mat3{Data: [3][3]float32{{6, 0, 0}, {0, 7, 0}, {0, 0, 8}}},
			Offsets: [2]gglm.Vec2{{Data: [2]float32{9, 10}}, {Data: [2]float32{11, 12}}},
			Lights: []light{
				{Dir: gglm.Vec3{Data: [3]float32{13, 14, 15}}, Intensity: 16},
				{Dir: gglm.Vec3{Data: [3]float32{17, 18, 19}}, Intensity: 20},
			},
		}
		require.NoError(t, ub.SetStruct(cc, &block))

		data := f.BufferContents(ub.Id())
		expected := map[int]float32{
			0: 1, 16: 2, 24: 4, 28: 5,
			32: 6, 52: 7, 72: 8,
			80: 9, 84: 10, 96: 11, 100: 12,
			112: 13, 120: 15, 124: 16,
			128: 17, 140: 20,
		}
		for off, v := range expected {
			require.Equal(t, v, readF32(data, off), "offset %d", off)
		}

		encoded, err := buffers.EncodeStd140(ub.Fields, ub.Size(), block)
		require.NoError(t, err)
		require.Equal(t, data, encoded)

		// Shape mismatches are reported instead of writing garbage
		block.Lights = block.Lights[:1]
		require.ErrorIs(t, ub.SetStruct(cc, block), buffers.ErrStructMismatch)
		require.ErrorIs(t, ub.SetStruct(cc, struct{ A float32 }{}), buffers.ErrStructMismatch)
		require.ErrorIs(t, ub.SetStruct(cc, 3), buffers.ErrStructMismatch)
		require.ErrorIs(t, ub.SetStruct(cc, nil), buffers.ErrStructMismatch)
		return nil
	})
}

func TestUniformBufferIntegerVectors(t *testing.T) {

	fields := []buffers.UniformBufferFieldInput{
		{Id: 0, Type: buffers.DataTypeIVec3},
		{Id: 1, Type: buffers.DataTypeUint32},
		{Id: 2, Type: buffers.DataTypeUVec2},
	}

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		ub, err := buffers.NewUniformBuffer(cc, fields)
		require.NoError(t, err)
		require.Equal(t, uint16(16), ub.Fields[2].AlignedOffset)

		err = ub.SetStruct(cc, struct {
			A [3]int32
			B uint32
			C [2]uint32
		}{A: [3]int32{-1, 2, 3}, B: 4, C: [2]uint32{5, 6}})
		require.NoError(t, err)

		data := f.BufferContents(ub.Id())
		require.Equal(t, uint32(0xFFFFFFFF), binary.LittleEndian.Uint32(data[0:]))
		require.Equal(t, uint32(4), binary.LittleEndian.Uint32(data[12:]))
		require.Equal(t, uint32(6), binary.LittleEndian.Uint32(data[20:]))

		err = ub.SetStruct(cc, struct {
			A [3]uint32
			B uint32
			C [2]uint32
		}{})
		require.ErrorIs(t, err, buffers.ErrStructMismatch)
		return nil
	})
}

func TestShaderStorageBuffer(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		data := make([]byte, 32)
		copy(data, []byte{1, 2, 3, 4})

		sb, err := buffers.NewShaderStorageBuffer(cc, buffers.BufferMode_Default, 32, data)
		require.NoError(t, err)
		require.Equal(t, buffers.BufferType_ShaderStorage, sb.Type())
		require.Equal(t, buffers.BufferMode_Default, sb.Mode())
		require.Equal(t, 32, sb.Size())
		require.Equal(t, data, f.BufferContents(sb.Id()))

		require.NoError(t, sb.BindTo(cc, 2))
		require.Equal(t, glcontext.BufferBinding{Buffer: sb.Id()}, cc.IndexedBinding(gl.SHADER_STORAGE_BUFFER, 2))

		_, err = buffers.NewShaderStorageBuffer(cc, buffers.BufferMode_Default, 0, nil)
		require.ErrorIs(t, err, buffers.ErrInvalidSize)

		require.NoError(t, sb.Delete(cc))
		require.ErrorIs(t, sb.BindTo(cc, 2), glcontext.ErrDeleted)
		return nil
	})

	require.Zero(t, f.Live("buffer"))

	old, _ := gltest.NewContext(t, "3.3.0 Fake")
	gltest.Exec(t, old, func(cc *glcontext.CommandContext) error {
		_, err := buffers.NewShaderStorageBuffer(cc, buffers.BufferMode_Persistent, 32, nil)
		require.ErrorIs(t, err, buffers.ErrPersistentNotSupported)
		return nil
	})
}
