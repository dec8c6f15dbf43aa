package textures_test

import (
	"testing"

	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/gltest"
	"github.com/bloeys/ngl/textures"
	"github.com/stretchr/testify/require"
)

func samplerParam(f *gltest.Functions, s uint32, pname gl.Enum) (int, bool) {

	for _, c := range f.CallsNamed("SamplerParameteri") {
		if c.Args[0] == s && c.Args[1] == pname {
			return c.Args[2].(int), true
		}
	}

	return 0, false
}

func TestSamplerObjectsAreCached(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		a, err := textures.NewTexture2D(cc, textures.Format_RGBA8, 4, 4, textures.EmptyMipmaps, nil)
		require.NoError(t, err)
		b, err := textures.NewTexture2D(cc, textures.Format_RGBA8, 4, 4, textures.EmptyMipmaps, nil)
		require.NoError(t, err)

		f.Reset()
		require.NoError(t, a.BindToUnit(cc, 2, textures.DefaultSamplerBehavior()))
		require.NoError(t, b.BindToUnit(cc, 3, textures.DefaultSamplerBehavior()))
		require.NoError(t, a.BindToUnit(cc, 2, textures.DefaultSamplerBehavior()))

		require.Equal(t, 1, f.Count("GenSampler"))
		require.Equal(t, 2, f.Count("BindSampler"))
		require.Equal(t, 2, f.Count("BindTexture"))
		require.Zero(t, f.Count("TexParameteri"))
		require.Equal(t, a.Id(), cc.BoundTexture(2, gl.TEXTURE_2D))
		require.Equal(t, b.Id(), cc.BoundTexture(3, gl.TEXTURE_2D))

		s := f.CallsNamed("GenSampler")[0].Args[0].(uint32)
		minFilter, ok := samplerParam(f, s, gl.TEXTURE_MIN_FILTER)
		require.True(t, ok)
		require.Equal(t, int(gl.LINEAR_MIPMAP_LINEAR), minFilter)

		wrap, _ := samplerParam(f, s, gl.TEXTURE_WRAP_S)
		require.Equal(t, int(gl.MIRRORED_REPEAT), wrap)
		return nil
	})
}

func TestSamplerBehaviorAdjustments(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		single, err := textures.NewTexture2D(cc, textures.Format_RGBA8, 4, 4, textures.NoMipmaps, nil)
		require.NoError(t, err)

		ints, err := textures.NewTexture2D(cc, textures.Format_R32UI, 4, 4, textures.NoMipmaps, nil)
		require.NoError(t, err)

		b := textures.DefaultSamplerBehavior()
		b.MaxAnisotropy = 32
		b.DepthCompare = gl.LEQUAL

		f.Reset()
		require.NoError(t, single.BindToUnit(cc, 0, b))

		s := f.CallsNamed("GenSampler")[0].Args[0].(uint32)
		minFilter, _ := samplerParam(f, s, gl.TEXTURE_MIN_FILTER)
		require.Equal(t, int(gl.LINEAR), minFilter)

		// Clamped to the driver limit
		require.Equal(t, []gltest.Call{{Name: "SamplerParameterf", Args: []any{s, uint32(gl.TEXTURE_MAX_ANISOTROPY), float32(16)}}}, f.CallsNamed("SamplerParameterf"))

		compare, _ := samplerParam(f, s, gl.TEXTURE_COMPARE_FUNC)
		require.Equal(t, int(gl.LEQUAL), compare)

		f.Reset()
		require.NoError(t, ints.BindToUnit(cc, 1, textures.DefaultSamplerBehavior()))

		s = f.CallsNamed("GenSampler")[0].Args[0].(uint32)
		minFilter, _ = samplerParam(f, s, gl.TEXTURE_MIN_FILTER)
		magFilter, _ := samplerParam(f, s, gl.TEXTURE_MAG_FILTER)
		require.Equal(t, int(gl.NEAREST), minFilter)
		require.Equal(t, int(gl.NEAREST), magFilter)
		return nil
	})
}

func TestTexParameterFallback(t *testing.T) {

	ctx, f := gltest.NewContext(t, "2.1 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		tex, err := textures.NewTexture2D(cc, textures.Format_RGBA8, 4, 4, textures.NoMipmaps, nil)
		require.NoError(t, err)

		f.Reset()
		b := textures.DefaultSamplerBehavior()
		b.MaxAnisotropy = 8
		require.NoError(t, tex.BindToUnit(cc, 1, b))

		require.Zero(t, f.Count("GenSampler"))
		require.Zero(t, f.Count("BindSampler"))
		require.Zero(t, f.Count("TexParameterf"))

		params := f.CallsNamed("TexParameteri")
		require.Len(t, params, 5)
		require.Contains(t, params, gltest.Call{Name: "TexParameteri", Args: []any{uint32(gl.TEXTURE_2D), uint32(gl.TEXTURE_MIN_FILTER), int(gl.LINEAR)}})
		require.Contains(t, params, gltest.Call{Name: "TexParameteri", Args: []any{uint32(gl.TEXTURE_2D), uint32(gl.TEXTURE_COMPARE_MODE), int(gl.NONE)}})

		// Same behavior again only rebinds nothing
		require.NoError(t, tex.BindToUnit(cc, 1, b))
		require.Len(t, f.CallsNamed("TexParameteri"), 5)

		b.WrapS = textures.Wrap_ClampToEdge
		require.NoError(t, tex.BindToUnit(cc, 1, b))
		require.Len(t, f.CallsNamed("TexParameteri"), 10)
		return nil
	})
}

func TestRenderbuffers(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		color, err := textures.NewRenderbuffer(cc, textures.Format_RGBA8, 16, 8)
		require.NoError(t, err)
		require.Equal(t, []any{uint32(gl.RENDERBUFFER), uint32(gl.RGBA8), 16, 8}, f.CallsNamed("RenderbufferStorage")[0].Args)

		w, h := color.Size()
		require.Equal(t, []int{16, 8}, []int{w, h})

		depth, err := textures.NewMultisampleDepthRenderbuffer(cc, textures.Format_Depth24Stencil8, 16, 8, 4)
		require.NoError(t, err)
		require.Equal(t, 4, depth.Samples())
		require.Equal(t, []any{uint32(gl.RENDERBUFFER), 4, uint32(gl.DEPTH24_STENCIL8), 16, 8}, f.CallsNamed("RenderbufferStorageMultisample")[0].Args)

		_, err = textures.NewDepthRenderbuffer(cc, textures.Format_RGBA8, 16, 8)
		require.ErrorIs(t, err, textures.ErrImageFormatMismatch)

		_, err = textures.NewMultisampleRenderbuffer(cc, textures.Format_RGBA8, 16, 8, 16)
		require.ErrorIs(t, err, textures.ErrInvalidSamples)

		_, err = textures.NewRenderbuffer(cc, textures.Format_RGBA8, 0, 8)
		require.ErrorIs(t, err, textures.ErrInvalidDimensions)

		require.Equal(t, 2, f.Live("renderbuffer"))
		require.NoError(t, color.Delete(cc))
		require.NoError(t, depth.Delete(cc))
		require.Zero(t, f.Live("renderbuffer"))
		require.ErrorIs(t, color.Check(cc), glcontext.ErrDeleted)
		return nil
	})
}

func TestBufferTexture(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		buf, err := buffers.NewAlloc(cc, buffers.BufferType_Texture, buffers.BufferMode_Default, 64, nil)
		require.NoError(t, err)

		bt, err := textures.NewBufferTexture(cc, buf, textures.Format_R32F)
		require.NoError(t, err)
		require.Equal(t, 16, bt.Len())
		require.Equal(t, []any{uint32(gl.TEXTURE_BUFFER), uint32(gl.R32F), buf.Id()}, f.CallsNamed("TexBuffer")[0].Args)

		_, err = textures.NewBufferTexture(cc, buf, textures.Format_RGB8)
		require.ErrorIs(t, err, textures.ErrBufferTextureFormat)

		require.NoError(t, bt.BindToUnit(cc, 4))
		require.Equal(t, bt.Id(), cc.BoundTexture(4, gl.TEXTURE_BUFFER))

		require.NoError(t, buf.Delete(cc))
		require.ErrorIs(t, bt.BindToUnit(cc, 4), glcontext.ErrDeleted)
		require.NoError(t, bt.Delete(cc))
		return nil
	})

	ctx, _ = gltest.NewContext(t, "2.1 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		buf, err := buffers.NewAlloc(cc, buffers.BufferType_Array, buffers.BufferMode_Default, 64, nil)
		require.NoError(t, err)

		_, err = textures.NewBufferTexture(cc, buf, textures.Format_R32F)
		require.ErrorIs(t, err, textures.ErrDimensionsNotSupported)
		return nil
	})
}
