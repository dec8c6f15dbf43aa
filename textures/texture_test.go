package textures_test

import (
	"errors"
	"testing"

	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/gltest"
	"github.com/bloeys/ngl/textures"
	"github.com/stretchr/testify/require"
)

func filledImage(format textures.Format, w, h, d int) textures.RawImage {

	img := textures.NewRawImage(format, w, h, d)
	for i := range img.Data {
		img.Data[i] = byte(i + 1)
	}

	return img
}

func TestMaxMipmapLevels(t *testing.T) {
	require.Equal(t, 1, textures.MaxMipmapLevels(1, 1, 1))
	require.Equal(t, 3, textures.MaxMipmapLevels(4, 2, 1))
	require.Equal(t, 3, textures.MaxMipmapLevels(5, 3, 1))
	require.Equal(t, 4, textures.MaxMipmapLevels(8, 8, 4))
	require.Equal(t, 11, textures.MaxMipmapLevels(1024, 1, 1))
}

func TestTexture2DWithStorage(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		img := filledImage(textures.Format_RGBA8, 4, 2, 1)
		tex, err := textures.NewTexture2D(cc, textures.Format_RGBA8, 4, 2, textures.GeneratedMipmaps, &img)
		require.NoError(t, err)

		require.Equal(t, 3, tex.Levels())
		require.True(t, tex.IsImmutable())
		require.Equal(t, textures.Dimensions_2D, tex.Dimensions())

		storage := f.CallsNamed("TexStorage2D")
		require.Len(t, storage, 1)
		require.Equal(t, []any{uint32(gl.TEXTURE_2D), 3, uint32(gl.RGBA8), 4, 2}, storage[0].Args)
		require.Equal(t, 1, f.Count("TexSubImage2D"))
		require.Equal(t, 1, f.Count("GenerateMipmap"))
		require.Zero(t, f.Count("TexImage2D"))

		back, err := tex.Read(cc, 0)
		require.NoError(t, err)
		require.Equal(t, img.Data, back.Data)

		w, h, d := tex.LevelSize(2)
		require.Equal(t, []int{1, 1, 1}, []int{w, h, d})

		require.Equal(t, 1, f.Live("texture"))
		require.NoError(t, tex.Delete(cc))
		require.NoError(t, tex.Delete(cc))
		require.Zero(t, f.Live("texture"))

		_, err = tex.Read(cc, 0)
		require.ErrorIs(t, err, glcontext.ErrDeleted)
		return nil
	})
}

func TestTexture2DWithoutStorage(t *testing.T) {

	ctx, f := gltest.NewContext(t, "3.3.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		tex, err := textures.NewTexture2D(cc, textures.Format_RGBA8, 8, 8, textures.EmptyMipmaps, nil)
		require.NoError(t, err)
		require.False(t, tex.IsImmutable())
		require.Equal(t, 4, tex.Levels())

		require.Zero(t, f.Count("TexStorage2D"))
		images := f.CallsNamed("TexImage2D")
		require.Len(t, images, 4)
		require.Equal(t, []any{uint32(gl.TEXTURE_2D), 3, uint32(gl.RGBA8), 1, 1, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE)}, images[3].Args)

		params := f.CallsNamed("TexParameteri")
		require.Len(t, params, 1)
		require.Equal(t, []any{uint32(gl.TEXTURE_2D), uint32(gl.TEXTURE_MAX_LEVEL), 3}, params[0].Args)
		return nil
	})
}

func TestTextureValidation(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		_, err := textures.NewTexture2D(cc, textures.Format_RGBA8, 0, 4, textures.NoMipmaps, nil)
		require.ErrorIs(t, err, textures.ErrInvalidDimensions)

		var creationErr *textures.TextureCreationError
		require.True(t, errors.As(err, &creationErr))
		require.Equal(t, textures.Dimensions_2D, creationErr.Dimensions)

		_, err = textures.NewTexture2D(cc, textures.Format_RGBA8, 20000, 4, textures.NoMipmaps, nil)
		require.ErrorIs(t, err, textures.ErrTooLarge)

		_, err = textures.NewTexture(cc, textures.TextureDesc{Dimensions: textures.Dimensions_Cube, Format: textures.Format_RGBA8, Width: 4, Height: 8}, nil)
		require.ErrorIs(t, err, textures.ErrCubeNotSquare)

		_, err = textures.NewTexture(cc, textures.TextureDesc{
			Dimensions: textures.Dimensions_2DMultisample,
			Format:     textures.Format_RGBA8,
			Width:      4, Height: 4, Samples: 4,
			Mipmaps: textures.EmptyMipmaps,
		}, nil)
		require.ErrorIs(t, err, textures.ErrMultisampleMipmaps)

		_, err = textures.NewTexture2DMultisample(cc, textures.Format_RGBA8, 4, 4, 16)
		require.ErrorIs(t, err, textures.ErrInvalidSamples)

		_, err = textures.NewTexture2D(cc, textures.Format_RGBA8, 4, 4, textures.MipmapCount(0), nil)
		require.ErrorIs(t, err, textures.ErrInvalidDimensions)

		_, err = textures.NewTexture2D(cc, textures.Format_R32UI, 4, 4, textures.GeneratedMipmaps, nil)
		require.ErrorIs(t, err, textures.ErrMipmapsNotSupported)

		small := filledImage(textures.Format_RGBA8, 2, 2, 1)
		_, err = textures.NewTexture2D(cc, textures.Format_RGBA8, 4, 4, textures.NoMipmaps, &small)
		require.ErrorIs(t, err, textures.ErrImageSize)

		red := filledImage(textures.Format_R8, 4, 4, 1)
		_, err = textures.NewTexture2D(cc, textures.Format_RGBA8, 4, 4, textures.NoMipmaps, &red)
		require.ErrorIs(t, err, textures.ErrImageFormatMismatch)

		_, err = textures.NewDepthTexture2D(cc, textures.Format_RGBA8, 4, 4)
		require.ErrorIs(t, err, textures.ErrImageFormatMismatch)

		// Nothing reached the driver
		require.Zero(t, f.Live("texture"))

		f.FailNextGen = true
		_, err = textures.NewTexture2D(cc, textures.Format_RGBA8, 4, 4, textures.NoMipmaps, nil)
		require.ErrorIs(t, err, glcontext.ErrObjectCreation)

		// Sizes that do not apply to the kind are ignored
		tex, err := textures.NewTexture(cc, textures.TextureDesc{Dimensions: textures.Dimensions_2D, Format: textures.Format_RGBA8, Width: 4, Height: 4, Depth: 9, ArraySize: 3}, nil)
		require.NoError(t, err)
		require.Equal(t, 1, tex.Depth())
		require.Equal(t, 1, tex.ArraySize())
		return nil
	})

	ctx, _ = gltest.NewContext(t, "3.3.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		_, err := textures.NewCubemapArray(cc, textures.Format_RGBA8, 4, 2, textures.NoMipmaps)
		require.ErrorIs(t, err, textures.ErrDimensionsNotSupported)
		return nil
	})
}

func TestTextureUploadAndRead(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		tex, err := textures.NewTexture2D(cc, textures.Format_RGBA8, 4, 4, textures.NoMipmaps, nil)
		require.NoError(t, err)

		patch := filledImage(textures.Format_RGBA8, 2, 2, 1)
		require.NoError(t, tex.Upload(cc, 0, textures.Box{X: 1, Y: 1, W: 2, H: 2}, patch))

		sub := f.CallsNamed("TexSubImage2D")
		require.Len(t, sub, 1)
		require.Equal(t, []any{uint32(gl.TEXTURE_2D), 0, 1, 1, 2, 2, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE)}, sub[0].Args)

		// Two RGBA8 pixels per row is 8 bytes
		align := f.CallsNamed("PixelStorei")
		require.Len(t, align, 1)
		require.Equal(t, []any{uint32(gl.UNPACK_ALIGNMENT), 8}, align[0].Args)

		back, err := tex.Read(cc, 0)
		require.NoError(t, err)

		// Pixel (1,1) is the first pixel of the patch, (0,0) is untouched
		require.Equal(t, patch.Data[:4], back.Data[(1*4+1)*4:(1*4+1)*4+4])
		require.Equal(t, []byte{0, 0, 0, 0}, back.Data[:4])

		err = tex.Upload(cc, 0, textures.Box{X: 3, Y: 3, W: 2, H: 2}, patch)
		require.ErrorIs(t, err, textures.ErrOutOfBounds)

		err = tex.Upload(cc, 1, textures.Box{W: 2, H: 2}, patch)
		require.ErrorIs(t, err, textures.ErrLevelOutOfRange)

		err = tex.Upload(cc, 0, textures.Box{W: 1, H: 1}, patch)
		require.ErrorIs(t, err, textures.ErrImageSize)

		ms, err := textures.NewTexture2DMultisample(cc, textures.Format_RGBA8, 4, 4, 4)
		require.NoError(t, err)
		require.Equal(t, 4, ms.Samples())
		require.Equal(t, 1, f.Count("TexStorage2DMultisample"))
		require.ErrorIs(t, ms.Upload(cc, 0, textures.Box{W: 2, H: 2}, patch), textures.ErrMultisampleNotWriteable)
		_, err = ms.Read(cc, 0)
		require.ErrorIs(t, err, textures.ErrReadNotSupported)
		return nil
	})
}

func TestTextureUploadAlignment(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		img := filledImage(textures.Format_RGB8, 3, 3, 1)
		_, err := textures.NewTexture2D(cc, textures.Format_RGB8, 3, 3, textures.NoMipmaps, &img)
		require.NoError(t, err)

		align := f.CallsNamed("PixelStorei")
		require.Len(t, align, 1)
		require.Equal(t, []any{uint32(gl.UNPACK_ALIGNMENT), 1}, align[0].Args)
		return nil
	})
}

func TestTextureReadNeedsDesktop(t *testing.T) {

	ctx, _ := gltest.NewContext(t, "OpenGL ES 3.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		tex, err := textures.NewTexture2D(cc, textures.Format_RGBA8, 4, 4, textures.NoMipmaps, nil)
		require.NoError(t, err)

		_, err = tex.Read(cc, 0)
		require.ErrorIs(t, err, textures.ErrReadNotSupported)
		return nil
	})
}

func TestCubemap(t *testing.T) {

	for _, version := range []string{"4.6.0 Fake", "3.3.0 Fake"} {

		t.Run(version, func(t *testing.T) {

			ctx, f := gltest.NewContext(t, version)
			gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

				faces := filledImage(textures.Format_RGBA8, 2, 2, 6)
				tex, err := textures.NewCubemap(cc, textures.Format_RGBA8, 2, textures.NoMipmaps, &faces)
				require.NoError(t, err)

				if tex.IsImmutable() {
					require.Equal(t, 1, f.Count("TexStorage2D"))
				} else {
					require.Equal(t, 6, f.Count("TexImage2D"))
				}

				sub := f.CallsNamed("TexSubImage2D")
				require.Len(t, sub, 6)
				for i, c := range sub {
					require.Equal(t, uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+i), c.Args[0])
				}

				back, err := tex.Read(cc, 0)
				require.NoError(t, err)
				require.Equal(t, 6, back.Depth)
				require.Equal(t, faces.Data, back.Data)

				// Single face upload
				face := filledImage(textures.Format_RGBA8, 2, 2, 1)
				require.NoError(t, tex.Upload(cc, 0, textures.Box{Z: int(textures.CubeFace_NegativeY), W: 2, H: 2}, face))
				last := f.CallsNamed("TexSubImage2D")
				require.Equal(t, uint32(gl.TEXTURE_CUBE_MAP_NEGATIVE_Y), last[len(last)-1].Args[0])
				return nil
			})
		})
	}
}

func TestLayeredTextures(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		arr, err := textures.NewTexture2DArray(cc, textures.Format_RGBA8, 2, 2, 3, textures.EmptyMipmaps, nil)
		require.NoError(t, err)
		require.Equal(t, 3, arr.ArraySize())
		require.Equal(t, []any{uint32(gl.TEXTURE_2D_ARRAY), 2, uint32(gl.RGBA8), 2, 2, 3}, f.CallsNamed("TexStorage3D")[0].Args)

		w, h, d := arr.LevelSize(1)
		require.Equal(t, []int{1, 1, 3}, []int{w, h, d})

		layer := filledImage(textures.Format_RGBA8, 2, 2, 1)
		require.NoError(t, arr.Upload(cc, 0, textures.Box{Z: 1, W: 2, H: 2, D: 1}, layer))
		require.Equal(t, []any{uint32(gl.TEXTURE_2D_ARRAY), 0, 0, 0, 1, 2, 2, 1, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE)}, f.CallsNamed("TexSubImage3D")[0].Args)

		require.ErrorIs(t, arr.Upload(cc, 0, textures.Box{Z: 3, W: 2, H: 2, D: 1}, layer), textures.ErrOutOfBounds)

		vol, err := textures.NewTexture3D(cc, textures.Format_R8, 8, 8, 4, textures.EmptyMipmaps, nil)
		require.NoError(t, err)
		require.Equal(t, 4, vol.Levels())

		w, h, d = vol.LevelSize(1)
		require.Equal(t, []int{4, 4, 2}, []int{w, h, d})

		cubes, err := textures.NewCubemapArray(cc, textures.Format_RGBA8, 4, 2, textures.NoMipmaps)
		require.NoError(t, err)
		_, _, d = cubes.LevelSize(0)
		require.Equal(t, 12, d)
		return nil
	})
}

func TestTextureImageViews(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		flat, err := textures.NewTexture2D(cc, textures.Format_RGBA8, 8, 8, textures.EmptyMipmaps, nil)
		require.NoError(t, err)

		arr, err := textures.NewTexture2DArray(cc, textures.Format_RGBA8, 4, 4, 2, textures.NoMipmaps, nil)
		require.NoError(t, err)

		cube, err := textures.NewCubemap(cc, textures.Format_RGBA8, 4, textures.NoMipmaps, nil)
		require.NoError(t, err)

		require.NoError(t, flat.Mip(2).Check(cc))
		w, h := flat.Mip(2).Size()
		require.Equal(t, []int{2, 2}, []int{w, h})
		require.False(t, flat.MainLevel().IsLayered())

		require.ErrorIs(t, flat.Mip(4).Check(cc), textures.ErrLevelOutOfRange)
		require.ErrorIs(t, flat.MainLevel().Layer(0).Check(cc), textures.ErrNotLayered)

		require.NoError(t, arr.MainLevel().Layer(1).Check(cc))
		require.True(t, arr.MainLevel().IsLayered())
		require.ErrorIs(t, arr.MainLevel().Layer(2).Check(cc), textures.ErrLayerOutOfRange)
		require.ErrorIs(t, arr.MainLevel().Face(textures.CubeFace_PositiveX).Check(cc), textures.ErrNotCube)

		require.NoError(t, cube.MainLevel().Face(textures.CubeFace_NegativeY).Check(cc))

		f.Reset()
		cube.MainLevel().Face(textures.CubeFace_NegativeY).Attach(cc, gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0)
		arr.MainLevel().Layer(1).Attach(cc, gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT1)
		flat.Mip(1).Attach(cc, gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT2)
		arr.MainLevel().Attach(cc, gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT3)

		require.Equal(t, []gltest.Call{
			{Name: "FramebufferTexture2D", Args: []any{uint32(gl.FRAMEBUFFER), uint32(gl.COLOR_ATTACHMENT0), uint32(gl.TEXTURE_CUBE_MAP_NEGATIVE_Y), cube.Id(), 0}},
			{Name: "FramebufferTextureLayer", Args: []any{uint32(gl.FRAMEBUFFER), uint32(gl.COLOR_ATTACHMENT1), arr.Id(), 0, 1}},
			{Name: "FramebufferTexture2D", Args: []any{uint32(gl.FRAMEBUFFER), uint32(gl.COLOR_ATTACHMENT2), uint32(gl.TEXTURE_2D), flat.Id(), 1}},
			{Name: "FramebufferTexture", Args: []any{uint32(gl.FRAMEBUFFER), uint32(gl.COLOR_ATTACHMENT3), arr.Id(), 0}},
		}, f.Calls)

		require.NoError(t, flat.Delete(cc))
		require.ErrorIs(t, flat.MainLevel().Check(cc), glcontext.ErrDeleted)
		return nil
	})
}

func TestTextureBelongsToItsContext(t *testing.T) {

	ctxA, _ := gltest.NewContext(t, "4.6.0 Fake")
	ctxB, _ := gltest.NewContext(t, "4.6.0 Fake")

	var tex *textures.Texture
	gltest.Exec(t, ctxA, func(cc *glcontext.CommandContext) error {
		var err error
		tex, err = textures.NewTexture2D(cc, textures.Format_RGBA8, 4, 4, textures.NoMipmaps, nil)
		return err
	})

	gltest.Exec(t, ctxB, func(cc *glcontext.CommandContext) error {
		require.ErrorIs(t, tex.BindToUnit(cc, 0, textures.DefaultSamplerBehavior()), glcontext.ErrContextMismatch)
		require.ErrorIs(t, tex.Delete(cc), glcontext.ErrContextMismatch)
		return nil
	})
}
