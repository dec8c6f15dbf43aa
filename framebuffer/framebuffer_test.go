package framebuffer_test

import (
	"testing"

	"github.com/bloeys/ngl/drawparams"
	"github.com/bloeys/ngl/framebuffer"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/gltest"
	"github.com/bloeys/ngl/textures"
	"github.com/stretchr/testify/require"
)

func newColor(t *testing.T, cc *glcontext.CommandContext, w, h int) *textures.Texture {

	tex, err := textures.NewTexture2D(cc, textures.Format_RGBA8, w, h, textures.MipmapCount(1), nil)
	require.NoError(t, err)
	return tex
}

func newDepth(t *testing.T, cc *glcontext.CommandContext, w, h int) *textures.Renderbuffer {

	rb, err := textures.NewDepthRenderbuffer(cc, textures.Format_Depth24, w, h)
	require.NoError(t, err)
	return rb
}

func TestValidateAttachments(t *testing.T) {

	ctx, _ := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		color := framebuffer.TextureLevel(newColor(t, cc, 64, 64))
		other := framebuffer.TextureLevel(newColor(t, cc, 64, 64))
		small := framebuffer.TextureLevel(newColor(t, cc, 32, 64))
		depth := framebuffer.RenderbufferAttachment(newDepth(t, cc, 64, 64))

		msRb, err := textures.NewMultisampleRenderbuffer(cc, textures.Format_RGBA8, 64, 64, 4)
		require.NoError(t, err)
		ms := framebuffer.RenderbufferAttachment(msRb)

		dsRb, err := textures.NewDepthRenderbuffer(cc, textures.Format_Depth24Stencil8, 64, 64)
		require.NoError(t, err)
		ds := framebuffer.RenderbufferAttachment(dsRb)

		tests := []struct {
			name   string
			colors []framebuffer.Attachment
			ds     framebuffer.DepthStencil
			want   error
		}{
			{"color and depth", []framebuffer.Attachment{color}, framebuffer.DepthStencil{Depth: depth}, nil},
			{"depth only", nil, framebuffer.DepthStencil{Depth: depth}, nil},
			{"depth-stencil", []framebuffer.Attachment{color, other}, framebuffer.DepthStencil{DepthStencil: ds}, nil},
			{"nothing", nil, framebuffer.DepthStencil{}, framebuffer.ErrNoAttachments},
			{"different sizes", []framebuffer.Attachment{color, small}, framebuffer.DepthStencil{}, framebuffer.ErrDimensionsMismatch},
			{"different samples", []framebuffer.Attachment{color, ms}, framebuffer.DepthStencil{}, framebuffer.ErrSamplesMismatch},
			{"attached twice", []framebuffer.Attachment{color, color}, framebuffer.DepthStencil{}, framebuffer.ErrDuplicateAttachment},
			{"depth as color", []framebuffer.Attachment{depth}, framebuffer.DepthStencil{}, framebuffer.ErrWrongAttachmentFormat},
			{"color as depth", nil, framebuffer.DepthStencil{Depth: color}, framebuffer.ErrWrongAttachmentFormat},
			{"depth without stencil", nil, framebuffer.DepthStencil{DepthStencil: depth}, framebuffer.ErrWrongAttachmentFormat},
			{"depth-stencil with depth", nil, framebuffer.DepthStencil{Depth: depth, DepthStencil: ds}, framebuffer.ErrConflictingDepthStencil},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {

				err := framebuffer.ValidateAttachments(cc, tt.colors, tt.ds)
				if tt.want == nil {
					require.NoError(t, err)
					return
				}

				var verr *framebuffer.ValidationError
				require.ErrorAs(t, err, &verr)
				require.ErrorIs(t, err, tt.want)
			})
		}

		cc.Caps.Limits.MaxColorAttachments = 1
		err = framebuffer.ValidateAttachments(cc, []framebuffer.Attachment{color, other}, framebuffer.DepthStencil{})
		require.ErrorIs(t, err, framebuffer.ErrTooManyColorAttachments)

		return nil
	})
}

func TestSimpleFramebufferCache(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		tex := newColor(t, cc, 128, 64)
		fb, err := framebuffer.NewSimpleFramebuffer(cc, framebuffer.TextureLevel(tex), framebuffer.DepthStencil{
			Depth: framebuffer.RenderbufferAttachment(newDepth(t, cc, 128, 64)),
		})
		require.NoError(t, err)

		require.Equal(t, 1, f.Count("GenFramebuffer"))
		require.Equal(t, 1, f.Live("framebuffer"))

		bufs := f.CallsNamed("DrawBuffers")
		require.Len(t, bufs, 1)
		require.Equal(t, []gl.Enum{gl.COLOR_ATTACHMENT0}, bufs[0].Args[0])
		require.Equal(t, 1, f.Count("FramebufferRenderbuffer"))

		w, h := fb.Dimensions()
		require.Equal(t, 128, w)
		require.Equal(t, 64, h)
		require.True(t, fb.HasDepthBuffer())
		require.False(t, fb.HasStencilBuffer())

		// The same attachments reuse the cached object
		require.NoError(t, fb.Clear(cc, framebuffer.ClearColor(0, 0, 0, 1)))
		require.NoError(t, fb.Clear(cc, framebuffer.ClearColor(1, 0, 0, 1)))
		require.Equal(t, 1, f.Count("GenFramebuffer"))

		// Deleting an attached texture drops the framebuffer object
		require.NoError(t, tex.Delete(cc))
		require.Equal(t, 0, f.Live("framebuffer"))
		require.ErrorIs(t, fb.Clear(cc, framebuffer.ClearColor(0, 0, 0, 1)), glcontext.ErrDeleted)

		return nil
	})
}

func TestIncompleteFramebuffer(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		f.FramebufferStatus = gl.FRAMEBUFFER_UNSUPPORTED
		_, err := framebuffer.NewSimpleFramebuffer(cc, framebuffer.TextureLevel(newColor(t, cc, 16, 16)), framebuffer.DepthStencil{})

		var verr *framebuffer.ValidationError
		require.ErrorAs(t, err, &verr)
		require.ErrorIs(t, err, framebuffer.ErrIncomplete)
		require.Equal(t, 0, f.Live("framebuffer"))

		f.FramebufferStatus = gl.FRAMEBUFFER_COMPLETE
		return nil
	})
}

func TestMultiOutputFramebuffer(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		albedo := framebuffer.TextureLevel(newColor(t, cc, 32, 32))
		normal := framebuffer.TextureLevel(newColor(t, cc, 32, 32))

		_, err := framebuffer.NewMultiOutputFramebuffer(cc, []framebuffer.Output{{Name: "albedo", Attachment: albedo}, {Name: "albedo", Attachment: normal}}, framebuffer.DepthStencil{})
		require.ErrorIs(t, err, framebuffer.ErrBadOutputName)

		fb, err := framebuffer.NewMultiOutputFramebuffer(cc, []framebuffer.Output{
			{Name: "albedo", Attachment: albedo},
			{Name: "normal", Attachment: normal},
		}, framebuffer.DepthStencil{})
		require.NoError(t, err)

		a, ok := fb.Output("normal")
		require.True(t, ok)
		require.Equal(t, normal, a)

		// The program writes normal at location 0 and albedo at location 1
		f.NextProgram = programInfo()
		f.NextProgram.Outputs = []gltest.Var{
			{Name: "normal", Size: 1, Type: gl.FLOAT_VEC4, Location: 0},
			{Name: "albedo", Size: 1, Type: gl.FLOAT_VEC4, Location: 1},
		}
		prog := newProgramFromInfo(t, cc)

		f.Reset()
		vb := newTriangle(t, cc)
		require.NoError(t, fb.Draw(cc, framebuffer.VertexBuffers(vb), noIndices(), prog, nil, nil))

		bufs := f.CallsNamed("DrawBuffers")
		require.Len(t, bufs, 1)
		require.Equal(t, []gl.Enum{gl.COLOR_ATTACHMENT0 + 1, gl.COLOR_ATTACHMENT0}, bufs[0].Args[0])

		return nil
	})
}

func TestClear(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		fb, err := framebuffer.NewSimpleFramebuffer(cc, framebuffer.TextureLevel(newColor(t, cc, 32, 32)), framebuffer.DepthStencil{})
		require.NoError(t, err)

		require.ErrorIs(t, fb.Clear(cc, framebuffer.ClearAll(0, 0, 0, 1)), drawparams.ErrNoDepthBuffer)

		f.Reset()
		p := framebuffer.ClearColor(0.5, 0, 0, 1)
		p.Rect = &drawparams.Rect{Left: 4, Bottom: 4, Width: 8, Height: 8}
		require.NoError(t, fb.Clear(cc, p))

		require.True(t, cc.IsEnabled(gl.SCISSOR_TEST))
		require.Equal(t, [4]int{4, 4, 8, 8}, cc.State.Scissor)

		clears := f.CallsNamed("Clear")
		require.Len(t, clears, 1)
		require.Equal(t, gl.Enum(gl.COLOR_BUFFER_BIT), clears[0].Args[0])

		// Clearing the window
		def := framebuffer.NewDefaultFramebuffer(ctx, framebuffer.DefaultFramebufferOptions{Depth: true, Stencil: true})
		w, h := def.Dimensions()
		require.Equal(t, 800, w)
		require.Equal(t, 600, h)

		f.Reset()
		require.NoError(t, def.Clear(cc, framebuffer.ClearAll(0, 0, 0, 1)))
		require.False(t, cc.IsEnabled(gl.SCISSOR_TEST))
		require.Equal(t, uint32(0), cc.State.DrawFramebuffer)
		require.Equal(t, gl.Enum(gl.COLOR_BUFFER_BIT|gl.DEPTH_BUFFER_BIT|gl.STENCIL_BUFFER_BIT), f.CallsNamed("Clear")[0].Args[0])

		return nil
	})
}

func TestBlitAndReadPixels(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		src, err := framebuffer.NewSimpleFramebuffer(cc, framebuffer.TextureLevel(newColor(t, cc, 64, 32)), framebuffer.DepthStencil{})
		require.NoError(t, err)

		def := framebuffer.NewDefaultFramebuffer(ctx, framebuffer.DefaultFramebufferOptions{})

		f.Reset()
		require.NoError(t, def.FillFrom(cc, src, textures.MagnifyFilter_Linear))

		blits := f.CallsNamed("BlitFramebuffer")
		require.Len(t, blits, 1)
		require.Equal(t, []any{0, 0, 64, 32, 0, 0, 800, 600, gl.Enum(gl.COLOR_BUFFER_BIT), gl.Enum(gl.LINEAR)}, blits[0].Args)
		require.Equal(t, uint32(0), cc.State.DrawFramebuffer)
		require.NotEqual(t, uint32(0), cc.State.ReadFramebuffer)

		// Flipped copy into a corner
		f.Reset()
		require.NoError(t, src.BlitColor(cc, drawparams.Rect{Width: 32, Height: 32}, def, framebuffer.BlitTarget{Left: 0, Bottom: 32, Width: 32, Height: -32}, textures.MagnifyFilter_Nearest))
		require.Equal(t, []any{0, 0, 32, 32, 0, 32, 32, 0, gl.Enum(gl.COLOR_BUFFER_BIT), gl.Enum(gl.NEAREST)}, f.CallsNamed("BlitFramebuffer")[0].Args)

		f.ReadPixelsFill = 7
		img, err := src.ReadPixels(cc, drawparams.Rect{Left: 1, Bottom: 2, Width: 4, Height: 3})
		require.NoError(t, err)
		require.Equal(t, 4, img.Width)
		require.Equal(t, 3, img.Height)
		require.Len(t, img.Data, 4*3*4)
		require.Equal(t, byte(7), img.Data[0])

		_, err = src.ReadPixels(cc, drawparams.Rect{Left: 60, Width: 8, Height: 8})
		require.ErrorIs(t, err, framebuffer.ErrReadOutOfBounds)

		// Depth only framebuffers have nothing to read
		depthOnly, err := framebuffer.NewSimpleFramebuffer(cc, framebuffer.Attachment{}, framebuffer.DepthStencil{Depth: framebuffer.RenderbufferAttachment(newDepth(t, cc, 8, 8))})
		require.NoError(t, err)
		_, err = depthOnly.ReadPixels(cc, drawparams.Rect{Width: 8, Height: 8})
		require.ErrorIs(t, err, framebuffer.ErrNoColorBuffer)

		return nil
	})
}

func TestEmptyFramebuffer(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		fb, err := framebuffer.NewEmptyFramebuffer(cc, 256, 128, 0, 4, true)
		require.NoError(t, err)

		params := f.CallsNamed("FramebufferParameteri")
		require.Len(t, params, 4)
		require.Equal(t, gl.Enum(gl.FRAMEBUFFER_DEFAULT_WIDTH), params[0].Args[1])
		require.Equal(t, 256, params[0].Args[2])
		require.Equal(t, 1, params[3].Args[2])

		w, h := fb.Dimensions()
		require.Equal(t, 256, w)
		require.Equal(t, 128, h)
		require.False(t, fb.HasDepthBuffer())

		_, err = fb.ReadPixels(cc, drawparams.Rect{Width: 1, Height: 1})
		require.ErrorIs(t, err, framebuffer.ErrNoColorBuffer)

		_, err = framebuffer.NewEmptyFramebuffer(cc, 1<<20, 128, 0, 0, false)
		require.ErrorIs(t, err, framebuffer.ErrFramebufferTooLarge)

		return nil
	})

	old, _ := gltest.NewContext(t, "3.3.0 Fake")
	gltest.Exec(t, old, func(cc *glcontext.CommandContext) error {
		_, err := framebuffer.NewEmptyFramebuffer(cc, 256, 128, 0, 0, false)
		require.ErrorIs(t, err, framebuffer.ErrNoAttachmentsUnsupported)
		return nil
	})
}
