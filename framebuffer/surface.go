package framebuffer

import (
	"errors"
	"fmt"

	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/drawparams"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/shaders"
	"github.com/bloeys/ngl/textures"
	"github.com/bloeys/ngl/uniforms"
)

var (
	ErrNoColorBuffer      = errors.New("framebuffer: surface has no color buffer")
	ErrBadOutputName      = errors.New("framebuffer: outputs need unique, non-empty names")
	ErrBlitNotSupported   = errors.New("framebuffer: blitting needs GL 3.0, GLES 3.0 or ARB_framebuffer_object")
	ErrBlitFilter         = errors.New("framebuffer: integer and multisampled colors can only be blitted with nearest filtering")
	ErrBlitSamples        = errors.New("framebuffer: blitting from a multisampled surface needs equal sizes and a single sampled target")
	ErrReadOutOfBounds    = errors.New("framebuffer: read rectangle is outside the surface")
	ErrReadMultisampled   = errors.New("framebuffer: multisampled surfaces can not be read, blit them to a single sampled one first")
)

// target is what a surface needs from the framebuffer behind it
type target interface {
	// bindDraw binds the framebuffer for drawing. prog selects which
	// fragment outputs go to which attachment, nil writes output i to
	// attachment i.
	bindDraw(cc *glcontext.CommandContext, prog *shaders.Program) error
	// bindRead binds the framebuffer for reading and returns the format of
	// its color buffer
	bindRead(cc *glcontext.CommandContext) (textures.Format, error)
	surfaceInfo() drawparams.SurfaceInfo
	// uses reports whether t is attached
	uses(t *textures.Texture) bool
}

// Surface is anything that can be drawn to
type Surface interface {
	Clear(cc *glcontext.CommandContext, p ClearParams) error
	Draw(cc *glcontext.CommandContext, vertices Vertices, indices buffers.Indices, prog *shaders.Program, u *uniforms.Uniforms, params *drawparams.DrawParameters) error

	BlitColor(cc *glcontext.CommandContext, src drawparams.Rect, dst Surface, dstRect BlitTarget, filter textures.MagnifyFilter) error
	BlitWholeColorTo(cc *glcontext.CommandContext, dst Surface, dstRect BlitTarget, filter textures.MagnifyFilter) error
	FillFrom(cc *glcontext.CommandContext, src Surface, filter textures.MagnifyFilter) error

	ReadPixels(cc *glcontext.CommandContext, rect drawparams.Rect) (textures.RawImage, error)

	Dimensions() (width, height int)
	HasDepthBuffer() bool
	HasStencilBuffer() bool

	fbTarget() target
}

// BlitTarget is the destination of a blit. Negative sizes flip the image.
type BlitTarget struct {
	Left, Bottom  int
	Width, Height int
}

// ClearParams selects what Clear writes. Nil fields are left alone.
type ClearParams struct {
	// Rect limits the clear, nil clears everything
	Rect    *drawparams.Rect
	Color   *[4]float32
	Depth   *float32
	Stencil *int
}

func ClearColor(r, g, b, a float32) ClearParams {
	return ClearParams{Color: &[4]float32{r, g, b, a}}
}

// ClearAll clears color, depth to 1 and stencil to 0
func ClearAll(r, g, b, a float32) ClearParams {
	d, s := float32(1), 0
	return ClearParams{Color: &[4]float32{r, g, b, a}, Depth: &d, Stencil: &s}
}

// surface implements Surface over a target
type surface struct {
	t target
}

func (s *surface) fbTarget() target {
	return s.t
}

// Clear ignores the color, depth and stencil masks of earlier draws, but
// not a scissor rectangle given in p
func (s *surface) Clear(cc *glcontext.CommandContext, p ClearParams) error {

	info := s.t.surfaceInfo()
	if p.Depth != nil && !info.HasDepth {
		return drawparams.ErrNoDepthBuffer
	}

	if p.Stencil != nil && !info.HasStencil {
		return drawparams.ErrNoStencilBuffer
	}

	if err := s.t.bindDraw(cc, nil); err != nil {
		return err
	}

	if p.Rect != nil {
		cc.Enable(gl.SCISSOR_TEST)
		cc.Scissor(p.Rect.Left, p.Rect.Bottom, p.Rect.Width, p.Rect.Height)
	} else {
		cc.Disable(gl.SCISSOR_TEST)
	}

	if cc.Caps.SupportsTransformFeedback() {
		cc.Disable(gl.RASTERIZER_DISCARD)
	}

	var mask gl.Enum
	if c := p.Color; c != nil {
		cc.ColorMask(true, true, true, true)
		cc.ClearColor(c[0], c[1], c[2], c[3])
		mask |= gl.COLOR_BUFFER_BIT
	}

	if p.Depth != nil {
		cc.DepthMask(true)
		cc.ClearDepth(*p.Depth)
		mask |= gl.DEPTH_BUFFER_BIT
	}

	if p.Stencil != nil {
		cc.StencilMask(gl.FRONT, ^uint32(0))
		cc.StencilMask(gl.BACK, ^uint32(0))
		cc.ClearStencil(*p.Stencil)
		mask |= gl.STENCIL_BUFFER_BIT
	}

	if mask != 0 {
		cc.GL.Clear(mask)
	}

	return nil
}

// BlitColor copies src of this surface's color buffer into dstRect of dst
func (s *surface) BlitColor(cc *glcontext.CommandContext, src drawparams.Rect, dst Surface, dstRect BlitTarget, filter textures.MagnifyFilter) error {
	return blit(cc, s.t, src, dst.fbTarget(), dstRect, filter)
}

// BlitWholeColorTo copies all of this surface's color buffer into dstRect of dst
func (s *surface) BlitWholeColorTo(cc *glcontext.CommandContext, dst Surface, dstRect BlitTarget, filter textures.MagnifyFilter) error {

	info := s.t.surfaceInfo()
	return blit(cc, s.t, drawparams.Rect{Width: info.Width, Height: info.Height}, dst.fbTarget(), dstRect, filter)
}

// FillFrom stretches the whole color buffer of src over this surface
func (s *surface) FillFrom(cc *glcontext.CommandContext, src Surface, filter textures.MagnifyFilter) error {

	info := s.t.surfaceInfo()
	srcInfo := src.fbTarget().surfaceInfo()
	return blit(cc, src.fbTarget(), drawparams.Rect{Width: srcInfo.Width, Height: srcInfo.Height}, s.t, BlitTarget{Width: info.Width, Height: info.Height}, filter)
}

func blit(cc *glcontext.CommandContext, src target, srcRect drawparams.Rect, dst target, dstRect BlitTarget, filter textures.MagnifyFilter) error {

	if !cc.Caps.SupportsBlitFramebuffer() {
		return ErrBlitNotSupported
	}

	srcSamples := samplesOf(src)
	dstSamples := samplesOf(dst)

	format, err := src.bindRead(cc)
	if err != nil {
		return err
	}

	if (format.IsInteger() || srcSamples > 0) && filter != textures.MagnifyFilter_Nearest {
		return ErrBlitFilter
	}

	if srcSamples > 0 && (dstSamples > 0 || srcRect.Width != dstRect.Width || srcRect.Height != dstRect.Height) {
		return ErrBlitSamples
	}

	if err := dst.bindDraw(cc, nil); err != nil {
		return err
	}

	// Blits are cut by the scissor test
	cc.Disable(gl.SCISSOR_TEST)
	cc.ColorMask(true, true, true, true)

	cc.GL.BlitFramebuffer(
		srcRect.Left, srcRect.Bottom, srcRect.Left+srcRect.Width, srcRect.Bottom+srcRect.Height,
		dstRect.Left, dstRect.Bottom, dstRect.Left+dstRect.Width, dstRect.Bottom+dstRect.Height,
		gl.COLOR_BUFFER_BIT, filter.ToGL(),
	)

	return nil
}

// ReadPixels reads rect of the color buffer into client memory, rows bottom
// to top
func (s *surface) ReadPixels(cc *glcontext.CommandContext, rect drawparams.Rect) (textures.RawImage, error) {

	info := s.t.surfaceInfo()
	if rect.Left < 0 || rect.Bottom < 0 || rect.Width <= 0 || rect.Height <= 0 ||
		rect.Left+rect.Width > info.Width || rect.Bottom+rect.Height > info.Height {
		return textures.RawImage{}, fmt.Errorf("%w: %+v on a %dx%d surface", ErrReadOutOfBounds, rect, info.Width, info.Height)
	}

	if !hasColor(s.t) {
		return textures.RawImage{}, ErrNoColorBuffer
	}

	if samplesOf(s.t) > 0 {
		return textures.RawImage{}, ErrReadMultisampled
	}

	format, err := s.t.bindRead(cc)
	if err != nil {
		return textures.RawImage{}, err
	}

	img := textures.NewRawImage(format, rect.Width, rect.Height, 1)

	// Client memory, not a pixel buffer offset
	if b, ok := cc.State.Buffers[gl.PIXEL_PACK_BUFFER]; ok && b != 0 {
		cc.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	}
	cc.PixelStore(gl.PACK_ALIGNMENT, 1)

	cc.GL.ReadPixels(rect.Left, rect.Bottom, rect.Width, rect.Height, format.ClientFormat, format.ClientType, img.Data)
	return img, nil
}

func samplesOf(t target) int {

	switch fb := t.(type) {
	case *attachedFramebuffer:
		return fb.info.samples
	case *EmptyFramebuffer:
		return fb.samples
	}

	return 0
}

func hasColor(t target) bool {

	switch fb := t.(type) {
	case *attachedFramebuffer:
		return len(fb.colors) > 0
	case *EmptyFramebuffer:
		return false
	}

	return true
}
