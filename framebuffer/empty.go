package framebuffer

import (
	"fmt"

	"github.com/bloeys/ngl/drawparams"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/shaders"
	"github.com/bloeys/ngl/textures"
)

// EmptyFramebuffer has no attachments. Fragment shaders only have side
// effects through images, storage buffers and atomic counters.
type EmptyFramebuffer struct {
	surface

	ctx            *glcontext.Context
	width, height  int
	layers         int
	samples        int
	fixedLocations bool
}

// NewEmptyFramebuffer makes a framebuffer of the given size. layers is 0
// for a non-layered framebuffer.
func NewEmptyFramebuffer(cc *glcontext.CommandContext, width, height, layers, samples int, fixedSampleLocations bool) (*EmptyFramebuffer, error) {

	caps := cc.Caps
	if !caps.SupportsFramebufferNoAttachments() {
		return nil, ErrNoAttachmentsUnsupported
	}

	if width <= 0 || height <= 0 || layers < 0 || samples < 0 {
		return nil, &ValidationError{Err: ErrDimensionsMismatch, Detail: fmt.Sprintf("invalid size %dx%d with %d layers and %d samples", width, height, layers, samples)}
	}

	l := &caps.Limits
	if width > l.MaxFramebufferWidth || height > l.MaxFramebufferHeight || samples > l.MaxSamples {
		return nil, &ValidationError{Err: ErrFramebufferTooLarge, Detail: fmt.Sprintf("%dx%d with %d samples", width, height, samples)}
	}

	fb := &EmptyFramebuffer{
		ctx:            cc.Context(),
		width:          width,
		height:         height,
		layers:         layers,
		samples:        samples,
		fixedLocations: fixedSampleLocations,
	}
	fb.surface = surface{t: fb}

	if err := fb.bindDraw(cc, nil); err != nil {
		return nil, err
	}

	return fb, nil
}

func (fb *EmptyFramebuffer) key() fboKey {
	return fboKey{
		width:          fb.width,
		height:         fb.height,
		layers:         fb.layers,
		samples:        fb.samples,
		fixedLocations: fb.fixedLocations,
	}
}

func (fb *EmptyFramebuffer) bindDraw(cc *glcontext.CommandContext, prog *shaders.Program) error {

	if err := cc.CheckOwner(fb.ctx); err != nil {
		return err
	}

	_, err := cachedFramebuffer(cc, gl.DRAW_FRAMEBUFFER, fb.key(), func(fbTarget gl.Enum) {

		f := cc.GL
		f.FramebufferParameteri(fbTarget, gl.FRAMEBUFFER_DEFAULT_WIDTH, fb.width)
		f.FramebufferParameteri(fbTarget, gl.FRAMEBUFFER_DEFAULT_HEIGHT, fb.height)
		f.FramebufferParameteri(fbTarget, gl.FRAMEBUFFER_DEFAULT_SAMPLES, fb.samples)
		if fb.layers > 0 {
			f.FramebufferParameteri(fbTarget, gl.FRAMEBUFFER_DEFAULT_LAYERS, fb.layers)
		}

		fixed := 0
		if fb.fixedLocations {
			fixed = 1
		}
		f.FramebufferParameteri(fbTarget, gl.FRAMEBUFFER_DEFAULT_FIXED_SAMPLE_LOCATIONS, fixed)
	})

	return err
}

func (fb *EmptyFramebuffer) bindRead(cc *glcontext.CommandContext) (textures.Format, error) {
	return textures.Format{}, ErrNoColorBuffer
}

func (fb *EmptyFramebuffer) surfaceInfo() drawparams.SurfaceInfo {
	return drawparams.SurfaceInfo{Width: fb.width, Height: fb.height}
}

func (fb *EmptyFramebuffer) uses(t *textures.Texture) bool {
	return false
}

func (fb *EmptyFramebuffer) Dimensions() (width, height int) {
	return fb.width, fb.height
}

func (fb *EmptyFramebuffer) Layers() int {
	return fb.layers
}

func (fb *EmptyFramebuffer) Samples() int {
	return fb.samples
}

func (fb *EmptyFramebuffer) HasDepthBuffer() bool {
	return false
}

func (fb *EmptyFramebuffer) HasStencilBuffer() bool {
	return false
}

// DefaultFramebuffer is the window surface. What it contains is decided
// when the window is created, so it is described rather than queried.
type DefaultFramebuffer struct {
	surface

	ctx        *glcontext.Context
	hasDepth   bool
	hasStencil bool
	srgb       bool
}

type DefaultFramebufferOptions struct {
	Depth   bool
	Stencil bool
	// Srgb turns on linear to sRGB conversion of fragment outputs
	Srgb bool
}

func NewDefaultFramebuffer(ctx *glcontext.Context, opts DefaultFramebufferOptions) *DefaultFramebuffer {

	fb := &DefaultFramebuffer{
		ctx:        ctx,
		hasDepth:   opts.Depth,
		hasStencil: opts.Stencil,
		srgb:       opts.Srgb,
	}
	fb.surface = surface{t: fb}

	return fb
}

func (fb *DefaultFramebuffer) bindDraw(cc *glcontext.CommandContext, prog *shaders.Program) error {

	if err := cc.CheckOwner(fb.ctx); err != nil {
		return err
	}

	cc.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	if cc.Caps.SupportsFramebufferSRGB() {
		cc.SetEnabled(gl.FRAMEBUFFER_SRGB, fb.srgb)
	}

	return nil
}

func (fb *DefaultFramebuffer) bindRead(cc *glcontext.CommandContext) (textures.Format, error) {

	if err := cc.CheckOwner(fb.ctx); err != nil {
		return textures.Format{}, err
	}

	cc.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	return textures.Format_RGBA8, nil
}

func (fb *DefaultFramebuffer) surfaceInfo() drawparams.SurfaceInfo {

	w, h := fb.Dimensions()
	return drawparams.SurfaceInfo{
		Width:      w,
		Height:     h,
		HasDepth:   fb.hasDepth,
		HasStencil: fb.hasStencil,
	}
}

func (fb *DefaultFramebuffer) uses(t *textures.Texture) bool {
	return false
}

// Dimensions is the current size of the window in pixels
func (fb *DefaultFramebuffer) Dimensions() (width, height int) {
	w, h := fb.ctx.FramebufferDimensions()
	return int(w), int(h)
}

func (fb *DefaultFramebuffer) HasDepthBuffer() bool {
	return fb.hasDepth
}

func (fb *DefaultFramebuffer) HasStencilBuffer() bool {
	return fb.hasStencil
}
