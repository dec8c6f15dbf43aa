package textures

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

var ErrRenderbuffersNotSupported = errors.New("textures: renderbuffers need framebuffer objects (GL 3.0, GLES 2.0 or ARB_framebuffer_object)")

// Renderbuffer is a render target that can not be sampled. Its format can
// be a color, depth, stencil or depth-stencil one.
type Renderbuffer struct {
	ctx     *glcontext.Context
	id      uint32
	format  Format
	width   int
	height  int
	samples int
}

func NewRenderbuffer(cc *glcontext.CommandContext, format Format, width, height int) (*Renderbuffer, error) {
	return newRenderbuffer(cc, format, width, height, 0)
}

func NewMultisampleRenderbuffer(cc *glcontext.CommandContext, format Format, width, height, samples int) (*Renderbuffer, error) {

	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSamples, samples)
	}

	return newRenderbuffer(cc, format, width, height, samples)
}

// NewDepthRenderbuffer makes a renderbuffer with a depth, stencil or
// depth-stencil format
func NewDepthRenderbuffer(cc *glcontext.CommandContext, format Format, width, height int) (*Renderbuffer, error) {
	return NewMultisampleDepthRenderbuffer(cc, format, width, height, 0)
}

func NewMultisampleDepthRenderbuffer(cc *glcontext.CommandContext, format Format, width, height, samples int) (*Renderbuffer, error) {

	if format.IsColor() {
		return nil, fmt.Errorf("%w: %s is a color format", ErrImageFormatMismatch, format)
	}

	return newRenderbuffer(cc, format, width, height, samples)
}

func newRenderbuffer(cc *glcontext.CommandContext, format Format, width, height, samples int) (*Renderbuffer, error) {

	caps := cc.Caps
	if !caps.SupportsFramebufferObject() {
		return nil, ErrRenderbuffersNotSupported
	}

	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	if width > caps.Limits.MaxRenderbufferSize || height > caps.Limits.MaxRenderbufferSize {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrTooLarge, width, height, caps.Limits.MaxRenderbufferSize)
	}

	if samples > caps.Limits.MaxSamples {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrInvalidSamples, samples, caps.Limits.MaxSamples)
	}

	resolved, err := format.Resolve(caps)
	if err != nil {
		return nil, err
	}

	rb := &Renderbuffer{
		ctx:     cc.Context(),
		format:  resolved,
		width:   width,
		height:  height,
		samples: samples,
	}

	rb.id = cc.GL.GenRenderbuffer()
	if rb.id == 0 {
		return nil, fmt.Errorf("%w: renderbuffer", glcontext.ErrObjectCreation)
	}

	cc.BindRenderbuffer(rb.id)
	if samples > 0 {
		cc.GL.RenderbufferStorageMultisample(gl.RENDERBUFFER, samples, resolved.Internal, width, height)
	} else {
		cc.GL.RenderbufferStorage(gl.RENDERBUFFER, resolved.Internal, width, height)
	}

	runtime.SetFinalizer(rb, (*Renderbuffer).finalize)
	return rb, nil
}

func (rb *Renderbuffer) finalize() {
	rb.ctx.Release(glcontext.ObjectKind_Renderbuffer, rb.id)
}

func (rb *Renderbuffer) Id() uint32 {
	return rb.id
}

func (rb *Renderbuffer) Context() *glcontext.Context {
	return rb.ctx
}

func (rb *Renderbuffer) Format() Format {
	return rb.format
}

func (rb *Renderbuffer) Size() (width, height int) {
	return rb.width, rb.height
}

func (rb *Renderbuffer) Samples() int {
	return rb.samples
}

func (rb *Renderbuffer) IsDeleted() bool {
	return rb.id == 0
}

func (rb *Renderbuffer) Check(cc *glcontext.CommandContext) error {

	if rb.id == 0 {
		return glcontext.ErrDeleted
	}

	return cc.CheckOwner(rb.ctx)
}

// Attach attaches the renderbuffer to the framebuffer bound to fbTarget
func (rb *Renderbuffer) Attach(cc *glcontext.CommandContext, fbTarget, attachment gl.Enum) {
	cc.GL.FramebufferRenderbuffer(fbTarget, attachment, gl.RENDERBUFFER, rb.id)
}

func (rb *Renderbuffer) Delete(cc *glcontext.CommandContext) error {

	if rb.id == 0 {
		return nil
	}

	if err := cc.CheckOwner(rb.ctx); err != nil {
		return err
	}

	cc.DeleteRenderbuffer(rb.id)
	rb.id = 0
	runtime.SetFinalizer(rb, nil)
	return nil
}
