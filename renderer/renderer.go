package renderer

import (
	"errors"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/drawparams"
	"github.com/bloeys/ngl/framebuffer"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/logging"
	"github.com/bloeys/ngl/materials"
	"github.com/bloeys/ngl/meshes"
	"github.com/bloeys/ngl/shaders"
	"github.com/bloeys/ngl/textures"
	"github.com/bloeys/ngl/uniforms"
)

var ErrFrameFinished = errors.New("renderer: frame was already finished")

// Render draws meshes with materials onto a surface
type Render interface {
	DrawMesh(cc *glcontext.CommandContext, surf framebuffer.Surface, mesh *meshes.Mesh, modelMat *gglm.TrMat, mat *materials.Material) error
	DrawVertices(cc *glcontext.CommandContext, surf framebuffer.Surface, mat *materials.Material, vertices framebuffer.Vertices, indices buffers.Indices) error
	FrameEnd()
}

// Display hands out the frames of a window
type Display struct {
	ctx     *glcontext.Context
	fb      *framebuffer.DefaultFramebuffer
	current *Frame
}

func NewDisplay(ctx *glcontext.Context, opts framebuffer.DefaultFramebufferOptions) *Display {
	return &Display{
		ctx: ctx,
		fb:  framebuffer.NewDefaultFramebuffer(ctx, opts),
	}
}

func (d *Display) Context() *glcontext.Context {
	return d.ctx
}

// Framebuffer is the window surface outside of any frame, for reading back
// what was presented
func (d *Display) Framebuffer() *framebuffer.DefaultFramebuffer {
	return d.fb
}

// Draw starts a new frame. A frame left unfinished is dropped without
// being presented.
func (d *Display) Draw() *Frame {

	if d.current != nil && !d.current.finished {
		logging.WarnLog.Println("renderer: starting a frame while the previous one was never finished")
		d.current.finished = true
	}

	d.current = &Frame{DefaultFramebuffer: d.fb, ctx: d.ctx}
	return d.current
}

// Frame is the default framebuffer for the duration of one frame. Once
// finished, drawing to it fails.
type Frame struct {
	*framebuffer.DefaultFramebuffer

	ctx      *glcontext.Context
	finished bool
}

var _ framebuffer.Surface = &Frame{}

func (f *Frame) IsFinished() bool {
	return f.finished
}

func (f *Frame) Clear(cc *glcontext.CommandContext, p framebuffer.ClearParams) error {

	if f.finished {
		return ErrFrameFinished
	}

	return f.DefaultFramebuffer.Clear(cc, p)
}

func (f *Frame) Draw(cc *glcontext.CommandContext, vertices framebuffer.Vertices, indices buffers.Indices, prog *shaders.Program, u *uniforms.Uniforms, params *drawparams.DrawParameters) error {

	if f.finished {
		return ErrFrameFinished
	}

	return f.DefaultFramebuffer.Draw(cc, vertices, indices, prog, u, params)
}

func (f *Frame) FillFrom(cc *glcontext.CommandContext, src framebuffer.Surface, filter textures.MagnifyFilter) error {

	if f.finished {
		return ErrFrameFinished
	}

	return f.DefaultFramebuffer.FillFrom(cc, src, filter)
}

// Finish presents the frame. It must be called outside of Context.Exec.
func (f *Frame) Finish() error {

	if f.finished {
		return ErrFrameFinished
	}

	// A failed swap leaves the frame open so Finish can be retried
	if err := f.ctx.SwapBuffers(); err != nil {
		return err
	}

	f.finished = true
	return nil
}
