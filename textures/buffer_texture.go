package textures

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

var ErrBufferTextureFormat = errors.New("textures: format can not be used by buffer textures")

// BufferTexture exposes a buffer to shaders as a 1D texelFetch-able
// texture. The buffer stays owned by the caller.
type BufferTexture struct {
	ctx    *glcontext.Context
	id     uint32
	buf    *buffers.Alloc
	format Format
}

func NewBufferTexture(cc *glcontext.CommandContext, buf *buffers.Alloc, format Format) (*BufferTexture, error) {

	caps := cc.Caps
	if !caps.SupportsBufferTextures() {
		return nil, fmt.Errorf("%w: buffer", ErrDimensionsNotSupported)
	}

	if buf.IsDeleted() {
		return nil, glcontext.ErrDeleted
	}

	if err := cc.CheckOwner(buf.Context()); err != nil {
		return nil, err
	}

	if !format.IsColor() || format.Kind == FormatKind_SRGB || format.Components == 3 {
		return nil, fmt.Errorf("%w: %s", ErrBufferTextureFormat, format)
	}

	texels := buf.Size() / format.BytesPerPixel
	if texels > caps.Limits.MaxTextureBufferSize {
		return nil, fmt.Errorf("%w: %d texels exceeds %d", ErrTooLarge, texels, caps.Limits.MaxTextureBufferSize)
	}

	bt := &BufferTexture{
		ctx:    cc.Context(),
		buf:    buf,
		format: format,
	}

	bt.id = cc.GL.GenTexture()
	if bt.id == 0 {
		return nil, fmt.Errorf("%w: texture", glcontext.ErrObjectCreation)
	}

	cc.BindTexture(gl.TEXTURE_BUFFER, bt.id)
	cc.GL.TexBuffer(gl.TEXTURE_BUFFER, format.Internal, buf.Id())

	runtime.SetFinalizer(bt, (*BufferTexture).finalize)
	return bt, nil
}

func (bt *BufferTexture) finalize() {
	bt.ctx.Release(glcontext.ObjectKind_Texture, bt.id)
}

func (bt *BufferTexture) Id() uint32 {
	return bt.id
}

func (bt *BufferTexture) Buffer() *buffers.Alloc {
	return bt.buf
}

func (bt *BufferTexture) Format() Format {
	return bt.format
}

// Len is the number of texels shaders can fetch
func (bt *BufferTexture) Len() int {
	return bt.buf.Size() / bt.format.BytesPerPixel
}

func (bt *BufferTexture) IsDeleted() bool {
	return bt.id == 0
}

func (bt *BufferTexture) check(cc *glcontext.CommandContext) error {

	if bt.id == 0 || bt.buf.IsDeleted() {
		return glcontext.ErrDeleted
	}

	return cc.CheckOwner(bt.ctx)
}

func (bt *BufferTexture) BindToUnit(cc *glcontext.CommandContext, unit uint32) error {

	if err := bt.check(cc); err != nil {
		return err
	}

	if bt.buf.IsMapped() {
		return buffers.ErrBufferMapped
	}

	cc.BindTextureUnit(unit, gl.TEXTURE_BUFFER, bt.id)
	return nil
}

func (bt *BufferTexture) Delete(cc *glcontext.CommandContext) error {

	if bt.id == 0 {
		return nil
	}

	if err := cc.CheckOwner(bt.ctx); err != nil {
		return err
	}

	cc.DeleteTexture(bt.id)
	bt.id = 0
	runtime.SetFinalizer(bt, nil)
	return nil
}
