package textures

import (
	"errors"
	"fmt"

	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

var (
	ErrNotLayered      = errors.New("textures: texture has no layers to select")
	ErrNotCube         = errors.New("textures: texture is not a cube map")
	ErrLayerOutOfRange = errors.New("textures: layer does not exist")
)

// TextureImage is one mip level of a texture, optionally narrowed to a
// single layer, 3D slice or cube face. It is what framebuffers attach.
type TextureImage struct {
	tex   *Texture
	level int
	// layer is -1 for the whole level. Attaching a whole level of a layered
	// texture makes a layered attachment.
	layer int
	face  bool
}

func (t *Texture) Mip(level int) TextureImage {
	return TextureImage{tex: t, level: level, layer: -1}
}

func (t *Texture) MainLevel() TextureImage {
	return t.Mip(0)
}

// Layer selects an array layer or 3D slice. Cube arrays are indexed by
// layer-face, cube*6+face.
func (ti TextureImage) Layer(i int) TextureImage {
	ti.layer = i
	ti.face = false
	return ti
}

// Face selects a face of a cube map
func (ti TextureImage) Face(f CubeFace) TextureImage {
	ti.layer = int(f)
	ti.face = true
	return ti
}

func (ti TextureImage) Texture() *Texture {
	return ti.tex
}

func (ti TextureImage) Level() int {
	return ti.level
}

// LayerIndex is the selected layer or face, -1 when the whole level is used
func (ti TextureImage) LayerIndex() int {
	return ti.layer
}

// IsLayered is true for whole levels of layered textures
func (ti TextureImage) IsLayered() bool {
	return ti.layer < 0 && ti.tex.dims.IsLayered()
}

// Size is the 2D size of the image
func (ti TextureImage) Size() (width, height int) {
	w, h, _ := ti.tex.LevelSize(ti.level)
	return w, h
}

// Samples is 0 for images that are not multisampled
func (ti TextureImage) Samples() int {
	return ti.tex.samples
}

func (ti TextureImage) Format() Format {
	return ti.tex.format
}

// Check verifies the level and layer exist on a live texture
func (ti TextureImage) Check(cc *glcontext.CommandContext) error {

	t := ti.tex
	if t == nil {
		return glcontext.ErrDeleted
	}

	if err := t.check(cc); err != nil {
		return err
	}

	if err := t.checkLevel(ti.level); err != nil {
		return err
	}

	if ti.layer < 0 {
		return nil
	}

	if ti.face && t.dims != Dimensions_Cube {
		return fmt.Errorf("%w: %s texture", ErrNotCube, t.dims)
	}

	if !t.dims.IsLayered() {
		return fmt.Errorf("%w: %s texture", ErrNotLayered, t.dims)
	}

	_, _, d := t.LevelSize(ti.level)
	if ti.layer >= d {
		return fmt.Errorf("%w: layer %d of %d", ErrLayerOutOfRange, ti.layer, d)
	}

	return nil
}

// Attach attaches the image to the framebuffer bound to fbTarget
func (ti TextureImage) Attach(cc *glcontext.CommandContext, fbTarget, attachment gl.Enum) {

	t := ti.tex
	switch {
	case ti.layer >= 0 && t.dims == Dimensions_Cube:
		cc.GL.FramebufferTexture2D(fbTarget, attachment, CubeFace(ti.layer).Target(), t.id, ti.level)

	case ti.layer >= 0:
		cc.GL.FramebufferTextureLayer(fbTarget, attachment, t.id, ti.level, ti.layer)

	case t.dims == Dimensions_2D || t.dims == Dimensions_2DMultisample:
		cc.GL.FramebufferTexture2D(fbTarget, attachment, t.Target(), t.id, ti.level)

	default:
		cc.GL.FramebufferTexture(fbTarget, attachment, t.id, ti.level)
	}
}

func (ti TextureImage) String() string {

	if ti.tex == nil {
		return "TextureImage(nil)"
	}

	if ti.layer < 0 {
		return fmt.Sprintf("texture %d level %d", ti.tex.id, ti.level)
	}

	return fmt.Sprintf("texture %d level %d layer %d", ti.tex.id, ti.level, ti.layer)
}
