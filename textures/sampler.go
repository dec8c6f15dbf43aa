package textures

import (
	"fmt"

	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

type Wrap uint8

const (
	Wrap_Repeat Wrap = iota
	Wrap_MirroredRepeat
	Wrap_ClampToEdge
	Wrap_ClampToBorder
	Wrap_MirrorClampToEdge
)

func (w Wrap) ToGL() gl.Enum {
	switch w {
	case Wrap_MirroredRepeat:
		return gl.MIRRORED_REPEAT
	case Wrap_ClampToEdge:
		return gl.CLAMP_TO_EDGE
	case Wrap_ClampToBorder:
		return gl.CLAMP_TO_BORDER
	case Wrap_MirrorClampToEdge:
		return gl.MIRROR_CLAMP_TO_EDGE
	default:
		return gl.REPEAT
	}
}

type MinifyFilter uint8

const (
	MinifyFilter_LinearMipmapLinear MinifyFilter = iota
	MinifyFilter_LinearMipmapNearest
	MinifyFilter_NearestMipmapLinear
	MinifyFilter_NearestMipmapNearest
	MinifyFilter_Linear
	MinifyFilter_Nearest
)

func (f MinifyFilter) ToGL() gl.Enum {
	switch f {
	case MinifyFilter_LinearMipmapNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case MinifyFilter_NearestMipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case MinifyFilter_NearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case MinifyFilter_Linear:
		return gl.LINEAR
	case MinifyFilter_Nearest:
		return gl.NEAREST
	default:
		return gl.LINEAR_MIPMAP_LINEAR
	}
}

// withoutMipmaps drops the mipmap part of the filter
func (f MinifyFilter) withoutMipmaps() MinifyFilter {
	switch f {
	case MinifyFilter_LinearMipmapLinear, MinifyFilter_LinearMipmapNearest:
		return MinifyFilter_Linear
	case MinifyFilter_NearestMipmapLinear, MinifyFilter_NearestMipmapNearest:
		return MinifyFilter_Nearest
	default:
		return f
	}
}

func (f MinifyFilter) nearest() MinifyFilter {
	switch f {
	case MinifyFilter_LinearMipmapLinear, MinifyFilter_NearestMipmapLinear:
		return MinifyFilter_NearestMipmapLinear
	case MinifyFilter_LinearMipmapNearest, MinifyFilter_NearestMipmapNearest:
		return MinifyFilter_NearestMipmapNearest
	default:
		return MinifyFilter_Nearest
	}
}

type MagnifyFilter uint8

const (
	MagnifyFilter_Linear MagnifyFilter = iota
	MagnifyFilter_Nearest
)

func (f MagnifyFilter) ToGL() gl.Enum {
	if f == MagnifyFilter_Nearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

// SamplerBehavior describes how a texture is sampled. It is comparable and
// is the key of the sampler object cache.
type SamplerBehavior struct {
	WrapS, WrapT, WrapR Wrap
	MinFilter           MinifyFilter
	MagFilter           MagnifyFilter
	// MaxAnisotropy of 0 or 1 disables anisotropic filtering
	MaxAnisotropy uint8
	// DepthCompare enables depth comparison with this function (gl.LESS etc.)
	// when not 0. Only meaningful for depth textures.
	DepthCompare gl.Enum
}

func DefaultSamplerBehavior() SamplerBehavior {
	return SamplerBehavior{
		WrapS:         Wrap_MirroredRepeat,
		WrapT:         Wrap_MirroredRepeat,
		WrapR:         Wrap_MirroredRepeat,
		MinFilter:     MinifyFilter_LinearMipmapLinear,
		MagFilter:     MagnifyFilter_Linear,
		MaxAnisotropy: 1,
	}
}

// UsesObject is false as samplers do not reference other objects
func (b SamplerBehavior) UsesObject(kind glcontext.ObjectKind, name uint32) bool {
	return false
}

// adjustedFor fixes filters that would make the texture incomplete
func (b SamplerBehavior) adjustedFor(t *Texture) SamplerBehavior {

	if t.levels <= 1 {
		b.MinFilter = b.MinFilter.withoutMipmaps()
	}

	if t.format.IsInteger() {
		b.MinFilter = b.MinFilter.nearest()
		b.MagFilter = MagnifyFilter_Nearest
	}

	return b
}

func (b SamplerBehavior) String() string {
	return fmt.Sprintf("wrap=(%d,%d,%d) min=%d mag=%d aniso=%d compare=0x%X", b.WrapS, b.WrapT, b.WrapR, b.MinFilter, b.MagFilter, b.MaxAnisotropy, b.DepthCompare)
}

func (b SamplerBehavior) anisotropy(caps *glcontext.Capabilities) float32 {

	if b.MaxAnisotropy <= 1 || !caps.SupportsAnisotropy() {
		return 0
	}

	return min(float32(b.MaxAnisotropy), caps.Limits.MaxTextureMaxAnisotropy)
}

// Sampler returns a sampler object for b, creating and caching it on first use
func Sampler(cc *glcontext.CommandContext, b SamplerBehavior) (uint32, error) {

	cache := cc.SamplerCache()
	if s, ok := cache.Get(b); ok {
		return s, nil
	}

	s := cc.GL.GenSampler()
	if s == 0 {
		return 0, fmt.Errorf("%w: sampler", glcontext.ErrObjectCreation)
	}

	cc.GL.SamplerParameteri(s, gl.TEXTURE_WRAP_S, int(b.WrapS.ToGL()))
	cc.GL.SamplerParameteri(s, gl.TEXTURE_WRAP_T, int(b.WrapT.ToGL()))
	cc.GL.SamplerParameteri(s, gl.TEXTURE_WRAP_R, int(b.WrapR.ToGL()))
	cc.GL.SamplerParameteri(s, gl.TEXTURE_MIN_FILTER, int(b.MinFilter.ToGL()))
	cc.GL.SamplerParameteri(s, gl.TEXTURE_MAG_FILTER, int(b.MagFilter.ToGL()))

	if a := b.anisotropy(cc.Caps); a > 0 {
		cc.GL.SamplerParameterf(s, gl.TEXTURE_MAX_ANISOTROPY, a)
	}

	if b.DepthCompare != 0 {
		cc.GL.SamplerParameteri(s, gl.TEXTURE_COMPARE_MODE, int(gl.COMPARE_REF_TO_TEXTURE))
		cc.GL.SamplerParameteri(s, gl.TEXTURE_COMPARE_FUNC, int(b.DepthCompare))
	}

	cache.Add(b, s)
	return s, nil
}

// applyTexParams sets the behavior on the texture bound to target. It is
// the path for contexts without sampler objects.
func applyTexParams(cc *glcontext.CommandContext, target gl.Enum, b SamplerBehavior) {

	cc.GL.TexParameteri(target, gl.TEXTURE_WRAP_S, int(b.WrapS.ToGL()))
	cc.GL.TexParameteri(target, gl.TEXTURE_WRAP_T, int(b.WrapT.ToGL()))
	if target == gl.TEXTURE_3D || target == gl.TEXTURE_CUBE_MAP || target == gl.TEXTURE_CUBE_MAP_ARRAY {
		cc.GL.TexParameteri(target, gl.TEXTURE_WRAP_R, int(b.WrapR.ToGL()))
	}

	cc.GL.TexParameteri(target, gl.TEXTURE_MIN_FILTER, int(b.MinFilter.ToGL()))
	cc.GL.TexParameteri(target, gl.TEXTURE_MAG_FILTER, int(b.MagFilter.ToGL()))

	if a := b.anisotropy(cc.Caps); a > 0 {
		cc.GL.TexParameterf(target, gl.TEXTURE_MAX_ANISOTROPY, a)
	}

	if b.DepthCompare != 0 {
		cc.GL.TexParameteri(target, gl.TEXTURE_COMPARE_MODE, int(gl.COMPARE_REF_TO_TEXTURE))
		cc.GL.TexParameteri(target, gl.TEXTURE_COMPARE_FUNC, int(b.DepthCompare))
	} else {
		cc.GL.TexParameteri(target, gl.TEXTURE_COMPARE_MODE, int(gl.NONE))
	}
}
