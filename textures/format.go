package textures

import (
	"errors"
	"fmt"

	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/logging"
)

var ErrFormatNotSupported = errors.New("textures: format is not supported by this context")

type FormatKind int

const (
	// FormatKind_Float covers float and normalized integer formats, which
	// shaders read through float samplers
	FormatKind_Float FormatKind = iota
	FormatKind_Int
	FormatKind_Uint
	FormatKind_SRGB
	FormatKind_Depth
	FormatKind_Stencil
	FormatKind_DepthStencil
)

func (k FormatKind) String() string {

	switch k {
	case FormatKind_Float:
		return "float"
	case FormatKind_Int:
		return "int"
	case FormatKind_Uint:
		return "uint"
	case FormatKind_SRGB:
		return "srgb"
	case FormatKind_Depth:
		return "depth"
	case FormatKind_Stencil:
		return "stencil"
	case FormatKind_DepthStencil:
		return "depth-stencil"
	default:
		return "unknown"
	}
}

// Format is a texture or renderbuffer format plus the client side layout
// used to upload and read it
type Format struct {
	Name         string
	Internal     gl.Enum
	ClientFormat gl.Enum
	ClientType   gl.Enum
	Kind         FormatKind
	// BytesPerPixel is the size of one pixel in client memory
	BytesPerPixel int
	Components    int
}

var (
	Format_R8     = Format{"R8", gl.R8, gl.RED, gl.UNSIGNED_BYTE, FormatKind_Float, 1, 1}
	Format_RG8    = Format{"RG8", gl.RG8, gl.RG, gl.UNSIGNED_BYTE, FormatKind_Float, 2, 2}
	Format_RGB8   = Format{"RGB8", gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE, FormatKind_Float, 3, 3}
	Format_RGBA8  = Format{"RGBA8", gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, FormatKind_Float, 4, 4}
	Format_SRGB8  = Format{"SRGB8", gl.SRGB8, gl.RGB, gl.UNSIGNED_BYTE, FormatKind_SRGB, 3, 3}
	Format_SRGBA8 = Format{"SRGB8_ALPHA8", gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE, FormatKind_SRGB, 4, 4}

	Format_R16F       = Format{"R16F", gl.R16F, gl.RED, gl.HALF_FLOAT, FormatKind_Float, 2, 1}
	Format_RG16F      = Format{"RG16F", gl.RG16F, gl.RG, gl.HALF_FLOAT, FormatKind_Float, 4, 2}
	Format_RGBA16F    = Format{"RGBA16F", gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT, FormatKind_Float, 8, 4}
	Format_R32F       = Format{"R32F", gl.R32F, gl.RED, gl.FLOAT, FormatKind_Float, 4, 1}
	Format_RG32F      = Format{"RG32F", gl.RG32F, gl.RG, gl.FLOAT, FormatKind_Float, 8, 2}
	Format_RGBA32F    = Format{"RGBA32F", gl.RGBA32F, gl.RGBA, gl.FLOAT, FormatKind_Float, 16, 4}
	Format_R11G11B10F = Format{"R11F_G11F_B10F", gl.R11F_G11F_B10F, gl.RGB, gl.UNSIGNED_INT_10F_11F_11F_REV, FormatKind_Float, 4, 3}

	Format_R32I    = Format{"R32I", gl.R32I, gl.RED_INTEGER, gl.INT, FormatKind_Int, 4, 1}
	Format_RGBA8I  = Format{"RGBA8I", gl.RGBA8I, gl.RGBA_INTEGER, gl.BYTE, FormatKind_Int, 4, 4}
	Format_R32UI   = Format{"R32UI", gl.R32UI, gl.RED_INTEGER, gl.UNSIGNED_INT, FormatKind_Uint, 4, 1}
	Format_RGBA8UI = Format{"RGBA8UI", gl.RGBA8UI, gl.RGBA_INTEGER, gl.UNSIGNED_BYTE, FormatKind_Uint, 4, 4}

	Format_Depth16          = Format{"DEPTH_COMPONENT16", gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT, FormatKind_Depth, 2, 1}
	Format_Depth24          = Format{"DEPTH_COMPONENT24", gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT, FormatKind_Depth, 4, 1}
	Format_Depth32F         = Format{"DEPTH_COMPONENT32F", gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT, FormatKind_Depth, 4, 1}
	Format_Depth24Stencil8  = Format{"DEPTH24_STENCIL8", gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8, FormatKind_DepthStencil, 4, 2}
	Format_Depth32FStencil8 = Format{"DEPTH32F_STENCIL8", gl.DEPTH32F_STENCIL8, gl.DEPTH_STENCIL, gl.FLOAT_32_UNSIGNED_INT_24_8_REV, FormatKind_DepthStencil, 8, 2}
	Format_Stencil8         = Format{"STENCIL_INDEX8", gl.STENCIL_INDEX8, gl.STENCIL_INDEX, gl.UNSIGNED_BYTE, FormatKind_Stencil, 1, 1}
)

func (f Format) String() string {
	return f.Name
}

func (f Format) IsColor() bool {
	return f.Kind == FormatKind_Float || f.Kind == FormatKind_Int || f.Kind == FormatKind_Uint || f.Kind == FormatKind_SRGB
}

func (f Format) HasDepth() bool {
	return f.Kind == FormatKind_Depth || f.Kind == FormatKind_DepthStencil
}

func (f Format) HasStencil() bool {
	return f.Kind == FormatKind_Stencil || f.Kind == FormatKind_DepthStencil
}

// IsInteger formats can not be filtered linearly or have mipmaps generated
func (f Format) IsInteger() bool {
	return f.Kind == FormatKind_Int || f.Kind == FormatKind_Uint
}

func (f Format) isFloatData() bool {
	return f.ClientType == gl.FLOAT || f.ClientType == gl.HALF_FLOAT || f.ClientType == gl.UNSIGNED_INT_10F_11F_11F_REV
}

// linear is the non-sRGB equivalent of an sRGB format
func (f Format) linear() Format {

	switch f.Internal {
	case gl.SRGB8:
		return Format_RGB8
	case gl.SRGB8_ALPHA8:
		return Format_RGBA8
	default:
		return f
	}
}

// Resolve returns the format to actually create on this context, walking
// the fallbacks for older versions. sRGB formats degrade to linear ones
// with a warning; other missing features are errors.
func (f Format) Resolve(caps *glcontext.Capabilities) (Format, error) {

	notSupported := func(why string) (Format, error) {
		return Format{}, fmt.Errorf("%w: %s needs %s", ErrFormatNotSupported, f.Name, why)
	}

	switch f.Kind {
	case FormatKind_SRGB:
		if !caps.SupportsSRGBTextures() {
			logging.WarnLog.Printf("sRGB textures are not supported, using %s instead of %s\n", f.linear().Name, f.Name)
			f = f.linear()
		}

	case FormatKind_Int, FormatKind_Uint:
		if !caps.SupportsIntegerTextures() {
			return notSupported("integer textures (GL 3.0 or GLES 3.0)")
		}

	case FormatKind_Depth, FormatKind_DepthStencil:
		if f.ClientType == gl.FLOAT || f.ClientType == gl.FLOAT_32_UNSIGNED_INT_24_8_REV {
			if !caps.SupportsDepthFloat() {
				return notSupported("ARB_depth_buffer_float")
			}
		}
	}

	if f.isFloatData() && !caps.SupportsFloatTextures() {
		return notSupported("ARB_texture_float")
	}

	if (f.ClientFormat == gl.RED || f.ClientFormat == gl.RG) && !caps.SupportsTextureRG() {

		// Single channel byte textures can still be made as luminance
		if f.Internal != gl.R8 {
			return notSupported("ARB_texture_rg")
		}

		f = Format{"LUMINANCE", gl.LUMINANCE, gl.LUMINANCE, gl.UNSIGNED_BYTE, FormatKind_Float, 1, 1}
	}

	// ES 2 only has unsized internal formats matching the client format
	if caps.Version.Api == gl.ApiGLES && caps.Version.Major < 3 {
		f.Internal = f.ClientFormat
	}

	return f, nil
}
