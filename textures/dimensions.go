package textures

import (
	"github.com/bloeys/ngl/assert"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

type Dimensions int

const (
	Dimensions_Unknown Dimensions = iota
	Dimensions_1D
	Dimensions_1DArray
	Dimensions_2D
	Dimensions_2DArray
	Dimensions_2DMultisample
	Dimensions_2DMultisampleArray
	Dimensions_3D
	Dimensions_Cube
	Dimensions_CubeArray
	Dimensions_Buffer
)

func (d Dimensions) Target() gl.Enum {

	switch d {
	case Dimensions_1D:
		return gl.TEXTURE_1D
	case Dimensions_1DArray:
		return gl.TEXTURE_1D_ARRAY
	case Dimensions_2D:
		return gl.TEXTURE_2D
	case Dimensions_2DArray:
		return gl.TEXTURE_2D_ARRAY
	case Dimensions_2DMultisample:
		return gl.TEXTURE_2D_MULTISAMPLE
	case Dimensions_2DMultisampleArray:
		return gl.TEXTURE_2D_MULTISAMPLE_ARRAY
	case Dimensions_3D:
		return gl.TEXTURE_3D
	case Dimensions_Cube:
		return gl.TEXTURE_CUBE_MAP
	case Dimensions_CubeArray:
		return gl.TEXTURE_CUBE_MAP_ARRAY
	case Dimensions_Buffer:
		return gl.TEXTURE_BUFFER
	}

	assert.T(false, "Unexpected texture Dimensions value '%d'", d)
	return 0
}

func (d Dimensions) IsArray() bool {
	return d == Dimensions_1DArray || d == Dimensions_2DArray || d == Dimensions_2DMultisampleArray || d == Dimensions_CubeArray
}

func (d Dimensions) IsMultisample() bool {
	return d == Dimensions_2DMultisample || d == Dimensions_2DMultisampleArray
}

func (d Dimensions) IsCube() bool {
	return d == Dimensions_Cube || d == Dimensions_CubeArray
}

// Layered textures are attached to framebuffers one layer (or face) at a time
func (d Dimensions) IsLayered() bool {
	return d.IsArray() || d.IsCube() || d == Dimensions_3D
}

// Supported reports whether the context can create textures of this kind
func (d Dimensions) Supported(caps *glcontext.Capabilities) bool {

	v := caps.Version
	switch d {
	case Dimensions_1D:
		return v.Api == gl.ApiGL
	case Dimensions_1DArray:
		return v.AtLeast(gl.ApiGL, 3, 0)
	case Dimensions_2D, Dimensions_Cube:
		return true
	case Dimensions_2DArray:
		return v.AtLeast(gl.ApiGL, 3, 0) || v.AtLeast(gl.ApiGLES, 3, 0)
	case Dimensions_3D:
		return v.AtLeast(gl.ApiGL, 1, 2) || v.AtLeast(gl.ApiGLES, 3, 0)
	case Dimensions_2DMultisample, Dimensions_2DMultisampleArray:
		return caps.SupportsMultisampleTextures()
	case Dimensions_CubeArray:
		return caps.SupportsCubeMapArrays()
	case Dimensions_Buffer:
		return caps.SupportsBufferTextures()
	default:
		return false
	}
}

func (d Dimensions) String() string {

	switch d {
	case Dimensions_1D:
		return "1D"
	case Dimensions_1DArray:
		return "1D array"
	case Dimensions_2D:
		return "2D"
	case Dimensions_2DArray:
		return "2D array"
	case Dimensions_2DMultisample:
		return "2D multisample"
	case Dimensions_2DMultisampleArray:
		return "2D multisample array"
	case Dimensions_3D:
		return "3D"
	case Dimensions_Cube:
		return "cube"
	case Dimensions_CubeArray:
		return "cube array"
	case Dimensions_Buffer:
		return "buffer"
	default:
		return "unknown"
	}
}

type CubeFace int

const (
	CubeFace_PositiveX CubeFace = iota
	CubeFace_NegativeX
	CubeFace_PositiveY
	CubeFace_NegativeY
	CubeFace_PositiveZ
	CubeFace_NegativeZ
)

// Target is the TexImage2D target of the face
func (f CubeFace) Target() gl.Enum {
	assert.T(f >= CubeFace_PositiveX && f <= CubeFace_NegativeZ, "Unexpected CubeFace value '%d'", f)
	return gl.TEXTURE_CUBE_MAP_POSITIVE_X + gl.Enum(f)
}
