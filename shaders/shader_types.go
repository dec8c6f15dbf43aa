package shaders

import (
	"fmt"

	"github.com/bloeys/ngl/assert"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
	ShaderType_TessControl
	ShaderType_TessEvaluation
	ShaderType_Compute
)

func (s ShaderType) ToGL() gl.Enum {

	switch s {
	case ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case ShaderType_Geometry:
		return gl.GEOMETRY_SHADER
	case ShaderType_TessControl:
		return gl.TESS_CONTROL_SHADER
	case ShaderType_TessEvaluation:
		return gl.TESS_EVALUATION_SHADER
	case ShaderType_Compute:
		return gl.COMPUTE_SHADER

	default:
		assert.T(false, "Unknown shader type '%d'", s)
		return 0
	}
}

func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Geometry:
		return "geometry"
	case ShaderType_TessControl:
		return "tessellation control"
	case ShaderType_TessEvaluation:
		return "tessellation evaluation"
	case ShaderType_Compute:
		return "compute"
	default:
		return fmt.Sprintf("ShaderType(%d)", int32(s))
	}
}

// CheckSupported returns ErrStageNotSupported when the context can not
// compile shaders of this type
func (s ShaderType) CheckSupported(caps *glcontext.Capabilities) error {

	ok := true
	switch s {
	case ShaderType_Geometry:
		ok = caps.SupportsGeometryShaders()
	case ShaderType_TessControl, ShaderType_TessEvaluation:
		ok = caps.SupportsTessellation()
	case ShaderType_Compute:
		ok = caps.SupportsComputeShaders()
	}

	if !ok {
		return fmt.Errorf("%w: %s shaders on %s", ErrStageNotSupported, s, caps.Version)
	}

	return nil
}

// TypeName returns the GLSL spelling of a uniform or attribute type
func TypeName(t gl.Enum) string {

	switch t {
	case gl.FLOAT:
		return "float"
	case gl.FLOAT_VEC2:
		return "vec2"
	case gl.FLOAT_VEC3:
		return "vec3"
	case gl.FLOAT_VEC4:
		return "vec4"
	case gl.INT:
		return "int"
	case gl.INT_VEC2:
		return "ivec2"
	case gl.INT_VEC3:
		return "ivec3"
	case gl.INT_VEC4:
		return "ivec4"
	case gl.UNSIGNED_INT:
		return "uint"
	case gl.UNSIGNED_INT_VEC2:
		return "uvec2"
	case gl.UNSIGNED_INT_VEC3:
		return "uvec3"
	case gl.UNSIGNED_INT_VEC4:
		return "uvec4"
	case gl.BOOL:
		return "bool"
	case gl.BOOL_VEC2:
		return "bvec2"
	case gl.BOOL_VEC3:
		return "bvec3"
	case gl.BOOL_VEC4:
		return "bvec4"
	case gl.FLOAT_MAT2:
		return "mat2"
	case gl.FLOAT_MAT3:
		return "mat3"
	case gl.FLOAT_MAT4:
		return "mat4"
	case gl.FLOAT_MAT2x3:
		return "mat2x3"
	case gl.FLOAT_MAT2x4:
		return "mat2x4"
	case gl.FLOAT_MAT3x2:
		return "mat3x2"
	case gl.FLOAT_MAT3x4:
		return "mat3x4"
	case gl.FLOAT_MAT4x2:
		return "mat4x2"
	case gl.FLOAT_MAT4x3:
		return "mat4x3"
	case gl.DOUBLE:
		return "double"
	}

	if target, ok := SamplerTarget(t); ok {
		return fmt.Sprintf("sampler(0x%X, target 0x%X)", t, target)
	}

	return fmt.Sprintf("0x%X", t)
}

// SamplerTarget returns the texture target a sampler uniform type reads from
func SamplerTarget(t gl.Enum) (gl.Enum, bool) {

	switch t {
	case gl.SAMPLER_1D, gl.SAMPLER_1D_SHADOW, gl.INT_SAMPLER_1D, gl.UNSIGNED_INT_SAMPLER_1D:
		return gl.TEXTURE_1D, true
	case gl.SAMPLER_2D, gl.SAMPLER_2D_SHADOW, gl.INT_SAMPLER_2D, gl.UNSIGNED_INT_SAMPLER_2D:
		return gl.TEXTURE_2D, true
	case gl.SAMPLER_3D, gl.INT_SAMPLER_3D, gl.UNSIGNED_INT_SAMPLER_3D:
		return gl.TEXTURE_3D, true
	case gl.SAMPLER_CUBE, gl.SAMPLER_CUBE_SHADOW, gl.INT_SAMPLER_CUBE, gl.UNSIGNED_INT_SAMPLER_CUBE:
		return gl.TEXTURE_CUBE_MAP, true
	case gl.SAMPLER_1D_ARRAY, gl.SAMPLER_1D_ARRAY_SHADOW, gl.INT_SAMPLER_1D_ARRAY, gl.UNSIGNED_INT_SAMPLER_1D_ARRAY:
		return gl.TEXTURE_1D_ARRAY, true
	case gl.SAMPLER_2D_ARRAY, gl.SAMPLER_2D_ARRAY_SHADOW, gl.INT_SAMPLER_2D_ARRAY, gl.UNSIGNED_INT_SAMPLER_2D_ARRAY:
		return gl.TEXTURE_2D_ARRAY, true
	case gl.SAMPLER_BUFFER, gl.INT_SAMPLER_BUFFER, gl.UNSIGNED_INT_SAMPLER_BUFFER:
		return gl.TEXTURE_BUFFER, true
	case gl.SAMPLER_CUBE_MAP_ARRAY, gl.SAMPLER_CUBE_MAP_ARRAY_SHADOW, gl.INT_SAMPLER_CUBE_MAP_ARRAY, gl.UNSIGNED_INT_SAMPLER_CUBE_MAP_ARRAY:
		return gl.TEXTURE_CUBE_MAP_ARRAY, true
	case gl.SAMPLER_2D_MULTISAMPLE, gl.INT_SAMPLER_2D_MULTISAMPLE, gl.UNSIGNED_INT_SAMPLER_2D_MULTISAMPLE:
		return gl.TEXTURE_2D_MULTISAMPLE, true
	case gl.SAMPLER_2D_MULTISAMPLE_ARRAY, gl.INT_SAMPLER_2D_MULTISAMPLE_ARRAY, gl.UNSIGNED_INT_SAMPLER_2D_MULTISAMPLE_ARRAY:
		return gl.TEXTURE_2D_MULTISAMPLE_ARRAY, true
	}

	return 0, false
}

// IsShadowSampler reports whether t compares against a reference depth
func IsShadowSampler(t gl.Enum) bool {

	switch t {
	case gl.SAMPLER_1D_SHADOW, gl.SAMPLER_2D_SHADOW, gl.SAMPLER_CUBE_SHADOW,
		gl.SAMPLER_1D_ARRAY_SHADOW, gl.SAMPLER_2D_ARRAY_SHADOW, gl.SAMPLER_CUBE_MAP_ARRAY_SHADOW:
		return true
	}

	return false
}

// SamplerKind is the component type a sampler returns: 'f', 'i' or 'u'
func SamplerKind(t gl.Enum) byte {

	switch t {
	case gl.INT_SAMPLER_1D, gl.INT_SAMPLER_2D, gl.INT_SAMPLER_3D, gl.INT_SAMPLER_CUBE,
		gl.INT_SAMPLER_1D_ARRAY, gl.INT_SAMPLER_2D_ARRAY, gl.INT_SAMPLER_BUFFER,
		gl.INT_SAMPLER_CUBE_MAP_ARRAY, gl.INT_SAMPLER_2D_MULTISAMPLE, gl.INT_SAMPLER_2D_MULTISAMPLE_ARRAY:
		return 'i'
	case gl.UNSIGNED_INT_SAMPLER_1D, gl.UNSIGNED_INT_SAMPLER_2D, gl.UNSIGNED_INT_SAMPLER_3D, gl.UNSIGNED_INT_SAMPLER_CUBE,
		gl.UNSIGNED_INT_SAMPLER_1D_ARRAY, gl.UNSIGNED_INT_SAMPLER_2D_ARRAY, gl.UNSIGNED_INT_SAMPLER_BUFFER,
		gl.UNSIGNED_INT_SAMPLER_CUBE_MAP_ARRAY, gl.UNSIGNED_INT_SAMPLER_2D_MULTISAMPLE, gl.UNSIGNED_INT_SAMPLER_2D_MULTISAMPLE_ARRAY:
		return 'u'
	}

	return 'f'
}
