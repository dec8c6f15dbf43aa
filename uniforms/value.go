package uniforms

import (
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/textures"
)

type ValueKind uint8

const (
	ValueKind_Unknown ValueKind = iota

	ValueKind_Bool
	ValueKind_Int
	ValueKind_Uint
	ValueKind_Float

	ValueKind_Vec2
	ValueKind_Vec3
	ValueKind_Vec4
	ValueKind_IVec2
	ValueKind_IVec3
	ValueKind_IVec4
	ValueKind_UVec2
	ValueKind_UVec3
	ValueKind_UVec4

	ValueKind_Mat2
	ValueKind_Mat3
	ValueKind_Mat4

	ValueKind_Texture
	ValueKind_BufferTexture

	ValueKind_UniformBlock
	ValueKind_StorageBlock
)

func (k ValueKind) String() string {

	switch k {
	case ValueKind_Bool:
		return "bool"
	case ValueKind_Int:
		return "int"
	case ValueKind_Uint:
		return "uint"
	case ValueKind_Float:
		return "float"
	case ValueKind_Vec2:
		return "vec2"
	case ValueKind_Vec3:
		return "vec3"
	case ValueKind_Vec4:
		return "vec4"
	case ValueKind_IVec2:
		return "ivec2"
	case ValueKind_IVec3:
		return "ivec3"
	case ValueKind_IVec4:
		return "ivec4"
	case ValueKind_UVec2:
		return "uvec2"
	case ValueKind_UVec3:
		return "uvec3"
	case ValueKind_UVec4:
		return "uvec4"
	case ValueKind_Mat2:
		return "mat2"
	case ValueKind_Mat3:
		return "mat3"
	case ValueKind_Mat4:
		return "mat4"
	case ValueKind_Texture:
		return "texture"
	case ValueKind_BufferTexture:
		return "buffer texture"
	case ValueKind_UniformBlock:
		return "uniform block"
	case ValueKind_StorageBlock:
		return "storage block"
	default:
		return fmt.Sprintf("ValueKind(%d)", uint8(k))
	}
}

// glType is the uniform type a single element of the kind matches
func (k ValueKind) glType() gl.Enum {

	switch k {
	case ValueKind_Bool:
		return gl.BOOL
	case ValueKind_Int:
		return gl.INT
	case ValueKind_Uint:
		return gl.UNSIGNED_INT
	case ValueKind_Float:
		return gl.FLOAT
	case ValueKind_Vec2:
		return gl.FLOAT_VEC2
	case ValueKind_Vec3:
		return gl.FLOAT_VEC3
	case ValueKind_Vec4:
		return gl.FLOAT_VEC4
	case ValueKind_IVec2:
		return gl.INT_VEC2
	case ValueKind_IVec3:
		return gl.INT_VEC3
	case ValueKind_IVec4:
		return gl.INT_VEC4
	case ValueKind_UVec2:
		return gl.UNSIGNED_INT_VEC2
	case ValueKind_UVec3:
		return gl.UNSIGNED_INT_VEC3
	case ValueKind_UVec4:
		return gl.UNSIGNED_INT_VEC4
	case ValueKind_Mat2:
		return gl.FLOAT_MAT2
	case ValueKind_Mat3:
		return gl.FLOAT_MAT3
	case ValueKind_Mat4:
		return gl.FLOAT_MAT4
	}

	return 0
}

// comps is the number of scalars in one element
func (k ValueKind) comps() int {

	switch k {
	case ValueKind_Vec2, ValueKind_IVec2, ValueKind_UVec2:
		return 2
	case ValueKind_Vec3, ValueKind_IVec3, ValueKind_UVec3:
		return 3
	case ValueKind_Vec4, ValueKind_IVec4, ValueKind_UVec4, ValueKind_Mat2:
		return 4
	case ValueKind_Mat3:
		return 9
	case ValueKind_Mat4:
		return 16
	}

	return 1
}

func (k ValueKind) isBlock() bool {
	return k == ValueKind_UniformBlock || k == ValueKind_StorageBlock
}

// Value is one uniform value. Scalars and vectors may hold several
// elements to fill a uniform array.
type Value struct {
	kind ValueKind

	ints   []int32
	uints  []uint32
	floats []float32

	sampled textures.Sampled
	bufTex  *textures.BufferTexture

	buf    *buffers.Alloc
	offset int
	size   int
	// fields is the std140 layout of the block data when known
	fields []buffers.UniformBufferField
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// Len is the number of array elements the value holds
func (v Value) Len() int {

	switch {
	case v.ints != nil:
		return len(v.ints) / v.kind.comps()
	case v.uints != nil:
		return len(v.uints) / v.kind.comps()
	case v.floats != nil:
		return len(v.floats) / v.kind.comps()
	}

	return 1
}

func Bool(b bool) Value {

	i := int32(0)
	if b {
		i = 1
	}

	return Value{kind: ValueKind_Bool, ints: []int32{i}}
}

func Int(i int32) Value {
	return Value{kind: ValueKind_Int, ints: []int32{i}}
}

func Ints(i ...int32) Value {
	return Value{kind: ValueKind_Int, ints: append([]int32{}, i...)}
}

func Uint(u uint32) Value {
	return Value{kind: ValueKind_Uint, uints: []uint32{u}}
}

func Float(f float32) Value {
	return Value{kind: ValueKind_Float, floats: []float32{f}}
}

// Floats fills a float array uniform
func Floats(f ...float32) Value {
	return Value{kind: ValueKind_Float, floats: append([]float32{}, f...)}
}

func Vec2(v *gglm.Vec2) Value {
	return Value{kind: ValueKind_Vec2, floats: []float32{v.Data[0], v.Data[1]}}
}

func Vec3(v *gglm.Vec3) Value {
	return Value{kind: ValueKind_Vec3, floats: []float32{v.Data[0], v.Data[1], v.Data[2]}}
}

func Vec4(v *gglm.Vec4) Value {
	return Value{kind: ValueKind_Vec4, floats: []float32{v.Data[0], v.Data[1], v.Data[2], v.Data[3]}}
}

func Vec3Array(vs []gglm.Vec3) Value {

	f := make([]float32, 0, 3*len(vs))
	for i := range vs {
		f = append(f, vs[i].Data[:]...)
	}

	return Value{kind: ValueKind_Vec3, floats: f}
}

func Vec4Array(vs []gglm.Vec4) Value {

	f := make([]float32, 0, 4*len(vs))
	for i := range vs {
		f = append(f, vs[i].Data[:]...)
	}

	return Value{kind: ValueKind_Vec4, floats: f}
}

func IVec2(x, y int32) Value {
	return Value{kind: ValueKind_IVec2, ints: []int32{x, y}}
}

func IVec3(x, y, z int32) Value {
	return Value{kind: ValueKind_IVec3, ints: []int32{x, y, z}}
}

func IVec4(x, y, z, w int32) Value {
	return Value{kind: ValueKind_IVec4, ints: []int32{x, y, z, w}}
}

func UVec2(x, y uint32) Value {
	return Value{kind: ValueKind_UVec2, uints: []uint32{x, y}}
}

func UVec3(x, y, z uint32) Value {
	return Value{kind: ValueKind_UVec3, uints: []uint32{x, y, z}}
}

func UVec4(x, y, z, w uint32) Value {
	return Value{kind: ValueKind_UVec4, uints: []uint32{x, y, z, w}}
}

// Matrices are uploaded column by column, the way gglm stores them

func Mat2(m *gglm.Mat2) Value {
	return Value{kind: ValueKind_Mat2, floats: []float32{
		m.Data[0][0], m.Data[0][1],
		m.Data[1][0], m.Data[1][1],
	}}
}

func Mat3(m *gglm.Mat3) Value {

	f := make([]float32, 0, 9)
	for c := 0; c < 3; c++ {
		f = append(f, m.Data[c][:]...)
	}

	return Value{kind: ValueKind_Mat3, floats: f}
}

func Mat4(m *gglm.Mat4) Value {
	return Mat4Array([]gglm.Mat4{*m})
}

func Mat4Array(ms []gglm.Mat4) Value {

	f := make([]float32, 0, 16*len(ms))
	for i := range ms {
		for c := 0; c < 4; c++ {
			f = append(f, ms[i].Data[c][:]...)
		}
	}

	return Value{kind: ValueKind_Mat4, floats: f}
}

// Texture samples t with the default sampler behavior
func Texture(t *textures.Texture) Value {
	return Value{kind: ValueKind_Texture, sampled: textures.Sampled{Texture: t, Behavior: textures.DefaultSamplerBehavior()}}
}

func Sampler(s textures.Sampled) Value {
	return Value{kind: ValueKind_Texture, sampled: s}
}

func BufferTexture(bt *textures.BufferTexture) Value {
	return Value{kind: ValueKind_BufferTexture, bufTex: bt}
}

// Block binds a whole buffer to a uniform block
func Block(buf *buffers.Alloc) Value {
	return Value{kind: ValueKind_UniformBlock, buf: buf}
}

// BlockRange binds size bytes from offset. The offset must respect the
// uniform buffer offset alignment.
func BlockRange(buf *buffers.Alloc, offset, size int) Value {
	return Value{kind: ValueKind_UniformBlock, buf: buf, offset: offset, size: size}
}

// UniformBuffer binds a std140 buffer and checks its fields against the
// block members
func UniformBuffer(ub *buffers.UniformBuffer) Value {
	return Value{kind: ValueKind_UniformBlock, buf: ub.Alloc, fields: ub.Fields}
}

func StorageBlock(buf *buffers.Alloc) Value {
	return Value{kind: ValueKind_StorageBlock, buf: buf}
}

func StorageBlockRange(buf *buffers.Alloc, offset, size int) Value {
	return Value{kind: ValueKind_StorageBlock, buf: buf, offset: offset, size: size}
}

// blockRange resolves a size of 0 to the rest of the buffer
func (v Value) blockRange() (offset, size int) {

	if v.size == 0 {
		return v.offset, v.buf.Size() - v.offset
	}

	return v.offset, v.size
}
