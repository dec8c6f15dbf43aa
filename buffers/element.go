package buffers

import (
	"github.com/bloeys/ngl/assert"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/logging"
)

// Element represents an element that makes up a buffer (e.g. Vec3 at an offset of 12 bytes)
type Element struct {
	// Name is the vertex shader input this element feeds
	Name   string
	Offset int
	ElementType

	// Normalized integer elements are read as floats in [0, 1] or [-1, 1]
	Normalized bool
}

// ElementType is the type of an element thats makes up a buffer (e.g. Vec3)
type ElementType uint8

const (
	DataTypeUnknown ElementType = iota

	DataTypeUint32
	DataTypeInt32
	DataTypeFloat32

	DataTypeVec2
	DataTypeVec3
	DataTypeVec4

	DataTypeMat2
	DataTypeMat3
	DataTypeMat4

	DataTypeStruct

	DataTypeIVec2
	DataTypeIVec3
	DataTypeIVec4

	DataTypeUVec2
	DataTypeUVec3
	DataTypeUVec4

	// DataTypeUint8Vec4 is four bytes, usually a normalized color
	DataTypeUint8Vec4
	// DataTypeUint16Vec2 is two shorts, usually normalized texture coordinates
	DataTypeUint16Vec2
)

func (dt ElementType) GLType() gl.Enum {

	switch dt {

	case DataTypeUint32:
		fallthrough
	case DataTypeUVec2:
		fallthrough
	case DataTypeUVec3:
		fallthrough
	case DataTypeUVec4:
		return gl.UNSIGNED_INT

	case DataTypeInt32:
		fallthrough
	case DataTypeIVec2:
		fallthrough
	case DataTypeIVec3:
		fallthrough
	case DataTypeIVec4:
		return gl.INT

	case DataTypeUint8Vec4:
		return gl.UNSIGNED_BYTE
	case DataTypeUint16Vec2:
		return gl.UNSIGNED_SHORT

	case DataTypeFloat32:
		fallthrough
	case DataTypeVec2:
		fallthrough
	case DataTypeVec3:
		fallthrough
	case DataTypeVec4:
		fallthrough
	case DataTypeMat2:
		fallthrough
	case DataTypeMat3:
		fallthrough
	case DataTypeMat4:
		return gl.FLOAT

	case DataTypeStruct:
		logging.ErrLog.Panicf("ElementType.GLType of DataTypeStruct is not supported")
		return 0

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// CompSize returns the size in bytes for one component of the type (e.g. for Vec2 its 4).
func (dt ElementType) CompSize() int {

	switch dt {

	case DataTypeUint8Vec4:
		return 1
	case DataTypeUint16Vec2:
		return 2

	case DataTypeStruct:
		logging.ErrLog.Panicf("ElementType.CompSize of DataTypeStruct is not supported")
		return 0

	case DataTypeUnknown:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0

	default:
		return 4
	}
}

// CompCount returns the number of components in the element (e.g. for Vec2 its 2)
func (dt ElementType) CompCount() int {

	switch dt {
	case DataTypeUint32:
		fallthrough
	case DataTypeFloat32:
		fallthrough
	case DataTypeInt32:
		return 1

	case DataTypeVec2:
		fallthrough
	case DataTypeIVec2:
		fallthrough
	case DataTypeUVec2:
		fallthrough
	case DataTypeUint16Vec2:
		return 2

	case DataTypeVec3:
		fallthrough
	case DataTypeIVec3:
		fallthrough
	case DataTypeUVec3:
		return 3

	case DataTypeVec4:
		fallthrough
	case DataTypeIVec4:
		fallthrough
	case DataTypeUVec4:
		fallthrough
	case DataTypeUint8Vec4:
		return 4

	case DataTypeMat2:
		return 2 * 2
	case DataTypeMat3:
		return 3 * 3
	case DataTypeMat4:
		return 4 * 4

	case DataTypeStruct:
		logging.ErrLog.Panicf("ElementType.CompCount of DataTypeStruct is not supported")
		return 0

	default:
		assert.T(false, "Unknown data type passed. DataType '%d'", dt)
		return 0
	}
}

// Size returns the total size in bytes (e.g. for vec3 its 3*4=12 bytes)
func (dt ElementType) Size() int {
	return dt.CompSize() * dt.CompCount()
}

// Columns is the number of attribute locations the type takes. Matrices take one per column.
func (dt ElementType) Columns() int {

	switch dt {
	case DataTypeMat2:
		return 2
	case DataTypeMat3:
		return 3
	case DataTypeMat4:
		return 4
	default:
		return 1
	}
}

// IsInteger is true for types a shader reads as int or uint when not normalized
func (dt ElementType) IsInteger() bool {
	return dt.GLType() != gl.FLOAT
}

// AttribType is the type GetActiveAttrib reports for a vertex shader input
// fed by this element
func (e Element) AttribType() gl.Enum {

	if e.Normalized || !e.IsInteger() {

		switch e.CompCount() {
		case 1:
			return gl.FLOAT
		case 2:
			return gl.FLOAT_VEC2
		case 3:
			return gl.FLOAT_VEC3
		case 4:
			if e.ElementType == DataTypeMat2 {
				return gl.FLOAT_MAT2
			}
			return gl.FLOAT_VEC4
		case 9:
			return gl.FLOAT_MAT3
		case 16:
			return gl.FLOAT_MAT4
		}
	}

	signed := e.GLType() == gl.INT
	switch e.CompCount() {
	case 1:
		if signed {
			return gl.INT
		}
		return gl.UNSIGNED_INT
	case 2:
		if signed {
			return gl.INT_VEC2
		}
		return gl.UNSIGNED_INT_VEC2
	case 3:
		if signed {
			return gl.INT_VEC3
		}
		return gl.UNSIGNED_INT_VEC3
	default:
		if signed {
			return gl.INT_VEC4
		}
		return gl.UNSIGNED_INT_VEC4
	}
}

func (dt ElementType) GlStd140SizeBytes() uint8 {

	switch dt {

	case DataTypeUint32:
		fallthrough
	case DataTypeFloat32:
		fallthrough
	case DataTypeInt32:
		return 4

	case DataTypeVec2:
		fallthrough
	case DataTypeIVec2:
		fallthrough
	case DataTypeUVec2:
		return 4 * 2

	case DataTypeVec3:
		fallthrough
	case DataTypeIVec3:
		fallthrough
	case DataTypeUVec3:
		return 4 * 3

	case DataTypeVec4:
		fallthrough
	case DataTypeIVec4:
		fallthrough
	case DataTypeUVec4:
		return 4 * 4

		// Matrices follow: (vec4Alignment) * numColumns
	case DataTypeMat2:
		return 2 * 2 * 4
	case DataTypeMat3:
		return 3 * 3 * 4
	case DataTypeMat4:
		return 4 * 4 * 4

	case DataTypeStruct:
		logging.ErrLog.Panicf("ElementType.GlStd140SizeBytes of DataTypeStruct is not supported")
		return 0

	default:
		assert.T(false, "Data type '%s' can not be used in a std140 block", dt)
		return 0
	}
}

func (dt ElementType) GlStd140AlignmentBoundary() uint16 {

	switch dt {

	case DataTypeUint32:
		fallthrough
	case DataTypeFloat32:
		fallthrough
	case DataTypeInt32:
		return 4

	case DataTypeVec2:
		fallthrough
	case DataTypeIVec2:
		fallthrough
	case DataTypeUVec2:
		return 8

	case DataTypeVec3:
		fallthrough
	case DataTypeVec4:
		fallthrough
	case DataTypeIVec3:
		fallthrough
	case DataTypeIVec4:
		fallthrough
	case DataTypeUVec3:
		fallthrough
	case DataTypeUVec4:
		fallthrough
	case DataTypeMat2:
		fallthrough
	case DataTypeMat3:
		fallthrough
	case DataTypeMat4:
		fallthrough
	case DataTypeStruct:
		return 16

	default:
		assert.T(false, "Data type '%s' can not be used in a std140 block", dt)
		return 0
	}
}

func (dt ElementType) String() string {

	switch dt {

	case DataTypeUint32:
		return "uint32"
	case DataTypeFloat32:
		return "float32"
	case DataTypeInt32:
		return "int32"

	case DataTypeVec2:
		return "Vec2"
	case DataTypeVec3:
		return "Vec3"
	case DataTypeVec4:
		return "Vec4"

	case DataTypeIVec2:
		return "IVec2"
	case DataTypeIVec3:
		return "IVec3"
	case DataTypeIVec4:
		return "IVec4"

	case DataTypeUVec2:
		return "UVec2"
	case DataTypeUVec3:
		return "UVec3"
	case DataTypeUVec4:
		return "UVec4"

	case DataTypeUint8Vec4:
		return "Uint8Vec4"
	case DataTypeUint16Vec2:
		return "Uint16Vec2"

	case DataTypeMat2:
		return "Mat2"
	case DataTypeMat3:
		return "Mat3"
	case DataTypeMat4:
		return "Mat4"

	case DataTypeStruct:
		return "Struct"

	default:
		return "Unknown"
	}
}
