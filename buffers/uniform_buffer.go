package buffers

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ngl/assert"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/logging"
)

var ErrStructMismatch = errors.New("buffers: struct does not match the uniform buffer fields")

type UniformBufferFieldInput struct {
	Id   uint16
	Type ElementType
	// Count should be set in case this field is an array of type `[Count]Type`.
	// Count=0 is valid and is equivalent to Count=1, which means the type is NOT an array, but a single field.
	Count uint16

	// Subfields is used when type is a struct, in which case it holds the fields of the struct.
	// Ids do not have to be unique across structs.
	Subfields []UniformBufferFieldInput
}

type UniformBufferField struct {
	Id uint16
	// AlignedOffset is relative to the start of the enclosing struct (or the buffer for top level fields)
	AlignedOffset uint16
	// Count should be set in case this field is an array of type `[Count]Type`.
	// Count=0 is valid and is equivalent to Count=1, which means the type is NOT an array, but a single field.
	Count uint16
	Type  ElementType
	// Stride is the distance between array elements (or matrix columns when not an array)
	Stride uint16

	Subfields []UniformBufferField
}

// UniformBuffer is a buffer laid out following the std140 rules, so the
// same layout works on every driver without querying offsets.
type UniformBuffer struct {
	*Alloc
	Fields []UniformBufferField
}

// BindTo binds the whole buffer to a uniform buffer bind point
func (ub *UniformBuffer) BindTo(cc *glcontext.CommandContext, bindPointIndex uint32) error {
	return ub.BindIndexed(cc, BufferType_Uniform, bindPointIndex, 0, 0)
}

func roundUp(val, to int) int {
	if rem := val % to; rem != 0 {
		return val + to - rem
	}
	return val
}

func matrixColumns(dt ElementType) int {
	switch dt {
	case DataTypeMat2, DataTypeMat3, DataTypeMat4:
		return dt.Columns()
	default:
		return 0
	}
}

// layoutUniformBufferFields computes std140 offsets of fields relative to
// the start of their struct and returns the unpadded size of the struct
func layoutUniformBufferFields(fieldsToAdd []UniformBufferFieldInput) (fields []UniformBufferField, size int) {

	if len(fieldsToAdd) == 0 {
		return nil, 0
	}

	fields = make([]UniformBufferField, 0, len(fieldsToAdd))
	fieldIdToTypeMap := make(map[uint16]ElementType, len(fieldsToAdd))

	alignedOffset := 0
	for i := 0; i < len(fieldsToAdd); i++ {

		f := fieldsToAdd[i]
		if f.Count == 0 {
			f.Count = 1
		}

		existingFieldType, ok := fieldIdToTypeMap[f.Id]
		assert.T(!ok, "Uniform buffer field id is reused within the same uniform buffer. FieldId=%d was first used on a field with type=%s and then used on a different field with type=%s\n", f.Id, existingFieldType.String(), f.Type.String())
		fieldIdToTypeMap[f.Id] = f.Type

		newField := UniformBufferField{Id: f.Id, Type: f.Type, Count: f.Count}

		// Structs, matrices (arrays of column vectors) and arrays of anything
		// are aligned to 16 bytes, and so is every element in them
		var alignment, elemSize int
		switch cols := matrixColumns(f.Type); {
		case f.Type == DataTypeStruct:

			var subSize int
			newField.Subfields, subSize = layoutUniformBufferFields(f.Subfields)
			alignment = 16
			elemSize = roundUp(subSize, 16)
			newField.Stride = uint16(elemSize)

		case cols > 0:
			alignment = 16
			elemSize = 16 * cols
			newField.Stride = 16

		case f.Count > 1:
			alignment = 16
			elemSize = int(f.Type.GlStd140SizeBytes())
			newField.Stride = 16

		default:
			alignment = int(f.Type.GlStd140AlignmentBoundary())
			elemSize = int(f.Type.GlStd140SizeBytes())
		}

		alignedOffset = roundUp(alignedOffset, alignment)
		newField.AlignedOffset = uint16(alignedOffset)

		if f.Count > 1 {

			// Matrix arrays step by whole matrices
			if f.Type != DataTypeStruct && matrixColumns(f.Type) > 0 {
				newField.Stride = uint16(elemSize)
			}

			alignedOffset += int(newField.Stride) * int(f.Count)
		} else {
			alignedOffset += elemSize
		}

		fields = append(fields, newField)
	}

	return fields, alignedOffset
}

func (ub *UniformBuffer) getField(fieldId uint16, fieldType ElementType) UniformBufferField {

	for i := 0; i < len(ub.Fields); i++ {

		f := ub.Fields[i]

		if f.Id != fieldId {
			continue
		}

		assert.T(f.Type == fieldType, "Uniform buffer field id is reused within the same uniform buffer. FieldId=%d was first used on a field with type=%v, but is now being used on a field with type=%v\n", fieldId, f.Type.String(), fieldType.String())

		return f
	}

	logging.ErrLog.Panicf("couldn't find uniform buffer field of id=%d and type=%s\n", fieldId, fieldType.String())
	return UniformBufferField{}
}

func putF32s(buf []byte, offset int, vals []float32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
	}
}

func (ub *UniformBuffer) set(cc *glcontext.CommandContext, fieldId uint16, fieldType ElementType, vals ...float32) error {

	f := ub.getField(fieldId, fieldType)

	buf := make([]byte, len(vals)*4)
	putF32s(buf, 0, vals)
	return ub.Upload(cc, int(f.AlignedOffset), buf)
}

func (ub *UniformBuffer) setInt(cc *glcontext.CommandContext, fieldId uint16, fieldType ElementType, val uint32) error {

	f := ub.getField(fieldId, fieldType)

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	return ub.Upload(cc, int(f.AlignedOffset), buf[:])
}

func (ub *UniformBuffer) SetInt32(cc *glcontext.CommandContext, fieldId uint16, val int32) error {
	return ub.setInt(cc, fieldId, DataTypeInt32, uint32(val))
}

func (ub *UniformBuffer) SetUint32(cc *glcontext.CommandContext, fieldId uint16, val uint32) error {
	return ub.setInt(cc, fieldId, DataTypeUint32, val)
}

func (ub *UniformBuffer) SetFloat32(cc *glcontext.CommandContext, fieldId uint16, val float32) error {
	return ub.set(cc, fieldId, DataTypeFloat32, val)
}

func (ub *UniformBuffer) SetVec2(cc *glcontext.CommandContext, fieldId uint16, val *gglm.Vec2) error {
	return ub.set(cc, fieldId, DataTypeVec2, val.Data[:]...)
}

func (ub *UniformBuffer) SetVec3(cc *glcontext.CommandContext, fieldId uint16, val *gglm.Vec3) error {
	return ub.set(cc, fieldId, DataTypeVec3, val.Data[:]...)
}

func (ub *UniformBuffer) SetVec4(cc *glcontext.CommandContext, fieldId uint16, val *gglm.Vec4) error {
	return ub.set(cc, fieldId, DataTypeVec4, val.Data[:]...)
}

// setMatrix writes each column at a 16 byte stride
func (ub *UniformBuffer) setMatrix(cc *glcontext.CommandContext, fieldId uint16, fieldType ElementType, cols [][]float32) error {

	f := ub.getField(fieldId, fieldType)

	buf := make([]byte, 16*len(cols))
	for c, col := range cols {
		putF32s(buf, c*16, col)
	}

	// The padding after the last column is not part of the matrix
	return ub.Upload(cc, int(f.AlignedOffset), buf[:16*(len(cols)-1)+4*len(cols[0])])
}

func (ub *UniformBuffer) SetMat2(cc *glcontext.CommandContext, fieldId uint16, val *gglm.Mat2) error {
	return ub.setMatrix(cc, fieldId, DataTypeMat2, [][]float32{val.Data[0][:], val.Data[1][:]})
}

func (ub *UniformBuffer) SetMat3(cc *glcontext.CommandContext, fieldId uint16, val *gglm.Mat3) error {
	return ub.setMatrix(cc, fieldId, DataTypeMat3, [][]float32{val.Data[0][:], val.Data[1][:], val.Data[2][:]})
}

func (ub *UniformBuffer) SetMat4(cc *glcontext.CommandContext, fieldId uint16, val *gglm.Mat4) error {
	return ub.setMatrix(cc, fieldId, DataTypeMat4, [][]float32{val.Data[0][:], val.Data[1][:], val.Data[2][:], val.Data[3][:]})
}

// SetStruct uploads a whole struct. Its fields must match the buffer fields
// in order and type. Array fields are Go arrays or slices of Count elements.
func (ub *UniformBuffer) SetStruct(cc *glcontext.CommandContext, inputStruct any) error {

	if inputStruct == nil {
		return fmt.Errorf("%w: got nil", ErrStructMismatch)
	}

	buf := make([]byte, ub.Size())
	if err := writeStd140Struct(ub.Fields, buf, 0, reflect.ValueOf(inputStruct)); err != nil {
		return err
	}

	return ub.Upload(cc, 0, buf)
}

// EncodeStd140 lays inputStruct out following fields. It is what SetStruct
// uploads, exposed for buffers shared between several blocks.
func EncodeStd140(fields []UniformBufferField, size int, inputStruct any) ([]byte, error) {

	buf := make([]byte, size)
	if err := writeStd140Struct(fields, buf, 0, reflect.ValueOf(inputStruct)); err != nil {
		return nil, err
	}

	return buf, nil
}

func writeStd140Struct(fields []UniformBufferField, buf []byte, base int, structVal reflect.Value) error {

	if structVal.Kind() == reflect.Pointer {
		structVal = structVal.Elem()
	}

	if structVal.Kind() != reflect.Struct {
		return fmt.Errorf("%w: value of kind %s is not a struct", ErrStructMismatch, structVal.Kind())
	}

	if structVal.NumField() != len(fields) {
		return fmt.Errorf("%w: struct %s has %d fields but the buffer has %d", ErrStructMismatch, structVal.Type(), structVal.NumField(), len(fields))
	}

	for i := 0; i < len(fields); i++ {

		ubField := &fields[i]
		valField := structVal.Field(i)
		if valField.Kind() == reflect.Pointer {
			valField = valField.Elem()
		}

		offset := base + int(ubField.AlignedOffset)

		if ubField.Count <= 1 {

			if err := writeStd140Value(ubField, buf, offset, valField); err != nil {
				return fmt.Errorf("field %d (%s): %w", i, structVal.Type().Field(i).Name, err)
			}

			continue
		}

		kind := valField.Kind()
		if kind != reflect.Slice && kind != reflect.Array {
			return fmt.Errorf("%w: field %d is an array of %d but got %s", ErrStructMismatch, i, ubField.Count, valField.Type())
		}

		if valField.Len() != int(ubField.Count) {
			return fmt.Errorf("%w: field %d is an array of %d but got %d elements", ErrStructMismatch, i, ubField.Count, valField.Len())
		}

		for j := 0; j < valField.Len(); j++ {
			if err := writeStd140Value(ubField, buf, offset+j*int(ubField.Stride), valField.Index(j)); err != nil {
				return fmt.Errorf("field %d (%s)[%d]: %w", i, structVal.Type().Field(i).Name, j, err)
			}
		}
	}

	return nil
}

func writeStd140Value(ubField *UniformBufferField, buf []byte, offset int, v reflect.Value) error {

	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	mismatch := func() error {
		return fmt.Errorf("%w: buffer field of type %s got a value of type %s", ErrStructMismatch, ubField.Type, v.Type())
	}

	switch ubField.Type {

	case DataTypeUint32:
		if v.Kind() != reflect.Uint32 {
			return mismatch()
		}
		binary.LittleEndian.PutUint32(buf[offset:], uint32(v.Uint()))

	case DataTypeInt32:
		if v.Kind() != reflect.Int32 {
			return mismatch()
		}
		binary.LittleEndian.PutUint32(buf[offset:], uint32(int32(v.Int())))

	case DataTypeFloat32:
		if v.Kind() != reflect.Float32 {
			return mismatch()
		}
		putF32s(buf, offset, []float32{float32(v.Float())})

	case DataTypeVec2, DataTypeVec3, DataTypeVec4:

		switch val := v.Interface().(type) {
		case gglm.Vec2:
			if ubField.Type != DataTypeVec2 {
				return mismatch()
			}
			putF32s(buf, offset, val.Data[:])
		case gglm.Vec3:
			if ubField.Type != DataTypeVec3 {
				return mismatch()
			}
			putF32s(buf, offset, val.Data[:])
		case gglm.Vec4:
			if ubField.Type != DataTypeVec4 {
				return mismatch()
			}
			putF32s(buf, offset, val.Data[:])
		default:
			return mismatch()
		}

	case DataTypeMat2, DataTypeMat3, DataTypeMat4:

		switch val := v.Interface().(type) {
		case gglm.Mat2:
			if ubField.Type != DataTypeMat2 {
				return mismatch()
			}
			for c := range val.Data {
				putF32s(buf, offset+c*16, val.Data[c][:])
			}
		case gglm.Mat3:
			if ubField.Type != DataTypeMat3 {
				return mismatch()
			}
			for c := range val.Data {
				putF32s(buf, offset+c*16, val.Data[c][:])
			}
		case gglm.Mat4:
			if ubField.Type != DataTypeMat4 {
				return mismatch()
			}
			for c := range val.Data {
				putF32s(buf, offset+c*16, val.Data[c][:])
			}
		default:
			return mismatch()
		}

	case DataTypeIVec2, DataTypeIVec3, DataTypeIVec4, DataTypeUVec2, DataTypeUVec3, DataTypeUVec4:

		// Integer vectors are Go arrays like [3]int32
		if v.Kind() != reflect.Array || v.Len() != ubField.Type.CompCount() {
			return mismatch()
		}

		signed := ubField.Type.GLType() != DataTypeUint32.GLType()
		for c := 0; c < v.Len(); c++ {

			e := v.Index(c)
			switch {
			case signed && e.Kind() == reflect.Int32:
				binary.LittleEndian.PutUint32(buf[offset+c*4:], uint32(int32(e.Int())))
			case !signed && e.Kind() == reflect.Uint32:
				binary.LittleEndian.PutUint32(buf[offset+c*4:], uint32(e.Uint()))
			default:
				return mismatch()
			}
		}

	case DataTypeStruct:
		return writeStd140Struct(ubField.Subfields, buf, offset, v)

	default:
		assert.T(false, "Unknown uniform buffer data type passed. DataType '%d'", ubField.Type)
	}

	return nil
}

// UniformBufferSize is the std140 size of a block with these fields
func UniformBufferSize(fields []UniformBufferFieldInput) int {
	_, size := layoutUniformBufferFields(fields)
	return roundUp(size, 16)
}

func NewUniformBuffer(cc *glcontext.CommandContext, fields []UniformBufferFieldInput) (*UniformBuffer, error) {

	ub := &UniformBuffer{}

	var size int
	ub.Fields, size = layoutUniformBufferFields(fields)

	a, err := NewAlloc(cc, BufferType_Uniform, BufferMode_Default, roundUp(size, 16), nil)
	if err != nil {
		return nil, err
	}

	ub.Alloc = a
	return ub, nil
}

// ShaderStorageBuffer is a buffer read and written by shaders through a
// shader storage block
type ShaderStorageBuffer struct {
	*Alloc
}

func NewShaderStorageBuffer(cc *glcontext.CommandContext, mode BufferMode, size int, data []byte) (*ShaderStorageBuffer, error) {

	a, err := NewAlloc(cc, BufferType_ShaderStorage, mode, size, data)
	if err != nil {
		return nil, err
	}

	return &ShaderStorageBuffer{Alloc: a}, nil
}

// BindTo binds the whole buffer to a shader storage bind point
func (sb *ShaderStorageBuffer) BindTo(cc *glcontext.CommandContext, bindPointIndex uint32) error {
	return sb.BindIndexed(cc, BufferType_ShaderStorage, bindPointIndex, 0, 0)
}
