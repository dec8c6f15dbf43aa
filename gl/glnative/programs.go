package glnative

import (
	"unsafe"

	native "github.com/go-gl/gl/all-core/gl"

	"github.com/bloeys/ngl/gl"
)

func (f *Functions) CreateShader(typ gl.Enum) uint32 {
	return native.CreateShader(typ)
}

func (f *Functions) ShaderSource(s uint32, src string) {

	csrc, free := native.Strs(src + "\x00")
	defer free()

	native.ShaderSource(s, 1, csrc, nil)
}

func (f *Functions) CompileShader(s uint32) {
	native.CompileShader(s)
}

func (f *Functions) GetShaderi(s uint32, pname gl.Enum) int {
	var v int32
	native.GetShaderiv(s, pname, &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s uint32) string {

	n := f.GetShaderi(s, gl.INFO_LOG_LENGTH)
	if n <= 1 {
		return ""
	}

	buf := make([]byte, n)
	var length int32
	native.GetShaderInfoLog(s, int32(n), &length, &buf[0])
	return goString(buf, length)
}

func (f *Functions) DeleteShader(s uint32) {
	native.DeleteShader(s)
}

func (f *Functions) CreateProgram() uint32 {
	return native.CreateProgram()
}

func (f *Functions) AttachShader(p, s uint32) {
	native.AttachShader(p, s)
}

func (f *Functions) DetachShader(p, s uint32) {
	native.DetachShader(p, s)
}

func (f *Functions) LinkProgram(p uint32) {
	native.LinkProgram(p)
}

func (f *Functions) GetProgrami(p uint32, pname gl.Enum) int {
	var v int32
	native.GetProgramiv(p, pname, &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p uint32) string {

	n := f.GetProgrami(p, gl.INFO_LOG_LENGTH)
	if n <= 1 {
		return ""
	}

	buf := make([]byte, n)
	var length int32
	native.GetProgramInfoLog(p, int32(n), &length, &buf[0])
	return goString(buf, length)
}

func (f *Functions) DeleteProgram(p uint32) {
	native.DeleteProgram(p)
}

func (f *Functions) UseProgram(p uint32) {
	native.UseProgram(p)
}

func (f *Functions) GetActiveUniform(p, index uint32) (name string, size int, typ gl.Enum) {

	n := f.GetProgrami(p, native.ACTIVE_UNIFORM_MAX_LENGTH)
	if n <= 0 {
		n = 256
	}

	buf := make([]byte, n)
	var length, sz int32
	native.GetActiveUniform(p, index, int32(n), &length, &sz, &typ, &buf[0])
	return goString(buf, length), int(sz), typ
}

func (f *Functions) GetActiveAttrib(p, index uint32) (name string, size int, typ gl.Enum) {

	n := f.GetProgrami(p, native.ACTIVE_ATTRIBUTE_MAX_LENGTH)
	if n <= 0 {
		n = 256
	}

	buf := make([]byte, n)
	var length, sz int32
	native.GetActiveAttrib(p, index, int32(n), &length, &sz, &typ, &buf[0])
	return goString(buf, length), int(sz), typ
}

func (f *Functions) GetUniformLocation(p uint32, name string) int {
	return int(native.GetUniformLocation(p, cstr(name)))
}

func (f *Functions) GetAttribLocation(p uint32, name string) int {
	return int(native.GetAttribLocation(p, cstr(name)))
}

func (f *Functions) GetFragDataLocation(p uint32, name string) int {
	return int(native.GetFragDataLocation(p, cstr(name)))
}

func (f *Functions) GetActiveUniformsi(p uint32, indices []uint32, pname gl.Enum) []int {

	if len(indices) == 0 {
		return nil
	}

	vals := make([]int32, len(indices))
	native.GetActiveUniformsiv(p, int32(len(indices)), &indices[0], pname, &vals[0])

	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v)
	}

	return out
}

func (f *Functions) GetActiveUniformBlockName(p, index uint32) string {

	n := f.GetActiveUniformBlocki(p, index, native.UNIFORM_BLOCK_NAME_LENGTH)
	if n <= 0 {
		return ""
	}

	buf := make([]byte, n)
	var length int32
	native.GetActiveUniformBlockName(p, index, int32(n), &length, &buf[0])
	return goString(buf, length)
}

func (f *Functions) GetActiveUniformBlocki(p, index uint32, pname gl.Enum) int {
	var v int32
	native.GetActiveUniformBlockiv(p, index, pname, &v)
	return int(v)
}

func (f *Functions) GetActiveUniformBlockIndices(p, index uint32) []uint32 {

	n := f.GetActiveUniformBlocki(p, index, gl.UNIFORM_BLOCK_ACTIVE_UNIFORMS)
	if n <= 0 {
		return nil
	}

	vals := make([]int32, n)
	native.GetActiveUniformBlockiv(p, index, native.UNIFORM_BLOCK_ACTIVE_UNIFORM_INDICES, &vals[0])

	out := make([]uint32, n)
	for i, v := range vals {
		out[i] = uint32(v)
	}

	return out
}

func (f *Functions) UniformBlockBinding(p, blockIndex, binding uint32) {
	native.UniformBlockBinding(p, blockIndex, binding)
}

func (f *Functions) ShaderStorageBlockBinding(p, blockIndex, binding uint32) {
	native.ShaderStorageBlockBinding(p, blockIndex, binding)
}

func (f *Functions) GetProgramInterfacei(p uint32, iface, pname gl.Enum) int {
	var v int32
	native.GetProgramInterfaceiv(p, iface, pname, &v)
	return int(v)
}

func (f *Functions) GetProgramResourceName(p uint32, iface gl.Enum, index uint32) string {

	lengths := f.GetProgramResourceiv(p, iface, index, []gl.Enum{native.NAME_LENGTH})
	if len(lengths) == 0 || lengths[0] <= 0 {
		return ""
	}

	buf := make([]byte, lengths[0])
	var length int32
	native.GetProgramResourceName(p, iface, index, int32(len(buf)), &length, &buf[0])
	return goString(buf, length)
}

func (f *Functions) GetProgramResourceiv(p uint32, iface gl.Enum, index uint32, props []gl.Enum) []int {

	if len(props) == 0 {
		return nil
	}

	vals := make([]int32, len(props))
	var length int32
	native.GetProgramResourceiv(p, iface, index, int32(len(props)), &props[0], int32(len(vals)), &length, &vals[0])

	out := make([]int, length)
	for i := range out {
		out[i] = int(vals[i])
	}

	return out
}

func (f *Functions) Uniform1iv(loc int, v []int32) {
	native.Uniform1iv(int32(loc), int32(len(v)), &v[0])
}

func (f *Functions) Uniform2iv(loc int, v []int32) {
	native.Uniform2iv(int32(loc), int32(len(v)/2), &v[0])
}

func (f *Functions) Uniform3iv(loc int, v []int32) {
	native.Uniform3iv(int32(loc), int32(len(v)/3), &v[0])
}

func (f *Functions) Uniform4iv(loc int, v []int32) {
	native.Uniform4iv(int32(loc), int32(len(v)/4), &v[0])
}

func (f *Functions) Uniform1uiv(loc int, v []uint32) {
	native.Uniform1uiv(int32(loc), int32(len(v)), &v[0])
}

func (f *Functions) Uniform2uiv(loc int, v []uint32) {
	native.Uniform2uiv(int32(loc), int32(len(v)/2), &v[0])
}

func (f *Functions) Uniform3uiv(loc int, v []uint32) {
	native.Uniform3uiv(int32(loc), int32(len(v)/3), &v[0])
}

func (f *Functions) Uniform4uiv(loc int, v []uint32) {
	native.Uniform4uiv(int32(loc), int32(len(v)/4), &v[0])
}

func (f *Functions) Uniform1fv(loc int, v []float32) {
	native.Uniform1fv(int32(loc), int32(len(v)), &v[0])
}

func (f *Functions) Uniform2fv(loc int, v []float32) {
	native.Uniform2fv(int32(loc), int32(len(v)/2), &v[0])
}

func (f *Functions) Uniform3fv(loc int, v []float32) {
	native.Uniform3fv(int32(loc), int32(len(v)/3), &v[0])
}

func (f *Functions) Uniform4fv(loc int, v []float32) {
	native.Uniform4fv(int32(loc), int32(len(v)/4), &v[0])
}

func (f *Functions) UniformMatrix2fv(loc int, v []float32) {
	native.UniformMatrix2fv(int32(loc), int32(len(v)/4), false, &v[0])
}

func (f *Functions) UniformMatrix3fv(loc int, v []float32) {
	native.UniformMatrix3fv(int32(loc), int32(len(v)/9), false, &v[0])
}

func (f *Functions) UniformMatrix4fv(loc int, v []float32) {
	native.UniformMatrix4fv(int32(loc), int32(len(v)/16), false, &v[0])
}

func (f *Functions) DispatchCompute(x, y, z uint32) {
	native.DispatchCompute(x, y, z)
}

// Drawing

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	native.DrawArrays(mode, int32(first), int32(count))
}

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	native.DrawArraysInstanced(mode, int32(first), int32(count), int32(instances))
}

func (f *Functions) DrawElements(mode gl.Enum, count int, typ gl.Enum, offset int) {
	native.DrawElementsWithOffset(mode, int32(count), typ, uintptr(offset))
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, typ gl.Enum, offset, instances int) {
	native.DrawElementsInstanced(mode, int32(count), typ, native.PtrOffset(offset), int32(instances))
}

func (f *Functions) DrawElementsBaseVertex(mode gl.Enum, count int, typ gl.Enum, offset, baseVertex int) {
	native.DrawElementsBaseVertexWithOffset(mode, int32(count), typ, uintptr(offset), int32(baseVertex))
}

func (f *Functions) DrawElementsInstancedBaseVertex(mode gl.Enum, count int, typ gl.Enum, offset, instances, baseVertex int) {
	native.DrawElementsInstancedBaseVertex(mode, int32(count), typ, native.PtrOffset(offset), int32(instances), int32(baseVertex))
}

func (f *Functions) BeginTransformFeedback(mode gl.Enum) {
	native.BeginTransformFeedback(mode)
}

func (f *Functions) EndTransformFeedback() {
	native.EndTransformFeedback()
}

// DebugMessageCallback replaces any earlier callback, nil removes it
func (f *Functions) DebugMessageCallback(cb gl.DebugProc) {

	if cb == nil {
		native.DebugMessageCallback(nil, nil)
		return
	}

	native.DebugMessageCallback(func(source, msgType, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		cb(source, msgType, id, severity, message)
	}, nil)
}
