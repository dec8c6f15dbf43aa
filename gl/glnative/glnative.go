// Package glnative implements gl.Functions on the driver through go-gl.
//
// go-gl keeps its entry points in package level variables, so every
// Functions value in a process shares the pointers loaded by the last New.
// Contexts created by one backend all resolve to the same driver, which is
// the only case this supports.
package glnative

import (
	"strings"
	"unsafe"

	native "github.com/go-gl/gl/all-core/gl"

	"github.com/bloeys/ngl/gl"
)

var _ gl.Functions = &Functions{}

type Functions struct{}

// New loads the GL entry points through getProcAddr. The context they are
// loaded for must be current.
func New(getProcAddr func(name string) unsafe.Pointer) (*Functions, error) {

	if err := native.InitWithProcAddrFunc(getProcAddr); err != nil {
		return nil, err
	}

	return &Functions{}, nil
}

func ptr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}

func cstr(s string) *uint8 {
	return native.Str(s + "\x00")
}

func goString(buf []byte, length int32) string {

	if length > 0 && int(length) <= len(buf) {
		return string(buf[:length])
	}

	return strings.TrimRight(string(buf), "\x00")
}

func mapped(p unsafe.Pointer, length int) []byte {
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), length)
}

func (f *Functions) GetError() gl.Enum {
	return native.GetError()
}

func (f *Functions) GetString(name gl.Enum) string {

	s := native.GetString(name)
	if s == nil {
		return ""
	}

	return native.GoStr(s)
}

func (f *Functions) GetStringi(name gl.Enum, index uint32) string {

	s := native.GetStringi(name, index)
	if s == nil {
		return ""
	}

	return native.GoStr(s)
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	var v int32
	native.GetIntegerv(pname, &v)
	return int(v)
}

func (f *Functions) GetIntegeri(pname gl.Enum, index uint32) int {
	var v int32
	native.GetIntegeri_v(pname, index, &v)
	return int(v)
}

func (f *Functions) GetInteger4(pname gl.Enum) [4]int {

	var v [4]int32
	native.GetIntegerv(pname, &v[0])
	return [4]int{int(v[0]), int(v[1]), int(v[2]), int(v[3])}
}

func (f *Functions) GetFloat(pname gl.Enum) float32 {
	var v float32
	native.GetFloatv(pname, &v)
	return v
}

func (f *Functions) GetFloat4(pname gl.Enum) [4]float32 {
	var v [4]float32
	native.GetFloatv(pname, &v[0])
	return v
}

func (f *Functions) IsEnabled(cap gl.Enum) bool {
	return native.IsEnabled(cap)
}

func (f *Functions) Enable(cap gl.Enum) {
	native.Enable(cap)
}

func (f *Functions) Disable(cap gl.Enum) {
	native.Disable(cap)
}

func (f *Functions) Flush() {
	native.Flush()
}

func (f *Functions) Finish() {
	native.Finish()
}

func (f *Functions) Hint(target, mode gl.Enum) {
	native.Hint(target, mode)
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	native.PixelStorei(pname, int32(param))
}

func (f *Functions) MemoryBarrier(barriers gl.Enum) {
	native.MemoryBarrier(barriers)
}

func (f *Functions) Viewport(x, y, width, height int) {
	native.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) Scissor(x, y, width, height int) {
	native.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) ClearColor(r, g, b, a float32) {
	native.ClearColor(r, g, b, a)
}

func (f *Functions) ClearDepth(d float64) {
	native.ClearDepth(d)
}

func (f *Functions) ClearDepthf(d float32) {
	native.ClearDepthf(d)
}

func (f *Functions) ClearStencil(s int) {
	native.ClearStencil(int32(s))
}

func (f *Functions) Clear(mask gl.Enum) {
	native.Clear(mask)
}

func (f *Functions) DepthFunc(fn gl.Enum) {
	native.DepthFunc(fn)
}

func (f *Functions) DepthMask(mask bool) {
	native.DepthMask(mask)
}

func (f *Functions) DepthRange(near, far float64) {
	native.DepthRange(near, far)
}

func (f *Functions) DepthRangef(near, far float32) {
	native.DepthRangef(near, far)
}

func (f *Functions) ColorMask(r, g, b, a bool) {
	native.ColorMask(r, g, b, a)
}

func (f *Functions) BlendEquationSeparate(modeRGB, modeAlpha gl.Enum) {
	native.BlendEquationSeparate(modeRGB, modeAlpha)
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gl.Enum) {
	native.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (f *Functions) BlendColor(r, g, b, a float32) {
	native.BlendColor(r, g, b, a)
}

func (f *Functions) StencilFuncSeparate(face, fn gl.Enum, ref int, mask uint32) {
	native.StencilFuncSeparate(face, fn, int32(ref), mask)
}

func (f *Functions) StencilOpSeparate(face, sfail, dpfail, dppass gl.Enum) {
	native.StencilOpSeparate(face, sfail, dpfail, dppass)
}

func (f *Functions) StencilMaskSeparate(face gl.Enum, mask uint32) {
	native.StencilMaskSeparate(face, mask)
}

func (f *Functions) CullFace(mode gl.Enum) {
	native.CullFace(mode)
}

func (f *Functions) FrontFace(mode gl.Enum) {
	native.FrontFace(mode)
}

func (f *Functions) PolygonMode(face, mode gl.Enum) {
	native.PolygonMode(face, mode)
}

func (f *Functions) PolygonOffset(factor, units float32) {
	native.PolygonOffset(factor, units)
}

func (f *Functions) LineWidth(width float32) {
	native.LineWidth(width)
}

func (f *Functions) PointSize(size float32) {
	native.PointSize(size)
}

func (f *Functions) ProvokingVertex(mode gl.Enum) {
	native.ProvokingVertex(mode)
}

func (f *Functions) PrimitiveRestartIndex(index uint32) {
	native.PrimitiveRestartIndex(index)
}

func (f *Functions) PatchParameteri(pname gl.Enum, value int) {
	native.PatchParameteri(pname, int32(value))
}
