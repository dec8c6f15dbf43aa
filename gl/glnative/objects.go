package glnative

import (
	native "github.com/go-gl/gl/all-core/gl"

	"github.com/bloeys/ngl/gl"
)

// Buffers

func (f *Functions) GenBuffer() uint32 {
	var b uint32
	native.GenBuffers(1, &b)
	return b
}

func (f *Functions) CreateBuffer() uint32 {
	var b uint32
	native.CreateBuffers(1, &b)
	return b
}

func (f *Functions) DeleteBuffer(b uint32) {
	native.DeleteBuffers(1, &b)
}

func (f *Functions) BindBuffer(target gl.Enum, b uint32) {
	native.BindBuffer(target, b)
}

func (f *Functions) BindBufferBase(target gl.Enum, index, b uint32) {
	native.BindBufferBase(target, index, b)
}

func (f *Functions) BindBufferRange(target gl.Enum, index, b uint32, offset, size int) {
	native.BindBufferRange(target, index, b, offset, size)
}

func (f *Functions) BufferData(target gl.Enum, size int, data []byte, usage gl.Enum) {
	native.BufferData(target, size, ptr(data), usage)
}

func (f *Functions) BufferStorage(target gl.Enum, size int, data []byte, flags gl.Enum) {
	native.BufferStorage(target, size, ptr(data), flags)
}

func (f *Functions) NamedBufferStorage(b uint32, size int, data []byte, flags gl.Enum) {
	native.NamedBufferStorage(b, size, ptr(data), flags)
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, data []byte) {
	native.BufferSubData(target, offset, len(data), ptr(data))
}

func (f *Functions) NamedBufferSubData(b uint32, offset int, data []byte) {
	native.NamedBufferSubData(b, offset, len(data), ptr(data))
}

func (f *Functions) GetBufferSubData(target gl.Enum, offset int, dst []byte) {
	native.GetBufferSubData(target, offset, len(dst), ptr(dst))
}

func (f *Functions) GetNamedBufferSubData(b uint32, offset int, dst []byte) {
	native.GetNamedBufferSubData(b, offset, len(dst), ptr(dst))
}

func (f *Functions) MapBufferRange(target gl.Enum, offset, length int, access gl.Enum) []byte {
	return mapped(native.MapBufferRange(target, offset, length, access), length)
}

func (f *Functions) MapNamedBufferRange(b uint32, offset, length int, access gl.Enum) []byte {
	return mapped(native.MapNamedBufferRange(b, offset, length, access), length)
}

func (f *Functions) UnmapBuffer(target gl.Enum) bool {
	return native.UnmapBuffer(target)
}

func (f *Functions) UnmapNamedBuffer(b uint32) bool {
	return native.UnmapNamedBuffer(b)
}

func (f *Functions) CopyBufferSubData(readTarget, writeTarget gl.Enum, readOffset, writeOffset, size int) {
	native.CopyBufferSubData(readTarget, writeTarget, readOffset, writeOffset, size)
}

func (f *Functions) CopyNamedBufferSubData(src, dst uint32, readOffset, writeOffset, size int) {
	native.CopyNamedBufferSubData(src, dst, readOffset, writeOffset, size)
}

func (f *Functions) InvalidateBufferData(b uint32) {
	native.InvalidateBufferData(b)
}

// Sync

func (f *Functions) FenceSync(condition, flags gl.Enum) gl.Sync {
	return gl.Sync(native.FenceSync(condition, flags))
}

func (f *Functions) ClientWaitSync(s gl.Sync, flags gl.Enum, timeout uint64) gl.Enum {
	return native.ClientWaitSync(uintptr(s), flags, timeout)
}

func (f *Functions) DeleteSync(s gl.Sync) {
	native.DeleteSync(uintptr(s))
}

// Vertex arrays

func (f *Functions) GenVertexArray() uint32 {
	var va uint32
	native.GenVertexArrays(1, &va)
	return va
}

func (f *Functions) DeleteVertexArray(va uint32) {
	native.DeleteVertexArrays(1, &va)
}

func (f *Functions) BindVertexArray(va uint32) {
	native.BindVertexArray(va)
}

func (f *Functions) EnableVertexAttribArray(index uint32) {
	native.EnableVertexAttribArray(index)
}

func (f *Functions) DisableVertexAttribArray(index uint32) {
	native.DisableVertexAttribArray(index)
}

func (f *Functions) VertexAttribPointer(index uint32, size int, typ gl.Enum, normalized bool, stride, offset int) {
	native.VertexAttribPointerWithOffset(index, int32(size), typ, normalized, int32(stride), uintptr(offset))
}

func (f *Functions) VertexAttribIPointer(index uint32, size int, typ gl.Enum, stride, offset int) {
	native.VertexAttribIPointerWithOffset(index, int32(size), typ, int32(stride), uintptr(offset))
}

func (f *Functions) VertexAttribDivisor(index, divisor uint32) {
	native.VertexAttribDivisor(index, divisor)
}

// Textures

func (f *Functions) GenTexture() uint32 {
	var t uint32
	native.GenTextures(1, &t)
	return t
}

func (f *Functions) DeleteTexture(t uint32) {
	native.DeleteTextures(1, &t)
}

func (f *Functions) ActiveTexture(unit gl.Enum) {
	native.ActiveTexture(unit)
}

func (f *Functions) BindTexture(target gl.Enum, t uint32) {
	native.BindTexture(target, t)
}

func (f *Functions) TexStorage1D(target gl.Enum, levels int, internalFormat gl.Enum, width int) {
	native.TexStorage1D(target, int32(levels), internalFormat, int32(width))
}

func (f *Functions) TexStorage2D(target gl.Enum, levels int, internalFormat gl.Enum, width, height int) {
	native.TexStorage2D(target, int32(levels), internalFormat, int32(width), int32(height))
}

func (f *Functions) TexStorage3D(target gl.Enum, levels int, internalFormat gl.Enum, width, height, depth int) {
	native.TexStorage3D(target, int32(levels), internalFormat, int32(width), int32(height), int32(depth))
}

func (f *Functions) TexStorage2DMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height int, fixedLocations bool) {
	native.TexStorage2DMultisample(target, int32(samples), internalFormat, int32(width), int32(height), fixedLocations)
}

func (f *Functions) TexStorage3DMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height, depth int, fixedLocations bool) {
	native.TexStorage3DMultisample(target, int32(samples), internalFormat, int32(width), int32(height), int32(depth), fixedLocations)
}

func (f *Functions) TexImage1D(target gl.Enum, level int, internalFormat gl.Enum, width int, format, typ gl.Enum, data []byte) {
	native.TexImage1D(target, int32(level), int32(internalFormat), int32(width), 0, format, typ, ptr(data))
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, typ gl.Enum, data []byte) {
	native.TexImage2D(target, int32(level), int32(internalFormat), int32(width), int32(height), 0, format, typ, ptr(data))
}

func (f *Functions) TexImage3D(target gl.Enum, level int, internalFormat gl.Enum, width, height, depth int, format, typ gl.Enum, data []byte) {
	native.TexImage3D(target, int32(level), int32(internalFormat), int32(width), int32(height), int32(depth), 0, format, typ, ptr(data))
}

func (f *Functions) TexImage2DMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height int, fixedLocations bool) {
	native.TexImage2DMultisample(target, int32(samples), internalFormat, int32(width), int32(height), fixedLocations)
}

func (f *Functions) TexImage3DMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height, depth int, fixedLocations bool) {
	native.TexImage3DMultisample(target, int32(samples), internalFormat, int32(width), int32(height), int32(depth), fixedLocations)
}

func (f *Functions) TexSubImage1D(target gl.Enum, level, x, width int, format, typ gl.Enum, data []byte) {
	native.TexSubImage1D(target, int32(level), int32(x), int32(width), format, typ, ptr(data))
}

func (f *Functions) TexSubImage2D(target gl.Enum, level, x, y, width, height int, format, typ gl.Enum, data []byte) {
	native.TexSubImage2D(target, int32(level), int32(x), int32(y), int32(width), int32(height), format, typ, ptr(data))
}

func (f *Functions) TexSubImage3D(target gl.Enum, level, x, y, z, width, height, depth int, format, typ gl.Enum, data []byte) {
	native.TexSubImage3D(target, int32(level), int32(x), int32(y), int32(z), int32(width), int32(height), int32(depth), format, typ, ptr(data))
}

func (f *Functions) GetTexImage(target gl.Enum, level int, format, typ gl.Enum, dst []byte) {
	native.GetTexImage(target, int32(level), format, typ, ptr(dst))
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	native.TexParameteri(target, pname, int32(param))
}

func (f *Functions) TexParameterf(target, pname gl.Enum, param float32) {
	native.TexParameterf(target, pname, param)
}

func (f *Functions) GenerateMipmap(target gl.Enum) {
	native.GenerateMipmap(target)
}

func (f *Functions) TexBuffer(target, internalFormat gl.Enum, b uint32) {
	native.TexBuffer(target, internalFormat, b)
}

// Samplers

func (f *Functions) GenSampler() uint32 {
	var s uint32
	native.GenSamplers(1, &s)
	return s
}

func (f *Functions) DeleteSampler(s uint32) {
	native.DeleteSamplers(1, &s)
}

func (f *Functions) BindSampler(unit, s uint32) {
	native.BindSampler(unit, s)
}

func (f *Functions) SamplerParameteri(s uint32, pname gl.Enum, param int) {
	native.SamplerParameteri(s, pname, int32(param))
}

func (f *Functions) SamplerParameterf(s uint32, pname gl.Enum, param float32) {
	native.SamplerParameterf(s, pname, param)
}

// Renderbuffers and framebuffers

func (f *Functions) GenRenderbuffer() uint32 {
	var rb uint32
	native.GenRenderbuffers(1, &rb)
	return rb
}

func (f *Functions) DeleteRenderbuffer(rb uint32) {
	native.DeleteRenderbuffers(1, &rb)
}

func (f *Functions) BindRenderbuffer(target gl.Enum, rb uint32) {
	native.BindRenderbuffer(target, rb)
}

func (f *Functions) RenderbufferStorage(target, internalFormat gl.Enum, width, height int) {
	native.RenderbufferStorage(target, internalFormat, int32(width), int32(height))
}

func (f *Functions) RenderbufferStorageMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height int) {
	native.RenderbufferStorageMultisample(target, int32(samples), internalFormat, int32(width), int32(height))
}

func (f *Functions) GenFramebuffer() uint32 {
	var fb uint32
	native.GenFramebuffers(1, &fb)
	return fb
}

func (f *Functions) DeleteFramebuffer(fb uint32) {
	native.DeleteFramebuffers(1, &fb)
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb uint32) {
	native.BindFramebuffer(target, fb)
}

func (f *Functions) FramebufferTexture(target, attachment gl.Enum, t uint32, level int) {
	native.FramebufferTexture(target, attachment, t, int32(level))
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t uint32, level int) {
	native.FramebufferTexture2D(target, attachment, texTarget, t, int32(level))
}

func (f *Functions) FramebufferTextureLayer(target, attachment gl.Enum, t uint32, level, layer int) {
	native.FramebufferTextureLayer(target, attachment, t, int32(level), int32(layer))
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, rbTarget gl.Enum, rb uint32) {
	native.FramebufferRenderbuffer(target, attachment, rbTarget, rb)
}

func (f *Functions) FramebufferParameteri(target, pname gl.Enum, param int) {
	native.FramebufferParameteri(target, pname, int32(param))
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	return native.CheckFramebufferStatus(target)
}

func (f *Functions) DrawBuffers(bufs []gl.Enum) {

	if len(bufs) == 0 {
		return
	}

	native.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (f *Functions) ReadBuffer(src gl.Enum) {
	native.ReadBuffer(src)
}

func (f *Functions) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int, mask, filter gl.Enum) {
	native.BlitFramebuffer(
		int32(srcX0), int32(srcY0), int32(srcX1), int32(srcY1),
		int32(dstX0), int32(dstY0), int32(dstX1), int32(dstY1),
		mask, filter,
	)
}

func (f *Functions) ReadPixels(x, y, width, height int, format, typ gl.Enum, dst []byte) {
	native.ReadPixels(int32(x), int32(y), int32(width), int32(height), format, typ, ptr(dst))
}

// Queries

func (f *Functions) GenQuery() uint32 {
	var q uint32
	native.GenQueries(1, &q)
	return q
}

func (f *Functions) DeleteQuery(q uint32) {
	native.DeleteQueries(1, &q)
}

func (f *Functions) BeginQuery(target gl.Enum, q uint32) {
	native.BeginQuery(target, q)
}

func (f *Functions) EndQuery(target gl.Enum) {
	native.EndQuery(target)
}

func (f *Functions) GetQueryObjectui64(q uint32, pname gl.Enum) uint64 {
	var v uint64
	native.GetQueryObjectui64v(q, pname, &v)
	return v
}
