package gltest

import (
	"strings"

	"github.com/bloeys/ngl/gl"
)

/*
	Buffers
*/

var indexedLimits = map[gl.Enum]gl.Enum{
	gl.UNIFORM_BUFFER:            gl.MAX_UNIFORM_BUFFER_BINDINGS,
	gl.SHADER_STORAGE_BUFFER:     gl.MAX_SHADER_STORAGE_BUFFER_BINDINGS,
	gl.ATOMIC_COUNTER_BUFFER:     gl.MAX_ATOMIC_COUNTER_BUFFER_BINDINGS,
	gl.TRANSFORM_FEEDBACK_BUFFER: gl.MAX_TRANSFORM_FEEDBACK_BUFFERS,
}

func (f *Functions) GenBuffer() uint32 {

	b := f.gen("buffer")
	f.record("GenBuffer", b)
	if b != 0 {
		f.buffers[b] = &buffer{}
	}

	return b
}

func (f *Functions) CreateBuffer() uint32 {

	b := f.gen("buffer")
	f.record("CreateBuffer", b)
	if b != 0 {
		f.buffers[b] = &buffer{}
	}

	return b
}

func (f *Functions) DeleteBuffer(b uint32) {

	f.record("DeleteBuffer", b)
	f.del("buffer", b)
	delete(f.buffers, b)

	for t, cur := range f.bindings {
		if cur == b {
			f.bindings[t] = 0
		}
	}

	if f.vaoElements[f.vao] == b {
		f.vaoElements[f.vao] = 0
	}

	for _, bindings := range f.indexed {
		for i := range bindings {
			if bindings[i].buffer == b {
				bindings[i] = indexedBinding{}
			}
		}
	}
}

func (f *Functions) BindBuffer(target gl.Enum, b uint32) {

	f.record("BindBuffer", target, b)
	if target == gl.ELEMENT_ARRAY_BUFFER {
		f.vaoElements[f.vao] = b
		return
	}

	f.bindings[target] = b
}

func (f *Functions) bindIndexed(target gl.Enum, index, b uint32, offset, size int) {

	if f.indexed[target] == nil {
		f.indexed[target] = make([]indexedBinding, f.Limits[indexedLimits[target]])
	}

	if int(index) < len(f.indexed[target]) {
		f.indexed[target][index] = indexedBinding{buffer: b, offset: offset, size: size}
	}

	f.bindings[target] = b
}

func (f *Functions) BindBufferBase(target gl.Enum, index, b uint32) {
	f.record("BindBufferBase", target, index, b)
	f.bindIndexed(target, index, b, 0, 0)
}

func (f *Functions) BindBufferRange(target gl.Enum, index, b uint32, offset, size int) {
	f.record("BindBufferRange", target, index, b, offset, size)
	f.bindIndexed(target, index, b, offset, size)
}

func (f *Functions) bound(target gl.Enum) *buffer {

	name := f.bindings[target]
	if target == gl.ELEMENT_ARRAY_BUFFER {
		name = f.vaoElements[f.vao]
	}

	return f.buffers[name]
}

func (f *Functions) store(buf *buffer, size int, data []byte) {

	if buf == nil {
		return
	}

	buf.data = make([]byte, size)
	copy(buf.data, data)
}

func (f *Functions) BufferData(target gl.Enum, size int, data []byte, usage gl.Enum) {
	f.record("BufferData", target, size, usage)
	f.store(f.bound(target), size, data)
}

func (f *Functions) BufferStorage(target gl.Enum, size int, data []byte, flags gl.Enum) {

	f.record("BufferStorage", target, size, flags)

	buf := f.bound(target)
	f.store(buf, size, data)
	if buf != nil {
		buf.immutable = true
	}
}

func (f *Functions) NamedBufferStorage(b uint32, size int, data []byte, flags gl.Enum) {

	f.record("NamedBufferStorage", b, size, flags)

	buf := f.buffers[b]
	f.store(buf, size, data)
	if buf != nil {
		buf.immutable = true
	}
}

func (f *Functions) subData(buf *buffer, offset int, data []byte) {
	if buf != nil && offset+len(data) <= len(buf.data) {
		copy(buf.data[offset:], data)
	}
}

func (f *Functions) readData(buf *buffer, offset int, dst []byte) {
	if buf != nil && offset+len(dst) <= len(buf.data) {
		copy(dst, buf.data[offset:])
	}
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, data []byte) {
	f.record("BufferSubData", target, offset, len(data))
	f.subData(f.bound(target), offset, data)
}

func (f *Functions) NamedBufferSubData(b uint32, offset int, data []byte) {
	f.record("NamedBufferSubData", b, offset, len(data))
	f.subData(f.buffers[b], offset, data)
}

func (f *Functions) GetBufferSubData(target gl.Enum, offset int, dst []byte) {
	f.record("GetBufferSubData", target, offset, len(dst))
	f.readData(f.bound(target), offset, dst)
}

func (f *Functions) GetNamedBufferSubData(b uint32, offset int, dst []byte) {
	f.record("GetNamedBufferSubData", b, offset, len(dst))
	f.readData(f.buffers[b], offset, dst)
}

func (f *Functions) mapRange(buf *buffer, offset, length int) []byte {

	if buf == nil || buf.mapped || offset+length > len(buf.data) {
		f.PendingErrors = append(f.PendingErrors, gl.INVALID_OPERATION)
		return nil
	}

	buf.mapped = true
	return buf.data[offset : offset+length : offset+length]
}

func (f *Functions) MapBufferRange(target gl.Enum, offset, length int, access gl.Enum) []byte {
	f.record("MapBufferRange", target, offset, length, access)
	return f.mapRange(f.bound(target), offset, length)
}

func (f *Functions) MapNamedBufferRange(b uint32, offset, length int, access gl.Enum) []byte {
	f.record("MapNamedBufferRange", b, offset, length, access)
	return f.mapRange(f.buffers[b], offset, length)
}

func (f *Functions) unmap(buf *buffer) bool {

	if buf == nil || !buf.mapped {
		f.PendingErrors = append(f.PendingErrors, gl.INVALID_OPERATION)
		return false
	}

	buf.mapped = false
	return true
}

func (f *Functions) UnmapBuffer(target gl.Enum) bool {
	f.record("UnmapBuffer", target)
	return f.unmap(f.bound(target))
}

func (f *Functions) UnmapNamedBuffer(b uint32) bool {
	f.record("UnmapNamedBuffer", b)
	return f.unmap(f.buffers[b])
}

// IsMapped reports whether buffer b is currently mapped
func (f *Functions) IsMapped(b uint32) bool {
	buf, ok := f.buffers[b]
	return ok && buf.mapped
}

func (f *Functions) copyBuffer(src, dst *buffer, readOffset, writeOffset, size int) {

	if src == nil || dst == nil || readOffset+size > len(src.data) || writeOffset+size > len(dst.data) {
		f.PendingErrors = append(f.PendingErrors, gl.INVALID_VALUE)
		return
	}

	copy(dst.data[writeOffset:writeOffset+size], src.data[readOffset:readOffset+size])
}

func (f *Functions) CopyBufferSubData(readTarget, writeTarget gl.Enum, readOffset, writeOffset, size int) {
	f.record("CopyBufferSubData", readTarget, writeTarget, readOffset, writeOffset, size)
	f.copyBuffer(f.bound(readTarget), f.bound(writeTarget), readOffset, writeOffset, size)
}

func (f *Functions) CopyNamedBufferSubData(src, dst uint32, readOffset, writeOffset, size int) {
	f.record("CopyNamedBufferSubData", src, dst, readOffset, writeOffset, size)
	f.copyBuffer(f.buffers[src], f.buffers[dst], readOffset, writeOffset, size)
}

func (f *Functions) InvalidateBufferData(b uint32) {
	f.record("InvalidateBufferData", b)
}

/*
	Sync
*/

func (f *Functions) FenceSync(condition, flags gl.Enum) gl.Sync {

	f.nextSync++
	f.syncs[f.nextSync] = true
	f.record("FenceSync", condition, flags)

	return f.nextSync
}

func (f *Functions) ClientWaitSync(s gl.Sync, flags gl.Enum, timeout uint64) gl.Enum {

	f.record("ClientWaitSync", s, flags, timeout)
	if !f.syncs[s] {
		return gl.WAIT_FAILED
	}

	return f.WaitResult
}

func (f *Functions) DeleteSync(s gl.Sync) {
	f.record("DeleteSync", s)
	delete(f.syncs, s)
}

/*
	Vertex arrays
*/

func (f *Functions) GenVertexArray() uint32 {
	va := f.gen("vertex array")
	f.record("GenVertexArray", va)
	return va
}

func (f *Functions) DeleteVertexArray(va uint32) {

	f.record("DeleteVertexArray", va)
	f.del("vertex array", va)
	delete(f.vaoElements, va)
	if f.vao == va {
		f.vao = 0
	}
}

func (f *Functions) BindVertexArray(va uint32) {
	f.record("BindVertexArray", va)
	f.vao = va
}

func (f *Functions) EnableVertexAttribArray(index uint32) {
	f.record("EnableVertexAttribArray", index)
}

func (f *Functions) DisableVertexAttribArray(index uint32) {
	f.record("DisableVertexAttribArray", index)
}

func (f *Functions) VertexAttribPointer(index uint32, size int, typ gl.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer", index, size, typ, normalized, stride, offset)
}

func (f *Functions) VertexAttribIPointer(index uint32, size int, typ gl.Enum, stride, offset int) {
	f.record("VertexAttribIPointer", index, size, typ, stride, offset)
}

func (f *Functions) VertexAttribDivisor(index, divisor uint32) {
	f.record("VertexAttribDivisor", index, divisor)
}

/*
	Textures
*/

func (f *Functions) GenTexture() uint32 {
	t := f.gen("texture")
	f.record("GenTexture", t)
	return t
}

func (f *Functions) DeleteTexture(t uint32) {

	f.record("DeleteTexture", t)
	f.del("texture", t)

	for _, u := range f.units {
		for target, cur := range u {
			if cur == t {
				u[target] = 0
			}
		}
	}

	for k := range f.images {
		if k.tex == t {
			delete(f.images, k)
		}
	}
}

func (f *Functions) ActiveTexture(unit gl.Enum) {
	f.record("ActiveTexture", unit)
	f.activeUnit = unit - gl.TEXTURE0
}

func (f *Functions) BindTexture(target gl.Enum, t uint32) {
	f.record("BindTexture", target, t)
	f.units[f.activeUnit][target] = t
}

func isCubeFace(target gl.Enum) bool {
	return target >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && target <= gl.TEXTURE_CUBE_MAP_NEGATIVE_Z
}

// imageKeyFor resolves the texture bound for target, mapping cube faces to the cube map binding
func (f *Functions) imageKeyFor(target gl.Enum, level int) imageKey {

	binding := target
	if isCubeFace(target) {
		binding = gl.TEXTURE_CUBE_MAP
	}

	return imageKey{tex: f.units[f.activeUnit][binding], target: target, level: level}
}

func (f *Functions) allocLevels(target gl.Enum, levels, w, h, d int) {

	targets := []gl.Enum{target}
	if target == gl.TEXTURE_CUBE_MAP {
		targets = targets[:0]
		for i := gl.Enum(0); i < 6; i++ {
			targets = append(targets, gl.TEXTURE_CUBE_MAP_POSITIVE_X+i)
		}
	}

	for l := 0; l < levels; l++ {
		for _, t := range targets {
			f.images[f.imageKeyFor(t, l)] = &image{w: w, h: h, d: d}
		}

		w = max(1, w/2)
		if target != gl.TEXTURE_1D_ARRAY {
			h = max(1, h/2)
		}
		if target == gl.TEXTURE_3D {
			d = max(1, d/2)
		}
	}
}

func (f *Functions) TexStorage1D(target gl.Enum, levels int, internalFormat gl.Enum, width int) {
	f.record("TexStorage1D", target, levels, internalFormat, width)
	f.allocLevels(target, levels, width, 1, 1)
}

func (f *Functions) TexStorage2D(target gl.Enum, levels int, internalFormat gl.Enum, width, height int) {
	f.record("TexStorage2D", target, levels, internalFormat, width, height)
	f.allocLevels(target, levels, width, height, 1)
}

func (f *Functions) TexStorage3D(target gl.Enum, levels int, internalFormat gl.Enum, width, height, depth int) {
	f.record("TexStorage3D", target, levels, internalFormat, width, height, depth)
	f.allocLevels(target, levels, width, height, depth)
}

func (f *Functions) TexStorage2DMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height int, fixedLocations bool) {
	f.record("TexStorage2DMultisample", target, samples, internalFormat, width, height, fixedLocations)
}

func (f *Functions) TexStorage3DMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height, depth int, fixedLocations bool) {
	f.record("TexStorage3DMultisample", target, samples, internalFormat, width, height, depth, fixedLocations)
}

func (f *Functions) texImage(target gl.Enum, level, w, h, d int, data []byte) {

	img := &image{w: w, h: h, d: d}
	if data != nil {
		img.data = append([]byte(nil), data...)
	}

	f.images[f.imageKeyFor(target, level)] = img
}

func (f *Functions) TexImage1D(target gl.Enum, level int, internalFormat gl.Enum, width int, format, typ gl.Enum, data []byte) {
	f.record("TexImage1D", target, level, internalFormat, width, format, typ)
	f.texImage(target, level, width, 1, 1, data)
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, typ gl.Enum, data []byte) {
	f.record("TexImage2D", target, level, internalFormat, width, height, format, typ)
	f.texImage(target, level, width, height, 1, data)
}

func (f *Functions) TexImage3D(target gl.Enum, level int, internalFormat gl.Enum, width, height, depth int, format, typ gl.Enum, data []byte) {
	f.record("TexImage3D", target, level, internalFormat, width, height, depth, format, typ)
	f.texImage(target, level, width, height, depth, data)
}

func (f *Functions) TexImage2DMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height int, fixedLocations bool) {
	f.record("TexImage2DMultisample", target, samples, internalFormat, width, height, fixedLocations)
}

func (f *Functions) TexImage3DMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height, depth int, fixedLocations bool) {
	f.record("TexImage3DMultisample", target, samples, internalFormat, width, height, depth, fixedLocations)
}

// subImage copies a box of tightly packed pixels into the stored level
func (f *Functions) subImage(target gl.Enum, level, x, y, z, w, h, d int, data []byte) {

	img := f.images[f.imageKeyFor(target, level)]
	if img == nil || w*h*d == 0 || len(data)%(w*h*d) != 0 {
		return
	}

	bpp := len(data) / (w * h * d)
	if len(img.data) != img.w*img.h*img.d*bpp {
		img.data = make([]byte, img.w*img.h*img.d*bpp)
	}

	for zi := 0; zi < d; zi++ {
		for yi := 0; yi < h; yi++ {

			src := ((zi*h+yi)*w)*bpp
			dst := (((z+zi)*img.h+(y+yi))*img.w + x) * bpp
			if dst+w*bpp > len(img.data) {
				continue
			}

			copy(img.data[dst:dst+w*bpp], data[src:src+w*bpp])
		}
	}
}

func (f *Functions) TexSubImage1D(target gl.Enum, level, x, width int, format, typ gl.Enum, data []byte) {
	f.record("TexSubImage1D", target, level, x, width, format, typ)
	f.subImage(target, level, x, 0, 0, width, 1, 1, data)
}

func (f *Functions) TexSubImage2D(target gl.Enum, level, x, y, width, height int, format, typ gl.Enum, data []byte) {
	f.record("TexSubImage2D", target, level, x, y, width, height, format, typ)
	f.subImage(target, level, x, y, 0, width, height, 1, data)
}

func (f *Functions) TexSubImage3D(target gl.Enum, level, x, y, z, width, height, depth int, format, typ gl.Enum, data []byte) {
	f.record("TexSubImage3D", target, level, x, y, z, width, height, depth, format, typ)
	f.subImage(target, level, x, y, z, width, height, depth, data)
}

func (f *Functions) GetTexImage(target gl.Enum, level int, format, typ gl.Enum, dst []byte) {

	f.record("GetTexImage", target, level, format, typ, len(dst))
	if img := f.images[f.imageKeyFor(target, level)]; img != nil {
		copy(dst, img.data)
	}
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	f.record("TexParameteri", target, pname, param)
}

func (f *Functions) TexParameterf(target, pname gl.Enum, param float32) {
	f.record("TexParameterf", target, pname, param)
}

func (f *Functions) GenerateMipmap(target gl.Enum) {
	f.record("GenerateMipmap", target)
}

func (f *Functions) TexBuffer(target, internalFormat gl.Enum, b uint32) {
	f.record("TexBuffer", target, internalFormat, b)
}

/*
	Samplers
*/

func (f *Functions) GenSampler() uint32 {
	s := f.gen("sampler")
	f.record("GenSampler", s)
	return s
}

func (f *Functions) DeleteSampler(s uint32) {

	f.record("DeleteSampler", s)
	f.del("sampler", s)
	for i, cur := range f.samplers {
		if cur == s {
			f.samplers[i] = 0
		}
	}
}

func (f *Functions) BindSampler(unit, s uint32) {
	f.record("BindSampler", unit, s)
	f.samplers[unit] = s
}

func (f *Functions) SamplerParameteri(s uint32, pname gl.Enum, param int) {
	f.record("SamplerParameteri", s, pname, param)
}

func (f *Functions) SamplerParameterf(s uint32, pname gl.Enum, param float32) {
	f.record("SamplerParameterf", s, pname, param)
}

/*
	Renderbuffers and framebuffers
*/

func (f *Functions) GenRenderbuffer() uint32 {
	rb := f.gen("renderbuffer")
	f.record("GenRenderbuffer", rb)
	return rb
}

func (f *Functions) DeleteRenderbuffer(rb uint32) {

	f.record("DeleteRenderbuffer", rb)
	f.del("renderbuffer", rb)
	if f.renderbuffer == rb {
		f.renderbuffer = 0
	}
}

func (f *Functions) BindRenderbuffer(target gl.Enum, rb uint32) {
	f.record("BindRenderbuffer", target, rb)
	f.renderbuffer = rb
}

func (f *Functions) RenderbufferStorage(target, internalFormat gl.Enum, width, height int) {
	f.record("RenderbufferStorage", target, internalFormat, width, height)
}

func (f *Functions) RenderbufferStorageMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height int) {
	f.record("RenderbufferStorageMultisample", target, samples, internalFormat, width, height)
}

func (f *Functions) GenFramebuffer() uint32 {
	fb := f.gen("framebuffer")
	f.record("GenFramebuffer", fb)
	return fb
}

func (f *Functions) DeleteFramebuffer(fb uint32) {

	f.record("DeleteFramebuffer", fb)
	f.del("framebuffer", fb)
	if f.drawFB == fb {
		f.drawFB = 0
	}
	if f.readFB == fb {
		f.readFB = 0
	}
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb uint32) {

	f.record("BindFramebuffer", target, fb)
	switch target {
	case gl.DRAW_FRAMEBUFFER:
		f.drawFB = fb
	case gl.READ_FRAMEBUFFER:
		f.readFB = fb
	default:
		f.drawFB = fb
		f.readFB = fb
	}
}

func (f *Functions) FramebufferTexture(target, attachment gl.Enum, t uint32, level int) {
	f.record("FramebufferTexture", target, attachment, t, level)
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t uint32, level int) {
	f.record("FramebufferTexture2D", target, attachment, texTarget, t, level)
}

func (f *Functions) FramebufferTextureLayer(target, attachment gl.Enum, t uint32, level, layer int) {
	f.record("FramebufferTextureLayer", target, attachment, t, level, layer)
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, rbTarget gl.Enum, rb uint32) {
	f.record("FramebufferRenderbuffer", target, attachment, rbTarget, rb)
}

func (f *Functions) FramebufferParameteri(target, pname gl.Enum, param int) {
	f.record("FramebufferParameteri", target, pname, param)
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	f.record("CheckFramebufferStatus", target)
	return f.FramebufferStatus
}

func (f *Functions) DrawBuffers(bufs []gl.Enum) {
	f.record("DrawBuffers", append([]gl.Enum(nil), bufs...))
}

func (f *Functions) ReadBuffer(src gl.Enum) {
	f.record("ReadBuffer", src)
}

func (f *Functions) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int, mask, filter gl.Enum) {
	f.record("BlitFramebuffer", srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (f *Functions) ReadPixels(x, y, width, height int, format, typ gl.Enum, dst []byte) {

	f.record("ReadPixels", x, y, width, height, format, typ)
	for i := range dst {
		dst[i] = f.ReadPixelsFill
	}
}

/*
	Shaders and programs
*/

func (f *Functions) CreateShader(typ gl.Enum) uint32 {

	s := f.gen("shader")
	f.record("CreateShader", typ, s)
	if s != 0 {
		f.shaders[s] = &shader{typ: typ}
	}

	return s
}

func (f *Functions) ShaderSource(s uint32, src string) {

	f.record("ShaderSource", s)
	if sh := f.shaders[s]; sh != nil {
		sh.src = src
	}
}

// CompileShader fails for sources containing "#error"
func (f *Functions) CompileShader(s uint32) {

	f.record("CompileShader", s)
	sh := f.shaders[s]
	if sh == nil {
		return
	}

	if i := strings.Index(sh.src, "#error"); i >= 0 {
		sh.compiled = false
		sh.log = "0:1(1): error: " + strings.TrimSpace(strings.SplitN(sh.src[i:], "\n", 2)[0])
		return
	}

	sh.compiled = true
	sh.log = ""
}

func (f *Functions) GetShaderi(s uint32, pname gl.Enum) int {

	f.record("GetShaderi", s, pname)
	sh := f.shaders[s]
	if sh == nil {
		return 0
	}

	switch pname {
	case gl.COMPILE_STATUS:
		return boolInt(sh.compiled)
	case gl.INFO_LOG_LENGTH:
		if sh.log == "" {
			return 0
		}
		return len(sh.log) + 1
	}

	return 0
}

func (f *Functions) GetShaderInfoLog(s uint32) string {

	f.record("GetShaderInfoLog", s)
	if sh := f.shaders[s]; sh != nil {
		return sh.log
	}

	return ""
}

func (f *Functions) DeleteShader(s uint32) {
	f.record("DeleteShader", s)
	f.del("shader", s)
	delete(f.shaders, s)
}

func (f *Functions) CreateProgram() uint32 {

	p := f.gen("program")
	f.record("CreateProgram", p)
	if p != 0 {
		f.programs[p] = &program{shaders: map[uint32]bool{}}
	}

	return p
}

func (f *Functions) AttachShader(p, s uint32) {

	f.record("AttachShader", p, s)
	if prog := f.programs[p]; prog != nil {
		prog.shaders[s] = true
	}
}

func (f *Functions) DetachShader(p, s uint32) {

	f.record("DetachShader", p, s)
	if prog := f.programs[p]; prog != nil {
		delete(prog.shaders, s)
	}
}

func (f *Functions) LinkProgram(p uint32) {

	f.record("LinkProgram", p)
	prog := f.programs[p]
	if prog == nil {
		return
	}

	for s := range prog.shaders {
		if sh := f.shaders[s]; sh == nil || !sh.compiled {
			prog.linked = false
			prog.log = "error: linking with uncompiled shader"
			return
		}
	}

	if f.FailLink != "" {
		prog.linked = false
		prog.log = f.FailLink
		f.FailLink = ""
		return
	}

	prog.linked = true
	prog.log = ""
	prog.info = f.NextProgram
	f.NextProgram = ProgramInfo{}

	prog.blockBindings = make([]uint32, len(prog.info.Blocks))
	for i, b := range prog.info.Blocks {
		prog.blockBindings[i] = b.Binding
	}

	prog.storageBindings = make([]uint32, len(prog.info.StorageBlocks))
	for i, b := range prog.info.StorageBlocks {
		prog.storageBindings[i] = b.Binding
	}
}

// activeUniforms lists default block uniforms followed by block members,
// which is how drivers enumerate them.
func (prog *program) activeUniforms() (vars []Var, blockIndex []int, members []BlockMember) {

	for _, u := range prog.info.Uniforms {
		vars = append(vars, u)
		blockIndex = append(blockIndex, -1)
		members = append(members, BlockMember{})
	}

	for bi, b := range prog.info.Blocks {
		for _, m := range b.Members {
			vars = append(vars, Var{Name: m.Name, Size: m.Size, Type: m.Type, Location: -1})
			blockIndex = append(blockIndex, bi)
			members = append(members, m)
		}
	}

	return vars, blockIndex, members
}

func (f *Functions) GetProgrami(p uint32, pname gl.Enum) int {

	f.record("GetProgrami", p, pname)
	prog := f.programs[p]
	if prog == nil {
		return 0
	}

	switch pname {
	case gl.LINK_STATUS:
		return boolInt(prog.linked)
	case gl.INFO_LOG_LENGTH:
		if prog.log == "" {
			return 0
		}
		return len(prog.log) + 1
	case gl.ATTACHED_SHADERS:
		return len(prog.shaders)
	case gl.ACTIVE_UNIFORMS:
		vars, _, _ := prog.activeUniforms()
		return len(vars)
	case gl.ACTIVE_ATTRIBUTES:
		return len(prog.info.Attributes)
	case gl.ACTIVE_UNIFORM_BLOCKS:
		return len(prog.info.Blocks)
	}

	return 0
}

func (f *Functions) GetProgramInfoLog(p uint32) string {

	f.record("GetProgramInfoLog", p)
	if prog := f.programs[p]; prog != nil {
		return prog.log
	}

	return ""
}

func (f *Functions) DeleteProgram(p uint32) {

	f.record("DeleteProgram", p)
	f.del("program", p)
	delete(f.programs, p)
}

func (f *Functions) UseProgram(p uint32) {
	f.record("UseProgram", p)
	f.curProgram = p
}

func (f *Functions) GetActiveUniform(p, index uint32) (name string, size int, typ gl.Enum) {

	f.record("GetActiveUniform", p, index)
	prog := f.programs[p]
	if prog == nil {
		return "", 0, 0
	}

	vars, _, _ := prog.activeUniforms()
	if int(index) >= len(vars) {
		return "", 0, 0
	}

	v := vars[index]
	return v.Name, v.Size, v.Type
}

func (f *Functions) GetActiveAttrib(p, index uint32) (name string, size int, typ gl.Enum) {

	f.record("GetActiveAttrib", p, index)
	prog := f.programs[p]
	if prog == nil || int(index) >= len(prog.info.Attributes) {
		return "", 0, 0
	}

	a := prog.info.Attributes[index]
	return a.Name, a.Size, a.Type
}

// findLocation resolves "name", "name[0]" and "name[i]" against vars
func findLocation(vars []Var, name string) int {

	base, idx := name, 0
	if i := strings.IndexByte(name, '['); i >= 0 && strings.HasSuffix(name, "]") {
		base = name[:i]
		for _, c := range name[i+1 : len(name)-1] {
			if c < '0' || c > '9' {
				return -1
			}
			idx = idx*10 + int(c-'0')
		}
	}

	for _, v := range vars {
		if strings.TrimSuffix(v.Name, "[0]") != base {
			continue
		}
		if v.Location < 0 || idx >= max(v.Size, 1) {
			return -1
		}
		return v.Location + idx
	}

	return -1
}

func (f *Functions) GetUniformLocation(p uint32, name string) int {

	f.record("GetUniformLocation", p, name)
	if prog := f.programs[p]; prog != nil {
		return findLocation(prog.info.Uniforms, name)
	}

	return -1
}

func (f *Functions) GetAttribLocation(p uint32, name string) int {

	f.record("GetAttribLocation", p, name)
	if prog := f.programs[p]; prog != nil {
		return findLocation(prog.info.Attributes, name)
	}

	return -1
}

func (f *Functions) GetFragDataLocation(p uint32, name string) int {

	f.record("GetFragDataLocation", p, name)
	if prog := f.programs[p]; prog != nil {
		return findLocation(prog.info.Outputs, name)
	}

	return -1
}

func (f *Functions) GetActiveUniformsi(p uint32, indices []uint32, pname gl.Enum) []int {

	f.record("GetActiveUniformsi", p, len(indices), pname)
	out := make([]int, len(indices))

	prog := f.programs[p]
	if prog == nil {
		return out
	}

	vars, blockIndex, members := prog.activeUniforms()
	for i, idx := range indices {

		if int(idx) >= len(vars) {
			continue
		}

		switch pname {
		case gl.UNIFORM_TYPE:
			out[i] = int(vars[idx].Type)
		case gl.UNIFORM_SIZE:
			out[i] = vars[idx].Size
		case gl.UNIFORM_BLOCK_INDEX:
			out[i] = blockIndex[idx]
		case gl.UNIFORM_OFFSET:
			out[i] = -1
			if blockIndex[idx] >= 0 {
				out[i] = members[idx].Offset
			}
		case gl.UNIFORM_ARRAY_STRIDE:
			out[i] = members[idx].ArrayStride
		case gl.UNIFORM_MATRIX_STRIDE:
			out[i] = members[idx].MatrixStride
		}
	}

	return out
}

func (f *Functions) GetActiveUniformBlockName(p, index uint32) string {

	f.record("GetActiveUniformBlockName", p, index)
	prog := f.programs[p]
	if prog == nil || int(index) >= len(prog.info.Blocks) {
		return ""
	}

	return prog.info.Blocks[index].Name
}

func (f *Functions) GetActiveUniformBlocki(p, index uint32, pname gl.Enum) int {

	f.record("GetActiveUniformBlocki", p, index, pname)
	prog := f.programs[p]
	if prog == nil || int(index) >= len(prog.info.Blocks) {
		return 0
	}

	b := prog.info.Blocks[index]
	switch pname {
	case gl.UNIFORM_BLOCK_BINDING:
		return int(prog.blockBindings[index])
	case gl.UNIFORM_BLOCK_DATA_SIZE:
		return b.DataSize
	case gl.UNIFORM_BLOCK_ACTIVE_UNIFORMS:
		return len(b.Members)
	}

	return 0
}

func (f *Functions) GetActiveUniformBlockIndices(p, index uint32) []uint32 {

	f.record("GetActiveUniformBlockIndices", p, index)
	prog := f.programs[p]
	if prog == nil {
		return nil
	}

	_, blockIndex, _ := prog.activeUniforms()
	var out []uint32
	for i, bi := range blockIndex {
		if bi == int(index) {
			out = append(out, uint32(i))
		}
	}

	return out
}

func (f *Functions) UniformBlockBinding(p, blockIndex, binding uint32) {

	f.record("UniformBlockBinding", p, blockIndex, binding)
	if prog := f.programs[p]; prog != nil && int(blockIndex) < len(prog.blockBindings) {
		prog.blockBindings[blockIndex] = binding
	}
}

func (f *Functions) ShaderStorageBlockBinding(p, blockIndex, binding uint32) {

	f.record("ShaderStorageBlockBinding", p, blockIndex, binding)
	if prog := f.programs[p]; prog != nil && int(blockIndex) < len(prog.storageBindings) {
		prog.storageBindings[blockIndex] = binding
	}
}

func (f *Functions) GetProgramInterfacei(p uint32, iface, pname gl.Enum) int {

	f.record("GetProgramInterfacei", p, iface, pname)
	prog := f.programs[p]
	if prog == nil || pname != gl.ACTIVE_RESOURCES {
		return 0
	}

	switch iface {
	case gl.SHADER_STORAGE_BLOCK:
		return len(prog.info.StorageBlocks)
	case gl.PROGRAM_OUTPUT:
		return len(prog.info.Outputs)
	case gl.UNIFORM_BLOCK:
		return len(prog.info.Blocks)
	}

	return 0
}

func (f *Functions) GetProgramResourceName(p uint32, iface gl.Enum, index uint32) string {

	f.record("GetProgramResourceName", p, iface, index)
	prog := f.programs[p]
	if prog == nil {
		return ""
	}

	switch iface {
	case gl.SHADER_STORAGE_BLOCK:
		if int(index) < len(prog.info.StorageBlocks) {
			return prog.info.StorageBlocks[index].Name
		}
	case gl.PROGRAM_OUTPUT:
		if int(index) < len(prog.info.Outputs) {
			return prog.info.Outputs[index].Name
		}
	case gl.UNIFORM_BLOCK:
		if int(index) < len(prog.info.Blocks) {
			return prog.info.Blocks[index].Name
		}
	}

	return ""
}

func (f *Functions) GetProgramResourceiv(p uint32, iface gl.Enum, index uint32, props []gl.Enum) []int {

	f.record("GetProgramResourceiv", p, iface, index)
	out := make([]int, len(props))

	prog := f.programs[p]
	if prog == nil {
		return out
	}

	switch iface {
	case gl.SHADER_STORAGE_BLOCK:

		if int(index) >= len(prog.info.StorageBlocks) {
			return out
		}

		b := prog.info.StorageBlocks[index]
		for i, prop := range props {
			switch prop {
			case gl.BUFFER_BINDING:
				out[i] = int(prog.storageBindings[index])
			case gl.BUFFER_DATA_SIZE:
				out[i] = b.DataSize
			case gl.NUM_ACTIVE_VARIABLES:
				out[i] = len(b.Members)
			}
		}

	case gl.PROGRAM_OUTPUT:

		if int(index) >= len(prog.info.Outputs) {
			return out
		}

		o := prog.info.Outputs[index]
		for i, prop := range props {
			switch prop {
			case gl.LOCATION:
				out[i] = o.Location
			case gl.TYPE:
				out[i] = int(o.Type)
			case gl.ARRAY_SIZE:
				out[i] = o.Size
			}
		}
	}

	return out
}

func (f *Functions) Uniform1iv(loc int, v []int32)  { f.record("Uniform1iv", loc, append([]int32(nil), v...)) }
func (f *Functions) Uniform2iv(loc int, v []int32)  { f.record("Uniform2iv", loc, append([]int32(nil), v...)) }
func (f *Functions) Uniform3iv(loc int, v []int32)  { f.record("Uniform3iv", loc, append([]int32(nil), v...)) }
func (f *Functions) Uniform4iv(loc int, v []int32)  { f.record("Uniform4iv", loc, append([]int32(nil), v...)) }
func (f *Functions) Uniform1uiv(loc int, v []uint32) { f.record("Uniform1uiv", loc, append([]uint32(nil), v...)) }
func (f *Functions) Uniform2uiv(loc int, v []uint32) { f.record("Uniform2uiv", loc, append([]uint32(nil), v...)) }
func (f *Functions) Uniform3uiv(loc int, v []uint32) { f.record("Uniform3uiv", loc, append([]uint32(nil), v...)) }
func (f *Functions) Uniform4uiv(loc int, v []uint32) { f.record("Uniform4uiv", loc, append([]uint32(nil), v...)) }
func (f *Functions) Uniform1fv(loc int, v []float32) { f.record("Uniform1fv", loc, append([]float32(nil), v...)) }
func (f *Functions) Uniform2fv(loc int, v []float32) { f.record("Uniform2fv", loc, append([]float32(nil), v...)) }
func (f *Functions) Uniform3fv(loc int, v []float32) { f.record("Uniform3fv", loc, append([]float32(nil), v...)) }
func (f *Functions) Uniform4fv(loc int, v []float32) { f.record("Uniform4fv", loc, append([]float32(nil), v...)) }

func (f *Functions) UniformMatrix2fv(loc int, v []float32) {
	f.record("UniformMatrix2fv", loc, append([]float32(nil), v...))
}

func (f *Functions) UniformMatrix3fv(loc int, v []float32) {
	f.record("UniformMatrix3fv", loc, append([]float32(nil), v...))
}

func (f *Functions) UniformMatrix4fv(loc int, v []float32) {
	f.record("UniformMatrix4fv", loc, append([]float32(nil), v...))
}

func (f *Functions) DispatchCompute(x, y, z uint32) {
	f.record("DispatchCompute", x, y, z)
}

/*
	Drawing
*/

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	f.record("DrawArrays", mode, first, count)
}

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	f.record("DrawArraysInstanced", mode, first, count, instances)
}

func (f *Functions) DrawElements(mode gl.Enum, count int, typ gl.Enum, offset int) {
	f.record("DrawElements", mode, count, typ, offset)
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, typ gl.Enum, offset, instances int) {
	f.record("DrawElementsInstanced", mode, count, typ, offset, instances)
}

func (f *Functions) DrawElementsBaseVertex(mode gl.Enum, count int, typ gl.Enum, offset, baseVertex int) {
	f.record("DrawElementsBaseVertex", mode, count, typ, offset, baseVertex)
}

func (f *Functions) DrawElementsInstancedBaseVertex(mode gl.Enum, count int, typ gl.Enum, offset, instances, baseVertex int) {
	f.record("DrawElementsInstancedBaseVertex", mode, count, typ, offset, instances, baseVertex)
}

func (f *Functions) BeginTransformFeedback(mode gl.Enum) {
	f.record("BeginTransformFeedback", mode)
}

func (f *Functions) EndTransformFeedback() {
	f.record("EndTransformFeedback")
}

/*
	Queries
*/

func (f *Functions) GenQuery() uint32 {
	q := f.gen("query")
	f.record("GenQuery", q)
	return q
}

func (f *Functions) DeleteQuery(q uint32) {
	f.record("DeleteQuery", q)
	f.del("query", q)
}

func (f *Functions) BeginQuery(target gl.Enum, q uint32) {
	f.record("BeginQuery", target, q)
}

func (f *Functions) EndQuery(target gl.Enum) {
	f.record("EndQuery", target)
}

func (f *Functions) GetQueryObjectui64(q uint32, pname gl.Enum) uint64 {

	f.record("GetQueryObjectui64", q, pname)
	if pname == gl.QUERY_RESULT_AVAILABLE {
		return 1
	}

	return f.QueryResult
}

func (f *Functions) DebugMessageCallback(cb gl.DebugProc) {
	f.record("DebugMessageCallback")
	f.debugCB = cb
}
