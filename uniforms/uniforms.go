package uniforms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/shaders"
	"github.com/bloeys/ngl/textures"
)

var (
	ErrTooManyTextureUnits  = errors.New("uniforms: not enough texture units")
	ErrTooManyBindPoints    = errors.New("uniforms: not enough buffer bind points")
	ErrUniformBufferToValue = errors.New("uniforms: a buffer was given for a uniform value")
	ErrUniformValueToBlock  = errors.New("uniforms: a value was given for a uniform block")
	ErrArrayTooLarge        = errors.New("uniforms: value has more elements than the uniform array")
	ErrBadUniformName       = errors.New("uniforms: malformed uniform name")
	ErrNilValue             = errors.New("uniforms: value references no object")
)

type UniformTypeMismatchError struct {
	Name string
	// Expected is the GLSL type of the uniform
	Expected gl.Enum
	Got      ValueKind
}

func (e *UniformTypeMismatchError) Error() string {
	return fmt.Sprintf("uniforms: uniform '%s' is a %s but was given a %s", e.Name, shaders.TypeName(e.Expected), e.Got)
}

type UniformBlockLayoutMismatchError struct {
	Name   string
	Reason string
}

func (e *UniformBlockLayoutMismatchError) Error() string {
	return fmt.Sprintf("uniforms: buffer does not match the layout of block '%s': %s", e.Name, e.Reason)
}

type entry struct {
	name string
	v    Value
}

// Uniforms is an ordered set of named values to bind before a draw or a
// compute dispatch
type Uniforms struct {
	entries []entry
}

func New() *Uniforms {
	return &Uniforms{}
}

// Add sets name to v, replacing any earlier value of the same name
func (u *Uniforms) Add(name string, v Value) *Uniforms {

	for i := range u.entries {
		if u.entries[i].name == name {
			u.entries[i].v = v
			return u
		}
	}

	u.entries = append(u.entries, entry{name: name, v: v})
	return u
}

func (u *Uniforms) Get(name string) (Value, bool) {

	for i := range u.entries {
		if u.entries[i].name == name {
			return u.entries[i].v, true
		}
	}

	return Value{}, false
}

// Visit calls fn for every value in insertion order
func (u *Uniforms) Visit(fn func(name string, v Value)) {
	for i := range u.entries {
		fn(u.entries[i].name, u.entries[i].v)
	}
}

func (u *Uniforms) Len() int {
	if u == nil {
		return 0
	}
	return len(u.entries)
}

// Textures returns every texture the uniforms sample, used to detect
// sampling from the framebuffer being drawn to
func (u *Uniforms) Textures() []*textures.Texture {

	if u == nil {
		return nil
	}

	var out []*textures.Texture
	for i := range u.entries {
		if u.entries[i].v.kind == ValueKind_Texture && u.entries[i].v.sampled.Texture != nil {
			out = append(out, u.entries[i].v.sampled.Texture)
		}
	}

	return out
}

// FenceRange is a persistently mapped buffer range the GPU may access
// until the commands that used it complete
type FenceRange struct {
	Buffer *buffers.Alloc
	Offset int
	Size   int
}

// Fence places a fence after the commands that used the ranges so later
// writes through the mapping wait for them
func Fence(cc *glcontext.CommandContext, ranges []FenceRange) {
	for _, r := range ranges {
		r.Buffer.Fence(cc, r.Offset, r.Size)
	}
}

type unitKey struct {
	target   gl.Enum
	id       uint32
	behavior textures.SamplerBehavior
}

type binder struct {
	cc   *glcontext.CommandContext
	prog *shaders.Program

	units    map[unitKey]uint32
	nextUnit uint32

	// claimed maps a bind point to the range this call bound to it
	claimed map[gl.Enum]map[uint32]glcontext.BufferBinding

	fences []FenceRange
}

// Bind uploads every value to prog. Names prog does not use are ignored.
// The returned ranges must be fenced once the draw or dispatch using them
// is issued.
func Bind(cc *glcontext.CommandContext, prog *shaders.Program, u *Uniforms) ([]FenceRange, error) {

	if err := prog.Check(cc); err != nil {
		return nil, err
	}

	b := &binder{
		cc:      cc,
		prog:    prog,
		units:   map[unitKey]uint32{},
		claimed: map[gl.Enum]map[uint32]glcontext.BufferBinding{},
	}

	if u == nil {
		return nil, nil
	}

	for i := range u.entries {
		if err := b.bind(u.entries[i].name, u.entries[i].v); err != nil {
			return nil, err
		}
	}

	return b.fences, nil
}

// Dispatch binds u to cs and runs it
func Dispatch(cc *glcontext.CommandContext, cs *shaders.ComputeShader, u *Uniforms, x, y, z uint32) error {

	fences, err := Bind(cc, cs.Program, u)
	if err != nil {
		return err
	}

	if err := cs.Dispatch(cc, x, y, z); err != nil {
		return err
	}

	Fence(cc, fences)
	return nil
}

// splitIndex turns "lights[2]" into ("lights", 2)
func splitIndex(name string) (string, int, error) {

	open := strings.LastIndexByte(name, '[')
	if open < 0 || !strings.HasSuffix(name, "]") {
		return name, 0, nil
	}

	idx, err := strconv.Atoi(name[open+1 : len(name)-1])
	if err != nil || idx < 0 {
		return "", 0, fmt.Errorf("%w: '%s'", ErrBadUniformName, name)
	}

	return name[:open], idx, nil
}

func (b *binder) bind(name string, v Value) error {

	if ub, ok := b.prog.UniformBlock(name); ok {
		if v.kind != ValueKind_UniformBlock {
			return fmt.Errorf("%w: '%s' given a %s", ErrUniformValueToBlock, name, v.kind)
		}
		return b.bindBlock(ub, v, buffers.BufferType_Uniform)
	}

	if sb, ok := b.prog.ShaderStorageBlock(name); ok {
		if v.kind != ValueKind_StorageBlock {
			return fmt.Errorf("%w: '%s' given a %s", ErrUniformValueToBlock, name, v.kind)
		}
		return b.bindBlock(sb, v, buffers.BufferType_ShaderStorage)
	}

	base, idx, err := splitIndex(name)
	if err != nil {
		return err
	}

	unif, ok := b.prog.Uniform(base)
	if !ok {
		return nil
	}

	if v.kind.isBlock() {
		return fmt.Errorf("%w: '%s'", ErrUniformBufferToValue, name)
	}

	if idx+v.Len() > unif.Size {
		return fmt.Errorf("%w: '%s' has %d elements, got %d from index %d", ErrArrayTooLarge, base, unif.Size, v.Len(), idx)
	}

	loc := unif.Location
	if idx > 0 {
		loc = b.cc.GL.GetUniformLocation(b.prog.Id(), name)
		if loc < 0 {
			return nil
		}
	}

	switch v.kind {
	case ValueKind_Texture:
		return b.bindTexture(name, unif, loc, v)
	case ValueKind_BufferTexture:
		return b.bindBufferTexture(name, unif, loc, v)
	}

	if unif.Type != v.kind.glType() {
		return &UniformTypeMismatchError{Name: name, Expected: unif.Type, Got: v.kind}
	}

	switch v.kind {
	case ValueKind_Mat2:
		return b.prog.SetMatrices(b.cc, loc, 2, v.floats)
	case ValueKind_Mat3:
		return b.prog.SetMatrices(b.cc, loc, 3, v.floats)
	case ValueKind_Mat4:
		return b.prog.SetMatrices(b.cc, loc, 4, v.floats)
	}

	switch {
	case v.ints != nil:
		return b.prog.SetInts(b.cc, loc, v.kind.comps(), v.ints)
	case v.uints != nil:
		return b.prog.SetUints(b.cc, loc, v.kind.comps(), v.uints)
	default:
		return b.prog.SetFloats(b.cc, loc, v.kind.comps(), v.floats)
	}
}

// formatMatches reports whether a sampler returning kind can read f
func formatMatches(kind byte, shadow bool, f textures.Format) bool {

	if shadow {
		return f.HasDepth()
	}

	switch kind {
	case 'i':
		return f.Kind == textures.FormatKind_Int
	case 'u':
		return f.Kind == textures.FormatKind_Uint
	}

	return !f.IsInteger() && f.Kind != textures.FormatKind_Stencil
}

func (b *binder) bindTexture(name string, unif *shaders.Uniform, loc int, v Value) error {

	t := v.sampled.Texture
	if t == nil {
		return fmt.Errorf("%w: texture '%s'", ErrNilValue, name)
	}

	target, ok := shaders.SamplerTarget(unif.Type)
	if !ok || target != t.Target() || !formatMatches(shaders.SamplerKind(unif.Type), shaders.IsShadowSampler(unif.Type), t.Format()) {
		return &UniformTypeMismatchError{Name: name, Expected: unif.Type, Got: v.kind}
	}

	unit, fresh, err := b.unit(unitKey{target: target, id: t.Id(), behavior: v.sampled.Behavior})
	if err != nil {
		return err
	}

	if fresh {
		if err := t.BindToUnit(b.cc, unit, v.sampled.Behavior); err != nil {
			return err
		}
	}

	return b.prog.SetInts(b.cc, loc, 1, []int32{int32(unit)})
}

func (b *binder) bindBufferTexture(name string, unif *shaders.Uniform, loc int, v Value) error {

	bt := v.bufTex
	if bt == nil {
		return fmt.Errorf("%w: buffer texture '%s'", ErrNilValue, name)
	}

	target, ok := shaders.SamplerTarget(unif.Type)
	if !ok || target != gl.TEXTURE_BUFFER || !formatMatches(shaders.SamplerKind(unif.Type), false, bt.Format()) {
		return &UniformTypeMismatchError{Name: name, Expected: unif.Type, Got: v.kind}
	}

	unit, fresh, err := b.unit(unitKey{target: gl.TEXTURE_BUFFER, id: bt.Id()})
	if err != nil {
		return err
	}

	if fresh {
		if err := bt.BindToUnit(b.cc, unit); err != nil {
			return err
		}
	}

	if buf := bt.Buffer(); buf.IsPersistent() {
		b.fences = append(b.fences, FenceRange{Buffer: buf, Offset: 0, Size: buf.Size()})
	}

	return b.prog.SetInts(b.cc, loc, 1, []int32{int32(unit)})
}

// unit returns the texture unit for key, allocating the next free one
// the first time key is seen in this call
func (b *binder) unit(key unitKey) (unit uint32, fresh bool, err error) {

	if u, ok := b.units[key]; ok {
		return u, false, nil
	}

	if int(b.nextUnit) >= b.cc.Caps.Limits.MaxCombinedTextureImageUnits {
		return 0, false, fmt.Errorf("%w: limit is %d", ErrTooManyTextureUnits, b.cc.Caps.Limits.MaxCombinedTextureImageUnits)
	}

	u := b.nextUnit
	b.nextUnit++
	b.units[key] = u
	return u, true, nil
}

func (b *binder) bindBlock(blk *shaders.UniformBlock, v Value, typ buffers.BufferType) error {

	if v.buf == nil {
		return fmt.Errorf("%w: block '%s'", ErrNilValue, blk.Name)
	}

	offset, size := v.blockRange()
	if size < blk.DataSize {
		return &UniformBlockLayoutMismatchError{
			Name:   blk.Name,
			Reason: fmt.Sprintf("block needs %d bytes but the range has %d", blk.DataSize, size),
		}
	}

	if v.fields != nil && len(blk.Members) > 0 {
		if err := checkStd140(blk, v.fields); err != nil {
			return err
		}
	}

	target := typ.ToGL()
	limit := b.cc.Caps.Limits.MaxUniformBufferBindings
	if typ == buffers.BufferType_ShaderStorage {
		limit = b.cc.Caps.Limits.MaxShaderStorageBufferBindings
	}

	want := glcontext.BufferBinding{Buffer: v.buf.Id(), Offset: offset, Size: size}
	if offset == 0 && size == v.buf.Size() {
		want.Size = 0
	}

	point, err := b.bindPoint(target, want, limit)
	if err != nil {
		return err
	}

	if err := v.buf.BindIndexed(b.cc, typ, point, offset, size); err != nil {
		return err
	}

	if typ == buffers.BufferType_ShaderStorage {
		err = b.prog.SetShaderStorageBlockBinding(b.cc, blk, point)
	} else {
		err = b.prog.SetUniformBlockBinding(b.cc, blk, point)
	}
	if err != nil {
		return err
	}

	if v.buf.IsPersistent() {
		b.fences = append(b.fences, FenceRange{Buffer: v.buf, Offset: offset, Size: size})
	}

	return nil
}

// bindPoint picks the bind point for want: one this call already bound it
// to, one already holding it, or the lowest point not used by this call
func (b *binder) bindPoint(target gl.Enum, want glcontext.BufferBinding, limit int) (uint32, error) {

	claimed := b.claimed[target]
	if claimed == nil {
		claimed = map[uint32]glcontext.BufferBinding{}
		b.claimed[target] = claimed
	}

	for p, r := range claimed {
		if r == want {
			return p, nil
		}
	}

	for p := 0; p < limit; p++ {
		if _, ok := claimed[uint32(p)]; !ok && b.cc.IndexedBinding(target, uint32(p)) == want {
			claimed[uint32(p)] = want
			return uint32(p), nil
		}
	}

	for p := 0; p < limit; p++ {
		if _, ok := claimed[uint32(p)]; !ok {
			claimed[uint32(p)] = want
			return uint32(p), nil
		}
	}

	return 0, fmt.Errorf("%w: limit is %d", ErrTooManyBindPoints, limit)
}

type flatField struct {
	offset int
	typ    buffers.ElementType
	count  int
}

// flatten expands struct fields into their leaf fields with absolute
// offsets, one entry per struct array element
func flatten(fields []buffers.UniformBufferField, base int, out []flatField) []flatField {

	for _, f := range fields {

		off := base + int(f.AlignedOffset)
		if f.Type != buffers.DataTypeStruct {
			out = append(out, flatField{offset: off, typ: f.Type, count: max(int(f.Count), 1)})
			continue
		}

		for i := 0; i < max(int(f.Count), 1); i++ {
			out = flatten(f.Subfields, off+i*int(f.Stride), out)
		}
	}

	return out
}

func checkStd140(blk *shaders.UniformBlock, fields []buffers.UniformBufferField) error {

	flat := flatten(fields, 0, nil)
	if len(flat) != len(blk.Members) {
		return &UniformBlockLayoutMismatchError{
			Name:   blk.Name,
			Reason: fmt.Sprintf("block has %d members but the buffer has %d fields", len(blk.Members), len(flat)),
		}
	}

	for i, m := range blk.Members {

		f := flat[i]
		glType := buffers.Element{ElementType: f.typ}.AttribType()
		if f.offset != m.Offset || glType != m.Type || f.count != m.Size {
			return &UniformBlockLayoutMismatchError{
				Name: blk.Name,
				Reason: fmt.Sprintf("member '%s' is %s[%d] at %d but the field is %s[%d] at %d",
					m.Name, shaders.TypeName(m.Type), m.Size, m.Offset, shaders.TypeName(glType), f.count, f.offset),
			}
		}
	}

	return nil
}
