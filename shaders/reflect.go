package shaders

import (
	"sort"
	"strings"

	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

// Uniform is an active uniform of the default block
type Uniform struct {
	Name     string
	Location int
	Type     gl.Enum
	// Size is the array length, 1 for non-arrays
	Size int
}

type Attribute struct {
	Name     string
	Location int
	Type     gl.Enum
	Size     int
}

// Output is a fragment shader output variable
type Output struct {
	Name     string
	Location int
	Type     gl.Enum
	Size     int
}

type BlockMember struct {
	Name         string
	Type         gl.Enum
	Size         int
	Offset       int
	ArrayStride  int
	MatrixStride int
}

// UniformBlock describes a uniform block or a shader storage block
type UniformBlock struct {
	Name    string
	Index   uint32
	Binding uint32
	// DataSize is the minimum buffer size the block needs
	DataSize int
	Members  []BlockMember
}

// normalizeName strips the "[0]" drivers append to array uniforms
func normalizeName(name string) string {
	return strings.TrimSuffix(name, "[0]")
}

func isBuiltin(name string) bool {
	return strings.HasPrefix(name, "gl_")
}

func (p *Program) reflect(cc *glcontext.CommandContext) {

	p.uniforms = map[string]*Uniform{}
	p.attributes = map[string]*Attribute{}
	p.outputs = map[string]*Output{}
	p.blocks = map[string]*UniformBlock{}
	p.storageBlocks = map[string]*UniformBlock{}

	p.reflectUniforms(cc)
	p.reflectAttributes(cc)
	p.reflectOutputs(cc)
	p.reflectStorageBlocks(cc)
}

func (p *Program) reflectUniforms(cc *glcontext.CommandContext) {

	f := cc.GL
	count := f.GetProgrami(p.id, gl.ACTIVE_UNIFORMS)
	if count == 0 && !cc.Caps.SupportsUniformBuffers() {
		return
	}

	indices := make([]uint32, count)
	for i := range indices {
		indices[i] = uint32(i)
	}

	// Without uniform buffers every uniform lives in the default block
	blockOf := make([]int, count)
	for i := range blockOf {
		blockOf[i] = -1
	}

	if cc.Caps.SupportsUniformBuffers() && count > 0 {
		blockOf = f.GetActiveUniformsi(p.id, indices, gl.UNIFORM_BLOCK_INDEX)
	}

	names := make([]string, count)
	types := make([]gl.Enum, count)
	sizes := make([]int, count)

	for i := 0; i < count; i++ {

		name, size, typ := f.GetActiveUniform(p.id, uint32(i))
		names[i], sizes[i], types[i] = name, size, typ

		if blockOf[i] >= 0 || isBuiltin(name) {
			continue
		}

		loc := f.GetUniformLocation(p.id, name)
		if loc < 0 {
			continue
		}

		n := normalizeName(name)
		p.uniforms[n] = &Uniform{Name: n, Location: loc, Type: typ, Size: max(size, 1)}
	}

	if !cc.Caps.SupportsUniformBuffers() {
		return
	}

	offsets := []int(nil)
	arrayStrides := []int(nil)
	matrixStrides := []int(nil)
	if count > 0 {
		offsets = f.GetActiveUniformsi(p.id, indices, gl.UNIFORM_OFFSET)
		arrayStrides = f.GetActiveUniformsi(p.id, indices, gl.UNIFORM_ARRAY_STRIDE)
		matrixStrides = f.GetActiveUniformsi(p.id, indices, gl.UNIFORM_MATRIX_STRIDE)
	}

	blockCount := f.GetProgrami(p.id, gl.ACTIVE_UNIFORM_BLOCKS)
	for bi := 0; bi < blockCount; bi++ {

		b := &UniformBlock{
			Name:     normalizeName(f.GetActiveUniformBlockName(p.id, uint32(bi))),
			Index:    uint32(bi),
			Binding:  uint32(f.GetActiveUniformBlocki(p.id, uint32(bi), gl.UNIFORM_BLOCK_BINDING)),
			DataSize: f.GetActiveUniformBlocki(p.id, uint32(bi), gl.UNIFORM_BLOCK_DATA_SIZE),
		}

		for i := 0; i < count; i++ {

			if blockOf[i] != bi {
				continue
			}

			b.Members = append(b.Members, BlockMember{
				Name:         normalizeName(names[i]),
				Type:         types[i],
				Size:         max(sizes[i], 1),
				Offset:       offsets[i],
				ArrayStride:  arrayStrides[i],
				MatrixStride: matrixStrides[i],
			})
		}

		sort.Slice(b.Members, func(i, j int) bool { return b.Members[i].Offset < b.Members[j].Offset })
		p.blocks[b.Name] = b
	}
}

func (p *Program) reflectAttributes(cc *glcontext.CommandContext) {

	f := cc.GL
	count := f.GetProgrami(p.id, gl.ACTIVE_ATTRIBUTES)
	for i := 0; i < count; i++ {

		name, size, typ := f.GetActiveAttrib(p.id, uint32(i))
		if isBuiltin(name) {
			continue
		}

		loc := f.GetAttribLocation(p.id, name)
		if loc < 0 {
			continue
		}

		n := normalizeName(name)
		p.attributes[n] = &Attribute{Name: n, Location: loc, Type: typ, Size: max(size, 1)}
	}
}

// reflectOutputs enumerates fragment outputs through program interface
// query. Older contexts resolve outputs lazily with GetFragDataLocation.
func (p *Program) reflectOutputs(cc *glcontext.CommandContext) {

	if !cc.Caps.SupportsProgramInterfaceQuery() {
		return
	}

	f := cc.GL
	props := []gl.Enum{gl.LOCATION, gl.TYPE, gl.ARRAY_SIZE}

	count := f.GetProgramInterfacei(p.id, gl.PROGRAM_OUTPUT, gl.ACTIVE_RESOURCES)
	for i := 0; i < count; i++ {

		name := f.GetProgramResourceName(p.id, gl.PROGRAM_OUTPUT, uint32(i))
		if isBuiltin(name) {
			continue
		}

		v := f.GetProgramResourceiv(p.id, gl.PROGRAM_OUTPUT, uint32(i), props)
		n := normalizeName(name)
		p.outputs[n] = &Output{Name: n, Location: v[0], Type: gl.Enum(v[1]), Size: max(v[2], 1)}
	}

	p.outputsQueried = true
}

func (p *Program) reflectStorageBlocks(cc *glcontext.CommandContext) {

	if !cc.Caps.SupportsShaderStorage() || !cc.Caps.SupportsProgramInterfaceQuery() {
		return
	}

	f := cc.GL
	props := []gl.Enum{gl.BUFFER_BINDING, gl.BUFFER_DATA_SIZE}

	count := f.GetProgramInterfacei(p.id, gl.SHADER_STORAGE_BLOCK, gl.ACTIVE_RESOURCES)
	for i := 0; i < count; i++ {

		name := normalizeName(f.GetProgramResourceName(p.id, gl.SHADER_STORAGE_BLOCK, uint32(i)))
		v := f.GetProgramResourceiv(p.id, gl.SHADER_STORAGE_BLOCK, uint32(i), props)

		p.storageBlocks[name] = &UniformBlock{
			Name:     name,
			Index:    uint32(i),
			Binding:  uint32(v[0]),
			DataSize: v[1],
		}
	}
}

// Uniform looks up an active default block uniform. "name" and "name[0]"
// both find an array uniform.
func (p *Program) Uniform(name string) (*Uniform, bool) {
	u, ok := p.uniforms[normalizeName(name)]
	return u, ok
}

// Uniforms returns the active default block uniforms sorted by name
func (p *Program) Uniforms() []*Uniform {

	out := make([]*Uniform, 0, len(p.uniforms))
	for _, u := range p.uniforms {
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (p *Program) Attribute(name string) (*Attribute, bool) {
	a, ok := p.attributes[normalizeName(name)]
	return a, ok
}

func (p *Program) Attributes() []*Attribute {

	out := make([]*Attribute, 0, len(p.attributes))
	for _, a := range p.attributes {
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// AttributeLocation makes Program usable to build vertex arrays
func (p *Program) AttributeLocation(name string) (int, bool) {

	a, ok := p.attributes[normalizeName(name)]
	if !ok {
		return -1, false
	}

	return a.Location, true
}

func (p *Program) UniformBlock(name string) (*UniformBlock, bool) {
	b, ok := p.blocks[name]
	return b, ok
}

func (p *Program) UniformBlocks() []*UniformBlock {
	return sortedBlocks(p.blocks)
}

func (p *Program) ShaderStorageBlock(name string) (*UniformBlock, bool) {
	b, ok := p.storageBlocks[name]
	return b, ok
}

func (p *Program) ShaderStorageBlocks() []*UniformBlock {
	return sortedBlocks(p.storageBlocks)
}

func sortedBlocks(m map[string]*UniformBlock) []*UniformBlock {

	out := make([]*UniformBlock, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Uses reports whether name is an active uniform, block or storage block
func (p *Program) Uses(name string) bool {

	if _, ok := p.Uniform(name); ok {
		return true
	}

	if _, ok := p.blocks[name]; ok {
		return true
	}

	_, ok := p.storageBlocks[name]
	return ok
}

// Outputs returns the known fragment outputs. Contexts without program
// interface query only know outputs looked up through OutputLocation.
func (p *Program) Outputs() []*Output {

	out := make([]*Output, 0, len(p.outputs))
	for _, o := range p.outputs {
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// OutputLocation returns the color attachment index a fragment output
// writes to
func (p *Program) OutputLocation(cc *glcontext.CommandContext, name string) (int, bool) {

	n := normalizeName(name)
	if o, ok := p.outputs[n]; ok {
		return o.Location, true
	}

	if p.outputsQueried || cc.Caps.Version.Major < 3 {
		return -1, false
	}

	loc := cc.GL.GetFragDataLocation(p.id, n)
	if loc < 0 {
		return -1, false
	}

	p.outputs[n] = &Output{Name: n, Location: loc, Size: 1}
	return loc, true
}

// Accepts reports whether a vertex buffer element can feed the attribute
func (a *Attribute) Accepts(el buffers.Element) bool {

	if el.IsInteger() && !el.Normalized {
		return el.AttribType() == a.Type
	}

	switch a.Type {
	case gl.FLOAT, gl.FLOAT_VEC2, gl.FLOAT_VEC3, gl.FLOAT_VEC4:
		// Missing components default to (0, 0, 0, 1)
		return el.Columns() == 1 && el.CompCount() <= attribComponents(a.Type)
	}

	return el.AttribType() == a.Type
}

func attribComponents(t gl.Enum) int {

	switch t {
	case gl.FLOAT, gl.INT, gl.UNSIGNED_INT:
		return 1
	case gl.FLOAT_VEC2, gl.INT_VEC2, gl.UNSIGNED_INT_VEC2:
		return 2
	case gl.FLOAT_VEC3, gl.INT_VEC3, gl.UNSIGNED_INT_VEC3:
		return 3
	}

	return 4
}
