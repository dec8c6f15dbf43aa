package framebuffer

import (
	"errors"
	"fmt"

	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/drawparams"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/shaders"
	"github.com/bloeys/ngl/uniforms"
)

var (
	ErrInstancesCountMismatch        = errors.New("framebuffer: per-instance vertex buffers have different instance counts")
	ErrVerticesSourcesLengthMismatch = errors.New("framebuffer: per-vertex vertex buffers have different lengths")
	ErrFeedbackLoop                  = errors.New("framebuffer: a texture is sampled while attached to the surface being drawn to")
	ErrComputeProgram                = errors.New("framebuffer: compute programs can not draw")
	ErrIndicesOutOfRange             = errors.New("framebuffer: index range is outside the source")
	ErrBaseVertexNotSupported        = errors.New("framebuffer: base vertex needs GL 3.2, GLES 3.2 or ARB_draw_elements_base_vertex")
	ErrInstancingNotSupported        = errors.New("framebuffer: instanced draws need GL 3.1, GLES 3.0 or ARB_draw_instanced")
	ErrPatchesRequired               = errors.New("framebuffer: programs with tessellation stages draw patches only")
	ErrInvalidPatchVertices          = errors.New("framebuffer: patch size out of range")
	ErrNoPrimitive                   = errors.New("framebuffer: indices have no primitive type")
	ErrMissingVertexCount            = errors.New("framebuffer: non-indexed draws without per-vertex buffers need a vertex count")
)

// AttributeMissingError is returned when no vertex buffer feeds an input of the vertex shader
type AttributeMissingError struct {
	Name string
}

func (e *AttributeMissingError) Error() string {
	return fmt.Sprintf("framebuffer: no vertex buffer provides attribute '%s'", e.Name)
}

// AttributeTypeMismatchError is returned when a vertex buffer element can
// not be read as the vertex shader input of the same name
type AttributeTypeMismatchError struct {
	Name     string
	Expected string
	Got      buffers.ElementType
}

func (e *AttributeTypeMismatchError) Error() string {
	return fmt.Sprintf("framebuffer: attribute '%s' is a %s but the vertex buffer provides a %s", e.Name, e.Expected, e.Got)
}

// Vertices are the vertex buffers a draw reads from. Buffers with a divisor
// are per-instance.
type Vertices struct {
	Buffers []*buffers.VertexBuffer

	// Count is the vertex count of draws without per-vertex buffers
	Count int
	// Instances draws instanced without per-instance buffers. With them it
	// must agree with their instance count.
	Instances int
}

func VertexBuffers(vbs ...*buffers.VertexBuffer) Vertices {
	return Vertices{Buffers: vbs}
}

// EmptyVertices draws count vertices with no attributes, shaders use
// gl_VertexID instead
func EmptyVertices(count int) Vertices {
	return Vertices{Count: count}
}

func (v Vertices) WithInstances(n int) Vertices {
	v.Instances = n
	return v
}

// counts returns the vertex count (-1 when unknown) and instance count
// (0 for non-instanced draws)
func (v *Vertices) counts() (vertices, instances int, err error) {

	vertices, instances = -1, 0
	if v.Count > 0 {
		vertices = v.Count
	}

	perVertexSeen := false
	for _, vb := range v.Buffers {

		if vb.Divisor == 0 {

			if perVertexSeen && vb.Count != vertices {
				return 0, 0, fmt.Errorf("%w: %d and %d vertices", ErrVerticesSourcesLengthMismatch, vertices, vb.Count)
			}

			perVertexSeen = true
			vertices = vb.Count
			continue
		}

		n := vb.Count * int(vb.Divisor)
		if instances != 0 && n != instances {
			return 0, 0, fmt.Errorf("%w: %d and %d instances", ErrInstancesCountMismatch, instances, n)
		}
		instances = n
	}

	if v.Instances > 0 {

		if instances != 0 && instances != v.Instances {
			return 0, 0, fmt.Errorf("%w: %d requested but buffers hold %d", ErrInstancesCountMismatch, v.Instances, instances)
		}
		instances = v.Instances
	}

	return vertices, instances, nil
}

// checkAttributes verifies every input of prog is fed by a matching element
func checkAttributes(prog *shaders.Program, vbs []*buffers.VertexBuffer) error {

	for _, a := range prog.Attributes() {

		found := false
		for _, vb := range vbs {

			el, ok := vb.Element(a.Name)
			if !ok {
				continue
			}

			if !a.Accepts(el) {
				return &AttributeTypeMismatchError{Name: a.Name, Expected: shaders.TypeName(a.Type), Got: el.ElementType}
			}

			found = true
			break
		}

		if !found {
			return &AttributeMissingError{Name: a.Name}
		}
	}

	return nil
}

// Draw renders with prog into the surface. params nil uses
// drawparams.Default().
func (s *surface) Draw(cc *glcontext.CommandContext, vertices Vertices, indices buffers.Indices, prog *shaders.Program, u *uniforms.Uniforms, params *drawparams.DrawParameters) error {

	if params == nil {
		def := drawparams.Default()
		params = &def
	}

	if err := prog.Check(cc); err != nil {
		return err
	}

	if prog.IsCompute() {
		return ErrComputeProgram
	}

	info := s.t.surfaceInfo()
	if err := params.Validate(cc.Caps, &info); err != nil {
		return err
	}

	if err := checkAttributes(prog, vertices.Buffers); err != nil {
		return err
	}

	for _, t := range u.Textures() {
		if s.t.uses(t) {
			return fmt.Errorf("%w: texture %d", ErrFeedbackLoop, t.Id())
		}
	}

	call, err := planDraw(cc, &vertices, &indices, prog)
	if err != nil {
		return err
	}

	if err := s.t.bindDraw(cc, prog); err != nil {
		return err
	}

	if err := prog.Use(cc); err != nil {
		return err
	}

	fences, err := uniforms.Bind(cc, prog, u)
	if err != nil {
		return err
	}

	if err := buffers.BindVertexArray(cc, prog, vertices.Buffers, indices.Buffer); err != nil {
		return err
	}

	if indices.Primitive == buffers.Primitive_Patches {
		cc.PatchVertices(indices.PatchVertices)
	}

	drawInfo := drawparams.DrawInfo{Primitive: indices.Primitive, Indexed: indices.Buffer != nil}
	if indices.Buffer != nil {
		drawInfo.IndexType = indices.Buffer.IndexType
	}

	if err := drawparams.Apply(cc, params, info, drawInfo); err != nil {
		return err
	}

	call.issue(cc)
	drawparams.End(cc, params)

	uniforms.Fence(cc, fences)
	for _, vb := range vertices.Buffers {
		if vb.IsPersistent() {
			vb.Fence(cc, 0, vb.Size())
		}
	}

	if ib := indices.Buffer; ib != nil && ib.IsPersistent() {
		ib.Fence(cc, call.offset, call.count*ib.IndexType.Size())
	}

	if tf := params.TransformFeedback; tf != nil && tf.Buffer.IsPersistent() {
		tf.Buffer.Fence(cc, 0, tf.Buffer.Size())
	}

	return nil
}

// drawCall is a resolved draw command
type drawCall struct {
	prim      buffers.PrimitiveType
	indexed   bool
	indexType buffers.IndexType

	// first vertex, or byte offset into the index buffer
	first      int
	offset     int
	count      int
	instances  int
	baseVertex int
}

func planDraw(cc *glcontext.CommandContext, v *Vertices, ind *buffers.Indices, prog *shaders.Program) (drawCall, error) {

	caps := cc.Caps
	call := drawCall{prim: ind.Primitive}
	if ind.Primitive == buffers.Primitive_Unknown {
		return call, ErrNoPrimitive
	}

	vertexCount, instances, err := v.counts()
	if err != nil {
		return call, err
	}

	if instances > 0 && !caps.SupportsDrawInstanced() {
		return call, ErrInstancingNotSupported
	}
	call.instances = instances

	tess := prog.HasTessellation()
	if tess != (ind.Primitive == buffers.Primitive_Patches) {
		return call, ErrPatchesRequired
	}

	if ind.Primitive == buffers.Primitive_Patches {
		if ind.PatchVertices <= 0 || ind.PatchVertices > caps.Limits.MaxPatchVertices {
			return call, fmt.Errorf("%w: %d, at most %d", ErrInvalidPatchVertices, ind.PatchVertices, caps.Limits.MaxPatchVertices)
		}
	}

	if ind.First < 0 || ind.Count < 0 {
		return call, fmt.Errorf("%w: first %d count %d", ErrIndicesOutOfRange, ind.First, ind.Count)
	}

	ib := ind.Buffer
	if ib == nil {

		if ind.BaseVertex != 0 {
			return call, fmt.Errorf("%w: base vertex only applies to indexed draws", ErrIndicesOutOfRange)
		}

		if vertexCount < 0 {
			if ind.Count == 0 {
				return call, ErrMissingVertexCount
			}
			vertexCount = ind.First + ind.Count
		}

		call.first = ind.First
		call.count = ind.Count
		if call.count == 0 {
			call.count = vertexCount - ind.First
		}

		if call.first+call.count > vertexCount || call.count < 0 {
			return call, fmt.Errorf("%w: vertices [%d, %d) of %d", ErrIndicesOutOfRange, call.first, call.first+call.count, vertexCount)
		}

		return call, nil
	}

	if ind.BaseVertex != 0 && !caps.SupportsBaseVertex() {
		return call, ErrBaseVertexNotSupported
	}

	call.indexed = true
	call.indexType = ib.IndexType
	call.baseVertex = ind.BaseVertex
	call.count = ind.Count
	if call.count == 0 {
		call.count = ib.IndexBufCount - ind.First
	}

	if ind.First+call.count > ib.IndexBufCount || call.count < 0 {
		return call, fmt.Errorf("%w: indices [%d, %d) of %d", ErrIndicesOutOfRange, ind.First, ind.First+call.count, ib.IndexBufCount)
	}

	call.offset = ind.First * ib.IndexType.Size()
	return call, nil
}

func (d *drawCall) issue(cc *glcontext.CommandContext) {

	f := cc.GL
	mode := d.prim.ToGL()

	if !d.indexed {
		if d.instances > 0 {
			f.DrawArraysInstanced(mode, d.first, d.count, d.instances)
		} else {
			f.DrawArrays(mode, d.first, d.count)
		}
		return
	}

	typ := d.indexType.ToGL()
	switch {
	case d.instances > 0 && d.baseVertex != 0:
		f.DrawElementsInstancedBaseVertex(mode, d.count, typ, d.offset, d.instances, d.baseVertex)
	case d.instances > 0:
		f.DrawElementsInstanced(mode, d.count, typ, d.offset, d.instances)
	case d.baseVertex != 0:
		f.DrawElementsBaseVertex(mode, d.count, typ, d.offset, d.baseVertex)
	default:
		f.DrawElements(mode, d.count, typ, d.offset)
	}
}
