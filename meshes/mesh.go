package meshes

import (
	"errors"
	"fmt"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ngl/assert"
	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/drawparams"
	"github.com/bloeys/ngl/framebuffer"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/shaders"
	"github.com/bloeys/ngl/uniforms"
)

var (
	ErrNoMeshes       = errors.New("meshes: no meshes found in file")
	ErrLayoutMismatch = errors.New("meshes: sub-mesh vertex layout differs from the first sub-mesh")
)

type SubMesh struct {
	// BaseVertex is added to every index of the sub-mesh
	BaseVertex int
	// BaseIndex is the first index of the sub-mesh in the index buffer
	BaseIndex  int
	IndexCount int
}

type Mesh struct {
	Name string
	/*
		Vbo holds interleaved vertices with the shader inputs:
			- pos
			- normal
			- tangent
			- uv0
			- (Optional) color
	*/
	Vbo       *buffers.VertexBuffer
	Ibo       *buffers.IndexBuffer
	SubMeshes []SubMesh
}

var (
	// DefaultMeshLoadFlags are the flags always applied when loading a new mesh regardless
	// of what post process flags are used when loading a mesh.
	//
	// Note: changing this will break lit shaders, which expect tangents to be there
	DefaultMeshLoadFlags asig.PostProcess = asig.PostProcessTriangulate | asig.PostProcessCalcTangentSpace
)

// meshPart is one sub-mesh as read from the model file
type meshPart struct {
	positions []gglm.Vec3
	normals   []gglm.Vec3
	tangents  []gglm.Vec3
	uv0       []gglm.Vec3
	colors    []gglm.Vec4
	indices   []uint32
}

func NewMesh(cc *glcontext.CommandContext, name, modelPath string, postProcessFlags asig.PostProcess) (*Mesh, error) {

	scene, release, err := asig.ImportFile(modelPath, DefaultMeshLoadFlags|postProcessFlags)
	if err != nil {
		return nil, fmt.Errorf("meshes: failed to load model '%s': %w", modelPath, err)
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMeshes, modelPath)
	}

	parts := make([]meshPart, len(scene.Meshes))
	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]
		p := meshPart{
			positions: sceneMesh.Vertices,
			normals:   sceneMesh.Normals,
			tangents:  sceneMesh.Tangents,
			uv0:       sceneMesh.TexCoords[0],
			indices:   flattenFaces(sceneMesh.Faces),
		}

		if len(sceneMesh.ColorSets) > 0 && len(sceneMesh.ColorSets[0]) > 0 {
			p.colors = sceneMesh.ColorSets[0]
		}

		parts[i] = p
	}

	mesh, err := newMeshFromParts(cc, name, parts)
	if err != nil {
		return nil, fmt.Errorf("meshes: model '%s': %w", modelPath, err)
	}

	return mesh, nil
}

func newMeshFromParts(cc *glcontext.CommandContext, name string, parts []meshPart) (*Mesh, error) {

	if len(parts) == 0 {
		return nil, ErrNoMeshes
	}

	mesh := &Mesh{
		Name:      name,
		SubMeshes: make([]SubMesh, 0, len(parts)),
	}

	// Estimate a useful prealloc capacity based on the first submesh that has vertex pos+normals+tangents+texCoords
	vertexBufDataCapacity := len(parts[0].positions) * (3 + 3 + 3 + 2)
	if len(parts[0].colors) > 0 {
		vertexBufDataCapacity += len(parts[0].positions) * 4
	}

	vertexBufData := make([]float32, 0, vertexBufDataCapacity)
	indexBufData := make([]uint32, 0, len(parts[0].indices))

	var layout []buffers.Element
	stride := 0
	vertexCount := 0

	for i := range parts {

		part := &parts[i]
		n := len(part.positions)

		// We always want normals, tangents and UV0
		if len(part.normals) == 0 {
			part.normals = make([]gglm.Vec3, n)
		}

		if len(part.tangents) == 0 {
			part.tangents = make([]gglm.Vec3, n)
		}

		if len(part.uv0) == 0 {
			part.uv0 = make([]gglm.Vec3, n)
		}

		layoutToUse := []buffers.Element{
			{Name: "pos", ElementType: buffers.DataTypeVec3},
			{Name: "normal", ElementType: buffers.DataTypeVec3},
			{Name: "tangent", ElementType: buffers.DataTypeVec3},
			{Name: "uv0", ElementType: buffers.DataTypeVec2},
		}

		if len(part.colors) > 0 {
			layoutToUse = append(layoutToUse, buffers.Element{Name: "color", ElementType: buffers.DataTypeVec4})
		}

		// One vertex buffer holds every sub-mesh so they must share a layout
		if i == 0 {
			layout = layoutToUse
			for _, e := range layout {
				stride += e.Size() / 4
			}
		} else if len(layout) != len(layoutToUse) {
			return nil, fmt.Errorf("%w: sub-mesh %d of '%s' has %d vertex elements, the first has %d", ErrLayoutMismatch, i, name, len(layoutToUse), len(layout))
		}

		arrs := []arrToInterleave{
			{V3s: part.positions},
			{V3s: part.normals},
			{V3s: part.tangents},
			{V2s: v3sToV2s(part.uv0)},
		}

		if len(part.colors) > 0 {
			arrs = append(arrs, arrToInterleave{V4s: part.colors})
		}

		mesh.SubMeshes = append(mesh.SubMeshes, SubMesh{
			BaseVertex: vertexCount,
			BaseIndex:  len(indexBufData),
			IndexCount: len(part.indices),
		})

		vertexBufData = append(vertexBufData, interleave(arrs...)...)
		indexBufData = append(indexBufData, part.indices...)
		vertexCount += n
	}

	assert.T(len(vertexBufData) == vertexCount*stride, "interleaved %d floats for %d vertices of %d floats each", len(vertexBufData), vertexCount, stride)

	var err error
	mesh.Vbo, err = buffers.NewVertexBuffer(cc, vertexBufData, buffers.BufferMode_Immutable, layout...)
	if err != nil {
		return nil, err
	}

	mesh.Ibo, err = buffers.NewIndexBuffer(cc, buffers.Primitive_Triangles, indexBufData)
	if err != nil {
		return nil, errors.Join(err, mesh.Vbo.Delete(cc))
	}

	return mesh, nil
}

// Draw draws every sub-mesh of the mesh onto surf
func (m *Mesh) Draw(cc *glcontext.CommandContext, surf framebuffer.Surface, prog *shaders.Program, u *uniforms.Uniforms, params *drawparams.DrawParameters) error {

	vertices := framebuffer.VertexBuffers(m.Vbo)
	for i := 0; i < len(m.SubMeshes); i++ {

		sm := &m.SubMeshes[i]
		ind := m.Ibo.Indices().Range(sm.BaseIndex, sm.IndexCount)
		ind.BaseVertex = sm.BaseVertex

		if err := surf.Draw(cc, vertices, ind, prog, u, params); err != nil {
			return fmt.Errorf("meshes: drawing sub-mesh %d of '%s': %w", i, m.Name, err)
		}
	}

	return nil
}

func (m *Mesh) Delete(cc *glcontext.CommandContext) error {
	return errors.Join(m.Vbo.Delete(cc), m.Ibo.Delete(cc))
}

func v3sToV2s(v3s []gglm.Vec3) []gglm.Vec2 {

	v2s := make([]gglm.Vec2, len(v3s))
	for i := 0; i < len(v3s); i++ {
		v2s[i] = gglm.Vec2{
			Data: [2]float32{v3s[i].X(), v3s[i].Y()},
		}
	}

	return v2s
}

type arrToInterleave struct {
	V2s []gglm.Vec2
	V3s []gglm.Vec3
	V4s []gglm.Vec4
}

func (a *arrToInterleave) len() int {

	if len(a.V2s) > 0 {
		return len(a.V2s)
	} else if len(a.V3s) > 0 {
		return len(a.V3s)
	}

	return len(a.V4s)
}

func (a *arrToInterleave) get(i int) []float32 {

	assert.T(len(a.V2s) == 0 || len(a.V3s) == 0, "One array should be set in arrToInterleave, but multiple arrays are set")
	assert.T(len(a.V2s) == 0 || len(a.V4s) == 0, "One array should be set in arrToInterleave, but multiple arrays are set")
	assert.T(len(a.V3s) == 0 || len(a.V4s) == 0, "One array should be set in arrToInterleave, but multiple arrays are set")

	if len(a.V2s) > 0 {
		return a.V2s[i].Data[:]
	} else if len(a.V3s) > 0 {
		return a.V3s[i].Data[:]
	}

	return a.V4s[i].Data[:]
}

func interleave(arrs ...arrToInterleave) []float32 {

	assert.T(len(arrs) > 0, "No input sent to interleave")

	elementCount := arrs[0].len()
	totalSize := 0
	for i := 0; i < len(arrs); i++ {

		assert.T(arrs[i].len() == elementCount, "Mesh vertex data given to interleave is not the same length")
		if elementCount > 0 {
			totalSize += elementCount * len(arrs[i].get(0))
		}
	}

	out := make([]float32, 0, totalSize)
	for i := 0; i < elementCount; i++ {
		for arrToUse := 0; arrToUse < len(arrs); arrToUse++ {
			out = append(out, arrs[arrToUse].get(i)...)
		}
	}

	return out
}

func flattenFaces(faces []asig.Face) []uint32 {

	uints := make([]uint32, 0, len(faces)*3)
	for i := 0; i < len(faces); i++ {

		assert.T(len(faces[i].Indices) == 3, "Face doesn't have 3 indices. Index count: %v\n", len(faces[i].Indices))
		uints = append(uints,
			uint32(faces[i].Indices[0]),
			uint32(faces[i].Indices[1]),
			uint32(faces[i].Indices[2]),
		)
	}

	return uints
}
