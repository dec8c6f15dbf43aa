package rend3dgl

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/framebuffer"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/materials"
	"github.com/bloeys/ngl/meshes"
	"github.com/bloeys/ngl/renderer"
	"github.com/bloeys/ngl/uniforms"
)

var _ renderer.Render = &Rend3DGL{}

// Rend3DGL draws materials and meshes. Redundant binds are already dropped
// by the context, so it only builds the per-draw uniforms.
type Rend3DGL struct {
	// DrawCalls since the last FrameEnd
	DrawCalls int
}

func (r *Rend3DGL) DrawMesh(cc *glcontext.CommandContext, surf framebuffer.Surface, mesh *meshes.Mesh, modelMat *gglm.TrMat, mat *materials.Material) error {

	u := mat.Uniforms()

	if mat.Settings.Has(materials.MaterialSettings_HasModelMtx) {
		u.Add("modelMat", uniforms.Mat4(&modelMat.Mat4))
	}

	if mat.Settings.Has(materials.MaterialSettings_HasNormalMtx) {
		normalMat := NormalMatrix(&modelMat.Mat4)
		u.Add("normalMat", uniforms.Mat3(&normalMat))
	}

	r.DrawCalls += len(mesh.SubMeshes)
	return mesh.Draw(cc, surf, mat.Program, u, &mat.Params)
}

func (r *Rend3DGL) DrawVertices(cc *glcontext.CommandContext, surf framebuffer.Surface, mat *materials.Material, vertices framebuffer.Vertices, indices buffers.Indices) error {

	r.DrawCalls++
	return surf.Draw(cc, vertices, indices, mat.Program, mat.Uniforms(), &mat.Params)
}

func (r *Rend3DGL) FrameEnd() {
	r.DrawCalls = 0
}

// NormalMatrix is the inverse transpose of the upper 3x3 of m, which is
// its cofactor matrix divided by the determinant
func NormalMatrix(m *gglm.Mat4) gglm.Mat3 {

	a := func(i, j int) float32 { return m.Data[i][j] }

	var c [3][3]float32
	c[0][0] = a(1, 1)*a(2, 2) - a(1, 2)*a(2, 1)
	c[0][1] = a(1, 2)*a(2, 0) - a(1, 0)*a(2, 2)
	c[0][2] = a(1, 0)*a(2, 1) - a(1, 1)*a(2, 0)
	c[1][0] = a(0, 2)*a(2, 1) - a(0, 1)*a(2, 2)
	c[1][1] = a(0, 0)*a(2, 2) - a(0, 2)*a(2, 0)
	c[1][2] = a(0, 1)*a(2, 0) - a(0, 0)*a(2, 1)
	c[2][0] = a(0, 1)*a(1, 2) - a(0, 2)*a(1, 1)
	c[2][1] = a(0, 2)*a(1, 0) - a(0, 0)*a(1, 2)
	c[2][2] = a(0, 0)*a(1, 1) - a(0, 1)*a(1, 0)

	det := a(0, 0)*c[0][0] + a(0, 1)*c[0][1] + a(0, 2)*c[0][2]

	var out gglm.Mat3
	if det == 0 {
		return out
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Data[i][j] = c[i][j] / det
		}
	}

	return out
}
