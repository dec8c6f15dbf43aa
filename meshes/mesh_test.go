package meshes

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ngl/framebuffer"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/gltest"
	"github.com/bloeys/ngl/shaders"
	"github.com/bloeys/ngl/textures"
	"github.com/stretchr/testify/require"
)

func triangle(x float32) meshPart {
	return meshPart{
		positions: []gglm.Vec3{
			{Data: [3]float32{x, 0, 0}},
			{Data: [3]float32{x + 1, 0, 0}},
			{Data: [3]float32{x, 1, 0}},
		},
		uv0:     []gglm.Vec3{{Data: [3]float32{0, 0, 0}}, {Data: [3]float32{1, 0, 0}}, {Data: [3]float32{0, 1, 0}}},
		indices: []uint32{0, 1, 2},
	}
}

func TestInterleave(t *testing.T) {

	out := interleave(
		arrToInterleave{V3s: []gglm.Vec3{{Data: [3]float32{1, 2, 3}}, {Data: [3]float32{4, 5, 6}}}},
		arrToInterleave{V2s: []gglm.Vec2{{Data: [2]float32{7, 8}}, {Data: [2]float32{9, 10}}}},
	)

	require.Equal(t, []float32{1, 2, 3, 7, 8, 4, 5, 6, 9, 10}, out)
	require.Equal(t, []gglm.Vec2{{Data: [2]float32{4, 5}}}, v3sToV2s([]gglm.Vec3{{Data: [3]float32{4, 5, 6}}}))
}

func TestMeshFromParts(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		mesh, err := newMeshFromParts(cc, "two-triangles", []meshPart{triangle(0), triangle(2)})
		require.NoError(t, err)

		require.Equal(t, []SubMesh{
			{BaseVertex: 0, BaseIndex: 0, IndexCount: 3},
			{BaseVertex: 3, BaseIndex: 3, IndexCount: 3},
		}, mesh.SubMeshes)

		// pos, normal, tangent, uv0
		require.Equal(t, (3+3+3+2)*4, mesh.Vbo.Stride)
		require.Equal(t, 6, mesh.Vbo.Count)
		require.Equal(t, 6, mesh.Ibo.IndexBufCount)

		_, hasColor := mesh.Vbo.Element("color")
		require.False(t, hasColor)

		tex, err := textures.NewTexture2D(cc, textures.Format_RGBA8, 8, 8, textures.NoMipmaps, nil)
		require.NoError(t, err)
		fb, err := framebuffer.NewSimpleFramebuffer(cc, framebuffer.TextureLevel(tex), framebuffer.DepthStencil{})
		require.NoError(t, err)

		f.NextProgram = gltest.ProgramInfo{
			Attributes: []gltest.Var{
				{Name: "pos", Size: 1, Type: gl.FLOAT_VEC3, Location: 0},
				{Name: "uv0", Size: 1, Type: gl.FLOAT_VEC2, Location: 1},
			},
			Outputs: []gltest.Var{{Name: "color", Size: 1, Type: gl.FLOAT_VEC4, Location: 0}},
		}
		prog, err := shaders.NewProgram(cc, shaders.ProgramSource{
			Vertex:   "#version 330 core\nin vec3 pos;\nin vec2 uv0;\nvoid main() { gl_Position = vec4(pos, uv0.x); }\n",
			Fragment: "#version 330 core\nout vec4 color;\nvoid main() { color = vec4(1); }\n",
		})
		require.NoError(t, err)

		f.Reset()
		require.NoError(t, mesh.Draw(cc, fb, prog, nil, nil))

		require.Equal(t, []any{gl.Enum(gl.TRIANGLES), 3, gl.Enum(gl.UNSIGNED_INT), 0}, f.CallsNamed("DrawElements")[0].Args)
		require.Equal(t, []any{gl.Enum(gl.TRIANGLES), 3, gl.Enum(gl.UNSIGNED_INT), 12, 3}, f.CallsNamed("DrawElementsBaseVertex")[0].Args)

		require.NoError(t, mesh.Delete(cc))
		return nil
	})
}

func TestMeshLayoutMismatch(t *testing.T) {

	ctx, _ := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		colored := triangle(2)
		colored.colors = make([]gglm.Vec4, 3)

		_, err := newMeshFromParts(cc, "mixed", []meshPart{triangle(0), colored})
		require.ErrorIs(t, err, ErrLayoutMismatch)

		_, err = newMeshFromParts(cc, "empty", nil)
		require.ErrorIs(t, err, ErrNoMeshes)
		return nil
	})
}
