package rend3dgl_test

import (
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/framebuffer"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/gltest"
	"github.com/bloeys/ngl/materials"
	"github.com/bloeys/ngl/meshes"
	"github.com/bloeys/ngl/renderer/rend3dgl"
	"github.com/bloeys/ngl/textures"
	"github.com/stretchr/testify/require"
)

const combinedSrc = `//shader:vertex
#version 330 core
in vec3 pos;
uniform mat4 modelMat;
uniform mat3 normalMat;
void main() { gl_Position = modelMat * vec4(normalMat * pos, 1.0); }

//shader:fragment
#version 330 core
struct Material { sampler2D diffuse; float shininess; };
uniform Material material;
out vec4 color;
void main() { color = texture(material.diffuse, vec2(0)) * material.shininess; }
`

func TestNormalMatrix(t *testing.T) {

	var m gglm.Mat4
	m.Data[0][0], m.Data[1][1], m.Data[2][2], m.Data[3][3] = 2, 4, 0.5, 1
	m.Data[3][0] = 10

	n := rend3dgl.NormalMatrix(&m)
	require.Equal(t, [3][3]float32{{0.5, 0, 0}, {0, 0.25, 0}, {0, 0, 2}}, n.Data)

	var singular gglm.Mat4
	require.Equal(t, gglm.Mat3{}, rend3dgl.NormalMatrix(&singular))
}

func TestDrawMesh(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		defaults, err := materials.NewDefaultTextures(cc)
		require.NoError(t, err)

		f.NextProgram = gltest.ProgramInfo{
			Uniforms: []gltest.Var{
				{Name: "modelMat", Size: 1, Type: gl.FLOAT_MAT4, Location: 0},
				{Name: "normalMat", Size: 1, Type: gl.FLOAT_MAT3, Location: 1},
				{Name: "material.diffuse", Size: 1, Type: gl.SAMPLER_2D, Location: 2},
				{Name: "material.shininess", Size: 1, Type: gl.FLOAT, Location: 3},
			},
			Attributes: []gltest.Var{{Name: "pos", Size: 1, Type: gl.FLOAT_VEC3, Location: 0}},
			Outputs:    []gltest.Var{{Name: "color", Size: 1, Type: gl.FLOAT_VEC4, Location: 0}},
		}

		mat, err := materials.NewMaterialSrc(cc, "lit", []byte(combinedSrc), defaults)
		require.NoError(t, err)
		mat.Settings.Set(materials.MaterialSettings_HasNormalMtx)
		mat.Shininess = 32

		vb, err := buffers.NewVertexBuffer(cc, make([]float32, 4*3), buffers.BufferMode_Default, buffers.Element{Name: "pos", ElementType: buffers.DataTypeVec3})
		require.NoError(t, err)
		ib, err := buffers.NewIndexBuffer(cc, buffers.Primitive_Triangles, []uint32{0, 1, 2, 0, 2, 3})
		require.NoError(t, err)

		mesh := &meshes.Mesh{
			Name:      "quad",
			Vbo:       vb,
			Ibo:       ib,
			SubMeshes: []meshes.SubMesh{{IndexCount: 6}},
		}

		tex, err := textures.NewTexture2D(cc, textures.Format_RGBA8, 16, 16, textures.NoMipmaps, nil)
		require.NoError(t, err)
		fb, err := framebuffer.NewSimpleFramebuffer(cc, framebuffer.TextureLevel(tex), framebuffer.DepthStencil{})
		require.NoError(t, err)

		r := &rend3dgl.Rend3DGL{}
		model := gglm.NewTrMatId()

		f.Reset()
		require.NoError(t, r.DrawMesh(cc, fb, mesh, &model, mat))
		require.Equal(t, 1, r.DrawCalls)
		require.Len(t, f.CallsNamed("DrawElements"), 1)
		require.NotEmpty(t, f.CallsNamed("UniformMatrix4fv"))
		require.NotEmpty(t, f.CallsNamed("UniformMatrix3fv"))

		// Drawing the material's own diffuse texture into itself is a loop
		mat.DiffuseTex = tex
		require.ErrorIs(t, r.DrawMesh(cc, fb, mesh, &model, mat), framebuffer.ErrFeedbackLoop)

		r.FrameEnd()
		require.Zero(t, r.DrawCalls)

		require.NoError(t, mat.Delete(cc))
		require.NoError(t, defaults.Delete(cc))
		return nil
	})
}
