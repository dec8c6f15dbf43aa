package shaders_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/gltest"
	"github.com/bloeys/ngl/logging"
	"github.com/bloeys/ngl/shaders"
	"github.com/stretchr/testify/require"
)

const (
	vertSrc = "#version 330 core\nin vec3 pos;\nvoid main() { gl_Position = vec4(pos, 1.0); }\n"
	fragSrc = "#version 330 core\nout vec4 color;\nvoid main() { color = vec4(1.0); }\n"
)

func TestMain(m *testing.M) {
	// Compile and link failures are logged, keep the test output readable
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testProgramInfo() gltest.ProgramInfo {
	return gltest.ProgramInfo{
		Uniforms: []gltest.Var{
			{Name: "model", Size: 1, Type: gl.FLOAT_MAT4, Location: 0},
			{Name: "lights[0]", Size: 4, Type: gl.FLOAT_VEC3, Location: 1},
			{Name: "tex", Size: 1, Type: gl.SAMPLER_2D, Location: 5},
		},
		Attributes: []gltest.Var{
			{Name: "uv", Size: 1, Type: gl.FLOAT_VEC2, Location: 1},
			{Name: "pos", Size: 1, Type: gl.FLOAT_VEC3, Location: 0},
		},
		Outputs: []gltest.Var{
			{Name: "color", Size: 1, Type: gl.FLOAT_VEC4, Location: 0},
		},
		Blocks: []gltest.Block{
			{
				Name:     "Camera",
				DataSize: 128,
				Members: []gltest.BlockMember{
					{Name: "view", Type: gl.FLOAT_MAT4, Size: 1, Offset: 64, MatrixStride: 16},
					{Name: "proj", Type: gl.FLOAT_MAT4, Size: 1, Offset: 0, MatrixStride: 16},
				},
			},
		},
		StorageBlocks: []gltest.Block{
			{Name: "Particles", DataSize: 32, Binding: 2},
		},
	}
}

func TestNewProgramReflection(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		f.NextProgram = testProgramInfo()
		p, err := shaders.NewProgram(cc, shaders.ProgramSource{Vertex: vertSrc, Fragment: fragSrc})
		require.NoError(t, err)

		require.Zero(t, f.Live("shader"))
		require.Equal(t, 1, f.Live("program"))
		require.Equal(t, 2, f.Count("DetachShader"))
		require.False(t, p.HasGeometry())
		require.False(t, p.HasTessellation())
		require.True(t, p.HasStage(shaders.ShaderType_Fragment))

		lights, ok := p.Uniform("lights")
		require.True(t, ok)
		require.Equal(t, 4, lights.Size)
		require.Equal(t, 1, lights.Location)

		_, ok = p.Uniform("lights[0]")
		require.True(t, ok)

		// Block members are not default block uniforms
		_, ok = p.Uniform("view")
		require.False(t, ok)
		require.Len(t, p.Uniforms(), 3)

		attrs := p.Attributes()
		require.Equal(t, "pos", attrs[0].Name)
		require.Equal(t, "uv", attrs[1].Name)

		loc, ok := p.AttributeLocation("uv")
		require.True(t, ok)
		require.Equal(t, 1, loc)

		_, ok = p.AttributeLocation("normal")
		require.False(t, ok)

		cam, ok := p.UniformBlock("Camera")
		require.True(t, ok)
		require.Equal(t, 128, cam.DataSize)
		require.Equal(t, "proj", cam.Members[0].Name)
		require.Equal(t, 64, cam.Members[1].Offset)
		require.Equal(t, 16, cam.Members[1].MatrixStride)

		particles, ok := p.ShaderStorageBlock("Particles")
		require.True(t, ok)
		require.Equal(t, 32, particles.DataSize)
		require.Equal(t, uint32(2), particles.Binding)

		loc, ok = p.OutputLocation(cc, "color")
		require.True(t, ok)
		require.Zero(t, loc)
		require.Zero(t, f.Count("GetFragDataLocation"))

		require.True(t, p.Uses("Camera"))
		require.True(t, p.Uses("tex"))
		require.False(t, p.Uses("nope"))

		require.NoError(t, p.Delete(cc))
		require.NoError(t, p.Delete(cc))
		require.Zero(t, f.Live("program"))
		require.ErrorIs(t, p.Use(cc), glcontext.ErrDeleted)
		return nil
	})
}

func TestOutputLocationFallback(t *testing.T) {

	ctx, f := gltest.NewContext(t, "3.3 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		f.NextProgram = testProgramInfo()
		p, err := shaders.NewProgram(cc, shaders.ProgramSource{Vertex: vertSrc, Fragment: fragSrc})
		require.NoError(t, err)

		require.Empty(t, p.Outputs())
		_, ok := p.ShaderStorageBlock("Particles")
		require.False(t, ok)

		loc, ok := p.OutputLocation(cc, "color")
		require.True(t, ok)
		require.Zero(t, loc)
		require.Len(t, p.Outputs(), 1)

		_, ok = p.OutputLocation(cc, "missing")
		require.False(t, ok)
		require.Equal(t, 2, f.Count("GetFragDataLocation"))
		return nil
	})
}

func TestProgramCreationErrors(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		_, err := shaders.NewProgram(cc, shaders.ProgramSource{Vertex: vertSrc, Fragment: "#error oops\n"})

		var pce *shaders.ProgramCreationError
		require.True(t, errors.As(err, &pce))

		var sce *shaders.ShaderCompileError
		require.True(t, errors.As(err, &sce))
		require.Equal(t, shaders.ShaderType_Fragment, sce.Type)
		require.Contains(t, sce.Log, "#error oops")
		require.Zero(t, f.Live("shader"))
		require.Zero(t, f.Live("program"))

		f.FailLink = "error: varying uv not written"
		_, err = shaders.NewProgram(cc, shaders.ProgramSource{Vertex: vertSrc, Fragment: fragSrc})
		require.ErrorIs(t, err, shaders.ErrLinkFailed)
		require.True(t, errors.As(err, &pce))
		require.Equal(t, "error: varying uv not written", pce.Log)
		require.Zero(t, f.Live("program"))

		_, err = shaders.NewProgram(cc, shaders.ProgramSource{Fragment: fragSrc})
		require.ErrorIs(t, err, shaders.ErrMissingStage)

		_, err = shaders.NewProgram(cc, shaders.ProgramSource{Vertex: vertSrc, TessControl: "void main() {}", Fragment: fragSrc})
		require.ErrorIs(t, err, shaders.ErrMissingStage)

		f.FailNextGen = true
		_, err = shaders.NewProgram(cc, shaders.ProgramSource{Vertex: vertSrc, Fragment: fragSrc})
		require.ErrorIs(t, err, glcontext.ErrObjectCreation)
		return nil
	})

	ctx, f = gltest.NewContext(t, "2.1 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		_, err := shaders.NewProgram(cc, shaders.ProgramSource{Vertex: vertSrc, Geometry: "void main() {}", Fragment: fragSrc})
		require.ErrorIs(t, err, shaders.ErrStageNotSupported)
		require.Zero(t, f.Count("CreateProgram"))
		return nil
	})
}

func TestUniformValueCache(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		f.NextProgram = testProgramInfo()
		p, err := shaders.NewProgram(cc, shaders.ProgramSource{Vertex: vertSrc, Fragment: fragSrc})
		require.NoError(t, err)

		lights, _ := p.Uniform("lights")
		vals := []float32{1, 2, 3, 4, 5, 6}

		f.Reset()
		require.NoError(t, p.SetFloats(cc, lights.Location, 3, vals))
		require.NoError(t, p.SetFloats(cc, lights.Location, 3, vals))
		require.Equal(t, 1, f.Count("Uniform3fv"))
		require.Equal(t, 1, f.Count("UseProgram"))
		require.Equal(t, []any{1, vals}, f.CallsNamed("Uniform3fv")[0].Args)

		// lights[1] already holds this value
		require.NoError(t, p.SetFloats(cc, lights.Location+1, 3, []float32{4, 5, 6}))
		require.Equal(t, 1, f.Count("Uniform3fv"))

		require.NoError(t, p.SetFloats(cc, lights.Location+1, 3, []float32{4, 5, 7}))
		require.Equal(t, 2, f.Count("Uniform3fv"))

		model, _ := p.Uniform("model")
		identity := []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
		require.NoError(t, p.SetMatrices(cc, model.Location, 4, identity))
		require.Equal(t, []any{0, identity}, f.CallsNamed("UniformMatrix4fv")[0].Args)

		tex, _ := p.Uniform("tex")
		require.NoError(t, p.SetInts(cc, tex.Location, 1, []int32{3}))
		require.NoError(t, p.SetInts(cc, tex.Location, 1, []int32{3}))
		require.Equal(t, 1, f.Count("Uniform1iv"))

		// Same bits through a different call family is a new value
		require.NoError(t, p.SetUints(cc, tex.Location, 1, []uint32{3}))
		require.Equal(t, 1, f.Count("Uniform1uiv"))
		require.Equal(t, 1, f.Count("UseProgram"))

		require.ErrorIs(t, p.SetInts(cc, tex.Location, 5, []int32{1}), shaders.ErrInvalidUniformValue)
		require.ErrorIs(t, p.SetFloats(cc, lights.Location, 3, []float32{1, 2}), shaders.ErrInvalidUniformValue)
		require.ErrorIs(t, p.SetFloats(cc, -1, 1, []float32{1}), shaders.ErrInvalidUniformValue)
		require.ErrorIs(t, p.SetMatrices(cc, model.Location, 5, identity), shaders.ErrInvalidUniformValue)
		return nil
	})
}

func TestBlockBindingCache(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		f.NextProgram = testProgramInfo()
		p, err := shaders.NewProgram(cc, shaders.ProgramSource{Vertex: vertSrc, Fragment: fragSrc})
		require.NoError(t, err)

		cam, _ := p.UniformBlock("Camera")
		f.Reset()

		require.NoError(t, p.SetUniformBlockBinding(cc, cam, 0))
		require.Zero(t, f.Count("UniformBlockBinding"))

		require.NoError(t, p.SetUniformBlockBinding(cc, cam, 3))
		require.NoError(t, p.SetUniformBlockBinding(cc, cam, 3))
		require.Equal(t, []gltest.Call{{Name: "UniformBlockBinding", Args: []any{p.Id(), uint32(0), uint32(3)}}}, f.CallsNamed("UniformBlockBinding"))

		particles, _ := p.ShaderStorageBlock("Particles")
		require.NoError(t, p.SetShaderStorageBlockBinding(cc, particles, 2))
		require.NoError(t, p.SetShaderStorageBlockBinding(cc, particles, 4))
		require.Equal(t, 1, f.Count("ShaderStorageBlockBinding"))
		require.Equal(t, uint32(4), particles.Binding)
		return nil
	})
}

func TestCombinedShader(t *testing.T) {

	combined := "//shader:vertex\n" + vertSrc + "//shader:fragment\n" + fragSrc

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		p, err := shaders.LoadAndCompileCombinedShaderSrc(cc, []byte(combined))
		require.NoError(t, err)
		require.True(t, p.HasStage(shaders.ShaderType_Vertex))
		require.True(t, p.HasStage(shaders.ShaderType_Fragment))

		created := f.CallsNamed("CreateShader")
		require.Len(t, created, 2)
		require.Equal(t, uint32(gl.VERTEX_SHADER), created[0].Args[0])
		require.Equal(t, uint32(gl.FRAGMENT_SHADER), created[1].Args[0])

		path := filepath.Join(t.TempDir(), "simple.glsl")
		require.NoError(t, os.WriteFile(path, []byte(combined), 0o644))
		_, err = shaders.LoadAndCompileCombinedShader(cc, path)
		require.NoError(t, err)

		_, err = shaders.LoadAndCompileCombinedShader(cc, filepath.Join(t.TempDir(), "missing.glsl"))
		require.Error(t, err)

		_, err = shaders.LoadAndCompileCombinedShaderSrc(cc, []byte("//shader:vertex\n"+vertSrc))
		require.ErrorIs(t, err, shaders.ErrMissingStage)

		_, err = shaders.LoadAndCompileCombinedShaderSrc(cc, []byte("//shader:pixel\n"+fragSrc))
		require.ErrorIs(t, err, shaders.ErrCombinedSource)

		_, err = shaders.LoadAndCompileCombinedShaderSrc(cc, []byte(vertSrc))
		require.ErrorIs(t, err, shaders.ErrCombinedSource)
		return nil
	})

	stages, err := shaders.SplitCombinedShaderSrc([]byte(combined + "//shader:tesscontrol\nA\n//shader:tesseval\nB\n"))
	require.NoError(t, err)
	require.Len(t, stages, 4)
	require.Equal(t, "\nA\n", string(stages[shaders.ShaderType_TessControl]))
	require.Equal(t, "\nB\n", string(stages[shaders.ShaderType_TessEvaluation]))

	_, err = shaders.SplitCombinedShaderSrc([]byte(combined + "//shader:vertex\n" + vertSrc))
	require.ErrorIs(t, err, shaders.ErrCombinedSource)
}

func TestComputeShader(t *testing.T) {

	ctx, f := gltest.NewContext(t, "4.6.0 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {

		cs, err := shaders.NewComputeShader(cc, "#version 430\nlayout(local_size_x = 64) in;\nvoid main() {}\n")
		require.NoError(t, err)
		require.True(t, cs.IsCompute())
		require.Equal(t, uint32(gl.COMPUTE_SHADER), f.CallsNamed("CreateShader")[0].Args[0])

		require.NoError(t, cs.Dispatch(cc, 2, 1, 1))
		require.Equal(t, []any{uint32(2), uint32(1), uint32(1)}, f.CallsNamed("DispatchCompute")[0].Args)

		require.NoError(t, cs.Dispatch(cc, 0, 1, 1))
		require.Equal(t, 1, f.Count("DispatchCompute"))

		require.NoError(t, cs.DispatchWithBarrier(cc, 1, 1, 1, gl.SHADER_STORAGE_BARRIER_BIT))
		require.Equal(t, []any{uint32(gl.SHADER_STORAGE_BARRIER_BIT)}, f.CallsNamed("MemoryBarrier")[0].Args)

		require.NoError(t, cs.Delete(cc))
		require.ErrorIs(t, cs.Dispatch(cc, 1, 1, 1), glcontext.ErrDeleted)
		return nil
	})

	ctx, _ = gltest.NewContext(t, "3.3 Fake")
	gltest.Exec(t, ctx, func(cc *glcontext.CommandContext) error {
		_, err := shaders.NewComputeShader(cc, "void main() {}")
		require.ErrorIs(t, err, shaders.ErrStageNotSupported)
		return nil
	})
}

func TestAttributeAccepts(t *testing.T) {

	vec4 := &shaders.Attribute{Name: "a", Type: gl.FLOAT_VEC4}
	require.True(t, vec4.Accepts(buffers.Element{ElementType: buffers.DataTypeVec3}))
	require.True(t, vec4.Accepts(buffers.Element{ElementType: buffers.DataTypeUint8Vec4, Normalized: true}))
	require.False(t, vec4.Accepts(buffers.Element{ElementType: buffers.DataTypeUint8Vec4}))
	require.False(t, vec4.Accepts(buffers.Element{ElementType: buffers.DataTypeMat4}))

	ivec2 := &shaders.Attribute{Name: "b", Type: gl.INT_VEC2}
	require.True(t, ivec2.Accepts(buffers.Element{ElementType: buffers.DataTypeIVec2}))
	require.False(t, ivec2.Accepts(buffers.Element{ElementType: buffers.DataTypeUVec2}))
	require.False(t, ivec2.Accepts(buffers.Element{ElementType: buffers.DataTypeVec2}))

	mat4 := &shaders.Attribute{Name: "c", Type: gl.FLOAT_MAT4}
	require.True(t, mat4.Accepts(buffers.Element{ElementType: buffers.DataTypeMat4}))
	require.False(t, mat4.Accepts(buffers.Element{ElementType: buffers.DataTypeVec4}))

	require.Equal(t, "vec3", shaders.TypeName(gl.FLOAT_VEC3))
	target, ok := shaders.SamplerTarget(gl.UNSIGNED_INT_SAMPLER_2D_ARRAY)
	require.True(t, ok)
	require.Equal(t, uint32(gl.TEXTURE_2D_ARRAY), target)
	require.Equal(t, byte('u'), shaders.SamplerKind(gl.UNSIGNED_INT_SAMPLER_2D_ARRAY))
	require.True(t, shaders.IsShadowSampler(gl.SAMPLER_2D_SHADOW))
}
