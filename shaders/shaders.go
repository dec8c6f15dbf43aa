package shaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/logging"
)

var (
	ErrStageNotSupported = errors.New("shaders: shader stage is not supported by this context")
	ErrMissingStage      = errors.New("shaders: program is missing a required shader stage")
	ErrLinkFailed        = errors.New("shaders: linking failed")
	ErrCombinedSource    = errors.New("shaders: invalid combined shader source")
)

// ShaderCompileError carries the driver's info log of a failed compile
type ShaderCompileError struct {
	Type ShaderType
	Log  string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("shaders: compiling %s shader failed: %s", e.Type, e.Log)
}

type Shader struct {
	Id   uint32
	Type ShaderType
}

func (s *Shader) Delete(cc *glcontext.CommandContext) {

	if s.Id == 0 {
		return
	}

	cc.GL.DeleteShader(s.Id)
	s.Id = 0
}

func CompileShaderOfType(cc *glcontext.CommandContext, shaderSource []byte, shaderType ShaderType) (Shader, error) {

	if err := shaderType.CheckSupported(cc.Caps); err != nil {
		return Shader{}, err
	}

	shaderId := cc.GL.CreateShader(shaderType.ToGL())
	if shaderId == 0 {
		return Shader{}, fmt.Errorf("%w: %s shader", glcontext.ErrObjectCreation, shaderType)
	}

	cc.GL.ShaderSource(shaderId, string(shaderSource))
	cc.GL.CompileShader(shaderId)

	if err := getShaderCompileErrors(cc, shaderId, shaderType); err != nil {
		cc.GL.DeleteShader(shaderId)
		return Shader{}, err
	}

	return Shader{Id: shaderId, Type: shaderType}, nil
}

func getShaderCompileErrors(cc *glcontext.CommandContext, shaderId uint32, shaderType ShaderType) error {

	if cc.GL.GetShaderi(shaderId, gl.COMPILE_STATUS) == gl.TRUE {
		return nil
	}

	errMsg := ""
	if cc.GL.GetShaderi(shaderId, gl.INFO_LOG_LENGTH) > 0 {
		errMsg = cc.GL.GetShaderInfoLog(shaderId)
	}

	logging.ErrLog.Println("Compilation of shader with id ", shaderId, " failed. Err: ", errMsg)
	return &ShaderCompileError{Type: shaderType, Log: errMsg}
}

var combinedStageTags = []struct {
	tag string
	typ ShaderType
}{
	// Longer tags first so "tesscontrol" is not read as an unknown prefix
	{"tesscontrol", ShaderType_TessControl},
	{"tesseval", ShaderType_TessEvaluation},
	{"vertex", ShaderType_Vertex},
	{"fragment", ShaderType_Fragment},
	{"geometry", ShaderType_Geometry},
	{"compute", ShaderType_Compute},
}

// SplitCombinedShaderSrc splits a file where each stage starts with a
// '//shader:<stage>' line. Stages are vertex, fragment, geometry,
// tesscontrol, tesseval and compute.
func SplitCombinedShaderSrc(shaderSrc []byte) (map[ShaderType][]byte, error) {

	shaderSources := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return nil, fmt.Errorf("%w: no '//shader:<stage>' markers found", ErrCombinedSource)
	}

	out := make(map[ShaderType][]byte, len(shaderSources))
	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]

		//This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		// Anything before the first marker is not part of a stage
		if i == 0 {
			continue
		}

		found := false
		for _, st := range combinedStageTags {

			if !bytes.HasPrefix(src, []byte(st.tag)) {
				continue
			}

			if _, dup := out[st.typ]; dup {
				return nil, fmt.Errorf("%w: %s stage appears twice", ErrCombinedSource, st.typ)
			}

			out[st.typ] = src[len(st.tag):]
			found = true
			break
		}

		if !found {
			line, _, _ := bytes.Cut(src, []byte("\n"))
			return nil, fmt.Errorf("%w: unknown shader type '%s'", ErrCombinedSource, bytes.TrimSpace(line))
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no valid shaders found", ErrCombinedSource)
	}

	return out, nil
}

func LoadAndCompileCombinedShader(cc *glcontext.CommandContext, shaderPath string) (*Program, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read shader. Err: ", err)
		return nil, err
	}

	return LoadAndCompileCombinedShaderSrc(cc, combinedSource)
}

// LoadAndCompileCombinedShaderSrc builds a graphics program from a combined
// source. A vertex and a fragment stage are required.
func LoadAndCompileCombinedShaderSrc(cc *glcontext.CommandContext, shaderSrc []byte) (*Program, error) {

	stages, err := SplitCombinedShaderSrc(shaderSrc)
	if err != nil {
		return nil, err
	}

	if _, ok := stages[ShaderType_Compute]; ok {
		return nil, fmt.Errorf("%w: compute stages need NewComputeShader", ErrCombinedSource)
	}

	if stages[ShaderType_Vertex] == nil {
		return nil, fmt.Errorf("%w: put '//shader:vertex' before your vertex shader", ErrMissingStage)
	}

	if stages[ShaderType_Fragment] == nil {
		return nil, fmt.Errorf("%w: put '//shader:fragment' before your fragment shader", ErrMissingStage)
	}

	return NewProgram(cc, ProgramSource{
		Vertex:         string(stages[ShaderType_Vertex]),
		TessControl:    string(stages[ShaderType_TessControl]),
		TessEvaluation: string(stages[ShaderType_TessEvaluation]),
		Geometry:       string(stages[ShaderType_Geometry]),
		Fragment:       string(stages[ShaderType_Fragment]),
	})
}
