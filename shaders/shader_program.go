package shaders

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/logging"
)

// ProgramSource holds the GLSL of each stage of a graphics program. Empty
// stages are skipped; a vertex stage is required.
type ProgramSource struct {
	Vertex         string
	TessControl    string
	TessEvaluation string
	Geometry       string
	Fragment       string
}

type stageSource struct {
	typ ShaderType
	src string
}

func (src *ProgramSource) stages() []stageSource {

	all := []stageSource{
		{ShaderType_Vertex, src.Vertex},
		{ShaderType_TessControl, src.TessControl},
		{ShaderType_TessEvaluation, src.TessEvaluation},
		{ShaderType_Geometry, src.Geometry},
		{ShaderType_Fragment, src.Fragment},
	}

	out := all[:0]
	for _, s := range all {
		if s.src != "" {
			out = append(out, s)
		}
	}

	return out
}

// ProgramCreationError is returned by NewProgram. Err is a
// *ShaderCompileError, ErrStageNotSupported, ErrMissingStage or
// ErrLinkFailed; Log holds the link log when linking failed.
type ProgramCreationError struct {
	Err error
	Log string
}

func (e *ProgramCreationError) Error() string {

	if e.Log != "" {
		return fmt.Sprintf("shaders: creating program: %v: %s", e.Err, e.Log)
	}

	return fmt.Sprintf("shaders: creating program: %v", e.Err)
}

func (e *ProgramCreationError) Unwrap() error {
	return e.Err
}

type Program struct {
	ctx *glcontext.Context
	id  uint32

	stages map[ShaderType]bool

	uniforms       map[string]*Uniform
	attributes     map[string]*Attribute
	outputs        map[string]*Output
	blocks         map[string]*UniformBlock
	storageBlocks  map[string]*UniformBlock
	outputsQueried bool

	// values caches what was last uploaded to each uniform location
	values map[int]uniformValue
}

// NewProgram compiles and links a graphics program. The shader objects
// are detached and deleted once the program is linked.
func NewProgram(cc *glcontext.CommandContext, src ProgramSource) (*Program, error) {

	if src.Vertex == "" {
		return nil, &ProgramCreationError{Err: fmt.Errorf("%w: vertex", ErrMissingStage)}
	}

	if src.TessControl != "" && src.TessEvaluation == "" {
		return nil, &ProgramCreationError{Err: fmt.Errorf("%w: a tessellation control stage needs an evaluation stage", ErrMissingStage)}
	}

	return linkProgram(cc, src.stages())
}

func linkProgram(cc *glcontext.CommandContext, stages []stageSource) (*Program, error) {

	for _, s := range stages {
		if err := s.typ.CheckSupported(cc.Caps); err != nil {
			return nil, &ProgramCreationError{Err: err}
		}
	}

	id := cc.GL.CreateProgram()
	if id == 0 {
		return nil, fmt.Errorf("%w: program", glcontext.ErrObjectCreation)
	}

	p := &Program{
		ctx:    cc.Context(),
		id:     id,
		stages: make(map[ShaderType]bool, len(stages)),
		values: map[int]uniformValue{},
	}

	shaders := make([]Shader, 0, len(stages))
	cleanup := func() {
		for i := range shaders {
			cc.GL.DetachShader(id, shaders[i].Id)
			shaders[i].Delete(cc)
		}
	}

	for _, s := range stages {

		shdr, err := CompileShaderOfType(cc, []byte(s.src), s.typ)
		if err != nil {

			cleanup()
			cc.DeleteProgram(id)

			var compileErr *ShaderCompileError
			if errors.As(err, &compileErr) {
				return nil, &ProgramCreationError{Err: compileErr}
			}

			return nil, err
		}

		cc.GL.AttachShader(id, shdr.Id)
		shaders = append(shaders, shdr)
		p.stages[s.typ] = true
	}

	cc.GL.LinkProgram(id)
	cleanup()

	if cc.GL.GetProgrami(id, gl.LINK_STATUS) != gl.TRUE {

		linkLog := ""
		if cc.GL.GetProgrami(id, gl.INFO_LOG_LENGTH) > 0 {
			linkLog = cc.GL.GetProgramInfoLog(id)
		}

		cc.DeleteProgram(id)
		logging.ErrLog.Println("Linking of shader program with id ", id, " failed. Err: ", linkLog)
		return nil, &ProgramCreationError{Err: ErrLinkFailed, Log: linkLog}
	}

	p.reflect(cc)

	runtime.SetFinalizer(p, (*Program).finalize)
	return p, nil
}

func (p *Program) finalize() {
	p.ctx.Release(glcontext.ObjectKind_Program, p.id)
}

func (p *Program) Id() uint32 {
	return p.id
}

// ProgramId makes Program usable to build vertex arrays
func (p *Program) ProgramId() uint32 {
	return p.id
}

func (p *Program) Handle() gl.Handle {
	return gl.IdHandle(p.id)
}

func (p *Program) Context() *glcontext.Context {
	return p.ctx
}

func (p *Program) IsDeleted() bool {
	return p.id == 0
}

func (p *Program) HasStage(t ShaderType) bool {
	return p.stages[t]
}

func (p *Program) HasTessellation() bool {
	return p.stages[ShaderType_TessEvaluation]
}

func (p *Program) HasGeometry() bool {
	return p.stages[ShaderType_Geometry]
}

func (p *Program) IsCompute() bool {
	return p.stages[ShaderType_Compute]
}

func (p *Program) Check(cc *glcontext.CommandContext) error {

	if p.id == 0 {
		return glcontext.ErrDeleted
	}

	return cc.CheckOwner(p.ctx)
}

// Use makes p the current program
func (p *Program) Use(cc *glcontext.CommandContext) error {

	if err := p.Check(cc); err != nil {
		return err
	}

	cc.UseProgram(p.id)
	return nil
}

func (p *Program) Delete(cc *glcontext.CommandContext) error {

	if p.id == 0 {
		return nil
	}

	if err := cc.CheckOwner(p.ctx); err != nil {
		return err
	}

	cc.DeleteProgram(p.id)
	p.id = 0
	runtime.SetFinalizer(p, nil)
	return nil
}
