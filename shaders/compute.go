package shaders

import (
	"github.com/bloeys/ngl/gl"
	"github.com/bloeys/ngl/glcontext"
)

// ComputeShader is a program with a single compute stage
type ComputeShader struct {
	*Program
}

func NewComputeShader(cc *glcontext.CommandContext, src string) (*ComputeShader, error) {

	if src == "" {
		return nil, &ProgramCreationError{Err: ErrMissingStage}
	}

	p, err := linkProgram(cc, []stageSource{{ShaderType_Compute, src}})
	if err != nil {
		return nil, err
	}

	return &ComputeShader{Program: p}, nil
}

// Dispatch runs x*y*z work groups with the current uniforms and bindings
// of the program
func (cs *ComputeShader) Dispatch(cc *glcontext.CommandContext, x, y, z uint32) error {

	if err := cs.Use(cc); err != nil {
		return err
	}

	if x == 0 || y == 0 || z == 0 {
		return nil
	}

	cc.GL.DispatchCompute(x, y, z)
	return nil
}

// DispatchWithBarrier dispatches then issues MemoryBarrier(barriers) so the
// writes are visible to the commands named by the barrier bits
func (cs *ComputeShader) DispatchWithBarrier(cc *glcontext.CommandContext, x, y, z uint32, barriers gl.Enum) error {

	if err := cs.Dispatch(cc, x, y, z); err != nil {
		return err
	}

	cc.GL.MemoryBarrier(barriers)
	return nil
}
