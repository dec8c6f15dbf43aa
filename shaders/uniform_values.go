package shaders

import (
	"errors"
	"fmt"
	"math"

	"github.com/bloeys/ngl/glcontext"
)

var ErrInvalidUniformValue = errors.New("shaders: invalid uniform value")

type uniformCall uint8

const (
	uniformCall_Int uniformCall = iota
	uniformCall_Uint
	uniformCall_Float
	uniformCall_Matrix
)

// uniformValue is one location's worth of uniform data stored as raw bits
type uniformValue struct {
	call  uniformCall
	comps int
	bits  [16]uint32
}

// unchanged reports whether every location in [loc, loc+count) already
// holds vals, and records vals otherwise
func (p *Program) unchanged(call uniformCall, loc, comps int, bits []uint32) bool {

	count := len(bits) / comps
	same := true
	for i := 0; i < count; i++ {

		var v uniformValue
		v.call = call
		v.comps = comps
		copy(v.bits[:], bits[i*comps:(i+1)*comps])

		if old, ok := p.values[loc+i]; !ok || old != v {
			same = false
			p.values[loc+i] = v
		}
	}

	return same
}

func (p *Program) prepareUniform(cc *glcontext.CommandContext, loc, comps, n int) error {

	if err := p.Check(cc); err != nil {
		return err
	}

	if loc < 0 {
		return fmt.Errorf("%w: location %d", ErrInvalidUniformValue, loc)
	}

	if n == 0 || n%comps != 0 {
		return fmt.Errorf("%w: %d values is not a multiple of %d components", ErrInvalidUniformValue, n, comps)
	}

	return nil
}

// SetInts uploads int (or bool and sampler) uniforms with comps components
// each, starting at loc. Values equal to the last upload emit no GL call.
func (p *Program) SetInts(cc *glcontext.CommandContext, loc, comps int, v []int32) error {

	if comps < 1 || comps > 4 {
		return fmt.Errorf("%w: %d components", ErrInvalidUniformValue, comps)
	}

	if err := p.prepareUniform(cc, loc, comps, len(v)); err != nil {
		return err
	}

	bits := make([]uint32, len(v))
	for i := range v {
		bits[i] = uint32(v[i])
	}

	if p.unchanged(uniformCall_Int, loc, comps, bits) {
		return nil
	}

	cc.UseProgram(p.id)
	switch comps {
	case 1:
		cc.GL.Uniform1iv(loc, v)
	case 2:
		cc.GL.Uniform2iv(loc, v)
	case 3:
		cc.GL.Uniform3iv(loc, v)
	case 4:
		cc.GL.Uniform4iv(loc, v)
	}

	return nil
}

func (p *Program) SetUints(cc *glcontext.CommandContext, loc, comps int, v []uint32) error {

	if comps < 1 || comps > 4 {
		return fmt.Errorf("%w: %d components", ErrInvalidUniformValue, comps)
	}

	if err := p.prepareUniform(cc, loc, comps, len(v)); err != nil {
		return err
	}

	if p.unchanged(uniformCall_Uint, loc, comps, v) {
		return nil
	}

	cc.UseProgram(p.id)
	switch comps {
	case 1:
		cc.GL.Uniform1uiv(loc, v)
	case 2:
		cc.GL.Uniform2uiv(loc, v)
	case 3:
		cc.GL.Uniform3uiv(loc, v)
	case 4:
		cc.GL.Uniform4uiv(loc, v)
	}

	return nil
}

func floatBits(v []float32) []uint32 {

	bits := make([]uint32, len(v))
	for i := range v {
		bits[i] = math.Float32bits(v[i])
	}

	return bits
}

func (p *Program) SetFloats(cc *glcontext.CommandContext, loc, comps int, v []float32) error {

	if comps < 1 || comps > 4 {
		return fmt.Errorf("%w: %d components", ErrInvalidUniformValue, comps)
	}

	if err := p.prepareUniform(cc, loc, comps, len(v)); err != nil {
		return err
	}

	if p.unchanged(uniformCall_Float, loc, comps, floatBits(v)) {
		return nil
	}

	cc.UseProgram(p.id)
	switch comps {
	case 1:
		cc.GL.Uniform1fv(loc, v)
	case 2:
		cc.GL.Uniform2fv(loc, v)
	case 3:
		cc.GL.Uniform3fv(loc, v)
	case 4:
		cc.GL.Uniform4fv(loc, v)
	}

	return nil
}

// SetMatrices uploads square column-major matrices of dim 2, 3 or 4
func (p *Program) SetMatrices(cc *glcontext.CommandContext, loc, dim int, v []float32) error {

	if dim < 2 || dim > 4 {
		return fmt.Errorf("%w: %dx%d matrix", ErrInvalidUniformValue, dim, dim)
	}

	comps := dim * dim
	if err := p.prepareUniform(cc, loc, comps, len(v)); err != nil {
		return err
	}

	if p.unchanged(uniformCall_Matrix, loc, comps, floatBits(v)) {
		return nil
	}

	cc.UseProgram(p.id)
	switch dim {
	case 2:
		cc.GL.UniformMatrix2fv(loc, v)
	case 3:
		cc.GL.UniformMatrix3fv(loc, v)
	case 4:
		cc.GL.UniformMatrix4fv(loc, v)
	}

	return nil
}

// SetUniformBlockBinding points a uniform block at an indexed
// UNIFORM_BUFFER bind point
func (p *Program) SetUniformBlockBinding(cc *glcontext.CommandContext, b *UniformBlock, binding uint32) error {

	if err := p.Check(cc); err != nil {
		return err
	}

	if b.Binding == binding {
		return nil
	}

	cc.GL.UniformBlockBinding(p.id, b.Index, binding)
	b.Binding = binding
	return nil
}

// SetShaderStorageBlockBinding points a storage block at an indexed
// SHADER_STORAGE_BUFFER bind point
func (p *Program) SetShaderStorageBlockBinding(cc *glcontext.CommandContext, b *UniformBlock, binding uint32) error {

	if err := p.Check(cc); err != nil {
		return err
	}

	if b.Binding == binding {
		return nil
	}

	cc.GL.ShaderStorageBlockBinding(p.id, b.Index, binding)
	b.Binding = binding
	return nil
}
