package materials

import (
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ngl/drawparams"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/shaders"
	"github.com/bloeys/ngl/textures"
	"github.com/bloeys/ngl/uniforms"
)

var (
	lastMatId uint32
)

type MaterialSettings uint64

const (
	MaterialSettings_None        MaterialSettings = iota
	MaterialSettings_HasModelMtx MaterialSettings = 1 << (iota - 1)
	MaterialSettings_HasNormalMtx
)

func (ms *MaterialSettings) Set(flags MaterialSettings) {
	*ms |= flags
}

func (ms *MaterialSettings) Remove(flags MaterialSettings) {
	*ms &= ^flags
}

func (ms *MaterialSettings) Has(flags MaterialSettings) bool {
	return *ms&flags == flags
}

// DefaultTextures are 1x1 textures used by materials that were not given
// their own
type DefaultTextures struct {
	Diffuse  *textures.Texture
	Specular *textures.Texture
	Normal   *textures.Texture
	Emission *textures.Texture
}

func NewDefaultTextures(cc *glcontext.CommandContext) (*DefaultTextures, error) {

	pixel := func(r, g, b, a byte) (*textures.Texture, error) {
		img := textures.NewRawImage(textures.Format_RGBA8, 1, 1, 1)
		copy(img.Data, []byte{r, g, b, a})
		return textures.NewTexture2D(cc, textures.Format_RGBA8, 1, 1, textures.NoMipmaps, &img)
	}

	var (
		d   DefaultTextures
		err error
	)

	if d.Diffuse, err = pixel(255, 255, 255, 255); err != nil {
		return nil, err
	}

	if d.Specular, err = pixel(0, 0, 0, 255); err != nil {
		return nil, err
	}

	// Tangent space +Z
	if d.Normal, err = pixel(128, 128, 255, 255); err != nil {
		return nil, err
	}

	if d.Emission, err = pixel(0, 0, 0, 255); err != nil {
		return nil, err
	}

	return &d, nil
}

func (d *DefaultTextures) Delete(cc *glcontext.CommandContext) error {

	for _, t := range []*textures.Texture{d.Diffuse, d.Specular, d.Normal, d.Emission} {
		if err := t.Delete(cc); err != nil {
			return err
		}
	}

	return nil
}

// Material is a program plus the values it is drawn with. Textures are
// bound to "material.diffuse", "material.specular", "material.normal" and
// "material.emission", and Shininess to "material.shininess".
type Material struct {
	Id       uint32
	Name     string
	Program  *shaders.Program
	Settings MaterialSettings
	Params   drawparams.DrawParameters

	// Sampler is how all material textures are sampled
	Sampler textures.SamplerBehavior

	// Phong shading
	DiffuseTex  *textures.Texture
	SpecularTex *textures.Texture
	NormalTex   *textures.Texture
	EmissionTex *textures.Texture

	// Shininess of specular highlights
	Shininess float32

	// CubemapTex is bound to "cubemap" when set
	CubemapTex *textures.Texture

	unifs *uniforms.Uniforms
}

// SetUniform stores a value uploaded on every draw with this material
func (m *Material) SetUniform(name string, v uniforms.Value) {
	m.unifs.Add(name, v)
}

func (m *Material) SetUnifInt32(uniformName string, val int32) {
	m.SetUniform(uniformName, uniforms.Int(val))
}

func (m *Material) SetUnifFloat32(uniformName string, val float32) {
	m.SetUniform(uniformName, uniforms.Float(val))
}

func (m *Material) SetUnifVec2(uniformName string, vec2 *gglm.Vec2) {
	m.SetUniform(uniformName, uniforms.Vec2(vec2))
}

func (m *Material) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {
	m.SetUniform(uniformName, uniforms.Vec3(vec3))
}

func (m *Material) SetUnifVec4(uniformName string, vec4 *gglm.Vec4) {
	m.SetUniform(uniformName, uniforms.Vec4(vec4))
}

func (m *Material) SetUnifMat3(uniformName string, mat3 *gglm.Mat3) {
	m.SetUniform(uniformName, uniforms.Mat3(mat3))
}

func (m *Material) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	m.SetUniform(uniformName, uniforms.Mat4(mat4))
}

// Uniforms returns a new set holding the material textures and every stored
// value. Callers may add per-draw values to it.
func (m *Material) Uniforms() *uniforms.Uniforms {

	u := uniforms.New()

	addTex := func(name string, t *textures.Texture) {
		if t != nil {
			u.Add(name, uniforms.Sampler(t.SampledWith(m.Sampler)))
		}
	}

	addTex("material.diffuse", m.DiffuseTex)
	addTex("material.specular", m.SpecularTex)
	addTex("material.normal", m.NormalTex)
	addTex("material.emission", m.EmissionTex)
	addTex("cubemap", m.CubemapTex)
	u.Add("material.shininess", uniforms.Float(m.Shininess))

	m.unifs.Visit(func(name string, v uniforms.Value) {
		u.Add(name, v)
	})

	return u
}

// Delete deletes the program. Textures are shared and left alone.
func (m *Material) Delete(cc *glcontext.CommandContext) error {
	return m.Program.Delete(cc)
}

func getNewMatId() uint32 {
	lastMatId++
	return lastMatId
}

// NewMaterial loads a combined shader file. defaults may be nil.
func NewMaterial(cc *glcontext.CommandContext, matName, shaderPath string, defaults *DefaultTextures) (*Material, error) {

	prog, err := shaders.LoadAndCompileCombinedShader(cc, shaderPath)
	if err != nil {
		return nil, fmt.Errorf("materials: failed to create material '%s': %w", matName, err)
	}

	return newMaterial(matName, prog, defaults), nil
}

func NewMaterialSrc(cc *glcontext.CommandContext, matName string, shaderSrc []byte, defaults *DefaultTextures) (*Material, error) {

	prog, err := shaders.LoadAndCompileCombinedShaderSrc(cc, shaderSrc)
	if err != nil {
		return nil, fmt.Errorf("materials: failed to create material '%s': %w", matName, err)
	}

	return newMaterial(matName, prog, defaults), nil
}

// NewMaterialFromProgram wraps an existing program
func NewMaterialFromProgram(matName string, prog *shaders.Program, defaults *DefaultTextures) *Material {
	return newMaterial(matName, prog, defaults)
}

func newMaterial(matName string, prog *shaders.Program, defaults *DefaultTextures) *Material {

	m := &Material{
		Id:       getNewMatId(),
		Name:     matName,
		Program:  prog,
		Params:   drawparams.Default(),
		Sampler:  textures.DefaultSamplerBehavior(),
		Settings: MaterialSettings_HasModelMtx,
		unifs:    uniforms.New(),
	}

	if defaults != nil {
		m.DiffuseTex = defaults.Diffuse
		m.SpecularTex = defaults.Specular
		m.NormalTex = defaults.Normal
		m.EmissionTex = defaults.Emission
	}

	return m
}
