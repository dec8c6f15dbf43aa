package main

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/ngl/buffers"
	"github.com/bloeys/ngl/drawparams"
	"github.com/bloeys/ngl/framebuffer"
	"github.com/bloeys/ngl/gl/glnative"
	"github.com/bloeys/ngl/glcontext"
	"github.com/bloeys/ngl/logging"
	"github.com/bloeys/ngl/materials"
	"github.com/bloeys/ngl/meshes"
	"github.com/bloeys/ngl/renderer"
	"github.com/bloeys/ngl/renderer/rend3dgl"
	"github.com/bloeys/ngl/textures"
)

const quadShaderSrc = `//shader:vertex
#version 330 core
in vec3 pos;
in vec2 uv0;
uniform mat4 modelMat;
out vec2 uv;
void main() {
	uv = uv0;
	gl_Position = modelMat * vec4(pos, 1.0);
}

//shader:fragment
#version 330 core
struct Material { sampler2D diffuse; };
uniform Material material;
in vec2 uv;
out vec4 fragColor;
void main() {
	fragColor = texture(material.diffuse, uv);
}
`

const modelShaderSrc = `//shader:vertex
#version 330 core
in vec3 pos;
in vec3 normal;
in vec2 uv0;
uniform mat4 modelMat;
uniform mat3 normalMat;
out vec3 fragNormal;
out vec2 uv;
void main() {
	fragNormal = normalMat * normal;
	uv = uv0;
	gl_Position = modelMat * vec4(pos, 1.0);
}

//shader:fragment
#version 330 core
struct Material { sampler2D diffuse; float shininess; };
uniform Material material;
in vec3 fragNormal;
in vec2 uv;
out vec4 fragColor;
void main() {
	float light = max(dot(normalize(fragNormal), normalize(vec3(0.3, 0.8, 0.5))), 0.15);
	fragColor = vec4(texture(material.diffuse, uv).rgb * light, 1.0);
}
`

var quadVerts = []float32{
	// pos, uv0
	-0.5, -0.5, 0, 0, 0,
	0.5, -0.5, 0, 1, 0,
	0.5, 0.5, 0, 1, 1,
	-0.5, 0.5, 0, 0, 1,
}

var quadIndices = []uint32{0, 1, 2, 2, 3, 0}

// demoScene owns every GL object the demo creates
type demoScene struct {
	cfg  *DemoConfig
	rend *rend3dgl.Rend3DGL

	defaults *materials.DefaultTextures
	quadTex  *textures.Texture
	quadMat  *materials.Material
	quadVbo  *buffers.VertexBuffer
	quadIbo  *buffers.IndexBuffer

	mesh    *meshes.Mesh
	meshMat *materials.Material

	// Offscreen target the scene is drawn into before being blitted
	offscreenColor *textures.Texture
	offscreenDepth *textures.Renderbuffer
	offscreen      *framebuffer.SimpleFramebuffer

	quadModel gglm.TrMat
	meshModel gglm.TrMat

	start time.Time
}

func renderLoop(win window, cfg *DemoConfig) error {

	fns, err := glnative.New(win.GetProcAddress)
	if err != nil {
		return fmt.Errorf("ngldemo: failed to load OpenGL functions: %w", err)
	}

	ctx, err := glcontext.New(win, fns, cfg.GL)
	if err != nil {
		return err
	}

	logCapabilities(ctx)

	display := renderer.NewDisplay(ctx, framebuffer.DefaultFramebufferOptions{
		Depth:   cfg.Window.Depth,
		Stencil: cfg.Window.Stencil,
		Srgb:    cfg.Window.Srgb,
	})

	scene := &demoScene{
		cfg:       cfg,
		rend:      &rend3dgl.Rend3DGL{},
		quadModel: gglm.NewTrMatId(),
		meshModel: gglm.NewTrMatId(),
		start:     time.Now(),
	}

	if err := ctx.Exec(scene.Init); err != nil {
		return errors.Join(err, ctx.Exec(scene.DeInit), ctx.Close())
	}

	var loopErr error
	for !win.ShouldClose() {

		win.PollEvents()

		frame := display.Draw()
		loopErr = ctx.Exec(func(cc *glcontext.CommandContext) error {
			return scene.Render(cc, frame)
		})
		if loopErr != nil {
			break
		}

		if loopErr = frame.Finish(); loopErr != nil {
			break
		}

		scene.rend.FrameEnd()
	}

	return errors.Join(loopErr, ctx.Exec(scene.DeInit), ctx.Close())
}

func logCapabilities(ctx *glcontext.Context) {

	caps := ctx.Capabilities()
	logging.InfoLog.Printf(
		"OpenGL %d.%d (%s profile), GLSL %d.%d\nVendor: %s\nRenderer: %s\nMax texture size: %d, max color attachments: %d, max samples: %d\n",
		caps.Version.Major, caps.Version.Minor, caps.Profile,
		caps.GLSLVersion.Major, caps.GLSLVersion.Minor,
		caps.Vendor, caps.Renderer,
		caps.Limits.MaxTextureSize, caps.Limits.MaxColorAttachments, caps.Limits.MaxSamples,
	)

	if !caps.SupportsDebugOutput() && ctx.Config().DebugOutput {
		logging.WarnLog.Println("Debug output was requested but the context does not support it")
	}
}

func (s *demoScene) Init(cc *glcontext.CommandContext) (err error) {

	s.defaults, err = materials.NewDefaultTextures(cc)
	if err != nil {
		return err
	}

	s.quadMat, err = materials.NewMaterialSrc(cc, "quad", []byte(quadShaderSrc), s.defaults)
	if err != nil {
		return err
	}

	if s.cfg.Texture != "" {
		s.quadTex, err = textures.LoadTexture2D(cc, s.cfg.Texture, textures.LoadOptions{})
	} else {
		img := checkerboard(64, 8)
		s.quadTex, err = textures.NewTexture2D(cc, img.Format, img.Width, img.Height, textures.NoMipmaps, &img)
	}
	if err != nil {
		return err
	}
	s.quadMat.DiffuseTex = s.quadTex

	s.quadVbo, err = buffers.NewVertexBuffer(cc, quadVerts, buffers.BufferMode_Immutable,
		buffers.Element{Name: "pos", ElementType: buffers.DataTypeVec3},
		buffers.Element{Name: "uv0", ElementType: buffers.DataTypeVec2},
	)
	if err != nil {
		return err
	}

	s.quadIbo, err = buffers.NewIndexBuffer(cc, buffers.Primitive_Triangles, quadIndices)
	if err != nil {
		return err
	}

	if s.cfg.Model != "" {

		s.mesh, err = meshes.NewMesh(cc, "model", s.cfg.Model, 0)
		if err != nil {
			return err
		}

		s.meshMat, err = materials.NewMaterialSrc(cc, "model", []byte(modelShaderSrc), s.defaults)
		if err != nil {
			return err
		}

		s.meshMat.Settings.Set(materials.MaterialSettings_HasNormalMtx)
		s.meshMat.Params.Depth.Test = drawparams.DepthTest_IfLess
		s.meshMat.Params.Depth.Write = true
		s.meshMat.Params.BackfaceCulling = drawparams.BackfaceCulling_Clockwise
		s.meshMat.DiffuseTex = s.quadTex
	}

	width, height := cc.Context().FramebufferDimensions()
	return s.resizeOffscreen(cc, int(width), int(height))
}

// resizeOffscreen recreates the offscreen target when the window size changes
func (s *demoScene) resizeOffscreen(cc *glcontext.CommandContext, width, height int) (err error) {

	if width <= 0 || height <= 0 {
		return nil
	}

	if s.offscreen != nil {

		w, h := s.offscreen.Dimensions()
		if w == width && h == height {
			return nil
		}

		if err := s.deleteOffscreen(cc); err != nil {
			return err
		}
	}

	s.offscreenColor, err = textures.NewTexture2D(cc, textures.Format_RGBA8, width, height, textures.NoMipmaps, nil)
	if err != nil {
		return err
	}

	s.offscreenDepth, err = textures.NewDepthRenderbuffer(cc, textures.Format_Depth24, width, height)
	if err != nil {
		return err
	}

	s.offscreen, err = framebuffer.NewSimpleFramebuffer(cc,
		framebuffer.TextureLevel(s.offscreenColor),
		framebuffer.DepthStencil{Depth: framebuffer.RenderbufferAttachment(s.offscreenDepth)},
	)
	return err
}

func (s *demoScene) deleteOffscreen(cc *glcontext.CommandContext) error {

	var errs []error
	if s.offscreenColor != nil {
		errs = append(errs, s.offscreenColor.Delete(cc))
	}
	if s.offscreenDepth != nil {
		errs = append(errs, s.offscreenDepth.Delete(cc))
	}

	s.offscreen, s.offscreenColor, s.offscreenDepth = nil, nil, nil
	return errors.Join(errs...)
}

func (s *demoScene) Render(cc *glcontext.CommandContext, frame *renderer.Frame) error {

	width, height := frame.Dimensions()
	if err := s.resizeOffscreen(cc, width, height); err != nil {
		return err
	}

	// Minimized windows have nothing to draw into
	if s.offscreen == nil {
		return nil
	}

	t := float32(time.Since(s.start).Seconds())
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}

	setRotationY(&s.quadModel, t*0.5, 1.2, aspect)
	setRotationY(&s.meshModel, t, 0.5, aspect)

	if err := s.offscreen.Clear(cc, framebuffer.ClearAll(0.1, 0.1, 0.15, 1)); err != nil {
		return err
	}

	s.quadMat.SetUnifMat4("modelMat", &s.quadModel.Mat4)
	err := s.rend.DrawVertices(cc, s.offscreen, s.quadMat, framebuffer.VertexBuffers(s.quadVbo), s.quadIbo.Indices())
	if err != nil {
		return err
	}

	if s.mesh != nil {
		if err := s.rend.DrawMesh(cc, s.offscreen, s.mesh, &s.meshModel, s.meshMat); err != nil {
			return err
		}
	}

	return frame.FillFrom(cc, s.offscreen, textures.MagnifyFilter_Linear)
}

func (s *demoScene) DeInit(cc *glcontext.CommandContext) error {

	var errs []error
	errs = append(errs, s.deleteOffscreen(cc))

	if s.mesh != nil {
		errs = append(errs, s.mesh.Delete(cc))
	}
	if s.meshMat != nil {
		errs = append(errs, s.meshMat.Delete(cc))
	}
	if s.quadVbo != nil {
		errs = append(errs, s.quadVbo.Delete(cc))
	}
	if s.quadIbo != nil {
		errs = append(errs, s.quadIbo.Delete(cc))
	}
	if s.quadMat != nil {
		errs = append(errs, s.quadMat.Delete(cc))
	}
	if s.quadTex != nil {
		errs = append(errs, s.quadTex.Delete(cc))
	}
	if s.defaults != nil {
		errs = append(errs, s.defaults.Delete(cc))
	}

	*s = demoScene{cfg: s.cfg, rend: s.rend}
	return errors.Join(errs...)
}

// setRotationY writes a rotation of angle radians around Y, scaled by scale
// and corrected for the aspect ratio, into m
func setRotationY(m *gglm.TrMat, angle, scale, aspect float32) {

	sin := float32(math.Sin(float64(angle)))
	cos := float32(math.Cos(float64(angle)))

	m.Data = [4][4]float32{
		{cos * scale / aspect, 0, -sin * scale, 0},
		{0, scale, 0, 0},
		{sin * scale / aspect, 0, cos * scale, 0},
		{0, 0, 0, 1},
	}
}

// checkerboard is an RGBA8 image of size*size pixels in cells of cell pixels
func checkerboard(size, cell int) textures.RawImage {

	img := textures.NewRawImage(textures.Format_RGBA8, size, size, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {

			var c byte = 60
			if (x/cell+y/cell)%2 == 0 {
				c = 220
			}

			i := (y*size + x) * 4
			img.Data[i], img.Data[i+1], img.Data[i+2], img.Data[i+3] = c, c, c, 255
		}
	}

	return img
}
