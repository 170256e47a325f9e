// Package renderer draws the viewer scene with OpenGL: the ground grid, the
// meshes from the bank and their wireframe edges.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/orbitview/internal/engine/meshbank"
	"github.com/Faultbox/orbitview/internal/engine/shader"
	"github.com/Faultbox/orbitview/internal/engine/uniform"
	"github.com/Faultbox/orbitview/internal/engine/wireframe"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width         int
	Height        int
	ShowWireframe bool
	LineWidth     float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	meshProgram uint32
	edgeProgram uint32
	gridProgram uint32

	edgeViewportLoc  int32
	edgeLineWidthLoc int32
	edgeColorLoc     int32

	cameraBuffer *shader.UniformBuffer
	gridBuffer   *shader.UniformBuffer
	cameraBlock  uniform.CameraUniform
	gridBlock    uniform.GridUniform

	emptyVAO  uint32
	meshes    []*indexedBuffers
	edges     []*indexedBuffers
	highlight *indexedBuffers
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if cfg.LineWidth <= 0 {
		cfg.LineWidth = 1.5
	}
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.MULTISAMPLE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	if err := r.createPrograms(); err != nil {
		r.Close()
		return nil, err
	}

	r.cameraBuffer = shader.NewUniformBuffer(cameraBinding, uniform.CameraBlockSize)
	r.gridBuffer = shader.NewUniformBuffer(gridBinding, uniform.GridBlockSize)

	// Core profile needs a bound VAO even for attribute-less draws.
	gl.GenVertexArrays(1, &r.emptyVAO)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

func (r *Renderer) createPrograms() error {
	var err error
	r.meshProgram, err = shader.CompileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return fmt.Errorf("mesh program: %w", err)
	}
	r.edgeProgram, err = shader.CompileProgram(edgeVertexShader, edgeFragmentShader)
	if err != nil {
		return fmt.Errorf("edge program: %w", err)
	}
	r.gridProgram, err = shader.CompileProgram(gridVertexShader, gridFragmentShader)
	if err != nil {
		return fmt.Errorf("grid program: %w", err)
	}

	bindings := []struct {
		program uint32
		block   string
		binding uint32
	}{
		{r.meshProgram, "Camera", cameraBinding},
		{r.edgeProgram, "Camera", cameraBinding},
		{r.gridProgram, "Grid", gridBinding},
	}
	for _, b := range bindings {
		if err := shader.BindUniformBlock(b.program, b.block, b.binding); err != nil {
			return err
		}
	}

	r.edgeViewportLoc = shader.GetUniform(r.edgeProgram, "uViewport")
	r.edgeLineWidthLoc = shader.GetUniform(r.edgeProgram, "uLineWidth")
	r.edgeColorLoc = shader.GetUniform(r.edgeProgram, "uEdgeColor")

	logger.Debug("shader programs created",
		zap.Uint32("mesh", r.meshProgram),
		zap.Uint32("edge", r.edgeProgram),
		zap.Uint32("grid", r.gridProgram),
	)
	return nil
}

// AddMesh uploads a mesh and, when wireframes are enabled, its edges.
func (r *Renderer) AddMesh(m *meshbank.GPUMesh) error {
	buffers, err := uploadMesh(m)
	if err != nil {
		return fmt.Errorf("upload mesh: %w", err)
	}
	r.meshes = append(r.meshes, buffers)

	if !r.config.ShowWireframe || m.Topology == nil {
		return nil
	}
	edgeMesh, err := wireframe.FromMesh(m.Topology)
	if err != nil {
		return fmt.Errorf("build wireframe: %w", err)
	}
	edges, err := uploadEdges(edgeMesh)
	if err != nil {
		return fmt.Errorf("upload wireframe: %w", err)
	}
	r.edges = append(r.edges, edges)

	logger.Debug("mesh uploaded",
		zap.Int("indices", len(m.Indices)),
		zap.Int("edge_vertices", len(edgeMesh.Vertices)),
	)
	return nil
}

// SetHighlight replaces the highlighted segments, drawn on top of the mesh
// edges. An empty list clears the highlight.
func (r *Renderer) SetHighlight(segments [][2]math.Vec3) error {
	if r.highlight != nil {
		r.highlight.delete()
		r.highlight = nil
	}
	if len(segments) == 0 {
		return nil
	}

	var edgeMesh wireframe.Mesh
	for _, s := range segments {
		if err := edgeMesh.Append(wireframe.FromSegment(s[0], s[1])); err != nil {
			return fmt.Errorf("build highlight: %w", err)
		}
	}
	buffers, err := uploadEdges(edgeMesh)
	if err != nil {
		return fmt.Errorf("upload highlight: %w", err)
	}
	r.highlight = buffers
	return nil
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// SetCamera refreshes the uniform blocks from the camera. When the camera's
// view-projection matrix cannot be inverted the grid keeps its previous
// matrices and the error is returned; the frame can still be drawn.
func (r *Renderer) SetCamera(cam uniform.Source) error {
	r.cameraBlock.Update(cam)
	if err := r.cameraBuffer.Update(r.cameraBlock.Bytes()); err != nil {
		return err
	}

	gridErr := r.gridBlock.Update(cam)
	if err := r.gridBuffer.Update(r.gridBlock.Bytes()); err != nil {
		return err
	}
	return gridErr
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, b := range r.meshes {
		b.delete()
	}
	for _, b := range r.edges {
		b.delete()
	}
	if r.highlight != nil {
		r.highlight.delete()
	}
	if r.emptyVAO != 0 {
		gl.DeleteVertexArrays(1, &r.emptyVAO)
	}
	if r.cameraBuffer != nil {
		r.cameraBuffer.Delete()
	}
	if r.gridBuffer != nil {
		r.gridBuffer.Delete()
	}
	for _, p := range []uint32{r.meshProgram, r.edgeProgram, r.gridProgram} {
		if p != 0 {
			gl.DeleteProgram(p)
		}
	}
}

// Resize handles window resize. width and height are in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders meshes, their edges and then the grid.
func (r *Renderer) Draw() {
	gl.UseProgram(r.meshProgram)
	for _, m := range r.meshes {
		m.draw()
	}

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)

	if len(r.edges) > 0 || r.highlight != nil {
		gl.Disable(gl.CULL_FACE)
		gl.UseProgram(r.edgeProgram)
		gl.Uniform2f(r.edgeViewportLoc, float32(r.config.Width), float32(r.config.Height))
		gl.Uniform1f(r.edgeLineWidthLoc, r.config.LineWidth)
		gl.Uniform3f(r.edgeColorLoc, 0.05, 0.05, 0.05)
		for _, e := range r.edges {
			e.draw()
		}
		if r.highlight != nil {
			gl.Uniform3f(r.edgeColorLoc, 1.0, 0.6, 0.1)
			r.highlight.draw()
		}
		gl.Enable(gl.CULL_FACE)
	}

	gl.Disable(gl.CULL_FACE)
	gl.UseProgram(r.gridProgram)
	gl.BindVertexArray(r.emptyVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.Enable(gl.CULL_FACE)

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}
