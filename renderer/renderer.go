package renderer

import (
	"fmt"
	"image"

	"randscene/core"
	"randscene/internal/opengl"
	"randscene/scene"
)

// RenderEngine is the high-level renderer that drives the OpenGL backend.
type RenderEngine struct {
	gl             *opengl.Renderer
	window         *core.Window
	Scene          *scene.Scene
	FrustumCulling bool

	// Cube textures already handed to the GPU (or rejected by it)
	uploaded map[*scene.CubeTexture]bool

	// Per-frame stats (populated during Render)
	lastObjects   int
	lastTriangles int
	lastCulled    int
}

// NewRenderEngine creates the GL backend and sizes the viewport to the
// window's framebuffer, so high-DPI displays render at full resolution.
func NewRenderEngine(window *core.Window) (*RenderEngine, error) {
	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	fbw, fbh := window.GetFramebufferSize()
	glRenderer.SetViewport(fbw, fbh)

	fmt.Printf("Render engine initialized (OpenGL, %dx%d, pixel ratio %.2f)\n", fbw, fbh, window.PixelRatio())
	return &RenderEngine{
		gl:             glRenderer,
		window:         window,
		FrustumCulling: true,
		uploaded:       make(map[*scene.CubeTexture]bool),
	}, nil
}

func (re *RenderEngine) SetScene(s *scene.Scene) {
	re.Scene = s
}

// OutputSize is the size of the drawn frame in framebuffer pixels.
func (re *RenderEngine) OutputSize() (int, int) {
	return re.gl.Viewport()
}

// Render draws one frame of the scene into the back buffer. Scene data is
// only read; environment maps that finished decoding since the last frame
// are uploaded first.
func (re *RenderEngine) Render() error {
	if re.Scene == nil || re.Scene.Camera == nil {
		return fmt.Errorf("no scene or camera")
	}

	re.syncEnvironmentMaps()

	cam := re.Scene.Camera
	re.gl.BeginFrame(re.Scene.Background, re.Scene.AmbientLight(), re.Scene.PointLights(), cam.Position)

	view := cam.GetViewMatrix()
	proj := cam.GetProjectionMatrix()

	nodes := re.Scene.GetVisibleNodes()
	visible := nodes
	if re.FrustumCulling {
		visible = re.Scene.NodesInFrustum(view.Mul(proj))
	}

	triangles := 0
	for _, node := range visible {
		mesh := node.Geometry.Mesh
		if mesh == nil {
			continue
		}
		model := node.GetWorldMatrix()
		mvp := model.Mul(view).Mul(proj)
		re.gl.DrawMesh(mesh, node.Material, mvp, model)
		triangles += mesh.TriangleCount()
	}

	re.lastObjects = len(visible)
	re.lastTriangles = triangles
	re.lastCulled = len(nodes) - len(visible)
	return nil
}

// syncEnvironmentMaps uploads each loaded cube texture once. Pending maps
// are retried next frame; failed ones are never uploaded.
func (re *RenderEngine) syncEnvironmentMaps() {
	for _, cube := range re.Scene.EnvironmentMaps() {
		if re.uploaded[cube] || cube.Status() != scene.TextureLoaded {
			continue
		}
		re.uploaded[cube] = true
		if err := opengl.UploadCubeTexture(cube); err != nil {
			fmt.Printf("[Texture] upload %s map: %v\n", cube.Mapping, err)
			continue
		}
		fmt.Printf("[Texture] %s map ready (%s)\n", cube.Mapping, cube.Paths[0])
	}
}

// Capture reads back the frame last drawn by Render. Call it before Present;
// rows are bottom-up as stored by OpenGL.
func (re *RenderEngine) Capture() *image.RGBA {
	w, h := re.gl.Viewport()
	return opengl.ReadPixels(w, h)
}

// Present swaps the back buffer to the screen.
func (re *RenderEngine) Present() {
	re.window.SwapBuffers()
}

func (re *RenderEngine) Destroy() {
	for cube := range re.uploaded {
		opengl.DeleteCubeTexture(cube)
	}
	re.gl.Destroy()
}

// DrawStats returns stats from the most recent Render call.
func (re *RenderEngine) DrawStats() (objects, triangles, culled int) {
	return re.lastObjects, re.lastTriangles, re.lastCulled
}
