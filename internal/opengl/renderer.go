package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"randscene/core"
	"randscene/math"
	"randscene/scene"
)

// maxPointLights bounds the point-light uniform arrays.
const maxPointLights = 4

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Renderer is the OpenGL rendering backend.
type Renderer struct {
	program uint32

	// Vertex transform uniforms
	mvpLoc   int32
	modelLoc int32

	// Lighting uniforms
	ambientColorLoc        int32
	pointLightCountLoc     int32
	pointLightPosLoc       [maxPointLights]int32
	pointLightColorLoc     [maxPointLights]int32
	pointLightIntensityLoc [maxPointLights]int32
	pointLightDistanceLoc  [maxPointLights]int32
	cameraPosLoc           int32

	// Material uniforms
	diffuseLoc         int32
	hasEnvMapLoc       int32
	envMapLoc          int32
	refractLoc         int32
	refractionRatioLoc int32
	combineLoc         int32
	reflectivityLoc    int32

	viewportW int32
	viewportH int32

	gpuMeshes map[*scene.Mesh]*GPUMesh
}

// ── Shaders ───────────────────────────────────────────────────────────────────

const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 mvp;
uniform mat4 model;

out vec3 fragNormal;
out vec3 fragWorldPos;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    fragWorldPos  = worldPos.xyz;
    fragNormal    = mat3(transpose(inverse(model))) * inNormal;
    gl_Position   = mvp * vec4(inPosition, 1.0);
}
` + "\x00"

// Lambert diffuse from ambient + point lights, then the environment sample
// combined per material (0 multiply, 1 mix, 2 add).
const fragSrc = `
#version 410 core
in vec3 fragNormal;
in vec3 fragWorldPos;

out vec4 outColor;

uniform vec3 ambientColor;
uniform int  pointLightCount;
uniform vec3 pointLightPos[4];
uniform vec3 pointLightColor[4];
uniform float pointLightIntensity[4];
uniform float pointLightDistance[4];
uniform vec3 cameraPos;

uniform vec3 diffuse;
uniform bool hasEnvMap;
uniform samplerCube envMap;
uniform bool refractMode;
uniform float refractionRatio;
uniform int combine;
uniform float reflectivity;

void main() {
    vec3 n = normalize(fragNormal);
    vec3 irradiance = ambientColor;
    for (int i = 0; i < pointLightCount; i++) {
        vec3 toLight = pointLightPos[i] - fragWorldPos;
        float dist = length(toLight);
        float atten = 1.0;
        if (pointLightDistance[i] > 0.0) {
            atten = clamp(1.0 - dist / pointLightDistance[i], 0.0, 1.0);
        }
        float ndl = max(dot(n, toLight / max(dist, 1e-4)), 0.0);
        irradiance += pointLightColor[i] * pointLightIntensity[i] * ndl * atten;
    }
    vec3 color = diffuse * irradiance;

    if (hasEnvMap) {
        vec3 incident = normalize(fragWorldPos - cameraPos);
        vec3 dir = refractMode ? refract(incident, n, refractionRatio) : reflect(incident, n);
        vec3 env = texture(envMap, vec3(-dir.x, dir.yz)).rgb;
        if (combine == 1) {
            color = mix(color, env, reflectivity);
        } else if (combine == 2) {
            color += env * reflectivity;
        } else {
            color = mix(color, color * env, reflectivity);
        }
    }
    outColor = vec4(color, 1.0);
}
` + "\x00"

// ── NewRenderer ───────────────────────────────────────────────────────────────

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("main shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)

	r := &Renderer{
		program: prog,

		mvpLoc:   gl.GetUniformLocation(prog, gl.Str("mvp\x00")),
		modelLoc: gl.GetUniformLocation(prog, gl.Str("model\x00")),

		ambientColorLoc:    gl.GetUniformLocation(prog, gl.Str("ambientColor\x00")),
		pointLightCountLoc: gl.GetUniformLocation(prog, gl.Str("pointLightCount\x00")),
		cameraPosLoc:       gl.GetUniformLocation(prog, gl.Str("cameraPos\x00")),

		diffuseLoc:         gl.GetUniformLocation(prog, gl.Str("diffuse\x00")),
		hasEnvMapLoc:       gl.GetUniformLocation(prog, gl.Str("hasEnvMap\x00")),
		envMapLoc:          gl.GetUniformLocation(prog, gl.Str("envMap\x00")),
		refractLoc:         gl.GetUniformLocation(prog, gl.Str("refractMode\x00")),
		refractionRatioLoc: gl.GetUniformLocation(prog, gl.Str("refractionRatio\x00")),
		combineLoc:         gl.GetUniformLocation(prog, gl.Str("combine\x00")),
		reflectivityLoc:    gl.GetUniformLocation(prog, gl.Str("reflectivity\x00")),

		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
	}

	for i := 0; i < maxPointLights; i++ {
		r.pointLightPosLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("pointLightPos[%d]\x00", i)))
		r.pointLightColorLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("pointLightColor[%d]\x00", i)))
		r.pointLightIntensityLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("pointLightIntensity[%d]\x00", i)))
		r.pointLightDistanceLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("pointLightDistance[%d]\x00", i)))
	}

	// Environment cube map lives on texture unit 0
	gl.UseProgram(prog)
	gl.Uniform1i(r.envMapLoc, 0)

	return r, nil
}

// ── Viewport ──────────────────────────────────────────────────────────────────

// SetViewport sets the OpenGL viewport in framebuffer pixels.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Viewport returns the current viewport size in framebuffer pixels.
func (r *Renderer) Viewport() (int, int) {
	return int(r.viewportW), int(r.viewportH)
}

// ── BeginFrame ────────────────────────────────────────────────────────────────

// BeginFrame clears to the background color and sets the per-frame lighting
// and camera uniforms. Point lights beyond maxPointLights are ignored.
func (r *Renderer) BeginFrame(background, ambient core.Color, points []*scene.Light, camPos math.Vec3) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ClearColor(background.R, background.G, background.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.Uniform3f(r.ambientColorLoc, ambient.R, ambient.G, ambient.B)
	gl.Uniform3f(r.cameraPosLoc, camPos.X, camPos.Y, camPos.Z)

	count := 0
	for _, l := range points {
		if l == nil || count >= maxPointLights {
			continue
		}
		gl.Uniform3f(r.pointLightPosLoc[count], l.Position.X, l.Position.Y, l.Position.Z)
		gl.Uniform3f(r.pointLightColorLoc[count], l.Color.R, l.Color.G, l.Color.B)
		gl.Uniform1f(r.pointLightIntensityLoc[count], l.Intensity)
		gl.Uniform1f(r.pointLightDistanceLoc[count], l.Distance)
		count++
	}
	gl.Uniform1i(r.pointLightCountLoc, int32(count))
}

// ── DrawMesh ──────────────────────────────────────────────────────────────────

// DrawMesh draws a mesh with the given material, MVP and model matrices.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, mat *scene.Material, mvp, model math.Mat4) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, (*float32)(unsafe.Pointer(&mvp[0][0])))
	gl.UniformMatrix4fv(r.modelLoc, 1, false, (*float32)(unsafe.Pointer(&model[0][0])))

	if mat == nil {
		mat = scene.NewLambertMaterial("default", core.ColorWhite)
	}
	r.applyMaterial(mat)

	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// applyMaterial sets the material uniforms. An environment map contributes
// only once its cube texture is on the GPU.
func (r *Renderer) applyMaterial(mat *scene.Material) {
	gl.Uniform3f(r.diffuseLoc, mat.Color.R, mat.Color.G, mat.Color.B)

	env := mat.EnvMap
	if env == nil || env.GLID == 0 {
		gl.Uniform1i(r.hasEnvMapLoc, 0)
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, env.GLID)
	gl.Uniform1i(r.hasEnvMapLoc, 1)
	refract := int32(0)
	if env.Mapping == scene.CubeRefraction {
		refract = 1
	}
	gl.Uniform1i(r.refractLoc, refract)
	gl.Uniform1f(r.refractionRatioLoc, mat.RefractionRatio)
	gl.Uniform1i(r.combineLoc, int32(mat.Combine))
	gl.Uniform1f(r.reflectivityLoc, mat.Reflectivity)
}

// ── Resource management ───────────────────────────────────────────────────────

// ReleaseMesh frees GPU buffers for the given mesh.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		gl.DeleteBuffers(1, &gpu.EBO)
		delete(r.gpuMeshes, mesh)
		mesh.GPUData = nil
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	gl.DeleteProgram(r.program)
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// ensureUploaded uploads vertex/index data if not already done.
func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gpu := &GPUMesh{IndexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
		len(mesh.Indices)*4,
		gl.Ptr(mesh.Indices),
		gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
