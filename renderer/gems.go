package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glint/particles"
	"github.com/pthm-cable/glint/scene"
)

// maxLights must match MAX_LIGHTS in gem.fs.
const maxLights = 4

// Material holds the surface response of one palette color.
type Material struct {
	Metalness float32
	Roughness float32
	Emissive  float32
}

// gemMaterial is the shared polished, faintly self-lit surface.
var gemMaterial = Material{Metalness: 0.9, Roughness: 0.15, Emissive: 0.2}

// DefaultMaterials returns the same polished surface for every palette color.
func DefaultMaterials() [particles.NumPaletteColors]Material {
	var m [particles.NumPaletteColors]Material
	for c := range m {
		m[c] = gemMaterial
	}
	return m
}

// Fog is linear distance fog blended toward Color.
type Fog struct {
	Color     color.RGBA
	Near, Far float32
}

// GemRenderer draws every particle as an instanced low-poly sphere, one
// draw call per palette color.
type GemRenderer struct {
	shader   rl.Shader
	mesh     rl.Mesh
	material rl.Material

	ambientLoc    int32
	lightCountLoc int32
	lightPosLoc   int32
	lightColorLoc int32
	lightRangeLoc int32
	metalLoc      int32
	roughLoc      int32
	emissiveLoc   int32
	fogColorLoc   int32
	fogNearLoc    int32
	fogFarLoc     int32

	palette   particles.Palette
	materials [particles.NumPaletteColors]Material
	fog       Fog

	groups  [particles.NumPaletteColors][]int
	batches [particles.NumPaletteColors][]rl.Matrix

	// Light uniforms, rebuilt by SetLights
	ambient    [3]float32
	lightCount int32
	lightPos   []float32
	lightColor []float32
	lightRange []float32

	initialized bool
}

// NewGemRenderer creates a gem renderer for the given particles.
func NewGemRenderer(ps []particles.Particle, palette particles.Palette, fog Fog) *GemRenderer {
	r := &GemRenderer{
		palette:    palette,
		materials:  DefaultMaterials(),
		fog:        fog,
		groups:     particles.GroupByColor(ps),
		lightPos:   make([]float32, 3*maxLights),
		lightColor: make([]float32, 3*maxLights),
		lightRange: make([]float32, maxLights),
	}
	for c := range r.groups {
		r.batches[c] = make([]rl.Matrix, len(r.groups[c]))
	}
	return r
}

// Init loads the shader and mesh (must be called after raylib window is created).
func (r *GemRenderer) Init() {
	if r.initialized {
		return
	}

	r.shader = rl.LoadShaderFromMemory(shaderSource("gem.vs"), shaderSource("gem.fs"))
	r.shader.UpdateLocation(rl.ShaderLocMatrixMvp, rl.GetShaderLocation(r.shader, "mvp"))
	r.shader.UpdateLocation(rl.ShaderLocVectorView, rl.GetShaderLocation(r.shader, "viewPos"))
	r.shader.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocationAttrib(r.shader, "instanceTransform"))

	r.ambientLoc = rl.GetShaderLocation(r.shader, "ambient")
	r.lightCountLoc = rl.GetShaderLocation(r.shader, "lightCount")
	r.lightPosLoc = rl.GetShaderLocation(r.shader, "lightPos")
	r.lightColorLoc = rl.GetShaderLocation(r.shader, "lightColor")
	r.lightRangeLoc = rl.GetShaderLocation(r.shader, "lightRange")
	r.metalLoc = rl.GetShaderLocation(r.shader, "metalness")
	r.roughLoc = rl.GetShaderLocation(r.shader, "roughness")
	r.emissiveLoc = rl.GetShaderLocation(r.shader, "emissive")
	r.fogColorLoc = rl.GetShaderLocation(r.shader, "fogColor")
	r.fogNearLoc = rl.GetShaderLocation(r.shader, "fogNear")
	r.fogFarLoc = rl.GetShaderLocation(r.shader, "fogFar")

	r.uploadFog()

	// Low-poly sphere reads as a faceted gem
	r.mesh = rl.GenMeshSphere(1, 4, 6)
	r.material = rl.LoadMaterialDefault()
	r.material.Shader = r.shader

	r.initialized = true
}

// SetPalette replaces the batch colors.
func (r *GemRenderer) SetPalette(palette particles.Palette) {
	r.palette = palette
}

// SetFog replaces the fog parameters.
func (r *GemRenderer) SetFog(fog Fog) {
	r.fog = fog
	if r.initialized {
		r.uploadFog()
	}
}

func (r *GemRenderer) uploadFog() {
	fogColor := rgb(r.fog.Color)
	rl.SetShaderValue(r.shader, r.fogColorLoc, fogColor[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(r.shader, r.fogNearLoc, []float32{r.fog.Near}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.shader, r.fogFarLoc, []float32{r.fog.Far}, rl.ShaderUniformFloat)
}

// SetLights converts the rig snapshot into shader uniforms. Ambient lights
// are summed; point and spot lights beyond maxLights are ignored.
func (r *GemRenderer) SetLights(lights []scene.Light) {
	r.ambient = [3]float32{}
	r.lightCount = 0
	for _, l := range lights {
		c := rgb(l.Color)
		if l.Kind == scene.LightAmbient {
			for k := range r.ambient {
				r.ambient[k] += c[k] * l.Intensity
			}
			continue
		}
		if r.lightCount >= maxLights {
			continue
		}
		i := int(r.lightCount)
		r.lightPos[3*i] = float32(l.Position.X)
		r.lightPos[3*i+1] = float32(l.Position.Y)
		r.lightPos[3*i+2] = float32(l.Position.Z)
		for k := 0; k < 3; k++ {
			r.lightColor[3*i+k] = c[k] * l.Intensity
		}
		r.lightRange[i] = l.Distance
		r.lightCount++
	}
}

// Draw renders all gems. Must be called between BeginMode3D and EndMode3D
// with the camera whose position is given.
func (r *GemRenderer) Draw(cameraPos rl.Vector3, transforms []particles.Transform) {
	if !r.initialized {
		r.Init()
	}

	rl.SetShaderValue(r.shader, r.shader.GetLocation(rl.ShaderLocVectorView),
		[]float32{cameraPos.X, cameraPos.Y, cameraPos.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(r.shader, r.ambientLoc, r.ambient[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(r.shader, r.lightCountLoc, []float32{float32(r.lightCount)}, rl.ShaderUniformFloat)
	if r.lightCount > 0 {
		rl.SetShaderValueV(r.shader, r.lightPosLoc, r.lightPos, rl.ShaderUniformVec3, r.lightCount)
		rl.SetShaderValueV(r.shader, r.lightColorLoc, r.lightColor, rl.ShaderUniformVec3, r.lightCount)
		rl.SetShaderValueV(r.shader, r.lightRangeLoc, r.lightRange, rl.ShaderUniformFloat, r.lightCount)
	}

	for c := range r.groups {
		idx := r.groups[c]
		if len(idx) == 0 {
			continue
		}
		batch := r.batches[c]
		for j, i := range idx {
			if i >= len(transforms) {
				batch = batch[:j]
				break
			}
			batch[j] = InstanceMatrix(transforms[i])
		}
		if len(batch) == 0 {
			continue
		}

		m := r.materials[c]
		rl.SetShaderValue(r.shader, r.metalLoc, []float32{m.Metalness}, rl.ShaderUniformFloat)
		rl.SetShaderValue(r.shader, r.roughLoc, []float32{m.Roughness}, rl.ShaderUniformFloat)
		rl.SetShaderValue(r.shader, r.emissiveLoc, []float32{m.Emissive}, rl.ShaderUniformFloat)
		r.material.GetMap(rl.MapDiffuse).Color = rl.Color(r.palette[c])

		rl.DrawMeshInstanced(r.mesh, r.material, batch, len(batch))
	}
}

// InstanceMatrix composes scale, then XYZ rotation, then translation.
func InstanceMatrix(t particles.Transform) rl.Matrix {
	s := float32(t.Scale)
	m := rl.MatrixMultiply(
		rl.MatrixScale(s, s, s),
		rl.MatrixRotateXYZ(rl.Vector3{X: float32(t.Rotation.X), Y: float32(t.Rotation.Y), Z: float32(t.Rotation.Z)}),
	)
	return rl.MatrixMultiply(m, rl.MatrixTranslate(float32(t.Position.X), float32(t.Position.Y), float32(t.Position.Z)))
}

// Unload frees GPU resources.
func (r *GemRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadMesh(&r.mesh)
	// Also unloads the shader
	rl.UnloadMaterial(r.material)
	r.initialized = false
}
