package primitives

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"cosmic-playground/internal/shapes"
)

// cached holds mesh and material for a shape type. Created lazily on first Draw.
// modelOffset recenters meshes raylib generates with their base at Y=0.
type cached struct {
	mesh        rl.Mesh
	mtl         rl.Material
	modelOffset float32
}

// Registry maps shape types to mesh+material. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache    map[shapes.Type]cached
	shader   rl.Shader
	loaded   bool
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no meshes.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[shapes.Type]cached),
		lightDir: [3]float32{0.5, 1, 0.5}, // default: from above-right
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing shapes so they get correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// Mesh resolution.
const (
	sphereRings   = 16
	sphereSlices  = 16
	cylinderSides = 24
	pyramidSides  = 4
)

// ensure creates the mesh and material for t if not yet cached. All types share
// one lit shader; the albedo color is set per draw.
func (r *Registry) ensure(t shapes.Type) (cached, bool) {
	if c, ok := r.cache[t]; ok {
		return c, true
	}
	if !r.loaded {
		r.shader = loadLitShader()
		r.loaded = true
	}
	var c cached
	switch t {
	case shapes.Box:
		c.mesh = rl.GenMeshCube(1, 1, 1)
	case shapes.Sphere:
		// Radius 0.5 so diameter = 1, matching the box side at the same scale.
		c.mesh = rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	case shapes.Cylinder:
		c.mesh = rl.GenMeshCylinder(0.5, 1, cylinderSides)
		c.modelOffset = -0.5
	case shapes.Pyramid:
		// A four-sided cone is a square pyramid.
		c.mesh = rl.GenMeshCone(0.5, 1, pyramidSides)
		c.modelOffset = -0.5
	default:
		return cached{}, false
	}
	c.mtl = rl.LoadMaterialDefault()
	if rl.IsShaderValid(r.shader) {
		c.mtl.Shader = r.shader
	}
	r.cache[t] = c
	return c, true
}

// loadLitShader returns a shader that does simple directional light + ambient.
// Same vertex attributes as raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

// Lighting defaults.
var (
	defaultAmbient    = [4]float32{0.25, 0.25, 0.3, 1.0}
	defaultLightColor = [3]float32{1.0, 0.98, 0.95}
)

const (
	defaultLightIntensity   = float32(0.8)
	defaultSpecularPower    = float32(48.0)
	defaultSpecularStrength = float32(0.35)
)

// setLitShaderUniforms sets viewPos, lightDir, ambient, light color/intensity, and specular on the given shader (cgo-safe: local arrays).
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := r.viewPos
	lightDir := r.lightDir
	amb := defaultAmbient
	lightColor := defaultLightColor
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}

// Draw draws one shape of type t centered at position, rotated and uniformly scaled.
// Must be called between BeginMode3D and EndMode3D, after SetView. Unknown types
// are skipped.
func (r *Registry) Draw(t shapes.Type, position mgl32.Vec3, rotation mgl32.Quat, scale float32, tint color.RGBA) {
	c, ok := r.ensure(t)
	if !ok {
		return
	}
	if scale == 0 {
		scale = 1
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	// Order: recenter the mesh, scale, rotate, then translate to position.
	transform := rl.MatrixTranslate(0, c.modelOffset, 0)
	transform = rl.MatrixMultiply(transform, rl.MatrixScale(scale, scale, scale))
	transform = rl.MatrixMultiply(transform, rl.QuaternionToMatrix(ToQuaternion(rotation)))
	transform = rl.MatrixMultiply(transform, rl.MatrixTranslate(position[0], position[1], position[2]))
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// Unload releases every cached mesh and the shared shader.
func (r *Registry) Unload() {
	for t, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, t)
	}
	if r.loaded && rl.IsShaderValid(r.shader) {
		rl.UnloadShader(r.shader)
	}
	r.loaded = false
}

// ToVector3 converts an mgl32 vector to raylib's.
func ToVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// ToQuaternion converts an mgl32 quaternion to raylib's.
func ToQuaternion(q mgl32.Quat) rl.Quaternion {
	return rl.Quaternion{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// ParseColor converts "#rrggbb" to an opaque RGBA. Invalid input draws magenta.
func ParseColor(hex string) color.RGBA {
	c, ok := shapes.RGBA(hex)
	if !ok {
		return rl.Magenta
	}
	return c
}
