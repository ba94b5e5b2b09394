package scene

import (
	"path/filepath"
	"testing"

	"randscene/core"
	"randscene/math"
)

func testScene(t *testing.T) (*Scene, EnvironmentMaps) {
	t.Helper()
	maps := EnvironmentMaps{
		Reflection: NewCubeTexture(RepeatFace("a.jpg"), CubeReflection),
		Refraction: NewCubeTexture(RepeatFace("a.jpg"), CubeRefraction),
	}

	s := NewScene()
	s.Background = core.ColorFromHex(0x3c0968)
	cam := NewCamera(50, 1.5, 1, 5000)
	cam.SetPosition(math.NewVec3(0, 0, 2000))
	cam.LookAt(math.Vec3Zero, math.Vec3Up)
	s.SetCamera(cam)
	s.AddLight(NewAmbientLight(core.ColorWhite, 1))
	s.AddLight(NewPointLight(core.ColorWhite, 2, math.Vec3Zero))

	box, err := NewGeometry(BoxParams{Width: 2, Height: 3, Depth: 4})
	if err != nil {
		t.Fatal(err)
	}
	mat := NewLambertMaterial("box", core.ColorFromHex(0x4286f4))
	mat.EnvMap = maps.Reflection
	mat.Combine = CombineMix
	mat.Reflectivity = 0.3
	n := NewMeshNode("box", box, mat)
	n.SetPosition(math.NewVec3(10, -20, 30))
	n.SetRotation(math.NewVec3(1, 2, 3))
	n.SetScale(math.Splat(10))
	s.AddNode(n)

	torus, err := NewGeometry(TorusParams{Radius: 12, Tube: 11, RadialSegments: 14, TubularSegments: 15, Arc: 4})
	if err != nil {
		t.Fatal(err)
	}
	tmat := NewLambertMaterial("torus", core.ColorWhite)
	tmat.EnvMap = maps.Refraction
	tmat.RefractionRatio = 0.95
	s.AddNode(NewMeshNode("torus", torus, tmat))
	return s, maps
}

func TestManifestSaveLoadRebuild(t *testing.T) {
	s, maps := testScene(t)
	path := filepath.Join(t.TempDir(), "scene.yaml")

	if err := NewManifest(s, 1234, "assets/texture3.jpg").Save(path); err != nil {
		t.Fatal(err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Seed != 1234 || m.Texture != "assets/texture3.jpg" {
		t.Errorf("header mismatch: seed %d texture %q", m.Seed, m.Texture)
	}
	if len(m.Objects) != 2 || len(m.Lights) != 2 {
		t.Fatalf("expected 2 objects and 2 lights, got %d and %d", len(m.Objects), len(m.Lights))
	}

	rebuilt, err := m.Rebuild(maps)
	if err != nil {
		t.Fatal(err)
	}
	if rebuilt.Background.Hex() != 0x3c0968 {
		t.Errorf("background %v, want #3c0968", rebuilt.Background)
	}
	if rebuilt.Camera == nil || rebuilt.Camera.Position.Z != 2000 {
		t.Errorf("camera not restored: %+v", rebuilt.Camera)
	}

	objs := rebuilt.Objects()
	if len(objs) != 2 {
		t.Fatalf("expected 2 rebuilt objects, got %d", len(objs))
	}
	box := objs[0]
	if box.Geometry.Kind() != ShapeBox || box.Geometry.Params != (BoxParams{Width: 2, Height: 3, Depth: 4}) {
		t.Errorf("box params not restored: %+v", box.Geometry.Params)
	}
	if box.Material.EnvMap != maps.Reflection || box.Material.Combine != CombineMix || box.Material.Reflectivity != 0.3 {
		t.Errorf("box material not restored: %+v", box.Material)
	}
	if box.Transform.Position != math.NewVec3(10, -20, 30) || box.Transform.Scale != math.Splat(10) {
		t.Errorf("box transform not restored: %+v", box.Transform)
	}

	torus := objs[1]
	if torus.Material.EnvMap != maps.Refraction || torus.Material.RefractionRatio != 0.95 {
		t.Errorf("torus material not restored: %+v", torus.Material)
	}
	if len(torus.Geometry.Mesh.Vertices) != len(s.Objects()[1].Geometry.Mesh.Vertices) {
		t.Error("rebuilt torus mesh differs in size")
	}
}

func TestLoadManifestRejectsUnknownVersion(t *testing.T) {
	s, _ := testScene(t)
	m := NewManifest(s, 1, "x.jpg")
	m.Version = 99
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := m.Save(path); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(path); err == nil {
		t.Error("expected version error")
	}
}
