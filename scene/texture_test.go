package scene

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 20), B: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "face.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitCube(t *testing.T, c *CubeTexture) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("cube texture never finished loading")
	}
}

func TestLoadTexture(t *testing.T) {
	tex, err := LoadTexture(writeTestPNG(t, 6, 3))
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 6 || tex.Height != 3 || len(tex.Pixels) != 6*3*4 {
		t.Errorf("unexpected texture %dx%d with %d bytes", tex.Width, tex.Height, len(tex.Pixels))
	}
}

func TestFileCubeLoaderSquaresFaces(t *testing.T) {
	path := writeTestPNG(t, 8, 4)

	called := make(chan *CubeTexture, 1)
	cube := FileCubeLoader{OnDone: func(c *CubeTexture) { called <- c }}.LoadCube(RepeatFace(path), CubeRefraction)
	waitCube(t, cube)

	if cube.Status() != TextureLoaded {
		t.Fatalf("status %v, err %v", cube.Status(), cube.Err())
	}
	if cube.Mapping != CubeRefraction {
		t.Errorf("mapping %v, want refraction", cube.Mapping)
	}
	faces := cube.Faces()
	if len(faces) != 6 {
		t.Fatalf("expected 6 faces, got %d", len(faces))
	}
	for i, f := range faces {
		if f.Width != 4 || f.Height != 4 || len(f.Pixels) != 4*4*4 {
			t.Errorf("face %d is %dx%d, want 4x4", i, f.Width, f.Height)
		}
	}
	if got := <-called; got != cube {
		t.Error("OnDone received a different cube")
	}
}

func TestFileCubeLoaderMissingFile(t *testing.T) {
	cube := FileCubeLoader{}.LoadCube(RepeatFace(filepath.Join(t.TempDir(), "missing.jpg")), CubeReflection)
	if s := cube.Status(); s != TexturePending && s != TextureFailed {
		t.Errorf("unexpected initial status %v", s)
	}
	waitCube(t, cube)

	if cube.Status() != TextureFailed {
		t.Fatalf("status %v, want failed", cube.Status())
	}
	if cube.Err() == nil {
		t.Error("expected a load error")
	}
	if cube.Faces() != nil {
		t.Error("failed cube should expose no faces")
	}
}
