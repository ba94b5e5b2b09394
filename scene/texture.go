package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Texture holds CPU-side pixel data for a 2D image.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
}

// LoadTexture reads a PNG, JPEG, BMP or WebP file and converts it to RGBA8.
func LoadTexture(path string) (*Texture, error) {
	img, err := decodeImage(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &Texture{Name: path, Width: b.Dx(), Height: b.Dy(), Pixels: rgba.Pix}, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return img, nil
}

// CubeMapping selects how a cube texture is sampled.
type CubeMapping int

const (
	CubeReflection CubeMapping = iota
	CubeRefraction
)

func (m CubeMapping) String() string {
	if m == CubeRefraction {
		return "refraction"
	}
	return "reflection"
}

type TextureStatus int

const (
	TexturePending TextureStatus = iota
	TextureLoaded
	TextureFailed
)

func (s TextureStatus) String() string {
	switch s {
	case TextureLoaded:
		return "loaded"
	case TextureFailed:
		return "failed"
	}
	return "pending"
}

// CubeFaces is the face order +X, -X, +Y, -Y, +Z, -Z.
type CubeFaces [6]string

// RepeatFace uses one image for every face.
func RepeatFace(path string) CubeFaces {
	return CubeFaces{path, path, path, path, path, path}
}

// CubeTexture is a six-face environment map filled in asynchronously.
// Until Status reports TextureLoaded the faces are absent and materials
// render without an environment contribution.
type CubeTexture struct {
	Paths   CubeFaces
	Mapping CubeMapping

	// GLID is the OpenGL texture object ID, set by the renderer on upload.
	GLID uint32

	mu     sync.Mutex
	status TextureStatus
	faces  [6]*Texture
	err    error
	done   chan struct{}
}

func NewCubeTexture(paths CubeFaces, mapping CubeMapping) *CubeTexture {
	return &CubeTexture{Paths: paths, Mapping: mapping, done: make(chan struct{})}
}

func (c *CubeTexture) Status() TextureStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Err returns the load failure, if any.
func (c *CubeTexture) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Faces returns the decoded faces once loaded, or nil.
func (c *CubeTexture) Faces() []*Texture {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != TextureLoaded {
		return nil
	}
	return c.faces[:]
}

// Done is closed when loading completes either way.
func (c *CubeTexture) Done() <-chan struct{} {
	return c.done
}

func (c *CubeTexture) resolve(faces [6]*Texture, err error) {
	c.mu.Lock()
	if err != nil {
		c.status = TextureFailed
		c.err = err
	} else {
		c.status = TextureLoaded
		c.faces = faces
	}
	c.mu.Unlock()
	close(c.done)
}

// CubeLoader starts loading a cube texture and returns immediately.
type CubeLoader interface {
	LoadCube(paths CubeFaces, mapping CubeMapping) *CubeTexture
}

// FileCubeLoader decodes faces from disk on a background goroutine. Faces
// are resampled to a common square size as cube maps require.
type FileCubeLoader struct {
	// OnDone, if set, is called from the loading goroutine.
	OnDone func(*CubeTexture)
}

func (l FileCubeLoader) LoadCube(paths CubeFaces, mapping CubeMapping) *CubeTexture {
	cube := NewCubeTexture(paths, mapping)
	go func() {
		faces, err := LoadCubeFaces(paths)
		cube.resolve(faces, err)
		if l.OnDone != nil {
			l.OnDone(cube)
		}
	}()
	return cube
}

// LoadCubeFaces decodes each distinct path once and squares every face to
// the smallest dimension found.
func LoadCubeFaces(paths CubeFaces) ([6]*Texture, error) {
	var faces [6]*Texture
	decoded := make(map[string]image.Image)
	size := 0
	for _, p := range paths {
		if _, ok := decoded[p]; ok {
			continue
		}
		img, err := decodeImage(p)
		if err != nil {
			return faces, err
		}
		decoded[p] = img
		b := img.Bounds()
		for _, d := range []int{b.Dx(), b.Dy()} {
			if size == 0 || d < size {
				size = d
			}
		}
	}
	if size == 0 {
		return faces, fmt.Errorf("cube texture %v has empty faces", paths)
	}

	squared := make(map[string]*Texture, len(decoded))
	for i, p := range paths {
		if t, ok := squared[p]; ok {
			faces[i] = t
			continue
		}
		t := squareFace(p, decoded[p], size)
		squared[p] = t
		faces[i] = t
	}
	return faces, nil
}

func squareFace(name string, img image.Image, size int) *Texture {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	if b := img.Bounds(); b.Dx() == size && b.Dy() == size {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}
	return &Texture{Name: name, Width: size, Height: size, Pixels: dst.Pix}
}
