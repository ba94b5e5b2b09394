package opengl

import (
	"fmt"
	"image"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"randscene/scene"
)

// UploadCubeTexture uploads the six decoded faces of a loaded cube texture
// and sets its GLID field. Faces go to +X, -X, +Y, -Y, +Z, -Z in order.
// Call this from the main goroutine (OpenGL context must be current).
func UploadCubeTexture(cube *scene.CubeTexture) error {
	if cube == nil {
		return fmt.Errorf("nil cube texture")
	}
	faces := cube.Faces()
	if len(faces) != 6 {
		return fmt.Errorf("cube texture %s is %s", cube.Mapping, cube.Status())
	}
	for i, f := range faces {
		if f == nil || len(f.Pixels) == 0 {
			return fmt.Errorf("cube face %d has no pixel data", i)
		}
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	for i, f := range faces {
		gl.TexImage2D(
			gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i),
			0,
			gl.RGBA,
			int32(f.Width),
			int32(f.Height),
			0,
			gl.RGBA,
			gl.UNSIGNED_BYTE,
			unsafe.Pointer(&f.Pixels[0]),
		)
	}

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	cube.GLID = id
	return nil
}

// DeleteCubeTexture frees a previously uploaded cube texture and zeroes its GLID.
func DeleteCubeTexture(cube *scene.CubeTexture) {
	if cube == nil || cube.GLID == 0 {
		return
	}
	gl.DeleteTextures(1, &cube.GLID)
	cube.GLID = 0
}

// ReadPixels reads the default framebuffer's back buffer. Rows come back in
// GL order, bottom row first.
func ReadPixels(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	return img
}
