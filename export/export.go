// Package export turns a captured frame into a PNG on disk and hands it to
// the desktop image viewer.
package export

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"

	"randscene/scene"
)

const timestampLayout = "20060102-150405.000"

// TriggerChar is the typed character that requests a screenshot.
const TriggerChar = 's'

// IsTrigger reports whether a typed character requests a screenshot.
// Only lowercase 's' counts; Shift+S types 'S' and is ignored.
func IsTrigger(char rune) bool {
	return char == TriggerChar
}

// Viewer opens a written image file.
type Viewer func(path string) error

// Exporter writes screenshots into Dir. When Manifest is set, a YAML
// description of the scene is written next to every PNG.
type Exporter struct {
	Dir      string
	Manifest *scene.Manifest
	Viewer   Viewer

	now func() time.Time
}

// NewExporter returns an exporter that opens each file with the OS viewer
// unless open is false.
func NewExporter(dir string, open bool) *Exporter {
	e := &Exporter{Dir: dir, now: time.Now}
	if open {
		e.Viewer = OpenInViewer
	}
	return e
}

// FileName is the screenshot name for time t.
func FileName(t time.Time) string {
	return "screenshot-" + t.Format(timestampLayout) + ".png"
}

// Export flips a bottom-up frame as read back from OpenGL, encodes it as PNG
// and opens it. It returns the written path. A viewer failure is reported
// but the file stays on disk.
func (e *Exporter) Export(frame *image.RGBA) (string, error) {
	if frame == nil || frame.Bounds().Empty() {
		return "", fmt.Errorf("empty frame")
	}
	if e.Dir != "" {
		if err := os.MkdirAll(e.Dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}

	now := time.Now
	if e.now != nil {
		now = e.now
	}
	path := filepath.Join(e.Dir, FileName(now()))

	img := transform.FlipV(frame)
	opaque(img)
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if e.Manifest != nil {
		sidecar := strings.TrimSuffix(path, ".png") + ".yaml"
		if err := e.Manifest.Save(sidecar); err != nil {
			return path, fmt.Errorf("write manifest: %w", err)
		}
	}

	if e.Viewer != nil {
		if err := e.Viewer(path); err != nil {
			return path, fmt.Errorf("open %s: %w", path, err)
		}
	}
	return path, nil
}

// opaque forces full alpha; the default framebuffer may carry none.
func opaque(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}

// OpenInViewer starts the platform's default handler for path and does not
// wait for it to exit.
func OpenInViewer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
