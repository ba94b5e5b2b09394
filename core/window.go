package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string
}

// WindowConfig sizes the window. A zero Width or Height means "use the
// primary monitor's current video mode".
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title: "randscene",
		VSync: true,
	}
}

// KeyCallback receives key codes on the press edge only.
type KeyCallback func(key int)

// CharCallback receives Unicode characters as typed.
type CharCallback func(char rune)

func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	width, height := config.Width, config.Height
	if width <= 0 || height <= 0 {
		if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
			mode := monitor.GetVideoMode()
			width, height = mode.Width, mode.Height
		} else {
			width, height = 1280, 720
		}
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	// Resizing is not handled: the camera aspect is fixed at startup.
	glfw.WindowHint(glfw.Resizable, glfw.False)

	handle, err := glfw.CreateWindow(width, height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return &Window{
		Handle: handle,
		Width:  width,
		Height: height,
		Title:  config.Title,
	}, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.Handle.SetShouldClose(v)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// PixelRatio is the framebuffer-to-window size ratio (2 on most HiDPI displays).
func (w *Window) PixelRatio() float32 {
	fbWidth, _ := w.Handle.GetFramebufferSize()
	winWidth, _ := w.Handle.GetSize()
	if winWidth == 0 {
		return 1
	}
	return float32(fbWidth) / float32(winWidth)
}

func (w *Window) SetKeyCallback(cb KeyCallback) {
	w.Handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press {
			cb(int(key))
		}
	})
}

// SetCharCallback reports typed characters, after keyboard layout and
// modifiers are applied.
func (w *Window) SetCharCallback(cb CharCallback) {
	w.Handle.SetCharCallback(func(_ *glfw.Window, char rune) {
		cb(char)
	})
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

const KeyEscape = int(glfw.KeyEscape)
