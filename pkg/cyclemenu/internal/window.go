package internal

import (
	"fmt"
	"image"
	"math"
	"os"
	"strconv"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
)

const (
	devWindowWidth  = 1024
	devWindowHeight = 768
)

// Window wraps the SDL window and renderer the widget is drawn into.
type Window struct {
	Window          *sdl.Window
	Renderer        *sdl.Renderer
	Title           string
	CornerImage     *sdl.Texture
	hasVSync        bool
	lastPresentTime uint64
}

func envSize(name string, fallback int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		GetInternalLogger().Warn("Invalid window size override; using default", "variable", name, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

func initWindow(title string, winOpts WindowOptions) (*Window, error) {
	width, height := winOpts.Width, winOpts.Height
	if width <= 0 || height <= 0 {
		mode, err := sdl.GetCurrentDisplayMode(0)
		if err != nil {
			GetInternalLogger().Error("Failed to get display mode", "error", err)
			mode.W, mode.H = devWindowWidth, devWindowHeight
		}
		width, height = mode.W, mode.H
	}

	x, y := int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED)
	if constants.IsDevMode() {
		winOpts.Borderless = false
		x, y = 50, 50
		width = envSize(constants.WindowWidthEnvVar, devWindowWidth)
		height = envSize(constants.WindowHeightEnvVar, devWindowHeight)
	}

	GetInternalLogger().Debug("Initializing SDL window", "width", width, "height", height)

	window, err := sdl.CreateWindow(title, x, y, width, height, winOpts.ToSDLFlags())
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	win := &Window{
		Window:   window,
		Renderer: renderer,
		Title:    title,
		hasVSync: vsync,
	}
	win.loadCornerImage()

	return win, nil
}

func (window *Window) loadCornerImage() {
	path := GetTheme().CornerImagePath
	if path == "" {
		return
	}

	tex, err := img.LoadTexture(window.Renderer, path)
	if err != nil {
		GetInternalLogger().Warn("Failed to load corner image", "path", path, "error", err)
		return
	}
	window.CornerImage = tex
}

func (window *Window) closeWindow() {
	if window.CornerImage != nil {
		window.CornerImage.Destroy()
	}
	window.Renderer.Destroy()
	window.Window.Destroy()
}

func GetWindow() *Window {
	return window
}

func (window *Window) GetWidth() int32 {
	w, _ := window.Window.GetSize()
	return w
}

func (window *Window) GetHeight() int32 {
	_, h := window.Window.GetSize()
	return h
}

// Clear fills the frame with the theme background.
func (window *Window) Clear() {
	c := GetTheme().BackgroundColor
	window.Renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	window.Renderer.Clear()
}

// FillCircle draws a filled circle. Parts outside the window are clipped by SDL.
func (window *Window) FillCircle(cx, cy, radius int32, c sdl.Color) {
	if radius <= 0 || c.A == 0 {
		return
	}
	window.Renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	r := float64(radius)
	for dy := -radius; dy <= radius; dy++ {
		dx := int32(math.Sqrt(r*r - float64(dy)*float64(dy)))
		window.Renderer.DrawLine(cx-dx, cy+dy, cx+dx, cy+dy)
	}
}

// TextureFromImage uploads a premultiplied RGBA image as a texture.
func (window *Window) TextureFromImage(src *image.RGBA) (*sdl.Texture, error) {
	w, h := int32(src.Bounds().Dx()), int32(src.Bounds().Dy())
	surface, err := sdl.CreateRGBSurfaceWithFormat(0, w, h, 32, uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	defer surface.Free()

	if err := surface.Lock(); err != nil {
		return nil, fmt.Errorf("lock surface: %w", err)
	}
	pixels := surface.Pixels()
	pitch := int(surface.Pitch)
	for y := 0; y < int(h); y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+int(w)*4]
		dst := pixels[y*pitch : y*pitch+int(w)*4]
		for i := 0; i < len(row); i += 4 {
			a := row[i+3]
			if a == 0 {
				dst[i], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
				continue
			}
			// SDL blends straight alpha.
			dst[i] = uint8(uint32(row[i]) * 255 / uint32(a))
			dst[i+1] = uint8(uint32(row[i+1]) * 255 / uint32(a))
			dst[i+2] = uint8(uint32(row[i+2]) * 255 / uint32(a))
			dst[i+3] = a
		}
	}
	surface.Unlock()

	tex, err := window.Renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	return tex, nil
}

// CopyRotated draws tex into dst rotated by angle degrees around pivot,
// which is relative to dst's top left corner.
func (window *Window) CopyRotated(tex *sdl.Texture, dst sdl.Rect, angle float64, pivot sdl.Point) {
	window.Renderer.CopyEx(tex, nil, &dst, angle, &pivot, sdl.FLIP_NONE)
}

// Present swaps the render buffer and enforces ~60fps frame timing
// when VSync is not available.
func (window *Window) Present() {
	window.Renderer.Present()
	if !window.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - window.lastPresentTime; elapsed < 16 {
			sdl.Delay(uint32(16 - elapsed))
		}
		window.lastPresentTime = sdl.GetTicks64()
	}
}
