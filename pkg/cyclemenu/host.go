package cyclemenu

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/internal"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/touch"
)

const discSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><circle cx="12" cy="12" r="12" fill="#FFFFFF"/></svg>`

// RunOptions controls the host loop.
type RunOptions struct {
	// Touch is an optional extra pointer source, for example an EvdevSource
	// reading a touchscreen SDL does not see.
	Touch <-chan touch.Motion
	// OnEvent receives every widget event. Returning false stops Run.
	OnEvent func(Event) bool
	// Padding insets the widget from the window edges.
	Padding internal.Padding
}

// Run draws w into the window opened by Init and feeds it input until the
// window is closed, ctx is done or OnEvent asks to stop.
func Run(ctx context.Context, w *Widget, opts RunOptions) error {
	win := internal.GetWindow()
	if win == nil {
		return NewInfrastructureError("run", fmt.Errorf("window not initialized, call Init first"))
	}
	logger := internal.GetInternalLogger()

	textures := internal.NewIconCacheWithSize(64, func(t *sdl.Texture) {
		if err := t.Destroy(); err != nil {
			logger.Debug("Failed to destroy item texture", "error", err)
		}
	})
	defer textures.Destroy()

	h := &host{win: win, widget: w, textures: textures, padding: opts.Padding, fingerID: -1}
	h.openControllers()
	defer h.closeControllers()

	h.resize(win.GetWidth(), win.GetHeight())
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if !h.handleEvent(event) {
				logger.Debug("Quit requested")
				return nil
			}
		}

		if opts.Touch != nil {
		drain:
			for {
				select {
				case m := <-opts.Touch:
					h.touch(m)
				default:
					break drain
				}
			}
		}

		now := time.Now()
		w.Frame(now.Sub(last))
		last = now

	events:
		for {
			select {
			case ev := <-w.Events():
				if opts.OnEvent != nil && !opts.OnEvent(ev) {
					return nil
				}
			default:
				break events
			}
		}

		h.draw()
		win.Present()
	}
}

type host struct {
	win         *internal.Window
	widget      *Widget
	textures    *internal.IconCache[*sdl.Texture]
	controllers []*sdl.GameController
	padding     internal.Padding
	originX     int32
	originY     int32
	mouseDown   bool
	fingerID    sdl.FingerID
}

// resize gives the widget the window area left inside the padding.
func (h *host) resize(width, height int32) {
	x, y, w, hgt := h.padding.Inset(width, height)
	h.originX, h.originY = x, y
	h.widget.SetSize(int(w), int(hgt))
}

// touch forwards m in widget coordinates.
func (h *host) touch(m touch.Motion) {
	m.X -= float64(h.originX)
	m.Y -= float64(h.originY)
	h.widget.HandleTouch(m)
}

func (h *host) openControllers() {
	for i := 0; i < sdl.NumJoysticks(); i++ {
		h.openController(i)
	}
}

func (h *host) openController(index int) {
	if !sdl.IsGameController(index) {
		return
	}
	if c := sdl.GameControllerOpen(index); c != nil {
		internal.GetInternalLogger().Debug("Game controller opened", "name", c.Name())
		h.controllers = append(h.controllers, c)
	}
}

func (h *host) closeControllers() {
	for _, c := range h.controllers {
		c.Close()
	}
	h.controllers = nil
}

// handleEvent maps one SDL event onto the widget. It returns false on quit.
func (h *host) handleEvent(event sdl.Event) bool {
	w := h.widget

	switch e := event.(type) {
	case *sdl.QuitEvent:
		return false

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED || e.Event == sdl.WINDOWEVENT_RESIZED {
			h.resize(e.Data1, e.Data2)
		}

	case *sdl.MouseButtonEvent:
		if e.Which == sdl.TOUCH_MOUSEID || e.Button != sdl.BUTTON_LEFT {
			return true
		}
		action := touch.ActionUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			action = touch.ActionDown
		}
		h.mouseDown = action == touch.ActionDown
		h.touch(touch.Motion{Action: action, X: float64(e.X), Y: float64(e.Y)})

	case *sdl.MouseMotionEvent:
		if e.Which == sdl.TOUCH_MOUSEID || !h.mouseDown {
			return true
		}
		h.touch(touch.Motion{Action: touch.ActionMove, X: float64(e.X), Y: float64(e.Y)})

	case *sdl.TouchFingerEvent:
		h.handleFinger(e)

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return true
		}
		if e.Keysym.Sym == sdl.K_q && e.State == sdl.PRESSED && constants.IsDevMode() {
			return false
		}
		if button := keyButton(e.Keysym.Sym); button != constants.VirtualButtonUnassigned {
			w.HandleButton(button, e.State == sdl.PRESSED)
		}

	case *sdl.ControllerButtonEvent:
		if button := controllerButton(sdl.GameControllerButton(e.Button)); button != constants.VirtualButtonUnassigned {
			w.HandleButton(button, e.State == sdl.PRESSED)
		}

	case *sdl.ControllerDeviceEvent:
		if e.Type == sdl.CONTROLLERDEVICEADDED {
			h.openController(int(e.Which))
		}
	}
	return true
}

// handleFinger follows the first finger down. Coordinates arrive normalized.
func (h *host) handleFinger(e *sdl.TouchFingerEvent) {
	width, height := float64(h.win.GetWidth()), float64(h.win.GetHeight())
	m := touch.Motion{X: float64(e.X) * width, Y: float64(e.Y) * height}

	switch e.Type {
	case sdl.FINGERDOWN:
		if h.fingerID != -1 {
			return
		}
		h.fingerID = e.FingerID
		m.Action = touch.ActionDown
	case sdl.FINGERMOTION:
		if e.FingerID != h.fingerID {
			return
		}
		m.Action = touch.ActionMove
	case sdl.FINGERUP:
		if e.FingerID != h.fingerID {
			return
		}
		h.fingerID = -1
		m.Action = touch.ActionUp
	default:
		return
	}
	h.touch(m)
}

func keyButton(key sdl.Keycode) constants.VirtualButton {
	switch key {
	case sdl.K_UP:
		return constants.VirtualButtonUp
	case sdl.K_DOWN:
		return constants.VirtualButtonDown
	case sdl.K_LEFT:
		return constants.VirtualButtonLeft
	case sdl.K_RIGHT:
		return constants.VirtualButtonRight
	case sdl.K_RETURN, sdl.K_SPACE, sdl.K_a:
		return constants.VirtualButtonA
	case sdl.K_ESCAPE, sdl.K_BACKSPACE, sdl.K_b:
		return constants.VirtualButtonB
	}
	return constants.VirtualButtonUnassigned
}

func controllerButton(button sdl.GameControllerButton) constants.VirtualButton {
	switch button {
	case sdl.CONTROLLER_BUTTON_DPAD_UP:
		return constants.VirtualButtonUp
	case sdl.CONTROLLER_BUTTON_DPAD_DOWN:
		return constants.VirtualButtonDown
	case sdl.CONTROLLER_BUTTON_DPAD_LEFT:
		return constants.VirtualButtonLeft
	case sdl.CONTROLLER_BUTTON_DPAD_RIGHT:
		return constants.VirtualButtonRight
	case sdl.CONTROLLER_BUTTON_A:
		return constants.VirtualButtonA
	case sdl.CONTROLLER_BUTTON_B:
		return constants.VirtualButtonB
	}
	return constants.VirtualButtonUnassigned
}

func (h *host) draw() {
	theme := internal.GetTheme()
	bg := h.widget.Background()
	cx, cy := int32(bg.CenterX)+h.originX, int32(bg.CenterY)+h.originY

	h.win.Clear()
	if bg.ShadowSize > 0 {
		h.win.FillCircle(cx, cy, int32(bg.CircleRadius+bg.ShadowSize/2), theme.ShadowColor)
	}
	h.win.FillCircle(cx, cy, int32(bg.CircleRadius), theme.CircleColor)
	if bg.RippleAlpha > 0 {
		h.win.FillCircle(cx, cy, int32(bg.RippleRadius), internal.WithAlpha(theme.RippleColor, bg.RippleAlpha))
	}

	if h.widget.ItemsVisible() {
		arc := h.widget.ArcBounds()
		for _, slot := range h.widget.Slots() {
			v, ok := slot.View.(*IconVisual)
			if !ok {
				continue
			}
			tex := h.itemTexture(v, theme)
			if tex == nil {
				continue
			}
			r := slot.Rect.Offset(arc.Left+int(h.originX), arc.Top+int(h.originY))
			angle, px, py := v.Rotation()
			h.win.CopyRotated(tex,
				sdl.Rect{X: int32(r.Left), Y: int32(r.Top), W: int32(r.Width()), H: int32(r.Height())},
				angle,
				sdl.Point{X: int32(px), Y: int32(py)})
		}
	}

	h.drawCornerButton(bg, theme)
}

func (h *host) drawCornerButton(bg Background, theme internal.Theme) {
	button := bg.CornerButton.Offset(int(h.originX), int(h.originY))
	if button.Width() <= 0 {
		return
	}

	tex := h.win.CornerImage
	if tex == nil {
		tex = h.iconTexture(constants.IconPlus, button.Width()/2, theme.IconColor)
	}
	if tex == nil {
		return
	}

	side := int32(button.Width() / 2)
	dst := sdl.Rect{
		X: int32(button.Left) + side/2,
		Y: int32(button.Top) + side/2,
		W: side,
		H: side,
	}
	h.win.CopyRotated(tex, dst, bg.CornerRotation, sdl.Point{X: side / 2, Y: side / 2})
}

func (h *host) itemTexture(v *IconVisual, theme internal.Theme) *sdl.Texture {
	item, _ := v.Item()
	key := fmt.Sprintf("item:%s:%d", item.Icon, v.Rect().Width())
	if tex, ok := h.textures.Get(key); ok {
		return tex
	}

	img, err := itemImage(v.Rect().Width(), v.Icon(), toRGBA(theme.ItemColor))
	if err != nil {
		internal.GetInternalLogger().Warn("Failed to render item", "error", NewInfrastructureError("render_item", err), "item", item.ID)
		return nil
	}
	return h.upload(key, img)
}

func (h *host) iconTexture(ref string, size int, c sdl.Color) *sdl.Texture {
	key := fmt.Sprintf("icon:%s:%d", ref, size)
	if tex, ok := h.textures.Get(key); ok {
		return tex
	}
	img, err := internal.RasterizeIcon(ref, size, toRGBA(c))
	if err != nil {
		internal.GetInternalLogger().Warn("Failed to render icon", "error", NewInfrastructureError("rasterize_icon", err), "icon", ref)
		return nil
	}
	return h.upload(key, img)
}

func (h *host) upload(key string, img *image.RGBA) *sdl.Texture {
	tex, err := h.win.TextureFromImage(img)
	if err != nil {
		internal.GetInternalLogger().Warn("Failed to upload texture", "error", NewInfrastructureError("upload_texture", err), "key", key)
		return nil
	}
	h.textures.Set(key, tex)
	return tex
}

// itemImage renders a disc of the given diameter with icon centered on it.
func itemImage(size int, icon *image.RGBA, disc color.RGBA) (*image.RGBA, error) {
	img, err := internal.RasterizeSVG(discSVG, size)
	if err != nil {
		return nil, err
	}
	internal.Tint(img, disc)

	if icon != nil {
		b := icon.Bounds()
		at := image.Pt((size-b.Dx())/2, (size-b.Dy())/2)
		draw.Draw(img, b.Add(at), icon, b.Min, draw.Over)
	}
	return img, nil
}

func toRGBA(c sdl.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
