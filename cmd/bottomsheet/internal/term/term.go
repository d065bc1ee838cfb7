// Package term hosts a sheet inside a tcell terminal screen.
//
// The terminal is a viewport onto the sheet's fixed logical coordinate
// space: cell coordinates are scaled to logical pixels before they reach
// the gesture layer, so the sheet behaves identically at any window size.
package term

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/bottomsheet/cmd/bottomsheet/internal/config"
	"github.com/go-drift/bottomsheet/pkg/animation"
	"github.com/go-drift/bottomsheet/pkg/errors"
	"github.com/go-drift/bottomsheet/pkg/gestures"
	"github.com/go-drift/bottomsheet/pkg/graphics"
	"github.com/go-drift/bottomsheet/pkg/platform"
	"github.com/go-drift/bottomsheet/pkg/sheet"
)

const frameInterval = 16 * time.Millisecond

var (
	backgroundColor = graphics.RGB(16, 18, 26)
	chromeColor     = graphics.RGB(40, 44, 52)
	textColor       = graphics.RGB(220, 220, 220)
	handleColor     = graphics.RGB(160, 160, 160)
)

// Host runs the interactive demo: it owns the screen, the sheet, and the
// single goroutine everything is driven from.
type Host struct {
	screen     tcell.Screen
	cfg        *config.Resolved
	ctrl       *sheet.Controller
	sheet      *sheet.Sheet
	arena      *gestures.GestureArena
	recognizer *gestures.VerticalDragRecognizer

	dispatch chan func()

	// Pointer state for translating the single mouse button into a
	// down/move/up stream.
	pressed     bool
	pointer     int64
	nextPointer int64
	lastMouse   graphics.Offset

	note string
}

// New creates a host on a real terminal screen.
func New(cfg *config.Resolved) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, &errors.SheetError{Op: "term.New", Kind: errors.KindInit, Err: err}
	}
	return NewWithScreen(screen, cfg)
}

// NewWithScreen creates a host on the given screen. Tests pass a
// tcell.SimulationScreen here.
func NewWithScreen(screen tcell.Screen, cfg *config.Resolved) (*Host, error) {
	if err := screen.Init(); err != nil {
		return nil, &errors.SheetError{Op: "term.NewWithScreen", Kind: errors.KindInit, Err: err}
	}
	screen.EnableMouse()

	h := &Host{
		screen:   screen,
		cfg:      cfg,
		ctrl:     sheet.NewController(),
		arena:    gestures.NewGestureArena(),
		dispatch: make(chan func(), 100),
	}

	opts := append(cfg.SheetOptions(),
		sheet.WithController(h.ctrl),
		sheet.WithBackdropPress(h.ctrl.Dismiss),
		sheet.WithSettleCallback(func(open bool) {
			if open {
				h.note = "settled open"
			} else {
				h.note = "settled closed"
			}
		}),
	)

	h.sheet = sheet.New(sheet.FixedMetrics{Size: cfg.ScreenSize}, cfg.SheetHeight, opts...)
	h.recognizer = h.sheet.DragRecognizer(h.arena)

	// Controller commands land on the host loop instead of running on the
	// caller's goroutine.
	platform.RegisterDispatch(h.enqueue)

	return h, nil
}

// Controller returns the controller bound to the hosted sheet.
func (h *Host) Controller() *sheet.Controller { return h.ctrl }

// Run drives the host until the user quits.
func (h *Host) Run() error {
	defer errors.Recover("term.Run")
	defer h.Close()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			events <- h.screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	h.draw()
	for {
		select {
		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.step()
		}
	}
}

// Close releases the screen and detaches the sheet from the global
// dispatch hook. Safe to call once Run has returned.
func (h *Host) Close() {
	platform.RegisterDispatch(nil)
	h.sheet.Dispose()
	h.screen.Fini()
}

func (h *Host) enqueue(fn func()) {
	select {
	case h.dispatch <- fn:
	default:
		// Queue full: the producer is the loop goroutine itself, so
		// running inline keeps ordering without blocking.
		fn()
	}
}

// step advances one frame: queued commands first, then animations, then
// the paint.
func (h *Host) step() {
	h.drainDispatch()
	animation.StepTickers()
	h.draw()
}

func (h *Host) drainDispatch() {
	for {
		select {
		case fn := <-h.dispatch:
			fn()
		default:
			return
		}
	}
}

// handleEvent processes one terminal event. It returns false when the
// host should quit.
func (h *Host) handleEvent(ev tcell.Event) bool {
	if ev == nil {
		return false
	}

	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 's':
				h.ctrl.Show()
			case 'd':
				h.ctrl.Dismiss()
			}
		}

	case *tcell.EventResize:
		h.screen.Sync()
		h.draw()

	case *tcell.EventMouse:
		h.handleMouse(ev)
	}

	return true
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := h.cellToLogical(x, y)
	primary := ev.Buttons()&tcell.Button1 != 0

	switch {
	case primary && !h.pressed:
		if !h.sheet.Frame().Contains(pos) {
			// The press landed on the backdrop, not the sheet.
			if h.sheet.BackdropInteractive() {
				h.sheet.PressBackdrop()
			}
			return
		}
		h.pressed = true
		h.nextPointer++
		h.pointer = h.nextPointer
		h.lastMouse = pos
		h.recognizer.AddPointer(gestures.PointerEvent{
			PointerID: h.pointer,
			Position:  pos,
			Phase:     gestures.PointerPhaseDown,
		})
		h.arena.Close(h.pointer)

	case primary && h.pressed:
		if pos.Equals(h.lastMouse) {
			return
		}
		h.recognizer.HandleEvent(gestures.PointerEvent{
			PointerID: h.pointer,
			Position:  pos,
			Delta:     pos.Sub(h.lastMouse),
			Phase:     gestures.PointerPhaseMove,
		})
		h.lastMouse = pos

	case !primary && h.pressed:
		h.recognizer.HandleEvent(gestures.PointerEvent{
			PointerID: h.pointer,
			Position:  pos,
			Phase:     gestures.PointerPhaseUp,
		})
		h.arena.Sweep(h.pointer)
		h.pressed = false
	}
}

// cellToLogical maps a cell coordinate to the sheet's logical pixel
// space, sampling the cell center.
func (h *Host) cellToLogical(x, y int) graphics.Offset {
	cols, rows := h.screen.Size()
	if cols == 0 || rows == 0 {
		return graphics.Offset{}
	}
	return graphics.Offset{
		X: (float64(x) + 0.5) * h.cfg.ScreenSize.Width / float64(cols),
		Y: (float64(y) + 0.5) * h.cfg.ScreenSize.Height / float64(rows),
	}
}

func (h *Host) draw() {
	cols, rows := h.screen.Size()
	if cols == 0 || rows == 0 {
		return
	}

	offset := h.sheet.Offset()
	opacity := h.sheet.BackdropOpacity()
	style := h.sheet.Config().SheetStyle
	scrimTween := animation.TweenColor(backgroundColor, h.cfg.BackdropColor.WithAlpha(1))
	scrim := scrimTween.Evaluate(opacity * h.cfg.BackdropColor.Alpha())

	rowHeight := h.cfg.ScreenSize.Height / float64(rows)
	sheetTop := int(math.Round(offset / rowHeight))

	for y := 0; y < rows; y++ {
		bg := scrim
		if y >= sheetTop {
			bg = style.Color
		}
		cellStyle := tcell.StyleDefault.Background(toTcell(bg))
		for x := 0; x < cols; x++ {
			h.screen.SetContent(x, y, ' ', nil, cellStyle)
		}
	}

	// Grab handle on the sheet's top row.
	if sheetTop >= 0 && sheetTop < rows {
		handleWidth := cols / 5
		handleStyle := tcell.StyleDefault.
			Background(toTcell(style.Color)).
			Foreground(toTcell(handleColor))
		for x := (cols - handleWidth) / 2; x < (cols+handleWidth)/2; x++ {
			h.screen.SetContent(x, sheetTop, '─', nil, handleStyle)
		}
	}

	chrome := tcell.StyleDefault.
		Background(toTcell(chromeColor)).
		Foreground(toTcell(textColor))
	h.drawText(0, 0, padRight(" "+h.cfg.Title, cols), chrome)
	help := "[s]how [d]ismiss [q]uit "
	if cols > len(help) {
		h.drawText(cols-len(help), 0, help, chrome)
	}

	status := fmt.Sprintf(" %s  offset=%.0f  opacity=%.2f  %s",
		h.sheet.Phase(), offset, opacity, h.note)
	h.drawText(0, rows-1, padRight(status, cols), chrome)

	h.screen.Show()
}

func (h *Host) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		h.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

func toTcell(c graphics.Color) tcell.Color {
	_, r, g, b := c.Components()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
