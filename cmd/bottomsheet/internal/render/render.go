// Package render produces PNG frame sequences of scripted sheet
// scenarios. Frames are rendered offscreen, so the output is
// deterministic and usable in docs and golden comparisons.
package render

import (
	stderrors "errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/bottomsheet/pkg/animation"
	"github.com/go-drift/bottomsheet/pkg/errors"
	"github.com/go-drift/bottomsheet/pkg/graphics"
	"github.com/go-drift/bottomsheet/pkg/sheet"
	"github.com/go-drift/bottomsheet/pkg/sheettest"
)

// ErrScenarioTimeout is returned when a scenario keeps animating past
// the frame limit.
var ErrScenarioTimeout = stderrors.New("render: scenario did not settle")

// maxFrames bounds a scenario at roughly ten seconds of animation.
const maxFrames = 600

var (
	backgroundColor = graphics.RGB(240, 242, 245)
	contentColor    = graphics.RGB(214, 218, 224)
	handleColor     = graphics.RGB(186, 190, 196)
	labelColor      = color.NRGBA{R: 60, G: 64, B: 72, A: 255}
)

// Frame is one rendered animation frame.
type Frame struct {
	At    time.Duration
	Image *image.RGBA
}

// Options configures a scenario run. Zero values fall back to a 400x800
// screen with a 320 px sheet.
type Options struct {
	Size        graphics.Size
	SheetHeight float64
	SheetOpts   []sheet.Option
	Title       string
}

func (o Options) withDefaults() Options {
	if o.Size.Width <= 0 || o.Size.Height <= 0 {
		o.Size = graphics.Size{Width: 400, Height: 800}
	}
	if o.SheetHeight <= 0 {
		o.SheetHeight = 320
	}
	return o
}

// Scenarios lists the scripted scenario names accepted by RunScenario.
func Scenarios() []string {
	return []string{"show", "dismiss", "drag", "fling"}
}

// RunScenario plays the named scenario against a fresh sheet and returns
// one frame per 16 ms tick.
func RunScenario(name string, opts Options) ([]Frame, error) {
	opts = opts.withDefaults()

	tester := sheettest.NewTester()
	defer tester.Cleanup()
	tester.SetSize(opts.Size)

	sheetOpts := opts.SheetOpts
	if name == "fling" {
		// The fling scenario demonstrates velocity dismissal, so it
		// needs a threshold even when the configuration has none.
		sheetOpts = append(sheetOpts[:len(sheetOpts):len(sheetOpts)], sheet.WithDismissVelocity(900))
	}
	s := tester.MountSheet(opts.SheetHeight, sheetOpts...)

	r := &run{tester: tester, sheet: s, opts: opts}

	switch name {
	case "show":
		s.Show()
	case "dismiss":
		s.Show()
		if err := tester.PumpAndSettle(2 * time.Second); err != nil {
			return nil, err
		}
		s.Dismiss()
	case "drag":
		if err := r.openAndDrag(8, 30); err != nil {
			return nil, err
		}
	case "fling":
		if err := r.openAndDrag(4, 40); err != nil {
			return nil, err
		}
	default:
		return nil, &errors.SheetError{
			Op:   "render.RunScenario",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("unknown scenario %q (have %v)", name, Scenarios()),
		}
	}

	if err := r.captureUntilIdle(); err != nil {
		return nil, err
	}
	return r.frames, nil
}

type run struct {
	tester *sheettest.Tester
	sheet  *sheet.Sheet
	opts   Options
	frames []Frame
}

func (r *run) capture() {
	r.frames = append(r.frames, Frame{
		At:    time.Duration(len(r.frames)) * sheettest.FrameDuration,
		Image: drawFrame(r.sheet, r.opts),
	})
}

// captureUntilIdle records a frame per tick until nothing animates.
func (r *run) captureUntilIdle() error {
	for i := 0; i < maxFrames; i++ {
		r.capture()
		if r.sheet.Phase() == sheet.PhaseIdle && !animation.HasActiveTickers() {
			return nil
		}
		r.tester.PumpFrames(1)
	}
	return ErrScenarioTimeout
}

// openAndDrag settles the sheet open, then drags it downward by steps of
// the given size, capturing each frame, and releases.
func (r *run) openAndDrag(steps int, stepSize float64) error {
	r.sheet.Show()
	if err := r.tester.PumpAndSettle(2 * time.Second); err != nil {
		return err
	}

	start := graphics.Offset{X: r.opts.Size.Width / 2, Y: r.sheet.Offset() + 40}
	id := r.tester.PointerDown(start)
	for i := 1; i <= steps; i++ {
		r.tester.Clock().Advance(sheettest.FrameDuration)
		r.tester.PointerMove(id, start.Add(graphics.Offset{Y: float64(i) * stepSize}))
		r.tester.Pump()
		r.capture()
	}
	r.tester.PointerUp(id)
	return nil
}

// WriteFrames encodes the frames as frame_NNN.png files under dir.
func WriteFrames(dir string, frames []Frame) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, frame := range frames {
		path := filepath.Join(dir, fmt.Sprintf("frame_%03d.png", i))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := png.Encode(f, frame.Image); err != nil {
			f.Close()
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// drawFrame paints the current sheet state: app content, scrim, sheet
// container with rounded top corners, and a small HUD line.
func drawFrame(s *sheet.Sheet, opts Options) *image.RGBA {
	w := int(opts.Size.Width)
	h := int(opts.Size.Height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	fillRect(img, img.Bounds(), toNRGBA(backgroundColor))
	for i := 0; i < 6; i++ {
		top := 40 + i*56
		fillRect(img, image.Rect(24, top, w-24, top+24), toNRGBA(contentColor))
	}
	if opts.Title != "" {
		drawLabel(img, 24, 28, opts.Title)
	}

	// The scrim covers the whole screen; the sheet is painted over it.
	if opacity := s.BackdropOpacity(); opacity > 0 {
		scrim := scrimColor(s.Config().BackdropColor, opacity)
		draw.Draw(img, img.Bounds(), image.NewUniform(scrim), image.Point{}, draw.Over)
	}

	top := int(math.Round(s.Offset()))
	if top < h {
		style := s.Config().SheetStyle
		paintSheet(img, top, style)

		handleW := w / 8
		fillRect(img, image.Rect((w-handleW)/2, top+10, (w+handleW)/2, top+14), toNRGBA(handleColor))
	}

	drawLabel(img, 8, h-8, fmt.Sprintf("offset=%.0f opacity=%.2f phase=%s",
		s.Offset(), s.BackdropOpacity(), s.Phase()))

	return img
}

// paintSheet fills from top to the bottom edge, clipping the two top
// corners to the style's radius.
func paintSheet(img *image.RGBA, top int, style sheet.Style) {
	bounds := img.Bounds()
	w := bounds.Dx()
	radius := int(style.CornerRadius)
	c := toNRGBA(style.Color)

	for y := top; y < bounds.Max.Y; y++ {
		if y < 0 {
			continue
		}
		dy := y - top
		for x := 0; x < w; x++ {
			if dy < radius && !insideCorner(x, dy, w, radius) {
				continue
			}
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
}

func insideCorner(x, dy, w, r int) bool {
	if x < r {
		return (x-r)*(x-r)+(dy-r)*(dy-r) <= r*r
	}
	if x >= w-r {
		cx := w - 1 - r
		return (x-cx)*(x-cx)+(dy-r)*(dy-r) <= r*r
	}
	return true
}

func drawLabel(img *image.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func fillRect(img *image.RGBA, rect image.Rectangle, c color.NRGBA) {
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func toNRGBA(c graphics.Color) color.NRGBA {
	a, r, g, b := c.Components()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// scrimColor scales the configured scrim alpha by the current opacity.
func scrimColor(c graphics.Color, opacity float64) color.NRGBA {
	a, r, g, b := c.Components()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(float64(a) * opacity))}
}
