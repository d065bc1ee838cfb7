package sheettest

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/bottomsheet/pkg/animation"
	"github.com/go-drift/bottomsheet/pkg/gestures"
	"github.com/go-drift/bottomsheet/pkg/graphics"
	"github.com/go-drift/bottomsheet/pkg/platform"
	"github.com/go-drift/bottomsheet/pkg/sheet"
)

const (
	// DefaultWidth is the default logical width for the test surface.
	DefaultWidth = 400
	// DefaultHeight is the default logical height for the test surface.
	DefaultHeight = 800
	// FrameDuration is how far each pumped frame advances the fake clock.
	FrameDuration = 16 * time.Millisecond
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: sheet did not settle")

// Tester drives a sheet with a fake clock and scripted pointer events.
// It installs itself as the animation clock source and the platform
// dispatcher, so controller commands and transitions run exactly when
// frames are pumped.
type Tester struct {
	sheet      *sheet.Sheet
	recognizer *gestures.VerticalDragRecognizer
	arena      *gestures.GestureArena

	clock     *FakeClock
	prevClock animation.Clock
	start     time.Time

	size       graphics.Size
	dispatches []func()
	timeline   Timeline

	nextPointer int64
	pointers    map[int64]graphics.Offset
}

// NewTester creates a tester with the default 400x800 surface.
// Call Cleanup when done, or use NewTesterWithT instead.
func NewTester() *Tester {
	clk := NewFakeClock()
	t := &Tester{
		clock:    clk,
		size:     graphics.Size{Width: DefaultWidth, Height: DefaultHeight},
		arena:    gestures.NewGestureArena(),
		pointers: make(map[int64]graphics.Offset),
	}
	t.prevClock = animation.SetClock(clk)
	t.start = clk.Now()
	platform.RegisterDispatch(t.Dispatch)
	return t
}

// NewTesterWithT creates a tester that cleans up via t.Cleanup.
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup disposes the mounted sheet and restores the animation clock and
// platform dispatcher. Must be called if not using NewTesterWithT.
func (t *Tester) Cleanup() {
	if t.sheet != nil {
		t.sheet.Dispose()
		t.sheet = nil
		t.recognizer = nil
	}
	t.dispatches = nil
	platform.RegisterDispatch(nil)
	animation.SetClock(t.prevClock)
}

// SetSize sets the logical surface size. Must be called before MountSheet.
func (t *Tester) SetSize(size graphics.Size) {
	t.size = size
}

// Clock returns the fake clock for advancing time directly.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// Sheet returns the currently mounted sheet, or nil.
func (t *Tester) Sheet() *sheet.Sheet {
	return t.sheet
}

// MountSheet constructs a sheet against the tester's surface, binds its
// drag recognizer to the tester's arena and clock, and resets the recorded
// timeline. A previously mounted sheet is disposed.
func (t *Tester) MountSheet(height float64, opts ...sheet.Option) *sheet.Sheet {
	if t.sheet != nil {
		t.sheet.Dispose()
	}
	t.sheet = sheet.New(sheet.FixedMetrics{Size: t.size}, height, opts...)
	t.recognizer = t.sheet.DragRecognizer(t.arena)
	t.recognizer.Now = t.clock.Now
	t.timeline = nil
	t.start = t.clock.Now()
	return t.sheet
}

// Pump runs a single frame: drains the dispatch queue, steps tickers, and
// records a timeline sample at the current clock time.
func (t *Tester) Pump() {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	animation.StepTickers()
	t.record()
}

// PumpFrames advances the clock by FrameDuration and pumps, n times.
func (t *Tester) PumpFrames(n int) {
	for i := 0; i < n; i++ {
		t.clock.Advance(FrameDuration)
		t.Pump()
	}
}

// PumpAndSettle pumps frames until nothing is animating and the dispatch
// queue is empty, advancing the clock by FrameDuration between frames.
// Returns ErrSettleTimeout if the sheet does not settle within timeout.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		t.Pump()
		if !t.needsWork() {
			return nil
		}
		t.clock.Advance(FrameDuration)
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}

// needsWork reports whether a frame would still do something.
func (t *Tester) needsWork() bool {
	return animation.HasActiveTickers() || len(t.dispatches) > 0
}

// Dispatch queues a callback for the next frame, mirroring a host loop.
// It is registered with the platform package while the tester is alive.
func (t *Tester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// Timeline returns the samples recorded so far.
func (t *Tester) Timeline() Timeline {
	return t.timeline
}

// ResetTimeline discards recorded samples and restarts the sample clock
// at the current time.
func (t *Tester) ResetTimeline() {
	t.timeline = nil
	t.start = t.clock.Now()
}

func (t *Tester) record() {
	if t.sheet == nil {
		return
	}
	t.timeline = append(t.timeline, Sample{
		At:      t.clock.Now().Sub(t.start),
		Offset:  t.sheet.Offset(),
		Opacity: t.sheet.BackdropOpacity(),
		Visible: t.sheet.Visible(),
	})
}

// PointerDown starts a pointer gesture at pos against the mounted sheet's
// recognizer and closes the arena contest. Returns the pointer ID for
// subsequent moves.
func (t *Tester) PointerDown(pos graphics.Offset) int64 {
	t.nextPointer++
	id := t.nextPointer
	t.pointers[id] = pos
	t.recognizer.AddPointer(gestures.PointerEvent{
		PointerID: id,
		Position:  pos,
		Phase:     gestures.PointerPhaseDown,
	})
	t.arena.Close(id)
	return id
}

// PointerMove moves an active pointer to pos.
func (t *Tester) PointerMove(id int64, pos graphics.Offset) {
	prev, ok := t.pointers[id]
	if !ok {
		return
	}
	t.pointers[id] = pos
	t.recognizer.HandleEvent(gestures.PointerEvent{
		PointerID: id,
		Position:  pos,
		Delta:     pos.Sub(prev),
		Phase:     gestures.PointerPhaseMove,
	})
}

// PointerUp lifts an active pointer and sweeps the arena.
func (t *Tester) PointerUp(id int64) {
	pos, ok := t.pointers[id]
	if !ok {
		return
	}
	delete(t.pointers, id)
	t.recognizer.HandleEvent(gestures.PointerEvent{
		PointerID: id,
		Position:  pos,
		Phase:     gestures.PointerPhaseUp,
	})
	t.arena.Sweep(id)
}

// PointerCancel cancels an active pointer and sweeps the arena.
func (t *Tester) PointerCancel(id int64) {
	pos, ok := t.pointers[id]
	if !ok {
		return
	}
	delete(t.pointers, id)
	t.recognizer.HandleEvent(gestures.PointerEvent{
		PointerID: id,
		Position:  pos,
		Phase:     gestures.PointerPhaseCancel,
	})
	t.arena.Sweep(id)
}

// DragBy scripts a full drag gesture: pointer down at start, then steps
// evenly spaced moves covering delta with one pumped frame each, then
// pointer up and a final pump. Larger per-step movement produces higher
// release velocity.
func (t *Tester) DragBy(start, delta graphics.Offset, steps int) {
	if steps < 1 {
		steps = 1
	}
	id := t.PointerDown(start)
	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		pos := graphics.Offset{
			X: start.X + delta.X*frac,
			Y: start.Y + delta.Y*frac,
		}
		t.clock.Advance(FrameDuration)
		t.PointerMove(id, pos)
		t.Pump()
	}
	t.PointerUp(id)
	t.Pump()
}
