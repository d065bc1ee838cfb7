package sheet

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/bottomsheet/pkg/animation"
	"github.com/go-drift/bottomsheet/pkg/graphics"
)

type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// installTestClock swaps the animation clock for a controllable one and
// restores the previous clock when the test ends.
func installTestClock(t *testing.T) *testClock {
	t.Helper()
	clock := newTestClock()
	prev := animation.SetClock(clock)
	t.Cleanup(func() { animation.SetClock(prev) })
	return clock
}

// newTestSheet builds a sheet against a 400x800 surface and disposes it
// when the test ends so no ticker outlives its test.
func newTestSheet(t *testing.T, height float64, opts ...Option) *Sheet {
	t.Helper()
	s := New(FixedMetrics{Size: graphics.Size{Width: 400, Height: 800}}, height, opts...)
	t.Cleanup(s.Dispose)
	return s
}

// pumpFrames advances the clock and steps tickers n times at 16 ms/frame.
func pumpFrames(clock *testClock, n int) {
	for i := 0; i < n; i++ {
		clock.advance(16 * time.Millisecond)
		animation.StepTickers()
	}
}

// pumpUntilIdle steps 16 ms frames until no ticker remains active.
func pumpUntilIdle(t *testing.T, clock *testClock) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !animation.HasActiveTickers() {
			return
		}
		pumpFrames(clock, 1)
	}
	t.Fatal("animation did not settle within 1000 frames")
}

func floatNear(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSheetStartsClosed(t *testing.T) {
	s := newTestSheet(t, 400)
	if got := s.Offset(); got != 800 {
		t.Errorf("Offset() = %v, want 800", got)
	}
	if got := s.Phase(); got != PhaseIdle {
		t.Errorf("Phase() = %v, want idle", got)
	}
	if s.Visible() {
		t.Error("a closed sheet should not be visible")
	}
	if got := s.BackdropOpacity(); got != 0 {
		t.Errorf("BackdropOpacity() = %v, want 0", got)
	}
	if s.BackdropInteractive() {
		t.Error("a closed sheet's backdrop should not be interactive")
	}
}

func TestRestOffsets(t *testing.T) {
	tests := []struct {
		height     float64
		wantOpen   float64
		wantClosed float64
	}{
		{400, 400, 800},
		{300, 500, 800},
		{800, 0, 800},
	}
	for _, tt := range tests {
		s := newTestSheet(t, tt.height)
		if got := s.OpenOffset(); got != tt.wantOpen {
			t.Errorf("height %v: OpenOffset() = %v, want %v", tt.height, got, tt.wantOpen)
		}
		if got := s.ClosedOffset(); got != tt.wantClosed {
			t.Errorf("height %v: ClosedOffset() = %v, want %v", tt.height, got, tt.wantClosed)
		}
		if got := s.Height(); got != tt.height {
			t.Errorf("Height() = %v, want %v", got, tt.height)
		}
		if got := s.ScreenHeight(); got != 800 {
			t.Errorf("ScreenHeight() = %v, want 800", got)
		}
	}
}

func TestFrameTracksOffset(t *testing.T) {
	s := newTestSheet(t, 400)
	want := graphics.RectFromLTWH(0, 800, 400, 400)
	if got := s.Frame(); got != want {
		t.Errorf("closed Frame() = %+v, want %+v", got, want)
	}

	s.HandleDragStart()
	s.HandleDragMove(-200)
	want = graphics.RectFromLTWH(0, 600, 400, 400)
	if got := s.Frame(); got != want {
		t.Errorf("mid-drag Frame() = %+v, want %+v", got, want)
	}
	if !s.Frame().Contains(graphics.Offset{X: 200, Y: 700}) {
		t.Error("a point on the sheet surface should fall inside Frame()")
	}
	if s.Frame().Contains(graphics.Offset{X: 200, Y: 300}) {
		t.Error("a point above the sheet should fall outside Frame()")
	}
}

func TestDefaultConfig(t *testing.T) {
	s := newTestSheet(t, 400)
	cfg := s.Config()
	if cfg.Transition.Kind != animation.TransitionTimed {
		t.Errorf("default transition kind = %v, want timed", cfg.Transition.Kind)
	}
	if cfg.Transition.Duration != 300*time.Millisecond {
		t.Errorf("default duration = %v, want 300ms", cfg.Transition.Duration)
	}
	if cfg.Transition.Curve == nil {
		t.Error("default transition should carry an easing curve")
	}
	if cfg.BackdropColor != DefaultBackdropColor {
		t.Errorf("default backdrop color = %v, want %v", cfg.BackdropColor, DefaultBackdropColor)
	}
	if cfg.SheetStyle != DefaultStyle() {
		t.Errorf("default sheet style = %+v, want %+v", cfg.SheetStyle, DefaultStyle())
	}
	if cfg.DismissVelocity != 0 {
		t.Errorf("fling dismissal should be off by default, got %v", cfg.DismissVelocity)
	}
}

func TestVisibilityBoundary(t *testing.T) {
	tests := []struct {
		offset float64
		want   bool
	}{
		{400, true},
		{789, true},
		{790, true},
		{791, false},
		{800, false},
	}
	for _, tt := range tests {
		s := newTestSheet(t, 400)
		s.HandleDragStart()
		s.HandleDragMove(tt.offset - 800)
		if got := s.Visible(); got != tt.want {
			t.Errorf("Visible() at offset %v = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestBackdropOpacityMapping(t *testing.T) {
	tests := []struct {
		offset float64
		want   float64
	}{
		{800, 0},
		{700, 0.25},
		{600, 0.5},
		{500, 0.75},
		{400, 1},
		{900, 0}, // dragged past the closed rest point
	}
	for _, tt := range tests {
		s := newTestSheet(t, 400)
		s.HandleDragStart()
		s.HandleDragMove(tt.offset - 800)
		if got := s.BackdropOpacity(); !floatNear(got, tt.want) {
			t.Errorf("BackdropOpacity() at offset %v = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestBackdropOpacityClampedDuringOvershoot(t *testing.T) {
	clock := installTestClock(t)
	s := newTestSheet(t, 400, WithSpring(animation.BouncySpring()))
	s.Show()

	overshot := false
	for i := 0; i < 1000 && animation.HasActiveTickers(); i++ {
		pumpFrames(clock, 1)
		if s.Offset() < s.OpenOffset() {
			overshot = true
		}
		if got := s.BackdropOpacity(); got > 1 {
			t.Fatalf("BackdropOpacity() = %v at offset %v, want <= 1", got, s.Offset())
		}
	}
	if !overshot {
		t.Error("expected the bouncy spring to overshoot the open offset")
	}
}

func TestZeroHeightDegenerates(t *testing.T) {
	clock := installTestClock(t)
	s := newTestSheet(t, 0)
	if got := s.OpenOffset(); got != 800 {
		t.Errorf("OpenOffset() = %v, want 800", got)
	}
	if got := s.BackdropOpacity(); got != 0 {
		t.Errorf("BackdropOpacity() = %v, want 0", got)
	}
	s.Show()
	pumpUntilIdle(t, clock)
	if got := s.Offset(); got != 800 {
		t.Errorf("Offset() after Show = %v, want 800", got)
	}
	if s.Visible() {
		t.Error("a zero-height sheet should never be visible")
	}
}

func TestDragMoveSkipsWritesPastOpenOffset(t *testing.T) {
	s := newTestSheet(t, 400)
	s.HandleDragStart()
	s.HandleDragMove(-300)
	if got := s.Offset(); got != 500 {
		t.Fatalf("Offset() = %v, want 500", got)
	}

	// Overshooting the open offset drops the write entirely; the offset
	// keeps its previous value rather than clamping to 400.
	s.HandleDragMove(-450)
	if got := s.Offset(); got != 500 {
		t.Errorf("Offset() after overshooting move = %v, want 500", got)
	}

	s.HandleDragMove(-350)
	if got := s.Offset(); got != 450 {
		t.Errorf("Offset() = %v, want 450", got)
	}
}

func TestDragMoveUnboundedDownward(t *testing.T) {
	s := newTestSheet(t, 400)
	s.HandleDragStart()
	s.HandleDragMove(150)
	if got := s.Offset(); got != 950 {
		t.Errorf("Offset() = %v, want 950", got)
	}
	if s.Visible() {
		t.Error("a sheet dragged past the closed rest point should not be visible")
	}
}

func TestMovesWhileIdleIgnored(t *testing.T) {
	s := newTestSheet(t, 400)
	s.HandleDragMove(100)
	if got := s.Offset(); got != 800 {
		t.Errorf("Offset() = %v, want 800", got)
	}
	if got := s.Phase(); got != PhaseIdle {
		t.Errorf("Phase() = %v, want idle", got)
	}
	s.HandleDragEnd(0)
	if got := s.Phase(); got != PhaseIdle {
		t.Errorf("Phase() after stray end = %v, want idle", got)
	}
}

func TestReleaseDecision(t *testing.T) {
	tests := []struct {
		name   string
		dragTo float64
		want   float64
	}{
		{"below halfway dismisses", 650, 800},
		{"above halfway opens", 550, 400},
		{"exactly at halfway opens", 600, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := installTestClock(t)
			s := newTestSheet(t, 400)
			s.HandleDragStart()
			s.HandleDragMove(tt.dragTo - 800)
			s.HandleDragEnd(0)
			if got := s.Phase(); got != PhaseSettling {
				t.Fatalf("Phase() after release = %v, want settling", got)
			}
			pumpUntilIdle(t, clock)
			if got := s.Offset(); got != tt.want {
				t.Errorf("Offset() = %v, want %v", got, tt.want)
			}
			if got := s.Phase(); got != PhaseIdle {
				t.Errorf("Phase() after settling = %v, want idle", got)
			}
		})
	}
}

func TestReleaseWithoutMoves(t *testing.T) {
	clock := installTestClock(t)
	s := newTestSheet(t, 400)
	s.HandleDragStart()
	s.HandleDragEnd(0)

	// The decision rule applies to the unmoved position, so the closed
	// sheet settles toward the closed offset it already holds.
	if got := s.Phase(); got != PhaseSettling {
		t.Fatalf("Phase() after release = %v, want settling", got)
	}
	pumpUntilIdle(t, clock)
	if got := s.Offset(); got != 800 {
		t.Errorf("Offset() = %v, want 800", got)
	}
}

func TestShowConverges(t *testing.T) {
	clock := installTestClock(t)
	s := newTestSheet(t, 300)
	s.Show()
	pumpUntilIdle(t, clock)
	if got := s.Offset(); got != 500 {
		t.Errorf("Offset() = %v, want 500", got)
	}
	if !s.Visible() {
		t.Error("an open sheet should be visible")
	}
	if got := s.BackdropOpacity(); got != 1 {
		t.Errorf("BackdropOpacity() = %v, want 1", got)
	}
	if got := s.Phase(); got != PhaseIdle {
		t.Errorf("Phase() = %v, want idle", got)
	}
}

func TestDismissConverges(t *testing.T) {
	clock := installTestClock(t)
	s := newTestSheet(t, 300)
	s.Show()
	pumpUntilIdle(t, clock)
	s.Dismiss()
	pumpUntilIdle(t, clock)
	if got := s.Offset(); got != 800 {
		t.Errorf("Offset() = %v, want 800", got)
	}
	if s.Visible() {
		t.Error("a dismissed sheet should not be visible")
	}
	if got := s.BackdropOpacity(); got != 0 {
		t.Errorf("BackdropOpacity() = %v, want 0", got)
	}
}

func TestShowRestartsTransition(t *testing.T) {
	clock := installTestClock(t)
	s := newTestSheet(t, 400)
	s.Show()
	pumpUntilIdle(t, clock)

	// No no-op guard: Show on an open sheet runs a full transition.
	s.Show()
	if got := s.Phase(); got != PhaseSettling {
		t.Errorf("Phase() after repeated Show = %v, want settling", got)
	}
	if !animation.HasActiveTickers() {
		t.Error("repeated Show should start a transition")
	}
	pumpUntilIdle(t, clock)
	if got := s.Offset(); got != 400 {
		t.Errorf("Offset() = %v, want 400", got)
	}
}

func TestSettleCallback(t *testing.T) {
	clock := installTestClock(t)
	var settled []bool
	s := newTestSheet(t, 400, WithSettleCallback(func(open bool) {
		settled = append(settled, open)
	}))

	s.Show()
	pumpUntilIdle(t, clock)
	s.Dismiss()
	pumpUntilIdle(t, clock)

	if len(settled) != 2 || settled[0] != true || settled[1] != false {
		t.Errorf("settle callbacks = %v, want [true false]", settled)
	}
}

func TestPreemptionContinuesFromCurrentOffset(t *testing.T) {
	clock := installTestClock(t)
	var settled []bool
	s := newTestSheet(t, 400,
		WithTiming(160*time.Millisecond, animation.LinearCurve),
		WithSettleCallback(func(open bool) { settled = append(settled, open) }),
	)

	s.Show()
	pumpFrames(clock, 5)
	if got := s.Offset(); got != 600 {
		t.Fatalf("Offset() mid-flight = %v, want 600", got)
	}

	// Dismiss preempts the show and starts from the mid-flight value.
	s.Dismiss()
	if got := s.Offset(); got != 600 {
		t.Errorf("Offset() right after preemption = %v, want 600", got)
	}
	pumpFrames(clock, 1)
	if got := s.Offset(); got != 620 {
		t.Errorf("Offset() one frame into dismiss = %v, want 620", got)
	}

	pumpUntilIdle(t, clock)
	if got := s.Offset(); got != 800 {
		t.Errorf("Offset() = %v, want 800", got)
	}
	if len(settled) != 1 || settled[0] != false {
		t.Errorf("settle callbacks = %v, want [false]: preempted transitions must not settle", settled)
	}
}

func TestShowDuringDragPreemptsGesture(t *testing.T) {
	clock := installTestClock(t)
	s := newTestSheet(t, 400)
	s.HandleDragStart()
	s.HandleDragMove(-300)
	if got := s.Offset(); got != 500 {
		t.Fatalf("Offset() = %v, want 500", got)
	}

	s.Show()
	if got := s.Phase(); got != PhaseSettling {
		t.Fatalf("Phase() after Show = %v, want settling", got)
	}

	// The gesture lost ownership; its remaining events are ignored.
	s.HandleDragMove(-100)
	if got := s.Offset(); got != 500 {
		t.Errorf("Offset() after stale move = %v, want 500", got)
	}
	s.HandleDragEnd(0)
	if got := s.Phase(); got != PhaseSettling {
		t.Errorf("Phase() after stale end = %v, want settling", got)
	}

	pumpUntilIdle(t, clock)
	if got := s.Offset(); got != 400 {
		t.Errorf("Offset() = %v, want 400", got)
	}
}

func TestDragStartStopsAnimation(t *testing.T) {
	clock := installTestClock(t)
	s := newTestSheet(t, 400, WithTiming(160*time.Millisecond, animation.LinearCurve))
	s.Show()
	pumpFrames(clock, 5)

	s.HandleDragStart()
	if animation.HasActiveTickers() {
		t.Error("drag start should stop the transition in flight")
	}
	if got := s.Offset(); got != 600 {
		t.Errorf("Offset() = %v, want the mid-flight value 600", got)
	}
	if got := s.Phase(); got != PhaseDragging {
		t.Errorf("Phase() = %v, want dragging", got)
	}

	// The gesture continues from the stopped value.
	s.HandleDragMove(50)
	if got := s.Offset(); got != 650 {
		t.Errorf("Offset() = %v, want 650", got)
	}
}

func TestFlingDismissal(t *testing.T) {
	tests := []struct {
		name     string
		velocity float64
		want     float64
	}{
		{"fast downward fling dismisses", 900, 800},
		{"slow release follows position", 700, 400},
		{"upward fling follows position", -1200, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := installTestClock(t)
			s := newTestSheet(t, 400, WithDismissVelocity(800))
			s.HandleDragStart()
			s.HandleDragMove(-250)
			s.HandleDragEnd(tt.velocity)
			pumpUntilIdle(t, clock)
			if got := s.Offset(); got != tt.want {
				t.Errorf("Offset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlingDisabledByDefault(t *testing.T) {
	clock := installTestClock(t)
	s := newTestSheet(t, 400)
	s.HandleDragStart()
	s.HandleDragMove(-250)
	s.HandleDragEnd(5000)
	pumpUntilIdle(t, clock)
	if got := s.Offset(); got != 400 {
		t.Errorf("Offset() = %v, want 400: position rule must decide when fling is disabled", got)
	}
}

func TestSpringReleaseCarriesVelocity(t *testing.T) {
	clock := installTestClock(t)
	s := newTestSheet(t, 400, WithSpring(animation.IOSSpring()))
	s.HandleDragStart()
	s.HandleDragMove(-250)
	s.HandleDragEnd(900)

	// Released moving downward: the spring first travels with the gesture
	// before pulling back toward the open offset.
	pumpFrames(clock, 1)
	if got := s.Offset(); got <= 550 {
		t.Errorf("Offset() after one frame = %v, want > 550", got)
	}

	pumpUntilIdle(t, clock)
	if got := s.Offset(); got != 400 {
		t.Errorf("Offset() = %v, want 400", got)
	}
}

func TestPositionListeners(t *testing.T) {
	s := newTestSheet(t, 400)
	var got []float64
	remove := s.AddPositionListener(func(offset float64) {
		got = append(got, offset)
	})

	s.HandleDragStart()
	s.HandleDragMove(-100)
	s.HandleDragMove(-200)
	if len(got) != 2 || got[0] != 700 || got[1] != 600 {
		t.Fatalf("listener saw %v, want [700 600]", got)
	}

	remove()
	s.HandleDragMove(-300)
	if len(got) != 2 {
		t.Errorf("listener saw %d offsets after unsubscribe, want 2", len(got))
	}
}

func TestDisposeStopsTransition(t *testing.T) {
	installTestClock(t)
	s := newTestSheet(t, 400)
	s.Show()
	s.Dispose()
	if animation.HasActiveTickers() {
		t.Error("Dispose should stop the transition in flight")
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "idle"},
		{PhaseDragging, "dragging"},
		{PhaseSettling, "settling"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
