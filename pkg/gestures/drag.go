package gestures

import (
	"math"
	"time"

	"github.com/go-drift/bottomsheet/pkg/graphics"
)

// DragStartDetails reports where a recognized drag began.
type DragStartDetails struct {
	Position graphics.Offset
}

// DragUpdateDetails reports one step of an active drag.
type DragUpdateDetails struct {
	Position graphics.Offset
	// Delta is the movement since the previous update.
	Delta graphics.Offset
	// PrimaryDelta is the movement along the recognizer's axis.
	PrimaryDelta float64
}

// DragEndDetails reports the release of an active drag.
type DragEndDetails struct {
	Position graphics.Offset
	// Velocity is the smoothed pointer velocity in pixels per second.
	Velocity graphics.Offset
	// PrimaryVelocity is the velocity along the recognizer's axis.
	PrimaryVelocity float64
}

// VerticalDragRecognizer recognizes vertical drags with conditional
// acceptance.
//
// On pointer down the recognizer enters its arena and places a hold so it
// can watch movement before committing. Once total movement exceeds the
// touch slop with the vertical component dominant, ShouldAccept decides
// whether to claim the gesture; horizontal-dominant movement withdraws it.
// This lets a sheet pass gestures through to scrollable content under it.
type VerticalDragRecognizer struct {
	Arena *GestureArena
	// ShouldAccept is called once slop is exceeded with the total vertical
	// travel since pointer down. A nil callback accepts every drag.
	ShouldAccept func(totalDelta float64) bool
	OnStart      func(DragStartDetails)
	OnUpdate     func(DragUpdateDetails)
	OnEnd        func(DragEndDetails)
	OnCancel     func()
	// Now is the time source for velocity tracking. Defaults to time.Now.
	Now func() time.Time

	pointer  int64           // current pointer being tracked
	start    graphics.Offset // initial touch position
	last     graphics.Offset // most recent touch position
	lastTime time.Time       // timestamp of last update (for velocity)
	velocity float64         // smoothed vertical velocity in pixels/second
	slop     float64         // minimum distance before recognizing a drag
	accepted bool            // true after winning the arena
	reject   bool            // true if the gesture was rejected
	started  bool            // true after OnStart has been called
}

// NewVerticalDragRecognizer creates a recognizer competing in the given
// arena. A nil arena falls back to [DefaultArena].
func NewVerticalDragRecognizer(arena *GestureArena) *VerticalDragRecognizer {
	if arena == nil {
		arena = DefaultArena
	}
	return &VerticalDragRecognizer{Arena: arena}
}

// AddPointer starts tracking a pointer from its down event and enters the
// arena contest for it.
func (r *VerticalDragRecognizer) AddPointer(event PointerEvent) {
	if r.Arena == nil {
		return
	}
	r.pointer = event.PointerID
	r.start = event.Position
	r.last = event.Position
	r.lastTime = r.now()
	r.velocity = 0
	r.slop = DefaultTouchSlop
	r.accepted = false
	r.reject = false
	r.started = false
	r.Arena.Add(event.PointerID, r)
	r.Arena.Hold(event.PointerID, r)
}

// HandleEvent processes move, up and cancel events for the tracked
// pointer. Events for other pointers are ignored.
func (r *VerticalDragRecognizer) HandleEvent(event PointerEvent) {
	if event.PointerID != r.pointer || r.reject {
		return
	}
	switch event.Phase {
	case PointerPhaseMove:
		r.handleMove(event)
	case PointerPhaseUp:
		r.handleUp(event)
	case PointerPhaseCancel:
		r.handleCancel()
	}
}

// handleMove decides acceptance once slop is exceeded and tracks velocity
// for fling detection.
func (r *VerticalDragRecognizer) handleMove(event PointerEvent) {
	now := r.now()
	dt := now.Sub(r.lastTime).Seconds()

	// Total movement from the down position decides recognition.
	total := event.Position.Sub(r.start)
	primary := math.Abs(total.Y)
	orthogonal := math.Abs(total.X)

	if !r.accepted {
		if primary > r.slop && primary >= orthogonal {
			// Vertical movement dominant: ask the callback whether to claim.
			shouldAccept := true
			if r.ShouldAccept != nil {
				shouldAccept = r.ShouldAccept(total.Y)
			}
			if shouldAccept {
				r.Arena.Resolve(r.pointer, r)
			} else {
				r.reject = true
				r.Arena.Reject(r.pointer, r)
				return
			}
		} else if orthogonal > r.slop {
			// Horizontal movement dominant: likely a horizontal scroll.
			r.reject = true
			r.Arena.Reject(r.pointer, r)
			return
		}
	}

	// Exponential smoothing keeps fling detection stable across jittery
	// input.
	delta := event.Position.Sub(r.last)
	if dt > 0 {
		inst := delta.Y / dt
		r.velocity = r.velocity*0.8 + inst*0.2
	}

	if r.accepted {
		r.ensureStarted()
		if r.OnUpdate != nil {
			r.OnUpdate(DragUpdateDetails{
				Position:     event.Position,
				Delta:        delta,
				PrimaryDelta: delta.Y,
			})
		}
	}

	r.last = event.Position
	r.lastTime = now
}

func (r *VerticalDragRecognizer) handleUp(event PointerEvent) {
	if r.accepted {
		if r.OnEnd != nil {
			r.OnEnd(DragEndDetails{
				Position:        event.Position,
				Velocity:        graphics.Offset{X: 0, Y: r.velocity},
				PrimaryVelocity: r.velocity,
			})
		}
	} else {
		r.Arena.Reject(r.pointer, r)
	}
}

func (r *VerticalDragRecognizer) handleCancel() {
	if r.accepted && r.OnCancel != nil {
		r.OnCancel()
	}
	r.reject = true
	r.Arena.Reject(r.pointer, r)
}

// AcceptGesture is called by the arena when this recognizer wins.
func (r *VerticalDragRecognizer) AcceptGesture(pointerID int64) {
	if pointerID != r.pointer || r.reject {
		return
	}
	r.accepted = true
	r.ensureStarted()
}

// RejectGesture is called by the arena when this recognizer loses.
func (r *VerticalDragRecognizer) RejectGesture(pointerID int64) {
	if pointerID != r.pointer {
		return
	}
	r.reject = true
}

func (r *VerticalDragRecognizer) ensureStarted() {
	if r.started {
		return
	}
	r.started = true
	if r.OnStart != nil {
		r.OnStart(DragStartDetails{Position: r.start})
	}
}

func (r *VerticalDragRecognizer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
