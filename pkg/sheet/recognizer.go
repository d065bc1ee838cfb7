package sheet

import "github.com/go-drift/bottomsheet/pkg/gestures"

// DragRecognizer builds a vertical drag recognizer bound to the sheet's
// gesture lifecycle. Accepted drags call HandleDragStart, feed the
// cumulative translation to HandleDragMove, and settle through
// HandleDragEnd with the smoothed release velocity. A canceled pointer
// settles the sheet as a zero-velocity release so it never sticks
// mid-drag.
//
// Pass nil to compete in the default arena.
func (s *Sheet) DragRecognizer(arena *gestures.GestureArena) *gestures.VerticalDragRecognizer {
	rec := gestures.NewVerticalDragRecognizer(arena)

	// Cumulative translation since the gesture was accepted. The accepting
	// update spans from the previous pointer sample, so slop movement split
	// across earlier samples is consumed by recognition rather than
	// replayed into the sheet.
	var translation float64

	rec.OnStart = func(gestures.DragStartDetails) {
		translation = 0
		s.HandleDragStart()
	}
	rec.OnUpdate = func(d gestures.DragUpdateDetails) {
		translation += d.PrimaryDelta
		s.HandleDragMove(translation)
	}
	rec.OnEnd = func(d gestures.DragEndDetails) {
		s.HandleDragEnd(d.PrimaryVelocity)
	}
	rec.OnCancel = func() {
		s.HandleDragEnd(0)
	}
	return rec
}
