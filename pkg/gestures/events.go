package gestures

import (
	"fmt"

	"github.com/go-drift/bottomsheet/pkg/graphics"
)

// DefaultTouchSlop is the distance in logical pixels a pointer must travel
// before a drag is recognized.
const DefaultTouchSlop = 18.0

// PointerPhase identifies where a pointer event sits in the
// down/move/up lifecycle.
type PointerPhase int

const (
	// PointerPhaseDown marks initial contact.
	PointerPhaseDown PointerPhase = iota
	// PointerPhaseMove marks movement while in contact.
	PointerPhaseMove
	// PointerPhaseUp marks the pointer lifting normally.
	PointerPhaseUp
	// PointerPhaseCancel marks an aborted interaction, for example when the
	// host loses the pointer stream.
	PointerPhaseCancel
)

// String returns a human-readable representation of the phase.
func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerPhase(%d)", int(p))
	}
}

// PointerEvent is a single pointer sample delivered by the host.
type PointerEvent struct {
	// PointerID distinguishes concurrent pointers. All events of one
	// interaction carry the same ID.
	PointerID int64
	// Position is the pointer location in logical pixels.
	Position graphics.Offset
	// Delta is the movement since the previous event of this pointer.
	Delta graphics.Offset
	// Phase is the lifecycle phase of this event.
	Phase PointerPhase
}
