// Package gestures turns raw pointer events into drag gestures.
//
// Pointer events flow from the host into recognizers. Recognizers
// competing for the same pointer are refereed by a [GestureArena] so that
// exactly one of them claims the gesture. A [VerticalDragRecognizer]
// enters the arena on pointer down, holds the contest open while it
// watches for decisive vertical movement, and resolves or withdraws once
// the touch slop is exceeded.
package gestures

import "sync"

// ArenaMember is a recognizer competing for a pointer. The arena calls
// exactly one of these per contested pointer.
type ArenaMember interface {
	// AcceptGesture tells the member it won the pointer.
	AcceptGesture(pointerID int64)
	// RejectGesture tells the member it lost the pointer.
	RejectGesture(pointerID int64)
}

// DefaultArena is the arena used when recognizers are not given one
// explicitly.
var DefaultArena = NewGestureArena()

// GestureArena referees recognizers competing for pointers.
//
// The contest for a pointer opens on Add and stops accepting members at
// Close. A lone member wins at Close unless it has placed a Hold, in
// which case the contest stays undecided until the member calls Resolve
// or Reject. Sweep forces a decision when the pointer lifts; a held
// contest defers the sweep until Release.
type GestureArena struct {
	mu       sync.Mutex
	contests map[int64]*arenaContest
}

type arenaContest struct {
	members      []ArenaMember
	open         bool
	held         bool
	pendingSweep bool
	eagerWinner  ArenaMember
}

// NewGestureArena creates an empty arena.
func NewGestureArena() *GestureArena {
	return &GestureArena{contests: make(map[int64]*arenaContest)}
}

// Add enters a member into the contest for a pointer, opening the contest
// if this is its first member. Members arriving after Close are ignored.
func (a *GestureArena) Add(pointerID int64, member ArenaMember) {
	a.mu.Lock()
	defer a.mu.Unlock()

	contest, ok := a.contests[pointerID]
	if !ok {
		contest = &arenaContest{open: true}
		a.contests[pointerID] = contest
	}
	if contest.open {
		contest.members = append(contest.members, member)
	}
}

// Hold keeps the contest undecided past Close so the member can watch
// movement before committing. The member must later call Resolve or
// Reject.
func (a *GestureArena) Hold(pointerID int64, member ArenaMember) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if contest, ok := a.contests[pointerID]; ok {
		contest.held = true
	}
}

// Release lifts a hold. If a sweep arrived while the contest was held,
// the sweep resolution runs now.
func (a *GestureArena) Release(pointerID int64) {
	a.mu.Lock()
	contest, ok := a.contests[pointerID]
	if !ok {
		a.mu.Unlock()
		return
	}
	contest.held = false
	sweep := contest.pendingSweep
	a.mu.Unlock()

	if sweep {
		a.Sweep(pointerID)
	}
}

// Close stops admitting members. A lone unheld member wins immediately.
func (a *GestureArena) Close(pointerID int64) {
	a.mu.Lock()
	contest, ok := a.contests[pointerID]
	if !ok {
		a.mu.Unlock()
		return
	}
	contest.open = false
	a.tryResolveLocked(pointerID, contest)
}

// Resolve declares the member the winner of the contest. While the
// contest is open the win is recorded and declared at Close.
func (a *GestureArena) Resolve(pointerID int64, member ArenaMember) {
	a.mu.Lock()
	contest, ok := a.contests[pointerID]
	if !ok {
		a.mu.Unlock()
		return
	}
	if contest.open {
		contest.eagerWinner = member
		a.mu.Unlock()
		return
	}
	a.declareLocked(pointerID, contest, member)
}

// Reject withdraws the member from the contest. The last remaining member
// of a closed, unheld contest wins.
func (a *GestureArena) Reject(pointerID int64, member ArenaMember) {
	a.mu.Lock()
	contest, ok := a.contests[pointerID]
	if !ok {
		a.mu.Unlock()
		return
	}
	for i, m := range contest.members {
		if m == member {
			contest.members = append(contest.members[:i], contest.members[i+1:]...)
			break
		}
	}
	a.mu.Unlock()
	member.RejectGesture(pointerID)

	a.mu.Lock()
	if contest, ok := a.contests[pointerID]; ok && !contest.open {
		a.tryResolveLocked(pointerID, contest)
		return
	}
	a.mu.Unlock()
}

// Sweep forces a decision when the pointer lifts: the first member wins.
// A held contest records the sweep and defers it until Release.
func (a *GestureArena) Sweep(pointerID int64) {
	a.mu.Lock()
	contest, ok := a.contests[pointerID]
	if !ok {
		a.mu.Unlock()
		return
	}
	if contest.held {
		contest.pendingSweep = true
		a.mu.Unlock()
		return
	}
	if len(contest.members) == 0 {
		delete(a.contests, pointerID)
		a.mu.Unlock()
		return
	}
	a.declareLocked(pointerID, contest, contest.members[0])
}

// tryResolveLocked is called with the mutex held and releases it.
func (a *GestureArena) tryResolveLocked(pointerID int64, contest *arenaContest) {
	if contest.eagerWinner != nil {
		a.declareLocked(pointerID, contest, contest.eagerWinner)
		return
	}
	if len(contest.members) == 0 {
		delete(a.contests, pointerID)
		a.mu.Unlock()
		return
	}
	if len(contest.members) == 1 && !contest.held {
		a.declareLocked(pointerID, contest, contest.members[0])
		return
	}
	a.mu.Unlock()
}

// declareLocked is called with the mutex held and releases it before
// invoking member callbacks.
func (a *GestureArena) declareLocked(pointerID int64, contest *arenaContest, winner ArenaMember) {
	members := contest.members
	delete(a.contests, pointerID)
	a.mu.Unlock()

	winner.AcceptGesture(pointerID)
	for _, m := range members {
		if m != winner {
			m.RejectGesture(pointerID)
		}
	}
}
