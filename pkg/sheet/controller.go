package sheet

import (
	"sync"

	"github.com/go-drift/bottomsheet/pkg/platform"
)

// pendingCommand remembers the most recent imperative command issued while
// a controller was detached.
type pendingCommand int

const (
	pendingNone pendingCommand = iota
	pendingShow
	pendingDismiss
)

// Controller is an imperative handle for a Sheet. It can be created before
// the sheet exists and passed to New via WithController; Show and Dismiss
// calls made while detached are remembered (last command wins) and
// replayed on attach. Other calls while detached are no-ops: IsActive
// reads false and Offset reads 0.
//
// Controller methods are safe to call from any goroutine. Commands are
// marshalled onto the host loop through platform.Invoke, which runs them
// inline when no dispatcher is registered.
type Controller struct {
	mu sync.Mutex

	sheet   *Sheet
	pending pendingCommand

	listeners    map[int]func(float64)
	nextListener int
	unsubscribe  func()
}

// NewController creates a detached controller.
func NewController() *Controller {
	return &Controller{}
}

// Show opens the attached sheet. Calling Show on a sheet that is already
// open restarts its transition. While detached the command is remembered
// and replayed on attach.
func (c *Controller) Show() {
	c.command(pendingShow)
}

// Dismiss closes the attached sheet. Repeated calls re-trigger the
// transition. While detached the command is remembered and replayed on
// attach.
func (c *Controller) Dismiss() {
	c.command(pendingDismiss)
}

func (c *Controller) command(cmd pendingCommand) {
	c.mu.Lock()
	if c.sheet == nil {
		c.pending = cmd
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	// Invoke marshals onto the host loop when a dispatcher is registered
	// and runs inline otherwise.
	platform.Invoke(func() {
		// Re-read under lock: the sheet may have detached while the
		// command was queued.
		c.mu.Lock()
		sheet := c.sheet
		c.mu.Unlock()
		if sheet == nil {
			return
		}
		switch cmd {
		case pendingShow:
			sheet.Show()
		case pendingDismiss:
			sheet.Dismiss()
		}
	})
}

// IsActive reports whether the attached sheet is currently visible.
// It is a live read of the sheet's derived visibility; a detached
// controller reports false.
func (c *Controller) IsActive() bool {
	c.mu.Lock()
	sheet := c.sheet
	c.mu.Unlock()
	if sheet == nil {
		return false
	}
	return sheet.Visible()
}

// Offset returns the attached sheet's current offset, or 0 while detached.
func (c *Controller) Offset() float64 {
	c.mu.Lock()
	sheet := c.sheet
	c.mu.Unlock()
	if sheet == nil {
		return 0
	}
	return sheet.Offset()
}

// AddPositionListener registers a callback for offset changes. Listeners
// survive attach and detach cycles; the returned function unsubscribes.
func (c *Controller) AddPositionListener(listener func(offset float64)) func() {
	if listener == nil {
		return func() {}
	}
	c.mu.Lock()
	if c.listeners == nil {
		c.listeners = make(map[int]func(float64))
	}
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = listener
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// attach binds the controller to a sheet, replacing any previous binding.
// Called by New on the host loop. A command issued while detached is
// replayed now; only the most recent one survives.
func (c *Controller) attach(s *Sheet) {
	c.mu.Lock()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.sheet = s
	c.unsubscribe = s.driver.AddListener(c.notifyPosition)
	pending := c.pending
	c.pending = pendingNone
	c.mu.Unlock()

	// Replay outside the lock: the command starts a transition that will
	// notify position listeners.
	switch pending {
	case pendingShow:
		s.Show()
	case pendingDismiss:
		s.Dismiss()
	}
}

// detach unbinds the controller from a sheet. Called on sheet disposal.
// Detaching a sheet that is not the current binding is a no-op.
func (c *Controller) detach(s *Sheet) {
	c.mu.Lock()
	if c.sheet != s {
		c.mu.Unlock()
		return
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.sheet = nil
	c.mu.Unlock()
}

func (c *Controller) notifyPosition(offset float64) {
	c.mu.Lock()
	// Copy listeners to avoid holding the lock during callbacks
	listeners := make([]func(float64), 0, len(c.listeners))
	for _, listener := range c.listeners {
		listeners = append(listeners, listener)
	}
	c.mu.Unlock()
	for _, listener := range listeners {
		listener(offset)
	}
}
