// Package platform bridges sheet controllers and the host event loop.
//
// A host (terminal UI, test harness, embedding application) owns the
// goroutine that mutates sheet state. It registers a dispatch function
// here so that controller commands issued from other goroutines are
// marshalled onto that goroutine instead of racing it.
package platform

import "sync"

var dispatcher struct {
	sync.RWMutex
	fn func(callback func())
}

// RegisterDispatch sets the dispatch function used to schedule callbacks on
// the host loop. It should be called once by the host during initialization.
// Passing nil unregisters the current dispatcher.
func RegisterDispatch(fn func(callback func())) {
	dispatcher.Lock()
	dispatcher.fn = fn
	dispatcher.Unlock()
}

// Dispatch schedules a callback to run on the host loop. It reports whether
// the callback was handed to a dispatcher; false means none is registered
// or the callback is nil.
func Dispatch(callback func()) bool {
	dispatcher.RLock()
	fn := dispatcher.fn
	dispatcher.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// Invoke dispatches the callback to the host loop, or runs it inline when
// no dispatcher is registered. Callers that are already on the host loop
// and hostless setups both end up running the callback synchronously.
func Invoke(callback func()) {
	if !Dispatch(callback) && callback != nil {
		callback()
	}
}
