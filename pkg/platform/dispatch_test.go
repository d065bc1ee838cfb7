package platform

import "testing"

func TestDispatchWithoutRegistration(t *testing.T) {
	RegisterDispatch(nil)
	if Dispatch(func() {}) {
		t.Error("Dispatch should return false when no dispatcher is registered")
	}
}

func TestDispatchRunsCallback(t *testing.T) {
	var queued []func()
	RegisterDispatch(func(cb func()) {
		queued = append(queued, cb)
	})
	defer RegisterDispatch(nil)

	ran := false
	if !Dispatch(func() { ran = true }) {
		t.Fatal("Dispatch should return true when a dispatcher is registered")
	}
	if ran {
		t.Error("callback should not run until the host drains its queue")
	}
	if len(queued) != 1 {
		t.Fatalf("expected 1 queued callback, got %d", len(queued))
	}
	queued[0]()
	if !ran {
		t.Error("callback should run when the host invokes it")
	}
}

func TestDispatchNilCallback(t *testing.T) {
	called := false
	RegisterDispatch(func(cb func()) {
		called = true
	})
	defer RegisterDispatch(nil)

	if Dispatch(nil) {
		t.Error("Dispatch(nil) should return false")
	}
	if called {
		t.Error("dispatcher should not be invoked for a nil callback")
	}
}

func TestInvokeRunsInlineWithoutDispatcher(t *testing.T) {
	RegisterDispatch(nil)
	ran := false
	Invoke(func() { ran = true })
	if !ran {
		t.Error("Invoke should run the callback inline when no dispatcher is registered")
	}
}

func TestInvokeUsesDispatcher(t *testing.T) {
	var queued []func()
	RegisterDispatch(func(cb func()) {
		queued = append(queued, cb)
	})
	defer RegisterDispatch(nil)

	ran := false
	Invoke(func() { ran = true })
	if ran {
		t.Error("Invoke should defer to the dispatcher, not run inline")
	}
	if len(queued) != 1 {
		t.Fatalf("expected 1 queued callback, got %d", len(queued))
	}
	queued[0]()
	if !ran {
		t.Error("queued callback should run when drained")
	}
}

func TestRegisterDispatchReplacesPrevious(t *testing.T) {
	var first, second int
	RegisterDispatch(func(cb func()) { first++ })
	RegisterDispatch(func(cb func()) { second++ })
	defer RegisterDispatch(nil)

	Dispatch(func() {})
	if first != 0 {
		t.Error("replaced dispatcher should not receive callbacks")
	}
	if second != 1 {
		t.Errorf("current dispatcher should receive the callback, got %d calls", second)
	}
}
