package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every reported error and panic. It defaults
	// to a [LogHandler] writing to stderr.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler replaces the global handler. A nil handler restores the
// default LogHandler rather than disabling reporting.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		h = &LogHandler{}
	}
	DefaultHandler = h
}

func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends an error to the global handler, stamping the current time
// if the error carries none. Nil errors are ignored.
func Report(err *SheetError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic sends a recovered panic to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if h := getHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// Recover reports a panic in the deferring function and swallows it.
// Usage: defer errors.Recover("term.Run")
func Recover(op string) {
	if r := recover(); r != nil {
		recovered(op, r)
	}
}

// RecoverWithCallback is like Recover but additionally hands the panic
// value to callback after reporting, letting the caller clean up.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		recovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

// recovered builds and reports the panic record shared by the Recover
// variants.
func recovered(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// CaptureStack formats the current call stack, one "function\n\tfile:line"
// entry per frame, skipping the capture machinery itself.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteByte('\n')
		if !more {
			return sb.String()
		}
	}
}
