package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that writes one line per reported error.
type LogHandler struct {
	// Verbose additionally prints kinds and stack traces.
	Verbose bool
	// Output receives the log lines. Nil means os.Stderr.
	Output io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Output != nil {
		return h.Output
	}
	return os.Stderr
}

// HandleError logs a SheetError.
func (h *LogHandler) HandleError(err *SheetError) {
	if err == nil {
		return
	}
	w := h.out()
	if !h.Verbose {
		fmt.Fprintf(w, "[bottomsheet error] %s: %v\n", err.Op, err.Err)
		return
	}
	fmt.Fprintf(w, "[bottomsheet error] %s [%s]: %v\n", err.Op, err.Kind, err.Err)
	if err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[bottomsheet panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[bottomsheet panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
