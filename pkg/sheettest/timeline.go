package sheettest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// updateEnv enables golden-file rewriting when set to "1".
const updateEnv = "BOTTOMSHEET_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Sample is one frame's view of a sheet: the time since the timeline
// started, the position scalar, and its derived values.
type Sample struct {
	At      time.Duration
	Offset  float64
	Opacity float64
	Visible bool
}

// Timeline is the sequence of samples recorded by a Tester.
type Timeline []Sample

// String renders the timeline one sample per line, the format stored in
// golden files.
func (tl Timeline) String() string {
	var sb strings.Builder
	for _, s := range tl {
		fmt.Fprintf(&sb, "t=%dms offset=%.2f opacity=%.2f visible=%v\n",
			s.At.Milliseconds(), s.Offset, s.Opacity, s.Visible)
	}
	return sb.String()
}

// MatchesFile compares the timeline against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// BOTTOMSHEET_UPDATE_SNAPSHOTS=1 is set, the file is silently updated
// instead.
func (tl Timeline) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(updateEnv) == "1" {
		if err := tl.UpdateFile(path); err != nil {
			t.Fatalf("failed to update timeline: %v", err)
		}
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("timeline file missing: %s\n\nTo create: %s=1 go test -run %s", path, updateEnv, t.Name())
			return
		}
		t.Fatalf("failed to load timeline: %v", err)
		return
	}

	actual := tl.String()
	if actual != string(expected) {
		diff := unifiedDiff(string(expected), actual)
		t.Errorf("timeline mismatch: %s\n%s\nTo update: %s=1 go test -run %s", path, diff, updateEnv, t.Name())
	}
}

// UpdateFile writes the timeline to the given path, creating directories
// as needed.
func (tl Timeline) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(tl.String()), 0o644)
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := len(expectedLines)
	if len(actualLines) > maxLen {
		maxLen = len(actualLines)
	}

	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
