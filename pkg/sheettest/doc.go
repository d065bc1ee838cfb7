// Package sheettest provides a deterministic harness for testing sheets.
//
// # Quick Start
//
// Create a tester, mount a sheet, and pump frames:
//
//	func TestOpens(t *testing.T) {
//	    tester := sheettest.NewTesterWithT(t)
//	    s := tester.MountSheet(300)
//
//	    s.Show()
//	    if err := tester.PumpAndSettle(2 * time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	    if s.Offset() != 500 {
//	        t.Errorf("offset = %v, want 500", s.Offset())
//	    }
//	}
//
// The tester swaps in a fake clock, registers the platform dispatch queue,
// and drives the real gesture arena and drag recognizer, so tests cover
// the same code paths as a live host while every frame is scripted.
//
// # Drag Scripting
//
// DragBy scripts a whole gesture, one frame per move step:
//
//	tester.DragBy(graphics.Offset{X: 200, Y: 780}, graphics.Offset{Y: -330}, 10)
//
// The lower-level PointerDown, PointerMove, PointerUp, and PointerCancel
// methods script partial gestures.
//
// # Timeline Snapshots
//
// Every Pump records a sample of the sheet's offset, backdrop opacity, and
// visibility. The recorded timeline compares against golden files:
//
//	tester.Timeline().MatchesFile(t, "testdata/show_timeline.golden")
//
// Update golden files with:
//
//	BOTTOMSHEET_UPDATE_SNAPSHOTS=1 go test ./...
package sheettest
