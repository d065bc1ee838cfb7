package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-drift/bottomsheet/cmd/bottomsheet/internal/config"
	"github.com/go-drift/bottomsheet/cmd/bottomsheet/internal/render"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Write PNG frames of a scripted scenario",
		Long: `Render a scripted sheet scenario to a PNG frame sequence.

Scenarios:
  show      present the sheet from closed
  dismiss   dismiss the sheet from open
  drag      drag the open sheet down and release past halfway
  fling     fling the open sheet downward to dismiss by velocity

Frames are written as frame_000.png, frame_001.png, ... at one frame
per 16 ms tick. Settings come from sheet.yaml in the project root.

Flags:
  --scenario NAME   Scenario to render (default: show)
  --out DIR         Output directory (default: frames/<scenario>)
  --list            List scenario names and exit`,
		Usage: "bottomsheet render [--scenario NAME] [--out DIR]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	scenario := "show"
	out := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--scenario":
			if i+1 >= len(args) {
				return fmt.Errorf("--scenario requires a name (one of: %s)", strings.Join(render.Scenarios(), ", "))
			}
			scenario = args[i+1]
			i++
		case "--out":
			if i+1 >= len(args) {
				return fmt.Errorf("--out requires a directory path")
			}
			out = args[i+1]
			i++
		case "--list":
			for _, name := range render.Scenarios() {
				fmt.Println(name)
			}
			return nil
		default:
			return fmt.Errorf("unknown flag %q\n\nUsage: %s", args[i], "bottomsheet render [--scenario NAME] [--out DIR]")
		}
	}

	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return err
	}
	if out == "" {
		out = filepath.Join(root, "frames", scenario)
	}

	frames, err := render.RunScenario(scenario, render.Options{
		Size:        cfg.ScreenSize,
		SheetHeight: cfg.SheetHeight,
		SheetOpts:   cfg.SheetOptions(),
		Title:       cfg.Title,
	})
	if err != nil {
		return err
	}

	if err := render.WriteFrames(out, frames); err != nil {
		return err
	}

	fmt.Printf("Wrote %d frames to %s\n", len(frames), out)
	return nil
}
