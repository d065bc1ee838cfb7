package cmd

import (
	"fmt"
	"strconv"

	"github.com/go-drift/bottomsheet/cmd/bottomsheet/internal/config"
	"github.com/go-drift/bottomsheet/cmd/bottomsheet/internal/term"
)

func init() {
	RegisterCommand(&Command{
		Name:  "demo",
		Short: "Host a sheet in the terminal",
		Long: `Run the interactive terminal demo.

The sheet lives at the bottom of the terminal window. Drag it with the
mouse, press the backdrop to dismiss, or use the keyboard:

  s      show the sheet
  d      dismiss the sheet
  q      quit (also Esc and Ctrl+C)

Settings come from sheet.yaml in the project root when present.

Flags:
  --height PX   Override the sheet height
  --title NAME  Override the title bar text`,
		Usage: "bottomsheet demo [--height PX] [--title NAME]",
		Run:   runDemo,
	})
}

func runDemo(args []string) error {
	var height float64
	var title string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--height":
			if i+1 >= len(args) {
				return fmt.Errorf("--height requires a pixel value")
			}
			v, err := strconv.ParseFloat(args[i+1], 64)
			if err != nil || v <= 0 {
				return fmt.Errorf("--height must be a positive number, got %q", args[i+1])
			}
			height = v
			i++
		case "--title":
			if i+1 >= len(args) {
				return fmt.Errorf("--title requires a value")
			}
			title = args[i+1]
			i++
		default:
			return fmt.Errorf("unknown flag %q\n\nUsage: %s", args[i], "bottomsheet demo [--height PX] [--title NAME]")
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
	if height > 0 {
		cfg.SheetHeight = height
	}
	if title != "" {
		cfg.Title = title
	}

	host, err := term.New(cfg)
	if err != nil {
		return err
	}
	return host.Run()
}
