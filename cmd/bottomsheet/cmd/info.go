package cmd

import (
	"fmt"

	"github.com/go-drift/bottomsheet/cmd/bottomsheet/internal/config"
	"github.com/go-drift/bottomsheet/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "info",
		Short: "Print the resolved configuration",
		Long: `Show the configuration the demo and render commands will use.

Values come from sheet.yaml in the project root, with defaults filled
in for anything unset.`,
		Usage: "bottomsheet info",
		Run:   runInfo,
	})
}

func runInfo(args []string) error {
	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return err
	}

	fmt.Printf("Project: %s (%s)\n", cfg.Title, cfg.ModulePath)
	fmt.Println()
	fmt.Println("Screen:")
	fmt.Printf("  size:            %.0fx%.0f px\n", cfg.ScreenSize.Width, cfg.ScreenSize.Height)
	fmt.Println()
	fmt.Println("Sheet:")
	fmt.Printf("  height:          %.0f px\n", cfg.SheetHeight)
	fmt.Printf("  open offset:     %.0f px\n", cfg.ScreenSize.Height-cfg.SheetHeight)
	fmt.Printf("  closed offset:   %.0f px\n", cfg.ScreenSize.Height)
	fmt.Printf("  transition:      %s\n", describeTransition(cfg.Transition))
	fmt.Printf("  backdrop color:  %s\n", cfg.BackdropColor.Hex())
	if cfg.DismissVelocity > 0 {
		fmt.Printf("  fling dismiss:   above %.0f px/s\n", cfg.DismissVelocity)
	} else {
		fmt.Printf("  fling dismiss:   disabled\n")
	}

	return nil
}

func describeTransition(spec animation.TransitionSpec) string {
	switch spec.Kind {
	case animation.TransitionSpring:
		return fmt.Sprintf("spring (mass=%.3g stiffness=%.3g damping=%.3g)",
			spec.Spring.Mass, spec.Spring.Stiffness, spec.Spring.Damping)
	default:
		return fmt.Sprintf("timing (%s)", spec.Duration)
	}
}
