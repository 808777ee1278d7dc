package main

import (
	"fmt"
	"log/slog"

	"github.com/philipparndt/gcaliper/internal/headless"
	"github.com/spf13/cobra"
)

var (
	renderDistance int
	renderAngle    float64
	renderOut      string
	renderMask     string
	monitorWidth   int
	monitorHeight  int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the caliper to a PNG file",
	Long: `Render the caliper at a given distance and angle without opening a window.
The rotated frame is written as PNG; --mask additionally writes the shape mask.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().IntVar(&renderDistance, "distance", 100, "jaw distance in pixels")
	renderCmd.Flags().Float64Var(&renderAngle, "angle", 0, "angle in degrees")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "caliper.png", "output PNG file")
	renderCmd.Flags().StringVar(&renderMask, "mask", "", "optional PNG file for the shape mask")
	renderCmd.Flags().IntVar(&monitorWidth, "monitor-width", 1920, "width of the simulated monitor")
	renderCmd.Flags().IntVar(&monitorHeight, "monitor-height", 1080, "height of the simulated monitor")
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	frame, _, err := headless.Render(s.caliperOptions(renderDistance, renderAngle), monitorWidth, monitorHeight)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if err := headless.WritePNG(renderOut, frame.Image); err != nil {
		return err
	}
	if renderMask != "" {
		if err := headless.WritePNG(renderMask, frame.Mask); err != nil {
			return err
		}
	}

	s.logger.Debug("frame written",
		slog.String("out", renderOut),
		slog.Int("width", frame.Rotated.W),
		slog.Int("height", frame.Rotated.H))
	fmt.Printf("Wrote %s (%dx%d)\n", renderOut, frame.Rotated.W, frame.Rotated.H)
	return nil
}
