package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gcaliper/internal/desktop"
	"github.com/philipparndt/gcaliper/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	themeName  string
	themesDir  string
	debug      bool

	background string
	distance   int
	angleDeg   float64
)

var rootCmd = &cobra.Command{
	Use:   "gcaliper",
	Short: "An on-screen caliper for measuring distances and angles",
	Long: `gcaliper shows a vernier caliper on top of the screen. Drag the bottom jaw to
resize and rotate it, drag the head or the scale to move it. The arrow keys move the
caliper (Ctrl resizes it), R and T rotate it, H and V align it, C picks the
jaw color.`,
	Version:      version.GetFullVersion(),
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runOverlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "preferences file (default is the per-user config.yaml)")
	pf.StringVar(&themeName, "theme", "", "theme name")
	pf.StringVar(&themesDir, "themes-dir", "", "directory containing themes")
	pf.BoolVar(&debug, "debug", false, "draw debug overlays and log at debug level")

	rootCmd.Flags().StringVar(&background, "background", "", "image to show behind the caliper, e.g. a screenshot")
	rootCmd.Flags().IntVar(&distance, "distance", 100, "initial jaw distance in pixels")
	rootCmd.Flags().Float64Var(&angleDeg, "angle", 0, "initial angle in degrees")
}

func runOverlay(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	return desktop.Run(desktop.Options{
		Caliper:    s.caliperOptions(distance, angleDeg),
		Background: background,
		ConfigPath: s.configPath,
		Prefs:      s.stored,
		Logger:     s.logger,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
