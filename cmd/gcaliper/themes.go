package main

import (
	"fmt"

	"github.com/philipparndt/gcaliper/internal/theme"
	"github.com/spf13/cobra"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the available themes",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	dir := s.prefs.EffectiveThemesDir()
	names, err := theme.List(dir)
	if err != nil {
		return err
	}

	fmt.Printf("Themes in %s:\n", dir)
	for _, name := range names {
		marker := " "
		if name == s.theme.Name {
			marker = "*"
		}
		fmt.Printf(" %s %s\n", marker, name)
	}
	return nil
}
