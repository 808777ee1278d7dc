package headless

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/philipparndt/gcaliper/internal/caliper"
)

// Render creates a caliper on a headless host, positions it and returns the
// rendered frame.
func Render(opts caliper.Options, monitorW, monitorH int) (*caliper.Frame, *Host, error) {
	host := NewHost(monitorW, monitorH)
	dialogs := &Dialogs{}

	c, err := caliper.New(host, dialogs, opts)
	if err != nil {
		return nil, nil, err
	}
	c.HandleEvent(caliper.ConfigureEvent{Position: host.Position()})

	if len(dialogs.Errors) > 0 {
		return nil, host, dialogs.Errors[0]
	}
	frame := c.Frame()
	if frame == nil {
		return nil, host, fmt.Errorf("no frame rendered")
	}
	return frame, host, nil
}

// WritePNG encodes img to path
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
