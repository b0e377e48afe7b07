package cmd

import (
	"fmt"

	"github.com/go-drift/textkit/pkg/graphics"
	"github.com/go-drift/textkit/pkg/textkit"
)

func init() {
	RegisterCommand(&Command{
		Name:  "measure",
		Short: "Measure preset text",
		Long: `Measure the text of each preset with its layout manager.

Presets that compare equal are measured once and served from the layout
cache afterwards; the cache statistics are printed at the end.`,
		Usage: "textkit measure [preset...]",
		Run:   runMeasure,
	})
}

func runMeasure(args []string) error {
	resolved, err := loadPresets()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = resolved.PresetNames()
	}

	cache := textkit.NewLayoutCache[graphics.Size](0)
	for _, name := range names {
		attrs, ok := resolved.Presets[name]
		if !ok {
			return fmt.Errorf("unknown preset %q", name)
		}
		size, err := cache.Get(attrs, func(a *textkit.LayoutAttributes) (graphics.Size, error) {
			return a.NewLayoutManager().Measure(a.AttributedString.String()), nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%-20s %gx%g\n", name, size.Width, size.Height)
	}

	stats := cache.Stats()
	fmt.Fprintf(stdout, "cache: %d hits, %d misses, %d entries\n", stats.Hits, stats.Misses, stats.Entries)
	return nil
}
