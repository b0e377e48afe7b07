package cmd

import (
	"fmt"
)

func init() {
	RegisterCommand(&Command{
		Name:  "hash",
		Short: "Print preset hashes",
		Long: `Print the layout attributes hash of each preset.

With no arguments every preset in textkit.yaml is hashed, in name order.
Hashes are only stable within one process, so compare them within a single
run rather than across runs.`,
		Usage: "textkit hash [preset...]",
		Run:   runHash,
	})
}

func runHash(args []string) error {
	resolved, err := loadPresets()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = resolved.PresetNames()
	}
	if len(names) == 0 {
		fmt.Fprintln(stdout, "No presets defined.")
		return nil
	}

	for _, name := range names {
		attrs, ok := resolved.Presets[name]
		if !ok {
			return fmt.Errorf("unknown preset %q", name)
		}
		fmt.Fprintf(stdout, "%-20s %016x\n", name, attrs.Hash())
	}
	return nil
}
