package cmd

import "fmt"

func init() {
	RegisterCommand(&Command{
		Name:  "diff",
		Short: "Compare two presets",
		Long: `Compare two presets field by field.

Prints whether the presets are equal, both hashes, and the name of every
field that differs. Equal presets always print the same hash.`,
		Usage: "textkit diff <preset> <preset>",
		Run:   runDiff,
	})
}

func runDiff(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("two presets are required\n\nUsage: textkit diff <preset> <preset>")
	}

	resolved, err := loadPresets()
	if err != nil {
		return err
	}
	a, ok := resolved.Presets[args[0]]
	if !ok {
		return fmt.Errorf("unknown preset %q", args[0])
	}
	b, ok := resolved.Presets[args[1]]
	if !ok {
		return fmt.Errorf("unknown preset %q", args[1])
	}

	if a.Equal(b) {
		fmt.Fprintln(stdout, "equal")
	} else {
		fmt.Fprintln(stdout, "different")
	}
	fmt.Fprintf(stdout, "  %-20s %016x\n", args[0], a.Hash())
	fmt.Fprintf(stdout, "  %-20s %016x\n", args[1], b.Hash())
	for _, field := range a.Diff(b) {
		fmt.Fprintf(stdout, "  differs: %s\n", field)
	}
	return nil
}
