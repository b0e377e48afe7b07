package cmd

import (
	"fmt"

	"golang.org/x/mod/semver"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long: `Show the textkit version.

With --check VERSION, fail unless this build is at least VERSION.`,
		Usage: "textkit version [--check VERSION]",
		Run:   runVersion,
	})
}

// canonicalVersion returns Version in canonical "vMAJOR.MINOR.PATCH" form.
func canonicalVersion() (string, error) {
	v := Version
	if len(v) == 0 || v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid build version %q", Version)
	}
	return semver.Canonical(v), nil
}

func runVersion(args []string) error {
	current, err := canonicalVersion()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		if args[0] != "--check" || len(args) != 2 {
			return fmt.Errorf("usage: textkit version [--check VERSION]")
		}
		want := args[1]
		if len(want) > 0 && want[0] != 'v' {
			want = "v" + want
		}
		if !semver.IsValid(want) {
			return fmt.Errorf("invalid version %q", args[1])
		}
		if semver.Compare(current, want) < 0 {
			return fmt.Errorf("textkit %s is older than required %s", current, semver.Canonical(want))
		}
	}

	fmt.Fprintf(stdout, "textkit version %s (built %s)\n", current, BuildTime)
	return nil
}
