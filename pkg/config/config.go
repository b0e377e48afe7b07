// Package config loads named LayoutAttributes presets from textkit.yaml.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/textkit/pkg/errors"
	"github.com/go-drift/textkit/pkg/graphics"
	"github.com/go-drift/textkit/pkg/textkit"
)

// FileName is the name of the optional presets file in a project root.
const FileName = "textkit.yaml"

// Config represents the optional textkit.yaml configuration.
type Config struct {
	Presets map[string]Preset `yaml:"presets"`
}

// Preset is the file form of one LayoutAttributes value.
type Preset struct {
	Text             string      `yaml:"text,omitempty"`
	Truncation       *string     `yaml:"truncation,omitempty"`
	TruncationMarker string      `yaml:"truncationMarker,omitempty"`
	AvoidTail        *string     `yaml:"avoidTail,omitempty"`
	LineBreak        string      `yaml:"lineBreak,omitempty"`
	MaxLines         uint        `yaml:"maxLines,omitempty"`
	ExclusionRects   [][]float64 `yaml:"exclusionRects,omitempty"`
	Shadow           *Shadow     `yaml:"shadow,omitempty"`
	// MinimumScaleFactor defaults to 1 when omitted.
	MinimumScaleFactor *float64 `yaml:"minimumScaleFactor,omitempty"`
}

// Shadow contains the shadow settings of a preset.
type Shadow struct {
	Offset  []float64 `yaml:"offset,omitempty"`
	Color   string    `yaml:"color,omitempty"`
	Opacity float64   `yaml:"opacity,omitempty"`
	Radius  float64   `yaml:"radius,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	Name       string
	Presets    map[string]*textkit.LayoutAttributes
}

// PresetNames returns the preset names in sorted order.
func (r *Resolved) PresetNames() []string {
	names := make([]string, 0, len(r.Presets))
	for name := range r.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadOptional reads textkit.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads textkit.yaml (if present) and builds every preset.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	presets := make(map[string]*textkit.LayoutAttributes, len(cfg.Presets))
	for name, p := range cfg.Presets {
		attrs, err := p.Build()
		if err != nil {
			return nil, &errors.TextKitError{
				Op:   "config.Resolve",
				Kind: errors.KindConfig,
				Err:  fmt.Errorf("preset %q: %w", name, err),
			}
		}
		presets[name] = attrs
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		Name:       defaultName(modulePath, dir),
		Presets:    presets,
	}, nil
}

// Build converts the preset to LayoutAttributes.
func (p Preset) Build() (*textkit.LayoutAttributes, error) {
	mode, err := parseLineBreak(p.LineBreak)
	if err != nil {
		return nil, err
	}

	attrs := &textkit.LayoutAttributes{
		AttributedString:     textkit.NewAttributedString(p.Text, graphics.SpanStyle{}),
		LineBreakMode:        mode,
		MaximumNumberOfLines: p.MaxLines,
		MinimumScaleFactor:   1,
	}
	if p.MinimumScaleFactor != nil {
		if *p.MinimumScaleFactor <= 0 || *p.MinimumScaleFactor > 1 {
			return nil, fmt.Errorf("minimumScaleFactor must be in (0, 1] (got %v)", *p.MinimumScaleFactor)
		}
		attrs.MinimumScaleFactor = *p.MinimumScaleFactor
	}

	if p.Truncation != nil {
		truncation := textkit.NewAttributedString(*p.Truncation, graphics.SpanStyle{})
		if p.TruncationMarker != "" {
			start := strings.Index(*p.Truncation, p.TruncationMarker)
			if start < 0 {
				return nil, fmt.Errorf("truncationMarker %q not found in truncation %q", p.TruncationMarker, *p.Truncation)
			}
			if err := truncation.AddAttribute(textkit.TruncationAttributeName, p.TruncationMarker, start, start+len(p.TruncationMarker)); err != nil {
				return nil, err
			}
		}
		attrs.TruncationAttributedString = truncation
	} else if p.TruncationMarker != "" {
		return nil, fmt.Errorf("truncationMarker requires truncation")
	}

	if p.AvoidTail != nil {
		attrs.AvoidTailTruncationSet = textkit.CharacterSetFromString(*p.AvoidTail)
	}

	for i, r := range p.ExclusionRects {
		if len(r) != 4 {
			return nil, fmt.Errorf("exclusionRects[%d] must be [x, y, w, h] (got %d values)", i, len(r))
		}
		attrs.ExclusionPaths = append(attrs.ExclusionPaths, graphics.NewRectPath(graphics.RectFromLTWH(r[0], r[1], r[2], r[3])))
	}

	if p.Shadow != nil {
		if err := p.Shadow.apply(attrs); err != nil {
			return nil, err
		}
	}

	return attrs, nil
}

func (s *Shadow) apply(attrs *textkit.LayoutAttributes) error {
	switch len(s.Offset) {
	case 0:
	case 2:
		attrs.ShadowOffset = graphics.Offset{X: s.Offset[0], Y: s.Offset[1]}
	default:
		return fmt.Errorf("shadow.offset must be [dx, dy] (got %d values)", len(s.Offset))
	}
	if s.Color != "" {
		c, err := graphics.ParseHexColor(s.Color)
		if err != nil {
			return fmt.Errorf("shadow.color: %w", err)
		}
		attrs.ShadowColor = &c
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("shadow.opacity must be in [0, 1] (got %v)", s.Opacity)
	}
	if s.Radius < 0 {
		return fmt.Errorf("shadow.radius cannot be negative (got %v)", s.Radius)
	}
	attrs.ShadowOpacity = s.Opacity
	attrs.ShadowRadius = s.Radius
	return nil
}

func parseLineBreak(name string) (textkit.LineBreakMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "word":
		return textkit.LineBreakByWordWrapping, nil
	case "char":
		return textkit.LineBreakByCharWrapping, nil
	default:
		return 0, fmt.Errorf("unsupported lineBreak %q (want word or char)", name)
	}
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// defaultName is the last module path element without a major version
// suffix, falling back to the directory name.
func defaultName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
		parts := strings.Split(prefix, "/")
		if last := parts[len(parts)-1]; last != "" {
			base = last
		}
	}
	return base
}
