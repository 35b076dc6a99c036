// Package theme parses an editor-theme description into a Theme value
// and projects it into a scoped CSS stylesheet whose class selectors
// match the highlight-name classes pkg/highlight emits on <span>s.
package theme

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ThemeStyle is one color + modifier set, either the document's default
// foreground/background or a single recognized highlight name's style.
type ThemeStyle struct {
	Color  string
	Bold   bool
	Italic bool
}

// Theme is the loader's output: the default foreground/background plus
// a style for each recognized-highlight-name index that the description
// populated.
type Theme struct {
	Background ThemeStyle
	Foreground ThemeStyle
	ByIndex    map[int]ThemeStyle
}

const (
	defaultBackground = "#000"
	defaultForeground = "#fff"
)

// rawTheme is the format-agnostic shape both the TOML and YAML decoders
// produce: a named palette, an optional top-level background/foreground
// (as palette references or literal colors), and a map of highlight name
// to either a bare palette reference or a {fg, modifiers} table.
type rawTheme struct {
	Palette    map[string]string `toml:"palette" yaml:"palette"`
	Background string            `toml:"background" yaml:"background"`
	Foreground string            `toml:"foreground" yaml:"foreground"`
	Styles     map[string]any    `toml:"styles" yaml:"styles"`
}

// Load parses description (TOML first, then YAML on failure) and builds
// a Theme covering exactly the names in recognizedNames: each name's
// style, if the description has an entry for it, is keyed by its index
// in recognizedNames. A name with no entry in the description simply
// contributes no ByIndex entry.
func Load(description string, recognizedNames []string) (*Theme, error) {
	raw, err := parseRaw(description)
	if err != nil {
		return nil, fmt.Errorf("parsing theme description: %w", err)
	}

	theme := &Theme{
		Background: ThemeStyle{Color: resolveColor(raw, raw.Background, defaultBackground)},
		Foreground: ThemeStyle{Color: resolveColor(raw, raw.Foreground, defaultForeground)},
		ByIndex:    make(map[int]ThemeStyle),
	}

	for i, name := range recognizedNames {
		entry, ok := raw.Styles[name]
		if !ok {
			continue
		}
		style, ok := styleFromEntry(raw, entry)
		if !ok {
			continue
		}
		theme.ByIndex[i] = style
	}

	return theme, nil
}

func parseRaw(description string) (*rawTheme, error) {
	var raw rawTheme
	if _, err := toml.Decode(description, &raw); err == nil && (len(raw.Palette) > 0 || len(raw.Styles) > 0 || raw.Background != "" || raw.Foreground != "") {
		return &raw, nil
	}

	raw = rawTheme{}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(description)))
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &raw, nil
}

// resolveColor looks up ref in the palette, falling back to treating ref
// as a literal color (e.g. "#abcdef"), and finally to def if ref is
// empty.
func resolveColor(raw *rawTheme, ref, def string) string {
	if ref == "" {
		return def
	}
	if color, ok := raw.Palette[ref]; ok {
		return color
	}
	return ref
}

// styleFromEntry interprets a styles-map value, which may be a bare
// palette reference string or a {fg, modifiers} table decoded generically
// as map[string]any (both TOML and YAML decode inline tables this way
// when the target field is `any`).
func styleFromEntry(raw *rawTheme, entry any) (ThemeStyle, bool) {
	switch v := entry.(type) {
	case string:
		return ThemeStyle{Color: resolveColor(raw, v, "")}, true
	case map[string]any:
		fg, _ := v["fg"].(string)
		style := ThemeStyle{Color: resolveColor(raw, fg, "")}
		if mods, ok := v["modifiers"].([]any); ok {
			for _, m := range mods {
				switch m {
				case "bold":
					style.Bold = true
				case "italic":
					style.Italic = true
				}
			}
		}
		return style, true
	case map[any]any:
		fg, _ := v["fg"].(string)
		style := ThemeStyle{Color: resolveColor(raw, fg, "")}
		if mods, ok := v["modifiers"].([]any); ok {
			for _, m := range mods {
				switch m {
				case "bold":
					style.Bold = true
				case "italic":
					style.Italic = true
				}
			}
		}
		return style, true
	default:
		return ThemeStyle{}, false
	}
}
