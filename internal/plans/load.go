package plans

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a plan file
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

//go:embed builtin/*
var builtinFS embed.FS

// FormatFromPath picks the format from the file extension
func FormatFromPath(p string) (Format, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported plan file extension %q (want .toml, .yaml or .yml)", filepath.Ext(p))
	}
}

// Decode parses a plan definition. Unknown keys are rejected so that a typo
// cannot silently drop a marker or segment.
func Decode(data []byte, format Format) (Definition, error) {
	var def Definition

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return Definition{}, fmt.Errorf("parsing plan TOML: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return Definition{}, fmt.Errorf("parsing plan YAML: %w", err)
		}
	default:
		return Definition{}, fmt.Errorf("unknown plan format %q", format)
	}

	return def, nil
}

// LoadFile reads and decodes a plan file. A plan without a name is named
// after its file.
func LoadFile(p string) (Definition, error) {
	format, err := FormatFromPath(p)
	if err != nil {
		return Definition{}, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return Definition{}, fmt.Errorf("reading plan: %w", err)
	}

	def, err := Decode(data, format)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", p, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	return def, nil
}

// Builtin returns the embedded plan called name
func Builtin(name string) (Definition, error) {
	defs, err := Builtins()
	if err != nil {
		return Definition{}, err
	}
	for _, def := range defs {
		if def.Name == name {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("no built-in plan named %q", name)
}

// Builtins returns every embedded plan sorted by name
func Builtins() ([]Definition, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("reading built-in plans: %w", err)
	}

	var defs []Definition
	for _, entry := range entries {
		name := path.Join("builtin", entry.Name())
		format, err := FormatFromPath(name)
		if err != nil {
			continue
		}
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		def, err := Decode(data, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		defs = append(defs, def)
	}

	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	return defs, nil
}
