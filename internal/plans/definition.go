// Package plans turns declarative plan files into executable segment plans.
package plans

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/evanrichards/line-fixer-ts/internal/segment"
)

// Definition is the on-disk form of a plan
type Definition struct {
	Name          string           `toml:"name" yaml:"name"`
	Description   string           `toml:"description" yaml:"description"`
	Indent        string           `toml:"indent" yaml:"indent"`
	Markers       []MarkerDef      `toml:"markers" yaml:"markers"`
	Replacements  []ReplacementDef `toml:"replacements" yaml:"replacements"`
	Segments      []SegmentDef     `toml:"segments" yaml:"segments"`
	TrailingNoise *NoiseDef        `toml:"trailing_noise" yaml:"trailing_noise"`
}

// MarkerDef declares a marker lookup. From is a 0-based search start index;
// After names a previously declared marker.
type MarkerDef struct {
	Name  string `toml:"name" yaml:"name"`
	Kind  string `toml:"kind" yaml:"kind"`
	Value string `toml:"value" yaml:"value"`
	From  int    `toml:"from" yaml:"from"`
	After string `toml:"after" yaml:"after"`
}

// ReplacementDef swaps the Old block for the New block. Both are split on
// newlines; a single trailing newline is ignored.
type ReplacementDef struct {
	Name string `toml:"name" yaml:"name"`
	Old  string `toml:"old" yaml:"old"`
	New  string `toml:"new" yaml:"new"`
}

// SegmentDef is one output segment. From and To use bound syntax:
// "start", "end", "<marker>", optionally followed by +N or -N.
type SegmentDef struct {
	Name    string   `toml:"name" yaml:"name"`
	From    string   `toml:"from" yaml:"from"`
	To      string   `toml:"to" yaml:"to"`
	Literal []string `toml:"literal" yaml:"literal"`
	Indent  bool     `toml:"indent" yaml:"indent"`
}

// NoiseDef configures trailing noise removal on the assembled output.
// Stray defaults to the comment kind.
type NoiseDef struct {
	Tail  MarkerDef  `toml:"tail" yaml:"tail"`
	Stray *MarkerDef `toml:"stray" yaml:"stray"`
}

// ParseBound parses bound syntax into a segment.Bound. A string naming one
// of the declared markers is that marker even when it ends in -N or +N.
func ParseBound(s string, declared map[string]bool) (segment.Bound, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return segment.Bound{}, fmt.Errorf("empty bound")
	}
	if declared[s] {
		return segment.At(s), nil
	}

	base, offset := s, 0
	if i := strings.LastIndexAny(s, "+-"); i > 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(s[i:])); err == nil {
			base, offset = strings.TrimSpace(s[:i]), n
		}
	}

	var b segment.Bound
	switch base {
	case "start":
		b = segment.Start()
	case "end":
		b = segment.End()
	default:
		b = segment.At(base)
	}
	return b.Plus(offset), nil
}

func splitBlock(block string) []string {
	block = strings.TrimSuffix(block, "\n")
	if block == "" {
		return nil
	}
	return strings.Split(block, "\n")
}
