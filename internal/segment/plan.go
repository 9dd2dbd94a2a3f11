package segment

import (
	"errors"
	"fmt"
	"slices"
)

// BoundKind identifies where a segment bound is anchored
type BoundKind int

const (
	StartOfFile BoundKind = iota
	EndOfFile
	AtMarker
)

// Bound is one end of a segment: start of file, end of file or a named
// marker, shifted by Offset lines.
type Bound struct {
	Kind   BoundKind
	Marker string
	Offset int
}

// Start returns a bound at index 0
func Start() Bound { return Bound{Kind: StartOfFile} }

// End returns a bound at len(lines)
func End() Bound { return Bound{Kind: EndOfFile} }

// At returns a bound at the resolved index of the named marker
func At(marker string) Bound { return Bound{Kind: AtMarker, Marker: marker} }

// Plus shifts the bound by n lines
func (b Bound) Plus(n int) Bound {
	b.Offset += n
	return b
}

func (b Bound) String() string {
	var base string
	switch b.Kind {
	case StartOfFile:
		base = "start"
	case EndOfFile:
		base = "end"
	default:
		base = b.Marker
	}
	if b.Offset != 0 {
		return fmt.Sprintf("%s%+d", base, b.Offset)
	}
	return base
}

func (b Bound) index(positions map[string]int, length int) int {
	switch b.Kind {
	case StartOfFile:
		return b.Offset
	case EndOfFile:
		return length + b.Offset
	default:
		return positions[b.Marker] + b.Offset
	}
}

// MarkerRef declares a named marker lookup. From is the first index
// searched. After names an earlier marker; the search then starts on the
// line following it (or at From, whichever is later).
type MarkerRef struct {
	Name   string
	Marker Marker
	From   int
	After  string
}

// SegmentSpec is one entry of the output, either a slice of the input
// between two bounds or a list of literal lines.
type SegmentSpec struct {
	Name    string
	From    Bound
	To      Bound
	Literal []string
	Indent  bool
}

// IsLiteral reports whether the segment emits synthetic lines
func (s SegmentSpec) IsLiteral() bool {
	return s.Literal != nil
}

// NoiseFilter drops blank and stray lines that follow Tail in the output
type NoiseFilter struct {
	Tail  Marker
	Stray Marker
}

// Plan lists, in output order, the segments that make up the fixed file.
type Plan struct {
	Name         string
	Description  string
	IndentUnit   string
	Markers      []MarkerRef
	Replacements []Replacement
	Segments     []SegmentSpec
	Noise        *NoiseFilter
}

// Position is a resolved marker
type Position struct {
	Name  string
	Index int
}

// Line returns the 1-based line number
func (p Position) Line() int {
	return p.Index + 1
}

// Result holds the reordered lines together with what was resolved on the way
type Result struct {
	Lines     []string
	Markers   []Position
	Replaced  []string
	Unchanged bool
}

// Validate checks that names are unique and every reference points at a
// marker declared earlier in the plan.
func (p *Plan) Validate() error {
	declared := make(map[string]bool, len(p.Markers))
	for _, ref := range p.Markers {
		if ref.Name == "" {
			return &ConfigurationError{Plan: p.Name, Item: "marker", Err: errors.New("missing name")}
		}
		if declared[ref.Name] {
			return &ConfigurationError{Plan: p.Name, Item: "marker " + ref.Name, Err: errors.New("declared twice")}
		}
		if ref.Marker.Match == nil {
			return &ConfigurationError{Plan: p.Name, Item: "marker " + ref.Name, Err: errors.New("no predicate")}
		}
		if ref.After != "" && !declared[ref.After] {
			return &ConfigurationError{Plan: p.Name, Item: "marker " + ref.Name, Err: fmt.Errorf("after refers to undeclared marker %q", ref.After)}
		}
		declared[ref.Name] = true
	}

	if len(p.Segments) == 0 {
		return &ConfigurationError{Plan: p.Name, Item: "segments", Err: errors.New("plan has no segments")}
	}

	seen := make(map[string]bool, len(p.Segments))
	for _, seg := range p.Segments {
		if seg.Name == "" {
			return &ConfigurationError{Plan: p.Name, Item: "segment", Err: errors.New("missing name")}
		}
		if seen[seg.Name] {
			return &ConfigurationError{Plan: p.Name, Item: "segment " + seg.Name, Err: errors.New("declared twice")}
		}
		seen[seg.Name] = true

		if seg.IsLiteral() {
			continue
		}
		for _, b := range []Bound{seg.From, seg.To} {
			if b.Kind == AtMarker && !declared[b.Marker] {
				return &ConfigurationError{Plan: p.Name, Item: "segment " + seg.Name, Err: fmt.Errorf("bound refers to undeclared marker %q", b.Marker)}
			}
		}
	}

	return nil
}

// Resolve applies the plan's replacements and locates every marker,
// without assembling the output. It backs diagnostic runs.
func Resolve(lines []string, plan Plan) ([]Position, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	working, _, err := plan.replace(lines)
	if err != nil {
		return nil, err
	}
	positions, _, err := plan.resolve(working)
	return positions, err
}

// ReorderAndFix executes the plan against lines and returns the new line
// sequence. It performs no I/O; callers write the result only after it
// returns without error.
func ReorderAndFix(lines []string, plan Plan) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	working, replaced, err := plan.replace(lines)
	if err != nil {
		return nil, err
	}

	positions, index, err := plan.resolve(working)
	if err != nil {
		return nil, err
	}

	var out []string
	var spans []span

	for _, seg := range plan.Segments {
		if seg.IsLiteral() {
			out = append(out, seg.Literal...)
			continue
		}

		start := seg.From.index(index, len(working))
		end := seg.To.index(index, len(working))

		part, err := ExtractSegment(working, start, end)
		if err != nil {
			var rangeErr *RangeError
			if errors.As(err, &rangeErr) {
				rangeErr.Segment = seg.Name
			}
			return nil, err
		}

		for _, t := range spans {
			if start < t.end && t.start < end {
				return nil, &RangeError{
					Segment: seg.Name,
					Start:   start,
					End:     end,
					Len:     len(working),
					Reason:  fmt.Sprintf("overlaps segment %q", t.name),
				}
			}
		}
		spans = append(spans, span{name: seg.Name, start: start, end: end})

		if seg.Indent {
			part = NormalizeIndentation(part, plan.IndentUnit)
		}
		out = append(out, part...)
	}

	if plan.Noise != nil {
		out = FilterTrailingNoise(out, plan.Noise.Tail, plan.Noise.Stray)
	}

	return &Result{
		Lines:     out,
		Markers:   positions,
		Replaced:  replaced,
		Unchanged: slices.Equal(lines, out),
	}, nil
}

type span struct {
	name       string
	start, end int
}

func (p *Plan) replace(lines []string) ([]string, []string, error) {
	var replaced []string
	for _, r := range p.Replacements {
		next, applied, err := ReplaceBlock(lines, r)
		if err != nil {
			return nil, nil, &ConfigurationError{Plan: p.Name, Item: "replacement " + r.Name, Err: err}
		}
		if applied {
			replaced = append(replaced, r.Name)
		}
		lines = next
	}
	return lines, replaced, nil
}

func (p *Plan) resolve(lines []string) ([]Position, map[string]int, error) {
	positions := make([]Position, 0, len(p.Markers))
	index := make(map[string]int, len(p.Markers))

	for _, ref := range p.Markers {
		from := ref.From
		if ref.After != "" {
			from = max(from, index[ref.After]+1)
		}

		m := ref.Marker
		m.Name = ref.Name
		i, err := LocateMarker(lines, m, from)
		if err != nil {
			return nil, nil, &ConfigurationError{Plan: p.Name, Item: "marker " + ref.Name, Err: err}
		}

		index[ref.Name] = i
		positions = append(positions, Position{Name: ref.Name, Index: i})
	}

	return positions, index, nil
}
