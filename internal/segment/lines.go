package segment

import "strings"

// DefaultIndent is the unit used by NormalizeIndentation when none is given
const DefaultIndent = "  "

// LocateMarker returns the index of the first line at or after from that
// the marker matches. A negative from is treated as zero.
func LocateMarker(lines []string, m Marker, from int) (int, error) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(lines); i++ {
		if m.matches(lines[i], i) {
			return i, nil
		}
	}
	return -1, &NotFoundError{Marker: m.Name, From: from}
}

// ExtractSegment returns a copy of the half-open range [start, end)
func ExtractSegment(lines []string, start, end int) ([]string, error) {
	if start < 0 || end > len(lines) {
		return nil, &RangeError{Start: start, End: end, Len: len(lines)}
	}
	if start > end {
		return nil, &RangeError{Start: start, End: end, Len: len(lines), Reason: "start after end"}
	}

	out := make([]string, end-start)
	copy(out, lines[start:end])
	return out, nil
}

// NormalizeIndentation prefixes unit once on every line that does not
// already start with it. Applying it twice is the same as applying it once.
func NormalizeIndentation(lines []string, unit string) []string {
	if unit == "" {
		unit = DefaultIndent
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line, unit) {
			out[i] = line
		} else {
			out[i] = unit + line
		}
	}
	return out
}

// FilterTrailingNoise drops blank lines and lines matching stray once a line
// matching tail has been seen. A dropped line that leaves a block comment
// open takes the rest of that comment with it. Everything up to and including
// the tail line is kept. When tail never matches the input is returned
// unchanged.
func FilterTrailingNoise(lines []string, tail, stray Marker) []string {
	out := make([]string, 0, len(lines))
	seen := false
	inComment := false

	for i, line := range lines {
		if inComment {
			inComment = !strings.Contains(line, "*/")
			continue
		}
		if seen && strings.TrimSpace(line) == "" {
			continue
		}
		if seen && stray.matches(line, i) {
			inComment = opensBlockComment(line)
			continue
		}
		out = append(out, line)
		if !seen && tail.matches(line, i) {
			seen = true
		}
	}

	return out
}

func opensBlockComment(line string) bool {
	i := strings.LastIndex(line, "/*")
	return i >= 0 && !strings.Contains(line[i+2:], "*/")
}
