package segment

import (
	"regexp"
	"strings"
)

// Predicate reports whether the line at index is a structural boundary.
type Predicate func(line string, index int) bool

// Marker is a named predicate. Markers never own lines, they only compute
// indices for segment bounds.
type Marker struct {
	Name  string
	Match Predicate
}

// New creates a marker from an arbitrary predicate
func New(name string, match Predicate) Marker {
	return Marker{Name: name, Match: match}
}

func (m Marker) matches(line string, index int) bool {
	return m.Match != nil && m.Match(line, index)
}

// After restricts the marker to indices strictly greater than threshold,
// e.g. "the first } after line 700".
func (m Marker) After(threshold int) Marker {
	inner := m
	return Marker{
		Name: m.Name,
		Match: func(line string, index int) bool {
			return index > threshold && inner.matches(line, index)
		},
	}
}

// Equals matches lines whose trimmed content equals text
func Equals(name, text string) Marker {
	return New(name, func(line string, _ int) bool {
		return strings.TrimSpace(line) == text
	})
}

// Exact matches lines equal to text byte for byte
func Exact(name, text string) Marker {
	return New(name, func(line string, _ int) bool {
		return line == text
	})
}

// Contains matches lines containing substr anywhere
func Contains(name, substr string) Marker {
	return New(name, func(line string, _ int) bool {
		return strings.Contains(line, substr)
	})
}

// HasPrefix matches lines that start with prefix once leading whitespace is removed
func HasPrefix(name, prefix string) Marker {
	return New(name, func(line string, _ int) bool {
		return strings.HasPrefix(strings.TrimLeft(line, " \t"), prefix)
	})
}

// Regexp matches lines accepted by re
func Regexp(name string, re *regexp.Regexp) Marker {
	return New(name, func(line string, _ int) bool {
		return re.MatchString(line)
	})
}

// Blank matches empty or whitespace-only lines
func Blank(name string) Marker {
	return New(name, func(line string, _ int) bool {
		return strings.TrimSpace(line) == ""
	})
}

// Comment matches lines that start a line or block comment. The body of a
// multi-line block comment is not recognised line by line; FilterTrailingNoise
// drops it together with the line that opened it.
func Comment(name string) Marker {
	return New(name, func(line string, _ int) bool {
		trimmed := strings.TrimSpace(line)
		return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*")
	})
}

// Rows matches exactly the given indices. Markers computed from a syntax
// tree are expressed this way.
func Rows(name string, rows ...int) Marker {
	set := make(map[int]struct{}, len(rows))
	for _, r := range rows {
		set[r] = struct{}{}
	}
	return New(name, func(_ string, index int) bool {
		_, ok := set[index]
		return ok
	})
}

// Any matches when at least one of markers matches
func Any(name string, markers ...Marker) Marker {
	return New(name, func(line string, index int) bool {
		for _, m := range markers {
			if m.matches(line, index) {
				return true
			}
		}
		return false
	})
}

var classModifiers = `^\s*(?:export\s+)?(?:default\s+)?(?:declare\s+)?(?:abstract\s+)?class\s+`

// ClassOpen matches the declaration line of the named class
func ClassOpen(name, className string) Marker {
	re := regexp.MustCompile(classModifiers + regexp.QuoteMeta(className) + `\b`)
	return Regexp(name, re)
}

// ClassClose matches a standalone closing brace. Combine with After or a
// search start index to pick the brace that actually closes the class.
func ClassClose(name string) Marker {
	return Equals(name, "}")
}

// ExportAssignment matches a top-level binding of ident, exported or not:
// "const ident = ...", "export const ident = ...".
func ExportAssignment(name, ident string) Marker {
	re := regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+` + regexp.QuoteMeta(ident) + `\s*(?::[^=]+)?=`)
	return Regexp(name, re)
}

// DefaultExport matches an "export default" statement
func DefaultExport(name string) Marker {
	re := regexp.MustCompile(`^\s*export\s+default\b`)
	return Regexp(name, re)
}

// MethodStart matches the first line of a method declaration called method,
// with any access, static, async or override modifiers.
func MethodStart(name, method string) Marker {
	re := regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|async|override|readonly)\s+)*` +
		regexp.QuoteMeta(method) + `\s*[(<]`)
	return Regexp(name, re)
}
