package segment

import "errors"

// Replacement swaps a contiguous block of lines for another one.
type Replacement struct {
	Name string
	Old  []string
	New  []string
}

// ReplaceBlock replaces the first occurrence of r.Old with r.New.
//
// The step is idempotent: when r.New is already present (and, if r.Old is
// also present, the r.Old match lies inside the r.New match) the input is
// returned unchanged with applied == false. When neither block is present a
// NotFoundError naming the replacement is returned.
func ReplaceBlock(lines []string, r Replacement) ([]string, bool, error) {
	if len(r.Old) == 0 {
		return nil, false, &ConfigurationError{Item: "replacement " + r.Name, Err: errors.New("empty block")}
	}

	oldAt := findBlock(lines, r.Old)
	newAt := -1
	if len(r.New) > 0 {
		newAt = findBlock(lines, r.New)
	}

	switch {
	case oldAt >= 0 && newAt >= 0 && newAt <= oldAt && oldAt+len(r.Old) <= newAt+len(r.New):
		// Already applied
		return lines, false, nil
	case oldAt >= 0:
		out := make([]string, 0, len(lines)-len(r.Old)+len(r.New))
		out = append(out, lines[:oldAt]...)
		out = append(out, r.New...)
		out = append(out, lines[oldAt+len(r.Old):]...)
		return out, true, nil
	case newAt >= 0:
		return lines, false, nil
	default:
		return nil, false, &NotFoundError{Marker: r.Name, From: 0}
	}
}

// findBlock returns the index where block starts as a contiguous run, or -1
func findBlock(lines, block []string) int {
	for i := 0; i+len(block) <= len(lines); i++ {
		match := true
		for j := range block {
			if lines[i+j] != block[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
