// Package tagutil parses the struct tags consumed by field-plan compilation.
package tagutil

import "strings"

type JSONTag struct {
	Name      string
	Explicit  bool
	Transient bool
}

// ParseJSONTag resolves the effective member name from a `json` tag.
// `json:"-"` marks the field transient; an explicit name overrides any
// global rename convention.
func ParseJSONTag(defaultName string, raw string) JSONTag {
	if raw == "" {
		return JSONTag{Name: defaultName}
	}
	parts := strings.Split(raw, ",")
	name := parts[0]
	if name == "" {
		return JSONTag{Name: defaultName}
	}
	return JSONTag{
		Name:      name,
		Explicit:  true,
		Transient: name == "-",
	}
}
