package blame

import (
	"fmt"
	"regexp"

	"github.com/huangsam/blamescope/schema"
)

// lineRegex matches the default git-blame output format, capturing commit,
// contributor, date, time, timezone offset, line number and source text.
// Example: `cc55be13 (nickmflorin 2021-02-27 13:56:47 -0500  1) [tox]`
var lineRegex = regexp.MustCompile(
	`([\^a-zA-Z0-9]*)\s*\(([a-zA-Z0-9\s]*)\s*` +
		`([0-9]{4})-([0-9]{2})-([0-9]{2})\s*` +
		`([0-9]{2}):([0-9]{2}):([0-9]{2})\s*` +
		`([-+0-9]*)\s*([0-9]*)\)\s*(.*)`)

// ParseLine turns one raw blame-output line into a populated record.
// Failures come back as a *LineError value, never a panic: a structural
// mismatch drops the line (silently when the line is empty), and a
// critical attribute failure drops the line with the attribute named.
// Non-critical attribute failures keep the line, leave the attribute at
// its zero value, and report a warning message.
func ParseLine(raw string, loc schema.LocationContext) (schema.BlameLine, []string, error) {
	m := lineRegex.FindStringSubmatch(raw)
	if m == nil {
		// git blame output commonly ends with a trailing blank line.
		return schema.BlameLine{}, nil, &LineError{
			Context: loc,
			Data:    raw,
			Silent:  raw == "",
		}
	}
	groups := m[1:]

	var line schema.BlameLine
	var warnings []string

	// First resolve the attributes derived directly from the regexp match,
	// in declaration order. Successful values are retained in a transient
	// map so dependent attributes read from it rather than from the record.
	values := make(map[string]any)
	for _, attr := range Attributes {
		parsed, ok := attr.(ParsedAttribute)
		if !ok {
			continue
		}
		value, err := parsed.parse(groups)
		if err != nil {
			if parsed.Critical {
				return schema.BlameLine{}, nil, &LineError{
					Context: loc,
					Data:    raw,
					Attr:    parsed.Name,
				}
			}
			warnings = append(warnings, fmt.Sprintf(
				"could not parse attribute '%s' from line %q in %s: %v",
				parsed.Name, raw, loc.RepositoryFilePath(), err))
			continue
		}
		parsed.assign(&line, value)
		values[parsed.Name] = value
	}

	// Now resolve the dependent and context-derived attributes, again in
	// declaration order.
	for _, attr := range Attributes {
		switch a := attr.(type) {
		case DependentAttribute:
			a.assign(&line, a.derive(values))
		case ContextAttribute:
			a.assign(&line, a.format(loc))
		}
	}

	return line, warnings, nil
}
