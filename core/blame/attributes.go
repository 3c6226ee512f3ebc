package blame

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/blamescope/schema"
)

// LineAttribute is one named, titled extraction rule for a blame record.
// The three kinds form a closed set: ParsedAttribute values come from
// regexp capture groups, DependentAttribute values are derived from
// already-parsed values, and ContextAttribute values come from the
// record's location context. Dispatch happens by type switch in ParseLine.
type LineAttribute interface {
	AttrName() string
	AttrTitle() string
}

// ParsedAttribute extracts a raw value from one or more capture groups of
// the blame-line regexp match, optionally coercing it. A critical parse
// failure invalidates the whole line; a non-critical one leaves the
// attribute at its zero value.
type ParsedAttribute struct {
	Name     string
	Title    string
	Groups   []int // Capture group indexes, zero-based over the submatches
	Critical bool
	convert  func(raw []string) (any, error)
	assign   func(line *schema.BlameLine, value any)
}

func (a ParsedAttribute) AttrName() string  { return a.Name }
func (a ParsedAttribute) AttrTitle() string { return a.Title }

// parse pulls the raw group values and applies the coercion.
func (a ParsedAttribute) parse(groups []string) (any, error) {
	raw := make([]string, 0, len(a.Groups))
	for _, idx := range a.Groups {
		if idx >= len(groups) {
			return nil, fmt.Errorf("capture group %d out of range", idx)
		}
		raw = append(raw, strings.TrimSpace(groups[idx]))
	}
	return a.convert(raw)
}

// DependentAttribute computes a derived value from the transient map of
// already-parsed values. Dependent attributes run only after every parsed
// attribute has been resolved.
type DependentAttribute struct {
	Name   string
	Title  string
	derive func(values map[string]any) any
	assign func(line *schema.BlameLine, value any)
}

func (a DependentAttribute) AttrName() string  { return a.Name }
func (a DependentAttribute) AttrTitle() string { return a.Title }

// ContextAttribute sources its value from the record's location context
// rather than from the blame text, optionally through a formatter.
type ContextAttribute struct {
	Name   string
	Title  string
	format func(ctx schema.LocationContext) string
	assign func(line *schema.BlameLine, value string)
}

func (a ContextAttribute) AttrName() string  { return a.Name }
func (a ContextAttribute) AttrTitle() string { return a.Title }

// asString coerces a single raw group value to a trimmed string.
func asString(raw []string) (any, error) {
	return raw[0], nil
}

// asLineNo coerces a single raw group value to a non-negative integer.
func asLineNo(raw []string) (any, error) {
	n, err := strconv.Atoi(raw[0])
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a valid line number", raw[0])
	}
	if n < 0 {
		return nil, fmt.Errorf("line number %d is negative", n)
	}
	return n, nil
}

// asDateTime assembles the six date/time groups into one combined string
// and parses it as a timestamp.
func asDateTime(raw []string) (any, error) {
	combined := strings.Join(raw[:3], "-") + " " + strings.Join(raw[3:], ":")
	t, err := time.Parse(schema.DateTimeFormat, combined)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a valid timestamp", combined)
	}
	return t, nil
}

// fileTypeOf infers the file type from the repository-relative path. Files
// that are nothing but an extension, like `.gitignore` or `.npmrc`, are
// typed by their full name.
func fileTypeOf(loc schema.LocationContext) string {
	ext := filepath.Ext(loc.FileName)
	if ext == "" || ext == loc.FileName {
		if strings.HasPrefix(loc.FileName, ".") {
			return strings.ToLower(strings.TrimPrefix(loc.FileName, "."))
		}
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Attributes is the fixed, ordered attribute list shared by every blame
// record. Names are unique within the list; only the timestamp is
// non-critical, so a record with a missing date is still usable.
var Attributes = []LineAttribute{
	ContextAttribute{
		Name:   schema.AttrFileName,
		Title:  "File Name",
		format: func(loc schema.LocationContext) string { return loc.FileName },
		assign: func(l *schema.BlameLine, v string) { l.FileName = v },
	},
	ContextAttribute{
		Name:   schema.AttrFileType,
		Title:  "File Type",
		format: fileTypeOf,
		assign: func(l *schema.BlameLine, v string) { l.FileType = v },
	},
	ContextAttribute{
		Name:   schema.AttrFilePath,
		Title:  "File Path",
		format: func(loc schema.LocationContext) string { return loc.RepositoryFilePath() },
		assign: func(l *schema.BlameLine, v string) { l.FilePath = v },
	},
	ParsedAttribute{
		Name:     schema.AttrCommit,
		Title:    "Commit",
		Groups:   []int{0},
		Critical: true,
		convert:  asString,
		assign:   func(l *schema.BlameLine, v any) { l.Commit = v.(string) },
	},
	ParsedAttribute{
		Name:     schema.AttrContributor,
		Title:    "Contributor",
		Groups:   []int{1},
		Critical: true,
		convert:  asString,
		assign:   func(l *schema.BlameLine, v any) { l.Contributor = v.(string) },
	},
	ParsedAttribute{
		Name:     schema.AttrLineNo,
		Title:    "Line No.",
		Groups:   []int{9},
		Critical: true,
		convert:  asLineNo,
		assign:   func(l *schema.BlameLine, v any) { l.LineNo = v.(int) },
	},
	ParsedAttribute{
		Name:     schema.AttrDateTime,
		Title:    "Date/Time",
		Groups:   []int{2, 3, 4, 5, 6, 7},
		Critical: false,
		convert:  asDateTime,
		assign:   func(l *schema.BlameLine, v any) { l.DateTime = v.(time.Time) },
	},
	DependentAttribute{
		Name:  schema.AttrDate,
		Title: "Date",
		derive: func(values map[string]any) any {
			if t, ok := values[schema.AttrDateTime].(time.Time); ok {
				return t.Format(schema.DateFormat)
			}
			return ""
		},
		assign: func(l *schema.BlameLine, v any) { l.Date = v.(string) },
	},
	ParsedAttribute{
		Name:     schema.AttrCode,
		Title:    "Code",
		Groups:   []int{10},
		Critical: true,
		convert:  asString,
		assign:   func(l *schema.BlameLine, v any) { l.Code = v.(string) },
	},
}

// Titles maps attribute names to their display titles, preserving the
// order of the requested names.
func Titles(names []string) []string {
	titles := make([]string, 0, len(names))
	for _, name := range names {
		title := name
		for _, attr := range Attributes {
			if attr.AttrName() == name {
				title = attr.AttrTitle()
				break
			}
		}
		titles = append(titles, title)
	}
	return titles
}
