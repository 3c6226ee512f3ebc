// Package agg has the nested-attribute counting and tabulation engine.
package agg

import (
	"errors"
	"fmt"

	"github.com/huangsam/blamescope/schema"
)

// CountNode is one node of a nested count tree: an attribute value, the
// number of records carrying it at this level, an optional formatted
// rendition of that count, and the children keyed by the next attribute's
// values. Sibling order is first-encounter order among the input records.
type CountNode struct {
	Key       string
	Count     int
	Formatted string
	children  *countLevel
}

// Children returns the child nodes in first-encounter order.
func (n *CountNode) Children() []*CountNode {
	return n.children.nodes()
}

// countLevel is an insertion-ordered map of attribute value to node.
type countLevel struct {
	keys  []string
	byKey map[string]*CountNode
}

func newCountLevel() *countLevel {
	return &countLevel{byKey: make(map[string]*CountNode)}
}

func (l *countLevel) getOrCreate(key string) *CountNode {
	if node, ok := l.byKey[key]; ok {
		return node
	}
	node := &CountNode{Key: key, children: newCountLevel()}
	l.keys = append(l.keys, key)
	l.byKey[key] = node
	return node
}

func (l *countLevel) nodes() []*CountNode {
	out := make([]*CountNode, 0, len(l.keys))
	for _, k := range l.keys {
		out = append(out, l.byKey[k])
	}
	return out
}

// NestedCount is the result of counting records by an ordered attribute
// list. The tree depth equals Levels; children at depth d are keyed by
// the attribute at position d+1 of the requested list.
type NestedCount struct {
	Levels       int
	root         *countLevel
	hasFormatted bool
}

// TopLevel returns the depth-zero nodes in first-encounter order.
func (t *NestedCount) TopLevel() []*CountNode {
	return t.root.nodes()
}

// Options tunes how counting keys and counts are rendered.
type Options struct {
	// KeyFormatters normalizes an attribute value before it becomes a
	// grouping key, indexed by attribute name.
	KeyFormatters map[string]func(string) string

	// CountFormatter produces the Formatted value stored on every node
	// once counting is complete.
	CountFormatter func(count int) string
}

// CountByNestedAttributes consumes a record sequence and a non-empty
// ordered attribute list and builds a nested count tree. Every attribute
// must resolve on every record.
func CountByNestedAttributes(lines []schema.BlameLine, attrs []string, opts *Options) (*NestedCount, error) {
	if len(attrs) == 0 {
		return nil, errors.New("expected at least one attribute to count by, but received 0")
	}
	if opts == nil {
		opts = &Options{}
	}

	tree := &NestedCount{Levels: len(attrs), root: newCountLevel()}
	for _, line := range lines {
		if err := countInto(tree.root, line, attrs, opts); err != nil {
			return nil, err
		}
	}

	if opts.CountFormatter != nil {
		tree.hasFormatted = true
		formatLevel(tree.root, opts.CountFormatter)
	}
	return tree, nil
}

// countInto walks the attribute list recursively, incrementing the count
// for the first attribute's value and descending into its children with
// the remainder.
func countInto(level *countLevel, line schema.BlameLine, attrs []string, opts *Options) error {
	if len(attrs) == 0 {
		return nil
	}
	value, ok := line.AttributeValue(attrs[0])
	if !ok {
		return fmt.Errorf("attribute '%s' does not resolve on blame records", attrs[0])
	}
	if kf, ok := opts.KeyFormatters[attrs[0]]; ok && kf != nil {
		value = kf(value)
	}
	node := level.getOrCreate(value)
	node.Count++
	return countInto(node.children, line, attrs[1:], opts)
}

func formatLevel(level *countLevel, formatter func(int) string) {
	for _, node := range level.nodes() {
		node.Formatted = formatter(node.Count)
		formatLevel(node.children, formatter)
	}
}

// PercentFormatter renders a count as a fixed 12-decimal-place percentage
// of the given total. The total is always the count of all records
// considered for the report, not the count within a nested branch.
func PercentFormatter(total int) func(int) string {
	return func(count int) string {
		if total == 0 {
			return fmt.Sprintf("%.12f%%", 0.0)
		}
		return fmt.Sprintf("%.12f%%", 100*float64(count)/float64(total))
	}
}

// TabulateNestedCounts flattens a nested count tree into tabular rows via
// pre-order traversal: one row per node, parents before descendants,
// sibling order preserved. Each row is blank in every attribute column
// except the one matching the node's depth, followed by the count and,
// when formatting applies, the formatted count.
func TabulateNestedCounts(tree *NestedCount, titles []string, formatter func(int) string) schema.TabularData {
	withFormatted := formatter != nil || tree.hasFormatted

	header := make([]string, 0, len(titles)+2)
	header = append(header, titles...)
	header = append(header, "Count")
	if withFormatted {
		header = append(header, "Formatted")
	}

	var rows [][]string
	var walk func(level *countLevel, depth int)
	walk = func(level *countLevel, depth int) {
		for _, node := range level.nodes() {
			row := make([]string, 0, len(header))
			for i := range tree.Levels {
				if i == depth {
					row = append(row, node.Key)
				} else {
					row = append(row, "")
				}
			}
			row = append(row, fmt.Sprintf("%d", node.Count))
			if withFormatted {
				formatted := node.Formatted
				if formatter != nil {
					formatted = formatter(node.Count)
				}
				row = append(row, formatted)
			}
			rows = append(rows, row)
			walk(node.children, depth+1)
		}
	}
	walk(tree.root, 0)

	return schema.TabularData{Header: header, Rows: rows}
}
