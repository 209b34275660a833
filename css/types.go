package css

import (
	"fmt"
	"io"
	"strings"
)

// Rule is a plain rule block: selector list and number of declarations.
type Rule struct {
	Selectors    []string // Trimmed selectors of the list, source order
	Declarations int      // Number of declarations in the block
}

// AtRule is an at-rule with a block, e.g. @media or @keyframes.
type AtRule struct {
	Name    string // At-keyword including "@"
	Prelude string // Text between the keyword and the block
	Rules   []Rule // Rule blocks found directly inside
	Depth   int    // Deepest nesting level of blocks inside, 1 for flat
}

// Item is a single top-level item of the stylesheet.
// Exactly one of Rule, AtRule or Import is non-nil.
type Item struct {
	Rule   *Rule
	AtRule *AtRule
	Import *string
}

// Outline is a shallow structural view of a stylesheet. It is used to
// explain what textual prefixing is going to do, not to restyle anything.
type Outline struct {
	Items    []Item   // All top-level items in source order
	Warnings []string // Places where prefixing yields surprising CSS
}

// Imports returns all @import URLs in source order.
func (o *Outline) Imports() []string {
	var urls []string
	for _, item := range o.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// Blocks returns number of rule blocks PrefixSelectors is going to rewrite,
// nested ones included.
func (o *Outline) Blocks() int {
	var n int
	for _, item := range o.Items {
		switch {
		case item.Rule != nil:
			n++
		case item.AtRule != nil:
			n += len(item.AtRule.Rules)
		}
	}
	return n
}

// Selectors returns all selectors of top-level rules.
func (o *Outline) Selectors() []string {
	var sels []string
	for _, item := range o.Items {
		if item.Rule != nil {
			sels = append(sels, item.Rule.Selectors...)
		}
	}
	return sels
}

// WriteTo writes human readable outline to w, implementing io.WriterTo.
func (o *Outline) WriteTo(w io.Writer) (int64, error) {
	var total int64
	write := func(format string, args ...any) error {
		n, err := fmt.Fprintf(w, format, args...)
		total += int64(n)
		return err
	}

	for _, item := range o.Items {
		var err error
		switch {
		case item.Import != nil:
			err = write("@import %q\n", *item.Import)
		case item.Rule != nil:
			err = write("rule %s (%d)\n", strings.Join(item.Rule.Selectors, ", "), item.Rule.Declarations)
		case item.AtRule != nil:
			if err = write("%s %s\n", item.AtRule.Name, item.AtRule.Prelude); err != nil {
				return total, err
			}
			for _, r := range item.AtRule.Rules {
				if err = write("  rule %s (%d)\n", strings.Join(r.Selectors, ", "), r.Declarations); err != nil {
					return total, err
				}
			}
		}
		if err != nil {
			return total, err
		}
	}
	for _, warn := range o.Warnings {
		if err := write("warning: %s\n", warn); err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns text produced by WriteTo.
func (o *Outline) String() string {
	var sb strings.Builder
	o.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}
