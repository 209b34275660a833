package css

import (
	"regexp"
	"strings"
	"unicode"
)

// ruleStart matches selector text (anything but braces) right before an
// opening brace. Matches are leftmost and non-overlapping, nesting is not
// tracked.
var ruleStart = regexp.MustCompile(`([^{}]+)\s*\{`)

// PrefixSelectors scopes CSS text by putting prefix and a space in front of
// every selector of every rule block. Selector lists are split on commas, each
// entry is trimmed, prefixed and the list is joined back with ", ". Blocks
// whose header starts with "@" are left untouched.
//
// This is a textual scan, not a parser. Blocks nested inside at-rules are
// found independently, so rules inside @media are prefixed and so are "from"
// and "to" steps of @keyframes. A brace inside a comment starts a block as
// well. Whitespace preceding a rewritten selector is consumed, everything
// else outside of matches is copied as is.
func PrefixSelectors(css, prefix string) string {
	matches := ruleStart.FindAllStringSubmatchIndex(css, -1)
	if len(matches) == 0 {
		return css
	}

	var sb strings.Builder
	sb.Grow(len(css) + len(matches)*(len(prefix)+1))

	last := 0
	for _, m := range matches {
		sb.WriteString(css[last:m[0]])
		last = m[1]

		selector := css[m[2]:m[3]]
		if strings.HasPrefix(trimSpace(selector), "@") {
			sb.WriteString(css[m[0]:m[1]])
			continue
		}
		sb.WriteString(prefixList(selector, prefix))
		sb.WriteString(" {")
	}
	sb.WriteString(css[last:])
	return sb.String()
}

func prefixList(selector, prefix string) string {
	parts := strings.Split(selector, ",")
	for i, p := range parts {
		parts[i] = prefix + " " + trimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// trimSpace drops leading and trailing white space the way browsers trim
// strings: byte order mark counts as space, NEL does not.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}
