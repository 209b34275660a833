package css

import (
	"bytes"
	"fmt"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Inspector walks stylesheets with a real CSS grammar to explain what
// textual prefixing is going to produce.
type Inspector struct {
	log *zap.Logger
}

// NewInspector creates a new stylesheet inspector.
func NewInspector(log *zap.Logger) *Inspector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Inspector{log: log.Named("css-inspector")}
}

// Inspect builds Outline of CSS text. The optional source parameter
// identifies what's being inspected (for debug logging).
func (in *Inspector) Inspect(data []byte, source ...string) *Outline {
	outline := &Outline{
		Items:    make([]Item, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		in.log.Debug("Inspecting CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	var pending []string
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				in.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return outline

		case css.CommentGrammar:
			in.checkComment(outline, data)

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			if string(data) == "@import" {
				if url := extractImportURL(parser.Values()); url != "" {
					outline.Items = append(outline.Items, Item{Import: &url})
					in.log.Debug("Found @import", zap.String("url", url))
				}
			}

		case css.BeginAtRuleGrammar:
			at := &AtRule{
				Name:    strings.ToLower(string(data)),
				Prelude: joinTokens(parser.Values()),
			}
			in.parseAtRuleBlock(parser, outline, at)
			in.log.Debug("Found at-rule block", zap.String("rule", at.Name), zap.Int("rules", len(at.Rules)))
			outline.Items = append(outline.Items, Item{AtRule: at})

		case css.QualifiedRuleGrammar:
			// one entry of a selector list, the rest comes with the ruleset
			pending = append(pending, parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			rule := Rule{Selectors: append(pending, parseSelectors(data, parser.Values())...)}
			pending = nil
			rule.Declarations = in.skipRuleset(parser, outline)
			outline.Items = append(outline.Items, Item{Rule: &rule})
		}
	}
}

// parseAtRuleBlock collects rule blocks nested directly in an at-rule until
// the matching end of block.
func (in *Inspector) parseAtRuleBlock(parser *css.Parser, outline *Outline, at *AtRule) {
	keyframes := strings.HasSuffix(at.Name, "keyframes")
	at.Depth = 1

	var pending []string
	depth := 1
	for depth > 0 {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			return

		case css.CommentGrammar:
			in.checkComment(outline, data)

		case css.BeginAtRuleGrammar:
			depth++
			at.Depth = max(at.Depth, depth)
			outline.Warnings = append(outline.Warnings,
				fmt.Sprintf("%s inside %s is nested deeper than one level, its rules are prefixed as if they were flat", string(data), at.Name))

		case css.EndAtRuleGrammar:
			depth--

		case css.QualifiedRuleGrammar:
			pending = append(pending, parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			rule := Rule{Selectors: append(pending, parseSelectors(data, parser.Values())...)}
			pending = nil
			rule.Declarations = in.skipRuleset(parser, outline)
			at.Depth = max(at.Depth, depth+1)
			if depth == 1 {
				at.Rules = append(at.Rules, rule)
			}
			if keyframes {
				for _, sel := range rule.Selectors {
					outline.Warnings = append(outline.Warnings,
						fmt.Sprintf("keyframe step %q of %s %s will be prefixed", sel, at.Name, at.Prelude))
				}
			}
		}
	}
}

// skipRuleset counts declarations until the end of the ruleset.
func (in *Inspector) skipRuleset(parser *css.Parser, outline *Outline) int {
	var n int
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return n
		case css.CommentGrammar:
			in.checkComment(outline, data)
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			n++
		}
	}
}

func (in *Inspector) checkComment(outline *Outline, data []byte) {
	if bytes.IndexByte(data, '{') >= 0 {
		outline.Warnings = append(outline.Warnings,
			fmt.Sprintf("comment %q contains opening brace, text before it will be treated as selector", shorten(string(data), 40)))
	}
}

// parseSelectors restores selector list text from ruleset tokens and splits
// it on top level commas. Tokenizer drops white space around combinators, it
// is put back so "ul > li" reads the same as in the source.
func parseSelectors(data []byte, values []css.Token) []string {
	var (
		selectors []string
		sb        strings.Builder
		level     int
	)
	flush := func() {
		if s := strings.TrimSpace(sb.String()); s != "" {
			selectors = append(selectors, s)
		}
		sb.Reset()
	}

	sb.Write(data)
	for _, v := range values {
		switch v.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			level++
		case css.RightParenthesisToken, css.RightBracketToken:
			level--
		case css.CommaToken:
			if level == 0 {
				flush()
				continue
			}
		}
		if level == 0 && isCombinator(v) {
			sb.WriteString(" " + string(v.Data) + " ")
			continue
		}
		sb.Write(v.Data)
	}
	flush()
	return selectors
}

func isCombinator(t css.Token) bool {
	return len(t.Data) == 1 && (t.Data[0] == '>' || t.Data[0] == '+' || t.Data[0] == '~')
}

// joinTokens restores text of token list collapsing whitespace.
func joinTokens(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
