package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"wcstyle/css"
)

func TestInspector_FlatRules(t *testing.T) {
	in := css.NewInspector(zap.NewNop())

	outline := in.Inspect([]byte(`#header { background: yellow; } .footer { padding: 10px; margin: 0; }`), "flat.css")

	if len(outline.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(outline.Items))
	}
	if outline.Blocks() != 2 {
		t.Errorf("Blocks() = %d, want 2", outline.Blocks())
	}

	sels := outline.Selectors()
	if len(sels) != 2 || sels[0] != "#header" || sels[1] != ".footer" {
		t.Errorf("Selectors() = %v, want [#header .footer]", sels)
	}
	if r := outline.Items[1].Rule; r == nil || r.Declarations != 2 {
		t.Errorf("second rule = %+v, want 2 declarations", r)
	}
	if len(outline.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", outline.Warnings)
	}
}

func TestInspector_SelectorList(t *testing.T) {
	outline := css.NewInspector(nil).Inspect([]byte(`h1, h2, .title { color: blue; }`))

	sels := outline.Selectors()
	if len(sels) != 3 {
		t.Fatalf("Selectors() = %v, want 3 entries", sels)
	}
	if outline.Blocks() != 1 {
		t.Errorf("Blocks() = %d, want 1", outline.Blocks())
	}
}

func TestInspector_Combinators(t *testing.T) {
	outline := css.NewInspector(nil).Inspect([]byte(`ul > li, a+b, :is(h1, h2) ~ p, nav a { color: blue; }`))

	want := []string{"ul > li", "a + b", ":is(h1,h2) ~ p", "nav a"}
	sels := outline.Selectors()
	if len(sels) != len(want) {
		t.Fatalf("Selectors() = %q, want %q", sels, want)
	}
	for i := range want {
		if sels[i] != want[i] {
			t.Errorf("Selectors()[%d] = %q, want %q", i, sels[i], want[i])
		}
	}
}

func TestInspector_Media(t *testing.T) {
	outline := css.NewInspector(nil).Inspect([]byte(`
		@media (min-width: 1024px) {
			h1 { color: green; }
			p { margin: 0; }
		}
	`))

	if len(outline.Items) != 1 || outline.Items[0].AtRule == nil {
		t.Fatalf("expected single at-rule item, got %+v", outline.Items)
	}
	at := outline.Items[0].AtRule
	if at.Name != "@media" {
		t.Errorf("Name = %q, want @media", at.Name)
	}
	if !strings.Contains(at.Prelude, "min-width") {
		t.Errorf("Prelude = %q, want media condition", at.Prelude)
	}
	if len(at.Rules) != 2 {
		t.Errorf("got %d nested rules, want 2", len(at.Rules))
	}
	if outline.Blocks() != 2 {
		t.Errorf("Blocks() = %d, want 2", outline.Blocks())
	}
	if len(outline.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", outline.Warnings)
	}
}

func TestInspector_KeyframesWarn(t *testing.T) {
	outline := css.NewInspector(nil).Inspect([]byte(`
		@keyframes slidein {
			from { transform: translateX(0%); }
			to { transform: translateX(100%); }
		}
	`))

	if len(outline.Warnings) != 2 {
		t.Fatalf("got warnings %v, want 2", outline.Warnings)
	}
	for _, w := range outline.Warnings {
		if !strings.Contains(w, "keyframe step") {
			t.Errorf("unexpected warning %q", w)
		}
	}
}

func TestInspector_Import(t *testing.T) {
	outline := css.NewInspector(nil).Inspect([]byte(`@import "base.css"; a { color: red; }`))

	imports := outline.Imports()
	if len(imports) != 1 || imports[0] != "base.css" {
		t.Errorf("Imports() = %v, want [base.css]", imports)
	}
}

func TestOutline_String(t *testing.T) {
	url := "base.css"
	outline := &css.Outline{
		Items: []css.Item{
			{Import: &url},
			{Rule: &css.Rule{Selectors: []string{"h1", "h2"}, Declarations: 1}},
			{AtRule: &css.AtRule{Name: "@media", Prelude: "print", Rules: []css.Rule{{Selectors: []string{"p"}}}}},
		},
		Warnings: []string{"something"},
	}

	want := `@import "base.css"
rule h1, h2 (1)
@media print
  rule p (0)
warning: something
`
	if got := outline.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}
