package css_test

import (
	"strings"
	"testing"

	"wcstyle/css"
)

const tag = "web-component-batata"

func TestPrefixSelectors_Reference(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "simple selector",
			in: `
      h1 {
        color: red;
      }
    `,
			want: `web-component-batata h1 {
        color: red;
      }
    `,
		},
		{
			name: "selector list",
			in: `
      h1, h2 {
        color: blue;
      }
    `,
			want: `web-component-batata h1, web-component-batata h2 {
        color: blue;
      }
    `,
		},
		{
			name: "media header is kept, inner rule is prefixed",
			in: `
      @media (min-width: 1024px) {
        h1 {
          color: green;
        }
      }
    `,
			want: `
      @media (min-width: 1024px) {web-component-batata h1 {
          color: green;
        }
      }
    `,
		},
		{
			name: "selector list inside media",
			in: `
      @media (max-width: 600px) {
        .greetings h1, .greetings h2 {
          font-size: 1.2rem;
        }
      }
    `,
			want: `
      @media (max-width: 600px) {web-component-batata .greetings h1, web-component-batata .greetings h2 {
          font-size: 1.2rem;
        }
      }
    `,
		},
		{
			name: "keyframe steps are prefixed",
			in: `
      @keyframes slidein {
        from {
          transform: translateX(0%);
        }
        to {
          transform: translateX(100%);
        }
      }
    `,
			want: `
      @keyframes slidein {web-component-batata from {
          transform: translateX(0%);
        }web-component-batata to {
          transform: translateX(100%);
        }
      }
    `,
		},
		{
			name: "id and class selectors",
			in: `
      #header {
        background: yellow;
      }
      .footer {
        padding: 10px;
      }
    `,
			want: `web-component-batata #header {
        background: yellow;
      }web-component-batata .footer {
        padding: 10px;
      }
    `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := css.PrefixSelectors(tt.in, tag); got != tt.want {
				t.Errorf("PrefixSelectors() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestPrefixSelectors_Compact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty input", "", ""},
		{"no blocks", "color: red;", "color: red;"},
		{"flat", "h1{color:red}", "x-w h1 {color:red}"},
		{"pseudo class", "a:hover{color:red}", "x-w a:hover {color:red}"},
		{"attribute", `input[type="text"]{border:0}`, `x-w input[type="text"] {border:0}`},
		{"combinator", "ul > li{margin:0}", "x-w ul > li {margin:0}"},
		{"list without spaces", "a,b,c{}", "x-w a, x-w b, x-w c {}"},
		{"empty list entry", "a,{}", "x-w a, x-w  {}"},
		{"font-face", "@font-face{font-family:x}", "@font-face{font-family:x}"},
		{"supports", "@supports (display:grid){div{display:grid}}", "@supports (display:grid){x-w div {display:grid}}"},
		{"brace in comment", "/* a { */b{}", "x-w /* a {x-w */b {}"},
		{"leading brace is not a block", "{a:b}", "{a:b}"},
		{"declarations after block", "a{}\n\nb{}", "x-w a {}x-w b {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := css.PrefixSelectors(tt.in, "x-w"); got != tt.want {
				t.Errorf("PrefixSelectors(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPrefixSelectors_ListCount(t *testing.T) {
	for n := 1; n <= 6; n++ {
		sels := make([]string, n)
		for i := range sels {
			sels[i] = "  .c" + strings.Repeat("x", i) + " "
		}
		in := strings.Join(sels, ",") + "{}"
		got := css.PrefixSelectors(in, "x-w")

		header, _, ok := strings.Cut(got, " {")
		if !ok {
			t.Fatalf("no block in output %q", got)
		}
		entries := strings.Split(header, ", ")
		if len(entries) != n {
			t.Fatalf("got %d entries, want %d: %q", len(entries), n, header)
		}
		for i, e := range entries {
			if want := "x-w .c" + strings.Repeat("x", i); e != want {
				t.Errorf("entry %d = %q, want %q", i, e, want)
			}
		}
	}
}

func TestPrefixSelectors_AtRuleHeadersUntouched(t *testing.T) {
	headers := []string{
		"@media screen and (min-width: 10px) ",
		"@supports not (display: grid) ",
		"@font-face ",
		"@keyframes spin ",
		"@layer base ",
	}
	for _, h := range headers {
		in := h + "{}"
		if got := css.PrefixSelectors(in, "x-w"); got != in {
			t.Errorf("PrefixSelectors(%q) = %q, header must be kept", in, got)
		}
	}
}

func TestPrefixSelectors_ByteOrderMark(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"at-rule header", "\ufeff@media (x){a{}}", "\ufeff@media (x){x-w a {}}"},
		{"plain selector", "\ufeffh1{color:red}", "x-w h1 {color:red}"},
		{"list entries", "a,\ufeff b{}", "x-w a, x-w b {}"},
		{"non-breaking space", "\u00a0a\u00a0{}", "x-w a {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := css.PrefixSelectors(tt.in, "x-w"); got != tt.want {
				t.Errorf("PrefixSelectors() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrefixSelectors_NextLineIsKept(t *testing.T) {
	got := css.PrefixSelectors("a\u0085{}", "x-w")
	if got != "x-w a\u0085 {}" {
		t.Errorf("PrefixSelectors() = %q", got)
	}
}
