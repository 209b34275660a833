package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if len(cfg.Elements) != 1 {
		t.Fatalf("Default elements = %+v, want single element", cfg.Elements)
	}
	el := cfg.Elements[0]
	if el.Tag != "visualizer-tik-tok" || el.Component != "TikTok" || el.ShadowRoot {
		t.Errorf("Unexpected default element %+v", el)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("File level = %q, want none", cfg.Logging.FileLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `version: 1
elements:
  - tag: visualizer-tik-tok
    component: TikTok
    styles: ["dist/style.css", "dist/bundle.zip/assets/extra.css"]
  - tag: visualizer-reels
    component: Reels
    shadow_root: true
scoping:
  inspect: true
  charset: windows-1251
logging:
  console:
    level: debug
  file:
    level: debug
    destination: `+filepath.Join(dir, "test.log")+`
    mode: append
reporting:
  destination: `+filepath.Join(dir, "report.zip")+`
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if len(cfg.Elements) != 2 {
		t.Fatalf("Elements = %+v, want 2", cfg.Elements)
	}
	if len(cfg.Elements[0].Styles) != 2 {
		t.Errorf("Styles = %v, want 2 entries", cfg.Elements[0].Styles)
	}
	if !cfg.Elements[1].ShadowRoot {
		t.Error("Expected second element to use shadow root")
	}
	if !cfg.Scoping.Inspect || cfg.Scoping.Charset != "windows-1251" {
		t.Errorf("Unexpected scoping %+v", cfg.Scoping)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("File log mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `version: 1
elements:
  - tag: x
  invalid indent
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	path := writeConfig(t, `version: 1
unknown_field: value
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tests := map[string]string{
		"version": "version: 2\n",
		"missing component": `version: 1
elements:
  - tag: visualizer-tik-tok
`,
		"empty style path": `version: 1
elements:
  - tag: visualizer-tik-tok
    component: TikTok
    styles: [""]
`,
		"duplicate tag": `version: 1
elements:
  - tag: visualizer-tik-tok
    component: TikTok
  - tag: visualizer-tik-tok
    component: Reels
`,
		"console level": `version: 1
logging:
  console:
    level: loud
`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, content)); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if strings.Contains(string(data), "{{") {
		t.Error("Prepare() left unexpanded template fields")
	}

	cfg := &Config{}
	if err := decode(data, cfg); err != nil {
		t.Fatalf("Prepared config cannot be decoded: %v", err)
	}
	if err := check(cfg); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Elements: []ElementConfig{
			{Tag: "visualizer-tik-tok", Component: "TikTok", Styles: []string{"a.css"}},
		},
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none"},
		},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	loaded := &Config{}
	if err := decode(data, loaded); err != nil {
		t.Fatalf("Dumped config cannot be decoded: %v", err)
	}
	if len(loaded.Elements) != 1 || loaded.Elements[0].Styles[0] != "a.css" {
		t.Errorf("Unexpected elements after dump %+v", loaded.Elements)
	}
}

func TestConfig_Element(t *testing.T) {
	cfg := &Config{Elements: []ElementConfig{
		{Tag: "visualizer-tik-tok", Component: "TikTok"},
		{Tag: "visualizer-reels", Component: "Reels", ShadowRoot: true},
	}}

	ec, ok := cfg.Element("visualizer-reels")
	if !ok || ec.Component != "Reels" || !ec.ShadowRoot {
		t.Errorf("Element() = %+v, %v", ec, ok)
	}
	if _, ok := cfg.Element("visualizer-none"); ok {
		t.Error("Element() found undefined tag")
	}
}
