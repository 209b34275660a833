package scope

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"wcstyle/archive"
	"wcstyle/config"
)

const defaultOutputName = "{{ .Name }}.{{ .Tag }}.css"

// NameValues holds variables available for output name expansion.
type NameValues struct {
	Name   string // Base name of the source stylesheet without extension
	Ext    string // Extension of the source stylesheet, with leading dot
	Tag    string // Element tag used as scoping prefix
	Bundle string // Base name of zip bundle when stylesheet came from one
}

// expandOutputName produces file name for scoped stylesheet written into a
// directory.
func expandOutputName(field, src, tag string) (string, error) {
	if len(strings.TrimSpace(field)) == 0 {
		field = defaultOutputName
	}

	tmpl, err := template.New("output_name").Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse output name template: %w", err)
	}

	values := NameValues{Tag: tag}
	if arc, name, ok := archive.Split(src); ok {
		values.Bundle = strings.TrimSuffix(filepath.Base(arc), filepath.Ext(arc))
		src = name
	}
	values.Ext = filepath.Ext(src)
	values.Name = strings.TrimSuffix(filepath.Base(src), values.Ext)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand output name template: %w", err)
	}
	return config.CleanFileName(strings.TrimSpace(buf.String())), nil
}
