// Package element keeps custom element definitions of the widget bundle.
package element

import (
	"errors"
	"fmt"
	"slices"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"wcstyle/component"
	"wcstyle/css"
	"wcstyle/style"
)

var (
	ErrAlreadyDefined = errors.New("element already defined")
	ErrNotDefined     = errors.New("element not defined")
)

// Spec describes single custom element.
type Spec struct {
	Tag        string                // Registered tag name, also scoping prefix
	Component  *component.Definition // Root component rendered by the element
	ShadowRoot bool                  // Element renders into shadow tree, styles are encapsulated there
}

// Catalog is a registry of custom elements, similar to browser
// CustomElementRegistry.
// NOTE: not to be used concurrently.
type Catalog struct {
	specs map[string]Spec
	log   *zap.Logger
}

// NewCatalog creates empty catalog.
func NewCatalog(log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{specs: make(map[string]Spec), log: log.Named("elements")}
}

// Define adds element to the catalog.
func (c *Catalog) Define(spec Spec) error {
	if err := css.ValidPrefix(spec.Tag); err != nil {
		return err
	}
	if _, exists := c.specs[spec.Tag]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyDefined, spec.Tag)
	}
	c.specs[spec.Tag] = spec
	c.log.Debug("Element defined", zap.String("tag", spec.Tag), zap.Bool("shadow", spec.ShadowRoot))
	return nil
}

// Lookup returns element definition by tag.
func (c *Catalog) Lookup(tag string) (Spec, bool) {
	spec, ok := c.specs[tag]
	return spec, ok
}

// Tags returns all defined tags in natural order.
func (c *Catalog) Tags() []string {
	tags := make([]string, 0, len(c.specs))
	for tag := range c.specs {
		tags = append(tags, tag)
	}
	slices.SortFunc(tags, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return tags
}

// Configure prepares application for element tag. Elements rendered without
// shadow root get their styles scoped and managed in reg, shadow root
// elements keep styles to themselves.
func (c *Catalog) Configure(tag string, reg style.Registry) (*component.App, error) {
	spec, ok := c.specs[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotDefined, tag)
	}

	app := component.NewApp(spec.Component)
	if !spec.ShadowRoot {
		app.Use(style.NewInstaller(spec.Tag, reg, c.log))
	}
	return app, nil
}
