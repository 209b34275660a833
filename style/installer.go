package style

import (
	"go.uber.org/zap"

	"wcstyle/component"
	"wcstyle/css"
)

const nodeIDPrefix = "style-"

// NodeID returns id of style node owned by component with given name.
func NodeID(componentName string) string {
	return nodeIDPrefix + componentName
}

// Installer ties selector prefixing to component lifecycle: on mount every
// declared stylesheet is scoped with element tag name and put into the
// registry unless node is already there, on unmount the node is removed.
type Installer struct {
	tag string
	reg Registry
	log *zap.Logger
}

// NewInstaller creates lifecycle manager for custom element webComponentName
// writing into reg.
func NewInstaller(webComponentName string, reg Registry, log *zap.Logger) *Installer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Installer{
		tag: webComponentName,
		reg: reg,
		log: log.Named("styles").With(zap.String("element", webComponentName)),
	}
}

// Install hooks installer into application lifecycle. Application without
// root component is left alone.
func (in *Installer) Install(app *component.App) {
	if app == nil || app.Root() == nil {
		in.log.Debug("No root component, styles will not be managed")
		return
	}
	app.Mixin(component.Hooks{
		Mounted:       in.OnMount,
		BeforeUnmount: in.OnUnmount,
	})
}

// OnMount injects scoped styles of def. All stylesheets of a component share
// single node id, so only the first one ends up in the registry.
func (in *Installer) OnMount(def *component.Definition) {
	if def == nil || len(def.Styles) == 0 {
		return
	}
	for _, style := range def.Styles {
		id := NodeID(def.Name)
		if in.reg.Has(id) {
			continue
		}
		in.reg.Upsert(id, css.PrefixSelectors(style, in.tag))
		in.log.Debug("Style injected", zap.String("id", id), zap.Int("bytes", len(style)))
	}
}

// OnUnmount removes style node of def. Declared stylesheets are only
// counted, removal is done by id.
func (in *Installer) OnUnmount(def *component.Definition) {
	if def == nil || len(def.Styles) == 0 {
		return
	}
	for range def.Styles {
		id := NodeID(def.Name)
		if !in.reg.Has(id) {
			continue
		}
		in.reg.Remove(id)
		in.log.Debug("Style removed", zap.String("id", id))
	}
}
