// Package component describes widget components and drives their lifecycle.
package component

// Definition is static description of a component: its name and raw
// stylesheets it wants in the host document.
type Definition struct {
	Name   string
	Styles []string
}

// Hooks is a lifecycle augmentation applied to every mount and unmount of
// an App. Either function may be nil.
type Hooks struct {
	Mounted       func(def *Definition)
	BeforeUnmount func(def *Definition)
}

// Plugin extends App when installed.
type Plugin interface {
	Install(app *App)
}

// App is a runtime handle of a mounted root component. Lifecycle is driven
// explicitly by the hosting code with Mount and Unmount.
// NOTE: not to be used concurrently.
type App struct {
	root    *Definition
	hooks   []Hooks
	mounted bool
}

// NewApp creates application for the root component, root may be nil.
func NewApp(root *Definition) *App {
	return &App{root: root}
}

// Root returns root component definition.
func (a *App) Root() *Definition {
	if a == nil {
		return nil
	}
	return a.root
}

// Use installs plugins in order.
func (a *App) Use(plugins ...Plugin) *App {
	for _, p := range plugins {
		if p != nil {
			p.Install(a)
		}
	}
	return a
}

// Mixin registers lifecycle hooks. Hooks run in registration order.
func (a *App) Mixin(h Hooks) {
	a.hooks = append(a.hooks, h)
}

// Mount runs all Mounted hooks. Mounting already mounted application runs
// hooks again.
func (a *App) Mount() {
	for _, h := range a.hooks {
		if h.Mounted != nil {
			h.Mounted(a.root)
		}
	}
	a.mounted = true
}

// Unmount runs all BeforeUnmount hooks.
func (a *App) Unmount() {
	for _, h := range a.hooks {
		if h.BeforeUnmount != nil {
			h.BeforeUnmount(a.root)
		}
	}
	a.mounted = false
}

// Mounted reports whether Mount was called after last Unmount.
func (a *App) Mounted() bool {
	return a.mounted
}
