// Package scope implements program commands: scoping stylesheets and
// managing style nodes of host pages.
package scope

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"wcstyle/archive"
	"wcstyle/component"
	"wcstyle/css"
	"wcstyle/element"
	"wcstyle/state"
)

// prepareEnv applies stylesheet related settings, command line takes
// precedence over configuration.
func prepareEnv(env *state.LocalEnv, charset string, inspect bool, log *zap.Logger) {
	if len(charset) == 0 && env.Cfg != nil {
		charset = env.Cfg.Scoping.Charset
	}
	env.Inspect = inspect || (env.Cfg != nil && env.Cfg.Scoping.Inspect)

	env.CodePage = nil
	if len(charset) == 0 {
		return
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", charset), zap.Error(err))
		return
	}
	env.CodePage = enc
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug("Converting stylesheets to UTF-8", zap.String("charset", n))
}

// loadStylesheet reads CSS from file or from zip bundle when src points
// inside of one.
func loadStylesheet(env *state.LocalEnv, src string, log *zap.Logger) (string, error) {
	var (
		data []byte
		err  error
	)
	if arc, name, ok := archive.Split(src); ok {
		data, err = archive.ReadFile(arc, name)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return "", fmt.Errorf("unable to read stylesheet: %w", err)
	}

	if enc := detectUTF(data); enc != nil {
		// byte order mark wins over configured code page
		if data, err = enc.NewDecoder().Bytes(data); err != nil {
			return "", fmt.Errorf("unable to decode stylesheet %s: %w", src, err)
		}
		log.Debug("Stylesheet byte order mark detected", zap.String("source", src))
	} else if data, err = env.DecodeText(data); err != nil {
		return "", fmt.Errorf("stylesheet %s: %w", src, err)
	}

	if env.Inspect {
		outline := css.NewInspector(log).Inspect(data, src)
		for _, w := range outline.Warnings {
			log.Warn("Stylesheet will be scoped literally", zap.String("source", src), zap.String("details", w))
		}
	}
	return string(data), nil
}

// buildCatalog defines configured elements loading their stylesheets.
// Elements which could not be defined are reported together.
func buildCatalog(ctx context.Context, env *state.LocalEnv, log *zap.Logger) (*element.Catalog, error) {
	catalog := element.NewCatalog(log)

	var errs error
	for _, ec := range env.Cfg.Elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		def := &component.Definition{Name: ec.Component}
		var failed bool
		for _, src := range ec.Styles {
			text, err := loadStylesheet(env, src, log)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("element %s: %w", ec.Tag, err))
				failed = true
				continue
			}
			def.Styles = append(def.Styles, text)
		}
		if failed {
			continue
		}
		if err := catalog.Define(element.Spec{Tag: ec.Tag, Component: def, ShadowRoot: ec.ShadowRoot}); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return catalog, errs
}
