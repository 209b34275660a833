package scope

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"wcstyle/css"
	"wcstyle/page"
	"wcstyle/state"
)

// Prefix scopes single stylesheet with element tag.
func Prefix(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("prefix")

	tag := cmd.String("tag")
	if len(tag) == 0 {
		if len(env.Cfg.Elements) != 1 {
			return errors.New("no element tag has been specified")
		}
		tag = env.Cfg.Elements[0].Tag
	}
	if err := css.ValidPrefix(tag); err != nil {
		return err
	}
	if ec, ok := env.Cfg.Element(tag); ok {
		log.Debug("Scoping for configured element", zap.String("tag", tag), zap.String("component", ec.Component), zap.Bool("shadow", ec.ShadowRoot))
	}

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input stylesheet has been specified")
	}
	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	prepareEnv(env, cmd.String("charset"), cmd.Bool("inspect"), log)
	return prefixStylesheet(env, tag, src, dst, log)
}

func prefixStylesheet(env *state.LocalEnv, tag, src, dst string, log *zap.Logger) error {
	text, err := loadStylesheet(env, src, log)
	if err != nil {
		return err
	}
	scoped := css.PrefixSelectors(text, tag)

	if len(dst) == 0 {
		_, err = io.WriteString(os.Stdout, scoped)
		return err
	}
	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		var field string
		if env.Cfg != nil {
			field = env.Cfg.Scoping.OutputName
		}
		name, err := expandOutputName(field, src, tag)
		if err != nil {
			return err
		}
		dst = filepath.Join(dst, name)
	}
	if err := os.WriteFile(dst, []byte(scoped), 0644); err != nil {
		return fmt.Errorf("unable to write scoped stylesheet: %w", err)
	}
	env.Rpt.Store("result/"+filepath.Base(dst), dst)
	log.Info("Stylesheet scoped", zap.String("source", src), zap.String("destination", dst), zap.String("tag", tag))
	return nil
}

// Inspect prints outline of a stylesheet with places where literal
// prefixing yields surprising results.
func Inspect(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("inspect")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input stylesheet has been specified")
	}

	prepareEnv(env, cmd.String("charset"), false, log)
	text, err := loadStylesheet(env, src, log)
	if err != nil {
		return err
	}
	_, err = css.NewInspector(log).Inspect([]byte(text), src).WriteTo(os.Stdout)
	return err
}

// Mount injects scoped styles of all configured elements into host page.
func Mount(ctx context.Context, cmd *cli.Command) error {
	return runLifecycle(ctx, cmd, true)
}

// Unmount removes style nodes of all configured elements from host page.
func Unmount(ctx context.Context, cmd *cli.Command) error {
	return runLifecycle(ctx, cmd, false)
}

func runLifecycle(ctx context.Context, cmd *cli.Command, mount bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named(cmd.Name)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no host page has been specified")
	}
	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = src
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	prepareEnv(env, cmd.String("charset"), cmd.Bool("inspect"), log)

	log.Info("Processing starting", zap.String("page", src), zap.String("destination", dst), zap.Bool("mount", mount))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return processPage(ctx, env, src, dst, mount, log)
}

// processPage runs lifecycle of every element without shadow root against
// head of the page and saves result.
func processPage(ctx context.Context, env *state.LocalEnv, src, dst string, mount bool, log *zap.Logger) error {
	catalog, err := buildCatalog(ctx, env, log)
	if err != nil {
		return fmt.Errorf("unable to prepare elements: %w", err)
	}

	doc, err := loadPage(src, log)
	if err != nil {
		return err
	}
	if err := env.Rpt.StoreCopy("source/"+filepath.Base(src), src); err != nil {
		log.Debug("Unable to store page in report", zap.Error(err))
	}

	for _, tag := range catalog.Tags() {
		if err := ctx.Err(); err != nil {
			return err
		}
		app, err := catalog.Configure(tag, doc)
		if err != nil {
			return err
		}
		if mount {
			app.Mount()
		} else {
			app.Unmount()
		}
		log.Debug("Element processed", zap.String("tag", tag), zap.Bool("mount", mount))
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create destination page '%s': %w", dst, err)
	}
	if _, err := doc.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("unable to write page: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("unable to save page '%s': %w", dst, err)
	}
	env.Rpt.Store("result/"+filepath.Base(dst), dst)
	return nil
}

// List prints ids of style nodes in host page head in natural order.
func List(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("list")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no host page has been specified")
	}
	doc, err := loadPage(src, log)
	if err != nil {
		return err
	}

	for _, id := range styleIDs(doc) {
		if _, err := fmt.Fprintln(os.Stdout, id); err != nil {
			return err
		}
	}
	return nil
}

func styleIDs(doc *page.Document) []string {
	var ids []string
	for _, n := range doc.Styles() {
		if len(n.ID) > 0 {
			ids = append(ids, n.ID)
		}
	}
	slices.SortFunc(ids, func(a, b string) int {
		if natural.Less(a, b) {
			return -1
		}
		if natural.Less(b, a) {
			return 1
		}
		return 0
	})
	return ids
}

func loadPage(src string, log *zap.Logger) (*page.Document, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("unable to open host page: %w", err)
	}
	defer f.Close()

	doc, err := page.Load(f, log)
	if err != nil {
		return nil, fmt.Errorf("unable to load host page '%s': %w", src, err)
	}
	return doc, nil
}
