// Package site renders the sidebar into every page of a documentation tree.
package site

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/errors"
	"github.com/grovetools/docnav/logging"
	"github.com/grovetools/docnav/pkg/htmldoc"
	"github.com/grovetools/docnav/pkg/nav"
	"github.com/grovetools/docnav/pkg/profiling"
	"github.com/grovetools/docnav/util/pathutil"
	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options control a single build.
type Options struct {
	// DryRun reports what would be written without touching the output.
	DryRun bool
	// Clean removes the output directory before building.
	Clean bool
	// Script, when non-empty, is appended as an inline script to the body
	// of every rendered page.
	Script string
}

// Report lists the files a build rendered, copied and skipped, as paths
// relative to the source directory.
type Report struct {
	Source  string        `json:"source"`
	Output  string        `json:"output"`
	Pages   []string      `json:"pages"`
	Assets  []string      `json:"assets"`
	Skipped []string      `json:"skipped"`
	Cleaned bool          `json:"cleaned"`
	DryRun  bool          `json:"dry_run"`
	Elapsed time.Duration `json:"elapsed"`
}

// Builder renders a site tree. Site and Root are read-only during a build.
type Builder struct {
	Site     config.SiteConfig
	Root     string
	Settings config.BuildConfig
	Logger   *logrus.Entry
}

// NewBuilder returns a builder for a resolved configuration.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		Site:     cfg.Site,
		Root:     cfg.RootPrefix(),
		Settings: cfg.Build,
		Logger:   logging.NewLogger("site"),
	}
}

type taskKind int

const (
	taskPage taskKind = iota
	taskAsset
)

type task struct {
	kind taskKind
	rel  string
	src  string
	dst  string
}

// Build walks the source directory, renders every page matching the page
// patterns and copies every other file. The first failing page cancels
// the remaining work and its error is returned.
func (b *Builder) Build(ctx context.Context, opts Options) (*Report, error) {
	start := time.Now()
	defer profiling.Start("build").Stop()
	logger := b.Logger
	if logger == nil {
		logger = logging.NewLogger("site")
	}

	source, err := filepath.Abs(b.Settings.Source)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid source directory")
	}
	output, err := filepath.Abs(b.Settings.Output)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid output directory")
	}
	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("source is not a directory: %s", b.Settings.Source)).
			WithDetail("source", source)
	}

	report := &Report{Source: source, Output: output, DryRun: opts.DryRun}

	if opts.Clean {
		if err := checkCleanable(source, output); err != nil {
			return nil, err
		}
		if !opts.DryRun {
			if err := os.RemoveAll(output); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodePageWrite, "failed to clean output directory").
					WithDetail("output", output)
			}
		}
		report.Cleaned = true
		logger.WithField("output", output).Debug("Cleaned output directory")
	}

	planned := profiling.Start("plan")
	tasks, skipped, err := b.plan(source, output)
	planned.Stop()
	if err != nil {
		return nil, err
	}
	report.Skipped = skipped

	sb := nav.Build(b.Site, b.Root)
	concurrency := b.Settings.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, t := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if !opts.DryRun {
				var err error
				switch t.kind {
				case taskPage:
					timer := profiling.Start("render page")
					err = renderPage(t, sb, opts.Script)
					timer.Stop()
				case taskAsset:
					timer := profiling.Start("copy asset")
					err = copyFile(t.src, t.dst)
					timer.Stop()
				}
				if err != nil {
					return err
				}
			}

			mu.Lock()
			defer mu.Unlock()
			if t.kind == taskPage {
				report.Pages = append(report.Pages, t.rel)
				logger.WithField("page", t.rel).Debug("Rendered page")
			} else {
				report.Assets = append(report.Assets, t.rel)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(report.Pages)
	sort.Strings(report.Assets)
	report.Elapsed = time.Since(start)

	logger.WithFields(logrus.Fields{
		"pages":   len(report.Pages),
		"assets":  len(report.Assets),
		"skipped": len(report.Skipped),
		"dry_run": opts.DryRun,
	}).Info("Build finished")

	return report, nil
}

// plan walks source and decides what happens to every file.
func (b *Builder) plan(source, output string) ([]task, []string, error) {
	pages, err := patternmatcher.New(b.Settings.Pages)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid build.pages pattern")
	}
	exclude, err := patternmatcher.New(b.Settings.Exclude)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid build.exclude pattern")
	}

	var tasks []task
	var skipped []string

	err = filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.PageRead(path, err)
		}
		if path == source {
			return nil
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == output || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if excluded, _ := exclude.MatchesOrParentMatches(rel); excluded {
				skipped = append(skipped, filepath.ToSlash(rel))
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if filepath.Dir(path) == source && config.IsConfigFile(d.Name()) {
			return nil
		}
		if excluded, _ := exclude.MatchesOrParentMatches(rel); excluded {
			skipped = append(skipped, filepath.ToSlash(rel))
			return nil
		}

		t := task{
			kind: taskAsset,
			rel:  filepath.ToSlash(rel),
			src:  path,
			dst:  filepath.Join(output, rel),
		}
		if isPage, _ := pages.MatchesOrParentMatches(rel); isPage {
			t.kind = taskPage
		}
		tasks = append(tasks, t)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return tasks, skipped, nil
}

func renderPage(t task, sb nav.Sidebar, script string) error {
	doc, err := htmldoc.ParseFile(t.src)
	if err != nil {
		return err
	}
	if err := nav.Render(doc, sb); err != nil {
		if navErr, ok := errors.As(err); ok {
			navErr.WithDetail("page", t.rel)
		}
		return err
	}
	if script != "" {
		doc.InjectScript(script)
	}
	return doc.WriteFile(t.dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.PageRead(src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.PageRead(src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.PageWrite(dst, err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.PageWrite(dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.PageWrite(dst, err)
	}
	if err := out.Close(); err != nil {
		return errors.PageWrite(dst, err)
	}
	return nil
}

// checkCleanable refuses to remove the source directory or any directory
// containing it.
func checkCleanable(source, output string) error {
	inside, err := pathutil.Within(output, source)
	if err != nil || !inside {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "refusing to clean an output directory that contains the source").
		WithDetail("source", source).
		WithDetail("output", output)
}
