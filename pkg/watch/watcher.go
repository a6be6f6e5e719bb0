// Package watch reports changes under a source tree, debounced into batches.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/docnav/logging"
	"github.com/sirupsen/logrus"
)

const defaultDebounce = 200 * time.Millisecond

// Options configure a Watcher.
type Options struct {
	// Debounce is how long the tree must stay quiet before OnChange runs.
	Debounce time.Duration
	// Ignore lists directories whose events are dropped, typically the
	// build output.
	Ignore []string
	// Files are extra files outside the tree to watch, such as the config file.
	Files []string
	// OnChange receives the sorted, deduplicated paths of one batch.
	OnChange func(paths []string)
	Logger   *logrus.Entry
}

// Watcher watches every directory under a root. Directories created after
// the watcher starts are added as they appear.
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	ignore   []string
	files    map[string]bool
	debounce time.Duration
	onChange func([]string)
	logger   *logrus.Entry
}

// New creates a watcher for root. Watches are registered before New
// returns, so changes made after it are seen by Run.
func New(root string, opts Options) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		root:     absRoot,
		files:    make(map[string]bool),
		debounce: opts.Debounce,
		onChange: opts.OnChange,
		logger:   opts.Logger,
	}
	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}
	if w.logger == nil {
		w.logger = logging.NewLogger("watch")
	}
	for _, dir := range opts.Ignore {
		if abs, err := filepath.Abs(dir); err == nil {
			w.ignore = append(w.ignore, abs)
		}
	}

	if _, err := w.addTree(absRoot); err != nil {
		fw.Close()
		return nil, err
	}

	// fsnotify watches directories, so extra files are watched through
	// their parent and filtered by name.
	for _, f := range opts.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		w.files[abs] = true
		if dir := filepath.Dir(abs); !w.inRoot(dir) {
			if err := fw.Add(dir); err != nil {
				w.logger.WithError(err).Warnf("Failed to watch %s", dir)
			}
		}
	}

	return w, nil
}

// Run delivers batches to OnChange until ctx is cancelled. The underlying
// watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event.Name) {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			pending[event.Name] = struct{}{}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					added, err := w.addTree(event.Name)
					if err != nil {
						w.logger.WithError(err).Warnf("Failed to watch new directory %s", event.Name)
					}
					for _, p := range added {
						pending[p] = struct{}{}
					}
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})

			w.logger.WithField("changes", len(paths)).Info("Source changed")
			if w.onChange != nil {
				w.onChange(paths)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Errorf("Watcher error: %v", err)

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		}
	}
}

// Ignore drops events under dir from now on. It must be called from
// OnChange or before Run starts.
func (w *Watcher) Ignore(dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil || w.ignored(abs) {
		return
	}
	w.ignore = append(w.ignore, abs)
	w.logger.WithField("dir", abs).Debug("Ignoring directory")
}

// addTree watches dir and every directory below it, returning the regular
// files found there.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if d.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		}
		if w.ignored(path) || (path != w.root && strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
	return files, err
}

func (w *Watcher) relevant(path string) bool {
	if w.files[path] {
		return true
	}
	if !w.inRoot(path) || w.ignored(path) {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if strings.HasPrefix(part, ".") && part != "." {
			return false
		}
	}
	return true
}

func (w *Watcher) inRoot(path string) bool {
	return within(w.root, path)
}

func (w *Watcher) ignored(path string) bool {
	for _, dir := range w.ignore {
		if within(dir, path) {
			return true
		}
	}
	return false
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
