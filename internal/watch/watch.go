// Package watch notifies callers when assessment files in a directory change,
// so summaries can be re-rendered while reviewers edit their judgements.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change seen for an assessment file.
type Op int

const (
	// Created indicates a new assessment file appeared
	Created Op = iota
	// Written indicates an assessment file was modified
	Written
	// Removed indicates an assessment file was deleted or moved away
	Removed
)

// String returns a human-readable representation of the operation
func (op Op) String() string {
	switch op {
	case Created:
		return "created"
	case Written:
		return "written"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is a debounced change to one assessment file.
type Event struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

// DefaultDebounce is the delay used when Options.Debounce is zero.
const DefaultDebounce = 250 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Recursive also watches subdirectories, including ones created later
	Recursive bool

	// Debounce coalesces bursts of events for the same file
	Debounce time.Duration
}

// Watcher watches a directory for *.json assessment files.
type Watcher struct {
	watcher   *fsnotify.Watcher
	events    chan Event
	errors    chan error
	done      chan struct{}
	dir       string
	recursive bool

	mu       sync.Mutex
	debounce time.Duration
	pending  map[string]*time.Timer
	closed   bool
}

// New starts watching dir. The directory must exist.
func New(dir string, opts Options) (*Watcher, error) {
	dir = filepath.Clean(dir)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "watch", Path: dir, Err: os.ErrInvalid}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:   fsw,
		events:    make(chan Event, 100),
		errors:    make(chan error, 10),
		done:      make(chan struct{}),
		dir:       dir,
		recursive: opts.Recursive,
		debounce:  debounce,
		pending:   make(map[string]*time.Timer),
	}

	if err := w.add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.run()

	return w, nil
}

// add registers dir, and its subdirectories when recursive.
func (w *Watcher) add(dir string) error {
	if !w.recursive {
		return w.watcher.Add(dir)
	}
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}
		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := event.Name

	if w.recursive && event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.add(path); err != nil {
				w.sendError(err)
			}
			return
		}
	}

	if !isAssessmentFile(path) {
		return
	}

	var op Op
	switch {
	case event.Has(fsnotify.Create):
		op = Created
	case event.Has(fsnotify.Write):
		op = Written
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		op = Removed
	default:
		return
	}

	w.schedule(path, op)
}

// isAssessmentFile matches visible *.json files, which excludes the hidden
// temporary files used for atomic saves.
func isAssessmentFile(path string) bool {
	name := filepath.Base(path)
	return !strings.HasPrefix(name, ".") && strings.EqualFold(filepath.Ext(name), ".json")
}

// schedule delivers op for path once no further event for it arrives within
// the debounce delay. A later event replaces an earlier pending one.
func (w *Watcher) schedule(path string, op Op) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	if timer, exists := w.pending[path]; exists {
		timer.Stop()
	}

	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		w.send(Event{Path: path, Op: op, Timestamp: time.Now()})
	})
}

func (w *Watcher) send(event Event) {
	select {
	case w.events <- event:
	case <-w.done:
	default:
		// Events channel full, drop the event
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// Events returns the channel of debounced file events
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watcher errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Dir returns the watched directory
func (w *Watcher) Dir() string {
	return w.dir
}

// Close stops the watcher. Pending debounced events are discarded.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true

	for _, timer := range w.pending {
		timer.Stop()
	}
	w.pending = nil
	w.mu.Unlock()

	close(w.done)

	return w.watcher.Close()
}
