package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventDayChanged indicates the saved session for Date was written by
	// someone.
	EventDayChanged EventType = iota

	// EventDaysInvalidated signals a change that could not be tied to one
	// date; callers should treat every cached day as stale.
	EventDaysInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Date string
}

// classifyFunc maps a changed path to an event; false drops the change.
type classifyFunc func(path string) (Event, bool)

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *Diskv) Watch(ctx context.Context) (<-chan Event, error) {
	return watchTree(ctx, p.basePath, true, p.classify, p.log)
}

func (p *Diskv) classify(path string) (Event, bool) {
	date := p.dateForPath(path)
	if date == "" {
		return Event{Type: EventDaysInvalidated}, true
	}
	return Event{Type: EventDayChanged, Date: date}, true
}

// dateForPath derives the day from a diskv path, base/timebox/YYYY/MM/DD.
func (p *Diskv) dateForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	date, ok := fromKey(strings.Join(parts, "-"))
	if !ok {
		return ""
	}
	return date
}

func watchTree(ctx context.Context, base string, recursive bool, classify classifyFunc, log *zap.Logger) (<-chan Event, error) {
	if base == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				log.Warn("watcher close", zap.Error(err))
			}
		})
	}

	dirs := []string{base}
	if recursive {
		dirs, err = collectDirs(base)
		if err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: enumerate directories: %w", err)
		}
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is behind; a later refresh picks the change up.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Debug("watcher error", zap.Error(err))
				throttle.Enqueue(Event{Type: EventDaysInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if recursive && evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								log.Warn("watch directory", zap.String("dir", absDir), zap.Error(err))
							} else {
								watched[absDir] = struct{}{}
							}
						}
						// A new month or year directory means files may have
						// landed before the watch was added.
						throttle.Enqueue(Event{Type: EventDaysInvalidated}, send)
						continue
					}
				}

				if ev, ok := classify(evt.Name); ok {
					throttle.Enqueue(ev, send)
				}
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// eventThrottle coalesces rapid change notifications so the UI can redraw once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Date] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	if _, all := pending[EventDaysInvalidated]; all {
		send(Event{Type: EventDaysInvalidated})
		return
	}
	for date := range pending[EventDayChanged] {
		send(Event{Type: EventDayChanged, Date: date})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
