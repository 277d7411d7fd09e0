package session

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"tableflip.dev/timebox/pkg/dirty"
	"tableflip.dev/timebox/pkg/schedule"
	"tableflip.dev/timebox/pkg/task"
)

// DefaultCacheSize is the number of recent days kept in memory.
const DefaultCacheSize = 16

// DiscardPrompt is the question put to the Confirmer before unsaved changes
// are thrown away.
const DiscardPrompt = "You have unsaved changes. Discard them?"

// Persistence stores day sessions by YYYY-MM-DD key. Load returns nil, nil
// when nothing was saved for the date.
type Persistence interface {
	Load(ctx context.Context, key string) (*DaySession, error)
	Save(ctx context.Context, key string, d *DaySession) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Option configures a Loader.
type Option func(*Loader)

// WithConfirmer sets the discard confirmation surface. Without one, a date
// change with unsaved changes is always declined.
func WithConfirmer(c Confirmer) Option {
	return func(l *Loader) { l.confirm = c }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// WithCacheSize sets how many recent days are cached.
func WithCacheSize(n int) Option {
	return func(l *Loader) { l.cacheSize = n }
}

// Loader holds the open day session and moves between dates.
type Loader struct {
	persistence Persistence
	confirm     Confirmer
	log         *zap.Logger
	cacheSize   int
	cache       *lru.Cache[string, *DaySession]

	tracker *dirty.Tracker
	date    string
	store   *schedule.Store
	savedAt time.Time
}

// NewLoader builds a loader. Call Open before using Current.
func NewLoader(p Persistence, opts ...Option) (*Loader, error) {
	if p == nil {
		return nil, errors.New("session: persistence required")
	}
	l := &Loader{
		persistence: p,
		log:         zap.NewNop(),
		cacheSize:   DefaultCacheSize,
		tracker:     &dirty.Tracker{},
	}
	for _, opt := range opts {
		opt(l)
	}
	cache, err := lru.New[string, *DaySession](max(l.cacheSize, 1))
	if err != nil {
		return nil, err
	}
	l.cache = cache
	l.store = schedule.New(l.tracker)
	return l, nil
}

// Open loads the session for key, replacing whatever is in memory. On a
// persistence failure the day starts empty and a *PersistenceError is
// returned; the loader is still usable.
func (l *Loader) Open(ctx context.Context, key string) error {
	if _, err := ParseDateKey(key); err != nil {
		return err
	}
	log := l.log.With(zap.String("date", key))

	d, err := l.load(ctx, key)
	if err != nil {
		log.Warn("load failed, starting empty day", zap.Error(err))
		l.installEmpty(key)
		return &PersistenceError{Op: "load", Date: key, Err: err}
	}
	if err := l.installChecked(key, d); err != nil {
		log.Warn("stored day is malformed, starting empty day", zap.Error(err))
		l.cache.Remove(key)
		l.installEmpty(key)
		return &PersistenceError{Op: "load", Date: key, Err: err}
	}
	log.Debug("day opened", zap.Int("tasks", l.store.Len()))
	return nil
}

// ChangeDate switches to another date. With unsaved changes the Confirmer is
// asked first; declining leaves everything as it was and reports false.
func (l *Loader) ChangeDate(ctx context.Context, key string) (bool, error) {
	if _, err := ParseDateKey(key); err != nil {
		return false, err
	}
	if key == l.date {
		return true, nil
	}
	if l.tracker.Dirty() {
		if l.confirm == nil {
			return false, nil
		}
		ok, err := l.confirm.Confirm(ctx, DiscardPrompt)
		if err != nil || !ok {
			return false, err
		}
		l.log.Info("discarding unsaved changes", zap.String("date", l.date))
	}
	return true, l.Open(ctx, key)
}

// Save writes the open day. On failure the day stays dirty.
func (l *Loader) Save(ctx context.Context) error {
	d := FromStore(l.date, l.store)
	d.SavedAt = task.Timestamp{Time: time.Now()}
	if err := l.persistence.Save(ctx, l.date, d); err != nil {
		l.log.Warn("save failed", zap.String("date", l.date), zap.Error(err))
		return &PersistenceError{Op: "save", Date: l.date, Err: err}
	}
	l.cache.Add(l.date, d)
	l.savedAt = d.SavedAt.Time
	l.tracker.Clear()
	return nil
}

// Invalidate drops a cached day, e.g. after it changed on disk.
func (l *Loader) Invalidate(key string) {
	l.cache.Remove(key)
}

// Current returns the open day.
func (l *Loader) Current() *schedule.Store {
	return l.store
}

// Date returns the open day's key.
func (l *Loader) Date() string {
	return l.date
}

// Dirty reports unsaved changes.
func (l *Loader) Dirty() bool {
	return l.tracker.Dirty()
}

// SavedAt is when the open day was last saved, zero if never.
func (l *Loader) SavedAt() time.Time {
	return l.savedAt
}

func (l *Loader) load(ctx context.Context, key string) (*DaySession, error) {
	if d, ok := l.cache.Get(key); ok {
		return d, nil
	}
	d, err := l.persistence.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = Empty(key)
	}
	l.cache.Add(key, d)
	return d, nil
}

func (l *Loader) installChecked(key string, d *DaySession) error {
	tracker := &dirty.Tracker{}
	s, err := d.Restore(tracker)
	if err != nil {
		return err
	}
	l.tracker = tracker
	l.store = s
	l.date = key
	l.savedAt = d.SavedAt.Time
	return nil
}

func (l *Loader) installEmpty(key string) {
	l.tracker = &dirty.Tracker{}
	l.store = schedule.New(l.tracker)
	l.date = key
	l.savedAt = time.Time{}
}
