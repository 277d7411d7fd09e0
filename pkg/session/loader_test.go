package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tableflip.dev/timebox/pkg/task"
)

type memoryPersistence struct {
	mu    sync.Mutex
	days  map[string][]byte
	loads int
	saves int
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{days: make(map[string][]byte)}
}

func (m *memoryPersistence) Load(_ context.Context, key string) (*DaySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	data, ok := m.days[key]
	if !ok {
		return nil, nil
	}
	return Unmarshal(data)
}

func (m *memoryPersistence) Save(_ context.Context, key string, d *DaySession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	m.saves++
	m.days[key] = data
	return nil
}

type failingPersistence struct {
	loadErr error
	saveErr error
}

func (f failingPersistence) Load(context.Context, string) (*DaySession, error) {
	return nil, f.loadErr
}

func (f failingPersistence) Save(context.Context, string, *DaySession) error {
	return f.saveErr
}

type scriptedConfirmer struct {
	answer  bool
	prompts []string
}

func (c *scriptedConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	return c.answer, nil
}

func openLoader(t *testing.T, p Persistence, key string, opts ...Option) *Loader {
	t.Helper()
	l, err := NewLoader(p, opts...)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if err := l.Open(context.Background(), key); err != nil {
		t.Fatalf("Open(%s): %v", key, err)
	}
	return l
}

func TestNewLoaderRequiresPersistence(t *testing.T) {
	if _, err := NewLoader(nil); err == nil {
		t.Fatalf("expected error for nil persistence")
	}
}

func TestOpenUnknownDateStartsEmpty(t *testing.T) {
	l := openLoader(t, newMemoryPersistence(), "2024-03-01")
	if l.Date() != "2024-03-01" {
		t.Fatalf("date = %q", l.Date())
	}
	if l.Dirty() {
		t.Fatalf("fresh day should not be dirty")
	}
	s := l.Current()
	if got := s.Priorities(); len(got) != 3 || got[0] != "" || got[1] != "" || got[2] != "" {
		t.Fatalf("priorities = %#v", got)
	}
	if len(s.Notes()) != 0 || s.Len() != 0 {
		t.Fatalf("expected no tasks, got %d", s.Len())
	}
	if !l.SavedAt().IsZero() {
		t.Fatalf("savedAt should be zero")
	}
}

func TestOpenRejectsBadKey(t *testing.T) {
	l, err := NewLoader(newMemoryPersistence())
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if err := l.Open(context.Background(), "03/01/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDirtyLifecycle(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	l := openLoader(t, mp, "2024-03-01")

	n, ok := l.Current().AddNote("Buy milk")
	if !ok {
		t.Fatalf("AddNote rejected")
	}
	if !l.Dirty() {
		t.Fatalf("expected dirty after AddNote")
	}
	if err := l.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if l.Dirty() {
		t.Fatalf("expected clean after Save")
	}
	if l.SavedAt().IsZero() {
		t.Fatalf("savedAt not recorded")
	}

	if err := l.Current().DropOnSlot(n, "09:00"); err != nil {
		t.Fatalf("DropOnSlot: %v", err)
	}
	if !l.Dirty() {
		t.Fatalf("expected dirty after DropOnSlot")
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	boom := errors.New("disk full")
	l := openLoader(t, failingPersistence{saveErr: boom}, "2024-03-01")
	l.Current().AddNote("a")

	err := l.Save(context.Background())
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PersistenceError, got %v", err)
	}
	if perr.Op != "save" || !errors.Is(err, boom) {
		t.Fatalf("unexpected error %v", err)
	}
	if !l.Dirty() {
		t.Fatalf("failed save must keep dirty")
	}
	if len(l.Current().Notes()) != 1 {
		t.Fatalf("state lost after failed save")
	}
}

func TestLoadFailureFallsBackToEmptyDay(t *testing.T) {
	boom := errors.New("unreadable")
	l, err := NewLoader(failingPersistence{loadErr: boom})
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	err = l.Open(context.Background(), "2024-03-01")
	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Op != "load" {
		t.Fatalf("expected load PersistenceError, got %v", err)
	}
	if l.Date() != "2024-03-01" || l.Dirty() || l.Current().Len() != 0 {
		t.Fatalf("expected clean empty day for the requested date")
	}
	if _, ok := l.Current().AddNote("still usable"); !ok {
		t.Fatalf("loader unusable after load failure")
	}
}

func TestMalformedDayFallsBackToEmptyDay(t *testing.T) {
	mp := newMemoryPersistence()
	mp.days["2024-03-01"] = []byte(`{"schedule":{"25:00":[{"id":"x","content":"late"}]}}`)

	l, err := NewLoader(mp)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	err = l.Open(context.Background(), "2024-03-01")
	if !errors.Is(err, ErrMalformedSession) {
		t.Fatalf("expected ErrMalformedSession, got %v", err)
	}
	if l.Current().Len() != 0 {
		t.Fatalf("malformed day should not leak tasks")
	}
}

func TestRoundTripThroughPersistence(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	l := openLoader(t, mp, "2024-03-01")

	s := l.Current()
	a, _ := s.AddNote("Buy milk")
	b, _ := s.AddNote("Write report")
	if err := s.DropOnSlot(b, "14:30"); err != nil {
		t.Fatalf("DropOnSlot: %v", err)
	}
	s.CompleteTask(a.ID)
	if err := s.SetPriority(0, "Ship it"); err != nil {
		t.Fatalf("SetPriority: %v", err)
	}
	if err := l.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	other := openLoader(t, mp, "2024-03-01")
	got := other.Current()
	if got.Priorities()[0] != "Ship it" {
		t.Fatalf("priority lost: %#v", got.Priorities())
	}
	notes := got.Notes()
	if len(notes) != 1 || notes[0].ID != a.ID || !notes[0].Completed {
		t.Fatalf("notes = %#v", notes)
	}
	sl, _ := got.Slot("14:30")
	if len(sl.Tasks) != 1 || sl.Tasks[0].ID != b.ID {
		t.Fatalf("slot 14:30 = %#v", sl.Tasks)
	}
	if other.SavedAt().IsZero() {
		t.Fatalf("savedAt not restored")
	}
}

func TestChangeDateWithoutChanges(t *testing.T) {
	c := &scriptedConfirmer{}
	l := openLoader(t, newMemoryPersistence(), "2024-03-01", WithConfirmer(c))

	ok, err := l.ChangeDate(context.Background(), "2024-03-02")
	if err != nil || !ok {
		t.Fatalf("ChangeDate = %v, %v", ok, err)
	}
	if len(c.prompts) != 0 {
		t.Fatalf("clean change should not prompt")
	}
	if l.Date() != "2024-03-02" {
		t.Fatalf("date = %q", l.Date())
	}
}

func TestChangeDateDeclineKeepsState(t *testing.T) {
	c := &scriptedConfirmer{answer: false}
	l := openLoader(t, newMemoryPersistence(), "2024-03-01", WithConfirmer(c))
	l.Current().AddNote("unsaved")

	ok, err := l.ChangeDate(context.Background(), "2024-03-02")
	if err != nil || ok {
		t.Fatalf("ChangeDate = %v, %v", ok, err)
	}
	if len(c.prompts) != 1 || c.prompts[0] != DiscardPrompt {
		t.Fatalf("prompts = %#v", c.prompts)
	}
	if l.Date() != "2024-03-01" || !l.Dirty() || len(l.Current().Notes()) != 1 {
		t.Fatalf("declined change altered state")
	}
}

func TestChangeDateAcceptDiscards(t *testing.T) {
	ctx := context.Background()
	c := &scriptedConfirmer{answer: true}
	l := openLoader(t, newMemoryPersistence(), "2024-03-01", WithConfirmer(c))
	l.Current().AddNote("unsaved")

	ok, err := l.ChangeDate(ctx, "2024-03-02")
	if err != nil || !ok {
		t.Fatalf("ChangeDate = %v, %v", ok, err)
	}
	if l.Dirty() || l.Current().Len() != 0 {
		t.Fatalf("expected clean empty day")
	}

	if _, err := l.ChangeDate(ctx, "2024-03-01"); err != nil {
		t.Fatalf("ChangeDate back: %v", err)
	}
	if l.Current().Len() != 0 {
		t.Fatalf("discarded note came back")
	}
}

func TestChangeDateWithoutConfirmerDeclines(t *testing.T) {
	l := openLoader(t, newMemoryPersistence(), "2024-03-01")
	l.Current().AddNote("unsaved")

	ok, err := l.ChangeDate(context.Background(), "2024-03-02")
	if err != nil || ok {
		t.Fatalf("ChangeDate = %v, %v", ok, err)
	}
	if l.Date() != "2024-03-01" {
		t.Fatalf("date changed without confirmation")
	}
}

func TestChangeDateConfirmerError(t *testing.T) {
	boom := errors.New("tty closed")
	confirm := ConfirmFunc(func(context.Context, string) (bool, error) { return false, boom })
	l := openLoader(t, newMemoryPersistence(), "2024-03-01", WithConfirmer(confirm))
	l.Current().AddNote("unsaved")

	ok, err := l.ChangeDate(context.Background(), "2024-03-02")
	if ok || !errors.Is(err, boom) {
		t.Fatalf("ChangeDate = %v, %v", ok, err)
	}
}

func TestSameDateIsNoop(t *testing.T) {
	c := &scriptedConfirmer{}
	l := openLoader(t, newMemoryPersistence(), "2024-03-01", WithConfirmer(c))
	l.Current().AddNote("unsaved")

	ok, err := l.ChangeDate(context.Background(), "2024-03-01")
	if err != nil || !ok {
		t.Fatalf("ChangeDate = %v, %v", ok, err)
	}
	if len(c.prompts) != 0 || !l.Dirty() {
		t.Fatalf("same date should not prompt or discard")
	}
}

func TestCacheAndInvalidate(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	l := openLoader(t, mp, "2024-03-01")
	if err := l.Open(ctx, "2024-03-01"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if mp.loads != 1 {
		t.Fatalf("expected cached reopen, loads = %d", mp.loads)
	}

	data, err := Marshal(&DaySession{
		Date:       "2024-03-01",
		Priorities: []string{"changed", "", ""},
		Notes:      []*task.Task{{ID: "n1", Content: "from disk"}},
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	mp.days["2024-03-01"] = data

	l.Invalidate("2024-03-01")
	if err := l.Open(ctx, "2024-03-01"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if mp.loads != 2 {
		t.Fatalf("expected reload after Invalidate, loads = %d", mp.loads)
	}
	if got := l.Current().Notes(); len(got) != 1 || got[0].Content != "from disk" {
		t.Fatalf("notes = %#v", got)
	}
}

func TestCachedDayIsNotSharedWithStore(t *testing.T) {
	ctx := context.Background()
	l := openLoader(t, newMemoryPersistence(), "2024-03-01")
	l.Current().AddNote("saved")
	if err := l.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	l.Current().AddNote("unsaved")

	c := &scriptedConfirmer{answer: true}
	WithConfirmer(c)(l)
	if _, err := l.ChangeDate(ctx, "2024-03-02"); err != nil {
		t.Fatalf("ChangeDate: %v", err)
	}
	if _, err := l.ChangeDate(ctx, "2024-03-01"); err != nil {
		t.Fatalf("ChangeDate: %v", err)
	}
	if got := l.Current().Notes(); len(got) != 1 || got[0].Content != "saved" {
		t.Fatalf("notes = %#v", got)
	}
}
