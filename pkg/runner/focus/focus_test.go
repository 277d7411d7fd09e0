package focus

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/session"
	"tableflip.dev/timebox/pkg/store"
	"tableflip.dev/timebox/pkg/timer"
)

type memoryPersistence struct {
	days  map[string][]byte
	saves int
}

func (m *memoryPersistence) Load(_ context.Context, key string) (*session.DaySession, error) {
	b, ok := m.days[key]
	if !ok {
		return nil, nil
	}
	return session.Unmarshal(b)
}

func (m *memoryPersistence) Save(_ context.Context, key string, d *session.DaySession) error {
	b, err := session.Marshal(d)
	if err != nil {
		return err
	}
	if m.days == nil {
		m.days = map[string][]byte{}
	}
	m.days[key] = b
	m.saves++
	return nil
}

func (m *memoryPersistence) Dates(context.Context) ([]string, error) { return nil, nil }

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) { return nil, nil }

func (m *memoryPersistence) Close() error { return nil }

// chanClock feeds generations to the runner synchronously.
type chanClock struct {
	c   chan uint64
	gen uint64
}

func (c *chanClock) Start(gen uint64) { c.gen = gen }
func (c *chanClock) Stop()            {}

func setup(t *testing.T) (*app.Service, *memoryPersistence, *chanClock, string) {
	t.Helper()
	p := &memoryPersistence{}
	clock := &chanClock{c: make(chan uint64, timer.Length+1)}
	svc, err := app.New(p, clock)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	if err := svc.Open(context.Background(), "2025-01-02"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	tk, err := svc.AddNote("write report")
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	return svc, p, clock, tk.ID
}

func TestFocusExpiryCompletesAndSaves(t *testing.T) {
	svc, p, clock, id := setup(t)
	// Start bumps the generation to 1 before the first tick is read.
	for i := 0; i < timer.Length; i++ {
		clock.c <- 1
	}
	var out bytes.Buffer
	f := &Focus{Service: svc, Ticks: clock.c, ID: id, Out: &out}
	if err := f.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got, _, err := svc.Find(id)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !got.Completed {
		t.Fatalf("task not completed after expiry")
	}
	if p.saves != 1 {
		t.Fatalf("saves = %d, want 1", p.saves)
	}
	if !strings.Contains(out.String(), "time's up") {
		t.Fatalf("missing expiry message in %q", out.String())
	}
}

func TestFocusCancelLeavesTaskOpen(t *testing.T) {
	svc, p, clock, id := setup(t)
	clock.c <- 1
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &Focus{Service: svc, Ticks: clock.c, ID: id, Out: &bytes.Buffer{}}
	if err := f.Do(ctx); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got, _, _ := svc.Find(id)
	if got.Completed {
		t.Fatalf("canceled focus completed the task")
	}
	if p.saves != 0 {
		t.Fatalf("saves = %d, want 0", p.saves)
	}
	if st := svc.Timer().State(); st != timer.Idle {
		t.Fatalf("state = %v, want idle", st)
	}
}

func TestFocusRequiresID(t *testing.T) {
	svc, _, clock, _ := setup(t)
	f := &Focus{Service: svc, Ticks: clock.c}
	if err := f.Do(context.Background()); err == nil {
		t.Fatalf("expected error without id")
	}
}

func TestBar(t *testing.T) {
	if got := bar(0.5, 4); got != "██░░" {
		t.Fatalf("bar = %q", got)
	}
	if got := bar(2, 2); got != "██" {
		t.Fatalf("bar overflow = %q", got)
	}
}
