package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/timebox/pkg/session"
)

func TestDiskvWatchEmitsDayChanges(t *testing.T) {
	base := t.TempDir()
	p, err := OpenDiskv(base, nil)
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}
	// Pre-create the month so the write lands in a watched directory.
	if err := p.Save(context.Background(), "2024-03-02", session.Empty("2024-03-02")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Save(context.Background(), "2024-03-01", session.Empty("2024-03-01")); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventDaysInvalidated {
				return
			}
			if evt.Type == EventDayChanged {
				if evt.Date != "2024-03-01" {
					t.Fatalf("expected date 2024-03-01, got %q", evt.Date)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for day change event")
		}
	}
}

func TestDateForPath(t *testing.T) {
	p := &Diskv{basePath: "/data"}
	cases := map[string]string{
		"/data/timebox/2024/03/01": "2024-03-01",
		"/data/timebox/2024/03":    "",
		"/data/other/2024/03/01":   "",
		"/data":                    "",
	}
	for path, want := range cases {
		if got := p.dateForPath(path); got != want {
			t.Fatalf("dateForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestThrottleCollapsesToInvalidate(t *testing.T) {
	th := newEventThrottle(10 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	th.Enqueue(Event{Type: EventDayChanged, Date: "2024-03-01"}, send)
	th.Enqueue(Event{Type: EventDayChanged, Date: "2024-03-01"}, send)
	th.Enqueue(Event{Type: EventDaysInvalidated}, send)

	select {
	case ev := <-got:
		if ev.Type != EventDaysInvalidated {
			t.Fatalf("expected invalidate, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("throttle never flushed")
	}
	select {
	case ev := <-got:
		t.Fatalf("unexpected extra event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
