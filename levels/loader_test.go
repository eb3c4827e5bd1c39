package levels

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoaderDeliversLatest(t *testing.T) {
	l := NewLoaderWith(func(path string) (*Level, error) {
		return &Level{Name: path}, nil
	})
	ticket := l.Load("levels/a.json")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := l.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if res.Ticket != ticket || res.Level.Name != "levels/a.json" || res.Err != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, ok := l.Poll(); ok {
		t.Fatalf("result should be delivered once")
	}
}

func TestLoaderDropsSupersededLoads(t *testing.T) {
	release := make(chan struct{})
	l := NewLoaderWith(func(path string) (*Level, error) {
		if path == "levels/slow.json" {
			<-release
		}
		return &Level{Name: path}, nil
	})

	l.Load("levels/slow.json")
	fast := l.Load("levels/fast.json")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := l.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if res.Ticket != fast || res.Path != "levels/fast.json" {
		t.Fatalf("expected fast result, got %+v", res)
	}

	close(release)
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		if res, ok := l.Poll(); ok {
			t.Fatalf("stale result leaked: %+v", res)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLoaderCancel(t *testing.T) {
	l := NewLoaderWith(func(path string) (*Level, error) {
		return nil, errors.New("boom")
	})
	l.Load("levels/x.json")
	l.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := l.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline after cancel, got %v", err)
	}
}

func TestLoaderReportsErrors(t *testing.T) {
	l := NewLoaderWith(func(path string) (*Level, error) {
		return nil, errors.New("boom")
	})
	l.Load("levels/x.json")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := l.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if res.Err == nil {
		t.Fatalf("expected load error in result")
	}
}
