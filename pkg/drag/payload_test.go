package drag

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDeferredResolvesOnce(t *testing.T) {
	d := NewDeferred()

	if _, ok := d.Result(); ok {
		t.Fatal("pending Deferred should not report a value")
	}
	if !d.Resolve("first") {
		t.Fatal("first Resolve() should win")
	}
	if d.Resolve("second") || d.ResolveNone() {
		t.Error("later resolutions should be ignored")
	}

	v, ok := d.Result()
	if !ok || v != "first" {
		t.Errorf("Result() = %v, %v; want first, true", v, ok)
	}
}

func TestDeferredResolveNone(t *testing.T) {
	d := NewDeferred()
	d.ResolveNone()

	select {
	case <-d.Done():
	default:
		t.Fatal("Done() should be closed after ResolveNone")
	}
	if v, ok := d.Result(); ok || v != nil {
		t.Errorf("Result() = %v, %v; want nil, false", v, ok)
	}
}

func TestDeferredConcurrentResolution(t *testing.T) {
	d := NewDeferred()

	var wg sync.WaitGroup
	wins := make(chan bool, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wins <- d.Resolve(i)
		}(i)
	}
	wg.Wait()
	close(wins)

	n := 0
	for w := range wins {
		if w {
			n++
		}
	}
	if n != 1 {
		t.Errorf("%d resolutions won, want exactly 1", n)
	}
}

func TestDeferredAwait(t *testing.T) {
	t.Run("resolved", func(t *testing.T) {
		d := NewDeferred()
		go d.Resolve(42)

		v, ok, err := d.Await(context.Background())
		if err != nil || !ok || v != 42 {
			t.Errorf("Await() = %v, %v, %v", v, ok, err)
		}
	})

	t.Run("context done", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, _, err := NewDeferred().Await(ctx)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Await() error = %v, want DeadlineExceeded", err)
		}
	})
}

func TestValue(t *testing.T) {
	resolved := NewDeferred()
	resolved.Resolve("v")

	tests := []struct {
		name   string
		p      Payload
		want   any
		wantOK bool
	}{
		{"nil", nil, nil, false},
		{"immediate", Immediate{Value: 7}, 7, true},
		{"immediate nil value", Immediate{}, nil, true},
		{"pending unresolved", Pending{Deferred: NewDeferred()}, nil, false},
		{"pending resolved", Pending{Deferred: resolved}, "v", true},
		{"pending nil handle", Pending{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Value(tt.p)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Value() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
