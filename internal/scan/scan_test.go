package scan

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"
)

// fakeSource feeds scripted events and records release calls.
type fakeSource struct {
	events chan string

	mu       sync.Mutex
	released int
}

func newFakeSource() *fakeSource {
	return &fakeSource{events: make(chan string, 16)}
}

func (f *fakeSource) Events() <-chan string { return f.events }

func (f *fakeSource) Release() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released++
	return nil
}

func (f *fakeSource) releaseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released
}

func newTestListener() *Listener {
	return NewListener(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func TestWaitForISBN_AcceptsFirstUsable(t *testing.T) {
	src := newFakeSource()
	src.events <- "not a barcode"
	src.events <- "12345"
	src.events <- "978-0-13-468599-1"
	src.events <- "9780553380958"

	got, err := newTestListener().WaitForISBN(context.Background(), src)
	if err != nil {
		t.Fatalf("WaitForISBN: %v", err)
	}
	if got != "9780134685991" {
		t.Errorf("got %q, want first usable ISBN normalized", got)
	}
	if src.releaseCount() != 1 {
		t.Errorf("release count: got %d, want 1", src.releaseCount())
	}
}

func TestWaitForISBN_AcceptsISBN10(t *testing.T) {
	src := newFakeSource()
	src.events <- "0-13-4685-99-X"

	got, err := newTestListener().WaitForISBN(context.Background(), src)
	if err != nil {
		t.Fatalf("WaitForISBN: %v", err)
	}
	if got != "013468599X" {
		t.Errorf("got %q", got)
	}
}

func TestWaitForISBN_IgnoresUnusableLengths(t *testing.T) {
	src := newFakeSource()
	src.events <- "1234567890123456" // too long
	src.events <- ""                 // empty
	close(src.events)

	_, err := newTestListener().WaitForISBN(context.Background(), src)
	if !errors.Is(err, ErrSourceClosed) {
		t.Errorf("expected ErrSourceClosed, got %v", err)
	}
	if src.releaseCount() != 1 {
		t.Errorf("release count: got %d, want 1", src.releaseCount())
	}
}

func TestWaitForISBN_CancellationReleasesSource(t *testing.T) {
	src := newFakeSource()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := newTestListener().WaitForISBN(ctx, src)
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForISBN did not return after cancellation")
	}

	if src.releaseCount() != 1 {
		t.Errorf("release count: got %d, want 1", src.releaseCount())
	}
}
