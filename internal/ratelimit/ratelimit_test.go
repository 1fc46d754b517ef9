package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow("client") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := New(1, 1)

	if !rl.Allow("a") {
		t.Fatal("first request for key a should pass")
	}
	if rl.Allow("a") {
		t.Fatal("second request for key a should be limited")
	}
	if !rl.Allow("b") {
		t.Fatal("first request for key b should pass")
	}
}

func TestKeyedRateLimiter_Wait(t *testing.T) {
	rl := New(100, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// Burst token, then one refill within the deadline.
	if err := rl.Wait(ctx, "client"); err != nil {
		t.Fatalf("first Wait() error: %v", err)
	}
	if err := rl.Wait(ctx, "client"); err != nil {
		t.Fatalf("second Wait() error: %v", err)
	}
}

func TestKeyedRateLimiter_PruneDropsIdleKeys(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	// Drain the burst for one key, keep another fresh.
	rl.Allow("idle")
	rl.Allow("idle")

	rl.mu.Lock()
	rl.entries["idle"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.Allow("active")
	rl.prune(time.Now().Add(-maxIdle))

	rl.mu.Lock()
	_, idleKept := rl.entries["idle"]
	_, activeKept := rl.entries["active"]
	rl.mu.Unlock()

	if idleKept {
		t.Error("idle key should have been pruned")
	}
	if !activeKept {
		t.Error("active key should survive pruning")
	}

	// A pruned key starts over with a full burst.
	if !rl.Allow("idle") {
		t.Error("pruned key should get a fresh limiter")
	}
}

func TestKeyedRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := New(1, 1)
	rl.Stop()
	rl.Stop()

	// The limiter still works after Stop.
	if !rl.Allow("client") {
		t.Error("Allow should still work after Stop")
	}
}

func TestKeyedRateLimiter_WaitCanceled(t *testing.T) {
	rl := New(0.001, 1)

	// Drain the burst token.
	if !rl.Allow("client") {
		t.Fatal("burst token should be available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx, "client"); err == nil {
		t.Fatal("Wait() should fail when the context expires first")
	}
}
