package util

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_BurstThenThrottle(t *testing.T) {
	// 10 tokens per second, burst of 2
	l := NewLimiter(10, 2)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := l.Wait(ctx, 1); err != nil {
			t.Fatalf("Wait %d failed: %v", i, err)
		}
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Error("expected burst tokens to be granted immediately")
	}

	if err := l.Wait(ctx, 1); err != nil {
		t.Fatalf("Wait after burst failed: %v", err)
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Error("expected third token to wait for a refill")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(0, 5)
	if l != nil {
		t.Fatal("expected nil limiter for a zero rate")
	}
	for i := 0; i < 100; i++ {
		if err := l.Wait(context.Background(), 1); err != nil {
			t.Fatalf("nil limiter Wait: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Wait(ctx, 1); err == nil {
		t.Fatal("expected cancelled context to surface from Wait")
	}
}

func TestLimiter_WaitDeadline(t *testing.T) {
	l := NewLimiter(1, 1)
	if err := l.Wait(context.Background(), 1); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, 1); err == nil {
		t.Fatal("expected Wait to fail when the next token is past the deadline")
	}
}
