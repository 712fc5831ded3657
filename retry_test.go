package shopsync

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRetrySucceedsAfterFailure(t *testing.T) {
	p := testPipeline(Config{MaxRetryAttempts: 2})

	calls := 0
	err := p.retry(context.Background(), "flaky op", func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryExhaustsAndTagsLabel(t *testing.T) {
	p := testPipeline(Config{MaxRetryAttempts: 1})

	sentinel := errors.New("boom")
	err := p.retry(context.Background(), "doomed op", func() error { return sentinel })
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("final error should wrap the last failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "doomed op") {
		t.Errorf("final error %q should carry the label", err)
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	p := testPipeline(Config{MaxRetryAttempts: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := p.retry(ctx, "cancelled op", func() error {
		calls++
		return errors.New("fail")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error should wrap context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry after cancellation)", calls)
	}
}

func TestSleepContext(t *testing.T) {
	start := time.Now()
	if err := sleepContext(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("sleepContext returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("slept only %v", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled sleep should return context.Canceled, got %v", err)
	}
}
