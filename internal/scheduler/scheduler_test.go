package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"treasuryhub/internal/config"
	"treasuryhub/internal/models"
)

type recordingSyncer struct {
	mu    sync.Mutex
	types []string
}

func (r *recordingSyncer) Sync(ctx context.Context, syncType string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, syncType)
	return true
}

func (r *recordingSyncer) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.types...)
}

func TestDailySpec(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"09:00", "0 9 * * *"},
		{"17:30", "30 17 * * *"},
		{"00:05", "5 0 * * *"},
	}
	for _, tt := range tests {
		got, err := dailySpec(tt.in)
		if err != nil {
			t.Fatalf("dailySpec(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("dailySpec(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := dailySpec("25:00"); err == nil {
		t.Fatalf("expected error for invalid time")
	}
}

func TestStartupRun(t *testing.T) {
	syncer := &recordingSyncer{}
	runner := New(config.SyncConfig{
		Enabled:      true,
		Interval:     time.Hour,
		DailyTimes:   []string{"09:00", "17:00"},
		RunOnStartup: true,
	}, syncer, zap.NewNop(), context.Background())

	if err := runner.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer runner.Stop()

	calls := syncer.calls()
	if len(calls) != 1 || calls[0] != models.SyncTypeStartup {
		t.Fatalf("expected one STARTUP run, got %v", calls)
	}
}

func TestDisabledSchedulerRunsNothing(t *testing.T) {
	syncer := &recordingSyncer{}
	runner := New(config.SyncConfig{
		Enabled:      false,
		RunOnStartup: true,
	}, syncer, zap.NewNop(), context.Background())

	if err := runner.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if calls := syncer.calls(); len(calls) != 0 {
		t.Fatalf("disabled scheduler should not sync, got %v", calls)
	}
}

func TestInvalidDailyTimeRejected(t *testing.T) {
	runner := New(config.SyncConfig{
		Enabled:    true,
		Interval:   time.Hour,
		DailyTimes: []string{"not-a-time"},
	}, &recordingSyncer{}, zap.NewNop(), context.Background())

	if err := runner.Start(); err == nil {
		t.Fatalf("expected error for invalid daily time")
	}
}

func TestRunAbsorbsPanic(t *testing.T) {
	runner := New(config.SyncConfig{}, panicSyncer{}, zap.NewNop(), context.Background())
	// Must not propagate.
	runner.run(context.Background(), models.SyncTypeAuto)
}

type panicSyncer struct{}

func (panicSyncer) Sync(ctx context.Context, syncType string) bool {
	panic("boom")
}
