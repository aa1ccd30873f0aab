package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/wellness/wellness/internal/domain/health"
	"github.com/wellness/wellness/internal/platform/db"
	"github.com/wellness/wellness/migrations"
)

func sampleReading(heartRate int) *health.HealthReading {
	return &health.HealthReading{
		HeartRate:        heartRate,
		BloodPressure:    "118/78",
		OxygenSaturation: 98,
		SleepQuality:     "good",
		Steps:            5000,
		Metabolism:       "normal",
		StressLevel:      "low",
		Focus:            "high",
		Mindfulness:      "moderate",
		Vatta:            "40",
		Pitta:            "35",
		Kapha:            "25",
	}
}

func TestReadingRepoPG_CreateAndGet(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	truncateReadings(t, ctx, pool)
	repo := health.NewReadingRepoPG(pool)

	r := sampleReading(72)
	if err := repo.Create(ctx, r); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", r.ID)
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := repo.GetByID(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.HeartRate != 72 || got.BloodPressure != "118/78" || got.Kapha != "25" {
		t.Errorf("unexpected document %+v", got)
	}

	for _, id := range []string{uuid.New().String(), "6650f0c2a1b2c3d4e5f60718", ""} {
		if _, err := repo.GetByID(ctx, id); !errors.Is(err, health.ErrNotFound) {
			t.Errorf("GetByID(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestReadingRepoPG_LatestAndList(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	truncateReadings(t, ctx, pool)
	repo := health.NewReadingRepoPG(pool)

	if _, err := repo.Latest(ctx); !errors.Is(err, health.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty table, got %v", err)
	}

	var last *health.HealthReading
	for i := 0; i < 5; i++ {
		last = sampleReading(60 + i)
		if err := repo.Create(ctx, last); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != last.ID {
		t.Errorf("expected latest %s, got %s", last.ID, latest.ID)
	}

	items, total, err := repo.List(ctx, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 || len(items) != 2 {
		t.Fatalf("expected 2 of 5, got %d of %d", len(items), total)
	}
	if items[0].HeartRate != 63 || items[1].HeartRate != 62 {
		t.Errorf("expected newest-first order, got %d, %d", items[0].HeartRate, items[1].HeartRate)
	}
}

func TestReadingRepoPG_CheckConstraint(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := health.NewReadingRepoPG(pool)

	r := sampleReading(72)
	r.OxygenSaturation = 150
	if err := repo.Create(ctx, r); !errors.Is(err, health.ErrStore) {
		t.Errorf("expected store error from check constraint, got %v", err)
	}
}

func TestReadingRepoPG_ConcurrentCreates(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	truncateReadings(t, ctx, pool)
	repo := health.NewReadingRepoPG(pool)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(hr int) {
			defer wg.Done()
			if err := repo.Create(ctx, sampleReading(hr)); err != nil {
				t.Error(err)
			}
		}(60 + i)
	}
	wg.Wait()

	_, total, err := repo.List(ctx, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 10 {
		t.Errorf("expected 10 readings, got %d", total)
	}
}

func TestMigrator_Idempotent(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	m := db.NewMigrator(pool, migrations.FS)

	applied, err := m.Up(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if applied != 0 {
		t.Errorf("expected no pending migrations, applied %d", applied)
	}

	statuses, err := m.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range statuses {
		if !s.Applied || s.AppliedAt == nil {
			t.Errorf("migration %d not marked applied", s.Version)
		}
	}
}
