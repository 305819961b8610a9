package coveragestore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

func TestBunRepository_SaveGet(t *testing.T) {
	repo := NewBunRepository(newTestDB(t))
	ctx := context.Background()

	record := sampleRecord("run-a", time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	fetched, err := repo.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if fetched.ID != record.ID || fetched.Label != "run-a" {
		t.Fatalf("Get() returned %+v", fetched)
	}
	if fetched.WordsTotal != 900 || fetched.WordsFallback != 30 || !fetched.StructureClean {
		t.Fatalf("Get() returned %+v", fetched)
	}
	if !fetched.StartedAt.Equal(record.StartedAt) {
		t.Fatalf("StartedAt = %v, want %v", fetched.StartedAt, record.StartedAt)
	}

	if _, err := repo.Get(ctx, uuid.New()); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestBunRepository_SaveUpserts(t *testing.T) {
	repo := NewBunRepository(newTestDB(t))
	ctx := context.Background()

	record := sampleRecord("first", time.Now().UTC())
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("Save() create error = %v", err)
	}
	record.Label = "second"
	record.StructureClean = false
	record.WordsFallback = 99
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("Save() update error = %v", err)
	}

	fetched, err := repo.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if fetched.Label != "second" || fetched.StructureClean || fetched.WordsFallback != 99 {
		t.Fatalf("Get() returned %+v", fetched)
	}

	all, err := repo.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Recent() returned %d records, want 1", len(all))
	}
}

func TestBunRepository_Recent(t *testing.T) {
	repo := NewBunRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	for i, label := range []string{"oldest", "middle", "newest"} {
		record := sampleRecord(label, base.Add(time.Duration(i)*time.Hour))
		if err := repo.Save(ctx, record); err != nil {
			t.Fatalf("Save(%s) error = %v", label, err)
		}
	}

	records, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Recent() returned %d records, want 2", len(records))
	}
	if records[0].Label != "newest" || records[1].Label != "middle" {
		t.Fatalf("Recent() order = [%s, %s]", records[0].Label, records[1].Label)
	}
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := NewBunRepository(db).Init(ctx); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	return db
}
