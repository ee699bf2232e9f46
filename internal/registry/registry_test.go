package registry_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/resistlab/amrburden/internal/model"
	"github.com/resistlab/amrburden/internal/registry"
	"github.com/resistlab/amrburden/internal/testutil"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db
}

func testReport(id string, score float64, cat model.RiskCategory) model.SampleReport {
	return model.SampleReport{
		SampleID:     id,
		BurdenScore:  score,
		RiskCategory: cat,
		Profile: map[model.Mechanism]float64{
			model.MechanismEffluxPump:  0.75,
			model.MechanismNonSpecific: 0.25,
		},
		Interpretation: "Efflux-based multidrug resistance likely",
	}
}

func TestRegistry_CreateStoreAndGet(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	reg, err := registry.NewRegistry(db, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	ctx := context.Background()

	batch, err := reg.CreateBatch(ctx, "upload.csv")
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if batch.ID == "" || batch.Filename != "upload.csv" {
		t.Fatalf("batch = %+v", batch)
	}

	if err := reg.StoreReport(ctx, batch.ID, 0, testReport("s1", 1e6, model.RiskLow)); err != nil {
		t.Fatalf("StoreReport: %v", err)
	}
	if err := reg.StoreReport(ctx, batch.ID, 2, testReport("s3", 7e6, model.RiskHigh)); err != nil {
		t.Fatalf("StoreReport: %v", err)
	}
	if err := reg.StoreExcluded(ctx, batch.ID, 1, model.ExcludedSample{SampleID: "s2", Reason: "negative abundance"}); err != nil {
		t.Fatalf("StoreExcluded: %v", err)
	}
	summary := model.BatchSummary{SampleCount: 2, ExcludedCount: 1, MeanScore: 4e6, LowCount: 1, HighCount: 1}
	if err := reg.SetSummary(ctx, batch.ID, summary); err != nil {
		t.Fatalf("SetSummary: %v", err)
	}

	got, err := reg.GetBatch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if got.Summary != summary {
		t.Fatalf("summary = %+v, want %+v", got.Summary, summary)
	}
	if len(got.Reports) != 2 {
		t.Fatalf("expected 2 reports got %d", len(got.Reports))
	}
	// seq preserves input order
	if got.Reports[0].SampleID != "s1" || got.Reports[1].SampleID != "s3" {
		t.Fatalf("reports out of order: %v, %v", got.Reports[0].SampleID, got.Reports[1].SampleID)
	}
	if got.Reports[0].Profile[model.MechanismEffluxPump] != 0.75 {
		t.Fatalf("profile did not round-trip: %+v", got.Reports[0].Profile)
	}
	if len(got.Excluded) != 1 || got.Excluded[0].SampleID != "s2" {
		t.Fatalf("excluded = %+v", got.Excluded)
	}
}

func TestRegistry_GetBatchNotFound(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	reg, err := registry.NewRegistry(db, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	_, err = reg.GetBatch(context.Background(), "no-such-batch")
	if !errors.Is(err, registry.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
	if err := reg.SetSummary(context.Background(), "no-such-batch", model.BatchSummary{}); !errors.Is(err, registry.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound from SetSummary, got %v", err)
	}
}

func TestRegistry_ListBatches(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	reg, err := registry.NewRegistry(db, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	ctx := context.Background()

	if _, err := reg.CreateBatch(ctx, "a.csv"); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if _, err := reg.CreateBatch(ctx, "b.csv"); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	batches, err := reg.ListBatches(ctx)
	if err != nil {
		t.Fatalf("ListBatches: %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches got %d", len(batches))
	}
	// Listing excludes report rows.
	if len(batches[0].Reports) != 0 {
		t.Fatalf("listing should not include reports")
	}
}
