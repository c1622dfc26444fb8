package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	trainingout "skidlogg/internal/modules/training/adapter/out"
	"skidlogg/internal/modules/training/dto"
	trainingin "skidlogg/internal/modules/training/port/in"
	"skidlogg/internal/modules/training/service"
	"skidlogg/internal/modules/training/usecase"
	"skidlogg/internal/platform/clock"
	"skidlogg/internal/platform/id"
)

func newUsecase(t *testing.T) (trainingin.Usecase, string) {
	t.Helper()
	dataDir := t.TempDir()
	blobPath := filepath.Join(dataDir, "skidlogg.sessions.json")
	fixed := clock.Fixed(time.Date(2025, time.October, 16, 12, 0, 0, 0, time.UTC))
	svc := service.NewSessionService(fixed, id.UUID{}, trainingout.NewFileBlobStore(blobPath), nil)
	return usecase.NewInteractor(svc), blobPath
}

func mustCreate(t *testing.T, uc trainingin.Usecase, style, date, distance, duration, climb string) dto.SessionOutput {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.SessionInput{Style: style, Date: date, Distance: distance, Duration: duration, Climb: climb})
	if err != nil {
		t.Fatalf("create %s %s: %v", style, date, err)
	}
	return out
}

func TestViewResolvesStaleSelection(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	mustCreate(t, uc, "Klassiskt", "2025-09-01", "10", "50:00", "100")
	mustCreate(t, uc, "Skejt", "2025-10-02", "12", "48:00", "60")
	mustCreate(t, uc, "Rullskidor", "2025-03-01", "20", "1:20:00", "200")

	out, err := uc.View(context.Background(), dto.ViewState{SummarySeason: "10/11", LogFilter: "10/11", EditingID: "missing"})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if out.State.SummarySeason != "25/26" || out.State.LogFilter != "__current__" || out.State.EditingID != "" {
		t.Fatalf("unexpected resolved state: %+v", out.State)
	}
	if len(out.Log) != 2 || out.Log[0].Date != "2025-10-02" || out.Log[1].Date != "2025-09-01" {
		t.Fatalf("unexpected log rows: %+v", out.Log)
	}
	if out.Summary.Totals.Count != 2 || out.Summary.Totals.TotalDistanceKM != 22 {
		t.Fatalf("unexpected totals: %+v", out.Summary.Totals)
	}
	if len(out.Seasons.Options) != 2 || out.Seasons.Options[0] != "25/26" || out.Seasons.Options[1] != "24/25" {
		t.Fatalf("unexpected seasons: %+v", out.Seasons)
	}
	if out.Editing != nil {
		t.Fatalf("editing should be cleared")
	}
}

func TestViewAllAndExplicitSeason(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	mustCreate(t, uc, "Klassiskt", "2025-09-01", "10", "50:00", "100")
	machine := mustCreate(t, uc, "Stakmaskin", "2025-03-01", "10", "50:00", "400")

	out, err := uc.View(context.Background(), dto.ViewState{SummarySeason: "24/25", LogFilter: "all", EditingID: machine.ID})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(out.Log) != 2 {
		t.Fatalf("expected all sessions, got %d", len(out.Log))
	}
	if out.State.LogFilter != "__all__" || out.State.SummarySeason != "24/25" {
		t.Fatalf("unexpected state: %+v", out.State)
	}
	if out.Editing == nil || out.Editing.ID != machine.ID {
		t.Fatalf("editing session missing: %+v", out.Editing)
	}
	if out.Summary.Totals.TotalClimbMeters != 0 || out.Summary.Totals.AvgStifa != 0 {
		t.Fatalf("machine climb leaked into totals: %+v", out.Summary.Totals)
	}
	last := out.Summary.ByStyle[len(out.Summary.ByStyle)-1]
	if last.Style != "Stakmaskin" || last.Stifa != nil {
		t.Fatalf("machine row should have no stifa: %+v", last)
	}
	if len(out.Summary.Shares) != 1 || out.Summary.Shares[0].Fraction != 1 {
		t.Fatalf("unexpected shares: %+v", out.Summary.Shares)
	}
}

func TestSummaryEmptySeasonHasNoShares(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	summary, err := uc.Summary(context.Background(), "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Season != "25/26" || len(summary.ByStyle) != 4 || summary.Shares != nil {
		t.Fatalf("unexpected empty summary: %+v", summary)
	}
}

func TestDoctorReportsDroppedRecords(t *testing.T) {
	t.Parallel()
	uc, blobPath := newUsecase(t)
	blob := `[{"id":"a","style":"Skejt","date":"2025-01-01","distance":5,"durationSeconds":900},{"id":"b","date":"2025-01-01"}]`
	if err := os.WriteFile(blobPath, []byte(blob), 0o644); err != nil {
		t.Fatalf("write blob: %v", err)
	}
	report, err := uc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.Total != 2 || report.Kept != 1 || report.Dropped != 1 || report.Backfilled != 1 || report.Source != blobPath {
		t.Fatalf("unexpected report: %+v", report)
	}
	rows, err := uc.Log(context.Background(), "all")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(rows) != 1 || rows[0].Season != "24/25" || rows[0].Duration != "15:00" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestDeleteUnknownLeavesCollection(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	mustCreate(t, uc, "Klassiskt", "2025-09-01", "10", "50:00", "100")
	removed, err := uc.Delete(context.Background(), "nope")
	if err != nil || removed {
		t.Fatalf("delete unknown: removed=%v err=%v", removed, err)
	}
	rows, _ := uc.Log(context.Background(), "current")
	if len(rows) != 1 {
		t.Fatalf("collection changed: %d rows", len(rows))
	}
}
