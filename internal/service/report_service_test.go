package service

import (
	"context"
	"strings"
	"testing"

	"echospell/internal/progress"
)

func newDisabledReportService(t *testing.T, store progress.Store) *ReportService {
	t.Helper()
	// Empty from address keeps the service offline; no AWS credentials are
	// touched.
	svc, err := NewReportService(context.Background(), "eu-west-1", "", "EchoSpell", store)
	if err != nil {
		t.Fatalf("NewReportService() error = %v", err)
	}
	return svc
}

func TestReportServiceDisabledWithoutFromAddress(t *testing.T) {
	svc := newDisabledReportService(t, progress.NewMemoryStore(30))

	if svc.IsEnabled() {
		t.Error("IsEnabled() = true without a from address, want false")
	}
	if err := svc.SendWeeklyReport(context.Background(), "parent@example.com", "en", 7); err != nil {
		t.Errorf("SendWeeklyReport() error = %v, want nil no-op", err)
	}
}

func TestBuildWeeklyReport(t *testing.T) {
	store := progress.NewMemoryStore(30)
	if err := store.Record(testStart, "en", progress.DayRecord{Correct: 8, Wrong: 2}); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(testStart.AddDate(0, 0, -1), "en", progress.DayRecord{Correct: 5, Wrong: 0}); err != nil {
		t.Fatal(err)
	}

	svc := newDisabledReportService(t, store)
	subject, htmlBody, textBody, err := svc.BuildWeeklyReport(testStart, "en", 7)
	if err != nil {
		t.Fatalf("BuildWeeklyReport() error = %v", err)
	}

	if subject != "EchoSpell weekly report: 2 day streak" {
		t.Errorf("subject = %q, want the 2 day streak in it", subject)
	}
	if !strings.Contains(textBody, "2026-03-14  8/10 correct (80%)") {
		t.Errorf("text body missing today's row:\n%s", textBody)
	}
	if !strings.Contains(textBody, "2026-03-13  5/5 correct (100%)") {
		t.Errorf("text body missing yesterday's row:\n%s", textBody)
	}
	// Empty days show up as "no practice", not as 0/0.
	if !strings.Contains(textBody, "2026-03-12  no practice") {
		t.Errorf("text body missing the empty-day row:\n%s", textBody)
	}
	if !strings.Contains(htmlBody, "<td>2026-03-14</td><td>8/10</td><td>80%</td>") {
		t.Errorf("html body missing today's row:\n%s", htmlBody)
	}
	if !strings.Contains(htmlBody, "<td>2026-03-12</td><td>no practice</td><td>-</td>") {
		t.Errorf("html body missing the empty-day row:\n%s", htmlBody)
	}
}

func TestBuildWeeklyReportPropagatesStoreErrors(t *testing.T) {
	svc := newDisabledReportService(t, failingStore{})

	if _, _, _, err := svc.BuildWeeklyReport(testStart, "en", 7); err == nil {
		t.Error("BuildWeeklyReport() error = nil, want store failure")
	}
}
