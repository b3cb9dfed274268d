package tokenusage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type mockUsageRepository struct {
	records []*TokenUsage
}

func (m *mockUsageRepository) Create(ctx context.Context, usage *TokenUsage) error {
	m.records = append(m.records, usage)
	return nil
}

func (m *mockUsageRepository) GetUserSummary(ctx context.Context, userID uint, startDate, endDate time.Time) (*UsageSummary, error) {
	return nil, nil
}

func TestRatesCost(t *testing.T) {
	rates := Rates{
		PromptPer1K:     decimal.RequireFromString("0.0015"),
		CompletionPer1K: decimal.RequireFromString("0.002"),
	}

	// 2000 prompt tokens at 0.0015/1K plus 500 completion tokens at 0.002/1K.
	got := rates.Cost(2000, 500)
	want := decimal.RequireFromString("0.004")
	if !got.Equal(want) {
		t.Errorf("Cost(2000, 500) = %s, want %s", got, want)
	}

	if !rates.Cost(0, 0).Equal(decimal.Zero) {
		t.Errorf("Cost(0, 0) = %s, want 0", rates.Cost(0, 0))
	}
}

func TestRecordComputesTotals(t *testing.T) {
	repo := &mockUsageRepository{}
	svc := NewService(repo, "gpt-3.5-turbo-instruct", Rates{
		PromptPer1K:     decimal.RequireFromString("0.0015"),
		CompletionPer1K: decimal.RequireFromString("0.002"),
	})

	if err := svc.Record(context.Background(), 7, 42, 120, 30); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if len(repo.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(repo.records))
	}
	rec := repo.records[0]
	if rec.UserID != 7 || rec.TurnID != 42 {
		t.Errorf("record keys = user %d, turn %d", rec.UserID, rec.TurnID)
	}
	if rec.TotalTokens != 150 {
		t.Errorf("total tokens = %d, want 150", rec.TotalTokens)
	}
	if rec.Model != "gpt-3.5-turbo-instruct" {
		t.Errorf("model = %q", rec.Model)
	}
	if rec.EstimatedCostUSD.IsZero() {
		t.Error("cost was not computed")
	}
}
