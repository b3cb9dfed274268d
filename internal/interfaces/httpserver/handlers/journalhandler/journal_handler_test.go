package journalhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"friendbot/companion-api/internal/domain"
	"friendbot/companion-api/internal/domain/journal"
	"friendbot/companion-api/internal/domain/query"
)

type fakeJournalRepository struct {
	entries []*journal.Journal
	nextID  uint
}

func (f *fakeJournalRepository) Create(ctx context.Context, entry *journal.Journal) error {
	f.nextID++
	entry.ID = f.nextID
	clone := *entry
	f.entries = append(f.entries, &clone)
	return nil
}

func (f *fakeJournalRepository) Update(ctx context.Context, entry *journal.Journal) error {
	for i, existing := range f.entries {
		if existing.ID == entry.ID {
			clone := *entry
			f.entries[i] = &clone
		}
	}
	return nil
}

func (f *fakeJournalRepository) Delete(ctx context.Context, id uint) error {
	for i, existing := range f.entries {
		if existing.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeJournalRepository) FindByPublicID(ctx context.Context, publicID string) (*journal.Journal, error) {
	for _, entry := range f.entries {
		if entry.PublicID == publicID {
			clone := *entry
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeJournalRepository) FindByFilter(ctx context.Context, filter journal.Filter, pagination *query.Pagination) ([]*journal.Journal, error) {
	var result []*journal.Journal
	for i := len(f.entries) - 1; i >= 0; i-- {
		entry := f.entries[i]
		if filter.UserID != nil && entry.UserID != *filter.UserID {
			continue
		}
		clone := *entry
		result = append(result, &clone)
	}
	return result, nil
}

func (f *fakeJournalRepository) Count(ctx context.Context, filter journal.Filter) (int64, error) {
	entries, _ := f.FindByFilter(ctx, filter, nil)
	return int64(len(entries)), nil
}

func newTestRouter(userID uint) (*gin.Engine, *fakeJournalRepository) {
	gin.SetMode(gin.TestMode)
	repo := &fakeJournalRepository{}
	handler := NewJournalHandler(journal.NewService(repo, nil, zerolog.Nop()))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("principal", domain.Principal{UserID: userID, Username: "tester"})
	})
	router.POST("/journals", handler.Create)
	router.GET("/journals", handler.List)
	router.GET("/journals/:id", handler.Get)
	return router, repo
}

func TestCreateJournalEntry(t *testing.T) {
	router, repo := newTestRouter(1)

	body, _ := json.Marshal(map[string]any{
		"title":   "First entry",
		"content": "Hello there.",
		"tags":    []string{"Intro"},
	})
	req := httptest.NewRequest(http.MethodPost, "/journals", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body %s", rec.Code, rec.Body.String())
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 stored entry, got %d", len(repo.entries))
	}
	if len(repo.entries[0].Tags) != 1 || repo.entries[0].Tags[0] != "intro" {
		t.Fatalf("stored tags = %v, want normalized [intro]", repo.entries[0].Tags)
	}
}

func TestCreateJournalEntryMissingContent(t *testing.T) {
	router, _ := newTestRouter(1)

	body, _ := json.Marshal(map[string]any{"title": "no content"})
	req := httptest.NewRequest(http.MethodPost, "/journals", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateJournalEntryTooManyTags(t *testing.T) {
	router, _ := newTestRouter(1)

	tags := make([]string, 11)
	for i := range tags {
		tags[i] = "tag"
	}
	body, _ := json.Marshal(map[string]any{"title": "t", "content": "c", "tags": tags})
	req := httptest.NewRequest(http.MethodPost, "/journals", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 11 tags, got %d", rec.Code)
	}
}

func TestGetJournalEntryNotFound(t *testing.T) {
	router, _ := newTestRouter(1)

	req := httptest.NewRequest(http.MethodGet, "/journals/jrnl_missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListJournalEntries(t *testing.T) {
	router, repo := newTestRouter(1)

	repo.Create(context.Background(), &journal.Journal{PublicID: "jrnl_a", UserID: 1, Title: "a", Content: "a"})
	repo.Create(context.Background(), &journal.Journal{PublicID: "jrnl_b", UserID: 2, Title: "b", Content: "b"})

	req := httptest.NewRequest(http.MethodGet, "/journals", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Journals []struct {
			ID string `json:"id"`
		} `json:"journals"`
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Total != 1 || len(payload.Journals) != 1 || payload.Journals[0].ID != "jrnl_a" {
		t.Fatalf("listing leaked across tenants: %+v", payload)
	}
}
