package chat_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"friendbot/companion-api/internal/domain/chat"
	"friendbot/companion-api/internal/domain/query"
	"friendbot/companion-api/internal/domain/user"
	"friendbot/companion-api/internal/utils/platformerrors"
)

// mockTurnRepository is an in-memory implementation of chat.TurnRepository
type mockTurnRepository struct {
	turns  []*chat.Turn
	nextID uint
}

func newMockTurnRepository() *mockTurnRepository {
	return &mockTurnRepository{nextID: 1}
}

func (m *mockTurnRepository) Create(ctx context.Context, turn *chat.Turn) error {
	turn.ID = m.nextID
	m.nextID++
	clone := *turn
	m.turns = append(m.turns, &clone)
	return nil
}

func (m *mockTurnRepository) Update(ctx context.Context, turn *chat.Turn) error {
	for i, existing := range m.turns {
		if existing.ID == turn.ID {
			clone := *turn
			m.turns[i] = &clone
			return nil
		}
	}
	return errors.New("turn not found")
}

func (m *mockTurnRepository) FindByID(ctx context.Context, id uint) (*chat.Turn, error) {
	for _, turn := range m.turns {
		if turn.ID == id {
			clone := *turn
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockTurnRepository) FindByPublicID(ctx context.Context, publicID string) (*chat.Turn, error) {
	for _, turn := range m.turns {
		if turn.PublicID == publicID {
			clone := *turn
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockTurnRepository) RecentByUserID(ctx context.Context, userID uint, limit int) ([]*chat.Turn, error) {
	var owned []*chat.Turn
	for i := len(m.turns) - 1; i >= 0; i-- {
		if m.turns[i].UserID == userID {
			clone := *m.turns[i]
			owned = append(owned, &clone)
			if len(owned) == limit {
				break
			}
		}
	}
	return owned, nil
}

func (m *mockTurnRepository) FindByFilter(ctx context.Context, filter chat.TurnFilter, pagination *query.Pagination) ([]*chat.Turn, error) {
	var result []*chat.Turn
	for i := len(m.turns) - 1; i >= 0; i-- {
		turn := m.turns[i]
		if filter.UserID != nil && turn.UserID != *filter.UserID {
			continue
		}
		clone := *turn
		result = append(result, &clone)
	}
	limit := pagination.EffectiveLimit(20)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockTurnRepository) Count(ctx context.Context, filter chat.TurnFilter) (int64, error) {
	var count int64
	for _, turn := range m.turns {
		if filter.UserID != nil && turn.UserID != *filter.UserID {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockTurnRepository) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	var kept []*chat.Turn
	var deleted int64
	for _, turn := range m.turns {
		if turn.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, turn)
	}
	m.turns = kept
	return deleted, nil
}

// stubGenerator echoes a fixed reply and captures the prompt it was given
type stubGenerator struct {
	reply      string
	lastPrompt string
	err        error
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (*chat.GenerationResult, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return nil, g.err
	}
	return &chat.GenerationResult{Text: g.reply, PromptTokens: 12, CompletionTokens: 5}, nil
}

// passthroughTxRunner runs the function directly and counts invocations.
type passthroughTxRunner struct {
	calls int
}

func (r *passthroughTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	return fn(ctx)
}

// stubUsageRecorder captures usage records and can be made to fail.
type stubUsageRecorder struct {
	records int
	err     error
}

func (r *stubUsageRecorder) Record(ctx context.Context, userID, turnID uint, promptTokens, completionTokens int) error {
	if r.err != nil {
		return r.err
	}
	r.records++
	return nil
}

func newTestService(t *testing.T, repo chat.TurnRepository, gen chat.Generator) *chat.Service {
	t.Helper()
	registry, err := chat.NewTemplateRegistry(nil)
	if err != nil {
		t.Fatalf("NewTemplateRegistry() error = %v", err)
	}
	return chat.NewService(repo, registry, gen, nil, nil, zerolog.Nop())
}

func testUser() *user.User {
	return &user.User{ID: 1, Username: "sam", PersonaPreference: user.PersonaNeutral}
}

func TestSendMessageFirstExchange(t *testing.T) {
	repo := newMockTurnRepository()
	gen := &stubGenerator{reply: "Hey! Nice to meet you."}
	svc := newTestService(t, repo, gen)

	result, err := svc.SendMessage(context.Background(), testUser(), "Hello")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	if result.ResponseText != "Hey! Nice to meet you." {
		t.Errorf("response = %q", result.ResponseText)
	}

	// Empty history: transcript block is empty, input line present.
	if !strings.Contains(gen.lastPrompt, "Current conversation:\n\nHuman: Hello") {
		t.Errorf("prompt = %q, want empty transcript block before input", gen.lastPrompt)
	}

	// Round-trip: the turn is retrievable with message and response populated.
	stored, err := repo.FindByID(context.Background(), result.Turn.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.Message != "Hello" {
		t.Errorf("stored message = %q", stored.Message)
	}
	if stored.Response == nil || *stored.Response != "Hey! Nice to meet you." {
		t.Errorf("stored response = %v", stored.Response)
	}
}

func TestSendMessageHistoryExcludesCurrentTurn(t *testing.T) {
	repo := newMockTurnRepository()
	gen := &stubGenerator{reply: "ok"}
	svc := newTestService(t, repo, gen)
	ctx := context.Background()
	usr := testUser()

	if _, err := svc.SendMessage(ctx, usr, "first message"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if _, err := svc.SendMessage(ctx, usr, "second message"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	// The second prompt carries the first exchange in its transcript but
	// not the second message, which only appears as the active input line.
	if !strings.Contains(gen.lastPrompt, "Human: first message\nAI Friend: ok\n") {
		t.Errorf("prompt missing prior exchange: %q", gen.lastPrompt)
	}
	if strings.Count(gen.lastPrompt, "second message") != 1 {
		t.Errorf("current message should appear exactly once: %q", gen.lastPrompt)
	}
}

func TestSendMessageHistoryBounded(t *testing.T) {
	repo := newMockTurnRepository()
	gen := &stubGenerator{reply: "ok"}
	svc := newTestService(t, repo, gen)
	ctx := context.Background()
	usr := testUser()

	// 11 prior exchanges; the next send must see only the most recent 10,
	// oldest of those first.
	for i := 1; i <= 11; i++ {
		if _, err := svc.SendMessage(ctx, usr, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("SendMessage(%d) error = %v", i, err)
		}
	}

	if _, err := svc.SendMessage(ctx, usr, "latest"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	if strings.Contains(gen.lastPrompt, "Human: msg-1\n") {
		t.Errorf("oldest turn should have been dropped from the window: %q", gen.lastPrompt)
	}
	first := strings.Index(gen.lastPrompt, "Human: msg-2\n")
	last := strings.Index(gen.lastPrompt, "Human: msg-11\n")
	if first == -1 || last == -1 || first > last {
		t.Errorf("window not chronological, prompt = %q", gen.lastPrompt)
	}
}

func TestSendMessageTenantIsolation(t *testing.T) {
	repo := newMockTurnRepository()
	gen := &stubGenerator{reply: "ok"}
	svc := newTestService(t, repo, gen)
	ctx := context.Background()

	other := &user.User{ID: 2, Username: "eve", PersonaPreference: user.PersonaNeutral}
	if _, err := svc.SendMessage(ctx, other, "secret message"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	if _, err := svc.SendMessage(ctx, testUser(), "hi"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if strings.Contains(gen.lastPrompt, "secret message") {
		t.Error("another user's turn leaked into the transcript")
	}
}

func TestSendMessageGenerationFailure(t *testing.T) {
	repo := newMockTurnRepository()
	gen := &stubGenerator{err: errors.New("upstream timeout")}
	svc := newTestService(t, repo, gen)
	ctx := context.Background()
	usr := testUser()

	_, err := svc.SendMessage(ctx, usr, "Hello")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
		t.Fatalf("expected external error, got %v", err)
	}

	// The user turn stays persisted with a null response.
	turns, err := repo.RecentByUserID(ctx, usr.ID, 10)
	if err != nil {
		t.Fatalf("RecentByUserID() error = %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("expected 1 persisted turn, got %d", len(turns))
	}
	if turns[0].Answered() {
		t.Error("failed generation must leave the turn unanswered")
	}
}

func TestSendMessageEmptyMessage(t *testing.T) {
	svc := newTestService(t, newMockTurnRepository(), &stubGenerator{reply: "ok"})

	_, err := svc.SendMessage(context.Background(), testUser(), "")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSendMessageNoDeduplication(t *testing.T) {
	repo := newMockTurnRepository()
	svc := newTestService(t, repo, &stubGenerator{reply: "ok"})
	ctx := context.Background()
	usr := testUser()

	first, err := svc.SendMessage(ctx, usr, "same text")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	second, err := svc.SendMessage(ctx, usr, "same text")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	// Identical sends create two distinct turns; deduplication is not a goal.
	if first.Turn.ID == second.Turn.ID || first.Turn.PublicID == second.Turn.PublicID {
		t.Error("identical sends must create distinct turns")
	}
}

func TestAttachResponseRejectsAnsweredTurn(t *testing.T) {
	repo := newMockTurnRepository()
	svc := newTestService(t, repo, &stubGenerator{reply: "ok"})
	ctx := context.Background()

	result, err := svc.SendMessage(ctx, testUser(), "Hello")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	err = svc.AttachResponse(ctx, result.Turn.ID, "second response")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestAttachResponseUnknownTurn(t *testing.T) {
	svc := newTestService(t, newMockTurnRepository(), &stubGenerator{reply: "ok"})

	err := svc.AttachResponse(context.Background(), 404, "text")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestRecentHistoryEmpty(t *testing.T) {
	svc := newTestService(t, newMockTurnRepository(), &stubGenerator{reply: "ok"})

	history, err := svc.RecentHistory(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("RecentHistory() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d turns", len(history))
	}
}

func TestClearHistory(t *testing.T) {
	repo := newMockTurnRepository()
	svc := newTestService(t, repo, &stubGenerator{reply: "ok"})
	ctx := context.Background()
	usr := testUser()

	for i := 0; i < 3; i++ {
		if _, err := svc.SendMessage(ctx, usr, "hello"); err != nil {
			t.Fatalf("SendMessage() error = %v", err)
		}
	}

	deleted, err := svc.ClearHistory(ctx, usr.ID)
	if err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	history, err := svc.RecentHistory(ctx, usr.ID, 10)
	if err != nil {
		t.Fatalf("RecentHistory() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history not cleared, %d turns remain", len(history))
	}
}

func TestSendMessagePersonaStampedOnTurn(t *testing.T) {
	repo := newMockTurnRepository()
	svc := newTestService(t, repo, &stubGenerator{reply: "Hi there!"})
	ctx := context.Background()

	usr := &user.User{ID: 1, Username: "sam", PersonaPreference: user.PersonaFemale}
	result, err := svc.SendMessage(ctx, usr, "hello")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if got := result.Turn.Metadata["persona"]; got != "female" {
		t.Errorf("persona metadata = %q, want %q", got, "female")
	}

	stored, err := repo.FindByID(ctx, result.Turn.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got := stored.Metadata["persona"]; got != "female" {
		t.Errorf("stored persona metadata = %q, want %q", got, "female")
	}

	// An unknown preference resolves to neutral before stamping.
	other := &user.User{ID: 2, Username: "kim", PersonaPreference: "robot"}
	result, err = svc.SendMessage(ctx, other, "hello")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if got := result.Turn.Metadata["persona"]; got != "neutral" {
		t.Errorf("persona metadata = %q, want %q", got, "neutral")
	}
}

func TestSendMessageResponseAndUsageCommitTogether(t *testing.T) {
	registry, err := chat.NewTemplateRegistry(nil)
	if err != nil {
		t.Fatalf("NewTemplateRegistry() error = %v", err)
	}
	ctx := context.Background()

	repo := newMockTurnRepository()
	runner := &passthroughTxRunner{}
	usage := &stubUsageRecorder{}
	svc := chat.NewService(repo, registry, &stubGenerator{reply: "Hi!"}, usage, runner, zerolog.Nop())

	if _, err := svc.SendMessage(ctx, testUser(), "hello"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if runner.calls != 1 {
		t.Errorf("transaction runs = %d, want 1", runner.calls)
	}
	if usage.records != 1 {
		t.Errorf("usage records = %d, want 1", usage.records)
	}

	// A failing usage write surfaces as an error from the transaction.
	failing := chat.NewService(newMockTurnRepository(), registry, &stubGenerator{reply: "Hi!"},
		&stubUsageRecorder{err: errors.New("usage store down")}, &passthroughTxRunner{}, zerolog.Nop())
	if _, err := failing.SendMessage(ctx, testUser(), "hello"); err == nil {
		t.Fatal("expected error when usage recording fails")
	}
}

func TestGetTurnScopedToOwner(t *testing.T) {
	repo := newMockTurnRepository()
	svc := newTestService(t, repo, &stubGenerator{reply: "Hi!"})
	ctx := context.Background()

	usr := testUser()
	result, err := svc.SendMessage(ctx, usr, "hello")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	turn, err := svc.GetTurn(ctx, usr.ID, result.Turn.PublicID)
	if err != nil {
		t.Fatalf("GetTurn() error = %v", err)
	}
	if turn.PublicID != result.Turn.PublicID {
		t.Errorf("GetTurn() public id = %q, want %q", turn.PublicID, result.Turn.PublicID)
	}

	if _, err := svc.GetTurn(ctx, usr.ID+1, result.Turn.PublicID); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("expected not found for foreign user, got %v", err)
	}

	if _, err := svc.GetTurn(ctx, usr.ID, "turn_missing"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("expected not found for unknown turn, got %v", err)
	}
}
