package chat

import (
	"context"

	"github.com/rs/zerolog"

	"friendbot/companion-api/internal/domain/query"
	"friendbot/companion-api/internal/domain/user"
	"friendbot/companion-api/internal/utils/functional"
	"friendbot/companion-api/internal/utils/idgen"
	"friendbot/companion-api/internal/utils/platformerrors"
)

// HistoryLimit bounds how many prior turns feed the generation context.
const HistoryLimit = 10

// GenerationResult carries the produced text and token accounting.
type GenerationResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Generator delegates text production to an external capability. A failed
// call is a single failure; the pipeline performs no retries.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*GenerationResult, error)
}

// UsageRecorder records token consumption for a completed generation.
type UsageRecorder interface {
	Record(ctx context.Context, userID, turnID uint, promptTokens, completionTokens int) error
}

// TxRunner executes fn inside a storage transaction; repository calls made
// through the returned context share it.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SendResult is returned to the caller after a successful exchange.
type SendResult struct {
	Turn         *Turn
	ResponseText string
}

// Service drives the chat pipeline: fetch history, assemble context,
// generate, and record the exchange.
type Service struct {
	repo     TurnRepository
	registry *TemplateRegistry
	gen      Generator
	usage    UsageRecorder
	tx       TxRunner
	log      zerolog.Logger
}

// NewService constructs a chat Service with required dependencies.
func NewService(
	repo TurnRepository,
	registry *TemplateRegistry,
	gen Generator,
	usage UsageRecorder,
	tx TxRunner,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		registry: registry,
		gen:      gen,
		usage:    usage,
		tx:       tx,
		log:      log.With().Str("component", "chat-service").Logger(),
	}
}

// SendMessage runs one exchange for the user. The history fetched reflects
// only turns committed before this send; the user turn is persisted before
// generation so a failed generation never loses the message. A crash or
// provider failure leaves the turn unanswered; once generation succeeds,
// the response and its usage row commit in one transaction so an answered
// turn always has its accounting.
func (s *Service) SendMessage(ctx context.Context, usr *user.User, message string) (*SendResult, error) {
	if message == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message is required", nil, "2d7f4a80-91c3-4e65-b2d8-0a5e6c1f9b37")
	}

	newestFirst, err := s.repo.RecentByUserID(ctx, usr.ID, HistoryLimit)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to fetch history")
	}
	history := functional.Reverse(newestFirst)

	tmpl := s.registry.Resolve(usr.PersonaPreference)

	turn, err := s.recordUserTurn(ctx, usr.ID, message, tmpl.Persona)
	if err != nil {
		return nil, err
	}

	prompt, err := Assemble(tmpl, history, message)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to assemble generation context", err, "8b05c9e1-64df-4a72-930b-e7d2f1a8c546")
	}

	result, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		// The user turn stays persisted with a null response; the client may
		// resubmit, which creates a new turn.
		s.log.Warn().Err(err).Uint("user_id", usr.ID).Str("turn_id", turn.PublicID).Msg("generation failed")
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"generation failed", err, "f41a8d26-0b9e-4c57-a3d1-68e2c7b5f093")
	}

	err = s.runInTx(ctx, func(ctx context.Context) error {
		if err := s.AttachResponse(ctx, turn.ID, result.Text); err != nil {
			return err
		}
		if s.usage == nil {
			return nil
		}
		if err := s.usage.Record(ctx, usr.ID, turn.ID, result.PromptTokens, result.CompletionTokens); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to record token usage")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	turn.Response = &result.Text

	return &SendResult{Turn: turn, ResponseText: result.Text}, nil
}

func (s *Service) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.RunInTx(ctx, fn)
}

// recordUserTurn persists the user's message immediately with a null
// response, stamping the persona the exchange will be generated under.
func (s *Service) recordUserTurn(ctx context.Context, userID uint, message string, persona user.PersonaPreference) (*Turn, error) {
	publicID, err := idgen.GenerateSecureID("turn", 16)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate turn id", err, "61c2e8b4-d573-49f0-8a26-3b9e0d7f1c58")
	}

	turn := &Turn{
		PublicID: publicID,
		UserID:   userID,
		Message:  message,
		Metadata: map[string]string{"persona": string(persona)},
	}
	if err := s.repo.Create(ctx, turn); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to record user turn")
	}
	return turn, nil
}

// AttachResponse sets the response on a previously unanswered turn.
// Attaching to an already answered turn is rejected as a conflict.
func (s *Service) AttachResponse(ctx context.Context, turnID uint, response string) error {
	turn, err := s.repo.FindByID(ctx, turnID)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load turn")
	}
	if turn == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"turn not found", nil, "0e93b7a5-2c41-4d68-bf02-75a8d1e6c394")
	}
	if turn.Answered() {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"turn already has a response", nil, "b6d04f82-9e17-4a35-8c60-d2f5e1b79a48")
	}

	turn.Response = &response
	if err := s.repo.Update(ctx, turn); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to attach response")
	}
	return nil
}

// GetTurn returns one of the user's turns by its public id. A turn owned
// by another user is reported as not found.
func (s *Service) GetTurn(ctx context.Context, userID uint, publicID string) (*Turn, error) {
	turn, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load turn")
	}
	if turn == nil || turn.UserID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"turn not found", nil, "7c2e90d4-1b58-4f3a-a6c7-e95d03b81f62")
	}
	return turn, nil
}

// RecentHistory returns up to limit turns for the user, oldest first.
func (s *Service) RecentHistory(ctx context.Context, userID uint, limit int) ([]*Turn, error) {
	if limit < 1 {
		limit = HistoryLimit
	}
	newestFirst, err := s.repo.RecentByUserID(ctx, userID, limit)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to fetch history")
	}
	return functional.Reverse(newestFirst), nil
}

// ListHistory returns a paginated turn listing for the user, newest first,
// together with the total count.
func (s *Service) ListHistory(ctx context.Context, userID uint, pagination *query.Pagination) ([]*Turn, int64, error) {
	filter := TurnFilter{UserID: &userID}

	turns, err := s.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list history")
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count history")
	}

	return turns, total, nil
}

// ClearHistory deletes every turn owned by the user.
func (s *Service) ClearHistory(ctx context.Context, userID uint) (int64, error) {
	deleted, err := s.repo.DeleteByUserID(ctx, userID)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to clear history")
	}
	return deleted, nil
}
