package journal

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"friendbot/companion-api/internal/domain/query"
	"friendbot/companion-api/internal/utils/idgen"
	"friendbot/companion-api/internal/utils/platformerrors"
)

// DefaultPageSize bounds journal listings when the caller does not
// specify a limit.
const DefaultPageSize = 20

// CreateInput contains the fields required to create an entry.
type CreateInput struct {
	Title   string
	Content string
	Tags    []string
}

// UpdateInput contains optional entry mutations. A non-nil Tags slice
// replaces the whole tag set.
type UpdateInput struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// Service owns journal entries. All operations are scoped to the owning
// user; callers pass the authenticated user's id, never a raw entry id
// from another tenant.
type Service struct {
	repo    Repository
	indexer Indexer
	log     zerolog.Logger
}

// NewService constructs a journal Service. The indexer is optional; when
// nil, similarity search is unavailable but CRUD and keyword search work.
func NewService(repo Repository, indexer Indexer, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		indexer: indexer,
		log:     log.With().Str("component", "journal-service").Logger(),
	}
}

// Create persists a new entry for the user and mirrors it into the index.
func (s *Service) Create(ctx context.Context, userID uint, input CreateInput) (*Journal, error) {
	if input.Title == "" || input.Content == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"title and content are required", nil, "4c91e7a0-2d58-4f36-b1c4-8a075e3d92f6")
	}

	publicID, err := idgen.GenerateSecureID("jrnl", 16)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate journal id", err, "b08d5f23-6e91-4a47-8c2d-f73a19e4b065")
	}

	entry := &Journal{
		PublicID: publicID,
		UserID:   userID,
		Title:    input.Title,
		Content:  input.Content,
		Tags:     normalizeTags(input.Tags),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.indexEntry(ctx, entry)
	return entry, nil
}

// Get resolves an entry by public id, enforcing ownership.
func (s *Service) Get(ctx context.Context, userID uint, publicID string) (*Journal, error) {
	entry, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.UserID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"journal entry not found", nil, "8e24a6d1-59cf-4b03-a71e-0d3c96f5b482")
	}
	return entry, nil
}

// List returns the user's entries, newest first, with the total count.
func (s *Service) List(ctx context.Context, userID uint, keyword, tag string, pagination *query.Pagination) ([]*Journal, int64, error) {
	filter := Filter{UserID: &userID}
	if keyword != "" {
		filter.Keyword = &keyword
	}
	if tag != "" {
		filter.Tag = &tag
	}

	entries, err := s.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Update applies the provided mutations to an owned entry.
func (s *Service) Update(ctx context.Context, userID uint, publicID string, input UpdateInput) (*Journal, error) {
	entry, err := s.Get(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"title must not be empty", nil, "a530cf87-1b96-4e42-9d8a-27f64c0e1b35")
		}
		entry.Title = *input.Title
	}
	if input.Content != nil {
		if *input.Content == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"content must not be empty", nil, "27d19b40-8f6e-4c53-b2a7-e045d8c3f916")
		}
		entry.Content = *input.Content
	}
	if input.Tags != nil {
		entry.Tags = normalizeTags(*input.Tags)
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.indexEntry(ctx, entry)
	return entry, nil
}

// Delete removes an owned entry and its index mirror.
func (s *Service) Delete(ctx context.Context, userID uint, publicID string) error {
	entry, err := s.Get(ctx, userID, publicID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, entry.ID); err != nil {
		return err
	}

	if s.indexer != nil {
		if err := s.indexer.Remove(ctx, entry.PublicID); err != nil {
			s.log.Warn().Err(err).Str("journal_id", entry.PublicID).Msg("failed to remove journal from index")
		}
	}
	return nil
}

// Similar returns the user's entries most similar to the given text,
// resolved through the external index. Entries the index still knows
// about but the database no longer holds are skipped.
func (s *Service) Similar(ctx context.Context, userID uint, text string, limit int) ([]*Journal, error) {
	if s.indexer == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"similarity index is not configured", nil, "f16b8d29-a473-4e05-9c61-3d28e5f7a094")
	}
	if text == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"query text must not be empty", nil, "0d97c4e8-52ba-4f71-8e36-a1b50d2c69f3")
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	publicIDs, err := s.indexer.Similar(ctx, userID, text, limit)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"similarity search failed", err, "69e2d0b5-4c87-4a13-b9f0-d86c35a1e742")
	}

	entries := make([]*Journal, 0, len(publicIDs))
	for _, publicID := range publicIDs {
		entry, err := s.repo.FindByPublicID(ctx, publicID)
		if err != nil {
			return nil, err
		}
		if entry == nil || entry.UserID != userID {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// normalizeTags trims whitespace, lowercases, and drops empties and
// duplicates while preserving first-seen order.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}

func (s *Service) indexEntry(ctx context.Context, entry *Journal) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.Index(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("journal_id", entry.PublicID).Msg("failed to index journal entry")
	}
}
