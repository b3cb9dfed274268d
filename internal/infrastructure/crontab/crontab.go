package crontab

import (
	"context"
	"fmt"
	"time"

	"friendbot/companion-api/internal/config"
	"friendbot/companion-api/internal/domain/journal"
	"friendbot/companion-api/internal/domain/query"
	"friendbot/companion-api/internal/infrastructure/logger"
	"friendbot/companion-api/internal/utils/platformerrors"

	"github.com/mileusna/crontab"
)

const (
	DefaultIndexSyncInterval = 15               // in minutes
	CronJobTimeout           = 10 * time.Minute // Timeout for each cron job execution
	reconcileBatchSize       = 200
)

// Crontab runs the periodic background jobs: journal index reconciliation
// and config reload.
type Crontab struct {
	ctab        *crontab.Crontab
	journalRepo journal.Repository
	indexer     journal.Indexer
}

func NewCrontab(journalRepo journal.Repository, indexer journal.Indexer) *Crontab {
	return &Crontab{
		ctab:        crontab.New(),
		journalRepo: journalRepo,
		indexer:     indexer,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	cfg := config.GetGlobal()
	if c.indexer != nil && cfg != nil && cfg.JournalIndexEnabled {
		// execute once on server start
		c.reconcileIndex(ctx)

		syncInterval := cfg.IndexSyncIntervalMinute
		if syncInterval <= 0 {
			syncInterval = DefaultIndexSyncInterval
		}

		cronExpr := fmt.Sprintf("*/%d * * * *", syncInterval)
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.reconcileIndex(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add index sync job")
		}
		log.Warn().Msgf("Journal index sync scheduled: every %d minute(s)", syncInterval)
	}

	// Schedule environment reload job
	if err := c.ctab.AddJob("* * * * *", func() {
		config.Load()
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add env reload job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

// reconcileIndex re-pushes every journal entry into the similarity index.
// The index treats writes as upserts, so replaying the full table repairs
// entries missed while the index was unavailable.
func (c *Crontab) reconcileIndex(ctx context.Context) {
	log := logger.GetLogger()

	var synced, failed int
	for offset := 0; ; offset += reconcileBatchSize {
		limit := reconcileBatchSize
		currentOffset := offset
		entries, err := c.journalRepo.FindByFilter(ctx, journal.Filter{}, &query.Pagination{
			Limit:  &limit,
			Offset: &currentOffset,
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to list journal entries for index sync")
			return
		}
		if len(entries) == 0 {
			break
		}

		for _, entry := range entries {
			if err := c.indexer.Index(ctx, entry); err != nil {
				failed++
				log.Warn().Err(err).Str("journal_id", entry.PublicID).Msg("Failed to sync journal entry")
				continue
			}
			synced++
		}
	}

	if synced > 0 || failed > 0 {
		log.Info().Int("synced", synced).Int("failed", failed).Msg("Journal index reconciliation finished")
	}
}
