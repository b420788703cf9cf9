package services

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bikramkgupta/care-circle-journal/models"
)

// Scheduler runs the periodic summary jobs: daily at 01:00 for the previous
// calendar day, weekly on Sunday at 02:00 for the previous 7-day window.
// Each profile is processed independently; one profile's failure never
// aborts the batch.
type Scheduler struct {
	cron      *cron.Cron
	db        *gorm.DB
	summaries *SummaryService
	log       *zap.SugaredLogger
}

func NewScheduler(db *gorm.DB, summaries *SummaryService, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{cron: cron.New(), db: db, summaries: summaries, log: log}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 1 * * *", func() {
		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		s.RunDailyBatch(context.Background(), yesterday)
	}); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 2 * * 0", func() {
		end := time.Now().UTC().AddDate(0, 0, -1)
		s.RunWeeklyBatch(context.Background(), end)
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunDailyBatch generates the DAILY summary for every profile for one date.
// Profiles with no entries that day are skipped quietly.
func (s *Scheduler) RunDailyBatch(ctx context.Context, date time.Time) {
	dateStr := date.Format(dateLayout)
	s.log.Infow("daily summary batch started", "date", dateStr)

	profiles, err := s.allProfiles(ctx)
	if err != nil {
		s.log.Errorw("daily summary batch: list profiles", "error", err)
		return
	}

	generated := 0
	for i := range profiles {
		_, err := s.summaries.GenerateDailyForProfile(ctx, &profiles[i], dateStr)
		switch {
		case err == nil:
			generated++
		case errors.Is(err, ErrNoEntries):
			// Nothing logged that day; not a failure.
		default:
			s.log.Errorw("daily summary batch: profile failed",
				"profile_id", profiles[i].ID, "date", dateStr, "error", err)
		}
	}
	s.log.Infow("daily summary batch completed", "date", dateStr, "profiles", len(profiles), "generated", generated)
}

// RunWeeklyBatch generates WEEKLY insights for every profile over the seven
// days ending at the given date (inclusive).
func (s *Scheduler) RunWeeklyBatch(ctx context.Context, end time.Time) {
	startStr := end.AddDate(0, 0, -6).Format(dateLayout)
	endStr := end.Format(dateLayout)
	s.log.Infow("weekly insights batch started", "start", startStr, "end", endStr)

	profiles, err := s.allProfiles(ctx)
	if err != nil {
		s.log.Errorw("weekly insights batch: list profiles", "error", err)
		return
	}

	generated := 0
	for i := range profiles {
		_, err := s.summaries.GenerateInsightsForProfile(ctx, &profiles[i], models.PeriodWeekly, startStr, endStr)
		switch {
		case err == nil:
			generated++
		case errors.Is(err, ErrNoEntries):
		default:
			s.log.Errorw("weekly insights batch: profile failed",
				"profile_id", profiles[i].ID, "error", err)
		}
	}
	s.log.Infow("weekly insights batch completed", "profiles", len(profiles), "generated", generated)
}

func (s *Scheduler) allProfiles(ctx context.Context) ([]models.CareProfile, error) {
	profiles := []models.CareProfile{}
	err := s.db.WithContext(ctx).Find(&profiles).Error
	return profiles, err
}
