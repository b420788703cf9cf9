package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bikramkgupta/care-circle-journal/models"
)

const dateLayout = "2006-01-02"

type SummaryService struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	guard    *MembershipGuard
	gen      InsightGenerator
	fallback InsightGenerator
}

func NewSummaryService(db *gorm.DB, log *zap.SugaredLogger, guard *MembershipGuard, gen InsightGenerator) *SummaryService {
	return &SummaryService{db: db, log: log, guard: guard, gen: gen, fallback: NewMockGenerator()}
}

type SummaryFilter struct {
	From       *time.Time
	To         *time.Time
	PeriodType models.PeriodType
}

// dayWindow is the UTC window [00:00:00.000, 23:59:59.999] for a date.
func dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// memberProfile loads a profile with the membership filter folded into the
// query, so callers cannot distinguish "not a member" from "does not exist".
func (s *SummaryService) memberProfile(ctx context.Context, profileID, callerID uuid.UUID) (*models.CareProfile, error) {
	var profile models.CareProfile
	err := s.db.WithContext(ctx).
		Joins("JOIN care_profile_members m ON m.care_profile_id = care_profiles.id").
		Where("care_profiles.id = ? AND m.user_id = ?", profileID, callerID).
		First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAccessDenied
		}
		return nil, err
	}
	return &profile, nil
}

// GenerateDaily produces (or regenerates) the DAILY summary for one date.
func (s *SummaryService) GenerateDaily(ctx context.Context, profileID, callerID uuid.UUID, dateStr string) (*models.AiSummary, error) {
	profile, err := s.memberProfile(ctx, profileID, callerID)
	if err != nil {
		return nil, err
	}
	return s.GenerateDailyForProfile(ctx, profile, dateStr)
}

// GenerateDailyForProfile is the membership-free variant used by the
// scheduler, which acts as the system rather than on behalf of a caller.
func (s *SummaryService) GenerateDailyForProfile(ctx context.Context, profile *models.CareProfile, dateStr string) (*models.AiSummary, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, NewValidationError("date must be YYYY-MM-DD")
	}
	start, end := dayWindow(date)

	entries, err := s.entriesInWindow(ctx, profile.ID, start, end)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	result, err := s.gen.GenerateDailySummary(ctx, profile.Name, dateStr, entries)
	if err != nil {
		s.log.Warnw("insight generator failed, using local fallback",
			"profile_id", profile.ID, "date", dateStr, "error", err)
		result, err = s.fallback.GenerateDailySummary(ctx, profile.Name, dateStr, entries)
		if err != nil {
			return nil, err
		}
	}

	// The DAILY idempotency key pins both window bounds to start-of-day.
	return s.upsert(ctx, profile.ID, models.PeriodDaily, start, start, result)
}

// GenerateInsights produces (or regenerates) a WEEKLY or MONTHLY summary
// over an inclusive date range.
func (s *SummaryService) GenerateInsights(ctx context.Context, profileID, callerID uuid.UUID, periodType models.PeriodType, startStr, endStr string) (*models.AiSummary, error) {
	profile, err := s.memberProfile(ctx, profileID, callerID)
	if err != nil {
		return nil, err
	}
	return s.GenerateInsightsForProfile(ctx, profile, periodType, startStr, endStr)
}

func (s *SummaryService) GenerateInsightsForProfile(ctx context.Context, profile *models.CareProfile, periodType models.PeriodType, startStr, endStr string) (*models.AiSummary, error) {
	if periodType != models.PeriodWeekly && periodType != models.PeriodMonthly {
		return nil, NewValidationError("periodType must be WEEKLY or MONTHLY")
	}
	startDate, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, NewValidationError("startDate must be YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return nil, NewValidationError("endDate must be YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return nil, NewValidationError("endDate must not precede startDate")
	}

	start, _ := dayWindow(startDate)
	periodEnd, windowEnd := dayWindow(endDate)

	entries, err := s.entriesInWindow(ctx, profile.ID, start, windowEnd)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	req := InsightsRequest{
		ProfileName: profile.Name,
		PeriodType:  periodType,
		StartDate:   startStr,
		EndDate:     endStr,
		Entries:     entries,
		Aggregates:  Aggregate(entries),
	}
	result, err := s.gen.GenerateInsights(ctx, req)
	if err != nil {
		s.log.Warnw("insight generator failed, using local fallback",
			"profile_id", profile.ID, "period", periodType, "error", err)
		result, err = s.fallback.GenerateInsights(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	return s.upsert(ctx, profile.ID, periodType, start, periodEnd, result)
}

// List returns a profile's summaries, newest period first.
func (s *SummaryService) List(ctx context.Context, profileID, callerID uuid.UUID, filter SummaryFilter) ([]models.AiSummary, error) {
	ok, err := s.guard.IsMember(ctx, callerID, profileID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	q := s.db.WithContext(ctx).
		Where("care_profile_id = ?", profileID).
		Order("period_start DESC")
	if filter.From != nil {
		q = q.Where("period_start >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("period_end <= ?", *filter.To)
	}
	if filter.PeriodType != "" {
		q = q.Where("period_type = ?", filter.PeriodType)
	}

	summaries := []models.AiSummary{}
	err = q.Find(&summaries).Error
	return summaries, err
}

func (s *SummaryService) entriesInWindow(ctx context.Context, profileID uuid.UUID, start, end time.Time) ([]models.Entry, error) {
	entries := []models.Entry{}
	err := s.db.WithContext(ctx).
		Where("care_profile_id = ? AND timestamp >= ? AND timestamp <= ?", profileID, start, end).
		Order("timestamp ASC").
		Find(&entries).Error
	return entries, err
}

// upsert replaces-or-inserts on the (profile, period type, window) key. The
// unique index makes this safe under concurrent regeneration; the database,
// not application locking, arbitrates the race.
func (s *SummaryService) upsert(ctx context.Context, profileID uuid.UUID, periodType models.PeriodType, periodStart, periodEnd time.Time, result *SummaryResult) (*models.AiSummary, error) {
	summary := models.AiSummary{
		CareProfileID: profileID,
		PeriodType:    periodType,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		SummaryText:   result.SummaryText,
		InsightsJson:  datatypes.JSON(result.Insights),
		ModelName:     result.ModelName,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "care_profile_id"}, {Name: "period_type"},
				{Name: "period_start"}, {Name: "period_end"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"summary_text", "insights_json", "model_name", "updated_at"}),
		}).
		Create(&summary).Error
	if err != nil {
		return nil, err
	}

	// Reload by key: on conflict the insert's generated id is not the row's.
	var stored models.AiSummary
	err = s.db.WithContext(ctx).
		Where("care_profile_id = ? AND period_type = ? AND period_start = ? AND period_end = ?",
			profileID, periodType, periodStart, periodEnd).
		First(&stored).Error
	if err != nil {
		return nil, err
	}

	s.log.Infow("summary stored", "profile_id", profileID, "period", periodType, "period_start", periodStart)
	return &stored, nil
}

// Aggregate computes the per-window statistics handed to the generator:
// entry counts by type, mean mood score (entries without a score excluded;
// undefined when none have one), and the distinct SYMPTOM payload labels.
func Aggregate(entries []models.Entry) EntryAggregates {
	agg := EntryAggregates{
		Total:        len(entries),
		CountsByType: make(map[models.EntryType]int),
	}

	moodSum, moodCount := 0, 0
	seen := map[string]bool{}
	for _, e := range entries {
		agg.CountsByType[e.Type]++
		if e.MoodScore != nil {
			moodSum += *e.MoodScore
			moodCount++
		}
		if e.Type == models.EntrySymptom && len(e.StructuredPayload) > 0 {
			var payload map[string]interface{}
			if err := json.Unmarshal(e.StructuredPayload, &payload); err == nil {
				if label, ok := payload["symptom"].(string); ok && label != "" && !seen[label] {
					seen[label] = true
					agg.Symptoms = append(agg.Symptoms, label)
				}
			}
		}
	}
	if moodCount > 0 {
		agg.MeanMood = float64(moodSum) / float64(moodCount)
		agg.HasMood = true
	}
	return agg
}
