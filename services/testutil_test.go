package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bikramkgupta/care-circle-journal/models"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CareProfile{},
		&models.CareProfileMember{},
		&models.Entry{},
		&models.MediaAsset{},
		&models.AiSummary{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x", Name: "Test User"}
	require.NoError(t, db.Create(u).Error)
	return u
}

// seedProfile creates a profile with its owner enrolled as OWNER.
func seedProfile(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.CareProfile {
	t.Helper()
	p := &models.CareProfile{OwnerID: owner.ID, Name: name}
	require.NoError(t, db.Create(p).Error)
	addMember(t, db, p, owner, models.RoleOwner)
	return p
}

func addMember(t *testing.T, db *gorm.DB, profile *models.CareProfile, user *models.User, role models.MemberRole) {
	t.Helper()
	m := &models.CareProfileMember{CareProfileID: profile.ID, UserID: user.ID, Role: role}
	require.NoError(t, db.Create(m).Error)
}

func seedEntry(t *testing.T, db *gorm.DB, profile *models.CareProfile, author *models.User, entryType models.EntryType, ts time.Time, mood *int, payload string) *models.Entry {
	t.Helper()
	e := &models.Entry{
		CareProfileID: profile.ID,
		AuthorID:      author.ID,
		Type:          entryType,
		Timestamp:     ts,
		FreeText:      "seeded " + string(entryType),
	}
	e.MoodScore = mood
	if payload != "" {
		e.StructuredPayload = datatypes.JSON(payload)
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func intPtr(n int) *int { return &n }

// stubGenerator lets tests control generator output and observe the
// aggregates the summary service hands over.
type stubGenerator struct {
	err     error
	text    string
	model   string
	lastReq *InsightsRequest
}

func (s *stubGenerator) result() *SummaryResult {
	insights, _ := json.Marshal(DailyInsights{
		Positives:          []string{"p"},
		Concerns:           []string{"c"},
		Flags:              []string{},
		BehavioralPatterns: []string{},
	})
	model := s.model
	if model == "" {
		model = "stub-model"
	}
	return &SummaryResult{SummaryText: s.text, Insights: insights, ModelName: model}
}

func (s *stubGenerator) GenerateDailySummary(ctx context.Context, profileName, date string, entries []models.Entry) (*SummaryResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result(), nil
}

func (s *stubGenerator) GenerateInsights(ctx context.Context, req InsightsRequest) (*SummaryResult, error) {
	s.lastReq = &req
	if s.err != nil {
		return nil, s.err
	}
	return s.result(), nil
}
