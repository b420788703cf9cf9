package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bikramkgupta/care-circle-journal/models"
	"github.com/bikramkgupta/care-circle-journal/services"
)

type SummaryController struct {
	summaries *services.SummaryService
}

func NewSummaryController(summaries *services.SummaryService) *SummaryController {
	return &SummaryController{summaries: summaries}
}

type DailySummaryInput struct {
	Date string `json:"date" binding:"required"`
}

func (s *SummaryController) GenerateDaily(c *gin.Context) {
	profileID, ok := parseUUIDParam(c, "profileId")
	if !ok {
		return
	}

	var input DailySummaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := s.summaries.GenerateDaily(c.Request.Context(), profileID, currentUserID(c), input.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type InsightsInput struct {
	PeriodType string `json:"periodType" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
}

func (s *SummaryController) GenerateInsights(c *gin.Context) {
	profileID, ok := parseUUIDParam(c, "profileId")
	if !ok {
		return
	}

	var input InsightsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := s.summaries.GenerateInsights(c.Request.Context(), profileID, currentUserID(c),
		models.PeriodType(input.PeriodType), input.StartDate, input.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *SummaryController) List(c *gin.Context) {
	profileID, ok := parseUUIDParam(c, "profileId")
	if !ok {
		return
	}

	filter := services.SummaryFilter{
		From:       parseTimeParam(c.Query("from")),
		To:         parseTimeParam(c.Query("to")),
		PeriodType: models.PeriodType(c.Query("type")),
	}

	summaries, err := s.summaries.List(c.Request.Context(), profileID, currentUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}
