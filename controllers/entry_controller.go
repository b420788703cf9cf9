package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/bikramkgupta/care-circle-journal/models"
	"github.com/bikramkgupta/care-circle-journal/services"
)

type EntryController struct {
	entries *services.EntryService
}

func NewEntryController(entries *services.EntryService) *EntryController {
	return &EntryController{entries: entries}
}

func (e *EntryController) List(c *gin.Context) {
	profileID, ok := parseUUIDParam(c, "profileId")
	if !ok {
		return
	}

	filter := services.EntryFilter{
		From: parseTimeParam(c.Query("from")),
		To:   parseTimeParam(c.Query("to")),
		Type: models.EntryType(c.Query("type")),
	}

	entries, err := e.entries.List(c.Request.Context(), profileID, currentUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type CreateEntryInput struct {
	Type              string         `json:"type" binding:"required"`
	Timestamp         *time.Time     `json:"timestamp"`
	FreeText          string         `json:"freeText" binding:"required"`
	MoodScore         *int           `json:"moodScore"`
	Tags              datatypes.JSON `json:"tags"`
	StructuredPayload datatypes.JSON `json:"structuredPayload"`
}

func (e *EntryController) Create(c *gin.Context) {
	profileID, ok := parseUUIDParam(c, "profileId")
	if !ok {
		return
	}

	var input CreateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := e.entries.Create(c.Request.Context(), profileID, currentUserID(c), services.CreateEntryInput{
		Type:              models.EntryType(input.Type),
		Timestamp:         input.Timestamp,
		FreeText:          input.FreeText,
		MoodScore:         input.MoodScore,
		Tags:              input.Tags,
		StructuredPayload: input.StructuredPayload,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
