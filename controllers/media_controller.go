package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bikramkgupta/care-circle-journal/services"
)

type MediaController struct {
	media *services.MediaService
}

func NewMediaController(media *services.MediaService) *MediaController {
	return &MediaController{media: media}
}

type PresignInput struct {
	ProfileID uuid.UUID `json:"profileId" binding:"required"`
	EntryID   uuid.UUID `json:"entryId" binding:"required"`
	Type      string    `json:"type"`
	MimeType  string    `json:"mimeType" binding:"required"`
	Extension string    `json:"extension" binding:"required"`
}

func (m *MediaController) Presign(c *gin.Context) {
	var input PresignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := m.media.Presign(c.Request.Context(), currentUserID(c), services.PresignInput{
		ProfileID: input.ProfileID,
		EntryID:   input.EntryID,
		Type:      input.Type,
		MimeType:  input.MimeType,
		Extension: input.Extension,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (m *MediaController) GetURL(c *gin.Context) {
	mediaID, ok := parseUUIDParam(c, "mediaId")
	if !ok {
		return
	}

	url, err := m.media.GetURL(c.Request.Context(), currentUserID(c), mediaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
