package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bikramkgupta/care-circle-journal/services"
)

type CareProfileController struct {
	profiles *services.ProfileService
}

func NewCareProfileController(profiles *services.ProfileService) *CareProfileController {
	return &CareProfileController{profiles: profiles}
}

func (p *CareProfileController) List(c *gin.Context) {
	profiles, err := p.profiles.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

type CreateProfileInput struct {
	Name        string `json:"name" binding:"required"`
	DateOfBirth string `json:"dateOfBirth"`
	Notes       string `json:"notes"`
}

func (p *CareProfileController) Create(c *gin.Context) {
	var input CreateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dob *time.Time
	if input.DateOfBirth != "" {
		dob = parseTimeParam(input.DateOfBirth)
		if dob == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dateOfBirth must be a date"})
			return
		}
	}

	profile, err := p.profiles.Create(c.Request.Context(), currentUserID(c), input.Name, dob, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (p *CareProfileController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := p.profiles.GetByID(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
