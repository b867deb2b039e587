package handlers

import (
	"net/http"

	"github.com/ctgula/vibe-sub002/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetMe godoc
// @Summary      Get own profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.Profile
// @Failure      404 {object} ErrorResponse
// @Router       /api/profiles/me [get]
func (h *ProfileHandler) GetMe(c *gin.Context) {
	profileID := c.MustGet("profile_id").(uuid.UUID)
	profile, err := h.profileService.GetProfile(profileID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMe godoc
// @Summary      Update own profile
// @Description  Partial update; guest updates stay scoped to guest rows
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.ProfileUpdate true "Fields to update"
// @Success      200 {object} models.Profile
// @Failure      400 {object} ErrorResponse
// @Router       /api/profiles/me [put]
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	profileID := c.MustGet("profile_id").(uuid.UUID)
	isGuest := c.GetBool("is_guest")

	var update services.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := h.profileService.UpdateProfile(profileID, isGuest, update)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfile godoc
// @Summary      Get a profile by id
// @Tags         profiles
// @Produce      json
// @Param        id path string true "Profile ID"
// @Success      200 {object} models.Profile
// @Failure      404 {object} ErrorResponse
// @Router       /api/profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid profile id"})
		return
	}

	profile, err := h.profileService.GetProfile(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
