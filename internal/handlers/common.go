package handlers

import (
	"errors"
	"net/http"

	"github.com/ctgula/vibe-sub002/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// currentIdentity rebuilds the caller's room identity from the claims
// the auth middleware stored on the context.
func currentIdentity(c *gin.Context) services.Identity {
	profileID := c.MustGet("profile_id").(uuid.UUID)
	if c.GetBool("is_guest") {
		return services.GuestIdentity(profileID)
	}
	return services.UserIdentity(profileID)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrParticipantNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotHost),
		errors.Is(err, services.ErrNotCreator):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrRoomClosed),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrIdentityRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
}
