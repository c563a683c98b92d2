package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/plasma-remote/pkg/api/types"
	"github.com/urmzd/plasma-remote/pkg/db"
)

// ProfilesHandler lists the stored profiles. Switching happens at startup
// with the -profile flag, since every component is wired to one profile.
type ProfilesHandler struct {
	store db.ProfileStore
}

// NewProfilesHandler creates a new profiles handler
func NewProfilesHandler(store db.ProfileStore) *ProfilesHandler {
	return &ProfilesHandler{store: store}
}

// ListProfiles handles GET /profiles
// @Summary      List profiles
// @Description  Returns every stored profile and marks the one this server runs with
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  types.ProfilesResponse
// @Failure      500  {object}  types.ErrorResponse
// @Failure      503  {object}  types.ErrorResponse  "No profile store configured"
// @Router       /profiles [get]
func (h *ProfilesHandler) ListProfiles(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
			Error:   "profiles_unavailable",
			Message: "No profile store configured",
		})
		return
	}

	profiles, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}

	out := make([]types.ProfileInfo, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, types.ProfileInfo{
			ID:       p.ID,
			Name:     p.Name,
			Timezone: p.Timezone,
			Active:   p.IsActive,
		})
	}
	c.JSON(http.StatusOK, types.ProfilesResponse{Profiles: out, Count: len(out)})
}
