package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhaven/quillhaven/domain"
	"github.com/quillhaven/quillhaven/internal/rest/middleware"
	"github.com/quillhaven/quillhaven/internal/rest/request"
	"github.com/quillhaven/quillhaven/internal/rest/response"
)

// ProfileHandler represent the httphandler for profiles and the follow graph
type ProfileHandler struct {
	Service domain.ProfileUsecase
}

func NewProfileHandler(svc domain.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{
		Service: svc,
	}
}

// GetByUsername returns one profile; the Following flag reflects the viewer
func (h *ProfileHandler) GetByUsername(c *gin.Context) {
	username := c.Param("username")

	var viewerID int64
	if v, exists := c.Get(middleware.ContextUserIDKey); exists {
		viewerID = v.(int64)
	}

	ctx := c.Request.Context()
	profile, err := h.Service.GetByUsername(ctx, username, viewerID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewProfileFromDomain(&profile))
}

// FetchOthers lists every profile except the viewer's own
func (h *ProfileHandler) FetchOthers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	profiles, err := h.Service.FetchOthers(ctx, userID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Profile, len(profiles))
	for i := range profiles {
		res[i] = response.NewProfileFromDomain(&profiles[i])
	}
	c.JSON(http.StatusOK, res)
}

// Update modifies the acting user's own profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req request.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile := req.ToDomain()
	ctx := c.Request.Context()
	updated, err := h.Service.Update(ctx, userID, &profile)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewProfileFromDomain(&updated))
}

// ToggleFollow flips the follow edge from the viewer to the named profile
func (h *ProfileHandler) ToggleFollow(c *gin.Context) {
	username := c.Param("username")

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	actor, err := h.Service.GetOwn(ctx, userID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	target, err := h.Service.GetByUsername(ctx, username, userID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	if actor.ID == target.ID {
		c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrSelfFollow.Error()})
		return
	}

	state, err := h.Service.ToggleFollow(ctx, actor.ID, target.ID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": state.String()})
}

// Followers lists the profiles following the given one
func (h *ProfileHandler) Followers(c *gin.Context) {
	ctx := c.Request.Context()
	target, err := h.Service.GetByUsername(ctx, c.Param("username"), 0)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	profiles, err := h.Service.Followers(ctx, target.ID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Profile, len(profiles))
	for i := range profiles {
		res[i] = response.NewProfileFromDomain(&profiles[i])
	}
	c.JSON(http.StatusOK, res)
}

// Following lists the profiles the given one follows
func (h *ProfileHandler) Following(c *gin.Context) {
	ctx := c.Request.Context()
	target, err := h.Service.GetByUsername(ctx, c.Param("username"), 0)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	profiles, err := h.Service.FollowingList(ctx, target.ID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Profile, len(profiles))
	for i := range profiles {
		res[i] = response.NewProfileFromDomain(&profiles[i])
	}
	c.JSON(http.StatusOK, res)
}
