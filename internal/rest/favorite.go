package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillhaven/quillhaven/domain"
	"github.com/quillhaven/quillhaven/internal/rest/response"
)

// FavoriteHandler represent the httphandler for favorites
type FavoriteHandler struct {
	Service domain.FavoriteUsecase
}

func NewFavoriteHandler(svc domain.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{
		Service: svc,
	}
}

// Favorite marks an article as favorited by the acting user
func (h *FavoriteHandler) Favorite(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.Service.Favorite(ctx, int64(idP), userID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "favorited"})
}

// Unfavorite removes the mark again
func (h *FavoriteHandler) Unfavorite(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.Service.Unfavorite(ctx, int64(idP), userID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// FetchOwn lists the acting user's favorited articles
func (h *FavoriteHandler) FetchOwn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	articles, err := h.Service.FetchOwn(ctx, userID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Article, len(articles))
	for i := range articles {
		res[i] = response.NewArticleFromDomain(&articles[i])
	}
	c.JSON(http.StatusOK, res)
}
