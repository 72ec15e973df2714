package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillhaven/quillhaven/domain"
	"github.com/quillhaven/quillhaven/internal/rest/request"
	"github.com/quillhaven/quillhaven/internal/rest/response"
)

// RatingHandler represent the httphandler for article ratings
type RatingHandler struct {
	Service domain.RatingUsecase
}

func NewRatingHandler(svc domain.RatingUsecase) *RatingHandler {
	return &RatingHandler{
		Service: svc,
	}
}

// Rate scores an article 1-5; rating again replaces the previous score
func (h *RatingHandler) Rate(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	var req request.Rating
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	report, err := h.Service.Rate(ctx, int64(idP), userID, req.Score)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewRatingFromDomain(report))
}

// Report returns the average score and rating count of an article
func (h *RatingHandler) Report(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	ctx := c.Request.Context()
	report, err := h.Service.Report(ctx, int64(idP))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewRatingFromDomain(report))
}
