package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillhaven/quillhaven/domain"
	"github.com/quillhaven/quillhaven/internal/rest/response"
	"github.com/sirupsen/logrus"
)

// ReactionHandler routes like/dislike requests to the preference engine.
// The handler resolves the subject (article or comment) before the engine
// runs; the engine itself never looks at subject tables.
type ReactionHandler struct {
	Service    domain.PreferenceUsecase
	CommentSvc domain.CommentUsecase
	BloomRepo  domain.BloomRepository
}

func NewReactionHandler(svc domain.PreferenceUsecase, commentSvc domain.CommentUsecase, bloomRepo domain.BloomRepository) *ReactionHandler {
	return &ReactionHandler{
		Service:    svc,
		CommentSvc: commentSvc,
		BloomRepo:  bloomRepo,
	}
}

// LikeArticle toggles the like on an article
func (h *ReactionHandler) LikeArticle(c *gin.Context) {
	h.reactArticle(c, domain.Like)
}

// DislikeArticle toggles the dislike on an article
func (h *ReactionHandler) DislikeArticle(c *gin.Context) {
	h.reactArticle(c, domain.Dislike)
}

// LikeComment toggles the like on a comment
func (h *ReactionHandler) LikeComment(c *gin.Context) {
	h.reactComment(c, domain.Like)
}

// DislikeComment toggles the dislike on a comment
func (h *ReactionHandler) DislikeComment(c *gin.Context) {
	h.reactComment(c, domain.Dislike)
}

func (h *ReactionHandler) reactArticle(c *gin.Context, value domain.PreferenceValue) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	articleID := int64(idP)
	ctx := c.Request.Context()

	// 布隆过滤器拦截不存在的文章
	exists, err := h.BloomRepo.Exists(ctx, articleID)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says article %d does not exist", articleID)
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	res, err := h.Service.React(ctx, domain.SubjectArticle, articleID, userID, value)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewReactionFromDomain(res))
}

func (h *ReactionHandler) reactComment(c *gin.Context, value domain.PreferenceValue) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	cidP, err := strconv.Atoi(c.Param("cid"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	ctx := c.Request.Context()

	comment, err := h.CommentSvc.GetByID(ctx, int64(cidP))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	if comment.ArticleID != int64(idP) {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	res, err := h.Service.React(ctx, domain.SubjectComment, comment.ID, userID, value)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewReactionFromDomain(res))
}
