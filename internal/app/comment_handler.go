package app

import (
	"net/http"

	"blogapi/internal/middleware"
	"blogapi/internal/service"
	"blogapi/internal/util"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type createCommentRequest struct {
	Content  string  `json:"content" binding:"required,min=8,max=1000"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required,min=8,max=1000"`
}

// CreateComment handles adding a comment or an answer under an article
// POST /api/v1/articles/:id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.AddComment(
		middleware.PrincipalFrom(c), c.Param("id"), req.Content, req.ParentID)
	if err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Comment created successfully", gin.H{"comment": comment})
}

// GetComment handles getting a comment by ID
// GET /api/v1/comments/:id
func (h *CommentHandler) GetComment(c *gin.Context) {
	comment, err := h.commentService.GetComment(middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Comment retrieved successfully", gin.H{"comment": comment})
}

// GetComments handles getting the full comment tree of an article
// GET /api/v1/articles/:id/comments
func (h *CommentHandler) GetComments(c *gin.Context) {
	comments, err := h.commentService.GetComments(middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Comments retrieved successfully", gin.H{"comments": comments})
}

// UpdateComment handles rewriting a comment's content
// PUT /api/v1/comments/:id
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var req updateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.UpdateComment(middleware.PrincipalFrom(c), c.Param("id"), req.Content)
	if err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Comment updated successfully", gin.H{"comment": comment})
}

// DeleteComment handles tombstoning a comment
// DELETE /api/v1/comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.commentService.DeleteComment(middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Comment deleted successfully", nil)
}

// DeleteAllComments handles removing the whole comment tree of an article
// DELETE /api/v1/articles/:id/comments
func (h *CommentHandler) DeleteAllComments(c *gin.Context) {
	if err := h.commentService.DeleteAllComments(middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Comments deleted successfully", nil)
}

// RateComment handles the like toggle on a comment
// POST /api/v1/comments/:id/rate
func (h *CommentHandler) RateComment(c *gin.Context) {
	var req rateRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.commentService.RateComment(middleware.PrincipalFrom(c), c.Param("id"), req.State); err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Comment rated successfully", nil)
}
