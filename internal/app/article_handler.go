package app

import (
	"net/http"
	"strconv"

	"blogapi/internal/middleware"
	"blogapi/internal/service"
	"blogapi/internal/util"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService *service.ArticleService
}

func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

type articleRequest struct {
	Title   string   `json:"title" binding:"required,min=8,max=255"`
	Content string   `json:"content" binding:"required,min=32,max=32000"`
	State   string   `json:"state" binding:"omitempty,oneof=draft published archived"`
	Tags    []string `json:"tags"`
}

type rateRequest struct {
	State string `json:"state" binding:"required,oneof=like neutral"`
}

// CreateArticle handles article creation
// POST /api/v1/articles
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req articleRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.articleService.CreateArticle(middleware.PrincipalFrom(c), service.ArticleInput{
		Title:   req.Title,
		Content: req.Content,
		State:   req.State,
		Tags:    req.Tags,
	})
	if err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Article created successfully", gin.H{"article": article})
}

// GetArticle handles getting an article by ID
// GET /api/v1/articles/:id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	article, err := h.articleService.GetArticle(middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Article retrieved successfully", gin.H{"article": article})
}

// GetArticles handles listing articles
// GET /api/v1/articles
func (h *ArticleHandler) GetArticles(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		util.BadRequest(c, "limit must be a number")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		util.BadRequest(c, "offset must be a number")
		return
	}

	articles, total, err := h.articleService.GetArticles(middleware.PrincipalFrom(c), service.ArticleListQuery{
		Limit:    limit,
		Offset:   offset,
		OrderBy:  c.Query("order_by"),
		State:    c.Query("state"),
		AuthorID: c.Query("author_id"),
		Search:   c.Query("search"),
	})
	if err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Articles retrieved successfully", gin.H{
		"articles": articles,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// UpdateArticle handles updating an article
// PUT /api/v1/articles/:id
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	var req articleRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.articleService.UpdateArticle(middleware.PrincipalFrom(c), c.Param("id"), service.ArticleInput{
		Title:   req.Title,
		Content: req.Content,
		State:   req.State,
		Tags:    req.Tags,
	})
	if err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Article updated successfully", gin.H{"article": article})
}

// DeleteArticle handles deleting an article with its comments and likes
// DELETE /api/v1/articles/:id
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	if err := h.articleService.DeleteArticle(middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Article deleted successfully", nil)
}

// RateArticle handles the like toggle on an article
// POST /api/v1/articles/:id/rate
func (h *ArticleHandler) RateArticle(c *gin.Context) {
	var req rateRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.articleService.RateArticle(middleware.PrincipalFrom(c), c.Param("id"), req.State); err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Article rated successfully", nil)
}
