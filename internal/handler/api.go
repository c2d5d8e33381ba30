package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/tastebud/internal/model"
	"github.com/user/tastebud/internal/service"
	"github.com/user/tastebud/internal/utils"
)

// 面向用户的错误文案沿用原线上服务的英文措辞

// notFoundMessage 标题未命中时的文案
func notFoundMessage(category string) string {
	switch category {
	case model.CategoryBook:
		return "Book not found"
	case model.CategoryMusic:
		return "Track not found"
	default:
		return "Movie not found"
	}
}

// singularNoun 类目在英文文案里的单数名词
func singularNoun(category string) string {
	switch category {
	case model.CategoryBook:
		return "book"
	case model.CategoryMusic:
		return "track"
	default:
		return "movie"
	}
}

// pluralNoun 类目在英文文案里的复数名词
func pluralNoun(category string) string {
	switch category {
	case model.CategoryBook:
		return "books"
	case model.CategoryMusic:
		return "tracks"
	default:
		return "movies"
	}
}

// Root API 欢迎信息
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Recommender API!"})
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Search 标题自动补全
func (h *Handler) Search(c *gin.Context) {
	category := c.Param("category")
	query := c.Param("query")

	titles, err := h.Recommender.Autocomplete(category, query)
	if err != nil {
		utils.BadRequest(c, "Invalid category: "+category)
		return
	}
	utils.Results(c, titles)
}

// Recommend 基于单个标题的相似推荐
func (h *Handler) Recommend(c *gin.Context) {
	category := c.Param("category")
	title := c.Param("title")

	recs, explanation, err := h.Recommender.Recommend(category, title)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownCategory):
			utils.BadRequest(c, "Invalid category: "+category)
		case errors.Is(err, service.ErrNotFound):
			utils.Fail(c, notFoundMessage(category))
		case errors.Is(err, service.ErrNoRecommendations):
			utils.Fail(c, fmt.Sprintf("Could not find recommendations for this %s.", singularNoun(category)))
		default:
			log.Printf("[API] 推荐失败 category=%s title=%s: %v", category, title, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	utils.Recommendations(c, recs, explanation)
}

// favoritesRequest 收藏夹聚合推荐请求体
type favoritesRequest struct {
	Category string   `json:"category"`
	Titles   []string `json:"titles"`
}

// RecommendFavorites 收藏夹聚合推荐
func (h *Handler) RecommendFavorites(c *gin.Context) {
	var req favoritesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	if req.Category == "" {
		req.Category = model.CategoryMovie
	}

	recs, explanation, err := h.Recommender.RecommendForFavorites(req.Category, req.Titles)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownCategory):
			utils.BadRequest(c, "Invalid category: "+req.Category)
		case errors.Is(err, service.ErrEmptyInput):
			utils.Fail(c, "No titles provided.")
		case errors.Is(err, service.ErrNoRecommendations):
			utils.Fail(c, "Could not find recommendations for your favorites.")
		default:
			log.Printf("[API] 收藏夹推荐失败 category=%s: %v", req.Category, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	utils.Recommendations(c, recs, explanation)
}

// vibeRequest 氛围检索请求体
type vibeRequest struct {
	VibeText string `json:"vibe_text"`
}

// RecommendVibe 按自由描述文本推荐电影
func (h *Handler) RecommendVibe(c *gin.Context) {
	var req vibeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VibeText == "" {
		utils.BadRequest(c, "vibe_text is required")
		return
	}

	recs, explanation, err := h.Recommender.RecommendByVibe(req.VibeText)
	if err != nil {
		if errors.Is(err, service.ErrNoRecommendations) {
			utils.Fail(c, "Could not find any matches for that description.")
			return
		}
		log.Printf("[API] 氛围检索失败: %v", err)
		utils.Fail(c, "Could not find any matches for that description.")
		return
	}
	utils.Recommendations(c, recs, explanation)
}

// RecommendGenre 按类型随机推荐
func (h *Handler) RecommendGenre(c *gin.Context) {
	category := c.Param("category")
	genre := c.Param("genre")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	recs, explanation, err := h.Recommender.RandomByGenre(category, genre, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownCategory):
			utils.BadRequest(c, "Invalid category: "+category)
		case errors.Is(err, service.ErrNoRecommendations):
			utils.Fail(c, fmt.Sprintf("No %s found for genre: %s", pluralNoun(category), genre))
		default:
			log.Printf("[API] 类型推荐失败 category=%s genre=%s: %v", category, genre, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	utils.Recommendations(c, recs, explanation)
}
