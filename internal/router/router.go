package router

import (
	"github.com/gin-gonic/gin"
	"github.com/user/tastebud/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 欢迎与健康检查
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	// ==================== 检索 ====================
	r.GET("/search/:category/:query", h.Search)

	// ==================== 推荐 ====================
	r.GET("/recommend/genre/:category/:genre", h.RecommendGenre)
	r.POST("/recommend/favorites", h.RecommendFavorites)
	r.GET("/recommend/:category/:title", h.Recommend)

	// ==================== 氛围检索 ====================
	r.POST("/vibe", h.RecommendVibe)
}
