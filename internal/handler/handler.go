package handler

import (
	"time"

	"github.com/user/tastebud/internal/config"
	"github.com/user/tastebud/internal/service"
	"github.com/user/tastebud/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Config      *config.Config
	Recommender *service.RecommendationService
}

// NewHandler 创建处理器并装配推荐服务的全部依赖
func NewHandler(cfg *config.Config, catalogs *service.Catalogs) *Handler {
	// 海报/封面/推荐理由共用一个记忆化缓存
	cache := utils.NewEnrichmentCache()

	enricher := service.NewEnricher(cache, cfg.TMDBAPIKey, cfg.GoogleBooksAPIKey)

	explainer := service.NewExplainer(cache, func(prompt string) (string, error) {
		return utils.GenerateGeminiText(cfg.GeminiAPIKey, cfg.GeminiModel, prompt)
	})

	// vibe 检索的向量提供方可切换，本地开发用 Ollama 免去 API Key
	var embed service.Embedder
	if cfg.EmbeddingProvider == "ollama" {
		embed = func(text string) ([]float32, error) {
			return utils.GenerateOllamaEmbedding(cfg.OllamaHost, cfg.OllamaModel, text)
		}
	} else {
		embed = func(text string) ([]float32, error) {
			return utils.GenerateGeminiEmbedding(cfg.GeminiAPIKey, cfg.GeminiEmbedModel, text)
		}
	}

	suggest := utils.NewSuggestCache(1000, 10*time.Minute)

	recommender := service.NewRecommendationService(catalogs, enricher, explainer, embed, cfg.TopN, suggest)

	return &Handler{
		Config:      cfg,
		Recommender: recommender,
	}
}
