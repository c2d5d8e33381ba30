package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config 应用配置
type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	SiteName    string

	// 外部服务
	TMDBAPIKey        string
	GoogleBooksAPIKey string
	GeminiAPIKey      string
	GeminiModel       string // 生成推荐理由用
	GeminiEmbedModel  string // vibe 检索生成向量用

	// embedding 提供方：gemini 或 ollama
	EmbeddingProvider string
	OllamaHost        string
	OllamaModel       string

	// 每次推荐返回的条数
	TopN int
}

// Load 加载配置
func Load() *Config {
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "tastebud")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	topN, _ := strconv.Atoi(getEnv("RECOMMEND_TOP_N", "5"))
	if topN <= 0 {
		topN = 5
	}

	if getEnv("TMDB_API_KEY", "") == "" {
		fmt.Println("【警告】未设置 TMDB_API_KEY，电影海报将始终返回占位图。")
	}

	return &Config{
		Env:               getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8000"),
		DatabaseURL:       dbURL,
		SiteName:          getEnv("SITE_NAME", "Tastebud"),
		TMDBAPIKey:        getEnv("TMDB_API_KEY", ""),
		GoogleBooksAPIKey: getEnv("GOOGLE_BOOKS_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", "")),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		GeminiEmbedModel:  getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
		OllamaHost:        getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:       getEnv("OLLAMA_MODEL", "nomic-embed-text"),
		TopN:              topN,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
