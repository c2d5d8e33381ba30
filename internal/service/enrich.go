package service

import (
	"fmt"
	"log"
	"time"

	"github.com/user/tastebud/internal/utils"
)

// 上游拿不到图片时的兜底占位图，占位图不写缓存
const (
	posterPlaceholder = "https://via.placeholder.com/500x750.png?text=No+Poster+Found"
	coverPlaceholder  = "https://via.placeholder.com/500x750.png?text=No+Cover+Found"
)

// tmdbMovieResponse TMDB 电影详情里我们关心的字段
type tmdbMovieResponse struct {
	PosterPath string `json:"poster_path"`
}

// booksVolumeResponse Google Books 检索响应里我们关心的字段
type booksVolumeResponse struct {
	Items []struct {
		VolumeInfo struct {
			ImageLinks struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Enricher 推荐结果的图片补全（电影海报 / 图书封面）
// 成功结果按 tmdb_id / isbn 记忆化，失败只返回占位图不缓存
type Enricher struct {
	cache *utils.EnrichmentCache
	http  *utils.HTTPClient

	tmdbAPIKey   string
	tmdbBaseURL  string
	imageBaseURL string

	booksAPIKey  string
	booksBaseURL string

	retryAttempts int
	retryBackoff  time.Duration
}

// NewEnricher 创建图片补全器
func NewEnricher(cache *utils.EnrichmentCache, tmdbAPIKey, booksAPIKey string) *Enricher {
	return &Enricher{
		cache:         cache,
		http:          utils.NewHTTPClient(),
		tmdbAPIKey:    tmdbAPIKey,
		tmdbBaseURL:   "https://api.themoviedb.org/3",
		imageBaseURL:  "https://image.tmdb.org/t/p/w500",
		booksAPIKey:   booksAPIKey,
		booksBaseURL:  "https://www.googleapis.com/books/v1",
		retryAttempts: 3,
		retryBackoff:  time.Second,
	}
}

// PosterURL 取电影海报地址，任何失败都降级为占位图
func (e *Enricher) PosterURL(tmdbID int64) string {
	key := fmt.Sprintf("%d", tmdbID)
	url, err := e.cache.GetOrCompute(key, func() (string, error) {
		return e.fetchPoster(tmdbID)
	})
	if err != nil {
		log.Printf("[Enrich] 获取海报失败 tmdb_id=%d: %v", tmdbID, err)
		return posterPlaceholder
	}
	return url
}

// fetchPoster 调 TMDB 详情接口，对限流和临时性错误重试
func (e *Enricher) fetchPoster(tmdbID int64) (string, error) {
	url := fmt.Sprintf("%s/movie/%d?api_key=%s&language=en-US", e.tmdbBaseURL, tmdbID, e.tmdbAPIKey)

	var resp tmdbMovieResponse
	if err := e.http.GetJSONRetry(url, &resp, e.retryAttempts, e.retryBackoff); err != nil {
		return "", err
	}
	if resp.PosterPath == "" {
		return "", fmt.Errorf("电影 %d 没有海报", tmdbID)
	}
	return e.imageBaseURL + resp.PosterPath, nil
}

// CoverURL 取图书封面地址，任何失败都降级为占位图
func (e *Enricher) CoverURL(isbn string) string {
	if isbn == "" {
		return coverPlaceholder
	}
	url, err := e.cache.GetOrCompute(isbn, func() (string, error) {
		return e.fetchCover(isbn)
	})
	if err != nil {
		log.Printf("[Enrich] 获取封面失败 isbn=%s: %v", isbn, err)
		return coverPlaceholder
	}
	return url
}

// fetchCover 按 ISBN 查 Google Books，取第一个结果的缩略图
func (e *Enricher) fetchCover(isbn string) (string, error) {
	url := fmt.Sprintf("%s/volumes?q=isbn:%s&key=%s", e.booksBaseURL, isbn, e.booksAPIKey)

	var resp booksVolumeResponse
	if err := e.http.GetJSON(url, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("图书 %s 无检索结果", isbn)
	}
	thumb := resp.Items[0].VolumeInfo.ImageLinks.Thumbnail
	if thumb == "" {
		return "", fmt.Errorf("图书 %s 没有封面", isbn)
	}
	return thumb, nil
}
