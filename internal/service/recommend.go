package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/user/tastebud/internal/model"
	"github.com/user/tastebud/internal/utils"
)

// 氛围检索的 embedding 提示词前缀，必须与构建目录向量时的任务描述一致
const vibePromptPrefix = "Represent this movie vibe for semantic search: "

// 自动补全最少输入长度与最大返回条数
const (
	suggestMinChars = 3
	suggestLimit    = 10
)

// ImageProvider 推荐结果的图片来源（Enricher 实现）
type ImageProvider interface {
	PosterURL(tmdbID int64) string
	CoverURL(isbn string) string
}

// ExplanationProvider 推荐理由来源（Explainer 实现）
type ExplanationProvider interface {
	Explain(category, original, recommended string, multi bool) string
}

// Embedder 把自由文本转成与目录同空间的向量
type Embedder func(text string) ([]float32, error)

// Recommendation 单条推荐结果，各类目携带自己的元数据字段
type Recommendation struct {
	Title      string   `json:"title"`
	Genres     []string `json:"genres,omitempty"`
	Authors    string   `json:"authors,omitempty"`
	PosterURL  string   `json:"posterUrl,omitempty"`
	CoverURL   string   `json:"coverUrl,omitempty"`
	Similarity float64  `json:"similarity"`
}

// RecommendationService 三类目推荐的统一入口
type RecommendationService struct {
	catalogs *Catalogs
	images   ImageProvider
	explain  ExplanationProvider
	embed    Embedder
	topN     int
	suggest  *utils.SuggestCache
}

// NewRecommendationService 创建推荐服务
func NewRecommendationService(catalogs *Catalogs, images ImageProvider, explain ExplanationProvider, embed Embedder, topN int, suggest *utils.SuggestCache) *RecommendationService {
	return &RecommendationService{
		catalogs: catalogs,
		images:   images,
		explain:  explain,
		embed:    embed,
		topN:     topN,
		suggest:  suggest,
	}
}

// resolveTitle 把用户输入的自由文本解析为目录条目
// 电影精确匹配检索键；图书按子串取首个匹配；
// 音乐先去掉 " - 歌手" 后缀再精确匹配
func (s *RecommendationService) resolveTitle(cat *Catalog, raw string) (model.CatalogItem, error) {
	switch cat.Category() {
	case model.CategoryBook:
		matches := cat.LookupContains(NormalizeTitle(raw))
		if len(matches) == 0 {
			return nil, ErrNotFound
		}
		return matches[0], nil
	case model.CategoryMusic:
		name := raw
		if idx := strings.Index(raw, " - "); idx >= 0 {
			name = raw[:idx]
		}
		item, ok := cat.LookupExact(NormalizeTitle(name))
		if !ok {
			return nil, ErrNotFound
		}
		return item, nil
	default:
		item, ok := cat.LookupExact(NormalizeTitle(raw))
		if !ok {
			return nil, ErrNotFound
		}
		return item, nil
	}
}

// displayLabel 推荐列表里的展示文案，音乐拼成 "曲名 - 歌手"
func displayLabel(item model.CatalogItem) string {
	if t, ok := item.(*model.Track); ok {
		return t.TrackName + " - " + t.ArtistName
	}
	return item.DisplayTitle()
}

// decorate 给排序结果补上图片地址并转成响应结构
func (s *RecommendationService) decorate(scored []ScoredItem) []Recommendation {
	recs := make([]Recommendation, 0, len(scored))
	for _, sc := range scored {
		rec := Recommendation{
			Title:      displayLabel(sc.Item),
			Similarity: sc.Score,
		}
		switch it := sc.Item.(type) {
		case *model.Movie:
			rec.Genres = it.Genres
			rec.PosterURL = s.images.PosterURL(it.TmdbID)
		case *model.Book:
			rec.Authors = it.Authors
			rec.CoverURL = s.images.CoverURL(it.ISBN)
		}
		recs = append(recs, rec)
	}
	return recs
}

// Recommend 基于单个标题的相似推荐
// 返回推荐列表和针对首条推荐的理由
func (s *RecommendationService) Recommend(category, title string) ([]Recommendation, string, error) {
	cat, ok := s.catalogs.ByCategory(category)
	if !ok {
		return nil, "", ErrUnknownCategory
	}

	item, err := s.resolveTitle(cat, title)
	if err != nil {
		return nil, "", err
	}

	scored := Rank(item.Vector(), cat.Items(), item.ItemID(), s.topN)
	if len(scored) == 0 {
		return nil, "", ErrNoRecommendations
	}

	explanation := s.explain.Explain(category, displayLabel(item), displayLabel(scored[0].Item), false)
	return s.decorate(scored), explanation, nil
}

// RecommendForFavorites 收藏夹聚合推荐：对能解析的标题取向量均值做检索
// 解析失败的标题跳过；全部失败返回 ErrNoRecommendations；不排除收藏条目自身
func (s *RecommendationService) RecommendForFavorites(category string, titles []string) ([]Recommendation, string, error) {
	cat, ok := s.catalogs.ByCategory(category)
	if !ok {
		return nil, "", ErrUnknownCategory
	}
	if len(titles) == 0 {
		return nil, "", ErrEmptyInput
	}

	var resolved []model.CatalogItem
	for _, title := range titles {
		item, err := s.resolveTitle(cat, title)
		if err != nil {
			continue
		}
		resolved = append(resolved, item)
	}
	if len(resolved) == 0 {
		return nil, "", ErrNoRecommendations
	}

	query := meanVector(resolved, cat.Dim())
	scored := Rank(query, cat.Items(), "", s.topN)
	if len(scored) == 0 {
		return nil, "", ErrNoRecommendations
	}

	labels := make([]string, 0, len(resolved))
	for _, item := range resolved {
		labels = append(labels, displayLabel(item))
	}
	explanation := s.explain.Explain(category, strings.Join(labels, ", "), displayLabel(scored[0].Item), len(labels) > 1)
	return s.decorate(scored), explanation, nil
}

// meanVector 各维取算术平均
func meanVector(items []model.CatalogItem, dim int) []float32 {
	sum := make([]float64, dim)
	for _, item := range items {
		for i, v := range item.Vector() {
			sum[i] += float64(v)
		}
	}
	mean := make([]float32, dim)
	for i := range sum {
		mean[i] = float32(sum[i] / float64(len(items)))
	}
	return mean
}

// RecommendByVibe 把自由描述文本嵌入后在电影目录里做相似检索
// 目前只支持电影（目录向量与该提示词配套训练）
func (s *RecommendationService) RecommendByVibe(description string) ([]Recommendation, string, error) {
	cat := s.catalogs.Movies

	query, err := s.embed(vibePromptPrefix + description)
	if err != nil {
		return nil, "", fmt.Errorf("生成向量失败: %w", err)
	}
	if len(query) != cat.Dim() {
		return nil, "", fmt.Errorf("向量维度不匹配: 得到 %d 维，目录为 %d 维", len(query), cat.Dim())
	}

	scored := Rank(query, cat.Items(), "", s.topN)
	if len(scored) == 0 {
		return nil, "", ErrNoRecommendations
	}

	explanation := fmt.Sprintf("Here are some movies that match the vibe: \"%s\"", description)
	return s.decorate(scored), explanation, nil
}

// RandomByGenre 按类型随机抽样
func (s *RecommendationService) RandomByGenre(category, genre string, limit int) ([]Recommendation, string, error) {
	cat, ok := s.catalogs.ByCategory(category)
	if !ok {
		return nil, "", ErrUnknownCategory
	}

	picked := cat.SampleByGenre(genre, limit)
	if len(picked) == 0 {
		return nil, "", ErrNoRecommendations
	}

	scored := make([]ScoredItem, 0, len(picked))
	for _, item := range picked {
		scored = append(scored, ScoredItem{Item: item})
	}
	explanation := fmt.Sprintf("Here are %d random %s %s from our collection.", len(picked), genre, pluralNoun(category))
	return s.decorate(scored), explanation, nil
}

// Autocomplete 标题自动补全，输入不足 3 个字符直接返回空
// 结果按类目+检索键做 LRU 缓存
func (s *RecommendationService) Autocomplete(category, prefix string) ([]string, error) {
	cat, ok := s.catalogs.ByCategory(category)
	if !ok {
		return nil, ErrUnknownCategory
	}
	if utf8.RuneCountInString(strings.TrimSpace(prefix)) < suggestMinChars {
		return []string{}, nil
	}

	key := NormalizeTitle(prefix)
	cacheKey := category + "_" + key
	if titles, ok := s.suggest.Get(cacheKey); ok {
		return titles, nil
	}

	matches := cat.LookupContains(key)
	titles := make([]string, 0, suggestLimit)
	for _, item := range matches {
		titles = append(titles, displayLabel(item))
		if len(titles) == suggestLimit {
			break
		}
	}

	s.suggest.Set(cacheKey, titles)
	return titles, nil
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
