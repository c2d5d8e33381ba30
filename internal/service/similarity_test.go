package service

import (
	"fmt"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/tastebud/internal/model"
)

// newMovie 测试用电影条目
func newMovie(id int, title string, vec []float32) *model.Movie {
	return &model.Movie{
		MovieID:     id,
		Title:       title,
		TmdbID:      int64(id),
		SearchTitle: NormalizeTitle(title),
		Embedding:   pgvector.NewVector(vec),
	}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// 零向量与维度不一致都返回 0
	assert.Zero(t, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	assert.Zero(t, CosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}))
	assert.Zero(t, CosineSimilarity(nil, nil))
}

func TestRankExcludesQueryItem(t *testing.T) {
	items := []model.CatalogItem{
		newMovie(1, "Alpha", []float32{1, 0}),
		newMovie(2, "Beta", []float32{0.9, 0.1}),
		newMovie(3, "Gamma", []float32{0.8, 0.2}),
	}

	got := Rank([]float32{1, 0}, items, "1", 2)
	require.Len(t, got, 2)
	for _, s := range got {
		assert.NotEqual(t, "1", s.Item.ItemID())
	}
	assert.Equal(t, "2", got[0].Item.ItemID())
	assert.Equal(t, "3", got[1].Item.ItemID())
}

// 排除后候选不足 topN 时返回短列表，不回填
func TestRankShortList(t *testing.T) {
	items := []model.CatalogItem{
		newMovie(1, "Alpha", []float32{1, 0}),
		newMovie(2, "Beta", []float32{0.9, 0.1}),
		newMovie(3, "Gamma", []float32{0.8, 0.2}),
		newMovie(4, "Delta", []float32{0.7, 0.3}),
	}

	got := Rank([]float32{1, 0}, items, "1", 5)
	assert.Len(t, got, 3)
}

func TestRankScoresNonIncreasing(t *testing.T) {
	var items []model.CatalogItem
	for i := 0; i < 20; i++ {
		items = append(items, newMovie(i+1, fmt.Sprintf("M%d", i+1),
			[]float32{float32(i) * 0.05, 1 - float32(i)*0.05}))
	}

	got := Rank([]float32{0.3, 0.7}, items, "", 10)
	require.Len(t, got, 10)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

// 得分相同的条目保持候选顺序（稳定排序）
func TestRankStableTies(t *testing.T) {
	items := []model.CatalogItem{
		newMovie(1, "Alpha", []float32{1, 0}),
		newMovie(2, "Beta", []float32{1, 0}),
		newMovie(3, "Gamma", []float32{1, 0}),
	}

	got := Rank([]float32{1, 0}, items, "", 3)
	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].Item.ItemID())
	assert.Equal(t, "2", got[1].Item.ItemID())
	assert.Equal(t, "3", got[2].Item.ItemID())
}

// 排除窗口只有 topN+5，目标条目排在窗口外时不会被剔除
func TestRankExcludeWindow(t *testing.T) {
	var items []model.CatalogItem
	// 条目 1 与查询最相似，其余按相似度递减
	for i := 0; i < 12; i++ {
		items = append(items, newMovie(i+1, fmt.Sprintf("M%d", i+1),
			[]float32{1, float32(i) * 0.1}))
	}

	got := Rank([]float32{1, 0}, items, "1", 3)
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].Item.ItemID())
}
