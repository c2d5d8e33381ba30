package service

import (
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/tastebud/internal/model"
)

// newTrack 测试用音乐条目
func newTrack(id, name, artist string, vec []float32) *model.Track {
	return &model.Track{
		TrackID:      id,
		TrackName:    name,
		ArtistName:   artist,
		SearchTitle:  NormalizeTitle(name),
		SearchArtist: NormalizeArtist(artist),
		Embedding:    pgvector.NewVector(vec),
	}
}

func TestNewCatalogDimensionMismatch(t *testing.T) {
	items := []model.CatalogItem{
		newMovie(1, "Alpha", []float32{1, 0}),
		newMovie(2, "Beta", []float32{1, 0, 0}),
	}
	_, err := NewCatalog(model.CategoryMovie, items)
	assert.Error(t, err)
}

func TestNewCatalogEmptyVector(t *testing.T) {
	items := []model.CatalogItem{newMovie(1, "Alpha", nil)}
	_, err := NewCatalog(model.CategoryMovie, items)
	assert.Error(t, err)
}

// 检索键冲突时保留先加载的条目
func TestCatalogFirstKeyWins(t *testing.T) {
	items := []model.CatalogItem{
		newMovie(1, "Heat (1995)", []float32{1, 0}),
		newMovie(2, "Heat (2013)", []float32{0, 1}),
	}
	cat, err := NewCatalog(model.CategoryMovie, items)
	require.NoError(t, err)

	got, ok := cat.LookupExact("heat")
	require.True(t, ok)
	assert.Equal(t, "1", got.ItemID())
}

func TestCatalogLookupContains(t *testing.T) {
	items := []model.CatalogItem{
		newTrack("t1", "Yesterday", "The Beatles", []float32{1, 0}),
		newTrack("t2", "Yellow", "Coldplay", []float32{0, 1}),
	}
	cat, err := NewCatalog(model.CategoryMusic, items)
	require.NoError(t, err)

	// 标题子串
	got := cat.LookupContains("yester")
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ItemID())

	// 歌手名子串
	got = cat.LookupContains("beatles")
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ItemID())

	// 空键匹配全部
	assert.Len(t, cat.LookupContains(""), 2)

	// 无匹配
	assert.Empty(t, cat.LookupContains("zzz"))
}

func TestCatalogSampleByGenre(t *testing.T) {
	items := []model.CatalogItem{
		newMovie(1, "Alpha", []float32{1, 0}),
		newMovie(2, "Beta", []float32{0, 1}),
		newMovie(3, "Gamma", []float32{1, 1}),
	}
	items[0].(*model.Movie).Genres = []string{"Action", "Thriller"}
	items[1].(*model.Movie).Genres = []string{"Comedy"}
	items[2].(*model.Movie).Genres = []string{"Action"}

	cat, err := NewCatalog(model.CategoryMovie, items)
	require.NoError(t, err)

	// 大小写不敏感，返回 min(limit, 匹配数)
	got := cat.SampleByGenre("action", 10)
	assert.Len(t, got, 2)

	got = cat.SampleByGenre("Action", 1)
	assert.Len(t, got, 1)

	// 不放回抽样，无重复
	got = cat.SampleByGenre("action", 2)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].ItemID(), got[1].ItemID())

	assert.Empty(t, cat.SampleByGenre("horror", 5))
}

// 目录来源桩
type stubSource struct {
	movies []*model.Movie
	books  []*model.Book
	tracks []*model.Track
}

func (s *stubSource) LoadMovies() ([]*model.Movie, error) { return s.movies, nil }

func (s *stubSource) LoadBooks() ([]*model.Book, error) { return s.books, nil }

func (s *stubSource) LoadTracks() ([]*model.Track, error) { return s.tracks, nil }

func TestBuildCatalogsComputesSearchKeys(t *testing.T) {
	src := &stubSource{
		movies: []*model.Movie{{MovieID: 1, Title: "Matrix, The (1999)", Embedding: pgvector.NewVector([]float32{1, 0})}},
		books:  []*model.Book{{BookID: 1, Title: "The Hobbit", ISBN: "9780261103344", Embedding: pgvector.NewVector([]float32{1, 0})}},
		tracks: []*model.Track{{TrackID: "t1", TrackName: "Yesterday", ArtistName: "The Beatles", Embedding: pgvector.NewVector([]float32{1, 0})}},
	}

	cats, err := BuildCatalogs(src)
	require.NoError(t, err)

	_, ok := cats.Movies.LookupExact("matrix")
	assert.True(t, ok)

	_, ok = cats.Books.LookupExact("hobbit")
	assert.True(t, ok)

	_, ok = cats.Music.LookupExact("yesterday")
	assert.True(t, ok)

	// 类目名路由
	cat, ok := cats.ByCategory(model.CategoryBook)
	require.True(t, ok)
	assert.Equal(t, model.CategoryBook, cat.Category())

	_, ok = cats.ByCategory("podcast")
	assert.False(t, ok)
}
