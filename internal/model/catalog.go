package model

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// 推荐类目
const (
	CategoryMovie = "movie"
	CategoryBook  = "book"
	CategoryMusic = "music"
)

// CatalogItem 可推荐条目的统一接口（电影/图书/音乐）
// 检索与排序逻辑只通过该接口访问条目，不感知各类目的具体字段
type CatalogItem interface {
	ItemID() string       // 目录内稳定标识（电影 ID / 图书 ID / 曲目 ID）
	DisplayTitle() string // 展示标题
	SearchKey() string    // 归一化检索键，加载时计算一次
	AltKeys() []string    // 次要检索键（如音乐的歌手名），可为空
	Vector() []float32    // 预计算的 embedding 向量
	GenreText() string    // 类型/分类文本，按类目随机推荐时做子串匹配
}

// Movie 电影条目（movie_embeddings + movie_genres + movie_links 合并结果）
type Movie struct {
	MovieID     int             `json:"movieId" gorm:"column:movie_id"`
	Title       string          `json:"title" gorm:"column:title"`
	Genres      pq.StringArray  `json:"genres" gorm:"column:genres;type:text[]"`
	TmdbID      int64           `json:"tmdbId" gorm:"column:tmdb_id"`
	SearchTitle string          `json:"-" gorm:"-"`
	Embedding   pgvector.Vector `json:"embedding" gorm:"column:embedding;type:vector(768)"`
}

func (m *Movie) ItemID() string { return strconv.Itoa(m.MovieID) }

func (m *Movie) DisplayTitle() string { return m.Title }

func (m *Movie) SearchKey() string { return m.SearchTitle }

func (m *Movie) AltKeys() []string { return nil }

func (m *Movie) Vector() []float32 { return m.Embedding.Slice() }

func (m *Movie) GenreText() string { return strings.Join(m.Genres, "|") }

// Book 图书条目（book_embeddings 表）
type Book struct {
	BookID      int             `json:"bookID" gorm:"column:book_id"`
	Title       string          `json:"title" gorm:"column:title"`
	Authors     string          `json:"authors" gorm:"column:authors"`
	ISBN        string          `json:"isbn" gorm:"column:isbn"`
	Category    string          `json:"category" gorm:"column:category"`
	SearchTitle string          `json:"-" gorm:"-"`
	Embedding   pgvector.Vector `json:"embedding" gorm:"column:embedding;type:vector(768)"`
}

func (b *Book) ItemID() string { return strconv.Itoa(b.BookID) }

func (b *Book) DisplayTitle() string { return b.Title }

func (b *Book) SearchKey() string { return b.SearchTitle }

func (b *Book) AltKeys() []string { return nil }

func (b *Book) Vector() []float32 { return b.Embedding.Slice() }

func (b *Book) GenreText() string { return b.Category }

// Track 音乐条目（music_embeddings 表）
type Track struct {
	TrackID      string          `json:"track_id" gorm:"column:track_id"`
	TrackName    string          `json:"title" gorm:"column:track_name"`
	ArtistName   string          `json:"artist_name" gorm:"column:artist_name"`
	Genre        string          `json:"genre" gorm:"column:genre"`
	SearchTitle  string          `json:"-" gorm:"-"`
	SearchArtist string          `json:"-" gorm:"-"`
	Embedding    pgvector.Vector `json:"embedding" gorm:"column:embedding;type:vector(768)"`
}

func (t *Track) ItemID() string { return t.TrackID }

func (t *Track) DisplayTitle() string { return t.TrackName }

func (t *Track) SearchKey() string { return t.SearchTitle }

// AltKeys 音乐额外支持按歌手名检索
func (t *Track) AltKeys() []string {
	if t.SearchArtist == "" {
		return nil
	}
	return []string{t.SearchArtist}
}

func (t *Track) Vector() []float32 { return t.Embedding.Slice() }
func (t *Track) GenreText() string { return t.Genre }
