package service

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/user/tastebud/internal/model"
)

// Catalog 单一类目的可推荐条目集合
// 启动时构建一次，此后只读，相似检索期间无需加锁
type Catalog struct {
	category string
	items    []model.CatalogItem
	byKey    map[string]model.CatalogItem // 检索键 → 首个匹配条目
	dim      int
}

// NewCatalog 构建类目目录并校验向量
// 同一类目下所有条目的向量维度必须一致，不一致视为源数据损坏
func NewCatalog(category string, items []model.CatalogItem) (*Catalog, error) {
	c := &Catalog{
		category: category,
		items:    items,
		byKey:    make(map[string]model.CatalogItem, len(items)),
	}

	for _, item := range items {
		vec := item.Vector()
		if len(vec) == 0 {
			return nil, fmt.Errorf("目录 %s 条目 %s 缺少向量", category, item.ItemID())
		}
		if c.dim == 0 {
			c.dim = len(vec)
		} else if len(vec) != c.dim {
			return nil, fmt.Errorf("目录 %s 向量维度不一致: 条目 %s 为 %d 维，期望 %d 维",
				category, item.ItemID(), len(vec), c.dim)
		}

		// 检索键冲突时保留先加载的条目
		key := item.SearchKey()
		if key == "" {
			continue
		}
		if _, ok := c.byKey[key]; !ok {
			c.byKey[key] = item
		}
	}

	return c, nil
}

func (c *Catalog) Category() string { return c.category }

func (c *Catalog) Len() int { return len(c.items) }

func (c *Catalog) Dim() int { return c.dim }

func (c *Catalog) Items() []model.CatalogItem { return c.items }

// LookupExact 按检索键精确匹配
func (c *Catalog) LookupExact(key string) (model.CatalogItem, bool) {
	item, ok := c.byKey[key]
	return item, ok
}

// LookupContains 按检索键子串匹配，音乐同时匹配歌手键
// 空键匹配全部条目（与原线上行为一致）
func (c *Catalog) LookupContains(key string) []model.CatalogItem {
	var matches []model.CatalogItem
	for _, item := range c.items {
		if strings.Contains(item.SearchKey(), key) {
			matches = append(matches, item)
			continue
		}
		for _, alt := range item.AltKeys() {
			if strings.Contains(alt, key) {
				matches = append(matches, item)
				break
			}
		}
	}
	return matches
}

// SampleByGenre 在类型文本包含 genre（大小写不敏感）的条目里
// 做不放回的均匀随机抽样，返回 min(limit, 匹配数) 条
func (c *Catalog) SampleByGenre(genre string, limit int) []model.CatalogItem {
	g := strings.ToLower(genre)
	var matches []model.CatalogItem
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.GenreText()), g) {
			matches = append(matches, item)
		}
	}
	if len(matches) == 0 {
		return nil
	}

	n := limit
	if n > len(matches) {
		n = len(matches)
	}
	picked := make([]model.CatalogItem, 0, n)
	for _, idx := range rand.Perm(len(matches))[:n] {
		picked = append(picked, matches[idx])
	}
	return picked
}

// CatalogSource 目录数据来源（repository 层实现）
type CatalogSource interface {
	LoadMovies() ([]*model.Movie, error)
	LoadBooks() ([]*model.Book, error)
	LoadTracks() ([]*model.Track, error)
}

// Catalogs 三个类目的目录集合
type Catalogs struct {
	Movies *Catalog
	Books  *Catalog
	Music  *Catalog
}

// BuildCatalogs 加载全部类目并计算检索键，进程启动时调用一次
func BuildCatalogs(src CatalogSource) (*Catalogs, error) {
	movies, err := src.LoadMovies()
	if err != nil {
		return nil, err
	}
	movieItems := make([]model.CatalogItem, 0, len(movies))
	for _, m := range movies {
		m.SearchTitle = NormalizeTitle(m.Title)
		movieItems = append(movieItems, m)
	}
	movieCat, err := NewCatalog(model.CategoryMovie, movieItems)
	if err != nil {
		return nil, err
	}

	books, err := src.LoadBooks()
	if err != nil {
		return nil, err
	}
	bookItems := make([]model.CatalogItem, 0, len(books))
	for _, b := range books {
		b.SearchTitle = NormalizeTitle(b.Title)
		bookItems = append(bookItems, b)
	}
	bookCat, err := NewCatalog(model.CategoryBook, bookItems)
	if err != nil {
		return nil, err
	}

	tracks, err := src.LoadTracks()
	if err != nil {
		return nil, err
	}
	trackItems := make([]model.CatalogItem, 0, len(tracks))
	for _, t := range tracks {
		t.SearchTitle = NormalizeTitle(t.TrackName)
		t.SearchArtist = NormalizeArtist(t.ArtistName)
		trackItems = append(trackItems, t)
	}
	musicCat, err := NewCatalog(model.CategoryMusic, trackItems)
	if err != nil {
		return nil, err
	}

	log.Printf("[Catalog] 目录构建完成: 电影 %d 条 / 图书 %d 条 / 音乐 %d 条",
		movieCat.Len(), bookCat.Len(), musicCat.Len())

	return &Catalogs{Movies: movieCat, Books: bookCat, Music: musicCat}, nil
}

// ByCategory 按类目名取目录
func (cs *Catalogs) ByCategory(category string) (*Catalog, bool) {
	switch category {
	case model.CategoryMovie:
		return cs.Movies, true
	case model.CategoryBook:
		return cs.Books, true
	case model.CategoryMusic:
		return cs.Music, true
	}
	return nil, false
}
