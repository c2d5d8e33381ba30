package repository

import (
	"fmt"
	"log"

	"github.com/user/tastebud/internal/model"
	"gorm.io/gorm"
)

// CatalogRepository 目录数据源
// 各类目的向量表由离线批处理任务写入，这里只做一次性读取
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// LoadMovies 加载电影目录
// 向量表按 movie_id 关联类型表和 TMDB 对照表，缺少 tmdb_id 的行在加载期丢弃；
// 存在 custom_movies 表时将自定义条目拼接到主目录之后
func (r *CatalogRepository) LoadMovies() ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Raw(`
		SELECT e.movie_id, e.title, e.embedding, g.genres, l.tmdb_id
		FROM movie_embeddings e
		JOIN movie_genres g ON g.movie_id = e.movie_id
		JOIN movie_links l ON l.movie_id = e.movie_id
		WHERE l.tmdb_id IS NOT NULL
		ORDER BY e.movie_id
	`).Scan(&movies).Error
	if err != nil {
		return nil, fmt.Errorf("加载电影目录失败: %w", err)
	}

	if r.db.Migrator().HasTable("custom_movies") {
		var custom []*model.Movie
		err := r.db.Raw(`
			SELECT movie_id, title, embedding, genres, tmdb_id
			FROM custom_movies
			WHERE tmdb_id IS NOT NULL
			ORDER BY movie_id
		`).Scan(&custom).Error
		if err != nil {
			return nil, fmt.Errorf("加载自定义电影失败: %w", err)
		}
		movies = append(movies, custom...)
		log.Printf("[Catalog] 已合并 %d 条自定义电影", len(custom))
	} else {
		log.Println("[Catalog] 未找到自定义电影表，跳过")
	}

	return movies, nil
}

// LoadBooks 加载图书目录，缺少 isbn/书名/作者的行在加载期丢弃
func (r *CatalogRepository) LoadBooks() ([]*model.Book, error) {
	var books []*model.Book
	err := r.db.Raw(`
		SELECT book_id, title, authors, isbn, category, embedding
		FROM book_embeddings
		WHERE isbn IS NOT NULL AND isbn <> ''
		  AND title IS NOT NULL AND title <> ''
		  AND authors IS NOT NULL AND authors <> ''
		ORDER BY book_id
	`).Scan(&books).Error
	if err != nil {
		return nil, fmt.Errorf("加载图书目录失败: %w", err)
	}
	return books, nil
}

// LoadTracks 加载音乐目录，缺少曲目 ID/曲名/歌手的行在加载期丢弃
func (r *CatalogRepository) LoadTracks() ([]*model.Track, error) {
	var tracks []*model.Track
	err := r.db.Raw(`
		SELECT track_id, track_name, artist_name, genre, embedding
		FROM music_embeddings
		WHERE track_id IS NOT NULL AND track_id <> ''
		  AND track_name IS NOT NULL AND track_name <> ''
		  AND artist_name IS NOT NULL AND artist_name <> ''
		ORDER BY track_id
	`).Scan(&tracks).Error
	if err != nil {
		return nil, fmt.Errorf("加载音乐目录失败: %w", err)
	}
	return tracks, nil
}
