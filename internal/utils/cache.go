package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// EnrichmentCache 海报/封面/推荐理由的进程级记忆化缓存
// 条目只在首次成功计算时写入，之后不更新也不淘汰（与目录同生命周期）；
// 并发请求同一个缺失 key 时用 singleflight 合并上游调用
type EnrichmentCache struct {
	store *gocache.Cache
	sf    singleflight.Group
}

// NewEnrichmentCache 创建缓存（永不过期，无清理协程）
func NewEnrichmentCache() *EnrichmentCache {
	return &EnrichmentCache{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

// GetOrCompute 命中时直接返回缓存值；未命中时执行 compute，
// 仅在成功时写入缓存。失败不缓存，下次访问会重新计算
func (c *EnrichmentCache) GetOrCompute(key string, compute func() (string, error)) (string, error) {
	if v, ok := c.store.Get(key); ok {
		return v.(string), nil
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		val, err := compute()
		if err != nil {
			return "", err
		}
		c.store.Set(key, val, gocache.NoExpiration)
		return val, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Len 当前缓存条数
func (c *EnrichmentCache) Len() int {
	return c.store.ItemCount()
}

// suggestItem 包装实际的数据，增加过期时间
type suggestItem struct {
	Titles    []string
	ExpiredAt time.Time
}

// SuggestCache 自动补全结果缓存，LRU 限容 + TTL
type SuggestCache struct {
	storage *lru.Cache[string, suggestItem]
	ttl     time.Duration
}

// NewSuggestCache 初始化，size 是最大缓存条数，ttl 是数据有效期
func NewSuggestCache(size int, ttl time.Duration) *SuggestCache {
	// lru.New 是线程安全的
	c, _ := lru.New[string, suggestItem](size)
	return &SuggestCache{
		storage: c,
		ttl:     ttl,
	}
}

// Set 写入（LRU 的 Add 会自动处理更新）
func (c *SuggestCache) Set(key string, titles []string) {
	c.storage.Add(key, suggestItem{
		Titles:    titles,
		ExpiredAt: time.Now().Add(c.ttl),
	})
}

// Get 读取（带过期检查）
func (c *SuggestCache) Get(key string) ([]string, bool) {
	item, ok := c.storage.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(item.ExpiredAt) {
		c.storage.Remove(key)
		return nil, false
	}
	return item.Titles, true
}

// Len 当前缓存条数
func (c *SuggestCache) Len() int {
	return c.storage.Len()
}
