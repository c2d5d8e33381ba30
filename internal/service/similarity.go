package service

import (
	"math"
	"sort"

	"github.com/user/tastebud/internal/model"
)

// rankOverfetch 需要排除查询条目自身时多取的名额
// 排除后不足 topN 时直接返回短列表，不回填
const rankOverfetch = 5

// ScoredItem 带相似度得分的候选条目
type ScoredItem struct {
	Item  model.CatalogItem
	Score float64
}

// CosineSimilarity 余弦相似度，范围 -1..1
// 维度不一致或零向量返回 0
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank 按与查询向量的余弦相似度对候选降序排序并截取前 topN
// 稳定排序，得分相同的条目保持原候选顺序，保证结果可复现；
// excludeID 非空时先在 topN+5 的窗口内剔除该条目再截取
func Rank(query []float32, candidates []model.CatalogItem, excludeID string, topN int) []ScoredItem {
	scored := make([]ScoredItem, len(candidates))
	for i, item := range candidates {
		scored[i] = ScoredItem{Item: item, Score: CosineSimilarity(query, item.Vector())}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if excludeID == "" {
		if len(scored) > topN {
			scored = scored[:topN]
		}
		return scored
	}

	window := topN + rankOverfetch
	if len(scored) > window {
		scored = scored[:window]
	}

	kept := make([]ScoredItem, 0, topN)
	for _, s := range scored {
		if s.Item.ItemID() == excludeID {
			continue
		}
		kept = append(kept, s)
		if len(kept) == topN {
			break
		}
	}
	return kept
}
