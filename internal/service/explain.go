package service

import (
	"fmt"
	"log"

	"github.com/user/tastebud/internal/utils"
)

// TextGenerator 文本生成函数（LLM 推荐理由）
type TextGenerator func(prompt string) (string, error)

// Explainer 推荐理由生成，成功结果按类目+标题对记忆化
// 生成失败返回诊断文案，不写缓存，下次请求会重新生成
type Explainer struct {
	cache    *utils.EnrichmentCache
	generate TextGenerator
}

// NewExplainer 创建推荐理由生成器
func NewExplainer(cache *utils.EnrichmentCache, generate TextGenerator) *Explainer {
	return &Explainer{cache: cache, generate: generate}
}

// Explain 解释为什么喜欢 original 的人也会喜欢 recommended
// multi 为真时 original 是多个标题拼接（收藏夹聚合推荐），措辞改为复数
func (e *Explainer) Explain(category, original, recommended string, multi bool) string {
	key := fmt.Sprintf("exp_%s_%s_%s", category, original, recommended)

	text, err := e.cache.GetOrCompute(key, func() (string, error) {
		subject := fmt.Sprintf("the %s '%s'", category, original)
		if multi {
			subject = fmt.Sprintf("the %ss '%s'", category, original)
		}
		prompt := fmt.Sprintf(
			"You are a friendly expert. In about 30-35 words, explain why someone who liked %s would also enjoy the %s '%s'.",
			subject, category, recommended)
		return e.generate(prompt)
	})
	if err != nil {
		log.Printf("[Explain] 生成推荐理由失败 %s: %v", key, err)
		return fmt.Sprintf("Could not generate explanation: %v", err)
	}
	return text
}
