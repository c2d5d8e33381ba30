package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/tastebud/internal/utils"
)

func TestExplainCachesPerCategory(t *testing.T) {
	var prompts []string
	gen := func(prompt string) (string, error) {
		prompts = append(prompts, prompt)
		return "reason", nil
	}
	e := NewExplainer(utils.NewEnrichmentCache(), gen)

	// 同一标题对在不同类目下是不同缓存键
	e.Explain("movie", "Dune", "Arrival", false)
	e.Explain("book", "Dune", "Arrival", false)
	assert.Len(t, prompts, 2)

	// 重复请求命中缓存
	e.Explain("movie", "Dune", "Arrival", false)
	assert.Len(t, prompts, 2)
}

func TestExplainPromptWording(t *testing.T) {
	var got string
	gen := func(prompt string) (string, error) {
		got = prompt
		return "reason", nil
	}
	e := NewExplainer(utils.NewEnrichmentCache(), gen)

	e.Explain("movie", "The Matrix", "Dark City", false)
	assert.Equal(t,
		"You are a friendly expert. In about 30-35 words, explain why someone who liked the movie 'The Matrix' would also enjoy the movie 'Dark City'.",
		got)

	// 聚合推荐用复数措辞
	e.Explain("movie", "The Matrix, Inception", "Dark City", true)
	assert.Equal(t,
		"You are a friendly expert. In about 30-35 words, explain why someone who liked the movies 'The Matrix, Inception' would also enjoy the movie 'Dark City'.",
		got)
}

// 生成失败返回诊断文案且不写缓存，恢复后能拿到真实理由
func TestExplainFailureNotCached(t *testing.T) {
	calls := 0
	gen := func(prompt string) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("quota exceeded")
		}
		return "reason", nil
	}
	e := NewExplainer(utils.NewEnrichmentCache(), gen)

	got := e.Explain("movie", "Dune", "Arrival", false)
	assert.Equal(t, "Could not generate explanation: quota exceeded", got)

	got = e.Explain("movie", "Dune", "Arrival", false)
	assert.Equal(t, "reason", got)
	assert.Equal(t, 2, calls)
}
