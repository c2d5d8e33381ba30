package service

import "errors"

// 业务错误，handler 层翻译为响应里的结构化 error 字段
var (
	// ErrUnknownCategory 类目不是 movie/book/music
	ErrUnknownCategory = errors.New("unknown category")
	// ErrNotFound 标题在目录中无法解析
	ErrNotFound = errors.New("title not found in catalog")
	// ErrEmptyInput 聚合推荐未提供任何标题
	ErrEmptyInput = errors.New("no titles provided")
	// ErrNoRecommendations 查询成立但相似检索没有可用结果
	ErrNoRecommendations = errors.New("no recommendations available")
)
