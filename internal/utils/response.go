package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 响应结构沿用原 Python 服务的线上契约：
// 业务失败用 200 + {"error": ...}，只有请求本身非法才用 4xx

// Results 返回自动补全结果
func Results(c *gin.Context, titles []string) {
	if titles == nil {
		titles = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"results": titles})
}

// Recommendations 返回推荐列表与推荐理由
func Recommendations(c *gin.Context, items interface{}, explanation string) {
	c.JSON(http.StatusOK, gin.H{
		"recommendations": items,
		"explanation":     explanation,
	})
}

// Fail 返回业务错误（title 未命中、无推荐结果等）
func Fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"error": message})
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
