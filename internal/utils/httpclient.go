package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// retryableStatus 值得重试的上游状态码（限流与临时性服务端错误）
var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// HTTPClient 外部 API 客户端
type HTTPClient struct {
	httpClient *http.Client
}

// NewHTTPClient 创建新的HTTP客户端
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetJSON 发送GET请求并解析JSON响应
func (c *HTTPClient) GetJSON(url string, target interface{}) error {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("请求失败，状态码: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %w", err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("解析JSON失败: %w", err)
	}
	return nil
}

// GetJSONRetry 同 GetJSON，但对 429/5xx 指数退避重试
// attempts 是总尝试次数（含首次），backoff 是首次重试前的等待时间，之后翻倍
func (c *HTTPClient) GetJSONRetry(url string, target interface{}, attempts int, backoff time.Duration) error {
	var lastErr error

	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		resp, err := c.httpClient.Get(url)
		if err != nil {
			lastErr = fmt.Errorf("请求失败: %w", err)
			continue
		}

		if retryableStatus[resp.StatusCode] {
			resp.Body.Close()
			lastErr = fmt.Errorf("请求失败，状态码: %d", resp.StatusCode)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			// 不可重试的错误状态，直接放弃
			resp.Body.Close()
			return fmt.Errorf("请求失败，状态码: %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("读取响应失败: %w", err)
		}
		if err := json.Unmarshal(body, target); err != nil {
			return fmt.Errorf("解析JSON失败: %w", err)
		}
		return nil
	}

	return lastErr
}
