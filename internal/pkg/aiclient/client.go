package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pm-dashboard/internal/pkg/config"
)

// Client 本地模型服务客户端
// 所有调用失败均由上层降级处理, 此处只负责透传错误
type Client interface {
	Analyze(ctx context.Context, prompt string) (string, error)
	Embed(ctx context.Context, text string) ([]float64, error)
	Generate(ctx context.Context, prompt string) (string, error)
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// New 创建模型服务客户端
func New(cfg *config.AIConfig) Client {
	return &client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.GetTimeout()},
	}
}

type analyzeRequest struct {
	Prompt string `json:"prompt"`
}

type analyzeResponse struct {
	Text string `json:"text"`
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Analyze 请求模型分析
func (c *client) Analyze(ctx context.Context, prompt string) (string, error) {
	var resp analyzeResponse
	if err := c.post(ctx, "/api/analyze", analyzeRequest{Prompt: prompt}, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Embed 请求文本向量化
func (c *client) Embed(ctx context.Context, text string) ([]float64, error) {
	var resp embedResponse
	if err := c.post(ctx, "/api/embed", embedRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	return resp.Embedding, nil
}

// Generate 请求文本生成
func (c *client) Generate(ctx context.Context, prompt string) (string, error) {
	var resp analyzeResponse
	if err := c.post(ctx, "/api/generate", analyzeRequest{Prompt: prompt}, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// post 发送JSON请求并解析响应
func (c *client) post(ctx context.Context, path string, body, dest interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("模型服务返回 %d: %s", resp.StatusCode, string(raw))
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
