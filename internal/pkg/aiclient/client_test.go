package aiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pm-dashboard/internal/pkg/config"
)

func TestClient_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req analyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "分析项目健康度", req.Prompt)

		_ = json.NewEncoder(w).Encode(analyzeResponse{Text: "项目状态良好"})
	}))
	defer srv.Close()

	client := New(&config.AIConfig{BaseURL: srv.URL})
	text, err := client.Analyze(context.Background(), "分析项目健康度")
	require.NoError(t, err)
	assert.Equal(t, "项目状态良好", text)
}

func TestClient_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)
		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	client := New(&config.AIConfig{BaseURL: srv.URL})
	vec, err := client.Embed(context.Background(), "文档内容")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := New(&config.AIConfig{BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), "任意问题")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_ConnectionRefused(t *testing.T) {
	client := New(&config.AIConfig{BaseURL: "http://127.0.0.1:1", Timeout: 1})
	_, err := client.Analyze(context.Background(), "prompt")
	assert.Error(t, err)
}
