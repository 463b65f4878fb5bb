package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/pkg/aiclient"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/repository"
	pkgErrors "pm-dashboard/pkg/responses"
)

func newRAGService(t *testing.T, client aiclient.Client, topK int) RAGService {
	t.Helper()
	db := setupServiceDB(t)
	return NewRAGService(
		repository.NewDocumentRepository(db),
		repository.NewProjectRepository(db),
		client,
		&config.AIConfig{TopK: topK},
	)
}

func TestRAGService_IngestRejectsWithoutEmbedding(t *testing.T) {
	t.Run("client disabled", func(t *testing.T) {
		svc := newRAGService(t, nil, 3)
		_, err := svc.Ingest(context.Background(), &dto.IngestDocumentRequest{Title: "文档", Content: "内容"})
		assert.ErrorIs(t, err, pkgErrors.ErrUpstreamError)
	})

	t.Run("embed failure", func(t *testing.T) {
		svc := newRAGService(t, &fakeAIClient{embedErr: errModelDown}, 3)
		_, err := svc.Ingest(context.Background(), &dto.IngestDocumentRequest{Title: "文档", Content: "内容"})
		require.Error(t, err)
	})
}

func TestRAGService_QueryRanksByCosine(t *testing.T) {
	client := &fakeAIClient{
		embeddings: map[string][]float64{
			"上线流程\n发布需经过灰度与回滚演练。":  {1, 0, 0},
			"请假制度\n年假需提前三天申请。":     {0, 1, 0},
			"数据库规范\n所有表必须带软删除字段。":  {0.9, 0.1, 0},
			"发布需要哪些步骤":            {1, 0, 0},
		},
		generated: "发布需要先灰度再全量, 并准备回滚方案。",
	}
	svc := newRAGService(t, client, 2)
	ctx := context.Background()

	for _, doc := range []dto.IngestDocumentRequest{
		{Title: "上线流程", Content: "发布需经过灰度与回滚演练。"},
		{Title: "请假制度", Content: "年假需提前三天申请。"},
		{Title: "数据库规范", Content: "所有表必须带软删除字段。"},
	} {
		req := doc
		_, err := svc.Ingest(ctx, &req)
		require.NoError(t, err)
	}

	resp, err := svc.Query(ctx, &dto.RAGQueryRequest{Query: "发布需要哪些步骤"})
	require.NoError(t, err)
	assert.False(t, resp.Degraded)
	assert.Equal(t, "发布需要先灰度再全量, 并准备回滚方案。", resp.Answer)

	// top-2: 完全同向的在前, 正交的被过滤
	require.Len(t, resp.Documents, 2)
	assert.Equal(t, "上线流程", resp.Documents[0].Title)
	assert.Equal(t, "数据库规范", resp.Documents[1].Title)
	assert.Greater(t, resp.Documents[0].Score, resp.Documents[1].Score)
}

func TestRAGService_QueryDegradesOnGenerateFailure(t *testing.T) {
	client := &fakeAIClient{generateErr: errModelDown}
	svc := newRAGService(t, client, 3)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, &dto.IngestDocumentRequest{Title: "运维手册", Content: "磁盘告警先看inode。"})
	require.NoError(t, err)

	resp, err := svc.Query(ctx, &dto.RAGQueryRequest{Query: "磁盘告警怎么处理"})
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	// 降级答案为命中片段拼接
	assert.Contains(t, resp.Answer, "运维手册")
	assert.Contains(t, resp.Answer, "磁盘告警先看inode。")
}

func TestRAGService_QueryEmptyKnowledgeBase(t *testing.T) {
	svc := newRAGService(t, &fakeAIClient{}, 3)

	resp, err := svc.Query(context.Background(), &dto.RAGQueryRequest{Query: "任何问题"})
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "没有找到相关内容")
	assert.Empty(t, resp.Documents)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float64{1, 0}, []float64{0, 1}))
	assert.Zero(t, cosineSimilarity([]float64{1, 0}, []float64{1, 0, 0})) // 维度不一致
	assert.Zero(t, cosineSimilarity(nil, nil))
	assert.Zero(t, cosineSimilarity([]float64{0, 0}, []float64{1, 1})) // 零向量
}

func TestSnippet(t *testing.T) {
	short := "短内容"
	assert.Equal(t, short, snippet(short))

	long := strings.Repeat("长", snippetLength+10)
	got := snippet(long)
	assert.Equal(t, snippetLength+3, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}
