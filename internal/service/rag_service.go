package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/aiclient"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/pkg/logger"
	"pm-dashboard/internal/repository"
	pkgErrors "pm-dashboard/pkg/responses"
)

const snippetLength = 120

// RAGService 轻量检索增强问答
// 向量随文档同行落库, 相似度在进程内计算; 知识库规模小, 无需独立向量库
type RAGService interface {
	Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.DocumentResponse, error)
	Query(ctx context.Context, req *dto.RAGQueryRequest) (*dto.RAGQueryResponse, error)
	DeleteDocument(id int64) error
}

type ragService struct {
	repo        repository.DocumentRepository
	projectRepo repository.ProjectRepository
	client      aiclient.Client
	aiCfg       *config.AIConfig
}

func NewRAGService(
	repo repository.DocumentRepository,
	projectRepo repository.ProjectRepository,
	client aiclient.Client,
	aiCfg *config.AIConfig,
) RAGService {
	return &ragService{
		repo:        repo,
		projectRepo: projectRepo,
		client:      client,
		aiCfg:       aiCfg,
	}
}

// Ingest 文档入库, 向量化失败时拒绝入库
func (s *ragService) Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.DocumentResponse, error) {
	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(*req.ProjectID); err != nil {
			return nil, err
		}
	}

	if s.client == nil {
		return nil, pkgErrors.ErrUpstreamError
	}
	embedding, err := s.client.Embed(ctx, req.Title+"\n"+req.Content)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeUpstreamError, "文档向量化失败", err)
	}

	doc := &model.Document{
		Title:     req.Title,
		Content:   req.Content,
		Source:    req.Source,
		ProjectID: req.ProjectID,
		Embedding: embedding,
	}
	if err := s.repo.Create(doc); err != nil {
		return nil, err
	}

	return &dto.DocumentResponse{
		ID:        doc.ID,
		Title:     doc.Title,
		Source:    doc.Source,
		ProjectID: doc.ProjectID,
		CreatedAt: formatTime(doc.CreatedAt),
	}, nil
}

// Query 检索并生成答案
// 生成失败时降级: 直接拼接命中片段返回
func (s *ragService) Query(ctx context.Context, req *dto.RAGQueryRequest) (*dto.RAGQueryResponse, error) {
	if s.client == nil {
		return nil, pkgErrors.ErrUpstreamError
	}

	queryVec, err := s.client.Embed(ctx, req.Query)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeUpstreamError, "查询向量化失败", err)
	}

	docs, err := s.repo.ListWithEmbeddings(req.ProjectID)
	if err != nil {
		return nil, err
	}

	hits := s.retrieve(queryVec, docs)
	if len(hits) == 0 {
		return &dto.RAGQueryResponse{
			Answer:    "知识库中没有找到相关内容。",
			Documents: []dto.RetrievedDocument{},
		}, nil
	}

	var contextBuilder strings.Builder
	for i, hit := range hits {
		fmt.Fprintf(&contextBuilder, "[%d] %s: %s\n", i+1, hit.doc.Title, hit.doc.Content)
	}
	prompt := fmt.Sprintf("根据以下资料回答问题。\n资料:\n%s\n问题: %s", contextBuilder.String(), req.Query)

	resp := &dto.RAGQueryResponse{Documents: make([]dto.RetrievedDocument, len(hits))}
	for i, hit := range hits {
		resp.Documents[i] = dto.RetrievedDocument{
			ID:      hit.doc.ID,
			Title:   hit.doc.Title,
			Snippet: snippet(hit.doc.Content),
			Score:   hit.score,
		}
	}

	answer, err := s.client.Generate(ctx, prompt)
	if err != nil || answer == "" {
		if err != nil {
			logger.Warn("答案生成失败, 降级为片段拼接", zap.Error(err))
		}
		parts := make([]string, len(hits))
		for i, hit := range hits {
			parts[i] = fmt.Sprintf("%s: %s", hit.doc.Title, snippet(hit.doc.Content))
		}
		resp.Answer = strings.Join(parts, "\n")
		resp.Degraded = true
		return resp, nil
	}

	resp.Answer = answer
	return resp, nil
}

func (s *ragService) DeleteDocument(id int64) error {
	return s.repo.Delete(id)
}

type scoredDoc struct {
	doc   *model.Document
	score float64
}

// retrieve 余弦相似度排序取top-k
func (s *ragService) retrieve(queryVec []float64, docs []*model.Document) []scoredDoc {
	scored := make([]scoredDoc, 0, len(docs))
	for _, doc := range docs {
		score := cosineSimilarity(queryVec, doc.Embedding)
		if score > 0 {
			scored = append(scored, scoredDoc{doc: doc, score: score})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].doc.ID < scored[j].doc.ID
	})

	topK := s.aiCfg.GetTopK()
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// cosineSimilarity 余弦相似度, 维度不一致或零向量返回0
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// snippet 截取内容摘要
func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLength {
		return content
	}
	return string(runes[:snippetLength]) + "..."
}
