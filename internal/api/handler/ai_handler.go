package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/service"
	"pm-dashboard/pkg/responses"
	"pm-dashboard/pkg/utils"
)

// AIHandler AI分析与RAG问答
type AIHandler struct {
	aiService  service.AIService
	ragService service.RAGService
}

func NewAIHandler(aiService service.AIService, ragService service.RAGService) *AIHandler {
	return &AIHandler{
		aiService:  aiService,
		ragService: ragService,
	}
}

// AnalyzeHealth 项目健康度分析
// @Summary 项目健康度分析（模型不可用时降级为规则文本）
// @Tags AI
// @Accept json
// @Produce json
// @Param project_id query int64 true "项目ID"
// @Success 200 {object} responses.Response{data=dto.AnalysisResponse}
// @Router /api/v1/ai/analysis/health [get]
func (h *AIHandler) AnalyzeHealth(c *gin.Context) {
	var req dto.AnalysisRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	analysis, err := h.aiService.AnalyzeHealth(c.Request.Context(), req.ProjectID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, analysis)
}

// AnalyzeFinancial 项目财务分析
// @Summary 项目财务分析（模型不可用时降级为规则文本）
// @Tags AI
// @Accept json
// @Produce json
// @Param project_id query int64 true "项目ID"
// @Success 200 {object} responses.Response{data=dto.AnalysisResponse}
// @Router /api/v1/ai/analysis/financial [get]
func (h *AIHandler) AnalyzeFinancial(c *gin.Context) {
	var req dto.AnalysisRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	analysis, err := h.aiService.AnalyzeFinancial(c.Request.Context(), req.ProjectID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, analysis)
}

// AnalyzeResource 项目资源分析
// @Summary 项目资源分析（模型不可用时降级为规则文本）
// @Tags AI
// @Accept json
// @Produce json
// @Param project_id query int64 true "项目ID"
// @Success 200 {object} responses.Response{data=dto.AnalysisResponse}
// @Router /api/v1/ai/analysis/resource [get]
func (h *AIHandler) AnalyzeResource(c *gin.Context) {
	var req dto.AnalysisRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	analysis, err := h.aiService.AnalyzeResource(c.Request.Context(), req.ProjectID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, analysis)
}

// IngestDocument RAG文档入库
// @Summary RAG文档入库（入库时同步向量化）
// @Tags AI
// @Accept json
// @Produce json
// @Param request body dto.IngestDocumentRequest true "文档入库请求"
// @Success 200 {object} responses.Response{data=dto.DocumentResponse}
// @Router /api/v1/ai/rag/documents [post]
func (h *AIHandler) IngestDocument(c *gin.Context) {
	var req dto.IngestDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	doc, err := h.ragService.Ingest(c.Request.Context(), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, doc)
}

// QueryRAG RAG问答
// @Summary RAG问答（生成失败时降级返回命中片段）
// @Tags AI
// @Accept json
// @Produce json
// @Param request body dto.RAGQueryRequest true "问答请求"
// @Success 200 {object} responses.Response{data=dto.RAGQueryResponse}
// @Router /api/v1/ai/rag/query [post]
func (h *AIHandler) QueryRAG(c *gin.Context) {
	var req dto.RAGQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	result, err := h.ragService.Query(c.Request.Context(), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, result)
}

// DeleteDocument 删除RAG文档
// @Summary 删除RAG文档
// @Tags AI
// @Accept json
// @Produce json
// @Param id path int64 true "文档ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/ai/rag/documents/{id} [delete]
func (h *AIHandler) DeleteDocument(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的文档ID", err.Error())
		return
	}

	if err := h.ragService.DeleteDocument(id); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, nil)
}
