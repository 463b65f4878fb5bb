package dto

// AnalysisRequest AI分析请求
type AnalysisRequest struct {
	ProjectID int64 `form:"project_id" binding:"required"`
}

// AnalysisResponse AI分析响应
type AnalysisResponse struct {
	ProjectID   int64  `json:"project_id"`
	ProjectName string `json:"project_name"`
	Kind        string `json:"kind"` // health/financial/resource
	Analysis    string `json:"analysis"`
	Degraded    bool   `json:"degraded"` // 模型服务不可用时为true
	GeneratedAt string `json:"generated_at"`
}

// IngestDocumentRequest RAG文档入库请求
type IngestDocumentRequest struct {
	Title     string  `json:"title" binding:"required,max=200"`
	Content   string  `json:"content" binding:"required"`
	Source    *string `json:"source" binding:"omitempty,max=200"`
	ProjectID *int64  `json:"project_id"`
}

// DocumentResponse RAG文档响应
type DocumentResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Source    *string `json:"source"`
	ProjectID *int64  `json:"project_id"`
	CreatedAt string  `json:"created_at"`
}

// RAGQueryRequest RAG查询请求
type RAGQueryRequest struct {
	Query     string `json:"query" binding:"required"`
	ProjectID *int64 `json:"project_id"`
}

// RetrievedDocument 检索命中的文档
type RetrievedDocument struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// RAGQueryResponse RAG查询响应
type RAGQueryResponse struct {
	Answer    string              `json:"answer"`
	Documents []RetrievedDocument `json:"documents"`
	Degraded  bool                `json:"degraded"`
}
