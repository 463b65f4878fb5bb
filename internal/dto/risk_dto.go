package dto

// CreateRiskRequest 创建风险请求
type CreateRiskRequest struct {
	ProjectID   int64   `json:"project_id" binding:"required"`
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
	Probability int     `json:"probability" binding:"required,gte=1,lte=5"`
	Impact      int     `json:"impact" binding:"required,gte=1,lte=5"`
	Mitigation  *string `json:"mitigation"`
	StatusID    *int64  `json:"status_id"`
}

// UpdateRiskRequest 更新风险请求
type UpdateRiskRequest struct {
	ID          int64   `json:"id" binding:"required"`
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Probability *int    `json:"probability" binding:"omitempty,gte=1,lte=5"`
	Impact      *int    `json:"impact" binding:"omitempty,gte=1,lte=5"`
	Mitigation  *string `json:"mitigation"`
	StatusID    *int64  `json:"status_id"`
}

// GetRiskRequest 获取风险详情请求
type GetRiskRequest struct {
	ID int64 `form:"id" binding:"required"`
}

// RiskListQuery 风险列表查询参数
type RiskListQuery struct {
	PageQuery
	ProjectID *int64 `form:"project_id"`
	StatusID  *int64 `form:"status_id"`
	Severity  string `form:"severity" binding:"omitempty,oneof=low medium high"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=title created_at probability impact"`
	SortDesc  bool   `form:"sort_desc"`
}

// RiskResponse 风险响应
type RiskResponse struct {
	ID          int64           `json:"id"`
	ProjectID   int64           `json:"project_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Probability int             `json:"probability"`
	Impact      int             `json:"impact"`
	Score       int             `json:"score"`    // probability * impact
	Severity    string          `json:"severity"` // low/medium/high
	Mitigation  *string         `json:"mitigation"`
	StatusID    *int64          `json:"status_id"`
	Status      *LookupResponse `json:"status,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}
