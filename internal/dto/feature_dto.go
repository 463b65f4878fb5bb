package dto

// CreateFeatureRequest 创建特性请求
type CreateFeatureRequest struct {
	ProjectID     int64   `json:"project_id" binding:"required"`
	Name          string  `json:"name" binding:"required,max=200"`
	Description   *string `json:"description"`
	FunctionID    *int64  `json:"function_id"`
	PlatformID    *int64  `json:"platform_id"`
	StatusID      *int64  `json:"status_id"`
	BusinessValue int     `json:"business_value" binding:"gte=0,lte=10"`
	Effort        int     `json:"effort" binding:"gte=0"`
}

// UpdateFeatureRequest 更新特性请求
type UpdateFeatureRequest struct {
	ID            int64   `json:"id" binding:"required"`
	Name          *string `json:"name" binding:"omitempty,max=200"`
	Description   *string `json:"description"`
	FunctionID    *int64  `json:"function_id"`
	PlatformID    *int64  `json:"platform_id"`
	StatusID      *int64  `json:"status_id"`
	BusinessValue *int    `json:"business_value" binding:"omitempty,gte=0,lte=10"`
	Effort        *int    `json:"effort" binding:"omitempty,gte=0"`
}

// GetFeatureRequest 获取特性详情请求
type GetFeatureRequest struct {
	ID int64 `form:"id" binding:"required"`
}

// FeatureListQuery 特性列表查询参数
type FeatureListQuery struct {
	PageQuery
	ProjectID  *int64 `form:"project_id"`
	FunctionID *int64 `form:"function_id"`
	PlatformID *int64 `form:"platform_id"`
	StatusID   *int64 `form:"status_id"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=name created_at business_value effort"`
	SortDesc   bool   `form:"sort_desc"`
}

// FeatureResponse 特性响应
type FeatureResponse struct {
	ID            int64           `json:"id"`
	ProjectID     int64           `json:"project_id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	FunctionID    *int64          `json:"function_id"`
	PlatformID    *int64          `json:"platform_id"`
	StatusID      *int64          `json:"status_id"`
	Function      *LookupResponse `json:"function,omitempty"`
	Platform      *LookupResponse `json:"platform,omitempty"`
	Status        *LookupResponse `json:"status,omitempty"`
	BusinessValue int             `json:"business_value"`
	Effort        int             `json:"effort"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}
