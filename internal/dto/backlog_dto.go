package dto

// CreateBacklogRequest 创建待办请求
type CreateBacklogRequest struct {
	ProjectID     int64   `json:"project_id" binding:"required"`
	FeatureID     *int64  `json:"feature_id"`
	Title         string  `json:"title" binding:"required,max=200"`
	Description   *string `json:"description"`
	PriorityID    *int64  `json:"priority_id"`
	TargetQuarter string  `json:"target_quarter" binding:"omitempty,max=10"`
}

// UpdateBacklogRequest 更新待办请求
type UpdateBacklogRequest struct {
	ID            int64   `json:"id" binding:"required"`
	FeatureID     *int64  `json:"feature_id"`
	Title         *string `json:"title" binding:"omitempty,max=200"`
	Description   *string `json:"description"`
	PriorityID    *int64  `json:"priority_id"`
	TargetQuarter *string `json:"target_quarter" binding:"omitempty,max=10"`
}

// GetBacklogRequest 获取待办详情请求
type GetBacklogRequest struct {
	ID int64 `form:"id" binding:"required"`
}

// BacklogListQuery 待办列表查询参数
type BacklogListQuery struct {
	PageQuery
	ProjectID     *int64 `form:"project_id"`
	FeatureID     *int64 `form:"feature_id"`
	PriorityID    *int64 `form:"priority_id"`
	TargetQuarter string `form:"target_quarter"`
	SortBy        string `form:"sort_by" binding:"omitempty,oneof=title created_at target_quarter"`
	SortDesc      bool   `form:"sort_desc"`
}

// BacklogResponse 待办响应
type BacklogResponse struct {
	ID            int64           `json:"id"`
	ProjectID     int64           `json:"project_id"`
	FeatureID     *int64          `json:"feature_id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description"`
	PriorityID    *int64          `json:"priority_id"`
	Priority      *LookupResponse `json:"priority,omitempty"`
	TargetQuarter string          `json:"target_quarter"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}
