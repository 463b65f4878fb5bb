package dto

// LookupResponse 字典项响应
type LookupResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
	Category  string `json:"category,omitempty"` // 仅status使用
	Rank      int    `json:"rank,omitempty"`     // 仅priority使用
}

// CreateLookupRequest 创建字典项请求(admin)
type CreateLookupRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Color     string `json:"color" binding:"omitempty,max=20"`
	SortOrder int    `json:"sort_order"`
	Category  string `json:"category" binding:"omitempty,max=50"`
	Rank      int    `json:"rank"`
}

// UpdateLookupRequest 更新字典项请求(admin)
type UpdateLookupRequest struct {
	ID        int64   `json:"id" binding:"required"`
	Name      *string `json:"name" binding:"omitempty,max=100"`
	Color     *string `json:"color" binding:"omitempty,max=20"`
	SortOrder *int    `json:"sort_order"`
}

// LookupListQuery 字典列表查询参数
type LookupListQuery struct {
	Category string `form:"category"` // 仅status有效
}
