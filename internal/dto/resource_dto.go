package dto

// CreateResourceRequest 创建资源请求
type CreateResourceRequest struct {
	Name                string   `json:"name" binding:"required,max=100"`
	Role                *string  `json:"role" binding:"omitempty,max=100"`
	Email               *string  `json:"email" binding:"omitempty,email"`
	Skills              []string `json:"skills"`
	AvailabilityPercent int      `json:"availability_percent" binding:"gte=0,lte=100"`
}

// UpdateResourceRequest 更新资源请求
type UpdateResourceRequest struct {
	ID                  int64    `json:"id" binding:"required"`
	Name                *string  `json:"name" binding:"omitempty,max=100"`
	Role                *string  `json:"role" binding:"omitempty,max=100"`
	Email               *string  `json:"email" binding:"omitempty,email"`
	Skills              []string `json:"skills"` // 非nil时整体替换
	AvailabilityPercent *int     `json:"availability_percent" binding:"omitempty,gte=0,lte=100"`
}

// GetResourceRequest 获取资源详情请求
type GetResourceRequest struct {
	ID int64 `form:"id" binding:"required"`
}

// ResourceListQuery 资源列表查询参数
type ResourceListQuery struct {
	PageQuery
	Skill    string `form:"skill"` // 按技能标签过滤
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=name created_at availability_percent"`
	SortDesc bool   `form:"sort_desc"`
}

// ResourceResponse 资源响应
type ResourceResponse struct {
	ID                  int64                  `json:"id"`
	Name                string                 `json:"name"`
	Role                *string                `json:"role"`
	Email               *string                `json:"email"`
	Skills              []string               `json:"skills"`
	AvailabilityPercent int                    `json:"availability_percent"`
	Projects            []*ResourceProjectItem `json:"projects,omitempty"`
	CreatedAt           string                 `json:"created_at"`
	UpdatedAt           string                 `json:"updated_at"`
}

// ResourceProjectItem 资源所属项目响应项
type ResourceProjectItem struct {
	ProjectID         int64  `json:"project_id"`
	ProjectName       string `json:"project_name"`
	AllocationPercent int    `json:"allocation_percent"`
}
