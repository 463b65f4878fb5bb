package dto

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name              string  `json:"name" binding:"required,max=100"`
	Description       *string `json:"description"`
	OwnerName         *string `json:"owner_name" binding:"omitempty,max=100"`
	StatusID          *int64  `json:"status_id"`
	PriorityID        *int64  `json:"priority_id"`
	PortfolioID       *int64  `json:"portfolio_id"`
	ProjectTypeID     *int64  `json:"project_type_id"`
	InvestmentTypeID  *int64  `json:"investment_type_id"`
	ApplicationTypeID *int64  `json:"application_type_id"`
	StartDate         *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate           *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Budget            *string `json:"budget"`      // decimal字符串
	ActualCost        *string `json:"actual_cost"` // decimal字符串
	FunctionIDs       []int64 `json:"function_ids"`
	PlatformIDs       []int64 `json:"platform_ids"`
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	ID                int64   `json:"id" binding:"required"`
	Name              *string `json:"name" binding:"omitempty,max=100"`
	Description       *string `json:"description"`
	OwnerName         *string `json:"owner_name" binding:"omitempty,max=100"`
	StatusID          *int64  `json:"status_id"`
	PriorityID        *int64  `json:"priority_id"`
	PortfolioID       *int64  `json:"portfolio_id"`
	ProjectTypeID     *int64  `json:"project_type_id"`
	InvestmentTypeID  *int64  `json:"investment_type_id"`
	ApplicationTypeID *int64  `json:"application_type_id"`
	StartDate         *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate           *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Budget            *string `json:"budget"`
	ActualCost        *string `json:"actual_cost"`
	FunctionIDs       []int64 `json:"function_ids"`
	PlatformIDs       []int64 `json:"platform_ids"`
}

// GetProjectRequest 获取项目详情请求
type GetProjectRequest struct {
	ID            int64 `form:"id" binding:"required"`
	WithRelations bool  `form:"with_relations"` // 包含任务/特性/风险等子实体
}

// ProjectListQuery 项目列表查询参数
type ProjectListQuery struct {
	PageQuery
	StatusID    *int64 `form:"status_id"`
	PriorityID  *int64 `form:"priority_id"`
	PortfolioID *int64 `form:"portfolio_id"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=name created_at start_date end_date"`
	SortDesc    bool   `form:"sort_desc"`
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID                int64               `json:"id"`
	Name              string              `json:"name"`
	Description       *string             `json:"description"`
	OwnerName         *string             `json:"owner_name"`
	StatusID          *int64              `json:"status_id"`
	PriorityID        *int64              `json:"priority_id"`
	PortfolioID       *int64              `json:"portfolio_id"`
	ProjectTypeID     *int64              `json:"project_type_id"`
	InvestmentTypeID  *int64              `json:"investment_type_id"`
	ApplicationTypeID *int64              `json:"application_type_id"`
	StartDate         *string             `json:"start_date"`
	EndDate           *string             `json:"end_date"`
	Budget            string              `json:"budget"`
	ActualCost        string              `json:"actual_cost"`
	Status            *LookupResponse     `json:"status,omitempty"`
	Priority          *LookupResponse     `json:"priority,omitempty"`
	Portfolio         *LookupResponse     `json:"portfolio,omitempty"`
	Functions         []*LookupResponse   `json:"functions,omitempty"`
	Platforms         []*LookupResponse   `json:"platforms,omitempty"`
	Tasks             []*TaskResponse     `json:"tasks,omitempty"`
	Features          []*FeatureResponse  `json:"features,omitempty"`
	Backlogs          []*BacklogResponse  `json:"backlogs,omitempty"`
	Risks             []*RiskResponse     `json:"risks,omitempty"`
	Resources         []*AllocationItem   `json:"resources,omitempty"`
	CreatedAt         string              `json:"created_at"`
	UpdatedAt         string              `json:"updated_at"`
}

// ProjectSimpleResponse 项目简单响应（用于下拉选择）
type ProjectSimpleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AllocateResourceRequest 资源分配请求
type AllocateResourceRequest struct {
	ProjectID         int64 `json:"project_id" binding:"required"`
	ResourceID        int64 `json:"resource_id" binding:"required"`
	AllocationPercent int   `json:"allocation_percent" binding:"gte=0,lte=100"`
}

// AllocationItem 资源分配响应项
type AllocationItem struct {
	ResourceID        int64  `json:"resource_id"`
	ResourceName      string `json:"resource_name"`
	AllocationPercent int    `json:"allocation_percent"`
}
