package dto

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	ProjectID   int64   `json:"project_id" binding:"required"`
	Name        string  `json:"name" binding:"required,max=200"`
	Description *string `json:"description"`
	StatusID    *int64  `json:"status_id"`
	StartDate   *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Progress    int     `json:"progress" binding:"gte=0,lte=100"`
	DependsOn   []int64 `json:"depends_on"` // 前置任务ID
}

// UpdateTaskRequest 更新任务请求
type UpdateTaskRequest struct {
	ID          int64   `json:"id" binding:"required"`
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	StatusID    *int64  `json:"status_id"`
	StartDate   *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Progress    *int    `json:"progress" binding:"omitempty,gte=0,lte=100"`
	DependsOn   []int64 `json:"depends_on"` // 非nil时整体替换依赖
}

// GetTaskRequest 获取任务详情请求
type GetTaskRequest struct {
	ID int64 `form:"id" binding:"required"`
}

// TaskListQuery 任务列表查询参数
type TaskListQuery struct {
	PageQuery
	ProjectID *int64 `form:"project_id"`
	StatusID  *int64 `form:"status_id"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name created_at start_date due_date"`
	SortDesc  bool   `form:"sort_desc"`
}

// AssignTaskResourceRequest 任务资源分配请求
type AssignTaskResourceRequest struct {
	TaskID         int64 `json:"task_id" binding:"required"`
	ResourceID     int64 `json:"resource_id" binding:"required"`
	AllocatedHours int   `json:"allocated_hours" binding:"gte=0"`
}

// TaskResponse 任务响应
type TaskResponse struct {
	ID          int64               `json:"id"`
	ProjectID   int64               `json:"project_id"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	StatusID    *int64              `json:"status_id"`
	Status      *LookupResponse     `json:"status,omitempty"`
	StartDate   *string             `json:"start_date"`
	DueDate     *string             `json:"due_date"`
	Progress    int                 `json:"progress"`
	DependsOn   []int64             `json:"depends_on"`
	Resources   []*TaskResourceItem `json:"resources,omitempty"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

// TaskResourceItem 任务资源响应项
type TaskResourceItem struct {
	ResourceID     int64  `json:"resource_id"`
	ResourceName   string `json:"resource_name"`
	AllocatedHours int    `json:"allocated_hours"`
}
