package dto

// DashboardQuery 看板查询参数
type DashboardQuery struct {
	ProjectID *int64 `form:"project_id"` // 可选: 限定单个项目
}

// DashboardSummary 看板总览
type DashboardSummary struct {
	ProjectCount  int64 `json:"project_count"`
	TaskCount     int64 `json:"task_count"`
	FeatureCount  int64 `json:"feature_count"`
	BacklogCount  int64 `json:"backlog_count"`
	ResourceCount int64 `json:"resource_count"`
	RiskCount     int64 `json:"risk_count"`
	HighRiskCount int64 `json:"high_risk_count"`
}

// BucketCount 单维度分组计数
type BucketCount struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
	Count int64  `json:"count"`
}

// MatrixCell 功能域×状态矩阵单元
type MatrixCell struct {
	FunctionID   int64  `json:"function_id"`
	FunctionName string `json:"function_name"`
	StatusID     int64  `json:"status_id"`
	StatusName   string `json:"status_name"`
	Count        int64  `json:"count"`
}

// FeatureMatrixResponse 特性矩阵响应
type FeatureMatrixResponse struct {
	Cells []MatrixCell `json:"cells"`
	Total int64        `json:"total"`
}

// ResourceUtilizationItem 资源利用率项
type ResourceUtilizationItem struct {
	ResourceID          int64  `json:"resource_id"`
	ResourceName        string `json:"resource_name"`
	AvailabilityPercent int    `json:"availability_percent"`
	AllocatedPercent    int    `json:"allocated_percent"` // 所有活跃项目分配之和
	Overallocated       bool   `json:"overallocated"`
}
