package model

import "time"

const TaskTableName = "tasks"

// Task 任务模型, 依赖关系用于前端甘特图渲染
type Task struct {
	BaseModelWithSoftDelete
	ProjectID   int64   `gorm:"not null;index" json:"project_id"`
	Name        string  `gorm:"size:200;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	StatusID    *int64  `gorm:"index" json:"status_id"`

	StartDate *time.Time `json:"start_date"`
	DueDate   *time.Time `json:"due_date"`
	Progress  int        `gorm:"not null;default:0" json:"progress"` // 0-100

	Status       *Status           `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Dependencies []*TaskDependency `gorm:"foreignKey:TaskID" json:"dependencies,omitempty"`
	Resources    []*TaskResource   `gorm:"foreignKey:TaskID" json:"resources,omitempty"`
}

func (Task) TableName() string {
	return TaskTableName
}

// TaskDependency 任务依赖关系, task依赖depends_on先行完成
type TaskDependency struct {
	BaseModel
	TaskID      int64 `gorm:"not null;uniqueIndex:uk_task_dependency" json:"task_id"`
	DependsOnID int64 `gorm:"not null;uniqueIndex:uk_task_dependency" json:"depends_on_id"`
}

func (TaskDependency) TableName() string { return "task_dependencies" }

// TaskResource 任务-资源关联, 携带分配工时
type TaskResource struct {
	BaseModel
	TaskID         int64 `gorm:"not null;uniqueIndex:uk_task_resource" json:"task_id"`
	ResourceID     int64 `gorm:"not null;uniqueIndex:uk_task_resource" json:"resource_id"`
	AllocatedHours int   `gorm:"not null;default:0" json:"allocated_hours"`

	Resource *Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
}

func (TaskResource) TableName() string { return "task_resources" }
