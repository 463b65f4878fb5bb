package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const ProjectTableName = "projects"

// Project 项目模型
type Project struct {
	BaseModelWithSoftDelete
	Name        string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	OwnerName   *string `gorm:"size:100" json:"owner_name"`

	StatusID          *int64 `gorm:"index" json:"status_id"`
	PriorityID        *int64 `gorm:"index" json:"priority_id"`
	PortfolioID       *int64 `gorm:"index" json:"portfolio_id"`
	ProjectTypeID     *int64 `json:"project_type_id"`
	InvestmentTypeID  *int64 `json:"investment_type_id"`
	ApplicationTypeID *int64 `json:"application_type_id"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	Budget     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"budget"`
	ActualCost decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"actual_cost"`

	Status    *Status    `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Priority  *Priority  `gorm:"foreignKey:PriorityID" json:"priority,omitempty"`
	Portfolio *Portfolio `gorm:"foreignKey:PortfolioID" json:"portfolio,omitempty"`

	Tasks     []*Task    `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Features  []*Feature `gorm:"foreignKey:ProjectID" json:"features,omitempty"`
	Backlogs  []*Backlog `gorm:"foreignKey:ProjectID" json:"backlogs,omitempty"`
	Risks     []*Risk    `gorm:"foreignKey:ProjectID" json:"risks,omitempty"`
	Functions []*Function `gorm:"many2many:project_functions" json:"functions,omitempty"`
	Platforms []*Platform `gorm:"many2many:project_platforms" json:"platforms,omitempty"`
}

func (Project) TableName() string {
	return ProjectTableName
}

// ProjectResource 项目-资源关联, 携带分配百分比
type ProjectResource struct {
	BaseModel
	ProjectID         int64 `gorm:"not null;uniqueIndex:uk_project_resource" json:"project_id"`
	ResourceID        int64 `gorm:"not null;uniqueIndex:uk_project_resource" json:"resource_id"`
	AllocationPercent int   `gorm:"not null;default:0" json:"allocation_percent"` // 0-100

	Resource *Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
}

func (ProjectResource) TableName() string { return "project_resources" }

// ProjectFunction 项目-功能域关联
type ProjectFunction struct {
	ProjectID  int64 `gorm:"primaryKey" json:"project_id"`
	FunctionID int64 `gorm:"primaryKey" json:"function_id"`
}

func (ProjectFunction) TableName() string { return "project_functions" }

// ProjectPlatform 项目-平台关联
type ProjectPlatform struct {
	ProjectID  int64 `gorm:"primaryKey" json:"project_id"`
	PlatformID int64 `gorm:"primaryKey" json:"platform_id"`
}

func (ProjectPlatform) TableName() string { return "project_platforms" }
