package model

const BacklogTableName = "backlogs"

// Backlog 待办事项模型
type Backlog struct {
	BaseModelWithSoftDelete
	ProjectID   int64   `gorm:"not null;index" json:"project_id"`
	FeatureID   *int64  `gorm:"index" json:"feature_id"` // 可选关联特性
	Title       string  `gorm:"size:200;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description"`

	PriorityID    *int64 `gorm:"index" json:"priority_id"`
	TargetQuarter string `gorm:"size:10;index" json:"target_quarter"` // 例: 2026Q1

	Priority *Priority `gorm:"foreignKey:PriorityID" json:"priority,omitempty"`
}

func (Backlog) TableName() string {
	return BacklogTableName
}
