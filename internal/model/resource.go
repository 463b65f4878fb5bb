package model

import "gorm.io/datatypes"

const ResourceTableName = "resources"

// Resource 资源(团队成员)模型
// Skills存JSON字符串数组, 例: ["go","mysql","k8s"]
type Resource struct {
	BaseModelWithSoftDelete
	Name                string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Role                *string        `gorm:"size:100" json:"role"`
	Email               *string        `gorm:"size:200" json:"email"`
	Skills              datatypes.JSON `gorm:"type:json" json:"skills"`
	AvailabilityPercent int            `gorm:"not null;default:100" json:"availability_percent"` // 0-100

	ProjectAllocations []*ProjectResource `gorm:"foreignKey:ResourceID" json:"project_allocations,omitempty"`
	TaskAllocations    []*TaskResource    `gorm:"foreignKey:ResourceID" json:"task_allocations,omitempty"`
}

func (Resource) TableName() string {
	return ResourceTableName
}
