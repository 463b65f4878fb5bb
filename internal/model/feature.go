package model

const FeatureTableName = "features"

// Feature 特性模型, 按功能域×平台分类
type Feature struct {
	BaseModelWithSoftDelete
	ProjectID   int64   `gorm:"not null;index" json:"project_id"`
	Name        string  `gorm:"size:200;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`

	FunctionID *int64 `gorm:"index" json:"function_id"`
	PlatformID *int64 `gorm:"index" json:"platform_id"`
	StatusID   *int64 `gorm:"index" json:"status_id"`

	BusinessValue int `gorm:"not null;default:0" json:"business_value"` // 1-10
	Effort        int `gorm:"not null;default:0" json:"effort"`         // 预估人日

	Function *Function  `gorm:"foreignKey:FunctionID" json:"function,omitempty"`
	Platform *Platform  `gorm:"foreignKey:PlatformID" json:"platform,omitempty"`
	Status   *Status    `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Backlogs []*Backlog `gorm:"foreignKey:FeatureID" json:"backlogs,omitempty"`
}

func (Feature) TableName() string {
	return FeatureTableName
}
