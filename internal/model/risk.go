package model

const RiskTableName = "risks"

// Risk 风险模型, score = probability * impact
type Risk struct {
	BaseModelWithSoftDelete
	ProjectID   int64   `gorm:"not null;index" json:"project_id"`
	Title       string  `gorm:"size:200;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description"`

	Probability int     `gorm:"not null;default:1" json:"probability"` // 1-5
	Impact      int     `gorm:"not null;default:1" json:"impact"`      // 1-5
	Mitigation  *string `gorm:"type:text" json:"mitigation"`
	StatusID    *int64  `gorm:"index" json:"status_id"`

	Status *Status `gorm:"foreignKey:StatusID" json:"status,omitempty"`
}

func (Risk) TableName() string {
	return RiskTableName
}
