package model

// LookupBase 字典表公共字段
// 字典数据由seed.yaml一次性灌入, 运行时基本只读
type LookupBase struct {
	BaseModel
	Name      string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Color     string `gorm:"size:20" json:"color"` // 前端图表配色
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
}

// Status 状态字典
type Status struct {
	LookupBase
	Category string `gorm:"size:50;index" json:"category"` // project/task/feature/risk
}

func (Status) TableName() string { return "statuses" }

// Priority 优先级字典
type Priority struct {
	LookupBase
	Rank int `gorm:"not null;default:0" json:"rank"` // 数字越小优先级越高
}

func (Priority) TableName() string { return "priorities" }

// Function 业务功能域字典
type Function struct {
	LookupBase
}

func (Function) TableName() string { return "functions" }

// Platform 平台字典
type Platform struct {
	LookupBase
}

func (Platform) TableName() string { return "platforms" }

// Portfolio 项目组合字典
type Portfolio struct {
	LookupBase
}

func (Portfolio) TableName() string { return "portfolios" }

// ApplicationType 应用类型字典
type ApplicationType struct {
	LookupBase
}

func (ApplicationType) TableName() string { return "application_types" }

// InvestmentType 投资类型字典
type InvestmentType struct {
	LookupBase
}

func (InvestmentType) TableName() string { return "investment_types" }

// ProjectType 项目类型字典
type ProjectType struct {
	LookupBase
}

func (ProjectType) TableName() string { return "project_types" }
