package model

import (
	"time"

	"gorm.io/gorm"
)

type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// BaseModelWithSoftDelete 基础模型
type BaseModelWithSoftDelete struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// All 返回全部模型, 供AutoMigrate使用
func All() []interface{} {
	return []interface{}{
		// 字典表
		&Status{}, &Priority{}, &Function{}, &Platform{},
		&Portfolio{}, &ApplicationType{}, &InvestmentType{}, &ProjectType{},
		// 主实体
		&Project{}, &Task{}, &Feature{}, &Backlog{}, &Resource{}, &Risk{},
		// 关联表
		&ProjectResource{}, &ProjectFunction{}, &ProjectPlatform{},
		&TaskDependency{}, &TaskResource{},
		// RAG文档
		&Document{},
	}
}
