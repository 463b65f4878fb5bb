package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

const DocumentTableName = "documents"

// Vector 嵌入向量, JSON方式落库
type Vector []float64

// 实现 sql.Scanner
func (v *Vector) Scan(value interface{}) error {
	if value == nil {
		*v = Vector{}
		return nil
	}
	var bytes []byte
	switch raw := value.(type) {
	case []byte:
		bytes = raw
	case string:
		bytes = []byte(raw)
	default:
		return fmt.Errorf("cannot scan %T into Vector", value)
	}
	return json.Unmarshal(bytes, v)
}

// 实现 driver.Valuer
func (v Vector) Value() (driver.Value, error) {
	if len(v) == 0 {
		return "[]", nil
	}
	return json.Marshal(v)
}

// Document RAG知识库文档, 文本与向量同行存储
type Document struct {
	BaseModel
	Title     string  `gorm:"size:200;not null" json:"title"`
	Content   string  `gorm:"type:text;not null" json:"content"`
	Source    *string `gorm:"size:200" json:"source"`
	ProjectID *int64  `gorm:"index" json:"project_id"` // 可选关联项目
	Embedding Vector  `gorm:"type:json" json:"-"`
}

func (Document) TableName() string {
	return DocumentTableName
}
