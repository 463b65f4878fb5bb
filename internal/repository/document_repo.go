package repository

import (
	"errors"

	"gorm.io/gorm"

	"pm-dashboard/internal/model"
	pkgErrors "pm-dashboard/pkg/responses"
)

type DocumentRepository interface {
	Create(doc *model.Document) error
	FindByID(id int64) (*model.Document, error)
	ListWithEmbeddings(projectID *int64) ([]*model.Document, error)
	Delete(id int64) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *model.Document) error {
	if err := r.db.Create(doc).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建文档失败", err)
	}
	return nil
}

func (r *documentRepository) FindByID(id int64) (*model.Document, error) {
	var doc model.Document
	err := r.db.First(&doc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询文档失败", err)
	}
	return &doc, nil
}

// ListWithEmbeddings 取出全部带向量的文档做相似度计算
// 知识库规模在千级以内, 全量加载可接受
func (r *documentRepository) ListWithEmbeddings(projectID *int64) ([]*model.Document, error) {
	var docs []*model.Document
	query := r.db.Model(&model.Document{})
	if projectID != nil {
		query = query.Where("project_id = ? OR project_id IS NULL", *projectID)
	}
	if err := query.Find(&docs).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询文档列表失败", err)
	}
	return docs, nil
}

func (r *documentRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Document{}, id)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除文档失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}
