package repository

import (
	"errors"

	"gorm.io/gorm"

	"pm-dashboard/internal/model"
	pkgErrors "pm-dashboard/pkg/responses"
)

// FeatureListFilter 特性列表过滤条件
type FeatureListFilter struct {
	Keyword    string
	ProjectID  *int64
	FunctionID *int64
	PlatformID *int64
	StatusID   *int64
	SortBy     string
	SortDesc   bool
}

type FeatureRepository interface {
	Create(feature *model.Feature) error
	FindByID(id int64, opts ...QueryOption) (*model.Feature, error)
	List(page, pageSize int, filter *FeatureListFilter, opts ...QueryOption) ([]*model.Feature, int64, error)
	Update(feature *model.Feature) error
	Delete(id int64) error
}

type featureRepository struct {
	db *gorm.DB
}

func NewFeatureRepository(db *gorm.DB) FeatureRepository {
	return &featureRepository{db: db}
}

func (r *featureRepository) Create(feature *model.Feature) error {
	if err := r.db.Create(feature).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建特性失败", err)
	}
	return nil
}

func (r *featureRepository) FindByID(id int64, opts ...QueryOption) (*model.Feature, error) {
	var feature model.Feature
	err := applyOptions(r.db, opts).First(&feature, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询特性失败", err)
	}
	return &feature, nil
}

func (r *featureRepository) List(page, pageSize int, filter *FeatureListFilter, opts ...QueryOption) ([]*model.Feature, int64, error) {
	var features []*model.Feature
	var total int64

	query := applyOptions(r.db.Model(&model.Feature{}), opts)

	if filter != nil {
		if filter.Keyword != "" {
			query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
		}
		if filter.ProjectID != nil {
			query = query.Where("project_id = ?", *filter.ProjectID)
		}
		if filter.FunctionID != nil {
			query = query.Where("function_id = ?", *filter.FunctionID)
		}
		if filter.PlatformID != nil {
			query = query.Where("platform_id = ?", *filter.PlatformID)
		}
		if filter.StatusID != nil {
			query = query.Where("status_id = ?", *filter.StatusID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计特性数量失败", err)
	}

	var sortBy string
	var sortDesc bool
	if filter != nil {
		sortBy = filter.SortBy
		sortDesc = filter.SortDesc
	}
	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Order(orderClause(sortBy, sortDesc, "created_at")).
		Preload("Function").Preload("Platform").Preload("Status").
		Find(&features).Error
	if err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询特性列表失败", err)
	}

	return features, total, nil
}

func (r *featureRepository) Update(feature *model.Feature) error {
	if err := r.db.Save(feature).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新特性失败", err)
	}
	return nil
}

func (r *featureRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 解除待办与特性的关联, 保留待办本身
		if err := tx.Model(&model.Backlog{}).Where("feature_id = ?", id).
			Update("feature_id", nil).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "解除待办关联失败", err)
		}
		if err := tx.Delete(&model.Feature{}, id).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除特性失败", err)
		}
		return nil
	})
}
