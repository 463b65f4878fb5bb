package repository

import (
	"errors"

	"gorm.io/gorm"

	"pm-dashboard/internal/model"
	pkgErrors "pm-dashboard/pkg/responses"
)

// BacklogListFilter 待办列表过滤条件
type BacklogListFilter struct {
	Keyword       string
	ProjectID     *int64
	FeatureID     *int64
	PriorityID    *int64
	TargetQuarter string
	SortBy        string
	SortDesc      bool
}

type BacklogRepository interface {
	Create(backlog *model.Backlog) error
	FindByID(id int64, opts ...QueryOption) (*model.Backlog, error)
	List(page, pageSize int, filter *BacklogListFilter, opts ...QueryOption) ([]*model.Backlog, int64, error)
	Update(backlog *model.Backlog) error
	Delete(id int64) error
}

type backlogRepository struct {
	db *gorm.DB
}

func NewBacklogRepository(db *gorm.DB) BacklogRepository {
	return &backlogRepository{db: db}
}

func (r *backlogRepository) Create(backlog *model.Backlog) error {
	if err := r.db.Create(backlog).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建待办失败", err)
	}
	return nil
}

func (r *backlogRepository) FindByID(id int64, opts ...QueryOption) (*model.Backlog, error) {
	var backlog model.Backlog
	err := applyOptions(r.db, opts).First(&backlog, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询待办失败", err)
	}
	return &backlog, nil
}

func (r *backlogRepository) List(page, pageSize int, filter *BacklogListFilter, opts ...QueryOption) ([]*model.Backlog, int64, error) {
	var backlogs []*model.Backlog
	var total int64

	query := applyOptions(r.db.Model(&model.Backlog{}), opts)

	if filter != nil {
		if filter.Keyword != "" {
			query = query.Where("title LIKE ?", "%"+filter.Keyword+"%")
		}
		if filter.ProjectID != nil {
			query = query.Where("project_id = ?", *filter.ProjectID)
		}
		if filter.FeatureID != nil {
			query = query.Where("feature_id = ?", *filter.FeatureID)
		}
		if filter.PriorityID != nil {
			query = query.Where("priority_id = ?", *filter.PriorityID)
		}
		if filter.TargetQuarter != "" {
			query = query.Where("target_quarter = ?", filter.TargetQuarter)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计待办数量失败", err)
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
		Preload("Priority").
		Find(&backlogs).Error
	if err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询待办列表失败", err)
	}

	return backlogs, total, nil
}

func (r *backlogRepository) Update(backlog *model.Backlog) error {
	if err := r.db.Save(backlog).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新待办失败", err)
	}
	return nil
}

func (r *backlogRepository) Delete(id int64) error {
	if err := r.db.Delete(&model.Backlog{}, id).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除待办失败", err)
	}
	return nil
}
