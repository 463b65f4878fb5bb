package repository

import (
	"errors"

	"gorm.io/gorm"

	"pm-dashboard/internal/model"
	pkgErrors "pm-dashboard/pkg/responses"
)

// RiskListFilter 风险列表过滤条件
type RiskListFilter struct {
	Keyword   string
	ProjectID *int64
	StatusID  *int64
	MinScore  int // 按score下限过滤, 0表示不限
	MaxScore  int // 按score上限过滤, 0表示不限
	SortBy    string
	SortDesc  bool
}

type RiskRepository interface {
	Create(risk *model.Risk) error
	FindByID(id int64, opts ...QueryOption) (*model.Risk, error)
	List(page, pageSize int, filter *RiskListFilter, opts ...QueryOption) ([]*model.Risk, int64, error)
	Update(risk *model.Risk) error
	Delete(id int64) error
}

type riskRepository struct {
	db *gorm.DB
}

func NewRiskRepository(db *gorm.DB) RiskRepository {
	return &riskRepository{db: db}
}

func (r *riskRepository) Create(risk *model.Risk) error {
	if err := r.db.Create(risk).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建风险失败", err)
	}
	return nil
}

func (r *riskRepository) FindByID(id int64, opts ...QueryOption) (*model.Risk, error) {
	var risk model.Risk
	err := applyOptions(r.db, opts).First(&risk, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询风险失败", err)
	}
	return &risk, nil
}

func (r *riskRepository) List(page, pageSize int, filter *RiskListFilter, opts ...QueryOption) ([]*model.Risk, int64, error) {
	var risks []*model.Risk
	var total int64

	query := applyOptions(r.db.Model(&model.Risk{}), opts)

	if filter != nil {
		if filter.Keyword != "" {
			query = query.Where("title LIKE ?", "%"+filter.Keyword+"%")
		}
		if filter.ProjectID != nil {
			query = query.Where("project_id = ?", *filter.ProjectID)
		}
		if filter.StatusID != nil {
			query = query.Where("status_id = ?", *filter.StatusID)
		}
		if filter.MinScore > 0 {
			query = query.Where("probability * impact >= ?", filter.MinScore)
		}
		if filter.MaxScore > 0 {
			query = query.Where("probability * impact <= ?", filter.MaxScore)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计风险数量失败", err)
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
		Preload("Status").
		Find(&risks).Error
	if err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询风险列表失败", err)
	}

	return risks, total, nil
}

func (r *riskRepository) Update(risk *model.Risk) error {
	if err := r.db.Save(risk).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新风险失败", err)
	}
	return nil
}

func (r *riskRepository) Delete(id int64) error {
	if err := r.db.Delete(&model.Risk{}, id).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除风险失败", err)
	}
	return nil
}
