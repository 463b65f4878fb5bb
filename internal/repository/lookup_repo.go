package repository

import (
	"gorm.io/gorm"

	"pm-dashboard/internal/model"
	pkgErrors "pm-dashboard/pkg/responses"
)

// LookupKind 字典表种类
type LookupKind string

const (
	LookupStatus          LookupKind = "status"
	LookupPriority        LookupKind = "priority"
	LookupFunction        LookupKind = "function"
	LookupPlatform        LookupKind = "platform"
	LookupPortfolio       LookupKind = "portfolio"
	LookupApplicationType LookupKind = "application_type"
	LookupInvestmentType  LookupKind = "investment_type"
	LookupProjectType     LookupKind = "project_type"
)

// lookupModel 种类到模型的映射
func lookupModel(kind LookupKind) interface{} {
	switch kind {
	case LookupStatus:
		return &model.Status{}
	case LookupPriority:
		return &model.Priority{}
	case LookupFunction:
		return &model.Function{}
	case LookupPlatform:
		return &model.Platform{}
	case LookupPortfolio:
		return &model.Portfolio{}
	case LookupApplicationType:
		return &model.ApplicationType{}
	case LookupInvestmentType:
		return &model.InvestmentType{}
	case LookupProjectType:
		return &model.ProjectType{}
	default:
		return nil
	}
}

// IsValidLookupKind 判断字典种类是否合法
func IsValidLookupKind(kind string) bool {
	return lookupModel(LookupKind(kind)) != nil
}

type LookupRepository interface {
	ListStatuses(category string) ([]*model.Status, error)
	ListPriorities() ([]*model.Priority, error)
	ListFunctions() ([]*model.Function, error)
	ListPlatforms() ([]*model.Platform, error)
	ListPortfolios() ([]*model.Portfolio, error)
	ListApplicationTypes() ([]*model.ApplicationType, error)
	ListInvestmentTypes() ([]*model.InvestmentType, error)
	ListProjectTypes() ([]*model.ProjectType, error)
	Exists(kind LookupKind, id int64) (bool, error)
	Create(kind LookupKind, base model.LookupBase, category string, rank int) (int64, error)
	Update(kind LookupKind, id int64, name, color *string, sortOrder *int) error
}

type lookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) ListStatuses(category string) ([]*model.Status, error) {
	var items []*model.Status
	query := r.db.Order("sort_order ASC, id ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询状态字典失败", err)
	}
	return items, nil
}

func (r *lookupRepository) ListPriorities() ([]*model.Priority, error) {
	var items []*model.Priority
	// rank是MySQL保留字, 必须加反引号
	if err := r.db.Order("`rank` ASC, id ASC").Find(&items).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询优先级字典失败", err)
	}
	return items, nil
}

func (r *lookupRepository) ListFunctions() ([]*model.Function, error) {
	var items []*model.Function
	if err := r.db.Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询功能域字典失败", err)
	}
	return items, nil
}

func (r *lookupRepository) ListPlatforms() ([]*model.Platform, error) {
	var items []*model.Platform
	if err := r.db.Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询平台字典失败", err)
	}
	return items, nil
}

func (r *lookupRepository) ListPortfolios() ([]*model.Portfolio, error) {
	var items []*model.Portfolio
	if err := r.db.Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目组合字典失败", err)
	}
	return items, nil
}

func (r *lookupRepository) ListApplicationTypes() ([]*model.ApplicationType, error) {
	var items []*model.ApplicationType
	if err := r.db.Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询应用类型字典失败", err)
	}
	return items, nil
}

func (r *lookupRepository) ListInvestmentTypes() ([]*model.InvestmentType, error) {
	var items []*model.InvestmentType
	if err := r.db.Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询投资类型字典失败", err)
	}
	return items, nil
}

func (r *lookupRepository) ListProjectTypes() ([]*model.ProjectType, error) {
	var items []*model.ProjectType
	if err := r.db.Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目类型字典失败", err)
	}
	return items, nil
}

// Exists 判断字典项是否存在, 外键校验用
func (r *lookupRepository) Exists(kind LookupKind, id int64) (bool, error) {
	m := lookupModel(kind)
	if m == nil {
		return false, pkgErrors.ErrBadRequest
	}
	var count int64
	if err := r.db.Model(m).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询字典项失败", err)
	}
	return count > 0, nil
}

// Create 创建字典项, 按种类构造具体模型以走gorm的时间戳钩子
func (r *lookupRepository) Create(kind LookupKind, base model.LookupBase, category string, rank int) (int64, error) {
	var item interface{}
	id := &base.ID
	switch kind {
	case LookupStatus:
		m := &model.Status{LookupBase: base, Category: category}
		item, id = m, &m.ID
	case LookupPriority:
		m := &model.Priority{LookupBase: base, Rank: rank}
		item, id = m, &m.ID
	case LookupFunction:
		m := &model.Function{LookupBase: base}
		item, id = m, &m.ID
	case LookupPlatform:
		m := &model.Platform{LookupBase: base}
		item, id = m, &m.ID
	case LookupPortfolio:
		m := &model.Portfolio{LookupBase: base}
		item, id = m, &m.ID
	case LookupApplicationType:
		m := &model.ApplicationType{LookupBase: base}
		item, id = m, &m.ID
	case LookupInvestmentType:
		m := &model.InvestmentType{LookupBase: base}
		item, id = m, &m.ID
	case LookupProjectType:
		m := &model.ProjectType{LookupBase: base}
		item, id = m, &m.ID
	default:
		return 0, pkgErrors.ErrBadRequest
	}

	if err := r.db.Create(item).Error; err != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建字典项失败", err)
	}
	return *id, nil
}

func (r *lookupRepository) Update(kind LookupKind, id int64, name, color *string, sortOrder *int) error {
	m := lookupModel(kind)
	if m == nil {
		return pkgErrors.ErrBadRequest
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if color != nil {
		updates["color"] = *color
	}
	if sortOrder != nil {
		updates["sort_order"] = *sortOrder
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(m).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新字典项失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}
