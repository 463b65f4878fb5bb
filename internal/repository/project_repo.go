package repository

import (
	"errors"

	"gorm.io/gorm"

	"pm-dashboard/internal/model"
	pkgErrors "pm-dashboard/pkg/responses"
)

// ProjectListFilter 项目列表过滤条件
type ProjectListFilter struct {
	Keyword     string
	StatusID    *int64
	PriorityID  *int64
	PortfolioID *int64
	SortBy      string
	SortDesc    bool
}

type ProjectRepository interface {
	Create(project *model.Project) error
	FindByID(id int64, opts ...QueryOption) (*model.Project, error)
	FindByName(name string) (*model.Project, error)
	List(page, pageSize int, filter *ProjectListFilter, opts ...QueryOption) ([]*model.Project, int64, error)
	ListAll(opts ...QueryOption) ([]*model.Project, error)
	Update(project *model.Project) error
	Delete(id int64) error
	CountChildren(id int64) (int64, error)
	ReplaceFunctions(projectID int64, functionIDs []int64) error
	ReplacePlatforms(projectID int64, platformIDs []int64) error
	ListAllocations(projectID int64) ([]*model.ProjectResource, error)
	UpsertAllocation(allocation *model.ProjectResource) error
	RemoveAllocation(projectID, resourceID int64) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *model.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建项目失败", err)
	}
	return nil
}

func (r *projectRepository) FindByID(id int64, opts ...QueryOption) (*model.Project, error) {
	var project model.Project
	err := applyOptions(r.db, opts).First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrProjectNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) FindByName(name string) (*model.Project, error) {
	var project model.Project
	err := r.db.Where("name = ?", name).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrProjectNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) List(page, pageSize int, filter *ProjectListFilter, opts ...QueryOption) ([]*model.Project, int64, error) {
	var projects []*model.Project
	var total int64

	query := applyOptions(r.db.Model(&model.Project{}), opts)

	if filter != nil {
		if filter.Keyword != "" {
			query = query.Where("name LIKE ? OR description LIKE ?",
				"%"+filter.Keyword+"%", "%"+filter.Keyword+"%")
		}
		if filter.StatusID != nil {
			query = query.Where("status_id = ?", *filter.StatusID)
		}
		if filter.PriorityID != nil {
			query = query.Where("priority_id = ?", *filter.PriorityID)
		}
		if filter.PortfolioID != nil {
			query = query.Where("portfolio_id = ?", *filter.PortfolioID)
		}
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计项目数量失败", err)
	}

	// 分页查询, id兜底排序保证分页稳定
	var sortBy string
	var sortDesc bool
	if filter != nil {
		sortBy = filter.SortBy
		sortDesc = filter.SortDesc
	}
	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Order(orderClause(sortBy, sortDesc, "created_at")).
		Preload("Status").Preload("Priority").Preload("Portfolio").
		Find(&projects).Error
	if err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目列表失败", err)
	}

	return projects, total, nil
}

func (r *projectRepository) ListAll(opts ...QueryOption) ([]*model.Project, error) {
	var projects []*model.Project
	err := applyOptions(r.db, opts).Order("name ASC").Find(&projects).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目列表失败", err)
	}
	return projects, nil
}

func (r *projectRepository) Update(project *model.Project) error {
	if err := r.db.Save(project).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新项目失败", err)
	}
	return nil
}

func (r *projectRepository) Delete(id int64) error {
	if err := r.db.Delete(&model.Project{}, id).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除项目失败", err)
	}
	return nil
}

// CountChildren 统计项目下的子实体数量, 删除前校验
func (r *projectRepository) CountChildren(id int64) (int64, error) {
	var total int64
	children := []interface{}{&model.Task{}, &model.Feature{}, &model.Backlog{}, &model.Risk{}}
	for _, child := range children {
		var count int64
		if err := r.db.Model(child).Where("project_id = ?", id).Count(&count).Error; err != nil {
			return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计项目子实体失败", err)
		}
		total += count
	}
	return total, nil
}

// ReplaceFunctions 整体替换项目的功能域关联
func (r *projectRepository) ReplaceFunctions(projectID int64, functionIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectFunction{}).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "清除功能域关联失败", err)
		}
		for _, fid := range functionIDs {
			if err := tx.Create(&model.ProjectFunction{ProjectID: projectID, FunctionID: fid}).Error; err != nil {
				return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建功能域关联失败", err)
			}
		}
		return nil
	})
}

// ReplacePlatforms 整体替换项目的平台关联
func (r *projectRepository) ReplacePlatforms(projectID int64, platformIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectPlatform{}).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "清除平台关联失败", err)
		}
		for _, pid := range platformIDs {
			if err := tx.Create(&model.ProjectPlatform{ProjectID: projectID, PlatformID: pid}).Error; err != nil {
				return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建平台关联失败", err)
			}
		}
		return nil
	})
}

func (r *projectRepository) ListAllocations(projectID int64) ([]*model.ProjectResource, error) {
	var allocations []*model.ProjectResource
	err := r.db.Where("project_id = ?", projectID).Preload("Resource").Find(&allocations).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询资源分配失败", err)
	}
	return allocations, nil
}

// UpsertAllocation 创建或更新资源分配, (project, resource)唯一
func (r *projectRepository) UpsertAllocation(allocation *model.ProjectResource) error {
	var existing model.ProjectResource
	err := r.db.Where("project_id = ? AND resource_id = ?", allocation.ProjectID, allocation.ResourceID).
		First(&existing).Error
	if err == nil {
		existing.AllocationPercent = allocation.AllocationPercent
		if err := r.db.Save(&existing).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新资源分配失败", err)
		}
		allocation.ID = existing.ID
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询资源分配失败", err)
	}
	if err := r.db.Create(allocation).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建资源分配失败", err)
	}
	return nil
}

func (r *projectRepository) RemoveAllocation(projectID, resourceID int64) error {
	result := r.db.Where("project_id = ? AND resource_id = ?", projectID, resourceID).
		Delete(&model.ProjectResource{})
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除资源分配失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}
