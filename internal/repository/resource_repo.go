package repository

import (
	"errors"

	"gorm.io/gorm"

	"pm-dashboard/internal/model"
	pkgErrors "pm-dashboard/pkg/responses"
)

// ResourceListFilter 资源列表过滤条件
type ResourceListFilter struct {
	Keyword  string
	Skill    string
	SortBy   string
	SortDesc bool
}

type ResourceRepository interface {
	Create(resource *model.Resource) error
	FindByID(id int64, opts ...QueryOption) (*model.Resource, error)
	FindByName(name string) (*model.Resource, error)
	List(page, pageSize int, filter *ResourceListFilter) ([]*model.Resource, int64, error)
	ListAll() ([]*model.Resource, error)
	Update(resource *model.Resource) error
	Delete(id int64) error
	ListAllocationsByResource(resourceID int64) ([]*model.ProjectResource, error)
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(resource *model.Resource) error {
	if err := r.db.Create(resource).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建资源失败", err)
	}
	return nil
}

func (r *resourceRepository) FindByID(id int64, opts ...QueryOption) (*model.Resource, error) {
	var resource model.Resource
	err := applyOptions(r.db, opts).First(&resource, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询资源失败", err)
	}
	return &resource, nil
}

func (r *resourceRepository) FindByName(name string) (*model.Resource, error) {
	var resource model.Resource
	err := r.db.Where("name = ?", name).First(&resource).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询资源失败", err)
	}
	return &resource, nil
}

func (r *resourceRepository) List(page, pageSize int, filter *ResourceListFilter) ([]*model.Resource, int64, error) {
	var resources []*model.Resource
	var total int64

	query := r.db.Model(&model.Resource{})

	if filter != nil {
		if filter.Keyword != "" {
			query = query.Where("name LIKE ? OR role LIKE ?",
				"%"+filter.Keyword+"%", "%"+filter.Keyword+"%")
		}
		if filter.Skill != "" {
			// JSON数组按字符串匹配, 字典规模下足够
			query = query.Where("skills LIKE ?", "%\""+filter.Skill+"\"%")
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计资源数量失败", err)
	}

	var sortBy string
	var sortDesc bool
	if filter != nil {
		sortBy = filter.SortBy
		sortDesc = filter.SortDesc
	}
	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Order(orderClause(sortBy, sortDesc, "name")).
		Find(&resources).Error
	if err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询资源列表失败", err)
	}

	return resources, total, nil
}

func (r *resourceRepository) ListAll() ([]*model.Resource, error) {
	var resources []*model.Resource
	if err := r.db.Order("name ASC").Find(&resources).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询资源列表失败", err)
	}
	return resources, nil
}

func (r *resourceRepository) Update(resource *model.Resource) error {
	if err := r.db.Save(resource).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新资源失败", err)
	}
	return nil
}

func (r *resourceRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 连带清理项目与任务分配
		if err := tx.Where("resource_id = ?", id).Delete(&model.ProjectResource{}).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "清理项目分配失败", err)
		}
		if err := tx.Where("resource_id = ?", id).Delete(&model.TaskResource{}).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "清理任务分配失败", err)
		}
		if err := tx.Delete(&model.Resource{}, id).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除资源失败", err)
		}
		return nil
	})
}

func (r *resourceRepository) ListAllocationsByResource(resourceID int64) ([]*model.ProjectResource, error) {
	var allocations []*model.ProjectResource
	err := r.db.Where("resource_id = ?", resourceID).Find(&allocations).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询资源分配失败", err)
	}
	return allocations, nil
}
