package repository

import (
	"errors"

	"gorm.io/gorm"

	"pm-dashboard/internal/model"
	pkgErrors "pm-dashboard/pkg/responses"
)

// TaskListFilter 任务列表过滤条件
type TaskListFilter struct {
	Keyword   string
	ProjectID *int64
	StatusID  *int64
	SortBy    string
	SortDesc  bool
}

type TaskRepository interface {
	Create(task *model.Task) error
	FindByID(id int64, opts ...QueryOption) (*model.Task, error)
	List(page, pageSize int, filter *TaskListFilter, opts ...QueryOption) ([]*model.Task, int64, error)
	ListByProjectID(projectID int64) ([]*model.Task, error)
	Update(task *model.Task) error
	Delete(id int64) error
	ReplaceDependencies(taskID int64, dependsOn []int64) error
	ListDependencies(taskID int64) ([]*model.TaskDependency, error)
	UpsertResource(assignment *model.TaskResource) error
	RemoveResource(taskID, resourceID int64) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *model.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建任务失败", err)
	}
	return nil
}

func (r *taskRepository) FindByID(id int64, opts ...QueryOption) (*model.Task, error) {
	var task model.Task
	err := applyOptions(r.db, opts).First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询任务失败", err)
	}
	return &task, nil
}

func (r *taskRepository) List(page, pageSize int, filter *TaskListFilter, opts ...QueryOption) ([]*model.Task, int64, error) {
	var tasks []*model.Task
	var total int64

	query := applyOptions(r.db.Model(&model.Task{}), opts)

	if filter != nil {
		if filter.Keyword != "" {
			query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
		}
		if filter.ProjectID != nil {
			query = query.Where("project_id = ?", *filter.ProjectID)
		}
		if filter.StatusID != nil {
			query = query.Where("status_id = ?", *filter.StatusID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计任务数量失败", err)
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
		Preload("Status").Preload("Dependencies").Preload("Resources.Resource").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询任务列表失败", err)
	}

	return tasks, total, nil
}

// ListByProjectID 项目全部任务, 甘特图用
func (r *taskRepository) ListByProjectID(projectID int64) ([]*model.Task, error) {
	var tasks []*model.Task
	err := r.db.Where("project_id = ?", projectID).
		Order("start_date ASC, id ASC").
		Preload("Status").Preload("Dependencies").Preload("Resources.Resource").
		Find(&tasks).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目任务失败", err)
	}
	return tasks, nil
}

func (r *taskRepository) Update(task *model.Task) error {
	if err := r.db.Save(task).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新任务失败", err)
	}
	return nil
}

func (r *taskRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 连带清理依赖关系(两个方向)与资源分配
		if err := tx.Where("task_id = ? OR depends_on_id = ?", id, id).
			Delete(&model.TaskDependency{}).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "清理任务依赖失败", err)
		}
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskResource{}).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "清理任务资源失败", err)
		}
		if err := tx.Delete(&model.Task{}, id).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除任务失败", err)
		}
		return nil
	})
}

// ReplaceDependencies 整体替换任务依赖
func (r *taskRepository) ReplaceDependencies(taskID int64, dependsOn []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.TaskDependency{}).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "清除任务依赖失败", err)
		}
		for _, depID := range dependsOn {
			if err := tx.Create(&model.TaskDependency{TaskID: taskID, DependsOnID: depID}).Error; err != nil {
				return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建任务依赖失败", err)
			}
		}
		return nil
	})
}

func (r *taskRepository) ListDependencies(taskID int64) ([]*model.TaskDependency, error) {
	var deps []*model.TaskDependency
	if err := r.db.Where("task_id = ?", taskID).Find(&deps).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询任务依赖失败", err)
	}
	return deps, nil
}

// UpsertResource 创建或更新任务资源分配, (task, resource)唯一
func (r *taskRepository) UpsertResource(assignment *model.TaskResource) error {
	var existing model.TaskResource
	err := r.db.Where("task_id = ? AND resource_id = ?", assignment.TaskID, assignment.ResourceID).
		First(&existing).Error
	if err == nil {
		existing.AllocatedHours = assignment.AllocatedHours
		if err := r.db.Save(&existing).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新任务资源失败", err)
		}
		assignment.ID = existing.ID
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询任务资源失败", err)
	}
	if err := r.db.Create(assignment).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建任务资源失败", err)
	}
	return nil
}

func (r *taskRepository) RemoveResource(taskID, resourceID int64) error {
	result := r.db.Where("task_id = ? AND resource_id = ?", taskID, resourceID).
		Delete(&model.TaskResource{})
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除任务资源失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}
