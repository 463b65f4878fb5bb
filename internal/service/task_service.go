package service

import (
	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/repository"
	"pm-dashboard/internal/ws"
	"pm-dashboard/pkg/constants"
	pkgErrors "pm-dashboard/pkg/responses"
)

type TaskService interface {
	Create(req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetByID(id int64) (*dto.TaskResponse, error)
	List(query *dto.TaskListQuery) ([]*dto.TaskResponse, int64, error)
	ListByProject(projectID int64) ([]*dto.TaskResponse, error)
	Update(id int64, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	Delete(id int64) error

	AssignResource(req *dto.AssignTaskResourceRequest) error
	RemoveResource(taskID, resourceID int64) error
}

type taskService struct {
	repo         repository.TaskRepository
	projectRepo  repository.ProjectRepository
	lookupRepo   repository.LookupRepository
	resourceRepo repository.ResourceRepository
	publisher    ws.Publisher
	invalidator  *DashboardInvalidator
	serverCfg    *config.ServerConfig
}

func NewTaskService(
	repo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	lookupRepo repository.LookupRepository,
	resourceRepo repository.ResourceRepository,
	publisher ws.Publisher,
	invalidator *DashboardInvalidator,
	serverCfg *config.ServerConfig,
) TaskService {
	return &taskService{
		repo:         repo,
		projectRepo:  projectRepo,
		lookupRepo:   lookupRepo,
		resourceRepo: resourceRepo,
		publisher:    publisher,
		invalidator:  invalidator,
		serverCfg:    serverCfg,
	}
}

func (s *taskService) Create(req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if _, err := s.projectRepo.FindByID(req.ProjectID); err != nil {
		return nil, err
	}
	if err := checkLookup(s.lookupRepo, repository.LookupStatus, req.StatusID); err != nil {
		return nil, err
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	// 依赖校验在入库前完成, 校验失败不留下孤儿任务
	if len(req.DependsOn) > 0 {
		if err := s.checkDependencies(0, req.DependsOn); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		StatusID:    req.StatusID,
		StartDate:   startDate,
		DueDate:     dueDate,
		Progress:    req.Progress,
	}

	if err := s.repo.Create(task); err != nil {
		return nil, err
	}

	if len(req.DependsOn) > 0 {
		if err := s.repo.ReplaceDependencies(task.ID, req.DependsOn); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.FindByID(task.ID,
		repository.WithPreload("Status"),
		repository.WithPreload("Dependencies"),
		repository.WithPreload("Resources.Resource"))
	if err != nil {
		return nil, err
	}

	resp := taskToResponse(created)
	s.invalidator.Invalidate(task.ProjectID)
	publish(s.publisher, constants.RoomProjects, constants.MsgTypeEntityCreated, resp)
	return resp, nil
}

func (s *taskService) GetByID(id int64) (*dto.TaskResponse, error) {
	task, err := s.repo.FindByID(id,
		repository.WithPreload("Status"),
		repository.WithPreload("Dependencies"),
		repository.WithPreload("Resources.Resource"))
	if err != nil {
		return nil, err
	}
	return taskToResponse(task), nil
}

func (s *taskService) List(query *dto.TaskListQuery) ([]*dto.TaskResponse, int64, error) {
	filter := &repository.TaskListFilter{
		Keyword:   query.Keyword,
		ProjectID: query.ProjectID,
		StatusID:  query.StatusID,
		SortBy:    query.SortBy,
		SortDesc:  query.SortDesc,
	}

	tasks, total, err := s.repo.List(query.GetPage(), query.GetPageSize(), filter, demoScope(s.serverCfg)...)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*dto.TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = taskToResponse(task)
	}
	return responses, total, nil
}

// ListByProject 项目全部任务, 按开始日期排序, 甘特图用
func (s *taskService) ListByProject(projectID int64) ([]*dto.TaskResponse, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListByProjectID(projectID)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = taskToResponse(task)
	}
	return responses, nil
}

func (s *taskService) Update(id int64, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := checkLookup(s.lookupRepo, repository.LookupStatus, req.StatusID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.StatusID != nil {
		task.StatusID = req.StatusID
	}
	if req.Progress != nil {
		task.Progress = *req.Progress
	}
	if req.StartDate != nil {
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		task.StartDate = startDate
	}
	if req.DueDate != nil {
		dueDate, err := parseDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}

	if err := s.repo.Update(task); err != nil {
		return nil, err
	}

	if req.DependsOn != nil {
		if err := s.checkDependencies(id, req.DependsOn); err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceDependencies(id, req.DependsOn); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.FindByID(id,
		repository.WithPreload("Status"),
		repository.WithPreload("Dependencies"),
		repository.WithPreload("Resources.Resource"))
	if err != nil {
		return nil, err
	}

	resp := taskToResponse(updated)
	s.invalidator.Invalidate(updated.ProjectID)
	publish(s.publisher, constants.RoomProjects, constants.MsgTypeEntityUpdated, resp)
	return resp, nil
}

func (s *taskService) Delete(id int64) error {
	task, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidator.Invalidate(task.ProjectID)
	publish(s.publisher, constants.RoomProjects, constants.MsgTypeEntityDeleted,
		map[string]interface{}{"id": id, "entity": "task"})
	return nil
}

func (s *taskService) AssignResource(req *dto.AssignTaskResourceRequest) error {
	if _, err := s.repo.FindByID(req.TaskID); err != nil {
		return err
	}
	if _, err := s.resourceRepo.FindByID(req.ResourceID); err != nil {
		return err
	}

	assignment := &model.TaskResource{
		TaskID:         req.TaskID,
		ResourceID:     req.ResourceID,
		AllocatedHours: req.AllocatedHours,
	}
	if err := s.repo.UpsertResource(assignment); err != nil {
		return err
	}

	publish(s.publisher, constants.RoomResources, constants.MsgTypeEntityUpdated,
		map[string]interface{}{"task_id": req.TaskID, "resource_id": req.ResourceID})
	return nil
}

func (s *taskService) RemoveResource(taskID, resourceID int64) error {
	if err := s.repo.RemoveResource(taskID, resourceID); err != nil {
		return err
	}
	publish(s.publisher, constants.RoomResources, constants.MsgTypeEntityUpdated,
		map[string]interface{}{"task_id": taskID, "resource_id": resourceID})
	return nil
}

// checkDependencies 校验依赖: 不允许依赖自身, 前置任务必须存在
func (s *taskService) checkDependencies(taskID int64, dependsOn []int64) error {
	for _, depID := range dependsOn {
		if depID == taskID {
			return pkgErrors.ErrSelfDependency
		}
		if _, err := s.repo.FindByID(depID); err != nil {
			return err
		}
	}
	return nil
}

// taskToResponse 任务模型转响应
func taskToResponse(task *model.Task) *dto.TaskResponse {
	resp := &dto.TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Name:        task.Name,
		Description: task.Description,
		StatusID:    task.StatusID,
		Status:      statusToLookup(task.Status),
		StartDate:   formatDate(task.StartDate),
		DueDate:     formatDate(task.DueDate),
		Progress:    task.Progress,
		CreatedAt:   formatTime(task.CreatedAt),
		UpdatedAt:   formatTime(task.UpdatedAt),
	}
	for _, dep := range task.Dependencies {
		resp.DependsOn = append(resp.DependsOn, dep.DependsOnID)
	}
	for _, tr := range task.Resources {
		item := &dto.TaskResourceItem{
			ResourceID:     tr.ResourceID,
			AllocatedHours: tr.AllocatedHours,
		}
		if tr.Resource != nil {
			item.ResourceName = tr.Resource.Name
		}
		resp.Resources = append(resp.Resources, item)
	}
	return resp
}
