package service

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/repository"
	"pm-dashboard/internal/ws"
	"pm-dashboard/pkg/constants"
	pkgErrors "pm-dashboard/pkg/responses"
)

type ProjectService interface {
	Create(req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetByID(id int64, withRelations bool) (*dto.ProjectResponse, error)
	List(query *dto.ProjectListQuery) ([]*dto.ProjectResponse, int64, error)
	ListAll() ([]*dto.ProjectSimpleResponse, error)
	Update(id int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(id int64) error

	AllocateResource(req *dto.AllocateResourceRequest) error
	RemoveResourceAllocation(projectID, resourceID int64) error
}

type projectService struct {
	repo         repository.ProjectRepository
	lookupRepo   repository.LookupRepository
	resourceRepo repository.ResourceRepository
	publisher    ws.Publisher
	invalidator  *DashboardInvalidator
	serverCfg    *config.ServerConfig
}

func NewProjectService(
	repo repository.ProjectRepository,
	lookupRepo repository.LookupRepository,
	resourceRepo repository.ResourceRepository,
	publisher ws.Publisher,
	invalidator *DashboardInvalidator,
	serverCfg *config.ServerConfig,
) ProjectService {
	return &projectService{
		repo:         repo,
		lookupRepo:   lookupRepo,
		resourceRepo: resourceRepo,
		publisher:    publisher,
		invalidator:  invalidator,
		serverCfg:    serverCfg,
	}
}

func (s *projectService) Create(req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	// 检查项目名称是否已存在
	existing, _ := s.repo.FindByName(req.Name)
	if existing != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeConflict,
			fmt.Sprintf("项目 %s 已存在", req.Name), nil)
	}

	// 校验字典外键
	if err := s.checkLookups(req.StatusID, req.PriorityID, req.PortfolioID,
		req.ProjectTypeID, req.InvestmentTypeID, req.ApplicationTypeID); err != nil {
		return nil, err
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	budget, err := parseDecimal(req.Budget)
	if err != nil {
		return nil, err
	}
	actualCost, err := parseDecimal(req.ActualCost)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:              req.Name,
		Description:       req.Description,
		OwnerName:         req.OwnerName,
		StatusID:          req.StatusID,
		PriorityID:        req.PriorityID,
		PortfolioID:       req.PortfolioID,
		ProjectTypeID:     req.ProjectTypeID,
		InvestmentTypeID:  req.InvestmentTypeID,
		ApplicationTypeID: req.ApplicationTypeID,
		StartDate:         startDate,
		EndDate:           endDate,
		Budget:            budget,
		ActualCost:        actualCost,
	}

	if err := s.repo.Create(project); err != nil {
		return nil, err
	}

	// 功能域/平台关联
	if len(req.FunctionIDs) > 0 {
		if err := s.repo.ReplaceFunctions(project.ID, req.FunctionIDs); err != nil {
			return nil, err
		}
	}
	if len(req.PlatformIDs) > 0 {
		if err := s.repo.ReplacePlatforms(project.ID, req.PlatformIDs); err != nil {
			return nil, err
		}
	}

	resp := s.toResponse(project)
	s.invalidator.Invalidate(project.ID)
	publish(s.publisher, constants.RoomProjects, constants.MsgTypeEntityCreated, resp)
	return resp, nil
}

func (s *projectService) GetByID(id int64, withRelations bool) (*dto.ProjectResponse, error) {
	opts := []repository.QueryOption{
		repository.WithPreload("Status"),
		repository.WithPreload("Priority"),
		repository.WithPreload("Portfolio"),
		repository.WithPreload("Functions"),
		repository.WithPreload("Platforms"),
	}
	if withRelations {
		opts = append(opts,
			repository.WithPreload("Tasks"),
			repository.WithPreload("Tasks.Status"),
			repository.WithPreload("Features"),
			repository.WithPreload("Features.Status"),
			repository.WithPreload("Backlogs"),
			repository.WithPreload("Risks"),
			repository.WithPreload("Risks.Status"),
		)
	}

	project, err := s.repo.FindByID(id, opts...)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(project)

	if withRelations {
		allocations, err := s.repo.ListAllocations(id)
		if err != nil {
			return nil, err
		}
		resp.Resources = make([]*dto.AllocationItem, len(allocations))
		for i, allocation := range allocations {
			item := &dto.AllocationItem{
				ResourceID:        allocation.ResourceID,
				AllocationPercent: allocation.AllocationPercent,
			}
			if allocation.Resource != nil {
				item.ResourceName = allocation.Resource.Name
			}
			resp.Resources[i] = item
		}
	}

	return resp, nil
}

func (s *projectService) List(query *dto.ProjectListQuery) ([]*dto.ProjectResponse, int64, error) {
	filter := &repository.ProjectListFilter{
		Keyword:     query.Keyword,
		StatusID:    query.StatusID,
		PriorityID:  query.PriorityID,
		PortfolioID: query.PortfolioID,
		SortBy:      query.SortBy,
		SortDesc:    query.SortDesc,
	}

	projects, total, err := s.repo.List(
		query.GetPage(),
		query.GetPageSize(),
		filter,
		projectDemoScope(s.serverCfg)...,
	)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*dto.ProjectResponse, len(projects))
	for i, project := range projects {
		responses[i] = s.toResponse(project)
	}

	return responses, total, nil
}

func (s *projectService) ListAll() ([]*dto.ProjectSimpleResponse, error) {
	projects, err := s.repo.ListAll(projectDemoScope(s.serverCfg)...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ProjectSimpleResponse, len(projects))
	for i, project := range projects {
		responses[i] = &dto.ProjectSimpleResponse{
			ID:   project.ID,
			Name: project.Name,
		}
	}

	return responses, nil
}

func (s *projectService) Update(id int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	// 检查名称是否冲突
	if req.Name != nil && *req.Name != project.Name {
		existing, _ := s.repo.FindByName(*req.Name)
		if existing != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeConflict,
				fmt.Sprintf("项目 %s 已存在", *req.Name), nil)
		}
		project.Name = *req.Name
	}

	if err := s.checkLookups(req.StatusID, req.PriorityID, req.PortfolioID,
		req.ProjectTypeID, req.InvestmentTypeID, req.ApplicationTypeID); err != nil {
		return nil, err
	}

	// 更新字段
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.OwnerName != nil {
		project.OwnerName = req.OwnerName
	}
	if req.StatusID != nil {
		project.StatusID = req.StatusID
	}
	if req.PriorityID != nil {
		project.PriorityID = req.PriorityID
	}
	if req.PortfolioID != nil {
		project.PortfolioID = req.PortfolioID
	}
	if req.ProjectTypeID != nil {
		project.ProjectTypeID = req.ProjectTypeID
	}
	if req.InvestmentTypeID != nil {
		project.InvestmentTypeID = req.InvestmentTypeID
	}
	if req.ApplicationTypeID != nil {
		project.ApplicationTypeID = req.ApplicationTypeID
	}
	if req.StartDate != nil {
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		project.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		project.EndDate = endDate
	}
	if req.Budget != nil {
		budget, err := parseDecimal(req.Budget)
		if err != nil {
			return nil, err
		}
		project.Budget = budget
	}
	if req.ActualCost != nil {
		actualCost, err := parseDecimal(req.ActualCost)
		if err != nil {
			return nil, err
		}
		project.ActualCost = actualCost
	}

	if err := s.repo.Update(project); err != nil {
		return nil, err
	}

	if req.FunctionIDs != nil {
		if err := s.repo.ReplaceFunctions(id, req.FunctionIDs); err != nil {
			return nil, err
		}
	}
	if req.PlatformIDs != nil {
		if err := s.repo.ReplacePlatforms(id, req.PlatformIDs); err != nil {
			return nil, err
		}
	}

	resp := s.toResponse(project)
	s.invalidator.Invalidate(id)
	publish(s.publisher, constants.RoomProjects, constants.MsgTypeEntityUpdated, resp)
	return resp, nil
}

// Delete 删除项目, 子实体存在时拒绝删除
func (s *projectService) Delete(id int64) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return err
	}

	count, err := s.repo.CountChildren(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return pkgErrors.ErrProjectHasChildren
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.invalidator.Invalidate(id)
	publish(s.publisher, constants.RoomProjects, constants.MsgTypeEntityDeleted,
		map[string]interface{}{"id": id, "entity": "project"})
	return nil
}

func (s *projectService) AllocateResource(req *dto.AllocateResourceRequest) error {
	if _, err := s.repo.FindByID(req.ProjectID); err != nil {
		return err
	}
	if _, err := s.resourceRepo.FindByID(req.ResourceID); err != nil {
		return err
	}

	allocation := &model.ProjectResource{
		ProjectID:         req.ProjectID,
		ResourceID:        req.ResourceID,
		AllocationPercent: req.AllocationPercent,
	}
	if err := s.repo.UpsertAllocation(allocation); err != nil {
		return err
	}

	s.invalidator.Invalidate(req.ProjectID)
	publish(s.publisher, constants.RoomResources, constants.MsgTypeEntityUpdated,
		map[string]interface{}{"project_id": req.ProjectID, "resource_id": req.ResourceID})
	return nil
}

func (s *projectService) RemoveResourceAllocation(projectID, resourceID int64) error {
	if err := s.repo.RemoveAllocation(projectID, resourceID); err != nil {
		return err
	}
	s.invalidator.Invalidate(projectID)
	publish(s.publisher, constants.RoomResources, constants.MsgTypeEntityUpdated,
		map[string]interface{}{"project_id": projectID, "resource_id": resourceID})
	return nil
}

// checkLookups 批量校验项目引用的字典外键
func (s *projectService) checkLookups(statusID, priorityID, portfolioID, projectTypeID, investmentTypeID, applicationTypeID *int64) error {
	checks := []struct {
		kind repository.LookupKind
		id   *int64
	}{
		{repository.LookupStatus, statusID},
		{repository.LookupPriority, priorityID},
		{repository.LookupPortfolio, portfolioID},
		{repository.LookupProjectType, projectTypeID},
		{repository.LookupInvestmentType, investmentTypeID},
		{repository.LookupApplicationType, applicationTypeID},
	}
	for _, check := range checks {
		if err := checkLookup(s.lookupRepo, check.kind, check.id); err != nil {
			return err
		}
	}
	return nil
}

// parseDecimal 解析金额字符串, 空值按0处理
func parseDecimal(s *string) (decimal.Decimal, error) {
	if s == nil || *s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.Zero, pkgErrors.Wrap(pkgErrors.CodeValidationError, "金额格式错误", err)
	}
	return d, nil
}

func (s *projectService) toResponse(project *model.Project) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:                project.ID,
		Name:              project.Name,
		Description:       project.Description,
		OwnerName:         project.OwnerName,
		StatusID:          project.StatusID,
		PriorityID:        project.PriorityID,
		PortfolioID:       project.PortfolioID,
		ProjectTypeID:     project.ProjectTypeID,
		InvestmentTypeID:  project.InvestmentTypeID,
		ApplicationTypeID: project.ApplicationTypeID,
		StartDate:         formatDate(project.StartDate),
		EndDate:           formatDate(project.EndDate),
		Budget:            project.Budget.StringFixed(2),
		ActualCost:        project.ActualCost.StringFixed(2),
		Status:            statusToLookup(project.Status),
		Priority:          priorityToLookup(project.Priority),
		CreatedAt:         formatTime(project.CreatedAt),
		UpdatedAt:         formatTime(project.UpdatedAt),
	}
	if project.Portfolio != nil {
		resp.Portfolio = toLookupResponse(&project.Portfolio.LookupBase)
	}
	resp.Functions = lo.Map(project.Functions, func(fn *model.Function, _ int) *dto.LookupResponse {
		return toLookupResponse(&fn.LookupBase)
	})
	resp.Platforms = lo.Map(project.Platforms, func(pf *model.Platform, _ int) *dto.LookupResponse {
		return toLookupResponse(&pf.LookupBase)
	})
	for _, task := range project.Tasks {
		resp.Tasks = append(resp.Tasks, taskToResponse(task))
	}
	for _, feature := range project.Features {
		resp.Features = append(resp.Features, featureToResponse(feature))
	}
	for _, backlog := range project.Backlogs {
		resp.Backlogs = append(resp.Backlogs, backlogToResponse(backlog))
	}
	for _, risk := range project.Risks {
		resp.Risks = append(resp.Risks, riskToResponse(risk))
	}
	return resp
}
