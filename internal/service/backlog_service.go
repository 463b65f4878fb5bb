package service

import (
	"fmt"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/repository"
	"pm-dashboard/internal/ws"
	"pm-dashboard/pkg/constants"
	pkgErrors "pm-dashboard/pkg/responses"
)

type BacklogService interface {
	Create(req *dto.CreateBacklogRequest) (*dto.BacklogResponse, error)
	GetByID(id int64) (*dto.BacklogResponse, error)
	List(query *dto.BacklogListQuery) ([]*dto.BacklogResponse, int64, error)
	Update(id int64, req *dto.UpdateBacklogRequest) (*dto.BacklogResponse, error)
	Delete(id int64) error
}

type backlogService struct {
	repo        repository.BacklogRepository
	projectRepo repository.ProjectRepository
	featureRepo repository.FeatureRepository
	lookupRepo  repository.LookupRepository
	publisher   ws.Publisher
	invalidator *DashboardInvalidator
	serverCfg   *config.ServerConfig
}

func NewBacklogService(
	repo repository.BacklogRepository,
	projectRepo repository.ProjectRepository,
	featureRepo repository.FeatureRepository,
	lookupRepo repository.LookupRepository,
	publisher ws.Publisher,
	invalidator *DashboardInvalidator,
	serverCfg *config.ServerConfig,
) BacklogService {
	return &backlogService{
		repo:        repo,
		projectRepo: projectRepo,
		featureRepo: featureRepo,
		lookupRepo:  lookupRepo,
		publisher:   publisher,
		invalidator: invalidator,
		serverCfg:   serverCfg,
	}
}

// normalizeQuarter 校验并规范化目标季度标识, 形如2026Q3
func normalizeQuarter(raw string) (string, error) {
	var year, quarter int
	if n, err := fmt.Sscanf(raw, "%dQ%d", &year, &quarter); err != nil || n != 2 || quarter < 1 || quarter > 4 {
		return "", pkgErrors.Wrap(pkgErrors.CodeValidationError, "目标季度格式错误, 应为2026Q3形式", err)
	}
	return constants.FormatQuarter(year, quarter), nil
}

func (s *backlogService) Create(req *dto.CreateBacklogRequest) (*dto.BacklogResponse, error) {
	if _, err := s.projectRepo.FindByID(req.ProjectID); err != nil {
		return nil, err
	}
	if req.FeatureID != nil {
		if _, err := s.featureRepo.FindByID(*req.FeatureID); err != nil {
			return nil, err
		}
	}
	if err := checkLookup(s.lookupRepo, repository.LookupPriority, req.PriorityID); err != nil {
		return nil, err
	}

	targetQuarter := req.TargetQuarter
	if targetQuarter != "" {
		normalized, err := normalizeQuarter(targetQuarter)
		if err != nil {
			return nil, err
		}
		targetQuarter = normalized
	}

	backlog := &model.Backlog{
		ProjectID:     req.ProjectID,
		FeatureID:     req.FeatureID,
		Title:         req.Title,
		Description:   req.Description,
		PriorityID:    req.PriorityID,
		TargetQuarter: targetQuarter,
	}

	if err := s.repo.Create(backlog); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(backlog.ID, repository.WithPreload("Priority"))
	if err != nil {
		return nil, err
	}

	resp := backlogToResponse(created)
	s.invalidator.Invalidate(backlog.ProjectID)
	publish(s.publisher, constants.RoomProjects, constants.MsgTypeEntityCreated, resp)
	return resp, nil
}

func (s *backlogService) GetByID(id int64) (*dto.BacklogResponse, error) {
	backlog, err := s.repo.FindByID(id, repository.WithPreload("Priority"))
	if err != nil {
		return nil, err
	}
	return backlogToResponse(backlog), nil
}

func (s *backlogService) List(query *dto.BacklogListQuery) ([]*dto.BacklogResponse, int64, error) {
	filter := &repository.BacklogListFilter{
		Keyword:       query.Keyword,
		ProjectID:     query.ProjectID,
		FeatureID:     query.FeatureID,
		PriorityID:    query.PriorityID,
		TargetQuarter: query.TargetQuarter,
		SortBy:        query.SortBy,
		SortDesc:      query.SortDesc,
	}

	backlogs, total, err := s.repo.List(query.GetPage(), query.GetPageSize(), filter, demoScope(s.serverCfg)...)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*dto.BacklogResponse, len(backlogs))
	for i, backlog := range backlogs {
		responses[i] = backlogToResponse(backlog)
	}
	return responses, total, nil
}

func (s *backlogService) Update(id int64, req *dto.UpdateBacklogRequest) (*dto.BacklogResponse, error) {
	backlog, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req.FeatureID != nil {
		if _, err := s.featureRepo.FindByID(*req.FeatureID); err != nil {
			return nil, err
		}
		backlog.FeatureID = req.FeatureID
	}
	if err := checkLookup(s.lookupRepo, repository.LookupPriority, req.PriorityID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		backlog.Title = *req.Title
	}
	if req.Description != nil {
		backlog.Description = req.Description
	}
	if req.PriorityID != nil {
		backlog.PriorityID = req.PriorityID
	}
	if req.TargetQuarter != nil {
		targetQuarter := *req.TargetQuarter
		if targetQuarter != "" {
			normalized, err := normalizeQuarter(targetQuarter)
			if err != nil {
				return nil, err
			}
			targetQuarter = normalized
		}
		backlog.TargetQuarter = targetQuarter
	}

	if err := s.repo.Update(backlog); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(id, repository.WithPreload("Priority"))
	if err != nil {
		return nil, err
	}

	resp := backlogToResponse(updated)
	s.invalidator.Invalidate(updated.ProjectID)
	publish(s.publisher, constants.RoomProjects, constants.MsgTypeEntityUpdated, resp)
	return resp, nil
}

func (s *backlogService) Delete(id int64) error {
	backlog, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidator.Invalidate(backlog.ProjectID)
	publish(s.publisher, constants.RoomProjects, constants.MsgTypeEntityDeleted,
		map[string]interface{}{"id": id, "entity": "backlog"})
	return nil
}

// backlogToResponse 待办模型转响应
func backlogToResponse(backlog *model.Backlog) *dto.BacklogResponse {
	return &dto.BacklogResponse{
		ID:            backlog.ID,
		ProjectID:     backlog.ProjectID,
		FeatureID:     backlog.FeatureID,
		Title:         backlog.Title,
		Description:   backlog.Description,
		PriorityID:    backlog.PriorityID,
		Priority:      priorityToLookup(backlog.Priority),
		TargetQuarter: backlog.TargetQuarter,
		CreatedAt:     formatTime(backlog.CreatedAt),
		UpdatedAt:     formatTime(backlog.UpdatedAt),
	}
}
