package service

import (
	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/repository"
	"pm-dashboard/internal/ws"
	"pm-dashboard/pkg/constants"
)

type FeatureService interface {
	Create(req *dto.CreateFeatureRequest) (*dto.FeatureResponse, error)
	GetByID(id int64) (*dto.FeatureResponse, error)
	List(query *dto.FeatureListQuery) ([]*dto.FeatureResponse, int64, error)
	Update(id int64, req *dto.UpdateFeatureRequest) (*dto.FeatureResponse, error)
	Delete(id int64) error
}

type featureService struct {
	repo        repository.FeatureRepository
	projectRepo repository.ProjectRepository
	lookupRepo  repository.LookupRepository
	publisher   ws.Publisher
	invalidator *DashboardInvalidator
	serverCfg   *config.ServerConfig
}

func NewFeatureService(
	repo repository.FeatureRepository,
	projectRepo repository.ProjectRepository,
	lookupRepo repository.LookupRepository,
	publisher ws.Publisher,
	invalidator *DashboardInvalidator,
	serverCfg *config.ServerConfig,
) FeatureService {
	return &featureService{
		repo:        repo,
		projectRepo: projectRepo,
		lookupRepo:  lookupRepo,
		publisher:   publisher,
		invalidator: invalidator,
		serverCfg:   serverCfg,
	}
}

func (s *featureService) Create(req *dto.CreateFeatureRequest) (*dto.FeatureResponse, error) {
	if _, err := s.projectRepo.FindByID(req.ProjectID); err != nil {
		return nil, err
	}
	if err := s.checkLookups(req.FunctionID, req.PlatformID, req.StatusID); err != nil {
		return nil, err
	}

	feature := &model.Feature{
		ProjectID:     req.ProjectID,
		Name:          req.Name,
		Description:   req.Description,
		FunctionID:    req.FunctionID,
		PlatformID:    req.PlatformID,
		StatusID:      req.StatusID,
		BusinessValue: req.BusinessValue,
		Effort:        req.Effort,
	}

	if err := s.repo.Create(feature); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(feature.ID,
		repository.WithPreload("Function"),
		repository.WithPreload("Platform"),
		repository.WithPreload("Status"))
	if err != nil {
		return nil, err
	}

	resp := featureToResponse(created)
	s.invalidator.Invalidate(feature.ProjectID)
	publish(s.publisher, constants.RoomProjects, constants.MsgTypeEntityCreated, resp)
	return resp, nil
}

func (s *featureService) GetByID(id int64) (*dto.FeatureResponse, error) {
	feature, err := s.repo.FindByID(id,
		repository.WithPreload("Function"),
		repository.WithPreload("Platform"),
		repository.WithPreload("Status"))
	if err != nil {
		return nil, err
	}
	return featureToResponse(feature), nil
}

func (s *featureService) List(query *dto.FeatureListQuery) ([]*dto.FeatureResponse, int64, error) {
	filter := &repository.FeatureListFilter{
		Keyword:    query.Keyword,
		ProjectID:  query.ProjectID,
		FunctionID: query.FunctionID,
		PlatformID: query.PlatformID,
		StatusID:   query.StatusID,
		SortBy:     query.SortBy,
		SortDesc:   query.SortDesc,
	}

	features, total, err := s.repo.List(query.GetPage(), query.GetPageSize(), filter, demoScope(s.serverCfg)...)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*dto.FeatureResponse, len(features))
	for i, feature := range features {
		responses[i] = featureToResponse(feature)
	}
	return responses, total, nil
}

func (s *featureService) Update(id int64, req *dto.UpdateFeatureRequest) (*dto.FeatureResponse, error) {
	feature, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkLookups(req.FunctionID, req.PlatformID, req.StatusID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		feature.Name = *req.Name
	}
	if req.Description != nil {
		feature.Description = req.Description
	}
	if req.FunctionID != nil {
		feature.FunctionID = req.FunctionID
	}
	if req.PlatformID != nil {
		feature.PlatformID = req.PlatformID
	}
	if req.StatusID != nil {
		feature.StatusID = req.StatusID
	}
	if req.BusinessValue != nil {
		feature.BusinessValue = *req.BusinessValue
	}
	if req.Effort != nil {
		feature.Effort = *req.Effort
	}

	if err := s.repo.Update(feature); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(id,
		repository.WithPreload("Function"),
		repository.WithPreload("Platform"),
		repository.WithPreload("Status"))
	if err != nil {
		return nil, err
	}

	resp := featureToResponse(updated)
	s.invalidator.Invalidate(updated.ProjectID)
	publish(s.publisher, constants.RoomProjects, constants.MsgTypeEntityUpdated, resp)
	return resp, nil
}

// Delete 删除特性, 关联待办的feature_id置空
func (s *featureService) Delete(id int64) error {
	feature, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidator.Invalidate(feature.ProjectID)
	publish(s.publisher, constants.RoomProjects, constants.MsgTypeEntityDeleted,
		map[string]interface{}{"id": id, "entity": "feature"})
	return nil
}

func (s *featureService) checkLookups(functionID, platformID, statusID *int64) error {
	if err := checkLookup(s.lookupRepo, repository.LookupFunction, functionID); err != nil {
		return err
	}
	if err := checkLookup(s.lookupRepo, repository.LookupPlatform, platformID); err != nil {
		return err
	}
	return checkLookup(s.lookupRepo, repository.LookupStatus, statusID)
}

// featureToResponse 特性模型转响应
func featureToResponse(feature *model.Feature) *dto.FeatureResponse {
	resp := &dto.FeatureResponse{
		ID:            feature.ID,
		ProjectID:     feature.ProjectID,
		Name:          feature.Name,
		Description:   feature.Description,
		FunctionID:    feature.FunctionID,
		PlatformID:    feature.PlatformID,
		StatusID:      feature.StatusID,
		Status:        statusToLookup(feature.Status),
		BusinessValue: feature.BusinessValue,
		Effort:        feature.Effort,
		CreatedAt:     formatTime(feature.CreatedAt),
		UpdatedAt:     formatTime(feature.UpdatedAt),
	}
	if feature.Function != nil {
		resp.Function = toLookupResponse(&feature.Function.LookupBase)
	}
	if feature.Platform != nil {
		resp.Platform = toLookupResponse(&feature.Platform.LookupBase)
	}
	return resp
}
