package service

import (
	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/repository"
	"pm-dashboard/internal/ws"
	"pm-dashboard/pkg/constants"
)

type RiskService interface {
	Create(req *dto.CreateRiskRequest) (*dto.RiskResponse, error)
	GetByID(id int64) (*dto.RiskResponse, error)
	List(query *dto.RiskListQuery) ([]*dto.RiskResponse, int64, error)
	Update(id int64, req *dto.UpdateRiskRequest) (*dto.RiskResponse, error)
	Delete(id int64) error
}

type riskService struct {
	repo        repository.RiskRepository
	projectRepo repository.ProjectRepository
	lookupRepo  repository.LookupRepository
	publisher   ws.Publisher
	invalidator *DashboardInvalidator
	serverCfg   *config.ServerConfig
}

func NewRiskService(
	repo repository.RiskRepository,
	projectRepo repository.ProjectRepository,
	lookupRepo repository.LookupRepository,
	publisher ws.Publisher,
	invalidator *DashboardInvalidator,
	serverCfg *config.ServerConfig,
) RiskService {
	return &riskService{
		repo:        repo,
		projectRepo: projectRepo,
		lookupRepo:  lookupRepo,
		publisher:   publisher,
		invalidator: invalidator,
		serverCfg:   serverCfg,
	}
}

func (s *riskService) Create(req *dto.CreateRiskRequest) (*dto.RiskResponse, error) {
	if _, err := s.projectRepo.FindByID(req.ProjectID); err != nil {
		return nil, err
	}
	if err := checkLookup(s.lookupRepo, repository.LookupStatus, req.StatusID); err != nil {
		return nil, err
	}

	risk := &model.Risk{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Probability: req.Probability,
		Impact:      req.Impact,
		Mitigation:  req.Mitigation,
		StatusID:    req.StatusID,
	}

	if err := s.repo.Create(risk); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(risk.ID, repository.WithPreload("Status"))
	if err != nil {
		return nil, err
	}

	resp := riskToResponse(created)
	s.invalidator.Invalidate(risk.ProjectID)
	publish(s.publisher, constants.RoomRisks, constants.MsgTypeEntityCreated, resp)
	return resp, nil
}

func (s *riskService) GetByID(id int64) (*dto.RiskResponse, error) {
	risk, err := s.repo.FindByID(id, repository.WithPreload("Status"))
	if err != nil {
		return nil, err
	}
	return riskToResponse(risk), nil
}

func (s *riskService) List(query *dto.RiskListQuery) ([]*dto.RiskResponse, int64, error) {
	filter := &repository.RiskListFilter{
		Keyword:   query.Keyword,
		ProjectID: query.ProjectID,
		StatusID:  query.StatusID,
		SortBy:    query.SortBy,
		SortDesc:  query.SortDesc,
	}
	// 等级过滤映射为score区间
	switch query.Severity {
	case "high":
		filter.MinScore = constants.RiskScoreHigh
	case "medium":
		filter.MinScore = constants.RiskScoreMedium
		filter.MaxScore = constants.RiskScoreHigh - 1
	case "low":
		filter.MaxScore = constants.RiskScoreMedium - 1
	}

	risks, total, err := s.repo.List(query.GetPage(), query.GetPageSize(), filter, demoScope(s.serverCfg)...)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*dto.RiskResponse, len(risks))
	for i, risk := range risks {
		responses[i] = riskToResponse(risk)
	}
	return responses, total, nil
}

func (s *riskService) Update(id int64, req *dto.UpdateRiskRequest) (*dto.RiskResponse, error) {
	risk, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := checkLookup(s.lookupRepo, repository.LookupStatus, req.StatusID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		risk.Title = *req.Title
	}
	if req.Description != nil {
		risk.Description = req.Description
	}
	if req.Probability != nil {
		risk.Probability = *req.Probability
	}
	if req.Impact != nil {
		risk.Impact = *req.Impact
	}
	if req.Mitigation != nil {
		risk.Mitigation = req.Mitigation
	}
	if req.StatusID != nil {
		risk.StatusID = req.StatusID
	}

	if err := s.repo.Update(risk); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(id, repository.WithPreload("Status"))
	if err != nil {
		return nil, err
	}

	resp := riskToResponse(updated)
	s.invalidator.Invalidate(updated.ProjectID)
	publish(s.publisher, constants.RoomRisks, constants.MsgTypeEntityUpdated, resp)
	return resp, nil
}

func (s *riskService) Delete(id int64) error {
	risk, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidator.Invalidate(risk.ProjectID)
	publish(s.publisher, constants.RoomRisks, constants.MsgTypeEntityDeleted,
		map[string]interface{}{"id": id, "entity": "risk"})
	return nil
}

// riskToResponse 风险模型转响应, score与severity计算派生
func riskToResponse(risk *model.Risk) *dto.RiskResponse {
	return &dto.RiskResponse{
		ID:          risk.ID,
		ProjectID:   risk.ProjectID,
		Title:       risk.Title,
		Description: risk.Description,
		Probability: risk.Probability,
		Impact:      risk.Impact,
		Score:       risk.Probability * risk.Impact,
		Severity:    constants.RiskSeverity(risk.Probability, risk.Impact),
		Mitigation:  risk.Mitigation,
		StatusID:    risk.StatusID,
		Status:      statusToLookup(risk.Status),
		CreatedAt:   formatTime(risk.CreatedAt),
		UpdatedAt:   formatTime(risk.UpdatedAt),
	}
}
