package service

import (
	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/repository"
	pkgErrors "pm-dashboard/pkg/responses"
)

type LookupService interface {
	List(kind string, query *dto.LookupListQuery) ([]*dto.LookupResponse, error)
	Create(kind string, req *dto.CreateLookupRequest) (int64, error)
	Update(kind string, req *dto.UpdateLookupRequest) error
}

type lookupService struct {
	repo repository.LookupRepository
}

func NewLookupService(repo repository.LookupRepository) LookupService {
	return &lookupService{repo: repo}
}

func (s *lookupService) List(kind string, query *dto.LookupListQuery) ([]*dto.LookupResponse, error) {
	switch repository.LookupKind(kind) {
	case repository.LookupStatus:
		items, err := s.repo.ListStatuses(query.Category)
		if err != nil {
			return nil, err
		}
		responses := make([]*dto.LookupResponse, len(items))
		for i, item := range items {
			responses[i] = statusToLookup(item)
		}
		return responses, nil
	case repository.LookupPriority:
		items, err := s.repo.ListPriorities()
		if err != nil {
			return nil, err
		}
		responses := make([]*dto.LookupResponse, len(items))
		for i, item := range items {
			responses[i] = priorityToLookup(item)
		}
		return responses, nil
	case repository.LookupFunction:
		items, err := s.repo.ListFunctions()
		if err != nil {
			return nil, err
		}
		return lookupBases(items, func(i *model.Function) *model.LookupBase { return &i.LookupBase }), nil
	case repository.LookupPlatform:
		items, err := s.repo.ListPlatforms()
		if err != nil {
			return nil, err
		}
		return lookupBases(items, func(i *model.Platform) *model.LookupBase { return &i.LookupBase }), nil
	case repository.LookupPortfolio:
		items, err := s.repo.ListPortfolios()
		if err != nil {
			return nil, err
		}
		return lookupBases(items, func(i *model.Portfolio) *model.LookupBase { return &i.LookupBase }), nil
	case repository.LookupApplicationType:
		items, err := s.repo.ListApplicationTypes()
		if err != nil {
			return nil, err
		}
		return lookupBases(items, func(i *model.ApplicationType) *model.LookupBase { return &i.LookupBase }), nil
	case repository.LookupInvestmentType:
		items, err := s.repo.ListInvestmentTypes()
		if err != nil {
			return nil, err
		}
		return lookupBases(items, func(i *model.InvestmentType) *model.LookupBase { return &i.LookupBase }), nil
	case repository.LookupProjectType:
		items, err := s.repo.ListProjectTypes()
		if err != nil {
			return nil, err
		}
		return lookupBases(items, func(i *model.ProjectType) *model.LookupBase { return &i.LookupBase }), nil
	default:
		return nil, pkgErrors.ErrBadRequest
	}
}

// lookupBases 泛型辅助: 任意字典切片转响应
func lookupBases[T any](items []T, base func(T) *model.LookupBase) []*dto.LookupResponse {
	responses := make([]*dto.LookupResponse, len(items))
	for i, item := range items {
		responses[i] = toLookupResponse(base(item))
	}
	return responses
}

func (s *lookupService) Create(kind string, req *dto.CreateLookupRequest) (int64, error) {
	if !repository.IsValidLookupKind(kind) {
		return 0, pkgErrors.ErrBadRequest
	}
	base := model.LookupBase{
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	}
	return s.repo.Create(repository.LookupKind(kind), base, req.Category, req.Rank)
}

func (s *lookupService) Update(kind string, req *dto.UpdateLookupRequest) error {
	if !repository.IsValidLookupKind(kind) {
		return pkgErrors.ErrBadRequest
	}
	return s.repo.Update(repository.LookupKind(kind), req.ID, req.Name, req.Color, req.SortOrder)
}
