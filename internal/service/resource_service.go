package service

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/repository"
	"pm-dashboard/internal/ws"
	"pm-dashboard/pkg/constants"
	pkgErrors "pm-dashboard/pkg/responses"
)

type ResourceService interface {
	Create(req *dto.CreateResourceRequest) (*dto.ResourceResponse, error)
	GetByID(id int64) (*dto.ResourceResponse, error)
	List(query *dto.ResourceListQuery) ([]*dto.ResourceResponse, int64, error)
	ListAll() ([]*dto.ResourceResponse, error)
	Update(id int64, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error)
	Delete(id int64) error
}

type resourceService struct {
	repo        repository.ResourceRepository
	projectRepo repository.ProjectRepository
	publisher   ws.Publisher
	invalidator *DashboardInvalidator
}

func NewResourceService(
	repo repository.ResourceRepository,
	projectRepo repository.ProjectRepository,
	publisher ws.Publisher,
	invalidator *DashboardInvalidator,
) ResourceService {
	return &resourceService{
		repo:        repo,
		projectRepo: projectRepo,
		publisher:   publisher,
		invalidator: invalidator,
	}
}

func (s *resourceService) Create(req *dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	existing, _ := s.repo.FindByName(req.Name)
	if existing != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeConflict,
			fmt.Sprintf("资源 %s 已存在", req.Name), nil)
	}

	skills, err := marshalSkills(req.Skills)
	if err != nil {
		return nil, err
	}

	resource := &model.Resource{
		Name:                req.Name,
		Role:                req.Role,
		Email:               req.Email,
		Skills:              skills,
		AvailabilityPercent: req.AvailabilityPercent,
	}

	if err := s.repo.Create(resource); err != nil {
		return nil, err
	}

	resp, err := s.toResponse(resource, false)
	if err != nil {
		return nil, err
	}
	s.invalidator.Invalidate()
	publish(s.publisher, constants.RoomResources, constants.MsgTypeEntityCreated, resp)
	return resp, nil
}

func (s *resourceService) GetByID(id int64) (*dto.ResourceResponse, error) {
	resource, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(resource, true)
}

func (s *resourceService) List(query *dto.ResourceListQuery) ([]*dto.ResourceResponse, int64, error) {
	filter := &repository.ResourceListFilter{
		Keyword:  query.Keyword,
		Skill:    query.Skill,
		SortBy:   query.SortBy,
		SortDesc: query.SortDesc,
	}

	resources, total, err := s.repo.List(query.GetPage(), query.GetPageSize(), filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*dto.ResourceResponse, len(resources))
	for i, resource := range resources {
		resp, err := s.toResponse(resource, false)
		if err != nil {
			return nil, 0, err
		}
		responses[i] = resp
	}
	return responses, total, nil
}

func (s *resourceService) ListAll() ([]*dto.ResourceResponse, error) {
	resources, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.ResourceResponse, len(resources))
	for i, resource := range resources {
		resp, err := s.toResponse(resource, false)
		if err != nil {
			return nil, err
		}
		responses[i] = resp
	}
	return responses, nil
}

func (s *resourceService) Update(id int64, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error) {
	resource, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != resource.Name {
		existing, _ := s.repo.FindByName(*req.Name)
		if existing != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeConflict,
				fmt.Sprintf("资源 %s 已存在", *req.Name), nil)
		}
		resource.Name = *req.Name
	}
	if req.Role != nil {
		resource.Role = req.Role
	}
	if req.Email != nil {
		resource.Email = req.Email
	}
	if req.Skills != nil {
		skills, err := marshalSkills(req.Skills)
		if err != nil {
			return nil, err
		}
		resource.Skills = skills
	}
	if req.AvailabilityPercent != nil {
		resource.AvailabilityPercent = *req.AvailabilityPercent
	}

	if err := s.repo.Update(resource); err != nil {
		return nil, err
	}

	resp, err := s.toResponse(resource, false)
	if err != nil {
		return nil, err
	}
	s.invalidator.Invalidate()
	publish(s.publisher, constants.RoomResources, constants.MsgTypeEntityUpdated, resp)
	return resp, nil
}

// Delete 删除资源, 连带清理项目/任务分配
func (s *resourceService) Delete(id int64) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidator.Invalidate()
	publish(s.publisher, constants.RoomResources, constants.MsgTypeEntityDeleted,
		map[string]interface{}{"id": id, "entity": "resource"})
	return nil
}

func (s *resourceService) toResponse(resource *model.Resource, withProjects bool) (*dto.ResourceResponse, error) {
	skills, err := unmarshalSkills(resource.Skills)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResourceResponse{
		ID:                  resource.ID,
		Name:                resource.Name,
		Role:                resource.Role,
		Email:               resource.Email,
		Skills:              skills,
		AvailabilityPercent: resource.AvailabilityPercent,
		CreatedAt:           formatTime(resource.CreatedAt),
		UpdatedAt:           formatTime(resource.UpdatedAt),
	}

	if withProjects {
		allocations, err := s.repo.ListAllocationsByResource(resource.ID)
		if err != nil {
			return nil, err
		}
		for _, allocation := range allocations {
			item := &dto.ResourceProjectItem{
				ProjectID:         allocation.ProjectID,
				AllocationPercent: allocation.AllocationPercent,
			}
			if project, err := s.projectRepo.FindByID(allocation.ProjectID); err == nil {
				item.ProjectName = project.Name
			}
			resp.Projects = append(resp.Projects, item)
		}
	}

	return resp, nil
}

// marshalSkills 技能标签序列化为JSON列
func marshalSkills(skills []string) (datatypes.JSON, error) {
	if skills == nil {
		skills = []string{}
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeValidationError, "技能标签格式错误", err)
	}
	return datatypes.JSON(data), nil
}

// unmarshalSkills JSON列反序列化为技能标签
func unmarshalSkills(data datatypes.JSON) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var skills []string
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "技能标签解析失败", err)
	}
	return skills, nil
}
