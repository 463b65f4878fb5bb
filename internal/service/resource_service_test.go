package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/repository"
)

func newResourceService(t *testing.T) (ResourceService, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t)
	svc := NewResourceService(
		repository.NewResourceRepository(db),
		repository.NewProjectRepository(db),
		nil,
		nil,
	)
	return svc, db
}

func TestResourceService_SkillsRoundTrip(t *testing.T) {
	svc, _ := newResourceService(t)

	role := "后端工程师"
	created, err := svc.Create(&dto.CreateResourceRequest{
		Name:                "周杰",
		Role:                &role,
		Skills:              []string{"go", "mysql", "k8s"},
		AvailabilityPercent: 100,
	})
	require.NoError(t, err)

	found, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "mysql", "k8s"}, found.Skills)
	assert.Equal(t, 100, found.AvailabilityPercent)
}

func TestResourceService_CreateRejectsDuplicateName(t *testing.T) {
	svc, _ := newResourceService(t)

	_, err := svc.Create(&dto.CreateResourceRequest{Name: "重名成员", AvailabilityPercent: 100})
	require.NoError(t, err)

	_, err = svc.Create(&dto.CreateResourceRequest{Name: "重名成员", AvailabilityPercent: 80})
	require.Error(t, err)
}

func TestResourceService_GetByIDIncludesProjects(t *testing.T) {
	svc, db := newResourceService(t)
	project := seedProject(t, db, "关联项目")

	created, err := svc.Create(&dto.CreateResourceRequest{Name: "吴磊", AvailabilityPercent: 100})
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.ProjectResource{
		ProjectID: project.ID, ResourceID: created.ID, AllocationPercent: 30,
	}).Error)

	found, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	require.Len(t, found.Projects, 1)
	assert.Equal(t, "关联项目", found.Projects[0].ProjectName)
	assert.Equal(t, 30, found.Projects[0].AllocationPercent)
}

func TestResourceService_ListSkillFilter(t *testing.T) {
	svc, _ := newResourceService(t)

	_, err := svc.Create(&dto.CreateResourceRequest{Name: "前端成员", Skills: []string{"vue"}, AvailabilityPercent: 100})
	require.NoError(t, err)
	_, err = svc.Create(&dto.CreateResourceRequest{Name: "后端成员", Skills: []string{"go"}, AvailabilityPercent: 100})
	require.NoError(t, err)

	items, total, err := svc.List(&dto.ResourceListQuery{Skill: "go"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "后端成员", items[0].Name)
}
