package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/repository"
	"pm-dashboard/pkg/constants"
	pkgErrors "pm-dashboard/pkg/responses"
)

func newProjectService(t *testing.T) (ProjectService, *fakePublisher, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t)
	publisher := &fakePublisher{}
	svc := NewProjectService(
		repository.NewProjectRepository(db),
		repository.NewLookupRepository(db),
		repository.NewResourceRepository(db),
		publisher,
		nil,
		nil,
	)
	return svc, publisher, db
}

func TestProjectService_Create(t *testing.T) {
	svc, publisher, db := newProjectService(t)

	status := &model.Status{LookupBase: model.LookupBase{Name: "规划中"}, Category: "project"}
	require.NoError(t, db.Create(status).Error)

	budget := "120000.50"
	start := "2026-01-01"
	resp, err := svc.Create(&dto.CreateProjectRequest{
		Name:      "支付网关升级",
		StatusID:  &status.ID,
		StartDate: &start,
		Budget:    &budget,
	})
	require.NoError(t, err)
	assert.Equal(t, "支付网关升级", resp.Name)
	assert.Equal(t, "120000.50", resp.Budget)
	require.NotNil(t, resp.StartDate)
	assert.Equal(t, "2026-01-01", *resp.StartDate)

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, constants.RoomProjects, publisher.messages[0].Room)
}

func TestProjectService_CreateRejectsDuplicateName(t *testing.T) {
	svc, _, _ := newProjectService(t)

	_, err := svc.Create(&dto.CreateProjectRequest{Name: "重复项目"})
	require.NoError(t, err)

	_, err = svc.Create(&dto.CreateProjectRequest{Name: "重复项目"})
	require.Error(t, err)
	appErr, ok := err.(*pkgErrors.AppError)
	require.True(t, ok)
	assert.Equal(t, pkgErrors.CodeConflict, appErr.Code)
}

func TestProjectService_CreateRejectsMissingLookup(t *testing.T) {
	svc, _, _ := newProjectService(t)

	missing := int64(404)
	_, err := svc.Create(&dto.CreateProjectRequest{Name: "外键错误项目", PriorityID: &missing})
	assert.ErrorIs(t, err, pkgErrors.ErrLookupNotFound)
}

func TestProjectService_CreateRejectsBadBudget(t *testing.T) {
	svc, _, _ := newProjectService(t)

	bad := "十二万"
	_, err := svc.Create(&dto.CreateProjectRequest{Name: "预算错误项目", Budget: &bad})
	require.Error(t, err)
}

func TestProjectService_DeleteRejectsWithChildren(t *testing.T) {
	svc, _, db := newProjectService(t)

	created, err := svc.Create(&dto.CreateProjectRequest{Name: "有任务的项目"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Task{ProjectID: created.ID, Name: "遗留任务"}).Error)

	assert.ErrorIs(t, svc.Delete(created.ID), pkgErrors.ErrProjectHasChildren)

	// 清掉子实体后可删除
	require.NoError(t, db.Unscoped().Where("project_id = ?", created.ID).Delete(&model.Task{}).Error)
	require.NoError(t, svc.Delete(created.ID))

	_, err = svc.GetByID(created.ID, false)
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)
}

func TestProjectService_AllocateResource(t *testing.T) {
	svc, publisher, db := newProjectService(t)

	created, err := svc.Create(&dto.CreateProjectRequest{Name: "资源项目"})
	require.NoError(t, err)

	resource := &model.Resource{Name: "刘洋", AvailabilityPercent: 100}
	require.NoError(t, db.Create(resource).Error)

	require.NoError(t, svc.AllocateResource(&dto.AllocateResourceRequest{
		ProjectID: created.ID, ResourceID: resource.ID, AllocationPercent: 40,
	}))

	detail, err := svc.GetByID(created.ID, true)
	require.NoError(t, err)
	require.Len(t, detail.Resources, 1)
	assert.Equal(t, "刘洋", detail.Resources[0].ResourceName)
	assert.Equal(t, 40, detail.Resources[0].AllocationPercent)

	require.NoError(t, svc.RemoveResourceAllocation(created.ID, resource.ID))
	assert.ErrorIs(t, svc.RemoveResourceAllocation(created.ID, resource.ID), pkgErrors.ErrRecordNotFound)

	// create + allocate + remove 均有广播
	assert.GreaterOrEqual(t, len(publisher.messages), 3)
}

func TestProjectService_ListDemoMode(t *testing.T) {
	db := setupServiceDB(t)
	visible := seedProject(t, db, "演示项目")
	seedProject(t, db, "隐藏项目")

	svc := NewProjectService(
		repository.NewProjectRepository(db),
		repository.NewLookupRepository(db),
		repository.NewResourceRepository(db),
		nil,
		nil,
		&config.ServerConfig{DemoMode: true, DemoProjectIDs: []int64{visible.ID}},
	)

	items, total, err := svc.List(&dto.ProjectListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "演示项目", items[0].Name)

	all, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "演示项目", all[0].Name)
}
