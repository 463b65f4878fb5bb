package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/repository"
	pkgErrors "pm-dashboard/pkg/responses"
)

func newTaskService(t *testing.T) (TaskService, *gorm.DB, int64) {
	t.Helper()
	db := setupServiceDB(t)
	project := seedProject(t, db, "任务测试项目")
	svc := NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewProjectRepository(db),
		repository.NewLookupRepository(db),
		repository.NewResourceRepository(db),
		nil,
		nil,
		nil,
	)
	return svc, db, project.ID
}

func TestTaskService_CreateWithDependencies(t *testing.T) {
	svc, _, projectID := newTaskService(t)

	first, err := svc.Create(&dto.CreateTaskRequest{ProjectID: projectID, Name: "需求分析"})
	require.NoError(t, err)

	second, err := svc.Create(&dto.CreateTaskRequest{
		ProjectID: projectID,
		Name:      "概要设计",
		DependsOn: []int64{first.ID},
	})
	require.NoError(t, err)
	require.Len(t, second.DependsOn, 1)
	assert.Equal(t, first.ID, second.DependsOn[0])
}

func TestTaskService_RejectsSelfDependency(t *testing.T) {
	svc, _, projectID := newTaskService(t)

	task, err := svc.Create(&dto.CreateTaskRequest{ProjectID: projectID, Name: "独立任务"})
	require.NoError(t, err)

	_, err = svc.Update(task.ID, &dto.UpdateTaskRequest{ID: task.ID, DependsOn: []int64{task.ID}})
	assert.ErrorIs(t, err, pkgErrors.ErrSelfDependency)
}

func TestTaskService_RejectsMissingDependency(t *testing.T) {
	svc, db, projectID := newTaskService(t)

	_, err := svc.Create(&dto.CreateTaskRequest{
		ProjectID: projectID,
		Name:      "依赖不存在",
		DependsOn: []int64{4040},
	})
	require.Error(t, err)

	// 校验在入库前完成, 失败的创建不留下孤儿任务
	var count int64
	require.NoError(t, db.Model(&model.Task{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestTaskService_ListByProject(t *testing.T) {
	svc, db, projectID := newTaskService(t)
	other := seedProject(t, db, "另一个项目")

	_, err := svc.Create(&dto.CreateTaskRequest{ProjectID: projectID, Name: "甘特任务1"})
	require.NoError(t, err)
	_, err = svc.Create(&dto.CreateTaskRequest{ProjectID: projectID, Name: "甘特任务2"})
	require.NoError(t, err)
	_, err = svc.Create(&dto.CreateTaskRequest{ProjectID: other.ID, Name: "别处任务"})
	require.NoError(t, err)

	tasks, err := svc.ListByProject(projectID)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestTaskService_AssignResource(t *testing.T) {
	svc, db, projectID := newTaskService(t)

	task, err := svc.Create(&dto.CreateTaskRequest{ProjectID: projectID, Name: "压测"})
	require.NoError(t, err)

	resource := &model.Resource{Name: "孙健", AvailabilityPercent: 100}
	require.NoError(t, db.Create(resource).Error)

	require.NoError(t, svc.AssignResource(&dto.AssignTaskResourceRequest{
		TaskID: task.ID, ResourceID: resource.ID, AllocatedHours: 16,
	}))

	detail, err := svc.GetByID(task.ID)
	require.NoError(t, err)
	require.Len(t, detail.Resources, 1)
	assert.Equal(t, "孙健", detail.Resources[0].ResourceName)
	assert.Equal(t, 16, detail.Resources[0].AllocatedHours)

	require.NoError(t, svc.RemoveResource(task.ID, resource.ID))
	assert.ErrorIs(t, svc.RemoveResource(task.ID, resource.ID), pkgErrors.ErrRecordNotFound)
}
