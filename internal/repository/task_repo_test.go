package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pm-dashboard/internal/model"
	pkgErrors "pm-dashboard/pkg/responses"
)

func TestTaskRepository_Dependencies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	project := createTestProject(t, db, "任务项目")

	design := &model.Task{ProjectID: project.ID, Name: "方案设计"}
	develop := &model.Task{ProjectID: project.ID, Name: "开发实现"}
	test := &model.Task{ProjectID: project.ID, Name: "联调测试"}
	for _, task := range []*model.Task{design, develop, test} {
		require.NoError(t, repo.Create(task))
	}

	require.NoError(t, repo.ReplaceDependencies(test.ID, []int64{design.ID, develop.ID}))

	deps, err := repo.ListDependencies(test.ID)
	require.NoError(t, err)
	assert.Len(t, deps, 2)

	// 整体替换
	require.NoError(t, repo.ReplaceDependencies(test.ID, []int64{develop.ID}))
	deps, err = repo.ListDependencies(test.ID)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, develop.ID, deps[0].DependsOnID)
}

func TestTaskRepository_DeleteCleansRelations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	project := createTestProject(t, db, "任务项目")
	resource := createTestResource(t, db, "李娜")

	upstream := &model.Task{ProjectID: project.ID, Name: "上游任务"}
	target := &model.Task{ProjectID: project.ID, Name: "目标任务"}
	downstream := &model.Task{ProjectID: project.ID, Name: "下游任务"}
	for _, task := range []*model.Task{upstream, target, downstream} {
		require.NoError(t, repo.Create(task))
	}

	require.NoError(t, repo.ReplaceDependencies(target.ID, []int64{upstream.ID}))
	require.NoError(t, repo.ReplaceDependencies(downstream.ID, []int64{target.ID}))
	require.NoError(t, repo.UpsertResource(&model.TaskResource{TaskID: target.ID, ResourceID: resource.ID, AllocatedHours: 16}))

	require.NoError(t, repo.Delete(target.ID))

	// 两个方向的依赖与资源分配均被清理
	var depCount int64
	require.NoError(t, db.Model(&model.TaskDependency{}).
		Where("task_id = ? OR depends_on_id = ?", target.ID, target.ID).Count(&depCount).Error)
	assert.Zero(t, depCount)

	var resCount int64
	require.NoError(t, db.Model(&model.TaskResource{}).Where("task_id = ?", target.ID).Count(&resCount).Error)
	assert.Zero(t, resCount)
}

func TestTaskRepository_UpsertResource(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	project := createTestProject(t, db, "任务项目")
	resource := createTestResource(t, db, "陈晨")

	task := &model.Task{ProjectID: project.ID, Name: "数据库迁移"}
	require.NoError(t, repo.Create(task))

	require.NoError(t, repo.UpsertResource(&model.TaskResource{TaskID: task.ID, ResourceID: resource.ID, AllocatedHours: 8}))
	require.NoError(t, repo.UpsertResource(&model.TaskResource{TaskID: task.ID, ResourceID: resource.ID, AllocatedHours: 24}))

	var assignments []model.TaskResource
	require.NoError(t, db.Where("task_id = ?", task.ID).Find(&assignments).Error)
	require.Len(t, assignments, 1)
	assert.Equal(t, 24, assignments[0].AllocatedHours)

	require.NoError(t, repo.RemoveResource(task.ID, resource.ID))
	assert.ErrorIs(t, repo.RemoveResource(task.ID, resource.ID), pkgErrors.ErrRecordNotFound)
}

func TestTaskRepository_ListByProjectID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	project := createTestProject(t, db, "甘特图项目")
	other := createTestProject(t, db, "其他项目")

	require.NoError(t, repo.Create(&model.Task{ProjectID: project.ID, Name: "任务1"}))
	require.NoError(t, repo.Create(&model.Task{ProjectID: project.ID, Name: "任务2"}))
	require.NoError(t, repo.Create(&model.Task{ProjectID: other.ID, Name: "别的任务"}))

	tasks, err := repo.ListByProjectID(project.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}
