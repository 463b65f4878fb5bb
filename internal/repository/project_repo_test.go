package repository

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pm-dashboard/internal/model"
	pkgErrors "pm-dashboard/pkg/responses"
)

func TestProjectRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)

	owner := "王海"
	project := &model.Project{
		Name:      "核心系统重构",
		OwnerName: &owner,
		Budget:    decimal.NewFromInt(500000),
	}
	require.NoError(t, repo.Create(project))
	require.NotZero(t, project.ID)

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	assert.Equal(t, "核心系统重构", found.Name)
	assert.True(t, found.Budget.Equal(decimal.NewFromInt(500000)))

	byName, err := repo.FindByName("核心系统重构")
	require.NoError(t, err)
	assert.Equal(t, project.ID, byName.ID)

	_, err = repo.FindByName("不存在的项目")
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)

	_, err = repo.FindByID(99999)
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)
}

func TestProjectRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	status := createTestStatus(t, db, "进行中", "project")

	for i := 1; i <= 5; i++ {
		project := &model.Project{Name: fmt.Sprintf("项目%d", i)}
		if i <= 2 {
			project.StatusID = &status.ID
		}
		require.NoError(t, db.Create(project).Error)
	}

	t.Run("keyword filter", func(t *testing.T) {
		projects, total, err := repo.List(1, 10, &ProjectListFilter{Keyword: "项目3"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, projects, 1)
		assert.Equal(t, "项目3", projects[0].Name)
	})

	t.Run("status filter", func(t *testing.T) {
		_, total, err := repo.List(1, 10, &ProjectListFilter{StatusID: &status.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("pagination is stable", func(t *testing.T) {
		// 同一created_at下靠id兜底排序, 两页之间不重不漏
		seen := map[int64]bool{}
		for page := 1; page <= 3; page++ {
			projects, total, err := repo.List(page, 2, nil)
			require.NoError(t, err)
			assert.EqualValues(t, 5, total)
			for _, p := range projects {
				assert.False(t, seen[p.ID], "项目 %d 出现在多页", p.ID)
				seen[p.ID] = true
			}
		}
		assert.Len(t, seen, 5)
	})

	t.Run("demo scope", func(t *testing.T) {
		projects, total, err := repo.List(1, 10, nil, WithProjectDemoScope([]int64{1, 2}))
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, projects, 2)
	})
}

func TestProjectRepository_CountChildren(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	project := createTestProject(t, db, "有子实体的项目")
	empty := createTestProject(t, db, "空项目")

	require.NoError(t, db.Create(&model.Task{ProjectID: project.ID, Name: "任务A"}).Error)
	require.NoError(t, db.Create(&model.Risk{ProjectID: project.ID, Title: "风险A", Probability: 2, Impact: 2}).Error)
	require.NoError(t, db.Create(&model.Backlog{ProjectID: project.ID, Title: "待办A"}).Error)

	count, err := repo.CountChildren(project.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	count, err = repo.CountChildren(empty.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProjectRepository_ReplaceFunctions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	project := createTestProject(t, db, "功能域项目")

	f1 := &model.Function{LookupBase: model.LookupBase{Name: "交易"}}
	f2 := &model.Function{LookupBase: model.LookupBase{Name: "风控"}}
	require.NoError(t, db.Create(f1).Error)
	require.NoError(t, db.Create(f2).Error)

	require.NoError(t, repo.ReplaceFunctions(project.ID, []int64{f1.ID, f2.ID}))

	var count int64
	require.NoError(t, db.Model(&model.ProjectFunction{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// 整体替换, 旧关联被清除
	require.NoError(t, repo.ReplaceFunctions(project.ID, []int64{f2.ID}))
	var remaining []model.ProjectFunction
	require.NoError(t, db.Where("project_id = ?", project.ID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, f2.ID, remaining[0].FunctionID)
}

func TestProjectRepository_Allocations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	project := createTestProject(t, db, "资源分配项目")
	resource := createTestResource(t, db, "张伟")

	require.NoError(t, repo.UpsertAllocation(&model.ProjectResource{
		ProjectID: project.ID, ResourceID: resource.ID, AllocationPercent: 50,
	}))

	// 同一(project, resource)再次分配只更新投入度
	require.NoError(t, repo.UpsertAllocation(&model.ProjectResource{
		ProjectID: project.ID, ResourceID: resource.ID, AllocationPercent: 80,
	}))

	allocations, err := repo.ListAllocations(project.ID)
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, 80, allocations[0].AllocationPercent)
	require.NotNil(t, allocations[0].Resource)
	assert.Equal(t, "张伟", allocations[0].Resource.Name)

	require.NoError(t, repo.RemoveAllocation(project.ID, resource.ID))
	assert.ErrorIs(t, repo.RemoveAllocation(project.ID, resource.ID), pkgErrors.ErrRecordNotFound)
}

func TestProjectRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	project := createTestProject(t, db, "待删除项目")

	require.NoError(t, repo.Delete(project.ID))

	_, err := repo.FindByID(project.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)

	// 软删除, 记录仍在表中
	var count int64
	require.NoError(t, db.Unscoped().Model(&model.Project{}).Where("id = ?", project.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
