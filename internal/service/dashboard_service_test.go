package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/config"
)

func seedDashboardData(t *testing.T, db *gorm.DB) (p1, p2 *model.Project) {
	t.Helper()
	p1 = seedProject(t, db, "看板项目一")
	p2 = seedProject(t, db, "看板项目二")

	doing := &model.Status{LookupBase: model.LookupBase{Name: "进行中", SortOrder: 1}, Category: "task"}
	require.NoError(t, db.Create(doing).Error)

	require.NoError(t, db.Create(&model.Task{ProjectID: p1.ID, Name: "带状态任务", StatusID: &doing.ID}).Error)
	require.NoError(t, db.Create(&model.Task{ProjectID: p1.ID, Name: "无状态任务"}).Error)
	require.NoError(t, db.Create(&model.Task{ProjectID: p2.ID, Name: "另一项目任务", StatusID: &doing.ID}).Error)

	// score: 20(high) / 9(medium) / 2(low)
	require.NoError(t, db.Create(&model.Risk{ProjectID: p1.ID, Title: "高", Probability: 4, Impact: 5}).Error)
	require.NoError(t, db.Create(&model.Risk{ProjectID: p1.ID, Title: "中", Probability: 3, Impact: 3}).Error)
	require.NoError(t, db.Create(&model.Risk{ProjectID: p2.ID, Title: "低", Probability: 1, Impact: 2}).Error)

	return p1, p2
}

func TestDashboardService_Summary(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewDashboardService(db, nil, nil)
	p1, _ := seedDashboardData(t, db)

	t.Run("global", func(t *testing.T) {
		summary, err := svc.Summary(context.Background(), nil)
		require.NoError(t, err)
		assert.EqualValues(t, 2, summary.ProjectCount)
		assert.EqualValues(t, 3, summary.TaskCount)
		assert.EqualValues(t, 3, summary.RiskCount)
		assert.EqualValues(t, 1, summary.HighRiskCount)
	})

	t.Run("project scoped", func(t *testing.T) {
		summary, err := svc.Summary(context.Background(), &dto.DashboardQuery{ProjectID: &p1.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 1, summary.ProjectCount)
		assert.EqualValues(t, 2, summary.TaskCount)
		assert.EqualValues(t, 2, summary.RiskCount)
		assert.EqualValues(t, 1, summary.HighRiskCount)
	})
}

func TestDashboardService_TasksByStatus(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewDashboardService(db, nil, nil)
	seedDashboardData(t, db)

	buckets, err := svc.TasksByStatus(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	byLabel := map[string]int64{}
	for _, bucket := range buckets {
		byLabel[bucket.Label] = bucket.Count
	}
	assert.EqualValues(t, 2, byLabel["进行中"])
	// 未关联状态的任务归入"未设置"桶
	assert.EqualValues(t, 1, byLabel["未设置"])
}

func TestDashboardService_RisksBySeverity(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewDashboardService(db, nil, nil)
	seedDashboardData(t, db)

	buckets, err := svc.RisksBySeverity(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	// 固定顺序 high/medium/low, 空桶也保留
	assert.Equal(t, "high", buckets[0].Key)
	assert.Equal(t, "medium", buckets[1].Key)
	assert.Equal(t, "low", buckets[2].Key)
	assert.EqualValues(t, 1, buckets[0].Count)
	assert.EqualValues(t, 1, buckets[1].Count)
	assert.EqualValues(t, 1, buckets[2].Count)
}

func TestDashboardService_FeatureMatrix(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewDashboardService(db, nil, nil)
	project := seedProject(t, db, "矩阵项目")

	trading := &model.Function{LookupBase: model.LookupBase{Name: "交易", SortOrder: 1}}
	require.NoError(t, db.Create(trading).Error)
	done := &model.Status{LookupBase: model.LookupBase{Name: "已完成", SortOrder: 1}, Category: "feature"}
	require.NoError(t, db.Create(done).Error)

	require.NoError(t, db.Create(&model.Feature{
		ProjectID: project.ID, Name: "限价单", FunctionID: &trading.ID, StatusID: &done.ID,
	}).Error)
	require.NoError(t, db.Create(&model.Feature{
		ProjectID: project.ID, Name: "市价单", FunctionID: &trading.ID, StatusID: &done.ID,
	}).Error)
	// 缺少功能域或状态的特性归入"未分类/未设置"桶
	require.NoError(t, db.Create(&model.Feature{ProjectID: project.ID, Name: "未分类特性"}).Error)

	matrix, err := svc.FeatureMatrix(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, matrix.Cells, 2)

	type cellKey struct {
		function string
		status   string
	}
	byKey := map[cellKey]int64{}
	for _, cell := range matrix.Cells {
		byKey[cellKey{cell.FunctionName, cell.StatusName}] = cell.Count
	}
	assert.EqualValues(t, 2, byKey[cellKey{"交易", "已完成"}])
	assert.EqualValues(t, 1, byKey[cellKey{"未分类", "未设置"}])
	// Total等于特性总数
	assert.EqualValues(t, 3, matrix.Total)
}

func TestDashboardService_ResourceUtilization(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewDashboardService(db, nil, nil)
	p1, p2 := seedDashboardData(t, db)

	overworked := &model.Resource{Name: "超负荷成员", AvailabilityPercent: 100}
	idle := &model.Resource{Name: "空闲成员", AvailabilityPercent: 80}
	require.NoError(t, db.Create(overworked).Error)
	require.NoError(t, db.Create(idle).Error)

	require.NoError(t, db.Create(&model.ProjectResource{ProjectID: p1.ID, ResourceID: overworked.ID, AllocationPercent: 70}).Error)
	require.NoError(t, db.Create(&model.ProjectResource{ProjectID: p2.ID, ResourceID: overworked.ID, AllocationPercent: 50}).Error)

	items, err := svc.ResourceUtilization(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	byName := map[string]*dto.ResourceUtilizationItem{}
	for _, item := range items {
		byName[item.ResourceName] = item
	}

	require.Contains(t, byName, "超负荷成员")
	assert.Equal(t, 120, byName["超负荷成员"].AllocatedPercent)
	assert.True(t, byName["超负荷成员"].Overallocated)

	require.Contains(t, byName, "空闲成员")
	assert.Equal(t, 0, byName["空闲成员"].AllocatedPercent)
	assert.False(t, byName["空闲成员"].Overallocated)
}

func TestDashboardService_DemoModeScoping(t *testing.T) {
	db := setupServiceDB(t)
	p1, _ := seedDashboardData(t, db)
	svc := NewDashboardService(db, nil, &config.ServerConfig{
		DemoMode:       true,
		DemoProjectIDs: []int64{p1.ID},
	})

	summary, err := svc.Summary(context.Background(), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.ProjectCount)
	assert.EqualValues(t, 2, summary.TaskCount)
}

func TestDashboardService_WarmUpWithoutCache(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewDashboardService(db, nil, nil)
	// 未启用缓存时预热是空操作, 不应panic
	svc.WarmUp(context.Background())
}
