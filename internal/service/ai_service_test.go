package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/aiclient"
	"pm-dashboard/internal/repository"
)

func newAIService(t *testing.T, client aiclient.Client) (AIService, *gorm.DB, *model.Project) {
	t.Helper()
	db := setupServiceDB(t)
	project := seedProject(t, db, "AI分析项目")
	svc := NewAIService(
		client,
		repository.NewProjectRepository(db),
		repository.NewTaskRepository(db),
		repository.NewRiskRepository(db),
	)
	return svc, db, project
}

func TestAIService_AnalyzeHealthWithModel(t *testing.T) {
	client := &fakeAIClient{analyzeText: "项目健康度为良, 建议关注联调任务。"}
	svc, _, project := newAIService(t, client)

	resp, err := svc.AnalyzeHealth(context.Background(), project.ID)
	require.NoError(t, err)
	assert.False(t, resp.Degraded)
	assert.Equal(t, "项目健康度为良, 建议关注联调任务。", resp.Analysis)
	assert.Equal(t, AnalysisKindHealth, resp.Kind)
}

func TestAIService_AnalyzeHealthDegradesOnError(t *testing.T) {
	client := &fakeAIClient{analyzeErr: errModelDown}
	svc, db, project := newAIService(t, client)

	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Create(&model.Task{ProjectID: project.ID, Name: "已完成任务", Progress: 100}).Error)
	require.NoError(t, db.Create(&model.Task{ProjectID: project.ID, Name: "逾期任务", Progress: 50, DueDate: &yesterday}).Error)

	resp, err := svc.AnalyzeHealth(context.Background(), project.ID)
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Contains(t, resp.Analysis, "2 个任务")
	assert.Contains(t, resp.Analysis, "1 个已完成")
	assert.Contains(t, resp.Analysis, "1 个已逾期")
}

func TestAIService_AnalyzeHealthWithoutClient(t *testing.T) {
	svc, _, project := newAIService(t, nil)

	resp, err := svc.AnalyzeHealth(context.Background(), project.ID)
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Contains(t, resp.Analysis, "暂无任务数据")
}

func TestAIService_AnalyzeFinancialVerdicts(t *testing.T) {
	svc, db, project := newAIService(t, nil)

	cases := []struct {
		name   string
		budget int64
		actual int64
		want   string
	}{
		{"no budget", 0, 100, "未设置预算"},
		{"over budget", 1000, 1200, "超出预算"},
		{"near budget", 1000, 850, "预算的80%"},
		{"normal", 1000, 300, "财务状况正常"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, db.Model(&model.Project{}).Where("id = ?", project.ID).Updates(map[string]interface{}{
				"budget":      decimal.NewFromInt(tc.budget),
				"actual_cost": decimal.NewFromInt(tc.actual),
			}).Error)

			resp, err := svc.AnalyzeFinancial(context.Background(), project.ID)
			require.NoError(t, err)
			assert.True(t, resp.Degraded)
			assert.Contains(t, resp.Analysis, tc.want)
		})
	}
}

func TestAIService_AnalyzeResource(t *testing.T) {
	svc, db, project := newAIService(t, nil)

	t.Run("no allocations", func(t *testing.T) {
		resp, err := svc.AnalyzeResource(context.Background(), project.ID)
		require.NoError(t, err)
		assert.True(t, resp.Degraded)
		assert.Contains(t, resp.Analysis, "尚未分配任何资源")
	})

	t.Run("with allocations", func(t *testing.T) {
		resource := &model.Resource{Name: "赵敏", AvailabilityPercent: 100}
		require.NoError(t, db.Create(resource).Error)
		require.NoError(t, db.Create(&model.ProjectResource{
			ProjectID: project.ID, ResourceID: resource.ID, AllocationPercent: 60,
		}).Error)

		resp, err := svc.AnalyzeResource(context.Background(), project.ID)
		require.NoError(t, err)
		assert.Contains(t, resp.Analysis, "赵敏(60%)")
		assert.Contains(t, resp.Analysis, "合计投入度 60%")
	})
}

func TestHealthVerdict(t *testing.T) {
	assert.Contains(t, healthVerdict(0, 0, 0), "暂无任务数据")
	assert.Contains(t, healthVerdict(3, 0, 2), "健康度为差")
	assert.Contains(t, healthVerdict(10, 5, 1), "健康度为中")
	assert.Contains(t, healthVerdict(4, 4, 0), "健康度为优")
	assert.Contains(t, healthVerdict(4, 2, 0), "健康度为良")
}
