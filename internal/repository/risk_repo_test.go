package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pm-dashboard/internal/model"
)

func TestRiskRepository_ScoreFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRiskRepository(db)
	project := createTestProject(t, db, "风险项目")

	// score: 25 / 9 / 2
	risks := []*model.Risk{
		{ProjectID: project.ID, Title: "数据迁移失败", Probability: 5, Impact: 5},
		{ProjectID: project.ID, Title: "供应商延期", Probability: 3, Impact: 3},
		{ProjectID: project.ID, Title: "文档缺失", Probability: 1, Impact: 2},
	}
	for _, risk := range risks {
		require.NoError(t, repo.Create(risk))
	}

	t.Run("high severity range", func(t *testing.T) {
		items, total, err := repo.List(1, 10, &RiskListFilter{MinScore: 15})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "数据迁移失败", items[0].Title)
	})

	t.Run("medium severity range", func(t *testing.T) {
		items, _, err := repo.List(1, 10, &RiskListFilter{MinScore: 8, MaxScore: 14})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "供应商延期", items[0].Title)
	})

	t.Run("low severity range", func(t *testing.T) {
		items, _, err := repo.List(1, 10, &RiskListFilter{MaxScore: 7})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "文档缺失", items[0].Title)
	})

	t.Run("project filter", func(t *testing.T) {
		other := createTestProject(t, db, "其他项目")
		_, total, err := repo.List(1, 10, &RiskListFilter{ProjectID: &other.ID})
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestRiskRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRiskRepository(db)
	project := createTestProject(t, db, "风险项目")

	risk := &model.Risk{ProjectID: project.ID, Title: "接口不稳定", Probability: 2, Impact: 3}
	require.NoError(t, repo.Create(risk))

	risk.Probability = 4
	require.NoError(t, repo.Update(risk))

	found, err := repo.FindByID(risk.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, found.Probability)
}
