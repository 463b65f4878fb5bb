package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/repository"
)

func newBacklogService(t *testing.T) (BacklogService, *gorm.DB, int64) {
	t.Helper()
	db := setupServiceDB(t)
	project := seedProject(t, db, "待办测试项目")
	svc := NewBacklogService(
		repository.NewBacklogRepository(db),
		repository.NewProjectRepository(db),
		repository.NewFeatureRepository(db),
		repository.NewLookupRepository(db),
		nil,
		nil,
		nil,
	)
	return svc, db, project.ID
}

func TestBacklogService_CreateRoundTrip(t *testing.T) {
	svc, _, projectID := newBacklogService(t)

	created, err := svc.Create(&dto.CreateBacklogRequest{
		ProjectID:     projectID,
		Title:         "支持批量导入",
		TargetQuarter: "2026Q4",
	})
	require.NoError(t, err)

	found, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "支持批量导入", found.Title)
	assert.Equal(t, "2026Q4", found.TargetQuarter)
}

func TestBacklogService_TargetQuarterValidation(t *testing.T) {
	svc, _, projectID := newBacklogService(t)

	t.Run("rejects malformed quarter", func(t *testing.T) {
		for _, quarter := range []string{"三季度", "2026-Q3", "2026Q5", "2026Q0"} {
			_, err := svc.Create(&dto.CreateBacklogRequest{
				ProjectID:     projectID,
				Title:         "格式校验",
				TargetQuarter: quarter,
			})
			require.Error(t, err, quarter)
		}
	})

	t.Run("empty quarter allowed", func(t *testing.T) {
		created, err := svc.Create(&dto.CreateBacklogRequest{
			ProjectID: projectID,
			Title:     "未排期待办",
		})
		require.NoError(t, err)
		assert.Empty(t, created.TargetQuarter)
	})

	t.Run("update validates quarter", func(t *testing.T) {
		created, err := svc.Create(&dto.CreateBacklogRequest{
			ProjectID:     projectID,
			Title:         "待排期",
			TargetQuarter: "2026Q1",
		})
		require.NoError(t, err)

		bad := "Q1-2026"
		_, err = svc.Update(created.ID, &dto.UpdateBacklogRequest{ID: created.ID, TargetQuarter: &bad})
		require.Error(t, err)

		good := "2027Q2"
		updated, err := svc.Update(created.ID, &dto.UpdateBacklogRequest{ID: created.ID, TargetQuarter: &good})
		require.NoError(t, err)
		assert.Equal(t, "2027Q2", updated.TargetQuarter)
	})
}
