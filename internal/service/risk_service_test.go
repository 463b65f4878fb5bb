package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/repository"
	"pm-dashboard/pkg/constants"
)

func newRiskService(t *testing.T) (RiskService, *fakePublisher, int64) {
	t.Helper()
	db := setupServiceDB(t)
	project := seedProject(t, db, "风险测试项目")
	publisher := &fakePublisher{}
	svc := NewRiskService(
		repository.NewRiskRepository(db),
		repository.NewProjectRepository(db),
		repository.NewLookupRepository(db),
		publisher,
		nil,
		nil,
	)
	return svc, publisher, project.ID
}

func TestRiskService_CreateComputesScore(t *testing.T) {
	svc, publisher, projectID := newRiskService(t)

	resp, err := svc.Create(&dto.CreateRiskRequest{
		ProjectID:   projectID,
		Title:       "核心开发离职",
		Probability: 4,
		Impact:      5,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Score)
	assert.Equal(t, "high", resp.Severity)

	// 写操作成功后广播到risks房间
	require.Len(t, publisher.messages, 1)
	assert.Equal(t, constants.RoomRisks, publisher.messages[0].Room)
	assert.Equal(t, constants.MsgTypeEntityCreated, publisher.messages[0].MsgType)
}

func TestRiskService_CreateRejectsMissingProject(t *testing.T) {
	svc, publisher, _ := newRiskService(t)

	_, err := svc.Create(&dto.CreateRiskRequest{
		ProjectID:   9999,
		Title:       "孤儿风险",
		Probability: 1,
		Impact:      1,
	})
	require.Error(t, err)
	assert.Empty(t, publisher.messages)
}

func TestRiskService_CreateRejectsMissingStatus(t *testing.T) {
	svc, _, projectID := newRiskService(t)

	missing := int64(777)
	_, err := svc.Create(&dto.CreateRiskRequest{
		ProjectID:   projectID,
		Title:       "状态引用错误",
		Probability: 1,
		Impact:      1,
		StatusID:    &missing,
	})
	require.Error(t, err)
}

func TestRiskService_ListSeverityMapping(t *testing.T) {
	svc, _, projectID := newRiskService(t)

	// score: 25(high) / 9(medium) / 2(low)
	for _, risk := range []dto.CreateRiskRequest{
		{ProjectID: projectID, Title: "高风险", Probability: 5, Impact: 5},
		{ProjectID: projectID, Title: "中风险", Probability: 3, Impact: 3},
		{ProjectID: projectID, Title: "低风险", Probability: 1, Impact: 2},
	} {
		req := risk
		_, err := svc.Create(&req)
		require.NoError(t, err)
	}

	cases := []struct {
		severity string
		want     string
	}{
		{"high", "高风险"},
		{"medium", "中风险"},
		{"low", "低风险"},
	}
	for _, tc := range cases {
		t.Run(tc.severity, func(t *testing.T) {
			items, total, err := svc.List(&dto.RiskListQuery{Severity: tc.severity})
			require.NoError(t, err)
			assert.EqualValues(t, 1, total)
			require.Len(t, items, 1)
			assert.Equal(t, tc.want, items[0].Title)
			assert.Equal(t, tc.severity, items[0].Severity)
		})
	}
}

func TestRiskService_UpdateAndDelete(t *testing.T) {
	svc, publisher, projectID := newRiskService(t)

	created, err := svc.Create(&dto.CreateRiskRequest{
		ProjectID: projectID, Title: "性能不达标", Probability: 2, Impact: 2,
	})
	require.NoError(t, err)

	newImpact := 5
	updated, err := svc.Update(created.ID, &dto.UpdateRiskRequest{ID: created.ID, Impact: &newImpact})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Score)
	assert.Equal(t, "medium", updated.Severity)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.GetByID(created.ID)
	require.Error(t, err)

	// created + updated + deleted 三次广播
	assert.Len(t, publisher.messages, 3)
	assert.Equal(t, constants.MsgTypeEntityDeleted, publisher.messages[2].MsgType)
}
