package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pm-dashboard/internal/model"
	pkgErrors "pm-dashboard/pkg/responses"
)

func TestFeatureRepository_DeleteKeepsBacklogs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeatureRepository(db)
	project := createTestProject(t, db, "特性项目")

	feature := &model.Feature{ProjectID: project.ID, Name: "批量转账"}
	require.NoError(t, repo.Create(feature))

	backlog := &model.Backlog{ProjectID: project.ID, FeatureID: &feature.ID, Title: "支持批量文件导入"}
	require.NoError(t, db.Create(backlog).Error)

	require.NoError(t, repo.Delete(feature.ID))

	_, err := repo.FindByID(feature.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrRecordNotFound)

	// 待办保留, 仅解除特性关联
	var kept model.Backlog
	require.NoError(t, db.First(&kept, backlog.ID).Error)
	assert.Nil(t, kept.FeatureID)
}

func TestFeatureRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeatureRepository(db)
	project := createTestProject(t, db, "特性项目")

	function := &model.Function{LookupBase: model.LookupBase{Name: "清算"}}
	require.NoError(t, db.Create(function).Error)

	require.NoError(t, repo.Create(&model.Feature{ProjectID: project.ID, Name: "日终清算", FunctionID: &function.ID}))
	require.NoError(t, repo.Create(&model.Feature{ProjectID: project.ID, Name: "实时对账"}))

	features, total, err := repo.List(1, 10, &FeatureListFilter{FunctionID: &function.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, features, 1)
	assert.Equal(t, "日终清算", features[0].Name)
	require.NotNil(t, features[0].Function)
	assert.Equal(t, "清算", features[0].Function.Name)
}
