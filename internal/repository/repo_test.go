package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pm-dashboard/internal/model"
)

// setupTestDB 内存sqlite, 每个用例独立
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func createTestProject(t *testing.T, db *gorm.DB, name string) *model.Project {
	t.Helper()
	project := &model.Project{Name: name}
	require.NoError(t, db.Create(project).Error)
	return project
}

func createTestStatus(t *testing.T, db *gorm.DB, name, category string) *model.Status {
	t.Helper()
	status := &model.Status{LookupBase: model.LookupBase{Name: name}, Category: category}
	require.NoError(t, db.Create(status).Error)
	return status
}

func createTestResource(t *testing.T, db *gorm.DB, name string) *model.Resource {
	t.Helper()
	resource := &model.Resource{Name: name, AvailabilityPercent: 100}
	require.NoError(t, db.Create(resource).Error)
	return resource
}
