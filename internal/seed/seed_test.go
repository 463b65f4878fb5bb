package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pm-dashboard/internal/model"
)

const seedFixture = `
statuses:
  - { name: 进行中, color: "#409EFF", sort_order: 1, category: task }
  - { name: 已完成, color: "#67C23A", sort_order: 2, category: task }
priorities:
  - { name: 高, color: "#F56C6C", sort_order: 1, rank: 3 }
portfolios:
  - { name: 核心系统, sort_order: 1 }
`

func setupSeedTest(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	file := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(file, []byte(seedFixture), 0644))
	return db, file
}

func TestRun_Idempotent(t *testing.T) {
	db, file := setupSeedTest(t)

	require.NoError(t, Run(db, file, zap.NewNop()))

	var statusCount, priorityCount, portfolioCount int64
	require.NoError(t, db.Model(&model.Status{}).Count(&statusCount).Error)
	require.NoError(t, db.Model(&model.Priority{}).Count(&priorityCount).Error)
	require.NoError(t, db.Model(&model.Portfolio{}).Count(&portfolioCount).Error)
	assert.EqualValues(t, 2, statusCount)
	assert.EqualValues(t, 1, priorityCount)
	assert.EqualValues(t, 1, portfolioCount)

	// 重复执行不产生重复字典项
	require.NoError(t, Run(db, file, zap.NewNop()))
	require.NoError(t, db.Model(&model.Status{}).Count(&statusCount).Error)
	assert.EqualValues(t, 2, statusCount)
}

func TestRun_FieldMapping(t *testing.T) {
	db, file := setupSeedTest(t)
	require.NoError(t, Run(db, file, zap.NewNop()))

	var status model.Status
	require.NoError(t, db.Where("name = ?", "进行中").First(&status).Error)
	assert.Equal(t, "#409EFF", status.Color)
	assert.Equal(t, "task", status.Category)

	var priority model.Priority
	require.NoError(t, db.Where("name = ?", "高").First(&priority).Error)
	assert.Equal(t, 3, priority.Rank)
}

func TestRun_MissingFile(t *testing.T) {
	db, _ := setupSeedTest(t)
	assert.Error(t, Run(db, "no/such/seed.yaml", zap.NewNop()))
}
