package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pm-dashboard/internal/model"
	pkgErrors "pm-dashboard/pkg/responses"
)

func TestIsValidLookupKind(t *testing.T) {
	for _, kind := range []string{
		"status", "priority", "function", "platform",
		"portfolio", "application_type", "investment_type", "project_type",
	} {
		assert.True(t, IsValidLookupKind(kind), kind)
	}
	assert.False(t, IsValidLookupKind("statuses"))
	assert.False(t, IsValidLookupKind(""))
	assert.False(t, IsValidLookupKind("unknown"))
}

func TestLookupRepository_CreateAndExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLookupRepository(db)

	t.Run("status with category", func(t *testing.T) {
		id, err := repo.Create(LookupStatus, model.LookupBase{Name: "已完成", Color: "#67C23A", SortOrder: 3}, "task", 0)
		require.NoError(t, err)
		require.NotZero(t, id)

		items, err := repo.ListStatuses("task")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "已完成", items[0].Name)
		assert.Equal(t, "task", items[0].Category)
	})

	t.Run("priority with rank", func(t *testing.T) {
		id, err := repo.Create(LookupPriority, model.LookupBase{Name: "紧急"}, "", 1)
		require.NoError(t, err)

		ok, err := repo.Exists(LookupPriority, id)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("generic kind", func(t *testing.T) {
		id, err := repo.Create(LookupPortfolio, model.LookupBase{Name: "数字化转型", SortOrder: 2}, "", 0)
		require.NoError(t, err)
		require.NotZero(t, id)

		ok, err := repo.Exists(LookupPortfolio, id)
		require.NoError(t, err)
		assert.True(t, ok)

		// 创建必须写入时间戳, created_at列为NOT NULL
		var portfolio model.Portfolio
		require.NoError(t, db.First(&portfolio, id).Error)
		assert.False(t, portfolio.CreatedAt.IsZero())
		assert.False(t, portfolio.UpdatedAt.IsZero())
	})

	t.Run("all generic kinds insertable", func(t *testing.T) {
		for _, kind := range []LookupKind{
			LookupFunction, LookupPlatform, LookupApplicationType,
			LookupInvestmentType, LookupProjectType,
		} {
			id, err := repo.Create(kind, model.LookupBase{Name: "字典项-" + string(kind)}, "", 0)
			require.NoError(t, err, string(kind))
			require.NotZero(t, id, string(kind))
		}
	})

	t.Run("missing id", func(t *testing.T) {
		ok, err := repo.Exists(LookupFunction, 12345)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLookupRepository_ListPrioritiesOrderedByRank(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLookupRepository(db)

	_, err := repo.Create(LookupPriority, model.LookupBase{Name: "低"}, "", 9)
	require.NoError(t, err)
	_, err = repo.Create(LookupPriority, model.LookupBase{Name: "紧急"}, "", 1)
	require.NoError(t, err)

	items, err := repo.ListPriorities()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "紧急", items[0].Name)
	assert.Equal(t, "低", items[1].Name)
}

func TestLookupRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLookupRepository(db)

	id, err := repo.Create(LookupPlatform, model.LookupBase{Name: "Web"}, "", 0)
	require.NoError(t, err)

	newName := "Web端"
	newOrder := 9
	require.NoError(t, repo.Update(LookupPlatform, id, &newName, nil, &newOrder))

	items, err := repo.ListPlatforms()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Web端", items[0].Name)
	assert.Equal(t, 9, items[0].SortOrder)

	assert.ErrorIs(t, repo.Update(LookupPlatform, 9999, &newName, nil, nil), pkgErrors.ErrRecordNotFound)
}
