package repository

import "gorm.io/gorm"

type QueryOption func(*gorm.DB) *gorm.DB

func WithPreload(association string, conds ...interface{}) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(association, conds...)
	}
}

// WithDemoScope demo_mode下把列表查询限定到固定的演示项目集合
// 不修改存量数据, 只影响查询
func WithDemoScope(projectIDs []int64) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		if len(projectIDs) == 0 {
			return db
		}
		return db.Where("project_id IN ?", projectIDs)
	}
}

// WithProjectDemoScope 项目表自身的demo过滤(按主键)
func WithProjectDemoScope(projectIDs []int64) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		if len(projectIDs) == 0 {
			return db
		}
		return db.Where("id IN ?", projectIDs)
	}
}

// applyOptions 依次应用查询选项
func applyOptions(db *gorm.DB, opts []QueryOption) *gorm.DB {
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

// orderClause 构造稳定排序, id兜底保证分页幂等
func orderClause(sortBy string, desc bool, fallback string) string {
	col := sortBy
	if col == "" {
		col = fallback
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return col + " " + dir + ", id ASC"
}
