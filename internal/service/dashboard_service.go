package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/cache"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/pkg/logger"
	"pm-dashboard/pkg/constants"
	pkgErrors "pm-dashboard/pkg/responses"
)

// DashboardService 看板聚合查询
// 聚合直接跑SQL统计, 结果按TTL缓存; Redis不可用时降级为直查
type DashboardService interface {
	Summary(ctx context.Context, query *dto.DashboardQuery) (*dto.DashboardSummary, error)
	TasksByStatus(ctx context.Context, query *dto.DashboardQuery) ([]*dto.BucketCount, error)
	RisksBySeverity(ctx context.Context, query *dto.DashboardQuery) ([]*dto.BucketCount, error)
	FeatureMatrix(ctx context.Context, query *dto.DashboardQuery) (*dto.FeatureMatrixResponse, error)
	ResourceUtilization(ctx context.Context) ([]*dto.ResourceUtilizationItem, error)
	WarmUp(ctx context.Context)
}

type dashboardService struct {
	db        *gorm.DB
	cache     *cache.Client
	serverCfg *config.ServerConfig
}

func NewDashboardService(db *gorm.DB, cacheClient *cache.Client, serverCfg *config.ServerConfig) DashboardService {
	return &dashboardService{db: db, cache: cacheClient, serverCfg: serverCfg}
}

// cacheKey 按查询范围区分缓存key
func cacheKey(base string, query *dto.DashboardQuery) string {
	if query != nil && query.ProjectID != nil {
		return fmt.Sprintf("%s:p%d", base, *query.ProjectID)
	}
	return base
}

// getCached 读缓存, 未命中或未启用返回false
func (s *dashboardService) getCached(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		logger.Warn("读取看板缓存失败", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

// setCached 写缓存, 失败只记日志
func (s *dashboardService) setCached(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value); err != nil {
		logger.Warn("写入看板缓存失败", zap.String("key", key), zap.Error(err))
	}
}

// scoped 按project_id与demo_mode限定查询范围
// projectColumn为所统计表中指向项目的列名, 项目表本身传"id"
func (s *dashboardService) scoped(db *gorm.DB, projectColumn string, query *dto.DashboardQuery) *gorm.DB {
	if query != nil && query.ProjectID != nil {
		db = db.Where(projectColumn+" = ?", *query.ProjectID)
	}
	if s.serverCfg != nil && s.serverCfg.DemoMode {
		db = db.Where(projectColumn+" IN ?", s.serverCfg.DemoProjectIDs)
	}
	return db
}

func (s *dashboardService) Summary(ctx context.Context, query *dto.DashboardQuery) (*dto.DashboardSummary, error) {
	key := cacheKey(constants.CacheKeyDashboardSummary, query)
	var summary dto.DashboardSummary
	if s.getCached(ctx, key, &summary) {
		return &summary, nil
	}

	counts := []struct {
		model  interface{}
		column string
		dest   *int64
	}{
		{&model.Project{}, "id", &summary.ProjectCount},
		{&model.Task{}, "project_id", &summary.TaskCount},
		{&model.Feature{}, "project_id", &summary.FeatureCount},
		{&model.Backlog{}, "project_id", &summary.BacklogCount},
		{&model.Risk{}, "project_id", &summary.RiskCount},
	}
	for _, c := range counts {
		if err := s.scoped(s.db.Model(c.model), c.column, query).Count(c.dest).Error; err != nil {
			return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计看板总览失败", err)
		}
	}

	// 资源为全局实体, 不按项目过滤
	if err := s.db.Model(&model.Resource{}).Count(&summary.ResourceCount).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计资源数量失败", err)
	}

	err := s.scoped(s.db.Model(&model.Risk{}), "project_id", query).
		Where("probability * impact >= ?", constants.RiskScoreHigh).
		Count(&summary.HighRiskCount).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计高风险数量失败", err)
	}

	s.setCached(ctx, key, &summary)
	return &summary, nil
}

// statusBucket 按状态分组计数的扫描结构
type statusBucket struct {
	StatusID *int64
	Name     *string
	Color    *string
	Count    int64
}

func (s *dashboardService) TasksByStatus(ctx context.Context, query *dto.DashboardQuery) ([]*dto.BucketCount, error) {
	key := cacheKey(constants.CacheKeyTasksByStatus, query)
	var cached []*dto.BucketCount
	if s.getCached(ctx, key, &cached) {
		return cached, nil
	}

	var rows []statusBucket
	err := s.scoped(s.db.Model(&model.Task{}), "tasks.project_id", query).
		Select("tasks.status_id, statuses.name, statuses.color, COUNT(tasks.id) AS count").
		Joins("LEFT JOIN statuses ON statuses.id = tasks.status_id").
		Where("tasks.deleted_at IS NULL").
		Group("tasks.status_id, statuses.name, statuses.color").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "按状态统计任务失败", err)
	}

	buckets := make([]*dto.BucketCount, len(rows))
	for i, row := range rows {
		bucket := &dto.BucketCount{Key: "unset", Label: "未设置", Count: row.Count}
		if row.StatusID != nil {
			bucket.Key = fmt.Sprintf("%d", *row.StatusID)
		}
		if row.Name != nil {
			bucket.Label = *row.Name
		}
		if row.Color != nil {
			bucket.Color = *row.Color
		}
		buckets[i] = bucket
	}

	s.setCached(ctx, key, buckets)
	return buckets, nil
}

func (s *dashboardService) RisksBySeverity(ctx context.Context, query *dto.DashboardQuery) ([]*dto.BucketCount, error) {
	key := cacheKey(constants.CacheKeyRisksBySeverity, query)
	var cached []*dto.BucketCount
	if s.getCached(ctx, key, &cached) {
		return cached, nil
	}

	type riskRow struct {
		Probability int
		Impact      int
	}
	var rows []riskRow
	err := s.scoped(s.db.Model(&model.Risk{}), "project_id", query).
		Select("probability, impact").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "按等级统计风险失败", err)
	}

	labels := map[string]string{"high": "高", "medium": "中", "low": "低"}
	counts := map[string]int64{}
	for _, row := range rows {
		counts[constants.RiskSeverity(row.Probability, row.Impact)]++
	}

	// 固定顺序输出, 空桶也保留
	buckets := make([]*dto.BucketCount, 0, 3)
	for _, severity := range []string{"high", "medium", "low"} {
		buckets = append(buckets, &dto.BucketCount{
			Key:   severity,
			Label: labels[severity],
			Count: counts[severity],
		})
	}

	s.setCached(ctx, key, buckets)
	return buckets, nil
}

func (s *dashboardService) FeatureMatrix(ctx context.Context, query *dto.DashboardQuery) (*dto.FeatureMatrixResponse, error) {
	key := cacheKey(constants.CacheKeyFeatureMatrix, query)
	var cached dto.FeatureMatrixResponse
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	// LEFT JOIN保留未分类特性, Total必须等于特性总数
	type matrixRow struct {
		FunctionID   *int64
		FunctionName *string
		StatusID     *int64
		StatusName   *string
		Count        int64
	}
	var rows []matrixRow
	err := s.scoped(s.db.Model(&model.Feature{}), "features.project_id", query).
		Select(`features.function_id, functions.name AS function_name,
			features.status_id, statuses.name AS status_name, COUNT(features.id) AS count`).
		Joins("LEFT JOIN functions ON functions.id = features.function_id").
		Joins("LEFT JOIN statuses ON statuses.id = features.status_id").
		Where("features.deleted_at IS NULL").
		Group("features.function_id, functions.name, functions.sort_order, features.status_id, statuses.name, statuses.sort_order").
		Order("functions.sort_order ASC, statuses.sort_order ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计特性矩阵失败", err)
	}

	resp := &dto.FeatureMatrixResponse{Cells: make([]dto.MatrixCell, len(rows))}
	for i, row := range rows {
		cell := dto.MatrixCell{FunctionName: "未分类", StatusName: "未设置", Count: row.Count}
		if row.FunctionID != nil {
			cell.FunctionID = *row.FunctionID
		}
		if row.FunctionName != nil {
			cell.FunctionName = *row.FunctionName
		}
		if row.StatusID != nil {
			cell.StatusID = *row.StatusID
		}
		if row.StatusName != nil {
			cell.StatusName = *row.StatusName
		}
		resp.Cells[i] = cell
		resp.Total += row.Count
	}

	s.setCached(ctx, key, resp)
	return resp, nil
}

func (s *dashboardService) ResourceUtilization(ctx context.Context) ([]*dto.ResourceUtilizationItem, error) {
	var cached []*dto.ResourceUtilizationItem
	if s.getCached(ctx, constants.CacheKeyResourceUtilization, &cached) {
		return cached, nil
	}

	type utilRow struct {
		ResourceID          int64
		Name                string
		AvailabilityPercent int
		AllocatedPercent    int
	}
	var rows []utilRow
	err := s.db.Model(&model.Resource{}).
		Select(`resources.id AS resource_id, resources.name, resources.availability_percent,
			COALESCE(SUM(project_resources.allocation_percent), 0) AS allocated_percent`).
		Joins("LEFT JOIN project_resources ON project_resources.resource_id = resources.id").
		Where("resources.deleted_at IS NULL").
		Group("resources.id, resources.name, resources.availability_percent").
		Order("resources.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计资源利用率失败", err)
	}

	items := make([]*dto.ResourceUtilizationItem, len(rows))
	for i, row := range rows {
		items[i] = &dto.ResourceUtilizationItem{
			ResourceID:          row.ResourceID,
			ResourceName:        row.Name,
			AvailabilityPercent: row.AvailabilityPercent,
			AllocatedPercent:    row.AllocatedPercent,
			Overallocated:       row.AllocatedPercent > row.AvailabilityPercent,
		}
	}

	s.setCached(ctx, constants.CacheKeyResourceUtilization, items)
	return items, nil
}

// WarmUp 预热全局看板缓存, 由调度器周期触发
func (s *dashboardService) WarmUp(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.Summary(ctx, nil); err != nil {
		logger.Warn("预热看板总览失败", zap.Error(err))
	}
	if _, err := s.TasksByStatus(ctx, nil); err != nil {
		logger.Warn("预热任务统计失败", zap.Error(err))
	}
	if _, err := s.RisksBySeverity(ctx, nil); err != nil {
		logger.Warn("预热风险统计失败", zap.Error(err))
	}
	if _, err := s.FeatureMatrix(ctx, nil); err != nil {
		logger.Warn("预热特性矩阵失败", zap.Error(err))
	}
	if _, err := s.ResourceUtilization(ctx); err != nil {
		logger.Warn("预热资源利用率失败", zap.Error(err))
	}
}
