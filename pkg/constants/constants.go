package constants

import "fmt"

// WebSocket 房间名称
const (
	RoomDashboard = "dashboard"
	RoomProjects  = "projects"
	RoomResources = "resources"
	RoomRisks     = "risks"
	RoomGeneral   = "general"
)

// Rooms 所有合法房间
var Rooms = []string{RoomDashboard, RoomProjects, RoomResources, RoomRisks, RoomGeneral}

// IsValidRoom 判断房间名称是否合法
func IsValidRoom(room string) bool {
	for _, r := range Rooms {
		if r == room {
			return true
		}
	}
	return false
}

// WebSocket 消息类型
const (
	MsgTypeEntityCreated = "entity_created"
	MsgTypeEntityUpdated = "entity_updated"
	MsgTypeEntityDeleted = "entity_deleted"
	MsgTypeNotification  = "notification"
	MsgTypeQueuedFlush   = "queued_flush"
)

// 风险评分阈值, score = probability * impact (1-25)
const (
	RiskScoreHigh   = 15 // >=15 高风险
	RiskScoreMedium = 8  // >=8 中风险
)

// RiskSeverity 风险等级
func RiskSeverity(probability, impact int) string {
	score := probability * impact
	switch {
	case score >= RiskScoreHigh:
		return "high"
	case score >= RiskScoreMedium:
		return "medium"
	default:
		return "low"
	}
}

// 目标季度格式: 2025Q1
const QuarterFormat = "%dQ%d"

// FormatQuarter 格式化季度
func FormatQuarter(year, quarter int) string {
	return fmt.Sprintf(QuarterFormat, year, quarter)
}

// 缓存Key前缀
const (
	CacheKeyDashboardSummary    = "dashboard:summary"
	CacheKeyFeatureMatrix       = "dashboard:feature_matrix"
	CacheKeyTasksByStatus       = "dashboard:tasks_by_status"
	CacheKeyRisksBySeverity     = "dashboard:risks_by_severity"
	CacheKeyResourceUtilization = "dashboard:resource_utilization"
	QueueKeyPrefix              = "wsqueue:" // 离线消息队列前缀
)

// DashboardCacheKeys 看板缓存基础key, 实体写操作后统一失效
var DashboardCacheKeys = []string{
	CacheKeyDashboardSummary,
	CacheKeyFeatureMatrix,
	CacheKeyTasksByStatus,
	CacheKeyRisksBySeverity,
	CacheKeyResourceUtilization,
}
