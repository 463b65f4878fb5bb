package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"pm-dashboard/internal/service"
	"pm-dashboard/internal/ws"
)

// 任务表达式: 秒 分 时 日 月 周
const (
	warmUpCron = "0 */1 * * * *"  // 每分钟: 预热看板缓存
	pruneCron  = "0 0 */1 * * *"  // 每小时: 清理残留离线队列
)

// Scheduler 调度器
type Scheduler struct {
	cron         *cron.Cron
	logger       *zap.Logger
	dashboardSvc service.DashboardService
	queue        *ws.Queue // 可为nil, 表示未启用离线队列
}

// NewScheduler 创建调度器(带秒级支持)
func NewScheduler(dashboardSvc service.DashboardService, queue *ws.Queue, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger,
		dashboardSvc: dashboardSvc,
		queue:        queue,
	}
}

// Start 注册并启动定时任务
func (s *Scheduler) Start() error {
	log := s.logger.Sugar()

	log.Info("启动定时任务调度器...")

	entryID, err := s.cron.AddFunc(warmUpCron, func() {
		s.dashboardSvc.WarmUp(context.Background())
	})
	if err != nil {
		log.Errorf("注册看板预热任务失败: %v", err)
		return err
	}
	log.Infof("看板预热任务已注册: %s entry_id=%d", warmUpCron, entryID)

	if s.queue != nil {
		entryID, err = s.cron.AddFunc(pruneCron, func() {
			fixed, err := s.queue.PruneStale(context.Background())
			if err != nil {
				log.Errorf("清理离线队列失败: %v", err)
				return
			}
			if fixed > 0 {
				log.Infof("清理残留离线队列: %d", fixed)
			}
		})
		if err != nil {
			log.Errorf("注册离线队列清理任务失败: %v", err)
			return err
		}
		log.Infof("离线队列清理任务已注册: %s entry_id=%d", pruneCron, entryID)
	}

	s.cron.Start()
	log.Info("定时任务调度器启动成功")

	return nil
}

// Stop 停止调度器, 等待执行中的任务完成
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("定时任务调度器已停止")
}
