package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/aiclient"
	"pm-dashboard/internal/pkg/logger"
	"pm-dashboard/internal/repository"
)

// 分析类型
const (
	AnalysisKindHealth    = "health"
	AnalysisKindFinancial = "financial"
	AnalysisKindResource  = "resource"
)

// AIService 项目AI分析
// 模型服务不可用时降级为规则文本, 接口始终可用
type AIService interface {
	AnalyzeHealth(ctx context.Context, projectID int64) (*dto.AnalysisResponse, error)
	AnalyzeFinancial(ctx context.Context, projectID int64) (*dto.AnalysisResponse, error)
	AnalyzeResource(ctx context.Context, projectID int64) (*dto.AnalysisResponse, error)
}

type aiService struct {
	client      aiclient.Client
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	riskRepo    repository.RiskRepository
}

func NewAIService(
	client aiclient.Client,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	riskRepo repository.RiskRepository,
) AIService {
	return &aiService{
		client:      client,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		riskRepo:    riskRepo,
	}
}

func (s *aiService) AnalyzeHealth(ctx context.Context, projectID int64) (*dto.AnalysisResponse, error) {
	project, err := s.projectRepo.FindByID(projectID, repository.WithPreload("Status"))
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProjectID(projectID)
	if err != nil {
		return nil, err
	}

	total := len(tasks)
	done := 0
	overdue := 0
	now := time.Now()
	for _, task := range tasks {
		if task.Progress >= 100 {
			done++
		} else if task.DueDate != nil && task.DueDate.Before(now) {
			overdue++
		}
	}

	prompt := fmt.Sprintf(
		"分析项目健康度。项目: %s, 任务总数: %d, 已完成: %d, 已逾期: %d。给出健康评级与建议。",
		project.Name, total, done, overdue)
	fallback := fmt.Sprintf(
		"项目 %s 共有 %d 个任务, 其中 %d 个已完成, %d 个已逾期。%s",
		project.Name, total, done, overdue, healthVerdict(total, done, overdue))

	return s.analyze(ctx, project, AnalysisKindHealth, prompt, fallback), nil
}

func (s *aiService) AnalyzeFinancial(ctx context.Context, projectID int64) (*dto.AnalysisResponse, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"分析项目财务状况。项目: %s, 预算: %s, 实际支出: %s。评估超支风险。",
		project.Name, project.Budget.StringFixed(2), project.ActualCost.StringFixed(2))

	var verdict string
	switch {
	case project.Budget.IsZero():
		verdict = "未设置预算, 无法评估超支风险。"
	case project.ActualCost.GreaterThan(project.Budget):
		verdict = "实际支出已超出预算, 建议立即复核成本构成。"
	case project.ActualCost.GreaterThanOrEqual(project.Budget.Mul(decimal.NewFromFloat(0.8))):
		verdict = "实际支出已达预算的80%以上, 需关注后续成本。"
	default:
		verdict = "支出在预算范围内, 财务状况正常。"
	}
	fallback := fmt.Sprintf("项目 %s 预算 %s, 实际支出 %s。%s",
		project.Name, project.Budget.StringFixed(2), project.ActualCost.StringFixed(2), verdict)

	return s.analyze(ctx, project, AnalysisKindFinancial, prompt, fallback), nil
}

func (s *aiService) AnalyzeResource(ctx context.Context, projectID int64) (*dto.AnalysisResponse, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, err
	}

	allocations, err := s.projectRepo.ListAllocations(projectID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(allocations))
	totalPercent := 0
	for _, allocation := range allocations {
		if allocation.Resource != nil {
			names = append(names, fmt.Sprintf("%s(%d%%)", allocation.Resource.Name, allocation.AllocationPercent))
		}
		totalPercent += allocation.AllocationPercent
	}

	prompt := fmt.Sprintf(
		"分析项目资源配置。项目: %s, 投入人员: %s。评估人力是否充足。",
		project.Name, strings.Join(names, ", "))

	var fallback string
	if len(allocations) == 0 {
		fallback = fmt.Sprintf("项目 %s 尚未分配任何资源, 建议尽快确定人员投入。", project.Name)
	} else {
		fallback = fmt.Sprintf("项目 %s 共投入 %d 名资源: %s, 合计投入度 %d%%。",
			project.Name, len(allocations), strings.Join(names, ", "), totalPercent)
	}

	return s.analyze(ctx, project, AnalysisKindResource, prompt, fallback), nil
}

// analyze 调用模型服务, 失败时回落到规则文本
func (s *aiService) analyze(ctx context.Context, project *model.Project, kind, prompt, fallback string) *dto.AnalysisResponse {
	resp := &dto.AnalysisResponse{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Kind:        kind,
		GeneratedAt: time.Now().Format(dto.TimeLayout),
	}

	if s.client != nil {
		text, err := s.client.Analyze(ctx, prompt)
		if err == nil && text != "" {
			resp.Analysis = text
			return resp
		}
		if err != nil {
			logger.Warn("模型分析失败, 降级为规则文本",
				zap.Int64("project_id", project.ID), zap.String("kind", kind), zap.Error(err))
		}
	}

	resp.Analysis = fallback
	resp.Degraded = true
	return resp
}

// healthVerdict 健康度规则结论
func healthVerdict(total, done, overdue int) string {
	switch {
	case total == 0:
		return "暂无任务数据, 无法评估健康度。"
	case overdue > total/3:
		return "逾期任务过多, 项目健康度为差, 需要重点干预。"
	case overdue > 0:
		return "存在逾期任务, 项目健康度为中, 建议跟进逾期项。"
	case done == total:
		return "全部任务已完成, 项目健康度为优。"
	default:
		return "任务推进正常, 项目健康度为良。"
	}
}
