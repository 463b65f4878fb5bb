package handler

import (
	"github.com/gin-gonic/gin"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/service"
	"pm-dashboard/pkg/responses"
	"pm-dashboard/pkg/utils"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Summary 看板总览
// @Summary 看板总览（项目/任务/特性/待办/资源/风险计数）
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param project_id query int64 false "限定单个项目"
// @Success 200 {object} responses.Response{data=dto.DashboardSummary}
// @Router /api/v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	var query dto.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), &query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, summary)
}

// TasksByStatus 任务状态分布
// @Summary 任务按状态分组计数
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param project_id query int64 false "限定单个项目"
// @Success 200 {object} responses.Response{data=[]dto.BucketCount}
// @Router /api/v1/dashboard/tasks-by-status [get]
func (h *DashboardHandler) TasksByStatus(c *gin.Context) {
	var query dto.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	buckets, err := h.dashboardService.TasksByStatus(c.Request.Context(), &query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, buckets)
}

// RisksBySeverity 风险等级分布
// @Summary 风险按等级分组计数（high/medium/low）
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param project_id query int64 false "限定单个项目"
// @Success 200 {object} responses.Response{data=[]dto.BucketCount}
// @Router /api/v1/dashboard/risks-by-severity [get]
func (h *DashboardHandler) RisksBySeverity(c *gin.Context) {
	var query dto.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	buckets, err := h.dashboardService.RisksBySeverity(c.Request.Context(), &query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, buckets)
}

// FeatureMatrix 特性矩阵
// @Summary 特性按功能域×状态的矩阵统计
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param project_id query int64 false "限定单个项目"
// @Success 200 {object} responses.Response{data=dto.FeatureMatrixResponse}
// @Router /api/v1/dashboard/feature-matrix [get]
func (h *DashboardHandler) FeatureMatrix(c *gin.Context) {
	var query dto.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	matrix, err := h.dashboardService.FeatureMatrix(c.Request.Context(), &query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, matrix)
}

// ResourceUtilization 资源利用率
// @Summary 资源利用率（分配投入度之和与可用度对比）
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} responses.Response{data=[]dto.ResourceUtilizationItem}
// @Router /api/v1/dashboard/resource-utilization [get]
func (h *DashboardHandler) ResourceUtilization(c *gin.Context) {
	items, err := h.dashboardService.ResourceUtilization(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, items)
}
