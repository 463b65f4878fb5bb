package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/service"
	"pm-dashboard/pkg/responses"
	"pm-dashboard/pkg/utils"
)

type RiskHandler struct {
	riskService service.RiskService
}

func NewRiskHandler(riskService service.RiskService) *RiskHandler {
	return &RiskHandler{
		riskService: riskService,
	}
}

// Create 创建风险
// @Summary 创建风险
// @Tags Risk
// @Accept json
// @Produce json
// @Param request body dto.CreateRiskRequest true "创建风险请求"
// @Success 200 {object} responses.Response{data=dto.RiskResponse}
// @Router /api/v1/risks [post]
func (h *RiskHandler) Create(c *gin.Context) {
	var req dto.CreateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	risk, err := h.riskService.Create(&req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, risk)
}

// GetByID 获取风险详情
// @Summary 获取风险详情
// @Tags Risk
// @Accept json
// @Produce json
// @Param id query int64 true "风险ID"
// @Success 200 {object} responses.Response{data=dto.RiskResponse}
// @Router /api/v1/risk [get]
func (h *RiskHandler) GetByID(c *gin.Context) {
	var req dto.GetRiskRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	risk, err := h.riskService.GetByID(req.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, risk)
}

// List 获取风险列表
// @Summary 获取风险列表（可按等级过滤: low/medium/high）
// @Tags Risk
// @Accept json
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键字搜索"
// @Param project_id query int64 false "项目ID"
// @Param status_id query int64 false "状态ID"
// @Param severity query string false "风险等级 low/medium/high"
// @Success 200 {object} responses.PageResponse{data=[]dto.RiskResponse}
// @Router /api/v1/risks [get]
func (h *RiskHandler) List(c *gin.Context) {
	var query dto.RiskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	risks, total, err := h.riskService.List(&query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.PageSuccess(c, risks, total, query.GetPage(), query.GetPageSize())
}

// Update 更新风险
// @Summary 更新风险
// @Tags Risk
// @Accept json
// @Produce json
// @Param request body dto.UpdateRiskRequest true "更新风险请求"
// @Success 200 {object} responses.Response{data=dto.RiskResponse}
// @Router /api/v1/risks [put]
func (h *RiskHandler) Update(c *gin.Context) {
	var req dto.UpdateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	risk, err := h.riskService.Update(req.ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, risk)
}

// Delete 删除风险
// @Summary 删除风险
// @Tags Risk
// @Accept json
// @Produce json
// @Param id path int64 true "风险ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/risks/{id} [delete]
func (h *RiskHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的风险ID", err.Error())
		return
	}

	if err := h.riskService.Delete(id); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, nil)
}
