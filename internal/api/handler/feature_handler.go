package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/service"
	"pm-dashboard/pkg/responses"
	"pm-dashboard/pkg/utils"
)

type FeatureHandler struct {
	featureService service.FeatureService
}

func NewFeatureHandler(featureService service.FeatureService) *FeatureHandler {
	return &FeatureHandler{
		featureService: featureService,
	}
}

// Create 创建特性
// @Summary 创建特性
// @Tags Feature
// @Accept json
// @Produce json
// @Param request body dto.CreateFeatureRequest true "创建特性请求"
// @Success 200 {object} responses.Response{data=dto.FeatureResponse}
// @Router /api/v1/features [post]
func (h *FeatureHandler) Create(c *gin.Context) {
	var req dto.CreateFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	feature, err := h.featureService.Create(&req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, feature)
}

// GetByID 获取特性详情
// @Summary 获取特性详情
// @Tags Feature
// @Accept json
// @Produce json
// @Param id query int64 true "特性ID"
// @Success 200 {object} responses.Response{data=dto.FeatureResponse}
// @Router /api/v1/feature [get]
func (h *FeatureHandler) GetByID(c *gin.Context) {
	var req dto.GetFeatureRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	feature, err := h.featureService.GetByID(req.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, feature)
}

// List 获取特性列表
// @Summary 获取特性列表
// @Tags Feature
// @Accept json
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键字搜索"
// @Param project_id query int64 false "项目ID"
// @Param function_id query int64 false "功能域ID"
// @Param platform_id query int64 false "平台ID"
// @Param status_id query int64 false "状态ID"
// @Success 200 {object} responses.PageResponse{data=[]dto.FeatureResponse}
// @Router /api/v1/features [get]
func (h *FeatureHandler) List(c *gin.Context) {
	var query dto.FeatureListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	features, total, err := h.featureService.List(&query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.PageSuccess(c, features, total, query.GetPage(), query.GetPageSize())
}

// Update 更新特性
// @Summary 更新特性
// @Tags Feature
// @Accept json
// @Produce json
// @Param request body dto.UpdateFeatureRequest true "更新特性请求"
// @Success 200 {object} responses.Response{data=dto.FeatureResponse}
// @Router /api/v1/features [put]
func (h *FeatureHandler) Update(c *gin.Context) {
	var req dto.UpdateFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	feature, err := h.featureService.Update(req.ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, feature)
}

// Delete 删除特性
// @Summary 删除特性（关联待办保留，解除关联）
// @Tags Feature
// @Accept json
// @Produce json
// @Param id path int64 true "特性ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/features/{id} [delete]
func (h *FeatureHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的特性ID", err.Error())
		return
	}

	if err := h.featureService.Delete(id); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, nil)
}
