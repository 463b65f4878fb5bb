package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/service"
	"pm-dashboard/pkg/responses"
	"pm-dashboard/pkg/utils"
)

type ResourceHandler struct {
	resourceService service.ResourceService
}

func NewResourceHandler(resourceService service.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
	}
}

// Create 创建资源
// @Summary 创建资源
// @Tags Resource
// @Accept json
// @Produce json
// @Param request body dto.CreateResourceRequest true "创建资源请求"
// @Success 200 {object} responses.Response{data=dto.ResourceResponse}
// @Router /api/v1/resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	var req dto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resource, err := h.resourceService.Create(&req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resource)
}

// GetByID 获取资源详情
// @Summary 获取资源详情（含所属项目与投入度）
// @Tags Resource
// @Accept json
// @Produce json
// @Param id query int64 true "资源ID"
// @Success 200 {object} responses.Response{data=dto.ResourceResponse}
// @Router /api/v1/resource [get]
func (h *ResourceHandler) GetByID(c *gin.Context) {
	var req dto.GetResourceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resource, err := h.resourceService.GetByID(req.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resource)
}

// List 获取资源列表
// @Summary 获取资源列表（无分页参数时返回全部）
// @Tags Resource
// @Accept json
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键字搜索（姓名/角色）"
// @Param skill query string false "技能标签过滤"
// @Success 200 {object} responses.PageResponse{data=[]dto.ResourceResponse}
// @Router /api/v1/resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	var query dto.ResourceListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if query.Page == 0 && query.PageSize == 0 && query.Keyword == "" && query.Skill == "" {
		resources, err := h.resourceService.ListAll()
		if err != nil {
			responses.Error(c, err)
			return
		}
		responses.Success(c, resources)
		return
	}

	resources, total, err := h.resourceService.List(&query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.PageSuccess(c, resources, total, query.GetPage(), query.GetPageSize())
}

// Update 更新资源
// @Summary 更新资源
// @Tags Resource
// @Accept json
// @Produce json
// @Param request body dto.UpdateResourceRequest true "更新资源请求"
// @Success 200 {object} responses.Response{data=dto.ResourceResponse}
// @Router /api/v1/resources [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	var req dto.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resource, err := h.resourceService.Update(req.ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resource)
}

// Delete 删除资源
// @Summary 删除资源（连带清理项目与任务分配）
// @Tags Resource
// @Accept json
// @Produce json
// @Param id path int64 true "资源ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的资源ID", err.Error())
		return
	}

	if err := h.resourceService.Delete(id); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, nil)
}
