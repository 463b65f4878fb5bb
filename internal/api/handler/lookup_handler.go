package handler

import (
	"github.com/gin-gonic/gin"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/service"
	"pm-dashboard/pkg/responses"
	"pm-dashboard/pkg/utils"
)

// LookupHandler 字典表统一入口
// kind路径参数: status/priority/function/platform/portfolio/application_type/investment_type/project_type
type LookupHandler struct {
	lookupService service.LookupService
}

func NewLookupHandler(lookupService service.LookupService) *LookupHandler {
	return &LookupHandler{
		lookupService: lookupService,
	}
}

// List 获取字典项列表
// @Summary 获取字典项列表
// @Tags Lookup
// @Accept json
// @Produce json
// @Param kind path string true "字典类型"
// @Param category query string false "状态分类（仅statuses有效）"
// @Success 200 {object} responses.Response{data=[]dto.LookupResponse}
// @Router /api/v1/lookups/{kind} [get]
func (h *LookupHandler) List(c *gin.Context) {
	var query dto.LookupListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	items, err := h.lookupService.List(c.Param("kind"), &query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, items)
}

// Create 创建字典项
// @Summary 创建字典项
// @Tags Lookup
// @Accept json
// @Produce json
// @Param kind path string true "字典类型"
// @Param request body dto.CreateLookupRequest true "创建字典项请求"
// @Success 200 {object} responses.Response{data=int64}
// @Router /api/v1/lookups/{kind} [post]
func (h *LookupHandler) Create(c *gin.Context) {
	var req dto.CreateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	id, err := h.lookupService.Create(c.Param("kind"), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, id)
}

// Update 更新字典项
// @Summary 更新字典项
// @Tags Lookup
// @Accept json
// @Produce json
// @Param kind path string true "字典类型"
// @Param request body dto.UpdateLookupRequest true "更新字典项请求"
// @Success 200 {object} responses.Response
// @Router /api/v1/lookups/{kind} [put]
func (h *LookupHandler) Update(c *gin.Context) {
	var req dto.UpdateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.lookupService.Update(c.Param("kind"), &req); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, nil)
}
