package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/service"
	"pm-dashboard/pkg/responses"
	"pm-dashboard/pkg/utils"
)

type BacklogHandler struct {
	backlogService service.BacklogService
}

func NewBacklogHandler(backlogService service.BacklogService) *BacklogHandler {
	return &BacklogHandler{
		backlogService: backlogService,
	}
}

// Create 创建待办
// @Summary 创建待办
// @Tags Backlog
// @Accept json
// @Produce json
// @Param request body dto.CreateBacklogRequest true "创建待办请求"
// @Success 200 {object} responses.Response{data=dto.BacklogResponse}
// @Router /api/v1/backlogs [post]
func (h *BacklogHandler) Create(c *gin.Context) {
	var req dto.CreateBacklogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	backlog, err := h.backlogService.Create(&req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, backlog)
}

// GetByID 获取待办详情
// @Summary 获取待办详情
// @Tags Backlog
// @Accept json
// @Produce json
// @Param id query int64 true "待办ID"
// @Success 200 {object} responses.Response{data=dto.BacklogResponse}
// @Router /api/v1/backlog [get]
func (h *BacklogHandler) GetByID(c *gin.Context) {
	var req dto.GetBacklogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	backlog, err := h.backlogService.GetByID(req.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, backlog)
}

// List 获取待办列表
// @Summary 获取待办列表
// @Tags Backlog
// @Accept json
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键字搜索"
// @Param project_id query int64 false "项目ID"
// @Param feature_id query int64 false "特性ID"
// @Param priority_id query int64 false "优先级ID"
// @Param target_quarter query string false "目标季度, 例: 2026Q1"
// @Success 200 {object} responses.PageResponse{data=[]dto.BacklogResponse}
// @Router /api/v1/backlogs [get]
func (h *BacklogHandler) List(c *gin.Context) {
	var query dto.BacklogListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	backlogs, total, err := h.backlogService.List(&query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.PageSuccess(c, backlogs, total, query.GetPage(), query.GetPageSize())
}

// Update 更新待办
// @Summary 更新待办
// @Tags Backlog
// @Accept json
// @Produce json
// @Param request body dto.UpdateBacklogRequest true "更新待办请求"
// @Success 200 {object} responses.Response{data=dto.BacklogResponse}
// @Router /api/v1/backlogs [put]
func (h *BacklogHandler) Update(c *gin.Context) {
	var req dto.UpdateBacklogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	backlog, err := h.backlogService.Update(req.ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, backlog)
}

// Delete 删除待办
// @Summary 删除待办
// @Tags Backlog
// @Accept json
// @Produce json
// @Param id path int64 true "待办ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/backlogs/{id} [delete]
func (h *BacklogHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的待办ID", err.Error())
		return
	}

	if err := h.backlogService.Delete(id); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, nil)
}
