package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/service"
	"pm-dashboard/pkg/responses"
	"pm-dashboard/pkg/utils"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Create 创建项目
// @Summary 创建项目
// @Tags Project
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "创建项目请求"
// @Success 200 {object} responses.Response{data=dto.ProjectResponse}
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	project, err := h.projectService.Create(&req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, project)
}

// GetByID 获取项目详情
// @Summary 获取项目详情
// @Tags Project
// @Accept json
// @Produce json
// @Param id query int64 true "项目ID"
// @Param with_relations query bool false "包含任务/特性/待办/风险/资源"
// @Success 200 {object} responses.Response{data=dto.ProjectResponse}
// @Router /api/v1/project [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	var req dto.GetProjectRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	project, err := h.projectService.GetByID(req.ID, req.WithRelations)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, project)
}

// List 获取项目列表
// @Summary 获取项目列表（无分页参数时返回全部简化列表，用于下拉选择）
// @Tags Project
// @Accept json
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键字搜索"
// @Param status_id query int64 false "状态ID"
// @Param priority_id query int64 false "优先级ID"
// @Param portfolio_id query int64 false "组合ID"
// @Success 200 {object} responses.PageResponse{data=[]dto.ProjectResponse}
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	var query dto.ProjectListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	// 无分页参数时返回全部简化列表, 用于下拉选择
	if query.Page == 0 && query.PageSize == 0 {
		projects, err := h.projectService.ListAll()
		if err != nil {
			responses.Error(c, err)
			return
		}
		responses.Success(c, projects)
		return
	}

	projects, total, err := h.projectService.List(&query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.PageSuccess(c, projects, total, query.GetPage(), query.GetPageSize())
}

// Update 更新项目
// @Summary 更新项目
// @Tags Project
// @Accept json
// @Produce json
// @Param request body dto.UpdateProjectRequest true "更新项目请求"
// @Success 200 {object} responses.Response{data=dto.ProjectResponse}
// @Router /api/v1/projects [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	project, err := h.projectService.Update(req.ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, project)
}

// Delete 删除项目
// @Summary 删除项目（存在子实体时拒绝）
// @Tags Project
// @Accept json
// @Produce json
// @Param id path int64 true "项目ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的项目ID", err.Error())
		return
	}

	if err := h.projectService.Delete(id); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, nil)
}

// AllocateResource 分配资源到项目
// @Summary 分配资源到项目（重复分配时更新投入度）
// @Tags Project
// @Accept json
// @Produce json
// @Param request body dto.AllocateResourceRequest true "资源分配请求"
// @Success 200 {object} responses.Response
// @Router /api/v1/projects/resources [post]
func (h *ProjectHandler) AllocateResource(c *gin.Context) {
	var req dto.AllocateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.projectService.AllocateResource(&req); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, nil)
}

// RemoveResourceAllocation 移除项目资源分配
// @Summary 移除项目资源分配
// @Tags Project
// @Accept json
// @Produce json
// @Param id path int64 true "项目ID"
// @Param resource_id path int64 true "资源ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/projects/{id}/resources/{resource_id} [delete]
func (h *ProjectHandler) RemoveResourceAllocation(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的项目ID", err.Error())
		return
	}
	resourceID, err := strconv.ParseInt(c.Param("resource_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的资源ID", err.Error())
		return
	}

	if err := h.projectService.RemoveResourceAllocation(projectID, resourceID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, nil)
}
