package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pm-dashboard/internal/dto"
	"pm-dashboard/internal/service"
	"pm-dashboard/pkg/responses"
	"pm-dashboard/pkg/utils"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create 创建任务
// @Summary 创建任务
// @Tags Task
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "创建任务请求"
// @Success 200 {object} responses.Response{data=dto.TaskResponse}
// @Router /api/v1/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	task, err := h.taskService.Create(&req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, task)
}

// GetByID 获取任务详情
// @Summary 获取任务详情
// @Tags Task
// @Accept json
// @Produce json
// @Param id query int64 true "任务ID"
// @Success 200 {object} responses.Response{data=dto.TaskResponse}
// @Router /api/v1/task [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	var req dto.GetTaskRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	task, err := h.taskService.GetByID(req.ID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, task)
}

// List 获取任务列表
// @Summary 获取任务列表
// @Tags Task
// @Accept json
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键字搜索"
// @Param project_id query int64 false "项目ID"
// @Param status_id query int64 false "状态ID"
// @Success 200 {object} responses.PageResponse{data=[]dto.TaskResponse}
// @Router /api/v1/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var query dto.TaskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	tasks, total, err := h.taskService.List(&query)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.PageSuccess(c, tasks, total, query.GetPage(), query.GetPageSize())
}

// ListByProject 获取项目全部任务
// @Summary 获取项目全部任务（含依赖与资源，用于工作计划甘特图）
// @Tags Task
// @Accept json
// @Produce json
// @Param project_id query int64 true "项目ID"
// @Success 200 {object} responses.Response{data=[]dto.TaskResponse}
// @Router /api/v1/tasks/gantt [get]
func (h *TaskHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Query("project_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的项目ID", err.Error())
		return
	}

	tasks, err := h.taskService.ListByProject(projectID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, tasks)
}

// Update 更新任务
// @Summary 更新任务
// @Tags Task
// @Accept json
// @Produce json
// @Param request body dto.UpdateTaskRequest true "更新任务请求"
// @Success 200 {object} responses.Response{data=dto.TaskResponse}
// @Router /api/v1/tasks [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	task, err := h.taskService.Update(req.ID, &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, task)
}

// Delete 删除任务
// @Summary 删除任务（连带清理依赖与资源分配）
// @Tags Task
// @Accept json
// @Produce json
// @Param id path int64 true "任务ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的任务ID", err.Error())
		return
	}

	if err := h.taskService.Delete(id); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, nil)
}

// AssignResource 分配资源到任务
// @Summary 分配资源到任务（重复分配时更新工时）
// @Tags Task
// @Accept json
// @Produce json
// @Param request body dto.AssignTaskResourceRequest true "任务资源分配请求"
// @Success 200 {object} responses.Response
// @Router /api/v1/tasks/resources [post]
func (h *TaskHandler) AssignResource(c *gin.Context) {
	var req dto.AssignTaskResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.taskService.AssignResource(&req); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, nil)
}

// RemoveResource 移除任务资源分配
// @Summary 移除任务资源分配
// @Tags Task
// @Accept json
// @Produce json
// @Param id path int64 true "任务ID"
// @Param resource_id path int64 true "资源ID"
// @Success 200 {object} responses.Response
// @Router /api/v1/tasks/{id}/resources/{resource_id} [delete]
func (h *TaskHandler) RemoveResource(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的任务ID", err.Error())
		return
	}
	resourceID, err := strconv.ParseInt(c.Param("resource_id"), 10, 64)
	if err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "无效的资源ID", err.Error())
		return
	}

	if err := h.taskService.RemoveResource(taskID, resourceID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, nil)
}
