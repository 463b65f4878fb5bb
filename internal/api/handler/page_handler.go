package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pm-dashboard/internal/pkg/config"
)

// PageHandler 服务端渲染页面
// 页面只输出壳与初始数据引用, 数据由前端通过API与websocket拉取
type PageHandler struct {
	serverCfg *config.ServerConfig
}

func NewPageHandler(serverCfg *config.ServerConfig) *PageHandler {
	return &PageHandler{serverCfg: serverCfg}
}

// render 注入各页面共享的上下文
func (h *PageHandler) render(c *gin.Context, template, title, active string) {
	c.HTML(http.StatusOK, template, gin.H{
		"title":     title,
		"active":    active,
		"demo_mode": h.serverCfg.DemoMode,
	})
}

func (h *PageHandler) Home(c *gin.Context) {
	h.render(c, "home.html", "项目管理平台", "home")
}

func (h *PageHandler) Dashboard(c *gin.Context) {
	h.render(c, "dashboard.html", "数据看板", "dashboard")
}

func (h *PageHandler) Projects(c *gin.Context) {
	h.render(c, "projects.html", "项目管理", "projects")
}

func (h *PageHandler) Backlog(c *gin.Context) {
	h.render(c, "backlog.html", "待办管理", "backlog")
}

func (h *PageHandler) Resources(c *gin.Context) {
	h.render(c, "resources.html", "资源管理", "resources")
}

func (h *PageHandler) Risk(c *gin.Context) {
	h.render(c, "risk.html", "风险管理", "risk")
}

func (h *PageHandler) WorkPlan(c *gin.Context) {
	h.render(c, "work-plan.html", "工作计划", "work-plan")
}

func (h *PageHandler) Admin(c *gin.Context) {
	h.render(c, "admin.html", "系统管理", "admin")
}
