package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "pm-dashboard/docs"
	"pm-dashboard/internal/api/handler"
	"pm-dashboard/internal/api/middleware"
	"pm-dashboard/internal/pkg/aiclient"
	"pm-dashboard/internal/pkg/cache"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/repository"
	"pm-dashboard/internal/service"
	"pm-dashboard/internal/ws"
)

// Setup 设置路由
func Setup(cfg *config.Config, hub *ws.Hub, cacheClient *cache.Client, aiClient aiclient.Client, logger *zap.Logger) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(cfg.Server.RateLimit))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 获取数据库连接
	db := cfg.DB.(*gorm.DB)

	// 初始化Repository
	lookupRepo := repository.NewLookupRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	featureRepo := repository.NewFeatureRepository(db)
	backlogRepo := repository.NewBacklogRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	riskRepo := repository.NewRiskRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	// 初始化Service, 实体写操作通过invalidator失效看板缓存
	invalidator := service.NewDashboardInvalidator(cacheClient)
	lookupService := service.NewLookupService(lookupRepo)
	projectService := service.NewProjectService(projectRepo, lookupRepo, resourceRepo, hub, invalidator, &cfg.Server)
	taskService := service.NewTaskService(taskRepo, projectRepo, lookupRepo, resourceRepo, hub, invalidator, &cfg.Server)
	featureService := service.NewFeatureService(featureRepo, projectRepo, lookupRepo, hub, invalidator, &cfg.Server)
	backlogService := service.NewBacklogService(backlogRepo, projectRepo, featureRepo, lookupRepo, hub, invalidator, &cfg.Server)
	resourceService := service.NewResourceService(resourceRepo, projectRepo, hub, invalidator)
	riskService := service.NewRiskService(riskRepo, projectRepo, lookupRepo, hub, invalidator, &cfg.Server)
	dashboardService := service.NewDashboardService(db, cacheClient, &cfg.Server)
	aiService := service.NewAIService(aiClient, projectRepo, taskRepo, riskRepo)
	ragService := service.NewRAGService(documentRepo, projectRepo, aiClient, &cfg.AI)

	// 初始化Handler
	lookupHandler := handler.NewLookupHandler(lookupService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	featureHandler := handler.NewFeatureHandler(featureService)
	backlogHandler := handler.NewBacklogHandler(backlogService)
	resourceHandler := handler.NewResourceHandler(resourceService)
	riskHandler := handler.NewRiskHandler(riskService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	aiHandler := handler.NewAIHandler(aiService, ragService)
	wsHandler := handler.NewWSHandler(hub)
	pageHandler := handler.NewPageHandler(&cfg.Server)

	// 服务端渲染页面
	r.Static("/static", "web/static")
	r.LoadHTMLGlob("web/templates/*.html")
	r.GET("/", pageHandler.Home)
	r.GET("/dashboard", pageHandler.Dashboard)
	r.GET("/projects", pageHandler.Projects)
	r.GET("/backlog", pageHandler.Backlog)
	r.GET("/resources", pageHandler.Resources)
	r.GET("/risk", pageHandler.Risk)
	r.GET("/work-plan", pageHandler.WorkPlan)
	r.GET("/admin", pageHandler.Admin)

	// WebSocket
	r.GET("/ws/:room", wsHandler.Serve)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 字典管理
		lookupGroup := v1.Group("/lookups")
		{
			lookupGroup.GET("/:kind", lookupHandler.List)    // 字典项列表
			lookupGroup.POST("/:kind", lookupHandler.Create) // 创建字典项
			lookupGroup.PUT("/:kind", lookupHandler.Update)  // 更新字典项
		}

		// 项目管理
		groupProject := v1.Group("/project")
		groupProjects := v1.Group("/projects")
		{
			groupProjects.POST("", projectHandler.Create)   // 创建项目
			groupProjects.GET("", projectHandler.List)      // 列表查询（无分页参数返回全部，有分页参数返回分页数据）
			groupProject.GET("", projectHandler.GetByID)    // 获取详情（支持 with_relations 参数）
			groupProjects.PUT("", projectHandler.Update)    // 更新项目
			groupProjects.DELETE("/:id", projectHandler.Delete) // 删除项目（存在子实体时拒绝）

			// 项目资源分配（作为项目的附属资源）
			groupProjects.POST("/resources", projectHandler.AllocateResource)
			groupProjects.DELETE("/:id/resources/:resource_id", projectHandler.RemoveResourceAllocation)
		}

		// 任务管理
		groupTask := v1.Group("/task")
		groupTasks := v1.Group("/tasks")
		{
			groupTasks.POST("", taskHandler.Create)           // 创建任务
			groupTasks.GET("", taskHandler.List)              // 列表查询
			groupTask.GET("", taskHandler.GetByID)            // 获取详情
			groupTasks.GET("/gantt", taskHandler.ListByProject) // 项目全部任务（甘特图）
			groupTasks.PUT("", taskHandler.Update)            // 更新任务
			groupTasks.DELETE("/:id", taskHandler.Delete)     // 删除任务

			// 任务资源分配
			groupTasks.POST("/resources", taskHandler.AssignResource)
			groupTasks.DELETE("/:id/resources/:resource_id", taskHandler.RemoveResource)
		}

		// 特性管理
		groupFeature := v1.Group("/feature")
		groupFeatures := v1.Group("/features")
		{
			groupFeatures.POST("", featureHandler.Create)       // 创建特性
			groupFeatures.GET("", featureHandler.List)          // 列表查询
			groupFeature.GET("", featureHandler.GetByID)        // 获取详情
			groupFeatures.PUT("", featureHandler.Update)        // 更新特性
			groupFeatures.DELETE("/:id", featureHandler.Delete) // 删除特性（待办解除关联）
		}

		// 待办管理
		groupBacklog := v1.Group("/backlog")
		groupBacklogs := v1.Group("/backlogs")
		{
			groupBacklogs.POST("", backlogHandler.Create)       // 创建待办
			groupBacklogs.GET("", backlogHandler.List)          // 列表查询
			groupBacklog.GET("", backlogHandler.GetByID)        // 获取详情
			groupBacklogs.PUT("", backlogHandler.Update)        // 更新待办
			groupBacklogs.DELETE("/:id", backlogHandler.Delete) // 删除待办
		}

		// 资源管理
		groupResource := v1.Group("/resource")
		groupResources := v1.Group("/resources")
		{
			groupResources.POST("", resourceHandler.Create)       // 创建资源
			groupResources.GET("", resourceHandler.List)          // 列表查询
			groupResource.GET("", resourceHandler.GetByID)        // 获取详情（含项目投入）
			groupResources.PUT("", resourceHandler.Update)        // 更新资源
			groupResources.DELETE("/:id", resourceHandler.Delete) // 删除资源（连带清理分配）
		}

		// 风险管理
		groupRisk := v1.Group("/risk")
		groupRisks := v1.Group("/risks")
		{
			groupRisks.POST("", riskHandler.Create)       // 创建风险
			groupRisks.GET("", riskHandler.List)          // 列表查询（支持severity过滤）
			groupRisk.GET("", riskHandler.GetByID)        // 获取详情
			groupRisks.PUT("", riskHandler.Update)        // 更新风险
			groupRisks.DELETE("/:id", riskHandler.Delete) // 删除风险
		}

		// 看板聚合
		dashboardGroup := v1.Group("/dashboard")
		{
			dashboardGroup.GET("/summary", dashboardHandler.Summary)                          // 总览计数
			dashboardGroup.GET("/tasks-by-status", dashboardHandler.TasksByStatus)            // 任务状态分布
			dashboardGroup.GET("/risks-by-severity", dashboardHandler.RisksBySeverity)        // 风险等级分布
			dashboardGroup.GET("/feature-matrix", dashboardHandler.FeatureMatrix)             // 特性矩阵
			dashboardGroup.GET("/resource-utilization", dashboardHandler.ResourceUtilization) // 资源利用率
		}

		// AI分析与RAG
		aiGroup := v1.Group("/ai")
		{
			aiGroup.GET("/analysis/health", aiHandler.AnalyzeHealth)       // 健康度分析
			aiGroup.GET("/analysis/financial", aiHandler.AnalyzeFinancial) // 财务分析
			aiGroup.GET("/analysis/resource", aiHandler.AnalyzeResource)   // 资源分析
			aiGroup.POST("/rag/documents", aiHandler.IngestDocument)       // 文档入库
			aiGroup.DELETE("/rag/documents/:id", aiHandler.DeleteDocument) // 删除文档
			aiGroup.POST("/rag/query", aiHandler.QueryRAG)                 // 检索问答
		}

		// WebSocket房间统计
		v1.GET("/ws/rooms", wsHandler.Rooms)
	}

	return r
}
