package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pm-dashboard/internal/api/router"
	"pm-dashboard/internal/pkg/aiclient"
	"pm-dashboard/internal/pkg/cache"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/pkg/database"
	"pm-dashboard/internal/pkg/logger"
	"pm-dashboard/internal/scheduler"
	"pm-dashboard/internal/seed"
	"pm-dashboard/internal/service"
	"pm-dashboard/internal/ws"

	_ "pm-dashboard/docs" // Swagger docs
)

// @title PM Dashboard API
// @version 1.0
// @description 项目管理看板平台 API 文档
// @description 提供项目、任务、特性、待办、资源、风险管理与看板聚合、AI分析等功能

// @contact.name API Support
// @contact.email support@example.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

var (
	configFile = flag.String("config", "", "配置文件路径 (例如: -config=configs/config.yaml)")
	version    = flag.Bool("version", false, "显示版本信息")
)

const (
	appVersion = "1.0.0"
	appName    = "pm-dashboard-service"
)

func main() {
	// 解析命令行参数
	flag.Parse()

	// 显示版本信息
	if *version {
		fmt.Printf("%s version %s\n", appName, appVersion)
		os.Exit(0)
	}

	// init config logger
	var cfg *config.Config
	{
		// 优先级: 命令行参数 > 环境变量 > 默认路径
		configPath := getConfigPath()

		// 加载配置
		c, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("加载配置失败: %v\n", err)
			fmt.Println("\n使用方式:")
			fmt.Println("  1. 命令行参数指定:")
			fmt.Println("     ./pm-dashboard -config=configs/config.yaml")
			fmt.Println("  2. 环境变量指定:")
			fmt.Println("     export CONFIG_FILE=configs/config.yaml")
			fmt.Println("     ./pm-dashboard")
			fmt.Println("  3. 使用默认配置:")
			fmt.Println("     ./pm-dashboard  (将使用 configs/config.yaml)")
			os.Exit(1)
		}
		cfg = c

		// 初始化日志
		if err := logger.Init(&cfg.Log); err != nil {
			fmt.Printf("初始化日志失败: %v\n", err)
			os.Exit(1)
		}
		logger.Info(fmt.Sprintf("Load config file: %s of %s", configPath, getConfigSource()))

		defer func() {
			_ = logger.Close()
		}()
	}

	logger.Info(fmt.Sprintf("服务 %s 启动中...", appName), zap.String("version", appVersion))

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer func() {
		_ = database.Close()
	}()

	logger.Info(fmt.Sprintf("数据库连接成功 %s:%v", cfg.Database.Host, cfg.Database.Port), zap.String("database", cfg.Database.Database))

	// 自动迁移数据表
	if err := database.Migrate(); err != nil {
		logger.Fatal("数据表迁移失败", zap.Error(err))
	}

	// 注入数据库连接到配置
	cfg.DB = database.GetDB()

	// 导入字典种子数据
	if cfg.Seed.File != "" {
		if err := seed.Run(database.GetDB(), cfg.Seed.File, logger.Log); err != nil {
			logger.Warn("字典种子数据导入失败", zap.Error(err))
		}
	}

	// 初始化Redis(聚合缓存与离线消息队列)
	var cacheClient *cache.Client
	var queue *ws.Queue
	if cfg.Cache.Enabled {
		c, err := cache.New(&cfg.Cache)
		if err != nil {
			// Redis不可用时降级: 看板直查数据库, 离线消息直接丢弃
			logger.Warn("连接Redis失败, 缓存与离线队列已降级", zap.Error(err))
		} else {
			cacheClient = c
			queue = ws.NewQueue(cacheClient, cfg.Cache.GetQueueTTL())
			defer func() {
				_ = cacheClient.Close()
			}()
			logger.Info(fmt.Sprintf("Redis连接成功 %s", cfg.Cache.Addr()))
		}
	}

	// 初始化websocket Hub
	hub := ws.NewHub(queue, logger.Log)

	// 初始化模型服务客户端
	var aiClient aiclient.Client
	if cfg.AI.Enabled {
		aiClient = aiclient.New(&cfg.AI)
		logger.Info("模型服务客户端已启用", zap.String("base_url", cfg.AI.BaseURL))
	}

	// 初始化并启动定时任务调度器
	dashboardSvc := service.NewDashboardService(database.GetDB(), cacheClient, &cfg.Server)
	taskScheduler := scheduler.NewScheduler(dashboardSvc, queue, logger.Log)
	if err := taskScheduler.Start(); err != nil {
		logger.Warn("定时任务调度器启动失败", zap.Error(err))
	}

	// 设置路由
	r := router.Setup(cfg, hub, cacheClient, aiClient, logger.Log)

	// 创建HTTP服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// 启动服务器
	go func() {
		logger.Info(fmt.Sprintf("%s 服务启动成功", cfg.Server.Name),
			zap.String("address", addr),
			zap.String("mode", cfg.Server.Mode),
			zap.Bool("demo_mode", cfg.Server.DemoMode),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务正在关闭...")

	// 关闭定时任务调度器
	taskScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务已关闭")
}

// getConfigPath 获取配置文件路径
// 优先级: 命令行参数 > 环境变量 > 默认路径
func getConfigPath() string {
	// 1. 命令行参数
	if *configFile != "" {
		return *configFile
	}

	// 2. 环境变量
	if envConfig := os.Getenv("CONFIG_FILE"); envConfig != "" {
		return envConfig
	}

	// 3. 默认路径
	return "configs/config.yaml"
}

// getConfigSource 获取配置来源说明
func getConfigSource() string {
	if *configFile != "" {
		return "命令行参数"
	}
	if os.Getenv("CONFIG_FILE") != "" {
		return "环境变量"
	}
	return "默认配置"
}
