package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"guitarshop_dev_v1_202609/internal/broadcast"
	"guitarshop_dev_v1_202609/internal/config"
	"guitarshop_dev_v1_202609/internal/controller"
	"guitarshop_dev_v1_202609/internal/middleware"
	"guitarshop_dev_v1_202609/internal/model"
	"guitarshop_dev_v1_202609/internal/repository"
	"guitarshop_dev_v1_202609/internal/router"
	"guitarshop_dev_v1_202609/internal/service"
	"guitarshop_dev_v1_202609/internal/storage"
	"guitarshop_dev_v1_202609/internal/store"
	"guitarshop_dev_v1_202609/internal/task"
	"guitarshop_dev_v1_202609/pkg/database"
	"guitarshop_dev_v1_202609/pkg/logger"
)

func main() {
	// 1. 日志 & 配置
	zlog := logger.Init()
	defer zlog.Sync()
	cfg := config.Load()

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db, zlog)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Services.Admin,
		deps.Limiter,
		cfg.AllowedOrigin,
		cfg.JWTSecret,
		deps.Controllers.Settings,
		deps.Controllers.Product,
		deps.Controllers.Admin,
		deps.Controllers.Upload,
	)

	// 6. 启动服务
	startServer(r, cfg, deps)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
	Hub         *broadcast.Hub
	Saver       *broadcast.DebouncedSaver
	Limiter     *middleware.FixedWindowLimiter
	Tasks       []*task.ProjectionRebuildTask
	Log         *zap.SugaredLogger
}

// Repositories 仓库集合
type Repositories struct {
	Product      repository.ProductRepository
	Admin        repository.AdminRepository
	AdminRequest repository.AdminRequestRepository
}

// Services 服务集合
type Services struct {
	Settings *service.SettingsService
	Product  *service.ProductService
	Admin    *service.AdminService
}

// Controllers 控制器集合
type Controllers struct {
	Settings *controller.SettingsController
	Product  *controller.ProductController
	Admin    *controller.AdminController
	Upload   *controller.UploadController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := database.InitDB(cfg.DatabaseDSN,
		&model.Product{},
		&model.Admin{},
		&model.AdminRequest{},
	)
	if err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, zlog *zap.SugaredLogger) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Product:      repository.NewProductRepository(db),
		Admin:        repository.NewAdminRepository(db),
		AdminRequest: repository.NewAdminRequestRepository(db),
	}

	// -------- 存储 --------
	provider := initStorageProvider(cfg, zlog)

	// -------- 设置后端：本地文件为主，对象存储为备 --------
	var secondary store.SettingsBackend
	if provider != nil {
		secondary = store.NewBlobBackend(provider, cfg.Storage.SettingsKey)
	}
	resolver := store.NewResolver(store.NewFileBackend(cfg.DataDir), secondary, zlog)
	projection := store.NewProjectionStore(cfg.DataDir)

	// -------- 业务服务 --------
	services := &Services{
		Settings: service.NewSettingsService(resolver, cfg, zlog),
		Product:  service.NewProductService(repos.Product, projection, zlog),
		Admin:    service.NewAdminService(repos.Admin, repos.AdminRequest, cfg.OwnerEmail, zlog),
	}

	// -------- 广播 & 防抖写入 --------
	hub := broadcast.NewHub()
	saver := broadcast.NewDebouncedSaver(services.Settings, hub, broadcast.DefaultDebounceWindow, zlog)

	// -------- Controller 层 --------
	controllers := &Controllers{
		Settings: controller.NewSettingsController(services.Settings, saver, hub),
		Product:  controller.NewProductController(services.Product),
		Admin:    controller.NewAdminController(services.Admin),
		Upload:   controller.NewUploadController(provider),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Hub:         hub,
		Saver:       saver,
		Limiter:     middleware.NewFixedWindowLimiter(cfg.RateLimitMax, cfg.RateLimitWindow),
		Log:         zlog,
	}
}

// initStorageProvider 初始化对象存储
func initStorageProvider(cfg *config.Config, zlog *zap.SugaredLogger) storage.Provider {
	provider, err := storage.NewProvider(&cfg.Storage)
	if err != nil {
		zlog.Warnw("存储初始化失败，设置将只落本地文件", "error", err)
		return nil
	}
	return provider
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	rebuild := task.NewProjectionRebuildTask(deps.Services.Product, deps.Log)
	if err := rebuild.Start(); err != nil {
		deps.Log.Errorw("投影重建任务启动失败", "error", err)
		return
	}
	deps.Tasks = append(deps.Tasks, rebuild)
}

// ==================== 服务启动 ====================

// startServer 启动服务并等待退出信号
func startServer(r *gin.Engine, cfg *config.Config, deps *Dependencies) {
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		deps.Log.Infow("服务启动", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	deps.Log.Info("正在关闭服务...")

	// 排队中的设置补丁先落库再退出
	deps.Saver.Flush()
	for _, t := range deps.Tasks {
		t.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	deps.Log.Info("服务已退出")
}
