package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"guitarshop_dev_v1_202609/internal/service"
)

// ==================== ProjectionRebuildTask 投影重建任务 ====================

// ProjectionRebuildTask 每晚以数据库为准全量重写投影文件
// 兜底清理双写过程中可能漂移的条目（数据库侧成功而投影侧失败的情况）
type ProjectionRebuildTask struct {
	productService *service.ProductService
	cron           *cron.Cron
	log            *zap.SugaredLogger

	spec string
}

// NewProjectionRebuildTask 创建投影重建任务
func NewProjectionRebuildTask(productService *service.ProductService, log *zap.SugaredLogger) *ProjectionRebuildTask {
	return &ProjectionRebuildTask{
		productService: productService,
		cron:           cron.New(cron.WithSeconds()),
		log:            log,
		spec:           "0 30 3 * * *", // 每天 03:30
	}
}

// SetSchedule 覆盖默认调度表达式（测试用）
func (t *ProjectionRebuildTask) SetSchedule(spec string) {
	t.spec = spec
}

// Start 启动定时任务
func (t *ProjectionRebuildTask) Start() error {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		t.Execute(ctx)
	})
	if err != nil {
		return err
	}

	t.cron.Start()
	t.log.Infow("投影重建任务已启动", "spec", t.spec)
	return nil
}

// Stop 停止定时任务
func (t *ProjectionRebuildTask) Stop() {
	t.cron.Stop()
}

// Execute 执行一次全量重建
func (t *ProjectionRebuildTask) Execute(ctx context.Context) {
	start := time.Now()
	if err := t.productService.RebuildProjection(ctx); err != nil {
		t.log.Errorw("投影重建失败", "error", err)
		return
	}
	t.log.Infow("投影重建完成", "elapsed", time.Since(start))
}
