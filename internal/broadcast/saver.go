package broadcast

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"guitarshop_dev_v1_202609/internal/api/dto"
	"guitarshop_dev_v1_202609/internal/model"
	"guitarshop_dev_v1_202609/internal/store"
)

// ==================== 防抖保存器 ====================

// SaverState 保存器状态机
type SaverState int

const (
	StateIdle SaverState = iota
	StatePendingSave
	StateSaving
)

// EventSettingsUpdated 设置落库成功后的广播事件名
const EventSettingsUpdated = "settings-updated"

// DefaultDebounceWindow 默认防抖窗口
const DefaultDebounceWindow = 800 * time.Millisecond

// SettingsWriter 保存器依赖的持久化入口
type SettingsWriter interface {
	Patch(ctx context.Context, patch dto.SettingsPatch) (model.Settings, store.Source, error)
}

// DebouncedSaver 把密集的设置修改合并为一次持久化写
// 窗口内再次修改只重置计时器，最终只发送累积后的完整补丁（last-write-wins）。
// 落库成功后通过 Hub 通知其他会话
type DebouncedSaver struct {
	mu      sync.Mutex
	pending *dto.SettingsPatch
	timer   *time.Timer
	state   SaverState
	gen     uint64 // 句柄代号，旧句柄的 Cancel 不会误杀新调度

	window time.Duration
	writer SettingsWriter
	hub    *Hub
	log    *zap.SugaredLogger
}

// NewDebouncedSaver 创建防抖保存器
func NewDebouncedSaver(writer SettingsWriter, hub *Hub, window time.Duration, log *zap.SugaredLogger) *DebouncedSaver {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &DebouncedSaver{
		window: window,
		writer: writer,
		hub:    hub,
		log:    log,
	}
}

// SaveHandle 一次调度的取消句柄
// 取消是尽力而为：计时器已触发、写已在途时无法撤回
type SaveHandle struct {
	saver *DebouncedSaver
	gen   uint64
}

// Cancel 尝试取消未触发的写，返回是否真的取消了
func (h *SaveHandle) Cancel() bool {
	return h.saver.cancel(h.gen)
}

// Schedule 累积补丁并重置防抖计时器
func (s *DebouncedSaver) Schedule(patch dto.SettingsPatch) *SaveHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		p := dto.SettingsPatch{}
		s.pending = &p
	}
	s.pending.MergeFrom(patch)

	if s.timer != nil {
		s.timer.Stop()
	}
	s.state = StatePendingSave
	s.gen++
	gen := s.gen

	s.timer = time.AfterFunc(s.window, func() {
		s.flush(gen)
	})

	return &SaveHandle{saver: s, gen: gen}
}

// Flush 立即执行挂起的写（进程退出前调用，保证 fire-and-forget 语义）
func (s *DebouncedSaver) Flush() {
	s.mu.Lock()
	gen := s.gen
	hasPending := s.pending != nil
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	if hasPending {
		s.flush(gen)
	}
}

// State 当前状态（测试用）
func (s *DebouncedSaver) State() SaverState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *DebouncedSaver) cancel(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen || s.state != StatePendingSave {
		return false
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = nil
	s.state = StateIdle
	return true
}

func (s *DebouncedSaver) flush(gen uint64) {
	s.mu.Lock()
	if s.gen != gen || s.pending == nil {
		s.mu.Unlock()
		return
	}
	patch := *s.pending
	s.pending = nil
	s.state = StateSaving
	s.mu.Unlock()

	// 请求生命周期之外的写，不挂在任何 HTTP context 上
	settings, source, err := s.writer.Patch(context.Background(), patch)

	s.mu.Lock()
	// 写在途时可能又来了新调度，只有没人接棒才回 Idle
	if s.gen == gen {
		s.state = StateIdle
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Errorw("防抖写入失败", "err", err)
		return
	}

	s.hub.Publish(EventSettingsUpdated, map[string]interface{}{
		"settings":    settings,
		"persistedTo": string(source),
	})
}
