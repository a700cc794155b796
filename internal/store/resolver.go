package store

import (
	"context"

	"go.uber.org/zap"

	"guitarshop_dev_v1_202609/internal/model"
)

// ==================== 回退解析器 ====================

// Source 实际命中的后端标记
// 管理端会把这个值展示给操作者，写落到意料之外的后端时能被看见
type Source string

const (
	SourcePrimary   Source = "primary"   // 本地文件
	SourceSecondary Source = "secondary" // 对象存储
	SourceDefault   Source = "default"   // 两个后端都不可用，返回兜底值
)

// Resolver 设置读写的回退解析器
// 读：主 -> 次 -> 兜底默认值，永不向调用方抛错
// 写：主 -> 次，都失败时返回主后端的原始错误（不吞根因）
// 不做任何缓存，每次调用都重新尝试
type Resolver struct {
	primary   SettingsBackend
	secondary SettingsBackend
	log       *zap.SugaredLogger
}

// NewResolver 创建回退解析器
// secondary 可以为 nil（未配置对象存储时退化为单后端）
func NewResolver(primary, secondary SettingsBackend, log *zap.SugaredLogger) *Resolver {
	return &Resolver{primary: primary, secondary: secondary, log: log}
}

// Read 读取设置并报告来源
func (r *Resolver) Read(ctx context.Context) (model.Settings, Source) {
	s, err := r.primary.Load(ctx)
	if err == nil {
		return s, SourcePrimary
	}
	r.log.Debugw("主后端读取失败，回退到对象存储", "err", err)

	if r.secondary != nil {
		s, err = r.secondary.Load(ctx)
		if err == nil {
			return s, SourceSecondary
		}
		r.log.Warnw("次后端读取也失败，返回默认设置", "err", err)
	}

	return model.DefaultSettings(), SourceDefault
}

// Write 写入设置并报告落点
func (r *Resolver) Write(ctx context.Context, s model.Settings) (Source, error) {
	primaryErr := r.primary.Save(ctx, s)
	if primaryErr == nil {
		return SourcePrimary, nil
	}
	r.log.Warnw("主后端写入失败，尝试对象存储", "err", primaryErr)

	if r.secondary != nil {
		if err := r.secondary.Save(ctx, s); err == nil {
			return SourceSecondary, nil
		} else {
			r.log.Errorw("次后端写入也失败", "err", err)
		}
	}

	// 调用方要看到根因，次后端的失败只记日志
	return "", primaryErr
}
