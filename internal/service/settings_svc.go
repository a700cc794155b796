package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"guitarshop_dev_v1_202609/internal/api/dto"
	"guitarshop_dev_v1_202609/internal/config"
	"guitarshop_dev_v1_202609/internal/model"
	"guitarshop_dev_v1_202609/internal/store"
	"guitarshop_dev_v1_202609/pkg/utils"
)

// ==================== 设置服务 ====================

// SettingsService 设置读写编排
// 协调器校验补丁 -> 回退解析器持久化 -> 读取时套环境覆盖
type SettingsService struct {
	resolver *store.Resolver
	cfg      *config.Config
	log      *zap.SugaredLogger
}

// NewSettingsService 创建设置服务
func NewSettingsService(resolver *store.Resolver, cfg *config.Config, log *zap.SugaredLogger) *SettingsService {
	return &SettingsService{resolver: resolver, cfg: cfg, log: log}
}

// Get 读取设置
// 返回：套过覆盖的设置、实际命中的后端、覆盖是否生效
func (s *SettingsService) Get(ctx context.Context) (model.Settings, store.Source, bool) {
	current, source := s.resolver.Read(ctx)
	merged := s.MergeOverrides(current)
	return merged, source, s.cfg.OverridesEnabled
}

// Patch 应用部分更新并持久化
// 返回落点后端；校验失败时存量值保持不变
func (s *SettingsService) Patch(ctx context.Context, patch dto.SettingsPatch) (model.Settings, store.Source, error) {
	// 覆盖只作用于读路径，这里要拿裸值
	current, _ := s.resolver.Read(ctx)

	next, err := ApplyPatch(current, patch)
	if err != nil {
		return model.Settings{}, "", err
	}

	persistedTo, err := s.resolver.Write(ctx, next)
	if err != nil {
		return model.Settings{}, "", err
	}
	return next, persistedTo, nil
}

// OverridesActive 覆盖总开关是否打开
// 写响应也要回显这个标记，不然运维看到刚存的值被覆盖层压住会一头雾水
func (s *SettingsService) OverridesActive() bool {
	return s.cfg.OverridesEnabled
}

// Validate 只校验不落库（防抖路径在入队前挡掉坏补丁）
func (s *SettingsService) Validate(ctx context.Context, patch dto.SettingsPatch) error {
	current, _ := s.resolver.Read(ctx)
	_, err := ApplyPatch(current, patch)
	return err
}

// ==================== 设置协调器 ====================

// ApplyPatch 校验并合并部分更新，纯内存操作
// featured: 长度上限 3，逐项清洗；featuredMain: 必须是对象，整体替换；
// heroImage: 清洗后直接替换；缺省字段保持原值
func ApplyPatch(current model.Settings, patch dto.SettingsPatch) (model.Settings, error) {
	next := current.Clone()
	next.Normalize()

	if patch.Featured != nil {
		featured := *patch.Featured
		if len(featured) > model.MaxFeatured {
			return model.Settings{}, NewValidationError("featured", "精选商品最多 3 个")
		}
		sanitized := make([]string, 0, len(featured))
		seen := make(map[string]struct{}, len(featured))
		for _, v := range featured {
			id := utils.SanitizeString(v)
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			sanitized = append(sanitized, id)
		}
		next.Featured = sanitized
	}

	if len(patch.FeaturedMain) > 0 {
		m, err := parseFeaturedMain(patch.FeaturedMain)
		if err != nil {
			return model.Settings{}, err
		}
		// 整体替换而非合并：管理端每次都发完整映射
		next.FeaturedMain = m
	}

	if patch.HeroImage != nil {
		next.HeroImage = utils.SanitizeString(*patch.HeroImage)
	}

	return next, nil
}

// parseFeaturedMain featuredMain 必须是普通对象，数组一律拒绝
func parseFeaturedMain(raw json.RawMessage) (map[string]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		return nil, NewValidationError("featuredMain", "必须是对象而不是数组")
	}

	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, NewValidationError("featuredMain", "必须是 商品ID -> 图片地址 的对象")
	}

	out := make(map[string]string, len(m))
	for k, v := range m {
		key := utils.SanitizeString(k)
		val := utils.SanitizeString(v)
		if key == "" {
			continue
		}
		out[key] = val
	}
	return out, nil
}

// ==================== 环境覆盖合并 ====================

// MergeOverrides 读取时叠加部署级环境覆盖，纯函数，不落库
// 总开关关闭时原样返回；hero 与 featured 整体替换，featuredMain 逐键合并
func (s *SettingsService) MergeOverrides(in model.Settings) model.Settings {
	if !s.cfg.OverridesEnabled {
		return in
	}

	out := in.Clone()
	out.Normalize()

	if v := s.cfg.HeroImageOverride; v != "" {
		out.HeroImage = v
	}

	if v := s.cfg.FeaturedOrderOverride; v != "" {
		parts := strings.Split(v, ",")
		featured := make([]string, 0, len(parts))
		for _, p := range parts {
			if id := strings.TrimSpace(p); id != "" {
				featured = append(featured, id)
			}
		}
		out.Featured = featured
	}

	if v := s.cfg.FeaturedMainOverride; v != "" {
		var m map[string]string
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			// 坏 JSON 静默忽略，只记日志
			s.log.Warnw("featuredMain 覆盖不是合法 JSON，忽略", "err", err)
		} else {
			for k, val := range m {
				out.FeaturedMain[k] = val
			}
		}
	}

	return out
}
