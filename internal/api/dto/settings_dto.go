package dto

import "encoding/json"

// ==================== 请求 DTO ====================

// SettingsPatch 设置的部分更新
// 字段缺省（nil）表示不触碰，featuredMain 保留原始 JSON 由协调器校验形状
type SettingsPatch struct {
	Featured     *[]string       `json:"featured,omitempty"`
	FeaturedMain json.RawMessage `json:"featuredMain,omitempty"`
	HeroImage    *string         `json:"heroImage,omitempty"`
}

// IsEmpty 没有任何字段的补丁
func (p SettingsPatch) IsEmpty() bool {
	return p.Featured == nil && len(p.FeaturedMain) == 0 && p.HeroImage == nil
}

// MergeFrom 后到的补丁覆盖先到的同名字段（防抖累积用）
func (p *SettingsPatch) MergeFrom(next SettingsPatch) {
	if next.Featured != nil {
		p.Featured = next.Featured
	}
	if len(next.FeaturedMain) > 0 {
		p.FeaturedMain = next.FeaturedMain
	}
	if next.HeroImage != nil {
		p.HeroImage = next.HeroImage
	}
}

// ==================== 响应 DTO ====================

// SettingsResp 设置读写响应
// PersistedTo / Source 与 EnvOverridesActive 是给操作者的诊断元数据
type SettingsResp struct {
	Code               int         `json:"code"`
	Message            string      `json:"message"`
	Data               interface{} `json:"data"`
	Source             string      `json:"source,omitempty"`
	PersistedTo        string      `json:"persistedTo,omitempty"`
	EnvOverridesActive bool        `json:"envOverridesActive"`
}
