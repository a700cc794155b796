package controller

import (
	"io"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"guitarshop_dev_v1_202609/internal/api/dto"
	"guitarshop_dev_v1_202609/internal/broadcast"
	"guitarshop_dev_v1_202609/internal/service"
)

type SettingsController struct {
	settingsService *service.SettingsService
	saver           *broadcast.DebouncedSaver
	hub             *broadcast.Hub
}

func NewSettingsController(settingsService *service.SettingsService, saver *broadcast.DebouncedSaver, hub *broadcast.Hub) *SettingsController {
	return &SettingsController{settingsService: settingsService, saver: saver, hub: hub}
}

// ==================== 读取接口 ====================

// GetSettings 获取店铺设置
// @Summary 获取店铺设置（含环境变量覆盖层）
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.SettingsResp
// @Router /api/settings [get]
func (ctrl *SettingsController) GetSettings(c *gin.Context) {
	settings, source, overridesActive := ctrl.settingsService.Get(c.Request.Context())

	c.JSON(200, dto.SettingsResp{
		Code:               0,
		Message:            "success",
		Data:               settings,
		Source:             string(source),
		EnvOverridesActive: overridesActive,
	})
}

// ==================== 写入接口 ====================

// PatchSettings 部分更新店铺设置
// @Summary 部分更新店铺设置
// @Tags Settings
// @Accept json
// @Produce json
// @Param debounced query bool false "排队合并写入而非立即落库"
// @Param body body dto.SettingsPatch true "设置补丁"
// @Success 200 {object} dto.SettingsResp
// @Success 202 {object} map[string]interface{}
// @Router /api/settings [patch]
func (ctrl *SettingsController) PatchSettings(c *gin.Context) {
	var patch dto.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}
	if patch.IsEmpty() {
		c.JSON(400, gin.H{"code": 400, "message": "补丁为空"})
		return
	}

	ctx := c.Request.Context()

	// 防抖路径：先校验再排队，窗口内的补丁会被合并成一次写入
	if c.Query("debounced") == "true" {
		if err := ctrl.settingsService.Validate(ctx, patch); err != nil {
			c.JSON(400, gin.H{"code": 400, "message": err.Error()})
			return
		}
		ctrl.saver.Schedule(patch)
		c.JSON(202, gin.H{"code": 0, "message": "已排队"})
		return
	}

	settings, source, err := ctrl.settingsService.Patch(ctx, patch)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(400, gin.H{"code": 400, "message": err.Error()})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "保存失败: " + err.Error()})
		return
	}

	ctrl.hub.Publish(broadcast.EventSettingsUpdated, gin.H{
		"settings":    settings,
		"persistedTo": string(source),
	})

	c.JSON(200, dto.SettingsResp{
		Code:               0,
		Message:            "success",
		Data:               settings,
		PersistedTo:        string(source),
		EnvOverridesActive: ctrl.settingsService.OverridesActive(),
	})
}

// ==================== 事件流接口 ====================

// StreamEvents 设置变更事件流 (SSE)
// @Summary 订阅设置变更广播
// @Tags Settings
// @Produce text/event-stream
// @Router /api/settings/events [get]
func (ctrl *SettingsController) StreamEvents(c *gin.Context) {
	ch, cancel := ctrl.hub.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Content-Type", sse.ContentType)
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			if err := sse.Encode(w, ev); err != nil {
				return false
			}
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
