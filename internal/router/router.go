package router

import (
	"github.com/gin-gonic/gin"

	"guitarshop_dev_v1_202609/internal/controller"
	"guitarshop_dev_v1_202609/internal/middleware"
	"guitarshop_dev_v1_202609/internal/service"
)

// InitRoutes 注册所有路由
// 中间件顺序：来源校验 -> 写限流 -> 鉴权 -> JSON 校验，角色门禁挂在分组上
func InitRoutes(r *gin.Engine,
	adminSvc *service.AdminService,
	limiter *middleware.FixedWindowLimiter,
	allowedOrigin string,
	jwtSecret string,
	settingsCtrl *controller.SettingsController,
	productCtrl *controller.ProductController,
	adminCtrl *controller.AdminController,
	uploadCtrl *controller.UploadController) {

	r.Use(middleware.OriginGuard(allowedOrigin))
	r.Use(middleware.RateLimit(limiter))
	r.Use(middleware.Auth(adminSvc, jwtSecret))
	r.Use(middleware.JSONGuard())

	api := r.Group("/api")
	{
		// settings 店铺设置
		settings := api.Group("/settings")
		{
			// GET /api/settings 店面公开读
			settings.GET("", settingsCtrl.GetSettings)
			settings.PATCH("", middleware.RequireLevel(service.AccessAdminOrOwner), settingsCtrl.PatchSettings)
			// GET /api/settings/events 变更广播 (SSE)
			settings.GET("/events", middleware.RequireLevel(service.AccessAdminOrOwner), settingsCtrl.StreamEvents)
		}

		// products 商品组
		products := api.Group("/products")
		{
			products.GET("", productCtrl.GetProducts)
			products.GET("/:id", productCtrl.GetProduct)

			products.POST("", middleware.RequireLevel(service.AccessAdminOrOwner), productCtrl.CreateProduct)
			products.PATCH("/:id", middleware.RequireLevel(service.AccessAdminOrOwner), productCtrl.UpdateProduct)
			products.DELETE("/:id", middleware.RequireLevel(service.AccessAdminOrOwner), productCtrl.DeleteProduct)

			// POST /api/products/projection/rebuild 全量重建投影
			products.POST("/projection/rebuild", middleware.RequireLevel(service.AccessOwnerOnly), productCtrl.RebuildProjection)
		}

		// uploads 图片上传
		uploads := api.Group("/uploads")
		{
			uploads.POST("", middleware.RequireLevel(service.AccessAdminOrOwner), uploadCtrl.Upload)
			uploads.DELETE("", middleware.RequireLevel(service.AccessOwnerOnly), uploadCtrl.Delete)
		}

		// admin 权限申请与审批
		requests := api.Group("/admin/requests")
		{
			// 申请与状态查询对匿名开放
			requests.POST("", adminCtrl.CreateRequest)
			requests.GET("/status", adminCtrl.GetRequestStatus)

			requests.GET("", middleware.RequireLevel(service.AccessOwnerOnly), adminCtrl.ListRequests)
			requests.POST("/:id/approve", middleware.RequireLevel(service.AccessOwnerOnly), adminCtrl.ApproveRequest)
			requests.POST("/:id/reject", middleware.RequireLevel(service.AccessOwnerOnly), adminCtrl.RejectRequest)
		}

		// admins 管理员名单
		admins := api.Group("/admins")
		{
			admins.GET("", middleware.RequireLevel(service.AccessOwnerOnly), adminCtrl.ListAdmins)
			admins.DELETE("/:id", middleware.RequireLevel(service.AccessOwnerOnly), adminCtrl.RevokeAdmin)
		}
	}
}
