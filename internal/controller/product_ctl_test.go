package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"guitarshop_dev_v1_202609/internal/model"
	"guitarshop_dev_v1_202609/internal/repository"
	"guitarshop_dev_v1_202609/internal/service"
	"guitarshop_dev_v1_202609/internal/store"
)

// ==================== 测试辅助 ====================

func setupProductRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	projection := store.NewProjectionStore(t.TempDir())
	svc := service.NewProductService(repository.NewProductRepository(db), projection, zap.NewNop().Sugar())
	ctrl := NewProductController(svc)

	r := gin.New()
	api := r.Group("/api")
	products := api.Group("/products")
	{
		products.GET("", ctrl.GetProducts)
		products.GET("/:id", ctrl.GetProduct)
		products.POST("", ctrl.CreateProduct)
		products.PATCH("/:id", ctrl.UpdateProduct)
		products.DELETE("/:id", ctrl.DeleteProduct)
	}
	return r
}

type productResp struct {
	Code int            `json:"code"`
	Data *model.Product `json:"data"`
}

// ==================== CRUD ====================

func TestProductCtl_CreateAndList(t *testing.T) {
	r := setupProductRouter(t)

	w := doJSON(r, http.MethodPost, "/api/products",
		`{"title":"Fender Stratocaster","price":2500,"images":["http://img/strat.jpg"]}`)
	if w.Code != 201 {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var created productResp
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.Data == nil || created.Data.ID == "" {
		t.Fatalf("响应应带规范行, body = %s", w.Body.String())
	}

	// 店面列表走投影
	w = doJSON(r, http.MethodGet, "/api/products", "")
	var list struct {
		Data []store.ProjectionEntry `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Data) != 1 {
		t.Fatalf("投影列表应有 1 条, got %d", len(list.Data))
	}
	e := list.Data[0]
	if e.Slug != "fender-stratocaster" || e.Price != "U$S 2500" {
		t.Errorf("投影条目 = %+v", e)
	}
}

func TestProductCtl_CreateMissingTitle(t *testing.T) {
	r := setupProductRouter(t)

	w := doJSON(r, http.MethodPost, "/api/products", `{"price":100}`)
	if w.Code != 400 {
		t.Errorf("缺标题应 400, status = %d", w.Code)
	}
}

func TestProductCtl_GetNotFound(t *testing.T) {
	r := setupProductRouter(t)

	w := doJSON(r, http.MethodGet, "/api/products/ghost", "")
	if w.Code != 404 {
		t.Errorf("不存在的商品应 404, status = %d", w.Code)
	}
}

func TestProductCtl_UpdateAndDelete(t *testing.T) {
	r := setupProductRouter(t)

	w := doJSON(r, http.MethodPost, "/api/products", `{"title":"Gibson SG","price":"$1,500"}`)
	var created productResp
	json.Unmarshal(w.Body.Bytes(), &created)
	id := created.Data.ID

	// 部分更新
	w = doJSON(r, http.MethodPatch, "/api/products/"+id, `{"description":"Cherry red"}`)
	if w.Code != 200 {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var updated productResp
	json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Data.Description != "Cherry red" || updated.Data.Title != "Gibson SG" {
		t.Errorf("update 结果 = %+v", updated.Data)
	}

	// 删除后列表清空
	w = doJSON(r, http.MethodDelete, "/api/products/"+id, "")
	if w.Code != 200 {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/products", "")
	var list struct {
		Data []store.ProjectionEntry `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Data) != 0 {
		t.Errorf("删除后投影应清空, got %+v", list.Data)
	}

	w = doJSON(r, http.MethodGet, "/api/products/"+id, "")
	if w.Code != 404 {
		t.Errorf("删除后详情应 404, status = %d", w.Code)
	}
}

func TestProductCtl_DeleteBySlugQuery(t *testing.T) {
	r := setupProductRouter(t)

	doJSON(r, http.MethodPost, "/api/products", `{"title":"Gretsch White Falcon"}`)

	// 只知道 slug 的删除走 query 兜底
	w := doJSON(r, http.MethodDelete, "/api/products/-?slug=gretsch-white-falcon", "")
	if w.Code != 200 {
		t.Fatalf("status = %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/products", "")
	var list struct {
		Data []store.ProjectionEntry `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Data) != 0 {
		t.Errorf("按 slug 删除应清空投影, got %+v", list.Data)
	}
}
