package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"guitarshop_dev_v1_202609/internal/api/dto"
	"guitarshop_dev_v1_202609/internal/model"
	"guitarshop_dev_v1_202609/internal/repository"
	"guitarshop_dev_v1_202609/internal/store"
	"guitarshop_dev_v1_202609/pkg/utils"
)

// ==================== 商品服务（双写同步器） ====================

// ProductService 商品双写同步
// 规范行（Postgres）是事实来源；投影列表（JSON 文件）供店面与静态构建读取。
// 投影写失败只记日志不回滚，两边允许短暂漂移，夜间重建任务兜底
type ProductService struct {
	repo       repository.ProductRepository
	projection *store.ProjectionStore
	log        *zap.SugaredLogger
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, projection *store.ProjectionStore, log *zap.SugaredLogger) *ProductService {
	return &ProductService{repo: repo, projection: projection, log: log}
}

// ==================== 查询 ====================

// GetByID 按 ID 取规范行
func (s *ProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

// List 分页查询规范行
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.repo.List(ctx, filter)
}

// ListProjection 店面读路径：直接读投影文件
func (s *ProductService) ListProjection() ([]store.ProjectionEntry, error) {
	return s.projection.List()
}

// ==================== 创建 ====================

// Create 创建商品
// 规范行插入失败则整个操作失败；投影头插失败只记日志，请求照常成功
func (s *ProductService) Create(ctx context.Context, req *dto.CreateProductReq) (*model.Product, error) {
	title := utils.SanitizeString(req.Title)
	if title == "" {
		return nil, NewValidationError("title", "标题不能为空")
	}

	amount, raw := parsePrice(req.Price)

	p := &model.Product{
		Title:       title,
		Description: utils.SanitizeString(req.Description),
		Specs:       sanitizeSpecs(req.Specs),
		Price:       amount,
		PriceRaw:    raw,
		Images:      req.Images,
	}
	if p.Images == nil {
		p.Images = model.ImageRefList{}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if err := s.projection.Prepend(s.toProjection(p)); err != nil {
		// 部分同步失败：投影暂时落后，不影响本次请求
		s.log.Errorw("投影头插失败，规范行已落库", "product_id", p.ID, "err", err)
	}

	return p, nil
}

// ==================== 更新 ====================

// Update 部分更新
// 只触碰请求里出现的字段；投影按 id > slug > title 定位后整条覆盖，
// 找不到匹配就不动（不做 insert-on-update）
func (s *ProductService) Update(ctx context.Context, id string, req *dto.UpdateProductReq) (*model.Product, error) {
	fields := map[string]interface{}{}

	if req.Title != nil {
		title := utils.SanitizeString(*req.Title)
		if title == "" {
			return nil, NewValidationError("title", "标题不能为空")
		}
		fields["title"] = title
	}
	if req.Description != nil {
		fields["description"] = utils.SanitizeString(*req.Description)
	}
	if req.Specs != nil {
		fields["specs"] = sanitizeSpecs(*req.Specs)
	}
	if len(req.Price) > 0 {
		amount, raw := parsePrice(req.Price)
		fields["price"] = amount
		fields["price_raw"] = raw
	}
	if req.Images != nil {
		fields["images"] = *req.Images
	}

	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	matched, err := s.projection.UpdateMatch(s.toProjection(updated))
	if err != nil {
		s.log.Errorw("投影更新失败", "product_id", id, "err", err)
	} else if !matched {
		s.log.Warnw("投影里没有匹配条目，跳过", "product_id", id)
	}

	return updated, nil
}

// ==================== 删除 ====================

// Delete 删除商品
// 规范行删除尽力而为（错误只记日志），投影单趟清掉所有命中条目；
// 两边都尝试过即视为成功
func (s *ProductService) Delete(ctx context.Context, req dto.DeleteProductReq) {
	id, slug, title := req.ID, req.Slug, req.Title

	// slug 没法直接查库，先借投影把 slug 翻译回 id/title
	if id == "" && slug != "" {
		if entries, err := s.projection.List(); err == nil {
			for _, e := range entries {
				if e.Slug == slug {
					id = e.ID
					if title == "" {
						title = e.Title
					}
					break
				}
			}
		}
	}

	// 投影没命中但有标题时回表兜底拿 id，漂移的投影条目仍能按 id 清掉
	if id == "" && title != "" {
		if p, err := s.repo.GetBySlugTitle(ctx, title); err == nil {
			id = p.ID
		}
	}

	switch {
	case id != "":
		if err := s.repo.Delete(ctx, id); err != nil {
			s.log.Errorw("规范行删除失败", "product_id", id, "err", err)
		}
	case title != "":
		if err := s.repo.DeleteByTitle(ctx, title); err != nil {
			s.log.Errorw("规范行按标题删除失败", "title", title, "err", err)
		}
	}

	removed, err := s.projection.RemoveMatches(id, slug, title)
	if err != nil {
		s.log.Errorw("投影清理失败", "product_id", id, "slug", slug, "err", err)
	} else if removed > 0 {
		s.log.Infow("投影条目已移除", "count", removed)
	}
}

// ==================== 投影重建 ====================

// RebuildProjection 从规范行整体重建投影，消解漂移
func (s *ProductService) RebuildProjection(ctx context.Context) error {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	entries := make([]store.ProjectionEntry, 0, len(products))
	for i := range products {
		entries = append(entries, s.toProjection(&products[i]))
	}
	return s.projection.Replace(entries)
}

// ==================== 转换 ====================

// toProjection 规范行 -> 投影条目，价格单向转为展示串
func (s *ProductService) toProjection(p *model.Product) store.ProjectionEntry {
	return store.ProjectionEntry{
		ID:          p.ID,
		Slug:        utils.SlugOrTimestamp(p.Title),
		Title:       p.Title,
		Description: p.Description,
		Price:       utils.FormatDisplayPrice(p.Price),
		Images:      p.Images.URLs(),
	}
}

// parsePrice 价格字段接受数字或字符串两种 JSON 形式
func parsePrice(raw json.RawMessage) (float64, string) {
	if len(raw) == 0 {
		return 0, ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, ""
	}
	return utils.NormalizePrice(v)
}

func sanitizeSpecs(in map[string]string) model.SpecsMap {
	out := make(model.SpecsMap, len(in))
	for k, v := range in {
		key := utils.SanitizeString(k)
		if key == "" {
			continue
		}
		out[key] = utils.SanitizeString(v)
	}
	return out
}
