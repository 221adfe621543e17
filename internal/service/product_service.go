package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tienda-next/internal/cache"
	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"

	"github.com/shopspring/decimal"
)

var maxPriceExclusive = decimal.New(1, constants.PriceMaxIntegerDigits)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cacheTTL     time.Duration
	media        MediaJanitor
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, cacheTTL time.Duration) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo, cacheTTL: cacheTTL}
}

// SetMediaJanitor 设置媒体回收器，商品删除或换图后回收旧图片
func (s *ProductService) SetMediaJanitor(janitor MediaJanitor) {
	s.media = janitor
}

// ProductInput 创建/更新商品输入，nil 字段在部分更新时保持不变
type ProductInput struct {
	Name           *string
	Description    *string
	Image          *string
	Price          *decimal.Decimal
	Published      *bool
	CategoryID     *uint
	AvailableSizes *string
}

// List 按调用方可见性与过滤条件获取商品列表
func (s *ProductService) List(caller Caller, query ProductQuery) ([]models.Product, error) {
	filter, err := BuildProductFilter(caller, query)
	if err != nil {
		return nil, err
	}

	// 员工视图包含未发布商品，不走共享缓存
	useCache := filter.OnlyPublished
	cacheKey := productFilterCacheKey(filter)
	ctx := context.Background()
	if useCache {
		var cached []models.Product
		hit, err := cache.GetCatalog(ctx, &cached, "products", cacheKey)
		if err != nil {
			logger.Warnw("product_cache_get_failed", "error", err)
		} else if hit {
			return cached, nil
		}
	}

	products, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	if useCache {
		if err := cache.SetCatalog(ctx, products, s.cacheTTL, "products", cacheKey); err != nil {
			logger.Warnw("product_cache_set_failed", "error", err)
		}
	}
	return products, nil
}

// Get 获取商品详情，非员工看不到未发布商品
func (s *ProductService) Get(caller Caller, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id, !caller.IsStaff)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := s.apply(product, input, false); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	invalidateCatalog()
	return product, nil
}

// Update 更新商品；partial 为 true 时仅更新提供的字段（PATCH）
func (s *ProductService) Update(id uint, input ProductInput, partial bool) (*models.Product, error) {
	product, err := s.repo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	previousImage := product.Image
	if err := s.apply(product, input, partial); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	invalidateCatalog()
	if previousImage != product.Image {
		discardUnreferenced(s.media, s.repo, previousImage)
	}
	return product, nil
}

// Delete 删除商品，级联删除相关购物车项
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id, false)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	found, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrProductNotFound
	}
	invalidateCatalog()
	discardUnreferenced(s.media, s.repo, product.Image)
	return nil
}

// discardUnreferenced 回收已无商品引用的图片
func discardUnreferenced(janitor MediaJanitor, repo repository.ProductRepository, refs ...string) {
	if janitor == nil {
		return
	}
	orphans := make([]string, 0, len(refs))
	for _, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		count, err := repo.CountByImage(ref)
		if err != nil {
			logger.Warnw("product_image_ref_count_failed", "ref", ref, "error", err)
			continue
		}
		if count == 0 {
			orphans = append(orphans, ref)
		}
	}
	if len(orphans) > 0 {
		janitor.Discard(orphans...)
	}
}

// apply 校验输入并写入模型；非部分更新时必填字段缺失即报错，可选字段回到默认值
func (s *ProductService) apply(product *models.Product, input ProductInput, partial bool) error {
	if input.Name != nil || !partial {
		if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
			return NewFieldError("nombre", "error.name_required")
		}
		name := strings.TrimSpace(*input.Name)
		if utf8.RuneCountInString(name) > constants.ProductNameMaxLength {
			return NewFieldError("nombre", "error.name_too_long", constants.ProductNameMaxLength)
		}
		product.Name = name
	}

	if input.Price != nil || !partial {
		if input.Price == nil {
			return ErrInvalidPrice
		}
		if err := validatePrice(*input.Price); err != nil {
			return err
		}
		product.Price = models.NewMoneyFromDecimal(*input.Price)
	}

	if input.CategoryID != nil || !partial {
		if input.CategoryID == nil || *input.CategoryID == 0 {
			return ErrCategoryRequired
		}
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryInvalid
		}
		product.CategoryID = category.ID
	}

	if input.AvailableSizes != nil || !partial {
		sizes := ""
		if input.AvailableSizes != nil {
			sizes = normalizeSizes(*input.AvailableSizes)
		}
		if utf8.RuneCountInString(sizes) > constants.ProductSizesMaxLength {
			return NewFieldError("tallas_disponibles", "error.sizes_too_long", constants.ProductSizesMaxLength)
		}
		product.AvailableSizes = sizes
	}

	if input.Description != nil {
		product.Description = *input.Description
	} else if !partial {
		product.Description = ""
	}
	if input.Image != nil {
		product.Image = strings.TrimSpace(*input.Image)
	} else if !partial {
		product.Image = ""
	}
	if input.Published != nil {
		product.Published = *input.Published
	} else if !partial {
		product.Published = false
	}
	return nil
}

// validatePrice 价格非负，最多 2 位小数、8 位整数
func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	if !price.Equal(price.Round(constants.PriceMaxDecimalPlaces)) {
		return ErrInvalidPrice
	}
	if price.GreaterThanOrEqual(maxPriceExclusive) {
		return ErrInvalidPrice
	}
	return nil
}

// normalizeSizes 去除尺码两侧空白与空项，例如 " s, M ,," -> "s,M"
func normalizeSizes(raw string) string {
	parts := strings.Split(raw, ",")
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, ",")
}
