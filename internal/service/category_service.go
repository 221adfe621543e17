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
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo     repository.CategoryRepository
	cacheTTL time.Duration
	media    MediaJanitor
	products repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, cacheTTL time.Duration) *CategoryService {
	return &CategoryService{repo: repo, cacheTTL: cacheTTL}
}

// SetMediaJanitor 设置媒体回收器，删除分类时回收其商品图片
func (s *CategoryService) SetMediaJanitor(janitor MediaJanitor, products repository.ProductRepository) {
	s.media = janitor
	s.products = products
}

// CategoryInput 创建/更新分类输入，nil 字段在部分更新时保持不变
type CategoryInput struct {
	Name *string
}

// List 获取分类列表（读缓存）
func (s *CategoryService) List() ([]models.Category, error) {
	ctx := context.Background()
	var cached []models.Category
	if hit, err := cache.GetCatalog(ctx, &cached, "categories"); err == nil && hit {
		return cached, nil
	} else if err != nil {
		logger.Warnw("category_cache_get_failed", "error", err)
	}

	categories, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if err := cache.SetCatalog(ctx, categories, s.cacheTTL, "categories"); err != nil {
		logger.Warnw("category_cache_set_failed", "error", err)
	}
	return categories, nil
}

// Get 获取分类
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name, err := normalizeCategoryName(input.Name)
	if err != nil {
		return nil, err
	}
	category := models.Category{Name: name}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	invalidateCatalog()
	return &category, nil
}

// Update 更新分类；partial 为 true 时仅更新提供的字段（PATCH）
func (s *CategoryService) Update(id uint, input CategoryInput, partial bool) (*models.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil || !partial {
		name, err := normalizeCategoryName(input.Name)
		if err != nil {
			return nil, err
		}
		category.Name = name
	}
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	invalidateCatalog()
	return category, nil
}

// Delete 删除分类，级联删除其商品与相关购物车项
func (s *CategoryService) Delete(id uint) error {
	var images []string
	if s.media != nil && s.products != nil {
		found, err := s.products.ImagesByCategory(id)
		if err != nil {
			logger.Warnw("category_product_images_failed", "category_id", id, "error", err)
		}
		images = found
	}
	found, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrCategoryNotFound
	}
	invalidateCatalog()
	if len(images) > 0 {
		discardUnreferenced(s.media, s.products, images...)
	}
	return nil
}

func normalizeCategoryName(raw *string) (string, error) {
	if raw == nil {
		return "", NewFieldError("nombre", "error.name_required")
	}
	name := strings.TrimSpace(*raw)
	if name == "" {
		return "", NewFieldError("nombre", "error.name_required")
	}
	if utf8.RuneCountInString(name) > constants.CategoryNameMaxLength {
		return "", NewFieldError("nombre", "error.name_too_long", constants.CategoryNameMaxLength)
	}
	return name, nil
}

func invalidateCatalog() {
	if err := cache.InvalidateCatalog(context.Background()); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "error", err)
	}
}
