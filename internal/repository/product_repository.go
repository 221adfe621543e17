package repository

import (
	"errors"
	"strings"

	"github.com/tienda-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, error)
	GetByID(id uint, onlyPublished bool) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) (bool, error)
	ImagesByCategory(categoryID uint) ([]string, error)
	CountByImage(ref string) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表，按 id 升序
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})
	if filter.OnlyPublished {
		query = query.Where("published = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if size := strings.TrimSpace(filter.SizeContains); size != "" {
		condition, pattern := containsIgnoreCaseCondition(r.db, "available_sizes", size)
		query = query.Where(condition, pattern)
	}

	products := make([]models.Product, 0)
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取商品，onlyPublished 为 true 时未发布商品视为不存在
func (r *GormProductRepository) GetByID(id uint, onlyPublished bool) (*models.Product, error) {
	var product models.Product
	query := r.db.Where("id = ?", id)
	if onlyPublished {
		query = query.Where("published = ?", true)
	}
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Omit("Category", "CartItems").Create(product).Error
}

// Update 更新商品（全字段写入，布尔 false 同样生效）
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Model(product).
		Select("name", "description", "image", "price", "published", "category_id", "available_sizes", "updated_at").
		Updates(product).Error
}

// Delete 删除商品，并在同一事务中级联删除购物车项。返回值表示商品是否存在。
func (r *GormProductRepository) Delete(id uint) (bool, error) {
	found := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	return found, err
}

// ImagesByCategory 分类下全部非空图片引用
func (r *GormProductRepository) ImagesByCategory(categoryID uint) ([]string, error) {
	images := make([]string, 0)
	err := r.db.Model(&models.Product{}).
		Where("category_id = ? AND image <> ''", categoryID).
		Distinct().
		Pluck("image", &images).Error
	return images, err
}

// CountByImage 引用指定图片的商品数量
func (r *GormProductRepository) CountByImage(ref string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("image = ?", ref).Count(&count).Error
	return count, err
}
