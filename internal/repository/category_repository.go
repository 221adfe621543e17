package repository

import (
	"errors"

	"github.com/tienda-next/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	List() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) (bool, error)
	WithTx(tx *gorm.DB) CategoryRepository
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCategoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	if tx == nil {
		return r
	}
	return &GormCategoryRepository{db: tx}
}

// List 分类列表
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID 根据 ID 获取分类
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Model(category).Select("name", "updated_at").Updates(category).Error
}

// Delete 删除分类，并在同一事务中级联删除其商品及相关购物车项。
// 返回值表示分类是否存在。
func (r *GormCategoryRepository) Delete(id uint) (bool, error) {
	found := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		productIDs := tx.Model(&models.Product{}).Select("id").Where("category_id = ?", id)
		if err := tx.Where("product_id IN (?)", productIDs).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	return found, err
}
