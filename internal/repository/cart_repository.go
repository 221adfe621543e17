package repository

import (
	"errors"
	"time"

	"github.com/tienda-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByID(id uint) (*models.Cart, error)
	GetByUser(userID uint) (*models.Cart, error)
	LockByID(id uint) (*models.Cart, error)
	EnsureForUser(userID uint) (*models.Cart, error)
	Delete(id uint) (bool, error)
	ListItems(cartID uint) ([]models.CartItem, error)
	GetItemByID(id uint) (*models.CartItem, error)
	GetItem(cartID, productID uint) (*models.CartItem, error)
	AddItemQuantity(cartID, productID uint, quantity int) (*models.CartItem, error)
	UpdateItemQuantity(id uint, quantity int) error
	DeleteItem(id uint) (bool, error)
	DeleteItemByProduct(cartID, productID uint) (bool, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("cart_items.id ASC")
}

func (r *GormCartRepository) first(query *gorm.DB) (*models.Cart, error) {
	var cart models.Cart
	if err := query.Preload("Items", preloadItems).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// GetByID 根据 ID 获取购物车（含购物车项）
func (r *GormCartRepository) GetByID(id uint) (*models.Cart, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByUser 获取用户的购物车（含购物车项）
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	return r.first(r.db.Where("user_id = ?", userID))
}

// LockByID 行级锁定购物车，串行化同一购物车上的变更（sqlite 下由写事务保证）
func (r *GormCartRepository) LockByID(id uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// EnsureForUser 获取或创建用户购物车。user_id 唯一约束保证并发下只有一个购物车。
func (r *GormCartRepository) EnsureForUser(userID uint) (*models.Cart, error) {
	cart, err := r.GetByUser(userID)
	if err != nil || cart != nil {
		return cart, err
	}
	owner := userID
	created := models.Cart{UserID: &owner}
	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Omit("Items", "User").Create(&created).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUser(userID)
}

// Delete 删除购物车，并在同一事务中级联删除购物车项。返回值表示购物车是否存在。
func (r *GormCartRepository) Delete(id uint) (bool, error) {
	found := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Cart{}, id)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	return found, err
}

// ListItems 获取购物车项
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.db.Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItemByID 根据 ID 获取购物车项（附带所属购物车，用于归属校验）
func (r *GormCartRepository) GetItemByID(id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("Cart").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItem 根据购物车与商品获取购物车项
func (r *GormCartRepository) GetItem(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// AddItemQuantity 原子地新增或累加购物车项数量。
// 依赖 (cart_id, product_id) 唯一索引，并发调用不会产生重复行，也不会丢失累加。
func (r *GormCartRepository) AddItemQuantity(cartID, productID uint, quantity int) (*models.CartItem, error) {
	item := models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": time.Now(),
		}),
	}).Omit("Cart", "Product").Create(&item).Error
	if err != nil {
		return nil, err
	}
	return r.GetItem(cartID, productID)
}

// UpdateItemQuantity 设置购物车项数量
func (r *GormCartRepository) UpdateItemQuantity(id uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"quantity":   quantity,
		"updated_at": time.Now(),
	}).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(id uint) (bool, error) {
	result := r.db.Delete(&models.CartItem{}, id)
	return result.RowsAffected > 0, result.Error
}

// DeleteItemByProduct 删除购物车中指定商品的购物车项
func (r *GormCartRepository) DeleteItemByProduct(cartID, productID uint) (bool, error) {
	result := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	return result.RowsAffected > 0, result.Error
}
