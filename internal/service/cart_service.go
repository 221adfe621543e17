package service

import (
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"

	"gorm.io/gorm"
)

// CartService 购物车服务：每个用户一个购物车，所有操作按归属校验
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartItemInput 购物车项更新输入
type CartItemInput struct {
	ProductID *uint
	Quantity  *int
}

// EnsureCart 获取或创建调用方的购物车
func (s *CartService) EnsureCart(caller Caller) (*models.Cart, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthenticationRequired
	}
	return s.cartRepo.EnsureForUser(caller.UserID)
}

// ListCarts 列出调用方的购物车（至多一个）
func (s *CartService) ListCarts(caller Caller) ([]models.Cart, error) {
	cart, err := s.EnsureCart(caller)
	if err != nil {
		return nil, err
	}
	return []models.Cart{*cart}, nil
}

// GetCart 按 ID 获取购物车，必须属于调用方
func (s *CartService) GetCart(caller Caller, cartID uint) (*models.Cart, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthenticationRequired
	}
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if err := checkCartOwner(caller, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// DeleteCart 删除购物车及其购物车项；下次访问会重新创建空购物车
func (s *CartService) DeleteCart(caller Caller, cartID uint) error {
	if _, err := s.GetCart(caller, cartID); err != nil {
		return err
	}
	found, err := s.cartRepo.Delete(cartID)
	if err != nil {
		return err
	}
	if !found {
		return ErrCartNotFound
	}
	return nil
}

// AddProduct 将商品加入购物车：已有则累加数量，否则新建购物车项
func (s *CartService) AddProduct(caller Caller, cartID, productID uint, quantity int) (*models.CartItem, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthenticationRequired
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var item *models.CartItem
	err := s.cartRepo.Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)
		cart, err := carts.LockByID(cartID)
		if err != nil {
			return err
		}
		if err := checkCartOwner(caller, cart); err != nil {
			return err
		}

		product, err := s.productRepo.WithTx(tx).GetByID(productID, !caller.IsStaff)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}

		item, err = carts.AddItemQuantity(cart.ID, product.ID, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveProduct 从购物车移除商品，商品不在购物车中时返回 ErrProductNotInCart
func (s *CartService) RemoveProduct(caller Caller, cartID, productID uint) error {
	if !caller.Authenticated() {
		return ErrAuthenticationRequired
	}
	return s.cartRepo.Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)
		cart, err := carts.LockByID(cartID)
		if err != nil {
			return err
		}
		if err := checkCartOwner(caller, cart); err != nil {
			return err
		}
		found, err := carts.DeleteItemByProduct(cart.ID, productID)
		if err != nil {
			return err
		}
		if !found {
			return ErrProductNotInCart
		}
		return nil
	})
}

// ListItems 列出调用方购物车中的购物车项
func (s *CartService) ListItems(caller Caller) ([]models.CartItem, error) {
	cart, err := s.EnsureCart(caller)
	if err != nil {
		return nil, err
	}
	return s.cartRepo.ListItems(cart.ID)
}

// CreateItem 在调用方购物车中新增购物车项，与 AddProduct 相同的合并语义
func (s *CartService) CreateItem(caller Caller, productID uint, quantity int) (*models.CartItem, error) {
	cart, err := s.EnsureCart(caller)
	if err != nil {
		return nil, err
	}
	return s.AddProduct(caller, cart.ID, productID, quantity)
}

// GetItem 按 ID 获取购物车项，必须属于调用方
func (s *CartService) GetItem(caller Caller, itemID uint) (*models.CartItem, error) {
	if !caller.Authenticated() {
		return nil, ErrAuthenticationRequired
	}
	item, err := s.cartRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if !item.Cart.OwnedBy(caller.UserID) {
		return nil, ErrCartItemForbidden
	}
	return item, nil
}

// UpdateItem 更新购物车项数量；商品不可变更。partial 为 true 时缺失的数量保持不变
func (s *CartService) UpdateItem(caller Caller, itemID uint, input CartItemInput, partial bool) (*models.CartItem, error) {
	item, err := s.GetItem(caller, itemID)
	if err != nil {
		return nil, err
	}
	if input.ProductID != nil && *input.ProductID != item.ProductID {
		return nil, ErrCartItemProductChanged
	}

	quantity := item.Quantity
	switch {
	case input.Quantity != nil:
		quantity = *input.Quantity
	case !partial:
		quantity = 1
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if quantity != item.Quantity {
		if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
			return nil, err
		}
		item.Quantity = quantity
	}
	return item, nil
}

// DeleteItem 删除购物车项
func (s *CartService) DeleteItem(caller Caller, itemID uint) error {
	item, err := s.GetItem(caller, itemID)
	if err != nil {
		return err
	}
	found, err := s.cartRepo.DeleteItem(item.ID)
	if err != nil {
		return err
	}
	if !found {
		return ErrCartItemNotFound
	}
	return nil
}

// checkCartOwner 不存在返回 NotFound，存在但属于他人返回 Forbidden
func checkCartOwner(caller Caller, cart *models.Cart) error {
	if cart == nil {
		return ErrCartNotFound
	}
	if !cart.OwnedBy(caller.UserID) {
		return ErrCartForbidden
	}
	return nil
}
