package public

import (
	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/i18n"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CartProductRequest agregar_producto / eliminar_producto 请求体。
// 数值字段接受整数、整数值浮点或数字字符串，由 service 层统一转换。
type CartProductRequest struct {
	ProductID interface{} `json:"producto_id"`
	Quantity  interface{} `json:"cantidad"`
}

// ListCarts 列出当前用户的购物车（不存在时自动创建）
func (h *Handler) ListCarts(c *gin.Context) {
	carts, err := h.CartService.ListCarts(getCaller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, carts)
}

// CreateCart 获取或创建当前用户的购物车
func (h *Handler) CreateCart(c *gin.Context) {
	cart, err := h.CartService.EnsureCart(getCaller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, cart)
}

// GetCart 购物车详情
func (h *Handler) GetCart(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetCart(getCaller(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cart)
}

// UpdateCart 购物车没有可修改字段，仅校验归属后返回当前状态
func (h *Handler) UpdateCart(c *gin.Context) {
	h.GetCart(c)
}

// DeleteCart 删除购物车及其购物车项
func (h *Handler) DeleteCart(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.CartService.DeleteCart(getCaller(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// AddProductToCart 将商品加入购物车，已存在时累加数量
func (h *Handler) AddProductToCart(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CartProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	productID, err := service.CoerceProductID(req.ProductID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	quantity, err := service.CoerceQuantity(req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if _, err := h.CartService.AddProduct(getCaller(c), id, productID, quantity); err != nil {
		respondServiceError(c, err)
		return
	}
	msg := i18n.T(i18n.ResolveLocale(c), "cart.product_added")
	response.SuccessWithMsg(c, msg, gin.H{"status": msg})
}

// RemoveProductFromCart 从购物车移除商品
func (h *Handler) RemoveProductFromCart(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CartProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	productID, err := service.CoerceProductID(req.ProductID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.CartService.RemoveProduct(getCaller(c), id, productID); err != nil {
		respondServiceError(c, err)
		return
	}
	msg := i18n.T(i18n.ResolveLocale(c), "cart.product_removed")
	response.SuccessWithMsg(c, msg, gin.H{"status": msg})
}
