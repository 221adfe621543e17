package public

import (
	"net/http"

	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求体
type CartItemRequest struct {
	Product  interface{} `json:"producto"`
	Quantity interface{} `json:"cantidad"`
}

// ListCartItems 当前用户购物车中的购物车项
func (h *Handler) ListCartItems(c *gin.Context) {
	items, err := h.CartService.ListItems(getCaller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// CreateCartItem 新增购物车项，同一商品合并数量
func (h *Handler) CreateCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	productID, err := service.CoerceProductID(req.Product)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	quantity, err := service.CoerceQuantity(req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	item, err := h.CartService.CreateItem(getCaller(c), productID, quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, item)
}

// GetCartItem 购物车项详情
func (h *Handler) GetCartItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.CartService.GetItem(getCaller(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateCartItem 修改购物车项数量（PUT 全量 / PATCH 部分）
func (h *Handler) UpdateCartItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	partial := c.Request.Method == http.MethodPatch

	var input service.CartItemInput
	if req.Product != nil || !partial {
		productID, err := service.CoerceProductID(req.Product)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		input.ProductID = &productID
	}
	if req.Quantity != nil {
		quantity, err := service.CoerceQuantity(req.Quantity)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		input.Quantity = &quantity
	}

	item, err := h.CartService.UpdateItem(getCaller(c), id, input, partial)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.CartService.DeleteItem(getCaller(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
