package public

import (
	"github.com/tienda-next/internal/constants"
	handlershared "github.com/tienda-next/internal/http/handlers/shared"
	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表，支持 categoria / precio_min / precio_max / talla 过滤
func (h *Handler) ListProducts(c *gin.Context) {
	caller := getCaller(c)
	products, err := h.ProductService.List(caller, service.ProductQuery{
		Category: c.Query(constants.ProductQueryCategory),
		MinPrice: c.Query(constants.ProductQueryMinPrice),
		MaxPrice: c.Query(constants.ProductQueryMaxPrice),
		Size:     c.Query(constants.ProductQuerySize),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, handlershared.NewProductViews(c, h.Config.Media.URLPrefix, products))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.ProductService.Get(getCaller(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, handlershared.NewProductView(c, h.Config.Media.URLPrefix, product))
}
