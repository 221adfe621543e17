package shared

import (
	"strings"

	"github.com/tienda-next/internal/models"

	"github.com/gin-gonic/gin"
)

// ProductView 商品响应结构，imagen 为完整 URL
type ProductView struct {
	ID             uint         `json:"id"`
	Name           string       `json:"nombre"`
	Description    string       `json:"descripcion"`
	Image          *string      `json:"imagen"`
	Price          models.Money `json:"precio"`
	Published      bool         `json:"publicado"`
	CategoryID     uint         `json:"categoria"`
	AvailableSizes string       `json:"tallas_disponibles"`
}

// NewProductView 构造商品响应
func NewProductView(c *gin.Context, mediaPrefix string, product *models.Product) ProductView {
	return ProductView{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		Image:          AbsoluteMediaURL(c, mediaPrefix, product.Image),
		Price:          product.Price,
		Published:      product.Published,
		CategoryID:     product.CategoryID,
		AvailableSizes: product.AvailableSizes,
	}
}

// NewProductViews 构造商品列表响应
func NewProductViews(c *gin.Context, mediaPrefix string, products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, NewProductView(c, mediaPrefix, &products[i]))
	}
	return views
}

// AbsoluteMediaURL 将媒体引用拼接为基于当前请求来源的完整 URL。
// 空引用返回 nil，已是完整 URL 的引用原样返回。
func AbsoluteMediaURL(c *gin.Context, mediaPrefix, ref string) *string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(ref, "//") {
		return &ref
	}

	prefix := "/" + strings.Trim(strings.TrimSpace(mediaPrefix), "/") + "/"
	if prefix == "//" {
		prefix = "/"
	}
	path := "/" + strings.TrimLeft(ref, "/")
	if !strings.HasPrefix(path, prefix) {
		path = prefix + strings.TrimLeft(ref, "/")
	}

	url := requestScheme(c) + "://" + c.Request.Host + path
	return &url
}

func requestScheme(c *gin.Context) string {
	if proto := strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")); proto != "" {
		if idx := strings.Index(proto, ","); idx >= 0 {
			proto = proto[:idx]
		}
		return strings.ToLower(strings.TrimSpace(proto))
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
