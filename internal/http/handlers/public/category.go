package public

import (
	"github.com/tienda-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := h.CategoryService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}
