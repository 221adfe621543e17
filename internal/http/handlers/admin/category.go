package admin

import (
	"net/http"

	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类写入请求
type CategoryRequest struct {
	Name *string `json:"nombre"`
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	category, err := h.CategoryService.Create(service.CategoryInput{Name: req.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, category)
}

// UpdateCategory 更新分类（PUT 全量 / PATCH 部分）
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	partial := c.Request.Method == http.MethodPatch
	category, err := h.CategoryService.Update(id, service.CategoryInput{Name: req.Name}, partial)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，级联删除其商品
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
