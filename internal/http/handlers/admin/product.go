package admin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	handlershared "github.com/tienda-next/internal/http/handlers/shared"
	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 商品 JSON 写入请求；precio 可为字符串或数字
type ProductRequest struct {
	Name           *string       `json:"nombre"`
	Description    *string       `json:"descripcion"`
	Image          *string       `json:"imagen"`
	Price          *models.Money `json:"precio"`
	Published      *bool         `json:"publicado"`
	CategoryID     *uint         `json:"categoria"`
	AvailableSizes *string       `json:"tallas_disponibles"`
}

func (r ProductRequest) toInput() service.ProductInput {
	input := service.ProductInput{
		Name:           r.Name,
		Description:    r.Description,
		Image:          r.Image,
		Published:      r.Published,
		CategoryID:     r.CategoryID,
		AvailableSizes: r.AvailableSizes,
	}
	if r.Price != nil {
		price := r.Price.Decimal
		input.Price = &price
	}
	return input
}

var errProductBody = errors.New("invalid product body")

// bindProductInput 支持 JSON 与 multipart/form-data（imagen 为上传文件）两种请求体
func (h *Handler) bindProductInput(c *gin.Context) (service.ProductInput, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if errors.Is(err, models.ErrMoneyFormat) {
				return service.ProductInput{}, service.ErrInvalidPrice
			}
			return service.ProductInput{}, errProductBody
		}
		return req.toInput(), nil
	}

	var input service.ProductInput
	if value, ok := c.GetPostForm("nombre"); ok {
		input.Name = &value
	}
	if value, ok := c.GetPostForm("descripcion"); ok {
		input.Description = &value
	}
	if value, ok := c.GetPostForm("tallas_disponibles"); ok {
		input.AvailableSizes = &value
	}
	if value, ok := c.GetPostForm("precio"); ok {
		price, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return input, service.ErrInvalidPrice
		}
		input.Price = &price
	}
	if value, ok := c.GetPostForm("publicado"); ok {
		published, err := parseFormBool(value)
		if err != nil {
			return input, errProductBody
		}
		input.Published = &published
	}
	if value, ok := c.GetPostForm("categoria"); ok {
		categoryID, valid := service.ParseID(value)
		if !valid {
			return input, service.ErrCategoryInvalid
		}
		input.CategoryID = &categoryID
	}

	file, err := c.FormFile("imagen")
	switch {
	case err == nil:
		ref, err := h.UploadService.SaveProductImage(file)
		if err != nil {
			return input, err
		}
		input.Image = &ref
	case errors.Is(err, http.ErrMissingFile):
		if value, ok := c.GetPostForm("imagen"); ok {
			input.Image = &value
		}
	default:
		return input, errProductBody
	}
	return input, nil
}

func parseFormBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(raw))
}

func (h *Handler) respondProductBindError(c *gin.Context, err error) {
	if errors.Is(err, errProductBody) {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	respondServiceError(c, err)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	input, err := h.bindProductInput(c)
	if err != nil {
		h.respondProductBindError(c, err)
		return
	}
	product, err := h.ProductService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, handlershared.NewProductView(c, h.Config.Media.URLPrefix, product))
}

// UpdateProduct 更新商品（PUT 全量 / PATCH 部分）
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, err := h.bindProductInput(c)
	if err != nil {
		h.respondProductBindError(c, err)
		return
	}
	partial := c.Request.Method == http.MethodPatch
	product, err := h.ProductService.Update(id, input, partial)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, handlershared.NewProductView(c, h.Config.Media.URLPrefix, product))
}

// DeleteProduct 删除商品，级联删除相关购物车项
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.NoContent(c)
}
