package public

import (
	"strconv"
	"strings"

	handlershared "github.com/hopbarley/internal/http/handlers/shared"
	"github.com/hopbarley/internal/http/response"
	"github.com/hopbarley/internal/models"
	"github.com/hopbarley/internal/service"

	"github.com/gin-gonic/gin"
)

// GetHome 首页推荐商品与分类
func (h *Handler) GetHome(c *gin.Context) {
	home, err := h.ProductService.Home(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, home)
}

// GetProducts 获取在售商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := handlershared.QueryPage(c, h.ProductService.PageSize())
	query := service.ProductQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}

	var current *models.Category
	if slug := strings.TrimSpace(c.Query("category")); slug != "" {
		category, err := h.CategoryService.GetBySlug(slug)
		if err != nil {
			respondCatalogError(c, err)
			return
		}
		current = category
		query.CategorySlug = category.Slug
	} else if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || categoryID == 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		query.CategoryID = uint(categoryID)
	}

	products, total, err := h.ProductService.ListPublic(query)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.SuccessWithPage(c, gin.H{
		"items":            products,
		"current_category": current,
		"search":           query.Search,
	}, handlershared.BuildPagination(page, pageSize, total))
}

// GetProductBySlug 商品详情与同类推荐
func (h *Handler) GetProductBySlug(c *gin.Context) {
	detail, err := h.ProductService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, detail)
}

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, categories)
}
