// internal/utils/pagination.go
package utils

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 4
	MaxLimit     = 16
)

type OrderDir string

const (
	OrderAsc  OrderDir = "ASC"
	OrderDesc OrderDir = "DESC"
)

type SortKey string

const (
	SortByID       SortKey = "id"
	SortByName     SortKey = "name"
	SortByPrice    SortKey = "price"
	SortByDiscount SortKey = "discount"
	SortByCategory SortKey = "category"
	SortByNewest   SortKey = "newest"
)

// ListParams is the normalized, bounded shape of the raw listing query
// parameters. Build it with GetListParams; everything downstream may trust
// its ranges.
type ListParams struct {
	Limit  int      `json:"limit"`
	Page   int      `json:"page"`
	Order  OrderDir `json:"order"`
	Sort   SortKey  `json:"sortBy"`
	Search string   `json:"search"`
	Sale   float64  `json:"sale"`
}

func (p ListParams) Offset() int {
	return p.Limit * (p.Page - 1)
}

// GetListParams clamps and defaults every listing parameter: limit to
// [1,16] (default 4), page to >=1 (default 1), order and sortBy fall back
// to their defaults on anything outside the enum. Bad input degrades, it
// never errors.
func GetListParams(c *gin.Context) ListParams {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	order := OrderDir(strings.ToUpper(c.DefaultQuery("order", string(OrderAsc))))
	if order != OrderAsc && order != OrderDesc {
		order = OrderAsc
	}

	sort := SortKey(strings.ToLower(c.DefaultQuery("sortBy", string(SortByID))))
	switch sort {
	case SortByName, SortByPrice, SortByDiscount, SortByCategory, SortByNewest:
	default:
		sort = SortByID
	}

	sale, err := strconv.ParseFloat(c.DefaultQuery("sale", "0"), 64)
	if err != nil || sale < 0 {
		sale = 0
	}

	return ListParams{
		Limit:  limit,
		Page:   page,
		Order:  order,
		Sort:   sort,
		Search: c.Query("search"),
		Sale:   sale,
	}
}

// ApplyOrder maps the typed sort key onto a concrete ordering. The query
// must already join categories for the category sort. newest pins creation
// time descending regardless of the requested direction.
func ApplyOrder(db *gorm.DB, p ListParams) *gorm.DB {
	dir := string(p.Order)
	switch p.Sort {
	case SortByCategory:
		return db.Order("categories.name " + dir).Order("products.name " + dir)
	case SortByNewest:
		return db.Order("products.created_at DESC")
	case SortByName, SortByPrice, SortByDiscount:
		return db.Order("products." + string(p.Sort) + " " + dir)
	default:
		return db.Order("products.id " + dir)
	}
}

func ApplyPagination(db *gorm.DB, p ListParams) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Limit)
}

// ListMeta is the pagination metadata block of a list response.
type ListMeta struct {
	Total    int64   `json:"total"`
	Quantity int     `json:"quantity"`
	Page     int     `json:"page"`
	Prev     *string `json:"prev"`
	Next     *string `json:"next"`
}

// PageLink serializes every recognized listing parameter back into a URL
// for the given page, so following the link reproduces an equivalent query.
func (p ListParams) PageLink(origin string, page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("order", string(p.Order))
	q.Set("sortBy", string(p.Sort))
	q.Set("search", p.Search)
	q.Set("sale", strconv.FormatFloat(p.Sale, 'f', -1, 64))
	return origin + "/products?" + q.Encode()
}

// BuildListMeta derives prev/next: prev exists iff page > 1, next exists
// iff another full or partial page remains past the current offset.
func BuildListMeta(p ListParams, total int64, quantity int, origin string) ListMeta {
	meta := ListMeta{
		Total:    total,
		Quantity: quantity,
		Page:     p.Page,
	}
	if p.Page > 1 {
		link := p.PageLink(origin, p.Page-1)
		meta.Prev = &link
	}
	if int64(p.Offset()+p.Limit) < total {
		link := p.PageLink(origin, p.Page+1)
		meta.Next = &link
	}
	return meta
}
