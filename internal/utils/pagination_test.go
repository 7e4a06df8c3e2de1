// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, rawQuery string) ListParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/products?"+rawQuery, nil)
	return GetListParams(c)
}

func TestGetListParamsDefaults(t *testing.T) {
	p := paramsFor(t, "")

	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, OrderAsc, p.Order)
	assert.Equal(t, SortByID, p.Sort)
	assert.Equal(t, "", p.Search)
	assert.Equal(t, 0.0, p.Sale)
	assert.Equal(t, 0, p.Offset())
}

func TestGetListParamsLimitClamp(t *testing.T) {
	assert.Equal(t, MaxLimit, paramsFor(t, "limit=17").Limit)
	assert.Equal(t, MaxLimit, paramsFor(t, "limit=9999").Limit)
	assert.Equal(t, 16, paramsFor(t, "limit=16").Limit)
	assert.Equal(t, 1, paramsFor(t, "limit=1").Limit)
	assert.Equal(t, DefaultLimit, paramsFor(t, "limit=0").Limit)
	assert.Equal(t, DefaultLimit, paramsFor(t, "limit=-3").Limit)
	assert.Equal(t, DefaultLimit, paramsFor(t, "limit=abc").Limit)
}

func TestGetListParamsPageClamp(t *testing.T) {
	assert.Equal(t, 1, paramsFor(t, "page=0").Page)
	assert.Equal(t, 1, paramsFor(t, "page=-5").Page)
	assert.Equal(t, 1, paramsFor(t, "page=x").Page)
	assert.Equal(t, 7, paramsFor(t, "page=7").Page)

	// offset can never underflow
	p := paramsFor(t, "page=-5&limit=10")
	assert.Equal(t, 0, p.Offset())
}

func TestGetListParamsOrderAndSortFallback(t *testing.T) {
	assert.Equal(t, OrderDesc, paramsFor(t, "order=desc").Order)
	assert.Equal(t, OrderDesc, paramsFor(t, "order=DESC").Order)
	assert.Equal(t, OrderAsc, paramsFor(t, "order=sideways").Order)

	assert.Equal(t, SortByPrice, paramsFor(t, "sortBy=PRICE").Sort)
	assert.Equal(t, SortByNewest, paramsFor(t, "sortBy=newest").Sort)
	assert.Equal(t, SortByID, paramsFor(t, "sortBy=dragons").Sort)
}

func TestGetListParamsSaleFloor(t *testing.T) {
	assert.Equal(t, 25.5, paramsFor(t, "sale=25.5").Sale)
	assert.Equal(t, 0.0, paramsFor(t, "sale=-10").Sale)
	assert.Equal(t, 0.0, paramsFor(t, "sale=nope").Sale)
}

func TestPageLinkRoundTrip(t *testing.T) {
	p := ListParams{
		Limit:  5,
		Page:   2,
		Order:  OrderDesc,
		Sort:   SortByPrice,
		Search: "funko pop",
		Sale:   10,
	}

	link := p.PageLink("http://shop.test", 3)
	assert.True(t, strings.HasPrefix(link, "http://shop.test/products?"))

	parsed, err := url.Parse(link)
	assert.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "3", q.Get("page"))
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, "DESC", q.Get("order"))
	assert.Equal(t, "price", q.Get("sortBy"))
	assert.Equal(t, "funko pop", q.Get("search"))
	assert.Equal(t, "10", q.Get("sale"))
}

func TestBuildListMetaPrevNext(t *testing.T) {
	base := ListParams{Limit: 5, Page: 1, Order: OrderAsc, Sort: SortByID}

	// first page of many: no prev, next exists
	meta := BuildListMeta(base, 12, 5, "http://shop.test")
	assert.Nil(t, meta.Prev)
	assert.NotNil(t, meta.Next)
	assert.Contains(t, *meta.Next, "page=2")

	// middle page: both links
	mid := base
	mid.Page = 2
	meta = BuildListMeta(mid, 12, 5, "http://shop.test")
	assert.NotNil(t, meta.Prev)
	assert.Contains(t, *meta.Prev, "page=1")
	assert.NotNil(t, meta.Next)
	assert.Contains(t, *meta.Next, "page=3")

	// last page: prev only. offset+limit == total means no next.
	last := base
	last.Page = 3
	meta = BuildListMeta(last, 12, 2, "http://shop.test")
	assert.NotNil(t, meta.Prev)
	assert.Nil(t, meta.Next)

	// exact boundary: offset+limit == total
	meta = BuildListMeta(base, 5, 5, "http://shop.test")
	assert.Nil(t, meta.Next)

	// one past the boundary
	meta = BuildListMeta(base, 6, 5, "http://shop.test")
	assert.NotNil(t, meta.Next)
}

func TestBuildListMetaCounts(t *testing.T) {
	p := ListParams{Limit: 4, Page: 2}
	meta := BuildListMeta(p, 9, 4, "http://shop.test")

	assert.Equal(t, int64(9), meta.Total)
	assert.Equal(t, 4, meta.Quantity)
	assert.Equal(t, 2, meta.Page)
}
