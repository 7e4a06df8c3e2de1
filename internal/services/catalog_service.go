// internal/services/catalog_service.go
package services

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/funkoshop/api/internal/models"
	"github.com/funkoshop/api/internal/utils"
)

// CatalogService plans and executes the product listing/detail queries and
// owns product record mutations. File lifecycle lives in ImageService.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type CreateProductInput struct {
	Name        string  `validate:"required,max=255"`
	Price       float64 `validate:"min=0"`
	Discount    float64 `validate:"min=0,max=100"`
	Description string
	CategoryID  *uuid.UUID
}

// imagesInPositionOrder keeps the image collection in insertion order on
// every read, which positional replacement depends on.
func imagesInPositionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("images.position ASC")
}

// searchScope is the single filter applied to listings: any of product
// name, product description or owning category name contains the search
// term (case-insensitive), and the discount clears the sale floor. An empty
// search term matches every row.
func (s *CatalogService) searchScope(p utils.ListParams) *gorm.DB {
	like := "%" + strings.ToLower(p.Search) + "%"
	return s.db.Model(&models.Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id AND categories.deleted_at IS NULL").
		Where("(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(categories.name) LIKE ?) AND products.discount >= ?",
			like, like, like, p.Sale)
}

// List executes one bounded catalog query: total is counted before
// pagination, then at most p.Limit rows are fetched from p.Offset with
// images and category eagerly loaded, and projected into views carrying
// derived URLs.
func (s *CatalogService) List(p utils.ListParams, origin string) ([]ProductView, utils.ListMeta, error) {
	query := s.searchScope(p)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, utils.ListMeta{}, utils.StoreError("count products", err)
	}

	var products []models.Product
	err := utils.ApplyPagination(utils.ApplyOrder(query, p), p).
		Preload("Images", imagesInPositionOrder).
		Preload("Category").
		Find(&products).Error
	if err != nil {
		return nil, utils.ListMeta{}, utils.StoreError("list products", err)
	}

	views := NewProductViews(products, origin)
	meta := utils.BuildListMeta(p, total, len(views), origin)
	return views, meta, nil
}

// Detail fetches one product by id with the same eager shaping as List.
func (s *CatalogService) Detail(id uuid.UUID, origin string) (*ProductView, error) {
	product, err := s.GetWithImages(id)
	if err != nil {
		return nil, err
	}
	view := NewProductView(*product, origin)
	return &view, nil
}

// GetWithImages loads a product with its images in insertion order, the
// shape every lifecycle operation works from.
func (s *CatalogService) GetWithImages(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Images", imagesInPositionOrder).
		Preload("Category").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, utils.TranslateDBError("get product", "product", err)
	}
	return &product, nil
}

func (s *CatalogService) Create(in CreateProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Discount:    in.Discount,
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, utils.StoreError("create product", err)
	}
	return product, nil
}

// Update applies a partial field update. The caller builds the updates map
// from whichever fields the request actually carried.
func (s *CatalogService) Update(id uuid.UUID, updates map[string]interface{}) (*models.Product, error) {
	product, err := s.GetWithImages(id)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, utils.StoreError("update product", err)
		}
	}
	return product, nil
}

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, utils.StoreError("list categories", err)
	}
	return categories, nil
}
