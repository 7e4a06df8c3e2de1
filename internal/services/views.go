// internal/services/views.go
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/funkoshop/api/internal/models"
)

// Response projections. The url fields are derived from the request origin
// at shaping time and are never persisted.

type ImageView struct {
	URL string `json:"url"`
}

type CategoryView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ProductView struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Price       float64       `json:"price"`
	Discount    float64       `json:"discount"`
	Description string        `json:"description"`
	CategoryID  *uuid.UUID    `json:"category_id"`
	URL         string        `json:"url"`
	Images      []ImageView   `json:"images"`
	Category    *CategoryView `json:"category,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

func ProductURL(origin string, id uuid.UUID) string {
	return origin + "/products/" + id.String()
}

func ImageURL(origin, file string) string {
	return origin + "/products/image/" + file
}

func NewProductView(p models.Product, origin string) ProductView {
	images := make([]ImageView, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ImageView{URL: ImageURL(origin, img.File)})
	}

	view := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Discount:    p.Discount,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		URL:         ProductURL(origin, p.ID),
		Images:      images,
		CreatedAt:   p.CreatedAt,
	}
	if p.Category != nil {
		view.Category = &CategoryView{ID: p.Category.ID, Name: p.Category.Name}
	}
	return view
}

func NewProductViews(products []models.Product, origin string) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p, origin))
	}
	return views
}
