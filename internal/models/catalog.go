// internal/models/catalog.go
package models

import (
	"github.com/google/uuid"
)

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`

	// Relationships
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

type Product struct {
	BaseModel
	Name        string     `json:"name" gorm:"size:255;not null"`
	Price       float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	Discount    float64    `json:"discount" gorm:"type:decimal(5,2);default:0"`
	Description string     `json:"description" gorm:"type:text"`
	CategoryID  *uuid.UUID `json:"category_id" gorm:"type:uuid;index"`

	// Relationships
	Images   []Image   `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// Image is one stored file owned by exactly one product. Position is the
// insertion-ordered slot used for positional replacement on update.
type Image struct {
	BaseModel
	File      string    `json:"file" gorm:"size:255;uniqueIndex;not null"`
	Position  int       `json:"position" gorm:"not null;default:0"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
}
