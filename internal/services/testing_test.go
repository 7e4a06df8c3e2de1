// internal/services/testing_test.go
package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/funkoshop/api/internal/models"
)

// newTestDB opens a per-test in-memory store. The shared-cache name keeps
// every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Image{},
	))
	return db
}

type catalogFixture struct {
	anime  models.Category
	gaming models.Category
	// products[0] is the oldest, products[11] the newest
	products []models.Product
}

// seedCatalog creates two categories and twelve products with distinct
// prices (10..120), alternating discounts (0/20) and staggered creation
// times. The first product owns two images.
func seedCatalog(t *testing.T, db *gorm.DB) catalogFixture {
	t.Helper()

	fix := catalogFixture{
		anime:  models.Category{Name: "anime"},
		gaming: models.Category{Name: "gaming"},
	}
	require.NoError(t, db.Create(&fix.anime).Error)
	require.NoError(t, db.Create(&fix.gaming).Error)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 12; i++ {
		categoryID := fix.anime.ID
		if i > 6 {
			categoryID = fix.gaming.ID
		}
		discount := 0.0
		if i%2 == 0 {
			discount = 20
		}

		p := models.Product{
			Name:        fmt.Sprintf("Figure %02d", i),
			Price:       float64(i) * 10,
			Discount:    discount,
			Description: fmt.Sprintf("collectible number %d", i),
			CategoryID:  &categoryID,
		}
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&p).Error)
		fix.products = append(fix.products, p)
	}

	images := []models.Image{
		{File: "fig01_front.png", Position: 0, ProductID: fix.products[0].ID},
		{File: "fig01_back.png", Position: 1, ProductID: fix.products[0].ID},
	}
	require.NoError(t, db.Create(&images).Error)

	return fix
}

func productIDs(views []ProductView) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}
