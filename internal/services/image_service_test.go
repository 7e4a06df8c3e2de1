// internal/services/image_service_test.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/funkoshop/api/internal/models"
	"github.com/funkoshop/api/internal/storage"
	"github.com/funkoshop/api/internal/utils"
)

type ImageServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	store   *storage.DiskStore
	catalog *CatalogService
	images  *ImageService
}

func (s *ImageServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	store, err := storage.NewDiskStore(s.T().TempDir())
	require.NoError(s.T(), err)
	s.store = store
	s.catalog = NewCatalogService(s.db)
	s.images = NewImageService(s.db, store)
}

func (s *ImageServiceTestSuite) putFile(content string) string {
	name, err := s.store.Put(strings.NewReader(content), "upload.png")
	require.NoError(s.T(), err)
	return name
}

func (s *ImageServiceTestSuite) createProduct(fileCount int) *models.Product {
	product, err := s.catalog.Create(CreateProductInput{Name: "Grogu", Price: 30})
	require.NoError(s.T(), err)

	files := make([]string, 0, fileCount)
	for i := 0; i < fileCount; i++ {
		files = append(files, s.putFile(fmt.Sprintf("image %d", i)))
	}
	require.NoError(s.T(), s.images.AttachOnCreate(product.ID, files))

	loaded, err := s.catalog.GetWithImages(product.ID)
	require.NoError(s.T(), err)
	return loaded
}

func (s *ImageServiceTestSuite) TestAttachOnCreate() {
	product := s.createProduct(3)

	require.Len(s.T(), product.Images, 3)
	for i, img := range product.Images {
		assert.Equal(s.T(), i, img.Position)
		assert.True(s.T(), s.store.Exists(img.File), "file %s must exist", img.File)
	}

	view, err := s.catalog.Detail(product.ID, testOrigin)
	require.NoError(s.T(), err)
	require.Len(s.T(), view.Images, 3)
	for i, iv := range view.Images {
		assert.Equal(s.T(), testOrigin+"/products/image/"+product.Images[i].File, iv.URL)
	}
}

func (s *ImageServiceTestSuite) TestReplaceSlotZero() {
	product := s.createProduct(2)
	oldFile := product.Images[0].File
	keptFile := product.Images[1].File

	newFile := s.putFile("replacement")
	report := s.images.ReplaceOnUpdate(product, []string{newFile})

	assert.Equal(s.T(), 1, report.Replaced)
	assert.Equal(s.T(), 0, report.Added)
	assert.False(s.T(), report.Failed())

	assert.False(s.T(), s.store.Exists(oldFile), "old file must be gone")
	assert.True(s.T(), s.store.Exists(newFile))
	assert.True(s.T(), s.store.Exists(keptFile), "untouched slot keeps its file")

	reloaded, err := s.catalog.GetWithImages(product.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), reloaded.Images, 2)
	assert.Equal(s.T(), newFile, reloaded.Images[0].File)
	assert.Equal(s.T(), 0, reloaded.Images[0].Position)
	assert.Equal(s.T(), keptFile, reloaded.Images[1].File)
}

func (s *ImageServiceTestSuite) TestReplaceAppendsExtraUploads() {
	product := s.createProduct(1)

	first := s.putFile("replaces slot 0")
	second := s.putFile("new tail image")
	third := s.putFile("another tail image")
	report := s.images.ReplaceOnUpdate(product, []string{first, second, third})

	assert.Equal(s.T(), 1, report.Replaced)
	assert.Equal(s.T(), 2, report.Added)
	assert.False(s.T(), report.Failed())

	reloaded, err := s.catalog.GetWithImages(product.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), reloaded.Images, 3)
	assert.Equal(s.T(), []string{first, second, third}, []string{
		reloaded.Images[0].File,
		reloaded.Images[1].File,
		reloaded.Images[2].File,
	})
	assert.Equal(s.T(), 2, reloaded.Images[2].Position)
}

func (s *ImageServiceTestSuite) TestReplaceSlotsFailIndependently() {
	product := s.createProduct(2)
	oldSecond := product.Images[1].File

	failing := &failingDeleteStore{Store: s.store, failOn: product.Images[0].File}
	images := NewImageService(s.db, failing)

	newFirst := s.putFile("blocked replacement")
	newSecond := s.putFile("successful replacement")
	report := images.ReplaceOnUpdate(product, []string{newFirst, newSecond})

	assert.Equal(s.T(), 1, report.Replaced)
	require.Len(s.T(), report.Failures, 1)
	assert.Equal(s.T(), 0, report.Failures[0].Position)
	assert.Contains(s.T(), report.Summary(), "1 failed")

	reloaded, err := s.catalog.GetWithImages(product.ID)
	require.NoError(s.T(), err)
	// failed slot keeps its original record, the other slot was replaced
	assert.NotEqual(s.T(), newFirst, reloaded.Images[0].File)
	assert.Equal(s.T(), newSecond, reloaded.Images[1].File)
	assert.False(s.T(), s.store.Exists(oldSecond))
}

func (s *ImageServiceTestSuite) TestRemoveAll() {
	product := s.createProduct(2)
	files := []string{product.Images[0].File, product.Images[1].File}

	require.NoError(s.T(), s.images.RemoveAll(product))

	for _, f := range files {
		assert.False(s.T(), s.store.Exists(f))
	}

	_, err := s.catalog.Detail(product.ID, testOrigin)
	var appErr *utils.AppError
	require.True(s.T(), errors.As(err, &appErr))
	assert.Equal(s.T(), 404, appErr.Status)

	var count int64
	s.db.Model(&models.Image{}).Where("product_id = ?", product.ID).Count(&count)
	assert.Equal(s.T(), int64(0), count)
}

func (s *ImageServiceTestSuite) TestRemoveAllToleratesMissingFile() {
	product := s.createProduct(2)
	require.NoError(s.T(), s.store.Delete(product.Images[0].File))

	require.NoError(s.T(), s.images.RemoveAll(product))

	_, err := s.catalog.GetWithImages(product.ID)
	var appErr *utils.AppError
	require.True(s.T(), errors.As(err, &appErr))
	assert.Equal(s.T(), 404, appErr.Status)
}

// failingDeleteStore fails deletion of one specific file.
type failingDeleteStore struct {
	storage.Store
	failOn string
}

func (f *failingDeleteStore) Delete(name string) error {
	if name == f.failOn {
		return errors.New("simulated store outage")
	}
	return f.Store.Delete(name)
}

func TestImageServiceSuite(t *testing.T) {
	suite.Run(t, new(ImageServiceTestSuite))
}
