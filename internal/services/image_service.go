// internal/services/image_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/funkoshop/api/internal/models"
	"github.com/funkoshop/api/internal/storage"
	"github.com/funkoshop/api/internal/utils"
)

// ImageService keeps a product's image records consistent with the files in
// the content store across create, update and delete.
type ImageService struct {
	db    *gorm.DB
	store storage.Store
}

func NewImageService(db *gorm.DB, store storage.Store) *ImageService {
	return &ImageService{db: db, store: store}
}

// AttachOnCreate records one image per stored file, positions following
// upload order. Files are already durable when this runs; if record
// creation fails the files are orphaned, which is logged and accepted (no
// transaction spans the database and the content store).
func (s *ImageService) AttachOnCreate(productID uuid.UUID, files []string) error {
	if len(files) == 0 {
		return nil
	}

	images := make([]models.Image, 0, len(files))
	for i, file := range files {
		images = append(images, models.Image{
			File:      file,
			Position:  i,
			ProductID: productID,
		})
	}

	if err := s.db.Create(&images).Error; err != nil {
		logrus.WithError(err).WithField("product_id", productID).
			Warn("image records not created, uploaded files orphaned")
		return utils.StoreError("attach images", err)
	}
	return nil
}

// SlotFailure describes one slot of a replacement that did not complete.
type SlotFailure struct {
	Position int    `json:"position"`
	Reason   string `json:"reason"`
}

// ReplaceReport aggregates the per-slot outcome of ReplaceOnUpdate.
type ReplaceReport struct {
	Replaced int           `json:"replaced"`
	Added    int           `json:"added"`
	Failures []SlotFailure `json:"failures,omitempty"`
}

func (r ReplaceReport) Failed() bool {
	return len(r.Failures) > 0
}

func (r ReplaceReport) Summary() string {
	attempted := r.Replaced + r.Added + len(r.Failures)
	if !r.Failed() {
		if r.Added > 0 {
			return fmt.Sprintf("replaced %d and added %d of %d images", r.Replaced, r.Added, attempted)
		}
		return fmt.Sprintf("replaced %d of %d images", r.Replaced, attempted)
	}
	return fmt.Sprintf("replaced %d of %d images, %d failed", r.Replaced+r.Added, attempted, len(r.Failures))
}

// ReplaceOnUpdate overwrites the product's image slots positionally: the
// file at upload position i replaces the image at insertion position i. The
// old backing file is deleted only when it exists, and the record is saved
// only after that slot's delete settled, so a record never points at a
// removed file. Files beyond the current image count are appended as new
// images. Slots fail independently; every outcome lands in the report.
func (s *ImageService) ReplaceOnUpdate(product *models.Product, files []string) ReplaceReport {
	var report ReplaceReport
	nextPos := len(product.Images)

	for i, file := range files {
		if i >= len(product.Images) {
			img := models.Image{File: file, Position: nextPos, ProductID: product.ID}
			if err := s.db.Create(&img).Error; err != nil {
				s.recordFailure(&report, product.ID, nextPos, "failed to add image record", err)
			} else {
				report.Added++
			}
			nextPos++
			continue
		}

		img := &product.Images[i]
		old := img.File

		if s.store.Exists(old) {
			if err := s.store.Delete(old); err != nil {
				s.recordFailure(&report, product.ID, img.Position, "failed to delete previous file", err)
				continue
			}
		}

		img.File = file
		if err := s.db.Save(img).Error; err != nil {
			s.recordFailure(&report, product.ID, img.Position, "failed to save image record", err)
			continue
		}
		report.Replaced++
	}

	if report.Failed() {
		logrus.WithFields(logrus.Fields{
			"product_id": product.ID,
			"failures":   len(report.Failures),
		}).Warn(report.Summary())
	}
	return report
}

func (s *ImageService) recordFailure(report *ReplaceReport, productID uuid.UUID, position int, reason string, err error) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"product_id": productID,
		"position":   position,
	}).Warn(reason)
	report.Failures = append(report.Failures, SlotFailure{Position: position, Reason: reason})
}

// RemoveAll deletes every backing file of the product's images, then the
// product record together with its image rows. A file already missing from
// the store is logged and skipped, never fatal.
func (s *ImageService) RemoveAll(product *models.Product) error {
	for _, img := range product.Images {
		if err := s.store.Delete(img.File); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				logrus.WithField("file", img.File).Warn("image file already missing on delete")
				continue
			}
			logrus.WithError(err).WithField("file", img.File).Warn("failed to delete image file")
		}
	}

	if err := s.db.Select("Images").Delete(product).Error; err != nil {
		return utils.StoreError("delete product", err)
	}
	return nil
}
