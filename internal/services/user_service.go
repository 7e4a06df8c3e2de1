// internal/services/user_service.go
package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/funkoshop/api/internal/models"
	"github.com/funkoshop/api/internal/storage"
	"github.com/funkoshop/api/internal/utils"
)

type UserService struct {
	db    *gorm.DB
	store storage.Store
}

func NewUserService(db *gorm.DB, store storage.Store) *UserService {
	return &UserService{db: db, store: store}
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, utils.TranslateDBError("get user", "user", err)
	}
	return &user, nil
}

// UpdateProfile applies a partial update. When newAvatar is non-empty the
// file is already in the content store; the previous avatar file is removed
// only after the record update persisted, same rule as product image slots.
func (s *UserService) UpdateProfile(id uuid.UUID, updates map[string]interface{}, newAvatar string) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	oldAvatar := user.Avatar
	if newAvatar != "" {
		updates["avatar"] = newAvatar
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, utils.StoreError("update user", err)
		}
	}

	if newAvatar != "" && oldAvatar != "" && s.store.Exists(oldAvatar) {
		if err := s.store.Delete(oldAvatar); err != nil {
			logrus.WithError(err).WithField("file", oldAvatar).
				Warn("failed to delete previous avatar file")
		}
	}
	return user, nil
}

// Remove deletes the account and its avatar file. The file goes first; a
// missing file is logged and skipped.
func (s *UserService) Remove(id uuid.UUID) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	if user.Avatar != "" {
		if err := s.store.Delete(user.Avatar); err != nil {
			logrus.WithError(err).WithField("file", user.Avatar).
				Warn("failed to delete avatar file on account removal")
		}
	}

	if err := s.db.Delete(user).Error; err != nil {
		return utils.StoreError("delete user", err)
	}
	return nil
}
