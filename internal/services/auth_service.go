// internal/services/auth_service.go
package services

import (
	"errors"
	"net/http"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/funkoshop/api/internal/config"
	"github.com/funkoshop/api/internal/models"
	"github.com/funkoshop/api/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("email = ? OR username = ?", req.Email, req.Username).
		Count(&count).Error; err != nil {
		return nil, utils.StoreError("check user uniqueness", err)
	}
	if count > 0 {
		return nil, &utils.AppError{
			Status:  http.StatusConflict,
			Code:    "CONFLICT",
			Message: "username or email already taken",
		}
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Roles:    pq.StringArray{models.RoleUser},
		Status:   models.UserStatusActive,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, utils.StoreError("hash password", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, utils.StoreError("create user", err)
	}
	return user, nil
}

func (s *AuthService) Login(req *LoginRequest) (string, *models.User, error) {
	invalid := &utils.AppError{
		Status:  http.StatusUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: "invalid credentials",
	}

	var user models.User
	if err := s.db.First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, invalid
		}
		return "", nil, utils.StoreError("find user", err)
	}

	if user.Status != models.UserStatusActive {
		return "", nil, invalid
	}
	if err := user.CheckPassword(req.Password); err != nil {
		return "", nil, invalid
	}

	now := time.Now()
	s.db.Model(&user).UpdateColumn("last_login_at", &now)

	token, err := utils.GenerateJWT(user.ID, user.Username, user.Roles, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return "", nil, utils.StoreError("sign token", err)
	}
	return token, &user, nil
}
