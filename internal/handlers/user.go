// internal/handlers/user.go
package handlers

import (
	"errors"
	"mime"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/funkoshop/api/internal/services"
	"github.com/funkoshop/api/internal/storage"
	"github.com/funkoshop/api/internal/utils"
)

type UserHandler struct {
	users *services.UserService
	store storage.Store
}

func NewUserHandler(users *services.UserService, store storage.Store) *UserHandler {
	return &UserHandler{users: users, store: store}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	idStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := currentUserID(c)
	if !ok {
		utils.RenderError(c, utils.BadRequestError("invalid user id", nil))
		return
	}

	user, err := h.users.Get(id)
	if err != nil {
		utils.RenderError(c, err)
		return
	}

	utils.OK(c, gin.H{"user": user})
}

// PATCH /users/update
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := currentUserID(c)
	if !ok {
		utils.RenderError(c, utils.BadRequestError("invalid user id", nil))
		return
	}

	updates := make(map[string]interface{})
	if username, ok := c.GetPostForm("username"); ok && username != "" {
		updates["username"] = username
	}
	if email, ok := c.GetPostForm("email"); ok && email != "" {
		updates["email"] = email
	}

	avatars, err := storeUploads(c, h.store, "avatar")
	if err != nil {
		utils.RenderError(c, err)
		return
	}
	newAvatar := ""
	if len(avatars) > 0 {
		newAvatar = avatars[0]
	}

	user, err := h.users.UpdateProfile(id, updates, newAvatar)
	if err != nil {
		utils.RenderError(c, err)
		return
	}

	utils.OK(c, gin.H{"user": user})
}

// DELETE /users/remove
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	id, ok := currentUserID(c)
	if !ok {
		utils.RenderError(c, utils.BadRequestError("invalid user id", nil))
		return
	}

	if err := h.users.Remove(id); err != nil {
		utils.RenderError(c, err)
		return
	}

	utils.Message(c, "account removed")
}

// GET /users/avatar/:avatar
func (h *UserHandler) GetAvatar(c *gin.Context) {
	name := c.Param("avatar")

	rc, size, err := h.store.Open(name)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidName):
			utils.RenderError(c, utils.BadRequestError("invalid avatar name", nil))
		case errors.Is(err, storage.ErrNotFound):
			utils.RenderError(c, utils.NotFoundError("avatar"))
		default:
			utils.RenderError(c, utils.StoreError("open avatar", err))
		}
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(200, size, contentType, rc, nil)
}
