// internal/handlers/product.go
package handlers

import (
	"errors"
	"mime"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/funkoshop/api/internal/services"
	"github.com/funkoshop/api/internal/storage"
	"github.com/funkoshop/api/internal/utils"
)

type ProductHandler struct {
	catalog *services.CatalogService
	images  *services.ImageService
	store   storage.Store
}

func NewProductHandler(catalog *services.CatalogService, images *services.ImageService, store storage.Store) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		images:  images,
		store:   store,
	}
}

type productForm struct {
	Name        string  `form:"name" validate:"required,max=255"`
	Price       float64 `form:"price" validate:"min=0"`
	Discount    float64 `form:"discount" validate:"min=0,max=100"`
	Description string  `form:"description"`
	Category    string  `form:"category" validate:"omitempty,uuid"`
}

// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	params := utils.GetListParams(c)
	origin := utils.RequestOrigin(c)

	views, meta, err := h.catalog.List(params, origin)
	if err != nil {
		utils.RenderError(c, err)
		return
	}

	utils.OKWithMeta(c, views, meta)
}

// GET /products/:id
func (h *ProductHandler) Detail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RenderError(c, utils.BadRequestError("invalid product id", nil))
		return
	}

	view, err := h.catalog.Detail(id, utils.RequestOrigin(c))
	if err != nil {
		utils.RenderError(c, err)
		return
	}

	utils.OK(c, view)
}

// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RenderError(c, utils.BadRequestError("invalid input", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&form); err != nil {
		utils.RenderError(c, utils.ValidationFailure(utils.GetValidationErrors(err)))
		return
	}

	input := services.CreateProductInput{
		Name:        form.Name,
		Price:       form.Price,
		Discount:    form.Discount,
		Description: form.Description,
	}
	if form.Category != "" {
		categoryID, _ := uuid.Parse(form.Category)
		input.CategoryID = &categoryID
	}

	files, err := storeUploads(c, h.store, "images")
	if err != nil {
		utils.RenderError(c, err)
		return
	}

	product, err := h.catalog.Create(input)
	if err != nil {
		if len(files) > 0 {
			logrus.WithField("files", files).Warn("product creation failed, uploaded files orphaned")
		}
		utils.RenderError(c, err)
		return
	}

	if err := h.images.AttachOnCreate(product.ID, files); err != nil {
		utils.RenderError(c, err)
		return
	}

	view, err := h.catalog.Detail(product.ID, utils.RequestOrigin(c))
	if err != nil {
		utils.RenderError(c, err)
		return
	}
	utils.Created(c, view)
}

// PATCH /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RenderError(c, utils.BadRequestError("invalid product id", nil))
		return
	}

	updates, appErr := h.collectUpdates(c)
	if appErr != nil {
		utils.RenderError(c, appErr)
		return
	}

	product, err := h.catalog.Update(id, updates)
	if err != nil {
		utils.RenderError(c, err)
		return
	}

	files, err := storeUploads(c, h.store, "images")
	if err != nil {
		utils.RenderError(c, err)
		return
	}

	msg := ""
	if len(files) > 0 {
		report := h.images.ReplaceOnUpdate(product, files)
		msg = report.Summary()
	}

	view, err := h.catalog.Detail(id, utils.RequestOrigin(c))
	if err != nil {
		utils.RenderError(c, err)
		return
	}
	utils.CreatedWithMsg(c, view, msg)
}

// collectUpdates builds the partial update map from whichever form fields
// the request carried.
func (h *ProductHandler) collectUpdates(c *gin.Context) (map[string]interface{}, *utils.AppError) {
	updates := make(map[string]interface{})

	if name, ok := c.GetPostForm("name"); ok {
		if name == "" {
			return nil, utils.BadRequestError("name must not be empty", nil)
		}
		updates["name"] = name
	}
	if raw, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return nil, utils.BadRequestError("price must be a non-negative number", nil)
		}
		updates["price"] = price
	}
	if raw, ok := c.GetPostForm("discount"); ok {
		discount, err := strconv.ParseFloat(raw, 64)
		if err != nil || discount < 0 {
			return nil, utils.BadRequestError("discount must be a non-negative number", nil)
		}
		updates["discount"] = discount
	}
	if description, ok := c.GetPostForm("description"); ok {
		updates["description"] = description
	}
	if category, ok := c.GetPostForm("category"); ok {
		if category == "" {
			updates["category_id"] = nil
		} else {
			categoryID, err := uuid.Parse(category)
			if err != nil {
				return nil, utils.BadRequestError("invalid category id", nil)
			}
			updates["category_id"] = categoryID
		}
	}
	return updates, nil
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RenderError(c, utils.BadRequestError("invalid product id", nil))
		return
	}

	product, err := h.catalog.GetWithImages(id)
	if err != nil {
		utils.RenderError(c, err)
		return
	}

	if err := h.images.RemoveAll(product); err != nil {
		utils.RenderError(c, err)
		return
	}

	utils.Message(c, "product deleted")
}

// GET /products/image/:image
func (h *ProductHandler) GetImage(c *gin.Context) {
	name := c.Param("image")

	rc, size, err := h.store.Open(name)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidName):
			utils.RenderError(c, utils.BadRequestError("invalid image name", nil))
		case errors.Is(err, storage.ErrNotFound):
			utils.RenderError(c, utils.NotFoundError("image"))
		default:
			utils.RenderError(c, utils.StoreError("open image", err))
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

// GET /categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories()
	if err != nil {
		utils.RenderError(c, err)
		return
	}
	utils.OK(c, categories)
}
