// internal/handlers/uploads.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/funkoshop/api/internal/storage"
	"github.com/funkoshop/api/internal/utils"
)

// storeUploads writes every uploaded file under the given multipart field
// into the content store and returns the stored names in upload order.
// Files are durable before any record references them. A non-multipart
// request simply has no uploads.
func storeUploads(c *gin.Context, store storage.Store, field string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, utils.BadRequestError("malformed multipart upload", err.Error())
	}

	var names []string
	for _, header := range form.File[field] {
		f, err := header.Open()
		if err != nil {
			return names, utils.BadRequestError("unreadable uploaded file", header.Filename)
		}

		name, err := store.Put(f, header.Filename)
		f.Close()
		if err != nil {
			logrus.WithError(err).WithField("file", header.Filename).
				Error("content store rejected upload")
			return names, &utils.AppError{
				Status:  http.StatusInternalServerError,
				Code:    "STORAGE_FAILURE",
				Message: "failed to store uploaded file",
			}
		}
		names = append(names, name)
	}
	return names, nil
}
