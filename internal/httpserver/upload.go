package httpserver

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skirsanov/gadgetshop/internal/logging"
	"github.com/skirsanov/gadgetshop/internal/storage"
)

type UploadHTTP struct {
	Store *storage.ImageStore
}

// Upload accepts a multipart "image" field, jpg and png only, and stores it
// under a random key in the image bucket.
func (h *UploadHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload")

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "No file uploaded."})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Only jpg and png files are allowed."})
	}

	src, err := file.Open()
	if err != nil {
		l.Error("upload_open_error", "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	key := uuid.New().String() + ext

	url, err := h.Store.Put(ctx, key, src, file.Size, contentType)
	if err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Upload failed"})
	}

	l.Info("upload_successful", "key", key)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Upload succeeded",
		"url":     url,
	})
}
