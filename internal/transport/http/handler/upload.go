package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogql/internal/transport/http/middleware"
)

// Image types accepted by the upload filter. Anything else is treated as
// "no file provided", not as an error.
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

type UploadHandler struct {
	dir     string
	maxSize int64
}

func NewUploadHandler(dir string, maxSizeMB int) *UploadHandler {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &UploadHandler{
		dir:     dir,
		maxSize: int64(maxSizeMB) << 20,
	}
}

// Store saves an uploaded post image and returns its server-relative path.
// An optional oldPath form field names a previous image to delete.
func (h *UploadHandler) Store(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated!"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil || !allowedImageTypes[file.Header.Get("Content-Type")] {
		c.JSON(http.StatusOK, gin.H{"message": "No image provided!"})
		return
	}

	if file.Size > h.maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image too large."})
		return
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Storing file failed."})
		return
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst := filepath.Join(h.dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Storing file failed."})
		return
	}

	if oldPath := c.PostForm("oldPath"); oldPath != "" && oldPath != "undefined" {
		h.removeOld(oldPath)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "File stored.",
		"filePath": filepath.ToSlash(dst),
	})
}

// removeOld deletes a replaced image, best-effort, and only inside the
// upload directory.
func (h *UploadHandler) removeOld(oldPath string) {
	cleaned := filepath.Clean(filepath.FromSlash(oldPath))
	dir := filepath.Clean(h.dir)
	if !strings.HasPrefix(cleaned, dir+string(filepath.Separator)) {
		return
	}
	if err := os.Remove(cleaned); err != nil && !os.IsNotExist(err) {
		log.Printf("remove old image failed: %v", err)
	}
}
