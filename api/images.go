package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	"devfolio/services"
)

func (m *APIModule) listImages(c *gin.Context) {
	var projectID *uint
	if raw := c.Query("project_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}
		id := uint(parsed)
		projectID = &id
	}

	images, err := m.images.List(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading images"})
		return
	}
	c.JSON(http.StatusOK, images)
}

func (m *APIModule) getImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	image, err := m.images.GetByID(id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading image"})
		return
	}
	c.JSON(http.StatusOK, image)
}

// serveImageFile streams a stored binary payload. ETags are an xxhash of
// the payload so unchanged images answer 304 to conditional requests.
func (m *APIModule) serveImageFile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	image, err := m.images.GetByID(id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading image"})
		return
	}
	if len(image.FileData) == 0 {
		if image.URL != "" {
			c.Redirect(http.StatusFound, image.URL)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Image has no stored file"})
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(image.FileData))
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(image.FileData), image.FileData)
}

type imagePayload struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	FileData        string `json:"file_data"` // base64
	ImageCategoryID *uint  `json:"image_category_id"`
	ProjectID       *uint  `json:"project_id"`
}

func decodeFileData(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(encoded)
}

func (m *APIModule) createImage(c *gin.Context) {
	var payload imagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image payload"})
		return
	}
	data, err := decodeFileData(payload.FileData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_data is not valid base64"})
		return
	}

	image, err := m.images.Create(services.ImageInput{
		Name:            payload.Name,
		URL:             payload.URL,
		FileData:        data,
		ImageCategoryID: payload.ImageCategoryID,
		ProjectID:       payload.ProjectID,
	})
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while creating the image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Image created successfully",
		"created_image": image,
	})
}

func (m *APIModule) updateImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload struct {
		Name            *string `json:"name"`
		URL             *string `json:"url"`
		FileData        string  `json:"file_data"`
		ImageCategoryID *uint   `json:"image_category_id"`
		ProjectID       *uint   `json:"project_id"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image payload"})
		return
	}
	data, err := decodeFileData(payload.FileData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_data is not valid base64"})
		return
	}

	image, err := m.images.Update(id, services.ImageUpdate{
		Name:            payload.Name,
		URL:             payload.URL,
		FileData:        data,
		ImageCategoryID: payload.ImageCategoryID,
		ProjectID:       payload.ProjectID,
	})
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating the image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Image updated successfully",
		"updated_image": image,
	})
}

func (m *APIModule) deleteImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	image, err := m.images.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while deleting the image"})
		return
	}
	if image == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":       "Image not found",
			"deleted_image": nil,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Image deleted successfully",
		"deleted_image": image,
	})
}
