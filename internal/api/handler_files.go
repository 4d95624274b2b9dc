package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"council-motions-backend/internal/blob"
	"council-motions-backend/internal/model"
)

// PutMotionFile handles PUT /api/motions/:id/files/:category. The raw
// request body is stored under <motion>/<category>/<filename> and the
// key is recorded on the motion, so uploading a comparison document to
// anything but a statute-change motion fails its validation.
func (h *Handler) PutMotionFile(c *gin.Context) {
	if h.files == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file storage is not configured"})
		return
	}

	motionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}
	category := blob.Category(c.Param("category"))
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown file category"})
		return
	}

	m, err := h.store.MotionByID(c.Request.Context(), motionID)
	if err != nil {
		writeError(c, err)
		return
	}

	filename := c.Query("filename")
	if filename == "" {
		filename = "document"
	}
	key := blob.Key(motionID, category, filename)

	// Record the key first: if the motion may not carry this document
	// the validator stops us before anything is uploaded.
	if err := h.setDocumentKey(c, m, category, key); err != nil {
		writeError(c, err)
		return
	}

	if err := h.files.Put(c.Request.Context(), key, c.Request.Body, c.ContentType()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}

func (h *Handler) setDocumentKey(c *gin.Context, m *model.Motion, category blob.Category, key string) error {
	switch category {
	case blob.CategoryComparison:
		m.ComparisonKey = key
	default:
		m.AttachmentKey = key
	}
	return h.store.UpdateMotion(c.Request.Context(), m)
}

// GetMotionFile handles GET /api/motions/:id/files/:category and
// streams the stored document back.
func (h *Handler) GetMotionFile(c *gin.Context) {
	if h.files == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file storage is not configured"})
		return
	}

	motionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}
	category := blob.Category(c.Param("category"))
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown file category"})
		return
	}

	m, err := h.store.MotionByID(c.Request.Context(), motionID)
	if err != nil {
		writeError(c, err)
		return
	}

	key := m.AttachmentKey
	if category == blob.CategoryComparison {
		key = m.ComparisonKey
	}
	if key == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no document of this category"})
		return
	}

	body, contentType, err := h.files.Get(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}
