package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"council-motions-backend/internal/store"
	"council-motions-backend/internal/validate"
)

// writeError maps store and validation errors onto HTTP status codes:
// field violations become a 422 with the per-field map, conflicts with
// the process state become 409, lookup misses 404.
func writeError(c *gin.Context, err error) {
	if errs, ok := validate.AsErrors(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	if errors.Is(err, store.ErrNoPeriod) || errors.Is(err, store.ErrMotionDecided) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if store.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// bindError reports malformed request bodies and path parameters.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
