package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"

	"council-motions-backend/internal/blob"
	"council-motions-backend/internal/store"
)

// Notifier accepts motion IDs whose decision should be pushed to
// subscribers. The notification worker pool implements it.
type Notifier interface {
	Notify(motionID uuid.UUID)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	webpush  *webpush.Options
	notifier Notifier
	files    *blob.Store
}

// NewHandler creates a new API handler. notifier and files may be nil:
// decisions then go unannounced and the file endpoints answer 503.
func NewHandler(s store.Store, webpushOptions *webpush.Options, notifier Notifier, files *blob.Store) *Handler {
	return &Handler{
		store:    s,
		webpush:  webpushOptions,
		notifier: notifier,
		files:    files,
	}
}
