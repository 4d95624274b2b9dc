package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"council-motions-backend/internal/model"
)

type subMotionResponse struct {
	ID            uuid.UUID          `json:"id"`
	MotionID      uuid.UUID          `json:"motion_id"`
	Seq           int                `json:"seq"`
	Title         string             `json:"title"`
	Text          string             `json:"text"`
	Justification string             `json:"justification,omitempty"`
	Requesters    string             `json:"requesters,omitempty"`
	Status        model.MotionStatus `json:"status"`
	SubmittedAt   time.Time          `json:"submitted_at"`
	FormalAt      time.Time          `json:"formal_submitted_at"`
}

func toSubMotionResponse(sm *model.SubMotion) subMotionResponse {
	return subMotionResponse{
		ID:            sm.ID,
		MotionID:      sm.MotionID,
		Seq:           sm.Seq,
		Title:         sm.Title,
		Text:          sm.Text,
		Justification: sm.Justification,
		Requesters:    sm.Requesters,
		Status:        sm.Status,
		SubmittedAt:   sm.SubmittedAt,
		FormalAt:      sm.FormalSubmittedAt,
	}
}

type createSubMotionRequest struct {
	Title         string     `json:"title" binding:"required"`
	Text          string     `json:"text" binding:"required"`
	Justification string     `json:"justification"`
	Requesters    string     `json:"requesters"`
	ContactEmail  string     `json:"contact_email"`
	ContactPerson string     `json:"contact_person"`
	FormalAt      *time.Time `json:"formal_submitted_at"`
}

// CreateSubMotion handles POST /api/motions/:id/submotions. The parent
// must still be in deliberation.
func (h *Handler) CreateSubMotion(c *gin.Context) {
	motionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}
	var req createSubMotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	sm := model.SubMotion{
		MotionID:      motionID,
		Title:         req.Title,
		Text:          req.Text,
		Justification: req.Justification,
		Requesters:    req.Requesters,
		ContactEmail:  req.ContactEmail,
		ContactPerson: req.ContactPerson,
	}
	if req.FormalAt != nil {
		sm.FormalSubmittedAt = *req.FormalAt
	}

	if err := h.store.CreateSubMotion(c.Request.Context(), &sm); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSubMotionResponse(&sm))
}

// ListSubMotions handles GET /api/motions/:id/submotions.
func (h *Handler) ListSubMotions(c *gin.Context) {
	motionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}
	subs, err := h.store.ListSubMotions(c.Request.Context(), motionID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]subMotionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, toSubMotionResponse(&subs[i]))
	}
	c.JSON(http.StatusOK, out)
}
