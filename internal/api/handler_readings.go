package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"council-motions-backend/internal/model"
)

type readingResponse struct {
	ID               uuid.UUID           `json:"id"`
	MotionID         uuid.UUID           `json:"motion_id"`
	MeetingID        uuid.UUID           `json:"meeting_id"`
	Status           model.ReadingStatus `json:"status"`
	Votable          bool                `json:"votable"`
	UrgencyRequested bool                `json:"urgency_requested"`
	Priority         int                 `json:"priority"`
	Minutes          string              `json:"minutes,omitempty"`
	Ordinal          int                 `json:"ordinal,omitempty"`
}

func toReadingResponse(r *model.Reading) readingResponse {
	return readingResponse{
		ID:               r.ID,
		MotionID:         r.MotionID,
		MeetingID:        r.MeetingID,
		Status:           r.Status,
		Votable:          r.Votable,
		UrgencyRequested: r.UrgencyRequested,
		Priority:         r.Priority,
		Minutes:          r.Minutes,
	}
}

type createReadingRequest struct {
	MotionID         uuid.UUID           `json:"motion_id" binding:"required"`
	MeetingID        uuid.UUID           `json:"meeting_id" binding:"required"`
	Status           model.ReadingStatus `json:"status"`
	UrgencyRequested bool                `json:"urgency_requested"`
	Priority         int                 `json:"priority"`
	Minutes          string              `json:"minutes"`
}

// CreateReading handles POST /api/readings. Priority zero means "use
// the motion type's default"; votability is derived, not accepted.
func (h *Handler) CreateReading(c *gin.Context) {
	var req createReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	r := model.Reading{
		MotionID:         req.MotionID,
		MeetingID:        req.MeetingID,
		Status:           req.Status,
		UrgencyRequested: req.UrgencyRequested,
		Priority:         req.Priority,
		Minutes:          req.Minutes,
	}
	if err := h.store.CreateReading(c.Request.Context(), &r); err != nil {
		writeError(c, err)
		return
	}

	resp := toReadingResponse(&r)
	if ordinal, err := h.store.ReadingOrdinal(c.Request.Context(), &r); err == nil {
		resp.Ordinal = ordinal
	}
	c.JSON(http.StatusCreated, resp)
}

type updateReadingRequest struct {
	Status           *model.ReadingStatus `json:"status"`
	UrgencyRequested *bool                `json:"urgency_requested"`
	Priority         *int                 `json:"priority"`
	Minutes          *string              `json:"minutes"`
}

// UpdateReading handles PATCH /api/readings/:id.
func (h *Handler) UpdateReading(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}
	var req updateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	r, err := h.store.ReadingByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if req.Status != nil {
		r.Status = *req.Status
	}
	if req.UrgencyRequested != nil {
		r.UrgencyRequested = *req.UrgencyRequested
	}
	if req.Priority != nil {
		r.Priority = *req.Priority
	}
	if req.Minutes != nil {
		r.Minutes = *req.Minutes
	}

	if err := h.store.UpdateReading(c.Request.Context(), r); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReadingResponse(r))
}

type voteRequest struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

// RecordVote handles POST /api/readings/:id/vote: it concludes the
// reading as voted and moves the motion to accepted or rejected in one
// transaction, then notifies the motion's subscribers.
func (h *Handler) RecordVote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	motion, err := h.store.RecordVote(c.Request.Context(), id, *req.Accepted)
	if err != nil {
		writeError(c, err)
		return
	}
	if h.notifier != nil {
		h.notifier.Notify(motion.ID)
	}
	c.JSON(http.StatusOK, toMotionResponse(motion))
}
