package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"council-motions-backend/internal/model"
	"council-motions-backend/internal/store"
)

// motionResponse is the public view of a motion. Contact data and
// internal notes never leave the backend.
type motionResponse struct {
	ID             uuid.UUID          `json:"id"`
	PeriodNumber   int                `json:"period"`
	Seq            int                `json:"seq"`
	Title          string             `json:"title"`
	Text           string             `json:"text"`
	Justification  string             `json:"justification,omitempty"`
	Requesters     string             `json:"requesters,omitempty"`
	Type           model.MotionType   `json:"type"`
	MinReadings    int                `json:"min_readings"`
	Status         model.MotionStatus `json:"status"`
	SubmittedAt    time.Time          `json:"submitted_at"`
	FormalAt       time.Time          `json:"formal_submitted_at"`
	Amount         *decimal.Decimal   `json:"amount,omitempty"`
	BudgetLine     string             `json:"budget_line,omitempty"`
	ChangesStatute bool               `json:"changes_statute"`
	NotesPublic    string             `json:"notes,omitempty"`
}

func toMotionResponse(m *model.Motion) motionResponse {
	return motionResponse{
		ID:             m.ID,
		PeriodNumber:   m.PeriodNumber,
		Seq:            m.Seq,
		Title:          m.Title,
		Text:           m.Text,
		Justification:  m.Justification,
		Requesters:     m.Requesters,
		Type:           m.Type,
		MinReadings:    m.MinReadings,
		Status:         m.Status,
		SubmittedAt:    m.SubmittedAt,
		FormalAt:       m.FormalSubmittedAt,
		Amount:         m.Amount,
		BudgetLine:     m.BudgetLine,
		ChangesStatute: m.ChangesStatute,
		NotesPublic:    m.NotesPublic,
	}
}

type createMotionRequest struct {
	Period         int              `json:"period"`
	Title          string           `json:"title" binding:"required"`
	Text           string           `json:"text" binding:"required"`
	Justification  string           `json:"justification"`
	Requesters     string           `json:"requesters"`
	ContactEmail   string           `json:"contact_email"`
	ContactPerson  string           `json:"contact_person"`
	Type           model.MotionType `json:"type"`
	MinReadings    int              `json:"min_readings"`
	FormalAt       *time.Time       `json:"formal_submitted_at"`
	Amount         *decimal.Decimal `json:"amount"`
	BudgetLine     string           `json:"budget_line"`
	ChangesStatute bool             `json:"changes_statute"`
	NotesPublic    string           `json:"notes"`
}

// CreateMotion handles POST /api/motions. Period zero means "the
// latest period"; omitted type, status, and reading count fall back to
// their defaults.
func (h *Handler) CreateMotion(c *gin.Context) {
	var req createMotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	m := model.Motion{
		PeriodNumber:   req.Period,
		Title:          req.Title,
		Text:           req.Text,
		Justification:  req.Justification,
		Requesters:     req.Requesters,
		ContactEmail:   req.ContactEmail,
		ContactPerson:  req.ContactPerson,
		Type:           req.Type,
		MinReadings:    req.MinReadings,
		Amount:         req.Amount,
		BudgetLine:     req.BudgetLine,
		ChangesStatute: req.ChangesStatute,
		NotesPublic:    req.NotesPublic,
	}
	if req.FormalAt != nil {
		m.FormalSubmittedAt = *req.FormalAt
	}

	if err := h.store.CreateMotion(c.Request.Context(), &m); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMotionResponse(&m))
}

type updateMotionRequest struct {
	Title          *string          `json:"title"`
	Text           *string          `json:"text"`
	Justification  *string          `json:"justification"`
	Requesters     *string          `json:"requesters"`
	ContactEmail   *string          `json:"contact_email"`
	ContactPerson  *string          `json:"contact_person"`
	MinReadings    *int             `json:"min_readings"`
	FormalAt       *time.Time       `json:"formal_submitted_at"`
	Amount         *decimal.Decimal `json:"amount"`
	BudgetLine     *string          `json:"budget_line"`
	ChangesStatute *bool            `json:"changes_statute"`
	NotesPublic    *string          `json:"notes"`
}

// UpdateMotion handles PATCH /api/motions/:id. The type and the
// status are deliberately not editable here: the type fixes the rule
// set at submission, status changes go through the status and vote
// endpoints.
func (h *Handler) UpdateMotion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}
	var req updateMotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	m, err := h.store.MotionByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Text != nil {
		m.Text = *req.Text
	}
	if req.Justification != nil {
		m.Justification = *req.Justification
	}
	if req.Requesters != nil {
		m.Requesters = *req.Requesters
	}
	if req.ContactEmail != nil {
		m.ContactEmail = *req.ContactEmail
	}
	if req.ContactPerson != nil {
		m.ContactPerson = *req.ContactPerson
	}
	if req.MinReadings != nil {
		m.MinReadings = *req.MinReadings
	}
	if req.FormalAt != nil {
		m.FormalSubmittedAt = *req.FormalAt
	}
	if req.Amount != nil {
		m.Amount = req.Amount
	}
	if req.BudgetLine != nil {
		m.BudgetLine = *req.BudgetLine
	}
	if req.ChangesStatute != nil {
		m.ChangesStatute = *req.ChangesStatute
	}
	if req.NotesPublic != nil {
		m.NotesPublic = *req.NotesPublic
	}

	if err := h.store.UpdateMotion(c.Request.Context(), m); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMotionResponse(m))
}

// GetMotion handles GET /api/motions/:id.
func (h *Handler) GetMotion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}
	m, err := h.store.MotionByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMotionResponse(m))
}

// ListMotions handles GET /api/periods/:period/motions with optional
// status and type query filters.
func (h *Handler) ListMotions(c *gin.Context) {
	period, err := strconv.Atoi(c.Param("period"))
	if err != nil {
		bindError(c, err)
		return
	}
	filter := store.MotionFilter{
		Status: model.MotionStatus(c.Query("status")),
		Type:   model.MotionType(c.Query("type")),
	}
	motions, err := h.store.ListMotions(c.Request.Context(), period, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]motionResponse, 0, len(motions))
	for i := range motions {
		out = append(out, toMotionResponse(&motions[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetMotionByNumber handles GET /api/periods/:period/motions/:seq.
func (h *Handler) GetMotionByNumber(c *gin.Context) {
	period, err := strconv.Atoi(c.Param("period"))
	if err != nil {
		bindError(c, err)
		return
	}
	seq, err := strconv.Atoi(c.Param("seq"))
	if err != nil {
		bindError(c, err)
		return
	}
	m, err := h.store.MotionByNumber(c.Request.Context(), period, seq)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMotionResponse(m))
}

type setStatusRequest struct {
	Status model.MotionStatus `json:"status" binding:"required"`
}

// SetMotionStatus handles POST /api/motions/:id/status for the
// decisions that happen outside a vote: withdrawn, not handled,
// rejected by the presidium.
func (h *Handler) SetMotionStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	m, err := h.store.SetMotionStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	if h.notifier != nil {
		h.notifier.Notify(m.ID)
	}
	c.JSON(http.StatusOK, toMotionResponse(m))
}
