package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"council-motions-backend/internal/model"
)

type meetingResponse struct {
	ID           uuid.UUID  `json:"id"`
	PeriodNumber int        `json:"period"`
	Seq          int        `json:"seq"`
	Start        time.Time  `json:"start"`
	End          *time.Time `json:"end,omitempty"`
	Special      bool       `json:"special"`
	Location     string     `json:"location,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

func toMeetingResponse(m *model.Meeting) meetingResponse {
	return meetingResponse{
		ID:           m.ID,
		PeriodNumber: m.PeriodNumber,
		Seq:          m.Seq,
		Start:        m.Start,
		End:          m.End,
		Special:      m.Special,
		Location:     m.Location,
		Notes:        m.Notes,
	}
}

type createMeetingRequest struct {
	Period   int        `json:"period"`
	Start    time.Time  `json:"start" binding:"required"`
	End      *time.Time `json:"end"`
	Special  bool       `json:"special"`
	Location string     `json:"location"`
	Notes    string     `json:"notes"`
}

// CreateMeeting handles POST /api/meetings. Period zero means "the
// latest period".
func (h *Handler) CreateMeeting(c *gin.Context) {
	var req createMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	m := model.Meeting{
		PeriodNumber: req.Period,
		Start:        req.Start,
		End:          req.End,
		Special:      req.Special,
		Location:     req.Location,
		Notes:        req.Notes,
	}
	if err := h.store.CreateMeeting(c.Request.Context(), &m); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMeetingResponse(&m))
}

type updateMeetingRequest struct {
	Start    *time.Time `json:"start"`
	End      *time.Time `json:"end"`
	Special  *bool      `json:"special"`
	Location *string    `json:"location"`
	Notes    *string    `json:"notes"`
}

// UpdateMeeting handles PATCH /api/meetings/:id. Only the fields sent
// in the body change.
func (h *Handler) UpdateMeeting(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}
	var req updateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	m, err := h.store.MeetingByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if req.Start != nil {
		m.Start = *req.Start
	}
	if req.End != nil {
		m.End = req.End
	}
	if req.Special != nil {
		m.Special = *req.Special
	}
	if req.Location != nil {
		m.Location = *req.Location
	}
	if req.Notes != nil {
		m.Notes = *req.Notes
	}

	if err := h.store.UpdateMeeting(c.Request.Context(), m); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMeetingResponse(m))
}

// GetMeeting handles GET /api/meetings/:id.
func (h *Handler) GetMeeting(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}
	m, err := h.store.MeetingByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMeetingResponse(m))
}

// ListMeetings handles GET /api/periods/:period/meetings.
func (h *Handler) ListMeetings(c *gin.Context) {
	period, err := strconv.Atoi(c.Param("period"))
	if err != nil {
		bindError(c, err)
		return
	}
	meetings, err := h.store.ListMeetings(c.Request.Context(), period)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]meetingResponse, 0, len(meetings))
	for i := range meetings {
		out = append(out, toMeetingResponse(&meetings[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetMeetingByNumber handles GET /api/periods/:period/meetings/:seq,
// the human-facing "meeting 3 of period 14" lookup.
func (h *Handler) GetMeetingByNumber(c *gin.Context) {
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
	m, err := h.store.MeetingByNumber(c.Request.Context(), period, seq)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMeetingResponse(m))
}
