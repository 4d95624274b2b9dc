package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type agendaReading struct {
	Reading readingResponse `json:"reading"`
	Motion  motionResponse  `json:"motion"`
}

type agendaBlockResponse struct {
	Index    int             `json:"index"`
	Priority int             `json:"priority"`
	Title    string          `json:"title"`
	Items    []agendaReading `json:"items"`
}

// GetAgenda handles GET /api/meetings/:id/agenda. The agenda is
// derived on every call from the meeting's readings and labels.
func (h *Handler) GetAgenda(c *gin.Context) {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}

	blocks, err := h.store.AgendaForMeeting(c.Request.Context(), meetingID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]agendaBlockResponse, 0, len(blocks))
	for _, b := range blocks {
		items := make([]agendaReading, 0, len(b.Readings))
		for i := range b.Readings {
			r := &b.Readings[i]
			items = append(items, agendaReading{
				Reading: toReadingResponse(r),
				Motion:  toMotionResponse(&r.Motion),
			})
		}
		out = append(out, agendaBlockResponse{
			Index:    b.Index,
			Priority: b.Priority,
			Title:    b.Title,
			Items:    items,
		})
	}
	c.JSON(http.StatusOK, out)
}

// PutAgendaLabels handles PUT /api/meetings/:id/agenda-labels. The
// body maps priority tiers to block names and replaces the meeting's
// whole mapping.
func (h *Handler) PutAgendaLabels(c *gin.Context) {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		bindError(c, err)
		return
	}

	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}
	labels := make(map[int]string, len(body))
	for k, v := range body {
		prio, err := strconv.Atoi(k)
		if err != nil {
			bindError(c, err)
			return
		}
		labels[prio] = v
	}

	if err := h.store.ReplaceAgendaLabels(c.Request.Context(), meetingID, labels); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
