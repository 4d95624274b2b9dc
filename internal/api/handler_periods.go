package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"council-motions-backend/internal/model"
)

type periodResponse struct {
	Number    int    `json:"number"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func toPeriodResponse(p *model.Period) periodResponse {
	return periodResponse{
		Number:    p.Number,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
	}
}

type createPeriodRequest struct {
	Number    int    `json:"number" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// CreatePeriod handles POST /api/periods.
func (h *Handler) CreatePeriod(c *gin.Context) {
	var req createPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		bindError(c, err)
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		bindError(c, err)
		return
	}

	p := model.Period{Number: req.Number, StartDate: start, EndDate: end}
	if err := h.store.CreatePeriod(c.Request.Context(), &p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPeriodResponse(&p))
}

// ListPeriods handles GET /api/periods.
func (h *Handler) ListPeriods(c *gin.Context) {
	periods, err := h.store.ListPeriods(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]periodResponse, 0, len(periods))
	for i := range periods {
		out = append(out, toPeriodResponse(&periods[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetLatestPeriod handles GET /api/periods/latest.
func (h *Handler) GetLatestPeriod(c *gin.Context) {
	p, err := h.store.LatestPeriod(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPeriodResponse(p))
}
