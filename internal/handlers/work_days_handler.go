package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/bugreport"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type WorkDaysHandler struct {
	workDays *schedule.WorkDays
	fail     failure
}

func NewWorkDaysHandler(workDays *schedule.WorkDays, bugs bugreport.Reporter) *WorkDaysHandler {
	return &WorkDaysHandler{workDays: workDays, fail: failure{bugs: bugs}}
}

type workDaysRequest struct {
	Days []schedule.WorkDayInput `json:"days" binding:"required"`
}

type workDaysResponse struct {
	Success bool             `json:"success"`
	Days    []models.WorkDay `json:"days"`
}

func (h *WorkDaysHandler) Get(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	days, err := h.workDays.List(c.Request.Context(), cl)
	if err != nil {
		h.fail.write(c, "list work days", err)
		return
	}
	if days == nil {
		days = []models.WorkDay{}
	}

	httpresp.OK(c, workDaysResponse{Success: true, Days: days})
}

// Update replaces the whole week.
func (h *WorkDaysHandler) Update(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	var req workDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c)
		return
	}

	days, err := h.workDays.Replace(c.Request.Context(), cl, req.Days)
	if err != nil {
		h.fail.write(c, "replace work days", err)
		return
	}

	httpresp.OK(c, workDaysResponse{Success: true, Days: days})
}
