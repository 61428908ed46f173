package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/bugreport"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	usecase "github.com/BruksfildServices01/barber-booking/internal/usecase/reservation"
)

type AvailabilityHandler struct {
	availability *usecase.GetAvailability
	fail         failure
}

func NewAvailabilityHandler(availability *usecase.GetAvailability, bugs bugreport.Reporter) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, fail: failure{bugs: bugs}}
}

type availabilityResponse struct {
	Success bool `json:"success"`
	*usecase.AvailabilityOutput
}

// Get serves GET /barbers/:id/availability?date=YYYY-MM-DD.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	barberID, ok := parseID(c.Param("id"))
	if !ok {
		validationError(c)
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), usecase.AvailabilityInput{
		Caller:   cl,
		BarberID: barberID,
		Date:     c.Query("date"),
	})
	if err != nil {
		h.fail.write(c, "get availability", err)
		return
	}

	httpresp.OK(c, availabilityResponse{Success: true, AvailabilityOutput: out})
}
