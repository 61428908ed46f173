package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/bugreport"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	usecase "github.com/BruksfildServices01/barber-booking/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ChangesHandler struct {
	list *usecase.ListChanges
	fail failure
}

func NewChangesHandler(list *usecase.ListChanges, bugs bugreport.Reporter) *ChangesHandler {
	return &ChangesHandler{list: list, fail: failure{bugs: bugs}}
}

// List serves GET /reservations/:id/changes?page=&limit=.
func (h *ChangesHandler) List(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		validationError(c)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	out, err := h.list.Execute(c.Request.Context(), usecase.ListChangesInput{
		Caller:        cl,
		ReservationID: id,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		h.fail.write(c, "list reservation changes", err)
		return
	}

	httpresp.Page(c, out.Changes, out.Total, out.Page, out.Limit)
}
