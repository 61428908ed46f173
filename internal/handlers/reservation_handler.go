package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/bugreport"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	usecase "github.com/BruksfildServices01/barber-booking/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	create *usecase.CreateReservation
	edit   *usecase.EditReservation
	cancel *usecase.CancelReservation
	fail   failure
}

func NewReservationHandler(
	create *usecase.CreateReservation,
	edit *usecase.EditReservation,
	cancel *usecase.CancelReservation,
	bugs bugreport.Reporter,
) *ReservationHandler {
	return &ReservationHandler{
		create: create,
		edit:   edit,
		cancel: cancel,
		fail:   failure{bugs: bugs},
	}
}

// ======================================================
// CREATE
// ======================================================

type createRequest struct {
	BarberID      string `json:"barberId"`
	ServiceID     string `json:"serviceId"`
	CustomerID    string `json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	TimeTimestamp int64  `json:"timeTimestamp"`
	Notes         string `json:"notes"`
}

type createResponse struct {
	Success       bool      `json:"success"`
	ReservationID uuid.UUID `json:"reservationId"`
}

func (h *ReservationHandler) Create(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c)
		return
	}
	ids, ok := parseIDs(req.BarberID, req.ServiceID, req.CustomerID)
	if !ok {
		validationError(c)
		return
	}

	out, err := h.create.Execute(c.Request.Context(), usecase.CreateInput{
		Caller:        cl,
		BarberID:      ids[0],
		ServiceID:     ids[1],
		CustomerID:    ids[2],
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		TimeTimestamp: req.TimeTimestamp,
		Notes:         req.Notes,
	})
	if err != nil {
		h.fail.write(c, "create reservation", err)
		return
	}

	httpresp.Created(c, createResponse{Success: true, ReservationID: out.ReservationID})
}

// ======================================================
// EDIT
// ======================================================

type editRequest struct {
	ReservationID   string `json:"reservationId"`
	BarberID        string `json:"barberId"`
	ServiceID       string `json:"serviceId"`
	TimeTimestamp   int64  `json:"timeTimestamp"`
	ExpectedVersion *int   `json:"expectedVersion"`
}

type editResponse struct {
	Success       bool      `json:"success"`
	ReservationID uuid.UUID `json:"reservationId"`
	NewVersion    int       `json:"newVersion"`
}

func (h *ReservationHandler) Edit(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c)
		return
	}
	ids, ok := parseIDs(req.ReservationID, req.BarberID, req.ServiceID)
	if !ok {
		validationError(c)
		return
	}

	out, err := h.edit.Execute(c.Request.Context(), usecase.EditInput{
		Caller:          cl,
		ReservationID:   ids[0],
		BarberID:        ids[1],
		ServiceID:       ids[2],
		TimeTimestamp:   req.TimeTimestamp,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		h.fail.write(c, "edit reservation", err)
		return
	}

	httpresp.OK(c, editResponse{
		Success:       true,
		ReservationID: out.ReservationID,
		NewVersion:    out.NewVersion,
	})
}

// ======================================================
// CANCEL
// ======================================================

type cancelRequest struct {
	ReservationID   string `json:"reservationId"`
	ExpectedVersion *int   `json:"expectedVersion"`
	Reason          string `json:"reason"`
}

type cancelledReservation struct {
	ID      uuid.UUID `json:"id"`
	Status  string    `json:"status"`
	Version int       `json:"version"`
}

type cancelResponse struct {
	Success     bool                 `json:"success"`
	Reservation cancelledReservation `json:"reservation"`
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	cl, ok := caller(c)
	if !ok {
		return
	}

	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c)
		return
	}
	id, ok := parseID(req.ReservationID)
	if !ok {
		validationError(c)
		return
	}

	out, err := h.cancel.Execute(c.Request.Context(), usecase.CancelInput{
		Caller:          cl,
		ReservationID:   id,
		ExpectedVersion: req.ExpectedVersion,
		Reason:          req.Reason,
	})
	if err != nil {
		h.fail.write(c, "cancel reservation", err)
		return
	}

	httpresp.OK(c, cancelResponse{
		Success: true,
		Reservation: cancelledReservation{
			ID:      out.ID,
			Status:  out.Status,
			Version: out.Version,
		},
	})
}
