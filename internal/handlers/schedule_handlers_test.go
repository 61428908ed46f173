package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailability_ListsFreeSlots(t *testing.T) {
	s := newServer(t, nil)
	s.book("2025-12-08 10:00")

	w, out := s.get("/api/barbers/"+s.barber.ID.String()+"/availability?date=2025-12-08", s.customerToken())

	require.Equal(t, http.StatusOK, w.Code, out)
	assert.Equal(t, "2025-12-08", out["date"])
	assert.Equal(t, "monday", out["dayName"])

	slots := out["slots"].([]any)
	// 09:00-18:00 in 30 minute steps, minus the booked 10:00
	require.Len(t, slots, 17)
	times := make([]string, 0, len(slots))
	for _, sl := range slots {
		times = append(times, sl.(map[string]any)["time"].(string))
	}
	assert.Equal(t, "09:00", times[0])
	assert.NotContains(t, times, "10:00")
	assert.Equal(t, "17:30", times[len(times)-1])
}

func TestAvailability_BadDateIsValidationError(t *testing.T) {
	s := newServer(t, nil)

	w, out := s.get("/api/barbers/"+s.barber.ID.String()+"/availability?date=08-12-2025", s.customerToken())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", out["error"])
}

func TestChanges_PagedHistory(t *testing.T) {
	s := newServer(t, nil)
	id := s.book("2025-12-08 10:00")
	w, out := s.post("/api/reservations/cancel", s.customerToken(), gin.H{"reservationId": id})
	require.Equal(t, http.StatusOK, w.Code, out)
	s.dispatcher.Close()

	w, out = s.get("/api/reservations/"+id+"/changes?limit=1", s.token(s.barber.ID, "barber"))

	require.Equal(t, http.StatusOK, w.Code, out)
	assert.Equal(t, float64(2), out["total"])
	assert.Equal(t, float64(1), out["limit"])
	data := out["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "created", data[0].(map[string]any)["changeType"])

	w, out = s.get("/api/reservations/"+id+"/changes?page=2&limit=1", s.customerToken())
	require.Equal(t, http.StatusOK, w.Code, out)
	data = out["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "cancelled", data[0].(map[string]any)["changeType"])
}

func TestWorkDays_ReplaceAndRead(t *testing.T) {
	s := newServer(t, nil)
	barber := s.token(s.barber.ID, "barber")

	w, out := s.do(http.MethodPut, "/api/me/work-days", barber, gin.H{
		"days": []gin.H{
			{"dayOfWeek": "Tuesday", "isWorking": true, "startTime": "10:00", "endTime": "14:00"},
			{"dayOfWeek": "sunday", "isWorking": true},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, out)

	w, out = s.get("/api/me/work-days", barber)
	require.Equal(t, http.StatusOK, w.Code, out)
	days := out["days"].([]any)
	require.Len(t, days, 2)
	assert.Equal(t, "sunday", days[0].(map[string]any)["dayOfWeek"])
	assert.Equal(t, "tuesday", days[1].(map[string]any)["dayOfWeek"])
	assert.Equal(t, "10:00", days[1].(map[string]any)["startTime"])
}

func TestWorkDays_CustomerIsForbidden(t *testing.T) {
	s := newServer(t, nil)

	w, out := s.get("/api/me/work-days", s.customerToken())

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "NOT_AUTHORIZED", out["error"])
}

func TestWorkDays_InvalidHoursIsValidationError(t *testing.T) {
	s := newServer(t, nil)

	w, out := s.do(http.MethodPut, "/api/me/work-days", s.token(s.barber.ID, "barber"), gin.H{
		"days": []gin.H{{"dayOfWeek": "monday", "isWorking": true, "startTime": "18:00", "endTime": "09:00"}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", out["error"])
}
