package reservation

import "github.com/google/uuid"

type CallerType string

const (
	CallerCustomer CallerType = "customer"
	CallerBarber   CallerType = "barber"
	CallerAdmin    CallerType = "admin"
)

func (t CallerType) Valid() bool {
	switch t {
	case CallerCustomer, CallerBarber, CallerAdmin:
		return true
	}
	return false
}

// Caller is the authenticated identity behind a request.
type Caller struct {
	ID   uuid.UUID
	Type CallerType
}

func (c Caller) IsCustomer() bool {
	return c.Type == CallerCustomer
}

// CancelledBy maps the caller to the party recorded on a cancellation.
// Admins cancel on behalf of the shop staff.
func (c Caller) CancelledBy() CancelledBy {
	if c.Type == CallerCustomer {
		return CancelledByCustomer
	}
	return CancelledByBarber
}
