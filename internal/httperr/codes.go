package httperr

import "net/http"

const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeNotAuthorized         = "NOT_AUTHORIZED"
	CodeReservationNotFound   = "RESERVATION_NOT_FOUND"
	CodeBarberNotFound        = "BARBER_NOT_FOUND"
	CodeAlreadyCancelled      = "ALREADY_CANCELLED"
	CodeAlreadyPast           = "ALREADY_PAST"
	CodePastAppointment       = "PAST_APPOINTMENT"
	CodeTooClose              = "TOO_CLOSE_TO_APPOINTMENT"
	CodeDateOutOfRange        = "DATE_OUT_OF_RANGE"
	CodeCancelTooLate         = "CANCEL_TOO_LATE"
	CodeBarberClosed          = "BARBER_CLOSED"
	CodeShopClosed            = "SHOP_CLOSED"
	CodeOutsideWorkHours      = "OUTSIDE_WORK_HOURS"
	CodeNotWorkingDay         = "NOT_WORKING_DAY"
	CodeSlotTaken             = "SLOT_ALREADY_TAKEN"
	CodeSlotRecurring         = "SLOT_RESERVED_RECURRING"
	CodeSlotInBreakout        = "SLOT_IN_BREAKOUT"
	CodeConcurrencyConflict   = "CONCURRENCY_CONFLICT"
	CodeSameTime              = "SAME_TIME"
	CodeInvalidService        = "INVALID_SERVICE"
	CodeCustomerBlocked       = "CUSTOMER_BLOCKED"
	CodeGeneric               = "GENERIC_ERROR"
	CodeCustomerDoubleBooking = "CUSTOMER_DOUBLE_BOOKING"
	CodeMaxBookingsReached    = "MAX_BOOKINGS_REACHED"
	CodeBarberPaused          = "BARBER_PAUSED"
	CodeDatabase              = "DATABASE_ERROR"
	CodeUnknown               = "UNKNOWN_ERROR"
	CodeUnauthorized          = "UNAUTHORIZED"
)

type entry struct {
	status  int
	message string
}

var catalog = map[string]entry{
	CodeValidation:            {http.StatusBadRequest, "הנתונים שנשלחו אינם תקינים."},
	CodeNotAuthorized:         {http.StatusForbidden, "אין לך הרשאה לבצע פעולה זו."},
	CodeReservationNotFound:   {http.StatusNotFound, "התור לא נמצא."},
	CodeBarberNotFound:        {http.StatusNotFound, "הספר לא נמצא."},
	CodeAlreadyCancelled:      {http.StatusBadRequest, "התור כבר בוטל."},
	CodeAlreadyPast:           {http.StatusBadRequest, "לא ניתן לשנות תור שכבר עבר."},
	CodePastAppointment:       {http.StatusBadRequest, "לא ניתן לקבוע תור בזמן שכבר עבר."},
	CodeTooClose:              {http.StatusBadRequest, "מועד התור קרוב מדי. יש לקבוע מראש."},
	CodeDateOutOfRange:        {http.StatusBadRequest, "התאריך רחוק מדי. לא ניתן לקבוע תור כל כך מראש."},
	CodeCancelTooLate:         {http.StatusBadRequest, "מאוחר מדי לבטל את התור. יש ליצור קשר עם המספרה."},
	CodeBarberClosed:          {http.StatusConflict, "הספר אינו זמין בתאריך זה."},
	CodeShopClosed:            {http.StatusConflict, "המספרה סגורה בתאריך זה."},
	CodeOutsideWorkHours:      {http.StatusBadRequest, "השעה מחוץ לשעות הפעילות."},
	CodeNotWorkingDay:         {http.StatusBadRequest, "הספר אינו עובד ביום זה."},
	CodeSlotTaken:             {http.StatusConflict, "השעה כבר תפוסה. אנא בחר שעה אחרת."},
	CodeSlotRecurring:         {http.StatusConflict, "השעה שמורה לתור קבוע."},
	CodeSlotInBreakout:        {http.StatusConflict, "הספר בהפסקה בשעה זו."},
	CodeConcurrencyConflict:   {http.StatusConflict, "התור עודכן על ידי מישהו אחר. אנא רענן ונסה שוב."},
	CodeSameTime:              {http.StatusBadRequest, "לא בוצע שינוי בתור."},
	CodeInvalidService:        {http.StatusBadRequest, "השירות שנבחר אינו זמין."},
	CodeCustomerBlocked:       {http.StatusBadRequest, "לא ניתן לקבוע את התור. אנא נסה שוב מאוחר יותר."},
	CodeGeneric:               {http.StatusBadRequest, "לא ניתן לקבוע את התור. אנא נסה שוב מאוחר יותר."},
	CodeCustomerDoubleBooking: {http.StatusConflict, "כבר יש לך תור בשעה זו."},
	CodeMaxBookingsReached:    {http.StatusBadRequest, "הגעת למספר התורים העתידיים המרבי."},
	CodeBarberPaused:          {http.StatusBadRequest, "הספר אינו מקבל הזמנות כרגע."},
	CodeDatabase:              {http.StatusInternalServerError, "שגיאה בגישה לנתונים. אנא נסה שוב."},
	CodeUnknown:               {http.StatusInternalServerError, "אירעה שגיאה לא צפויה."},
	CodeUnauthorized:          {http.StatusUnauthorized, "יש להתחבר מחדש."},
}

// StatusOf returns the HTTP status of a code. Unknown codes map to 500.
func StatusOf(code string) int {
	if e, ok := catalog[code]; ok {
		return e.status
	}
	return http.StatusInternalServerError
}

func MessageOf(code string) string {
	if e, ok := catalog[code]; ok {
		return e.message
	}
	return catalog[CodeUnknown].message
}

// Known reports whether code belongs to the closed taxonomy.
func Known(code string) bool {
	_, ok := catalog[code]
	return ok
}
