package httperr

import "errors"

type BusinessError struct {
	Code string
	// Message overrides the catalog message when set.
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessMsg(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness extracts the business error carried by err, if any.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}

// CodeOf returns the business code carried by err, or "" for anything else.
func CodeOf(err error) string {
	if be, ok := AsBusiness(err); ok {
		return be.Code
	}
	return ""
}
